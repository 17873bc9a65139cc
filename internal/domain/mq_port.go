package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Message struct {
	Key   []byte
	Value []byte
}

type PublisherPort interface {
	Publish(topic string, msgs ...Message) error
}

type SubscriberPort interface {
	Subscribe(topic, groupID string) (<-chan Message, error)
}

type CommissionEvent struct {
	MemberID  string          `json:"member_id"`
	Category  Category        `json:"category"`
	Wallet    WalletType      `json:"wallet"`
	Gross     decimal.Decimal `json:"gross"`
	Recovered decimal.Decimal `json:"recovered"`
	Net       decimal.Decimal `json:"net"`
	SourceID  string          `json:"source_id"`
	CreatedAt time.Time       `json:"created_at"`
}

type CommissionPublisher interface {
	PublishCommission(ctx context.Context, event CommissionEvent) error
}
