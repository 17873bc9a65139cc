package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PayoutBatch struct {
	ID             string
	Reference      string
	MemberID       string
	Category       Category
	Period         string
	Gross          decimal.Decimal
	Tax            decimal.Decimal
	PlatformCharge decimal.Decimal
	Net            decimal.Decimal
	IsPaid         bool
	PaidAt         *time.Time
	CreatedAt      time.Time
}

type PayoutRepository interface {
	// CreateBatch inserts the batch unless one exists for (member, category, period)
	// and, only when inserted, saves the debited member with its ledger entry.
	CreateBatch(ctx context.Context, batch *PayoutBatch, member *Member, debit *WalletTransaction) (bool, error)
	GetBatchByID(ctx context.Context, batchID string) (*PayoutBatch, error)
	GetBatchesByMemberID(ctx context.Context, memberID string) ([]*PayoutBatch, error)
	MarkBatchPaid(ctx context.Context, batchID string, paidAt time.Time) error
}

type BatchNotifier interface {
	NotifyBatchCreated(batch *PayoutBatch)
}
