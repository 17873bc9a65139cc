package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type MemberRepository interface {
	GetMemberByID(ctx context.Context, memberID string) (*Member, error)
	GetDirectRecruits(ctx context.Context, sponsorID string) ([]*Member, error)
	// GetChild returns ErrMemberNotFound when the slot is free.
	GetChild(ctx context.Context, parentID string, side Position) (*Member, error)
	CreateMember(ctx context.Context, member *Member) error
	// SaveMember writes the member guarded by its Version and appends the ledger
	// entries in the same transaction. On success member.Version is advanced.
	SaveMember(ctx context.Context, member *Member, entries []*WalletTransaction) error
	FindMembersWithWallet(ctx context.Context, wallet WalletType, minAmount decimal.Decimal, afterID string, limit int) ([]*Member, error)
	FindMembersWithDeposit(ctx context.Context, afterID string, limit int) ([]*Member, error)
	GetTransactions(ctx context.Context, memberID string) ([]*WalletTransaction, error)
}

type EventRepository interface {
	IsProcessed(ctx context.Context, key string) (bool, error)
	// MarkProcessed returns ErrDuplicateEvent if the key is already recorded.
	MarkProcessed(ctx context.Context, key, kind string, at time.Time) error
}

type PlanRepository interface {
	GetRewardLevels(ctx context.Context) ([]RewardLevel, error)
	GetRepurchaseLevels(ctx context.Context) ([]RepurchaseLevel, error)
	SeedPlan(ctx context.Context, plan Plan) error
}

type StatusLog struct {
	ID         string
	MemberID   string
	FromStatus Status
	ToStatus   Status
	PVConsumed decimal.Decimal
	PVBalance  decimal.Decimal
	CreatedAt  time.Time
}

type StatusLogger interface {
	LogStatusChange(ctx context.Context, entry StatusLog) error
}

// ChainLocker serializes walks over the member graph.
type ChainLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
