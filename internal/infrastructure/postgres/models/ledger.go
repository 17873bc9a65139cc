package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletTransactionModel struct {
	ID        string          `gorm:"primaryKey"`
	MemberID  string          `gorm:"not null;index:idx_wallet_tx_member_created"`
	Amount    decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Direction string          `gorm:"not null"`
	Wallet    string          `gorm:"not null"`
	Category  string          `gorm:"not null"`
	Status    string          `gorm:"not null"`
	Note      string
	CreatedAt time.Time `gorm:"index:idx_wallet_tx_member_created"`
}

func (WalletTransactionModel) TableName() string {
	return "wallet_transactions"
}

type PayoutBatchModel struct {
	ID             string          `gorm:"primaryKey"`
	Reference      string          `gorm:"uniqueIndex;not null"`
	MemberID       string          `gorm:"not null;uniqueIndex:idx_payout_batch_period"`
	Category       string          `gorm:"not null;uniqueIndex:idx_payout_batch_period"`
	Period         string          `gorm:"not null;uniqueIndex:idx_payout_batch_period"`
	Gross          decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Tax            decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	PlatformCharge decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Net            decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	IsPaid         bool            `gorm:"not null;default:false"`
	PaidAt         *time.Time
	CreatedAt      time.Time
}

func (PayoutBatchModel) TableName() string {
	return "payout_batches"
}

// ProcessedEventModel is the idempotency log of applied events.
type ProcessedEventModel struct {
	Key         string    `gorm:"primaryKey"`
	Kind        string    `gorm:"not null"`
	ProcessedAt time.Time `gorm:"not null"`
}

func (ProcessedEventModel) TableName() string {
	return "processed_events"
}

type StatusLogModel struct {
	ID         string          `gorm:"primaryKey"`
	MemberID   string          `gorm:"not null;index"`
	FromStatus int             `gorm:"not null"`
	ToStatus   int             `gorm:"not null"`
	PVConsumed decimal.Decimal `gorm:"column:pv_consumed;type:numeric(20,4)"`
	PVBalance  decimal.Decimal `gorm:"column:pv_balance;type:numeric(20,4)"`
	CreatedAt  time.Time
}

func (StatusLogModel) TableName() string {
	return "status_logs"
}

type RewardLevelModel struct {
	Level  int             `gorm:"primaryKey"`
	Pairs  int64           `gorm:"not null"`
	Amount decimal.Decimal `gorm:"type:numeric(20,2);not null"`
}

func (RewardLevelModel) TableName() string {
	return "reward_levels"
}

type RepurchaseLevelModel struct {
	Level             int             `gorm:"primaryKey"`
	RepurchasePercent decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	MentorPercent     decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	EligibilityGroup  int             `gorm:"not null"`
}

func (RepurchaseLevelModel) TableName() string {
	return "repurchase_levels"
}
