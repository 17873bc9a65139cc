package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletType string

const (
	WalletMatching   WalletType = "MATCHING"
	WalletHold       WalletType = "HOLD"
	WalletUpgrade    WalletType = "UPGRADE"
	WalletFranchise  WalletType = "FRANCHISE"
	WalletRepurchase WalletType = "REPURCHASE"
)

type Direction string

const (
	DirectionCredit Direction = "CREDIT"
	DirectionDebit  Direction = "DEBIT"
)

type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "PENDING"
	TransactionApproved TransactionStatus = "APPROVED"
)

// Category tags a credit path. Each category owns the wallet it credits and is the
// unit the loan interceptor accounts recoveries against.
type Category string

const (
	CategoryMatching         Category = "MATCHING"
	CategoryMentor           Category = "MENTOR"
	CategoryReward           Category = "REWARD"
	CategoryRepurchase       Category = "REPURCHASE"
	CategoryRepurchaseMentor Category = "REPURCHASE_MENTOR"
	CategorySDR              Category = "SDR"
	CategoryUpgrade          Category = "UPGRADE"
	CategoryLoanRecovery     Category = "LOAN_RECOVERY"
	CategoryUpgradeTransfer  Category = "UPGRADE_TRANSFER"
	CategoryPayout           Category = "PAYOUT"
	// batch category of franchise wallet payouts
	CategoryFranchise Category = "FRANCHISE"
)

var categoryWallets = map[Category]WalletType{
	CategoryMatching:         WalletMatching,
	CategoryMentor:           WalletHold,
	CategoryReward:           WalletHold,
	CategoryRepurchase:       WalletRepurchase,
	CategoryRepurchaseMentor: WalletRepurchase,
	CategorySDR:              WalletFranchise,
	CategoryUpgrade:          WalletUpgrade,
}

// WalletFor returns the wallet a commission category is credited to.
func WalletFor(c Category) (WalletType, bool) {
	w, ok := categoryWallets[c]
	return w, ok
}

type WalletTransaction struct {
	ID        string
	MemberID  string
	Amount    decimal.Decimal
	Direction Direction
	Wallet    WalletType
	Category  Category
	Status    TransactionStatus
	Note      string
	CreatedAt time.Time
}
