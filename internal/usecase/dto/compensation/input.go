package compensationdto

import (
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

type ApplyVolumeInput struct {
	// idempotency key, optional
	EventID  string
	MemberID string
	Delta    decimal.Decimal
}

type PowerScope string

const (
	ScopeSelf           PowerScope = "SELF"
	ScopeSelfPlusUpline PowerScope = "SELF_PLUS_UPLINE"
)

type AddTierPowerInput struct {
	EventID  string
	MemberID string
	Tier     domain.Tier
	Side     domain.Position
	Count    int64
	Scope    PowerScope
}

type RepurchaseInput struct {
	TransactionID string
	PurchaserID   string
	Value         decimal.Decimal
}

type PlaceMemberInput struct {
	// generated when empty
	MemberID  string
	ParentID  string
	Side      domain.Position
	SponsorID string
	// payout share, 100 when zero
	Percentage     decimal.Decimal
	LoanAmount     decimal.Decimal
	LoanPercentage decimal.Decimal
	// franchise security deposit returned monthly at SDRPercentage
	SecurityDeposit decimal.Decimal
	SDRPercentage   decimal.Decimal
}

// CreditInput pays an income computed outside the engine, such as the monthly
// security deposit return. The amount still passes through loan recovery.
type CreditInput struct {
	EventID  string
	MemberID string
	Category domain.Category
	Amount   decimal.Decimal
	SourceID string
	Note     string
}
