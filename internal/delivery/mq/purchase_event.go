package mq

import (
	"github.com/shopspring/decimal"
)

type PurchaseEventType string

const (
	EventPurchase   PurchaseEventType = "PURCHASE"
	EventRepurchase PurchaseEventType = "REPURCHASE"
	EventPower      PurchaseEventType = "POWER"
	EventPlacement  PurchaseEventType = "PLACEMENT"
	EventUpgrade    PurchaseEventType = "UPGRADE_CREDIT"
)

// PurchaseEvent is the message on the purchase-events topic. Fields apply per type:
// PURCHASE uses pv, REPURCHASE and UPGRADE_CREDIT use value, POWER uses
// tier/side/count/scope, PLACEMENT uses parent_id/side/sponsor_id and the member terms.
type PurchaseEvent struct {
	EventID  string            `json:"event_id"`
	Type     PurchaseEventType `json:"type"`
	MemberID string            `json:"member_id"`

	PV    decimal.Decimal `json:"pv"`
	Value decimal.Decimal `json:"value"`

	Tier  string `json:"tier,omitempty"`
	Side  string `json:"side,omitempty"`
	Count int64  `json:"count,omitempty"`
	Scope string `json:"scope,omitempty"`

	ParentID        string          `json:"parent_id,omitempty"`
	SponsorID       string          `json:"sponsor_id,omitempty"`
	Percentage      decimal.Decimal `json:"percentage"`
	LoanAmount      decimal.Decimal `json:"loan_amount"`
	LoanPercentage  decimal.Decimal `json:"loan_percentage"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	SDRPercentage   decimal.Decimal `json:"sdr_percentage"`
}
