package response

import (
	"time"

	"github.com/shopspring/decimal"
)

type TierBalanceResponse struct {
	Tier            string     `json:"tier"`
	LeftBalance     int64      `json:"left_balance"`
	RightBalance    int64      `json:"right_balance"`
	TotalLeft       int64      `json:"total_left"`
	TotalRight      int64      `json:"total_right"`
	TotalMatched    int64      `json:"total_matched"`
	CommissionCount int64      `json:"commission_count"`
	CommissionDate  *time.Time `json:"commission_date,omitempty"`
}

type WalletsResponse struct {
	Matching   decimal.Decimal `json:"matching"`
	Hold       decimal.Decimal `json:"hold"`
	Upgrade    decimal.Decimal `json:"upgrade"`
	Franchise  decimal.Decimal `json:"franchise"`
	Repurchase decimal.Decimal `json:"repurchase"`
}

type LoanResponse struct {
	TotalGiven     decimal.Decimal `json:"total_given"`
	TotalPending   decimal.Decimal `json:"total_pending"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	Percentage     decimal.Decimal `json:"percentage"`
}

type MemberResponse struct {
	ID                 string                `json:"id"`
	ParentID           string                `json:"parent_id,omitempty"`
	Position           string                `json:"position"`
	SponsorID          string                `json:"sponsor_id,omitempty"`
	Status             string                `json:"status"`
	PVBalance          decimal.Decimal       `json:"pv_balance"`
	Percentage         decimal.Decimal       `json:"percentage"`
	Is21Pass           bool                  `json:"is_2_1_pass"`
	IsDirectMatch      bool                  `json:"is_direct_match"`
	IsMatchingMentorL1 bool                  `json:"is_matching_mentor_l1"`
	IsMatchingMentorL2 bool                  `json:"is_matching_mentor_l2"`
	GoldRewardBalance  int64                 `json:"gold_reward_balance"`
	GoldRewardLevel    int                   `json:"gold_reward_level"`
	Binary             []TierBalanceResponse `json:"binary"`
	Wallets            WalletsResponse       `json:"wallets"`
	Loan               LoanResponse          `json:"loan"`
	LeftCount          int64                 `json:"left_count"`
	RightCount         int64                 `json:"right_count"`
	LeftDirectCount    int64                 `json:"left_direct_count"`
	RightDirectCount   int64                 `json:"right_direct_count"`
	Version            int64                 `json:"version"`
}

type TransactionResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Direction string          `json:"direction"`
	Wallet    string          `json:"wallet"`
	Category  string          `json:"category"`
	Status    string          `json:"status"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type BatchResponse struct {
	ID             string          `json:"id"`
	Reference      string          `json:"reference"`
	MemberID       string          `json:"member_id"`
	Category       string          `json:"category"`
	Period         string          `json:"period"`
	Gross          decimal.Decimal `json:"gross"`
	Tax            decimal.Decimal `json:"tax"`
	PlatformCharge decimal.Decimal `json:"platform_charge"`
	Net            decimal.Decimal `json:"net"`
	IsPaid         bool            `json:"is_paid"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
