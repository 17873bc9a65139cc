package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberModel stores the four tier counters flat, one column group per tier.
type MemberModel struct {
	ID          string `gorm:"primaryKey"`
	ParentID    string `gorm:"index:idx_members_parent_position"`
	Position    string `gorm:"index:idx_members_parent_position"`
	SponsorID   string `gorm:"index"`
	SponsorSide string

	PVBalance decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	Status    int             `gorm:"not null;default:0"`

	AssociateLeftBalance     int64
	AssociateRightBalance    int64
	AssociateTotalLeft       int64
	AssociateTotalRight      int64
	AssociateCommissionCount int64
	AssociateCommissionDate  *time.Time
	AssociateTotalMatched    int64

	SilverLeftBalance     int64
	SilverRightBalance    int64
	SilverTotalLeft       int64
	SilverTotalRight      int64
	SilverCommissionCount int64
	SilverCommissionDate  *time.Time
	SilverTotalMatched    int64

	GoldLeftBalance     int64
	GoldRightBalance    int64
	GoldTotalLeft       int64
	GoldTotalRight      int64
	GoldCommissionCount int64
	GoldCommissionDate  *time.Time
	GoldTotalMatched    int64

	DiamondLeftBalance     int64
	DiamondRightBalance    int64
	DiamondTotalLeft       int64
	DiamondTotalRight      int64
	DiamondCommissionCount int64
	DiamondCommissionDate  *time.Time
	DiamondTotalMatched    int64

	Is21Pass           bool `gorm:"column:is_2_1_pass"`
	IsDirectMatch      bool
	IsMatchingMentorL1 bool `gorm:"column:is_matching_mentor_l1"`
	IsMatchingMentorL2 bool `gorm:"column:is_matching_mentor_l2"`

	GoldRewardBalance int64
	GoldRewardLevel   int

	Percentage decimal.Decimal `gorm:"type:numeric(5,2);not null;default:100"`

	MatchingWallet   decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0;index"`
	HoldWallet       decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	UpgradeWallet    decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	FranchiseWallet  decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	RepurchaseWallet decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`

	MatchingIncome         decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	MentorIncome           decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	RewardIncome           decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	RepurchaseIncome       decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	RepurchaseMentorIncome decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	SDRIncome              decimal.Decimal `gorm:"column:sdr_income;type:numeric(20,2);not null;default:0"`

	TotalLoanGiven     decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	TotalLoanPending   decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	TotalLoanCollected decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	LoanPercentage     decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`

	LeftCount        int64
	RightCount       int64
	LeftDirectCount  int64
	RightDirectCount int64

	SecurityDeposit decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	SDRPercentage   decimal.Decimal `gorm:"column:sdr_percentage;type:numeric(5,2);not null;default:0"`

	Version   int64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MemberModel) TableName() string {
	return "members"
}
