package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status int

const (
	StatusInactive Status = iota
	StatusAssociate
	StatusSilver
	StatusGold
	StatusDiamond
)

func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "INACTIVE"
	case StatusAssociate:
		return "ASSOCIATE"
	case StatusSilver:
		return "SILVER"
	case StatusGold:
		return "GOLD"
	case StatusDiamond:
		return "DIAMOND"
	}
	return "UNKNOWN"
}

func (s Status) IsActive() bool {
	return s > StatusInactive
}

// AtLeastGold is the mentor-eligibility band {GOLD, DIAMOND}.
func (s Status) AtLeastGold() bool {
	return s >= StatusGold
}

// Tier indexes the per-tier binary counters. Tier t is unlocked by Status t+1.
type Tier int

const (
	TierAssociate Tier = iota
	TierSilver
	TierGold
	TierDiamond
)

const TierCount = 4

func (t Tier) String() string {
	switch t {
	case TierAssociate:
		return "ASSOCIATE"
	case TierSilver:
		return "SILVER"
	case TierGold:
		return "GOLD"
	case TierDiamond:
		return "DIAMOND"
	}
	return "UNKNOWN"
}

func (t Tier) Valid() bool {
	return t >= TierAssociate && t <= TierDiamond
}

// Status returns the membership status reached by advancing into this tier.
func (t Tier) Status() Status {
	return Status(t + 1)
}

// HighestTier returns the top tier unlocked by the status and false for INACTIVE.
func (s Status) HighestTier() (Tier, bool) {
	if s <= StatusInactive {
		return 0, false
	}
	return Tier(s - 1), true
}

func ParseTier(v string) (Tier, error) {
	for t := TierAssociate; t <= TierDiamond; t++ {
		if t.String() == v {
			return t, nil
		}
	}
	return 0, ErrInvalidTier
}

type Position string

const (
	PositionLeft  Position = "LEFT"
	PositionRight Position = "RIGHT"
	PositionTop   Position = "TOP"
)

func (p Position) IsSide() bool {
	return p == PositionLeft || p == PositionRight
}

func (p Position) Opposite() Position {
	switch p {
	case PositionLeft:
		return PositionRight
	case PositionRight:
		return PositionLeft
	}
	return p
}

// TierCounter is the binary bookkeeping of one tier.
// Left/RightBalance are consumed by matching, the totals only grow.
type TierCounter struct {
	LeftBalance     int64
	RightBalance    int64
	TotalLeft       int64
	TotalRight      int64
	CommissionCount int64
	CommissionDate  time.Time
	TotalMatched    int64
}

func (c *TierCounter) Credit(side Position, units int64) {
	if side == PositionLeft {
		c.LeftBalance += units
		c.TotalLeft += units
		return
	}
	c.RightBalance += units
	c.TotalRight += units
}

func (c *TierCounter) MinBalance() int64 {
	if c.LeftBalance < c.RightBalance {
		return c.LeftBalance
	}
	return c.RightBalance
}

type Member struct {
	ID        string
	ParentID  string
	Position  Position
	SponsorID string
	// side of the sponsor's placement subtree this member sits in
	SponsorSide Position

	PVBalance decimal.Decimal
	Status    Status

	Binary [TierCount]TierCounter

	Is21Pass           bool
	IsDirectMatch      bool
	IsMatchingMentorL1 bool
	IsMatchingMentorL2 bool

	GoldRewardBalance int64
	GoldRewardLevel   int

	Percentage decimal.Decimal

	Wallets Wallets
	Income  Income

	Loan Loan

	LeftCount        int64
	RightCount       int64
	LeftDirectCount  int64
	RightDirectCount int64

	SecurityDeposit decimal.Decimal
	SDRPercentage   decimal.Decimal

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Wallets struct {
	Matching   decimal.Decimal
	Hold       decimal.Decimal
	Upgrade    decimal.Decimal
	Franchise  decimal.Decimal
	Repurchase decimal.Decimal
}

// Income holds lifetime gross earnings per commission category.
type Income struct {
	Matching         decimal.Decimal
	Mentor           decimal.Decimal
	Reward           decimal.Decimal
	Repurchase       decimal.Decimal
	RepurchaseMentor decimal.Decimal
	SDR              decimal.Decimal
}

type Loan struct {
	TotalGiven     decimal.Decimal
	TotalPending   decimal.Decimal
	TotalCollected decimal.Decimal
	Percentage     decimal.Decimal
}

func (m *Member) IsRoot() bool {
	return m.Position == PositionTop || m.ParentID == ""
}

// Scale applies the member's payout share (0-100) to an amount.
func (m *Member) Scale(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(m.Percentage).Div(decimal.NewFromInt(100))
}

func (m *Member) LeftTotal() int64 {
	return m.LeftCount + m.LeftDirectCount
}

func (m *Member) RightTotal() int64 {
	return m.RightCount + m.RightDirectCount
}

func (m *Member) Wallet(w WalletType) decimal.Decimal {
	switch w {
	case WalletMatching:
		return m.Wallets.Matching
	case WalletHold:
		return m.Wallets.Hold
	case WalletUpgrade:
		return m.Wallets.Upgrade
	case WalletFranchise:
		return m.Wallets.Franchise
	case WalletRepurchase:
		return m.Wallets.Repurchase
	}
	return decimal.Zero
}

func (m *Member) AddWallet(w WalletType, delta decimal.Decimal) {
	switch w {
	case WalletMatching:
		m.Wallets.Matching = m.Wallets.Matching.Add(delta)
	case WalletHold:
		m.Wallets.Hold = m.Wallets.Hold.Add(delta)
	case WalletUpgrade:
		m.Wallets.Upgrade = m.Wallets.Upgrade.Add(delta)
	case WalletFranchise:
		m.Wallets.Franchise = m.Wallets.Franchise.Add(delta)
	case WalletRepurchase:
		m.Wallets.Repurchase = m.Wallets.Repurchase.Add(delta)
	}
}

func (m *Member) AddIncome(c Category, delta decimal.Decimal) {
	switch c {
	case CategoryMatching:
		m.Income.Matching = m.Income.Matching.Add(delta)
	case CategoryMentor:
		m.Income.Mentor = m.Income.Mentor.Add(delta)
	case CategoryReward:
		m.Income.Reward = m.Income.Reward.Add(delta)
	case CategoryRepurchase:
		m.Income.Repurchase = m.Income.Repurchase.Add(delta)
	case CategoryRepurchaseMentor:
		m.Income.RepurchaseMentor = m.Income.RepurchaseMentor.Add(delta)
	case CategorySDR:
		m.Income.SDR = m.Income.SDR.Add(delta)
	}
}

// Clone returns a deep copy; Member has no reference fields besides values.
func (m *Member) Clone() *Member {
	c := *m
	return &c
}
