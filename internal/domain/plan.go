package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TierRule is one row of the tier strategy table driving progression and matching.
type TierRule struct {
	Tier Tier
	// PV consumed to advance into the tier
	Cost decimal.Decimal
	// commission per matched pair
	Rate decimal.Decimal
	// matched units of this tier feed the reward ladder
	FeedsReward bool
}

type Plan struct {
	Tiers                [TierCount]TierRule
	MaxCommissionsPerDay int64
	MentorL1Percent      decimal.Decimal
	MentorL2Percent      decimal.Decimal
	RewardLevels         []RewardLevel
	RepurchaseLevels     []RepurchaseLevel
	// sponsors scanned for repurchase mentor candidates
	RepurchaseMentorDepth int
	// direct recruits needed for repurchase groups 2 and 3
	RepurchaseMinDirects int
}

func DefaultPlan() Plan {
	return Plan{
		Tiers: [TierCount]TierRule{
			{Tier: TierAssociate, Cost: decimal.NewFromInt(1), Rate: decimal.NewFromInt(100)},
			{Tier: TierSilver, Cost: decimal.NewFromInt(2), Rate: decimal.NewFromInt(200)},
			{Tier: TierGold, Cost: decimal.NewFromInt(7), Rate: decimal.NewFromInt(700), FeedsReward: true},
			{Tier: TierDiamond, Cost: decimal.NewFromInt(10), Rate: decimal.NewFromInt(1000)},
		},
		MaxCommissionsPerDay:  25,
		MentorL1Percent:       decimal.NewFromInt(10),
		MentorL2Percent:       decimal.NewFromInt(40),
		RewardLevels:          DefaultRewardLevels(),
		RepurchaseLevels:      DefaultRepurchaseLevels(),
		RepurchaseMentorDepth: 3,
		RepurchaseMinDirects:  3,
	}
}

func (p Plan) Rule(t Tier) TierRule {
	return p.Tiers[t]
}

// RewardLevel is a milestone on cumulative gold-tier matched pairs.
type RewardLevel struct {
	Level  int
	Pairs  int64
	Amount decimal.Decimal
}

func DefaultRewardLevels() []RewardLevel {
	return []RewardLevel{
		{Level: 1, Pairs: 5, Amount: decimal.NewFromInt(500)},
		{Level: 2, Pairs: 10, Amount: decimal.NewFromInt(1500)},
		{Level: 3, Pairs: 25, Amount: decimal.NewFromInt(5000)},
		{Level: 4, Pairs: 50, Amount: decimal.NewFromInt(12000)},
		{Level: 5, Pairs: 100, Amount: decimal.NewFromInt(30000)},
		{Level: 6, Pairs: 250, Amount: decimal.NewFromInt(90000)},
		{Level: 7, Pairs: 500, Amount: decimal.NewFromInt(200000)},
	}
}

// NextReward returns the ladder entry following currentLevel.
func (p Plan) NextReward(currentLevel int) (RewardLevel, bool) {
	for _, l := range p.RewardLevels {
		if l.Level == currentLevel+1 {
			return l, true
		}
	}
	return RewardLevel{}, false
}

type EligibilityGroup int

const (
	GroupOpen EligibilityGroup = iota + 1
	GroupDirects
	GroupDirectsOfDirects
)

type RepurchaseLevel struct {
	Level             int
	RepurchasePercent decimal.Decimal
	MentorPercent     decimal.Decimal
	Group             EligibilityGroup
}

func DefaultRepurchaseLevels() []RepurchaseLevel {
	pct := decimal.NewFromFloat
	return []RepurchaseLevel{
		{Level: 1, RepurchasePercent: pct(5), MentorPercent: pct(10), Group: GroupOpen},
		{Level: 2, RepurchasePercent: pct(5), MentorPercent: pct(5), Group: GroupOpen},
		{Level: 3, RepurchasePercent: pct(10), MentorPercent: pct(5), Group: GroupDirects},
		{Level: 4, RepurchasePercent: pct(3), MentorPercent: decimal.Zero, Group: GroupDirects},
		{Level: 5, RepurchasePercent: pct(3), MentorPercent: decimal.Zero, Group: GroupDirects},
		{Level: 6, RepurchasePercent: pct(2), MentorPercent: decimal.Zero, Group: GroupDirectsOfDirects},
		{Level: 7, RepurchasePercent: pct(2), MentorPercent: decimal.Zero, Group: GroupDirectsOfDirects},
		{Level: 8, RepurchasePercent: pct(1), MentorPercent: decimal.Zero, Group: GroupDirectsOfDirects},
		{Level: 9, RepurchasePercent: pct(1), MentorPercent: decimal.Zero, Group: GroupDirectsOfDirects},
		{Level: 10, RepurchasePercent: pct(1), MentorPercent: decimal.Zero, Group: GroupDirectsOfDirects},
	}
}

// SortedRepurchaseLevels orders the table by level.
func (p Plan) SortedRepurchaseLevels() []RepurchaseLevel {
	levels := make([]RepurchaseLevel, len(p.RepurchaseLevels))
	copy(levels, p.RepurchaseLevels)
	sort.Slice(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })
	return levels
}

// MentorCandidate is a repurchase level earner queued for the mentor pass.
type MentorCandidate struct {
	TransactionID string
	MemberID      string
	Level         int
	Group         EligibilityGroup
	Commission    decimal.Decimal
	MentorPercent decimal.Decimal
}
