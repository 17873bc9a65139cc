package compensation

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

// matchOutcome is what resolving one ancestor produced.
type matchOutcome struct {
	qualified bool
	matched   [domain.TierCount]int64
	paid      [domain.TierCount]int64
	capped    [domain.TierCount]bool

	// scaled matching amount before loan recovery, base of the mentor overrides
	gross       decimal.Decimal
	rewardLevel int
	rewardFired bool
}

// runMatchingWalk resolves matching on the start member and then on each placement
// ancestor up to the root. limit > 0 caps the number of members visited.
func (uc *DefaultCompensationUsecase) runMatchingWalk(ctx context.Context, startID string, limit int) error {
	start, err := uc.MemberRepo.GetMemberByID(ctx, startID)
	if err != nil {
		return err
	}
	links, err := uc.resolveAncestors(ctx, start)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(links)+1)
	ids = append(ids, start.ID)
	for _, link := range links {
		ids = append(ids, link.MemberID)
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	for i, id := range ids {
		if err := uc.matchMember(ctx, id); err != nil {
			return partialCascade("binary matching", i, err)
		}
	}
	return nil
}

func (uc *DefaultCompensationUsecase) matchMember(ctx context.Context, memberID string) error {
	var outcome matchOutcome
	member, err := uc.updateMember(ctx, memberID, "binary_matching", func(m *domain.Member, c *change) error {
		outcome = uc.resolveMatching(m, c)
		if !outcome.qualified && outcome.totalMatched() == 0 {
			return errSkipSave
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.recordMatching(member, outcome)

	if outcome.totalMatched() > 0 {
		// override faults never abort the matching walk
		uc.propagateMentors(ctx, member, outcome.gross)
	}
	return nil
}

// resolveMatching applies the 2:1 gate and the per-tier matching to an ancestor.
func (uc *DefaultCompensationUsecase) resolveMatching(m *domain.Member, c *change) matchOutcome {
	var out matchOutcome
	out.gross = decimal.Zero

	if !m.Is21Pass {
		if !qualifyTwoOne(m) {
			return out
		}
		out.qualified = true
		out.matched[domain.TierAssociate]++
		if m.IsDirectMatch && m.Status.IsActive() {
			uc.payTier(m, c, domain.TierAssociate, 1, &out)
		}
	}

	top, active := m.Status.HighestTier()
	if !active {
		// balances drain while inactive, nothing is paid
		units := drain(&m.Binary[domain.TierAssociate])
		out.matched[domain.TierAssociate] += units
		return out
	}

	for t := domain.TierAssociate; t <= top; t++ {
		units := drain(&m.Binary[t])
		if units == 0 {
			continue
		}
		out.matched[t] += units
		if !m.IsDirectMatch {
			continue
		}
		uc.payTier(m, c, t, units, &out)
	}
	return out
}

// qualifyTwoOne consumes 2 associate units from the stronger side and 1 from the
// weaker side once one side totals at least 2 members and the other at least 1.
// Qualification waits until the associate balances can cover the consumption.
func qualifyTwoOne(m *domain.Member) bool {
	left, right := m.LeftTotal(), m.RightTotal()
	counter := &m.Binary[domain.TierAssociate]

	var orientations []domain.Position
	switch {
	case left >= 2 && right >= 2:
		if left >= right {
			orientations = []domain.Position{domain.PositionLeft, domain.PositionRight}
		} else {
			orientations = []domain.Position{domain.PositionRight, domain.PositionLeft}
		}
	case left >= 2 && right >= 1:
		orientations = []domain.Position{domain.PositionLeft}
	case right >= 2 && left >= 1:
		orientations = []domain.Position{domain.PositionRight}
	default:
		return false
	}

	for _, strong := range orientations {
		if strong == domain.PositionLeft && counter.LeftBalance >= 2 && counter.RightBalance >= 1 {
			counter.LeftBalance -= 2
			counter.RightBalance--
		} else if strong == domain.PositionRight && counter.RightBalance >= 2 && counter.LeftBalance >= 1 {
			counter.RightBalance -= 2
			counter.LeftBalance--
		} else {
			continue
		}
		counter.TotalMatched++
		m.Is21Pass = true
		return true
	}
	return false
}

// drain consumes the matched minimum from both sides and returns it.
func drain(counter *domain.TierCounter) int64 {
	units := counter.MinBalance()
	if units <= 0 {
		return 0
	}
	counter.LeftBalance -= units
	counter.RightBalance -= units
	counter.TotalMatched += units
	return units
}

// payTier credits matched units of a tier within the daily cap.
func (uc *DefaultCompensationUsecase) payTier(m *domain.Member, c *change, t domain.Tier, units int64, out *matchOutcome) {
	paid := uc.consumeDailyCap(&m.Binary[t], units)
	if paid < units {
		out.capped[t] = true
	}
	if paid == 0 {
		return
	}
	out.paid[t] += paid

	rule := uc.Plan.Rule(t)
	gross := m.Scale(rule.Rate.Mul(decimal.NewFromInt(paid))).Round(2)
	uc.credit(m, c, domain.CategoryMatching, gross, m.ID,
		fmt.Sprintf("%s matching bonus for %d pairs", t, paid))
	out.gross = out.gross.Add(gross)

	if rule.FeedsReward {
		if level, fired := uc.advanceReward(m, c, paid); fired {
			out.rewardFired = true
			out.rewardLevel = level
		}
	}
}

// consumeDailyCap returns how many of units may be paid today and books them.
// The count restarts on the first payment of a new calendar day.
func (uc *DefaultCompensationUsecase) consumeDailyCap(counter *domain.TierCounter, units int64) int64 {
	today := uc.today()
	if !uc.sameDay(counter.CommissionDate, today) {
		counter.CommissionCount = 0
		counter.CommissionDate = today
	}
	avail := uc.Plan.MaxCommissionsPerDay - counter.CommissionCount
	if avail <= 0 {
		return 0
	}
	paid := min(units, avail)
	counter.CommissionCount += paid
	return paid
}

func (o matchOutcome) totalMatched() int64 {
	var total int64
	for _, n := range o.matched {
		total += n
	}
	return total
}

func (uc *DefaultCompensationUsecase) recordMatching(m *domain.Member, out matchOutcome) {
	if out.qualified {
		uc.Logger.Info("member passed 2:1 qualification", "member_id", m.ID)
	}
	if out.rewardFired {
		uc.Logger.Info("gold reward level reached", "member_id", m.ID, "level", out.rewardLevel)
	}
	if uc.Metrics == nil {
		return
	}
	for t := domain.TierAssociate; t <= domain.TierDiamond; t++ {
		if out.matched[t] > 0 {
			uc.Metrics.RecordMatchedPairs(t.String(), out.matched[t])
		}
		if out.capped[t] {
			uc.Metrics.RecordDailyCapReached(t.String())
		}
	}
	if out.rewardFired {
		uc.Metrics.RecordRewardLevel(fmt.Sprint(out.rewardLevel))
	}
}
