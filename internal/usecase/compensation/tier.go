package compensation

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	compensationdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/compensation"
	"github.com/shopspring/decimal"
)

// tierUpgrade is one status advance performed by progression.
type tierUpgrade struct {
	tier     domain.Tier
	from     domain.Status
	consumed decimal.Decimal
	balance  decimal.Decimal
}

// ApplyVolume applies a PV delta and runs the full cascade: tier progression,
// power propagation per upgraded tier, direct-match recheck and the matching walk.
func (uc *DefaultCompensationUsecase) ApplyVolume(ctx context.Context, input *compensationdto.ApplyVolumeInput) (*domain.Member, error) {
	start := time.Now()
	defer uc.observe("apply_volume", start)

	if input == nil || input.MemberID == "" {
		return nil, domain.ErrInvalidMember
	}

	var result *domain.Member
	err := uc.withChainLock(ctx, func() error {
		processed, err := uc.alreadyProcessed(ctx, input.EventID)
		if err != nil {
			return err
		}
		if processed {
			uc.Logger.Info("volume event already applied", "event_id", input.EventID, "member_id", input.MemberID)
			result, err = uc.MemberRepo.GetMemberByID(ctx, input.MemberID)
			return err
		}

		member, err := uc.applyVolume(ctx, input.MemberID, input.Delta)
		if err != nil {
			return err
		}
		uc.markProcessed(ctx, input.EventID, "volume")
		result = member
		return nil
	})
	if err != nil {
		uc.recordError("apply_volume")
		return nil, err
	}
	return result, nil
}

func (uc *DefaultCompensationUsecase) applyVolume(ctx context.Context, memberID string, delta decimal.Decimal) (*domain.Member, error) {
	var upgrades []tierUpgrade
	member, err := uc.updateMember(ctx, memberID, "tier_progression", func(m *domain.Member, c *change) error {
		balance := m.PVBalance.Add(delta)
		if balance.IsNegative() {
			return fmt.Errorf("pv correction of %s exceeds balance %s: %w", delta, m.PVBalance, domain.ErrInvalidAmount)
		}
		m.PVBalance = balance
		upgrades = uc.progress(m, c)
		if delta.IsZero() && len(upgrades) == 0 {
			return errSkipSave
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	applied := 1
	for _, up := range upgrades {
		uc.logUpgrade(ctx, member, up)
		if err := uc.propagatePower(ctx, member, up.tier, 1, 0); err != nil {
			return nil, partialCascade("power propagation", applied, err)
		}
		applied++
	}

	if err := uc.recheckDirectMatch(ctx, member.ID); err != nil {
		return nil, partialCascade("direct match recheck", applied, err)
	}
	if member.SponsorID != "" && len(upgrades) > 0 && upgrades[0].from == domain.StatusInactive {
		// activation may complete the sponsor's direct pair
		if err := uc.recheckDirectMatch(ctx, member.SponsorID); err != nil {
			return nil, partialCascade("direct match recheck", applied, err)
		}
	}

	if err := uc.runMatchingWalk(ctx, member.ID, 0); err != nil {
		return nil, partialCascade("binary matching", applied, err)
	}

	return uc.MemberRepo.GetMemberByID(ctx, member.ID)
}

// progress advances the status one tier at a time while the PV balance covers
// the next tier's cost. DIAMOND is terminal.
func (uc *DefaultCompensationUsecase) progress(m *domain.Member, c *change) []tierUpgrade {
	var upgrades []tierUpgrade
	for m.Status < domain.StatusDiamond {
		next := domain.Tier(m.Status)
		rule := uc.Plan.Rule(next)
		if m.PVBalance.LessThan(rule.Cost) {
			break
		}
		from := m.Status
		m.PVBalance = m.PVBalance.Sub(rule.Cost)
		m.Status = next.Status()
		upgrades = append(upgrades, tierUpgrade{tier: next, from: from, consumed: rule.Cost, balance: m.PVBalance})

		if m.Status == domain.StatusDiamond {
			uc.sweepUpgradeWallet(m, c)
		}
	}
	return upgrades
}

// sweepUpgradeWallet moves the whole upgrade wallet into the matching wallet once,
// on reaching DIAMOND.
func (uc *DefaultCompensationUsecase) sweepUpgradeWallet(m *domain.Member, c *change) {
	amount := m.Wallets.Upgrade
	if !amount.IsPositive() {
		return
	}
	m.Wallets.Upgrade = decimal.Zero
	m.Wallets.Matching = m.Wallets.Matching.Add(amount)
	c.entries = append(c.entries,
		uc.newEntry(m.ID, amount, domain.DirectionDebit, domain.WalletUpgrade, domain.CategoryUpgradeTransfer, "upgrade wallet released on DIAMOND"),
		uc.newEntry(m.ID, amount, domain.DirectionCredit, domain.WalletMatching, domain.CategoryUpgradeTransfer, "upgrade wallet released on DIAMOND"),
	)
}

func (uc *DefaultCompensationUsecase) logUpgrade(ctx context.Context, m *domain.Member, up tierUpgrade) {
	uc.Logger.Info("member status upgraded",
		"member_id", m.ID,
		"from", up.from.String(),
		"to", up.tier.Status().String(),
		"pv_consumed", up.consumed.String(),
	)
	if uc.Metrics != nil {
		uc.Metrics.RecordTierUpgrade(up.tier.Status().String())
	}
	if uc.StatusLogger == nil {
		return
	}
	entry := domain.StatusLog{
		MemberID:   m.ID,
		FromStatus: up.from,
		ToStatus:   up.tier.Status(),
		PVConsumed: up.consumed,
		PVBalance:  up.balance,
		CreatedAt:  uc.now(),
	}
	if err := uc.StatusLogger.LogStatusChange(ctx, entry); err != nil {
		uc.Logger.Error("failed to write status audit log", "member_id", m.ID, "error", err)
	}
}

// recheckDirectMatch sets IsDirectMatch once the member has a direct recruit on
// each side. The flag is never cleared.
func (uc *DefaultCompensationUsecase) recheckDirectMatch(ctx context.Context, memberID string) error {
	recruits, err := uc.MemberRepo.GetDirectRecruits(ctx, memberID)
	if err != nil {
		return fmt.Errorf("load direct recruits of %s: %w", memberID, err)
	}
	if !domain.HasDirectMatch(recruits) {
		return nil
	}
	_, err = uc.updateMember(ctx, memberID, "direct_match", func(m *domain.Member, c *change) error {
		if m.IsDirectMatch {
			return errSkipSave
		}
		m.IsDirectMatch = true
		return nil
	})
	return err
}
