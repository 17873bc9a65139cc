package compensation

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	compensationdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/compensation"
)

// propagatePower credits units of the tier to every placement ancestor of origin on
// the side origin sits under. maxSteps > 0 limits the number of ancestors.
// This is the only upward writer of tier balances.
func (uc *DefaultCompensationUsecase) propagatePower(ctx context.Context, origin *domain.Member, tier domain.Tier, units int64, maxSteps int) error {
	links, err := uc.resolveAncestors(ctx, origin)
	if err != nil {
		return err
	}
	if maxSteps > 0 && len(links) > maxSteps {
		links = links[:maxSteps]
	}

	for i, link := range links {
		link := link
		_, err := uc.updateMember(ctx, link.MemberID, "power_propagation", func(m *domain.Member, c *change) error {
			m.Binary[tier].Credit(link.Side, units)
			return nil
		})
		if err != nil {
			return partialCascade("power propagation", i, err)
		}
	}
	return nil
}

// AddTierPower injects tier units directly on a member's side and propagates them
// upward. SELF stops after one ancestor step: the member and its parent are
// credited and matched. SELF_PLUS_UPLINE walks to the root.
func (uc *DefaultCompensationUsecase) AddTierPower(ctx context.Context, input *compensationdto.AddTierPowerInput) error {
	start := time.Now()
	defer uc.observe("add_tier_power", start)

	if err := validatePowerInput(input); err != nil {
		return err
	}

	err := uc.withChainLock(ctx, func() error {
		processed, err := uc.alreadyProcessed(ctx, input.EventID)
		if err != nil || processed {
			return err
		}

		member, err := uc.MemberRepo.GetMemberByID(ctx, input.MemberID)
		if err != nil {
			return err
		}

		// resolved up front so a broken chain aborts before any write
		links, err := uc.resolveAncestors(ctx, member)
		if err != nil {
			return err
		}

		if _, err := uc.updateMember(ctx, member.ID, "add_tier_power", func(m *domain.Member, c *change) error {
			m.Binary[input.Tier].Credit(input.Side, input.Count)
			return nil
		}); err != nil {
			return err
		}

		steps := len(links)
		if input.Scope == compensationdto.ScopeSelf && steps > 1 {
			steps = 1
		}
		if steps > 0 {
			if err := uc.propagatePower(ctx, member, input.Tier, input.Count, steps); err != nil {
				return partialCascade("tier power", 1, err)
			}
		}

		if err := uc.runMatchingWalk(ctx, member.ID, steps+1); err != nil {
			return partialCascade("tier power matching", 1, err)
		}
		uc.markProcessed(ctx, input.EventID, "tier_power")
		return nil
	})
	if err != nil {
		uc.recordError("add_tier_power")
	}
	return err
}

func validatePowerInput(input *compensationdto.AddTierPowerInput) error {
	if input == nil || input.MemberID == "" {
		return domain.ErrInvalidMember
	}
	if !input.Tier.Valid() {
		return domain.ErrInvalidTier
	}
	if !input.Side.IsSide() {
		return domain.ErrInvalidSide
	}
	if input.Count <= 0 {
		return domain.ErrInvalidAmount
	}
	if input.Scope != compensationdto.ScopeSelf && input.Scope != compensationdto.ScopeSelfPlusUpline {
		return domain.ErrInvalidScope
	}
	return nil
}
