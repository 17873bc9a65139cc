package compensation

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

// propagateMentors pays the L1 override to the earner's sponsor and the L2 override
// to the grand-sponsor. It runs on every matching event, so eligibility flags are
// granted even when the gross is zero. Failures are logged and counted only.
func (uc *DefaultCompensationUsecase) propagateMentors(ctx context.Context, earner *domain.Member, gross decimal.Decimal) {
	if earner.SponsorID == "" {
		return
	}

	sponsor, err := uc.payMentorL1(ctx, earner, gross)
	if err != nil {
		uc.recordError("mentor_l1")
		uc.Logger.Error("mentor L1 override failed", "earner_id", earner.ID, "sponsor_id", earner.SponsorID, "error", err)
		return
	}
	if sponsor.SponsorID == "" {
		return
	}

	if err := uc.payMentorL2(ctx, earner, sponsor.SponsorID, gross); err != nil {
		uc.recordError("mentor_l2")
		uc.Logger.Error("mentor L2 override failed", "earner_id", earner.ID, "grand_sponsor_id", sponsor.SponsorID, "error", err)
	}
}

func (uc *DefaultCompensationUsecase) payMentorL1(ctx context.Context, earner *domain.Member, gross decimal.Decimal) (*domain.Member, error) {
	var granted bool
	sponsor, err := uc.updateMember(ctx, earner.SponsorID, "mentor_l1", func(m *domain.Member, c *change) error {
		granted = false
		eligibility := domain.EvaluateMentorL1(m)
		amount := m.Scale(gross.Mul(uc.Plan.MentorL1Percent).Div(hundred))
		if !eligibility.Pays() || (eligibility == domain.AlreadyEligible && !amount.IsPositive()) {
			return errSkipSave
		}
		if eligibility == domain.Eligible {
			m.IsMatchingMentorL1 = true
			granted = true
		}
		uc.credit(m, c, domain.CategoryMentor, amount, earner.ID,
			fmt.Sprintf("L1 mentor override from %s", earner.ID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if granted {
		uc.recordMentorFlag(sponsor.ID, "L1")
	}
	return sponsor, nil
}

func (uc *DefaultCompensationUsecase) payMentorL2(ctx context.Context, earner *domain.Member, grandSponsorID string, gross decimal.Decimal) error {
	grandSponsor, err := uc.MemberRepo.GetMemberByID(ctx, grandSponsorID)
	if err != nil {
		return err
	}

	var legs []domain.RecruitLeg
	if !grandSponsor.IsMatchingMentorL2 {
		if legs, err = uc.loadRecruitLegs(ctx, grandSponsorID); err != nil {
			return err
		}
	}

	var granted bool
	_, err = uc.updateMember(ctx, grandSponsorID, "mentor_l2", func(m *domain.Member, c *change) error {
		granted = false
		eligibility := domain.EvaluateMentorL2(m, legs)
		amount := m.Scale(gross.Mul(uc.Plan.MentorL2Percent).Div(hundred))
		if !eligibility.Pays() || (eligibility == domain.AlreadyEligible && !amount.IsPositive()) {
			return errSkipSave
		}
		if eligibility == domain.Eligible {
			m.IsMatchingMentorL2 = true
			granted = true
		}
		uc.credit(m, c, domain.CategoryMentor, amount, earner.ID,
			fmt.Sprintf("L2 mentor override from %s", earner.ID))
		return nil
	})
	if err != nil {
		return err
	}
	if granted {
		uc.recordMentorFlag(grandSponsorID, "L2")
	}
	return nil
}

// loadRecruitLegs loads the GOLD+ direct recruits of a member with their own
// direct recruits. Lower recruits can never qualify a leg.
func (uc *DefaultCompensationUsecase) loadRecruitLegs(ctx context.Context, memberID string) ([]domain.RecruitLeg, error) {
	recruits, err := uc.MemberRepo.GetDirectRecruits(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("load direct recruits of %s: %w", memberID, err)
	}
	legs := make([]domain.RecruitLeg, 0, len(recruits))
	for _, r := range recruits {
		if !r.Status.AtLeastGold() {
			continue
		}
		children, err := uc.MemberRepo.GetDirectRecruits(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("load direct recruits of %s: %w", r.ID, err)
		}
		legs = append(legs, domain.RecruitLeg{Recruit: r, Children: children})
	}
	return legs, nil
}

func (uc *DefaultCompensationUsecase) recordMentorFlag(memberID, level string) {
	uc.Logger.Info("mentor override eligibility granted", "member_id", memberID, "level", level)
	if uc.Metrics != nil {
		uc.Metrics.RecordMentorFlag(level)
	}
}
