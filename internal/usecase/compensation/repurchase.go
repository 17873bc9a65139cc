package compensation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	compensationdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/compensation"
	"github.com/shopspring/decimal"
)

// DistributeRepurchase walks the sponsor chain of the purchaser and pays the level
// commissions of a repurchase. It returns the level earners that qualify for the
// repurchase mentor pass.
func (uc *DefaultCompensationUsecase) DistributeRepurchase(ctx context.Context, input *compensationdto.RepurchaseInput) ([]domain.MentorCandidate, error) {
	start := time.Now()
	defer uc.observe("distribute_repurchase", start)

	if input == nil || input.PurchaserID == "" {
		return nil, domain.ErrInvalidMember
	}
	if !input.Value.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	var candidates []domain.MentorCandidate
	err := uc.withChainLock(ctx, func() error {
		key := repurchaseKey(input.TransactionID)
		processed, err := uc.alreadyProcessed(ctx, key)
		if err != nil {
			return err
		}
		if processed {
			// nothing is credited again; the candidates are rebuilt so an
			// interrupted mentor pass can be completed
			uc.Logger.Info("repurchase already distributed", "transaction_id", input.TransactionID)
			candidates, err = uc.distributeRepurchase(ctx, input, false)
			return err
		}

		candidates, err = uc.distributeRepurchase(ctx, input, true)
		if err != nil {
			return err
		}
		uc.markProcessed(ctx, key, "repurchase")
		return nil
	})
	if err != nil {
		uc.recordError("distribute_repurchase")
		return nil, err
	}
	return candidates, nil
}

func (uc *DefaultCompensationUsecase) distributeRepurchase(ctx context.Context, input *compensationdto.RepurchaseInput, pay bool) ([]domain.MentorCandidate, error) {
	purchaser, err := uc.MemberRepo.GetMemberByID(ctx, input.PurchaserID)
	if err != nil {
		return nil, err
	}

	levels := uc.Plan.SortedRepurchaseLevels()
	sponsors, err := uc.resolveActiveSponsors(ctx, purchaser, len(levels))
	if err != nil {
		return nil, err
	}

	var candidates []domain.MentorCandidate
	for i, sponsor := range sponsors {
		level := levels[i]

		eligible, err := uc.repurchaseEligible(ctx, sponsor.ID, level.Group)
		if err != nil {
			return candidates, partialCascade("repurchase distribution", i, err)
		}
		if !eligible {
			uc.Logger.Debug("sponsor not eligible for repurchase level",
				"sponsor_id", sponsor.ID, "level", level.Level, "group", int(level.Group))
			continue
		}

		commission := repurchaseCommission(sponsor, input.Value, level)
		if pay {
			_, err = uc.updateMember(ctx, sponsor.ID, "repurchase", func(m *domain.Member, c *change) error {
				commission = repurchaseCommission(m, input.Value, level)
				if !commission.IsPositive() {
					return errSkipSave
				}
				uc.credit(m, c, domain.CategoryRepurchase, commission, input.TransactionID,
					fmt.Sprintf("repurchase level %d from %s", level.Level, purchaser.ID))
				return nil
			})
			if err != nil {
				return candidates, partialCascade("repurchase distribution", i, err)
			}
		}

		if level.Level <= uc.Plan.RepurchaseMentorDepth && level.MentorPercent.IsPositive() && commission.IsPositive() {
			candidates = append(candidates, domain.MentorCandidate{
				TransactionID: input.TransactionID,
				MemberID:      sponsor.ID,
				Level:         level.Level,
				Group:         level.Group,
				Commission:    commission,
				MentorPercent: level.MentorPercent,
			})
		}
	}
	return candidates, nil
}

// PayMentorOverrides re-checks each candidate's eligibility group and pays the
// mentor share of its level commission. Candidates are independent: a failure
// is reported without stopping the others.
func (uc *DefaultCompensationUsecase) PayMentorOverrides(ctx context.Context, candidates []domain.MentorCandidate) error {
	if len(candidates) == 0 {
		return nil
	}
	start := time.Now()
	defer uc.observe("pay_mentor_overrides", start)

	err := uc.withChainLock(ctx, func() error {
		var errs []error
		for _, candidate := range candidates {
			if err := uc.payRepurchaseMentor(ctx, candidate); err != nil {
				uc.Logger.Error("repurchase mentor override failed",
					"member_id", candidate.MemberID,
					"transaction_id", candidate.TransactionID,
					"level", candidate.Level,
					"error", err,
				)
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
	if err != nil {
		uc.recordError("pay_mentor_overrides")
	}
	return err
}

func (uc *DefaultCompensationUsecase) payRepurchaseMentor(ctx context.Context, candidate domain.MentorCandidate) error {
	key := ""
	if candidate.TransactionID != "" {
		key = fmt.Sprintf("repurchase-mentor:%s:%d", candidate.TransactionID, candidate.Level)
	}
	processed, err := uc.alreadyProcessed(ctx, key)
	if err != nil || processed {
		return err
	}

	eligible, err := uc.repurchaseEligible(ctx, candidate.MemberID, candidate.Group)
	if err != nil {
		return err
	}
	if !eligible {
		return nil
	}

	amount := candidate.Commission.Mul(candidate.MentorPercent).Div(hundred).Round(2)
	if !amount.IsPositive() {
		return nil
	}
	_, err = uc.updateMember(ctx, candidate.MemberID, "repurchase_mentor", func(m *domain.Member, c *change) error {
		uc.credit(m, c, domain.CategoryRepurchaseMentor, amount, candidate.TransactionID,
			fmt.Sprintf("repurchase mentor override level %d", candidate.Level))
		return nil
	})
	if err != nil {
		return err
	}
	uc.markProcessed(ctx, key, "repurchase_mentor")
	return nil
}

// repurchaseEligible loads only as much of the recruit tree as the group needs.
func (uc *DefaultCompensationUsecase) repurchaseEligible(ctx context.Context, memberID string, group domain.EligibilityGroup) (bool, error) {
	if group == domain.GroupOpen {
		return true, nil
	}
	tree, err := uc.loadRecruitTree(ctx, memberID, group == domain.GroupDirectsOfDirects)
	if err != nil {
		return false, err
	}
	return domain.EvaluateRepurchaseGroup(group, tree, uc.Plan.RepurchaseMinDirects), nil
}

func (uc *DefaultCompensationUsecase) loadRecruitTree(ctx context.Context, memberID string, deep bool) (domain.RecruitTree, error) {
	var tree domain.RecruitTree
	recruits, err := uc.MemberRepo.GetDirectRecruits(ctx, memberID)
	if err != nil {
		return tree, fmt.Errorf("load direct recruits of %s: %w", memberID, err)
	}
	tree.ActiveDirects = domain.CountActive(recruits)
	if !deep || tree.ActiveDirects < uc.Plan.RepurchaseMinDirects {
		return tree, nil
	}
	for _, r := range recruits {
		if !r.Status.IsActive() {
			continue
		}
		children, err := uc.MemberRepo.GetDirectRecruits(ctx, r.ID)
		if err != nil {
			return tree, fmt.Errorf("load direct recruits of %s: %w", r.ID, err)
		}
		tree.DirectsOfDirects = append(tree.DirectsOfDirects, domain.CountActive(children))
	}
	return tree, nil
}

func repurchaseCommission(sponsor *domain.Member, value decimal.Decimal, level domain.RepurchaseLevel) decimal.Decimal {
	return sponsor.Scale(value.Mul(level.RepurchasePercent).Div(hundred)).Round(2)
}

func repurchaseKey(transactionID string) string {
	if transactionID == "" {
		return ""
	}
	return "repurchase:" + transactionID
}
