package compensation

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	compensationdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/compensation"
)

func (uc *DefaultCompensationUsecase) CreditIncome(ctx context.Context, input *compensationdto.CreditInput) (*domain.Member, error) {
	start := time.Now()
	defer uc.observe("credit_income", start)

	if input == nil || input.MemberID == "" {
		return nil, domain.ErrInvalidMember
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if _, ok := domain.WalletFor(input.Category); !ok {
		return nil, domain.ErrInvalidCategory
	}

	var result *domain.Member
	err := uc.withChainLock(ctx, func() error {
		processed, err := uc.alreadyProcessed(ctx, input.EventID)
		if err != nil {
			return err
		}
		if processed {
			result, err = uc.MemberRepo.GetMemberByID(ctx, input.MemberID)
			return err
		}

		result, err = uc.updateMember(ctx, input.MemberID, "credit_income", func(m *domain.Member, c *change) error {
			uc.credit(m, c, input.Category, input.Amount, input.SourceID, input.Note)
			return nil
		})
		if err != nil {
			return err
		}
		uc.markProcessed(ctx, input.EventID, "credit_"+string(input.Category))
		return nil
	})
	if err != nil {
		uc.recordError("credit_income")
		return nil, err
	}
	return result, nil
}
