package compensation

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errSkipSave = errors.New("no changes to save")

// change collects what one member write produces besides the row itself.
type change struct {
	entries []*domain.WalletTransaction
	events  []domain.CommissionEvent
	// commission metrics: category -> gross, recovered
	credited []creditRecord
}

type creditRecord struct {
	category  domain.Category
	gross     decimal.Decimal
	recovered decimal.Decimal
}

// updateMember loads a member, applies fn and saves the row together with the
// ledger entries fn produced. fn must derive everything from the loaded state:
// it is re-run on a fresh copy after a version conflict.
func (uc *DefaultCompensationUsecase) updateMember(
	ctx context.Context,
	memberID, operation string,
	fn func(m *domain.Member, c *change) error,
) (*domain.Member, error) {
	for attempt := 1; ; attempt++ {
		member, err := uc.MemberRepo.GetMemberByID(ctx, memberID)
		if err != nil {
			return nil, fmt.Errorf("load member %s: %w", memberID, err)
		}

		c := &change{}
		if err := fn(member, c); err != nil {
			if errors.Is(err, errSkipSave) {
				return member, nil
			}
			return nil, err
		}

		err = uc.MemberRepo.SaveMember(ctx, member, c.entries)
		if err == nil {
			uc.afterCommit(c)
			return member, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) || attempt >= maxVersionRetries {
			return nil, fmt.Errorf("save member %s: %w", memberID, err)
		}
		if uc.Metrics != nil {
			uc.Metrics.RecordVersionConflict(operation)
		}
		uc.Logger.Warn("member version conflict, retrying", "member_id", memberID, "operation", operation, "attempt", attempt)
	}
}

func (uc *DefaultCompensationUsecase) afterCommit(c *change) {
	if uc.Metrics != nil {
		for _, r := range c.credited {
			gross, _ := r.gross.Float64()
			recovered, _ := r.recovered.Float64()
			uc.Metrics.RecordCommission(string(r.category), gross, recovered)
		}
	}
	if uc.Publisher == nil {
		return
	}
	for _, event := range c.events {
		go func(event domain.CommissionEvent) {
			if err := uc.Publisher.PublishCommission(context.Background(), event); err != nil {
				uc.Logger.Error("failed to publish commission event", "member_id", event.MemberID, "category", event.Category, "error", err.Error())
			}
		}(event)
	}
}

func (uc *DefaultCompensationUsecase) newEntry(
	memberID string,
	amount decimal.Decimal,
	direction domain.Direction,
	wallet domain.WalletType,
	category domain.Category,
	note string,
) *domain.WalletTransaction {
	return &domain.WalletTransaction{
		ID:        uuid.New().String(),
		MemberID:  memberID,
		Amount:    amount,
		Direction: direction,
		Wallet:    wallet,
		Category:  category,
		Status:    domain.TransactionApproved,
		Note:      note,
		CreatedAt: uc.now(),
	}
}

// credit pays a commission: the gross goes through the loan interceptor and
// the residual lands in the category wallet. Returns the residual.
func (uc *DefaultCompensationUsecase) credit(
	m *domain.Member,
	c *change,
	category domain.Category,
	gross decimal.Decimal,
	sourceID, note string,
) decimal.Decimal {
	gross = gross.Round(2)
	if !gross.IsPositive() {
		return decimal.Zero
	}
	wallet, ok := domain.WalletFor(category)
	if !ok {
		uc.Logger.Error("no wallet for commission category", "category", category)
		return decimal.Zero
	}

	m.AddIncome(category, gross)
	m.AddWallet(wallet, gross)
	c.entries = append(c.entries, uc.newEntry(m.ID, gross, domain.DirectionCredit, wallet, category, note))

	recovered := uc.interceptLoan(m, c, gross, category)
	residual := gross.Sub(recovered)

	c.credited = append(c.credited, creditRecord{category: category, gross: gross, recovered: recovered})
	c.events = append(c.events, domain.CommissionEvent{
		MemberID:  m.ID,
		Category:  category,
		Wallet:    wallet,
		Gross:     gross,
		Recovered: recovered,
		Net:       residual,
		SourceID:  sourceID,
		CreatedAt: uc.now(),
	})
	return residual
}
