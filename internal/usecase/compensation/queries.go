package compensation

import (
	"context"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

func (uc *DefaultCompensationUsecase) GetMember(ctx context.Context, memberID string) (*domain.Member, error) {
	if memberID == "" {
		return nil, domain.ErrInvalidMember
	}
	return uc.MemberRepo.GetMemberByID(ctx, memberID)
}

// GetTransactions returns the member's ledger in posting order.
func (uc *DefaultCompensationUsecase) GetTransactions(ctx context.Context, memberID string) ([]*domain.WalletTransaction, error) {
	if _, err := uc.GetMember(ctx, memberID); err != nil {
		return nil, err
	}
	return uc.MemberRepo.GetTransactions(ctx, memberID)
}
