package mappers

import (
	"github.com/LavaJover/shvark-commission-service/internal/delivery/http/dto/member/response"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

func ToMemberResponse(m *domain.Member) response.MemberResponse {
	binary := make([]response.TierBalanceResponse, 0, domain.TierCount)
	for t := domain.TierAssociate; t <= domain.TierDiamond; t++ {
		c := m.Binary[t]
		row := response.TierBalanceResponse{
			Tier:            t.String(),
			LeftBalance:     c.LeftBalance,
			RightBalance:    c.RightBalance,
			TotalLeft:       c.TotalLeft,
			TotalRight:      c.TotalRight,
			TotalMatched:    c.TotalMatched,
			CommissionCount: c.CommissionCount,
		}
		if !c.CommissionDate.IsZero() {
			date := c.CommissionDate
			row.CommissionDate = &date
		}
		binary = append(binary, row)
	}

	return response.MemberResponse{
		ID:                 m.ID,
		ParentID:           m.ParentID,
		Position:           string(m.Position),
		SponsorID:          m.SponsorID,
		Status:             m.Status.String(),
		PVBalance:          m.PVBalance,
		Percentage:         m.Percentage,
		Is21Pass:           m.Is21Pass,
		IsDirectMatch:      m.IsDirectMatch,
		IsMatchingMentorL1: m.IsMatchingMentorL1,
		IsMatchingMentorL2: m.IsMatchingMentorL2,
		GoldRewardBalance:  m.GoldRewardBalance,
		GoldRewardLevel:    m.GoldRewardLevel,
		Binary:             binary,
		Wallets: response.WalletsResponse{
			Matching:   m.Wallets.Matching,
			Hold:       m.Wallets.Hold,
			Upgrade:    m.Wallets.Upgrade,
			Franchise:  m.Wallets.Franchise,
			Repurchase: m.Wallets.Repurchase,
		},
		Loan: response.LoanResponse{
			TotalGiven:     m.Loan.TotalGiven,
			TotalPending:   m.Loan.TotalPending,
			TotalCollected: m.Loan.TotalCollected,
			Percentage:     m.Loan.Percentage,
		},
		LeftCount:        m.LeftCount,
		RightCount:       m.RightCount,
		LeftDirectCount:  m.LeftDirectCount,
		RightDirectCount: m.RightDirectCount,
		Version:          m.Version,
	}
}

func ToTransactionResponses(txs []*domain.WalletTransaction) []response.TransactionResponse {
	out := make([]response.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, response.TransactionResponse{
			ID:        tx.ID,
			Amount:    tx.Amount,
			Direction: string(tx.Direction),
			Wallet:    string(tx.Wallet),
			Category:  string(tx.Category),
			Status:    string(tx.Status),
			Note:      tx.Note,
			CreatedAt: tx.CreatedAt,
		})
	}
	return out
}

func ToBatchResponse(b *domain.PayoutBatch) response.BatchResponse {
	return response.BatchResponse{
		ID:             b.ID,
		Reference:      b.Reference,
		MemberID:       b.MemberID,
		Category:       string(b.Category),
		Period:         b.Period,
		Gross:          b.Gross,
		Tax:            b.Tax,
		PlatformCharge: b.PlatformCharge,
		Net:            b.Net,
		IsPaid:         b.IsPaid,
		PaidAt:         b.PaidAt,
		CreatedAt:      b.CreatedAt,
	}
}

func ToBatchResponses(batches []*domain.PayoutBatch) []response.BatchResponse {
	out := make([]response.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, ToBatchResponse(b))
	}
	return out
}
