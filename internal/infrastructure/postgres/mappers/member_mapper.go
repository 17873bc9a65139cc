package mappers

import (
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
)

// tierColumns points at the column group of each tier in a member row.
type tierColumns struct {
	leftBalance     *int64
	rightBalance    *int64
	totalLeft       *int64
	totalRight      *int64
	commissionCount *int64
	commissionDate  **time.Time
	totalMatched    *int64
}

func columnsOf(m *models.MemberModel) [domain.TierCount]tierColumns {
	return [domain.TierCount]tierColumns{
		domain.TierAssociate: {
			&m.AssociateLeftBalance, &m.AssociateRightBalance, &m.AssociateTotalLeft, &m.AssociateTotalRight,
			&m.AssociateCommissionCount, &m.AssociateCommissionDate, &m.AssociateTotalMatched,
		},
		domain.TierSilver: {
			&m.SilverLeftBalance, &m.SilverRightBalance, &m.SilverTotalLeft, &m.SilverTotalRight,
			&m.SilverCommissionCount, &m.SilverCommissionDate, &m.SilverTotalMatched,
		},
		domain.TierGold: {
			&m.GoldLeftBalance, &m.GoldRightBalance, &m.GoldTotalLeft, &m.GoldTotalRight,
			&m.GoldCommissionCount, &m.GoldCommissionDate, &m.GoldTotalMatched,
		},
		domain.TierDiamond: {
			&m.DiamondLeftBalance, &m.DiamondRightBalance, &m.DiamondTotalLeft, &m.DiamondTotalRight,
			&m.DiamondCommissionCount, &m.DiamondCommissionDate, &m.DiamondTotalMatched,
		},
	}
}

func ToDomainMember(model *models.MemberModel) *domain.Member {
	member := &domain.Member{
		ID:          model.ID,
		ParentID:    model.ParentID,
		Position:    domain.Position(model.Position),
		SponsorID:   model.SponsorID,
		SponsorSide: domain.Position(model.SponsorSide),
		PVBalance:   model.PVBalance,
		Status:      domain.Status(model.Status),

		Is21Pass:           model.Is21Pass,
		IsDirectMatch:      model.IsDirectMatch,
		IsMatchingMentorL1: model.IsMatchingMentorL1,
		IsMatchingMentorL2: model.IsMatchingMentorL2,
		GoldRewardBalance:  model.GoldRewardBalance,
		GoldRewardLevel:    model.GoldRewardLevel,
		Percentage:         model.Percentage,
		Wallets: domain.Wallets{
			Matching:   model.MatchingWallet,
			Hold:       model.HoldWallet,
			Upgrade:    model.UpgradeWallet,
			Franchise:  model.FranchiseWallet,
			Repurchase: model.RepurchaseWallet,
		},
		Income: domain.Income{
			Matching:         model.MatchingIncome,
			Mentor:           model.MentorIncome,
			Reward:           model.RewardIncome,
			Repurchase:       model.RepurchaseIncome,
			RepurchaseMentor: model.RepurchaseMentorIncome,
			SDR:              model.SDRIncome,
		},
		Loan: domain.Loan{
			TotalGiven:     model.TotalLoanGiven,
			TotalPending:   model.TotalLoanPending,
			TotalCollected: model.TotalLoanCollected,
			Percentage:     model.LoanPercentage,
		},
		LeftCount:        model.LeftCount,
		RightCount:       model.RightCount,
		LeftDirectCount:  model.LeftDirectCount,
		RightDirectCount: model.RightDirectCount,
		SecurityDeposit:  model.SecurityDeposit,
		SDRPercentage:    model.SDRPercentage,
		Version:          model.Version,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}

	for t, cols := range columnsOf(model) {
		counter := &member.Binary[t]
		counter.LeftBalance = *cols.leftBalance
		counter.RightBalance = *cols.rightBalance
		counter.TotalLeft = *cols.totalLeft
		counter.TotalRight = *cols.totalRight
		counter.CommissionCount = *cols.commissionCount
		counter.TotalMatched = *cols.totalMatched
		if *cols.commissionDate != nil {
			counter.CommissionDate = **cols.commissionDate
		}
	}
	return member
}

func ToGORMMember(member *domain.Member) *models.MemberModel {
	model := &models.MemberModel{
		ID:          member.ID,
		ParentID:    member.ParentID,
		Position:    string(member.Position),
		SponsorID:   member.SponsorID,
		SponsorSide: string(member.SponsorSide),
		PVBalance:   member.PVBalance,
		Status:      int(member.Status),

		Is21Pass:           member.Is21Pass,
		IsDirectMatch:      member.IsDirectMatch,
		IsMatchingMentorL1: member.IsMatchingMentorL1,
		IsMatchingMentorL2: member.IsMatchingMentorL2,
		GoldRewardBalance:  member.GoldRewardBalance,
		GoldRewardLevel:    member.GoldRewardLevel,
		Percentage:         member.Percentage,

		MatchingWallet:   member.Wallets.Matching,
		HoldWallet:       member.Wallets.Hold,
		UpgradeWallet:    member.Wallets.Upgrade,
		FranchiseWallet:  member.Wallets.Franchise,
		RepurchaseWallet: member.Wallets.Repurchase,

		MatchingIncome:         member.Income.Matching,
		MentorIncome:           member.Income.Mentor,
		RewardIncome:           member.Income.Reward,
		RepurchaseIncome:       member.Income.Repurchase,
		RepurchaseMentorIncome: member.Income.RepurchaseMentor,
		SDRIncome:              member.Income.SDR,

		TotalLoanGiven:     member.Loan.TotalGiven,
		TotalLoanPending:   member.Loan.TotalPending,
		TotalLoanCollected: member.Loan.TotalCollected,
		LoanPercentage:     member.Loan.Percentage,

		LeftCount:        member.LeftCount,
		RightCount:       member.RightCount,
		LeftDirectCount:  member.LeftDirectCount,
		RightDirectCount: member.RightDirectCount,
		SecurityDeposit:  member.SecurityDeposit,
		SDRPercentage:    member.SDRPercentage,
		Version:          member.Version,
		CreatedAt:        member.CreatedAt,
		UpdatedAt:        member.UpdatedAt,
	}

	for t, cols := range columnsOf(model) {
		counter := member.Binary[t]
		*cols.leftBalance = counter.LeftBalance
		*cols.rightBalance = counter.RightBalance
		*cols.totalLeft = counter.TotalLeft
		*cols.totalRight = counter.TotalRight
		*cols.commissionCount = counter.CommissionCount
		*cols.totalMatched = counter.TotalMatched
		if !counter.CommissionDate.IsZero() {
			date := counter.CommissionDate
			*cols.commissionDate = &date
		}
	}
	return model
}
