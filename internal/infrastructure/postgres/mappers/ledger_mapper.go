package mappers

import (
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
)

func ToDomainWalletTransaction(model *models.WalletTransactionModel) *domain.WalletTransaction {
	return &domain.WalletTransaction{
		ID:        model.ID,
		MemberID:  model.MemberID,
		Amount:    model.Amount,
		Direction: domain.Direction(model.Direction),
		Wallet:    domain.WalletType(model.Wallet),
		Category:  domain.Category(model.Category),
		Status:    domain.TransactionStatus(model.Status),
		Note:      model.Note,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMWalletTransaction(tx *domain.WalletTransaction) *models.WalletTransactionModel {
	return &models.WalletTransactionModel{
		ID:        tx.ID,
		MemberID:  tx.MemberID,
		Amount:    tx.Amount,
		Direction: string(tx.Direction),
		Wallet:    string(tx.Wallet),
		Category:  string(tx.Category),
		Status:    string(tx.Status),
		Note:      tx.Note,
		CreatedAt: tx.CreatedAt,
	}
}

func ToDomainPayoutBatch(model *models.PayoutBatchModel) *domain.PayoutBatch {
	return &domain.PayoutBatch{
		ID:             model.ID,
		Reference:      model.Reference,
		MemberID:       model.MemberID,
		Category:       domain.Category(model.Category),
		Period:         model.Period,
		Gross:          model.Gross,
		Tax:            model.Tax,
		PlatformCharge: model.PlatformCharge,
		Net:            model.Net,
		IsPaid:         model.IsPaid,
		PaidAt:         model.PaidAt,
		CreatedAt:      model.CreatedAt,
	}
}

func ToGORMPayoutBatch(batch *domain.PayoutBatch) *models.PayoutBatchModel {
	return &models.PayoutBatchModel{
		ID:             batch.ID,
		Reference:      batch.Reference,
		MemberID:       batch.MemberID,
		Category:       string(batch.Category),
		Period:         batch.Period,
		Gross:          batch.Gross,
		Tax:            batch.Tax,
		PlatformCharge: batch.PlatformCharge,
		Net:            batch.Net,
		IsPaid:         batch.IsPaid,
		PaidAt:         batch.PaidAt,
		CreatedAt:      batch.CreatedAt,
	}
}

func ToGORMStatusLog(entry domain.StatusLog) *models.StatusLogModel {
	return &models.StatusLogModel{
		ID:         entry.ID,
		MemberID:   entry.MemberID,
		FromStatus: int(entry.FromStatus),
		ToStatus:   int(entry.ToStatus),
		PVConsumed: entry.PVConsumed,
		PVBalance:  entry.PVBalance,
		CreatedAt:  entry.CreatedAt,
	}
}

func ToDomainRewardLevel(model *models.RewardLevelModel) domain.RewardLevel {
	return domain.RewardLevel{Level: model.Level, Pairs: model.Pairs, Amount: model.Amount}
}

func ToGORMRewardLevel(level domain.RewardLevel) *models.RewardLevelModel {
	return &models.RewardLevelModel{Level: level.Level, Pairs: level.Pairs, Amount: level.Amount}
}

func ToDomainRepurchaseLevel(model *models.RepurchaseLevelModel) domain.RepurchaseLevel {
	return domain.RepurchaseLevel{
		Level:             model.Level,
		RepurchasePercent: model.RepurchasePercent,
		MentorPercent:     model.MentorPercent,
		Group:             domain.EligibilityGroup(model.EligibilityGroup),
	}
}

func ToGORMRepurchaseLevel(level domain.RepurchaseLevel) *models.RepurchaseLevelModel {
	return &models.RepurchaseLevelModel{
		Level:             level.Level,
		RepurchasePercent: level.RepurchasePercent,
		MentorPercent:     level.MentorPercent,
		EligibilityGroup:  int(level.Group),
	}
}
