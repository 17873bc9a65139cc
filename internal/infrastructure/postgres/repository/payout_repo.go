package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultPayoutRepository struct {
	DB *gorm.DB
}

func NewDefaultPayoutRepository(db *gorm.DB) *DefaultPayoutRepository {
	return &DefaultPayoutRepository{DB: db}
}

func (r *DefaultPayoutRepository) CreateBatch(
	ctx context.Context,
	batch *domain.PayoutBatch,
	member *domain.Member,
	debit *domain.WalletTransaction,
) (bool, error) {
	tx := r.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	var committed bool
	defer func() {
		if !committed {
			if err := tx.Rollback().Error; err != nil && !errors.Is(err, gorm.ErrInvalidTransaction) {
				slog.Error("failed to rollback payout transaction", "batch_id", batch.ID, "error", err)
			}
		}
	}()

	// the (member, category, period) unique index turns a replayed sweep into a no-op
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(mappers.ToGORMPayoutBatch(batch))
	if res.Error != nil {
		return false, fmt.Errorf("failed to create payout batch: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	var entries []*domain.WalletTransaction
	if debit != nil {
		entries = append(entries, debit)
	}
	version, updatedAt, err := saveMemberTx(tx, member, entries)
	if err != nil {
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		return false, fmt.Errorf("failed to commit payout batch: %w", err)
	}
	committed = true

	member.Version = version
	member.UpdatedAt = updatedAt
	return true, nil
}

func (r *DefaultPayoutRepository) GetBatchByID(ctx context.Context, batchID string) (*domain.PayoutBatch, error) {
	var model models.PayoutBatchModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBatchNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayoutBatch(&model), nil
}

func (r *DefaultPayoutRepository) GetBatchesByMemberID(ctx context.Context, memberID string) ([]*domain.PayoutBatch, error) {
	var batchModels []models.PayoutBatchModel
	if err := r.DB.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&batchModels).Error; err != nil {
		return nil, err
	}

	batches := make([]*domain.PayoutBatch, 0, len(batchModels))
	for i := range batchModels {
		batches = append(batches, mappers.ToDomainPayoutBatch(&batchModels[i]))
	}
	return batches, nil
}

// MarkBatchPaid flips the paid flag once; paying an already paid batch is a no-op.
func (r *DefaultPayoutRepository) MarkBatchPaid(ctx context.Context, batchID string, paidAt time.Time) error {
	res := r.DB.WithContext(ctx).
		Model(&models.PayoutBatchModel{}).
		Where("id = ? AND is_paid = ?", batchID, false).
		Updates(map[string]interface{}{
			"is_paid": true,
			"paid_at": paidAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetBatchByID(ctx, batchID); err != nil {
			return err
		}
	}
	return nil
}
