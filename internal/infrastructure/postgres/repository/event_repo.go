package repository

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultEventRepository struct {
	DB *gorm.DB
}

func NewDefaultEventRepository(db *gorm.DB) *DefaultEventRepository {
	return &DefaultEventRepository{DB: db}
}

func (r *DefaultEventRepository) IsProcessed(ctx context.Context, key string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&models.ProcessedEventModel{}).
		Where("key = ?", key).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DefaultEventRepository) MarkProcessed(ctx context.Context, key, kind string, at time.Time) error {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProcessedEventModel{Key: key, Kind: kind, ProcessedAt: at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDuplicateEvent
	}
	return nil
}
