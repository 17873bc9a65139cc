package repository

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultPlanRepository struct {
	DB *gorm.DB
}

func NewDefaultPlanRepository(db *gorm.DB) *DefaultPlanRepository {
	return &DefaultPlanRepository{DB: db}
}

func (r *DefaultPlanRepository) GetRewardLevels(ctx context.Context) ([]domain.RewardLevel, error) {
	var levelModels []models.RewardLevelModel
	if err := r.DB.WithContext(ctx).Order("level ASC").Find(&levelModels).Error; err != nil {
		return nil, err
	}
	levels := make([]domain.RewardLevel, 0, len(levelModels))
	for i := range levelModels {
		levels = append(levels, mappers.ToDomainRewardLevel(&levelModels[i]))
	}
	return levels, nil
}

func (r *DefaultPlanRepository) GetRepurchaseLevels(ctx context.Context) ([]domain.RepurchaseLevel, error) {
	var levelModels []models.RepurchaseLevelModel
	if err := r.DB.WithContext(ctx).Order("level ASC").Find(&levelModels).Error; err != nil {
		return nil, err
	}
	levels := make([]domain.RepurchaseLevel, 0, len(levelModels))
	for i := range levelModels {
		levels = append(levels, mappers.ToDomainRepurchaseLevel(&levelModels[i]))
	}
	return levels, nil
}

// SeedPlan inserts the plan tables, keeping rows an operator already edited.
func (r *DefaultPlanRepository) SeedPlan(ctx context.Context, plan domain.Plan) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, level := range plan.RewardLevels {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(mappers.ToGORMRewardLevel(level)).Error; err != nil {
				return fmt.Errorf("seed reward level %d: %w", level.Level, err)
			}
		}
		for _, level := range plan.RepurchaseLevels {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(mappers.ToGORMRepurchaseLevel(level)).Error; err != nil {
				return fmt.Errorf("seed repurchase level %d: %w", level.Level, err)
			}
		}
		return nil
	})
}
