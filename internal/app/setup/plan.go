package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-commission-service/internal/config"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

// LoadPlan builds the compensation plan from the defaults, the config overrides and
// the level tables stored in the database.
func LoadPlan(ctx context.Context, cfg config.PlanConfig, repo domain.PlanRepository) (domain.Plan, error) {
	plan := domain.DefaultPlan()

	for name, tierCfg := range cfg.Tiers {
		tier, err := domain.ParseTier(strings.ToUpper(name))
		if err != nil {
			return plan, fmt.Errorf("plan tier %q: %w", name, err)
		}
		if tierCfg.Cost > 0 {
			plan.Tiers[tier].Cost = decimal.NewFromFloat(tierCfg.Cost)
		}
		if tierCfg.Rate > 0 {
			plan.Tiers[tier].Rate = decimal.NewFromFloat(tierCfg.Rate)
		}
	}
	if cfg.MaxCommissionsPerDay > 0 {
		plan.MaxCommissionsPerDay = cfg.MaxCommissionsPerDay
	}
	if cfg.MentorL1Percent > 0 {
		plan.MentorL1Percent = decimal.NewFromFloat(cfg.MentorL1Percent)
	}
	if cfg.MentorL2Percent > 0 {
		plan.MentorL2Percent = decimal.NewFromFloat(cfg.MentorL2Percent)
	}

	if repo == nil {
		return plan, nil
	}
	if cfg.SeedDefaults {
		if err := repo.SeedPlan(ctx, plan); err != nil {
			return plan, fmt.Errorf("seed plan levels: %w", err)
		}
	}

	rewardLevels, err := repo.GetRewardLevels(ctx)
	if err != nil {
		return plan, fmt.Errorf("load reward levels: %w", err)
	}
	if len(rewardLevels) > 0 {
		plan.RewardLevels = rewardLevels
	}

	repurchaseLevels, err := repo.GetRepurchaseLevels(ctx)
	if err != nil {
		return plan, fmt.Errorf("load repurchase levels: %w", err)
	}
	if len(repurchaseLevels) > 0 {
		plan.RepurchaseLevels = repurchaseLevels
	}
	return plan, nil
}
