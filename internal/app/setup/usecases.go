package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/compensation"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/payout"
	"github.com/shopspring/decimal"
)

type UseCases struct {
	Plan                domain.Plan
	CompensationUsecase compensation.CompensationUsecase
	PayoutUsecase       payout.PayoutUsecase
}

func InitializeUseCases(ctx context.Context, deps *Dependencies) (*UseCases, error) {
	cfg := deps.Config

	location, err := time.LoadLocation(cfg.Plan.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("plan time zone %q: %w", cfg.Plan.TimeZone, err)
	}

	plan, err := LoadPlan(ctx, cfg.Plan, deps.Repositories.PlanRepo)
	if err != nil {
		return nil, err
	}
	deps.Logger.Info("compensation plan loaded",
		"reward_levels", len(plan.RewardLevels),
		"repurchase_levels", len(plan.RepurchaseLevels),
		"max_commissions_per_day", plan.MaxCommissionsPerDay,
		"time_zone", location.String(),
	)

	var commissionPublisher domain.CommissionPublisher
	if deps.CommissionPublisher != nil {
		commissionPublisher = deps.CommissionPublisher
	}

	compensationUsecase := compensation.NewDefaultCompensationUsecase(
		deps.Repositories.MemberRepo,
		deps.Repositories.EventRepo,
		deps.Repositories.StatusLogger,
		deps.Locker,
		commissionPublisher,
		deps.Metrics,
		plan,
		location,
		deps.Logger,
	)

	payoutUsecase, err := payout.NewDefaultPayoutUsecase(
		deps.Repositories.MemberRepo,
		deps.Repositories.PayoutRepo,
		compensationUsecase,
		deps.Notifier,
		deps.Metrics,
		payout.Settings{
			MinAmount:       decimal.NewFromFloat(cfg.Payout.MinAmount),
			TaxPercent:      decimal.NewFromFloat(cfg.Payout.TaxPercent),
			PlatformPercent: decimal.NewFromFloat(cfg.Payout.PlatformPercent),
			BatchSize:       cfg.Payout.BatchSize,
		},
		location,
		deps.Logger,
	)
	if err != nil {
		return nil, fmt.Errorf("payout usecase: %w", err)
	}

	return &UseCases{
		Plan:                plan,
		CompensationUsecase: compensationUsecase,
		PayoutUsecase:       payoutUsecase,
	}, nil
}
