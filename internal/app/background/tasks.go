package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/usecase/payout"
)

// Intervals of the payout sweeps. A zero interval disables the sweep.
type Intervals struct {
	Weekly  time.Duration
	Monthly time.Duration
	Reward  time.Duration
}

type BackgroundTasks struct {
	PayoutUsecase payout.PayoutUsecase
	Intervals     Intervals
	Logger        *slog.Logger
}

func NewBackgroundTasks(payoutUC payout.PayoutUsecase, intervals Intervals, logger *slog.Logger) *BackgroundTasks {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackgroundTasks{
		PayoutUsecase: payoutUC,
		Intervals:     intervals,
		Logger:        logger,
	}
}

// StartAll runs each sweep on its own ticker. Sweeps are idempotent per period, so
// ticking more often than the period only retries members that failed.
func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.run(ctx, "weekly_matching", bt.Intervals.Weekly, func(ctx context.Context) error {
		_, err := bt.PayoutUsecase.RunWeeklyMatchingSweep(ctx)
		return err
	})
	go bt.run(ctx, "monthly_sdr", bt.Intervals.Monthly, func(ctx context.Context) error {
		_, err := bt.PayoutUsecase.RunMonthlySDRSweep(ctx)
		return err
	})
	go bt.run(ctx, "reward", bt.Intervals.Reward, func(ctx context.Context) error {
		_, err := bt.PayoutUsecase.RunRewardSweep(ctx)
		return err
	})
}

func (bt *BackgroundTasks) run(ctx context.Context, name string, interval time.Duration, sweep func(context.Context) error) {
	if interval <= 0 {
		bt.Logger.Info("payout sweep disabled", "sweep", name)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sweep(ctx); err != nil {
				bt.Logger.Error("payout sweep failed", "sweep", name, "error", err)
			}
		}
	}
}
