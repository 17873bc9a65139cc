package payout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/compensation"
	payoutdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/payout"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

type PayoutUsecase interface {
	RunWeeklyMatchingSweep(ctx context.Context) ([]*payoutdto.SweepResult, error)
	RunMonthlySDRSweep(ctx context.Context) (*payoutdto.SweepResult, error)
	RunRewardSweep(ctx context.Context) (*payoutdto.SweepResult, error)
	MarkBatchPaid(ctx context.Context, batchID string) (*domain.PayoutBatch, error)
	GetMemberBatches(ctx context.Context, memberID string) ([]*domain.PayoutBatch, error)
}

// Settings are the payout deductions and paging of the sweeps.
type Settings struct {
	// smallest matching or repurchase wallet balance paid out weekly
	MinAmount       decimal.Decimal
	TaxPercent      decimal.Decimal
	PlatformPercent decimal.Decimal
	BatchSize       int
}

type DefaultPayoutUsecase struct {
	MemberRepo   domain.MemberRepository
	PayoutRepo   domain.PayoutRepository
	Compensation compensation.CompensationUsecase
	Notifier     domain.BatchNotifier
	Metrics      *metrics.CompensationMetrics
	Settings     Settings
	Location     *time.Location
	Now          func() time.Time
	Logger       *slog.Logger

	reference func() string
}

func NewDefaultPayoutUsecase(
	memberRepo domain.MemberRepository,
	payoutRepo domain.PayoutRepository,
	compensationUc compensation.CompensationUsecase,
	notifier domain.BatchNotifier,
	compensationMetrics *metrics.CompensationMetrics,
	settings Settings,
	location *time.Location,
	logger *slog.Logger,
) (*DefaultPayoutUsecase, error) {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, fmt.Errorf("failed to init batch reference generator: %w", err)
	}
	if settings.BatchSize <= 0 {
		settings.BatchSize = 100
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultPayoutUsecase{
		MemberRepo:   memberRepo,
		PayoutRepo:   payoutRepo,
		Compensation: compensationUc,
		Notifier:     notifier,
		Metrics:      compensationMetrics,
		Settings:     settings,
		Location:     location,
		Now:          time.Now,
		Logger:       logger,
		reference:    idGenerator,
	}, nil
}

func (uc *DefaultPayoutUsecase) now() time.Time {
	return uc.Now().In(uc.Location)
}

// WeekPeriod is the ISO week key of a weekly batch, e.g. 2026-W42.
func WeekPeriod(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthPeriod is the key of a monthly batch, e.g. 2026-10.
func MonthPeriod(t time.Time) string {
	return t.Format("2006-01")
}

func (uc *DefaultPayoutUsecase) MarkBatchPaid(ctx context.Context, batchID string) (*domain.PayoutBatch, error) {
	if batchID == "" {
		return nil, domain.ErrBatchNotFound
	}
	if err := uc.PayoutRepo.MarkBatchPaid(ctx, batchID, uc.now()); err != nil {
		return nil, err
	}
	batch, err := uc.PayoutRepo.GetBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	uc.Logger.Info("payout batch marked paid", "batch_id", batch.ID, "reference", batch.Reference, "member_id", batch.MemberID)
	return batch, nil
}

func (uc *DefaultPayoutUsecase) GetMemberBatches(ctx context.Context, memberID string) ([]*domain.PayoutBatch, error) {
	if _, err := uc.MemberRepo.GetMemberByID(ctx, memberID); err != nil {
		return nil, err
	}
	return uc.PayoutRepo.GetBatchesByMemberID(ctx, memberID)
}
