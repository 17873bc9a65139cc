package compensation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/metrics"
	compensationdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/compensation"
)

type CompensationUsecase interface {
	ApplyVolume(ctx context.Context, input *compensationdto.ApplyVolumeInput) (*domain.Member, error)
	AddTierPower(ctx context.Context, input *compensationdto.AddTierPowerInput) error
	DistributeRepurchase(ctx context.Context, input *compensationdto.RepurchaseInput) ([]domain.MentorCandidate, error)
	PayMentorOverrides(ctx context.Context, candidates []domain.MentorCandidate) error
	PlaceMember(ctx context.Context, input *compensationdto.PlaceMemberInput) (*domain.Member, error)
	CreditIncome(ctx context.Context, input *compensationdto.CreditInput) (*domain.Member, error)

	GetMember(ctx context.Context, memberID string) (*domain.Member, error)
	GetTransactions(ctx context.Context, memberID string) ([]*domain.WalletTransaction, error)
}

// TreeLockKey serializes every walk over the placement tree and sponsor chain.
// All ancestor chains share the root, so a single key is the per-chain guard.
const TreeLockKey = "compensation:tree"

const maxVersionRetries = 3

type DefaultCompensationUsecase struct {
	MemberRepo   domain.MemberRepository
	EventRepo    domain.EventRepository
	StatusLogger domain.StatusLogger
	Locker       domain.ChainLocker
	Publisher    domain.CommissionPublisher
	Metrics      *metrics.CompensationMetrics
	Plan         domain.Plan
	Location     *time.Location
	Now          func() time.Time
	Logger       *slog.Logger
}

func NewDefaultCompensationUsecase(
	memberRepo domain.MemberRepository,
	eventRepo domain.EventRepository,
	statusLogger domain.StatusLogger,
	locker domain.ChainLocker,
	publisher domain.CommissionPublisher,
	compensationMetrics *metrics.CompensationMetrics,
	plan domain.Plan,
	location *time.Location,
	logger *slog.Logger,
) *DefaultCompensationUsecase {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultCompensationUsecase{
		MemberRepo:   memberRepo,
		EventRepo:    eventRepo,
		StatusLogger: statusLogger,
		Locker:       locker,
		Publisher:    publisher,
		Metrics:      compensationMetrics,
		Plan:         plan,
		Location:     location,
		Now:          time.Now,
		Logger:       logger,
	}
}

func (uc *DefaultCompensationUsecase) now() time.Time {
	return uc.Now().In(uc.Location)
}

// today is the start of the current calendar day in the plan time zone.
func (uc *DefaultCompensationUsecase) today() time.Time {
	n := uc.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, uc.Location)
}

func (uc *DefaultCompensationUsecase) sameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	a, b = a.In(uc.Location), b.In(uc.Location)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (uc *DefaultCompensationUsecase) withChainLock(ctx context.Context, fn func() error) error {
	unlock, err := uc.Locker.Lock(ctx, TreeLockKey)
	if err != nil {
		return fmt.Errorf("lock member tree: %w", err)
	}
	defer unlock()
	return fn()
}

// alreadyProcessed reports whether an idempotency key was seen before.
func (uc *DefaultCompensationUsecase) alreadyProcessed(ctx context.Context, key string) (bool, error) {
	if key == "" || uc.EventRepo == nil {
		return false, nil
	}
	return uc.EventRepo.IsProcessed(ctx, key)
}

func (uc *DefaultCompensationUsecase) markProcessed(ctx context.Context, key, kind string) {
	if key == "" || uc.EventRepo == nil {
		return
	}
	if err := uc.EventRepo.MarkProcessed(ctx, key, kind, uc.now()); err != nil && !errors.Is(err, domain.ErrDuplicateEvent) {
		uc.Logger.Error("failed to record processed event", "key", key, "kind", kind, "error", err)
	}
}

func (uc *DefaultCompensationUsecase) observe(operation string, start time.Time) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordDuration(operation, time.Since(start).Seconds())
}

func (uc *DefaultCompensationUsecase) recordError(stage string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordError(stage)
}

// partialCascade marks a failure after earlier steps of the same walk were committed.
func partialCascade(stage string, applied int, err error) error {
	if applied == 0 {
		return err
	}
	return fmt.Errorf("%w: %s stopped after %d steps: %w", domain.ErrPartialCascade, stage, applied, err)
}
