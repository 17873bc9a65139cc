package background

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	payoutdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/payout"
)

type countingPayout struct {
	weekly, monthly, reward atomic.Int32
}

func (p *countingPayout) RunWeeklyMatchingSweep(context.Context) ([]*payoutdto.SweepResult, error) {
	p.weekly.Add(1)
	return nil, nil
}

func (p *countingPayout) RunMonthlySDRSweep(context.Context) (*payoutdto.SweepResult, error) {
	p.monthly.Add(1)
	return &payoutdto.SweepResult{}, nil
}

func (p *countingPayout) RunRewardSweep(context.Context) (*payoutdto.SweepResult, error) {
	p.reward.Add(1)
	return &payoutdto.SweepResult{}, nil
}

func (p *countingPayout) MarkBatchPaid(context.Context, string) (*domain.PayoutBatch, error) {
	return nil, domain.ErrBatchNotFound
}

func (p *countingPayout) GetMemberBatches(context.Context, string) ([]*domain.PayoutBatch, error) {
	return nil, nil
}

func TestStartAll(t *testing.T) {
	p := &countingPayout{}
	tasks := NewBackgroundTasks(p, Intervals{
		Weekly:  5 * time.Millisecond,
		Monthly: 5 * time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	tasks.StartAll(ctx)

	deadline := time.Now().Add(time.Second)
	for p.weekly.Load() < 2 || p.monthly.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("sweeps ran weekly=%d monthly=%d times", p.weekly.Load(), p.monthly.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if got := p.reward.Load(); got != 0 {
		t.Errorf("disabled reward sweep ran %d times", got)
	}
}
