package payout

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	compensationdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/compensation"
	payoutdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/payout"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxBatchRetries = 3

var hundred = decimal.NewFromInt(100)

// RunWeeklyMatchingSweep batches matching and repurchase wallets for the current ISO week.
func (uc *DefaultPayoutUsecase) RunWeeklyMatchingSweep(ctx context.Context) ([]*payoutdto.SweepResult, error) {
	period := WeekPeriod(uc.now())

	matching, err := uc.sweepWallet(ctx, "weekly_matching", domain.WalletMatching, domain.CategoryMatching, period, uc.Settings.MinAmount)
	if err != nil {
		return []*payoutdto.SweepResult{matching}, err
	}
	repurchase, err := uc.sweepWallet(ctx, "weekly_repurchase", domain.WalletRepurchase, domain.CategoryRepurchase, period, uc.Settings.MinAmount)
	return []*payoutdto.SweepResult{matching, repurchase}, err
}

// RunRewardSweep batches hold wallet balances: mentor overrides and ladder rewards.
func (uc *DefaultPayoutUsecase) RunRewardSweep(ctx context.Context) (*payoutdto.SweepResult, error) {
	return uc.sweepWallet(ctx, "reward", domain.WalletHold, domain.CategoryReward, WeekPeriod(uc.now()), decimal.Zero)
}

// RunMonthlySDRSweep returns the monthly share of each security deposit into the
// franchise wallet and then batches the franchise wallet.
func (uc *DefaultPayoutUsecase) RunMonthlySDRSweep(ctx context.Context) (*payoutdto.SweepResult, error) {
	period := MonthPeriod(uc.now())
	credited, failed := 0, 0

	afterID := ""
	for {
		members, err := uc.MemberRepo.FindMembersWithDeposit(ctx, afterID, uc.Settings.BatchSize)
		if err != nil {
			return nil, fmt.Errorf("load deposit holders after %q: %w", afterID, err)
		}
		if len(members) == 0 {
			break
		}
		for _, m := range members {
			amount := m.SecurityDeposit.Mul(m.SDRPercentage).Div(hundred).Round(2)
			if !amount.IsPositive() {
				continue
			}
			_, err := uc.Compensation.CreditIncome(ctx, &compensationdto.CreditInput{
				EventID:  fmt.Sprintf("sdr:%s:%s", m.ID, period),
				MemberID: m.ID,
				Category: domain.CategorySDR,
				Amount:   amount,
				SourceID: period,
				Note:     fmt.Sprintf("security deposit return for %s", period),
			})
			if err != nil {
				failed++
				uc.Logger.Error("security deposit return failed", "member_id", m.ID, "period", period, "error", err)
				continue
			}
			credited++
		}
		afterID = members[len(members)-1].ID
		if len(members) < uc.Settings.BatchSize {
			break
		}
	}
	uc.Logger.Info("security deposit returns credited", "period", period, "credited", credited, "failed", failed)

	result, err := uc.sweepWallet(ctx, "monthly_sdr", domain.WalletFranchise, domain.CategoryFranchise, period, decimal.Zero)
	if result != nil {
		result.Failed += failed
	}
	return result, err
}

// sweepWallet pages through members holding at least minAmount in the wallet and
// creates one batch per member for the period. Each member commits on its own.
func (uc *DefaultPayoutUsecase) sweepWallet(
	ctx context.Context,
	sweep string,
	wallet domain.WalletType,
	category domain.Category,
	period string,
	minAmount decimal.Decimal,
) (*payoutdto.SweepResult, error) {
	result := &payoutdto.SweepResult{Sweep: sweep, Period: period, NetTotal: decimal.Zero}

	afterID := ""
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		members, err := uc.MemberRepo.FindMembersWithWallet(ctx, wallet, minAmount, afterID, uc.Settings.BatchSize)
		if err != nil {
			return result, fmt.Errorf("load %s wallets after %q: %w", wallet, afterID, err)
		}
		if len(members) == 0 {
			break
		}

		for _, m := range members {
			result.Scanned++
			batch, err := uc.createBatch(ctx, m, wallet, category, period, minAmount)
			switch {
			case err != nil:
				result.Failed++
				uc.Logger.Error("failed to create payout batch", "sweep", sweep, "member_id", m.ID, "error", err)
			case batch == nil:
				result.Skipped++
			default:
				result.Created++
				result.NetTotal = result.NetTotal.Add(batch.Net)
			}
		}

		afterID = members[len(members)-1].ID
		if len(members) < uc.Settings.BatchSize {
			break
		}
	}

	uc.Logger.Info("payout sweep finished",
		"sweep", sweep,
		"period", period,
		"scanned", result.Scanned,
		"created", result.Created,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"net_total", result.NetTotal.StringFixed(2),
	)
	return result, nil
}

// createBatch debits the whole wallet into a batch. Returns nil when the period
// already has a batch or the balance dropped below the minimum.
func (uc *DefaultPayoutUsecase) createBatch(
	ctx context.Context,
	m *domain.Member,
	wallet domain.WalletType,
	category domain.Category,
	period string,
	minAmount decimal.Decimal,
) (*domain.PayoutBatch, error) {
	for attempt := 1; ; attempt++ {
		gross := m.Wallet(wallet)
		if !gross.IsPositive() || gross.LessThan(minAmount) {
			return nil, nil
		}

		batch := uc.newBatch(m.ID, category, period, gross)
		m.AddWallet(wallet, gross.Neg())
		debit := &domain.WalletTransaction{
			ID:        uuid.New().String(),
			MemberID:  m.ID,
			Amount:    gross,
			Direction: domain.DirectionDebit,
			Wallet:    wallet,
			Category:  domain.CategoryPayout,
			Status:    domain.TransactionPending,
			Note:      fmt.Sprintf("payout batch %s for %s", batch.Reference, period),
			CreatedAt: batch.CreatedAt,
		}

		created, err := uc.PayoutRepo.CreateBatch(ctx, batch, m, debit)
		if err == nil {
			if !created {
				return nil, nil
			}
			uc.afterBatch(batch)
			return batch, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) || attempt >= maxBatchRetries {
			return nil, err
		}

		// the engine credited the member meanwhile; batch the fresh balance
		if uc.Metrics != nil {
			uc.Metrics.RecordVersionConflict("payout_batch")
		}
		if m, err = uc.MemberRepo.GetMemberByID(ctx, m.ID); err != nil {
			return nil, err
		}
	}
}

func (uc *DefaultPayoutUsecase) newBatch(memberID string, category domain.Category, period string, gross decimal.Decimal) *domain.PayoutBatch {
	tax := gross.Mul(uc.Settings.TaxPercent).Div(hundred).Round(2)
	platform := gross.Mul(uc.Settings.PlatformPercent).Div(hundred).Round(2)
	return &domain.PayoutBatch{
		ID:             uuid.New().String(),
		Reference:      "PB-" + uc.reference(),
		MemberID:       memberID,
		Category:       category,
		Period:         period,
		Gross:          gross,
		Tax:            tax,
		PlatformCharge: platform,
		Net:            gross.Sub(tax).Sub(platform),
		CreatedAt:      uc.now(),
	}
}

func (uc *DefaultPayoutUsecase) afterBatch(batch *domain.PayoutBatch) {
	uc.Logger.Info("payout batch created",
		"batch_id", batch.ID,
		"reference", batch.Reference,
		"member_id", batch.MemberID,
		"category", batch.Category,
		"period", batch.Period,
		"net", batch.Net.StringFixed(2),
	)
	if uc.Metrics != nil {
		net, _ := batch.Net.Float64()
		uc.Metrics.RecordPayoutBatch(string(batch.Category), net)
	}
	if uc.Notifier != nil {
		uc.Notifier.NotifyBatchCreated(batch)
	}
}
