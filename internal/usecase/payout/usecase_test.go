package payout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/lock"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/memory"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/compensation"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	batches []*domain.PayoutBatch
}

func (n *recordingNotifier) NotifyBatchCreated(batch *domain.PayoutBatch) {
	n.batches = append(n.batches, batch)
}

func newTestPayout(t *testing.T) (*DefaultPayoutUsecase, *memory.Store, *recordingNotifier) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()

	engine := compensation.NewDefaultCompensationUsecase(
		store, store, store,
		lock.NewLocalLocker(time.Second),
		nil, nil,
		domain.DefaultPlan(),
		time.UTC,
		logger,
	)
	engine.Now = func() time.Time { return testNow }

	notifier := &recordingNotifier{}
	uc, err := NewDefaultPayoutUsecase(store, store, engine, notifier, nil, Settings{
		MinAmount:       decimal.NewFromInt(100),
		TaxPercent:      decimal.NewFromInt(5),
		PlatformPercent: decimal.NewFromInt(5),
		BatchSize:       2,
	}, time.UTC, logger)
	if err != nil {
		t.Fatalf("NewDefaultPayoutUsecase() error = %v", err)
	}
	uc.Now = func() time.Time { return testNow }
	return uc, store, notifier
}

func member(id string, wallets domain.Wallets) *domain.Member {
	return &domain.Member{
		ID:         id,
		Position:   domain.PositionTop,
		Status:     domain.StatusAssociate,
		Percentage: decimal.NewFromInt(100),
		Wallets:    wallets,
	}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestRunWeeklyMatchingSweep(t *testing.T) {
	uc, store, notifier := newTestPayout(t)
	store.PutMember(member("m1", domain.Wallets{Matching: dec("1000"), Repurchase: dec("200")}))
	store.PutMember(member("m2", domain.Wallets{Matching: dec("50")}))
	store.PutMember(member("m3", domain.Wallets{Matching: dec("333.33")}))
	store.PutMember(member("m4", domain.Wallets{Matching: dec("100")}))

	results, err := uc.RunWeeklyMatchingSweep(context.Background())
	if err != nil {
		t.Fatalf("RunWeeklyMatchingSweep() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	matching, repurchase := results[0], results[1]
	if matching.Period != "2026-W42" {
		t.Errorf("period = %s, want 2026-W42", matching.Period)
	}
	if matching.Created != 3 || matching.Scanned != 3 {
		t.Errorf("matching sweep created %d of %d scanned, want 3 of 3", matching.Created, matching.Scanned)
	}
	// 900 + 299.99 + 90
	if !matching.NetTotal.Equal(dec("1289.99")) {
		t.Errorf("matching net total = %s, want 1289.99", matching.NetTotal)
	}
	if repurchase.Created != 1 || !repurchase.NetTotal.Equal(dec("180")) {
		t.Errorf("repurchase sweep created %d net %s, want 1 net 180", repurchase.Created, repurchase.NetTotal)
	}
	if len(notifier.batches) != 4 {
		t.Errorf("notified %d batches, want 4", len(notifier.batches))
	}

	m1, _ := store.GetMemberByID(context.Background(), "m1")
	if !m1.Wallets.Matching.IsZero() || !m1.Wallets.Repurchase.IsZero() {
		t.Errorf("m1 wallets = %s/%s, want drained", m1.Wallets.Matching, m1.Wallets.Repurchase)
	}
	m2, _ := store.GetMemberByID(context.Background(), "m2")
	if !m2.Wallets.Matching.Equal(dec("50")) {
		t.Errorf("m2 matching wallet = %s, want untouched 50", m2.Wallets.Matching)
	}

	batches, err := uc.GetMemberBatches(context.Background(), "m3")
	if err != nil {
		t.Fatal(err)
	}
	if len(batches) != 1 {
		t.Fatalf("got %d batches for m3, want 1", len(batches))
	}
	b := batches[0]
	if !b.Tax.Equal(dec("16.67")) || !b.PlatformCharge.Equal(dec("16.67")) || !b.Net.Equal(dec("299.99")) {
		t.Errorf("m3 batch tax %s platform %s net %s, want 16.67/16.67/299.99", b.Tax, b.PlatformCharge, b.Net)
	}
	if b.Category != domain.CategoryMatching || b.Period != "2026-W42" {
		t.Errorf("m3 batch = %s %s", b.Category, b.Period)
	}

	txs, _ := store.GetTransactions(context.Background(), "m3")
	if len(txs) != 1 || txs[0].Category != domain.CategoryPayout || txs[0].Status != domain.TransactionPending {
		t.Errorf("m3 ledger = %+v, want one pending payout debit", txs)
	}
}

func TestRunWeeklyMatchingSweepOncePerPeriod(t *testing.T) {
	uc, store, _ := newTestPayout(t)
	store.PutMember(member("m1", domain.Wallets{Matching: dec("500")}))

	if _, err := uc.RunWeeklyMatchingSweep(context.Background()); err != nil {
		t.Fatal(err)
	}

	m1, _ := store.GetMemberByID(context.Background(), "m1")
	m1.Wallets.Matching = dec("300")
	store.PutMember(m1)

	results, err := uc.RunWeeklyMatchingSweep(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Skipped != 1 || results[0].Created != 0 {
		t.Errorf("second sweep created %d skipped %d, want 0/1", results[0].Created, results[0].Skipped)
	}
	m1, _ = store.GetMemberByID(context.Background(), "m1")
	if !m1.Wallets.Matching.Equal(dec("300")) {
		t.Errorf("matching wallet = %s, want 300 kept for next week", m1.Wallets.Matching)
	}

	uc.Now = func() time.Time { return testNow.AddDate(0, 0, 7) }
	results, err = uc.RunWeeklyMatchingSweep(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Created != 1 || results[0].Period != "2026-W43" {
		t.Errorf("next week created %d in %s, want 1 in 2026-W43", results[0].Created, results[0].Period)
	}
}

func TestSweepRetriesVersionConflict(t *testing.T) {
	uc, store, _ := newTestPayout(t)
	store.PutMember(member("m1", domain.Wallets{Hold: dec("40")}))

	conflicts := 1
	store.SaveHook = func(string) error {
		if conflicts > 0 {
			conflicts--
			return domain.ErrVersionConflict
		}
		return nil
	}

	result, err := uc.RunRewardSweep(context.Background())
	if err != nil {
		t.Fatalf("RunRewardSweep() error = %v", err)
	}
	if result.Created != 1 || result.Failed != 0 {
		t.Errorf("created %d failed %d, want 1/0", result.Created, result.Failed)
	}
	batches, _ := store.GetBatchesByMemberID(context.Background(), "m1")
	if len(batches) != 1 || batches[0].Category != domain.CategoryReward {
		t.Fatalf("batches = %+v, want one REWARD batch", batches)
	}
	if !batches[0].Gross.Equal(dec("40")) {
		t.Errorf("gross = %s, want 40", batches[0].Gross)
	}
}

func TestRunMonthlySDRSweep(t *testing.T) {
	uc, store, _ := newTestPayout(t)
	m := member("m1", domain.Wallets{})
	m.SecurityDeposit = dec("1000")
	m.SDRPercentage = dec("2")
	m.Loan = domain.Loan{TotalGiven: dec("10"), TotalPending: dec("10"), Percentage: dec("25")}
	store.PutMember(m)
	store.PutMember(member("m2", domain.Wallets{}))

	for i := 0; i < 2; i++ {
		result, err := uc.RunMonthlySDRSweep(context.Background())
		if err != nil {
			t.Fatalf("RunMonthlySDRSweep() run %d error = %v", i+1, err)
		}
		if result.Period != "2026-10" {
			t.Errorf("period = %s, want 2026-10", result.Period)
		}
		wantCreated := 1
		if i > 0 {
			wantCreated = 0
		}
		if result.Created != wantCreated {
			t.Errorf("run %d created %d batches, want %d", i+1, result.Created, wantCreated)
		}
	}

	got, _ := store.GetMemberByID(context.Background(), "m1")
	if !got.Income.SDR.Equal(dec("20")) {
		t.Errorf("sdr income = %s, want 20", got.Income.SDR)
	}
	if !got.Loan.TotalPending.Equal(dec("5")) {
		t.Errorf("loan pending = %s, want 5", got.Loan.TotalPending)
	}
	batches, _ := store.GetBatchesByMemberID(context.Background(), "m1")
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}
	if batches[0].Category != domain.CategoryFranchise || !batches[0].Gross.Equal(dec("15")) {
		t.Errorf("batch = %s gross %s, want FRANCHISE gross 15", batches[0].Category, batches[0].Gross)
	}
}

func TestMarkBatchPaid(t *testing.T) {
	uc, store, notifier := newTestPayout(t)
	store.PutMember(member("m1", domain.Wallets{Matching: dec("200")}))
	if _, err := uc.RunWeeklyMatchingSweep(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(notifier.batches) != 1 {
		t.Fatalf("notified %d batches, want 1", len(notifier.batches))
	}
	id := notifier.batches[0].ID

	for _, badID := range []string{"", "missing"} {
		if _, err := uc.MarkBatchPaid(context.Background(), badID); !errors.Is(err, domain.ErrBatchNotFound) {
			t.Errorf("MarkBatchPaid(%q) error = %v, want ErrBatchNotFound", badID, err)
		}
	}

	batch, err := uc.MarkBatchPaid(context.Background(), id)
	if err != nil {
		t.Fatalf("MarkBatchPaid() error = %v", err)
	}
	if !batch.IsPaid || batch.PaidAt == nil || !batch.PaidAt.Equal(testNow) {
		t.Fatalf("batch paid = %v at %v, want paid at %s", batch.IsPaid, batch.PaidAt, testNow)
	}

	uc.Now = func() time.Time { return testNow.Add(time.Hour) }
	batch, err = uc.MarkBatchPaid(context.Background(), id)
	if err != nil {
		t.Fatalf("repeated MarkBatchPaid() error = %v", err)
	}
	if !batch.PaidAt.Equal(testNow) {
		t.Errorf("paid at moved to %s", batch.PaidAt)
	}
}

func TestGetMemberBatchesUnknownMember(t *testing.T) {
	uc, _, _ := newTestPayout(t)
	if _, err := uc.GetMemberBatches(context.Background(), "ghost"); !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("GetMemberBatches() error = %v, want ErrMemberNotFound", err)
	}
}

func TestPeriods(t *testing.T) {
	tests := []struct {
		at    time.Time
		week  string
		month string
	}{
		{time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), "2026-W42", "2026-10"},
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "2026-W01", "2026-01"},
		{time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "2026-W53", "2027-01"},
	}
	for _, tt := range tests {
		if got := WeekPeriod(tt.at); got != tt.week {
			t.Errorf("WeekPeriod(%s) = %s, want %s", tt.at.Format(time.DateOnly), got, tt.week)
		}
		if got := MonthPeriod(tt.at); got != tt.month {
			t.Errorf("MonthPeriod(%s) = %s, want %s", tt.at.Format(time.DateOnly), got, tt.month)
		}
	}
}
