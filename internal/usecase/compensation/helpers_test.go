package compensation

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/lock"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/memory"
	compensationdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/compensation"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*DefaultCompensationUsecase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := NewDefaultCompensationUsecase(
		store,
		store,
		store,
		lock.NewLocalLocker(time.Second),
		nil,
		nil,
		domain.DefaultPlan(),
		time.UTC,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	uc.Now = func() time.Time { return testNow }
	return uc, store
}

// seed stores a member as is. Position defaults to TOP and the payout share to 100.
func seed(t *testing.T, store *memory.Store, m *domain.Member) {
	t.Helper()
	if m.Position == "" {
		m.Position = domain.PositionTop
	}
	if m.Percentage.IsZero() {
		m.Percentage = decimal.NewFromInt(100)
	}
	store.PutMember(m)
}

func load(t *testing.T, store *memory.Store, id string) *domain.Member {
	t.Helper()
	m, err := store.GetMemberByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load member %s: %v", id, err)
	}
	return m
}

// place puts a member into the tree through the engine.
func place(t *testing.T, uc *DefaultCompensationUsecase, id, parentID string, side domain.Position, sponsorID string) {
	t.Helper()
	_, err := uc.PlaceMember(context.Background(), &compensationdto.PlaceMemberInput{
		MemberID:  id,
		ParentID:  parentID,
		Side:      side,
		SponsorID: sponsorID,
	})
	if err != nil {
		t.Fatalf("place %s under %s: %v", id, parentID, err)
	}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertDecimal(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got.String(), want.String())
	}
}
