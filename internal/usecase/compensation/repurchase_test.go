package compensation

import (
	"context"
	"testing"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/memory"
	compensationdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/compensation"
)

// seedSponsorChain stores purchaser p sponsored by a, a by b and b by c, all active.
// c gets extra active direct recruits so it has directs in total.
func seedSponsorChain(t *testing.T, store *memory.Store, directs int) {
	t.Helper()
	seed(t, store, &domain.Member{ID: "c", Status: domain.StatusAssociate})
	seed(t, store, &domain.Member{ID: "b", SponsorID: "c", Status: domain.StatusAssociate})
	seed(t, store, &domain.Member{ID: "a", SponsorID: "b", Status: domain.StatusAssociate})
	seed(t, store, &domain.Member{ID: "p", SponsorID: "a", Status: domain.StatusAssociate})
	for i := 1; i < directs; i++ {
		seed(t, store, &domain.Member{ID: "c" + string(rune('0'+i)), SponsorID: "c", Status: domain.StatusAssociate})
	}
}

func TestDistributeRepurchaseLevelThreeGroup(t *testing.T) {
	tests := []struct {
		name       string
		directs    int
		wantC      string
		candidates int
	}{
		{"two active directs are not enough", 2, "0", 2},
		{"three active directs qualify", 3, "100", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store := newTestEngine(t)
			seedSponsorChain(t, store, tt.directs)

			candidates, err := uc.DistributeRepurchase(context.Background(), &compensationdto.RepurchaseInput{
				TransactionID: "tx-1",
				PurchaserID:   "p",
				Value:         dec("1000"),
			})
			if err != nil {
				t.Fatalf("DistributeRepurchase() error = %v", err)
			}
			if len(candidates) != tt.candidates {
				t.Errorf("got %d mentor candidates, want %d", len(candidates), tt.candidates)
			}
			assertDecimal(t, "a repurchase", load(t, store, "a").Wallets.Repurchase, dec("50"))
			assertDecimal(t, "b repurchase", load(t, store, "b").Wallets.Repurchase, dec("50"))
			assertDecimal(t, "c repurchase", load(t, store, "c").Wallets.Repurchase, dec(tt.wantC))
		})
	}
}

func TestRepurchaseMentorPass(t *testing.T) {
	uc, store := newTestEngine(t)
	seedSponsorChain(t, store, 3)
	ctx := context.Background()
	input := &compensationdto.RepurchaseInput{TransactionID: "tx-1", PurchaserID: "p", Value: dec("1000")}

	candidates, err := uc.DistributeRepurchase(ctx, input)
	if err != nil {
		t.Fatalf("DistributeRepurchase() error = %v", err)
	}
	if err := uc.PayMentorOverrides(ctx, candidates); err != nil {
		t.Fatalf("PayMentorOverrides() error = %v", err)
	}

	// replaying the event credits nothing twice
	candidates, err = uc.DistributeRepurchase(ctx, input)
	if err != nil {
		t.Fatalf("replayed DistributeRepurchase() error = %v", err)
	}
	if len(candidates) != 3 {
		t.Errorf("replay rebuilt %d candidates, want 3", len(candidates))
	}
	if err := uc.PayMentorOverrides(ctx, candidates); err != nil {
		t.Fatalf("replayed PayMentorOverrides() error = %v", err)
	}

	want := map[string]struct{ wallet, mentor string }{
		"a": {"55", "5"},
		"b": {"52.5", "2.5"},
		"c": {"105", "5"},
	}
	for id, w := range want {
		m := load(t, store, id)
		assertDecimal(t, id+" repurchase wallet", m.Wallets.Repurchase, dec(w.wallet))
		assertDecimal(t, id+" repurchase mentor income", m.Income.RepurchaseMentor, dec(w.mentor))
	}
}

func TestDistributeRepurchaseSkipsInactiveSponsors(t *testing.T) {
	uc, store := newTestEngine(t)
	seedSponsorChain(t, store, 1)
	b := load(t, store, "b")
	b.Status = domain.StatusInactive
	store.PutMember(b)

	_, err := uc.DistributeRepurchase(context.Background(), &compensationdto.RepurchaseInput{
		TransactionID: "tx-2",
		PurchaserID:   "p",
		Value:         dec("1000"),
	})
	if err != nil {
		t.Fatalf("DistributeRepurchase() error = %v", err)
	}

	assertDecimal(t, "b repurchase", load(t, store, "b").Wallets.Repurchase, dec("0"))
	// c moves up to level 2
	assertDecimal(t, "c repurchase", load(t, store, "c").Wallets.Repurchase, dec("50"))
}

func TestDistributeRepurchaseValidation(t *testing.T) {
	uc, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := uc.DistributeRepurchase(ctx, &compensationdto.RepurchaseInput{Value: dec("10")}); err != domain.ErrInvalidMember {
		t.Errorf("missing purchaser: error = %v, want ErrInvalidMember", err)
	}
	if _, err := uc.DistributeRepurchase(ctx, &compensationdto.RepurchaseInput{PurchaserID: "p", Value: dec("0")}); err != domain.ErrInvalidAmount {
		t.Errorf("zero value: error = %v, want ErrInvalidAmount", err)
	}
}
