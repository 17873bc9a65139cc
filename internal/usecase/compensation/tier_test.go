package compensation

import (
	"context"
	"errors"
	"testing"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	compensationdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/compensation"
)

func TestApplyVolumeProgression(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.Status
		pv         string
		delta      string
		wantStatus domain.Status
		wantPV     string
		wantLogs   int
	}{
		{"first purchase activates", domain.StatusInactive, "0", "1", domain.StatusAssociate, "0", 1},
		{"not enough for the next tier", domain.StatusAssociate, "0", "1.5", domain.StatusAssociate, "1.5", 0},
		{"balance carries over", domain.StatusAssociate, "1.5", "0.5", domain.StatusSilver, "0", 1},
		{"one purchase can climb several tiers", domain.StatusInactive, "0", "12", domain.StatusGold, "2", 3},
		{"diamond is terminal", domain.StatusDiamond, "0", "50", domain.StatusDiamond, "50", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store := newTestEngine(t)
			seed(t, store, &domain.Member{ID: "m", Status: tt.status, PVBalance: dec(tt.pv)})

			got, err := uc.ApplyVolume(context.Background(), &compensationdto.ApplyVolumeInput{
				MemberID: "m",
				Delta:    dec(tt.delta),
			})
			if err != nil {
				t.Fatalf("ApplyVolume() error = %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", got.Status, tt.wantStatus)
			}
			assertDecimal(t, "pv balance", got.PVBalance, dec(tt.wantPV))
			if logs := store.StatusLogs(); len(logs) != tt.wantLogs {
				t.Errorf("got %d status logs, want %d", len(logs), tt.wantLogs)
			}
		})
	}
}

func TestApplyVolumeRejectsNegativeBalance(t *testing.T) {
	uc, store := newTestEngine(t)
	seed(t, store, &domain.Member{ID: "m", Status: domain.StatusAssociate, PVBalance: dec("1")})

	_, err := uc.ApplyVolume(context.Background(), &compensationdto.ApplyVolumeInput{MemberID: "m", Delta: dec("-2")})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("ApplyVolume() error = %v, want ErrInvalidAmount", err)
	}
	assertDecimal(t, "pv balance", load(t, store, "m").PVBalance, dec("1"))

	got, err := uc.ApplyVolume(context.Background(), &compensationdto.ApplyVolumeInput{MemberID: "m", Delta: dec("-1")})
	if err != nil {
		t.Fatalf("correction within balance: %v", err)
	}
	assertDecimal(t, "pv balance", got.PVBalance, dec("0"))
}

func TestApplyVolumeIsIdempotent(t *testing.T) {
	uc, store := newTestEngine(t)
	seed(t, store, &domain.Member{ID: "m"})

	input := &compensationdto.ApplyVolumeInput{EventID: "order-1", MemberID: "m", Delta: dec("2")}
	for i := 0; i < 2; i++ {
		if _, err := uc.ApplyVolume(context.Background(), input); err != nil {
			t.Fatalf("ApplyVolume() call %d error = %v", i+1, err)
		}
	}

	m := load(t, store, "m")
	if m.Status != domain.StatusAssociate {
		t.Errorf("status = %s, want ASSOCIATE", m.Status)
	}
	assertDecimal(t, "pv balance", m.PVBalance, dec("1"))
}

func TestApplyVolumeReleasesUpgradeWalletOnDiamond(t *testing.T) {
	uc, store := newTestEngine(t)
	m := &domain.Member{ID: "m", Status: domain.StatusGold}
	m.Wallets.Upgrade = dec("300")
	m.Wallets.Matching = dec("20")
	seed(t, store, m)

	got, err := uc.ApplyVolume(context.Background(), &compensationdto.ApplyVolumeInput{MemberID: "m", Delta: dec("10")})
	if err != nil {
		t.Fatalf("ApplyVolume() error = %v", err)
	}
	if got.Status != domain.StatusDiamond {
		t.Fatalf("status = %s, want DIAMOND", got.Status)
	}
	assertDecimal(t, "upgrade wallet", got.Wallets.Upgrade, dec("0"))
	assertDecimal(t, "matching wallet", got.Wallets.Matching, dec("320"))
}

func TestApplyVolumePropagatesPowerUpTheTree(t *testing.T) {
	uc, store := newTestEngine(t)
	place(t, uc, "root", "", "", "")
	place(t, uc, "a", "root", domain.PositionLeft, "root")
	place(t, uc, "b", "a", domain.PositionRight, "root")

	if _, err := uc.ApplyVolume(context.Background(), &compensationdto.ApplyVolumeInput{MemberID: "b", Delta: dec("3")}); err != nil {
		t.Fatalf("ApplyVolume() error = %v", err)
	}

	a := load(t, store, "a")
	for _, tier := range []domain.Tier{domain.TierAssociate, domain.TierSilver} {
		if got := a.Binary[tier].RightBalance; got != 1 {
			t.Errorf("a %s right balance = %d, want 1", tier, got)
		}
		if got := a.Binary[tier].LeftBalance; got != 0 {
			t.Errorf("a %s left balance = %d, want 0", tier, got)
		}
	}

	root := load(t, store, "root")
	for _, tier := range []domain.Tier{domain.TierAssociate, domain.TierSilver} {
		if got := root.Binary[tier].TotalLeft; got != 1 {
			t.Errorf("root %s total left = %d, want 1", tier, got)
		}
	}
	if got := root.Binary[domain.TierGold].TotalLeft; got != 0 {
		t.Errorf("root gold total left = %d, want 0", got)
	}
}

func TestApplyVolumeReleasesCreditedUpgradeFund(t *testing.T) {
	uc, store := newTestEngine(t)
	seed(t, store, &domain.Member{ID: "m", Status: domain.StatusGold})

	ctx := context.Background()
	for i, amount := range []string{"120", "80"} {
		_, err := uc.CreditIncome(ctx, &compensationdto.CreditInput{
			EventID:  "allot-" + amount,
			MemberID: "m",
			Category: domain.CategoryUpgrade,
			Amount:   dec(amount),
		})
		if err != nil {
			t.Fatalf("CreditIncome() call %d error = %v", i+1, err)
		}
	}
	assertDecimal(t, "upgrade wallet before diamond", load(t, store, "m").Wallets.Upgrade, dec("200"))

	got, err := uc.ApplyVolume(ctx, &compensationdto.ApplyVolumeInput{MemberID: "m", Delta: dec("10")})
	if err != nil {
		t.Fatalf("ApplyVolume() error = %v", err)
	}
	assertDecimal(t, "upgrade wallet", got.Wallets.Upgrade, dec("0"))
	assertDecimal(t, "matching wallet", got.Wallets.Matching, dec("200"))
}

func TestApplyVolumeReportsPartialCascade(t *testing.T) {
	uc, store := newTestEngine(t)
	place(t, uc, "root", "", "", "")
	place(t, uc, "a", "root", domain.PositionLeft, "root")

	store.SaveHook = func(memberID string) error {
		if memberID == "root" {
			return errors.New("connection reset")
		}
		return nil
	}

	_, err := uc.ApplyVolume(context.Background(), &compensationdto.ApplyVolumeInput{MemberID: "a", Delta: dec("1")})
	if !errors.Is(err, domain.ErrPartialCascade) {
		t.Fatalf("ApplyVolume() error = %v, want ErrPartialCascade", err)
	}
	if got := load(t, store, "a").Status; got != domain.StatusAssociate {
		t.Errorf("committed status = %s, want ASSOCIATE", got)
	}
}
