package compensation

import (
	"context"
	"testing"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

// matchedEarner pays one associate pair worth 100 to itself when matched.
func matchedEarner(sponsorID string) *domain.Member {
	return &domain.Member{
		ID:            "e",
		SponsorID:     sponsorID,
		Status:        domain.StatusAssociate,
		Is21Pass:      true,
		IsDirectMatch: true,
		Binary: [domain.TierCount]domain.TierCounter{
			domain.TierAssociate: {LeftBalance: 1, RightBalance: 1},
		},
	}
}

func TestMentorL1Override(t *testing.T) {
	tests := []struct {
		name     string
		sponsor  *domain.Member
		wantHold string
		wantFlag bool
	}{
		{
			name:     "qualified sponsor earns and is flagged",
			sponsor:  &domain.Member{Status: domain.StatusGold, IsDirectMatch: true, Is21Pass: true},
			wantHold: "10",
			wantFlag: true,
		},
		{
			name:     "payout share scales the override",
			sponsor:  &domain.Member{Status: domain.StatusDiamond, IsDirectMatch: true, Is21Pass: true, Percentage: dec("50")},
			wantHold: "5",
			wantFlag: true,
		},
		{
			name:     "silver sponsor is not eligible",
			sponsor:  &domain.Member{Status: domain.StatusSilver, IsDirectMatch: true, Is21Pass: true},
			wantHold: "0",
		},
		{
			name:     "gold sponsor without direct match is not eligible",
			sponsor:  &domain.Member{Status: domain.StatusGold, Is21Pass: true},
			wantHold: "0",
		},
		{
			name:     "flag once set keeps paying",
			sponsor:  &domain.Member{Status: domain.StatusAssociate, IsMatchingMentorL1: true},
			wantHold: "10",
			wantFlag: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store := newTestEngine(t)
			tt.sponsor.ID = "s"
			seed(t, store, tt.sponsor)
			seed(t, store, matchedEarner("s"))

			if err := uc.matchMember(context.Background(), "e"); err != nil {
				t.Fatalf("matchMember() error = %v", err)
			}

			s := load(t, store, "s")
			assertDecimal(t, "sponsor hold wallet", s.Wallets.Hold, dec(tt.wantHold))
			assertDecimal(t, "sponsor mentor income", s.Income.Mentor, dec(tt.wantHold))
			if s.IsMatchingMentorL1 != tt.wantFlag {
				t.Errorf("L1 flag = %v, want %v", s.IsMatchingMentorL1, tt.wantFlag)
			}
			assertDecimal(t, "earner matching wallet", load(t, store, "e").Wallets.Matching, dec("100"))
		})
	}
}

func TestMentorL2Override(t *testing.T) {
	gold := func(id, sponsorID string, side domain.Position) *domain.Member {
		return &domain.Member{ID: id, SponsorID: sponsorID, SponsorSide: side, Status: domain.StatusGold}
	}

	tests := []struct {
		name     string
		members  []*domain.Member
		wantHold string
		wantFlag bool
	}{
		{
			name: "both direct legs carry a gold pair",
			members: []*domain.Member{
				gold("s", "g", domain.PositionLeft),
				gold("s1", "s", domain.PositionLeft),
				gold("s2", "s", domain.PositionRight),
				gold("r", "g", domain.PositionRight),
				gold("r1", "r", domain.PositionLeft),
				gold("r2", "r", domain.PositionRight),
			},
			wantHold: "40",
			wantFlag: true,
		},
		{
			name: "right leg missing",
			members: []*domain.Member{
				gold("s", "g", domain.PositionLeft),
				gold("s1", "s", domain.PositionLeft),
				gold("s2", "s", domain.PositionRight),
			},
			wantHold: "0",
		},
		{
			name: "leg recruit below gold does not count",
			members: []*domain.Member{
				gold("s", "g", domain.PositionLeft),
				gold("s1", "s", domain.PositionLeft),
				gold("s2", "s", domain.PositionRight),
				{ID: "r", SponsorID: "g", SponsorSide: domain.PositionRight, Status: domain.StatusSilver},
				gold("r1", "r", domain.PositionLeft),
				gold("r2", "r", domain.PositionRight),
			},
			wantHold: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store := newTestEngine(t)
			seed(t, store, &domain.Member{ID: "g", Status: domain.StatusAssociate})
			for _, m := range tt.members {
				seed(t, store, m)
			}
			seed(t, store, matchedEarner("s"))

			if err := uc.matchMember(context.Background(), "e"); err != nil {
				t.Fatalf("matchMember() error = %v", err)
			}

			g := load(t, store, "g")
			assertDecimal(t, "grand-sponsor hold wallet", g.Wallets.Hold, dec(tt.wantHold))
			if g.IsMatchingMentorL2 != tt.wantFlag {
				t.Errorf("L2 flag = %v, want %v", g.IsMatchingMentorL2, tt.wantFlag)
			}
		})
	}
}

func TestMentorFailureDoesNotAbortMatching(t *testing.T) {
	uc, store := newTestEngine(t)
	seed(t, store, matchedEarner("missing"))

	if err := uc.matchMember(context.Background(), "e"); err != nil {
		t.Fatalf("matchMember() error = %v", err)
	}
	assertDecimal(t, "earner matching wallet", load(t, store, "e").Wallets.Matching, dec("100"))
}

func TestMentorFlagGrantedWhenCapLeavesNothingToPay(t *testing.T) {
	uc, store := newTestEngine(t)
	seed(t, store, &domain.Member{ID: "s", Status: domain.StatusGold, IsDirectMatch: true, Is21Pass: true})
	earner := matchedEarner("s")
	earner.Binary[domain.TierAssociate].CommissionCount = domain.DefaultPlan().MaxCommissionsPerDay
	earner.Binary[domain.TierAssociate].CommissionDate = testNow
	seed(t, store, earner)

	if err := uc.matchMember(context.Background(), "e"); err != nil {
		t.Fatalf("matchMember() error = %v", err)
	}

	e := load(t, store, "e")
	assertDecimal(t, "earner matching wallet", e.Wallets.Matching, dec("0"))
	if c := e.Binary[domain.TierAssociate]; c.LeftBalance != 0 || c.RightBalance != 0 {
		t.Errorf("associate balances = %d/%d, want drained", c.LeftBalance, c.RightBalance)
	}

	s := load(t, store, "s")
	if !s.IsMatchingMentorL1 {
		t.Error("eligible sponsor not flagged on an unpaid matching event")
	}
	assertDecimal(t, "sponsor hold wallet", s.Wallets.Hold, dec("0"))
}
