package compensation

import (
	"context"
	"testing"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

func TestGoldRewardLadder(t *testing.T) {
	tests := []struct {
		name         string
		balance      int64
		level        int
		goldPairs    int64
		wantBalance  int64
		wantLevel    int
		wantHold     string
		wantMatching string
	}{
		{
			name:         "reaching the threshold fires the reward",
			balance:      2,
			goldPairs:    3,
			wantBalance:  0,
			wantLevel:    1,
			wantHold:     "500",
			wantMatching: "2100",
		},
		{
			name:         "below the threshold only accumulates",
			balance:      0,
			goldPairs:    4,
			wantBalance:  4,
			wantLevel:    0,
			wantHold:     "0",
			wantMatching: "2800",
		},
		{
			name:         "one level per event even when the balance overshoots",
			balance:      0,
			goldPairs:    12,
			wantBalance:  0,
			wantLevel:    1,
			wantHold:     "500",
			wantMatching: "8400",
		},
		{
			name:         "next level uses its own threshold",
			balance:      8,
			level:        1,
			goldPairs:    2,
			wantBalance:  0,
			wantLevel:    2,
			wantHold:     "1500",
			wantMatching: "1400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store := newTestEngine(t)
			seed(t, store, &domain.Member{
				ID:                "g",
				Status:            domain.StatusGold,
				Is21Pass:          true,
				IsDirectMatch:     true,
				GoldRewardBalance: tt.balance,
				GoldRewardLevel:   tt.level,
				Binary: [domain.TierCount]domain.TierCounter{
					domain.TierGold: {LeftBalance: tt.goldPairs, RightBalance: tt.goldPairs},
				},
			})

			if err := uc.matchMember(context.Background(), "g"); err != nil {
				t.Fatalf("matchMember() error = %v", err)
			}

			m := load(t, store, "g")
			if m.GoldRewardBalance != tt.wantBalance {
				t.Errorf("reward balance = %d, want %d", m.GoldRewardBalance, tt.wantBalance)
			}
			if m.GoldRewardLevel != tt.wantLevel {
				t.Errorf("reward level = %d, want %d", m.GoldRewardLevel, tt.wantLevel)
			}
			assertDecimal(t, "hold wallet", m.Wallets.Hold, dec(tt.wantHold))
			assertDecimal(t, "reward income", m.Income.Reward, dec(tt.wantHold))
			assertDecimal(t, "matching wallet", m.Wallets.Matching, dec(tt.wantMatching))
		})
	}
}

func TestGoldRewardIgnoresOtherTiers(t *testing.T) {
	uc, store := newTestEngine(t)
	seed(t, store, &domain.Member{
		ID:                "g",
		Status:            domain.StatusDiamond,
		Is21Pass:          true,
		IsDirectMatch:     true,
		GoldRewardBalance: 4,
		Binary: [domain.TierCount]domain.TierCounter{
			domain.TierSilver:  {LeftBalance: 5, RightBalance: 5},
			domain.TierDiamond: {LeftBalance: 5, RightBalance: 5},
		},
	})

	if err := uc.matchMember(context.Background(), "g"); err != nil {
		t.Fatalf("matchMember() error = %v", err)
	}
	m := load(t, store, "g")
	if m.GoldRewardBalance != 4 || m.GoldRewardLevel != 0 {
		t.Errorf("reward = balance %d level %d, want untouched 4/0", m.GoldRewardBalance, m.GoldRewardLevel)
	}
	// 5x200 + 5x1000
	assertDecimal(t, "matching wallet", m.Wallets.Matching, dec("6000"))
}
