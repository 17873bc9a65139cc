package setup

import (
	"context"
	"errors"
	"testing"

	"github.com/LavaJover/shvark-commission-service/internal/config"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
)

func TestLoadPlan(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.PlanConfig
		prepare      func(t *testing.T, store *memory.Store)
		wantErr      error
		validateFunc func(t *testing.T, plan domain.Plan)
	}{
		{
			name: "defaults are seeded and read back",
			cfg:  config.PlanConfig{SeedDefaults: true},
			validateFunc: func(t *testing.T, plan domain.Plan) {
				if len(plan.RewardLevels) != len(domain.DefaultRewardLevels()) {
					t.Errorf("got %d reward levels", len(plan.RewardLevels))
				}
				if plan.MaxCommissionsPerDay != 25 {
					t.Errorf("max commissions = %d, want 25", plan.MaxCommissionsPerDay)
				}
			},
		},
		{
			name: "config overrides tier rows and percents",
			cfg: config.PlanConfig{
				MaxCommissionsPerDay: 10,
				MentorL1Percent:      12.5,
				Tiers: map[string]config.TierCfg{
					"gold": {Cost: 8, Rate: 750},
				},
			},
			validateFunc: func(t *testing.T, plan domain.Plan) {
				gold := plan.Rule(domain.TierGold)
				if !gold.Cost.Equal(decimal.NewFromInt(8)) || !gold.Rate.Equal(decimal.NewFromInt(750)) {
					t.Errorf("gold rule = cost %s rate %s, want 8/750", gold.Cost, gold.Rate)
				}
				if !gold.FeedsReward {
					t.Error("gold override dropped the reward hook")
				}
				if plan.MaxCommissionsPerDay != 10 {
					t.Errorf("max commissions = %d, want 10", plan.MaxCommissionsPerDay)
				}
				if !plan.MentorL1Percent.Equal(decimal.NewFromFloat(12.5)) {
					t.Errorf("mentor L1 = %s, want 12.5", plan.MentorL1Percent)
				}
				if !plan.MentorL2Percent.Equal(decimal.NewFromInt(40)) {
					t.Errorf("mentor L2 = %s, want default 40", plan.MentorL2Percent)
				}
			},
		},
		{
			name: "stored levels win over defaults",
			cfg:  config.PlanConfig{SeedDefaults: true},
			prepare: func(t *testing.T, store *memory.Store) {
				custom := domain.DefaultPlan()
				custom.RewardLevels = []domain.RewardLevel{{Level: 1, Pairs: 2, Amount: decimal.NewFromInt(100)}}
				if err := store.SeedPlan(context.Background(), custom); err != nil {
					t.Fatal(err)
				}
			},
			validateFunc: func(t *testing.T, plan domain.Plan) {
				next, ok := plan.NextReward(0)
				if !ok || next.Pairs != 2 {
					t.Errorf("level 1 = %+v, want stored 2 pairs", next)
				}
			},
		},
		{
			name:    "unknown tier name",
			cfg:     config.PlanConfig{Tiers: map[string]config.TierCfg{"platinum": {Rate: 1}}},
			wantErr: domain.ErrInvalidTier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			if tt.prepare != nil {
				tt.prepare(t, store)
			}

			plan, err := LoadPlan(context.Background(), tt.cfg, store)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadPlan() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadPlan() error = %v", err)
			}
			tt.validateFunc(t, plan)
		})
	}
}
