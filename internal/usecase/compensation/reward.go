package compensation

import (
	"fmt"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

// advanceReward adds gold units to the reward balance and grants at most one
// ladder level per matching event, even if the balance overshoots further.
func (uc *DefaultCompensationUsecase) advanceReward(m *domain.Member, c *change, units int64) (int, bool) {
	if units <= 0 {
		return m.GoldRewardLevel, false
	}
	m.GoldRewardBalance += units

	next, ok := uc.Plan.NextReward(m.GoldRewardLevel)
	if !ok || m.GoldRewardBalance < next.Pairs {
		return m.GoldRewardLevel, false
	}

	uc.credit(m, c, domain.CategoryReward, m.Scale(next.Amount), m.ID,
		fmt.Sprintf("gold reward level %d for %d pairs", next.Level, next.Pairs))
	m.GoldRewardBalance = 0
	m.GoldRewardLevel++
	return m.GoldRewardLevel, true
}
