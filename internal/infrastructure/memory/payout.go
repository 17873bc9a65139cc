package memory

import (
	"context"
	"sort"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

func batchKey(b *domain.PayoutBatch) string {
	return b.MemberID + "|" + string(b.Category) + "|" + b.Period
}

func (s *Store) CreateBatch(_ context.Context, batch *domain.PayoutBatch, member *domain.Member, debit *domain.WalletTransaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := batchKey(batch)
	if _, ok := s.batchKeys[key]; ok {
		return false, nil
	}

	var entries []*domain.WalletTransaction
	if debit != nil {
		entries = append(entries, debit)
	}
	if err := s.saveLocked(member, entries); err != nil {
		return false, err
	}

	b := *batch
	s.batches[b.ID] = &b
	s.batchKeys[key] = b.ID
	return true, nil
}

func (s *Store) GetBatchByID(_ context.Context, batchID string) (*domain.PayoutBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.batches[batchID]
	if !ok {
		return nil, domain.ErrBatchNotFound
	}
	out := *b
	return &out, nil
}

func (s *Store) GetBatchesByMemberID(_ context.Context, memberID string) ([]*domain.PayoutBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.PayoutBatch
	for _, b := range s.batches {
		if b.MemberID == memberID {
			c := *b
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Category < out[j].Category
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) MarkBatchPaid(_ context.Context, batchID string, paidAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.batches[batchID]
	if !ok {
		return domain.ErrBatchNotFound
	}
	if b.IsPaid {
		return nil
	}
	b.IsPaid = true
	at := paidAt
	b.PaidAt = &at
	return nil
}

func (s *Store) GetRewardLevels(_ context.Context) ([]domain.RewardLevel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.RewardLevel, len(s.rewardLevels))
	copy(out, s.rewardLevels)
	return out, nil
}

func (s *Store) GetRepurchaseLevels(_ context.Context) ([]domain.RepurchaseLevel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.RepurchaseLevel, len(s.repurchaseLevels))
	copy(out, s.repurchaseLevels)
	return out, nil
}

// SeedPlan keeps levels already present, like the SQL seed.
func (s *Store) SeedPlan(_ context.Context, plan domain.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	have := make(map[int]bool)
	for _, l := range s.rewardLevels {
		have[l.Level] = true
	}
	for _, l := range plan.RewardLevels {
		if !have[l.Level] {
			s.rewardLevels = append(s.rewardLevels, l)
		}
	}

	have = make(map[int]bool)
	for _, l := range s.repurchaseLevels {
		have[l.Level] = true
	}
	for _, l := range plan.RepurchaseLevels {
		if !have[l.Level] {
			s.repurchaseLevels = append(s.repurchaseLevels, l)
		}
	}
	return nil
}
