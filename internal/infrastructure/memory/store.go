// Package memory is an in-process ledger store. It backs local runs without a
// database and the engine tests, and honours the same version and uniqueness
// rules as the postgres repositories.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu sync.RWMutex

	members      map[string]*domain.Member
	order        []string
	transactions map[string][]*domain.WalletTransaction
	events       map[string]string
	batches      map[string]*domain.PayoutBatch
	batchKeys    map[string]string
	statusLogs   []domain.StatusLog

	rewardLevels     []domain.RewardLevel
	repurchaseLevels []domain.RepurchaseLevel

	// SaveHook, when set, runs before every member write and can fail it.
	SaveHook func(memberID string) error
}

func NewStore() *Store {
	return &Store{
		members:      make(map[string]*domain.Member),
		transactions: make(map[string][]*domain.WalletTransaction),
		events:       make(map[string]string),
		batches:      make(map[string]*domain.PayoutBatch),
		batchKeys:    make(map[string]string),
	}
}

func (s *Store) GetMemberByID(_ context.Context, memberID string) (*domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[memberID]
	if !ok {
		return nil, fmt.Errorf("member %s: %w", memberID, domain.ErrMemberNotFound)
	}
	return m.Clone(), nil
}

func (s *Store) GetDirectRecruits(_ context.Context, sponsorID string) ([]*domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recruits []*domain.Member
	for _, id := range s.order {
		if m := s.members[id]; m.SponsorID == sponsorID && sponsorID != "" {
			recruits = append(recruits, m.Clone())
		}
	}
	return recruits, nil
}

func (s *Store) GetChild(_ context.Context, parentID string, side domain.Position) (*domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if m := s.members[id]; m.ParentID == parentID && m.Position == side {
			return m.Clone(), nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (s *Store) CreateMember(_ context.Context, member *domain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[member.ID]; ok {
		return domain.ErrMemberExists
	}
	s.members[member.ID] = member.Clone()
	s.order = append(s.order, member.ID)
	return nil
}

func (s *Store) SaveMember(_ context.Context, member *domain.Member, entries []*domain.WalletTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(member, entries)
}

func (s *Store) saveLocked(member *domain.Member, entries []*domain.WalletTransaction) error {
	if s.SaveHook != nil {
		if err := s.SaveHook(member.ID); err != nil {
			return err
		}
	}
	current, ok := s.members[member.ID]
	if !ok {
		return fmt.Errorf("member %s: %w", member.ID, domain.ErrMemberNotFound)
	}
	if current.Version != member.Version {
		return fmt.Errorf("member %s at version %d: %w", member.ID, member.Version, domain.ErrVersionConflict)
	}

	member.Version++
	member.UpdatedAt = time.Now()
	s.members[member.ID] = member.Clone()
	for _, entry := range entries {
		e := *entry
		s.transactions[member.ID] = append(s.transactions[member.ID], &e)
	}
	return nil
}

func (s *Store) FindMembersWithWallet(_ context.Context, wallet domain.WalletType, minAmount decimal.Decimal, afterID string, limit int) ([]*domain.Member, error) {
	return s.page(afterID, limit, func(m *domain.Member) bool {
		balance := m.Wallet(wallet)
		return balance.IsPositive() && balance.GreaterThanOrEqual(minAmount)
	}), nil
}

func (s *Store) FindMembersWithDeposit(_ context.Context, afterID string, limit int) ([]*domain.Member, error) {
	return s.page(afterID, limit, func(m *domain.Member) bool {
		return m.SecurityDeposit.IsPositive() && m.SDRPercentage.IsPositive()
	}), nil
}

// page returns matching members ordered by id after afterID, like a keyset query.
func (s *Store) page(afterID string, limit int, match func(*domain.Member) bool) []*domain.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.members))
	for id := range s.members {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var out []*domain.Member
	for _, id := range ids {
		if limit > 0 && len(out) >= limit {
			break
		}
		if m := s.members[id]; match(m) {
			out = append(out, m.Clone())
		}
	}
	return out
}

func (s *Store) GetTransactions(_ context.Context, memberID string) ([]*domain.WalletTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := make([]*domain.WalletTransaction, 0, len(s.transactions[memberID]))
	for _, tx := range s.transactions[memberID] {
		e := *tx
		txs = append(txs, &e)
	}
	return txs, nil
}

// PutMember stores a member as is, replacing any existing row. Used to seed state.
func (s *Store) PutMember(member *domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[member.ID]; !ok {
		s.order = append(s.order, member.ID)
	}
	s.members[member.ID] = member.Clone()
}

func (s *Store) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.events[key]
	return ok, nil
}

func (s *Store) MarkProcessed(_ context.Context, key, kind string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[key]; ok {
		return domain.ErrDuplicateEvent
	}
	s.events[key] = kind
	return nil
}

func (s *Store) LogStatusChange(_ context.Context, entry domain.StatusLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusLogs = append(s.statusLogs, entry)
	return nil
}

func (s *Store) StatusLogs() []domain.StatusLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.StatusLog, len(s.statusLogs))
	copy(out, s.statusLogs)
	return out
}
