package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
)

// Store is an in-memory port.Repository. Transactions lock orders and users with keyed
// locks and buffer their writes until commit.
type Store struct {
	mu sync.RWMutex

	partners      map[string]domain.Partner
	nextPartnerID int64
	users         map[string]domain.User
	orders        map[domain.OrderRef]domain.Order
	entries       []domain.LedgerEntry
	nextEntryID   int64
	snapshots     map[string]domain.QuotaSnapshot

	orderLocks *keyedLocks
	userLocks  *keyedLocks
	lockWait   time.Duration
}

// NewStore creates an empty store. lockWait bounds how long a transaction waits for a row
// lock; zero means wait until ctx is done.
func NewStore(lockWait time.Duration) *Store {
	return &Store{
		partners:   make(map[string]domain.Partner),
		users:      make(map[string]domain.User),
		orders:     make(map[domain.OrderRef]domain.Order),
		entries:    make([]domain.LedgerEntry, 0),
		snapshots:  make(map[string]domain.QuotaSnapshot),
		orderLocks: newKeyedLocks(),
		userLocks:  newKeyedLocks(),
		lockWait:   lockWait,
	}
}

var _ port.Repository = (*Store)(nil)

func (s *Store) CreatePartner(_ context.Context, partner *domain.Partner) (*domain.Partner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.partners[partner.Phone]; ok {
		return nil, domain.ErrConflictingData
	}
	for _, p := range s.partners {
		if p.ChannelName == partner.ChannelName {
			return nil, domain.ErrConflictingData
		}
	}

	s.nextPartnerID++
	partner.ID = s.nextPartnerID
	s.partners[partner.Phone] = *partner
	return partner, nil
}

func (s *Store) GetPartnerByPhone(_ context.Context, phone string) (*domain.Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.partners[phone]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return &p, nil
}

func (s *Store) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return nil, domain.ErrConflictingData
	}
	for _, u := range s.users {
		if u.Username == user.Username {
			return nil, domain.ErrConflictingData
		}
	}
	s.users[user.ID] = *user
	return user, nil
}

func (s *Store) GetUser(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return &u, nil
}

func (s *Store) CountUsers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *Store) CreateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.Ref]; ok {
		return nil, domain.ErrConflictingData
	}
	if _, ok := s.users[order.UserID]; !ok {
		return nil, domain.ErrDataNotFound
	}
	s.orders[order.Ref] = *order
	return order, nil
}

func (s *Store) ReadOrder(_ context.Context, ref domain.OrderRef) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[ref]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return &o, nil
}

func (s *Store) ListOrdersByChannel(_ context.Context, channel string, limit uint64) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*domain.Order, 0)
	for _, o := range s.orders {
		if o.ChannelName == channel {
			o := o
			list = append(list, &o)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Ref > list[j].Ref
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if limit > 0 && uint64(len(list)) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *Store) balanceLocked(userID string) int64 {
	var sum int64
	for i := range s.entries {
		if s.entries[i].UserID == userID {
			sum += s.entries[i].Delta
		}
	}
	return sum
}

func (s *Store) Balance(_ context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balanceLocked(userID), nil
}

func (s *Store) ListEntries(_ context.Context, userID string, order domain.SortOrder,
	limit uint64) ([]*domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*domain.LedgerEntry, 0)
	for i := range s.entries {
		if s.entries[i].UserID == userID {
			e := s.entries[i]
			list = append(list, &e)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	if order == domain.NewestFirst {
		for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
			list[i], list[j] = list[j], list[i]
		}
	}
	if limit > 0 && uint64(len(list)) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *Store) ListAccountsByChannel(_ context.Context, channel string) ([]*domain.AccountSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byUser := make(map[string]*domain.AccountSummary)
	users := make([]domain.User, 0)
	for _, u := range s.users {
		if u.ChannelName != channel {
			continue
		}
		users = append(users, u)
		byUser[u.ID] = &domain.AccountSummary{
			UserID:      u.ID,
			Username:    u.Username,
			PasswordEnc: u.PasswordEnc,
		}
	}

	for i := range s.entries {
		e := &s.entries[i]
		summary, ok := byUser[e.UserID]
		if !ok {
			continue
		}
		summary.Balance += e.Delta
		if e.IsRecharge() && (summary.LastRechargeAt == nil || e.CreatedAt.After(*summary.LastRechargeAt)) {
			at := e.CreatedAt
			summary.LastRechargeAt = &at
		}
	}

	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	list := make([]*domain.AccountSummary, 0, len(users))
	for _, u := range users {
		list = append(list, byUser[u.ID])
	}
	return list, nil
}

func (s *Store) ReadSnapshot(_ context.Context, userID string) (*domain.QuotaSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[userID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return &snap, nil
}

func (s *Store) RebuildSnapshots(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	rebuilt := make(map[string]domain.QuotaSnapshot)
	for i := range s.entries {
		e := &s.entries[i]
		if !e.IsRecharge() {
			continue
		}
		snap := rebuilt[e.UserID]
		snap.UserID = e.UserID
		snap.TotalRecharged += e.Delta
		snap.Source = e.Source
		snap.UpdatedAt = now
		rebuilt[e.UserID] = snap
	}
	s.snapshots = rebuilt
	return len(rebuilt), nil
}
