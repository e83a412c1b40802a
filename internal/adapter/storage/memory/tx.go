package memory

import (
	"context"
	"time"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
)

type paidUpdate struct {
	transactionID string
	paidAt        time.Time
}

type rechargeUpdate struct {
	quota  int64
	source domain.QuotaSource
	at     time.Time
}

// memTx buffers writes until commit. Locks it holds are released when the transaction ends.
type memTx struct {
	store    *Store
	releases []func()
	held     map[string]bool

	paid      map[domain.OrderRef]paidUpdate
	entries   []*domain.LedgerEntry
	recharges map[string][]rechargeUpdate
}

func (s *Store) WithinTx(ctx context.Context, fn port.TxFn) error {
	t := &memTx{
		store:     s,
		held:      make(map[string]bool),
		paid:      make(map[domain.OrderRef]paidUpdate),
		recharges: make(map[string][]rechargeUpdate),
	}
	defer t.release()

	if err := fn(ctx, t); err != nil {
		return err
	}
	return s.commit(t)
}

func (t *memTx) release() {
	for i := len(t.releases) - 1; i >= 0; i-- {
		t.releases[i]()
	}
	t.releases = nil
}

func (t *memTx) lock(ctx context.Context, locks *keyedLocks, key string) error {
	if t.held[key] {
		return nil
	}
	if t.store.lockWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.store.lockWait)
		defer cancel()
	}
	unlock, err := locks.acquire(ctx, key)
	if err != nil {
		return err
	}
	t.held[key] = true
	t.releases = append(t.releases, unlock)
	return nil
}

func (t *memTx) LockOrder(ctx context.Context, ref domain.OrderRef) (*domain.Order, error) {
	if err := t.lock(ctx, t.store.orderLocks, "order:"+string(ref)); err != nil {
		return nil, err
	}

	order, err := t.store.ReadOrder(ctx, ref)
	if err != nil {
		return nil, err
	}
	if upd, ok := t.paid[ref]; ok {
		applyPaid(order, upd)
	}
	return order, nil
}

func (t *memTx) LockUser(ctx context.Context, userID string) (*domain.User, error) {
	if err := t.lock(ctx, t.store.userLocks, "user:"+userID); err != nil {
		return nil, err
	}
	return t.store.GetUser(ctx, userID)
}

func (t *memTx) MarkOrderPaid(ctx context.Context, ref domain.OrderRef, transactionID string, paidAt time.Time) error {
	order, err := t.store.ReadOrder(ctx, ref)
	if err != nil {
		return err
	}
	if _, ok := t.paid[ref]; ok || order.IsPaid() {
		return domain.ErrConflictingData
	}
	t.paid[ref] = paidUpdate{transactionID: transactionID, paidAt: paidAt}
	return nil
}

func (t *memTx) AppendEntry(_ context.Context, entry *domain.LedgerEntry) error {
	if entry.OrderRef != nil {
		for _, e := range t.entries {
			if e.OrderRef != nil && *e.OrderRef == *entry.OrderRef {
				return domain.ErrConflictingData
			}
		}
		t.store.mu.RLock()
		dup := t.store.hasEntryForOrderLocked(*entry.OrderRef)
		t.store.mu.RUnlock()
		if dup {
			return domain.ErrConflictingData
		}
	}
	t.entries = append(t.entries, entry)
	return nil
}

func (t *memTx) AddRecharged(_ context.Context, userID string, quota int64,
	source domain.QuotaSource, at time.Time) error {
	t.recharges[userID] = append(t.recharges[userID], rechargeUpdate{quota: quota, source: source, at: at})
	return nil
}

func (t *memTx) Balance(ctx context.Context, userID string) (int64, error) {
	sum, err := t.store.Balance(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, e := range t.entries {
		if e.UserID == userID {
			sum += e.Delta
		}
	}
	return sum, nil
}

func applyPaid(order *domain.Order, upd paidUpdate) {
	paidAt := upd.paidAt
	order.Status = domain.OrderStatusPaid
	order.TransactionID = upd.transactionID
	order.PaidAt = &paidAt
}

func (s *Store) hasEntryForOrderLocked(ref domain.OrderRef) bool {
	for i := range s.entries {
		if s.entries[i].OrderRef != nil && *s.entries[i].OrderRef == ref {
			return true
		}
	}
	return false
}

// commit validates and applies all buffered writes atomically.
func (s *Store) commit(t *memTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ref := range t.paid {
		order, ok := s.orders[ref]
		if !ok {
			return domain.ErrDataNotFound
		}
		if order.IsPaid() {
			return domain.ErrConflictingData
		}
	}
	for _, e := range t.entries {
		if _, ok := s.users[e.UserID]; !ok {
			return domain.ErrDataNotFound
		}
		if e.OrderRef != nil && s.hasEntryForOrderLocked(*e.OrderRef) {
			return domain.ErrConflictingData
		}
	}

	for ref, upd := range t.paid {
		order := s.orders[ref]
		applyPaid(&order, upd)
		s.orders[ref] = order
	}
	for _, e := range t.entries {
		s.nextEntryID++
		e.ID = s.nextEntryID
		s.entries = append(s.entries, *e)
	}
	for userID, updates := range t.recharges {
		snap := s.snapshots[userID]
		snap.UserID = userID
		for _, u := range updates {
			snap.TotalRecharged += u.quota
			snap.Source = u.source
			snap.UpdatedAt = u.at
		}
		s.snapshots[userID] = snap
	}
	return nil
}
