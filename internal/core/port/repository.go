package port

import (
	"context"
	"time"

	"github.com/MikeRez0/quotapay/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Partner
	CreatePartner(ctx context.Context, partner *domain.Partner) (*domain.Partner, error)
	GetPartnerByPhone(ctx context.Context, phone string) (*domain.Partner, error)

	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	CountUsers(ctx context.Context) (int64, error)

	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, ref domain.OrderRef) (*domain.Order, error)
	ListOrdersByChannel(ctx context.Context, channel string, limit uint64) ([]*domain.Order, error)

	// Ledger
	Balance(ctx context.Context, userID string) (int64, error)
	ListEntries(ctx context.Context, userID string, order domain.SortOrder, limit uint64) ([]*domain.LedgerEntry, error)
	ListAccountsByChannel(ctx context.Context, channel string) ([]*domain.AccountSummary, error)
	ReadSnapshot(ctx context.Context, userID string) (*domain.QuotaSnapshot, error)
	RebuildSnapshots(ctx context.Context) (int, error)

	// WithinTx runs fn in one transaction; any error returned by fn rolls it back.
	WithinTx(ctx context.Context, fn TxFn) error
}

type TxFn func(ctx context.Context, tx LedgerTx) error

// LedgerTx is the set of locked reads and writes available inside a transaction.
type LedgerTx interface {
	// LockOrder blocks concurrent lockers of the same order until the transaction ends.
	LockOrder(ctx context.Context, ref domain.OrderRef) (*domain.Order, error)
	LockUser(ctx context.Context, userID string) (*domain.User, error)
	MarkOrderPaid(ctx context.Context, ref domain.OrderRef, transactionID string, paidAt time.Time) error
	AppendEntry(ctx context.Context, entry *domain.LedgerEntry) error
	AddRecharged(ctx context.Context, userID string, quota int64, source domain.QuotaSource, at time.Time) error
	// Balance sees the writes made earlier in the same transaction.
	Balance(ctx context.Context, userID string) (int64, error)
}
