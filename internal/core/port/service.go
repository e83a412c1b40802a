package port

import (
	"context"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/govalues/decimal"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	RegisterPartner(ctx context.Context, phone, password, channel string) (*domain.Partner, error)
	LoginPartner(ctx context.Context, phone, password string) (string, error)

	Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseResult, error)
	Settle(ctx context.Context, req domain.SettleRequest) (*domain.Settlement, error)
	PollOrder(ctx context.Context, ref domain.OrderRef) (*domain.PollResult, error)
	HandleNotification(ctx context.Context, headers domain.NotificationHeaders, rawBody []byte) error

	Balance(ctx context.Context, account string) (int64, error)
	History(ctx context.Context, account string) ([]*domain.LedgerEntry, error)
	Profile(ctx context.Context, account string) (*domain.Profile, error)
	Consume(ctx context.Context, channel, account string, credits int64, remark string) (*domain.ConsumeResult, error)
	ManualRecharge(ctx context.Context, channel, account string, amount decimal.Decimal) (*domain.RechargeResult, error)
	Reconcile(ctx context.Context) (int, error)

	DealerOrders(ctx context.Context, channel string) ([]*domain.Settlement, error)
	DealerAccounts(ctx context.Context, channel string) ([]*domain.AccountSummary, error)
	DealerAccountLogs(ctx context.Context, channel, account string) ([]domain.LogEntry, error)
	RevealSecret(token string) *string
}
