package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
	"github.com/MikeRez0/quotapay/internal/core/port/mock"
	"github.com/MikeRez0/quotapay/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type prepareTx func(tx *mock.MockLedgerTx, metrics *mock.MockSettlementMetrics, events *mock.MockEventPublisher)

func TestService_Settle(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger := zap.NewNop()
	paidAt := time.Date(2024, 5, 1, 10, 5, 0, 0, time.UTC)

	pending := func() *domain.Order {
		return &domain.Order{
			Ref: "zwsk_1_abc", UserID: "u-1", ChannelName: "acme",
			AmountFen: 100000, Quota: 100000, Status: domain.OrderStatusPending, CreatedAt: created,
		}
	}
	paid := pending()
	paid.Status = domain.OrderStatusPaid
	paid.TransactionID = "4200001"
	paid.PaidAt = &paidAt
	user := &domain.User{ID: "u-1", ChannelName: "acme"}

	tests := []struct {
		name        string
		req         domain.SettleRequest
		mock        prepareTx
		expError    error
		expCredited bool
		expBalance  int64
	}{
		{
			name: "Pending order is credited",
			req: domain.SettleRequest{
				OrderRef: "zwsk_1_abc", ObservedAmount: int64Ptr(100000),
				GatewayTxnID: "4200001", PaidAt: &paidAt, Source: domain.SourceNotify,
			},
			mock: func(tx *mock.MockLedgerTx, metrics *mock.MockSettlementMetrics, events *mock.MockEventPublisher) {
				gomock.InOrder(
					tx.EXPECT().LockOrder(gomock.Any(), domain.OrderRef("zwsk_1_abc")).Return(pending(), nil),
					tx.EXPECT().LockUser(gomock.Any(), "u-1").Return(user, nil),
					tx.EXPECT().MarkOrderPaid(gomock.Any(), domain.OrderRef("zwsk_1_abc"), "4200001", paidAt).Return(nil),
					tx.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, e *domain.LedgerEntry) error {
							assert.Equal(t, int64(100000), e.Delta)
							assert.Equal(t, domain.ActionPayRecharge, e.Action)
							assert.Equal(t, domain.QuotaSourceGateway, e.Source)
							require.NotNil(t, e.OrderRef)
							assert.Equal(t, domain.OrderRef("zwsk_1_abc"), *e.OrderRef)
							return nil
						}),
					tx.EXPECT().AddRecharged(gomock.Any(), "u-1", int64(100000), domain.QuotaSourceGateway, gomock.Any()).Return(nil),
					tx.EXPECT().Balance(gomock.Any(), "u-1").Return(int64(100000), nil),
				)
				metrics.EXPECT().ObserveSettlement(domain.SourceNotify, service.OutcomeCredited)
				events.EXPECT().PublishOrderSettled(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, e domain.OrderSettled) error {
						assert.Equal(t, domain.OrderRef("zwsk_1_abc"), e.OrderRef)
						assert.Equal(t, int64(100000), e.Quota)
						assert.Equal(t, paidAt, e.SettledAt)
						return errors.New("broker down")
					})
			},
			expCredited: true,
			expBalance:  100000,
		},
		{
			name: "Paid order is not credited again",
			req:  domain.SettleRequest{OrderRef: "zwsk_1_abc", Source: domain.SourceQuery},
			mock: func(tx *mock.MockLedgerTx, metrics *mock.MockSettlementMetrics, events *mock.MockEventPublisher) {
				tx.EXPECT().LockOrder(gomock.Any(), domain.OrderRef("zwsk_1_abc")).Return(paid, nil)
				tx.EXPECT().LockUser(gomock.Any(), "u-1").Return(user, nil)
				tx.EXPECT().Balance(gomock.Any(), "u-1").Return(int64(100000), nil)
				metrics.EXPECT().ObserveSettlement(domain.SourceQuery, service.OutcomeAlreadyPaid)
			},
			expCredited: false,
			expBalance:  100000,
		},
		{
			name: "Unknown order",
			req:  domain.SettleRequest{OrderRef: "zwsk_9_nope", Source: domain.SourceNotify},
			mock: func(tx *mock.MockLedgerTx, metrics *mock.MockSettlementMetrics, events *mock.MockEventPublisher) {
				tx.EXPECT().LockOrder(gomock.Any(), domain.OrderRef("zwsk_9_nope")).Return(nil, domain.ErrDataNotFound)
				metrics.EXPECT().ObserveSettlement(domain.SourceNotify, service.OutcomeNotFound)
			},
			expError: domain.ErrOrderNotFound,
		},
		{
			name: "Observed amount differs",
			req: domain.SettleRequest{
				OrderRef: "zwsk_1_abc", ObservedAmount: int64Ptr(1), Source: domain.SourceNotify,
			},
			mock: func(tx *mock.MockLedgerTx, metrics *mock.MockSettlementMetrics, events *mock.MockEventPublisher) {
				tx.EXPECT().LockOrder(gomock.Any(), domain.OrderRef("zwsk_1_abc")).Return(pending(), nil)
				metrics.EXPECT().ObserveSettlement(domain.SourceNotify, service.OutcomeMismatch)
			},
			expError: domain.ErrAmountMismatch,
		},
		{
			name: "Lock wait timeout",
			req:  domain.SettleRequest{OrderRef: "zwsk_1_abc", Source: domain.SourceNotify},
			mock: func(tx *mock.MockLedgerTx, metrics *mock.MockSettlementMetrics, events *mock.MockEventPublisher) {
				tx.EXPECT().LockOrder(gomock.Any(), domain.OrderRef("zwsk_1_abc")).Return(nil, domain.ErrTransientStore)
				metrics.EXPECT().ObserveSettlement(domain.SourceNotify, service.OutcomeTransient)
			},
			expError: domain.ErrTransientStore,
		},
		{
			name: "Write failure rolls back",
			req:  domain.SettleRequest{OrderRef: "zwsk_1_abc", Source: domain.SourceNotify},
			mock: func(tx *mock.MockLedgerTx, metrics *mock.MockSettlementMetrics, events *mock.MockEventPublisher) {
				tx.EXPECT().LockOrder(gomock.Any(), gomock.Any()).Return(pending(), nil)
				tx.EXPECT().LockUser(gomock.Any(), "u-1").Return(user, nil)
				tx.EXPECT().MarkOrderPaid(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(domain.ErrConflictingData)
				metrics.EXPECT().ObserveSettlement(domain.SourceNotify, service.OutcomeFailed)
			},
			expError: domain.ErrConflictingData,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			tx := mock.NewMockLedgerTx(mockCtrl)
			metrics := mock.NewMockSettlementMetrics(mockCtrl)
			events := mock.NewMockEventPublisher(mockCtrl)
			repo.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, fn port.TxFn) error { return fn(ctx, tx) })
			test.mock(tx, metrics, events)

			s, err := service.NewService(repo, nil, nil, nil, nil, logger,
				service.WithMetrics(metrics), service.WithEventPublisher(events))
			assert.NoError(t, err)

			result, err := s.Settle(context.Background(), test.req)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expCredited, result.Credited)
			assert.Equal(t, test.expBalance, result.Balance)
			assert.Equal(t, domain.OrderStatusPaid, result.Status)
			assert.Equal(t, domain.PlanFormal, result.Plan)
			assert.Equal(t, "u-1", result.Account)
			assert.Nil(t, result.Password)
		})
	}
}

func TestSettle_Idempotent(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.order(t, "zwsk_1_abc", 20000, 10000)
	ctx := context.Background()
	req := domain.SettleRequest{OrderRef: "zwsk_1_abc", GatewayTxnID: "4200001", Source: domain.SourceNotify}

	first, err := f.svc.Settle(ctx, req)
	require.NoError(t, err)
	assert.True(t, first.Credited)
	assert.Equal(t, int64(10000), first.Balance)
	require.NotNil(t, first.Password)
	assert.Equal(t, "123456", *first.Password)
	assert.Equal(t, domain.PlanTrial, first.Plan)

	for i := 0; i < 3; i++ {
		again, err := f.svc.Settle(ctx, req)
		require.NoError(t, err)
		assert.False(t, again.Credited)
		assert.Equal(t, int64(10000), again.Balance)
		assert.Equal(t, first.PaidAt, again.PaidAt)
	}

	assert.Len(t, f.entries(t), 1)
	assert.Equal(t, int64(10000), f.balance(t))
}

func TestSettle_ConcurrentCallsCreditOnce(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	events := mock.NewMockEventPublisher(mockCtrl)
	events.EXPECT().PublishOrderSettled(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	f := newFixture(t, nil, nil, service.WithEventPublisher(events))
	f.order(t, "zwsk_1_abc", 100000, 100000)

	const callers = 32
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		credited int
		failed   int
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		source := domain.SourceNotify
		if i%2 == 0 {
			source = domain.SourceQuery
		}
		go func() {
			defer wg.Done()
			<-start
			res, err := f.svc.Settle(context.Background(), domain.SettleRequest{
				OrderRef: "zwsk_1_abc", ObservedAmount: int64Ptr(100000), Source: source,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				return
			}
			if res.Credited {
				credited++
			}
			assert.Equal(t, int64(100000), res.Balance)
		}()
	}
	close(start)
	wg.Wait()

	assert.Zero(t, failed)
	assert.Equal(t, 1, credited)
	assert.Len(t, f.entries(t), 1)
	assert.Equal(t, int64(100000), f.balance(t))
}

func TestSettle_AmountMismatchLeavesOrderPending(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.order(t, "zwsk_1_abc", 100000, 100000)
	ctx := context.Background()

	_, err := f.svc.Settle(ctx, domain.SettleRequest{
		OrderRef: "zwsk_1_abc", ObservedAmount: int64Ptr(99999), Source: domain.SourceNotify,
	})
	assert.ErrorIs(t, err, domain.ErrAmountMismatch)

	order, err := f.store.ReadOrder(ctx, "zwsk_1_abc")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Empty(t, f.entries(t))

	res, err := f.svc.Settle(ctx, domain.SettleRequest{
		OrderRef: "zwsk_1_abc", ObservedAmount: int64Ptr(100000), Source: domain.SourceNotify,
	})
	require.NoError(t, err)
	assert.True(t, res.Credited)
}

func TestSettle_ZeroQuotaWritesNoEntry(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.order(t, "zwsk_1_zero", 1, 0)

	res, err := f.svc.Settle(context.Background(), domain.SettleRequest{OrderRef: "zwsk_1_zero", Source: domain.SourceQuery})
	require.NoError(t, err)
	assert.True(t, res.Credited)
	assert.Equal(t, domain.OrderStatusPaid, res.Status)
	assert.Empty(t, f.entries(t))
}

func TestSettle_DetachedFromCallerCancellation(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.order(t, "zwsk_1_abc", 100000, 100000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := f.svc.Settle(ctx, domain.SettleRequest{OrderRef: "zwsk_1_abc", Source: domain.SourceNotify})
	require.NoError(t, err)
	assert.True(t, res.Credited)
	assert.Equal(t, int64(100000), f.balance(t))
}

func TestSettle_UndecryptableSecretIsOmitted(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.order(t, "zwsk_1_abc", 100000, 100000)
	_, err := f.store.CreateUser(context.Background(), &domain.User{
		ID: "u-2", Username: "member-2", ChannelName: "acme", PasswordEnc: "legacy-plaintext",
	})
	require.NoError(t, err)
	_, err = f.store.CreateOrder(context.Background(), &domain.Order{
		Ref: "zwsk_2_def", UserID: "u-2", ChannelName: "acme", AmountFen: 100, Quota: 1,
		Status: domain.OrderStatusPending, CreatedAt: created,
	})
	require.NoError(t, err)

	res, err := f.svc.Settle(context.Background(), domain.SettleRequest{OrderRef: "zwsk_2_def", Source: domain.SourceQuery})
	require.NoError(t, err)
	assert.Nil(t, res.Password)
}
