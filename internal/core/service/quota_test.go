package service_test

import (
	"context"
	"testing"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ConsumeGuard(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.order(t, "zwsk_1_abc", 20000, 10000)
	ctx := context.Background()
	_, err := f.svc.Settle(ctx, domain.SettleRequest{OrderRef: "zwsk_1_abc", Source: domain.SourceQuery})
	require.NoError(t, err)

	tests := []struct {
		name       string
		channel    string
		account    string
		credits    int64
		expError   error
		expBalance int64
	}{
		{name: "Debit within balance", channel: "acme", account: "u-1", credits: 4000, expBalance: 6000},
		{name: "Debit over balance", channel: "acme", account: "u-1", credits: 6001, expError: domain.ErrInsufficientBalance},
		{name: "Debit exact balance", channel: "acme", account: "u-1", credits: 6000, expBalance: 0},
		{name: "Debit from empty", channel: "acme", account: "u-1", credits: 1, expError: domain.ErrInsufficientBalance},
		{name: "Zero credits", channel: "acme", account: "u-1", credits: 0, expError: domain.ErrBadAmount},
		{name: "Unknown account", channel: "acme", account: "ghost", credits: 1, expError: domain.ErrAccountNotFound},
		{name: "Foreign channel", channel: "other", account: "u-1", credits: 1, expError: domain.ErrForbidden},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			before := len(f.entries(t))
			res, err := f.svc.Consume(ctx, test.channel, test.account, test.credits, "api call")
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Len(t, f.entries(t), before)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expBalance, res.Balance)
			assert.Equal(t, test.expBalance, f.balance(t))
			assert.Len(t, f.entries(t), before+1)
		})
	}

	assert.GreaterOrEqual(t, f.balance(t), int64(0))
}

func TestService_ManualRecharge(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	res, err := f.svc.ManualRecharge(ctx, "acme", "u-1", decimal.MustNew(12345, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(1234), res.Credits)
	assert.Equal(t, int64(1234), res.Balance)

	entries := f.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionManualRecharge, entries[0].Action)
	assert.Equal(t, domain.QuotaSourceManual, entries[0].Source)
	assert.Nil(t, entries[0].OrderRef)

	snap, err := f.store.ReadSnapshot(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), snap.TotalRecharged)

	for _, bad := range []decimal.Decimal{decimal.Zero, decimal.MustNew(-5, 0), decimal.MustNew(1, 3)} {
		_, err := f.svc.ManualRecharge(ctx, "acme", "u-1", bad)
		assert.ErrorIs(t, err, domain.ErrBadAmount, bad.String())
	}
	_, err = f.svc.ManualRecharge(ctx, "other", "u-1", decimal.One)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_BalanceIsFoldOfDeltas(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	f.order(t, "zwsk_1_a", 100000, 100000)
	f.order(t, "zwsk_2_b", 20000, 10000)
	for _, ref := range []domain.OrderRef{"zwsk_1_a", "zwsk_2_b"} {
		_, err := f.svc.Settle(ctx, domain.SettleRequest{OrderRef: ref, Source: domain.SourceNotify})
		require.NoError(t, err)
	}
	_, err := f.svc.Consume(ctx, "acme", "u-1", 2500, "")
	require.NoError(t, err)
	_, err = f.svc.ManualRecharge(ctx, "acme", "u-1", decimal.MustNew(3, 0))
	require.NoError(t, err)
	_, err = f.svc.Consume(ctx, "acme", "u-1", 7800, "")
	require.NoError(t, err)

	balance, err := f.svc.Balance(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SumDeltas(f.entries(t)), balance)
	assert.Equal(t, int64(100000+10000-2500+300-7800), balance)

	logs, err := f.svc.DealerAccountLogs(ctx, "acme", "u-1")
	require.NoError(t, err)
	require.Len(t, logs, 5)
	assert.Equal(t, balance, logs[0].RunningBalance)
	assert.Equal(t, domain.ActionConsume, logs[0].Action)
	assert.Equal(t, int64(100000), logs[4].RunningBalance)
	for i := 0; i < len(logs)-1; i++ {
		assert.Equal(t, logs[i+1].RunningBalance+logs[i].Delta, logs[i].RunningBalance)
	}

	history, err := f.svc.History(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, int64(-7800), history[0].Delta)

	profile, err := f.svc.Profile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceActive, profile.Status)
	assert.Equal(t, "member-1", profile.Username)

	// Reads are pure.
	assert.Len(t, f.entries(t), 5)

	_, err = f.svc.DealerAccountLogs(ctx, "other", "u-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.svc.Balance(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestService_ProfilePendingWithoutQuota(t *testing.T) {
	f := newFixture(t, nil, nil)
	profile, err := f.svc.Profile(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ServicePending, profile.Status)
	assert.Zero(t, profile.Balance)
}

func TestService_DealerProjections(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	f.order(t, "zwsk_1_a", 100000, 100000)
	f.order(t, "zwsk_2_b", 20000, 10000)
	_, err := f.svc.Settle(ctx, domain.SettleRequest{OrderRef: "zwsk_1_a", Source: domain.SourceNotify})
	require.NoError(t, err)

	orders, err := f.svc.DealerOrders(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	statuses := map[domain.OrderRef]domain.OrderStatus{}
	for _, o := range orders {
		statuses[o.OrderRef] = o.Status
		require.NotNil(t, o.Password)
		assert.Equal(t, "123456", *o.Password)
	}
	assert.Equal(t, domain.OrderStatusPaid, statuses["zwsk_1_a"])
	assert.Equal(t, domain.OrderStatusPending, statuses["zwsk_2_b"])

	accounts, err := f.svc.DealerAccounts(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, int64(100000), accounts[0].Balance)
	assert.NotNil(t, accounts[0].LastRechargeAt)

	none, err := f.svc.DealerAccounts(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_Reconcile(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	f.order(t, "zwsk_1_a", 100000, 100000)
	_, err := f.svc.Settle(ctx, domain.SettleRequest{OrderRef: "zwsk_1_a", Source: domain.SourceNotify})
	require.NoError(t, err)
	_, err = f.svc.ManualRecharge(ctx, "acme", "u-1", decimal.MustNew(5, 0))
	require.NoError(t, err)
	_, err = f.svc.Consume(ctx, "acme", "u-1", 100, "")
	require.NoError(t, err)

	before, err := f.store.ReadSnapshot(ctx, "u-1")
	require.NoError(t, err)

	n, err := f.svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	after, err := f.store.ReadSnapshot(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, before.TotalRecharged, after.TotalRecharged)
	assert.Equal(t, int64(100500), after.TotalRecharged)
}
