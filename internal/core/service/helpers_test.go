package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/MikeRez0/quotapay/internal/adapter/storage/memory"
	"github.com/MikeRez0/quotapay/internal/adapter/vault"
	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
	"github.com/MikeRez0/quotapay/internal/core/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var created = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *service.Service
	store *memory.Store
	vault *vault.Vault
	user  *domain.User
}

// newFixture wires a service over the in-memory store with one account of channel "acme".
func newFixture(t *testing.T, gateway port.PaymentGateway, verifier port.NotificationVerifier,
	opts ...service.Option) *fixture {
	t.Helper()

	store := memory.NewStore(time.Second)
	v, err := vault.New("vault-secret")
	require.NoError(t, err)

	enc, err := v.Encrypt([]byte("123456"))
	require.NoError(t, err)
	user, err := store.CreateUser(context.Background(), &domain.User{
		ID: "u-1", Username: "member-1", ChannelName: "acme", PasswordEnc: enc, CreatedAt: created,
	})
	require.NoError(t, err)

	svc, err := service.NewService(store, gateway, verifier, v, nil, zap.NewNop(), opts...)
	require.NoError(t, err)

	return &fixture{svc: svc, store: store, vault: v, user: user}
}

func (f *fixture) order(t *testing.T, ref domain.OrderRef, amountFen, quota int64) *domain.Order {
	t.Helper()
	order, err := f.store.CreateOrder(context.Background(), &domain.Order{
		Ref:         ref,
		UserID:      f.user.ID,
		ChannelName: f.user.ChannelName,
		AmountFen:   amountFen,
		Quota:       quota,
		Status:      domain.OrderStatusPending,
		CreatedAt:   created,
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) entries(t *testing.T) []*domain.LedgerEntry {
	t.Helper()
	list, err := f.store.ListEntries(context.Background(), f.user.ID, domain.OldestFirst, 0)
	require.NoError(t, err)
	return list
}

func (f *fixture) balance(t *testing.T) int64 {
	t.Helper()
	b, err := f.store.Balance(context.Background(), f.user.ID)
	require.NoError(t, err)
	return b
}

func int64Ptr(v int64) *int64 { return &v }

// successResource is the decrypted webhook resource for a successful payment.
func successResource(t *testing.T, ref domain.OrderRef, total int64) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"trade_state":    domain.TradeStateSuccess,
		"out_trade_no":   string(ref),
		"transaction_id": "4200001",
		"success_time":   "2024-05-01T18:00:00+08:00",
		"amount":         map[string]any{"total": total},
	})
	require.NoError(t, err)
	return raw
}

func envelope(t *testing.T) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"id":            "EV-1",
		"event_type":    "TRANSACTION.SUCCESS",
		"resource_type": domain.ResourceTypeEncrypted,
		"resource": map[string]any{
			"algorithm":       "AEAD_AES_256_GCM",
			"ciphertext":      "Y2lwaGVy",
			"associated_data": "transaction",
			"nonce":           "nonce123",
		},
	})
	require.NoError(t, err)
	return raw
}
