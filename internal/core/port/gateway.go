package port

import (
	"context"

	"github.com/MikeRez0/quotapay/internal/core/domain"
)

//go:generate mockgen -source=gateway.go -destination=mock/gateway.go -package=mock
type PaymentGateway interface {
	// CreateNativeOrder registers the order with the gateway and returns the code URL to scan.
	CreateNativeOrder(ctx context.Context, order domain.NativeOrder) (string, error)
	QueryOrder(ctx context.Context, ref domain.OrderRef) (*domain.Transaction, error)
}

type NotificationVerifier interface {
	VerifyNotification(headers domain.NotificationHeaders, rawBody []byte) error
	DecryptResource(ciphertext, associatedData, nonce string) ([]byte, error)
}
