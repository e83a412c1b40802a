package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
)

// OrderRef is the externally visible order reference (gateway out_trade_no).
type OrderRef string

const orderRefPrefix = "zwsk"

// NewOrderRef builds a reference from the creation time and a random suffix.
func NewOrderRef(now time.Time) (OrderRef, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("order ref suffix: %w", err)
	}
	return OrderRef(fmt.Sprintf("%s_%d_%s", orderRefPrefix, now.UnixMilli(), hex.EncodeToString(suffix))), nil
}

// Order is one purchase or top-up attempt. AmountFen and Quota are fixed at creation.
type Order struct {
	Ref           OrderRef
	UserID        string
	ChannelName   string
	AmountFen     int64
	Quota         int64
	Status        OrderStatus
	TransactionID string
	CreatedAt     time.Time
	PaidAt        *time.Time
}

func (o *Order) IsPaid() bool {
	return o.Status == OrderStatusPaid
}

// Plan is the classification of the order by its charge amount.
func (o *Order) Plan() Plan {
	return PlanFromAmount(o.AmountFen)
}
