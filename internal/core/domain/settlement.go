package domain

import "time"

type SettlementSource string

const (
	SourceNotify SettlementSource = "NOTIFY"
	SourceQuery  SettlementSource = "QUERY"
)

// SettleRequest carries what the gateway observed about a payment.
type SettleRequest struct {
	OrderRef OrderRef
	// ObservedAmount is compared against the recorded amount when set.
	ObservedAmount *int64
	GatewayTxnID   string
	PaidAt         *time.Time
	Source         SettlementSource
	EventID        string
	EventType      string
}

// Settlement is the outcome of a settled (or already settled) order.
type Settlement struct {
	Account     string
	ChannelName string
	Plan        Plan
	AmountFen   int64
	Status      OrderStatus
	CreatedAt   time.Time
	PaidAt      *time.Time
	OrderRef    OrderRef
	Balance     int64
	// Password is the recoverable account secret, nil when unavailable.
	Password *string
	// Credited is true only for the call that appended the ledger entry.
	Credited bool
}

// OrderSettled is published after a crediting settlement commits.
type OrderSettled struct {
	OrderRef      OrderRef         `json:"order_ref"`
	UserID        string           `json:"user_id"`
	ChannelName   string           `json:"channel_name"`
	AmountFen     int64            `json:"amount_fen"`
	Quota         int64            `json:"quota"`
	TransactionID string           `json:"transaction_id"`
	Source        SettlementSource `json:"source"`
	Balance       int64            `json:"balance"`
	SettledAt     time.Time        `json:"settled_at"`
}

// PollResult is what the order-status poll reports.
type PollResult struct {
	Paid       bool
	TradeState string
	Record     *Settlement
}

// PurchaseRequest asks for a new PENDING order for a plan.
type PurchaseRequest struct {
	ChannelName   string
	Plan          Plan
	TargetAccount string
}

type PurchaseResult struct {
	OrderRef OrderRef
	Plan     Plan
	Account  string
	// Password is set only when a new account was provisioned.
	Password string
	CodeURL  string
}

// ConsumeResult is the balance after a debit.
type ConsumeResult struct {
	Account string
	Credits int64
	Balance int64
}

// RechargeResult is the outcome of a manual top-up.
type RechargeResult struct {
	Account   string
	Credits   int64
	Balance   int64
	CreatedAt time.Time
}
