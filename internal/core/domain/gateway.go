package domain

import "time"

// TradeStateSuccess is the only gateway trade state that settles an order.
const TradeStateSuccess = "SUCCESS"

// NotificationHeaders are the authentication headers of a webhook delivery.
type NotificationHeaders struct {
	Signature string
	Timestamp string
	Nonce     string
	Serial    string
}

// Transaction is the decrypted (or queried) gateway view of a payment.
type Transaction struct {
	TradeState    string     `json:"trade_state"`
	OutTradeNo    string     `json:"out_trade_no"`
	TransactionID string     `json:"transaction_id"`
	SuccessTime   *time.Time `json:"success_time,omitempty"`
	Amount        *struct {
		Total *int64 `json:"total"`
	} `json:"amount,omitempty"`
}

// ObservedAmount is the charged total reported by the gateway, if any.
func (t *Transaction) ObservedAmount() *int64 {
	if t.Amount == nil {
		return nil
	}
	return t.Amount.Total
}

// NativeOrder is the outbound order creation request.
type NativeOrder struct {
	OrderRef    OrderRef
	Description string
	AmountFen   int64
	Attach      string
}

// NotificationEnvelope is the outer JSON of a webhook delivery.
type NotificationEnvelope struct {
	ID           string                `json:"id"`
	CreateTime   string                `json:"create_time"`
	EventType    string                `json:"event_type"`
	ResourceType string                `json:"resource_type"`
	Summary      string                `json:"summary"`
	Resource     *NotificationResource `json:"resource"`
}

// ResourceTypeEncrypted marks a resource that must be decrypted before use.
const ResourceTypeEncrypted = "encrypt-resource"

type NotificationResource struct {
	Algorithm      string `json:"algorithm"`
	Ciphertext     string `json:"ciphertext"`
	AssociatedData string `json:"associated_data"`
	Nonce          string `json:"nonce"`
	OriginalType   string `json:"original_type"`
}
