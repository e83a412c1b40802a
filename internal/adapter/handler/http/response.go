package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/govalues/decimal"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,
	domain.ErrTransientStore:  http.StatusServiceUnavailable,

	domain.ErrBadRequest:  http.StatusBadRequest,
	domain.ErrGatewayCall: http.StatusBadGateway,

	domain.ErrInvalidCredentials:         http.StatusUnauthorized,
	domain.ErrTokenCreation:              http.StatusInternalServerError,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrAuthenticationFailure: http.StatusUnauthorized,
	domain.ErrDecryptionFailure:     http.StatusBadRequest,

	domain.ErrOrderNotFound:       http.StatusNotFound,
	domain.ErrAmountMismatch:      http.StatusConflict,
	domain.ErrAccountNotFound:     http.StatusNotFound,
	domain.ErrInsufficientBalance: http.StatusPaymentRequired,
	domain.ErrBadAmount:           http.StatusBadRequest,
}

// statusFor maps err to a status code and reports whether err is a known domain error.
func statusFor(err error) (int, bool) {
	if status, ok := errorStatusMap[err]; ok {
		return status, true
	}
	for known, status := range errorStatusMap {
		if errors.Is(err, known) {
			return status, true
		}
	}
	return http.StatusInternalServerError, false
}

type response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type jsonDecimal decimal.Decimal

func (j jsonDecimal) MarshalJSON() ([]byte, error) {
	s := fmt.Sprintf("%f", decimal.Decimal(j))
	return []byte(s), nil
}

// yuan converts minor units for display.
func yuan(fen int64) jsonDecimal {
	d, err := decimal.New(fen, 2)
	if err != nil {
		return jsonDecimal(decimal.Zero)
	}
	return jsonDecimal(d)
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

func millisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

type settlementResponse struct {
	Account    string      `json:"account"`
	DealerName string      `json:"dealer_name"`
	Plan       string      `json:"plan"`
	Amount     jsonDecimal `json:"amount"`
	AmountFen  int64       `json:"amount_fen"`
	Status     string      `json:"status"`
	CreatedTS  int64       `json:"created_ts"`
	PaidTS     *int64      `json:"paid_ts"`
	OrderNo    string      `json:"order_no"`
	Balance    int64       `json:"balance"`
	Password   *string     `json:"password"`
}

func newSettlementResponse(s *domain.Settlement) settlementResponse {
	return settlementResponse{
		Account:    s.Account,
		DealerName: s.ChannelName,
		Plan:       string(s.Plan),
		Amount:     yuan(s.AmountFen),
		AmountFen:  s.AmountFen,
		Status:     string(s.Status),
		CreatedTS:  millis(s.CreatedAt),
		PaidTS:     millisPtr(s.PaidAt),
		OrderNo:    string(s.OrderRef),
		Balance:    s.Balance,
		Password:   s.Password,
	}
}

type entryResponse struct {
	ID        int64   `json:"id"`
	Delta     int64   `json:"delta"`
	Action    string  `json:"action"`
	Source    int     `json:"quota_source"`
	OrderRef  *string `json:"order_ref"`
	Remark    string  `json:"remark,omitempty"`
	CreatedTS int64   `json:"created_ts"`
}

func newEntryResponse(e *domain.LedgerEntry) entryResponse {
	r := entryResponse{
		ID:        e.ID,
		Delta:     e.Delta,
		Action:    string(e.Action),
		Source:    int(e.Source),
		Remark:    e.Remark,
		CreatedTS: millis(e.CreatedAt),
	}
	if e.OrderRef != nil {
		ref := string(*e.OrderRef)
		r.OrderRef = &ref
	}
	return r
}
