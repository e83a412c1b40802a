package http

import (
	"strings"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type payRequest struct {
	Plan          string `json:"plan"`
	TargetAccount string `json:"target_account"`
}

type payResponse struct {
	OK            bool   `json:"ok"`
	QRCode        string `json:"qrCode,omitempty"`
	CodeURL       string `json:"code_url"`
	OutTradeNo    string `json:"outTradeNo"`
	Plan          string `json:"plan"`
	TargetAccount string `json:"target_account"`
	Password      string `json:"password,omitempty"`
}

// Pay opens an order for the partner's channel and returns the code to scan.
func (oh *OrderHandler) Pay(ctx *gin.Context) {
	req := payRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	result, err := oh.service.Purchase(ctx.Request.Context(), domain.PurchaseRequest{
		ChannelName:   getAuthPayload(ctx).ChannelName,
		Plan:          domain.ParsePlan(req.Plan),
		TargetAccount: strings.TrimSpace(req.TargetAccount),
	})
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	qr, err := qrDataURL(result.CodeURL)
	if err != nil {
		oh.logger.Warn("qr rendering failed", zap.String("order", string(result.OrderRef)), zap.Error(err))
	}

	oh.handleSuccess(ctx, payResponse{
		OK:            true,
		QRCode:        qr,
		CodeURL:       result.CodeURL,
		OutTradeNo:    string(result.OrderRef),
		Plan:          string(result.Plan),
		TargetAccount: result.Account,
		Password:      result.Password,
	})
}

type orderStatusResponse struct {
	OK         bool                `json:"ok"`
	Paid       bool                `json:"paid"`
	TradeState *string             `json:"trade_state,omitempty"`
	Record     *settlementResponse `json:"record,omitempty"`
}

// OrderStatus is the poll path: it settles the order when the gateway reports it paid.
func (oh *OrderHandler) OrderStatus(ctx *gin.Context) {
	ref := strings.TrimSpace(ctx.Query("out_trade_no"))
	if ref == "" {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	result, err := oh.service.PollOrder(ctx.Request.Context(), domain.OrderRef(ref))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	resp := orderStatusResponse{OK: true, Paid: result.Paid}
	if result.TradeState != "" {
		state := result.TradeState
		resp.TradeState = &state
	}
	if result.Record != nil {
		record := newSettlementResponse(result.Record)
		resp.Record = &record
	}
	oh.handleSuccess(ctx, resp)
}
