package http

import (
	"encoding/json"
	"strings"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type QuotaHandler struct {
	Handler
	service port.Service
}

func NewQuotaHandler(service port.Service, logger *zap.Logger) (*QuotaHandler, error) {
	return &QuotaHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func accountQuery(ctx *gin.Context) string {
	return strings.TrimSpace(ctx.Query("account"))
}

type balanceResponse struct {
	OK      bool  `json:"ok"`
	Balance int64 `json:"balance"`
}

func (qh *QuotaHandler) Balance(ctx *gin.Context) {
	account := accountQuery(ctx)
	if account == "" {
		qh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	balance, err := qh.service.Balance(ctx.Request.Context(), account)
	if err != nil {
		qh.handleError(ctx, err)
		return
	}
	qh.handleSuccess(ctx, balanceResponse{OK: true, Balance: balance})
}

type historyResponse struct {
	OK      bool            `json:"ok"`
	History []entryResponse `json:"history"`
}

func (qh *QuotaHandler) History(ctx *gin.Context) {
	account := accountQuery(ctx)
	if account == "" {
		qh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	entries, err := qh.service.History(ctx.Request.Context(), account)
	if err != nil {
		qh.handleError(ctx, err)
		return
	}

	history := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		history = append(history, newEntryResponse(e))
	}
	qh.handleSuccess(ctx, historyResponse{OK: true, History: history})
}

type profileResponse struct {
	OK      bool `json:"ok"`
	Profile struct {
		UserID      string `json:"user_id"`
		Username    string `json:"username"`
		ChannelName string `json:"channel_name"`
		Balance     int64  `json:"balance"`
		Status      string `json:"service_status"`
	} `json:"profile"`
}

func (qh *QuotaHandler) Profile(ctx *gin.Context) {
	account := accountQuery(ctx)
	if account == "" {
		qh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	profile, err := qh.service.Profile(ctx.Request.Context(), account)
	if err != nil {
		qh.handleError(ctx, err)
		return
	}

	resp := profileResponse{OK: true}
	resp.Profile.UserID = profile.UserID
	resp.Profile.Username = profile.Username
	resp.Profile.ChannelName = profile.ChannelName
	resp.Profile.Balance = profile.Balance
	resp.Profile.Status = string(profile.Status)
	qh.handleSuccess(ctx, resp)
}

type consumeRequest struct {
	Account string `json:"account"`
	Credits int64  `json:"credits"`
	Remark  string `json:"remark"`
}

type consumeResponse struct {
	OK      bool   `json:"ok"`
	Account string `json:"account"`
	Credits int64  `json:"credits"`
	Balance int64  `json:"balance"`
}

func (qh *QuotaHandler) Consume(ctx *gin.Context) {
	req := consumeRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		qh.handleValidationError(ctx, err)
		return
	}
	if strings.TrimSpace(req.Account) == "" {
		qh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	result, err := qh.service.Consume(ctx.Request.Context(), getAuthPayload(ctx).ChannelName,
		strings.TrimSpace(req.Account), req.Credits, req.Remark)
	if err != nil {
		qh.handleError(ctx, err)
		return
	}
	qh.handleSuccess(ctx, consumeResponse{
		OK:      true,
		Account: result.Account,
		Credits: result.Credits,
		Balance: result.Balance,
	})
}

type rechargeRequest struct {
	Account string      `json:"account"`
	Amount  json.Number `json:"amount"`
}

type rechargeResponse struct {
	OK     bool `json:"ok"`
	Record struct {
		Account   string `json:"account"`
		Credits   int64  `json:"credits"`
		Balance   int64  `json:"balance"`
		CreatedTS int64  `json:"created_ts"`
	} `json:"record"`
}

// Recharge tops up an account by hand; the amount is in major units.
func (qh *QuotaHandler) Recharge(ctx *gin.Context) {
	req := rechargeRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		qh.handleValidationError(ctx, err)
		return
	}
	amount, err := decimal.Parse(req.Amount.String())
	if err != nil || strings.TrimSpace(req.Account) == "" {
		qh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	result, err := qh.service.ManualRecharge(ctx.Request.Context(), getAuthPayload(ctx).ChannelName,
		strings.TrimSpace(req.Account), amount)
	if err != nil {
		qh.handleError(ctx, err)
		return
	}

	resp := rechargeResponse{OK: true}
	resp.Record.Account = result.Account
	resp.Record.Credits = result.Credits
	resp.Record.Balance = result.Balance
	resp.Record.CreatedTS = millis(result.CreatedAt)
	qh.handleSuccess(ctx, resp)
}
