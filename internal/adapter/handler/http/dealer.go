package http

import (
	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DealerHandler serves the listings of the authenticated partner's channel.
type DealerHandler struct {
	Handler
	service port.Service
}

func NewDealerHandler(service port.Service, logger *zap.Logger) (*DealerHandler, error) {
	return &DealerHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type dealerOrdersResponse struct {
	OK     bool                 `json:"ok"`
	Orders []settlementResponse `json:"orders"`
}

func (dh *DealerHandler) Orders(ctx *gin.Context) {
	list, err := dh.service.DealerOrders(ctx.Request.Context(), getAuthPayload(ctx).ChannelName)
	if err != nil {
		dh.handleError(ctx, err)
		return
	}

	orders := make([]settlementResponse, 0, len(list))
	for _, s := range list {
		orders = append(orders, newSettlementResponse(s))
	}
	dh.handleSuccess(ctx, dealerOrdersResponse{OK: true, Orders: orders})
}

type accountResponse struct {
	UserID         string  `json:"user_id"`
	Username       string  `json:"username"`
	Password       *string `json:"password"`
	Balance        int64   `json:"balance"`
	LastRechargeTS *int64  `json:"last_recharge_ts"`
}

type dealerAccountsResponse struct {
	OK       bool              `json:"ok"`
	Accounts []accountResponse `json:"accounts"`
}

func (dh *DealerHandler) Accounts(ctx *gin.Context) {
	list, err := dh.service.DealerAccounts(ctx.Request.Context(), getAuthPayload(ctx).ChannelName)
	if err != nil {
		dh.handleError(ctx, err)
		return
	}

	accounts := make([]accountResponse, 0, len(list))
	for _, a := range list {
		accounts = append(accounts, accountResponse{
			UserID:         a.UserID,
			Username:       a.Username,
			Password:       dh.service.RevealSecret(a.PasswordEnc),
			Balance:        a.Balance,
			LastRechargeTS: millisPtr(a.LastRechargeAt),
		})
	}
	dh.handleSuccess(ctx, dealerAccountsResponse{OK: true, Accounts: accounts})
}

type logResponse struct {
	entryResponse
	Balance int64 `json:"balance"`
}

type dealerLogsResponse struct {
	OK   bool          `json:"ok"`
	Logs []logResponse `json:"logs"`
}

func (dh *DealerHandler) AccountLogs(ctx *gin.Context) {
	account := accountQuery(ctx)
	if account == "" {
		dh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	list, err := dh.service.DealerAccountLogs(ctx.Request.Context(), getAuthPayload(ctx).ChannelName, account)
	if err != nil {
		dh.handleError(ctx, err)
		return
	}

	logs := make([]logResponse, 0, len(list))
	for i := range list {
		logs = append(logs, logResponse{
			entryResponse: newEntryResponse(&list[i].LedgerEntry),
			Balance:       list[i].RunningBalance,
		})
	}
	dh.handleSuccess(ctx, dealerLogsResponse{OK: true, Logs: logs})
}

type reconcileResponse struct {
	OK    bool `json:"ok"`
	Users int  `json:"users"`
}

// Reconcile rebuilds the recharge snapshots from the ledger.
func (dh *DealerHandler) Reconcile(ctx *gin.Context) {
	n, err := dh.service.Reconcile(ctx.Request.Context())
	if err != nil {
		dh.handleError(ctx, err)
		return
	}
	dh.handleSuccess(ctx, reconcileResponse{OK: true, Users: n})
}
