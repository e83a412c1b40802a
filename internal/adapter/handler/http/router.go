package http

import (
	"net/http"

	"github.com/MikeRez0/quotapay/internal/adapter/config"
	"github.com/MikeRez0/quotapay/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.App,
	logger *zap.Logger,
	tokenService port.TokenService,
	notifyHandler *NotifyHandler,
	orderHandler *OrderHandler,
	quotaHandler *QuotaHandler,
	dealerHandler *DealerHandler,
	partnerHandler *PartnerHandler,
	metrics http.Handler) (*Router, error) {

	if conf.Mode == config.AppModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	auth := authCheck(tokenService, NewHandler(logger))

	router.POST("/notify", notifyHandler.Notify)
	router.POST("/pay", auth, orderHandler.Pay)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	api := router.Group("/api")
	{
		api.GET("/order-status", orderHandler.OrderStatus)

		api.GET("/balance", quotaHandler.Balance)
		api.GET("/history", quotaHandler.History)
		api.GET("/profile", quotaHandler.Profile)

		partner := api.Group("/auth")
		{
			partner.POST("/register", partnerHandler.Register)
			partner.POST("/login", partnerHandler.Login)
		}

		api.POST("/account/consume", auth, quotaHandler.Consume)
		api.POST("/recharge", auth, quotaHandler.Recharge)

		dealer := api.Group("/dealer")
		{
			dealer.Use(auth)
			dealer.GET("/orders", dealerHandler.Orders)
			dealer.GET("/accounts", dealerHandler.Accounts)
			dealer.GET("/account-logs", dealerHandler.AccountLogs)
		}

		api.POST("/admin/reconcile", auth, dealerHandler.Reconcile)
	}

	return &Router{router}, nil
}
