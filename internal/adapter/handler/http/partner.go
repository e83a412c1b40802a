package http

import (
	"github.com/MikeRez0/quotapay/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PartnerHandler struct {
	Handler
	service port.Service
}

type partnerRequest struct {
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	ChannelName string `json:"channel_name"`
}

type tokenResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
}

func NewPartnerHandler(service port.Service, logger *zap.Logger) (*PartnerHandler, error) {
	return &PartnerHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

// Register creates a channel partner and logs it in.
func (ph *PartnerHandler) Register(ctx *gin.Context) {
	req := partnerRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	_, err := ph.service.RegisterPartner(ctx.Request.Context(), req.Phone, req.Password, req.ChannelName)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.Login(ctx)
}

func (ph *PartnerHandler) Login(ctx *gin.Context) {
	req := partnerRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	token, err := ph.service.LoginPartner(ctx.Request.Context(), req.Phone, req.Password)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, tokenResponse{OK: true, Token: token})
}
