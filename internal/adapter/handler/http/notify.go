package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	headerSignature = "Wechatpay-Signature"
	headerTimestamp = "Wechatpay-Timestamp"
	headerNonce     = "Wechatpay-Nonce"
	headerSerial    = "Wechatpay-Serial"
)

const maxNotificationBody = 1 << 20

// notifyReply is the acknowledgement body the gateway expects.
type notifyReply struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type NotifyHandler struct {
	Handler
	service port.Service
}

func NewNotifyHandler(service port.Service, logger *zap.Logger) (*NotifyHandler, error) {
	return &NotifyHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

// Notify receives a webhook delivery. The body is passed on byte for byte since the
// signature covers it.
func (nh *NotifyHandler) Notify(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxNotificationBody))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, notifyReply{Code: "FAIL", Message: "unreadable body"})
		return
	}
	defer ctx.Request.Body.Close()

	headers := domain.NotificationHeaders{
		Signature: ctx.GetHeader(headerSignature),
		Timestamp: ctx.GetHeader(headerTimestamp),
		Nonce:     ctx.GetHeader(headerNonce),
		Serial:    ctx.GetHeader(headerSerial),
	}

	err = nh.service.HandleNotification(ctx.Request.Context(), headers, body)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, notifyReply{Code: "SUCCESS", Message: "OK"})
	case errors.Is(err, domain.ErrAuthenticationFailure):
		ctx.JSON(http.StatusUnauthorized, notifyReply{Code: "FAIL"})
	case errors.Is(err, domain.ErrDecryptionFailure), errors.Is(err, domain.ErrBadRequest):
		ctx.JSON(http.StatusBadRequest, notifyReply{Code: "FAIL", Message: "bad notification"})
	default:
		if !errors.Is(err, domain.ErrTransientStore) {
			nh.logger.Error("notification failed", zap.Error(err))
		}
		ctx.JSON(http.StatusInternalServerError, notifyReply{Code: "FAIL", Message: "retry later"})
	}
}
