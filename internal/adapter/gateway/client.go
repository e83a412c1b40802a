package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/MikeRez0/quotapay/internal/adapter/config"
	"github.com/MikeRez0/quotapay/internal/core/domain"
	"go.uber.org/zap"
)

const (
	nativePath = "/v3/pay/transactions/native"
	queryPath  = "/v3/pay/transactions/out-trade-no/"
	currency   = "CNY"
)

// Client is the outbound side of the payment gateway integration.
type Client struct {
	auth      *Authenticator
	http      *http.Client
	logger    *zap.Logger
	domain    string
	appID     string
	mchID     string
	notifyURL string
}

func NewClient(cfg *config.Gateway, auth *Authenticator, log *zap.Logger) *Client {
	return &Client{
		auth:      auth,
		http:      &http.Client{Timeout: cfg.Timeout},
		logger:    log,
		domain:    strings.TrimRight(cfg.Domain, "/"),
		appID:     cfg.AppID,
		mchID:     cfg.MchID,
		notifyURL: cfg.NotifyURL,
	}
}

type nativeAmount struct {
	Total    int64  `json:"total"`
	Currency string `json:"currency"`
}

type nativeRequest struct {
	AppID       string       `json:"appid"`
	MchID       string       `json:"mchid"`
	Description string       `json:"description"`
	OutTradeNo  string       `json:"out_trade_no"`
	NotifyURL   string       `json:"notify_url"`
	Attach      string       `json:"attach,omitempty"`
	Amount      nativeAmount `json:"amount"`
}

type nativeResponse struct {
	CodeURL string `json:"code_url"`
}

type gatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateNativeOrder registers a scan-to-pay order and returns its code URL.
func (c *Client) CreateNativeOrder(ctx context.Context, order domain.NativeOrder) (string, error) {
	body, err := json.Marshal(nativeRequest{
		AppID:       c.appID,
		MchID:       c.mchID,
		Description: order.Description,
		OutTradeNo:  string(order.OrderRef),
		NotifyURL:   c.notifyURL,
		Attach:      order.Attach,
		Amount:      nativeAmount{Total: order.AmountFen, Currency: currency},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode native order: %w", domain.ErrGatewayCall, err)
	}

	var resp nativeResponse
	if err := c.do(ctx, http.MethodPost, nativePath, body, &resp); err != nil {
		return "", err
	}
	if resp.CodeURL == "" {
		return "", fmt.Errorf("%w: empty code_url for %s", domain.ErrGatewayCall, order.OrderRef)
	}
	return resp.CodeURL, nil
}

// QueryOrder fetches the gateway's current view of an order.
func (c *Client) QueryOrder(ctx context.Context, ref domain.OrderRef) (*domain.Transaction, error) {
	path := queryPath + url.PathEscape(string(ref)) + "?mchid=" + url.QueryEscape(c.mchID)

	var txn domain.Transaction
	if err := c.do(ctx, http.MethodGet, path, nil, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	header, err := c.auth.Sign(method, path, body)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrGatewayCall, err)
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.domain+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", domain.ErrGatewayCall, method, path, err)
	}
	req.Header.Set("Authorization", header.String())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("gateway request", zap.String("method", method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", domain.ErrGatewayCall, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", domain.ErrGatewayCall, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var gwErr gatewayError
		_ = json.Unmarshal(raw, &gwErr)
		c.logger.Warn("gateway rejected request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", gwErr.Code),
			zap.String("message", gwErr.Message))
		return fmt.Errorf("%w: %s %s: status %d %s", domain.ErrGatewayCall,
			method, path, resp.StatusCode, gwErr.Code)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", domain.ErrGatewayCall, err)
	}
	return nil
}
