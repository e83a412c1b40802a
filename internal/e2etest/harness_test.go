package e2etest

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MikeRez0/quotapay/internal/adapter/auth"
	"github.com/MikeRez0/quotapay/internal/adapter/config"
	"github.com/MikeRez0/quotapay/internal/adapter/gateway"
	handler "github.com/MikeRez0/quotapay/internal/adapter/handler/http"
	"github.com/MikeRez0/quotapay/internal/adapter/metrics"
	"github.com/MikeRez0/quotapay/internal/adapter/vault"
	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
	"github.com/MikeRez0/quotapay/internal/core/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	apiV3Key  = "0123456789abcdef0123456789abcdef"
	mchID     = "1900000001"
	gcmNonce  = "a1b2c3d4e5f6"
	assocData = "transaction"
)

// fakeGateway answers the two outbound gateway calls.
type fakeGateway struct {
	*httptest.Server
	mu      sync.Mutex
	amounts map[string]int64
	paid    map[string]bool
	queries atomic.Int32
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()
	fg := &fakeGateway{amounts: map[string]int64{}, paid: map[string]bool{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/v3/pay/transactions/native", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			OutTradeNo string `json:"out_trade_no"`
			Amount     struct {
				Total int64 `json:"total"`
			} `json:"amount"`
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "WECHATPAY2-SHA256-RSA2048 ") ||
			json.NewDecoder(r.Body).Decode(&req) != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fg.mu.Lock()
		fg.amounts[req.OutTradeNo] = req.Amount.Total
		fg.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"code_url": "weixin://wxpay/bizpayurl?pr=" + req.OutTradeNo})
	})
	mux.HandleFunc("/v3/pay/transactions/out-trade-no/", func(w http.ResponseWriter, r *http.Request) {
		fg.queries.Add(1)
		ref := strings.TrimPrefix(r.URL.Path, "/v3/pay/transactions/out-trade-no/")

		fg.mu.Lock()
		amount, known := fg.amounts[ref]
		paid := fg.paid[ref]
		fg.mu.Unlock()

		if !known {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"code": "ORDER_NOT_EXIST"})
			return
		}
		state := "NOTPAY"
		if paid {
			state = "SUCCESS"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"trade_state":    state,
			"out_trade_no":   ref,
			"transaction_id": "4200000000" + strconv.Itoa(len(ref)),
			"success_time":   "2024-05-01T10:00:05+08:00",
			"amount":         map[string]int64{"total": amount},
		})
	})

	fg.Server = httptest.NewServer(mux)
	t.Cleanup(fg.Close)
	return fg
}

func (fg *fakeGateway) markPaid(ref string) {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	fg.paid[ref] = true
}

type harness struct {
	api         *httptest.Server
	gateway     *fakeGateway
	platformKey *rsa.PrivateKey
}

// newHarness serves the full HTTP stack over repo against a fake gateway.
func newHarness(t *testing.T, repo port.Repository) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	merchantKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	platformKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	fg := newFakeGateway(t)
	authenticator, err := gateway.NewAuthenticator(mchID, "SERIAL01", merchantKey, &platformKey.PublicKey, apiV3Key)
	require.NoError(t, err)
	client := gateway.NewClient(&config.Gateway{
		Domain:    fg.URL,
		AppID:     "wx0000000000000001",
		MchID:     mchID,
		NotifyURL: "https://example.test/notify",
		Timeout:   2 * time.Second,
	}, authenticator, log)

	secrets, err := vault.New("e2e-secret")
	require.NoError(t, err)
	tokens, err := auth.New("e2e-token-secret", time.Hour)
	require.NoError(t, err)
	promMetrics := metrics.New()

	svc, err := service.NewService(repo, client, authenticator, secrets, tokens, log,
		service.WithMetrics(promMetrics))
	require.NoError(t, err)

	notify, err := handler.NewNotifyHandler(svc, log)
	require.NoError(t, err)
	order, err := handler.NewOrderHandler(svc, log)
	require.NoError(t, err)
	quota, err := handler.NewQuotaHandler(svc, log)
	require.NoError(t, err)
	dealer, err := handler.NewDealerHandler(svc, log)
	require.NoError(t, err)
	partner, err := handler.NewPartnerHandler(svc, log)
	require.NoError(t, err)

	router, err := handler.NewRouter(&config.App{Mode: config.AppModeDevelop}, log, tokens,
		notify, order, quota, dealer, partner, promMetrics.Handler())
	require.NoError(t, err)

	api := httptest.NewServer(router)
	t.Cleanup(api.Close)

	return &harness{api: api, gateway: fg, platformKey: platformKey}
}

type reply struct {
	Status int
	Body   map[string]any
}

func (h *harness) call(t *testing.T, method, path, token string, body any, headers map[string]string) reply {
	t.Helper()

	var payload string
	switch b := body.(type) {
	case nil:
	case []byte:
		payload = string(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		payload = string(raw)
	}

	req, err := http.NewRequest(method, h.api.URL+path, strings.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := h.api.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := reply{Status: resp.StatusCode}
	_ = json.NewDecoder(resp.Body).Decode(&out.Body)
	return out
}

// notification builds a signed, encrypted webhook delivery for a successful payment.
func (h *harness) notification(t *testing.T, ref string, amountFen int64) ([]byte, map[string]string) {
	t.Helper()

	plain, err := json.Marshal(map[string]any{
		"trade_state":    "SUCCESS",
		"out_trade_no":   ref,
		"transaction_id": "4200000001",
		"success_time":   "2024-05-01T10:00:05+08:00",
		"amount":         map[string]int64{"total": amountFen},
	})
	require.NoError(t, err)

	block, err := aes.NewCipher([]byte(apiV3Key))
	require.NoError(t, err)
	aead, err := cipher.NewGCM(block)
	require.NoError(t, err)
	sealed := aead.Seal(nil, []byte(gcmNonce), plain, []byte(assocData))

	body, err := json.Marshal(domain.NotificationEnvelope{
		ID:           "evt-" + ref,
		CreateTime:   "2024-05-01T10:00:06+08:00",
		EventType:    "TRANSACTION.SUCCESS",
		ResourceType: domain.ResourceTypeEncrypted,
		Summary:      "payment succeeded",
		Resource: &domain.NotificationResource{
			Algorithm:      "AEAD_AES_256_GCM",
			Ciphertext:     base64.StdEncoding.EncodeToString(sealed),
			AssociatedData: assocData,
			Nonce:          gcmNonce,
			OriginalType:   "transaction",
		},
	})
	require.NoError(t, err)

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	nonce := "nonce-" + ref
	digest := sha256.Sum256([]byte(timestamp + "\n" + nonce + "\n" + string(body) + "\n"))
	sig, err := rsa.SignPKCS1v15(rand.Reader, h.platformKey, crypto.SHA256, digest[:])
	require.NoError(t, err)

	return body, map[string]string{
		"Wechatpay-Signature": base64.StdEncoding.EncodeToString(sig),
		"Wechatpay-Timestamp": timestamp,
		"Wechatpay-Nonce":     nonce,
		"Wechatpay-Serial":    "PLATFORM01",
	}
}
