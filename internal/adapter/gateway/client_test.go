package gateway

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/MikeRez0/quotapay/internal/adapter/config"
	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var authParams = regexp.MustCompile(`nonce_str="([^"]+)",signature="([^"]+)",timestamp="([^"]+)"`)

// verifyMerchantSignature checks the Authorization header the way the gateway would.
func verifyMerchantSignature(t *testing.T, key *rsa.PublicKey, r *http.Request, body []byte) {
	t.Helper()
	m := authParams.FindStringSubmatch(r.Header.Get("Authorization"))
	require.Len(t, m, 4)

	message := fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n", r.Method, r.URL.RequestURI(), m[3], m[1], body)
	digest := sha256.Sum256([]byte(message))
	sig, err := base64.StdEncoding.DecodeString(m[2])
	require.NoError(t, err)
	require.NoError(t, rsa.VerifyPKCS1v15(key, crypto.SHA256, digest[:], sig))
}

func newTestClient(t *testing.T, keys testKeys, url string, timeout time.Duration) *Client {
	t.Helper()
	cfg := &config.Gateway{
		Domain:    url,
		AppID:     "wxappid",
		MchID:     "1900000001",
		NotifyURL: "https://pay.example.com/notify",
		Timeout:   timeout,
	}
	return NewClient(cfg, newTestAuthenticator(t, keys), zap.NewNop())
}

func TestClient_CreateNativeOrder(t *testing.T) {
	keys := newTestKeys(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, nativePath, r.URL.Path)
		verifyMerchantSignature(t, &keys.merchant.PublicKey, r, body)

		var req nativeRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "wxappid", req.AppID)
		assert.Equal(t, "1900000001", req.MchID)
		assert.Equal(t, "zwsk_1_abc", req.OutTradeNo)
		assert.Equal(t, "zwsk_1_abc", req.Attach)
		assert.Equal(t, "https://pay.example.com/notify", req.NotifyURL)
		assert.Equal(t, int64(100000), req.Amount.Total)
		assert.Equal(t, "CNY", req.Amount.Currency)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code_url":"weixin://wxpay/bizpayurl?pr=abc"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, keys, srv.URL, time.Second)
	codeURL, err := c.CreateNativeOrder(context.Background(), domain.NativeOrder{
		OrderRef:    "zwsk_1_abc",
		Description: "formal plan",
		AmountFen:   100000,
		Attach:      "zwsk_1_abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "weixin://wxpay/bizpayurl?pr=abc", codeURL)
}

func TestClient_CreateNativeOrder_Rejected(t *testing.T) {
	keys := newTestKeys(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"PARAM_ERROR","message":"bad amount"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, keys, srv.URL, time.Second)
	_, err := c.CreateNativeOrder(context.Background(), domain.NativeOrder{OrderRef: "zwsk_1_abc", AmountFen: 1})
	assert.ErrorIs(t, err, domain.ErrGatewayCall)
}

func TestClient_QueryOrder(t *testing.T) {
	keys := newTestKeys(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, queryPath+"zwsk_1_abc", r.URL.Path)
		assert.Equal(t, "1900000001", r.URL.Query().Get("mchid"))
		verifyMerchantSignature(t, &keys.merchant.PublicKey, r, nil)

		_, _ = w.Write([]byte(`{"trade_state":"SUCCESS","out_trade_no":"zwsk_1_abc",` +
			`"transaction_id":"4200001","success_time":"2024-05-01T10:00:00+08:00","amount":{"total":100000}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, keys, srv.URL, time.Second)
	txn, err := c.QueryOrder(context.Background(), "zwsk_1_abc")
	require.NoError(t, err)
	assert.Equal(t, domain.TradeStateSuccess, txn.TradeState)
	assert.Equal(t, "4200001", txn.TransactionID)
	require.NotNil(t, txn.ObservedAmount())
	assert.Equal(t, int64(100000), *txn.ObservedAmount())
	require.NotNil(t, txn.SuccessTime)
	assert.True(t, txn.SuccessTime.Equal(time.Date(2024, 5, 1, 2, 0, 0, 0, time.UTC)))
}

func TestClient_QueryOrder_Timeout(t *testing.T) {
	keys := newTestKeys(t)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, keys, srv.URL, 50*time.Millisecond)
	_, err := c.QueryOrder(context.Background(), "zwsk_1_abc")
	assert.ErrorIs(t, err, domain.ErrGatewayCall)
}
