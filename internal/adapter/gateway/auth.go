package gateway

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/MikeRez0/quotapay/internal/core/domain"
)

const (
	authSchema = "WECHATPAY2-SHA256-RSA2048"
	tagSize    = 16
)

// AuthHeader is the credential attached to every outbound gateway call.
type AuthHeader struct {
	MchID     string
	Nonce     string
	Timestamp int64
	Signature string
	SerialNo  string
}

func (h AuthHeader) String() string {
	return fmt.Sprintf(`%s mchid="%s",nonce_str="%s",signature="%s",timestamp="%d",serial_no="%s"`,
		authSchema, h.MchID, h.Nonce, h.Signature, h.Timestamp, h.SerialNo)
}

// Authenticator signs outbound requests and authenticates inbound notifications.
type Authenticator struct {
	mchID      string
	serialNo   string
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	apiV3Key   []byte
	now        func() time.Time
}

func NewAuthenticator(mchID, serialNo string, privateKey *rsa.PrivateKey,
	gatewayKey *rsa.PublicKey, apiV3Key string) (*Authenticator, error) {
	if len(apiV3Key) != 32 {
		return nil, fmt.Errorf("api v3 key must be 32 bytes, got %d", len(apiV3Key))
	}
	return &Authenticator{
		mchID:      mchID,
		serialNo:   serialNo,
		privateKey: privateKey,
		publicKey:  gatewayKey,
		apiV3Key:   []byte(apiV3Key),
		now:        time.Now,
	}, nil
}

// Sign builds the request credential over "METHOD\nPATH\nTIMESTAMP\nNONCE\nBODY\n".
func (a *Authenticator) Sign(method, path string, body []byte) (AuthHeader, error) {
	if a.privateKey == nil {
		return AuthHeader{}, fmt.Errorf("merchant private key is not configured")
	}

	rawNonce := make([]byte, 16)
	if _, err := rand.Read(rawNonce); err != nil {
		return AuthHeader{}, fmt.Errorf("nonce: %w", err)
	}
	nonce := hex.EncodeToString(rawNonce)
	ts := a.now().Unix()

	message := fmt.Sprintf("%s\n%s\n%d\n%s\n%s\n", method, path, ts, nonce, body)
	digest := sha256.Sum256([]byte(message))
	sig, err := rsa.SignPKCS1v15(rand.Reader, a.privateKey, crypto.SHA256, digest[:])
	if err != nil {
		return AuthHeader{}, fmt.Errorf("sign request: %w", err)
	}

	return AuthHeader{
		MchID:     a.mchID,
		Nonce:     nonce,
		Timestamp: ts,
		Signature: base64.StdEncoding.EncodeToString(sig),
		SerialNo:  a.serialNo,
	}, nil
}

// VerifyNotification checks the gateway signature over "TIMESTAMP\nNONCE\nBODY\n".
// rawBody must be the exact bytes received.
func (a *Authenticator) VerifyNotification(headers domain.NotificationHeaders, rawBody []byte) error {
	if a.publicKey == nil || headers.Signature == "" || headers.Timestamp == "" || headers.Nonce == "" {
		return domain.ErrAuthenticationFailure
	}
	if _, err := strconv.ParseInt(headers.Timestamp, 10, 64); err != nil {
		return domain.ErrAuthenticationFailure
	}

	sig, err := base64.StdEncoding.DecodeString(headers.Signature)
	if err != nil {
		return domain.ErrAuthenticationFailure
	}

	message := make([]byte, 0, len(headers.Timestamp)+len(headers.Nonce)+len(rawBody)+3)
	message = append(message, headers.Timestamp...)
	message = append(message, '\n')
	message = append(message, headers.Nonce...)
	message = append(message, '\n')
	message = append(message, rawBody...)
	message = append(message, '\n')

	digest := sha256.Sum256(message)
	if err := rsa.VerifyPKCS1v15(a.publicKey, crypto.SHA256, digest[:], sig); err != nil {
		return domain.ErrAuthenticationFailure
	}
	return nil
}

// DecryptResource opens an AES-256-GCM notification resource. The last 16 bytes of the
// decoded ciphertext are the authentication tag.
func (a *Authenticator) DecryptResource(ciphertext, associatedData, nonce string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil || len(data) < tagSize || nonce == "" {
		return nil, domain.ErrDecryptionFailure
	}

	block, err := aes.NewCipher(a.apiV3Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDecryptionFailure, err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, len(nonce))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDecryptionFailure, err)
	}

	plain, err := aead.Open(nil, []byte(nonce), data, []byte(associatedData))
	if err != nil {
		return nil, domain.ErrDecryptionFailure
	}
	return plain, nil
}
