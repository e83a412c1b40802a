// Package vault encrypts stored account secrets with AES-256-GCM.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/MikeRez0/quotapay/internal/core/domain"
)

const (
	tokenVersion = "v1"
	nonceSize    = 12
	tagSize      = 16
)

// Vault encrypts with a key derived from a configured secret. Tokens have the form
// version:nonce:tag:ciphertext, each part base64 encoded.
type Vault struct {
	aead cipher.AEAD
}

func New(secret string) (*Vault, error) {
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("vault cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("vault gcm: %w", err)
	}
	return &Vault{aead: aead}, nil
}

func (v *Vault) Encrypt(plain []byte) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("vault nonce: %w", err)
	}

	sealed := v.aead.Seal(nil, nonce, plain, nil)
	ct, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	enc := base64.StdEncoding
	return strings.Join([]string{
		tokenVersion,
		enc.EncodeToString(nonce),
		enc.EncodeToString(tag),
		enc.EncodeToString(ct),
	}, ":"), nil
}

// Decrypt fails closed: every malformed, unversioned or forged token yields
// domain.ErrVaultUnavailable.
func (v *Vault) Decrypt(token string) ([]byte, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 4 || parts[0] != tokenVersion {
		return nil, domain.ErrVaultUnavailable
	}

	enc := base64.StdEncoding
	nonce, err := enc.DecodeString(parts[1])
	if err != nil || len(nonce) != nonceSize {
		return nil, domain.ErrVaultUnavailable
	}
	tag, err := enc.DecodeString(parts[2])
	if err != nil || len(tag) != tagSize {
		return nil, domain.ErrVaultUnavailable
	}
	ct, err := enc.DecodeString(parts[3])
	if err != nil {
		return nil, domain.ErrVaultUnavailable
	}

	plain, err := v.aead.Open(nil, nonce, append(ct, tag...), nil)
	if err != nil {
		return nil, domain.ErrVaultUnavailable
	}
	if plain == nil {
		plain = []byte{}
	}
	return plain, nil
}
