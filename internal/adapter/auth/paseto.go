package auth

import (
	"crypto/sha256"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
)

const payloadClaim = "payload"

type PasetoToken struct {
	parser   *paseto.Parser
	key      *paseto.V4SymmetricKey
	duration time.Duration
}

// New builds a v4.local token service. An empty secret yields a random per-process key,
// so tokens do not survive a restart.
func New(secret string, duration time.Duration) (port.TokenService, error) {
	parser := paseto.NewParser()

	var key paseto.V4SymmetricKey
	if secret == "" {
		key = paseto.NewV4SymmetricKey()
	} else {
		sum := sha256.Sum256([]byte(secret))
		k, err := paseto.V4SymmetricKeyFromBytes(sum[:])
		if err != nil {
			return nil, fmt.Errorf("token key: %w", err)
		}
		key = k
	}

	if duration <= 0 {
		duration = 72 * time.Hour
	}

	s := PasetoToken{
		parser:   &parser,
		key:      &key,
		duration: duration,
	}

	return &s, nil
}

func (p *PasetoToken) CreateToken(partner *domain.Partner) (string, error) {
	now := time.Now()
	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(p.duration))

	payload := port.TokenPayload{Phone: partner.Phone, ChannelName: partner.ChannelName}
	err := token.Set(payloadClaim, payload)
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(*p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*port.TokenPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(*p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	payload := port.TokenPayload{}
	err = parsedToken.Get(payloadClaim, &payload)
	if err != nil || payload.ChannelName == "" {
		return nil, domain.ErrInvalidToken
	}
	return &payload, nil
}
