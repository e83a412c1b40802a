package port

import "github.com/MikeRez0/quotapay/internal/core/domain"

type TokenPayload struct {
	Phone       string
	ChannelName string
}

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenService interface {
	CreateToken(partner *domain.Partner) (string, error)
	VerifyToken(token string) (*TokenPayload, error)
}
