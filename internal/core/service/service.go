package service

import (
	"context"
	"time"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
	"go.uber.org/zap"
)

const (
	defaultSettleTimeout = 10 * time.Second
	defaultQueryTimeout  = 5 * time.Second
)

type Service struct {
	repo     port.Repository
	gateway  port.PaymentGateway
	verifier port.NotificationVerifier
	vault    port.SecretVault
	tokens   port.TokenService
	events   port.EventPublisher
	metrics  port.SettlementMetrics
	catalog  domain.PlanCatalog
	logger   *zap.Logger

	settleTimeout time.Duration
	queryTimeout  time.Duration
	now           func() time.Time
}

type Option func(*Service)

func WithEventPublisher(p port.EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

func WithMetrics(m port.SettlementMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithCatalog(c domain.PlanCatalog) Option {
	return func(s *Service) { s.catalog = c }
}

// WithSettleTimeout bounds a settlement transaction once it is detached from the caller.
func WithSettleTimeout(d time.Duration) Option {
	return func(s *Service) { s.settleTimeout = d }
}

// WithQueryTimeout bounds the gateway call made by the poll path.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Service) { s.queryTimeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo port.Repository, gateway port.PaymentGateway, verifier port.NotificationVerifier,
	vault port.SecretVault, tokens port.TokenService, logger *zap.Logger, opts ...Option) (*Service, error) {
	s := &Service{
		repo:          repo,
		gateway:       gateway,
		verifier:      verifier,
		vault:         vault,
		tokens:        tokens,
		events:        nopEvents{},
		metrics:       nopMetrics{},
		logger:        logger,
		settleTimeout: defaultSettleTimeout,
		queryTimeout:  defaultQueryTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

var _ port.Service = (*Service)(nil)

type nopEvents struct{}

func (nopEvents) PublishOrderSettled(context.Context, domain.OrderSettled) error { return nil }

type nopMetrics struct{}

func (nopMetrics) ObserveSettlement(domain.SettlementSource, string) {}
func (nopMetrics) ObserveNotification(string)                        {}

// RevealSecret decrypts a stored account secret, nil when it cannot be recovered.
func (s *Service) RevealSecret(token string) *string {
	if token == "" || s.vault == nil {
		return nil
	}
	plain, err := s.vault.Decrypt(token)
	if err != nil {
		s.logger.Debug("secret not recoverable", zap.Error(err))
		return nil
	}
	secret := string(plain)
	return &secret
}
