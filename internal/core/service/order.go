package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const provisionAttempts = 3

// Purchase opens a PENDING order for a plan and registers it with the gateway. Without a
// target account a fresh account is provisioned for the channel.
func (s *Service) Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseResult, error) {
	if req.ChannelName == "" {
		return nil, domain.ErrBadRequest
	}
	plan := req.Plan
	if plan == "" {
		plan = domain.PlanTrial
	}

	var (
		user     *domain.User
		password string
		err      error
	)
	if req.TargetAccount != "" {
		user, err = s.ownedUser(ctx, req.ChannelName, req.TargetAccount)
	} else {
		user, password, err = s.provisionAccount(ctx, req.ChannelName)
	}
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	ref, err := domain.NewOrderRef(now)
	if err != nil {
		s.logger.Error("Order ref", zap.Error(err))
		return nil, domain.ErrInternal
	}

	order := &domain.Order{
		Ref:         ref,
		UserID:      user.ID,
		ChannelName: req.ChannelName,
		AmountFen:   s.catalog.AmountFen(plan),
		Quota:       s.catalog.Quota(plan),
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
	}
	if _, err := s.repo.CreateOrder(ctx, order); err != nil {
		s.logger.Error("Create order", zap.String("order", string(ref)), zap.Error(err))
		return nil, domain.ErrInternal
	}

	codeURL, err := s.gateway.CreateNativeOrder(ctx, domain.NativeOrder{
		OrderRef:    ref,
		Description: s.catalog.Description(plan),
		AmountFen:   order.AmountFen,
		Attach:      string(ref),
	})
	if err != nil {
		s.logger.Error("GatewayCallFailure", zap.String("order", string(ref)), zap.Error(err))
		return nil, fmt.Errorf("%w: native order %s", domain.ErrGatewayCall, ref)
	}

	s.logger.Info("Order created",
		zap.String("order", string(ref)),
		zap.String("channel", req.ChannelName),
		zap.String("plan", string(plan)),
		zap.Int64("amount_fen", order.AmountFen))

	return &domain.PurchaseResult{
		OrderRef: ref,
		Plan:     plan,
		Account:  user.ID,
		Password: password,
		CodeURL:  codeURL,
	}, nil
}

// ownedUser loads an account and checks it belongs to channel.
func (s *Service) ownedUser(ctx context.Context, channel, account string) (*domain.User, error) {
	user, err := s.repo.GetUser(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		s.logger.Error("Get user", zap.String("account", account), zap.Error(err))
		return nil, domain.ErrInternal
	}
	if channel != "" && user.ChannelName != channel {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (s *Service) provisionAccount(ctx context.Context, channel string) (*domain.User, string, error) {
	password, err := utils.SixDigitPassword()
	if err != nil {
		s.logger.Error("Generate password", zap.Error(err))
		return nil, "", domain.ErrInternal
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		s.logger.Error("Hash password", zap.Error(err))
		return nil, "", domain.ErrInternal
	}

	enc, err := s.vault.Encrypt([]byte(password))
	if err != nil {
		s.logger.Warn("Encrypt password, secret will not be recoverable", zap.Error(err))
		enc = ""
	}

	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		s.logger.Error("Count users", zap.Error(err))
		return nil, "", domain.ErrInternal
	}

	for attempt := int64(1); attempt <= provisionAttempts; attempt++ {
		user := &domain.User{
			ID:           uuid.NewString(),
			Username:     fmt.Sprintf("member-%d", count+attempt),
			ChannelName:  channel,
			PasswordHash: hash,
			PasswordEnc:  enc,
			CreatedAt:    s.now().UTC(),
		}
		created, err := s.repo.CreateUser(ctx, user)
		if err == nil {
			return created, password, nil
		}
		if !errors.Is(err, domain.ErrConflictingData) {
			s.logger.Error("Create user", zap.Error(err))
			return nil, "", domain.ErrInternal
		}
	}

	s.logger.Error("Create user: username sequence exhausted", zap.Int64("count", count))
	return nil, "", domain.ErrConflictingData
}
