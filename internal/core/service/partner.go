package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/utils"
	"go.uber.org/zap"
)

func (s *Service) RegisterPartner(ctx context.Context, phone, password, channel string) (*domain.Partner, error) {
	phone = strings.TrimSpace(phone)
	channel = strings.TrimSpace(channel)
	if phone == "" || password == "" || channel == "" {
		return nil, domain.ErrBadRequest
	}

	exPartner, err := s.repo.GetPartnerByPhone(ctx, phone)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Get partner", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if exPartner != nil {
		return nil, domain.ErrConflictingData
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		s.logger.Error("Hash password", zap.Error(err))
		return nil, domain.ErrInternal
	}

	partner, err := s.repo.CreatePartner(ctx, &domain.Partner{
		Phone:        phone,
		PasswordHash: hash,
		ChannelName:  channel,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, domain.ErrConflictingData
		}
		s.logger.Error("Create partner", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return partner, nil
}

func (s *Service) LoginPartner(ctx context.Context, phone, password string) (string, error) {
	partner, err := s.repo.GetPartnerByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrInternal
	}

	err = utils.ComparePassword(password, partner.PasswordHash)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(partner)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}
