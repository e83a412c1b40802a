package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
	"go.uber.org/zap"
)

// Settlement outcomes reported to metrics.
const (
	OutcomeCredited      = "credited"
	OutcomeAlreadyPaid   = "already_paid"
	OutcomeNotFound      = "not_found"
	OutcomeMismatch      = "amount_mismatch"
	OutcomeTransient     = "transient"
	OutcomeFailed        = "failed"
	OutcomeUnauthorized  = "unauthorized"
	OutcomeUndecryptable = "undecryptable"
	OutcomeMalformed     = "malformed"
	OutcomeIgnored       = "ignored"
)

// Settle moves an order from PENDING to PAID and credits its quota exactly once. Calls for
// an order that is already PAID succeed with the stored record and credit nothing.
func (s *Service) Settle(ctx context.Context, req domain.SettleRequest) (*domain.Settlement, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.settleTimeout)
	defer cancel()

	log := s.logger.With(
		zap.String("order", string(req.OrderRef)),
		zap.String("source", string(req.Source)),
		zap.String("event_id", req.EventID),
	)

	var (
		order    *domain.Order
		user     *domain.User
		balance  int64
		credited bool
	)

	err := s.repo.WithinTx(ctx, func(ctx context.Context, tx port.LedgerTx) error {
		o, err := tx.LockOrder(ctx, req.OrderRef)
		if err != nil {
			if errors.Is(err, domain.ErrDataNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}

		if req.ObservedAmount != nil && *req.ObservedAmount != o.AmountFen {
			return fmt.Errorf("%w: observed %d, recorded %d",
				domain.ErrAmountMismatch, *req.ObservedAmount, o.AmountFen)
		}

		u, err := tx.LockUser(ctx, o.UserID)
		if err != nil {
			return fmt.Errorf("lock user %s: %w", o.UserID, err)
		}

		if !o.IsPaid() {
			paidAt := s.now().UTC()
			if req.PaidAt != nil {
				paidAt = req.PaidAt.UTC()
			}

			if err := tx.MarkOrderPaid(ctx, o.Ref, req.GatewayTxnID, paidAt); err != nil {
				return fmt.Errorf("mark paid: %w", err)
			}

			if o.Quota > 0 {
				ref := o.Ref
				entry := &domain.LedgerEntry{
					UserID:    u.ID,
					Delta:     o.Quota,
					Action:    domain.ActionPayRecharge,
					Source:    domain.QuotaSourceGateway,
					OrderRef:  &ref,
					Remark:    req.GatewayTxnID,
					CreatedAt: s.now().UTC(),
				}
				if err := tx.AppendEntry(ctx, entry); err != nil {
					return fmt.Errorf("append entry: %w", err)
				}
				if err := tx.AddRecharged(ctx, u.ID, o.Quota, domain.QuotaSourceGateway, entry.CreatedAt); err != nil {
					return fmt.Errorf("add recharged: %w", err)
				}
			}

			o.Status = domain.OrderStatusPaid
			o.TransactionID = req.GatewayTxnID
			o.PaidAt = &paidAt
			credited = true
		}

		b, err := tx.Balance(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("balance: %w", err)
		}

		order, user, balance = o, u, b
		return nil
	})
	if err != nil {
		outcome := settleOutcome(err)
		s.metrics.ObserveSettlement(req.Source, outcome)
		switch outcome {
		case OutcomeNotFound, OutcomeMismatch:
			log.Warn("settlement rejected", zap.Error(err))
		case OutcomeTransient:
			log.Warn("settlement deferred", zap.Error(err))
		default:
			log.Error("settlement failed", zap.Error(err))
		}
		return nil, err
	}

	result := s.buildSettlement(order, user.PasswordEnc, balance)
	result.Credited = credited

	if !credited {
		s.metrics.ObserveSettlement(req.Source, OutcomeAlreadyPaid)
		log.Debug("order already settled")
		return result, nil
	}

	s.metrics.ObserveSettlement(req.Source, OutcomeCredited)
	log.Info("order settled",
		zap.String("user", user.ID),
		zap.Int64("quota", order.Quota),
		zap.Int64("balance", balance))

	s.publishSettled(ctx, log, order, req.Source, balance)
	return result, nil
}

func (s *Service) publishSettled(ctx context.Context, log *zap.Logger, order *domain.Order,
	source domain.SettlementSource, balance int64) {
	event := domain.OrderSettled{
		OrderRef:      order.Ref,
		UserID:        order.UserID,
		ChannelName:   order.ChannelName,
		AmountFen:     order.AmountFen,
		Quota:         order.Quota,
		TransactionID: order.TransactionID,
		Source:        source,
		Balance:       balance,
		SettledAt:     s.now().UTC(),
	}
	if order.PaidAt != nil {
		event.SettledAt = *order.PaidAt
	}
	if err := s.events.PublishOrderSettled(ctx, event); err != nil {
		log.Warn("publish settled event", zap.Error(err))
	}
}

func (s *Service) buildSettlement(order *domain.Order, passwordEnc string, balance int64) *domain.Settlement {
	return &domain.Settlement{
		Account:     order.UserID,
		ChannelName: order.ChannelName,
		Plan:        order.Plan(),
		AmountFen:   order.AmountFen,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		PaidAt:      order.PaidAt,
		OrderRef:    order.Ref,
		Balance:     balance,
		Password:    s.RevealSecret(passwordEnc),
	}
}

func settleOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrAmountMismatch):
		return OutcomeMismatch
	case errors.Is(err, domain.ErrTransientStore),
		errors.Is(err, context.DeadlineExceeded):
		return OutcomeTransient
	}
	return OutcomeFailed
}
