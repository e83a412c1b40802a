package service

import (
	"context"
	"errors"
	"time"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"go.uber.org/zap"
)

// PollOrder reports the payment state of an order, settling it when the gateway says it is
// paid. Gateway and settlement failures leave the order pending rather than fail the poll.
func (s *Service) PollOrder(ctx context.Context, ref domain.OrderRef) (*domain.PollResult, error) {
	order, err := s.repo.ReadOrder(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		s.logger.Error("Read order", zap.String("order", string(ref)), zap.Error(err))
		return nil, err
	}

	if order.IsPaid() {
		record, err := s.storedSettlement(ctx, order)
		if err != nil {
			return nil, err
		}
		return &domain.PollResult{Paid: true, Record: record}, nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	txn, err := s.gateway.QueryOrder(queryCtx, ref)
	if err != nil {
		s.logger.Warn("GatewayCallFailure", zap.String("order", string(ref)), zap.Error(err))
		return &domain.PollResult{Paid: false}, nil
	}

	result := &domain.PollResult{Paid: false, TradeState: txn.TradeState}
	if txn.TradeState != domain.TradeStateSuccess {
		return result, nil
	}

	record, err := s.Settle(ctx, domain.SettleRequest{
		OrderRef:       ref,
		ObservedAmount: txn.ObservedAmount(),
		GatewayTxnID:   txn.TransactionID,
		PaidAt:         successTime(txn.SuccessTime),
		Source:         domain.SourceQuery,
	})
	if err != nil {
		return result, nil
	}

	result.Paid = true
	result.Record = record
	return result, nil
}

func (s *Service) storedSettlement(ctx context.Context, order *domain.Order) (*domain.Settlement, error) {
	user, err := s.repo.GetUser(ctx, order.UserID)
	if err != nil {
		s.logger.Error("Get order user", zap.String("order", string(order.Ref)), zap.Error(err))
		return nil, err
	}
	balance, err := s.repo.Balance(ctx, order.UserID)
	if err != nil {
		s.logger.Error("Get balance", zap.String("user", order.UserID), zap.Error(err))
		return nil, err
	}
	return s.buildSettlement(order, user.PasswordEnc, balance), nil
}

// successTime drops a zero gateway success time.
func successTime(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	return t
}
