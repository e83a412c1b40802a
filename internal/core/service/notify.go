package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"go.uber.org/zap"
)

// HandleNotification authenticates, decrypts and applies one webhook delivery.
//
// The returned error decides whether the gateway redelivers: ErrAuthenticationFailure,
// ErrDecryptionFailure, ErrBadRequest and ErrTransientStore are surfaced, while outcomes
// a redelivery cannot change (unknown order, amount mismatch, non-success state) return nil.
func (s *Service) HandleNotification(ctx context.Context, headers domain.NotificationHeaders, rawBody []byte) error {
	if err := s.verifier.VerifyNotification(headers, rawBody); err != nil {
		s.metrics.ObserveNotification(OutcomeUnauthorized)
		s.logger.Warn("notification rejected", zap.String("serial", headers.Serial), zap.Error(err))
		return domain.ErrAuthenticationFailure
	}

	var envelope domain.NotificationEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err != nil || envelope.Resource == nil {
		s.metrics.ObserveNotification(OutcomeMalformed)
		return fmt.Errorf("%w: notification envelope", domain.ErrBadRequest)
	}

	log := s.logger.With(zap.String("event_id", envelope.ID), zap.String("event_type", envelope.EventType))

	var txn domain.Transaction
	if envelope.ResourceType == domain.ResourceTypeEncrypted {
		plain, err := s.verifier.DecryptResource(envelope.Resource.Ciphertext,
			envelope.Resource.AssociatedData, envelope.Resource.Nonce)
		if err != nil {
			s.metrics.ObserveNotification(OutcomeUndecryptable)
			log.Warn("notification not decryptable", zap.Error(err))
			return domain.ErrDecryptionFailure
		}
		if err := json.Unmarshal(plain, &txn); err != nil {
			s.metrics.ObserveNotification(OutcomeMalformed)
			return fmt.Errorf("%w: notification resource", domain.ErrBadRequest)
		}
	}

	if txn.TradeState != domain.TradeStateSuccess || txn.OutTradeNo == "" {
		s.metrics.ObserveNotification(OutcomeIgnored)
		log.Info("notification ignored", zap.String("trade_state", txn.TradeState))
		return nil
	}

	record, err := s.Settle(ctx, domain.SettleRequest{
		OrderRef:       domain.OrderRef(txn.OutTradeNo),
		ObservedAmount: txn.ObservedAmount(),
		GatewayTxnID:   txn.TransactionID,
		PaidAt:         successTime(txn.SuccessTime),
		Source:         domain.SourceNotify,
		EventID:        envelope.ID,
		EventType:      envelope.EventType,
	})
	outcome := settleOutcome(err)
	if err == nil {
		outcome = OutcomeAlreadyPaid
		if record.Credited {
			outcome = OutcomeCredited
		}
	}
	s.metrics.ObserveNotification(outcome)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrAmountMismatch):
		return nil
	case errors.Is(err, domain.ErrTransientStore):
		return domain.ErrTransientStore
	}
	return err
}
