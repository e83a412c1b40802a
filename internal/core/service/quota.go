package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

func (s *Service) Balance(ctx context.Context, account string) (int64, error) {
	if _, err := s.ownedUser(ctx, "", account); err != nil {
		return 0, err
	}
	balance, err := s.repo.Balance(ctx, account)
	if err != nil {
		s.logger.Error("Get balance", zap.String("account", account), zap.Error(err))
		return 0, domain.ErrInternal
	}
	return balance, nil
}

// History lists the newest ledger entries of an account.
func (s *Service) History(ctx context.Context, account string) ([]*domain.LedgerEntry, error) {
	if _, err := s.ownedUser(ctx, "", account); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListEntries(ctx, account, domain.NewestFirst, domain.HistoryLimit)
	if err != nil {
		s.logger.Error("List entries", zap.String("account", account), zap.Error(err))
		return nil, domain.ErrInternal
	}
	return entries, nil
}

func (s *Service) Profile(ctx context.Context, account string) (*domain.Profile, error) {
	user, err := s.ownedUser(ctx, "", account)
	if err != nil {
		return nil, err
	}
	balance, err := s.repo.Balance(ctx, account)
	if err != nil {
		s.logger.Error("Get balance", zap.String("account", account), zap.Error(err))
		return nil, domain.ErrInternal
	}

	status := domain.ServicePending
	if balance > 0 {
		status = domain.ServiceActive
	}
	return &domain.Profile{
		UserID:      user.ID,
		Username:    user.Username,
		ChannelName: user.ChannelName,
		Balance:     balance,
		Status:      status,
	}, nil
}

// Consume debits credits from an account. The balance never goes negative.
func (s *Service) Consume(ctx context.Context, channel, account string, credits int64,
	remark string) (*domain.ConsumeResult, error) {
	if credits <= 0 {
		return nil, domain.ErrBadAmount
	}

	var balance int64
	err := s.repo.WithinTx(ctx, func(ctx context.Context, tx port.LedgerTx) error {
		user, err := s.lockOwnedUser(ctx, tx, channel, account)
		if err != nil {
			return err
		}

		current, err := tx.Balance(ctx, user.ID)
		if err != nil {
			return err
		}
		if current < credits {
			return domain.ErrInsufficientBalance
		}

		err = tx.AppendEntry(ctx, &domain.LedgerEntry{
			UserID:    user.ID,
			Delta:     -credits,
			Action:    domain.ActionConsume,
			Source:    domain.QuotaSourceConsume,
			Remark:    remark,
			CreatedAt: s.now().UTC(),
		})
		if err != nil {
			return err
		}
		balance = current - credits
		return nil
	})
	if err != nil {
		return nil, s.quotaError("Consume", account, err)
	}

	return &domain.ConsumeResult{Account: account, Credits: credits, Balance: balance}, nil
}

// ManualRecharge credits amount (major units) times 100 as quota, truncating fractions.
func (s *Service) ManualRecharge(ctx context.Context, channel, account string,
	amount decimal.Decimal) (*domain.RechargeResult, error) {
	credits, err := creditsFromAmount(amount)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var balance int64
	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx port.LedgerTx) error {
		user, err := s.lockOwnedUser(ctx, tx, channel, account)
		if err != nil {
			return err
		}

		err = tx.AppendEntry(ctx, &domain.LedgerEntry{
			UserID:    user.ID,
			Delta:     credits,
			Action:    domain.ActionManualRecharge,
			Source:    domain.QuotaSourceManual,
			Remark:    channel,
			CreatedAt: now,
		})
		if err != nil {
			return err
		}
		if err := tx.AddRecharged(ctx, user.ID, credits, domain.QuotaSourceManual, now); err != nil {
			return err
		}

		balance, err = tx.Balance(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, s.quotaError("Manual recharge", account, err)
	}

	s.logger.Info("Manual recharge",
		zap.String("account", account),
		zap.String("channel", channel),
		zap.Int64("credits", credits))

	return &domain.RechargeResult{Account: account, Credits: credits, Balance: balance, CreatedAt: now}, nil
}

func creditsFromAmount(amount decimal.Decimal) (int64, error) {
	if amount.Sign() <= 0 {
		return 0, domain.ErrBadAmount
	}
	scaled, err := amount.Mul(decimal.Hundred)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrBadAmount, err)
	}
	coef := scaled.Trunc(0).Coef()
	if coef == 0 || coef > math.MaxInt64 {
		return 0, domain.ErrBadAmount
	}
	return int64(coef), nil
}

func (s *Service) lockOwnedUser(ctx context.Context, tx port.LedgerTx, channel, account string) (*domain.User, error) {
	user, err := tx.LockUser(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	if channel != "" && user.ChannelName != channel {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (s *Service) quotaError(op, account string, err error) error {
	for _, known := range []error{
		domain.ErrAccountNotFound,
		domain.ErrForbidden,
		domain.ErrInsufficientBalance,
		domain.ErrBadAmount,
		domain.ErrTransientStore,
	} {
		if errors.Is(err, known) {
			return known
		}
	}
	s.logger.Error(op, zap.String("account", account), zap.Error(err))
	return domain.ErrInternal
}

// Reconcile rebuilds the recharge snapshots from the ledger.
func (s *Service) Reconcile(ctx context.Context) (int, error) {
	n, err := s.repo.RebuildSnapshots(ctx)
	if err != nil {
		s.logger.Error("Rebuild snapshots", zap.Error(err))
		return 0, domain.ErrInternal
	}
	s.logger.Info("Snapshots rebuilt", zap.Int("users", n))
	return n, nil
}

func (s *Service) DealerOrders(ctx context.Context, channel string) ([]*domain.Settlement, error) {
	orders, err := s.repo.ListOrdersByChannel(ctx, channel, domain.HistoryLimit)
	if err != nil {
		s.logger.Error("List orders", zap.String("channel", channel), zap.Error(err))
		return nil, domain.ErrInternal
	}

	secrets := make(map[string]string)
	list := make([]*domain.Settlement, 0, len(orders))
	for _, o := range orders {
		enc, ok := secrets[o.UserID]
		if !ok {
			if user, err := s.repo.GetUser(ctx, o.UserID); err == nil {
				enc = user.PasswordEnc
			}
			secrets[o.UserID] = enc
		}
		list = append(list, s.buildSettlement(o, enc, 0))
	}
	return list, nil
}

func (s *Service) DealerAccounts(ctx context.Context, channel string) ([]*domain.AccountSummary, error) {
	accounts, err := s.repo.ListAccountsByChannel(ctx, channel)
	if err != nil {
		s.logger.Error("List accounts", zap.String("channel", channel), zap.Error(err))
		return nil, domain.ErrInternal
	}
	return accounts, nil
}

// DealerAccountLogs folds the whole ledger of an account into running balances and returns
// the newest entries first.
func (s *Service) DealerAccountLogs(ctx context.Context, channel, account string) ([]domain.LogEntry, error) {
	if _, err := s.ownedUser(ctx, channel, account); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListEntries(ctx, account, domain.OldestFirst, 0)
	if err != nil {
		s.logger.Error("List entries", zap.String("account", account), zap.Error(err))
		return nil, domain.ErrInternal
	}

	logs := domain.FoldRunningBalance(entries)
	if len(logs) > domain.HistoryLimit {
		logs = logs[:domain.HistoryLimit]
	}
	return logs, nil
}
