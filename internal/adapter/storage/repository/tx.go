package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

type ledgerTx struct {
	tx pgx.Tx
	qb *sq.StatementBuilderType
}

func (t *ledgerTx) LockOrder(ctx context.Context, ref domain.OrderRef) (*domain.Order, error) {
	row, err := queryRow(ctx, t.tx, t.qb.
		Select(orderColumns...).
		From("pay_orders").
		Where(sq.Eq{"out_trade_no": ref}).
		Suffix("FOR UPDATE"))
	if err != nil {
		return nil, err
	}
	return scanOrder(row)
}

func (t *ledgerTx) LockUser(ctx context.Context, userID string) (*domain.User, error) {
	row, err := queryRow(ctx, t.tx, t.qb.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"user_id": userID}).
		Suffix("FOR UPDATE"))
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (t *ledgerTx) MarkOrderPaid(ctx context.Context, ref domain.OrderRef, transactionID string, paidAt time.Time) error {
	tag, err := execStatement(ctx, t.tx, t.qb.
		Update("pay_orders").
		Set("status", domain.OrderStatusPaid).
		Set("transaction_id", transactionID).
		Set("paid_at", paidAt).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"out_trade_no": ref, "status": domain.OrderStatusPending}))
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return domain.ErrConflictingData
	}
	return nil
}

func (t *ledgerTx) AppendEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	var remark *string
	if entry.Remark != "" {
		remark = &entry.Remark
	}

	row, err := queryRow(ctx, t.tx, t.qb.
		Insert("quota_ledger").
		Columns("user_id", "delta", "action", "quota_source", "order_ref", "remark", "created_at").
		Values(entry.UserID, entry.Delta, entry.Action, entry.Source, entry.OrderRef, remark, entry.CreatedAt).
		Suffix("RETURNING id"))
	if err != nil {
		return err
	}
	return mapError(row.Scan(&entry.ID))
}

func (t *ledgerTx) AddRecharged(ctx context.Context, userID string, quota int64,
	source domain.QuotaSource, at time.Time) error {
	_, err := execStatement(ctx, t.tx, t.qb.
		Insert("quota_snapshots").
		Columns("user_id", "total_recharged", "quota_source", "updated_at").
		Values(userID, quota, source, at).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			total_recharged = quota_snapshots.total_recharged + EXCLUDED.total_recharged,
			quota_source = EXCLUDED.quota_source,
			updated_at = EXCLUDED.updated_at`))
	return err
}

func (t *ledgerTx) Balance(ctx context.Context, userID string) (int64, error) {
	return balance(ctx, t.tx, t.qb, userID)
}
