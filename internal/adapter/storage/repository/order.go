package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/quotapay/internal/core/domain"
)

var orderColumns = []string{
	"out_trade_no", "user_id", "channel_name", "amount_fen", "quota_amount",
	"status", "transaction_id", "created_at", "paid_at",
}

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	order := domain.Order{}
	var txnID *string
	err := row.Scan(
		&order.Ref,
		&order.UserID,
		&order.ChannelName,
		&order.AmountFen,
		&order.Quota,
		&order.Status,
		&txnID,
		&order.CreatedAt,
		&order.PaidAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	if txnID != nil {
		order.TransactionID = *txnID
	}
	return &order, nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	_, err := execStatement(ctx, r.db, r.db.QueryBuilder.
		Insert("pay_orders").
		Columns("out_trade_no", "user_id", "channel_name", "amount_fen", "quota_amount",
			"status", "created_at", "updated_at").
		Values(order.Ref, order.UserID, order.ChannelName, order.AmountFen, order.Quota,
			order.Status, order.CreatedAt, order.CreatedAt))
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) ReadOrder(ctx context.Context, ref domain.OrderRef) (*domain.Order, error) {
	row, err := queryRow(ctx, r.db, r.db.QueryBuilder.
		Select(orderColumns...).
		From("pay_orders").
		Where(sq.Eq{"out_trade_no": ref}))
	if err != nil {
		return nil, err
	}
	return scanOrder(row)
}

func (r *Repository) ListOrdersByChannel(ctx context.Context, channel string, limit uint64) ([]*domain.Order, error) {
	rows, err := queryRows(ctx, r.db, r.db.QueryBuilder.
		Select(orderColumns...).
		From("pay_orders").
		Where(sq.Eq{"channel_name": channel}).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return list, nil
}
