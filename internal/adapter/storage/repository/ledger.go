package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

var entryColumns = []string{"id", "user_id", "delta", "action", "quota_source", "order_ref", "remark", "created_at"}

var rechargeActions = []string{string(domain.ActionPayRecharge), string(domain.ActionManualRecharge)}

func scanEntry(row interface{ Scan(...any) error }) (*domain.LedgerEntry, error) {
	entry := domain.LedgerEntry{}
	var orderRef, remark *string
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Delta,
		&entry.Action,
		&entry.Source,
		&orderRef,
		&remark,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	if orderRef != nil {
		ref := domain.OrderRef(*orderRef)
		entry.OrderRef = &ref
	}
	if remark != nil {
		entry.Remark = *remark
	}
	return &entry, nil
}

func balance(ctx context.Context, q querier, qb *sq.StatementBuilderType, userID string) (int64, error) {
	row, err := queryRow(ctx, q, qb.
		Select("COALESCE(SUM(delta), 0)").
		From("quota_ledger").
		Where(sq.Eq{"user_id": userID}))
	if err != nil {
		return 0, err
	}

	var sum int64
	if err := row.Scan(&sum); err != nil {
		return 0, mapError(err)
	}
	return sum, nil
}

func (r *Repository) Balance(ctx context.Context, userID string) (int64, error) {
	return balance(ctx, r.db, r.db.QueryBuilder, userID)
}

func (r *Repository) ListEntries(ctx context.Context, userID string, order domain.SortOrder,
	limit uint64) ([]*domain.LedgerEntry, error) {
	orderBy := []string{"created_at DESC", "id DESC"}
	if order == domain.OldestFirst {
		orderBy = []string{"created_at ASC", "id ASC"}
	}

	st := r.db.QueryBuilder.
		Select(entryColumns...).
		From("quota_ledger").
		Where(sq.Eq{"user_id": userID}).
		OrderBy(orderBy...)
	if limit > 0 {
		st = st.Limit(limit)
	}

	rows, err := queryRows(ctx, r.db, st)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.LedgerEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

func (r *Repository) ListAccountsByChannel(ctx context.Context, channel string) ([]*domain.AccountSummary, error) {
	rows, err := queryRows(ctx, r.db, r.db.QueryBuilder.
		Select(
			"u.user_id",
			"u.username",
			"u.password_enc",
			"COALESCE(SUM(l.delta), 0)",
			"MAX(l.created_at) FILTER (WHERE l.delta > 0 AND l.action IN ('PAY_RECHARGE', 'MANUAL_RECHARGE'))",
		).
		From("users u").
		LeftJoin("quota_ledger l ON l.user_id = u.user_id").
		Where(sq.Eq{"u.channel_name": channel}).
		GroupBy("u.user_id", "u.username", "u.password_enc", "u.created_at").
		OrderBy("u.created_at DESC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.AccountSummary, 0)
	for rows.Next() {
		summary := domain.AccountSummary{}
		err := rows.Scan(
			&summary.UserID,
			&summary.Username,
			&summary.PasswordEnc,
			&summary.Balance,
			&summary.LastRechargeAt,
		)
		if err != nil {
			return nil, mapError(err)
		}
		list = append(list, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

func (r *Repository) ReadSnapshot(ctx context.Context, userID string) (*domain.QuotaSnapshot, error) {
	row, err := queryRow(ctx, r.db, r.db.QueryBuilder.
		Select("user_id", "total_recharged", "quota_source", "updated_at").
		From("quota_snapshots").
		Where(sq.Eq{"user_id": userID}))
	if err != nil {
		return nil, err
	}

	snapshot := domain.QuotaSnapshot{}
	err = row.Scan(
		&snapshot.UserID,
		&snapshot.TotalRecharged,
		&snapshot.Source,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &snapshot, nil
}

// RebuildSnapshots recomputes every snapshot from the ledger and returns the number of rows written.
func (r *Repository) RebuildSnapshots(ctx context.Context) (int, error) {
	var written int
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := execStatement(ctx, tx, r.db.QueryBuilder.Delete("quota_snapshots")); err != nil {
			return err
		}

		// The source of a snapshot is the one of the latest recharge.
		totals := r.db.QueryBuilder.
			Select(
				"user_id",
				"SUM(delta)",
				"(ARRAY_AGG(quota_source ORDER BY created_at DESC, id DESC))[1]",
			).
			Column(sq.Expr("?::timestamptz", time.Now().UTC())).
			From("quota_ledger").
			Where(sq.And{sq.Gt{"delta": 0}, sq.Eq{"action": rechargeActions}}).
			GroupBy("user_id")

		tag, err := execStatement(ctx, tx, r.db.QueryBuilder.
			Insert("quota_snapshots").
			Columns("user_id", "total_recharged", "quota_source", "updated_at").
			Select(totals))
		if err != nil {
			return err
		}
		written = int(tag.RowsAffected())
		return nil
	})
	if err != nil {
		return 0, mapError(err)
	}
	return written, nil
}
