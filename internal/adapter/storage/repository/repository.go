package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/quotapay/internal/adapter/storage"
	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Repository is the Postgres implementation of port.Repository.
type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *Repository) WithinTx(ctx context.Context, fn port.TxFn) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if r.db.LockTimeout > 0 {
			// SET does not accept bind parameters.
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.db.LockTimeout.Milliseconds())
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return fn(ctx, &ledgerTx{tx: tx, qb: r.db.QueryBuilder})
	})
	return mapError(err)
}

// mapError translates driver errors into domain errors and passes everything else through.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrDataNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflictingData, pgErr.ConstraintName)
		case pgErr.Code == pgerrcode.LockNotAvailable,
			pgErr.Code == pgerrcode.SerializationFailure,
			pgErr.Code == pgerrcode.DeadlockDetected,
			pgErr.Code == pgerrcode.QueryCanceled,
			pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsInsufficientResources(pgErr.Code):
			return fmt.Errorf("%w: %s", domain.ErrTransientStore, pgErr.Message)
		}
		return err
	}

	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", domain.ErrTransientStore, err)
	}
	return err
}

func execStatement(ctx context.Context, q querier, st sq.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := st.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	tag, err := q.Exec(ctx, sql, args...)
	return tag, mapError(err)
}

func queryRow(ctx context.Context, q querier, st sq.Sqlizer) (pgx.Row, error) {
	sql, args, err := st.ToSql()
	if err != nil {
		return nil, err
	}
	return q.QueryRow(ctx, sql, args...), nil
}

func queryRows(ctx context.Context, q querier, st sq.Sqlizer) (pgx.Rows, error) {
	sql, args, err := st.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, sql, args...)
	return rows, mapError(err)
}
