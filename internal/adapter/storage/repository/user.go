package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/quotapay/internal/core/domain"
)

var userColumns = []string{"user_id", "username", "channel_name", "password_hash", "password_enc", "created_at"}

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	user := domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.ChannelName,
		&user.PasswordHash,
		&user.PasswordEnc,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	_, err := execStatement(ctx, r.db, r.db.QueryBuilder.
		Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Username, user.ChannelName, user.PasswordHash, user.PasswordEnc, user.CreatedAt))
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	row, err := queryRow(ctx, r.db, r.db.QueryBuilder.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"user_id": userID}))
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	row, err := queryRow(ctx, r.db, r.db.QueryBuilder.Select("COUNT(*)").From("users"))
	if err != nil {
		return 0, err
	}

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, mapError(err)
	}
	return count, nil
}
