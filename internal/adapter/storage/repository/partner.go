package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/quotapay/internal/core/domain"
)

func (r *Repository) CreatePartner(ctx context.Context, partner *domain.Partner) (*domain.Partner, error) {
	row, err := queryRow(ctx, r.db, r.db.QueryBuilder.
		Insert("channel_partners").
		Columns("phone", "password_hash", "channel_name").
		Values(partner.Phone, partner.PasswordHash, partner.ChannelName).
		Suffix("RETURNING id"))
	if err != nil {
		return nil, err
	}

	if err := row.Scan(&partner.ID); err != nil {
		return nil, mapError(err)
	}
	return partner, nil
}

func (r *Repository) GetPartnerByPhone(ctx context.Context, phone string) (*domain.Partner, error) {
	row, err := queryRow(ctx, r.db, r.db.QueryBuilder.
		Select("id", "phone", "password_hash", "channel_name").
		From("channel_partners").
		Where(sq.Eq{"phone": phone}))
	if err != nil {
		return nil, err
	}

	partner := domain.Partner{}
	err = row.Scan(
		&partner.ID,
		&partner.Phone,
		&partner.PasswordHash,
		&partner.ChannelName,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &partner, nil
}
