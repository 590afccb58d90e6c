package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProfileStorage = (*ProfilesRepository)(nil)

type ProfilesRepository struct {
	sqldb sqldb
}

func NewProfilesRepository(sqldb sqldb) ProfilesRepository {
	return ProfilesRepository{sqldb}
}

func (r ProfilesRepository) Profile(
	ctx context.Context, userID string,
) (domain.Profile, error) {
	const op = "ProfilesRepository.Profile"

	if err := ctx.Err(); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT user_id, full_name, phone, address, city, zip,
			avatar_url, updated_at
		FROM profiles WHERE user_id = $1;`

	var p domain.Profile
	err := r.sqldb.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.Phone, &p.Address, &p.City, &p.Zip,
		&p.AvatarURL, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProfilesRepository) UpsertProfile(
	ctx context.Context, p domain.Profile,
) (domain.Profile, error) {
	const op = "ProfilesRepository.UpsertProfile"

	if err := ctx.Err(); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO profiles (
			user_id, full_name, phone, address, city, zip, avatar_url,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			zip = EXCLUDED.zip,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = now()
		RETURNING user_id, full_name, phone, address, city, zip,
			avatar_url, updated_at;`

	var stored domain.Profile
	err := r.sqldb.QueryRowContext(ctx, query,
		p.UserID, p.FullName, p.Phone, p.Address, p.City, p.Zip, p.AvatarURL,
	).Scan(
		&stored.UserID, &stored.FullName, &stored.Phone, &stored.Address,
		&stored.City, &stored.Zip, &stored.AvatarURL, &stored.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return stored, nil
}
