package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

type Profiles struct {
	storage port.ProfileStorage
}

func NewProfiles(storage port.ProfileStorage) Profiles {
	return Profiles{storage}
}

// GetProfile returns nil without error when no row exists: first-time
// access is a normal empty result, not a failure.
func (s Profiles) GetProfile(
	ctx context.Context, userID string,
) (*domain.Profile, error) {
	const op = "Profiles.GetProfile"

	if userID == "" {
		return nil, nil
	}

	p, err := s.storage.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (s Profiles) SaveProfile(
	ctx context.Context, p domain.Profile,
) (domain.Profile, error) {
	const op = "Profiles.SaveProfile"

	if p.UserID == "" {
		return domain.Profile{}, fmt.Errorf("%s: user id is empty", op)
	}

	stored, err := s.storage.UpsertProfile(ctx, p)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return stored, nil
}
