package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

type Orders struct {
	storage port.OrderStorage
	stats   port.OrderStatsReader
}

func NewOrders(storage port.OrderStorage, stats port.OrderStatsReader) Orders {
	return Orders{storage, stats}
}

// OrderByToken backs the post-checkout receipt view. An unknown token
// yields nil without error.
func (s Orders) OrderByToken(
	ctx context.Context, token string,
) (*domain.Order, error) {
	const op = "Orders.OrderByToken"

	if token == "" {
		return nil, nil
	}

	o, err := s.storage.OrderByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &o, nil
}

func (s Orders) ListOrders(
	ctx context.Context, userID string,
) ([]domain.Order, error) {
	const op = "Orders.ListOrders"

	if userID == "" {
		return nil, nil
	}

	os, err := s.storage.ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return os, nil
}

// Stats reads the running per-owner aggregate from the order events
// group table.
func (s Orders) Stats(ownerKey string) (domain.OrderStats, error) {
	const op = "Orders.Stats"

	st, err := s.stats.OrderStats(ownerKey)
	if err != nil {
		return domain.OrderStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}
