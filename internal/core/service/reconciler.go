package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// A Reconciler merges the anonymous local cart into the per-user remote
// cart when a session is established, then makes the remote state
// authoritative for the session.
type Reconciler struct {
	remote port.RemoteCartStorage
	cart   *Cart
}

func NewReconciler(remote port.RemoteCartStorage, cart *Cart) Reconciler {
	return Reconciler{remote, cart}
}

// Reconcile pushes the local lines and pulls the authoritative remote
// cart in a single storage merge, then replaces the local cart with the
// result. Re-running with the same local cart is idempotent: the upsert
// overwrites on conflict instead of summing. Any remote error leaves
// the local cart untouched.
func (r Reconciler) Reconcile(ctx context.Context, userID string) error {
	const op = "Reconciler.Reconcile"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if userID == "" {
		return fmt.Errorf("%s: user id is empty", op)
	}

	merged, err := r.remote.MergeCart(ctx, userID, r.cart.Lines())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r.cart.ReplaceAll(merged)
	return nil
}

// BumpQuantity adjusts the remote quantity by delta using
// read-modify-write. An absent row reads as quantity 0; a resulting
// quantity at or below zero deletes the row.
func (r Reconciler) BumpQuantity(
	ctx context.Context, userID string, productID, delta int,
) error {
	const op = "Reconciler.BumpQuantity"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	current, err := r.remote.LineQuantity(ctx, userID, productID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = r.remote.SetQuantity(ctx, userID, productID, current+delta)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
