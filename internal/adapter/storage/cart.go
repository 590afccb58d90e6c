package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.RemoteCartStorage = (*CartRepository)(nil)

const upsertLineQuery = `
	INSERT INTO cart_items (user_id, product_id, qty)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, product_id) DO UPDATE SET qty = EXCLUDED.qty;
`

// A CartRepository is the per-user cart table, one row per
// (user_id, product_id). Upserts overwrite quantity, so re-running the
// same push never double-counts.
type CartRepository struct {
	sqldb sqldb
}

func NewCartRepository(sqldb sqldb) CartRepository {
	return CartRepository{sqldb}
}

func (r CartRepository) UpsertLines(
	ctx context.Context, userID string, ls []domain.CartLine,
) (upsertErr error) {
	const op = "CartRepository.UpsertLines"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(ls) == 0 {
		return nil
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}
	defer r.finishTx(op, tx, &upsertErr)

	if err := r.upsertLinesTx(ctx, tx, userID, ls); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CartRepository) FetchLines(
	ctx context.Context, userID string,
) ([]domain.CartLine, error) {
	const op = "CartRepository.FetchLines"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT product_id, qty FROM cart_items
		WHERE user_id = $1 ORDER BY product_id;`

	rows, err := r.sqldb.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r.scanLines(op, rows)
}

// MergeCart pushes ls and reads the whole remote cart back in one
// transaction, closing the window between a push success and a pull
// failure.
func (r CartRepository) MergeCart(
	ctx context.Context, userID string, ls []domain.CartLine,
) (merged []domain.CartLine, mergeErr error) {
	const op = "CartRepository.MergeCart"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}
	defer r.finishTx(op, tx, &mergeErr)

	if err := r.upsertLinesTx(ctx, tx, userID, ls); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT product_id, qty FROM cart_items
		WHERE user_id = $1 ORDER BY product_id;`

	rows, err := tx.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r.scanLines(op, rows)
}

func (r CartRepository) LineQuantity(
	ctx context.Context, userID string, productID int,
) (int, error) {
	const op = "CartRepository.LineQuantity"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT qty FROM cart_items
		WHERE user_id = $1 AND product_id = $2;`

	var qty int
	err := r.sqldb.QueryRowContext(ctx, query, userID, productID).Scan(&qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return qty, nil
}

// SetQuantity stores the exact quantity; zero or below deletes the row
// instead.
func (r CartRepository) SetQuantity(
	ctx context.Context, userID string, productID, qty int,
) error {
	const op = "CartRepository.SetQuantity"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if qty <= 0 {
		return r.DeleteLine(ctx, userID, productID)
	}

	_, err := r.sqldb.ExecContext(ctx, upsertLineQuery, userID, productID, qty)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CartRepository) DeleteLine(
	ctx context.Context, userID string, productID int,
) error {
	const op = "CartRepository.DeleteLine"

	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2;`
	_, err := r.sqldb.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CartRepository) DeleteAll(ctx context.Context, userID string) error {
	const op = "CartRepository.DeleteAll"

	query := `DELETE FROM cart_items WHERE user_id = $1;`
	_, err := r.sqldb.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CartRepository) upsertLinesTx(
	ctx context.Context, tx *sql.Tx, userID string, ls []domain.CartLine,
) error {
	if len(ls) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, upsertLineQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare stmt: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			slog.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, l := range domain.NormalizeLines(ls) {
		_, err := stmt.ExecContext(ctx, userID, l.ProductID, l.Quantity)
		if err != nil {
			return fmt.Errorf("failed to exec: %w", err)
		}
	}
	return nil
}

func (r CartRepository) scanLines(
	op string, rows *sql.Rows,
) ([]domain.CartLine, error) {
	defer rows.Close()

	var ls []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ls = append(ls, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ls, nil
}

func (r CartRepository) finishTx(op string, tx *sql.Tx, opErr *error) {
	if *opErr == nil {
		if err := tx.Commit(); err != nil {
			*opErr = fmt.Errorf("%s: failed to commit: %w", op, err)
		}
		return
	}

	if err := tx.Rollback(); err != nil {
		slog.Error("failed to rollback tx", "op", op, "err", err)
	}
}
