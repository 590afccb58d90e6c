package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.OrderStorage = (*OrdersRepository)(nil)

type (
	orderLineRow struct {
		ID    int     `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Qty   int     `json:"qty"`
	}

	shippingRow struct {
		Address string `json:"address"`
		City    string `json:"city"`
		Zip     string `json:"zip"`
	}
)

// An OrdersRepository reads order rows written by the order-creation
// collaborator into the shared database. This service never inserts or
// mutates orders.
type OrdersRepository struct {
	sqldb sqldb
}

func NewOrdersRepository(sqldb sqldb) OrdersRepository {
	return OrdersRepository{sqldb}
}

func (r OrdersRepository) OrderByToken(
	ctx context.Context, token string,
) (domain.Order, error) {
	const op = "OrdersRepository.OrderByToken"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, user_id, guest_email, guest_name, shipping,
			status, total, lines, order_token, created_at
		FROM orders WHERE order_token = $1;`

	o, err := r.scanOrder(r.sqldb.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func (r OrdersRepository) ListOrders(
	ctx context.Context, userID string,
) ([]domain.Order, error) {
	const op = "OrdersRepository.ListOrders"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, user_id, guest_email, guest_name, shipping,
			status, total, lines, order_token, created_at
		FROM orders WHERE user_id = $1
		ORDER BY created_at DESC;`

	rows, err := r.sqldb.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var os []domain.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		os = append(os, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return os, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r OrdersRepository) scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o          domain.Order
		userID     sql.NullString
		guestEmail sql.NullString
		guestName  sql.NullString
		shippingS  sql.NullString
		linesS     string
	)

	err := row.Scan(
		&o.ID, &userID, &guestEmail, &guestName, &shippingS,
		&o.Status, &o.Total, &linesS, &o.OrderToken, &o.CreatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}

	o.UserID = userID.String
	o.GuestEmail = guestEmail.String
	o.GuestName = guestName.String

	if shippingS.Valid {
		var sh shippingRow
		if err := json.Unmarshal([]byte(shippingS.String), &sh); err != nil {
			return domain.Order{}, err
		}
		o.Shipping = &domain.Shipping{
			Address: sh.Address, City: sh.City, Zip: sh.Zip,
		}
	}

	var lineRows []orderLineRow
	if err := json.Unmarshal([]byte(linesS), &lineRows); err != nil {
		return domain.Order{}, err
	}
	o.Lines = make([]domain.OrderLine, 0, len(lineRows))
	for _, lr := range lineRows {
		o.Lines = append(o.Lines, domain.OrderLine{
			ProductID: lr.ID,
			Name:      lr.Name,
			Price:     lr.Price,
			Quantity:  lr.Qty,
		})
	}
	return o, nil
}
