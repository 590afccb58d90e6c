package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CakeRequestStorage = (*CakeRequestsRepository)(nil)

type CakeRequestsRepository struct {
	sqldb sqldb
}

func NewCakeRequestsRepository(sqldb sqldb) CakeRequestsRepository {
	return CakeRequestsRepository{sqldb}
}

func (r CakeRequestsRepository) CreateCakeRequest(
	ctx context.Context, req domain.CakeRequest,
) (domain.CakeRequest, error) {
	const op = "CakeRequestsRepository.CreateCakeRequest"

	if err := ctx.Err(); err != nil {
		return domain.CakeRequest{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO cake_requests (
			user_id, title, description, servings, due_date, status
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;`

	err := r.sqldb.QueryRowContext(ctx, query,
		req.UserID, req.Title, req.Description,
		req.Servings, req.DueDate, req.Status,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return domain.CakeRequest{}, fmt.Errorf("%s: %w", op, err)
	}
	return req, nil
}

func (r CakeRequestsRepository) ListCakeRequests(
	ctx context.Context, userID string,
) ([]domain.CakeRequest, error) {
	const op = "CakeRequestsRepository.ListCakeRequests"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, user_id, title, description, servings, due_date,
			status, created_at
		FROM cake_requests WHERE user_id = $1
		ORDER BY created_at DESC;`

	rows, err := r.sqldb.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var rs []domain.CakeRequest
	for rows.Next() {
		var req domain.CakeRequest
		err := rows.Scan(
			&req.ID, &req.UserID, &req.Title, &req.Description,
			&req.Servings, &req.DueDate, &req.Status, &req.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rs = append(rs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rs, nil
}
