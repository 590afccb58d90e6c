package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	ErrUserRequired  = errors.New("user id is required")
	ErrTitleRequired = errors.New("title is required")
)

// CakeRequests lets authenticated users submit custom cake requests.
type CakeRequests struct {
	storage  port.CakeRequestStorage
	notifier port.Notifier
}

func NewCakeRequests(
	storage port.CakeRequestStorage, notifier port.Notifier,
) CakeRequests {
	return CakeRequests{storage, notifier}
}

func (s CakeRequests) Submit(
	ctx context.Context, r domain.CakeRequest,
) (domain.CakeRequest, error) {
	const op = "CakeRequests.Submit"

	if r.UserID == "" {
		return domain.CakeRequest{}, fmt.Errorf("%s: %w", op, ErrUserRequired)
	}
	if strings.TrimSpace(r.Title) == "" {
		return domain.CakeRequest{}, fmt.Errorf("%s: %w", op, ErrTitleRequired)
	}
	if r.Servings < 1 {
		r.Servings = 1
	}
	if r.Status == "" {
		r.Status = "pending"
	}

	stored, err := s.storage.CreateCakeRequest(ctx, r)
	if err != nil {
		s.notifier.Error("error submitting request")
		return domain.CakeRequest{}, fmt.Errorf("%s: %w", op, err)
	}

	s.notifier.Success("your cake request has been submitted")
	return stored, nil
}

func (s CakeRequests) ListByUser(
	ctx context.Context, userID string,
) ([]domain.CakeRequest, error) {
	const op = "CakeRequests.ListByUser"

	if userID == "" {
		return nil, nil
	}

	rs, err := s.storage.ListCakeRequests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rs, nil
}
