package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const unknownProductName = "Unknown"

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrGuestEmail   = errors.New("guest email is required")
	ErrCaptchaToken = errors.New("captcha token is required")
	ErrNoOrderToken = errors.New("no order token returned")
)

// A CheckoutRequest carries the caller identity and verification data.
// UserID empty means guest checkout.
type CheckoutRequest struct {
	UserID       string
	GuestEmail   string
	GuestName    string
	Shipping     domain.Shipping
	CaptchaToken string
}

// Checkout assembles a priced, named order payload from the current
// cart and the catalog, and hands it to the order-creation collaborator.
type Checkout struct {
	cart     *Cart
	catalog  port.CatalogProvider
	placer   port.OrderPlacer
	events   port.OrderPlacedProducer
	notifier port.Notifier
}

func NewCheckout(
	cart *Cart,
	catalog port.CatalogProvider,
	placer port.OrderPlacer,
	events port.OrderPlacedProducer,
	notifier port.Notifier,
) Checkout {
	return Checkout{cart, catalog, placer, events, notifier}
}

// AssembleOrder joins the cart lines with live catalog data. A line
// whose product is missing from the catalog is kept with the sentinel
// name and price 0 instead of failing the checkout; lines without a
// positive quantity are dropped.
func (s Checkout) AssembleOrder(
	ctx context.Context,
) ([]domain.OrderLine, float64, error) {
	const op = "Checkout.AssembleOrder"

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	// String keys tolerate mixed numeric/string catalog ids.
	lookup := make(map[string]domain.Product, len(products))
	for _, p := range products {
		lookup[strconv.Itoa(p.ProductID)] = p
	}

	var (
		lines []domain.OrderLine
		total float64
	)
	for _, li := range s.cart.Lines() {
		if li.Quantity <= 0 {
			continue
		}
		ol := domain.OrderLine{
			ProductID: li.ProductID,
			Name:      unknownProductName,
			Quantity:  li.Quantity,
		}
		if p, ok := lookup[strconv.Itoa(li.ProductID)]; ok {
			ol.Name = p.Name
			ol.Price = p.Price
		}
		total += ol.Price * float64(ol.Quantity)
		lines = append(lines, ol)
	}

	return lines, total, nil
}

// PlaceOrder validates locally, submits the assembled draft and, on
// success, clears the local cart and returns the order token. The
// remote per-user cart is intentionally left untouched.
func (s Checkout) PlaceOrder(
	ctx context.Context, req CheckoutRequest,
) (string, error) {
	const op = "Checkout.PlaceOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.validate(req); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	lines, total, err := s.AssembleOrder(ctx)
	if err != nil {
		s.notifier.Error("failed to load products for checkout")
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	token, err := s.placer.PlaceOrder(ctx, s.toDraft(req, lines, total))
	if err != nil {
		s.notifier.Error("failed to place order")
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if token == "" {
		s.notifier.Error("checkout completed but no order token returned")
		return "", fmt.Errorf("%s: %w", op, ErrNoOrderToken)
	}

	s.produceEvent(ctx, req, token, total, len(lines))

	s.cart.Clear()
	s.notifier.Success("order placed")
	log.Info("order placed", "orderToken", token, "total", total)
	return token, nil
}

func (s Checkout) validate(req CheckoutRequest) error {
	if req.UserID == "" && strings.TrimSpace(req.GuestEmail) == "" {
		return ErrGuestEmail
	}
	if len(s.cart.Lines()) == 0 {
		return ErrEmptyCart
	}
	if req.CaptchaToken == "" {
		return ErrCaptchaToken
	}
	return nil
}

func (s Checkout) toDraft(
	req CheckoutRequest, lines []domain.OrderLine, total float64,
) domain.OrderDraft {
	d := domain.OrderDraft{
		UserID:       req.UserID,
		Status:       "created",
		Total:        total,
		Lines:        lines,
		CaptchaToken: req.CaptchaToken,
	}
	if req.UserID == "" {
		d.GuestEmail = strings.TrimSpace(req.GuestEmail)
		d.GuestName = strings.TrimSpace(req.GuestName)
		sh := req.Shipping
		sh.Address = strings.TrimSpace(sh.Address)
		sh.City = strings.TrimSpace(sh.City)
		sh.Zip = strings.TrimSpace(sh.Zip)
		d.Shipping = &sh
	}
	return d
}

// produceEvent is best effort: a broker failure must not undo an order
// the collaborator already persisted.
func (s Checkout) produceEvent(
	ctx context.Context, req CheckoutRequest, token string, total float64, n int,
) {
	const op = "Checkout.produceEvent"

	ownerKey := req.UserID
	if ownerKey == "" {
		ownerKey = strings.TrimSpace(req.GuestEmail)
	}

	evt := domain.OrderPlaced{
		EventID:    uuid.NewString(),
		OrderToken: token,
		OwnerKey:   ownerKey,
		Total:      total,
		LineCount:  n,
		PlacedAt:   time.Now().UTC(),
	}

	if err := s.events.ProduceOrderPlaced(ctx, evt); err != nil {
		slog.Error("failed to produce order event", "op", op, "err", err)
	}
}
