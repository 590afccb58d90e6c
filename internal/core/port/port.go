package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

// CartStorage persists the anonymous cart snapshot. A read of absent or
// malformed data yields an empty cart, never an error.
type CartStorage interface {
	ReadCart() domain.Cart
	WriteCart(domain.Cart) error
}

// RemoteCartStorage is the per-user cart table keyed by (user, product).
type RemoteCartStorage interface {
	UpsertLines(ctx context.Context, userID string, ls []domain.CartLine) error
	FetchLines(ctx context.Context, userID string) ([]domain.CartLine, error)
	MergeCart(ctx context.Context, userID string, ls []domain.CartLine) ([]domain.CartLine, error)
	LineQuantity(ctx context.Context, userID string, productID int) (int, error)
	SetQuantity(ctx context.Context, userID string, productID, qty int) error
	DeleteLine(ctx context.Context, userID string, productID int) error
	DeleteAll(ctx context.Context, userID string) error
}

type CatalogProvider interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type ProfileStorage interface {
	Profile(ctx context.Context, userID string) (domain.Profile, error)
	UpsertProfile(ctx context.Context, p domain.Profile) (domain.Profile, error)
}

type OrderStorage interface {
	OrderByToken(ctx context.Context, token string) (domain.Order, error)
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
}

// OrderPlacer is the external order-creation collaborator. It performs
// bot-verification and persistence atomically and returns an order token.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, draft domain.OrderDraft) (string, error)
}

type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	SignUp(ctx context.Context, email, password string, extra map[string]string) (domain.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

type OrderPlacedProducer interface {
	ProduceOrderPlaced(ctx context.Context, evt domain.OrderPlaced) error
}

type OrderStatsReader interface {
	OrderStats(ownerKey string) (domain.OrderStats, error)
}

type CakeRequestStorage interface {
	CreateCakeRequest(ctx context.Context, r domain.CakeRequest) (domain.CakeRequest, error)
	ListCakeRequests(ctx context.Context, userID string) ([]domain.CakeRequest, error)
}

// Notifier is a required capability: user-facing status text goes through
// a concrete implementation injected at startup.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}
