package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogProvider struct {
	mock.Mock
}

func (p *MockCatalogProvider) ListProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	args := p.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

type MockOrderPlacer struct {
	mock.Mock
}

func (p *MockOrderPlacer) PlaceOrder(
	ctx context.Context, draft domain.OrderDraft,
) (string, error) {
	args := p.Called(ctx, draft)
	return args.String(0), args.Error(1)
}

type MockOrderPlacedProducer struct {
	mock.Mock
}

func (p *MockOrderPlacedProducer) ProduceOrderPlaced(
	ctx context.Context, evt domain.OrderPlaced,
) error {
	args := p.Called(ctx, evt)
	return args.Error(0)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

type checkoutFixture struct {
	mux     *http.ServeMux
	cart    *service.Cart
	catalog *MockCatalogProvider
	placer  *MockOrderPlacer
}

func newCheckoutFixture(t *testing.T) checkoutFixture {
	t.Helper()

	cart := service.NewCart(&memCartStorage{})
	catalog := new(MockCatalogProvider)
	placer := new(MockOrderPlacer)
	events := new(MockOrderPlacedProducer)
	events.On("ProduceOrderPlaced", mock.Anything, mock.Anything).
		Return(nil).Maybe()

	checkout := service.NewCheckout(
		cart, catalog, placer, events, nopNotifier{},
	)

	mux := http.NewServeMux()
	httphandler.RegisterCheckout(mux, checkout)
	return checkoutFixture{mux, cart, catalog, placer}
}

func TestCheckoutHandler(t *testing.T) {
	validBody := `{
		"user_id": "user-1",
		"shipping": {"address": "1 Main St", "city": "Riga", "zip": "1010"},
		"captcha_token": "tok"
	}`

	t.Run("Success", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.cart.AddItem(1, 2)
		f.catalog.On("ListProducts", mock.Anything).Return(
			[]domain.Product{{ProductID: 1, Name: "Cake", Price: 10}}, nil,
		)
		f.placer.On("PlaceOrder", mock.Anything, mock.Anything).
			Return("order-token-1", nil)

		rr := doJSON(t, f.mux, http.MethodPost, "/v1/checkout", validBody)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			OrderToken string `json:"order_token"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "order-token-1", resp.OrderToken)
		assert.Zero(t, f.cart.Count())
	})

	t.Run("EmptyCartRejected", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.catalog.On("ListProducts", mock.Anything).
			Return([]domain.Product{}, nil).Maybe()

		rr := doJSON(t, f.mux, http.MethodPost, "/v1/checkout", validBody)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		f.placer.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
	})

	t.Run("MissingCaptchaRejected", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.cart.AddItem(1, 1)

		body := `{"user_id": "user-1", "shipping": {}}`
		rr := doJSON(t, f.mux, http.MethodPost, "/v1/checkout", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		f.placer.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
	})

	t.Run("PlacerFailure", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.cart.AddItem(1, 1)
		f.catalog.On("ListProducts", mock.Anything).Return(
			[]domain.Product{{ProductID: 1, Name: "Cake", Price: 10}}, nil,
		)
		f.placer.On("PlaceOrder", mock.Anything, mock.Anything).
			Return("", errors.New("collaborator down"))

		rr := doJSON(t, f.mux, http.MethodPost, "/v1/checkout", validBody)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, 1, f.cart.Count())
	})
}
