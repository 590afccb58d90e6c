package httphandler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCartStorage struct {
	cart domain.Cart
}

func (s *memCartStorage) ReadCart() domain.Cart {
	return s.cart
}

func (s *memCartStorage) WriteCart(c domain.Cart) error {
	s.cart = c
	return nil
}

func newCartMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	httphandler.RegisterCart(mux, service.NewCart(&memCartStorage{}))
	return mux
}

func doJSON(
	t *testing.T, mux *http.ServeMux, method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestCartHandler(t *testing.T) {
	t.Run("EmptyCart", func(t *testing.T) {
		mux := newCartMux(t)

		rr := doJSON(t, mux, http.MethodGet, "/v1/cart", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"lines":[],"count":0}`, rr.Body.String())
	})

	t.Run("AddAccumulates", func(t *testing.T) {
		mux := newCartMux(t)

		rr := doJSON(
			t, mux, http.MethodPost, "/v1/cart/items", `{"id":7,"qty":2}`,
		)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = doJSON(
			t, mux, http.MethodPost, "/v1/cart/items", `{"id":7,"qty":3}`,
		)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(
			t, `{"lines":[{"id":7,"qty":5}],"count":5}`, rr.Body.String(),
		)
	})

	t.Run("DecrementRemovesAtOne", func(t *testing.T) {
		mux := newCartMux(t)

		rr := doJSON(
			t, mux, http.MethodPost, "/v1/cart/items", `{"id":3,"qty":1}`,
		)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = doJSON(t, mux, http.MethodPost, "/v1/cart/items/3/decrement", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"lines":[],"count":0}`, rr.Body.String())
	})

	t.Run("IncrementBadID", func(t *testing.T) {
		mux := newCartMux(t)

		rr := doJSON(
			t, mux, http.MethodPost, "/v1/cart/items/abc/increment", "",
		)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("ReplaceAllNormalizes", func(t *testing.T) {
		mux := newCartMux(t)

		rr := doJSON(
			t, mux, http.MethodPut, "/v1/cart",
			`[{"id":1,"qty":0},{"id":2,"qty":4},{"id":1,"qty":3}]`,
		)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(
			t,
			`{"lines":[{"id":1,"qty":3},{"id":2,"qty":4}],"count":7}`,
			rr.Body.String(),
		)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		mux := newCartMux(t)

		rr := doJSON(t, mux, http.MethodPut, "/v1/cart", `{broken`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("ClearCart", func(t *testing.T) {
		mux := newCartMux(t)

		rr := doJSON(
			t, mux, http.MethodPost, "/v1/cart/items", `{"id":9,"qty":2}`,
		)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = doJSON(t, mux, http.MethodDelete, "/v1/cart", "")
		require.Equal(t, http.StatusNoContent, rr.Code)

		rr = doJSON(t, mux, http.MethodGet, "/v1/cart", "")
		assert.JSONEq(t, `{"lines":[],"count":0}`, rr.Body.String())
	})
}
