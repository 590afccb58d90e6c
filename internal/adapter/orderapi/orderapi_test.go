package orderapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/orderapi"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftFixture() domain.OrderDraft {
	return domain.OrderDraft{
		UserID: "user-1",
		Status: "created",
		Total:  25.50,
		Lines: []domain.OrderLine{
			{ProductID: 1, Name: "Chocolate Cake", Price: 10.00, Quantity: 2},
			{ProductID: 2, Name: "Lemon Tart", Price: 5.50, Quantity: 1},
		},
		CaptchaToken: "captcha-ok",
	}
}

func TestPlaceOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				json.NewEncoder(w).Encode(map[string]any{
					"ok": true, "order_token": "tok-1",
				})
			},
		))
		defer srv.Close()

		c := orderapi.NewHTTPClient(srv.URL)
		token, err := c.PlaceOrder(t.Context(), draftFixture())
		require.NoError(t, err)

		assert.Equal(t, "tok-1", token)
		assert.Equal(t, "user-1", got["user_id"])
		assert.Nil(t, got["guest_email"])
		assert.Equal(t, "captcha-ok", got["token"])
		assert.Len(t, got["lines"], 2)
	})

	t.Run("GuestPayload", func(t *testing.T) {
		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				json.NewEncoder(w).Encode(map[string]any{
					"ok": true, "order_token": "tok-2",
				})
			},
		))
		defer srv.Close()

		draft := draftFixture()
		draft.UserID = ""
		draft.GuestEmail = "guest@example.com"
		draft.Shipping = &domain.Shipping{Address: "Rua A", City: "Porto"}

		c := orderapi.NewHTTPClient(srv.URL)
		_, err := c.PlaceOrder(t.Context(), draft)
		require.NoError(t, err)

		assert.Nil(t, got["user_id"])
		assert.Equal(t, "guest@example.com", got["guest_email"])
		sh, ok := got["shipping"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Porto", sh["city"])
	})

	t.Run("ErrorMessageFromBody", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]any{
					"error": "reCAPTCHA verification failed",
				})
			},
		))
		defer srv.Close()

		c := orderapi.NewHTTPClient(srv.URL)
		_, err := c.PlaceOrder(t.Context(), draftFixture())
		require.ErrorContains(t, err, "reCAPTCHA verification failed")
	})

	t.Run("MissingTokenReturnsEmpty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"ok": true})
			},
		))
		defer srv.Close()

		c := orderapi.NewHTTPClient(srv.URL)
		token, err := c.PlaceOrder(t.Context(), draftFixture())
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}
