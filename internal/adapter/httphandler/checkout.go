package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

// POST v1/checkout JSON (200 OK, 400 Bad request, 503 Service unavailable)

type CheckoutHandler struct {
	checkout service.Checkout
}

func RegisterCheckout(mux *http.ServeMux, checkout service.Checkout) {
	h := CheckoutHandler{checkout}
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
}

func (h CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostCheckout"
	log := slog.With("op", op)

	var req CheckoutRequest
	if !decodeJSON(w, r, &req, log) {
		return
	}

	token, err := h.checkout.PlaceOrder(r.Context(), h.toRequest(req))
	if err != nil {
		if isValidationErr(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Warn("rejected checkout", "err", err)
			return
		}
		http.Error(
			w, "failed to place order", http.StatusServiceUnavailable,
		)
		log.Error("failed to place order", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, CheckoutResponse{OrderToken: token}, log)
}

func (CheckoutHandler) toRequest(req CheckoutRequest) service.CheckoutRequest {
	return service.CheckoutRequest{
		UserID:     req.UserID,
		GuestEmail: req.GuestEmail,
		GuestName:  req.GuestName,
		Shipping: domain.Shipping{
			Address: req.Shipping.Address,
			City:    req.Shipping.City,
			Zip:     req.Shipping.Zip,
		},
		CaptchaToken: req.CaptchaToken,
	}
}

func isValidationErr(err error) bool {
	return errors.Is(err, service.ErrEmptyCart) ||
		errors.Is(err, service.ErrGuestEmail) ||
		errors.Is(err, service.ErrCaptchaToken)
}
