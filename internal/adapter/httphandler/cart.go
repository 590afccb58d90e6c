package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

// GET v1/cart (200 OK)
// PUT v1/cart JSON [lines] (200 OK, 400 Bad request)
// DELETE v1/cart (204 No content)
// POST v1/cart/items JSON {id, qty} (200 OK, 400 Bad request)
// POST v1/cart/items/{id}/increment (200 OK, 400 Bad request)
// POST v1/cart/items/{id}/decrement (200 OK, 400 Bad request)
// DELETE v1/cart/items/{id} (200 OK, 400 Bad request)

type CartHandler struct {
	cart *service.Cart
}

func RegisterCart(mux *http.ServeMux, cart *service.Cart) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("PUT /v1/cart", h.PutCart)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("POST /v1/cart/items/{id}/increment", h.PostIncrement)
	mux.HandleFunc("POST /v1/cart/items/{id}/decrement", h.PostDecrement)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	writeJSON(w, http.StatusOK, h.view(), slog.With("op", op))
}

func (h CartHandler) PutCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutCart"
	log := slog.With("op", op)

	var ls []CartLine
	if !decodeJSON(w, r, &ls, log) {
		return
	}

	h.cart.ReplaceAll(h.toDomain(ls))
	writeJSON(w, http.StatusOK, h.view(), log)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var l CartLine
	if !decodeJSON(w, r, &l, log) {
		return
	}

	h.cart.AddItem(l.ProductID, l.Quantity)
	writeJSON(w, http.StatusOK, h.view(), log)
}

func (h CartHandler) PostIncrement(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostIncrement"
	log := slog.With("op", op)

	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	h.cart.Increment(id)
	writeJSON(w, http.StatusOK, h.view(), log)
}

func (h CartHandler) PostDecrement(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostDecrement"
	log := slog.With("op", op)

	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	h.cart.Decrement(id)
	writeJSON(w, http.StatusOK, h.view(), log)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	h.cart.Remove(id)
	writeJSON(w, http.StatusOK, h.view(), log)
}

func (h CartHandler) view() CartView {
	ls := h.cart.Lines()
	v := CartView{Lines: make([]CartLine, len(ls)), Count: h.cart.Count()}
	for i, l := range ls {
		v.Lines[i] = CartLine{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	return v
}

func (CartHandler) toDomain(ls []CartLine) []domain.CartLine {
	ds := make([]domain.CartLine, len(ls))
	for i, l := range ls {
		ds[i] = domain.CartLine{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	return ds
}
