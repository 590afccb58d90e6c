package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

// GET v1/orders?user_id= (200 OK)
// GET v1/orders/{token} (200 OK, 404 Not found)
// GET v1/orders/stats/{key} (200 OK, 503 Service unavailable)

type OrdersHandler struct {
	orders service.Orders
}

func RegisterOrders(mux *http.ServeMux, orders service.Orders) {
	h := OrdersHandler{orders}
	mux.HandleFunc("GET /v1/orders", h.GetOrders)
	mux.HandleFunc("GET /v1/orders/{token}", h.GetOrder)
	mux.HandleFunc("GET /v1/orders/stats/{key}", h.GetStats)
}

func (h OrdersHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.GetOrders"
	log := slog.With("op", op)

	userID := r.URL.Query().Get("user_id")

	os, err := h.orders.ListOrders(r.Context(), userID)
	if err != nil {
		http.Error(
			w, "failed to load orders", http.StatusServiceUnavailable,
		)
		log.Error("failed to load orders", "err", err)
		return
	}

	view := make([]Order, len(os))
	for i, o := range os {
		view[i] = h.toView(o)
	}
	writeJSON(w, http.StatusOK, view, log)
}

func (h OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.GetOrder"
	log := slog.With("op", op)

	token := r.PathValue("token")

	o, err := h.orders.OrderByToken(r.Context(), token)
	if err != nil {
		http.Error(
			w, "failed to load order", http.StatusServiceUnavailable,
		)
		log.Error("failed to load order", "err", err)
		return
	}
	if o == nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, h.toView(*o), log)
}

func (h OrdersHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.GetStats"
	log := slog.With("op", op)

	key := r.PathValue("key")

	st, err := h.orders.Stats(key)
	if err != nil {
		http.Error(
			w, "failed to load stats", http.StatusServiceUnavailable,
		)
		log.Error("failed to load stats", "err", err)
		return
	}

	view := OrderStats{
		OwnerKey: st.OwnerKey,
		Orders:   st.Orders,
		Revenue:  st.Revenue,
	}
	writeJSON(w, http.StatusOK, view, log)
}

func (OrdersHandler) toView(o domain.Order) Order {
	view := Order{
		ID:         o.ID,
		UserID:     o.UserID,
		GuestEmail: o.GuestEmail,
		GuestName:  o.GuestName,
		Status:     o.Status,
		Total:      o.Total,
		Lines:      make([]OrderLine, len(o.Lines)),
		OrderToken: o.OrderToken,
		CreatedAt:  o.CreatedAt,
	}
	if o.Shipping != nil {
		view.Shipping = &Shipping{
			Address: o.Shipping.Address,
			City:    o.Shipping.City,
			Zip:     o.Shipping.Zip,
		}
	}
	for i, l := range o.Lines {
		view.Lines[i] = OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		}
	}
	return view
}
