package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

// POST v1/cake-requests JSON (201 Created, 400 Bad request)
// GET v1/cake-requests?user_id= (200 OK)

type CakeRequestsHandler struct {
	cakes service.CakeRequests
}

func RegisterCakeRequests(mux *http.ServeMux, cakes service.CakeRequests) {
	h := CakeRequestsHandler{cakes}
	mux.HandleFunc("POST /v1/cake-requests", h.PostCakeRequest)
	mux.HandleFunc("GET /v1/cake-requests", h.GetCakeRequests)
}

func (h CakeRequestsHandler) PostCakeRequest(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "CakeRequestsHandler.PostCakeRequest"
	log := slog.With("op", op)

	var view CakeRequest
	if !decodeJSON(w, r, &view, log) {
		return
	}

	stored, err := h.cakes.Submit(r.Context(), h.toDomain(view))
	if err != nil {
		if errors.Is(err, service.ErrUserRequired) ||
			errors.Is(err, service.ErrTitleRequired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Warn("rejected cake request", "err", err)
			return
		}
		http.Error(
			w, "failed to submit request", http.StatusServiceUnavailable,
		)
		log.Error("failed to submit request", "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, h.toView(stored), log)
}

func (h CakeRequestsHandler) GetCakeRequests(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "CakeRequestsHandler.GetCakeRequests"
	log := slog.With("op", op)

	userID := r.URL.Query().Get("user_id")

	rs, err := h.cakes.ListByUser(r.Context(), userID)
	if err != nil {
		http.Error(
			w, "failed to load requests", http.StatusServiceUnavailable,
		)
		log.Error("failed to load requests", "err", err)
		return
	}

	view := make([]CakeRequest, len(rs))
	for i, cr := range rs {
		view[i] = h.toView(cr)
	}
	writeJSON(w, http.StatusOK, view, log)
}

func (CakeRequestsHandler) toDomain(v CakeRequest) domain.CakeRequest {
	return domain.CakeRequest{
		UserID:      v.UserID,
		Title:       v.Title,
		Description: v.Description,
		Servings:    v.Servings,
		DueDate:     v.DueDate,
	}
}

func (CakeRequestsHandler) toView(v domain.CakeRequest) CakeRequest {
	return CakeRequest{
		ID:          v.ID,
		UserID:      v.UserID,
		Title:       v.Title,
		Description: v.Description,
		Servings:    v.Servings,
		DueDate:     v.DueDate,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
	}
}
