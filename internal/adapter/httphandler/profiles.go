package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

// GET v1/profiles/{userID} (200 OK, 404 Not found)
// PUT v1/profiles JSON (200 OK, 400 Bad request)

type ProfilesHandler struct {
	profiles service.Profiles
}

func RegisterProfiles(mux *http.ServeMux, profiles service.Profiles) {
	h := ProfilesHandler{profiles}
	mux.HandleFunc("GET /v1/profiles/{userID}", h.GetProfile)
	mux.HandleFunc("PUT /v1/profiles", h.PutProfile)
}

func (h ProfilesHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	const op = "ProfilesHandler.GetProfile"
	log := slog.With("op", op)

	userID := r.PathValue("userID")

	p, err := h.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		http.Error(
			w, "failed to load profile", http.StatusServiceUnavailable,
		)
		log.Error("failed to load profile", "err", err)
		return
	}
	if p == nil {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, h.toView(*p), log)
}

func (h ProfilesHandler) PutProfile(w http.ResponseWriter, r *http.Request) {
	const op = "ProfilesHandler.PutProfile"
	log := slog.With("op", op)

	var view Profile
	if !decodeJSON(w, r, &view, log) {
		return
	}
	if view.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	stored, err := h.profiles.SaveProfile(r.Context(), h.toDomain(view))
	if err != nil {
		http.Error(
			w, "failed to save profile", http.StatusServiceUnavailable,
		)
		log.Error("failed to save profile", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, h.toView(stored), log)
}

func (ProfilesHandler) toView(p domain.Profile) Profile {
	return Profile{
		UserID:    p.UserID,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
		Zip:       p.Zip,
		AvatarURL: p.AvatarURL,
		UpdatedAt: p.UpdatedAt,
	}
}

func (ProfilesHandler) toDomain(p Profile) domain.Profile {
	return domain.Profile{
		UserID:    p.UserID,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
		Zip:       p.Zip,
		AvatarURL: p.AvatarURL,
	}
}
