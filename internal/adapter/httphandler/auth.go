package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

// POST v1/auth/login JSON {email, password} (200 OK, 401 Unauthorized)
// POST v1/auth/signup JSON {email, password, full_name} (200 OK, 401 Unauthorized)
// POST v1/auth/logout (204 No content)

type AuthHandler struct {
	session *service.Session
}

func RegisterAuth(mux *http.ServeMux, session *service.Session) {
	h := AuthHandler{session}
	mux.HandleFunc("POST /v1/auth/login", h.PostLogin)
	mux.HandleFunc("POST /v1/auth/signup", h.PostSignup)
	mux.HandleFunc("POST /v1/auth/logout", h.PostLogout)
}

func (h AuthHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostLogin"
	log := slog.With("op", op)

	var creds Credentials
	if !decodeJSON(w, r, &creds, log) {
		return
	}

	sess, err := h.session.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		log.Warn("rejected login", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, h.toView(sess), log)
}

func (h AuthHandler) PostSignup(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostSignup"
	log := slog.With("op", op)

	var creds Credentials
	if !decodeJSON(w, r, &creds, log) {
		return
	}

	var extra map[string]string
	if creds.FullName != "" {
		extra = map[string]string{"full_name": creds.FullName}
	}

	sess, err := h.session.Signup(
		r.Context(), creds.Email, creds.Password, extra,
	)
	if err != nil {
		http.Error(w, "failed to sign up", http.StatusUnauthorized)
		log.Warn("rejected signup", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, h.toView(sess), log)
}

func (h AuthHandler) PostLogout(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostLogout"
	log := slog.With("op", op)

	if err := h.session.Logout(r.Context()); err != nil {
		http.Error(
			w, "failed to log out", http.StatusServiceUnavailable,
		)
		log.Error("failed to log out", "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (AuthHandler) toView(sess domain.Session) SessionView {
	return SessionView{
		UserID:      sess.UserID,
		Email:       sess.Email,
		AccessToken: sess.AccessToken,
	}
}
