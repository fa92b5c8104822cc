package rest

import (
	"errors"
	"net/http"

	"github.com/radiogen/backend/internal/core/domain"
	"github.com/radiogen/backend/internal/session"
)

// Login handles GET /login: it starts the handshake and redirects the client
// to the provider's authorization page.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.session.Begin(), http.StatusFound)
}

// Callback handles GET /callback: the provider redirects here with a state
// token and an authorization code (or an error).
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		writeError(w, http.StatusBadRequest, "authorization failed: "+errParam)
		return
	}

	code := query.Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	err := h.session.Exchange(r.Context(), query.Get("state"), code)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrStateMismatch):
		writeError(w, http.StatusBadRequest, "invalid state parameter")
		return
	case errors.Is(err, domain.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "code exchange rejected by provider")
		return
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Logged in successfully - you can now use the /trigger endpoints.",
	})
}
