package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/afrimarket/internal/api/middleware"
)

// LoginRequest represents the login request body. There is no password:
// the storefront trusts the email it is given.
type LoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.store.Login(r.Context(), req.Email, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the session holder. RequireSession has already run.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, u)
}
