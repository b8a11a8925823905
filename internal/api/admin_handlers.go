package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/afrimarket/internal/domain/user"
)

// User administration

func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.Users()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/users/")
	u, err := h.store.User(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/users/")

	var patch user.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.store.UpdateUser(r.Context(), id, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/users/")
	if err := h.store.DeleteUser(r.Context(), id, confirmed(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// GetEvents returns the journal, oldest first. ?aggregate_id= narrows it to
// one cart, order, product or account.
func (h *Handlers) GetEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.Events(r.URL.Query().Get("aggregate_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}
