package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/afrimarket/internal/assistant"
	"github.com/example/afrimarket/internal/storefront"
)

// Dashboard and view

func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Dashboard()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (h *Handlers) SetView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		View storefront.View `json:"view"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.store.SetView(req.View); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]storefront.View{"view": h.store.View()})
}

// Notifications

func (h *Handlers) GetToasts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Toasts())
}

func (h *Handlers) RemoveToast(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/toasts/")
	h.store.RemoveToast(id)
	w.WriteHeader(http.StatusNoContent)
}

// Assistant

type AskRequest struct {
	Query string `json:"query"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

// Ask forwards a shopper question to the assistant. Failures carry the
// shopper-facing message in "error".
func (h *Handlers) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	answer, err := h.assistant.Ask(r.Context(), req.Query, h.store.Products())
	if err != nil {
		respondJSONError(w, assistant.UserMessage(err), statusFor(err))
		return
	}
	respondJSON(w, http.StatusOK, AskResponse{Answer: answer})
}
