package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/afrimarket/internal/api/middleware"
	"github.com/example/afrimarket/internal/assistant"
	"github.com/example/afrimarket/internal/domain/cart"
	"github.com/example/afrimarket/internal/domain/category"
	"github.com/example/afrimarket/internal/domain/order"
	"github.com/example/afrimarket/internal/domain/product"
	"github.com/example/afrimarket/internal/domain/user"
	"github.com/example/afrimarket/internal/payment"
	"github.com/example/afrimarket/internal/storefront"
)

type Handlers struct {
	store     *storefront.Manager
	assistant *assistant.Service
}

func NewHandlers(store *storefront.Manager, assistantSvc *assistant.Service) *Handlers {
	return &Handlers{
		store:     store,
		assistant: assistantSvc,
	}
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Cart())
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.store.AddToCart(r.Context(), req.ProductID)
	if err != nil {
		respondError(w, err)
		return
	}
	if uid := middleware.GetUserID(r.Context()); uid != "" {
		log.Printf("[API] %s added %s to the cart", uid, item.ID)
	} else {
		log.Printf("[API] Guest added %s to the cart", item.ID)
	}
	respondJSON(w, http.StatusOK, item)
}

// UpdateCartItem sets a quantity, or steps it by one with "action":
// "increment" or "decrement".
func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID := extractPathParam(r.URL.Path, "/cart/items/")

	var req struct {
		Quantity int    `json:"quantity"`
		Action   string `json:"action,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var (
		item cart.Item
		err  error
	)
	switch req.Action {
	case "increment":
		item, err = h.store.IncrementQuantity(r.Context(), productID)
	case "decrement":
		item, err = h.store.DecrementQuantity(r.Context(), productID)
	case "":
		item, err = h.store.UpdateQuantity(r.Context(), productID, req.Quantity)
	default:
		respondJSONError(w, "Unknown action", http.StatusBadRequest)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID := extractPathParam(r.URL.Path, "/cart/items/")
	h.store.RemoveFromCart(r.Context(), productID)
	respondJSON(w, http.StatusOK, h.store.Cart())
}

// Checkout Handlers

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	req, err := h.store.Checkout(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

// CompleteCheckout receives the widget's completion status.
func (h *Handlers) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status    string `json:"status"`
		Reference string `json:"external_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	placed, err := h.store.HandlePaymentOutcome(r.Context(), req.Status, req.Reference)
	if err != nil {
		respondError(w, err)
		return
	}
	if placed == nil {
		respondJSON(w, http.StatusOK, map[string]string{"status": "canceled"})
		return
	}
	respondJSON(w, http.StatusCreated, placed)
}

// Order Handlers

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.Orders()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	path := extractPathParam(r.URL.Path, "/orders/")
	id := strings.TrimSuffix(path, "/status")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.store.UpdateOrderStatus(r.Context(), id, status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondError maps a storefront error to its status code.
func respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		log.Printf("[API] %v", err)
	}
	respondJSONError(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, storefront.ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, storefront.ErrForbidden),
		errors.Is(err, user.ErrUserBlocked):
		return http.StatusForbidden
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, payment.ErrCountryNotFound):
		return http.StatusNotFound
	case errors.Is(err, storefront.ErrConfirmationRequired),
		errors.Is(err, storefront.ErrPaymentRefMismatch),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, assistant.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, product.ErrInvalidName),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrInvalidState),
		errors.Is(err, order.ErrUnknownStatus),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, storefront.ErrInvalidView),
		errors.Is(err, assistant.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, storefront.ErrPaymentFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, assistant.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, assistant.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, assistant.ErrBadRequest),
		errors.Is(err, assistant.ErrUnauthorized),
		errors.Is(err, assistant.ErrUpstream),
		errors.Is(err, assistant.ErrEmptyResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}

// confirmed reads the ?confirm= flag required by destructive actions.
func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}
