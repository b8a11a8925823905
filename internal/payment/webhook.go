package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const maxWebhookBody = 1 << 20

var ErrMalformedEvent = errors.New("malformed webhook event")

// Notification is the webhook body. FedaPay may wrap the transaction in an
// "entity" envelope; Normalize flattens it.
type Notification struct {
	ID         string        `json:"id"`
	Name       string        `json:"name,omitempty"`
	Status     string        `json:"status"`
	Amount     int           `json:"amount"`
	ExternalID string        `json:"external_id"`
	Reference  string        `json:"reference,omitempty"`
	Customer   *Customer     `json:"customer,omitempty"`
	Entity     *Notification `json:"entity,omitempty"`
}

// Normalize fills missing fields from the entity envelope.
func (n Notification) Normalize() Notification {
	if n.Entity == nil {
		return n
	}
	e := n.Entity.Normalize()
	if n.Status == "" {
		n.Status = e.Status
		if n.Status == "" {
			// "transaction.approved" -> "approved"
			if _, s, ok := strings.Cut(n.Name, "."); ok {
				n.Status = s
			}
		}
	}
	if n.Amount == 0 {
		n.Amount = e.Amount
	}
	if n.ExternalID == "" {
		n.ExternalID = e.ExternalID
	}
	if n.Reference == "" {
		n.Reference = e.Reference
	}
	if n.Customer == nil {
		n.Customer = e.Customer
	}
	if n.ID == "" {
		n.ID = e.ID
	}
	n.Entity = nil
	return n
}

// DedupeKey identifies the delivery for de-duplication.
func (n Notification) DedupeKey() string {
	if n.ID != "" {
		return n.ID
	}
	if n.Reference != "" {
		return n.Reference + ":" + n.Status
	}
	return n.ExternalID + ":" + n.Status
}

func (n Notification) validate() error {
	if strings.TrimSpace(n.Status) == "" {
		return fmt.Errorf("%w: status is required", ErrMalformedEvent)
	}
	return nil
}

// Reconciler applies provider verdicts to stored orders.
type Reconciler interface {
	ConfirmPayment(ctx context.Context, paymentRef string, amount int, providerID string) error
	RevertPayment(ctx context.Context, paymentRef, reason string) error
}

// WebhookHandler receives FedaPay notifications.
type WebhookHandler struct {
	secret     string
	dedupe     Deduplicator
	reconciler Reconciler
	now        func() time.Time
}

// NewWebhookHandler creates the receiver. An empty secret only checks that
// a signature header is present.
func NewWebhookHandler(secret string, dedupe Deduplicator, reconciler Reconciler) *WebhookHandler {
	if dedupe == nil {
		dedupe = NewMemoryDeduplicator(DedupeTTL)
	}
	return &WebhookHandler{
		secret:     secret,
		dedupe:     dedupe,
		reconciler: reconciler,
		now:        time.Now,
	}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Méthode non autorisée. Seul le POST est accepté."})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Erreur lors du traitement du signal de paiement."})
		return
	}

	if err := VerifySignature(r.Header.Get(SignatureHeader), body, h.secret, h.now()); err != nil {
		log.Printf("[Webhook] Rejected request from %s: %v", r.RemoteAddr, err)
		msg := "Signature invalide."
		if errors.Is(err, ErrMissingSignature) {
			msg = "Signature manquante."
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": msg})
		return
	}

	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		log.Printf("[Webhook] Malformed body: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Erreur lors du traitement du signal de paiement."})
		return
	}
	n = n.Normalize()
	if err := n.validate(); err != nil {
		log.Printf("[Webhook] %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Erreur lors du traitement du signal de paiement."})
		return
	}

	h.process(r.Context(), n)
	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}

func (h *WebhookHandler) process(ctx context.Context, n Notification) {
	first, err := h.dedupe.FirstSeen(ctx, n.DedupeKey())
	if err != nil {
		log.Printf("[Webhook] De-duplication unavailable, processing anyway: %v", err)
	} else if !first {
		log.Printf("[Webhook] Duplicate event %s ignored", n.DedupeKey())
		return
	}

	var applyErr error
	switch strings.ToLower(n.Status) {
	case "approved":
		email := ""
		if n.Customer != nil {
			email = n.Customer.Email
		}
		log.Printf("[Webhook] Payment approved: %d XOF by %s (ref %s)", n.Amount, email, n.ExternalID)
		if applyErr = h.reconciler.ConfirmPayment(ctx, n.ExternalID, n.Amount, n.Reference); applyErr != nil {
			log.Printf("[Webhook] Could not confirm payment %s: %v", n.ExternalID, applyErr)
		}
	case "declined":
		log.Printf("[Webhook] Payment declined (ref %s)", n.ExternalID)
		if applyErr = h.reconciler.RevertPayment(ctx, n.ExternalID, "declined"); applyErr != nil {
			log.Printf("[Webhook] Could not revert payment %s: %v", n.ExternalID, applyErr)
		}
	case "canceled", "cancelled":
		log.Printf("[Webhook] Payment canceled by customer (ref %s)", n.ExternalID)
		if applyErr = h.reconciler.RevertPayment(ctx, n.ExternalID, "canceled"); applyErr != nil {
			log.Printf("[Webhook] Could not revert payment %s: %v", n.ExternalID, applyErr)
		}
	default:
		log.Printf("[Webhook] Unknown FedaPay event status: %s", n.Status)
	}

	// A delivery that could not be applied stays eligible for redelivery.
	if applyErr != nil && first {
		if ferr := h.dedupe.Forget(ctx, n.DedupeKey()); ferr != nil {
			log.Printf("[Webhook] Could not release event %s: %v", n.DedupeKey(), ferr)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[Webhook] Failed to encode response: %v", err)
	}
}
