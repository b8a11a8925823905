package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/afrimarket/internal/domain/order"
	"github.com/example/afrimarket/internal/email"
	"github.com/example/afrimarket/internal/infrastructure/store"
)

// Mailer sends the order confirmation
type Mailer interface {
	SendOrderConfirmation(to string, data email.OrderConfirmation) error
}

// Handler processes events for sending notifications
type Handler struct {
	mailer Mailer
}

// NewHandler creates a new notification handler
func NewHandler(mailer Mailer) *Handler {
	return &Handler{mailer: mailer}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event store.Event
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	// Only process OrderPlaced events
	if event.EventType == order.EventOrderPlaced {
		return h.handleOrderPlaced(event)
	}

	return nil
}

func (h *Handler) handleOrderPlaced(event store.Event) error {
	var e order.OrderPlaced
	if err := event.Decode(&e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderPlaced event: %v", err)
		return err
	}

	log.Printf("[Notifier] Processing OrderPlaced event for order %s, customer %s", e.OrderID, e.CustomerID)

	if e.CustomerEmail == "" {
		log.Printf("[Notifier] No email on order %s, skipping", e.OrderID)
		return nil
	}

	items := make([]email.OrderItem, len(e.Items))
	for i, item := range e.Items {
		items[i] = email.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	data := email.OrderConfirmation{
		CustomerName: e.CustomerName,
		OrderID:      e.OrderID,
		ShortID:      order.ShortID(e.OrderID),
		Items:        items,
		Total:        e.Total,
	}
	if err := h.mailer.SendOrderConfirmation(e.CustomerEmail, data); err != nil {
		log.Printf("[Notifier] Failed to send email to %s: %v", e.CustomerEmail, err)
		return err
	}

	log.Printf("[Notifier] Order confirmation email sent to %s for order %s", e.CustomerEmail, e.OrderID)
	return nil
}
