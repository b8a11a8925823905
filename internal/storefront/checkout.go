package storefront

import (
	"context"
	"fmt"
	"log"

	"github.com/example/afrimarket/internal/domain/cart"
	"github.com/example/afrimarket/internal/domain/order"
	"github.com/example/afrimarket/internal/payment"
	"github.com/example/afrimarket/internal/toast"
)

const (
	msgPaymentSucceeded = "Paiement Mobile Money réussi !"
	msgPaymentFailed    = "Le paiement n'a pas pu être validé. Veuillez réessayer."
)

// Checkout prepares the widget request for the current cart. The returned
// reference must come back through CompleteOrder so the webhook can find
// the order later.
func (m *Manager) Checkout(ctx context.Context) (payment.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.sessionUser()
	if err != nil {
		return payment.Request{}, err
	}
	if m.cart.IsEmpty() {
		return payment.Request{}, cart.ErrEmptyCart
	}

	m.pendingRef = m.newID()
	m.early = nil
	return payment.NewRequest(m.pendingRef, m.cart.Total(), u.Name, u.Email, m.publicKey), nil
}

// HandlePaymentOutcome acts on the status the widget reported. Only an
// approved payment creates an order; a cancel leaves everything as it was.
func (m *Manager) HandlePaymentOutcome(ctx context.Context, status, paymentRef string) (*order.Order, error) {
	switch payment.Classify(status) {
	case payment.OutcomeApproved:
		o, err := m.CompleteOrder(ctx, paymentRef)
		if err != nil {
			return nil, err
		}
		return &o, nil
	case payment.OutcomeCanceled:
		log.Printf("[Storefront] Payment %s canceled by customer", paymentRef)
		return nil, nil
	default:
		m.toasts.Notify(msgPaymentFailed, toast.KindError)
		return nil, ErrPaymentFailed
	}
}

// claimRef checks paymentRef against the reference Checkout handed out. An
// empty ref means the pending one; without a pending checkout a fresh
// reference is minted. Callers hold mu.
func (m *Manager) claimRef(paymentRef string) (string, error) {
	if paymentRef == "" {
		if m.pendingRef == "" {
			return m.newID(), nil
		}
		return m.pendingRef, nil
	}
	if paymentRef != m.pendingRef || m.indexOfPayment(paymentRef) >= 0 {
		return "", fmt.Errorf("%w: %s", ErrPaymentRefMismatch, paymentRef)
	}
	return paymentRef, nil
}

// CompleteOrder turns the cart into a pending order, most recent first, and
// empties the cart. The payment is optimistic until the webhook confirms it,
// unless the provider's verdict already came in.
func (m *Manager) CompleteOrder(ctx context.Context, paymentRef string) (order.Order, error) {
	var placed order.Order
	err := m.apply(ctx, func() ([]pendingEvent, error) {
		u, err := m.sessionUser()
		if err != nil {
			return nil, err
		}
		if m.cart.IsEmpty() {
			return nil, cart.ErrEmptyCart
		}

		ref, err := m.claimRef(paymentRef)
		if err != nil {
			return nil, err
		}

		now := m.now()
		placed, err = order.New(m.newID(), m.cart.Items(), order.Customer{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		}, ref, now)
		if err != nil {
			return nil, err
		}

		m.orders = append([]order.Order{placed}, m.orders...)
		m.cart.Clear()
		m.pendingRef = ""
		m.toasts.Notify(msgPaymentSucceeded, toast.KindSuccess)
		log.Printf("[Storefront] Order %s placed by %s: %d XOF", placed.ShortID(), u.ID, placed.Total)

		events := []pendingEvent{
			event(placed.ID, order.AggregateType, order.EventOrderPlaced, order.Placed(placed)),
			event(cart.ID, cart.AggregateType, cart.EventCartCleared, cart.CartCleared{
				CartID:    cart.ID,
				UserID:    u.ID,
				ClearedAt: now,
			}),
		}

		if v := m.early; v != nil && v.ref == ref {
			m.early = nil
			e, err := m.settle(&m.orders[0], *v)
			if err != nil {
				log.Printf("[Storefront] Order %s: %v", placed.ShortID(), err)
			}
			placed = m.orders[0]
			events = append(events, e)
		}
		return events, nil
	})
	if err != nil {
		return order.Order{}, err
	}
	return placed.Clone(), nil
}
