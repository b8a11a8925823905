package storefront

import (
	"context"
	"fmt"
	"log"

	"github.com/example/afrimarket/internal/domain/order"
	"github.com/example/afrimarket/internal/payment"
	"github.com/example/afrimarket/internal/toast"
)

var _ payment.Reconciler = (*Manager)(nil)

// verdict is a provider decision that arrived before its order existed.
type verdict struct {
	ref        string
	approved   bool
	amount     int
	providerID string
	reason     string
}

func (m *Manager) indexOfPayment(ref string) int {
	if ref == "" {
		return -1
	}
	for i := range m.orders {
		if m.orders[i].PaymentRef == ref {
			return i
		}
	}
	return -1
}

// hold keeps v for the order Checkout is waiting on. Callers hold mu.
func (m *Manager) hold(v verdict) bool {
	if v.ref == "" || v.ref != m.pendingRef {
		return false
	}
	if m.early != nil && m.early.ref == v.ref {
		log.Printf("[Storefront] Payment %s already has a verdict waiting", v.ref)
		return true
	}
	m.early = &v
	log.Printf("[Storefront] Payment %s settled before its order, holding verdict", v.ref)
	return true
}

// settle applies v to an optimistic order. Callers hold mu.
func (m *Manager) settle(o *order.Order, v verdict) (pendingEvent, error) {
	var err error
	if v.approved {
		err = o.Reconcile(v.amount)
	} else {
		o.Revert()
		log.Printf("[Storefront] Order %s reverted: %s", o.ShortID(), v.reason)
	}
	if o.PaymentState == order.PaymentRejected {
		m.toasts.Notify(fmt.Sprintf("Paiement refusé pour la commande #%s", o.ShortID()), toast.KindError)
	}
	return m.reconciled(o, v.ref, v.providerID, v.amount), err
}

func (m *Manager) applyVerdict(ctx context.Context, v verdict) error {
	var mismatch error
	err := m.apply(ctx, func() ([]pendingEvent, error) {
		i := m.indexOfPayment(v.ref)
		if i < 0 {
			if m.hold(v) {
				return nil, nil
			}
			return nil, fmt.Errorf("payment %s: %w", v.ref, order.ErrOrderNotFound)
		}
		o := &m.orders[i]
		if o.PaymentState != order.PaymentOptimistic {
			log.Printf("[Storefront] Payment %s already settled as %s", v.ref, o.PaymentState)
			return nil, nil
		}

		e, err := m.settle(o, v)
		mismatch = err
		return []pendingEvent{e}, nil
	})
	if err != nil {
		return err
	}
	return mismatch
}

// ConfirmPayment settles the optimistic order paid under ref. A paid amount
// that differs from the order total rejects the payment and cancels the
// order; the returned error then wraps order.ErrAmountMismatch.
func (m *Manager) ConfirmPayment(ctx context.Context, ref string, amount int, providerID string) error {
	return m.applyVerdict(ctx, verdict{ref: ref, approved: true, amount: amount, providerID: providerID})
}

// RevertPayment rejects the optimistic payment made under ref and cancels its
// order. A payment that is already settled is left alone.
func (m *Manager) RevertPayment(ctx context.Context, ref, reason string) error {
	return m.applyVerdict(ctx, verdict{ref: ref, reason: reason})
}

func (m *Manager) reconciled(o *order.Order, ref, providerID string, amount int) pendingEvent {
	return event(o.ID, order.AggregateType, order.EventOrderPaymentReconciled, order.OrderPaymentReconciled{
		OrderID:      o.ID,
		PaymentRef:   ref,
		ProviderID:   providerID,
		Amount:       amount,
		PaymentState: o.PaymentState,
		Status:       o.Status,
		ReconciledAt: m.now(),
	})
}
