package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/afrimarket/internal/domain/cart"
)

const AggregateType = "Order"

type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// PaymentState tracks how far the webhook has confirmed the client-side
// payment report.
type PaymentState string

const (
	PaymentOptimistic PaymentState = "optimistic"
	PaymentConfirmed  PaymentState = "confirmed"
	PaymentRejected   PaymentState = "rejected"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrEmptyOrder     = errors.New("order must have at least one item")
	ErrInvalidStatus  = errors.New("invalid order status transition")
	ErrUnknownStatus  = errors.New("unknown order status")
	ErrOrderDelivered = errors.New("order is already delivered")
	ErrOrderCancelled = errors.New("order is already cancelled")
	ErrAmountMismatch = errors.New("paid amount does not match order total")
)

// validTransitions defines allowed state transitions
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {}, // terminal state
	StatusCancelled: {}, // terminal state
}

// ParseStatus accepts one of the four status names.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := validTransitions[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

type Order struct {
	ID            string       `json:"id"`
	Items         []cart.Item  `json:"items"`
	Total         int          `json:"total"`
	Status        Status       `json:"status"`
	Date          time.Time    `json:"date"`
	CustomerName  string       `json:"customer_name"`
	CustomerID    string       `json:"customer_id"`
	CustomerEmail string       `json:"customer_email,omitempty"`
	PaymentRef    string       `json:"payment_ref,omitempty"`
	PaymentState  PaymentState `json:"payment_state"`
}

// Customer identifies who placed an order.
type Customer struct {
	ID    string
	Name  string
	Email string
}

// New freezes items into a pending order. The total is computed once here
// and never again.
func New(id string, items []cart.Item, customer Customer, paymentRef string, now time.Time) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrEmptyOrder
	}
	frozen := cart.Snapshot(items)
	return Order{
		ID:            id,
		Items:         frozen,
		Total:         cart.Total(frozen),
		Status:        StatusPending,
		Date:          now,
		CustomerName:  customer.Name,
		CustomerID:    customer.ID,
		CustomerEmail: customer.Email,
		PaymentRef:    paymentRef,
		PaymentState:  PaymentOptimistic,
	}, nil
}

// ShortID is the id as shown to customers: the first 8 characters, upper-cased.
func (o *Order) ShortID() string {
	return ShortID(o.ID)
}

func ShortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

// CanTransitionTo checks if the order can transition to the target status
func (o *Order) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[o.Status]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the order to target or explains why it cannot.
func (o *Order) TransitionTo(target Status) error {
	if !o.CanTransitionTo(target) {
		return o.transitionError(target)
	}
	o.Status = target
	return nil
}

// transitionError returns an appropriate error for an invalid transition
func (o *Order) transitionError(target Status) error {
	switch o.Status {
	case StatusCancelled:
		return fmt.Errorf("%w: %w", ErrInvalidStatus, ErrOrderCancelled)
	case StatusDelivered:
		return fmt.Errorf("%w: %w", ErrInvalidStatus, ErrOrderDelivered)
	default:
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidStatus, o.Status, target)
	}
}

// ContainsSeller reports whether any line was sold by sellerID.
func (o *Order) ContainsSeller(sellerID string) bool {
	for _, it := range o.Items {
		if it.SellerID == sellerID {
			return true
		}
	}
	return false
}

// Reconcile applies a confirmed payment of amount. A mismatched amount
// rejects the payment and cancels the order when it still can be.
func (o *Order) Reconcile(amount int) error {
	if amount != o.Total {
		o.reject()
		return fmt.Errorf("%w: paid %d, expected %d", ErrAmountMismatch, amount, o.Total)
	}
	o.PaymentState = PaymentConfirmed
	return nil
}

// Revert undoes an optimistic order after the provider declined it.
func (o *Order) Revert() {
	o.reject()
}

func (o *Order) reject() {
	o.PaymentState = PaymentRejected
	if o.CanTransitionTo(StatusCancelled) {
		o.Status = StatusCancelled
	}
}

// ForSeller keeps orders with at least one line sold by sellerID.
func ForSeller(all []Order, sellerID string) []Order {
	out := make([]Order, 0)
	for i := range all {
		if all[i].ContainsSeller(sellerID) {
			out = append(out, all[i])
		}
	}
	return out
}

// ForCustomer keeps orders placed by customerID.
func ForCustomer(all []Order, customerID string) []Order {
	out := make([]Order, 0)
	for _, o := range all {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out
}

// Clone returns a copy that shares no item slice with o.
func (o Order) Clone() Order {
	o.Items = cart.Snapshot(o.Items)
	return o
}
