package order

import "time"

const (
	EventOrderPlaced            = "OrderPlaced"
	EventOrderStatusChanged     = "OrderStatusChanged"
	EventOrderPaymentReconciled = "OrderPaymentReconciled"
)

type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SellerID  string `json:"seller_id"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
}

type OrderPlaced struct {
	OrderID       string      `json:"order_id"`
	CustomerID    string      `json:"customer_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	Items         []OrderItem `json:"items"`
	Total         int         `json:"total"`
	PaymentRef    string      `json:"payment_ref,omitempty"`
	PlacedAt      time.Time   `json:"placed_at"`
}

type OrderStatusChanged struct {
	OrderID   string    `json:"order_id"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

type OrderPaymentReconciled struct {
	OrderID      string       `json:"order_id"`
	PaymentRef   string       `json:"payment_ref"`
	ProviderID   string       `json:"provider_id,omitempty"`
	Amount       int          `json:"amount"`
	PaymentState PaymentState `json:"payment_state"`
	Status       Status       `json:"status"`
	ReconciledAt time.Time    `json:"reconciled_at"`
}

// Placed builds the OrderPlaced payload for o.
func Placed(o Order) OrderPlaced {
	items := make([]OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItem{
			ProductID: it.ID,
			Name:      it.Name,
			SellerID:  it.SellerID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}
	return OrderPlaced{
		OrderID:       o.ID,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Items:         items,
		Total:         o.Total,
		PaymentRef:    o.PaymentRef,
		PlacedAt:      o.Date,
	}
}
