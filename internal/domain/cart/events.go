package cart

import "time"

const (
	EventItemAdded       = "ItemAddedToCart"
	EventQuantityChanged = "CartQuantityChanged"
	EventItemRemoved     = "ItemRemovedFromCart"
	EventCartCleared     = "CartCleared"
)

type ItemAddedToCart struct {
	CartID    string    `json:"cart_id"`
	UserID    string    `json:"user_id,omitempty"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     int       `json:"price"`
	AddedAt   time.Time `json:"added_at"`
}

type CartQuantityChanged struct {
	CartID    string    `json:"cart_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	ChangedAt time.Time `json:"changed_at"`
}

type ItemRemovedFromCart struct {
	CartID    string    `json:"cart_id"`
	UserID    string    `json:"user_id,omitempty"`
	ProductID string    `json:"product_id"`
	RemovedAt time.Time `json:"removed_at"`
}

type CartCleared struct {
	CartID    string    `json:"cart_id"`
	UserID    string    `json:"user_id,omitempty"`
	ClearedAt time.Time `json:"cleared_at"`
}
