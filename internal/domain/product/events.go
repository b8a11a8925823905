package product

import "time"

const (
	EventProductAdded   = "ProductAdded"
	EventProductDeleted = "ProductDeleted"
)

type ProductAdded struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     int       `json:"price"`
	Category  string    `json:"category"`
	SellerID  string    `json:"seller_id"`
	AddedAt   time.Time `json:"added_at"`
}

// ProductDeleted records who removed a listing; it may differ from the seller
// when a superadmin moderates the catalog.
type ProductDeleted struct {
	ProductID string    `json:"product_id"`
	SellerID  string    `json:"seller_id"`
	DeletedBy string    `json:"deleted_by"`
	DeletedAt time.Time `json:"deleted_at"`
}
