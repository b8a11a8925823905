package product

import (
	"errors"
	"sort"
	"strings"

	"github.com/example/afrimarket/internal/domain/category"
)

const AggregateType = "Product"

// DefaultRating is given to listings submitted without a rating.
const DefaultRating = 4.5

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidName     = errors.New("name is required")
)

// Product is a catalog listing. Prices are whole XOF.
type Product struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       int     `json:"price" yaml:"price"`
	Category    string  `json:"category" yaml:"category"`
	Image       string  `json:"image" yaml:"image"`
	Rating      float64 `json:"rating" yaml:"rating"`
	SellerID    string  `json:"seller_id" yaml:"seller_id"`
	IsVerified  bool    `json:"is_verified,omitempty" yaml:"is_verified"`
}

// Input is what a seller submits when listing a product.
type Input struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int     `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
}

// Validate rejects a blank name or a non-positive price.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidName
	}
	if in.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

// New builds a verified listing owned by sellerID.
func New(id string, in Input, sellerID string) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}

	cat := strings.TrimSpace(in.Category)
	if cat == "" {
		cat = category.Default()
	}
	rating := in.Rating
	if rating <= 0 || rating > 5 {
		rating = DefaultRating
	}

	return Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    cat,
		Image:       in.Image,
		Rating:      rating,
		SellerID:    sellerID,
		IsVerified:  true,
	}, nil
}

// Filter keeps products whose name or description contains searchTerm
// (case-insensitive) and whose category matches cat, unless cat selects
// every category. Catalog order is preserved.
func Filter(all []Product, searchTerm, cat string) []Product {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	anyCategory := category.IsAll(cat)

	out := make([]Product, 0, len(all))
	for _, p := range all {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term)
		matchesCategory := anyCategory || p.Category == cat
		if matchesSearch && matchesCategory {
			out = append(out, p)
		}
	}
	return out
}

// OwnedBy returns the listings of one seller in catalog order.
func OwnedBy(all []Product, sellerID string) []Product {
	out := make([]Product, 0)
	for _, p := range all {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out
}

// TopRated returns at most n products by descending rating without
// reordering the input.
func TopRated(all []Product, n int) []Product {
	sorted := make([]Product, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
