package storefront

import (
	"context"

	"github.com/example/afrimarket/internal/domain/category"
	"github.com/example/afrimarket/internal/domain/product"
	"github.com/example/afrimarket/internal/domain/user"
	"github.com/example/afrimarket/internal/payment"
	"github.com/example/afrimarket/internal/toast"
)

// Products returns the catalog, newest listings first.
func (m *Manager) Products() []product.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]product.Product, len(m.products))
	copy(out, m.products)
	return out
}

func (m *Manager) Product(id string) (product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.findProduct(id)
	if !ok {
		return product.Product{}, product.ErrProductNotFound
	}
	return p, nil
}

// FilterProducts narrows the catalog by search term and category.
func (m *Manager) FilterProducts(searchTerm, cat string) []product.Product {
	return product.Filter(m.Products(), searchTerm, cat)
}

func (m *Manager) Categories() []category.Category {
	return category.List()
}

func (m *Manager) Countries() ([]payment.Country, error) {
	return payment.Countries()
}

// Country returns the checkout details of one market by ISO code.
func (m *Manager) Country(code string) (payment.Country, error) {
	return payment.FindCountry(code)
}

// AddProduct lists a new product under the session holder's seller id.
func (m *Manager) AddProduct(ctx context.Context, in product.Input) (product.Product, error) {
	var created product.Product
	err := m.apply(ctx, func() ([]pendingEvent, error) {
		u, err := m.sessionUser()
		if err != nil {
			return nil, err
		}
		if !u.Role.CanSell() {
			return nil, ErrForbidden
		}

		created, err = product.New(m.newID(), in, u.ID)
		if err != nil {
			return nil, err
		}
		m.products = append([]product.Product{created}, m.products...)
		m.toasts.Notify("Produit mis en ligne avec succès", toast.KindSuccess)

		return []pendingEvent{event(created.ID, product.AggregateType, product.EventProductAdded, product.ProductAdded{
			ProductID: created.ID,
			Name:      created.Name,
			Price:     created.Price,
			Category:  created.Category,
			SellerID:  created.SellerID,
			AddedAt:   m.now(),
		})}, nil
	})
	return created, err
}

// DeleteProduct removes a listing once confirmed. A superadmin may remove
// any listing, a seller only their own.
func (m *Manager) DeleteProduct(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return m.apply(ctx, func() ([]pendingEvent, error) {
		u, err := m.sessionUser()
		if err != nil {
			return nil, err
		}

		idx := -1
		for i := range m.products {
			if m.products[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, product.ErrProductNotFound
		}
		p := m.products[idx]

		switch u.Role {
		case user.RoleSuperadmin:
		case user.RoleAdmin:
			if p.SellerID != u.ID {
				return nil, ErrForbidden
			}
		default:
			return nil, ErrForbidden
		}

		m.products = append(m.products[:idx], m.products[idx+1:]...)
		m.toasts.Notify("Produit supprimé", toast.KindInfo)

		return []pendingEvent{event(p.ID, product.AggregateType, product.EventProductDeleted, product.ProductDeleted{
			ProductID: p.ID,
			SellerID:  p.SellerID,
			DeletedBy: u.ID,
			DeletedAt: m.now(),
		})}, nil
	})
}
