package storefront

import (
	"context"
	"fmt"

	"github.com/example/afrimarket/internal/domain/cart"
	"github.com/example/afrimarket/internal/domain/product"
	"github.com/example/afrimarket/internal/toast"
)

// CartView is the cart as shown in the drawer.
type CartView struct {
	Items []cart.Item `json:"items"`
	Total int         `json:"total"`
	Count int         `json:"count"`
}

func (m *Manager) findProduct(id string) (product.Product, bool) {
	for _, p := range m.products {
		if p.ID == id {
			return p, true
		}
	}
	return product.Product{}, false
}

func (m *Manager) sessionID() string {
	if m.session == nil {
		return ""
	}
	return m.session.ID
}

// AddToCart puts one unit of the catalog product in the cart.
func (m *Manager) AddToCart(ctx context.Context, productID string) (cart.Item, error) {
	var item cart.Item
	err := m.apply(ctx, func() ([]pendingEvent, error) {
		p, ok := m.findProduct(productID)
		if !ok {
			return nil, product.ErrProductNotFound
		}
		item = m.cart.Add(p)
		m.toasts.Notify(fmt.Sprintf("%s ajouté au panier", p.Name), toast.KindSuccess)

		return []pendingEvent{event(cart.ID, cart.AggregateType, cart.EventItemAdded, cart.ItemAddedToCart{
			CartID:    cart.ID,
			UserID:    m.sessionID(),
			ProductID: p.ID,
			Quantity:  item.Quantity,
			Price:     p.Price,
			AddedAt:   m.now(),
		})}, nil
	})
	return item, err
}

// UpdateQuantity sets the quantity of a line as given; callers clamp.
func (m *Manager) UpdateQuantity(ctx context.Context, productID string, quantity int) (cart.Item, error) {
	return m.changeQuantity(ctx, productID, func() (cart.Item, error) {
		return m.cart.SetQuantity(productID, quantity)
	})
}

// IncrementQuantity adds one unit to a line.
func (m *Manager) IncrementQuantity(ctx context.Context, productID string) (cart.Item, error) {
	return m.changeQuantity(ctx, productID, func() (cart.Item, error) {
		return m.cart.Increment(productID)
	})
}

// DecrementQuantity removes one unit from a line, never going below one.
func (m *Manager) DecrementQuantity(ctx context.Context, productID string) (cart.Item, error) {
	return m.changeQuantity(ctx, productID, func() (cart.Item, error) {
		return m.cart.Decrement(productID)
	})
}

func (m *Manager) changeQuantity(ctx context.Context, productID string, change func() (cart.Item, error)) (cart.Item, error) {
	var item cart.Item
	err := m.apply(ctx, func() ([]pendingEvent, error) {
		var err error
		item, err = change()
		if err != nil {
			return nil, err
		}
		return []pendingEvent{event(cart.ID, cart.AggregateType, cart.EventQuantityChanged, cart.CartQuantityChanged{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  item.Quantity,
			ChangedAt: m.now(),
		})}, nil
	})
	return item, err
}

// RemoveFromCart drops a line. Removing an absent line does nothing and
// reports false.
func (m *Manager) RemoveFromCart(ctx context.Context, productID string) bool {
	var removed bool
	_ = m.apply(ctx, func() ([]pendingEvent, error) {
		var item cart.Item
		item, removed = m.cart.Remove(productID)
		if !removed {
			return nil, nil
		}
		m.toasts.Notify(fmt.Sprintf("%s retiré", item.Name), toast.KindInfo)

		return []pendingEvent{event(cart.ID, cart.AggregateType, cart.EventItemRemoved, cart.ItemRemovedFromCart{
			CartID:    cart.ID,
			UserID:    m.sessionID(),
			ProductID: productID,
			RemovedAt: m.now(),
		})}, nil
	})
	return removed
}

func (m *Manager) Cart() CartView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return CartView{
		Items: m.cart.Items(),
		Total: m.cart.Total(),
		Count: m.cart.Count(),
	}
}

// CartTotal is the sum of price times quantity over the cart.
func (m *Manager) CartTotal() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Total()
}

// CartCount is the number of units in the cart.
func (m *Manager) CartCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Count()
}
