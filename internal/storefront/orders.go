package storefront

import (
	"context"
	"fmt"

	"github.com/example/afrimarket/internal/domain/order"
	"github.com/example/afrimarket/internal/domain/user"
	"github.com/example/afrimarket/internal/toast"
)

func cloneOrders(orders []order.Order) []order.Order {
	out := make([]order.Order, len(orders))
	for i := range orders {
		out[i] = orders[i].Clone()
	}
	return out
}

// visibleOrders filters orders to what u may see. Callers hold mu.
func (m *Manager) visibleOrders(u user.User) []order.Order {
	switch u.Role {
	case user.RoleSuperadmin:
		return cloneOrders(m.orders)
	case user.RoleAdmin:
		return cloneOrders(order.ForSeller(m.orders, u.ID))
	default:
		return cloneOrders(order.ForCustomer(m.orders, u.ID))
	}
}

// Orders returns the orders the session holder may see, most recent first.
func (m *Manager) Orders() ([]order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := m.sessionUser()
	if err != nil {
		return nil, err
	}
	return m.visibleOrders(u), nil
}

func (m *Manager) indexOfOrder(id string) int {
	for i := range m.orders {
		if m.orders[i].ID == id {
			return i
		}
	}
	return -1
}

// UpdateOrderStatus moves an order forward. Sellers may only touch orders
// that contain one of their products.
func (m *Manager) UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) (order.Order, error) {
	var updated order.Order
	err := m.apply(ctx, func() ([]pendingEvent, error) {
		u, err := m.sessionUser()
		if err != nil {
			return nil, err
		}
		if !u.Role.CanSell() {
			return nil, ErrForbidden
		}

		i := m.indexOfOrder(orderID)
		if i < 0 {
			return nil, order.ErrOrderNotFound
		}
		o := &m.orders[i]
		if u.Role == user.RoleAdmin && !o.ContainsSeller(u.ID) {
			return nil, ErrForbidden
		}

		from := o.Status
		if err := o.TransitionTo(status); err != nil {
			return nil, err
		}
		updated = o.Clone()
		m.toasts.Notify(fmt.Sprintf("Statut commande mis à jour : %s", status), toast.KindInfo)

		return []pendingEvent{event(o.ID, order.AggregateType, order.EventOrderStatusChanged, order.OrderStatusChanged{
			OrderID:   o.ID,
			From:      from,
			To:        status,
			ChangedBy: u.ID,
			ChangedAt: m.now(),
		})}, nil
	})
	return updated, err
}
