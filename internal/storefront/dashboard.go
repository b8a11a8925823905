package storefront

import (
	"fmt"

	"github.com/example/afrimarket/internal/domain/order"
	"github.com/example/afrimarket/internal/domain/product"
	"github.com/example/afrimarket/internal/domain/user"
)

type DashboardKind string

const (
	DashboardBuyer      DashboardKind = "buyer"
	DashboardSeller     DashboardKind = "seller"
	DashboardSuperadmin DashboardKind = "superadmin"
)

// Dashboard is the role-specific back office. Fields a role does not get
// are left empty.
type Dashboard struct {
	Kind     DashboardKind     `json:"kind"`
	User     user.User         `json:"user"`
	Orders   []order.Order     `json:"orders"`
	Products []product.Product `json:"products,omitempty"`
	Users    []user.User       `json:"users,omitempty"`
	Stats    *order.Stats      `json:"stats,omitempty"`
}

// Dashboard builds the session holder's dashboard.
func (m *Manager) Dashboard() (Dashboard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.sessionUser()
	if err != nil {
		return Dashboard{}, err
	}

	switch u.Role {
	case user.RoleUser:
		return Dashboard{
			Kind:   DashboardBuyer,
			User:   u,
			Orders: m.visibleOrders(u),
		}, nil

	case user.RoleAdmin:
		orders := m.visibleOrders(u)
		products := product.OwnedBy(m.products, u.ID)
		stats := order.Summarize(orders, products)
		return Dashboard{
			Kind:     DashboardSeller,
			User:     u,
			Orders:   orders,
			Products: products,
			Stats:    &stats,
		}, nil

	case user.RoleSuperadmin:
		orders := m.visibleOrders(u)
		products := make([]product.Product, len(m.products))
		copy(products, m.products)
		stats := order.Summarize(orders, products).
			WithPlatform(m.users.Len(), m.users.CountRole(user.RoleAdmin))
		return Dashboard{
			Kind:     DashboardSuperadmin,
			User:     u,
			Orders:   orders,
			Products: products,
			Users:    m.users.All(),
			Stats:    &stats,
		}, nil

	default:
		return Dashboard{}, fmt.Errorf("%w: %q", user.ErrInvalidRole, u.Role)
	}
}
