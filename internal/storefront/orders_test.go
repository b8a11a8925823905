package storefront

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/afrimarket/internal/domain/order"
	"github.com/example/afrimarket/internal/domain/product"
	"github.com/example/afrimarket/internal/domain/user"
	"github.com/example/afrimarket/internal/toast"
)

// newMarketplace sets up a catalog with one product from each seller and a
// buyer order for each of them.
func newMarketplace(t *testing.T) (m *Manager, ownOrder, rivalOrder order.Order) {
	t.Helper()
	m, _, _ = newTestManager(t, WithCatalog([]product.Product{
		{ID: "p-own", Name: "Radio", Price: 10000, Category: "Électronique", SellerID: "vendeur-1"},
		{ID: "p-rival", Name: "Boubou", Price: 20000, Category: "Mode", SellerID: "vendeur-2"},
	}))
	ctx := context.Background()
	login(t, m, buyerEmail)

	_, err := m.AddToCart(ctx, "p-own")
	require.NoError(t, err)
	ownOrder = placeOrder(t, m)

	_, err = m.AddToCart(ctx, "p-rival")
	require.NoError(t, err)
	rivalOrder = placeOrder(t, m)
	return m, ownOrder, rivalOrder
}

func orderIDs(orders []order.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

// ============================================
// Visibility Tests
// ============================================

func TestOrders_VisibilityPerRole(t *testing.T) {
	m, own, rival := newMarketplace(t)

	buyerOrders, err := m.Orders()
	require.NoError(t, err)
	assert.Equal(t, []string{rival.ID, own.ID}, orderIDs(buyerOrders))

	login(t, m, sellerEmail)
	sellerOrders, err := m.Orders()
	require.NoError(t, err)
	assert.Equal(t, []string{own.ID}, orderIDs(sellerOrders))

	login(t, m, bossEmail)
	allOrders, err := m.Orders()
	require.NoError(t, err)
	assert.Len(t, allOrders, 2)

	login(t, m, "other.buyer@example.com")
	none, err := m.Orders()
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrders_RequiresSession(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, err := m.Orders()
	assert.ErrorIs(t, err, ErrAuthRequired)
}

// ============================================
// UpdateOrderStatus Tests
// ============================================

func TestUpdateOrderStatus_ForwardPath(t *testing.T) {
	m, own, _ := newMarketplace(t)
	login(t, m, sellerEmail)
	ctx := context.Background()

	updated, err := m.UpdateOrderStatus(ctx, own.ID, order.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, updated.Status)

	msg := lastToast(t, m)
	assert.Equal(t, "Statut commande mis à jour : shipped", msg.Text)
	assert.Equal(t, toast.KindInfo, msg.Type)

	updated, err = m.UpdateOrderStatus(ctx, own.ID, order.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, order.StatusDelivered, updated.Status)

	_, err = m.UpdateOrderStatus(ctx, own.ID, order.StatusCancelled)
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestUpdateOrderStatus_RejectsBackwardMoves(t *testing.T) {
	m, own, _ := newMarketplace(t)
	login(t, m, bossEmail)
	ctx := context.Background()

	_, err := m.UpdateOrderStatus(ctx, own.ID, order.StatusDelivered)
	assert.ErrorIs(t, err, order.ErrInvalidStatus, "pending cannot skip to delivered")

	_, err = m.UpdateOrderStatus(ctx, own.ID, order.StatusShipped)
	require.NoError(t, err)
	_, err = m.UpdateOrderStatus(ctx, own.ID, order.StatusPending)
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestUpdateOrderStatus_CancelFromShipped(t *testing.T) {
	m, own, _ := newMarketplace(t)
	login(t, m, bossEmail)
	ctx := context.Background()

	_, err := m.UpdateOrderStatus(ctx, own.ID, order.StatusShipped)
	require.NoError(t, err)
	updated, err := m.UpdateOrderStatus(ctx, own.ID, order.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, updated.Status)
}

func TestUpdateOrderStatus_SellerLimitedToOwnOrders(t *testing.T) {
	m, _, rival := newMarketplace(t)
	login(t, m, sellerEmail)

	_, err := m.UpdateOrderStatus(context.Background(), rival.ID, order.StatusShipped)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateOrderStatus_BuyerForbidden(t *testing.T) {
	m, own, _ := newMarketplace(t)

	_, err := m.UpdateOrderStatus(context.Background(), own.ID, order.StatusShipped)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateOrderStatus_RecordsEvent(t *testing.T) {
	m, own, _ := newMarketplace(t)
	login(t, m, bossEmail)

	_, err := m.UpdateOrderStatus(context.Background(), own.ID, order.StatusShipped)
	require.NoError(t, err)

	events, err := m.Events("")
	require.NoError(t, err)
	last := events[len(events)-1]
	assert.Equal(t, order.EventOrderStatusChanged, last.EventType)

	var payload order.OrderStatusChanged
	require.NoError(t, last.Decode(&payload))
	assert.Equal(t, order.StatusPending, payload.From)
	assert.Equal(t, order.StatusShipped, payload.To)
	assert.Equal(t, "super-1", payload.ChangedBy)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	m, _, _ := newTestManager(t)
	login(t, m, bossEmail)

	_, err := m.UpdateOrderStatus(context.Background(), "ghost", order.StatusShipped)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

// ============================================
// Dashboard Tests
// ============================================

func TestDashboard_SellerSeesOnlyOwnProducts(t *testing.T) {
	m, own, _ := newMarketplace(t)
	login(t, m, sellerEmail)

	d, err := m.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, DashboardSeller, d.Kind)
	assert.Equal(t, []string{"p-own"}, productIDs(d.Products))
	assert.Equal(t, []string{own.ID}, orderIDs(d.Orders))
	require.NotNil(t, d.Stats)
	assert.Equal(t, 1, d.Stats.OrderCount)
	assert.Equal(t, own.Total, d.Stats.TotalSales)
	assert.Nil(t, d.Stats.UserCount)
	assert.Empty(t, d.Users)
}

func TestDashboard_Buyer(t *testing.T) {
	m, own, rival := newMarketplace(t)

	d, err := m.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, DashboardBuyer, d.Kind)
	assert.Equal(t, []string{rival.ID, own.ID}, orderIDs(d.Orders))
	assert.Nil(t, d.Stats)
	assert.Empty(t, d.Products)
}

func TestDashboard_Superadmin(t *testing.T) {
	m, _, _ := newMarketplace(t)
	login(t, m, bossEmail)

	d, err := m.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, DashboardSuperadmin, d.Kind)
	assert.Len(t, d.Products, 2)
	assert.Len(t, d.Orders, 2)
	assert.Len(t, d.Users, 5)
	require.NotNil(t, d.Stats)
	assert.Equal(t, 30000, d.Stats.TotalSales)
	assert.Equal(t, 15000.0, d.Stats.AverageOrderValue)
	require.NotNil(t, d.Stats.UserCount)
	assert.Equal(t, 5, *d.Stats.UserCount)
	require.NotNil(t, d.Stats.ActiveSellers)
	assert.Equal(t, 2, *d.Stats.ActiveSellers)
	assert.Equal(t, map[string]int{"Électronique": 1, "Mode": 1}, d.Stats.CategoryDistribution)
}

func TestDashboard_RequiresSession(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, err := m.Dashboard()
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestDashboard_FollowsRoleChange(t *testing.T) {
	m, _, _ := newTestManager(t)
	buyer := login(t, m, buyerEmail)
	login(t, m, bossEmail)
	_, err := m.UpdateUser(context.Background(), buyer.ID, user.Patch{Role: ptr(user.RoleAdmin)})
	require.NoError(t, err)

	login(t, m, buyerEmail)
	d, err := m.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, DashboardSeller, d.Kind)
}
