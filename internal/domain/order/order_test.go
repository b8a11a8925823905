package order

import (
	"testing"
	"time"

	"github.com/example/afrimarket/internal/domain/cart"
	"github.com/example/afrimarket/internal/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []cart.Item {
	return []cart.Item{
		{Product: product.Product{ID: "p1", Name: "Casque", Price: 1000, SellerID: "s1", Category: "Électronique"}, Quantity: 2},
		{Product: product.Product{ID: "p2", Name: "Robe", Price: 2000, SellerID: "s2", Category: "Mode"}, Quantity: 1},
	}
}

func newTestOrder(t *testing.T) Order {
	t.Helper()
	o, err := New("3f2a9c1e-0000-4000-8000-000000000000", testItems(), Customer{ID: "u1", Name: "Awa Traoré", Email: "awa@test.com"}, "ref-1", time.Now())
	require.NoError(t, err)
	return o
}

// ============================================
// New Order Tests
// ============================================

func TestNew_Success(t *testing.T) {
	o := newTestOrder(t)

	assert.Equal(t, 4000, o.Total) // 2*1000 + 1*2000
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentOptimistic, o.PaymentState)
	assert.Equal(t, "u1", o.CustomerID)
	assert.Equal(t, "Awa Traoré", o.CustomerName)
	assert.Equal(t, "ref-1", o.PaymentRef)
	assert.Len(t, o.Items, 2)
}

func TestNew_EmptyItems(t *testing.T) {
	_, err := New("id", nil, Customer{}, "", time.Now())
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestNew_ItemsAreFrozen(t *testing.T) {
	items := testItems()
	o, err := New("id", items, Customer{}, "", time.Now())
	require.NoError(t, err)

	items[0].Quantity = 50
	items[0].Price = 1

	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, 4000, o.Total)
}

func TestShortID(t *testing.T) {
	o := newTestOrder(t)
	assert.Equal(t, "3F2A9C1E", o.ShortID())
	assert.Equal(t, "AB", ShortID("ab"))
}

// ============================================
// Status Transition Tests
// ============================================

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     Status
		to       Status
		expected bool
	}{
		{"pending to shipped", StatusPending, StatusShipped, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to delivered", StatusPending, StatusDelivered, false},
		{"shipped to delivered", StatusShipped, StatusDelivered, true},
		{"shipped to cancelled", StatusShipped, StatusCancelled, true},
		{"shipped to pending", StatusShipped, StatusPending, false},
		{"delivered to cancelled", StatusDelivered, StatusCancelled, false},
		{"delivered to pending", StatusDelivered, StatusPending, false},
		{"cancelled to pending", StatusCancelled, StatusPending, false},
		{"cancelled to shipped", StatusCancelled, StatusShipped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Status: tt.from}
			assert.Equal(t, tt.expected, o.CanTransitionTo(tt.to))
		})
	}
}

func TestTransitionTo_Invalid(t *testing.T) {
	o := &Order{Status: StatusDelivered}

	err := o.TransitionTo(StatusPending)

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.ErrorIs(t, err, ErrOrderDelivered)
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestTransitionTo_CancelledIsTerminal(t *testing.T) {
	o := &Order{Status: StatusCancelled}
	err := o.TransitionTo(StatusShipped)
	assert.ErrorIs(t, err, ErrOrderCancelled)
}

func TestTransitionTo_Forward(t *testing.T) {
	o := &Order{Status: StatusPending}
	require.NoError(t, o.TransitionTo(StatusShipped))
	require.NoError(t, o.TransitionTo(StatusDelivered))
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" Shipped ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, st)

	_, err = ParseStatus("paid")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

// ============================================
// Payment Reconciliation Tests
// ============================================

func TestReconcile_MatchingAmount(t *testing.T) {
	o := newTestOrder(t)

	err := o.Reconcile(4000)

	require.NoError(t, err)
	assert.Equal(t, PaymentConfirmed, o.PaymentState)
	assert.Equal(t, StatusPending, o.Status)
}

func TestReconcile_AmountMismatch(t *testing.T) {
	o := newTestOrder(t)

	err := o.Reconcile(3999)

	assert.ErrorIs(t, err, ErrAmountMismatch)
	assert.Equal(t, PaymentRejected, o.PaymentState)
	assert.Equal(t, StatusCancelled, o.Status)
}

func TestRevert_DeliveredStaysDelivered(t *testing.T) {
	o := newTestOrder(t)
	o.Status = StatusDelivered

	o.Revert()

	assert.Equal(t, PaymentRejected, o.PaymentState)
	assert.Equal(t, StatusDelivered, o.Status)
}

// ============================================
// Visibility Tests
// ============================================

func TestForSeller(t *testing.T) {
	a := Order{ID: "a", Items: testItems()}
	b := Order{ID: "b", Items: testItems()[1:]}

	got := ForSeller([]Order{a, b}, "s1")

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.Len(t, ForSeller([]Order{a, b}, "s2"), 2)
	assert.Empty(t, ForSeller([]Order{a, b}, "s3"))
}

func TestForCustomer(t *testing.T) {
	all := []Order{{ID: "a", CustomerID: "u1"}, {ID: "b", CustomerID: "u2"}, {ID: "c", CustomerID: "u1"}}

	got := ForCustomer(all, "u1")

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestClone_Isolated(t *testing.T) {
	o := newTestOrder(t)
	c := o.Clone()
	c.Items[0].Quantity = 99
	assert.Equal(t, 2, o.Items[0].Quantity)
}

// ============================================
// Stats / Event Tests
// ============================================

func TestSummarize(t *testing.T) {
	orders := []Order{{Total: 1000}, {Total: 3000}}
	products := []product.Product{{Category: "Mode"}, {Category: "Mode"}, {Category: "Sport"}}

	stats := Summarize(orders, products)

	assert.Equal(t, 4000, stats.TotalSales)
	assert.Equal(t, 2, stats.OrderCount)
	assert.InDelta(t, 2000.0, stats.AverageOrderValue, 0.001)
	assert.Equal(t, map[string]int{"Mode": 2, "Sport": 1}, stats.CategoryDistribution)
	assert.Nil(t, stats.UserCount)
}

func TestSummarize_NoOrders(t *testing.T) {
	stats := Summarize(nil, nil)
	assert.Zero(t, stats.AverageOrderValue)
	assert.NotNil(t, stats.CategoryDistribution)
}

func TestStats_WithPlatform(t *testing.T) {
	stats := Summarize(nil, nil).WithPlatform(5, 2)
	require.NotNil(t, stats.UserCount)
	assert.Equal(t, 5, *stats.UserCount)
	assert.Equal(t, 2, *stats.ActiveSellers)
}

func TestPlaced(t *testing.T) {
	o := newTestOrder(t)

	e := Placed(o)

	assert.Equal(t, o.ID, e.OrderID)
	assert.Equal(t, "awa@test.com", e.CustomerEmail)
	require.Len(t, e.Items, 2)
	assert.Equal(t, "Casque", e.Items[0].Name)
	assert.Equal(t, "s1", e.Items[0].SellerID)
	assert.Equal(t, 4000, e.Total)
}
