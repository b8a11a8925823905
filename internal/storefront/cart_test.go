package storefront

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/afrimarket/internal/domain/cart"
	"github.com/example/afrimarket/internal/domain/product"
	"github.com/example/afrimarket/internal/toast"
)

// ============================================
// AddToCart Tests
// ============================================

func TestAddToCart_RepeatedCallsAccumulate(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	for n := 1; n <= 4; n++ {
		item, err := m.AddToCart(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, n, item.Quantity)
	}

	view := m.Cart()
	require.Len(t, view.Items, 1)
	assert.Equal(t, "2", view.Items[0].ID)
	assert.Equal(t, 4, view.Items[0].Quantity)
}

func TestAddToCart_ToastAndEvent(t *testing.T) {
	m, journal, _ := newTestManager(t)

	_, err := m.AddToCart(context.Background(), "1")
	require.NoError(t, err)

	msg := lastToast(t, m)
	assert.Equal(t, "iPhone 15 Pro Max ajouté au panier", msg.Text)
	assert.Equal(t, toast.KindSuccess, msg.Type)

	calls := journal.CallsOfType(cart.EventItemAdded)
	require.Len(t, calls, 1)
	payload := calls[0].Data.(cart.ItemAddedToCart)
	assert.Equal(t, "1", payload.ProductID)
	assert.Equal(t, 850000, payload.Price)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.AddToCart(context.Background(), "nope")
	assert.ErrorIs(t, err, product.ErrProductNotFound)
	assert.Zero(t, m.CartCount())
	assert.Empty(t, m.Toasts())
}

// ============================================
// Total / Count Tests
// ============================================

func TestCartTotal_TracksMutations(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	assert.Equal(t, 0, m.CartTotal())

	_, err := m.AddToCart(ctx, "1")
	require.NoError(t, err)
	_, err = m.AddToCart(ctx, "2")
	require.NoError(t, err)
	_, err = m.AddToCart(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 850000+2*75000, m.CartTotal())
	assert.Equal(t, 3, m.CartCount())

	_, err = m.UpdateQuantity(ctx, "1", 3)
	require.NoError(t, err)
	assert.Equal(t, 3*850000+2*75000, m.CartTotal())

	assert.True(t, m.RemoveFromCart(ctx, "1"))
	assert.Equal(t, 2*75000, m.CartTotal())
	assert.Equal(t, 2, m.CartCount())

	view := m.Cart()
	assert.Equal(t, view.Total, m.CartTotal())
	assert.Equal(t, view.Count, m.CartCount())
}

// ============================================
// Quantity Tests
// ============================================

func TestDecrementQuantity_ClampsAtOne(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.AddToCart(ctx, "3")
	require.NoError(t, err)

	item, err := m.DecrementQuantity(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	item, err = m.IncrementQuantity(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	item, err = m.DecrementQuantity(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestUpdateQuantity_MissingLine(t *testing.T) {
	m, journal, _ := newTestManager(t)

	_, err := m.UpdateQuantity(context.Background(), "1", 2)
	assert.ErrorIs(t, err, cart.ErrItemNotFound)
	assert.Empty(t, journal.AppendCalls)
}

func TestUpdateQuantity_RecordsEvent(t *testing.T) {
	m, journal, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.AddToCart(ctx, "4")
	require.NoError(t, err)
	_, err = m.UpdateQuantity(ctx, "4", 5)
	require.NoError(t, err)

	calls := journal.CallsOfType(cart.EventQuantityChanged)
	require.Len(t, calls, 1)
	assert.Equal(t, 5, calls[0].Data.(cart.CartQuantityChanged).Quantity)
}

// ============================================
// RemoveFromCart Tests
// ============================================

func TestRemoveFromCart_InfoToast(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.AddToCart(ctx, "2")
	require.NoError(t, err)
	require.True(t, m.RemoveFromCart(ctx, "2"))

	msg := lastToast(t, m)
	assert.Equal(t, "Baskets Nike Air Max retiré", msg.Text)
	assert.Equal(t, toast.KindInfo, msg.Type)
	assert.Empty(t, m.Cart().Items)
}

func TestRemoveFromCart_AbsentIsNoop(t *testing.T) {
	m, journal, _ := newTestManager(t)

	assert.False(t, m.RemoveFromCart(context.Background(), "2"))
	assert.Empty(t, m.Toasts())
	assert.Empty(t, journal.AppendCalls)
}

func TestCart_ReturnsCopy(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.AddToCart(context.Background(), "1")
	require.NoError(t, err)

	view := m.Cart()
	view.Items[0].Quantity = 99
	assert.Equal(t, 1, m.Cart().Items[0].Quantity)
}
