package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/afrimarket/internal/infrastructure/store"
	"github.com/example/afrimarket/internal/infrastructure/store/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

// ============================================
// In-Memory Event Store Tests
// ============================================

func TestEventStore_Append_VersionsPerAggregate(t *testing.T) {
	es := store.NewEventStore(nil)
	ctx := context.Background()

	e1, err := es.Append(ctx, "order-1", "Order", "OrderPlaced", payload{Name: "a"})
	require.NoError(t, err)
	e2, err := es.Append(ctx, "order-1", "Order", "OrderStatusChanged", payload{Name: "b"})
	require.NoError(t, err)
	e3, err := es.Append(ctx, "order-2", "Order", "OrderPlaced", payload{Name: "c"})
	require.NoError(t, err)

	assert.Equal(t, 1, e1.Version)
	assert.Equal(t, 2, e2.Version)
	assert.Equal(t, 1, e3.Version)
	assert.NotEmpty(t, e1.ID)
	assert.NotEqual(t, e1.ID, e2.ID)
}

func TestEventStore_GetAllEvents_AppendOrder(t *testing.T) {
	es := store.NewEventStore(nil)
	ctx := context.Background()

	for _, id := range []string{"b", "a", "c", "a"} {
		_, err := es.Append(ctx, id, "Cart", "ItemAddedToCart", payload{Name: id})
		require.NoError(t, err)
	}

	all := es.GetAllEvents()
	require.Len(t, all, 4)
	ids := []string{all[0].AggregateID, all[1].AggregateID, all[2].AggregateID, all[3].AggregateID}
	assert.Equal(t, []string{"b", "a", "c", "a"}, ids)
	assert.Len(t, es.GetEvents("a"), 2)
	assert.Empty(t, es.GetEvents("missing"))
}

func TestEventStore_Decode(t *testing.T) {
	es := store.NewEventStore(nil)

	e, err := es.Append(context.Background(), "p-1", "Product", "ProductAdded", payload{Name: "Radio"})
	require.NoError(t, err)

	var got payload
	require.NoError(t, e.Decode(&got))
	assert.Equal(t, "Radio", got.Name)
}

func TestEventStore_PublishesEvents(t *testing.T) {
	pub := mocks.NewMockPublisher()
	es := store.NewEventStore(pub)

	e, err := es.Append(context.Background(), "order-1", "Order", "OrderPlaced", payload{})

	require.NoError(t, err)
	calls := pub.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "order-1", calls[0].Key)
	assert.Equal(t, *e, calls[0].Event)
}

func TestEventStore_PublishFailureKeepsEvent(t *testing.T) {
	pub := mocks.NewMockPublisher()
	pub.PublishErr = errors.New("broker down")
	es := store.NewEventStore(pub)

	e, err := es.Append(context.Background(), "order-1", "Order", "OrderPlaced", payload{})

	assert.ErrorIs(t, err, store.ErrPublishFailed)
	require.NotNil(t, e)
	assert.Len(t, es.GetAllEvents(), 1)
}

func TestEventStore_UnmarshalableData(t *testing.T) {
	es := store.NewEventStore(nil)

	_, err := es.Append(context.Background(), "x", "X", "Bad", make(chan int))

	assert.Error(t, err)
	assert.Empty(t, es.GetAllEvents())
}
