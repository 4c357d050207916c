package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olajosh80/Realms/internal/cart"
	"github.com/Olajosh80/Realms/internal/events"
	"github.com/Olajosh80/Realms/internal/kv"
	"github.com/Olajosh80/Realms/internal/models"
	"github.com/Olajosh80/Realms/internal/transport"
	"github.com/Olajosh80/Realms/pkg/logging"
)

func TestCreateOrder_WithItems(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	uid := uuid.New()

	o, err := e.orders.CreateOrder(ctx, transport.CreateOrderRequest{
		UserID:        &uid,
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Total:         999,
		Items: []transport.OrderItemRequest{
			{ProductID: "a", ProductName: "Dice", Quantity: 2, Price: 10},
			{ProductID: "b", ProductName: "Map", Quantity: 1, Price: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.InDelta(t, 25.0, o.Total, 1e-9)

	got, err := e.orders.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	for _, it := range got.Items {
		assert.Equal(t, o.ID, it.OrderID)
	}
	assert.Equal(t, []string{"order_created"}, e.events.Types(events.TopicOrders))
}

func TestCreateOrder_Rejects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)

	bad := []transport.CreateOrderRequest{
		{Status: "lost"},
		{CustomerEmail: "not an email"},
		{Items: []transport.OrderItemRequest{{ProductID: "", Quantity: 1}}},
		{Items: []transport.OrderItemRequest{{ProductID: "a", Quantity: 0}}},
		{Items: []transport.OrderItemRequest{{ProductID: "a", Quantity: 1, Price: -1}}},
		{Total: -5},
	}
	for _, req := range bad {
		_, err := e.orders.CreateOrder(ctx, req)
		assert.ErrorIs(t, err, ErrValidation)
	}
	n, err := e.orders.Orders.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListOrders_AndStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	uid := uuid.New()

	mine, err := e.orders.CreateOrder(ctx, transport.CreateOrderRequest{UserID: &uid, Total: 1})
	require.NoError(t, err)
	_, err = e.orders.CreateOrder(ctx, transport.CreateOrderRequest{Total: 2})
	require.NoError(t, err)

	all, err := e.orders.ListOrders(ctx, OrderFilter{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byUser, err := e.orders.ListOrders(ctx, OrderFilter{UserID: &uid})
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, mine.ID, byUser[0].ID)

	_, err = e.orders.UpdateStatus(ctx, mine.ID, "teleported")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.orders.UpdateStatus(ctx, uuid.New(), models.OrderShipped)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := e.orders.UpdateStatus(ctx, mine.ID, models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.Status)

	shipped, err := e.orders.ListOrders(ctx, OrderFilter{Status: models.OrderShipped})
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	assert.Equal(t, mine.ID, shipped[0].ID)
}

func TestCheckout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)

	store := cart.NewStore(kv.NewMemory(), cart.StorageKey, logging.Discard())
	require.NoError(t, store.Load(ctx))

	_, err := e.checkout.Checkout(ctx, store, nil, transport.CheckoutRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	store.AddItem(ctx, cart.Item{ID: "a", Name: "Dice", Price: 10})
	store.AddItem(ctx, cart.Item{ID: "a", Name: "Dice", Price: 10})
	store.AddItem(ctx, cart.Item{ID: "b", Name: "Map", Price: 5})

	_, err = e.checkout.Checkout(ctx, store, nil, transport.CheckoutRequest{CustomerEmail: "broken"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 3, store.TotalItems(), "failed checkout keeps the cart")

	o, err := e.checkout.Checkout(ctx, store, nil, transport.CheckoutRequest{CustomerName: "Ada", CustomerEmail: "ada@example.com"})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, o.Total, 1e-9)
	assert.Len(t, o.Items, 2)
	assert.Zero(t, store.TotalItems())
}
