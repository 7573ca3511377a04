package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmstand/internal/adapter/storage/memory"
	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
	"farmstand/pkg/errors"
)

type orderFixture struct {
	store   storage.Storage
	orders  *OrderUseCase
	buyer   *entity.User
	product *entity.Product
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Init(ctx))

	buyer, err := store.CreateUser(ctx, &entity.User{
		Username: "buyer", Email: "buyer@example.com", Password: "hash",
	})
	require.NoError(t, err)

	owner, err := store.CreateUser(ctx, &entity.User{
		Username: "farmer", Email: "farmer@example.com", Password: "hash", IsVendor: true,
	})
	require.NoError(t, err)
	vendor, err := store.CreateVendor(ctx, &entity.Vendor{UserID: owner.ID, BusinessName: "Green Acres"})
	require.NoError(t, err)

	product, err := store.CreateProduct(ctx, &entity.Product{
		Name: "Kale", Price: 3.99, Stock: 10, VendorID: vendor.ID,
	})
	require.NoError(t, err)

	return &orderFixture{
		store:   store,
		orders:  NewOrderUseCase(store),
		buyer:   buyer,
		product: product,
	}
}

func TestCreateOrderFreezesPriceAndComputesTotal(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	detail, err := f.orders.CreateOrder(ctx, f.buyer.ID, CreateOrderInput{
		Items:         []OrderItemInput{{ProductID: f.product.ID, Quantity: 3}},
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, detail.Order.Status)
	assert.InDelta(t, 11.97, detail.Order.Total, 0.001)
	require.Len(t, detail.Items, 1)
	assert.InDelta(t, 3.99, detail.Items[0].Price, 0.001)

	// Later price changes leave the captured item price alone.
	newPrice := 9.99
	_, err = f.store.UpdateProduct(ctx, f.product.ID, entity.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)

	again, err := f.orders.GetOrder(ctx, f.buyer.ID, detail.Order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.99, again.Items[0].Price, 0.001)

	// Ordering does not touch inventory; stock changes go through the
	// product update endpoint.
	product, err := f.store.GetProduct(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, product.Stock)
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	_, err := f.orders.CreateOrder(ctx, f.buyer.ID, CreateOrderInput{})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = f.orders.CreateOrder(ctx, f.buyer.ID, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: f.product.ID, Quantity: 0}},
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = f.orders.CreateOrder(ctx, f.buyer.ID, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: f.product.ID, Quantity: 100}},
	})
	assert.True(t, errors.Is(err, "CONFLICT"))

	_, err = f.orders.CreateOrder(ctx, f.buyer.ID, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: 999, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestOrderStatusTransitions(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	detail, err := f.orders.CreateOrder(ctx, f.buyer.ID, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: f.product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	orderID := detail.Order.ID

	// pending cannot jump straight to shipped.
	_, err = f.orders.UpdateStatus(ctx, orderID, entity.OrderShipped)
	assert.True(t, errors.Is(err, "CONFLICT"))

	order, err := f.orders.UpdateStatus(ctx, orderID, entity.OrderProcessing)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderProcessing, order.Status)

	order, err = f.orders.UpdateStatus(ctx, orderID, entity.OrderShipped)
	require.NoError(t, err)
	order, err = f.orders.UpdateStatus(ctx, orderID, entity.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, order.Status)

	// Completed is terminal.
	_, err = f.orders.UpdateStatus(ctx, orderID, entity.OrderCancelled)
	assert.True(t, errors.Is(err, "CONFLICT"))

	_, err = f.orders.UpdateStatus(ctx, orderID, entity.OrderStatus("lost"))
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCancelOrderOwnershipAndTerminality(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	detail, err := f.orders.CreateOrder(ctx, f.buyer.ID, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: f.product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.orders.CancelOrder(ctx, f.buyer.ID+100, detail.Order.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	order, err := f.orders.CancelOrder(ctx, f.buyer.ID, detail.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, order.Status)

	_, err = f.orders.CancelOrder(ctx, f.buyer.ID, detail.Order.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestGetOrderEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	detail, err := f.orders.CreateOrder(ctx, f.buyer.ID, CreateOrderInput{
		Items: []OrderItemInput{{ProductID: f.product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.orders.GetOrder(ctx, f.buyer.ID+100, detail.Order.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
