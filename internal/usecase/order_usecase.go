package usecase

import (
	"context"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
	"farmstand/pkg/errors"
)

type OrderUseCase struct {
	store storage.Storage
}

func NewOrderUseCase(store storage.Storage) *OrderUseCase {
	return &OrderUseCase{store: store}
}

type OrderItemInput struct {
	ProductID int64
	Quantity  int
}

type CreateOrderInput struct {
	Items           []OrderItemInput
	ShippingStreet  string
	ShippingCity    string
	ShippingState   string
	ShippingZipCode string
	PaymentMethod   string
}

type OrderDetail struct {
	Order *entity.Order       `json:"order"`
	Items []*entity.OrderItem `json:"items"`
}

// CreateOrder prices each line from the current product catalog and freezes
// the unit price on the item, then hands the order and all items to the
// storage layer as one transactional create.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID int64, input CreateOrderInput) (*OrderDetail, error) {
	if len(input.Items) == 0 {
		return nil, errors.BadRequest("Order must contain at least one item", nil)
	}

	var total float64
	items := make([]*entity.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, errors.BadRequest("Item quantity must be positive", nil)
		}
		product, err := uc.store.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, storeErr("Product", err)
		}
		if product.Stock < line.Quantity {
			return nil, errors.Conflict("Insufficient stock for "+product.Name, nil)
		}
		items = append(items, &entity.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
		total += product.Price * float64(line.Quantity)
	}

	order := &entity.Order{
		UserID:          userID,
		Status:          entity.OrderPending,
		Total:           total,
		ShippingStreet:  input.ShippingStreet,
		ShippingCity:    input.ShippingCity,
		ShippingState:   input.ShippingState,
		ShippingZipCode: input.ShippingZipCode,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   "unpaid",
	}

	created, err := uc.store.CreateOrder(ctx, order, items)
	if err != nil {
		return nil, storeErr("Order", err)
	}

	// Stock is checked above but not decremented here; fulfillment adjusts
	// inventory through the product update endpoint.
	createdItems, err := uc.store.GetOrderItems(ctx, created.ID)
	if err != nil {
		return nil, storeErr("Order items", err)
	}
	return &OrderDetail{Order: created, Items: createdItems}, nil
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, userID, orderID int64) (*OrderDetail, error) {
	order, err := uc.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, storeErr("Order", err)
	}
	if order.UserID != userID {
		return nil, errors.Forbidden("Order belongs to another user", nil)
	}

	items, err := uc.store.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, storeErr("Order items", err)
	}
	return &OrderDetail{Order: order, Items: items}, nil
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, userID int64) ([]*entity.Order, error) {
	orders, err := uc.store.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("Orders", err)
	}
	return orders, nil
}

// UpdateStatus enforces the transition table: an order moves only along
// edges in entity.OrderTransitions, and terminal states never move.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, next entity.OrderStatus) (*entity.Order, error) {
	if !next.Valid() {
		return nil, errors.BadRequest("Unknown order status", nil)
	}

	order, err := uc.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, storeErr("Order", err)
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, errors.Conflict(
			"Order cannot move from "+string(order.Status)+" to "+string(next), nil)
	}

	updated, err := uc.store.UpdateOrder(ctx, orderID, entity.OrderUpdate{Status: &next})
	if err != nil {
		return nil, storeErr("Order", err)
	}
	return updated, nil
}

// CancelOrder is the one status change buyers may make themselves, and only
// while the order has not shipped.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, userID, orderID int64) (*entity.Order, error) {
	order, err := uc.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, storeErr("Order", err)
	}
	if order.UserID != userID {
		return nil, errors.Forbidden("Order belongs to another user", nil)
	}
	return uc.UpdateStatus(ctx, orderID, entity.OrderCancelled)
}
