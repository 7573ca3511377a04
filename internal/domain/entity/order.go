package entity

import (
	"time"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderTransitions is the allowed status graph. Completed and cancelled are
// terminal. Callers that need a different policy can swap the table before
// serving traffic.
var OrderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderCompleted},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := OrderTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range OrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID     int64       `json:"id"`
	UserID int64       `json:"user_id"`
	Status OrderStatus `json:"status"`
	Total  float64     `json:"total"`

	ShippingStreet  string `json:"shipping_street,omitempty"`
	ShippingCity    string `json:"shipping_city,omitempty"`
	ShippingState   string `json:"shipping_state,omitempty"`
	ShippingZipCode string `json:"shipping_zip_code,omitempty"`

	PaymentMethod string `json:"payment_method,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type OrderItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	// Price is the unit price captured when the order was placed. It is
	// never re-read from the product, so later price changes leave
	// historical totals intact.
	Price float64 `json:"price"`
}

type OrderUpdate struct {
	Status          *OrderStatus
	Total           *float64
	ShippingStreet  *string
	ShippingCity    *string
	ShippingState   *string
	ShippingZipCode *string
	PaymentMethod   *string
	PaymentStatus   *string
}

func (up OrderUpdate) Apply(o *Order) {
	if up.Status != nil {
		o.Status = *up.Status
	}
	if up.Total != nil {
		o.Total = *up.Total
	}
	if up.ShippingStreet != nil {
		o.ShippingStreet = *up.ShippingStreet
	}
	if up.ShippingCity != nil {
		o.ShippingCity = *up.ShippingCity
	}
	if up.ShippingState != nil {
		o.ShippingState = *up.ShippingState
	}
	if up.ShippingZipCode != nil {
		o.ShippingZipCode = *up.ShippingZipCode
	}
	if up.PaymentMethod != nil {
		o.PaymentMethod = *up.PaymentMethod
	}
	if up.PaymentStatus != nil {
		o.PaymentStatus = *up.PaymentStatus
	}
}
