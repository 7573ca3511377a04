package oracle

import (
	"context"
	"database/sql"
	"fmt"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
)

func (s *Store) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	r, err := s.queryCursorOne(ctx, "BEGIN order_get(:p_id, :p_cur); END;",
		sql.Named("p_id", id))
	if err != nil {
		return nil, err
	}
	return orderFromRow(r)
}

func (s *Store) ListOrdersByUser(ctx context.Context, userID int64) ([]*entity.Order, error) {
	rows, err := s.queryCursor(ctx, "BEGIN orders_by_user(:p_user_id, :p_cur); END;",
		sql.Named("p_user_id", userID))
	if err != nil {
		return nil, err
	}
	return mapRows(rows, orderFromRow)
}

// CreateOrder persists the order and its items in one transaction. A failing
// item rolls back the order row as well.
func (s *Store) CreateOrder(ctx context.Context, order *entity.Order, items []*entity.OrderItem) (*entity.Order, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, translate(err)
	}

	var orderID int64
	_, err = tx.ExecContext(ctx,
		`BEGIN order_create(:p_user_id, :p_status, :p_total,
			:p_street, :p_city, :p_state, :p_zip,
			:p_payment_method, :p_payment_status, :p_id); END;`,
		append(orderBinds(order), sql.Named("p_id", sql.Out{Dest: &orderID}))...)
	if err != nil {
		tx.Rollback()
		return nil, translate(err)
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			tx.Rollback()
			return nil, fmt.Errorf("%w: order item quantity must be positive", storage.ErrConflict)
		}
		var itemID int64
		_, err = tx.ExecContext(ctx,
			"BEGIN order_item_create(:p_order_id, :p_product_id, :p_quantity, :p_price, :p_id); END;",
			sql.Named("p_order_id", orderID),
			sql.Named("p_product_id", item.ProductID),
			sql.Named("p_quantity", int64(item.Quantity)),
			sql.Named("p_price", item.Price),
			sql.Named("p_id", sql.Out{Dest: &itemID}))
		if err != nil {
			tx.Rollback()
			return nil, translate(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, translate(err)
	}
	return s.GetOrder(ctx, orderID)
}

func (s *Store) UpdateOrder(ctx context.Context, id int64, update entity.OrderUpdate) (*entity.Order, error) {
	current, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(current)

	args := append([]interface{}{sql.Named("p_id", id)}, orderBinds(current)...)
	err = s.callExec(ctx,
		`BEGIN order_update(:p_id, :p_status, :p_total,
			:p_street, :p_city, :p_state, :p_zip,
			:p_payment_method, :p_payment_status); END;`,
		args...)
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

func (s *Store) CreateOrderItem(ctx context.Context, item *entity.OrderItem) (*entity.OrderItem, error) {
	if item.Quantity <= 0 {
		return nil, fmt.Errorf("%w: order item quantity must be positive", storage.ErrConflict)
	}
	id, err := s.callCreate(ctx,
		"BEGIN order_item_create(:p_order_id, :p_product_id, :p_quantity, :p_price, :p_id); END;",
		sql.Named("p_order_id", item.OrderID),
		sql.Named("p_product_id", item.ProductID),
		sql.Named("p_quantity", int64(item.Quantity)),
		sql.Named("p_price", item.Price))
	if err != nil {
		return nil, err
	}

	created := *item
	created.ID = id
	return &created, nil
}

func (s *Store) GetOrderItems(ctx context.Context, orderID int64) ([]*entity.OrderItem, error) {
	rows, err := s.queryCursor(ctx, "BEGIN order_items_list(:p_order_id, :p_cur); END;",
		sql.Named("p_order_id", orderID))
	if err != nil {
		return nil, err
	}
	return mapRows(rows, orderItemFromRow)
}

func orderBinds(o *entity.Order) []interface{} {
	// An empty status would bind as NULL and trip the NOT NULL constraint;
	// new orders default to pending like the other backends.
	status := o.Status
	if status == "" {
		status = entity.OrderPending
	}
	return []interface{}{
		sql.Named("p_user_id", o.UserID),
		sql.Named("p_status", string(status)),
		sql.Named("p_total", o.Total),
		sql.Named("p_street", o.ShippingStreet),
		sql.Named("p_city", o.ShippingCity),
		sql.Named("p_state", o.ShippingState),
		sql.Named("p_zip", o.ShippingZipCode),
		sql.Named("p_payment_method", o.PaymentMethod),
		sql.Named("p_payment_status", o.PaymentStatus),
	}
}
