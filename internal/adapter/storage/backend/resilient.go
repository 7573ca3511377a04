package backend

import (
	"context"
	"errors"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
	"farmstand/pkg/logger"
)

// Resilient degrades list reads to empty results when the backend is
// unreachable, so browse pages render instead of erroring while the store is
// down. Single-entity reads and all writes propagate the failure untouched;
// pretending a write landed or an entity exists would corrupt caller logic.
type Resilient struct {
	storage.Storage
}

func NewResilient(inner storage.Storage) *Resilient {
	return &Resilient{Storage: inner}
}

func degradeList[T any](list []*T, err error, op string) ([]*T, error) {
	if err == nil {
		return list, nil
	}
	if errors.Is(err, storage.ErrUnavailable) {
		logger.Warn("storage unavailable, serving empty %s: %v", op, err)
		return []*T{}, nil
	}
	return nil, err
}

func (r *Resilient) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := r.Storage.ListUsers(ctx)
	return degradeList(users, err, "user list")
}

func (r *Resilient) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := r.Storage.ListCategories(ctx)
	return degradeList(categories, err, "category list")
}

func (r *Resilient) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := r.Storage.ListProducts(ctx)
	return degradeList(products, err, "product list")
}

func (r *Resilient) ListProductsByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	products, err := r.Storage.ListProductsByCategory(ctx, categoryID)
	return degradeList(products, err, "product list")
}

func (r *Resilient) ListProductsByVendor(ctx context.Context, vendorID int64) ([]*entity.Product, error) {
	products, err := r.Storage.ListProductsByVendor(ctx, vendorID)
	return degradeList(products, err, "product list")
}

func (r *Resilient) SearchProducts(ctx context.Context, query string) ([]*entity.Product, error) {
	products, err := r.Storage.SearchProducts(ctx, query)
	return degradeList(products, err, "product search")
}

func (r *Resilient) ListVendors(ctx context.Context) ([]*entity.Vendor, error) {
	vendors, err := r.Storage.ListVendors(ctx)
	return degradeList(vendors, err, "vendor list")
}

func (r *Resilient) ListOrdersByUser(ctx context.Context, userID int64) ([]*entity.Order, error) {
	orders, err := r.Storage.ListOrdersByUser(ctx, userID)
	return degradeList(orders, err, "order list")
}

func (r *Resilient) GetOrderItems(ctx context.Context, orderID int64) ([]*entity.OrderItem, error) {
	items, err := r.Storage.GetOrderItems(ctx, orderID)
	return degradeList(items, err, "order item list")
}

func (r *Resilient) ListReviewsByProduct(ctx context.Context, productID int64) ([]*entity.Review, error) {
	reviews, err := r.Storage.ListReviewsByProduct(ctx, productID)
	return degradeList(reviews, err, "review list")
}

func (r *Resilient) ListReviewsByUser(ctx context.Context, userID int64) ([]*entity.Review, error) {
	reviews, err := r.Storage.ListReviewsByUser(ctx, userID)
	return degradeList(reviews, err, "review list")
}

var _ storage.Storage = (*Resilient)(nil)
