// Package storage defines the persistence capability interface consumed by
// the rest of the application.
//
// Every backend implements Storage with identical externally observable
// behavior: gets return ErrNotFound for absence, creates return the fully
// populated entity, updates are a shallow merge of the non-nil update fields,
// and deletes report whether a record was removed. Constructors in the
// adapter packages return this interface, never their concrete type, so
// backends stay interchangeable.
package storage

import (
	"context"

	"farmstand/internal/domain/entity"
)

// ReviewStorage is the subset of operations that may live in a different
// engine than the rest of the schema. The composite backend routes exactly
// these methods to a document store.
type ReviewStorage interface {
	ListReviewsByProduct(ctx context.Context, productID int64) ([]*entity.Review, error)
	ListReviewsByUser(ctx context.Context, userID int64) ([]*entity.Review, error)
	CreateReview(ctx context.Context, review *entity.Review) (*entity.Review, error)
	UpdateReview(ctx context.Context, id string, update entity.ReviewUpdate) (*entity.Review, error)
	DeleteReview(ctx context.Context, id string) (bool, error)
}

// Storage is the full persistence contract. One implementation is selected
// at startup; handlers never see which backend answered.
type Storage interface {
	// Init establishes connections and runs any one-time setup (schema
	// migration, index creation). It must be called once before the first
	// operation and reports failure instead of panicking.
	Init(ctx context.Context) error
	Close() error

	// Users
	GetUser(ctx context.Context, id int64) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByVerificationToken(ctx context.Context, token string) (*entity.User, error)
	GetUserByResetToken(ctx context.Context, token string) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdateUser(ctx context.Context, id int64, update entity.UserUpdate) (*entity.User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)

	// Categories
	GetCategory(ctx context.Context, id int64) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id int64, update entity.CategoryUpdate) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)

	// Products
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error)
	ListProductsByVendor(ctx context.Context, vendorID int64) ([]*entity.Product, error)
	// SearchProducts matches the query case-insensitively as a substring of
	// the product name or description.
	SearchProducts(ctx context.Context, query string) ([]*entity.Product, error)
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, update entity.ProductUpdate) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)

	// Vendors
	GetVendor(ctx context.Context, id int64) (*entity.Vendor, error)
	GetVendorByUser(ctx context.Context, userID int64) (*entity.Vendor, error)
	ListVendors(ctx context.Context) ([]*entity.Vendor, error)
	CreateVendor(ctx context.Context, vendor *entity.Vendor) (*entity.Vendor, error)
	UpdateVendor(ctx context.Context, id int64, update entity.VendorUpdate) (*entity.Vendor, error)
	DeleteVendor(ctx context.Context, id int64) (bool, error)

	// Orders. CreateOrder persists the order and its items in a single
	// transaction scope: partial failure is total failure.
	GetOrder(ctx context.Context, id int64) (*entity.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]*entity.Order, error)
	CreateOrder(ctx context.Context, order *entity.Order, items []*entity.OrderItem) (*entity.Order, error)
	UpdateOrder(ctx context.Context, id int64, update entity.OrderUpdate) (*entity.Order, error)
	CreateOrderItem(ctx context.Context, item *entity.OrderItem) (*entity.OrderItem, error)
	GetOrderItems(ctx context.Context, orderID int64) ([]*entity.OrderItem, error)

	ReviewStorage
}
