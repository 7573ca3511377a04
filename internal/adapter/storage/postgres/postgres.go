// Package postgres implements the storage contract on PostgreSQL through
// GORM. All entities live here except reviews, which fall back to a bounded
// in-memory store so this backend works standalone when no document store is
// configured.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
)

type Store struct {
	dsn     string
	timeout time.Duration
	db      *gorm.DB

	reviews *reviewFallback
}

func New(dsn string, timeout time.Duration) storage.Storage {
	return &Store{
		dsn:     dsn,
		timeout: timeout,
		reviews: newReviewFallback(),
	}
}

func (s *Store) Init(ctx context.Context) error {
	if s.dsn == "" {
		return fmt.Errorf("postgres: DATABASE_URL is not set")
	}

	db, err := gorm.Open(pgdriver.Open(s.dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("postgres: open: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&userModel{},
		&categoryModel{},
		&vendorModel{},
		&productModel{},
		&orderModel{},
		&orderItemModel{},
	); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	if s.db == nil {
		return nil, storage.ErrUnavailable
	}
	return s.db.WithContext(ctx), nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return storage.ErrConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
}

// Users

func (s *Store) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	return s.getUserWhere(ctx, "id = ?", id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.getUserWhere(ctx, "username = ?", username)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.getUserWhere(ctx, "email = ?", email)
}

func (s *Store) GetUserByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, storage.ErrNotFound
	}
	return s.getUserWhere(ctx, "verification_token = ?", token)
}

func (s *Store) GetUserByResetToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, storage.ErrNotFound
	}
	return s.getUserWhere(ctx, "reset_token = ?", token)
}

func (s *Store) getUserWhere(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var m userModel
	if err := db.Where(query, arg).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toUserEntity(&m), nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*entity.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var models []userModel
	if err := db.Order("id").Find(&models).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]*entity.User, 0, len(models))
	for i := range models {
		out = append(out, toUserEntity(&models[i]))
	}
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	m := fromUserEntity(user)
	m.ID = 0
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if err := db.Create(m).Error; err != nil {
		return nil, translate(err)
	}
	return toUserEntity(m), nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, update entity.UserUpdate) (*entity.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	cols := userUpdateColumns(update)
	if len(cols) > 0 {
		res := db.Model(&userModel{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, storage.ErrNotFound
		}
	}
	return s.getUserWhere(ctx, "id = ?", id)
}

func (s *Store) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, &userModel{}, id)
}

// Categories

func (s *Store) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var m categoryModel
	if err := db.First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toCategoryEntity(&m), nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var models []categoryModel
	if err := db.Order("id").Find(&models).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]*entity.Category, 0, len(models))
	for i := range models {
		out = append(out, toCategoryEntity(&models[i]))
	}
	return out, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	m := fromCategoryEntity(category)
	m.ID = 0
	if err := db.Create(m).Error; err != nil {
		return nil, translate(err)
	}
	return toCategoryEntity(m), nil
}

func (s *Store) UpdateCategory(ctx context.Context, id int64, update entity.CategoryUpdate) (*entity.Category, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	cols := categoryUpdateColumns(update)
	if len(cols) > 0 {
		res := db.Model(&categoryModel{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, storage.ErrNotFound
		}
	}
	return s.GetCategory(ctx, id)
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, &categoryModel{}, id)
}

// Products

func (s *Store) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var m productModel
	if err := db.First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toProductEntity(&m), nil
}

func (s *Store) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return s.listProductsWhere(ctx, "", nil)
}

func (s *Store) ListProductsByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	return s.listProductsWhere(ctx, "category_id = ?", categoryID)
}

func (s *Store) ListProductsByVendor(ctx context.Context, vendorID int64) ([]*entity.Product, error) {
	return s.listProductsWhere(ctx, "vendor_id = ?", vendorID)
}

func (s *Store) listProductsWhere(ctx context.Context, query string, arg interface{}) ([]*entity.Product, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	tx := db.Order("id")
	if query != "" {
		tx = tx.Where(query, arg)
	}
	var models []productModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]*entity.Product, 0, len(models))
	for i := range models {
		out = append(out, toProductEntity(&models[i]))
	}
	return out, nil
}

func (s *Store) SearchProducts(ctx context.Context, query string) ([]*entity.Product, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	pattern := "%" + query + "%"
	var models []productModel
	err = db.Order("id").
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Find(&models).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]*entity.Product, 0, len(models))
	for i := range models {
		out = append(out, toProductEntity(&models[i]))
	}
	return out, nil
}

func (s *Store) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	m := fromProductEntity(product)
	m.ID = 0
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if err := db.Omit("Category", "Vendor").Create(m).Error; err != nil {
		return nil, translate(err)
	}
	return toProductEntity(m), nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, update entity.ProductUpdate) (*entity.Product, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	cols := productUpdateColumns(update)
	if len(cols) > 0 {
		res := db.Model(&productModel{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, storage.ErrNotFound
		}
	}
	return s.GetProduct(ctx, id)
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, &productModel{}, id)
}

// Vendors

func (s *Store) GetVendor(ctx context.Context, id int64) (*entity.Vendor, error) {
	return s.getVendorWhere(ctx, "id = ?", id)
}

func (s *Store) GetVendorByUser(ctx context.Context, userID int64) (*entity.Vendor, error) {
	return s.getVendorWhere(ctx, "user_id = ?", userID)
}

func (s *Store) getVendorWhere(ctx context.Context, query string, arg interface{}) (*entity.Vendor, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var m vendorModel
	if err := db.Where(query, arg).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toVendorEntity(&m), nil
}

func (s *Store) ListVendors(ctx context.Context) ([]*entity.Vendor, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var models []vendorModel
	if err := db.Order("id").Find(&models).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]*entity.Vendor, 0, len(models))
	for i := range models {
		out = append(out, toVendorEntity(&models[i]))
	}
	return out, nil
}

func (s *Store) CreateVendor(ctx context.Context, vendor *entity.Vendor) (*entity.Vendor, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	m := fromVendorEntity(vendor)
	m.ID = 0
	if err := db.Omit("User").Create(m).Error; err != nil {
		return nil, translate(err)
	}
	return toVendorEntity(m), nil
}

func (s *Store) UpdateVendor(ctx context.Context, id int64, update entity.VendorUpdate) (*entity.Vendor, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	cols := vendorUpdateColumns(update)
	if len(cols) > 0 {
		res := db.Model(&vendorModel{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, storage.ErrNotFound
		}
	}
	return s.GetVendor(ctx, id)
}

func (s *Store) DeleteVendor(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, &vendorModel{}, id)
}

// Orders

func (s *Store) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var m orderModel
	if err := db.First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toOrderEntity(&m), nil
}

func (s *Store) ListOrdersByUser(ctx context.Context, userID int64) ([]*entity.Order, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var models []orderModel
	if err := db.Order("id").Where("user_id = ?", userID).Find(&models).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]*entity.Order, 0, len(models))
	for i := range models {
		out = append(out, toOrderEntity(&models[i]))
	}
	return out, nil
}

// CreateOrder persists the order header and all items in one transaction so
// a failed item rolls back the whole order.
func (s *Store) CreateOrder(ctx context.Context, order *entity.Order, items []*entity.OrderItem) (*entity.Order, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	m := fromOrderEntity(order)
	m.ID = 0
	if m.Status == "" {
		m.Status = string(entity.OrderPending)
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User").Create(m).Error; err != nil {
			return err
		}
		for _, item := range items {
			if item.Quantity <= 0 {
				return gorm.ErrCheckConstraintViolated
			}
			im := &orderItemModel{
				OrderID:   m.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			}
			if err := tx.Omit("Order", "Product").Create(im).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrCheckConstraintViolated) {
			return nil, storage.ErrConflict
		}
		return nil, translate(err)
	}
	return toOrderEntity(m), nil
}

func (s *Store) UpdateOrder(ctx context.Context, id int64, update entity.OrderUpdate) (*entity.Order, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	cols := orderUpdateColumns(update)
	if len(cols) > 0 {
		res := db.Model(&orderModel{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, storage.ErrNotFound
		}
	}
	return s.GetOrder(ctx, id)
}

func (s *Store) CreateOrderItem(ctx context.Context, item *entity.OrderItem) (*entity.OrderItem, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	if item.Quantity <= 0 {
		return nil, storage.ErrConflict
	}
	m := &orderItemModel{
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Price:     item.Price,
	}
	if err := db.Omit("Order", "Product").Create(m).Error; err != nil {
		return nil, translate(err)
	}
	return toOrderItemEntity(m), nil
}

func (s *Store) GetOrderItems(ctx context.Context, orderID int64) ([]*entity.OrderItem, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var models []orderItemModel
	if err := db.Order("id").Where("order_id = ?", orderID).Find(&models).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]*entity.OrderItem, 0, len(models))
	for i := range models {
		out = append(out, toOrderItemEntity(&models[i]))
	}
	return out, nil
}

func (s *Store) deleteByID(ctx context.Context, model interface{}, id int64) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn(ctx)
	if err != nil {
		return false, err
	}

	res := db.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}
