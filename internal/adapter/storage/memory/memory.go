// Package memory implements the storage contract with plain maps. It is the
// default backend and the behavioral baseline the other backends are tested
// against. A single coarse mutex guards every operation; the maps are not
// safe for concurrent mutation without it.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
)

type Store struct {
	mu sync.Mutex

	users      map[int64]*entity.User
	categories map[int64]*entity.Category
	products   map[int64]*entity.Product
	vendors    map[int64]*entity.Vendor
	orders     map[int64]*entity.Order
	orderItems map[int64]*entity.OrderItem
	reviews    map[string]*entity.Review

	userSeq     int64
	categorySeq int64
	productSeq  int64
	vendorSeq   int64
	orderSeq    int64
	itemSeq     int64
}

func New() storage.Storage {
	return newStore()
}

func newStore() *Store {
	return &Store{
		users:      make(map[int64]*entity.User),
		categories: make(map[int64]*entity.Category),
		products:   make(map[int64]*entity.Product),
		vendors:    make(map[int64]*entity.Vendor),
		orders:     make(map[int64]*entity.Order),
		orderItems: make(map[int64]*entity.OrderItem),
		reviews:    make(map[string]*entity.Review),
	}
}

func (s *Store) Init(ctx context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// Users

func (s *Store) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findUser(func(u *entity.User) bool { return u.Username == username })
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findUser(func(u *entity.User) bool { return u.Email == email })
}

func (s *Store) GetUserByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, storage.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findUser(func(u *entity.User) bool { return u.VerificationToken == token })
}

func (s *Store) GetUserByResetToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, storage.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findUser(func(u *entity.User) bool { return u.ResetToken == token })
}

func (s *Store) findUser(match func(*entity.User) bool) (*entity.User, error) {
	for _, id := range sortedKeys(s.users) {
		if u := s.users[id]; match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) ListUsers(ctx context.Context) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.User, 0, len(s.users))
	for _, id := range sortedKeys(s.users) {
		out = append(out, cloneUser(s.users[id]))
	}
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return nil, storage.ErrConflict
		}
	}

	u := cloneUser(user)
	s.userSeq++
	u.ID = s.userSeq
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = u
	return cloneUser(u), nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, update entity.UserUpdate) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	for _, existing := range s.users {
		if existing.ID == id {
			continue
		}
		if update.Username != nil && existing.Username == *update.Username {
			return nil, storage.ErrConflict
		}
		if update.Email != nil && existing.Email == *update.Email {
			return nil, storage.ErrConflict
		}
	}

	update.Apply(u)
	return cloneUser(u), nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

// Categories

func (s *Store) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Category, 0, len(s.categories))
	for _, id := range sortedKeys(s.categories) {
		cp := *s.categories[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *category
	s.categorySeq++
	c.ID = s.categorySeq
	s.categories[c.ID] = &c
	cp := c
	return &cp, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id int64, update entity.CategoryUpdate) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	update.Apply(c)
	cp := *c
	return &cp, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	for _, p := range s.products {
		if p.CategoryID == id {
			return false, storage.ErrConflict
		}
	}
	delete(s.categories, id)
	return true, nil
}

// Products

func (s *Store) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterProducts(func(*entity.Product) bool { return true }), nil
}

func (s *Store) ListProductsByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterProducts(func(p *entity.Product) bool { return p.CategoryID == categoryID }), nil
}

func (s *Store) ListProductsByVendor(ctx context.Context, vendorID int64) ([]*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterProducts(func(p *entity.Product) bool { return p.VendorID == vendorID }), nil
}

func (s *Store) SearchProducts(ctx context.Context, query string) ([]*entity.Product, error) {
	q := strings.ToLower(query)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterProducts(func(p *entity.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	}), nil
}

func (s *Store) filterProducts(match func(*entity.Product) bool) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, id := range sortedKeys(s.products) {
		if p := s.products[id]; match(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

func (s *Store) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.CategoryID != 0 {
		if _, ok := s.categories[product.CategoryID]; !ok {
			return nil, storage.ErrConflict
		}
	}
	if product.VendorID != 0 {
		if _, ok := s.vendors[product.VendorID]; !ok {
			return nil, storage.ErrConflict
		}
	}

	p := *product
	s.productSeq++
	p.ID = s.productSeq
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.products[p.ID] = &p
	cp := p
	return &cp, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, update entity.ProductUpdate) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if update.CategoryID != nil && *update.CategoryID != 0 {
		if _, ok := s.categories[*update.CategoryID]; !ok {
			return nil, storage.ErrConflict
		}
	}
	if update.VendorID != nil && *update.VendorID != 0 {
		if _, ok := s.vendors[*update.VendorID]; !ok {
			return nil, storage.ErrConflict
		}
	}
	update.Apply(p)
	cp := *p
	return &cp, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

// Vendors

func (s *Store) GetVendor(ctx context.Context, id int64) (*entity.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vendors[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneVendor(v), nil
}

func (s *Store) GetVendorByUser(ctx context.Context, userID int64) (*entity.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range sortedKeys(s.vendors) {
		if v := s.vendors[id]; v.UserID == userID {
			return cloneVendor(v), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) ListVendors(ctx context.Context) ([]*entity.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Vendor, 0, len(s.vendors))
	for _, id := range sortedKeys(s.vendors) {
		out = append(out, cloneVendor(s.vendors[id]))
	}
	return out, nil
}

func (s *Store) CreateVendor(ctx context.Context, vendor *entity.Vendor) (*entity.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[vendor.UserID]; !ok {
		return nil, storage.ErrConflict
	}
	for _, existing := range s.vendors {
		if existing.UserID == vendor.UserID {
			return nil, storage.ErrConflict
		}
	}

	v := cloneVendor(vendor)
	s.vendorSeq++
	v.ID = s.vendorSeq
	s.vendors[v.ID] = v
	return cloneVendor(v), nil
}

func (s *Store) UpdateVendor(ctx context.Context, id int64, update entity.VendorUpdate) (*entity.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vendors[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	update.Apply(v)
	return cloneVendor(v), nil
}

func (s *Store) DeleteVendor(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vendors[id]; !ok {
		return false, nil
	}
	delete(s.vendors, id)
	return true, nil
}

// Orders

func (s *Store) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *Store) ListOrdersByUser(ctx context.Context, userID int64) ([]*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Order, 0)
	for _, id := range sortedKeys(s.orders) {
		if o := s.orders[id]; o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) CreateOrder(ctx context.Context, order *entity.Order, items []*entity.OrderItem) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[order.UserID]; !ok {
		return nil, storage.ErrConflict
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, storage.ErrConflict
		}
		if _, ok := s.products[item.ProductID]; !ok {
			return nil, storage.ErrConflict
		}
	}

	o := *order
	s.orderSeq++
	o.ID = s.orderSeq
	if o.Status == "" {
		o.Status = entity.OrderPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	s.orders[o.ID] = &o

	for _, item := range items {
		it := *item
		s.itemSeq++
		it.ID = s.itemSeq
		it.OrderID = o.ID
		s.orderItems[it.ID] = &it
	}

	cp := o
	return &cp, nil
}

func (s *Store) UpdateOrder(ctx context.Context, id int64, update entity.OrderUpdate) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	update.Apply(o)
	cp := *o
	return &cp, nil
}

func (s *Store) CreateOrderItem(ctx context.Context, item *entity.OrderItem) (*entity.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Quantity <= 0 {
		return nil, storage.ErrConflict
	}
	if _, ok := s.orders[item.OrderID]; !ok {
		return nil, storage.ErrConflict
	}
	if _, ok := s.products[item.ProductID]; !ok {
		return nil, storage.ErrConflict
	}

	it := *item
	s.itemSeq++
	it.ID = s.itemSeq
	s.orderItems[it.ID] = &it
	cp := it
	return &cp, nil
}

func (s *Store) GetOrderItems(ctx context.Context, orderID int64) ([]*entity.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.OrderItem, 0)
	for _, id := range sortedKeys(s.orderItems) {
		if it := s.orderItems[id]; it.OrderID == orderID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Reviews

func (s *Store) ListReviewsByProduct(ctx context.Context, productID int64) ([]*entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterReviews(func(r *entity.Review) bool { return r.ProductID == productID }), nil
}

func (s *Store) ListReviewsByUser(ctx context.Context, userID int64) ([]*entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterReviews(func(r *entity.Review) bool { return r.UserID == userID }), nil
}

func (s *Store) filterReviews(match func(*entity.Review) bool) []*entity.Review {
	out := make([]*entity.Review, 0)
	for _, r := range s.reviews {
		if match(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Store) CreateReview(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := *review
	if r.ID == "" {
		r.ID = uuid.New().String()
	} else if _, exists := s.reviews[r.ID]; exists {
		return nil, storage.ErrConflict
	}
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = r.CreatedAt
	s.reviews[r.ID] = &r
	cp := r
	return &cp, nil
}

func (s *Store) UpdateReview(ctx context.Context, id string, update entity.ReviewUpdate) (*entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	update.Apply(r)
	r.UpdatedAt = time.Now()
	cp := *r
	return &cp, nil
}

func (s *Store) DeleteReview(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return false, nil
	}
	delete(s.reviews, id)
	return true, nil
}

// sortedKeys returns map keys ascending. Ids are assigned monotonically, so
// ascending id order is insertion order.
func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	if u.ResetTokenExpiry != nil {
		expiry := *u.ResetTokenExpiry
		cp.ResetTokenExpiry = &expiry
	}
	return &cp
}

func cloneVendor(v *entity.Vendor) *entity.Vendor {
	cp := *v
	if v.Tags != nil {
		cp.Tags = make([]string, len(v.Tags))
		copy(cp.Tags, v.Tags)
	}
	return &cp
}
