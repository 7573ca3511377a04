package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
)

func newTestStore(t *testing.T) storage.Storage {
	t.Helper()
	s := New()
	require.NoError(t, s.Init(context.Background()))
	return s
}

func createUser(t *testing.T, s storage.Storage, username string) *entity.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), &entity.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
	})
	require.NoError(t, err)
	return u
}

func TestCreateUserRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := createUser(t, s, "rosa")
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUserUniqueness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createUser(t, s, "rosa")

	_, err := s.CreateUser(ctx, &entity.User{Username: "rosa", Email: "other@example.com"})
	assert.ErrorIs(t, err, storage.ErrConflict)

	_, err = s.CreateUser(ctx, &entity.User{Username: "other", Email: "rosa@example.com"})
	assert.ErrorIs(t, err, storage.ErrConflict)

	// Renaming onto an existing username must also fail.
	second := createUser(t, s, "anders")
	taken := "rosa"
	_, err = s.UpdateUser(ctx, second.ID, entity.UserUpdate{Username: &taken})
	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestGetUserByUniqueKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createUser(t, s, "rosa")
	token := "verify-123"
	reset := "reset-456"
	_, err := s.UpdateUser(ctx, u.ID, entity.UserUpdate{
		VerificationToken: &token,
		ResetToken:        &reset,
	})
	require.NoError(t, err)

	byName, err := s.GetUserByUsername(ctx, "rosa")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := s.GetUserByEmail(ctx, "rosa@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byToken, err := s.GetUserByVerificationToken(ctx, "verify-123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byToken.ID)

	byReset, err := s.GetUserByResetToken(ctx, "reset-456")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byReset.ID)

	_, err = s.GetUserByVerificationToken(ctx, "")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPartialUpdatePreservesUntouchedFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, &entity.User{
		Username:    "rosa",
		Email:       "rosa@example.com",
		Password:    "hash",
		FirstName:   "Rosa",
		LastName:    "Delgado",
		PhoneNumber: "608-555-0101",
		City:        "Stoughton",
	})
	require.NoError(t, err)

	city := "Madison"
	updated, err := s.UpdateUser(ctx, u.ID, entity.UserUpdate{City: &city})
	require.NoError(t, err)

	assert.Equal(t, "Madison", updated.City)
	assert.Equal(t, u.Username, updated.Username)
	assert.Equal(t, u.FirstName, updated.FirstName)
	assert.Equal(t, u.LastName, updated.LastName)
	assert.Equal(t, u.PhoneNumber, updated.PhoneNumber)
	assert.Equal(t, u.CreatedAt, updated.CreatedAt)
}

func TestUpdateMissingEntityReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	name := "x"

	_, err := s.UpdateUser(context.Background(), 99, entity.UserUpdate{FirstName: &name})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.UpdateProduct(context.Background(), 99, entity.ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteIdempotentOnAbsence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	deleted, err := s.DeleteUser(ctx, 99)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = s.DeleteProduct(ctx, 99)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = s.DeleteReview(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCategoryDeleteBlockedByProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat, err := s.CreateCategory(ctx, &entity.Category{Name: "Vegetables"})
	require.NoError(t, err)

	u := createUser(t, s, "grower")
	v, err := s.CreateVendor(ctx, &entity.Vendor{UserID: u.ID, BusinessName: "Green Acres"})
	require.NoError(t, err)

	_, err = s.CreateProduct(ctx, &entity.Product{Name: "Kale", Price: 3.99, CategoryID: cat.ID, VendorID: v.ID})
	require.NoError(t, err)

	_, err = s.DeleteCategory(ctx, cat.ID)
	assert.ErrorIs(t, err, storage.ErrConflict)

	empty, err := s.CreateCategory(ctx, &entity.Category{Name: "Empty"})
	require.NoError(t, err)
	deleted, err := s.DeleteCategory(ctx, empty.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestProductForeignKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, &entity.Product{Name: "Kale", CategoryID: 99})
	assert.ErrorIs(t, err, storage.ErrConflict)

	_, err = s.CreateProduct(ctx, &entity.Product{Name: "Kale", VendorID: 99})
	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestSearchProductsCaseInsensitiveSubstring(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createUser(t, s, "grower")
	v, err := s.CreateVendor(ctx, &entity.Vendor{UserID: u.ID, BusinessName: "Green Acres"})
	require.NoError(t, err)
	cat, err := s.CreateCategory(ctx, &entity.Category{Name: "Vegetables"})
	require.NoError(t, err)

	for _, name := range []string{"Curly Kale", "Lacinato Kale", "Carrots"} {
		_, err := s.CreateProduct(ctx, &entity.Product{Name: name, CategoryID: cat.ID, VendorID: v.ID})
		require.NoError(t, err)
	}
	_, err = s.CreateProduct(ctx, &entity.Product{
		Name:        "Mystery Green",
		Description: "Tastes a bit like KALE",
		CategoryID:  cat.ID,
		VendorID:    v.ID,
	})
	require.NoError(t, err)

	results, err := s.SearchProducts(ctx, "kale")
	require.NoError(t, err)
	require.Len(t, results, 3)
	// Creation order is preserved.
	assert.Equal(t, "Curly Kale", results[0].Name)
	assert.Equal(t, "Lacinato Kale", results[1].Name)
	assert.Equal(t, "Mystery Green", results[2].Name)

	results, err = s.SearchProducts(ctx, "carr")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Carrots", results[0].Name)
}

func TestVendorOnePerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createUser(t, s, "grower")
	_, err := s.CreateVendor(ctx, &entity.Vendor{UserID: u.ID, BusinessName: "Green Acres"})
	require.NoError(t, err)

	_, err = s.CreateVendor(ctx, &entity.Vendor{UserID: u.ID, BusinessName: "Second Stand"})
	assert.ErrorIs(t, err, storage.ErrConflict)

	_, err = s.CreateVendor(ctx, &entity.Vendor{UserID: 99, BusinessName: "Ghost Farm"})
	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestVendorTagsAreCopied(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createUser(t, s, "grower")
	tags := []string{"organic", "csa"}
	v, err := s.CreateVendor(ctx, &entity.Vendor{UserID: u.ID, BusinessName: "Green Acres", Tags: tags})
	require.NoError(t, err)

	tags[0] = "mutated"
	got, err := s.GetVendor(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"organic", "csa"}, got.Tags)
}

func TestReviewIdentityIndependentOfNumericIds(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createUser(t, s, "grower")
	v, err := s.CreateVendor(ctx, &entity.Vendor{UserID: u.ID, BusinessName: "Green Acres"})
	require.NoError(t, err)
	cat, err := s.CreateCategory(ctx, &entity.Category{Name: "Vegetables"})
	require.NoError(t, err)

	var productIDs []int64
	for i := 0; i < 10; i++ {
		p, err := s.CreateProduct(ctx, &entity.Product{
			Name:       fmt.Sprintf("Product %d", i),
			CategoryID: cat.ID,
			VendorID:   v.ID,
		})
		require.NoError(t, err)
		productIDs = append(productIDs, p.ID)
	}

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		r, err := s.CreateReview(ctx, &entity.Review{
			ProductID: productIDs[i],
			UserID:    u.ID,
			Rating:    (i % 5) + 1,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, r.ID)
		assert.False(t, seen[r.ID])
		seen[r.ID] = true
	}

	reviews, err := s.ListReviewsByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 10)
}

func TestReviewUpdateAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r, err := s.CreateReview(ctx, &entity.Review{ProductID: 1, UserID: 1, Rating: 4, Comment: "good"})
	require.NoError(t, err)

	rating := 5
	updated, err := s.UpdateReview(ctx, r.ID, entity.ReviewUpdate{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "good", updated.Comment)
	assert.False(t, updated.UpdatedAt.Before(r.UpdatedAt))

	deleted, err := s.DeleteReview(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.UpdateReview(ctx, r.ID, entity.ReviewUpdate{Rating: &rating})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOrderItemPriceFrozenAtCreation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	buyer := createUser(t, s, "buyer")
	grower := createUser(t, s, "grower")
	v, err := s.CreateVendor(ctx, &entity.Vendor{UserID: grower.ID, BusinessName: "Green Acres"})
	require.NoError(t, err)
	cat, err := s.CreateCategory(ctx, &entity.Category{Name: "Vegetables"})
	require.NoError(t, err)
	p, err := s.CreateProduct(ctx, &entity.Product{Name: "Kale", Price: 3.99, Stock: 50, CategoryID: cat.ID, VendorID: v.ID})
	require.NoError(t, err)

	order, err := s.CreateOrder(ctx, &entity.Order{UserID: buyer.ID}, []*entity.OrderItem{
		{ProductID: p.ID, Quantity: 2, Price: p.Price},
	})
	require.NoError(t, err)

	newPrice := 9.99
	_, err = s.UpdateProduct(ctx, p.ID, entity.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)

	items, err := s.GetOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3.99, items[0].Price)
}

func TestOrderCreateRejectsBadItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	buyer := createUser(t, s, "buyer")

	_, err := s.CreateOrder(ctx, &entity.Order{UserID: buyer.ID}, []*entity.OrderItem{
		{ProductID: 99, Quantity: 1},
	})
	assert.ErrorIs(t, err, storage.ErrConflict)

	// Nothing was persisted for the failed order.
	orders, err := s.ListOrdersByUser(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

// The end-to-end storefront scenario: category, vendor, product, order and a
// single line item, with stock untouched by order creation.
func TestStorefrontScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat, err := s.CreateCategory(ctx, &entity.Category{Name: "Vegetables"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cat.ID)

	grower := createUser(t, s, "grower")
	v, err := s.CreateVendor(ctx, &entity.Vendor{UserID: grower.ID, BusinessName: "Green Acres"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.ID)

	p, err := s.CreateProduct(ctx, &entity.Product{
		Name: "Kale", Price: 3.99, Stock: 50, CategoryID: cat.ID, VendorID: v.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	buyer := createUser(t, s, "buyer")
	order, err := s.CreateOrder(ctx, &entity.Order{UserID: buyer.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), order.ID)
	assert.Equal(t, entity.OrderPending, order.Status)

	_, err = s.CreateOrderItem(ctx, &entity.OrderItem{
		OrderID: order.ID, ProductID: p.ID, Quantity: 2, Price: 3.99,
	})
	require.NoError(t, err)

	items, err := s.GetOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 3.99, items[0].Price)

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Stock)
}

func TestSeed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, s))

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 4)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 5)

	vendors, err := s.ListVendors(ctx)
	require.NoError(t, err)
	require.Len(t, vendors, 2)

	byVendor, err := s.ListProductsByVendor(ctx, vendors[1].ID)
	require.NoError(t, err)
	assert.Len(t, byVendor, 2)
}
