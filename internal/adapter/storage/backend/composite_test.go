package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmstand/internal/adapter/storage/memory"
	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
	"farmstand/pkg/config"
)

// fakeReviews records calls so tests can assert the composite routed to the
// document side instead of the primary.
type fakeReviews struct {
	initErr error
	inited  bool
	closed  bool
	created []*entity.Review
}

func (f *fakeReviews) Init(ctx context.Context) error {
	f.inited = true
	return f.initErr
}

func (f *fakeReviews) Close() error {
	f.closed = true
	return nil
}

func (f *fakeReviews) ListReviewsByProduct(ctx context.Context, productID int64) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, r := range f.created {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviews) ListReviewsByUser(ctx context.Context, userID int64) ([]*entity.Review, error) {
	return nil, nil
}

func (f *fakeReviews) CreateReview(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	f.created = append(f.created, review)
	return review, nil
}

func (f *fakeReviews) UpdateReview(ctx context.Context, id string, update entity.ReviewUpdate) (*entity.Review, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeReviews) DeleteReview(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func TestCompositeRoutesReviews(t *testing.T) {
	ctx := context.Background()
	reviews := &fakeReviews{}
	store := NewComposite(memory.New(), reviews)
	require.NoError(t, store.Init(ctx))
	assert.True(t, reviews.inited)

	_, err := store.CreateReview(ctx, &entity.Review{ProductID: 1, UserID: 2, Rating: 5})
	require.NoError(t, err)
	require.Len(t, reviews.created, 1)

	listed, err := store.ListReviewsByProduct(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	// Non-review operations still hit the primary.
	category, err := store.CreateCategory(ctx, &entity.Category{Name: "Dairy"})
	require.NoError(t, err)
	assert.NotZero(t, category.ID)

	require.NoError(t, store.Close())
	assert.True(t, reviews.closed)
}

func TestCompositeInitFailsWhenReviewsFail(t *testing.T) {
	reviews := &fakeReviews{initErr: errors.New("mongo down")}
	store := NewComposite(memory.New(), reviews)
	err := store.Init(context.Background())
	require.Error(t, err)
}

// downStore fails every list with ErrUnavailable. Only the methods the test
// calls are overridden; the embedded interface stays nil.
type downStore struct {
	storage.Storage
}

func (downStore) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return nil, storage.ErrUnavailable
}

func (downStore) SearchProducts(ctx context.Context, query string) ([]*entity.Product, error) {
	return nil, storage.ErrUnavailable
}

func (downStore) GetOrderItems(ctx context.Context, orderID int64) ([]*entity.OrderItem, error) {
	return nil, storage.ErrUnavailable
}

func (downStore) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	return nil, storage.ErrUnavailable
}

func (downStore) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	return nil, storage.ErrUnavailable
}

func TestResilientDegradesListsOnly(t *testing.T) {
	ctx := context.Background()
	store := NewResilient(downStore{})

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	products, err = store.SearchProducts(ctx, "kale")
	require.NoError(t, err)
	assert.Empty(t, products)

	// Order item reads are list-shaped and degrade like the other lists.
	items, err := store.GetOrderItems(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = store.GetProduct(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrUnavailable)

	_, err = store.CreateProduct(ctx, &entity.Product{Name: "Kale"})
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}

func TestResilientPassesThroughRealErrors(t *testing.T) {
	ctx := context.Background()
	store := NewResilient(memory.New())
	require.NoError(t, store.Init(ctx))

	_, err := store.GetUser(ctx, 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestFactorySelection(t *testing.T) {
	store, err := New(&config.Config{StorageBackend: config.BackendMemory})
	require.NoError(t, err)
	require.NoError(t, store.Init(context.Background()))

	_, err = New(&config.Config{StorageBackend: "cassandra"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cassandra")
}
