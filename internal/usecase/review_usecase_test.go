package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmstand/internal/domain/entity"
	"farmstand/pkg/errors"
)

func TestCreateReviewBoundsAndRatingRollup(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	reviews := NewReviewUseCase(f.store)

	_, err := reviews.CreateReview(ctx, f.buyer.ID, CreateReviewInput{ProductID: f.product.ID, Rating: 0})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	_, err = reviews.CreateReview(ctx, f.buyer.ID, CreateReviewInput{ProductID: f.product.ID, Rating: 6})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	_, err = reviews.CreateReview(ctx, f.buyer.ID, CreateReviewInput{ProductID: 999, Rating: 4})
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	created, err := reviews.CreateReview(ctx, f.buyer.ID, CreateReviewInput{
		ProductID: f.product.ID, Rating: 4, Title: "Fresh", Comment: "Crisp and green.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = reviews.CreateReview(ctx, f.buyer.ID, CreateReviewInput{ProductID: f.product.ID, Rating: 2})
	require.NoError(t, err)

	// The vendor average follows the review scores.
	vendor, err := f.store.GetVendor(ctx, f.product.VendorID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, vendor.Rating, 0.001)
}

func TestUpdateAndDeleteReviewOwnership(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	reviews := NewReviewUseCase(f.store)

	created, err := reviews.CreateReview(ctx, f.buyer.ID, CreateReviewInput{
		ProductID: f.product.ID, Rating: 5,
	})
	require.NoError(t, err)

	stranger, err := f.store.CreateUser(ctx, &entity.User{
		Username: "stranger", Email: "s@example.com", Password: "hash",
	})
	require.NoError(t, err)

	rating := 1
	_, err = reviews.UpdateReview(ctx, stranger.ID, created.ID, entity.ReviewUpdate{Rating: &rating})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	updated, err := reviews.UpdateReview(ctx, f.buyer.ID, created.ID, entity.ReviewUpdate{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Rating)

	err = reviews.DeleteReview(ctx, stranger.ID, created.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	require.NoError(t, reviews.DeleteReview(ctx, f.buyer.ID, created.ID))

	listed, err := reviews.ListByProduct(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
