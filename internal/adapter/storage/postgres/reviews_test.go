package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
)

// The review fallback needs no database, so it gets direct coverage here.

func newFallbackStore() *Store {
	return &Store{reviews: newReviewFallback(), timeout: time.Second}
}

func TestReviewFallbackCreateAndList(t *testing.T) {
	s := newFallbackStore()
	ctx := context.Background()

	first, err := s.CreateReview(ctx, &entity.Review{ProductID: 1, UserID: 7, Rating: 5, Comment: "crisp"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	_, err = s.CreateReview(ctx, &entity.Review{ProductID: 1, UserID: 8, Rating: 3})
	require.NoError(t, err)
	_, err = s.CreateReview(ctx, &entity.Review{ProductID: 2, UserID: 7, Rating: 4})
	require.NoError(t, err)

	byProduct, err := s.ListReviewsByProduct(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byProduct, 2)

	byUser, err := s.ListReviewsByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)
}

func TestReviewFallbackDuplicateID(t *testing.T) {
	s := newFallbackStore()
	ctx := context.Background()

	r, err := s.CreateReview(ctx, &entity.Review{ID: "fixed", ProductID: 1, UserID: 1, Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, "fixed", r.ID)

	_, err = s.CreateReview(ctx, &entity.Review{ID: "fixed", ProductID: 2, UserID: 2, Rating: 2})
	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestReviewFallbackPartialUpdate(t *testing.T) {
	s := newFallbackStore()
	ctx := context.Background()

	r, err := s.CreateReview(ctx, &entity.Review{ProductID: 1, UserID: 1, Rating: 2, Title: "meh", Comment: "wilted"})
	require.NoError(t, err)

	rating := 4
	updated, err := s.UpdateReview(ctx, r.ID, entity.ReviewUpdate{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "meh", updated.Title)
	assert.Equal(t, "wilted", updated.Comment)

	_, err = s.UpdateReview(ctx, "missing", entity.ReviewUpdate{Rating: &rating})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReviewFallbackDelete(t *testing.T) {
	s := newFallbackStore()
	ctx := context.Background()

	r, err := s.CreateReview(ctx, &entity.Review{ProductID: 1, UserID: 1, Rating: 5})
	require.NoError(t, err)

	deleted, err := s.DeleteReview(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteReview(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
