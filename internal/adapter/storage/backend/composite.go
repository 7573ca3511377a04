// Package backend selects and assembles the storage implementation the
// application runs on. It owns the composite that splits reviews off to a
// document store and the resilience wrapper applied to every backend.
package backend

import (
	"context"
	"errors"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
)

// ReviewBackend is a review store with its own lifecycle, such as the
// MongoDB adapter.
type ReviewBackend interface {
	Init(ctx context.Context) error
	Close() error
	storage.ReviewStorage
}

// Composite serves reviews from a dedicated document store and everything
// else from the primary backend. Both sides must come up for Init to
// succeed; a half-working hybrid would hide failures until first use.
type Composite struct {
	storage.Storage
	reviews ReviewBackend
}

func NewComposite(primary storage.Storage, reviews ReviewBackend) *Composite {
	return &Composite{Storage: primary, reviews: reviews}
}

func (c *Composite) Init(ctx context.Context) error {
	if err := c.Storage.Init(ctx); err != nil {
		return err
	}
	if err := c.reviews.Init(ctx); err != nil {
		c.Storage.Close()
		return err
	}
	return nil
}

func (c *Composite) Close() error {
	return errors.Join(c.reviews.Close(), c.Storage.Close())
}

func (c *Composite) ListReviewsByProduct(ctx context.Context, productID int64) ([]*entity.Review, error) {
	return c.reviews.ListReviewsByProduct(ctx, productID)
}

func (c *Composite) ListReviewsByUser(ctx context.Context, userID int64) ([]*entity.Review, error) {
	return c.reviews.ListReviewsByUser(ctx, userID)
}

func (c *Composite) CreateReview(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	return c.reviews.CreateReview(ctx, review)
}

func (c *Composite) UpdateReview(ctx context.Context, id string, update entity.ReviewUpdate) (*entity.Review, error) {
	return c.reviews.UpdateReview(ctx, id, update)
}

func (c *Composite) DeleteReview(ctx context.Context, id string) (bool, error) {
	return c.reviews.DeleteReview(ctx, id)
}

var _ storage.Storage = (*Composite)(nil)
