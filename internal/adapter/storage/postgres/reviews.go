package postgres

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
)

// reviewFallback keeps reviews in process memory. The relational backend is
// a valid, if limited, review store on its own: deployments that want
// durable reviews select the hybrid backend instead.
type reviewFallback struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review
}

func newReviewFallback() *reviewFallback {
	return &reviewFallback{reviews: make(map[string]*entity.Review)}
}

func (f *reviewFallback) listBy(match func(*entity.Review) bool) []*entity.Review {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*entity.Review, 0)
	for _, r := range f.reviews {
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

func (f *reviewFallback) create(review *entity.Review) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := *review
	if r.ID == "" {
		r.ID = uuid.New().String()
	} else if _, exists := f.reviews[r.ID]; exists {
		return nil, storage.ErrConflict
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.UpdatedAt = r.CreatedAt
	f.reviews[r.ID] = &r
	cp := r
	return &cp, nil
}

func (f *reviewFallback) update(id string, update entity.ReviewUpdate) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reviews[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	update.Apply(r)
	r.UpdatedAt = time.Now()
	cp := *r
	return &cp, nil
}

func (f *reviewFallback) delete(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.reviews[id]; !ok {
		return false
	}
	delete(f.reviews, id)
	return true
}

func (s *Store) ListReviewsByProduct(ctx context.Context, productID int64) ([]*entity.Review, error) {
	return s.reviews.listBy(func(r *entity.Review) bool { return r.ProductID == productID }), nil
}

func (s *Store) ListReviewsByUser(ctx context.Context, userID int64) ([]*entity.Review, error) {
	return s.reviews.listBy(func(r *entity.Review) bool { return r.UserID == userID }), nil
}

func (s *Store) CreateReview(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	return s.reviews.create(review)
}

func (s *Store) UpdateReview(ctx context.Context, id string, update entity.ReviewUpdate) (*entity.Review, error) {
	return s.reviews.update(id, update)
}

func (s *Store) DeleteReview(ctx context.Context, id string) (bool, error) {
	return s.reviews.delete(id), nil
}
