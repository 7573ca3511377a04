package usecase

import (
	"context"
	stderrors "errors"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
	"farmstand/pkg/errors"
	"farmstand/pkg/logger"
)

type ReviewUseCase struct {
	store storage.Storage
}

func NewReviewUseCase(store storage.Storage) *ReviewUseCase {
	return &ReviewUseCase{store: store}
}

type CreateReviewInput struct {
	ProductID int64
	Rating    int
	Title     string
	Comment   string
}

func (uc *ReviewUseCase) CreateReview(ctx context.Context, userID int64, input CreateReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}
	if _, err := uc.store.GetProduct(ctx, input.ProductID); err != nil {
		return nil, storeErr("Product", err)
	}

	review := &entity.Review{
		ProductID: input.ProductID,
		UserID:    userID,
		Rating:    input.Rating,
		Title:     input.Title,
		Comment:   input.Comment,
	}
	created, err := uc.store.CreateReview(ctx, review)
	if err != nil {
		return nil, storeErr("Review", err)
	}

	uc.refreshVendorRating(ctx, input.ProductID)
	return created, nil
}

func (uc *ReviewUseCase) ListByProduct(ctx context.Context, productID int64) ([]*entity.Review, error) {
	reviews, err := uc.store.ListReviewsByProduct(ctx, productID)
	if err != nil {
		return nil, storeErr("Reviews", err)
	}
	return reviews, nil
}

func (uc *ReviewUseCase) ListByUser(ctx context.Context, userID int64) ([]*entity.Review, error) {
	reviews, err := uc.store.ListReviewsByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("Reviews", err)
	}
	return reviews, nil
}

func (uc *ReviewUseCase) UpdateReview(ctx context.Context, userID int64, id string, update entity.ReviewUpdate) (*entity.Review, error) {
	if update.Rating != nil && (*update.Rating < 1 || *update.Rating > 5) {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}
	if err := uc.authorizeReview(ctx, userID, id); err != nil {
		return nil, err
	}

	updated, err := uc.store.UpdateReview(ctx, id, update)
	if err != nil {
		return nil, storeErr("Review", err)
	}

	uc.refreshVendorRating(ctx, updated.ProductID)
	return updated, nil
}

func (uc *ReviewUseCase) DeleteReview(ctx context.Context, userID int64, id string) error {
	if err := uc.authorizeReview(ctx, userID, id); err != nil {
		return err
	}

	deleted, err := uc.store.DeleteReview(ctx, id)
	if err != nil {
		return storeErr("Review", err)
	}
	if !deleted {
		return errors.NotFound("Review", nil)
	}
	return nil
}

func (uc *ReviewUseCase) authorizeReview(ctx context.Context, userID int64, id string) error {
	reviews, err := uc.store.ListReviewsByUser(ctx, userID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return errors.NotFound("Review", err)
		}
		return storeErr("Review", err)
	}
	for _, r := range reviews {
		if r.ID == id {
			return nil
		}
	}
	return errors.Forbidden("Review belongs to another user", nil)
}

// refreshVendorRating recomputes the vendor's average from all review scores
// on their products. Failures are logged, not surfaced; the review write
// already succeeded.
func (uc *ReviewUseCase) refreshVendorRating(ctx context.Context, productID int64) {
	product, err := uc.store.GetProduct(ctx, productID)
	if err != nil || product.VendorID == 0 {
		return
	}

	products, err := uc.store.ListProductsByVendor(ctx, product.VendorID)
	if err != nil {
		logger.Warn("failed to list vendor products for rating: %v", err)
		return
	}

	var sum, count float64
	for _, p := range products {
		reviews, err := uc.store.ListReviewsByProduct(ctx, p.ID)
		if err != nil {
			logger.Warn("failed to list reviews for product %d: %v", p.ID, err)
			return
		}
		for _, r := range reviews {
			sum += float64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return
	}

	rating := sum / count
	if _, err := uc.store.UpdateVendor(ctx, product.VendorID, entity.VendorUpdate{Rating: &rating}); err != nil {
		logger.Warn("failed to update vendor rating: %v", err)
	}
}
