package oracle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
)

// Reviews are a late addition to the schema and never got procedures; they
// run as plain parameterized statements against the reviews table.

func (s *Store) ListReviewsByProduct(ctx context.Context, productID int64) ([]*entity.Review, error) {
	rows, err := s.queryRows(ctx,
		"SELECT * FROM reviews WHERE product_id = :1 ORDER BY created_at, id", productID)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, reviewFromRow)
}

func (s *Store) ListReviewsByUser(ctx context.Context, userID int64) ([]*entity.Review, error) {
	rows, err := s.queryRows(ctx,
		"SELECT * FROM reviews WHERE user_id = :1 ORDER BY created_at, id", userID)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, reviewFromRow)
}

func (s *Store) CreateReview(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	created := *review
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	err := s.callExec(ctx,
		`INSERT INTO reviews (id, product_id, user_id, rating, title, review_body, created_at, updated_at)
		 VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`,
		created.ID, created.ProductID, created.UserID, int64(created.Rating),
		created.Title, created.Comment, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) UpdateReview(ctx context.Context, id string, update entity.ReviewUpdate) (*entity.Review, error) {
	r, err := s.queryRowOne(ctx, "SELECT * FROM reviews WHERE id = :1", id)
	if err != nil {
		return nil, err
	}
	current, err := reviewFromRow(r)
	if err != nil {
		return nil, err
	}
	update.Apply(current)
	current.UpdatedAt = time.Now().UTC()

	err = s.callExec(ctx,
		`UPDATE reviews SET rating = :1, title = :2, review_body = :3, updated_at = :4
		 WHERE id = :5`,
		int64(current.Rating), current.Title, current.Comment, current.UpdatedAt, id)
	if err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Store) DeleteReview(ctx context.Context, id string) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, "DELETE FROM reviews WHERE id = :1", id)
	if err != nil {
		return false, translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

var _ storage.Storage = (*Store)(nil)
