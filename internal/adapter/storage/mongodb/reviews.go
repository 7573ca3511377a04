// Package mongodb holds the document-store side of the persistence layer. It
// speaks only reviews; the composite backend pairs it with a primary store
// for everything else.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
)

const collectionName = "reviews"

type reviewDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID int64              `bson:"productId"`
	UserID    int64              `bson:"userId"`
	Rating    int                `bson:"rating"`
	Title     string             `bson:"title,omitempty"`
	Comment   string             `bson:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *reviewDoc) toEntity() *entity.Review {
	return &entity.Review{
		ID:        d.ID.Hex(),
		ProductID: d.ProductID,
		UserID:    d.UserID,
		Rating:    d.Rating,
		Title:     d.Title,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type Store struct {
	uri      string
	database string
	timeout  time.Duration

	client     *mongo.Client
	collection *mongo.Collection
}

func New(uri, database string, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Store{uri: uri, database: database, timeout: timeout}
}

func (s *Store) Init(ctx context.Context) error {
	if s.uri == "" {
		return fmt.Errorf("mongodb: MONGO_URI is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return fmt.Errorf("mongodb: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return fmt.Errorf("mongodb: ping: %w", err)
	}

	collection := client.Database(s.database).Collection(collectionName)
	_, err = collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "productId", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	if err != nil {
		client.Disconnect(ctx)
		return fmt.Errorf("mongodb: create indexes: %w", err)
	}

	s.client = client
	s.collection = collection
	return nil
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]*entity.Review, error) {
	if s.collection == nil {
		return nil, storage.ErrUnavailable
	}
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	reviews := make([]*entity.Review, 0)
	for cursor.Next(ctx) {
		var doc reviewDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrDecode, err)
		}
		reviews = append(reviews, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, translate(err)
	}
	return reviews, nil
}

func (s *Store) ListReviewsByProduct(ctx context.Context, productID int64) ([]*entity.Review, error) {
	return s.list(ctx, bson.M{"productId": productID})
}

func (s *Store) ListReviewsByUser(ctx context.Context, userID int64) ([]*entity.Review, error) {
	return s.list(ctx, bson.M{"userId": userID})
}

func (s *Store) CreateReview(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	if s.collection == nil {
		return nil, storage.ErrUnavailable
	}
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	now := time.Now().UTC()
	doc := reviewDoc{
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Title:     review.Title,
		Comment:   review.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if review.ID != "" {
		oid, err := primitive.ObjectIDFromHex(review.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: review id %q", storage.ErrDecode, review.ID)
		}
		doc.ID = oid
	}

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, translate(err)
	}
	doc.ID = result.InsertedID.(primitive.ObjectID)
	return doc.toEntity(), nil
}

func (s *Store) UpdateReview(ctx context.Context, id string, update entity.ReviewUpdate) (*entity.Review, error) {
	if s.collection == nil {
		return nil, storage.ErrUnavailable
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, storage.ErrNotFound
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Rating != nil {
		set["rating"] = *update.Rating
	}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Comment != nil {
		set["comment"] = *update.Comment
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc reviewDoc
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, translate(err)
	}
	return doc.toEntity(), nil
}

func (s *Store) DeleteReview(ctx context.Context, id string) (bool, error) {
	if s.collection == nil {
		return false, storage.ErrUnavailable
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, translate(err)
	}
	return result.DeletedCount > 0, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		return storage.ErrConflict
	default:
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
}

var _ storage.ReviewStorage = (*Store)(nil)
