package repository

import (
	"context"
	"errors"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
	"tours-api/internal/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TourRatingStats is the raw aggregation result over a tour's reviews.
type TourRatingStats struct {
	Count   int     `bson:"count"`
	Average float64 `bson:"average"`
}

// ReviewRepository defines the interface for review data operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	Find(ctx context.Context, q *query.Builder) ([]models.Review, int, error)
	FindByTour(ctx context.Context, tourID primitive.ObjectID) ([]models.Review, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Review, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	AggregateTourRatings(ctx context.Context, tourID primitive.ObjectID) (*TourRatingStats, error)
}

// reviewRepository implements ReviewRepository using MongoDB.
type reviewRepository struct {
	*Repository[models.Review, *models.Review]
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &reviewRepository{
		Repository: NewRepository[models.Review](db, "reviews", apperrors.ErrReviewNotFound),
	}
}

// Create inserts a review. The unique (tour, user) index turns a second
// review by the same user into ErrDuplicateReview.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.Repository.Create(ctx, review); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return apperrors.ErrDuplicateReview
		}
		return err
	}
	return nil
}

func (r *reviewRepository) FindByTour(ctx context.Context, tourID primitive.ObjectID) ([]models.Review, error) {
	cursor, err := r.Collection().Find(ctx, bson.M{"tour": tourID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// AggregateTourRatings computes the review count and mean rating for a tour.
// A tour with no reviews yields a zero-count result, not an error.
func (r *reviewRepository) AggregateTourRatings(ctx context.Context, tourID primitive.ObjectID) (*TourRatingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tour": tourID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$tour",
			"count":   bson.M{"$sum": 1},
			"average": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []TourRatingStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &TourRatingStats{}, nil
	}
	return &results[0], nil
}
