package repository

import (
	"context"
	"time"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
	"tours-api/internal/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TourRepository defines the interface for tour data operations.
//
// UpdateRatingStats is the only write path for ratingsAverage and
// ratingsQuantity.
type TourRepository interface {
	Create(ctx context.Context, tour *models.Tour) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tour, error)
	FindBySlug(ctx context.Context, slug string) (*models.Tour, error)
	Find(ctx context.Context, q *query.Builder) ([]models.Tour, int, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Tour, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	UpdateRatingStats(ctx context.Context, id primitive.ObjectID, average float64, quantity int) error
	Stats(ctx context.Context) ([]models.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlanEntry, error)
	FindWithin(ctx context.Context, lat, lng, radiusRadians float64) ([]models.Tour, error)
	Distances(ctx context.Context, lat, lng, multiplier float64) ([]models.TourDistance, error)
}

// tourRepository implements TourRepository using MongoDB.
type tourRepository struct {
	*Repository[models.Tour, *models.Tour]
}

// NewTourRepository creates a new TourRepository.
func NewTourRepository(db *mongo.Database) TourRepository {
	return &tourRepository{
		Repository: NewRepository[models.Tour](db, "tours", apperrors.ErrTourNotFound),
	}
}

// Create inserts a tour with the rating defaults of an unreviewed tour.
func (r *tourRepository) Create(ctx context.Context, tour *models.Tour) error {
	tour.RatingsAverage = 4.5
	tour.RatingsQuantity = 0
	return r.Repository.Create(ctx, tour)
}

func (r *tourRepository) FindBySlug(ctx context.Context, slug string) (*models.Tour, error) {
	return r.findOne(ctx, bson.M{"slug": slug}, nil)
}

// UpdateRatingStats writes freshly aggregated review stats onto a tour.
func (r *tourRepository) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, average float64, quantity int) error {
	update := bson.M{"$set": bson.M{
		"ratingsAverage":  average,
		"ratingsQuantity": quantity,
		"updatedAt":       time.Now(),
	}}
	result, err := r.Collection().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrTourNotFound
	}
	return nil
}

// Stats aggregates tours rated 4.5 or better, grouped by difficulty.
func (r *tourRepository) Stats(ctx context.Context) ([]models.TourStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"ratingsAverage": bson.M{"$gte": 4.5}}}},
		{{Key: "$group", Value: bson.M{
			"_id":        bson.M{"$toLower": "$difficulty"},
			"numTours":   bson.M{"$sum": 1},
			"numRatings": bson.M{"$sum": "$ratingsQuantity"},
			"avgRating":  bson.M{"$avg": "$ratingsAverage"},
			"avgPrice":   bson.M{"$avg": "$price"},
			"minPrice":   bson.M{"$min": "$price"},
			"maxPrice":   bson.M{"$max": "$price"},
		}}},
		{{Key: "$sort", Value: bson.M{"avgPrice": 1}}},
	}

	cursor, err := r.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := []models.TourStats{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// MonthlyPlan unwinds start dates into per-month tour counts for one year.
func (r *tourRepository) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlanEntry, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$startDates"}},
		{{Key: "$match", Value: bson.M{"startDates": bson.M{"$gte": from, "$lte": to}}}},
		{{Key: "$group", Value: bson.M{
			"_id":           bson.M{"$month": "$startDates"},
			"numTourStarts": bson.M{"$sum": 1},
			"tours":         bson.M{"$push": "$name"},
		}}},
		{{Key: "$addFields", Value: bson.M{"month": "$_id"}}},
		{{Key: "$project", Value: bson.M{"_id": 0}}},
		{{Key: "$sort", Value: bson.M{"numTourStarts": -1}}},
	}

	cursor, err := r.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plan := []models.MonthlyPlanEntry{}
	if err := cursor.All(ctx, &plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Distances returns every tour's distance from a point, nearest first.
// $geoNear yields meters; the multiplier converts to the caller's unit.
func (r *tourRepository) Distances(ctx context.Context, lat, lng, multiplier float64) ([]models.TourDistance, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$geoNear", Value: bson.M{
			"near": bson.M{
				"type":        "Point",
				"coordinates": bson.A{lng, lat},
			},
			"distanceField":      "distance",
			"distanceMultiplier": multiplier,
		}}},
		{{Key: "$project", Value: bson.M{
			"distance": 1,
			"name":     1,
		}}},
	}

	cursor, err := r.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	distances := []models.TourDistance{}
	if err := cursor.All(ctx, &distances); err != nil {
		return nil, err
	}
	return distances, nil
}

// FindWithin returns tours whose start location falls inside a sphere cap of
// the given radius, expressed in radians, around a center point.
func (r *tourRepository) FindWithin(ctx context.Context, lat, lng, radiusRadians float64) ([]models.Tour, error) {
	filter := bson.M{"startLocation": bson.M{
		"$geoWithin": bson.M{
			"$centerSphere": bson.A{bson.A{lng, lat}, radiusRadians},
		},
	}}

	cursor, err := r.Collection().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tours := []models.Tour{}
	if err := cursor.All(ctx, &tours); err != nil {
		return nil, err
	}
	return tours, nil
}
