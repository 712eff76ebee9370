package service

import (
	"context"
	"math"

	"tours-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defaults written to a tour that has no reviews.
const (
	defaultRatingsAverage  = 4.5
	defaultRatingsQuantity = 0
)

// RatingAggregator recomputes a tour's denormalized rating fields from its
// reviews. It is the single writer of ratingsAverage and ratingsQuantity.
type RatingAggregator struct {
	reviewRepo repository.ReviewRepository
	tourRepo   repository.TourRepository
}

// NewRatingAggregator creates a new RatingAggregator.
func NewRatingAggregator(reviewRepo repository.ReviewRepository, tourRepo repository.TourRepository) *RatingAggregator {
	return &RatingAggregator{reviewRepo: reviewRepo, tourRepo: tourRepo}
}

// Recompute aggregates the tour's reviews and writes the result onto the
// tour. When the last review is gone the tour falls back to the defaults of
// an unreviewed tour.
func (a *RatingAggregator) Recompute(ctx context.Context, tourID primitive.ObjectID) error {
	stats, err := a.reviewRepo.AggregateTourRatings(ctx, tourID)
	if err != nil {
		return err
	}

	if stats.Count == 0 {
		return a.tourRepo.UpdateRatingStats(ctx, tourID, defaultRatingsAverage, defaultRatingsQuantity)
	}

	average := math.Round(stats.Average*10) / 10
	return a.tourRepo.UpdateRatingStats(ctx, tourID, average, stats.Count)
}
