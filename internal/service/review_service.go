package service

import (
	"context"
	"log"
	"net/url"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
	"tours-api/internal/query"
	"tours-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService handles review business logic. Every mutation ends with a
// rating recompute on the affected tour.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	tourRepo   repository.TourRepository
	aggregator *RatingAggregator
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository, tourRepo repository.TourRepository, aggregator *RatingAggregator) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		tourRepo:   tourRepo,
		aggregator: aggregator,
	}
}

// CreateReview creates a review. On the nested tour route the tour comes from
// the path and the author from the session; explicit body values win.
func (s *ReviewService) CreateReview(ctx context.Context, tourID primitive.ObjectID, user *models.User, req *models.CreateReviewRequest) (*models.Review, error) {
	if req.Tour != "" {
		parsed, err := primitive.ObjectIDFromHex(req.Tour)
		if err != nil {
			return nil, apperrors.ErrValidation
		}
		tourID = parsed
	}
	if tourID.IsZero() {
		return nil, apperrors.ErrValidation
	}

	userID := user.ID
	if req.User != "" {
		parsed, err := primitive.ObjectIDFromHex(req.User)
		if err != nil {
			return nil, apperrors.ErrValidation
		}
		userID = parsed
	}

	if _, err := s.tourRepo.FindByID(ctx, tourID); err != nil {
		return nil, err
	}

	review := &models.Review{
		Review: req.Review,
		Rating: req.Rating,
		Tour:   tourID,
		User:   userID,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.recompute(ctx, tourID)
	return review, nil
}

// GetReview returns a single review by id.
func (s *ReviewService) GetReview(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	return s.reviewRepo.FindByID(ctx, id)
}

// ListReviews lists reviews through the query builder. A non-zero tourID
// scopes the listing to that tour regardless of filter params.
func (s *ReviewService) ListReviews(ctx context.Context, tourID primitive.ObjectID, params url.Values) ([]models.Review, int, error) {
	var q *query.Builder
	if tourID.IsZero() {
		q = query.New(params)
	} else {
		q = query.NewScoped(params, bson.M{"tour": tourID})
	}
	return s.reviewRepo.Find(ctx, q)
}

// UpdateReview applies a partial update and recomputes the tour's ratings.
func (s *ReviewService) UpdateReview(ctx context.Context, id primitive.ObjectID, req *models.UpdateReviewRequest) (*models.Review, error) {
	set := bson.M{}
	if req.Review != nil {
		set["review"] = *req.Review
	}
	if req.Rating != nil {
		set["rating"] = *req.Rating
	}

	review, err := s.reviewRepo.UpdateByID(ctx, id, set)
	if err != nil {
		return nil, err
	}

	s.recompute(ctx, review.Tour)
	return review, nil
}

// DeleteReview removes a review and recomputes the tour's ratings.
func (s *ReviewService) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reviewRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.recompute(ctx, review.Tour)
	return nil
}

// recompute refreshes the tour's rating stats. The review write has already
// happened, so a failed recompute is logged rather than surfaced.
func (s *ReviewService) recompute(ctx context.Context, tourID primitive.ObjectID) {
	if err := s.aggregator.Recompute(ctx, tourID); err != nil {
		log.Printf("Rating recompute for tour %s failed: %v", tourID.Hex(), err)
	}
}
