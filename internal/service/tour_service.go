package service

import (
	"context"
	"log"
	"net/url"
	"time"

	"tours-api/internal/cache"
	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
	"tours-api/internal/query"
	"tours-api/internal/repository"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Earth radii used to convert a distance to radians for $centerSphere.
const (
	earthRadiusMiles = 3963.2
	earthRadiusKm    = 6378.1
)

// $geoNear distances arrive in meters; these convert to the requested unit.
const (
	metersToMiles = 0.000621371
	metersToKm    = 0.001
)

// tourCacheTTL bounds how stale a cached tour detail can get; rating
// recomputes land on the next cache miss at the latest.
const tourCacheTTL = 5 * time.Minute

// TourService handles tour business logic.
type TourService struct {
	tourRepo   repository.TourRepository
	reviewRepo repository.ReviewRepository
	cache      cache.Cache
}

// NewTourService creates a new TourService.
func NewTourService(tourRepo repository.TourRepository, reviewRepo repository.ReviewRepository, c cache.Cache) *TourService {
	return &TourService{
		tourRepo:   tourRepo,
		reviewRepo: reviewRepo,
		cache:      c,
	}
}

// CreateTour creates a tour. The slug is derived from the name; guide ids
// arrive as hex strings and are resolved here.
func (s *TourService) CreateTour(ctx context.Context, req *models.CreateTourRequest) (*models.Tour, error) {
	guides, err := parseObjectIDs(req.Guides)
	if err != nil {
		return nil, apperrors.ErrValidation
	}

	tour := &models.Tour{
		Name:          req.Name,
		Slug:          slug.Make(req.Name),
		Duration:      req.Duration,
		MaxGroupSize:  req.MaxGroupSize,
		Difficulty:    req.Difficulty,
		Price:         req.Price,
		PriceDiscount: req.PriceDiscount,
		Summary:       req.Summary,
		Description:   req.Description,
		ImageCover:    req.ImageCover,
		Images:        req.Images,
		StartDates:    req.StartDates,
		StartLocation: req.StartLocation,
		Locations:     req.Locations,
		Guides:        guides,
	}

	if err := s.tourRepo.Create(ctx, tour); err != nil {
		return nil, err
	}
	return tour, nil
}

// GetTour returns a tour with its reviews, served from cache when possible.
func (s *TourService) GetTour(ctx context.Context, id primitive.ObjectID) (*models.TourDetail, error) {
	key := cache.TourCacheKey(id.Hex())

	var cached models.TourDetail
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	tour, err := s.tourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail, err := s.withReviews(ctx, tour)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, detail, tourCacheTTL); err != nil {
		log.Printf("Could not cache tour %s: %v", id.Hex(), err)
	}
	return detail, nil
}

// GetTourBySlug returns a tour with its reviews, looked up by slug.
func (s *TourService) GetTourBySlug(ctx context.Context, tourSlug string) (*models.TourDetail, error) {
	tour, err := s.tourRepo.FindBySlug(ctx, tourSlug)
	if err != nil {
		return nil, err
	}
	return s.withReviews(ctx, tour)
}

// ListTours lists tours through the query builder.
func (s *TourService) ListTours(ctx context.Context, params url.Values) ([]models.Tour, int, error) {
	return s.tourRepo.Find(ctx, query.New(params))
}

// UpdateTour applies a partial update. A renamed tour gets a fresh slug.
func (s *TourService) UpdateTour(ctx context.Context, id primitive.ObjectID, req *models.UpdateTourRequest) (*models.Tour, error) {
	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
		set["slug"] = slug.Make(*req.Name)
	}
	if req.Duration != nil {
		set["duration"] = *req.Duration
	}
	if req.MaxGroupSize != nil {
		set["maxGroupSize"] = *req.MaxGroupSize
	}
	if req.Difficulty != nil {
		set["difficulty"] = *req.Difficulty
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.PriceDiscount != nil {
		set["priceDiscount"] = *req.PriceDiscount
	}
	if req.Summary != nil {
		set["summary"] = *req.Summary
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.ImageCover != nil {
		set["imageCover"] = *req.ImageCover
	}
	if req.Images != nil {
		set["images"] = *req.Images
	}
	if req.StartDates != nil {
		set["startDates"] = *req.StartDates
	}
	if req.StartLocation != nil {
		set["startLocation"] = req.StartLocation
	}
	if req.Locations != nil {
		set["locations"] = *req.Locations
	}

	tour, err := s.tourRepo.UpdateByID(ctx, id, set)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return tour, nil
}

// DeleteTour removes a tour.
func (s *TourService) DeleteTour(ctx context.Context, id primitive.ObjectID) error {
	if err := s.tourRepo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Stats returns per-difficulty aggregates over well rated tours.
func (s *TourService) Stats(ctx context.Context) ([]models.TourStats, error) {
	return s.tourRepo.Stats(ctx)
}

// MonthlyPlan returns per-month tour start counts for a year.
func (s *TourService) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlanEntry, error) {
	return s.tourRepo.MonthlyPlan(ctx, year)
}

// ToursWithin returns tours starting within the given distance of a point.
// Unit is "mi" or "km".
func (s *TourService) ToursWithin(ctx context.Context, distance, lat, lng float64, unit string) ([]models.Tour, error) {
	var radius float64
	switch unit {
	case "mi":
		radius = distance / earthRadiusMiles
	case "km":
		radius = distance / earthRadiusKm
	default:
		return nil, apperrors.ErrValidation
	}
	return s.tourRepo.FindWithin(ctx, lat, lng, radius)
}

// Distances returns every tour's distance from a point, nearest first.
// Unit is "mi" or "km".
func (s *TourService) Distances(ctx context.Context, lat, lng float64, unit string) ([]models.TourDistance, error) {
	var multiplier float64
	switch unit {
	case "mi":
		multiplier = metersToMiles
	case "km":
		multiplier = metersToKm
	default:
		return nil, apperrors.ErrValidation
	}
	return s.tourRepo.Distances(ctx, lat, lng, multiplier)
}

func (s *TourService) withReviews(ctx context.Context, tour *models.Tour) (*models.TourDetail, error) {
	reviews, err := s.reviewRepo.FindByTour(ctx, tour.ID)
	if err != nil {
		return nil, err
	}
	return &models.TourDetail{Tour: *tour, Reviews: reviews}, nil
}

func (s *TourService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if err := s.cache.Delete(ctx, cache.TourCacheKey(id.Hex())); err != nil {
		log.Printf("Could not invalidate cached tour %s: %v", id.Hex(), err)
	}
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	if len(hexes) == 0 {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
