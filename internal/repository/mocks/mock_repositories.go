// Package mocks provides mock implementations of repository interfaces for testing.
package mocks

import (
	"context"
	"time"

	"tours-api/internal/models"
	"tours-api/internal/query"
	"tours-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	CreateFunc                  func(ctx context.Context, user *models.User) error
	FindByIDFunc                func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDWithInactiveFunc    func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDWithPasswordFunc    func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmailFunc             func(ctx context.Context, email string) (*models.User, error)
	FindByEmailWithPasswordFunc func(ctx context.Context, email string) (*models.User, error)
	FindByResetTokenHashFunc    func(ctx context.Context, tokenHash string) (*models.User, error)
	FindFunc                    func(ctx context.Context, q *query.Builder) ([]models.User, int, error)
	UpdateByIDFunc              func(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
	UpdateByIDWithInactiveFunc  func(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
	UpdatePasswordFunc          func(ctx context.Context, id primitive.ObjectID, passwordHash string, changedAt time.Time) (*models.User, error)
	SetResetTokenFunc           func(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error
	ClearResetTokenFunc         func(ctx context.Context, id primitive.ObjectID) error
	DeactivateFunc              func(ctx context.Context, id primitive.ObjectID) error
	DeleteByIDFunc              func(ctx context.Context, id primitive.ObjectID) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByIDWithInactive(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if m.FindByIDWithInactiveFunc != nil {
		return m.FindByIDWithInactiveFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByIDWithPassword(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if m.FindByIDWithPasswordFunc != nil {
		return m.FindByIDWithPasswordFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	if m.FindByEmailWithPasswordFunc != nil {
		return m.FindByEmailWithPasswordFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByResetTokenHash(ctx context.Context, tokenHash string) (*models.User, error) {
	if m.FindByResetTokenHashFunc != nil {
		return m.FindByResetTokenHashFunc(ctx, tokenHash)
	}
	return nil, nil
}

func (m *MockUserRepository) Find(ctx context.Context, q *query.Builder) ([]models.User, int, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, q)
	}
	return nil, 0, nil
}

func (m *MockUserRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	if m.UpdateByIDFunc != nil {
		return m.UpdateByIDFunc(ctx, id, set)
	}
	return nil, nil
}

func (m *MockUserRepository) UpdateByIDWithInactive(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	if m.UpdateByIDWithInactiveFunc != nil {
		return m.UpdateByIDWithInactiveFunc(ctx, id, set)
	}
	return nil, nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string, changedAt time.Time) (*models.User, error) {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash, changedAt)
	}
	return nil, nil
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, id, tokenHash, expires)
	}
	return nil
}

func (m *MockUserRepository) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	if m.ClearResetTokenFunc != nil {
		return m.ClearResetTokenFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return nil
}

// MockTourRepository is a mock implementation of TourRepository.
type MockTourRepository struct {
	CreateFunc            func(ctx context.Context, tour *models.Tour) error
	FindByIDFunc          func(ctx context.Context, id primitive.ObjectID) (*models.Tour, error)
	FindBySlugFunc        func(ctx context.Context, slug string) (*models.Tour, error)
	FindFunc              func(ctx context.Context, q *query.Builder) ([]models.Tour, int, error)
	UpdateByIDFunc        func(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Tour, error)
	DeleteByIDFunc        func(ctx context.Context, id primitive.ObjectID) error
	UpdateRatingStatsFunc func(ctx context.Context, id primitive.ObjectID, average float64, quantity int) error
	StatsFunc             func(ctx context.Context) ([]models.TourStats, error)
	MonthlyPlanFunc       func(ctx context.Context, year int) ([]models.MonthlyPlanEntry, error)
	FindWithinFunc        func(ctx context.Context, lat, lng, radiusRadians float64) ([]models.Tour, error)
	DistancesFunc         func(ctx context.Context, lat, lng, multiplier float64) ([]models.TourDistance, error)
}

func (m *MockTourRepository) Create(ctx context.Context, tour *models.Tour) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tour)
	}
	return nil
}

func (m *MockTourRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tour, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTourRepository) FindBySlug(ctx context.Context, slug string) (*models.Tour, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockTourRepository) Find(ctx context.Context, q *query.Builder) ([]models.Tour, int, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, q)
	}
	return nil, 0, nil
}

func (m *MockTourRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Tour, error) {
	if m.UpdateByIDFunc != nil {
		return m.UpdateByIDFunc(ctx, id, set)
	}
	return nil, nil
}

func (m *MockTourRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return nil
}

func (m *MockTourRepository) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, average float64, quantity int) error {
	if m.UpdateRatingStatsFunc != nil {
		return m.UpdateRatingStatsFunc(ctx, id, average, quantity)
	}
	return nil
}

func (m *MockTourRepository) Stats(ctx context.Context) ([]models.TourStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return nil, nil
}

func (m *MockTourRepository) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlanEntry, error) {
	if m.MonthlyPlanFunc != nil {
		return m.MonthlyPlanFunc(ctx, year)
	}
	return nil, nil
}

func (m *MockTourRepository) FindWithin(ctx context.Context, lat, lng, radiusRadians float64) ([]models.Tour, error) {
	if m.FindWithinFunc != nil {
		return m.FindWithinFunc(ctx, lat, lng, radiusRadians)
	}
	return nil, nil
}

func (m *MockTourRepository) Distances(ctx context.Context, lat, lng, multiplier float64) ([]models.TourDistance, error) {
	if m.DistancesFunc != nil {
		return m.DistancesFunc(ctx, lat, lng, multiplier)
	}
	return nil, nil
}

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	CreateFunc               func(ctx context.Context, review *models.Review) error
	FindByIDFunc             func(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindFunc                 func(ctx context.Context, q *query.Builder) ([]models.Review, int, error)
	FindByTourFunc           func(ctx context.Context, tourID primitive.ObjectID) ([]models.Review, error)
	UpdateByIDFunc           func(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Review, error)
	DeleteByIDFunc           func(ctx context.Context, id primitive.ObjectID) error
	AggregateTourRatingsFunc func(ctx context.Context, tourID primitive.ObjectID) (*repository.TourRatingStats, error)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, review)
	}
	return nil
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockReviewRepository) Find(ctx context.Context, q *query.Builder) ([]models.Review, int, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, q)
	}
	return nil, 0, nil
}

func (m *MockReviewRepository) FindByTour(ctx context.Context, tourID primitive.ObjectID) ([]models.Review, error) {
	if m.FindByTourFunc != nil {
		return m.FindByTourFunc(ctx, tourID)
	}
	return nil, nil
}

func (m *MockReviewRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Review, error) {
	if m.UpdateByIDFunc != nil {
		return m.UpdateByIDFunc(ctx, id, set)
	}
	return nil, nil
}

func (m *MockReviewRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return nil
}

func (m *MockReviewRepository) AggregateTourRatings(ctx context.Context, tourID primitive.ObjectID) (*repository.TourRatingStats, error) {
	if m.AggregateTourRatingsFunc != nil {
		return m.AggregateTourRatingsFunc(ctx, tourID)
	}
	return &repository.TourRatingStats{}, nil
}

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	CreateFunc     func(ctx context.Context, booking *models.Booking) error
	FindByIDFunc   func(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	FindFunc       func(ctx context.Context, q *query.Builder) ([]models.Booking, int, error)
	FindByUserFunc func(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error)
	UpdateByIDFunc func(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Booking, error)
	DeleteByIDFunc func(ctx context.Context, id primitive.ObjectID) error
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, booking)
	}
	return nil
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBookingRepository) Find(ctx context.Context, q *query.Builder) ([]models.Booking, int, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, q)
	}
	return nil, 0, nil
}

func (m *MockBookingRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBookingRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Booking, error) {
	if m.UpdateByIDFunc != nil {
		return m.UpdateByIDFunc(ctx, id, set)
	}
	return nil, nil
}

func (m *MockBookingRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return nil
}
