// Package mocks provides mock implementations of service interfaces for testing.
package mocks

import (
	"context"
	"net/url"

	"tours-api/internal/models"
	"tours-api/internal/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockAuthService is a mock implementation of AuthServicer.
type MockAuthService struct {
	SignupFunc         func(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	LoginFunc          func(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	VerifyFunc         func(ctx context.Context, token string) (*models.User, error)
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, rawToken string, req *models.ResetPasswordRequest) (*models.AuthResponse, error)
	UpdatePasswordFunc func(ctx context.Context, userID primitive.ObjectID, req *models.UpdatePasswordRequest) (*models.AuthResponse, error)
}

func (m *MockAuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Verify(ctx context.Context, token string) (*models.User, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return nil, nil
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, rawToken string, req *models.ResetPasswordRequest) (*models.AuthResponse, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, rawToken, req)
	}
	return nil, nil
}

func (m *MockAuthService) UpdatePassword(ctx context.Context, userID primitive.ObjectID, req *models.UpdatePasswordRequest) (*models.AuthResponse, error) {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, req)
	}
	return nil, nil
}

// MockUserService is a mock implementation of UserServicer.
type MockUserService struct {
	GetUserFunc          func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ListUsersFunc        func(ctx context.Context, params url.Values) ([]models.User, int, error)
	UpdateMeFunc         func(ctx context.Context, id primitive.ObjectID, req *models.UpdateMeRequest) (*models.User, error)
	DeleteMeFunc         func(ctx context.Context, id primitive.ObjectID) error
	PhotoUploadURLFunc   func(ctx context.Context, id primitive.ObjectID) (string, string, error)
	PhotoDownloadURLFunc func(ctx context.Context, id primitive.ObjectID) (string, error)
	UpdateUserFunc       func(ctx context.Context, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error)
	DeleteUserFunc       func(ctx context.Context, id primitive.ObjectID) error
}

func (m *MockUserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserService) ListUsers(ctx context.Context, params url.Values) ([]models.User, int, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, params)
	}
	return nil, 0, nil
}

func (m *MockUserService) UpdateMe(ctx context.Context, id primitive.ObjectID, req *models.UpdateMeRequest) (*models.User, error) {
	if m.UpdateMeFunc != nil {
		return m.UpdateMeFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockUserService) DeleteMe(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteMeFunc != nil {
		return m.DeleteMeFunc(ctx, id)
	}
	return nil
}

func (m *MockUserService) PhotoUploadURL(ctx context.Context, id primitive.ObjectID) (string, string, error) {
	if m.PhotoUploadURLFunc != nil {
		return m.PhotoUploadURLFunc(ctx, id)
	}
	return "", "", nil
}

func (m *MockUserService) PhotoDownloadURL(ctx context.Context, id primitive.ObjectID) (string, error) {
	if m.PhotoDownloadURLFunc != nil {
		return m.PhotoDownloadURLFunc(ctx, id)
	}
	return "", nil
}

func (m *MockUserService) UpdateUser(ctx context.Context, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockUserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}

// MockTourService is a mock implementation of TourServicer.
type MockTourService struct {
	CreateTourFunc    func(ctx context.Context, req *models.CreateTourRequest) (*models.Tour, error)
	GetTourFunc       func(ctx context.Context, id primitive.ObjectID) (*models.TourDetail, error)
	GetTourBySlugFunc func(ctx context.Context, slug string) (*models.TourDetail, error)
	ListToursFunc     func(ctx context.Context, params url.Values) ([]models.Tour, int, error)
	UpdateTourFunc    func(ctx context.Context, id primitive.ObjectID, req *models.UpdateTourRequest) (*models.Tour, error)
	DeleteTourFunc    func(ctx context.Context, id primitive.ObjectID) error
	StatsFunc         func(ctx context.Context) ([]models.TourStats, error)
	MonthlyPlanFunc   func(ctx context.Context, year int) ([]models.MonthlyPlanEntry, error)
	ToursWithinFunc   func(ctx context.Context, distance, lat, lng float64, unit string) ([]models.Tour, error)
	DistancesFunc     func(ctx context.Context, lat, lng float64, unit string) ([]models.TourDistance, error)
}

func (m *MockTourService) CreateTour(ctx context.Context, req *models.CreateTourRequest) (*models.Tour, error) {
	if m.CreateTourFunc != nil {
		return m.CreateTourFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockTourService) GetTour(ctx context.Context, id primitive.ObjectID) (*models.TourDetail, error) {
	if m.GetTourFunc != nil {
		return m.GetTourFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTourService) GetTourBySlug(ctx context.Context, slug string) (*models.TourDetail, error) {
	if m.GetTourBySlugFunc != nil {
		return m.GetTourBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockTourService) ListTours(ctx context.Context, params url.Values) ([]models.Tour, int, error) {
	if m.ListToursFunc != nil {
		return m.ListToursFunc(ctx, params)
	}
	return nil, 0, nil
}

func (m *MockTourService) UpdateTour(ctx context.Context, id primitive.ObjectID, req *models.UpdateTourRequest) (*models.Tour, error) {
	if m.UpdateTourFunc != nil {
		return m.UpdateTourFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockTourService) DeleteTour(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteTourFunc != nil {
		return m.DeleteTourFunc(ctx, id)
	}
	return nil
}

func (m *MockTourService) Stats(ctx context.Context) ([]models.TourStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return nil, nil
}

func (m *MockTourService) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlanEntry, error) {
	if m.MonthlyPlanFunc != nil {
		return m.MonthlyPlanFunc(ctx, year)
	}
	return nil, nil
}

func (m *MockTourService) ToursWithin(ctx context.Context, distance, lat, lng float64, unit string) ([]models.Tour, error) {
	if m.ToursWithinFunc != nil {
		return m.ToursWithinFunc(ctx, distance, lat, lng, unit)
	}
	return nil, nil
}

func (m *MockTourService) Distances(ctx context.Context, lat, lng float64, unit string) ([]models.TourDistance, error) {
	if m.DistancesFunc != nil {
		return m.DistancesFunc(ctx, lat, lng, unit)
	}
	return nil, nil
}

// MockReviewService is a mock implementation of ReviewServicer.
type MockReviewService struct {
	CreateReviewFunc func(ctx context.Context, tourID primitive.ObjectID, user *models.User, req *models.CreateReviewRequest) (*models.Review, error)
	GetReviewFunc    func(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	ListReviewsFunc  func(ctx context.Context, tourID primitive.ObjectID, params url.Values) ([]models.Review, int, error)
	UpdateReviewFunc func(ctx context.Context, id primitive.ObjectID, req *models.UpdateReviewRequest) (*models.Review, error)
	DeleteReviewFunc func(ctx context.Context, id primitive.ObjectID) error
}

func (m *MockReviewService) CreateReview(ctx context.Context, tourID primitive.ObjectID, user *models.User, req *models.CreateReviewRequest) (*models.Review, error) {
	if m.CreateReviewFunc != nil {
		return m.CreateReviewFunc(ctx, tourID, user, req)
	}
	return nil, nil
}

func (m *MockReviewService) GetReview(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	if m.GetReviewFunc != nil {
		return m.GetReviewFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockReviewService) ListReviews(ctx context.Context, tourID primitive.ObjectID, params url.Values) ([]models.Review, int, error) {
	if m.ListReviewsFunc != nil {
		return m.ListReviewsFunc(ctx, tourID, params)
	}
	return nil, 0, nil
}

func (m *MockReviewService) UpdateReview(ctx context.Context, id primitive.ObjectID, req *models.UpdateReviewRequest) (*models.Review, error) {
	if m.UpdateReviewFunc != nil {
		return m.UpdateReviewFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockReviewService) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteReviewFunc != nil {
		return m.DeleteReviewFunc(ctx, id)
	}
	return nil
}

// MockBookingService is a mock implementation of BookingServicer.
type MockBookingService struct {
	CreateCheckoutSessionFunc     func(ctx context.Context, tourID primitive.ObjectID, user *models.User) (*payment.CheckoutSession, error)
	CreateBookingFromRedirectFunc func(ctx context.Context, tourID, userID primitive.ObjectID, price float64) (*models.Booking, error)
	ConfirmCheckoutFunc           func(ctx context.Context, payload []byte, signature string) error
	MyBookedToursFunc             func(ctx context.Context, userID primitive.ObjectID) ([]models.Tour, error)
	CreateBookingFunc             func(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error)
	GetBookingFunc                func(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	ListBookingsFunc              func(ctx context.Context, params url.Values) ([]models.Booking, int, error)
	UpdateBookingFunc             func(ctx context.Context, id primitive.ObjectID, req *models.UpdateBookingRequest) (*models.Booking, error)
	DeleteBookingFunc             func(ctx context.Context, id primitive.ObjectID) error
}

func (m *MockBookingService) CreateCheckoutSession(ctx context.Context, tourID primitive.ObjectID, user *models.User) (*payment.CheckoutSession, error) {
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, tourID, user)
	}
	return nil, nil
}

func (m *MockBookingService) CreateBookingFromRedirect(ctx context.Context, tourID, userID primitive.ObjectID, price float64) (*models.Booking, error) {
	if m.CreateBookingFromRedirectFunc != nil {
		return m.CreateBookingFromRedirectFunc(ctx, tourID, userID, price)
	}
	return nil, nil
}

func (m *MockBookingService) ConfirmCheckout(ctx context.Context, payload []byte, signature string) error {
	if m.ConfirmCheckoutFunc != nil {
		return m.ConfirmCheckoutFunc(ctx, payload, signature)
	}
	return nil
}

func (m *MockBookingService) MyBookedTours(ctx context.Context, userID primitive.ObjectID) ([]models.Tour, error) {
	if m.MyBookedToursFunc != nil {
		return m.MyBookedToursFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBookingService) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
	if m.CreateBookingFunc != nil {
		return m.CreateBookingFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockBookingService) GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	if m.GetBookingFunc != nil {
		return m.GetBookingFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBookingService) ListBookings(ctx context.Context, params url.Values) ([]models.Booking, int, error) {
	if m.ListBookingsFunc != nil {
		return m.ListBookingsFunc(ctx, params)
	}
	return nil, 0, nil
}

func (m *MockBookingService) UpdateBooking(ctx context.Context, id primitive.ObjectID, req *models.UpdateBookingRequest) (*models.Booking, error) {
	if m.UpdateBookingFunc != nil {
		return m.UpdateBookingFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockBookingService) DeleteBooking(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteBookingFunc != nil {
		return m.DeleteBookingFunc(ctx, id)
	}
	return nil
}
