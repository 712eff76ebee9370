// Package service contains business logic for the application.
package service

import (
	"context"
	"net/url"

	"tours-api/internal/models"
	"tours-api/internal/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthServicer defines the interface for authentication operations.
type AuthServicer interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Verify(ctx context.Context, token string) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken string, req *models.ResetPasswordRequest) (*models.AuthResponse, error)
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, req *models.UpdatePasswordRequest) (*models.AuthResponse, error)
}

// UserServicer defines the interface for user operations.
type UserServicer interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ListUsers(ctx context.Context, params url.Values) ([]models.User, int, error)
	UpdateMe(ctx context.Context, id primitive.ObjectID, req *models.UpdateMeRequest) (*models.User, error)
	DeleteMe(ctx context.Context, id primitive.ObjectID) error
	PhotoUploadURL(ctx context.Context, id primitive.ObjectID) (uploadURL string, key string, err error)
	PhotoDownloadURL(ctx context.Context, id primitive.ObjectID) (string, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

// TourServicer defines the interface for tour operations.
type TourServicer interface {
	CreateTour(ctx context.Context, req *models.CreateTourRequest) (*models.Tour, error)
	GetTour(ctx context.Context, id primitive.ObjectID) (*models.TourDetail, error)
	GetTourBySlug(ctx context.Context, slug string) (*models.TourDetail, error)
	ListTours(ctx context.Context, params url.Values) ([]models.Tour, int, error)
	UpdateTour(ctx context.Context, id primitive.ObjectID, req *models.UpdateTourRequest) (*models.Tour, error)
	DeleteTour(ctx context.Context, id primitive.ObjectID) error
	Stats(ctx context.Context) ([]models.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlanEntry, error)
	ToursWithin(ctx context.Context, distance, lat, lng float64, unit string) ([]models.Tour, error)
	Distances(ctx context.Context, lat, lng float64, unit string) ([]models.TourDistance, error)
}

// ReviewServicer defines the interface for review operations.
type ReviewServicer interface {
	CreateReview(ctx context.Context, tourID primitive.ObjectID, user *models.User, req *models.CreateReviewRequest) (*models.Review, error)
	GetReview(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	ListReviews(ctx context.Context, tourID primitive.ObjectID, params url.Values) ([]models.Review, int, error)
	UpdateReview(ctx context.Context, id primitive.ObjectID, req *models.UpdateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, id primitive.ObjectID) error
}

// BookingServicer defines the interface for booking operations.
type BookingServicer interface {
	CreateCheckoutSession(ctx context.Context, tourID primitive.ObjectID, user *models.User) (*payment.CheckoutSession, error)
	CreateBookingFromRedirect(ctx context.Context, tourID, userID primitive.ObjectID, price float64) (*models.Booking, error)
	ConfirmCheckout(ctx context.Context, payload []byte, signature string) error
	MyBookedTours(ctx context.Context, userID primitive.ObjectID) ([]models.Tour, error)
	CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	ListBookings(ctx context.Context, params url.Values) ([]models.Booking, int, error)
	UpdateBooking(ctx context.Context, id primitive.ObjectID, req *models.UpdateBookingRequest) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id primitive.ObjectID) error
}

// Compile-time interface checks.
var (
	_ AuthServicer    = (*AuthService)(nil)
	_ UserServicer    = (*UserService)(nil)
	_ TourServicer    = (*TourService)(nil)
	_ ReviewServicer  = (*ReviewService)(nil)
	_ BookingServicer = (*BookingService)(nil)
)
