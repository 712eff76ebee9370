package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
	"tours-api/internal/payment"
	"tours-api/internal/query"
	"tours-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingService handles checkout and booking business logic.
type BookingService struct {
	bookingRepo   repository.BookingRepository
	tourRepo      repository.TourRepository
	userRepo      repository.UserRepository
	provider      payment.Provider
	publicBaseURL string
	currency      string
}

// BookingServiceConfig holds configuration for BookingService.
type BookingServiceConfig struct {
	BookingRepo   repository.BookingRepository
	TourRepo      repository.TourRepository
	UserRepo      repository.UserRepository
	Provider      payment.Provider
	PublicBaseURL string
	Currency      string
}

// NewBookingService creates a new BookingService.
func NewBookingService(cfg BookingServiceConfig) *BookingService {
	return &BookingService{
		bookingRepo:   cfg.BookingRepo,
		tourRepo:      cfg.TourRepo,
		userRepo:      cfg.UserRepo,
		provider:      cfg.Provider,
		publicBaseURL: cfg.PublicBaseURL,
		currency:      cfg.Currency,
	}
}

// CreateCheckoutSession starts a provider checkout for one tour spot. The
// session descriptor goes back to the client as-is.
func (s *BookingService) CreateCheckoutSession(ctx context.Context, tourID primitive.ObjectID, user *models.User) (*payment.CheckoutSession, error) {
	tour, err := s.tourRepo.FindByID(ctx, tourID)
	if err != nil {
		return nil, err
	}

	successURL := fmt.Sprintf("%s/my-tours/?tour=%s&user=%s&price=%g",
		s.publicBaseURL, tour.ID.Hex(), user.ID.Hex(), tour.Price)

	session, err := s.provider.CreateCheckoutSession(ctx, &payment.CheckoutParams{
		TourID:        tour.ID.Hex(),
		TourName:      fmt.Sprintf("%s Tour", tour.Name),
		TourSummary:   tour.Summary,
		ImageURL:      fmt.Sprintf("%s/img/tours/%s", s.publicBaseURL, tour.ImageCover),
		Amount:        int64(tour.Price * 100),
		Currency:      s.currency,
		CustomerEmail: user.Email,
		SuccessURL:    successURL,
		CancelURL:     fmt.Sprintf("%s/tour/%s", s.publicBaseURL, tour.Slug),
	})
	if err != nil {
		return nil, apperrors.ErrPaymentProvider
	}
	return session, nil
}

// CreateBookingFromRedirect records a booking from the success-redirect query
// string. TEMPORARY: anyone who knows the URL shape can book without paying;
// the webhook flow in ConfirmCheckout is the trusted path.
func (s *BookingService) CreateBookingFromRedirect(ctx context.Context, tourID, userID primitive.ObjectID, price float64) (*models.Booking, error) {
	log.Printf("Recording unverified redirect booking: tour=%s user=%s", tourID.Hex(), userID.Hex())
	return s.createPaidBooking(ctx, tourID, userID, price)
}

// ConfirmCheckout handles the provider's checkout-completed webhook. The
// payload signature is verified before anything is trusted.
func (s *BookingService) ConfirmCheckout(ctx context.Context, payload []byte, signature string) error {
	completed, err := s.provider.ParseWebhookEvent(payload, signature)
	if err != nil {
		return apperrors.ErrPaymentProvider
	}
	if completed == nil {
		return nil
	}

	tourID, err := primitive.ObjectIDFromHex(completed.TourID)
	if err != nil {
		return apperrors.ErrValidation
	}

	user, err := s.userRepo.FindByEmail(ctx, completed.CustomerEmail)
	if err != nil {
		return err
	}

	_, err = s.createPaidBooking(ctx, tourID, user.ID, float64(completed.AmountTotal)/100)
	return err
}

// MyBookedTours returns the tours the user has booked.
func (s *BookingService) MyBookedTours(ctx context.Context, userID primitive.ObjectID) ([]models.Tour, error) {
	bookings, err := s.bookingRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	tours := []models.Tour{}
	for _, booking := range bookings {
		tour, err := s.tourRepo.FindByID(ctx, booking.Tour)
		if err != nil {
			if errors.Is(err, apperrors.ErrTourNotFound) {
				continue
			}
			return nil, err
		}
		tours = append(tours, *tour)
	}
	return tours, nil
}

// CreateBooking is the admin path for recording a booking directly.
func (s *BookingService) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
	tourID, err := primitive.ObjectIDFromHex(req.Tour)
	if err != nil {
		return nil, apperrors.ErrValidation
	}
	userID, err := primitive.ObjectIDFromHex(req.User)
	if err != nil {
		return nil, apperrors.ErrValidation
	}

	paid := true
	if req.Paid != nil {
		paid = *req.Paid
	}

	booking := &models.Booking{
		Tour:  tourID,
		User:  userID,
		Price: req.Price,
		Paid:  paid,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetBooking returns a booking by id.
func (s *BookingService) GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.bookingRepo.FindByID(ctx, id)
}

// ListBookings lists bookings through the query builder.
func (s *BookingService) ListBookings(ctx context.Context, params url.Values) ([]models.Booking, int, error) {
	return s.bookingRepo.Find(ctx, query.New(params))
}

// UpdateBooking applies a partial update.
func (s *BookingService) UpdateBooking(ctx context.Context, id primitive.ObjectID, req *models.UpdateBookingRequest) (*models.Booking, error) {
	set := bson.M{}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Paid != nil {
		set["paid"] = *req.Paid
	}
	return s.bookingRepo.UpdateByID(ctx, id, set)
}

// DeleteBooking removes a booking.
func (s *BookingService) DeleteBooking(ctx context.Context, id primitive.ObjectID) error {
	return s.bookingRepo.DeleteByID(ctx, id)
}

func (s *BookingService) createPaidBooking(ctx context.Context, tourID, userID primitive.ObjectID, price float64) (*models.Booking, error) {
	booking := &models.Booking{
		Tour:  tourID,
		User:  userID,
		Price: price,
		Paid:  true,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}
