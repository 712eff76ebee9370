package repository

import (
	"context"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
	"tours-api/internal/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository defines the interface for booking data operations.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Find(ctx context.Context, q *query.Builder) ([]models.Booking, int, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Booking, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// bookingRepository implements BookingRepository using MongoDB.
type bookingRepository struct {
	*Repository[models.Booking, *models.Booking]
}

// NewBookingRepository creates a new BookingRepository.
func NewBookingRepository(db *mongo.Database) BookingRepository {
	return &bookingRepository{
		Repository: NewRepository[models.Booking](db, "bookings", apperrors.ErrBookingNotFound),
	}
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	cursor, err := r.Collection().Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
