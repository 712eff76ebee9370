// Package fixtures provides test data builders for unit and integration tests.
package fixtures

import (
	"fmt"
	"time"

	"tours-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ===== User Fixtures =====

// UserBuilder provides fluent API for building test users.
type UserBuilder struct {
	user models.User
}

// NewUser creates a new UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		user: models.User{
			ID:    primitive.NewObjectID(),
			Name:  "Test User",
			Email: fmt.Sprintf("test-%s@example.com", primitive.NewObjectID().Hex()[:8]),
			Photo: "default.jpg",
			Role:  models.RoleUser,
			// Placeholder bcrypt hash. Tests that log in hash their own
			// password via auth.HashPassword and use WithPassword.
			Password:  "$2a$12$wJNQqx4RqyuGXY5N1y6A/uFCOfJkTtTjgfMPG7QcFJpk5MSmnPGoq",
			Active:    true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

func (b *UserBuilder) WithID(id primitive.ObjectID) *UserBuilder {
	b.user.ID = id
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.Name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

func (b *UserBuilder) WithPassword(hash string) *UserBuilder {
	b.user.Password = hash
	return b
}

func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.user.Role = role
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.user.Role = models.RoleAdmin
	return b
}

func (b *UserBuilder) AsLeadGuide() *UserBuilder {
	b.user.Role = models.RoleLeadGuide
	return b
}

func (b *UserBuilder) AsGuide() *UserBuilder {
	b.user.Role = models.RoleGuide
	return b
}

func (b *UserBuilder) Deactivated() *UserBuilder {
	b.user.Active = false
	return b
}

func (b *UserBuilder) WithPasswordChangedAt(at time.Time) *UserBuilder {
	b.user.PasswordChangedAt = &at
	return b
}

func (b *UserBuilder) WithResetToken(tokenHash string, expires time.Time) *UserBuilder {
	b.user.PasswordResetToken = tokenHash
	b.user.PasswordResetExpires = &expires
	return b
}

func (b *UserBuilder) Build() models.User {
	return b.user
}

func (b *UserBuilder) BuildPtr() *models.User {
	return &b.user
}

// ===== Tour Fixtures =====

// TourBuilder provides fluent API for building test tours.
type TourBuilder struct {
	tour models.Tour
}

// NewTour creates a new TourBuilder with sensible defaults. Every tour gets a
// unique name so the unique slug index never trips between tests.
func NewTour() *TourBuilder {
	suffix := primitive.NewObjectID().Hex()[:8]
	return &TourBuilder{
		tour: models.Tour{
			ID:              primitive.NewObjectID(),
			Name:            fmt.Sprintf("Test Tour %s", suffix),
			Slug:            fmt.Sprintf("test-tour-%s", suffix),
			Duration:        5,
			MaxGroupSize:    25,
			Difficulty:      models.DifficultyEasy,
			RatingsAverage:  4.5,
			RatingsQuantity: 0,
			Price:           397,
			Summary:         "A test tour",
			ImageCover:      "tour-test-cover.jpg",
			StartLocation: &models.Location{
				Type:        "Point",
				Coordinates: []float64{-80.185942, 25.774772},
				Address:     "301 Biscayne Blvd, Miami, FL",
				Description: "Miami, USA",
			},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

func (b *TourBuilder) WithID(id primitive.ObjectID) *TourBuilder {
	b.tour.ID = id
	return b
}

func (b *TourBuilder) WithName(name string) *TourBuilder {
	b.tour.Name = name
	return b
}

func (b *TourBuilder) WithSlug(slug string) *TourBuilder {
	b.tour.Slug = slug
	return b
}

func (b *TourBuilder) WithPrice(price float64) *TourBuilder {
	b.tour.Price = price
	return b
}

func (b *TourBuilder) WithDifficulty(difficulty string) *TourBuilder {
	b.tour.Difficulty = difficulty
	return b
}

func (b *TourBuilder) WithRatings(average float64, quantity int) *TourBuilder {
	b.tour.RatingsAverage = average
	b.tour.RatingsQuantity = quantity
	return b
}

func (b *TourBuilder) WithStartDates(dates ...time.Time) *TourBuilder {
	b.tour.StartDates = dates
	return b
}

func (b *TourBuilder) WithStartLocation(lng, lat float64) *TourBuilder {
	b.tour.StartLocation = &models.Location{
		Type:        "Point",
		Coordinates: []float64{lng, lat},
	}
	return b
}

func (b *TourBuilder) WithGuides(guides ...primitive.ObjectID) *TourBuilder {
	b.tour.Guides = guides
	return b
}

func (b *TourBuilder) Build() models.Tour {
	return b.tour
}

func (b *TourBuilder) BuildPtr() *models.Tour {
	return &b.tour
}

// ===== Review Fixtures =====

// ReviewBuilder provides fluent API for building test reviews.
type ReviewBuilder struct {
	review models.Review
}

// NewReview creates a new ReviewBuilder with sensible defaults.
func NewReview() *ReviewBuilder {
	return &ReviewBuilder{
		review: models.Review{
			ID:        primitive.NewObjectID(),
			Review:    "A test review",
			Rating:    4,
			Tour:      primitive.NewObjectID(),
			User:      primitive.NewObjectID(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

func (b *ReviewBuilder) WithID(id primitive.ObjectID) *ReviewBuilder {
	b.review.ID = id
	return b
}

func (b *ReviewBuilder) WithRating(rating float64) *ReviewBuilder {
	b.review.Rating = rating
	return b
}

func (b *ReviewBuilder) WithText(text string) *ReviewBuilder {
	b.review.Review = text
	return b
}

func (b *ReviewBuilder) ForTour(tourID primitive.ObjectID) *ReviewBuilder {
	b.review.Tour = tourID
	return b
}

func (b *ReviewBuilder) ByUser(userID primitive.ObjectID) *ReviewBuilder {
	b.review.User = userID
	return b
}

func (b *ReviewBuilder) Build() models.Review {
	return b.review
}

func (b *ReviewBuilder) BuildPtr() *models.Review {
	return &b.review
}

// ===== Booking Fixtures =====

// BookingBuilder provides fluent API for building test bookings.
type BookingBuilder struct {
	booking models.Booking
}

// NewBooking creates a new BookingBuilder with sensible defaults.
func NewBooking() *BookingBuilder {
	return &BookingBuilder{
		booking: models.Booking{
			ID:        primitive.NewObjectID(),
			Tour:      primitive.NewObjectID(),
			User:      primitive.NewObjectID(),
			Price:     397,
			Paid:      true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

func (b *BookingBuilder) WithID(id primitive.ObjectID) *BookingBuilder {
	b.booking.ID = id
	return b
}

func (b *BookingBuilder) ForTour(tourID primitive.ObjectID) *BookingBuilder {
	b.booking.Tour = tourID
	return b
}

func (b *BookingBuilder) ByUser(userID primitive.ObjectID) *BookingBuilder {
	b.booking.User = userID
	return b
}

func (b *BookingBuilder) WithPrice(price float64) *BookingBuilder {
	b.booking.Price = price
	return b
}

func (b *BookingBuilder) Unpaid() *BookingBuilder {
	b.booking.Paid = false
	return b
}

func (b *BookingBuilder) Build() models.Booking {
	return b.booking
}

func (b *BookingBuilder) BuildPtr() *models.Booking {
	return &b.booking
}
