package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking records a purchased tour spot.
type Booking struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Tour      primitive.ObjectID `json:"tour" bson:"tour"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Price     float64            `json:"price" bson:"price"`
	Paid      bool               `json:"paid" bson:"paid"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateBookingRequest is the admin payload for creating a booking directly.
type CreateBookingRequest struct {
	Tour  string  `json:"tour" binding:"required"`
	User  string  `json:"user" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
	Paid  *bool   `json:"paid"`
}

// UpdateBookingRequest is the payload for a partial booking update.
type UpdateBookingRequest struct {
	Price *float64 `json:"price" binding:"omitempty,gt=0"`
	Paid  *bool    `json:"paid"`
}
