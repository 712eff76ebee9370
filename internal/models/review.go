package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a user's rating of a tour. A (tour, user) pair is unique,
// enforced by a compound index (see cmd/index).
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Review    string             `json:"review" bson:"review"`
	Rating    float64            `json:"rating" bson:"rating"`
	Tour      primitive.ObjectID `json:"tour" bson:"tour"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateReviewRequest is the payload for creating a review. Tour and User are
// optional in the body; on the nested route they default to the path tour id
// and the authenticated user.
type CreateReviewRequest struct {
	Review string  `json:"review" binding:"required"`
	Rating float64 `json:"rating" binding:"required,min=1,max=5"`
	Tour   string  `json:"tour" binding:"omitempty"`
	User   string  `json:"user" binding:"omitempty"`
}

// UpdateReviewRequest is the payload for a partial review update.
type UpdateReviewRequest struct {
	Review *string  `json:"review"`
	Rating *float64 `json:"rating" binding:"omitempty,min=1,max=5"`
}
