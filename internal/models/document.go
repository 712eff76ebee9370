package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document methods let the generic repository assign ids and maintain
// timestamps without knowing the concrete type.

// GetID returns the user's id.
func (u *User) GetID() primitive.ObjectID { return u.ID }

// SetID sets the user's id.
func (u *User) SetID(id primitive.ObjectID) { u.ID = id }

// Touch updates the timestamps around a write.
func (u *User) Touch(now time.Time, isNew bool) {
	if isNew {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

// GetID returns the tour's id.
func (t *Tour) GetID() primitive.ObjectID { return t.ID }

// SetID sets the tour's id.
func (t *Tour) SetID(id primitive.ObjectID) { t.ID = id }

// Touch updates the timestamps around a write.
func (t *Tour) Touch(now time.Time, isNew bool) {
	if isNew {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

// GetID returns the review's id.
func (r *Review) GetID() primitive.ObjectID { return r.ID }

// SetID sets the review's id.
func (r *Review) SetID(id primitive.ObjectID) { r.ID = id }

// Touch updates the timestamps around a write.
func (r *Review) Touch(now time.Time, isNew bool) {
	if isNew {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}

// GetID returns the booking's id.
func (b *Booking) GetID() primitive.ObjectID { return b.ID }

// SetID sets the booking's id.
func (b *Booking) SetID(id primitive.ObjectID) { b.ID = id }

// Touch updates the timestamps around a write.
func (b *Booking) Touch(now time.Time, isNew bool) {
	if isNew {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}
