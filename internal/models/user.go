// Package models defines data structures for the application.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

// User represents a user account.
// Password and the reset-token fields never leave the server: they carry
// json:"-" and the repository strips them from read paths unless a caller
// explicitly asks for the credential fields.
type User struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	Name                 string             `json:"name" bson:"name" example:"Jane Doe"`
	Email                string             `json:"email" bson:"email" example:"jane@example.com"`
	Photo                string             `json:"photo" bson:"photo" example:"default.jpg"`
	Role                 string             `json:"role" bson:"role" example:"user"`
	Password             string             `json:"-" bson:"password"`
	PasswordChangedAt    *time.Time         `json:"-" bson:"passwordChangedAt,omitempty"`
	PasswordResetToken   string             `json:"-" bson:"passwordResetToken,omitempty"`
	PasswordResetExpires *time.Time         `json:"-" bson:"passwordResetExpires,omitempty"`
	Active               bool               `json:"-" bson:"active"`
	CreatedAt            time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
	UpdatedAt            time.Time          `json:"updatedAt" bson:"updatedAt" example:"2024-01-15T09:30:00Z"`
}

// PasswordChangedAfter reports whether the password was changed after the
// given token issuance time.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.After(issuedAt)
}

// SignupRequest is the payload for creating an account.
type SignupRequest struct {
	Name            string `json:"name" binding:"required,min=2" example:"Jane Doe"`
	Email           string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password        string `json:"password" binding:"required,min=8" example:"pass1234word"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password" example:"pass1234word"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"pass1234word"`
}

// UpdateMeRequest is the payload for a user updating their own profile.
// Password fields are deliberately absent; the handler rejects them.
type UpdateMeRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2" example:"Jane Doe"`
	Email *string `json:"email" binding:"omitempty,email" example:"new@example.com"`
	Photo *string `json:"photo" binding:"omitempty" example:"user-507f-169.jpeg"`
}

// UpdateUserRequest is the admin payload for updating any user.
type UpdateUserRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=2"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Role   *string `json:"role" binding:"omitempty,oneof=user guide lead-guide admin"`
	Active *bool   `json:"active"`
}

// ForgotPasswordRequest asks for a password-reset email.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"jane@example.com"`
}

// ResetPasswordRequest completes a password reset with the raw token from the
// emailed link.
type ResetPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
}

// UpdatePasswordRequest changes the password of a logged-in user.
type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
}

// AuthResponse is returned after signup, login and password mutations.
type AuthResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	ExpiresIn int    `json:"expiresIn" example:"86400"`
	User      User   `json:"user"`
}
