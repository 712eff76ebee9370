// Package errors provides custom error types for the application.
package errors

import "errors"

// Generic resource errors
var (
	ErrValidation = errors.New("invalid input data")
	ErrDuplicate  = errors.New("duplicate field value")
)

// User errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("user with this email already exists")
	ErrPasswordRouteMisuse = errors.New("this route is not for password updates, use /updateMyPassword")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrPasswordChanged    = errors.New("password was changed recently, please log in again")
	ErrInvalidResetToken  = errors.New("reset token is invalid or has expired")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
)

// Tour errors
var (
	ErrTourNotFound = errors.New("tour not found")
)

// Review errors
var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("you have already reviewed this tour")
)

// Booking errors
var (
	ErrBookingNotFound = errors.New("booking not found")
)

// External collaborator errors
var (
	ErrEmailDelivery   = errors.New("there was an error sending the email, try again later")
	ErrPaymentProvider = errors.New("payment provider request failed")
)
