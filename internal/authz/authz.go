// Package authz provides role-based authorization checks.
package authz

import (
	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
)

// Authorize checks whether the user's role is in the allowed set. Pure
// predicate, no I/O: the user has already been authenticated and loaded.
func Authorize(user *models.User, allowedRoles ...string) error {
	for _, role := range allowedRoles {
		if user.Role == role {
			return nil
		}
	}
	return apperrors.ErrForbidden
}
