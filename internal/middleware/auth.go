// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"errors"
	"strings"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
	"tours-api/internal/service"
	"tours-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// Context keys for storing user data
const (
	CurrentUserKey = "currentUser"
)

// Protect returns a middleware that requires a valid session token and loads
// the authenticated user into the request context.
func Protect(authService service.AuthServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "you are not logged in; please log in to get access")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		user, err := authService.Verify(c.Request.Context(), parts[1])
		if err != nil {
			if errors.Is(err, apperrors.ErrPasswordChanged) {
				response.Unauthorized(c, "password was changed recently; please log in again")
			} else {
				response.Unauthorized(c, "invalid or expired token")
			}
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user from the context.
// Returns nil if the request did not pass through Protect.
func GetCurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
