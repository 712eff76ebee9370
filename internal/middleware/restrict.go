package middleware

import (
	"tours-api/internal/authz"
	"tours-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// RestrictTo returns a middleware that limits a route to the given roles.
// Must run after Protect.
func RestrictTo(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil {
			response.Unauthorized(c, "you are not logged in; please log in to get access")
			c.Abort()
			return
		}

		if err := authz.Authorize(user, roles...); err != nil {
			response.Forbidden(c, "you do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}
