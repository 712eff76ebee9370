package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tours-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRestrictTo(t *testing.T) {
	tests := []struct {
		name           string
		user           *models.User
		roles          []string
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "allowed role",
			user:           &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin},
			roles:          []string{models.RoleAdmin, models.RoleLeadGuide},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "forbidden role",
			user:           &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser},
			roles:          []string{models.RoleAdmin, models.RoleLeadGuide},
			expectedStatus: http.StatusForbidden,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Body.String(), "you do not have permission to perform this action")
			},
		},
		{
			name:           "no user in context",
			user:           nil,
			roles:          []string{models.RoleAdmin},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.user != nil {
					c.Set(CurrentUserKey, tt.user)
				}
			})
			router.GET("/admin", RestrictTo(tt.roles...), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}
