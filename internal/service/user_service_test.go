package service

import (
	"context"
	"strings"
	"testing"
	"time"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
	repomocks "tours-api/internal/repository/mocks"
	storagemocks "tours-api/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserService_UpdateMe(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("updates only the provided fields", func(t *testing.T) {
		var gotSet bson.M
		userRepo := &repomocks.MockUserRepository{
			UpdateByIDFunc: func(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
				gotSet = set
				return &models.User{ID: id}, nil
			},
		}

		svc := NewUserService(userRepo, &storagemocks.MockStorage{})
		name := "Jane Doe"
		_, err := svc.UpdateMe(context.Background(), userID, &models.UpdateMeRequest{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, bson.M{"name": "Jane Doe"}, gotSet)
	})
}

func TestUserService_DeleteMe(t *testing.T) {
	userID := primitive.NewObjectID()

	deactivated := false
	userRepo := &repomocks.MockUserRepository{
		DeactivateFunc: func(ctx context.Context, id primitive.ObjectID) error {
			assert.Equal(t, userID, id)
			deactivated = true
			return nil
		},
		DeleteByIDFunc: func(ctx context.Context, id primitive.ObjectID) error {
			t.Fatal("self-delete must not remove the document")
			return nil
		},
	}

	svc := NewUserService(userRepo, &storagemocks.MockStorage{})
	require.NoError(t, svc.DeleteMe(context.Background(), userID))
	assert.True(t, deactivated)
}

func TestUserService_PhotoUploadURL(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("presigns a jpeg upload under the user's prefix", func(t *testing.T) {
		var gotKey, gotContentType string
		var gotExpiry time.Duration

		store := &storagemocks.MockStorage{
			GetPresignedPutURLFunc: func(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
				gotKey = key
				gotContentType = contentType
				gotExpiry = expiry
				return "https://bucket.example.com/" + key, nil
			},
		}

		svc := NewUserService(&repomocks.MockUserRepository{}, store)
		uploadURL, key, err := svc.PhotoUploadURL(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, gotKey, key)
		assert.True(t, strings.Contains(key, userID.Hex()))
		assert.Equal(t, "image/jpeg", gotContentType)
		assert.Equal(t, 15*time.Minute, gotExpiry)
		assert.Equal(t, "https://bucket.example.com/"+key, uploadURL)
	})

	t.Run("storage failure is surfaced", func(t *testing.T) {
		store := &storagemocks.MockStorage{
			GetPresignedPutURLFunc: func(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
				return "", assert.AnError
			},
		}

		svc := NewUserService(&repomocks.MockUserRepository{}, store)
		_, _, err := svc.PhotoUploadURL(context.Background(), userID)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestUserService_PhotoDownloadURL(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("presigns the user's current photo key", func(t *testing.T) {
		userRepo := &repomocks.MockUserRepository{
			FindByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				return &models.User{ID: id, Photo: "users/" + id.Hex() + "/12345.jpg"}, nil
			},
		}
		store := &storagemocks.MockStorage{
			GetPresignedURLFunc: func(ctx context.Context, key string, expiry time.Duration) (string, error) {
				assert.Equal(t, "users/"+userID.Hex()+"/12345.jpg", key)
				assert.Equal(t, time.Hour, expiry)
				return "https://bucket.example.com/" + key, nil
			},
		}

		svc := NewUserService(userRepo, store)
		downloadURL, err := svc.PhotoDownloadURL(context.Background(), userID)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(downloadURL, "https://bucket.example.com/"))
	})

	t.Run("unknown user is surfaced", func(t *testing.T) {
		userRepo := &repomocks.MockUserRepository{
			FindByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}

		svc := NewUserService(userRepo, &storagemocks.MockStorage{})
		_, err := svc.PhotoDownloadURL(context.Background(), userID)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("admin can change role and active status", func(t *testing.T) {
		var gotSet bson.M
		userRepo := &repomocks.MockUserRepository{
			UpdateByIDWithInactiveFunc: func(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
				gotSet = set
				return &models.User{ID: id}, nil
			},
		}

		svc := NewUserService(userRepo, &storagemocks.MockStorage{})
		role := models.RoleGuide
		active := false
		_, err := svc.UpdateUser(context.Background(), userID, &models.UpdateUserRequest{
			Role:   &role,
			Active: &active,
		})

		require.NoError(t, err)
		assert.Equal(t, bson.M{"role": models.RoleGuide, "active": false}, gotSet)
	})

	t.Run("reactivation reaches the unscoped update", func(t *testing.T) {
		var unscopedCalled bool
		userRepo := &repomocks.MockUserRepository{
			UpdateByIDWithInactiveFunc: func(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
				unscopedCalled = true
				assert.Equal(t, bson.M{"active": true}, set)
				return &models.User{ID: id, Active: true}, nil
			},
		}

		svc := NewUserService(userRepo, &storagemocks.MockStorage{})
		active := true
		user, err := svc.UpdateUser(context.Background(), userID, &models.UpdateUserRequest{Active: &active})

		require.NoError(t, err)
		assert.True(t, unscopedCalled)
		assert.True(t, user.Active)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		svc := NewUserService(&repomocks.MockUserRepository{}, &storagemocks.MockStorage{})
		_, err := svc.UpdateUser(context.Background(), userID, &models.UpdateUserRequest{})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
