package service

import (
	"context"
	"net/url"
	"time"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
	"tours-api/internal/query"
	"tours-api/internal/repository"
	"tours-api/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// photoUploadExpiry is how long a presigned photo upload URL stays usable.
const photoUploadExpiry = 15 * time.Minute

// photoDownloadExpiry is how long a presigned photo download URL stays usable.
const photoDownloadExpiry = time.Hour

// UserService handles user profile and admin user management logic.
type UserService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, store storage.Storage) *UserService {
	return &UserService{userRepo: userRepo, storage: store}
}

// GetUser returns an active user by id.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// ListUsers lists active users through the query builder.
func (s *UserService) ListUsers(ctx context.Context, params url.Values) ([]models.User, int, error) {
	return s.userRepo.Find(ctx, query.New(params))
}

// UpdateMe updates the caller's own profile. Name, email and photo only;
// password changes go through the auth service.
func (s *UserService) UpdateMe(ctx context.Context, id primitive.ObjectID, req *models.UpdateMeRequest) (*models.User, error) {
	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.Photo != nil {
		set["photo"] = *req.Photo
	}
	return s.userRepo.UpdateByID(ctx, id, set)
}

// DeleteMe soft-deletes the caller's account. The document stays in the
// collection but disappears from every read path.
func (s *UserService) DeleteMe(ctx context.Context, id primitive.ObjectID) error {
	return s.userRepo.Deactivate(ctx, id)
}

// PhotoUploadURL returns a presigned upload URL and the object key for a new
// profile photo. The client uploads directly and then saves the key through
// UpdateMe.
func (s *UserService) PhotoUploadURL(ctx context.Context, id primitive.ObjectID) (string, string, error) {
	key := storage.UserPhotoKey(id.Hex(), time.Now().Unix())
	uploadURL, err := s.storage.GetPresignedPutURL(ctx, key, "image/jpeg", photoUploadExpiry)
	if err != nil {
		return "", "", err
	}
	return uploadURL, key, nil
}

// PhotoDownloadURL returns a presigned download URL for the user's current
// profile photo.
func (s *UserService) PhotoDownloadURL(ctx context.Context, id primitive.ObjectID) (string, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, user.Photo, photoDownloadExpiry)
}

// UpdateUser is the admin update path. It can change role and active status,
// but never touches passwords. It goes through the unscoped update so an
// admin can reactivate a soft-deleted account.
func (s *UserService) UpdateUser(ctx context.Context, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error) {
	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.Role != nil {
		set["role"] = *req.Role
	}
	if req.Active != nil {
		set["active"] = *req.Active
	}
	if len(set) == 0 {
		return nil, apperrors.ErrValidation
	}
	return s.userRepo.UpdateByIDWithInactive(ctx, id, set)
}

// DeleteUser is the admin hard delete.
func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	return s.userRepo.DeleteByID(ctx, id)
}
