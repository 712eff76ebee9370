package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
	"tours-api/internal/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user data operations.
//
// Soft-deleted users (active=false) are excluded from every read path; the
// WithInactive variants are the explicit override. The password hash is only
// decoded by the WithPassword variants.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDWithInactive(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDWithPassword(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error)
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*models.User, error)
	Find(ctx context.Context, q *query.Builder) ([]models.User, int, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
	UpdateByIDWithInactive(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string, changedAt time.Time) (*models.User, error)
	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error
	ClearResetToken(ctx context.Context, id primitive.ObjectID) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// userRepository implements UserRepository using MongoDB.
type userRepository struct {
	*Repository[models.User, *models.User]
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		Repository: NewRepository[models.User](db, "users", apperrors.ErrUserNotFound),
	}
}

// hidePassword keeps the hash out of decoded documents on normal reads.
var hidePassword = bson.M{"password": 0}

// activeOnly extends a filter to exclude soft-deleted users.
func activeOnly(filter bson.M) bson.M {
	filter["active"] = bson.M{"$ne": false}
	return filter
}

// NormalizeEmail lower-cases an email address for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a new user with defaults applied. A duplicate email
// surfaces as ErrEmailTaken.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Photo == "" {
		user.Photo = "default.jpg"
	}
	user.Active = true

	if err := r.Repository.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return apperrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, activeOnly(bson.M{"_id": id}), hidePassword)
}

func (r *userRepository) FindByIDWithInactive(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, hidePassword)
}

func (r *userRepository) FindByIDWithPassword(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, activeOnly(bson.M{"_id": id}), nil)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, activeOnly(bson.M{"email": NormalizeEmail(email)}), hidePassword)
}

func (r *userRepository) FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, activeOnly(bson.M{"email": NormalizeEmail(email)}), nil)
}

// FindByResetTokenHash matches the stored token hash and requires the expiry
// to still be in the future.
func (r *userRepository) FindByResetTokenHash(ctx context.Context, tokenHash string) (*models.User, error) {
	filter := activeOnly(bson.M{
		"passwordResetToken":   tokenHash,
		"passwordResetExpires": bson.M{"$gt": time.Now()},
	})
	return r.findOne(ctx, filter, nil)
}

// Find lists users through the query builder, always scoped to active users.
func (r *userRepository) Find(ctx context.Context, q *query.Builder) ([]models.User, int, error) {
	activeOnly(q.Filter())
	return r.Repository.Find(ctx, q)
}

// UpdateByID applies a partial profile update to an active user. A duplicate
// email surfaces as ErrEmailTaken.
func (r *userRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	return r.update(ctx, activeOnly(bson.M{"_id": id}), set)
}

// UpdateByIDWithInactive is the admin variant: it matches soft-deleted users
// too, so setting active back to true reactivates an account.
func (r *userRepository) UpdateByIDWithInactive(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	return r.update(ctx, bson.M{"_id": id}, set)
}

func (r *userRepository) update(ctx context.Context, filter, set bson.M) (*models.User, error) {
	if email, ok := set["email"].(string); ok {
		set["email"] = NormalizeEmail(email)
	}
	user, err := r.UpdateOne(ctx, filter, set)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// UpdatePassword stores a new hash, stamps passwordChangedAt and clears any
// pending reset token in the same write.
func (r *userRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string, changedAt time.Time) (*models.User, error) {
	update := bson.M{
		"$set": bson.M{
			"password":          passwordHash,
			"passwordChangedAt": changedAt,
			"updatedAt":         time.Now(),
		},
		"$unset": bson.M{
			"passwordResetToken":   "",
			"passwordResetExpires": "",
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(hidePassword)

	var user models.User
	err := r.Collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetResetToken stores the hash of a freshly issued reset token with its
// expiry.
func (r *userRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error {
	update := bson.M{"$set": bson.M{
		"passwordResetToken":   tokenHash,
		"passwordResetExpires": expires,
	}}
	return r.updateRaw(ctx, id, update)
}

// ClearResetToken rolls back a pending reset token, e.g. after a failed
// delivery.
func (r *userRepository) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$unset": bson.M{
		"passwordResetToken":   "",
		"passwordResetExpires": "",
	}}
	return r.updateRaw(ctx, id, update)
}

// Deactivate soft-deletes a user.
func (r *userRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	return r.updateRaw(ctx, id, bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now()}})
}

func (r *userRepository) updateRaw(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := r.Collection().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
