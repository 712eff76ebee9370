package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	apperrors "tours-api/internal/errors"
	mailermocks "tours-api/internal/mailer/mocks"
	"tours-api/internal/models"
	"tours-api/internal/queue"
	repomocks "tours-api/internal/repository/mocks"
	"tours-api/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestAuthService(userRepo *repomocks.MockUserRepository, m *mailermocks.MockMailer, q queue.Queue) *AuthService {
	return NewAuthService(AuthServiceConfig{
		UserRepo:      userRepo,
		JWTManager:    auth.NewJWTManager("test-secret", time.Hour),
		TokenExpiry:   time.Hour,
		ResetTokens:   auth.NewResetTokenGenerator(),
		Mailer:        m,
		EmailQueue:    q,
		PublicBaseURL: "http://localhost:8080",
	})
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("hashes the password and never exposes it", func(t *testing.T) {
		var stored *models.User
		userRepo := &repomocks.MockUserRepository{
			CreateFunc: func(ctx context.Context, user *models.User) error {
				user.ID = primitive.NewObjectID()
				stored = user
				return nil
			},
		}

		svc := newTestAuthService(userRepo, &mailermocks.MockMailer{}, queue.NewMemoryQueue(10))
		result, err := svc.Signup(context.Background(), &models.SignupRequest{
			Name:            "Jane Doe",
			Email:           "jane@example.com",
			Password:        "pass1234word",
			PasswordConfirm: "pass1234word",
		})

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEqual(t, "pass1234word", stored.Password)
		assert.NoError(t, auth.CheckPassword("pass1234word", stored.Password))
		assert.Equal(t, models.RoleUser, stored.Role)

		assert.NotEmpty(t, result.Token)
		assert.Empty(t, result.User.Password)

		// The hash must not leak through serialization either.
		raw, err := json.Marshal(result.User)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "password")
	})

	t.Run("enqueues a welcome email", func(t *testing.T) {
		userRepo := &repomocks.MockUserRepository{
			CreateFunc: func(ctx context.Context, user *models.User) error {
				user.ID = primitive.NewObjectID()
				return nil
			},
		}
		q := queue.NewMemoryQueue(10)

		svc := newTestAuthService(userRepo, &mailermocks.MockMailer{}, q)
		_, err := svc.Signup(context.Background(), &models.SignupRequest{
			Name:            "Jane Doe",
			Email:           "jane@example.com",
			Password:        "pass1234word",
			PasswordConfirm: "pass1234word",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, q.Len())
	})

	t.Run("full email queue does not fail the signup", func(t *testing.T) {
		userRepo := &repomocks.MockUserRepository{
			CreateFunc: func(ctx context.Context, user *models.User) error {
				user.ID = primitive.NewObjectID()
				return nil
			},
		}
		q := queue.NewMemoryQueue(1)
		require.NoError(t, q.Enqueue(queue.EmailJob{}))

		svc := newTestAuthService(userRepo, &mailermocks.MockMailer{}, q)
		result, err := svc.Signup(context.Background(), &models.SignupRequest{
			Name:            "Jane Doe",
			Email:           "jane@example.com",
			Password:        "pass1234word",
			PasswordConfirm: "pass1234word",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("duplicate email is surfaced", func(t *testing.T) {
		userRepo := &repomocks.MockUserRepository{
			CreateFunc: func(ctx context.Context, user *models.User) error {
				return apperrors.ErrEmailTaken
			},
		}

		svc := newTestAuthService(userRepo, &mailermocks.MockMailer{}, queue.NewMemoryQueue(10))
		_, err := svc.Signup(context.Background(), &models.SignupRequest{
			Name:            "Jane Doe",
			Email:           "jane@example.com",
			Password:        "pass1234word",
			PasswordConfirm: "pass1234word",
		})

		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("pass1234word")
	require.NoError(t, err)

	existing := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "jane@example.com",
		Password: hash,
		Role:     models.RoleUser,
	}

	t.Run("valid credentials return a session", func(t *testing.T) {
		userRepo := &repomocks.MockUserRepository{
			FindByEmailWithPasswordFunc: func(ctx context.Context, email string) (*models.User, error) {
				return existing, nil
			},
		}

		svc := newTestAuthService(userRepo, &mailermocks.MockMailer{}, nil)
		result, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "jane@example.com",
			Password: "pass1234word",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Empty(t, result.User.Password)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		unknownRepo := &repomocks.MockUserRepository{
			FindByEmailWithPasswordFunc: func(ctx context.Context, email string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		knownRepo := &repomocks.MockUserRepository{
			FindByEmailWithPasswordFunc: func(ctx context.Context, email string) (*models.User, error) {
				return existing, nil
			},
		}

		svc := newTestAuthService(unknownRepo, &mailermocks.MockMailer{}, nil)
		_, errUnknown := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "pass1234word",
		})

		svc = newTestAuthService(knownRepo, &mailermocks.MockMailer{}, nil)
		_, errWrong := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "jane@example.com",
			Password: "wrongpassword",
		})

		assert.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, apperrors.ErrInvalidCredentials)
		assert.Equal(t, errUnknown, errWrong)
	})
}

func TestAuthService_Verify(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("valid token loads the user", func(t *testing.T) {
		userRepo := &repomocks.MockUserRepository{
			FindByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				assert.Equal(t, userID, id)
				return &models.User{ID: userID, Email: "jane@example.com"}, nil
			},
		}

		svc := newTestAuthService(userRepo, &mailermocks.MockMailer{}, nil)
		token, err := svc.jwtManager.GenerateToken(userID.Hex())
		require.NoError(t, err)

		user, err := svc.Verify(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc := newTestAuthService(&repomocks.MockUserRepository{}, &mailermocks.MockMailer{}, nil)
		_, err := svc.Verify(context.Background(), "garbage")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("token of a deleted user is rejected", func(t *testing.T) {
		userRepo := &repomocks.MockUserRepository{
			FindByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}

		svc := newTestAuthService(userRepo, &mailermocks.MockMailer{}, nil)
		token, err := svc.jwtManager.GenerateToken(userID.Hex())
		require.NoError(t, err)

		_, err = svc.Verify(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("token issued before a password change is rejected", func(t *testing.T) {
		changedAt := time.Now().Add(time.Minute)
		userRepo := &repomocks.MockUserRepository{
			FindByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				return &models.User{ID: userID, PasswordChangedAt: &changedAt}, nil
			},
		}

		svc := newTestAuthService(userRepo, &mailermocks.MockMailer{}, nil)
		token, err := svc.jwtManager.GenerateToken(userID.Hex())
		require.NoError(t, err)

		_, err = svc.Verify(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrPasswordChanged)
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	userID := primitive.NewObjectID()
	existing := &models.User{ID: userID, Email: "jane@example.com", Name: "Jane Doe"}

	t.Run("stores the token hash and mails the raw token", func(t *testing.T) {
		var storedHash string
		var storedExpiry time.Time
		var mailedURL string

		userRepo := &repomocks.MockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return existing, nil
			},
			SetResetTokenFunc: func(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error {
				storedHash = tokenHash
				storedExpiry = expires
				return nil
			},
		}
		m := &mailermocks.MockMailer{
			SendPasswordResetFunc: func(user *models.User, resetURL string) error {
				mailedURL = resetURL
				return nil
			},
		}

		svc := newTestAuthService(userRepo, m, nil)
		err := svc.ForgotPassword(context.Background(), "jane@example.com")
		require.NoError(t, err)

		require.NotEmpty(t, storedHash)
		require.NotEmpty(t, mailedURL)

		// The emailed link carries the raw token; only its hash is stored.
		assert.NotContains(t, mailedURL, storedHash)
		rawToken := mailedURL[len("http://localhost:8080/api/v1/users/resetPassword/"):]
		assert.Equal(t, storedHash, svc.resetTokens.Hash(rawToken))

		assert.WithinDuration(t, time.Now().Add(10*time.Minute), storedExpiry, 5*time.Second)
	})

	t.Run("unknown email is surfaced", func(t *testing.T) {
		userRepo := &repomocks.MockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}

		svc := newTestAuthService(userRepo, &mailermocks.MockMailer{}, nil)
		err := svc.ForgotPassword(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("failed delivery rolls the token back", func(t *testing.T) {
		cleared := false
		userRepo := &repomocks.MockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return existing, nil
			},
			SetResetTokenFunc: func(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error {
				return nil
			},
			ClearResetTokenFunc: func(ctx context.Context, id primitive.ObjectID) error {
				assert.Equal(t, userID, id)
				cleared = true
				return nil
			},
		}
		m := &mailermocks.MockMailer{
			SendPasswordResetFunc: func(user *models.User, resetURL string) error {
				return assert.AnError
			},
		}

		svc := newTestAuthService(userRepo, m, nil)
		err := svc.ForgotPassword(context.Background(), "jane@example.com")

		assert.ErrorIs(t, err, apperrors.ErrEmailDelivery)
		assert.True(t, cleared)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("valid token sets the password and logs in", func(t *testing.T) {
		var lookupHash string
		var newHash string
		var changedAt time.Time

		userRepo := &repomocks.MockUserRepository{
			FindByResetTokenHashFunc: func(ctx context.Context, tokenHash string) (*models.User, error) {
				lookupHash = tokenHash
				return &models.User{ID: userID, Email: "jane@example.com"}, nil
			},
			UpdatePasswordFunc: func(ctx context.Context, id primitive.ObjectID, passwordHash string, at time.Time) (*models.User, error) {
				newHash = passwordHash
				changedAt = at
				return &models.User{ID: userID, Email: "jane@example.com"}, nil
			},
		}

		svc := newTestAuthService(userRepo, &mailermocks.MockMailer{}, nil)
		result, err := svc.ResetPassword(context.Background(), "raw-token", &models.ResetPasswordRequest{
			Password:        "newpassword1",
			PasswordConfirm: "newpassword1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, svc.resetTokens.Hash("raw-token"), lookupHash)
		assert.NoError(t, auth.CheckPassword("newpassword1", newHash))
		assert.True(t, changedAt.Before(time.Now()))
	})

	t.Run("unknown or expired token", func(t *testing.T) {
		userRepo := &repomocks.MockUserRepository{
			FindByResetTokenHashFunc: func(ctx context.Context, tokenHash string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}

		svc := newTestAuthService(userRepo, &mailermocks.MockMailer{}, nil)
		_, err := svc.ResetPassword(context.Background(), "stale-token", &models.ResetPasswordRequest{
			Password:        "newpassword1",
			PasswordConfirm: "newpassword1",
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
	})
}

func TestAuthService_UpdatePassword(t *testing.T) {
	userID := primitive.NewObjectID()
	hash, err := auth.HashPassword("oldpassword1")
	require.NoError(t, err)

	t.Run("correct current password", func(t *testing.T) {
		userRepo := &repomocks.MockUserRepository{
			FindByIDWithPasswordFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				return &models.User{ID: userID, Password: hash}, nil
			},
			UpdatePasswordFunc: func(ctx context.Context, id primitive.ObjectID, passwordHash string, at time.Time) (*models.User, error) {
				return &models.User{ID: userID}, nil
			},
		}

		svc := newTestAuthService(userRepo, &mailermocks.MockMailer{}, nil)
		result, err := svc.UpdatePassword(context.Background(), userID, &models.UpdatePasswordRequest{
			PasswordCurrent: "oldpassword1",
			Password:        "newpassword1",
			PasswordConfirm: "newpassword1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("wrong current password", func(t *testing.T) {
		userRepo := &repomocks.MockUserRepository{
			FindByIDWithPasswordFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				return &models.User{ID: userID, Password: hash}, nil
			},
		}

		svc := newTestAuthService(userRepo, &mailermocks.MockMailer{}, nil)
		_, err := svc.UpdatePassword(context.Background(), userID, &models.UpdatePasswordRequest{
			PasswordCurrent: "wrongpassword",
			Password:        "newpassword1",
			PasswordConfirm: "newpassword1",
		})

		assert.ErrorIs(t, err, apperrors.ErrWrongPassword)
	})
}
