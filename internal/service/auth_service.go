package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/mailer"
	"tours-api/internal/models"
	"tours-api/internal/queue"
	"tours-api/internal/repository"
	"tours-api/pkg/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// resetTokenTTL is how long an emailed password-reset link stays valid.
const resetTokenTTL = 10 * time.Minute

// AuthService handles authentication business logic.
type AuthService struct {
	userRepo      repository.UserRepository
	jwtManager    auth.TokenManager
	tokenExpiry   time.Duration
	resetTokens   auth.ResetTokenGenerator
	mailer        mailer.Mailer
	emailQueue    queue.Queue
	publicBaseURL string
}

// AuthServiceConfig holds configuration for AuthService.
type AuthServiceConfig struct {
	UserRepo      repository.UserRepository
	JWTManager    auth.TokenManager
	TokenExpiry   time.Duration
	ResetTokens   auth.ResetTokenGenerator
	Mailer        mailer.Mailer
	EmailQueue    queue.Queue
	PublicBaseURL string
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:      cfg.UserRepo,
		jwtManager:    cfg.JWTManager,
		tokenExpiry:   cfg.TokenExpiry,
		resetTokens:   cfg.ResetTokens,
		mailer:        cfg.Mailer,
		emailQueue:    cfg.EmailQueue,
		publicBaseURL: cfg.PublicBaseURL,
	}
}

// Signup creates a new user account and returns a session token.
// Role is never taken from the request; every signup starts as a plain user.
func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Welcome mail is fire and forget; a full queue must not fail the signup.
	if s.emailQueue != nil {
		job := queue.EmailJob{User: *user, URL: s.publicBaseURL + "/me"}
		if err := s.emailQueue.Enqueue(job); err != nil {
			log.Printf("Could not enqueue welcome email for %s: %v", user.Email, err)
		}
	}

	return s.issueSession(user)
}

// Login authenticates a user and returns a session token. Unknown email and
// wrong password produce the same error so the response does not reveal which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmailWithPassword(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := auth.CheckPassword(req.Password, user.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// Verify validates a session token and loads its user. A token issued before
// the user's last password change is rejected.
func (s *AuthService) Verify(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.IssuedAt != nil && user.PasswordChangedAfter(claims.IssuedAt.Time) {
		return nil, apperrors.ErrPasswordChanged
	}

	return user, nil
}

// ForgotPassword issues a reset token and emails the reset link. Only the
// token's hash is persisted; if the email cannot be delivered the token is
// rolled back so no unusable token lingers on the account.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	rawToken, err := s.resetTokens.Generate()
	if err != nil {
		return err
	}

	expires := time.Now().Add(resetTokenTTL)
	if err := s.userRepo.SetResetToken(ctx, user.ID, s.resetTokens.Hash(rawToken), expires); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/resetPassword/%s", s.publicBaseURL, rawToken)
	if err := s.mailer.SendPasswordReset(user, resetURL); err != nil {
		if clearErr := s.userRepo.ClearResetToken(ctx, user.ID); clearErr != nil {
			log.Printf("Could not roll back reset token for %s: %v", user.Email, clearErr)
		}
		return apperrors.ErrEmailDelivery
	}

	return nil
}

// ResetPassword sets a new password for the user matching a still-valid reset
// token and logs them in.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken string, req *models.ResetPasswordRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByResetTokenHash(ctx, s.resetTokens.Hash(rawToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidResetToken
		}
		return nil, err
	}

	return s.changePassword(ctx, user.ID, req.Password)
}

// UpdatePassword changes the password of a logged-in user after verifying the
// current one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID primitive.ObjectID, req *models.UpdatePasswordRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByIDWithPassword(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPassword(req.PasswordCurrent, user.Password); err != nil {
		return nil, apperrors.ErrWrongPassword
	}

	return s.changePassword(ctx, userID, req.Password)
}

func (s *AuthService) changePassword(ctx context.Context, userID primitive.ObjectID, newPassword string) (*models.AuthResponse, error) {
	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	// Backdated by a second so the session token issued right below, whose
	// iat has second precision, is not rejected by its own password change.
	changedAt := time.Now().Add(-time.Second)

	user, err := s.userRepo.UpdatePassword(ctx, userID, hashed, changedAt)
	if err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

func (s *AuthService) issueSession(user *models.User) (*models.AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	sanitized := *user
	sanitized.Password = ""

	return &models.AuthResponse{
		Token:     token,
		ExpiresIn: int(s.tokenExpiry.Seconds()),
		User:      sanitized,
	}, nil
}
