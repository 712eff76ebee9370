// Package handler contains HTTP handlers for the API.
package handler

import (
	"errors"
	"net/http"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/middleware"
	"tours-api/internal/models"
	"tours-api/internal/service"
	"tours-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	service service.AuthServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service service.AuthServicer) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup godoc
// @Summary      Create a new account
// @Description  Register with name, email and password, returns a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.SignupRequest  true  "Signup details"
// @Success      201      {object}  response.Response{data=models.AuthResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /users/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with email and password, returns a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.LoginRequest  true  "User credentials"
// @Success      200      {object}  response.Response{data=models.AuthResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.Unauthorized(c, "incorrect email or password")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, result)
}

// ForgotPassword godoc
// @Summary      Request a password reset
// @Description  Email a password-reset link to the given address
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.ForgotPasswordRequest  true  "Account email"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /users/forgotPassword [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.NotFound(c, "there is no user with that email address")
			return
		}
		if errors.Is(err, apperrors.ErrEmailDelivery) {
			response.Error(c, http.StatusInternalServerError, "there was an error sending the email; try again later")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, gin.H{"message": "token sent to email"})
}

// ResetPassword godoc
// @Summary      Reset password with an emailed token
// @Description  Set a new password using the raw token from the reset link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token    path      string                       true  "Raw reset token"
// @Param        request  body      models.ResetPasswordRequest  true  "New password"
// @Success      200      {object}  response.Response{data=models.AuthResponse}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /users/resetPassword/{token} [patch]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidResetToken) {
			response.BadRequest(c, "token is invalid or has expired")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, result)
}

// UpdatePassword godoc
// @Summary      Change the current user's password
// @Description  Verify the current password, set a new one and return a fresh session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      models.UpdatePasswordRequest  true  "Current and new password"
// @Success      200      {object}  response.Response{data=models.AuthResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /users/updateMyPassword [patch]
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "you are not logged in; please log in to get access")
		return
	}

	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdatePassword(c.Request.Context(), user.ID, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrWrongPassword) {
			response.Unauthorized(c, "your current password is wrong")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, result)
}
