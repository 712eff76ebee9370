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
	"github.com/gin-gonic/gin/binding"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service service.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service service.UserServicer) *UserHandler {
	return &UserHandler{service: service}
}

// parseID converts an :id path param into an ObjectID, replying 400 on
// malformed input.
func parseID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetMe godoc
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=models.User}
// @Failure      401  {object}  response.Response
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "you are not logged in; please log in to get access")
		return
	}
	response.Success(c, user)
}

// UpdateMe godoc
// @Summary      Update the current user's profile
// @Description  Update name, email or photo. Password fields are rejected here.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      models.UpdateMeRequest  true  "Profile fields"
// @Success      200      {object}  response.Response{data=models.User}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /users/updateMe [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "you are not logged in; please log in to get access")
		return
	}

	var raw map[string]interface{}
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if _, ok := raw["password"]; ok {
		response.BadRequest(c, apperrors.ErrPasswordRouteMisuse.Error())
		return
	}
	if _, ok := raw["passwordConfirm"]; ok {
		response.BadRequest(c, apperrors.ErrPasswordRouteMisuse.Error())
		return
	}

	var req models.UpdateMeRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.UpdateMe(c.Request.Context(), user.ID, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			response.Conflict(c, err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, updated)
}

// DeleteMe godoc
// @Summary      Deactivate the current user's account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      204  "No Content"
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /users/deleteMe [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "you are not logged in; please log in to get access")
		return
	}

	if err := h.service.DeleteMe(c.Request.Context(), user.ID); err != nil {
		response.InternalError(c)
		return
	}

	response.NoContent(c)
}

// PhotoUploadURL godoc
// @Summary      Get a presigned upload URL for a profile photo
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /users/me/photo-upload [get]
func (h *UserHandler) PhotoUploadURL(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "you are not logged in; please log in to get access")
		return
	}

	uploadURL, key, err := h.service.PhotoUploadURL(c.Request.Context(), user.ID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Success(c, gin.H{"uploadUrl": uploadURL, "key": key})
}

// PhotoDownloadURL godoc
// @Summary      Get a presigned download URL for the current profile photo
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /users/me/photo [get]
func (h *UserHandler) PhotoDownloadURL(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "you are not logged in; please log in to get access")
		return
	}

	downloadURL, err := h.service.PhotoDownloadURL(c.Request.Context(), user.ID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Success(c, gin.H{"downloadUrl": downloadURL})
}

// GetAllUsers godoc
// @Summary      List users
// @Description  Admin listing with filtering, sorting, field selection and pagination
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.User}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /users [get]
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, count, err := h.service.ListUsers(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.List(c, users, count)
}

// GetUser godoc
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=models.User}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, user)
}

// CreateUser godoc
// @Summary      Not implemented
// @Description  Accounts are created through signup
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Failure      500  {object}  response.Response
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	response.Error(c, http.StatusInternalServerError, "this route is not defined; please use /signup instead")
}

// UpdateUser godoc
// @Summary      Update a user (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "User ID"
// @Param        request  body      models.UpdateUserRequest  true  "Fields to update"
// @Success      200      {object}  response.Response{data=models.User}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			response.BadRequest(c, "no fields to update")
		case errors.Is(err, apperrors.ErrEmailTaken):
			response.Conflict(c, err.Error())
		case errors.Is(err, apperrors.ErrUserNotFound):
			response.NotFound(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Success(c, user)
}

// DeleteUser godoc
// @Summary      Delete a user (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      204  "No Content"
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.NoContent(c)
}
