package handler

import (
	"errors"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/middleware"
	"tours-api/internal/models"
	"tours-api/internal/service"
	"tours-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewHandler handles HTTP requests for review operations. It serves both
// the flat /reviews routes and the nested /tours/:tourId/reviews routes.
type ReviewHandler struct {
	service service.ReviewServicer
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service service.ReviewServicer) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// tourScope reads the optional :tourId path param of the nested route.
func tourScope(c *gin.Context) (primitive.ObjectID, bool) {
	param := c.Param("tourId")
	if param == "" {
		return primitive.NilObjectID, true
	}
	id, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		response.BadRequest(c, "invalid tour id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetAllReviews godoc
// @Summary      List reviews
// @Description  On the nested tour route, only that tour's reviews
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.Review}
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /reviews [get]
func (h *ReviewHandler) GetAllReviews(c *gin.Context) {
	tourID, ok := tourScope(c)
	if !ok {
		return
	}

	reviews, count, err := h.service.ListReviews(c.Request.Context(), tourID, c.Request.URL.Query())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.List(c, reviews, count)
}

// GetReview godoc
// @Summary      Get a review by id
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Review ID"
// @Success      200  {object}  response.Response{data=models.Review}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	review, err := h.service.GetReview(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrReviewNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, review)
}

// CreateReview godoc
// @Summary      Create a review
// @Description  On the nested tour route the tour defaults to the path and the author to the session
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      models.CreateReviewRequest  true  "Review details"
// @Success      201      {object}  response.Response{data=models.Review}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /tours/{tourId}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "you are not logged in; please log in to get access")
		return
	}

	tourID, ok := tourScope(c)
	if !ok {
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), tourID, user, &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			response.BadRequest(c, "invalid tour or user id")
		case errors.Is(err, apperrors.ErrTourNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, apperrors.ErrDuplicateReview):
			response.Conflict(c, "you have already reviewed this tour")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, review)
}

// UpdateReview godoc
// @Summary      Update a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Review ID"
// @Param        request  body      models.UpdateReviewRequest  true  "Fields to update"
// @Success      200      {object}  response.Response{data=models.Review}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /reviews/{id} [patch]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	review, err := h.service.UpdateReview(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrReviewNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, review)
}

// DeleteReview godoc
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Review ID"
// @Success      204  "No Content"
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteReview(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrReviewNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.NoContent(c)
}
