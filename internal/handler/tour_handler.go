package handler

import (
	"errors"
	"strconv"
	"strings"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
	"tours-api/internal/service"
	"tours-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// TourHandler handles HTTP requests for tour operations.
type TourHandler struct {
	service service.TourServicer
}

// NewTourHandler creates a new TourHandler.
func NewTourHandler(service service.TourServicer) *TourHandler {
	return &TourHandler{service: service}
}

// GetAllTours godoc
// @Summary      List tours
// @Description  Supports filtering (price[gte]=500), sorting, field selection and pagination
// @Tags         tours
// @Produce      json
// @Success      200  {object}  response.Response{data=[]models.Tour}
// @Failure      500  {object}  response.Response
// @Router       /tours [get]
func (h *TourHandler) GetAllTours(c *gin.Context) {
	tours, count, err := h.service.ListTours(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.List(c, tours, count)
}

// TopTours godoc
// @Summary      List the five best cheap tours
// @Description  Preset listing: top ratings first, then price, limited to five
// @Tags         tours
// @Produce      json
// @Success      200  {object}  response.Response{data=[]models.Tour}
// @Failure      500  {object}  response.Response
// @Router       /tours/top-5-cheap [get]
func (h *TourHandler) TopTours(c *gin.Context) {
	params := c.Request.URL.Query()
	params.Set("limit", "5")
	params.Set("sort", "-ratingsAverage,price")
	params.Set("fields", "name,price,ratingsAverage,summary,difficulty")

	tours, count, err := h.service.ListTours(c.Request.Context(), params)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.List(c, tours, count)
}

// GetTour godoc
// @Summary      Get a tour with its reviews
// @Tags         tours
// @Produce      json
// @Param        id   path      string  true  "Tour ID"
// @Success      200  {object}  response.Response{data=models.TourDetail}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /tours/{id} [get]
func (h *TourHandler) GetTour(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tour, err := h.service.GetTour(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTourNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, tour)
}

// tourSlugURI binds the slug path parameter. Rejecting malformed slugs up
// front keeps junk out of the lookup.
type tourSlugURI struct {
	Slug string `uri:"slug" binding:"required,slug"`
}

// GetTourBySlug godoc
// @Summary      Get a tour by slug
// @Tags         tours
// @Produce      json
// @Param        slug  path      string  true  "Tour slug"
// @Success      200   {object}  response.Response{data=models.TourDetail}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /tours/slug/{slug} [get]
func (h *TourHandler) GetTourBySlug(c *gin.Context) {
	var uri tourSlugURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid tour slug")
		return
	}

	tour, err := h.service.GetTourBySlug(c.Request.Context(), uri.Slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrTourNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, tour)
}

// CreateTour godoc
// @Summary      Create a tour
// @Tags         tours
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      models.CreateTourRequest  true  "Tour details"
// @Success      201      {object}  response.Response{data=models.Tour}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /tours [post]
func (h *TourHandler) CreateTour(c *gin.Context) {
	var req models.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tour, err := h.service.CreateTour(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			response.BadRequest(c, "invalid guide id")
		case errors.Is(err, apperrors.ErrDuplicate):
			response.Conflict(c, "a tour with that name already exists")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, tour)
}

// UpdateTour godoc
// @Summary      Update a tour
// @Tags         tours
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Tour ID"
// @Param        request  body      models.UpdateTourRequest  true  "Fields to update"
// @Success      200      {object}  response.Response{data=models.Tour}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /tours/{id} [patch]
func (h *TourHandler) UpdateTour(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tour, err := h.service.UpdateTour(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTourNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, tour)
}

// DeleteTour godoc
// @Summary      Delete a tour
// @Tags         tours
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Tour ID"
// @Success      204  "No Content"
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /tours/{id} [delete]
func (h *TourHandler) DeleteTour(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTour(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrTourNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.NoContent(c)
}

// GetTourStats godoc
// @Summary      Per-difficulty tour statistics
// @Tags         tours
// @Produce      json
// @Success      200  {object}  response.Response{data=[]models.TourStats}
// @Failure      500  {object}  response.Response
// @Router       /tours/tour-stats [get]
func (h *TourHandler) GetTourStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Success(c, stats)
}

// GetMonthlyPlan godoc
// @Summary      Tour starts per month for a year
// @Tags         tours
// @Produce      json
// @Security     BearerAuth
// @Param        year  path      int  true  "Year"
// @Success      200   {object}  response.Response{data=[]models.MonthlyPlanEntry}
// @Failure      400   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /tours/monthly-plan/{year} [get]
func (h *TourHandler) GetMonthlyPlan(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, "invalid year")
		return
	}

	plan, err := h.service.MonthlyPlan(c.Request.Context(), year)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Success(c, plan)
}

// GetToursWithin godoc
// @Summary      Tours starting within a distance of a point
// @Tags         tours
// @Produce      json
// @Param        distance  path      number  true  "Distance"
// @Param        latlng    path      string  true  "lat,lng"
// @Param        unit      path      string  true  "mi or km"
// @Success      200       {object}  response.Response{data=[]models.Tour}
// @Failure      400       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Router       /tours/tours-within/{distance}/center/{latlng}/unit/{unit} [get]
func (h *TourHandler) GetToursWithin(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		response.BadRequest(c, "invalid distance")
		return
	}

	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}

	tours, err := h.service.ToursWithin(c.Request.Context(), distance, lat, lng, c.Param("unit"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			response.BadRequest(c, "unit must be mi or km")
			return
		}
		response.InternalError(c)
		return
	}

	response.List(c, tours, len(tours))
}

// GetDistances godoc
// @Summary      Distance of every tour from a point
// @Tags         tours
// @Produce      json
// @Param        latlng  path      string  true  "lat,lng"
// @Param        unit    path      string  true  "mi or km"
// @Success      200     {object}  response.Response{data=[]models.TourDistance}
// @Failure      400     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Router       /tours/distances/{latlng}/unit/{unit} [get]
func (h *TourHandler) GetDistances(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}

	distances, err := h.service.Distances(c.Request.Context(), lat, lng, c.Param("unit"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			response.BadRequest(c, "unit must be mi or km")
			return
		}
		response.InternalError(c)
		return
	}

	response.List(c, distances, len(distances))
}

// parseLatLng reads the latlng path param in "lat,lng" form. On failure it
// writes a 400 and returns ok=false.
func parseLatLng(c *gin.Context) (lat, lng float64, ok bool) {
	parts := strings.Split(c.Param("latlng"), ",")
	if len(parts) != 2 {
		response.BadRequest(c, "please provide latitude and longitude in the format lat,lng")
		return 0, 0, false
	}
	lat, latErr := strconv.ParseFloat(parts[0], 64)
	lng, lngErr := strconv.ParseFloat(parts[1], 64)
	if latErr != nil || lngErr != nil {
		response.BadRequest(c, "please provide latitude and longitude in the format lat,lng")
		return 0, 0, false
	}
	return lat, lng, true
}
