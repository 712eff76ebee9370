package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/middleware"
	"tours-api/internal/models"
	"tours-api/internal/service"
	"tours-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingHandler handles HTTP requests for checkout and booking operations.
type BookingHandler struct {
	service service.BookingServicer
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service service.BookingServicer) *BookingHandler {
	return &BookingHandler{service: service}
}

// CheckoutSession godoc
// @Summary      Start a checkout session for a tour
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        tourId  path      string  true  "Tour ID"
// @Success      200     {object}  response.Response{data=payment.CheckoutSession}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      502     {object}  response.Response
// @Router       /bookings/checkout-session/{tourId} [get]
func (h *BookingHandler) CheckoutSession(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "you are not logged in; please log in to get access")
		return
	}

	tourID, err := primitive.ObjectIDFromHex(c.Param("tourId"))
	if err != nil {
		response.BadRequest(c, "invalid tour id")
		return
	}

	session, err := h.service.CreateCheckoutSession(c.Request.Context(), tourID, user)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTourNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, apperrors.ErrPaymentProvider):
			response.Error(c, http.StatusBadGateway, "checkout provider is unavailable; try again later")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Success(c, session)
}

// CheckoutRedirect godoc
// @Summary      Record a booking from the checkout success redirect
// @Description  Unverified fallback for environments without webhook delivery
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        tour   query     string  true  "Tour ID"
// @Param        user   query     string  true  "User ID"
// @Param        price  query     number  true  "Price paid"
// @Success      201    {object}  response.Response{data=models.Booking}
// @Failure      400    {object}  response.Response
// @Failure      500    {object}  response.Response
// @Router       /bookings/checkout-redirect [get]
func (h *BookingHandler) CheckoutRedirect(c *gin.Context) {
	tourID, tourErr := primitive.ObjectIDFromHex(c.Query("tour"))
	userID, userErr := primitive.ObjectIDFromHex(c.Query("user"))
	price, priceErr := strconv.ParseFloat(c.Query("price"), 64)
	if tourErr != nil || userErr != nil || priceErr != nil {
		response.BadRequest(c, "tour, user and price query params are required")
		return
	}

	booking, err := h.service.CreateBookingFromRedirect(c.Request.Context(), tourID, userID, price)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, booking)
}

// Webhook godoc
// @Summary      Checkout provider webhook
// @Description  Records a paid booking once the provider confirms the checkout
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /bookings/webhook [post]
func (h *BookingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "could not read webhook payload")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.service.ConfirmCheckout(c.Request.Context(), payload, signature); err != nil {
		// The provider retries on anything but 2xx; reject bad signatures,
		// everything else is our problem.
		if errors.Is(err, apperrors.ErrPaymentProvider) {
			response.BadRequest(c, "webhook signature verification failed")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, gin.H{"received": true})
}

// MyTours godoc
// @Summary      Tours booked by the current user
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.Tour}
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /bookings/my-tours [get]
func (h *BookingHandler) MyTours(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "you are not logged in; please log in to get access")
		return
	}

	tours, err := h.service.MyBookedTours(c.Request.Context(), user.ID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.List(c, tours, len(tours))
}

// GetAllBookings godoc
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.Booking}
// @Failure      500  {object}  response.Response
// @Router       /bookings [get]
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	bookings, count, err := h.service.ListBookings(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.List(c, bookings, count)
}

// GetBooking godoc
// @Summary      Get a booking by id
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  response.Response{data=models.Booking}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrBookingNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, booking)
}

// CreateBooking godoc
// @Summary      Create a booking directly (admin)
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      models.CreateBookingRequest  true  "Booking details"
// @Success      201      {object}  response.Response{data=models.Booking}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			response.BadRequest(c, "invalid tour or user id")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, booking)
}

// UpdateBooking godoc
// @Summary      Update a booking (admin)
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Booking ID"
// @Param        request  body      models.UpdateBookingRequest  true  "Fields to update"
// @Success      200      {object}  response.Response{data=models.Booking}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /bookings/{id} [patch]
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := h.service.UpdateBooking(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrBookingNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, booking)
}

// DeleteBooking godoc
// @Summary      Delete a booking (admin)
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Booking ID"
// @Success      204  "No Content"
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrBookingNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.NoContent(c)
}
