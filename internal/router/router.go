// Package router sets up HTTP routes for the API.
package router

import (
	"context"
	"net/http"
	"time"

	_ "tours-api/swagger" // Import generated swagger docs

	"tours-api/internal/handler"
	"tours-api/internal/middleware"
	"tours-api/internal/models"
	"tours-api/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Pinger reports whether the datastore is reachable, used by the health
// endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds all dependencies needed to set up routes.
type Config struct {
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	TourHandler    *handler.TourHandler
	ReviewHandler  *handler.ReviewHandler
	BookingHandler *handler.BookingHandler
	AuthService    service.AuthServicer
	DB             Pinger
}

// Setup creates and configures the Gin router.
func Setup(cfg *Config) *gin.Engine {
	r := gin.Default()

	// Global middleware
	r.Use(middleware.CORS())

	// Swagger docs at /docs
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if cfg.DB != nil {
			if err := cfg.DB.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protect := middleware.Protect(cfg.AuthService)
	adminOnly := middleware.RestrictTo(models.RoleAdmin)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// User auth routes (public)
		users := v1.Group("/users")
		{
			users.POST("/signup", cfg.AuthHandler.Signup)
			users.POST("/login", cfg.AuthHandler.Login)
			users.POST("/forgotPassword", cfg.AuthHandler.ForgotPassword)
			users.PATCH("/resetPassword/:token", cfg.AuthHandler.ResetPassword)
		}

		// User routes (protected)
		usersProtected := v1.Group("/users")
		usersProtected.Use(protect)
		{
			usersProtected.PATCH("/updateMyPassword", cfg.AuthHandler.UpdatePassword)
			usersProtected.GET("/me", cfg.UserHandler.GetMe)
			usersProtected.GET("/me/photo-upload", cfg.UserHandler.PhotoUploadURL)
			usersProtected.GET("/me/photo", cfg.UserHandler.PhotoDownloadURL)
			usersProtected.PATCH("/updateMe", cfg.UserHandler.UpdateMe)
			usersProtected.DELETE("/deleteMe", cfg.UserHandler.DeleteMe)

			// User management (admin)
			admin := usersProtected.Group("")
			admin.Use(adminOnly)
			{
				admin.GET("", cfg.UserHandler.GetAllUsers)
				admin.POST("", cfg.UserHandler.CreateUser)
				admin.GET("/:id", cfg.UserHandler.GetUser)
				admin.PATCH("/:id", cfg.UserHandler.UpdateUser)
				admin.DELETE("/:id", cfg.UserHandler.DeleteUser)
			}
		}

		// Tour routes
		tours := v1.Group("/tours")
		{
			tours.GET("", cfg.TourHandler.GetAllTours)
			tours.GET("/top-5-cheap", cfg.TourHandler.TopTours)
			tours.GET("/tour-stats", cfg.TourHandler.GetTourStats)
			tours.GET("/slug/:slug", cfg.TourHandler.GetTourBySlug)
			tours.GET("/tours-within/:distance/center/:latlng/unit/:unit", cfg.TourHandler.GetToursWithin)
			tours.GET("/distances/:latlng/unit/:unit", cfg.TourHandler.GetDistances)
			tours.GET("/:id", cfg.TourHandler.GetTour)

			tours.GET("/monthly-plan/:year", protect,
				middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide, models.RoleGuide),
				cfg.TourHandler.GetMonthlyPlan)

			tourAdmin := middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide)
			tours.POST("", protect, tourAdmin, cfg.TourHandler.CreateTour)
			tours.PATCH("/:id", protect, tourAdmin, cfg.TourHandler.UpdateTour)
			tours.DELETE("/:id", protect, tourAdmin, cfg.TourHandler.DeleteTour)

			// Nested reviews
			nested := tours.Group("/:id/reviews")
			nested.Use(protect, tourIDAlias())
			{
				nested.GET("", cfg.ReviewHandler.GetAllReviews)
				nested.POST("", middleware.RestrictTo(models.RoleUser), cfg.ReviewHandler.CreateReview)
			}
		}

		// Review routes (protected)
		reviews := v1.Group("/reviews")
		reviews.Use(protect)
		{
			reviews.GET("", cfg.ReviewHandler.GetAllReviews)
			reviews.GET("/:id", cfg.ReviewHandler.GetReview)
			reviews.POST("", middleware.RestrictTo(models.RoleUser), cfg.ReviewHandler.CreateReview)

			reviewWrite := middleware.RestrictTo(models.RoleUser, models.RoleAdmin)
			reviews.PATCH("/:id", reviewWrite, cfg.ReviewHandler.UpdateReview)
			reviews.DELETE("/:id", reviewWrite, cfg.ReviewHandler.DeleteReview)
		}

		// Booking routes
		bookings := v1.Group("/bookings")
		{
			// Provider webhook must stay public; its payload is authenticated
			// by signature instead.
			bookings.POST("/webhook", cfg.BookingHandler.Webhook)

			bookingsProtected := bookings.Group("")
			bookingsProtected.Use(protect)
			{
				bookingsProtected.GET("/checkout-session/:tourId", cfg.BookingHandler.CheckoutSession)
				bookingsProtected.GET("/checkout-redirect", cfg.BookingHandler.CheckoutRedirect)
				bookingsProtected.GET("/my-tours", cfg.BookingHandler.MyTours)

				bookingAdmin := bookingsProtected.Group("")
				bookingAdmin.Use(middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide))
				{
					bookingAdmin.GET("", cfg.BookingHandler.GetAllBookings)
					bookingAdmin.POST("", cfg.BookingHandler.CreateBooking)
					bookingAdmin.GET("/:id", cfg.BookingHandler.GetBooking)
					bookingAdmin.PATCH("/:id", cfg.BookingHandler.UpdateBooking)
					bookingAdmin.DELETE("/:id", cfg.BookingHandler.DeleteBooking)
				}
			}
		}
	}

	return r
}

// tourIDAlias exposes the nested route's :id param under the tourId name the
// review handler reads.
func tourIDAlias() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: "tourId", Value: c.Param("id")})
		c.Next()
	}
}
