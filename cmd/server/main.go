package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tours-api/internal/cache"
	"tours-api/internal/config"
	"tours-api/internal/database"
	"tours-api/internal/handler"
	"tours-api/internal/mailer"
	"tours-api/internal/payment"
	"tours-api/internal/queue"
	"tours-api/internal/repository"
	"tours-api/internal/router"
	"tours-api/internal/service"
	"tours-api/internal/storage"
	"tours-api/internal/validator"
	"tours-api/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title           Tours API
// @version         1.0
// @description     A REST API for tour browsing, reviews and bookings built with Gin, MongoDB, and Redis.

// @contact.name    API Support
// @contact.email   support@example.com

// @host            localhost:8080
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your bearer token in the format: Bearer {token}

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("Configuration loaded")

	// Register custom validators
	validator.RegisterCustomValidators()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Database
	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	// Redis Cache
	redisCache := cache.NewRedis(cfg.RedisURI)
	defer redisCache.Close()

	// S3 Storage
	s3Client := storage.NewS3Client(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)

	// JWT Manager
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	// Outbound email
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom, cfg.EmailFromName)

	// Checkout provider
	stripeProvider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	// Repository layer
	userRepo := repository.NewUserRepository(mongoDB.Database)
	tourRepo := repository.NewTourRepository(mongoDB.Database)
	reviewRepo := repository.NewReviewRepository(mongoDB.Database)
	bookingRepo := repository.NewBookingRepository(mongoDB.Database)

	// Welcome email queue and processor
	emailQueue := queue.NewMemoryQueue(cfg.EmailQueueSize)
	emailProcessor := queue.NewProcessor(emailQueue, smtpMailer, cfg.EmailWorkers)

	// Service layer
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:      userRepo,
		JWTManager:    jwtManager,
		TokenExpiry:   cfg.JWTExpiry,
		ResetTokens:   auth.NewResetTokenGenerator(),
		Mailer:        smtpMailer,
		EmailQueue:    emailQueue,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	userService := service.NewUserService(userRepo, s3Client)
	ratingAggregator := service.NewRatingAggregator(reviewRepo, tourRepo)
	reviewService := service.NewReviewService(reviewRepo, tourRepo, ratingAggregator)
	tourService := service.NewTourService(tourRepo, reviewRepo, redisCache)
	bookingService := service.NewBookingService(service.BookingServiceConfig{
		BookingRepo:   bookingRepo,
		TourRepo:      tourRepo,
		UserRepo:      userRepo,
		Provider:      stripeProvider,
		PublicBaseURL: cfg.PublicBaseURL,
		Currency:      cfg.Currency,
	})

	// Handler layer
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	tourHandler := handler.NewTourHandler(tourService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	bookingHandler := handler.NewBookingHandler(bookingService)

	// Router
	r := router.Setup(&router.Config{
		AuthHandler:    authHandler,
		UserHandler:    userHandler,
		TourHandler:    tourHandler,
		ReviewHandler:  reviewHandler,
		BookingHandler: bookingHandler,
		AuthService:    authService,
		DB:             mongoDB,
	})

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start welcome email processor
	emailProcessor.Start(ctx)

	// Create HTTP server for graceful shutdown support
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server first (drain connections)
	log.Println("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Cancel context to signal processor shutdown
	cancel()

	// Stop email processor (waits for workers)
	log.Println("Stopping email processor...")
	emailProcessor.Stop()

	log.Println("Server shutdown complete")
}
