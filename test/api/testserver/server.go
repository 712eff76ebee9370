//go:build api

// Package testserver provides a fully wired test server for API integration tests.
package testserver

import (
	"context"
	"time"

	"tours-api/internal/cache"
	"tours-api/internal/database"
	"tours-api/internal/handler"
	"tours-api/internal/queue"
	"tours-api/internal/repository"
	"tours-api/internal/router"
	"tours-api/internal/service"
	"tours-api/internal/storage"
	"tours-api/internal/validator"
	"tours-api/pkg/auth"
	"tours-api/test/api/testdb"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// TestJWTSecret is the JWT secret used in tests.
	TestJWTSecret = "test-secret-key-for-api-tests"
	// TestJWTExpiry is the session token expiry used in tests.
	TestJWTExpiry = 15 * time.Minute
	// TestDBName is the database name used in tests.
	TestDBName = "test_api"
	// TestBaseURL is the public base URL baked into emails and checkout
	// redirects during tests.
	TestBaseURL = "http://localhost:8080"
)

// TestServer holds all dependencies for API integration tests.
type TestServer struct {
	// Router is the Gin engine for making HTTP requests.
	Router *gin.Engine

	// Containers
	MongoDB *testdb.MongoContainer
	Redis   *testdb.RedisContainer
	MinIO   *testdb.MinIOContainer

	// Repositories (for direct database access in tests)
	UserRepo    repository.UserRepository
	TourRepo    repository.TourRepository
	ReviewRepo  repository.ReviewRepository
	BookingRepo repository.BookingRepository

	// Services (for direct service access in tests)
	AuthService    service.AuthServicer
	UserService    service.UserServicer
	TourService    service.TourServicer
	ReviewService  service.ReviewServicer
	BookingService service.BookingServicer

	// Auth
	JWTManager *auth.JWTManager

	// Outbound side effects are captured in-process instead of hitting real
	// SMTP and payment providers.
	Mailer   *FakeMailer
	Payments *FakePaymentProvider

	// Welcome email queue
	EmailQueue     *queue.MemoryQueue
	EmailProcessor *queue.Processor
}

// mongoPinger adapts the raw client to the health endpoint's Pinger.
type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, nil)
}

// New creates a new test server with all dependencies wired up.
func New(ctx context.Context) (*TestServer, error) {
	gin.SetMode(gin.TestMode)
	validator.RegisterCustomValidators()

	// Start containers
	mongoDB, err := testdb.SetupMongoDB(ctx, TestDBName)
	if err != nil {
		return nil, err
	}

	redisContainer, err := testdb.SetupRedis(ctx)
	if err != nil {
		_ = mongoDB.Cleanup(ctx)
		return nil, err
	}

	minioContainer, err := testdb.SetupMinIO(ctx)
	if err != nil {
		_ = mongoDB.Cleanup(ctx)
		_ = redisContainer.Cleanup(ctx)
		return nil, err
	}

	// Unique indexes back duplicate detection (emails, slugs, one review per
	// user per tour).
	if err := database.EnsureIndexes(ctx, mongoDB.Database); err != nil {
		_ = mongoDB.Cleanup(ctx)
		_ = redisContainer.Cleanup(ctx)
		_ = minioContainer.Cleanup(ctx)
		return nil, err
	}

	// Create cache (uses real Redis)
	redisCache := cache.NewRedis(redisContainer.URI)

	// Create storage (uses real MinIO)
	s3Client := storage.NewS3Client(
		minioContainer.Endpoint,
		minioContainer.AccessKey,
		minioContainer.SecretKey,
		minioContainer.Bucket,
		false, // useSSL
	)

	// JWT Manager
	jwtManager := auth.NewJWTManager(TestJWTSecret, TestJWTExpiry)

	// In-process fakes for outbound side effects
	fakeMailer := NewFakeMailer()
	fakePayments := NewFakePaymentProvider()

	// Repository layer
	userRepo := repository.NewUserRepository(mongoDB.Database)
	tourRepo := repository.NewTourRepository(mongoDB.Database)
	reviewRepo := repository.NewReviewRepository(mongoDB.Database)
	bookingRepo := repository.NewBookingRepository(mongoDB.Database)

	// Welcome email queue and processor
	emailQueue := queue.NewMemoryQueue(100)
	emailProcessor := queue.NewProcessor(emailQueue, fakeMailer, 2)

	// Service layer
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:      userRepo,
		JWTManager:    jwtManager,
		TokenExpiry:   TestJWTExpiry,
		ResetTokens:   auth.NewResetTokenGenerator(),
		Mailer:        fakeMailer,
		EmailQueue:    emailQueue,
		PublicBaseURL: TestBaseURL,
	})
	userService := service.NewUserService(userRepo, s3Client)
	ratingAggregator := service.NewRatingAggregator(reviewRepo, tourRepo)
	reviewService := service.NewReviewService(reviewRepo, tourRepo, ratingAggregator)
	tourService := service.NewTourService(tourRepo, reviewRepo, redisCache)
	bookingService := service.NewBookingService(service.BookingServiceConfig{
		BookingRepo:   bookingRepo,
		TourRepo:      tourRepo,
		UserRepo:      userRepo,
		Provider:      fakePayments,
		PublicBaseURL: TestBaseURL,
		Currency:      "usd",
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
		DB:             mongoPinger{client: mongoDB.Client},
	})

	return &TestServer{
		Router:         r,
		MongoDB:        mongoDB,
		Redis:          redisContainer,
		MinIO:          minioContainer,
		UserRepo:       userRepo,
		TourRepo:       tourRepo,
		ReviewRepo:     reviewRepo,
		BookingRepo:    bookingRepo,
		AuthService:    authService,
		UserService:    userService,
		TourService:    tourService,
		ReviewService:  reviewService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
		Mailer:         fakeMailer,
		Payments:       fakePayments,
		EmailQueue:     emailQueue,
		EmailProcessor: emailProcessor,
	}, nil
}

// Cleanup terminates all containers.
func (ts *TestServer) Cleanup(ctx context.Context) {
	if ts.MinIO != nil {
		_ = ts.MinIO.Cleanup(ctx)
	}
	if ts.Redis != nil {
		_ = ts.Redis.Cleanup(ctx)
	}
	if ts.MongoDB != nil {
		_ = ts.MongoDB.Cleanup(ctx)
	}
}

// StartEmailProcessor starts the welcome email workers.
func (ts *TestServer) StartEmailProcessor(ctx context.Context) {
	ts.EmailProcessor.Start(ctx)
}

// StopEmailProcessor stops the email workers and resets the queue so it can
// be reused by subsequent tests.
func (ts *TestServer) StopEmailProcessor() {
	ts.EmailProcessor.Stop()
	ts.EmailQueue.Reset()
	ts.EmailProcessor = queue.NewProcessor(ts.EmailQueue, ts.Mailer, 2)
}
