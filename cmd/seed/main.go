package main

import (
	"bytes"
	"context"
	"log"
	"time"

	"tours-api/internal/config"
	"tours-api/internal/database"
	"tours-api/internal/models"
	"tours-api/internal/storage"
	"tours-api/pkg/auth"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	log.Println("Starting seed...")

	// Load config
	cfg := config.Load()

	// Connect to MongoDB
	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	ctx := context.Background()

	userIDs := seedUsers(ctx, mongoDB.Database)
	tourIDs := seedTours(ctx, mongoDB.Database)
	seedReviews(ctx, mongoDB.Database, tourIDs, userIDs)
	seedDefaultPhoto(ctx, cfg)

	log.Println("Seed completed successfully!")
}

// defaultPhoto is a minimal JPEG placeholder stored under the key every
// seeded user's photo field points at, so presigned downloads resolve.
var defaultPhoto = []byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x43, 0x00, 0xFF, 0xD9}

func seedDefaultPhoto(ctx context.Context, cfg *config.Config) {
	store := storage.NewS3Client(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)

	if err := store.PutObject(ctx, "default.jpg", bytes.NewReader(defaultPhoto), "image/jpeg"); err != nil {
		log.Printf("Warning: failed to upload default photo: %v", err)
		return
	}

	log.Println("Seeded default profile photo")
}

func seedUsers(ctx context.Context, db *mongo.Database) []primitive.ObjectID {
	collection := db.Collection("users")

	// Clear existing users
	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear users: %v", err)
	}

	adminPassword, _ := auth.HashPassword("admin1234")
	userPassword, _ := auth.HashPassword("password123")
	guidePassword, _ := auth.HashPassword("guide1234")

	now := time.Now()

	users := []interface{}{
		models.User{
			Name:      "Admin",
			Email:     "admin@example.com",
			Photo:     "default.jpg",
			Role:      models.RoleAdmin,
			Password:  adminPassword,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.User{
			Name:      "Laura Wilson",
			Email:     "laura@example.com",
			Photo:     "default.jpg",
			Role:      models.RoleUser,
			Password:  userPassword,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.User{
			Name:      "Steve Miller",
			Email:     "steve@example.com",
			Photo:     "default.jpg",
			Role:      models.RoleLeadGuide,
			Password:  guidePassword,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	result, err := collection.InsertMany(ctx, users)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	ids := make([]primitive.ObjectID, 0, len(result.InsertedIDs))
	for _, id := range result.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID))
	}

	log.Printf("Seeded %d users", len(ids))
	return ids
}

func seedTours(ctx context.Context, db *mongo.Database) []primitive.ObjectID {
	collection := db.Collection("tours")

	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear tours: %v", err)
	}

	now := time.Now()

	makeTour := func(name string, duration, groupSize int, difficulty string, price float64, summary string) models.Tour {
		return models.Tour{
			Name:            name,
			Slug:            slug.Make(name),
			Duration:        duration,
			MaxGroupSize:    groupSize,
			Difficulty:      difficulty,
			RatingsAverage:  4.5,
			RatingsQuantity: 0,
			Price:           price,
			Summary:         summary,
			ImageCover:      slug.Make(name) + "-cover.jpg",
			StartDates: []time.Time{
				now.AddDate(0, 1, 0),
				now.AddDate(0, 4, 0),
				now.AddDate(0, 8, 0),
			},
			StartLocation: &models.Location{
				Type:        "Point",
				Coordinates: []float64{-80.185942, 25.774772},
				Address:     "301 Biscayne Blvd, Miami, FL",
				Description: "Miami, USA",
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	tours := []interface{}{
		makeTour("The Forest Hiker", 5, 25, models.DifficultyEasy, 397, "Breathtaking hike through the Canadian Banff National Park"),
		makeTour("The Sea Explorer", 7, 15, models.DifficultyMedium, 497, "Exploring the jaw-dropping US east coast by foot and by boat"),
		makeTour("The Snow Adventurer", 4, 10, models.DifficultyDifficult, 997, "Exciting adventure in the snow with snowboarding and skiing"),
	}

	result, err := collection.InsertMany(ctx, tours)
	if err != nil {
		log.Fatalf("Failed to seed tours: %v", err)
	}

	ids := make([]primitive.ObjectID, 0, len(result.InsertedIDs))
	for _, id := range result.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID))
	}

	log.Printf("Seeded %d tours", len(ids))
	return ids
}

func seedReviews(ctx context.Context, db *mongo.Database, tourIDs, userIDs []primitive.ObjectID) {
	collection := db.Collection("reviews")

	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear reviews: %v", err)
	}

	if len(tourIDs) == 0 || len(userIDs) < 2 {
		log.Println("Not enough seed data for reviews, skipping")
		return
	}

	now := time.Now()

	reviews := []interface{}{
		models.Review{
			Review:    "Amazing experience, would go again in a heartbeat.",
			Rating:    5,
			Tour:      tourIDs[0],
			User:      userIDs[1],
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.Review{
			Review:    "Great guides, the views were unforgettable.",
			Rating:    4,
			Tour:      tourIDs[1],
			User:      userIDs[1],
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if _, err := collection.InsertMany(ctx, reviews); err != nil {
		log.Fatalf("Failed to seed reviews: %v", err)
	}

	// Keep the denormalized rating fields in line with the seeded reviews.
	updateRatings := func(tourID primitive.ObjectID, avg float64, qty int) {
		_, err := db.Collection("tours").UpdateOne(ctx, bson.M{"_id": tourID}, bson.M{
			"$set": bson.M{"ratingsAverage": avg, "ratingsQuantity": qty},
		})
		if err != nil {
			log.Printf("Warning: failed to update ratings for tour %s: %v", tourID.Hex(), err)
		}
	}
	updateRatings(tourIDs[0], 5, 1)
	updateRatings(tourIDs[1], 4, 1)

	log.Printf("Seeded %d reviews", len(reviews))
}
