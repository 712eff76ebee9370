package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates every index the repositories rely on. The unique
// indexes also back duplicate detection: repository Create methods translate
// duplicate-key errors into domain errors.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		collection string
		keys       bson.D
		opts       *options.IndexOptions
	}{
		{"users", bson.D{{Key: "email", Value: 1}}, options.Index().SetUnique(true)},
		{"users", bson.D{{Key: "passwordResetToken", Value: 1}}, nil},
		{"tours", bson.D{{Key: "slug", Value: 1}}, options.Index().SetUnique(true)},
		{"tours", bson.D{{Key: "price", Value: 1}, {Key: "ratingsAverage", Value: -1}}, nil},
		{"tours", bson.D{{Key: "startLocation", Value: "2dsphere"}}, nil},
		// One review per user per tour.
		{"reviews", bson.D{{Key: "tour", Value: 1}, {Key: "user", Value: 1}}, options.Index().SetUnique(true)},
		{"bookings", bson.D{{Key: "user", Value: 1}}, nil},
		{"bookings", bson.D{{Key: "tour", Value: 1}}, nil},
	}

	for _, idx := range indexes {
		model := mongo.IndexModel{Keys: idx.keys, Options: idx.opts}
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}
	return nil
}
