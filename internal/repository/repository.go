// Package repository provides data access operations for the application.
//
// The CRUD surface is implemented once by the generic Repository and
// instantiated per resource kind; the per-resource types below add the
// queries that are specific to their collection.
package repository

import (
	"context"
	"errors"
	"time"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Document is what the generic repository needs from a stored type.
type Document interface {
	GetID() primitive.ObjectID
	SetID(primitive.ObjectID)
	Touch(now time.Time, isNew bool)
}

// Repository implements CRUD for one resource kind. T is the document value
// type, PT its pointer type carrying the Document methods.
type Repository[T any, PT interface {
	Document
	*T
}] struct {
	collection *mongo.Collection
	notFound   error
}

// NewRepository creates a repository over the named collection. notFound is
// the sentinel returned when an id does not exist, so callers can match the
// resource-specific error with errors.Is.
func NewRepository[T any, PT interface {
	Document
	*T
}](db *mongo.Database, collection string, notFound error) *Repository[T, PT] {
	return &Repository[T, PT]{
		collection: db.Collection(collection),
		notFound:   notFound,
	}
}

// Collection exposes the underlying collection to specializations.
func (r *Repository[T, PT]) Collection() *mongo.Collection {
	return r.collection
}

// NotFound returns the repository's not-found sentinel.
func (r *Repository[T, PT]) NotFound() error {
	return r.notFound
}

// Create inserts a new document, assigning timestamps and the generated id.
// A storage-level uniqueness violation surfaces as ErrDuplicate.
func (r *Repository[T, PT]) Create(ctx context.Context, doc PT) error {
	doc.Touch(time.Now(), true)

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicate
		}
		return err
	}

	doc.SetID(result.InsertedID.(primitive.ObjectID))
	return nil
}

// FindByID finds a document by its id.
func (r *Repository[T, PT]) FindByID(ctx context.Context, id primitive.ObjectID) (PT, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

// FindOne finds a single document matching the filter.
func (r *Repository[T, PT]) FindOne(ctx context.Context, filter bson.M) (PT, error) {
	return r.findOne(ctx, filter, nil)
}

func (r *Repository[T, PT]) findOne(ctx context.Context, filter bson.M, projection bson.M) (PT, error) {
	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var doc T
	err := r.collection.FindOne(ctx, filter, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.notFound
		}
		return nil, err
	}

	var p PT = &doc
	return p, nil
}

// Find executes a composed query and returns the matching documents plus the
// total count of documents matching the filter (ignoring pagination).
func (r *Repository[T, PT]) Find(ctx context.Context, q *query.Builder) ([]T, int, error) {
	total, err := r.collection.CountDocuments(ctx, q.Filter())
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, q.Filter(), q.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	// Return empty slice instead of nil
	if docs == nil {
		docs = []T{}
	}

	return docs, int(total), nil
}

// UpdateByID applies a partial update and returns the post-update document.
func (r *Repository[T, PT]) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (PT, error) {
	return r.UpdateOne(ctx, bson.M{"_id": id}, set)
}

// UpdateOne applies a partial update to the first document matching the
// filter and returns the updated document.
func (r *Repository[T, PT]) UpdateOne(ctx context.Context, filter bson.M, set bson.M) (PT, error) {
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc T
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.notFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, err
	}

	var p PT = &doc
	return p, nil
}

// DeleteByID removes a document. Deleting an id that does not exist (or was
// already deleted) is notFound, not a silent success.
func (r *Repository[T, PT]) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return r.notFound
	}

	return nil
}
