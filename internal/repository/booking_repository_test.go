package repository

import (
	"context"
	"net/url"
	"testing"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
	"tours-api/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBookingRepository_Create(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewBookingRepository(tdb.Database)

	booking := &models.Booking{
		Tour:  primitive.NewObjectID(),
		User:  primitive.NewObjectID(),
		Price: 497,
		Paid:  true,
	}

	err := repo.Create(context.Background(), booking)

	require.NoError(t, err)
	assert.False(t, booking.ID.IsZero())
	assert.False(t, booking.CreatedAt.IsZero())

	found, err := repo.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 497.0, found.Price)
	assert.True(t, found.Paid)
}

func TestBookingRepository_FindByUser(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewBookingRepository(tdb.Database)
	ctx := context.Background()

	userID := primitive.NewObjectID()

	require.NoError(t, repo.Create(ctx, &models.Booking{Tour: primitive.NewObjectID(), User: userID, Price: 100, Paid: true}))
	require.NoError(t, repo.Create(ctx, &models.Booking{Tour: primitive.NewObjectID(), User: userID, Price: 200, Paid: true}))
	require.NoError(t, repo.Create(ctx, &models.Booking{Tour: primitive.NewObjectID(), User: primitive.NewObjectID(), Price: 300, Paid: true}))

	bookings, err := repo.FindByUser(ctx, userID)

	require.NoError(t, err)
	assert.Len(t, bookings, 2)
	for _, b := range bookings {
		assert.Equal(t, userID, b.User)
	}
}

func TestBookingRepository_Find(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewBookingRepository(tdb.Database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Booking{Tour: primitive.NewObjectID(), User: primitive.NewObjectID(), Price: 100, Paid: true}))
	require.NoError(t, repo.Create(ctx, &models.Booking{Tour: primitive.NewObjectID(), User: primitive.NewObjectID(), Price: 200, Paid: false}))

	// The query builder coerces "true" into a bool filter value.
	q := query.New(url.Values{"paid": {"true"}})

	bookings, count, err := repo.Find(ctx, q)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, bookings, 1)
	assert.Equal(t, 100.0, bookings[0].Price)
}

func TestBookingRepository_UpdateDelete(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewBookingRepository(tdb.Database)
	ctx := context.Background()

	booking := &models.Booking{Tour: primitive.NewObjectID(), User: primitive.NewObjectID(), Price: 100, Paid: true}
	require.NoError(t, repo.Create(ctx, booking))

	updated, err := repo.UpdateByID(ctx, booking.ID, bson.M{"paid": false})
	require.NoError(t, err)
	assert.False(t, updated.Paid)
	assert.Equal(t, 100.0, updated.Price)

	require.NoError(t, repo.DeleteByID(ctx, booking.ID))

	err = repo.DeleteByID(ctx, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)

	_, err = repo.FindByID(ctx, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
}
