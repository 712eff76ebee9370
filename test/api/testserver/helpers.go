//go:build api

package testserver

import (
	"context"
	"net/http"
	"testing"

	"tours-api/internal/models"
	"tours-api/pkg/response"
	"tours-api/test/testutil"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHelper provides authentication helpers for API tests.
type AuthHelper struct {
	server *TestServer
}

// NewAuthHelper creates a new auth helper.
func NewAuthHelper(server *TestServer) *AuthHelper {
	return &AuthHelper{server: server}
}

// Signup registers a new user through the API and returns the session token
// and the user payload.
func (ah *AuthHelper) Signup(t *testing.T, name, email, password string) (token string, user map[string]interface{}) {
	t.Helper()

	req := models.SignupRequest{
		Name:            name,
		Email:           email,
		Password:        password,
		PasswordConfirm: password,
	}

	w := testutil.MakeRequest(t, ah.server.Router, http.MethodPost, "/api/v1/users/signup", req)
	require.Equal(t, http.StatusCreated, w.Code, "signup should return 201, got: %s", w.Body.String())

	var resp response.Response
	testutil.ParseResponse(t, w, &resp)
	require.True(t, resp.Success, "signup response should be successful")

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "response data should be a map")

	token, ok = data["token"].(string)
	require.True(t, ok, "token should be a string")
	user, ok = data["user"].(map[string]interface{})
	require.True(t, ok, "user should be a map")
	return token, user
}

// Login logs in a user and returns the session token.
func (ah *AuthHelper) Login(t *testing.T, email, password string) string {
	t.Helper()

	req := models.LoginRequest{
		Email:    email,
		Password: password,
	}

	w := testutil.MakeRequest(t, ah.server.Router, http.MethodPost, "/api/v1/users/login", req)
	require.Equal(t, http.StatusOK, w.Code, "login should return 200, got: %s", w.Body.String())

	var resp response.Response
	testutil.ParseResponse(t, w, &resp)
	require.True(t, resp.Success, "login response should be successful")

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "response data should be a map")

	token, ok := data["token"].(string)
	require.True(t, ok, "token should be a string")
	return token
}

// SignupUser registers a user with default credentials derived from the email
// and returns the session token.
func (ah *AuthHelper) SignupUser(t *testing.T, email string) string {
	t.Helper()
	token, _ := ah.Signup(t, "Test User", email, "pass1234word")
	return token
}

// PromoteTo escalates a user's role directly in the database. Signup always
// assigns the user role, so elevated-role tests bootstrap through here.
func (ah *AuthHelper) PromoteTo(t *testing.T, email, role string) {
	t.Helper()
	ctx := context.Background()

	res, err := ah.server.MongoDB.Database.Collection("users").UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role}},
	)
	require.NoError(t, err, "failed to update user role")
	require.EqualValues(t, 1, res.MatchedCount, "no user with email %s", email)
}

// SignupAdmin registers a user, promotes it to admin and returns a fresh
// session token.
func (ah *AuthHelper) SignupAdmin(t *testing.T, email string) string {
	t.Helper()
	ah.SignupUser(t, email)
	ah.PromoteTo(t, email, models.RoleAdmin)
	return ah.Login(t, email, "pass1234word")
}

// SeedUser inserts a user directly into the database (bypasses the API).
func (ah *AuthHelper) SeedUser(t *testing.T, user *models.User) *models.User {
	t.Helper()

	err := ah.server.UserRepo.Create(context.Background(), user)
	require.NoError(t, err, "failed to seed user")
	return user
}

// TourHelper provides tour seeding helpers for API tests.
type TourHelper struct {
	server *TestServer
}

// NewTourHelper creates a new tour helper.
func NewTourHelper(server *TestServer) *TourHelper {
	return &TourHelper{server: server}
}

// SeedTour inserts a tour directly into the database (bypasses the API).
func (th *TourHelper) SeedTour(t *testing.T, tour *models.Tour) *models.Tour {
	t.Helper()

	err := th.server.TourRepo.Create(context.Background(), tour)
	require.NoError(t, err, "failed to seed tour")
	return tour
}

// SeedReview inserts a review directly into the database (bypasses the API,
// so parent tour rating stats are NOT recomputed).
func (th *TourHelper) SeedReview(t *testing.T, review *models.Review) *models.Review {
	t.Helper()

	err := th.server.ReviewRepo.Create(context.Background(), review)
	require.NoError(t, err, "failed to seed review")
	return review
}

// SeedBooking inserts a booking directly into the database (bypasses the API).
func (th *TourHelper) SeedBooking(t *testing.T, booking *models.Booking) *models.Booking {
	t.Helper()

	err := th.server.BookingRepo.Create(context.Background(), booking)
	require.NoError(t, err, "failed to seed booking")
	return booking
}

// GetID extracts the hex id field from response data.
func GetID(t *testing.T, data map[string]interface{}) string {
	t.Helper()

	id, ok := data["id"].(string)
	require.True(t, ok, "id should be a string in response data")
	return id
}

// GetObjectID extracts and parses the id field as an ObjectID.
func GetObjectID(t *testing.T, data map[string]interface{}) primitive.ObjectID {
	t.Helper()

	oid, err := primitive.ObjectIDFromHex(GetID(t, data))
	require.NoError(t, err, "failed to parse ObjectID")
	return oid
}
