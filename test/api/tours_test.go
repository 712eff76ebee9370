//go:build api

package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"tours-api/internal/models"
	"tours-api/test/api/testserver"
	"tours-api/test/fixtures"
	"tours-api/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// TestGetAllTours tests the GET /api/v1/tours endpoint with query features.
func TestGetAllTours(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	tourHelper := testserver.NewTourHelper(testServer)
	tourHelper.SeedTour(t, fixtures.NewTour().WithName("The Budget Wander Tour").WithSlug("the-budget-wander-tour").WithPrice(297).WithRatings(4.2, 10).BuildPtr())
	tourHelper.SeedTour(t, fixtures.NewTour().WithName("The Middle Road Tour").WithSlug("the-middle-road-tour").WithPrice(697).WithRatings(4.8, 22).BuildPtr())
	tourHelper.SeedTour(t, fixtures.NewTour().WithName("The Splurge Trek Tour").WithSlug("the-splurge-trek-tour").WithPrice(1497).WithRatings(4.9, 31).BuildPtr())

	t.Run("success - lists everything", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := testutil.ParseAPIListResponse(t, w)
		require.NotNil(t, resp.Results)
		assert.Equal(t, 3, *resp.Results)
	})

	t.Run("success - mongo-style filter operators", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours?price[lt]=1000&price[gte]=300", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := testutil.ParseAPIListResponse(t, w)
		require.Len(t, resp.Data, 1)
		tour := resp.Data[0].(map[string]interface{})
		assert.Equal(t, "The Middle Road Tour", tour["name"])
	})

	t.Run("success - sort and field projection", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours?sort=-price&fields=name,price", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := testutil.ParseAPIListResponse(t, w)
		require.Len(t, resp.Data, 3)

		first := resp.Data[0].(map[string]interface{})
		assert.Equal(t, "The Splurge Trek Tour", first["name"])
		assert.Empty(t, first["difficulty"], "projection should drop unselected fields")
	})

	t.Run("success - pagination", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours?sort=price&page=2&limit=1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := testutil.ParseAPIListResponse(t, w)
		require.Len(t, resp.Data, 1)
		tour := resp.Data[0].(map[string]interface{})
		assert.Equal(t, "The Middle Road Tour", tour["name"])
	})
}

// TestTopTours tests the GET /api/v1/tours/top-5-cheap preset.
func TestTopTours(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	tourHelper := testserver.NewTourHelper(testServer)
	for i := 0; i < 7; i++ {
		tourHelper.SeedTour(t, fixtures.NewTour().
			WithName(fmt.Sprintf("The Numbered Tour %02d", i)).
			WithSlug(fmt.Sprintf("the-numbered-tour-%02d", i)).
			WithPrice(float64(100*(i+1))).
			WithRatings(4.0+float64(i)*0.1, 5).
			BuildPtr())
	}

	w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/top-5-cheap", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := testutil.ParseAPIListResponse(t, w)
	require.Len(t, resp.Data, 5)

	// Best rated first.
	first := resp.Data[0].(map[string]interface{})
	assert.Equal(t, "The Numbered Tour 06", first["name"])
}

// TestGetTour tests the GET /api/v1/tours/:id and slug lookups.
func TestGetTour(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	tourHelper := testserver.NewTourHelper(testServer)
	authHelper := testserver.NewAuthHelper(testServer)

	tour := tourHelper.SeedTour(t, fixtures.NewTour().WithName("The Detail Rich Tour").WithSlug("the-detail-rich-tour").BuildPtr())
	reviewer := authHelper.SeedUser(t, fixtures.NewUser().BuildPtr())
	tourHelper.SeedReview(t, fixtures.NewReview().ForTour(tour.ID).ByUser(reviewer.ID).WithRating(5).BuildPtr())

	t.Run("success - by id, reviews attached", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/"+tour.ID.Hex(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := testutil.ParseAPIResponse(t, w)
		assert.Equal(t, "The Detail Rich Tour", resp.Data["name"])

		reviews, ok := resp.Data["reviews"].([]interface{})
		require.True(t, ok, "detail view should embed reviews")
		assert.Len(t, reviews, 1)
	})

	t.Run("success - served from cache on repeat", func(t *testing.T) {
		// First request populated the cache; a repeat must still answer
		// correctly after the backing document changes under it.
		_, err := testServer.TourRepo.UpdateByID(context.Background(), tour.ID, bson.M{"name": "Renamed Behind The Cache"})
		require.NoError(t, err)

		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/"+tour.ID.Hex(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := testutil.ParseAPIResponse(t, w)
		assert.Equal(t, "The Detail Rich Tour", resp.Data["name"], "stale read proves the cache answered")
	})

	t.Run("success - by slug", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/slug/the-detail-rich-tour", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("error - unknown id", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/507f1f77bcf86cd799439011", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("error - malformed id", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/not-an-id", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestCreateTour tests the POST /api/v1/tours endpoint.
func TestCreateTour(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	authHelper := testserver.NewAuthHelper(testServer)
	userToken := authHelper.SignupUser(t, "walker@example.com")

	authHelper.SignupUser(t, "lead@example.com")
	authHelper.PromoteTo(t, "lead@example.com", models.RoleLeadGuide)
	leadToken := authHelper.Login(t, "lead@example.com", "pass1234word")

	validReq := func() models.CreateTourRequest {
		return models.CreateTourRequest{
			Name:         "The Forest Hiker",
			Duration:     5,
			MaxGroupSize: 25,
			Difficulty:   models.DifficultyEasy,
			Price:        397,
			Summary:      "Breathtaking hike through the Canadian Banff National Park",
			ImageCover:   "tour-1-cover.jpg",
		}
	}

	t.Run("error - anonymous", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/tours", validReq())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("error - plain users cannot create tours", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/tours", userToken, validReq())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("success - lead guide creates a tour, slug derived", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/tours", leadToken, validReq())

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := testutil.ParseAPIResponse(t, w)
		assert.Equal(t, "The Forest Hiker", resp.Data["name"])
		assert.Equal(t, "the-forest-hiker", resp.Data["slug"])
		assert.Equal(t, 4.5, resp.Data["ratingsAverage"], "new tours start at the default rating")
		assert.Equal(t, float64(0), resp.Data["ratingsQuantity"])
	})

	t.Run("error - duplicate name", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/tours", leadToken, validReq())
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("error - name too short", func(t *testing.T) {
		req := validReq()
		req.Name = "Short"

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/tours", leadToken, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestUpdateDeleteTour tests PATCH and DELETE on /api/v1/tours/:id.
func TestUpdateDeleteTour(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	authHelper := testserver.NewAuthHelper(testServer)
	tourHelper := testserver.NewTourHelper(testServer)
	adminToken := authHelper.SignupAdmin(t, "touradmin@example.com")

	tour := tourHelper.SeedTour(t, fixtures.NewTour().WithName("The Editable Field Tour").WithSlug("the-editable-field-tour").WithPrice(500).BuildPtr())

	t.Run("success - price update", func(t *testing.T) {
		price := 649.0
		req := models.UpdateTourRequest{Price: &price}

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPatch, "/api/v1/tours/"+tour.ID.Hex(), adminToken, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := testutil.ParseAPIResponse(t, w)
		assert.Equal(t, 649.0, resp.Data["price"])
	})

	t.Run("success - rename refreshes the slug", func(t *testing.T) {
		name := "The Freshly Renamed Tour"
		req := models.UpdateTourRequest{Name: &name}

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPatch, "/api/v1/tours/"+tour.ID.Hex(), adminToken, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := testutil.ParseAPIResponse(t, w)
		assert.Equal(t, "the-freshly-renamed-tour", resp.Data["slug"])
	})

	t.Run("success - delete, then gone", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodDelete, "/api/v1/tours/"+tour.ID.Hex(), adminToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/"+tour.ID.Hex(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// TestToursWithin tests the geospatial GET
// /api/v1/tours/tours-within/:distance/center/:latlng/unit/:unit route.
func TestToursWithin(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	tourHelper := testserver.NewTourHelper(testServer)
	// Miami and Los Angeles, roughly 2,300 miles apart.
	tourHelper.SeedTour(t, fixtures.NewTour().WithName("The Miami Beach Tour").WithSlug("the-miami-beach-tour").WithStartLocation(-80.185942, 25.774772).BuildPtr())
	tourHelper.SeedTour(t, fixtures.NewTour().WithName("The Los Angeles Tour").WithSlug("the-los-angeles-tour").WithStartLocation(-118.113491, 34.111745).BuildPtr())

	t.Run("success - only tours inside the radius", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet,
			"/api/v1/tours/tours-within/500/center/25.774772,-80.185942/unit/mi", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := testutil.ParseAPIListResponse(t, w)
		require.Len(t, resp.Data, 1)
		tour := resp.Data[0].(map[string]interface{})
		assert.Equal(t, "The Miami Beach Tour", tour["name"])
	})

	t.Run("success - a continental radius catches both", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet,
			"/api/v1/tours/tours-within/4000/center/25.774772,-80.185942/unit/km", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := testutil.ParseAPIListResponse(t, w)
		assert.Len(t, resp.Data, 2)
	})

	t.Run("error - malformed center", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet,
			"/api/v1/tours/tours-within/500/center/25.774772/unit/mi", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTourDistances(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	tourHelper := testserver.NewTourHelper(testServer)
	// Miami and Los Angeles, roughly 2,300 miles apart.
	tourHelper.SeedTour(t, fixtures.NewTour().WithName("The Miami Beach Tour").WithSlug("the-miami-beach-tour").WithStartLocation(-80.185942, 25.774772).BuildPtr())
	tourHelper.SeedTour(t, fixtures.NewTour().WithName("The Los Angeles Tour").WithSlug("the-los-angeles-tour").WithStartLocation(-118.113491, 34.111745).BuildPtr())

	t.Run("success - distances in miles, nearest first", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet,
			"/api/v1/tours/distances/25.774772,-80.185942/unit/mi", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := testutil.ParseAPIListResponse(t, w)
		require.Len(t, resp.Data, 2)

		nearest := resp.Data[0].(map[string]interface{})
		assert.Equal(t, "The Miami Beach Tour", nearest["name"])
		assert.InDelta(t, 0, nearest["distance"].(float64), 1)

		farthest := resp.Data[1].(map[string]interface{})
		assert.Equal(t, "The Los Angeles Tour", farthest["name"])
		assert.InDelta(t, 2330, farthest["distance"].(float64), 50)
	})

	t.Run("error - unknown unit", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet,
			"/api/v1/tours/distances/25.774772,-80.185942/unit/leagues", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("error - malformed point", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet,
			"/api/v1/tours/distances/25.774772/unit/mi", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestTourAggregations tests the stats and monthly plan pipelines.
func TestTourAggregations(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	authHelper := testserver.NewAuthHelper(testServer)
	tourHelper := testserver.NewTourHelper(testServer)

	may := time.Date(2021, 5, 10, 0, 0, 0, 0, time.UTC)
	june := time.Date(2021, 6, 20, 0, 0, 0, 0, time.UTC)
	tourHelper.SeedTour(t, fixtures.NewTour().WithName("The Spring Melt Tour").WithSlug("the-spring-melt-tour").WithRatings(4.7, 12).WithStartDates(may, june).BuildPtr())
	tourHelper.SeedTour(t, fixtures.NewTour().WithName("The Summer Peak Tour").WithSlug("the-summer-peak-tour").WithRatings(4.6, 8).WithStartDates(june).BuildPtr())

	t.Run("success - tour stats", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/tour-stats", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := testutil.ParseAPIListResponse(t, w)
		require.NotEmpty(t, resp.Data)
		entry := resp.Data[0].(map[string]interface{})
		assert.Equal(t, float64(2), entry["numTours"])
	})

	t.Run("error - monthly plan requires a guide role", func(t *testing.T) {
		token := authHelper.SignupUser(t, "curious@example.com")

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/monthly-plan/2021", token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("success - monthly plan for guides", func(t *testing.T) {
		authHelper.SignupUser(t, "planner@example.com")
		authHelper.PromoteTo(t, "planner@example.com", models.RoleGuide)
		token := authHelper.Login(t, "planner@example.com", "pass1234word")

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/monthly-plan/2021", token, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := testutil.ParseAPIListResponse(t, w)
		// June has two starts, May one; busiest month first.
		require.NotEmpty(t, resp.Data)
		busiest := resp.Data[0].(map[string]interface{})
		assert.Equal(t, float64(6), busiest["month"])
		assert.Equal(t, float64(2), busiest["numTourStarts"])
	})
}
