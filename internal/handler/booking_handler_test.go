package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "tours-api/internal/errors"
	"tours-api/internal/models"
	"tours-api/internal/payment"
	"tours-api/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBookingHandler_CheckoutSession(t *testing.T) {
	tourID := primitive.NewObjectID()
	user := &models.User{ID: primitive.NewObjectID(), Email: "jane@example.com", Role: models.RoleUser}

	tests := []struct {
		name           string
		user           *models.User
		target         string
		mockSetup      func(*mocks.MockBookingService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:   "session created",
			user:   user,
			target: "/bookings/checkout-session/" + tourID.Hex(),
			mockSetup: func(m *mocks.MockBookingService) {
				m.CreateCheckoutSessionFunc = func(ctx context.Context, id primitive.ObjectID, u *models.User) (*payment.CheckoutSession, error) {
					assert.Equal(t, tourID, id)
					return &payment.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.example.com/cs_test_123"}, nil
				}
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				data := resp["data"].(map[string]interface{})
				assert.Equal(t, "cs_test_123", data["id"])
			},
		},
		{
			name:           "no session user",
			user:           nil,
			target:         "/bookings/checkout-session/" + tourID.Hex(),
			mockSetup:      func(m *mocks.MockBookingService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed tour id",
			user:           user,
			target:         "/bookings/checkout-session/not-an-id",
			mockSetup:      func(m *mocks.MockBookingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "provider down",
			user:   user,
			target: "/bookings/checkout-session/" + tourID.Hex(),
			mockSetup: func(m *mocks.MockBookingService) {
				m.CreateCheckoutSessionFunc = func(ctx context.Context, id primitive.ObjectID, u *models.User) (*payment.CheckoutSession, error) {
					return nil, apperrors.ErrPaymentProvider
				}
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mocks.MockBookingService{}
			tt.mockSetup(mockService)

			handler := NewBookingHandler(mockService)

			router := gin.New()
			router.GET("/bookings/checkout-session/:tourId", setCurrentUser(tt.user), handler.CheckoutSession)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestBookingHandler_CheckoutRedirect(t *testing.T) {
	tourID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	t.Run("records the booking", func(t *testing.T) {
		mockService := &mocks.MockBookingService{
			CreateBookingFromRedirectFunc: func(ctx context.Context, tID, uID primitive.ObjectID, price float64) (*models.Booking, error) {
				assert.Equal(t, tourID, tID)
				assert.Equal(t, userID, uID)
				assert.Equal(t, 497.0, price)
				return &models.Booking{ID: primitive.NewObjectID(), Tour: tID, User: uID, Price: price, Paid: true}, nil
			},
		}

		handler := NewBookingHandler(mockService)

		router := gin.New()
		router.GET("/bookings/checkout-redirect", handler.CheckoutRedirect)

		target := fmt.Sprintf("/bookings/checkout-redirect?tour=%s&user=%s&price=497", tourID.Hex(), userID.Hex())
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing query params", func(t *testing.T) {
		handler := NewBookingHandler(&mocks.MockBookingService{})

		router := gin.New()
		router.GET("/bookings/checkout-redirect", handler.CheckoutRedirect)

		req := httptest.NewRequest(http.MethodGet, "/bookings/checkout-redirect?tour="+tourID.Hex(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookingHandler_Webhook(t *testing.T) {
	tests := []struct {
		name           string
		signature      string
		mockSetup      func(*mocks.MockBookingService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:      "confirmed checkout",
			signature: "t=123,v1=abc",
			mockSetup: func(m *mocks.MockBookingService) {
				m.ConfirmCheckoutFunc = func(ctx context.Context, payload []byte, signature string) error {
					assert.Equal(t, "t=123,v1=abc", signature)
					assert.JSONEq(t, `{"type":"checkout.session.completed"}`, string(payload))
					return nil
				}
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				data := resp["data"].(map[string]interface{})
				assert.Equal(t, true, data["received"])
			},
		},
		{
			name:      "bad signature",
			signature: "forged",
			mockSetup: func(m *mocks.MockBookingService) {
				m.ConfirmCheckoutFunc = func(ctx context.Context, payload []byte, signature string) error {
					return apperrors.ErrPaymentProvider
				}
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Body.String(), "webhook signature verification failed")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mocks.MockBookingService{}
			tt.mockSetup(mockService)

			handler := NewBookingHandler(mockService)

			router := gin.New()
			router.POST("/bookings/webhook", handler.Webhook)

			req := httptest.NewRequest(http.MethodPost, "/bookings/webhook",
				bytes.NewBufferString(`{"type":"checkout.session.completed"}`))
			req.Header.Set("Stripe-Signature", tt.signature)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestBookingHandler_MyTours(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}

	mockService := &mocks.MockBookingService{
		MyBookedToursFunc: func(ctx context.Context, userID primitive.ObjectID) ([]models.Tour, error) {
			assert.Equal(t, user.ID, userID)
			return []models.Tour{{Name: "The Forest Hiker"}}, nil
		},
	}

	handler := NewBookingHandler(mockService)

	router := gin.New()
	router.GET("/bookings/my-tours", setCurrentUser(user), handler.MyTours)

	req := httptest.NewRequest(http.MethodGet, "/bookings/my-tours", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Forest Hiker")
}

func TestBookingHandler_CreateBooking(t *testing.T) {
	tourID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	t.Run("admin booking", func(t *testing.T) {
		mockService := &mocks.MockBookingService{
			CreateBookingFunc: func(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
				return &models.Booking{ID: primitive.NewObjectID(), Price: req.Price, Paid: true}, nil
			},
		}

		handler := NewBookingHandler(mockService)

		router := gin.New()
		router.POST("/bookings", handler.CreateBooking)

		body, _ := json.Marshal(models.CreateBookingRequest{
			Tour:  tourID.Hex(),
			User:  userID.Hex(),
			Price: 497,
		})
		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("bad ids", func(t *testing.T) {
		mockService := &mocks.MockBookingService{
			CreateBookingFunc: func(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
				return nil, apperrors.ErrValidation
			},
		}

		handler := NewBookingHandler(mockService)

		router := gin.New()
		router.POST("/bookings", handler.CreateBooking)

		body, _ := json.Marshal(models.CreateBookingRequest{Tour: "nope", User: userID.Hex(), Price: 497})
		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
