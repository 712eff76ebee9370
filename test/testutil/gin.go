package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// SetupRouter creates a Gin router in test mode.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// MakeRequest creates and executes a test HTTP request.
func MakeRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reqBody)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

// MakeAuthRequest creates a request with Authorization header.
func MakeAuthRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reqBody)
	require.NoError(t, err)

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

// ParseResponse parses JSON response into target struct.
func ParseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	err := json.Unmarshal(w.Body.Bytes(), target)
	require.NoError(t, err)
}

// APIResponse is a decoded response envelope whose data is a single object.
type APIResponse struct {
	Success bool                   `json:"success"`
	Results *int                   `json:"results"`
	Data    map[string]interface{} `json:"data"`
	Error   string                 `json:"error"`
}

// APIListResponse is a decoded response envelope whose data is a list.
type APIListResponse struct {
	Success bool          `json:"success"`
	Results *int          `json:"results"`
	Data    []interface{} `json:"data"`
	Error   string        `json:"error"`
}

// ParseAPIResponse parses an object-data response envelope.
func ParseAPIResponse(t *testing.T, w *httptest.ResponseRecorder) *APIResponse {
	t.Helper()
	var resp APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "failed to parse response: %s", w.Body.String())
	return &resp
}

// ParseAPIListResponse parses a list-data response envelope.
func ParseAPIListResponse(t *testing.T, w *httptest.ResponseRecorder) *APIListResponse {
	t.Helper()
	var resp APIListResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "failed to parse response: %s", w.Body.String())
	return &resp
}

// CreateTestContext creates a Gin context for testing handlers.
func CreateTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// CreateTestContextWithRequest creates a Gin context with a request.
func CreateTestContextWithRequest(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req

	return c, w
}
