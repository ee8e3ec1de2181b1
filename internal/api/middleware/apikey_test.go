package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidecane/guidecane/internal/api/models"
)

func apiKeyTestHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	called := false
	handler := APIKeyAuth("secret123")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &called
}

func TestAPIKeyAuth_ValidKey(t *testing.T) {
	handler, called := apiKeyTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/navigate", nil)
	req.Header.Set(APIKeyHeader, "secret123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuth_MissingKey(t *testing.T) {
	handler, called := apiKeyTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/navigate", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, *called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, models.ProblemTypeUnauthorized, problem.Type)
	assert.Equal(t, "missing API key", problem.Detail)
	assert.Equal(t, "/v1/navigate", problem.Instance)
}

func TestAPIKeyAuth_WrongKey(t *testing.T) {
	handler, called := apiKeyTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/navigate", nil)
	req.Header.Set(APIKeyHeader, "wrong")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, *called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
