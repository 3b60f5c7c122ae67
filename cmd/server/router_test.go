package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiMiddleware "github.com/michalchudziak/NaukaLiluka-sub000/internal/api/middleware"
)

func request(t *testing.T, h http.Handler, method, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t, testConfig()).setupRouter()
	rr := request(t, router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(apiMiddleware.TraceHeader))
}

func TestRoutesWithoutAuth(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t, testConfig()).setupRouter()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodPost, "/api/hydrate", http.StatusOK},
		{http.MethodGet, "/api/numbers/today", http.StatusOK},
		{http.MethodGet, "/api/equations/today", http.StatusOK},
		{http.MethodGet, "/api/norep/status", http.StatusOK},
		{http.MethodPost, "/api/norep/words/draw", http.StatusOK},
		{http.MethodPost, "/api/norep/poems/draw", http.StatusBadRequest},
		{http.MethodGet, "/api/books/today", http.StatusOK},
		{http.MethodGet, "/api/books/progress", http.StatusOK},
		{http.MethodGet, "/api/books/history", http.StatusOK},
		{http.MethodPost, "/api/numbers/sessions/bogus/complete", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := request(t, router, tt.method, tt.path, "")
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}
}

func TestRoutesWithAuth(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Auth.JWTSecret = testSecret
	app := newTestApplication(t, cfg)
	router := app.setupRouter()

	token, err := app.jwtService.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		rr := request(t, router, http.MethodGet, "/api/numbers/today", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		rr := request(t, router, http.MethodGet, "/api/numbers/today", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rr := request(t, router, http.MethodGet, "/api/numbers/today", token)
		assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	})

	t.Run("health stays public", func(t *testing.T) {
		rr := request(t, router, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
