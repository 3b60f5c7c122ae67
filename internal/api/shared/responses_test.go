package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
)

// requestWithLogger returns a request whose context carries a text logger
// writing into buf at debug level.
func requestWithLogger(buf *strings.Builder, traceID string) *http.Request {
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := logger.WithLogger(context.Background(), log)
	if traceID != "" {
		ctx = WithTraceID(ctx, traceID)
	}
	return httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)
}

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{name: "object", status: http.StatusOK, data: map[string]int{"day": 3}, expectedBody: `{"day":3}`},
		{name: "empty", status: http.StatusOK, data: map[string]int{}, expectedBody: `{}`},
		{name: "nil", status: http.StatusOK, data: nil, expectedBody: `null`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			RespondWithJSON(w, httptest.NewRequest(http.MethodGet, "/test", nil), tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedBody+"\n", w.Body.String())
		})
	}
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	t.Parallel()

	var logBuf strings.Builder
	req := requestWithLogger(&logBuf, "")
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, math.Inf(1))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logBuf.String(), "failed to encode JSON response")
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	var logBuf strings.Builder
	w := httptest.NewRecorder()
	RespondWithError(w, requestWithLogger(&logBuf, "test-trace-id"), http.StatusBadRequest, "Invalid request")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Invalid request", response.Error)
	assert.Equal(t, "test-trace-id", response.TraceID)
}

func TestRespondWithErrorNoTraceID(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	RespondWithError(w, httptest.NewRequest(http.MethodGet, "/test", nil), http.StatusUnauthorized, "Unauthorized")

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Unauthorized", response.Error)
	assert.Empty(t, response.TraceID)
	assert.NotContains(t, w.Body.String(), "trace_id")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		status        int
		elevate       bool
		expectedLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, expectedLevel: "level=ERROR"},
		{name: "client error", status: http.StatusBadRequest, expectedLevel: "level=DEBUG"},
		{name: "elevated client error", status: http.StatusUnauthorized, elevate: true, expectedLevel: "level=WARN"},
		{name: "rate limited", status: http.StatusTooManyRequests, expectedLevel: "level=WARN"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var logBuf strings.Builder
			req := requestWithLogger(&logBuf, "test-trace-id")
			w := httptest.NewRecorder()

			var opts []ResponseOption
			if tc.elevate {
				opts = append(opts, WithElevatedLogLevel())
			}
			err := errors.New("open /var/lib/liluka/progress.db: disk full")
			RespondWithErrorAndLog(w, req, tc.status, "Something failed", err, opts...)

			assert.Equal(t, tc.status, w.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "Something failed", response.Error)
			assert.NotContains(t, w.Body.String(), "progress.db")

			out := logBuf.String()
			assert.Contains(t, out, tc.expectedLevel)
			assert.Contains(t, out, "trace_id=test-trace-id")
			assert.Contains(t, out, "error_type=")
			assert.Contains(t, out, "[REDACTED_PATH]")
			assert.NotContains(t, out, "progress.db")
		})
	}
}
