package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/api/shared"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	log, logBuf := logger.GetTestLogger(t)
	mw := NewTraceMiddleware(log)

	tests := []struct {
		name     string
		incoming string
		adopt    bool
	}{
		{name: "generates id", incoming: ""},
		{name: "adopts valid id", incoming: "client-req-0001", adopt: true},
		{name: "rejects unsafe id", incoming: "bad id\nx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var traceID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				traceID = shared.GetTraceID(r.Context())
				logger.FromContext(r.Context()).Info("inside handler")
			})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.incoming != "" {
				req.Header.Set(TraceHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()
			mw(next).ServeHTTP(rr, req)

			assert.NotEmpty(t, traceID)
			assert.Equal(t, traceID, rr.Header().Get(TraceHeader))
			if tt.adopt {
				assert.Equal(t, tt.incoming, traceID)
			} else {
				assert.Len(t, traceID, shared.TraceIDLength)
			}
			assert.Contains(t, logBuf.String(), traceID)
		})
	}
}
