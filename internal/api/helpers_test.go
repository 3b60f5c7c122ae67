package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/api"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/content"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain/curriculum"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/clock"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/memory"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/books"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/norep"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/routine"
)

var day1 = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

type testAPI struct {
	clock     *clock.ManualClock
	store     *memory.Store
	numbers   *routine.NumbersService
	equations *routine.EquationsService
	norep     *norep.Service
	books     *books.Service
	router    http.Handler
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()
	log := discardLogger()

	kv := memory.New()
	require.NoError(t, kv.Init(ctx))
	clk := clock.NewManualClock(day1)
	lib := content.Sample()

	deps := routine.Deps{Store: kv, Clock: clk, Logger: log, Salt: 1}
	numbers, err := routine.NewNumbersService(curriculum.NewDefaultNumbersParams(), deps)
	require.NoError(t, err)
	equations, err := routine.NewEquationsService(curriculum.NewDefaultEquationsParams(), deps)
	require.NoError(t, err)
	nr := norep.NewService(norep.Config{Words: lib.Words, Sentences: lib.Sentences}, norep.Deps{
		Store:  kv,
		Clock:  clk,
		Logger: log,
		Rand:   rand.New(rand.NewSource(42)),
	})
	bk := books.NewService(lib.Books, books.Deps{Store: kv, Clock: clk, Logger: log, Salt: 1})

	ta := &testAPI{clock: clk, store: kv, numbers: numbers, equations: equations, norep: nr, books: bk}
	ta.router = newRouter(numbers, equations, nr, bk)
	return ta
}

// newRouter mounts the handlers on the production paths.
func newRouter(
	numbers api.NumbersTrack,
	equations api.EquationsTrack,
	nr api.NoRepeatTrack,
	bk api.BooksTrack,
) http.Handler {
	log := discardLogger()
	hydrate := api.NewHydrateHandler(numbers, equations, nr, bk, log)
	routineHandler := api.NewRoutineHandler(numbers, equations, log)
	norepHandler := api.NewNoRepeatHandler(nr, log)
	booksHandler := api.NewBooksHandler(bk, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/hydrate", hydrate.Hydrate)
		r.Get("/numbers/today", routineHandler.NumbersToday)
		r.Post("/numbers/sessions/{token}/complete", routineHandler.CompleteNumbersSession)
		r.Get("/equations/today", routineHandler.EquationsToday)
		r.Post("/equations/sessions/{token}/complete", routineHandler.CompleteEquationsSession)
		r.Put("/equations/settings", routineHandler.UpdateEquationsSettings)
		r.Post("/norep/{corpus}/draw", norepHandler.Draw)
		r.Get("/norep/status", norepHandler.Status)
		r.Get("/books/today", booksHandler.Today)
		r.Post("/books/sessions/{session}/{type}/complete", booksHandler.CompleteItem)
		r.Get("/books/progress", booksHandler.Progress)
		r.Get("/books/history", booksHandler.History)
	})
	return r
}

func (ta *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, ta.router, method, path, body)
}

func serve(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}
