package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/api"
	apiMiddleware "github.com/michalchudziak/NaukaLiluka-sub000/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
// Track routes require a bearer device token when authentication is enabled.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	hydrateHandler := api.NewHydrateHandler(app.numbers, app.equations, app.norep, app.books, app.logger)
	routineHandler := api.NewRoutineHandler(app.numbers, app.equations, app.logger)
	norepHandler := api.NewNoRepeatHandler(app.norep, app.logger)
	booksHandler := api.NewBooksHandler(app.books, app.logger)

	r.Route("/api", func(r chi.Router) {
		if app.jwtService != nil {
			r.Use(apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate)
		}

		r.Post("/hydrate", hydrateHandler.Hydrate)

		// Numbers and equations
		r.Get("/numbers/today", routineHandler.NumbersToday)
		r.Post("/numbers/sessions/{token}/complete", routineHandler.CompleteNumbersSession)
		r.Get("/equations/today", routineHandler.EquationsToday)
		r.Post("/equations/sessions/{token}/complete", routineHandler.CompleteEquationsSession)
		r.Put("/equations/settings", routineHandler.UpdateEquationsSettings)

		// No-repeat reading
		r.Post("/norep/{corpus}/draw", norepHandler.Draw)
		r.Get("/norep/status", norepHandler.Status)

		// Books
		r.Get("/books/today", booksHandler.Today)
		r.Post("/books/sessions/{session}/{type}/complete", booksHandler.CompleteItem)
		r.Get("/books/progress", booksHandler.Progress)
		r.Get("/books/history", booksHandler.History)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
