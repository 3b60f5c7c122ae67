package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/config"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/content"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain/curriculum"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/events"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/clock"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/auth"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/books"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/norep"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/routine"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/task"
)

// application holds the shared dependencies of every command and releases
// them on cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	clock  clock.Clock

	store   store.KeyValueStore
	closers []func() error

	// Remote mirroring; nil when disabled.
	queue *task.TaskQueue
	pool  *task.WorkerPool

	eventEmitter *events.InMemoryEventEmitter
	library      *content.Library

	numbers   *routine.NumbersService
	equations *routine.EquationsService
	norep     *norep.Service
	books     *books.Service

	// jwtService is nil when authentication is disabled.
	jwtService auth.JWTService
}

// newApplication opens storage, loads content and builds the track services.
// The returned application owns every opened resource; call cleanup when done.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	loc, err := cfg.Clock.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}
	app := &application{
		config: cfg,
		logger: logger,
		clock:  clock.NewSystemClock(loc),
	}

	if err := app.openStorage(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	app.library, err = content.Load(cfg.Content.Path)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	logger.Info("content loaded",
		"words", len(app.library.Words),
		"sentences", len(app.library.Sentences),
		"books", len(app.library.Books))

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLoggingHandler(logger))

	if err := app.buildServices(); err != nil {
		app.cleanup()
		return nil, err
	}

	if cfg.AuthEnabled() {
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("JWT authentication service initialized",
			"token_lifetime", cfg.Auth.TokenLifetime.String())
	} else {
		logger.Warn("authentication disabled, API is open to any caller")
	}

	return app, nil
}

func (app *application) buildServices() error {
	cur := app.config.Curriculum
	deps := routine.Deps{
		Store:  app.store,
		Clock:  app.clock,
		Events: app.eventEmitter,
		Logger: app.logger,
		Salt:   cur.Seed,
	}

	var err error
	app.numbers, err = routine.NewNumbersService(numbersParams(cur), deps)
	if err != nil {
		return fmt.Errorf("failed to initialize numbers track: %w", err)
	}
	app.equations, err = routine.NewEquationsService(equationsParams(cur), deps)
	if err != nil {
		return fmt.Errorf("failed to initialize equations track: %w", err)
	}

	app.norep = norep.NewService(norep.Config{
		Words:            app.library.Words,
		Sentences:        app.library.Sentences,
		WordsPerDraw:     cur.WordsPerDraw,
		SentencesPerDraw: cur.SentencesPerDraw,
	}, norep.Deps{
		Store:  app.store,
		Clock:  app.clock,
		Events: app.eventEmitter,
		Logger: app.logger,
	})

	app.books = books.NewService(app.library.Books, books.Deps{
		Store:  app.store,
		Clock:  app.clock,
		Events: app.eventEmitter,
		Logger: app.logger,
		Salt:   cur.Seed,
	})
	return nil
}

func numbersParams(cur config.CurriculumConfig) curriculum.NumbersParams {
	p := curriculum.NewDefaultNumbersParams()
	if cur.MaxNumber > 0 {
		p.MaxNumber = cur.MaxNumber
	}
	return p
}

func equationsParams(cur config.CurriculumConfig) curriculum.EquationsParams {
	p := curriculum.NewDefaultEquationsParams()
	if cur.SessionsPerDay > 0 {
		p.SessionsPerDay = cur.SessionsPerDay
	}
	if cur.EquationsPerSession > 0 {
		p.EquationsPerSession = cur.EquationsPerSession
	}
	for name, days := range cur.CategoryDurations {
		p.CategoryDurations[domain.Category(name)] = days
	}
	return p
}

// hydrate loads every track from storage. Numbers and equations advance
// their day when yesterday was completed.
func (app *application) hydrate(ctx context.Context) error {
	numbersAdvanced, err := app.numbers.Hydrate(ctx)
	if err != nil {
		return fmt.Errorf("hydrate numbers: %w", err)
	}
	equationsAdvanced, err := app.equations.Hydrate(ctx)
	if err != nil {
		return fmt.Errorf("hydrate equations: %w", err)
	}
	if err := app.norep.Hydrate(ctx); err != nil {
		return fmt.Errorf("hydrate no-repeat: %w", err)
	}
	if err := app.books.Hydrate(ctx); err != nil {
		return fmt.Errorf("hydrate books: %w", err)
	}
	app.logger.Info("tracks hydrated",
		"numbers_advanced", numbersAdvanced,
		"equations_advanced", equationsAdvanced)
	return nil
}

// cleanup stops the mirror workers and closes storage. It is safe to call on
// a partially built application.
func (app *application) cleanup() {
	if app.queue != nil {
		app.queue.Close()
	}
	if app.pool != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := app.pool.Shutdown(ctx); err != nil {
			app.logger.Warn("mirror workers did not drain", "error", err)
		}
		cancel()
	}

	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		app.logger.Error("failed to close storage", "error", err)
	}
}
