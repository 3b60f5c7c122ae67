package routine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain/curriculum"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

// EquationsSettings are the user-adjustable equations parameters.
type EquationsSettings struct {
	EquationsPerSession int `json:"equationsPerSession"`
}

// Validate checks the settings range.
func (s EquationsSettings) Validate() error {
	if s.EquationsPerSession < curriculum.MinEquationsPerSession ||
		s.EquationsPerSession > curriculum.MaxEquationsPerSession {
		return fmt.Errorf("%w: equations per session must be within %d..%d",
			domain.ErrValidation, curriculum.MinEquationsPerSession, curriculum.MaxEquationsPerSession)
	}
	return nil
}

// EquationsService schedules the equations track and owns its settings.
type EquationsService struct {
	*Scheduler[domain.EquationsDailyData]

	settingsMu sync.Mutex
	params     curriculum.EquationsParams
	settings   EquationsSettings
	kv         store.KeyValueStore
	logger     *slog.Logger
}

// NewEquationsService creates the equations track scheduler. params carries
// the defaults; saved settings override them on Hydrate.
func NewEquationsService(params curriculum.EquationsParams, deps Deps) (*EquationsService, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("equations service: %w", err)
	}
	sched := NewScheduler[domain.EquationsDailyData](
		curriculum.NewEquationsScheme(params), store.KeyEquationsProgress, deps)
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &EquationsService{
		Scheduler: sched,
		params:    params,
		settings:  EquationsSettings{EquationsPerSession: params.EquationsPerSession},
		kv:        deps.Store,
		logger:    log.With(slog.String("component", "equations_settings")),
	}, nil
}

// Hydrate loads the saved settings, then the progress state.
func (s *EquationsService) Hydrate(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.loadSettings(ctx)
	return s.Scheduler.Hydrate(ctx)
}

func (s *EquationsService) loadSettings(ctx context.Context) {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()

	log := logger.FromContextOrDefault(ctx, s.logger)
	saved, err := store.ReadJSON[EquationsSettings](ctx, s.kv, store.KeyEquationsSettings)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return
	case err != nil:
		log.Error("failed to load equations settings", slog.String("error", err.Error()))
		return
	}
	if err := saved.Validate(); err != nil {
		log.Warn("saved equations settings are invalid, keeping defaults", slog.String("error", err.Error()))
		return
	}
	s.applyLocked(saved)
}

// Settings returns the current settings.
func (s *EquationsService) Settings() EquationsSettings {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()
	return s.settings
}

// SetEquationsPerSession changes the number of equations per session and
// persists the choice. Out-of-range values wrap domain.ErrValidation.
func (s *EquationsService) SetEquationsPerSession(ctx context.Context, n int) (EquationsSettings, error) {
	next := EquationsSettings{EquationsPerSession: n}
	if err := next.Validate(); err != nil {
		return s.Settings(), service.NewServiceError("equations", "set_settings", err)
	}

	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()
	s.applyLocked(next)
	if err := store.WriteJSON(ctx, s.kv, store.KeyEquationsSettings, next); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save equations settings",
			slog.String("error", err.Error()))
	}
	return next, nil
}

func (s *EquationsService) applyLocked(settings EquationsSettings) {
	s.settings = settings
	s.setScheme(curriculum.NewEquationsScheme(s.params.WithEquationsPerSession(settings.EquationsPerSession)))
}
