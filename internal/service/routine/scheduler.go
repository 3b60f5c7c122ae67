package routine

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain/curriculum"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/events"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/clock"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

// Deps are the collaborators of a Scheduler.
type Deps struct {
	Store  store.KeyValueStore
	Clock  clock.Clock
	Events events.EventEmitter
	Logger *slog.Logger
	// Salt separates the content seeds of different installations.
	Salt int64
}

// SessionStatus is the completion state of one session.
type SessionStatus struct {
	Key       string         `json:"key"`
	Tokens    []domain.Token `json:"tokens"`
	Completed bool           `json:"completed"`
}

// Status is a one-read summary of a track.
type Status struct {
	Track           domain.Track    `json:"track"`
	Day             int             `json:"day"`
	Category        domain.Category `json:"category,omitempty"`
	Sessions        []SessionStatus `json:"sessions"`
	DayCompleted    bool            `json:"dayCompleted"`
	LastSessionDate *time.Time      `json:"lastSessionDate"`
}

// Scheduler runs one day-based track over a curriculum.Scheme. All methods
// are safe for concurrent use.
type Scheduler[D curriculum.DailyData] struct {
	mu       sync.Mutex
	scheme   curriculum.Scheme[D]
	key      string
	kv       store.KeyValueStore
	clock    clock.Clock
	events   events.EventEmitter
	salt     int64
	logger   *slog.Logger
	state    domain.ProgressState
	hydrated bool
	// dirty is set while the last write of state failed.
	dirty bool
}

// NewScheduler creates a scheduler persisting its state under key.
func NewScheduler[D curriculum.DailyData](scheme curriculum.Scheme[D], key string, deps Deps) *Scheduler[D] {
	if scheme == nil {
		panic("scheme cannot be nil") // ALLOW-PANIC
	}
	if deps.Store == nil {
		panic("store cannot be nil") // ALLOW-PANIC
	}
	if deps.Clock == nil {
		deps.Clock = clock.NewSystemClock(nil)
	}
	if deps.Events == nil {
		deps.Events = events.NopEmitter{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Scheduler[D]{
		scheme: scheme,
		key:    key,
		kv:     deps.Store,
		clock:  deps.Clock,
		events: deps.Events,
		salt:   deps.Salt,
		logger: deps.Logger.With(
			slog.String("component", "scheduler"),
			slog.String("track", string(scheme.Track())),
		),
		state: scheme.Initial(),
	}
}

// Track returns the scheduled track.
func (s *Scheduler[D]) Track() domain.Track {
	return s.scheme.Track()
}

// Hydrate loads the persisted state and advances the day once if the last
// active day was completed. It reports whether the day advanced. When the
// store has no usable record the initial state is used on first load and
// the in-memory state is kept afterwards. While the last write failed the
// in-memory state is written again instead of reloaded. Only a canceled
// context is returned as an error.
func (s *Scheduler[D]) Hydrate(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrateLocked(ctx)
}

func (s *Scheduler[D]) hydrateLocked(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s.hydrated && s.dirty {
		// The store is behind memory; write instead of reloading a stale record.
		s.persist(ctx)
	} else if state, ok := s.load(ctx); ok || !s.hydrated {
		s.state = state
	}
	s.hydrated = true
	return s.maybeAdvanceDayLocked(ctx), nil
}

func (s *Scheduler[D]) ensureHydrated(ctx context.Context) error {
	if s.hydrated {
		return nil
	}
	_, err := s.hydrateLocked(ctx)
	return err
}

// MaybeAdvanceDay applies the advance rule to the loaded state. It fires at
// most once per stale ledger, since advancing clears the ledger.
func (s *Scheduler[D]) MaybeAdvanceDay(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydrated(ctx); err != nil {
		return false, err
	}
	return s.maybeAdvanceDayLocked(ctx), nil
}

func (s *Scheduler[D]) maybeAdvanceDayLocked(ctx context.Context) bool {
	now := s.clock.Now()
	required := s.generate(s.state, now).RequiredTokens()
	if !s.state.ReadyToAdvance(required, now) {
		return false
	}

	prev := s.state
	s.state = s.scheme.Advance(prev)
	s.persist(ctx)

	logger.FromContextOrDefault(ctx, s.logger).Info("day advanced",
		slog.Int("from_day", prev.CurrentDay),
		slog.Int("to_day", s.state.CurrentDay),
		slog.String("category", string(s.state.CurrentCategory)))

	s.emit(ctx, events.TypeDayAdvanced, events.DayAdvanced{
		FromDay:  prev.CurrentDay,
		ToDay:    s.state.CurrentDay,
		Category: s.state.CurrentCategory,
	}, now)
	if prev.CurrentCategory != "" && prev.CurrentCategory != s.state.CurrentCategory {
		s.emit(ctx, events.TypeCategoryRotated, events.CategoryRotated{
			From: prev.CurrentCategory,
			To:   s.state.CurrentCategory,
		}, now)
	}
	return true
}

// DailyData returns today's content. Repeated calls on the same day return
// the same content.
func (s *Scheduler[D]) DailyData(ctx context.Context) (D, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydrated(ctx); err != nil {
		var zero D
		return zero, err
	}
	return s.generate(s.state, s.clock.Now()), nil
}

// MarkSessionCompleted records token in today's ledger. Tokens outside
// today's required set are rejected with domain.ErrUnknownToken.
func (s *Scheduler[D]) MarkSessionCompleted(ctx context.Context, token domain.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydrated(ctx); err != nil {
		return err
	}

	now := s.clock.Now()
	if !s.generate(s.state, now).Requires(token) {
		return domain.ErrUnknownToken
	}
	if s.state.MarkCompleted(token, now) {
		s.persist(ctx)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("session token completed",
		slog.String("token", string(token)),
		slog.Int("day", s.state.CurrentDay))
	return nil
}

// IsDayCompleted reports whether every required token was completed today.
// A fresh install is never complete.
func (s *Scheduler[D]) IsDayCompleted(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ensureHydrated(ctx) != nil {
		return false
	}
	now := s.clock.Now()
	return s.state.HasCompletedToday(s.generate(s.state, now).RequiredTokens(), now)
}

// IsSessionCompletedToday reports whether the session named by sessionKey
// ("session1", "session2", ...) was completed today. Unknown keys are false.
func (s *Scheduler[D]) IsSessionCompletedToday(ctx context.Context, sessionKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ensureHydrated(ctx) != nil {
		return false
	}
	idx, ok := domain.ParseSessionKey(sessionKey)
	if !ok {
		return false
	}
	now := s.clock.Now()
	return s.state.HasCompletedToday(s.generate(s.state, now).SessionTokens(idx), now)
}

// Status returns the day, category and completion flags in one read.
func (s *Scheduler[D]) Status(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydrated(ctx); err != nil {
		return Status{}, err
	}
	return s.statusLocked(s.generate(s.state, s.clock.Now())), nil
}

func (s *Scheduler[D]) statusLocked(data D) Status {
	now := s.clock.Now()
	st := Status{
		Track:        s.scheme.Track(),
		Day:          s.state.CurrentDay,
		Category:     s.state.CurrentCategory,
		Sessions:     []SessionStatus{},
		DayCompleted: s.state.HasCompletedToday(data.RequiredTokens(), now),
	}
	if s.state.LastSessionDate != nil {
		ts := *s.state.LastSessionDate
		st.LastSessionDate = &ts
	}
	for i := 0; ; i++ {
		tokens := data.SessionTokens(i)
		if tokens == nil {
			break
		}
		st.Sessions = append(st.Sessions, SessionStatus{
			Key:       domain.SessionKey(i),
			Tokens:    tokens,
			Completed: s.state.HasCompletedToday(tokens, now),
		})
	}
	return st
}

// Today returns today's content together with its status.
func (s *Scheduler[D]) Today(ctx context.Context) (D, Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydrated(ctx); err != nil {
		var zero D
		return zero, Status{}, err
	}
	data := s.generate(s.state, s.clock.Now())
	return data, s.statusLocked(data), nil
}

// State returns a copy of the loaded progress state.
func (s *Scheduler[D]) State(ctx context.Context) (domain.ProgressState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydrated(ctx); err != nil {
		return domain.ProgressState{}, err
	}
	return s.state.Clone(), nil
}

// setScheme swaps the content scheme. The next generated day uses it.
func (s *Scheduler[D]) setScheme(scheme curriculum.Scheme[D]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheme = scheme
}

func (s *Scheduler[D]) generate(state domain.ProgressState, now time.Time) D {
	return s.scheme.Generate(state, s.rng(state, now))
}

func (s *Scheduler[D]) rng(state domain.ProgressState, now time.Time) *rand.Rand {
	return curriculum.NewRand(s.scheme.Track(), now, state.CurrentDay, state.CurrentCategory, s.salt)
}

// load reads the saved state. ok is false when nothing usable was stored,
// in which case the initial state is returned.
func (s *Scheduler[D]) load(ctx context.Context) (domain.ProgressState, bool) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	state, err := store.ReadJSON[domain.ProgressState](ctx, s.kv, s.key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Debug("no saved progress")
		return s.scheme.Initial(), false
	case err != nil:
		log.Error("failed to load progress",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
		return s.scheme.Initial(), false
	}

	if err := state.Validate(); err != nil {
		log.Warn("saved progress is invalid",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
		return s.scheme.Initial(), false
	}
	if state.CompletedSessions == nil {
		state.CompletedSessions = []domain.Token{}
	}
	return state, true
}

func (s *Scheduler[D]) persist(ctx context.Context) {
	err := store.WriteJSON(ctx, s.kv, s.key, s.state)
	s.dirty = err != nil
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save progress",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
	}
}

func (s *Scheduler[D]) emit(ctx context.Context, eventType string, payload any, now time.Time) {
	event, err := events.NewProgressEvent(eventType, s.scheme.Track(), payload, now)
	if err != nil {
		s.logger.Error("failed to build progress event", slog.String("error", err.Error()))
		return
	}
	if err := s.events.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("progress event handler failed",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
