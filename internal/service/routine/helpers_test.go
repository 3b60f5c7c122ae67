package routine_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/events"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/clock"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/memory"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/routine"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

var day1 = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

// recorder collects emitted events.
type recorder struct {
	mu     sync.Mutex
	events []*events.ProgressEvent
}

func (r *recorder) HandleEvent(_ context.Context, e *events.ProgressEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	clock  *clock.ManualClock
	store  store.KeyValueStore
	events *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := memory.New()
	require.NoError(t, kv.Init(context.Background()))
	return &fixture{clock: clock.NewManualClock(day1), store: kv, events: &recorder{}}
}

func (f *fixture) deps() routine.Deps {
	emitter := events.NewInMemoryEventEmitter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	emitter.RegisterHandler(f.events)
	return routine.Deps{
		Store:  f.store,
		Clock:  f.clock,
		Events: emitter,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Salt:   7,
	}
}
