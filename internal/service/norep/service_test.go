package norep_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/events"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/mocks"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/clock"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/memory"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/norep"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

var day1 = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

var (
	words     = []string{"mama", "tata", "kot", "pies", "dom", "las", "auto", "lody", "ryba", "kura", "koza", "sowa"}
	sentences = []string{"Mama ma kota.", "Tata jedzie autem.", "Pies śpi.", "Kot pije mleko."}
)

type harness struct {
	svc    *norep.Service
	store  store.KeyValueStore
	clock  *clock.ManualClock
	events []*events.ProgressEvent
}

func newHarness(t *testing.T, kv store.KeyValueStore) *harness {
	t.Helper()
	if kv == nil {
		kv = memory.New()
	}
	h := &harness{store: kv, clock: clock.NewManualClock(day1)}
	emitter := events.NewInMemoryEventEmitter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	emitter.RegisterHandler(events.HandlerFunc(func(_ context.Context, e *events.ProgressEvent) error {
		h.events = append(h.events, e)
		return nil
	}))
	h.svc = norep.NewService(norep.Config{Words: words, Sentences: sentences}, norep.Deps{
		Store:  kv,
		Clock:  h.clock,
		Events: emitter,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Rand:   rand.New(rand.NewSource(42)),
	})
	return h
}

func TestChooseAndMark_DrawsUnseenItems(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	first, err := h.svc.ChooseAndMarkWords(ctx)
	require.NoError(t, err)
	assert.Len(t, first, norep.DefaultWordsPerDraw)
	for _, w := range first {
		assert.Contains(t, words, w)
	}

	second, err := h.svc.ChooseAndMarkWords(ctx)
	require.NoError(t, err)
	assert.Len(t, second, norep.DefaultWordsPerDraw)
	for _, w := range second {
		assert.NotContains(t, first, w, "items are never repeated")
	}

	st, err := store.ReadJSON[domain.CorpusState](ctx, h.store, store.KeyNoRepWords)
	require.NoError(t, err)
	assert.ElementsMatch(t, append(append([]string{}, first...), second...), st.DisplayedItems)
	assert.Len(t, st.CompletionTimestamps, 2)
}

func TestChooseAndMark_ExhaustionIsTerminal(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	seen := map[string]bool{}
	for {
		got, err := h.svc.ChooseAndMarkSentences(ctx)
		require.NoError(t, err)
		if len(got) == 0 {
			break
		}
		assert.LessOrEqual(t, len(got), norep.DefaultSentencesPerDraw)
		for _, s := range got {
			assert.False(t, seen[s], "repeated %q", s)
			seen[s] = true
		}
	}
	assert.Len(t, seen, len(sentences))

	for i := 0; i < 3; i++ {
		got, err := h.svc.ChooseAndMarkSentences(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}

	require.Len(t, h.events, 1, "exhaustion is announced once")
	assert.Equal(t, events.TypeCorpusExhausted, h.events[0].Type)
	assert.Equal(t, domain.TrackNoRepeat, h.events[0].Track)
	var payload events.CorpusExhausted
	require.NoError(t, h.events[0].UnmarshalPayload(&payload))
	assert.Equal(t, domain.CorpusSentences, payload.Corpus)

	stats := h.svc.Stats(ctx)
	assert.Equal(t, domain.CorpusStats{
		Corpus: domain.CorpusSentences, Displayed: 4, Total: 4, Remaining: 0,
	}, stats[1])
}

func TestChooseAndMark_UnknownCorpus(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.svc.ChooseAndMark(context.Background(), "poems")
	assert.ErrorIs(t, err, domain.ErrInvalidCorpus)
}

func TestCompletedTodayFlags(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	assert.False(t, h.svc.IsWordsCompletedToday(ctx))
	assert.False(t, h.svc.IsNoRepPathCompletedToday(ctx))

	_, err := h.svc.ChooseAndMarkWords(ctx)
	require.NoError(t, err)
	assert.True(t, h.svc.IsWordsCompletedToday(ctx))
	assert.False(t, h.svc.IsSentencesCompletedToday(ctx))
	assert.False(t, h.svc.IsNoRepPathCompletedToday(ctx))

	_, err = h.svc.ChooseAndMarkSentences(ctx)
	require.NoError(t, err)
	assert.True(t, h.svc.IsNoRepPathCompletedToday(ctx))

	status := h.svc.Status(ctx)
	assert.True(t, status.PathCompletedToday)
	assert.Equal(t, 5, status.Stats[0].Displayed)
	assert.Equal(t, len(words)-5, status.Stats[0].Remaining)

	h.clock.AddDays(1)
	assert.False(t, h.svc.IsWordsCompletedToday(ctx))
	assert.False(t, h.svc.IsNoRepPathCompletedToday(ctx))
}

func TestStatePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	first := newHarness(t, kv)
	drawn, err := first.svc.ChooseAndMarkWords(ctx)
	require.NoError(t, err)

	second := newHarness(t, kv)
	require.NoError(t, second.svc.Hydrate(ctx))
	assert.True(t, second.svc.IsWordsCompletedToday(ctx))

	for i := 0; i < 3; i++ {
		more, err := second.svc.ChooseAndMarkWords(ctx)
		require.NoError(t, err)
		for _, w := range more {
			assert.NotContains(t, drawn, w)
		}
	}
}

func TestPersistenceFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, &mocks.FailingStore{Err: errors.New("io error")})

	first, err := h.svc.ChooseAndMarkWords(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	assert.True(t, h.svc.IsWordsCompletedToday(ctx))

	require.NoError(t, h.svc.Hydrate(ctx))
	second, err := h.svc.ChooseAndMarkWords(ctx)
	require.NoError(t, err)
	for _, w := range second {
		assert.NotContains(t, first, w)
	}
}

func TestHydrateAfterFailedWriteKeepsUnsavedDraws(t *testing.T) {
	ctx := context.Background()
	failWrites := false
	kv := &mocks.MockKeyValueStore{}
	kv.WriteFn = func(ctx context.Context, key string, value []byte) error {
		if failWrites {
			return errors.New("disk full")
		}
		return kv.Backing().Write(ctx, key, value)
	}
	h := newHarness(t, kv)

	saved, err := h.svc.ChooseAndMarkWords(ctx)
	require.NoError(t, err)

	failWrites = true
	unsaved, err := h.svc.ChooseAndMarkWords(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, unsaved)

	failWrites = false
	require.NoError(t, h.svc.Hydrate(ctx))

	st, err := store.ReadJSON[domain.CorpusState](ctx, kv, store.KeyNoRepWords)
	require.NoError(t, err)
	assert.Subset(t, st.DisplayedItems, unsaved, "hydrate writes back draws the failed write lost")
	assert.Len(t, st.CompletionTimestamps, 2)

	seen := append(append([]string{}, saved...), unsaved...)
	for {
		more, err := h.svc.ChooseAndMarkWords(ctx)
		require.NoError(t, err)
		if len(more) == 0 {
			break
		}
		for _, w := range more {
			assert.NotContains(t, seen, w, "items are never repeated")
			seen = append(seen, w)
		}
	}
	assert.ElementsMatch(t, words, seen)
}

func TestCustomDrawSizeAndCanceledContext(t *testing.T) {
	svc := norep.NewService(norep.Config{Words: words, WordsPerDraw: 50}, norep.Deps{Store: memory.New()})
	got, err := svc.ChooseAndMarkWords(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, len(words), "a draw never exceeds the pool")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.ChooseAndMarkSentences(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, svc.Hydrate(ctx), context.Canceled)
}
