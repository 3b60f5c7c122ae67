// Package norep selects reading items that were never shown before.
//
// Each corpus (words, sentences) keeps the set of displayed items. A draw
// shuffles the never-displayed remainder, takes the first N items and
// records them before returning, so an item is shown at most once over the
// lifetime of an installation.
package norep

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/events"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/clock"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

// Default draw sizes.
const (
	DefaultWordsPerDraw     = 5
	DefaultSentencesPerDraw = 3
)

// Config sets the corpora and draw sizes.
type Config struct {
	Words            []string
	Sentences        []string
	WordsPerDraw     int
	SentencesPerDraw int
}

// Deps are the collaborators of a Service.
type Deps struct {
	Store  store.KeyValueStore
	Clock  clock.Clock
	Events events.EventEmitter
	Logger *slog.Logger
	// Rand shuffles the pool. Nil seeds a generator from the clock.
	Rand *rand.Rand
}

// Status is the one-read summary of the no-repeat track.
type Status struct {
	WordsCompletedToday     bool                 `json:"wordsCompletedToday"`
	SentencesCompletedToday bool                 `json:"sentencesCompletedToday"`
	PathCompletedToday      bool                 `json:"pathCompletedToday"`
	Stats                   []domain.CorpusStats `json:"stats"`
}

type corpus struct {
	name      domain.Corpus
	key       string
	items     []string
	perDraw   int
	state     domain.CorpusState
	loaded    bool
	exhausted bool
}

// Service is the no-repeat selector of both corpora. It is safe for
// concurrent use.
type Service struct {
	mu      sync.Mutex
	corpora map[domain.Corpus]*corpus
	kv      store.KeyValueStore
	clock   clock.Clock
	events  events.EventEmitter
	rng     *rand.Rand
	logger  *slog.Logger
}

// NewService creates the selector.
func NewService(cfg Config, deps Deps) *Service {
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
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(deps.Clock.Now().UnixNano()))
	}
	if cfg.WordsPerDraw <= 0 {
		cfg.WordsPerDraw = DefaultWordsPerDraw
	}
	if cfg.SentencesPerDraw <= 0 {
		cfg.SentencesPerDraw = DefaultSentencesPerDraw
	}

	return &Service{
		corpora: map[domain.Corpus]*corpus{
			domain.CorpusWords: {
				name: domain.CorpusWords, key: store.KeyNoRepWords,
				items: cfg.Words, perDraw: cfg.WordsPerDraw, state: domain.NewCorpusState(),
			},
			domain.CorpusSentences: {
				name: domain.CorpusSentences, key: store.KeyNoRepSentences,
				items: cfg.Sentences, perDraw: cfg.SentencesPerDraw, state: domain.NewCorpusState(),
			},
		},
		kv:     deps.Store,
		clock:  deps.Clock,
		events: deps.Events,
		rng:    deps.Rand,
		logger: deps.Logger.With(slog.String("component", "norep_service")),
	}
}

// Hydrate reloads both corpus states from the store.
func (s *Service) Hydrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.corpora {
		s.loadLocked(ctx, c)
	}
	return nil
}

// ChooseAndMark draws up to the configured number of never-displayed items
// from corpus and records them as displayed. An exhausted corpus yields an
// empty slice and no error.
func (s *Service) ChooseAndMark(ctx context.Context, name domain.Corpus) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.corpora[name]
	if !ok {
		return nil, domain.ErrInvalidCorpus
	}
	s.ensureLoadedLocked(ctx, c)

	now := s.clock.Now()
	pool := c.state.Available(c.items)
	if len(pool) == 0 {
		s.markExhaustedLocked(ctx, c, now)
		return []string{}, nil
	}

	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	n := min(c.perDraw, len(pool))
	picked := append([]string(nil), pool[:n]...)

	c.state.Record(picked, now)
	s.saveLocked(ctx, c)
	logger.FromContextOrDefault(ctx, s.logger).Debug("items drawn",
		slog.String("corpus", string(c.name)),
		slog.Int("count", n),
		slog.Int("remaining", len(pool)-n))
	return picked, nil
}

// ChooseAndMarkWords draws from the words corpus.
func (s *Service) ChooseAndMarkWords(ctx context.Context) ([]string, error) {
	return s.ChooseAndMark(ctx, domain.CorpusWords)
}

// ChooseAndMarkSentences draws from the sentences corpus.
func (s *Service) ChooseAndMarkSentences(ctx context.Context) ([]string, error) {
	return s.ChooseAndMark(ctx, domain.CorpusSentences)
}

// IsWordsCompletedToday reports whether words were drawn today.
func (s *Service) IsWordsCompletedToday(ctx context.Context) bool {
	return s.completedToday(ctx, domain.CorpusWords)
}

// IsSentencesCompletedToday reports whether sentences were drawn today.
func (s *Service) IsSentencesCompletedToday(ctx context.Context) bool {
	return s.completedToday(ctx, domain.CorpusSentences)
}

// IsNoRepPathCompletedToday reports whether both corpora were drawn today.
func (s *Service) IsNoRepPathCompletedToday(ctx context.Context) bool {
	return s.IsWordsCompletedToday(ctx) && s.IsSentencesCompletedToday(ctx)
}

func (s *Service) completedToday(ctx context.Context, name domain.Corpus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.corpora[name]
	s.ensureLoadedLocked(ctx, c)
	return c.state.CompletedOn(s.clock.Now())
}

// Stats returns displayed/total/remaining counts for words then sentences.
func (s *Service) Stats(ctx context.Context) []domain.CorpusStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CorpusStats, 0, 2)
	for _, name := range []domain.Corpus{domain.CorpusWords, domain.CorpusSentences} {
		c := s.corpora[name]
		s.ensureLoadedLocked(ctx, c)
		remaining := len(c.state.Available(c.items))
		out = append(out, domain.CorpusStats{
			Corpus:    name,
			Displayed: len(c.state.DisplayedItems),
			Total:     len(c.items),
			Remaining: remaining,
		})
	}
	return out
}

// Status returns today's flags and the corpus stats.
func (s *Service) Status(ctx context.Context) Status {
	words := s.IsWordsCompletedToday(ctx)
	sentences := s.IsSentencesCompletedToday(ctx)
	return Status{
		WordsCompletedToday:     words,
		SentencesCompletedToday: sentences,
		PathCompletedToday:      words && sentences,
		Stats:                   s.Stats(ctx),
	}
}

func (s *Service) ensureLoadedLocked(ctx context.Context, c *corpus) {
	if !c.loaded {
		s.loadLocked(ctx, c)
	}
}

func (s *Service) loadLocked(ctx context.Context, c *corpus) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	state, err := store.ReadJSON[domain.CorpusState](ctx, s.kv, c.key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		if !c.loaded {
			c.state = domain.NewCorpusState()
		}
	case err != nil:
		log.Error("failed to load corpus state",
			slog.String("corpus", string(c.name)),
			slog.String("error", err.Error()))
	default:
		if state.DisplayedItems == nil {
			state.DisplayedItems = []string{}
		}
		if state.CompletionTimestamps == nil {
			state.CompletionTimestamps = []time.Time{}
		}
		if !c.loaded {
			c.state = state
			break
		}
		// A reload never forgets draws that a failed write left only in memory.
		stored := len(state.DisplayedItems) + len(state.CompletionTimestamps)
		state.Merge(c.state)
		c.state = state
		if len(c.state.DisplayedItems)+len(c.state.CompletionTimestamps) != stored {
			s.saveLocked(ctx, c)
		}
	}
	c.loaded = true
}

func (s *Service) saveLocked(ctx context.Context, c *corpus) {
	if err := store.WriteJSON(ctx, s.kv, c.key, c.state); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save corpus state",
			slog.String("corpus", string(c.name)),
			slog.String("error", err.Error()))
	}
}

func (s *Service) markExhaustedLocked(ctx context.Context, c *corpus, now time.Time) {
	if c.exhausted {
		return
	}
	c.exhausted = true
	logger.FromContextOrDefault(ctx, s.logger).Info("corpus exhausted",
		slog.String("corpus", string(c.name)),
		slog.Int("total", len(c.items)))

	event, err := events.NewProgressEvent(events.TypeCorpusExhausted, domain.TrackNoRepeat,
		events.CorpusExhausted{Corpus: c.name, Total: len(c.items)}, now)
	if err != nil {
		s.logger.Error("failed to build progress event", slog.String("error", err.Error()))
		return
	}
	if err := s.events.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("progress event handler failed",
			slog.String("error", err.Error()))
	}
}
