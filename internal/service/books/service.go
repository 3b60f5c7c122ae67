// Package books tracks reading progress through the ordered book list.
//
// Each book offers word triples and sentence triples. A day presents one
// word triple in three orderings (sessions 1 to 3) and one sentence triple
// in session 3. A word triple counts as done only when all three sessions
// logged words on the same day; a sentence triple is done as soon as
// session 3 logs sentences. A book is finished when every non-empty triple
// is done, and the next unfinished book becomes active.
package books

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain/curriculum"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/events"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/clock"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

// Deps are the collaborators of a Service.
type Deps struct {
	Store  store.KeyValueStore
	Clock  clock.Clock
	Events events.EventEmitter
	Logger *slog.Logger
	// Salt separates the ordering seeds of different installations.
	Salt int64
}

// SessionFlags is today's completion state of one book session.
type SessionFlags struct {
	Session   domain.BookSession `json:"session"`
	Words     bool               `json:"words"`
	Sentences bool               `json:"sentences"`
	Completed bool               `json:"completed"`
}

// DayFlags is today's completion state of the books track.
type DayFlags struct {
	Sessions     []SessionFlags `json:"sessions"`
	DayCompleted bool           `json:"dayCompleted"`
}

// BookSummary is the per-book progress shown on storage screens.
type BookSummary struct {
	BookID               int        `json:"bookId"`
	Title                string     `json:"title"`
	Active               bool       `json:"active"`
	IsCompleted          bool       `json:"isCompleted"`
	WordTriplesDone      int        `json:"wordTriplesDone"`
	WordTriplesTotal     int        `json:"wordTriplesTotal"`
	SentenceTriplesDone  int        `json:"sentenceTriplesDone"`
	SentenceTriplesTotal int        `json:"sentenceTriplesTotal"`
	LastProgressAt       *time.Time `json:"lastProgressAt"`
}

// Service is the book progress tracker. It is safe for concurrent use; every
// mutation is a read-merge-write of the stored records under one mutex.
type Service struct {
	mu        sync.Mutex
	books     []domain.Book
	kv        store.KeyValueStore
	clock     clock.Clock
	events    events.EventEmitter
	salt      int64
	logger    *slog.Logger
	progress  []domain.BookProgress
	history   []domain.CompletionRecord
	selection *domain.BookSelection
	loaded    bool
	// dirty is set while the last write of progress and history failed.
	dirty bool
}

// NewService creates a tracker over books, which must not be mutated
// afterwards.
func NewService(books []domain.Book, deps Deps) *Service {
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
	s := &Service{
		books:   books,
		kv:      deps.Store,
		clock:   deps.Clock,
		events:  deps.Events,
		salt:    deps.Salt,
		logger:  deps.Logger.With(slog.String("component", "books_service")),
		history: []domain.CompletionRecord{},
	}
	s.progress = s.normalize(nil)
	return s
}

// Hydrate loads progress, history and today's selection from the store. Once
// loaded, stored records are merged into the in-memory ones and records a
// failed write left unsaved are written again.
func (s *Service) Hydrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mergeLocked(ctx)
	if s.dirty {
		s.saveLocked(ctx)
	}
	return nil
}

// DailyData returns today's book content. Once chosen, the day's triples do
// not change until the next calendar day. Without books the placeholder is
// returned.
func (s *Service) DailyData(ctx context.Context) (domain.BookDailyData, error) {
	if err := ctx.Err(); err != nil {
		return domain.BookDailyData{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	return s.dailyDataLocked(ctx, s.clock.Now()), nil
}

// Today returns today's content with the completion flags.
func (s *Service) Today(ctx context.Context) (domain.BookDailyData, DayFlags, error) {
	if err := ctx.Err(); err != nil {
		return domain.BookDailyData{}, DayFlags{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	now := s.clock.Now()
	data := s.dailyDataLocked(ctx, now)
	return data, s.flagsLocked(data, now), nil
}

// MarkSessionItemCompleted logs that session finished items of itemType
// today and commits triples whose requirements are met.
func (s *Service) MarkSessionItemCompleted(ctx context.Context, session domain.BookSession, itemType domain.ItemType) error {
	if err := session.Validate(); err != nil {
		return err
	}
	if _, err := domain.ParseItemType(string(itemType)); err != nil {
		return err
	}
	if !session.Offers(itemType) {
		return domain.ErrInvalidSessionItem
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mergeLocked(ctx)

	now := s.clock.Now()
	sel, ok := s.selectionLocked(ctx, now)
	if !ok {
		log.Debug("no book available, ignoring completion")
		return nil
	}

	if !s.loggedTodayLocked(session, itemType, now) {
		s.history = append(s.history, domain.NewCompletionRecord(sel.BookID, session, itemType, now))
	}

	book := s.books[sel.BookID]
	p := &s.progress[sel.BookID]
	wasCompleted := p.IsCompleted

	switch itemType {
	case domain.ItemWords:
		if s.wordsDoneTodayLocked(now) && book.HasWordTriple(sel.WordTriple) {
			p.CompleteWordTriple(sel.WordTriple, now)
			log.Info("word triple completed",
				slog.Int("book_id", sel.BookID),
				slog.Int("triple", sel.WordTriple))
		}
	case domain.ItemSentences:
		if book.HasSentenceTriple(sel.SentenceTriple) {
			p.CompleteSentenceTriple(sel.SentenceTriple, now)
			log.Info("sentence triple completed",
				slog.Int("book_id", sel.BookID),
				slog.Int("triple", sel.SentenceTriple))
		}
	}
	p.Refresh(book)

	s.saveLocked(ctx)

	if p.IsCompleted && !wasCompleted {
		log.Info("book completed", slog.Int("book_id", sel.BookID), slog.String("title", book.Title))
		s.emit(ctx, events.TypeBookCompleted, events.BookCompleted{BookID: sel.BookID, Title: book.Title}, now)
	}
	return nil
}

// IsSessionCompletedToday reports whether session logged every item type
// it presents today.
func (s *Service) IsSessionCompletedToday(ctx context.Context, session domain.BookSession) bool {
	if session.Validate() != nil || ctx.Err() != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	now := s.clock.Now()
	flags := s.flagsLocked(s.dailyDataLocked(ctx, now), now)
	return flags.Sessions[int(session)-1].Completed
}

// IsDayCompleted reports whether all three sessions are completed today.
func (s *Service) IsDayCompleted(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	now := s.clock.Now()
	return s.flagsLocked(s.dailyDataLocked(ctx, now), now).DayCompleted
}

// Progress returns a summary of every book in list order.
func (s *Service) Progress(ctx context.Context) []BookSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)

	active := s.activeBookLocked()
	out := make([]BookSummary, 0, len(s.books))
	for i, b := range s.books {
		p := s.progress[i]
		summary := BookSummary{
			BookID:               i,
			Title:                b.Title,
			Active:               i == active,
			IsCompleted:          p.IsCompleted,
			WordTriplesDone:      len(p.CompletedWordTriples),
			WordTriplesTotal:     b.WordTripleCount(),
			SentenceTriplesDone:  len(p.CompletedSentenceTriples),
			SentenceTriplesTotal: b.SentenceTripleCount(),
		}
		if p.ProgressTimestamp != nil {
			ts := *p.ProgressTimestamp
			summary.LastProgressAt = &ts
		}
		out = append(out, summary)
	}
	return out
}

// History returns the full completion log, oldest first.
func (s *Service) History(ctx context.Context) []domain.CompletionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	return slices.Clone(s.history)
}

// ActiveBook returns the index of the active book, or -1 without books.
func (s *Service) ActiveBook(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	return s.activeBookLocked()
}

func (s *Service) dailyDataLocked(ctx context.Context, now time.Time) domain.BookDailyData {
	sel, ok := s.selectionLocked(ctx, now)
	if !ok {
		return curriculum.PlaceholderBook()
	}
	return curriculum.BookContent(sel.BookID, s.books[sel.BookID], sel.WordTriple, sel.SentenceTriple, s.rng(sel))
}

// rng seeds the session orderings from the date and the chosen book and
// triple, so the orderings stay put for the whole day.
func (s *Service) rng(sel domain.BookSelection) *rand.Rand {
	day, err := time.ParseInLocation(clock.DateLayout, sel.Date, s.clock.Now().Location())
	if err != nil {
		day = s.clock.Now()
	}
	slot := sel.BookID*1000 + sel.WordTriple
	return curriculum.NewRand(domain.TrackBooks, day, slot, "", s.salt)
}

// selectionLocked returns today's triple selection, choosing and storing a
// new one when the stored selection is from another day or points outside
// the book list. ok is false when there are no books.
func (s *Service) selectionLocked(ctx context.Context, now time.Time) (domain.BookSelection, bool) {
	today := clock.DateKey(now, now.Location())
	if sel := s.selection; sel != nil && sel.Date == today && sel.BookID >= 0 && sel.BookID < len(s.books) {
		return *sel, true
	}

	active := s.activeBookLocked()
	if active < 0 {
		return domain.BookSelection{}, false
	}
	book := s.books[active]
	p := s.progress[active]

	sel := domain.BookSelection{
		Date:           today,
		BookID:         active,
		WordTriple:     p.NextWordTriple(book),
		SentenceTriple: p.NextSentenceTriple(book),
	}
	// Progress stamped today without a stored selection: keep showing the
	// triples finished today instead of skipping ahead.
	if p.TouchedOn(now) {
		if last, ok := p.LastWordTriple(); ok {
			sel.WordTriple = last
		}
		if last, ok := p.LastSentenceTriple(); ok {
			sel.SentenceTriple = last
		}
	}

	s.selection = &sel
	if err := store.WriteJSON(ctx, s.kv, store.KeyBookDailySelection, sel); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save daily selection",
			slog.String("error", err.Error()))
	}
	return sel, true
}

func (s *Service) activeBookLocked() int {
	if len(s.books) == 0 {
		return -1
	}
	for i, p := range s.progress {
		if !p.IsCompleted {
			return i
		}
	}
	return len(s.books) - 1
}

func (s *Service) loggedTodayLocked(session domain.BookSession, itemType domain.ItemType, now time.Time) bool {
	for _, r := range s.history {
		if r.Session == session && r.Type == itemType && clock.SameDay(r.Timestamp, now, now.Location()) {
			return true
		}
	}
	return false
}

func (s *Service) wordsDoneTodayLocked(now time.Time) bool {
	for _, session := range domain.BookSessions {
		if !s.loggedTodayLocked(session, domain.ItemWords, now) {
			return false
		}
	}
	return true
}

func (s *Service) flagsLocked(data domain.BookDailyData, now time.Time) DayFlags {
	flags := DayFlags{Sessions: make([]SessionFlags, 0, len(domain.BookSessions)), DayCompleted: true}
	for _, session := range domain.BookSessions {
		f := SessionFlags{
			Session:   session,
			Words:     s.loggedTodayLocked(session, domain.ItemWords, now),
			Sentences: s.loggedTodayLocked(session, domain.ItemSentences, now),
		}
		// A session without words needs none logged; the placeholder never completes.
		f.Completed = f.Words || (!data.Placeholder && len(data.Session(session).Words) == 0)
		if session.Offers(domain.ItemSentences) && len(data.Session(session).Sentences) > 0 {
			f.Completed = f.Completed && f.Sentences
		}
		flags.DayCompleted = flags.DayCompleted && f.Completed
		flags.Sessions = append(flags.Sessions, f)
	}
	return flags
}

func (s *Service) ensureLoadedLocked(ctx context.Context) {
	if !s.loaded {
		s.loadLocked(ctx)
	}
}

// loadLocked refreshes in-memory state from the store. Records that fail
// to load leave the in-memory copy untouched.
func (s *Service) loadLocked(ctx context.Context) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	s.loaded = true

	progress, err := store.ReadJSON[[]domain.BookProgress](ctx, s.kv, store.KeyBookProgress)
	switch {
	case err == nil:
		s.progress = s.normalize(progress)
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to load book progress", slog.String("error", err.Error()))
	}

	history, err := store.ReadJSON[[]domain.CompletionRecord](ctx, s.kv, store.KeyBookSessionLog)
	switch {
	case err == nil:
		if history == nil {
			history = []domain.CompletionRecord{}
		}
		s.history = history
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to load book session log", slog.String("error", err.Error()))
	}

	sel, err := store.ReadJSON[domain.BookSelection](ctx, s.kv, store.KeyBookDailySelection)
	switch {
	case err == nil:
		s.selection = &sel
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to load daily selection", slog.String("error", err.Error()))
	}
}

// mergeLocked folds the stored records into the in-memory ones, so neither
// a concurrent writer's records nor unsaved local ones are lost.
func (s *Service) mergeLocked(ctx context.Context) {
	if !s.loaded {
		s.loadLocked(ctx)
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	stored, err := store.ReadJSON[[]domain.BookProgress](ctx, s.kv, store.KeyBookProgress)
	switch {
	case err == nil:
		for _, sp := range s.normalize(stored) {
			p := &s.progress[sp.BookID]
			for _, i := range sp.CompletedWordTriples {
				if !p.HasWordTriple(i) {
					p.CompletedWordTriples = append(p.CompletedWordTriples, i)
				}
			}
			for _, i := range sp.CompletedSentenceTriples {
				if !p.HasSentenceTriple(i) {
					p.CompletedSentenceTriples = append(p.CompletedSentenceTriples, i)
				}
			}
			if sp.ProgressTimestamp != nil && (p.ProgressTimestamp == nil || sp.ProgressTimestamp.After(*p.ProgressTimestamp)) {
				ts := *sp.ProgressTimestamp
				p.ProgressTimestamp = &ts
			}
			p.Refresh(s.books[sp.BookID])
		}
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to load book progress", slog.String("error", err.Error()))
	}

	history, err := store.ReadJSON[[]domain.CompletionRecord](ctx, s.kv, store.KeyBookSessionLog)
	switch {
	case err == nil:
		seen := make(map[string]bool, len(s.history))
		for _, r := range s.history {
			seen[r.ID] = true
		}
		for _, r := range history {
			if !seen[r.ID] {
				s.history = append(s.history, r)
			}
		}
		slices.SortStableFunc(s.history, func(a, b domain.CompletionRecord) int {
			return a.Timestamp.Compare(b.Timestamp)
		})
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to load book session log", slog.String("error", err.Error()))
	}

	sel, err := store.ReadJSON[domain.BookSelection](ctx, s.kv, store.KeyBookDailySelection)
	switch {
	case err == nil:
		// Date keys sort chronologically; an older stored selection is stale.
		if s.selection == nil || sel.Date > s.selection.Date {
			s.selection = &sel
		}
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to load daily selection", slog.String("error", err.Error()))
	}
}

// normalize returns one progress record per book, in list order, with
// IsCompleted recomputed. Stored records for unknown books are dropped.
func (s *Service) normalize(stored []domain.BookProgress) []domain.BookProgress {
	byID := make(map[int]domain.BookProgress, len(stored))
	for _, p := range stored {
		byID[p.BookID] = p
	}
	out := make([]domain.BookProgress, len(s.books))
	for i, b := range s.books {
		p, ok := byID[i]
		if !ok {
			p = domain.NewBookProgress(i)
		}
		if p.CompletedWordTriples == nil {
			p.CompletedWordTriples = []int{}
		}
		if p.CompletedSentenceTriples == nil {
			p.CompletedSentenceTriples = []int{}
		}
		p.Refresh(b)
		out[i] = p
	}
	return out
}

func (s *Service) saveLocked(ctx context.Context) {
	entries := make([]store.Entry, 0, 2)
	for _, rec := range []struct {
		key   string
		value any
	}{
		{store.KeyBookProgress, s.progress},
		{store.KeyBookSessionLog, s.history},
	} {
		entry, err := store.JSONEntry(rec.key, rec.value)
		if err != nil {
			s.logger.Error("failed to encode book records", slog.String("key", rec.key), slog.String("error", err.Error()))
			return
		}
		entries = append(entries, entry)
	}
	err := store.WriteBatch(ctx, s.kv, entries)
	s.dirty = err != nil
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save book progress",
			slog.String("error", err.Error()))
	}
}

func (s *Service) emit(ctx context.Context, eventType string, payload any, now time.Time) {
	event, err := events.NewProgressEvent(eventType, domain.TrackBooks, payload, now)
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
