package domain

import (
	"slices"
	"time"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/clock"
)

// Corpus names a no-repeat reading corpus.
type Corpus string

// No-repeat corpora.
const (
	CorpusWords     Corpus = "words"
	CorpusSentences Corpus = "sentences"
)

// ParseCorpus validates a corpus name.
func ParseCorpus(s string) (Corpus, error) {
	switch Corpus(s) {
	case CorpusWords, CorpusSentences:
		return Corpus(s), nil
	default:
		return "", ErrInvalidCorpus
	}
}

// CorpusState tracks which items of a corpus were ever shown and when draws
// happened. DisplayedItems only grows and keeps first-display order.
type CorpusState struct {
	DisplayedItems       []string    `json:"displayedItems"`
	CompletionTimestamps []time.Time `json:"completionTimestamps"`
}

// NewCorpusState returns an empty state.
func NewCorpusState() CorpusState {
	return CorpusState{DisplayedItems: []string{}, CompletionTimestamps: []time.Time{}}
}

// Available returns the items of corpus that were never displayed, in corpus
// order. Duplicate corpus entries are collapsed.
func (c CorpusState) Available(corpus []string) []string {
	shown := make(map[string]struct{}, len(c.DisplayedItems))
	for _, item := range c.DisplayedItems {
		shown[item] = struct{}{}
	}
	out := make([]string, 0, len(corpus))
	for _, item := range corpus {
		if _, ok := shown[item]; ok {
			continue
		}
		shown[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Record unions items into DisplayedItems and appends now to the completion
// timestamps.
func (c *CorpusState) Record(items []string, now time.Time) {
	for _, item := range items {
		if !slices.Contains(c.DisplayedItems, item) {
			c.DisplayedItems = append(c.DisplayedItems, item)
		}
	}
	c.CompletionTimestamps = append(c.CompletionTimestamps, now)
}

// Merge unions other into c. Displayed items keep c's order with other's
// unseen items appended. A timestamp recorded n times in either state is kept
// n times, and the result is sorted.
func (c *CorpusState) Merge(other CorpusState) {
	for _, item := range other.DisplayedItems {
		if !slices.Contains(c.DisplayedItems, item) {
			c.DisplayedItems = append(c.DisplayedItems, item)
		}
	}
	have := make(map[int64]int, len(c.CompletionTimestamps))
	for _, ts := range c.CompletionTimestamps {
		have[ts.UnixNano()]++
	}
	for _, ts := range other.CompletionTimestamps {
		if have[ts.UnixNano()] > 0 {
			have[ts.UnixNano()]--
			continue
		}
		c.CompletionTimestamps = append(c.CompletionTimestamps, ts)
	}
	slices.SortStableFunc(c.CompletionTimestamps, func(a, b time.Time) int { return a.Compare(b) })
}

// CompletedOn reports whether any completion timestamp falls on now's calendar day.
func (c CorpusState) CompletedOn(now time.Time) bool {
	for _, ts := range c.CompletionTimestamps {
		if clock.SameDay(ts, now, now.Location()) {
			return true
		}
	}
	return false
}

// CorpusStats summarises a corpus for status screens.
type CorpusStats struct {
	Corpus    Corpus `json:"corpus"`
	Displayed int    `json:"displayed"`
	Total     int    `json:"total"`
	Remaining int    `json:"remaining"`
}
