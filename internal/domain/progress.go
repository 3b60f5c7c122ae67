package domain

import (
	"slices"
	"time"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/clock"
)

// ProgressState is the persisted day counter and completion ledger of a
// numbers-like track.
//
// CompletedSessions is only meaningful while LastSessionDate falls on the
// current local calendar day; readers treat a ledger from an earlier day as
// empty without rewriting it.
type ProgressState struct {
	CurrentDay        int        `json:"currentDay"`
	CurrentCategory   Category   `json:"currentCategory,omitempty"`
	LastSessionDate   *time.Time `json:"lastSessionDate"`
	CompletedSessions []Token    `json:"completedSessions"`
}

// NewProgressState returns the state of a fresh install. Pass an empty
// category for tracks without category rotation.
func NewProgressState(category Category) ProgressState {
	return ProgressState{
		CurrentDay:        1,
		CurrentCategory:   category,
		CompletedSessions: []Token{},
	}
}

// Validate checks the invariants of a loaded state.
func (p ProgressState) Validate() error {
	if p.CurrentDay < 1 {
		return ErrInvalidDay
	}
	if p.CurrentCategory != "" && !p.CurrentCategory.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}

// LedgerIsToday reports whether the ledger was written on the calendar day
// of now, compared in now's location.
func (p ProgressState) LedgerIsToday(now time.Time) bool {
	if p.LastSessionDate == nil {
		return false
	}
	return clock.SameDay(*p.LastSessionDate, now, now.Location())
}

// CompletedToday returns the tokens completed on now's calendar day. A stale
// ledger yields nil.
func (p ProgressState) CompletedToday(now time.Time) []Token {
	if !p.LedgerIsToday(now) {
		return nil
	}
	return p.CompletedSessions
}

// MarkCompleted records token for today. A stale ledger is replaced by
// {token}; otherwise the token is appended if absent. It reports whether the
// state changed.
func (p *ProgressState) MarkCompleted(token Token, now time.Time) bool {
	if !p.LedgerIsToday(now) {
		ts := now
		p.LastSessionDate = &ts
		p.CompletedSessions = []Token{token}
		return true
	}
	if slices.Contains(p.CompletedSessions, token) {
		return false
	}
	p.CompletedSessions = append(p.CompletedSessions, token)
	return true
}

// HasCompletedToday reports whether every token in required was completed on
// now's calendar day. An empty requirement is never complete.
func (p ProgressState) HasCompletedToday(required []Token, now time.Time) bool {
	return len(required) > 0 && containsAll(p.CompletedToday(now), required)
}

// ReadyToAdvance reports whether a prior day's ledger covers every required
// token. Fresh installs, same-day ledgers and partial days never advance.
func (p ProgressState) ReadyToAdvance(required []Token, now time.Time) bool {
	if p.LastSessionDate == nil || len(required) == 0 {
		return false
	}
	if !clock.BeforeDay(*p.LastSessionDate, now, now.Location()) {
		return false
	}
	return containsAll(p.CompletedSessions, required)
}

// ClearLedger empties the completion ledger. LastSessionDate is kept so the
// next day's first completion still triggers the lazy reset.
func (p *ProgressState) ClearLedger() {
	p.CompletedSessions = []Token{}
}

// Clone returns a deep copy of p.
func (p ProgressState) Clone() ProgressState {
	out := p
	if p.LastSessionDate != nil {
		ts := *p.LastSessionDate
		out.LastSessionDate = &ts
	}
	out.CompletedSessions = slices.Clone(p.CompletedSessions)
	if out.CompletedSessions == nil {
		out.CompletedSessions = []Token{}
	}
	return out
}

func containsAll(have, want []Token) bool {
	for _, tok := range want {
		if !slices.Contains(have, tok) {
			return false
		}
	}
	return true
}
