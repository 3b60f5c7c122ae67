package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Track identifies one independent learning track.
type Track string

// Learning tracks.
const (
	TrackNumbers   Track = "numbers"
	TrackEquations Track = "equations"
	TrackNoRepeat  Track = "norep"
	TrackBooks     Track = "books"
)

// SessionType identifies a sub-activity offered inside a session.
type SessionType string

// Session sub-activity types.
const (
	SessionTypeSubitizing SessionType = "subitizing"
	SessionTypeNumbers    SessionType = "numbers"
	SessionTypeEquations  SessionType = "equations"
)

// indexedTokens lists the session types whose tokens are keyed by session
// position rather than by ordering.
var indexedTokens = map[SessionType]bool{
	SessionTypeEquations: true,
}

// Token uniquely identifies one required sub-activity within a day.
type Token string

// SessionSpec describes one sub-activity a session requires.
type SessionSpec struct {
	Type      SessionType `json:"type"`
	IsOrdered bool        `json:"isOrdered"`
}

// Token derives the ledger token of the spec when it appears in the session
// at sessionIndex (zero based). Ordered types yield e.g. "subitizingOrdered";
// indexed types yield e.g. "equations2".
func (s SessionSpec) Token(sessionIndex int) Token {
	if indexedTokens[s.Type] {
		return Token(fmt.Sprintf("%s%d", s.Type, sessionIndex+1))
	}
	if s.IsOrdered {
		return Token(string(s.Type) + "Ordered")
	}
	return Token(string(s.Type) + "Unordered")
}

// Session is the ordered list of sub-activities one session requires.
type Session []SessionSpec

// SessionKey returns the public key of the session at index, e.g. "session1".
func SessionKey(index int) string {
	return fmt.Sprintf("session%d", index+1)
}

// ParseSessionKey converts "session1".."sessionN" into a zero based index.
func ParseSessionKey(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, "session")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	// Only the canonical spelling is accepted: no sign, no leading zeros.
	if err != nil || n < 1 || strconv.Itoa(n) != rest {
		return 0, false
	}
	return n - 1, true
}

// Schedule is the session structure shared by every non-book DailyData.
type Schedule struct {
	ActiveDay      int       `json:"activeDay"`
	SessionContent []Session `json:"sessionContent"`
}

// SessionTokens returns the tokens the session at index requires, or nil when
// the index is out of range.
func (s Schedule) SessionTokens(index int) []Token {
	if index < 0 || index >= len(s.SessionContent) {
		return nil
	}
	tokens := make([]Token, 0, len(s.SessionContent[index]))
	for _, spec := range s.SessionContent[index] {
		tokens = append(tokens, spec.Token(index))
	}
	return tokens
}

// RequiredTokens returns the deduplicated token set of the whole day in
// session order. It is recomputed on every call; the cost is
// O(sessions × specs).
func (s Schedule) RequiredTokens() []Token {
	seen := make(map[Token]bool)
	var tokens []Token
	for i := range s.SessionContent {
		for _, tok := range s.SessionTokens(i) {
			if !seen[tok] {
				seen[tok] = true
				tokens = append(tokens, tok)
			}
		}
	}
	return tokens
}

// Requires reports whether token is part of the day's required set.
func (s Schedule) Requires(token Token) bool {
	for _, tok := range s.RequiredTokens() {
		if tok == token {
			return true
		}
	}
	return false
}

// NumbersDailyData is the day's content for the numbers/subitizing track.
type NumbersDailyData struct {
	Schedule
	Numbers []int `json:"numbers"`
}
