package domain

import (
	"crypto/rand"
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/clock"
)

// Page is one illustrated page of a reading book.
type Page struct {
	Text  string `yaml:"text" json:"text" validate:"required"`
	Image string `yaml:"image,omitempty" json:"image,omitempty"`
}

// Book is a static reading book. Its identity is its index in the ordered
// book list.
type Book struct {
	Title           string     `yaml:"title" json:"title" validate:"required"`
	Pages           []Page     `yaml:"pages" json:"pages" validate:"dive"`
	WordTriples     [][]string `yaml:"wordTriples" json:"wordTriples"`
	SentenceTriples [][]string `yaml:"sentenceTriples" json:"sentenceTriples"`
}

// WordTripleCount returns the number of non-empty word triples.
func (b Book) WordTripleCount() int { return countNonEmpty(b.WordTriples) }

// SentenceTripleCount returns the number of non-empty sentence triples.
func (b Book) SentenceTripleCount() int { return countNonEmpty(b.SentenceTriples) }

// HasWordTriple reports whether word triple i exists and is non-empty.
func (b Book) HasWordTriple(i int) bool { return nonEmptyAt(b.WordTriples, i) }

// HasSentenceTriple reports whether sentence triple i exists and is non-empty.
func (b Book) HasSentenceTriple(i int) bool { return nonEmptyAt(b.SentenceTriples, i) }

func nonEmptyAt(triples [][]string, i int) bool {
	return i >= 0 && i < len(triples) && !isEmptyTriple(triples[i])
}

func countNonEmpty(triples [][]string) int {
	n := 0
	for _, t := range triples {
		if !isEmptyTriple(t) {
			n++
		}
	}
	return n
}

func isEmptyTriple(t []string) bool {
	for _, s := range t {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// BookSession is a session number of the books track, 1..3.
type BookSession int

// Book sessions.
const (
	BookSession1 BookSession = 1
	BookSession2 BookSession = 2
	BookSession3 BookSession = 3
)

// BookSessions lists all sessions in order.
var BookSessions = []BookSession{BookSession1, BookSession2, BookSession3}

// Validate checks that s is within 1..3.
func (s BookSession) Validate() error {
	if s < BookSession1 || s > BookSession3 {
		return ErrInvalidSession
	}
	return nil
}

// ItemType is the kind of content completed in a book session.
type ItemType string

// Book item types.
const (
	ItemWords     ItemType = "words"
	ItemSentences ItemType = "sentences"
)

// ParseItemType validates a book item type.
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemWords, ItemSentences:
		return ItemType(s), nil
	default:
		return "", ErrInvalidItemType
	}
}

// Offers reports whether session s presents items of type t. Words appear in
// every session; sentences only in session 3.
func (s BookSession) Offers(t ItemType) bool {
	switch t {
	case ItemWords:
		return true
	case ItemSentences:
		return s == BookSession3
	default:
		return false
	}
}

// BookProgress is the persisted progress of one book. The completed index
// lists keep insertion order; the last entry is the most recent completion.
type BookProgress struct {
	BookID                   int        `json:"bookId"`
	CompletedWordTriples     []int      `json:"completedWordTriples"`
	CompletedSentenceTriples []int      `json:"completedSentenceTriples"`
	ProgressTimestamp        *time.Time `json:"progressTimestamp"`
	IsCompleted              bool       `json:"isCompleted"`
}

// NewBookProgress returns empty progress for the book at id.
func NewBookProgress(id int) BookProgress {
	return BookProgress{BookID: id, CompletedWordTriples: []int{}, CompletedSentenceTriples: []int{}}
}

// HasWordTriple reports whether word triple i is complete.
func (p BookProgress) HasWordTriple(i int) bool { return slices.Contains(p.CompletedWordTriples, i) }

// HasSentenceTriple reports whether sentence triple i is complete.
func (p BookProgress) HasSentenceTriple(i int) bool {
	return slices.Contains(p.CompletedSentenceTriples, i)
}

// CompleteWordTriple adds word triple i and stamps the progress.
func (p *BookProgress) CompleteWordTriple(i int, now time.Time) {
	if !p.HasWordTriple(i) {
		p.CompletedWordTriples = append(p.CompletedWordTriples, i)
	}
	p.touch(now)
}

// CompleteSentenceTriple adds sentence triple i and stamps the progress.
func (p *BookProgress) CompleteSentenceTriple(i int, now time.Time) {
	if !p.HasSentenceTriple(i) {
		p.CompletedSentenceTriples = append(p.CompletedSentenceTriples, i)
	}
	p.touch(now)
}

func (p *BookProgress) touch(now time.Time) {
	ts := now
	p.ProgressTimestamp = &ts
}

// Refresh recomputes IsCompleted against book's non-empty triple counts.
func (p *BookProgress) Refresh(book Book) {
	p.IsCompleted = len(p.CompletedWordTriples) >= book.WordTripleCount() &&
		len(p.CompletedSentenceTriples) >= book.SentenceTripleCount()
}

// TouchedOn reports whether the progress was last updated on now's calendar day.
func (p BookProgress) TouchedOn(now time.Time) bool {
	return p.ProgressTimestamp != nil && clock.SameDay(*p.ProgressTimestamp, now, now.Location())
}

// NextWordTriple returns the first word triple index not yet complete, or the
// last index when all are complete. Empty books yield 0.
func (p BookProgress) NextWordTriple(book Book) int {
	return nextIndex(book.WordTriples, p.HasWordTriple)
}

// NextSentenceTriple is the sentence counterpart of NextWordTriple.
func (p BookProgress) NextSentenceTriple(book Book) int {
	return nextIndex(book.SentenceTriples, p.HasSentenceTriple)
}

func nextIndex(triples [][]string, done func(int) bool) int {
	for i, t := range triples {
		if isEmptyTriple(t) {
			continue
		}
		if !done(i) {
			return i
		}
	}
	if len(triples) == 0 {
		return 0
	}
	return len(triples) - 1
}

// LastWordTriple returns the most recently completed word triple.
func (p BookProgress) LastWordTriple() (int, bool) { return last(p.CompletedWordTriples) }

// LastSentenceTriple returns the most recently completed sentence triple.
func (p BookProgress) LastSentenceTriple() (int, bool) { return last(p.CompletedSentenceTriples) }

func last(xs []int) (int, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	return xs[len(xs)-1], true
}

// CompletionRecord is one append-only entry of the book session log.
type CompletionRecord struct {
	ID        string      `json:"id"`
	BookID    int         `json:"bookId"`
	Session   BookSession `json:"session"`
	Type      ItemType    `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewCompletionRecord creates a record with a ULID derived from now.
func NewCompletionRecord(bookID int, session BookSession, itemType ItemType, now time.Time) CompletionRecord {
	return CompletionRecord{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		BookID:    bookID,
		Session:   session,
		Type:      itemType,
		Timestamp: now,
	}
}

// BookSelection is the triple pair chosen for one calendar day.
type BookSelection struct {
	Date           string `json:"date"`
	BookID         int    `json:"bookId"`
	WordTriple     int    `json:"wordTriple"`
	SentenceTriple int    `json:"sentenceTriple"`
}

// BookSessionContent is what one book session presents.
type BookSessionContent struct {
	Session   BookSession `json:"session"`
	Words     []string    `json:"words"`
	Sentences []string    `json:"sentences"`
}

// BookDailyData is the day's content for the books track. Placeholder is set
// when no book is available.
type BookDailyData struct {
	BookID         int                  `json:"bookId"`
	Title          string               `json:"title"`
	Placeholder    bool                 `json:"placeholder"`
	WordTriple     int                  `json:"wordTriple"`
	SentenceTriple int                  `json:"sentenceTriple"`
	Sessions       []BookSessionContent `json:"sessions"`
}

// Session returns the content of session s, or an empty value.
func (d BookDailyData) Session(s BookSession) BookSessionContent {
	for _, c := range d.Sessions {
		if c.Session == s {
			return c
		}
	}
	return BookSessionContent{Session: s, Words: []string{}, Sentences: []string{}}
}
