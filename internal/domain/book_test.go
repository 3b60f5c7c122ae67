package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBook() Book {
	return Book{
		Title:           "Kot",
		WordTriples:     [][]string{{"kot", "pies", "mysz"}, {"", ""}, {"dom", "las", "rzeka"}},
		SentenceTriples: [][]string{{"Kot śpi.", "Pies biega.", "Mysz je."}},
	}
}

func TestBookTripleCounts(t *testing.T) {
	t.Parallel()

	b := sampleBook()
	assert.Equal(t, 2, b.WordTripleCount())
	assert.Equal(t, 1, b.SentenceTripleCount())

	assert.True(t, b.HasWordTriple(0))
	assert.False(t, b.HasWordTriple(1), "blank triple")
	assert.True(t, b.HasWordTriple(2))
	assert.False(t, b.HasWordTriple(3))
	assert.False(t, b.HasWordTriple(-1))
	assert.True(t, b.HasSentenceTriple(0))
	assert.False(t, b.HasSentenceTriple(1))
}

func TestBookProgressRefresh(t *testing.T) {
	t.Parallel()

	b := sampleBook()
	p := NewBookProgress(0)
	p.Refresh(b)
	assert.False(t, p.IsCompleted)

	p.CompleteWordTriple(0, day1)
	p.CompleteWordTriple(2, day1)
	p.Refresh(b)
	assert.False(t, p.IsCompleted)

	p.CompleteSentenceTriple(0, day1)
	p.Refresh(b)
	assert.True(t, p.IsCompleted)
	assert.True(t, p.TouchedOn(day1))
}

func TestNextTripleSkipsEmptyAndSticksAtEnd(t *testing.T) {
	t.Parallel()

	b := sampleBook()
	p := NewBookProgress(0)
	assert.Equal(t, 0, p.NextWordTriple(b))

	p.CompleteWordTriple(0, day1)
	assert.Equal(t, 2, p.NextWordTriple(b))

	p.CompleteWordTriple(2, day1)
	assert.Equal(t, 2, p.NextWordTriple(b))

	last, ok := p.LastWordTriple()
	require.True(t, ok)
	assert.Equal(t, 2, last)

	_, ok = p.LastSentenceTriple()
	assert.False(t, ok)
}

func TestSessionOffers(t *testing.T) {
	t.Parallel()

	assert.True(t, BookSession1.Offers(ItemWords))
	assert.False(t, BookSession2.Offers(ItemSentences))
	assert.True(t, BookSession3.Offers(ItemSentences))
	assert.ErrorIs(t, BookSession(4).Validate(), ErrInvalidSession)
}

func TestNewCompletionRecordIDsSortByTime(t *testing.T) {
	t.Parallel()

	a := NewCompletionRecord(0, BookSession1, ItemWords, day1)
	b := NewCompletionRecord(0, BookSession2, ItemWords, day1.Add(time.Second))

	assert.Len(t, a.ID, 26)
	assert.Less(t, a.ID, b.ID)
}
