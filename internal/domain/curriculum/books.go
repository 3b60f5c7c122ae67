package curriculum

import (
	"math/rand"
	"slices"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
)

// WordOrderings returns one ordering of triple per book session. Orderings
// are distinct rotations when the triple has at least three elements and are
// shuffled across sessions; shorter triples reuse their rotations.
func WordOrderings(triple []string, rng *rand.Rand) [][]string {
	sessions := len(domain.BookSessions)
	n := len(triple)
	if n == 0 {
		out := make([][]string, sessions)
		for i := range out {
			out[i] = []string{}
		}
		return out
	}

	rotations := make([][]string, 0, sessions)
	for i := 0; i < sessions; i++ {
		rotations = append(rotations, rotate(triple, i%n))
	}
	rng.Shuffle(len(rotations), func(i, j int) {
		rotations[i], rotations[j] = rotations[j], rotations[i]
	})
	return rotations
}

func rotate(xs []string, k int) []string {
	out := make([]string, 0, len(xs))
	out = append(out, xs[k:]...)
	return append(out, xs[:k]...)
}

// BookContent assembles the day's sessions of book from the chosen triples.
// Words appear in every session; sentences only in session 3, verbatim.
func BookContent(bookID int, book domain.Book, wordTriple, sentenceTriple int, rng *rand.Rand) domain.BookDailyData {
	words := tripleAt(book.WordTriples, wordTriple)
	sentences := tripleAt(book.SentenceTriples, sentenceTriple)
	orderings := WordOrderings(words, rng)

	sessions := make([]domain.BookSessionContent, 0, len(domain.BookSessions))
	for i, s := range domain.BookSessions {
		content := domain.BookSessionContent{Session: s, Words: orderings[i], Sentences: []string{}}
		if s.Offers(domain.ItemSentences) {
			content.Sentences = slices.Clone(sentences)
		}
		sessions = append(sessions, content)
	}

	return domain.BookDailyData{
		BookID:         bookID,
		Title:          book.Title,
		WordTriple:     wordTriple,
		SentenceTriple: sentenceTriple,
		Sessions:       sessions,
	}
}

// PlaceholderBook is the empty content shown when no book is available.
func PlaceholderBook() domain.BookDailyData {
	sessions := make([]domain.BookSessionContent, 0, len(domain.BookSessions))
	for _, s := range domain.BookSessions {
		sessions = append(sessions, domain.BookSessionContent{Session: s, Words: []string{}, Sentences: []string{}})
	}
	return domain.BookDailyData{BookID: -1, Placeholder: true, Sessions: sessions}
}

func tripleAt(triples [][]string, i int) []string {
	if i < 0 || i >= len(triples) {
		return []string{}
	}
	return slices.Clone(triples[i])
}
