package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/content"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
)

func TestLoadEmbeddedSample(t *testing.T) {
	lib, err := content.Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, lib.Words)
	assert.NotEmpty(t, lib.Sentences)
	require.Len(t, lib.Books, 2)
	assert.Equal(t, "Kot i pies", lib.Books[0].Title)
	assert.Equal(t, 3, lib.Books[0].WordTripleCount())
	assert.Equal(t, 2, lib.Books[0].SentenceTripleCount())

	assert.Equal(t, lib.Words, lib.Corpus(domain.CorpusWords))
	assert.Equal(t, lib.Sentences, lib.Corpus(domain.CorpusSentences))
	assert.Nil(t, lib.Corpus("poems"))

	assert.NotPanics(t, func() { content.Sample() })
}

func TestLibraryBook(t *testing.T) {
	lib := content.Sample()

	b, ok := lib.Book(1)
	require.True(t, ok)
	assert.Equal(t, "W lesie", b.Title)

	for _, id := range []int{-1, 2, 99} {
		_, ok := lib.Book(id)
		assert.False(t, ok, id)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	data := []byte("words: [' a ', b]\nsentences: []\nbooks:\n  - title: T\n    wordTriples: [[x, y, z]]\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	lib, err := content.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lib.Words)
	assert.Equal(t, []string{}, lib.Sentences)
	assert.Equal(t, 1, lib.Books[0].WordTripleCount())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := content.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseRejectsInvalidContent(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{name: "malformed yaml", data: "words: [unterminated"},
		{name: "blank word", data: "words: ['  ']"},
		{name: "book without title", data: "books:\n  - wordTriples: [[a]]\n"},
		{name: "page without text", data: "books:\n  - title: T\n    pages:\n      - image: x.png\n"},
		{name: "oversized triple", data: "books:\n  - title: T\n    wordTriples: [[a, b, c, d]]\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := content.Parse([]byte(tc.data))
			assert.ErrorIs(t, err, content.ErrInvalidContent)
		})
	}
}
