// Package content loads the static reading datasets: the no-repeat word and
// sentence corpora and the ordered book list.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
)

//go:embed sample.yaml
var sample []byte

// ErrInvalidContent is returned when a content file fails validation.
var ErrInvalidContent = errors.New("invalid content")

// Library is the full static dataset. It is never mutated after loading.
type Library struct {
	Words     []string      `yaml:"words" validate:"dive,required"`
	Sentences []string      `yaml:"sentences" validate:"dive,required"`
	Books     []domain.Book `yaml:"books" validate:"dive"`
}

// Corpus returns the items of the named no-repeat corpus.
func (l *Library) Corpus(c domain.Corpus) []string {
	switch c {
	case domain.CorpusWords:
		return l.Words
	case domain.CorpusSentences:
		return l.Sentences
	default:
		return nil
	}
}

// Book returns the book at index id.
func (l *Library) Book(id int) (domain.Book, bool) {
	if id < 0 || id >= len(l.Books) {
		return domain.Book{}, false
	}
	return l.Books[id], true
}

// Load reads the library from path. An empty path loads the embedded sample.
func Load(path string) (*Library, error) {
	if path == "" {
		return Parse(sample)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Parse(data)
}

// Sample returns the embedded sample library.
func Sample() *Library {
	lib, err := Parse(sample)
	if err != nil {
		panic(fmt.Sprintf("embedded content is invalid: %v", err)) // ALLOW-PANIC
	}
	return lib
}

// Parse decodes and validates YAML content.
func Parse(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	normalize(&lib)
	if err := validator.New().Struct(lib); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	for i, b := range lib.Books {
		for j, t := range b.WordTriples {
			if len(t) > 3 {
				return nil, fmt.Errorf("%w: book %d word triple %d has %d items", ErrInvalidContent, i, j, len(t))
			}
		}
		for j, t := range b.SentenceTriples {
			if len(t) > 3 {
				return nil, fmt.Errorf("%w: book %d sentence triple %d has %d items", ErrInvalidContent, i, j, len(t))
			}
		}
	}
	return &lib, nil
}

func normalize(lib *Library) {
	lib.Words = trimAll(lib.Words)
	lib.Sentences = trimAll(lib.Sentences)
	if lib.Words == nil {
		lib.Words = []string{}
	}
	if lib.Sentences == nil {
		lib.Sentences = []string{}
	}
}

func trimAll(items []string) []string {
	for i, s := range items {
		items[i] = strings.TrimSpace(s)
	}
	return items
}
