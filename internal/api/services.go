package api

import (
	"context"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/books"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/norep"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/routine"
)

// NumbersTrack is the numbers service as seen by the handlers.
type NumbersTrack interface {
	Hydrate(ctx context.Context) (bool, error)
	Today(ctx context.Context) (domain.NumbersDailyData, routine.Status, error)
	MarkSessionCompleted(ctx context.Context, token domain.Token) error
	Status(ctx context.Context) (routine.Status, error)
}

// EquationsTrack is the equations service as seen by the handlers.
type EquationsTrack interface {
	Hydrate(ctx context.Context) (bool, error)
	Today(ctx context.Context) (domain.EquationsDailyData, routine.Status, error)
	MarkSessionCompleted(ctx context.Context, token domain.Token) error
	Status(ctx context.Context) (routine.Status, error)
	Settings() routine.EquationsSettings
	SetEquationsPerSession(ctx context.Context, n int) (routine.EquationsSettings, error)
}

// NoRepeatTrack is the no-repeat selector as seen by the handlers.
type NoRepeatTrack interface {
	Hydrate(ctx context.Context) error
	ChooseAndMark(ctx context.Context, corpus domain.Corpus) ([]string, error)
	Status(ctx context.Context) norep.Status
}

// BooksTrack is the book tracker as seen by the handlers.
type BooksTrack interface {
	Hydrate(ctx context.Context) error
	Today(ctx context.Context) (domain.BookDailyData, books.DayFlags, error)
	MarkSessionItemCompleted(ctx context.Context, session domain.BookSession, itemType domain.ItemType) error
	Progress(ctx context.Context) []books.BookSummary
	History(ctx context.Context) []domain.CompletionRecord
}

var (
	_ NumbersTrack   = (*routine.NumbersService)(nil)
	_ EquationsTrack = (*routine.EquationsService)(nil)
	_ NoRepeatTrack  = (*norep.Service)(nil)
	_ BooksTrack     = (*books.Service)(nil)
)
