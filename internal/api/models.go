package api

import (
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/books"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/norep"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/routine"
)

// HydrateResponse reports what loading the tracks changed.
type HydrateResponse struct {
	NumbersAdvanced   bool `json:"numbersAdvanced"`
	EquationsAdvanced bool `json:"equationsAdvanced"`
}

// NumbersTodayResponse is today's numbers content with its status.
type NumbersTodayResponse struct {
	Data   domain.NumbersDailyData `json:"data"`
	Status routine.Status          `json:"status"`
}

// EquationsTodayResponse is today's equations content with its status and
// the active settings.
type EquationsTodayResponse struct {
	Data     domain.EquationsDailyData `json:"data"`
	Status   routine.Status            `json:"status"`
	Settings routine.EquationsSettings `json:"settings"`
}

// SessionCompletedResponse is returned after marking a session token.
type SessionCompletedResponse struct {
	Token  domain.Token   `json:"token"`
	Status routine.Status `json:"status"`
}

// EquationsSettingsRequest is the body of PUT /api/equations/settings.
type EquationsSettingsRequest struct {
	EquationsPerSession int `json:"equationsPerSession" validate:"required,gte=1,lte=50"`
}

// DrawResponse lists the items drawn from a no-repeat corpus.
type DrawResponse struct {
	Corpus    domain.Corpus `json:"corpus"`
	Items     []string      `json:"items"`
	Exhausted bool          `json:"exhausted"`
	Status    norep.Status  `json:"status"`
}

// BooksTodayResponse is today's book content with the daily flags.
type BooksTodayResponse struct {
	Data  domain.BookDailyData `json:"data"`
	Flags books.DayFlags       `json:"flags"`
}

// BookItemCompletedResponse is returned after marking a book item.
type BookItemCompletedResponse struct {
	Session domain.BookSession `json:"session"`
	Type    domain.ItemType    `json:"type"`
	Flags   books.DayFlags     `json:"flags"`
}

// BookProgressResponse lists per-book progress.
type BookProgressResponse struct {
	Books []books.BookSummary `json:"books"`
}

// BookHistoryResponse lists the completion log, oldest first.
type BookHistoryResponse struct {
	Records []domain.CompletionRecord `json:"records"`
}
