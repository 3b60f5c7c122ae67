package api

import (
	"log/slog"
	"net/http"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/api/shared"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
)

// BooksHandler serves the book reading track.
type BooksHandler struct {
	books  BooksTrack
	logger *slog.Logger
}

// NewBooksHandler creates a BooksHandler.
func NewBooksHandler(books BooksTrack, logger *slog.Logger) *BooksHandler {
	if books == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("books service cannot be nil for BooksHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BooksHandler")
	}
	return &BooksHandler{
		books:  books,
		logger: logger.With(slog.String("component", "books_handler")),
	}
}

// Today handles GET /api/books/today.
func (h *BooksHandler) Today(w http.ResponseWriter, r *http.Request) {
	data, flags, err := h.books.Today(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load book")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, BooksTodayResponse{Data: data, Flags: flags})
}

// CompleteItem handles POST /api/books/sessions/{session}/{type}/complete.
func (h *BooksHandler) CompleteItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	session, err := getPathBookSession(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	itemType, err := getPathItemType(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.books.MarkSessionItemCompleted(r.Context(), session, itemType); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	_, flags, err := h.books.Today(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	log.Debug("book item marked",
		slog.Int("session", int(session)),
		slog.String("type", string(itemType)),
		slog.Bool("day_completed", flags.DayCompleted))
	shared.RespondWithJSON(w, r, http.StatusOK, BookItemCompletedResponse{
		Session: session,
		Type:    itemType,
		Flags:   flags,
	})
}

// Progress handles GET /api/books/progress.
func (h *BooksHandler) Progress(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, BookProgressResponse{Books: h.books.Progress(r.Context())})
}

// History handles GET /api/books/history.
func (h *BooksHandler) History(w http.ResponseWriter, r *http.Request) {
	records := h.books.History(r.Context())
	if records == nil {
		records = []domain.CompletionRecord{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, BookHistoryResponse{Records: records})
}
