package api

import (
	"log/slog"
	"net/http"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/api/shared"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
)

// NoRepeatHandler serves the no-repeat reading path.
type NoRepeatHandler struct {
	norep  NoRepeatTrack
	logger *slog.Logger
}

// NewNoRepeatHandler creates a NoRepeatHandler.
func NewNoRepeatHandler(norep NoRepeatTrack, logger *slog.Logger) *NoRepeatHandler {
	if norep == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("norep service cannot be nil for NoRepeatHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for NoRepeatHandler")
	}
	return &NoRepeatHandler{
		norep:  norep,
		logger: logger.With(slog.String("component", "norep_handler")),
	}
}

// Draw handles POST /api/norep/{corpus}/draw. An exhausted corpus answers
// 200 with an empty item list.
func (h *NoRepeatHandler) Draw(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	corpus, err := getPathCorpus(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	items, err := h.norep.ChooseAndMark(r.Context(), corpus)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to draw items")
		return
	}

	log.Debug("no-repeat draw served",
		slog.String("corpus", string(corpus)),
		slog.Int("count", len(items)))
	shared.RespondWithJSON(w, r, http.StatusOK, DrawResponse{
		Corpus:    corpus,
		Items:     items,
		Exhausted: len(items) == 0,
		Status:    h.norep.Status(r.Context()),
	})
}

// Status handles GET /api/norep/status.
func (h *NoRepeatHandler) Status(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.norep.Status(r.Context()))
}
