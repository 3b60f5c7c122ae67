package api

import (
	"log/slog"
	"net/http"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/api/shared"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
)

// HydrateHandler loads every track when a screen mounts.
type HydrateHandler struct {
	numbers   NumbersTrack
	equations EquationsTrack
	norep     NoRepeatTrack
	books     BooksTrack
	logger    *slog.Logger
}

// NewHydrateHandler creates a HydrateHandler.
func NewHydrateHandler(
	numbers NumbersTrack,
	equations EquationsTrack,
	norep NoRepeatTrack,
	books BooksTrack,
	logger *slog.Logger,
) *HydrateHandler {
	if numbers == nil || equations == nil || norep == nil || books == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("track services cannot be nil for HydrateHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for HydrateHandler")
	}
	return &HydrateHandler{
		numbers:   numbers,
		equations: equations,
		norep:     norep,
		books:     books,
		logger:    logger.With(slog.String("component", "hydrate_handler")),
	}
}

// Hydrate handles POST /api/hydrate. Each track reloads its state and the
// routine tracks apply the day-advance rule.
func (h *HydrateHandler) Hydrate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	ctx := r.Context()

	var resp HydrateResponse
	var err error
	if resp.NumbersAdvanced, err = h.numbers.Hydrate(ctx); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if resp.EquationsAdvanced, err = h.equations.Hydrate(ctx); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.norep.Hydrate(ctx); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.books.Hydrate(ctx); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("tracks hydrated",
		slog.Bool("numbers_advanced", resp.NumbersAdvanced),
		slog.Bool("equations_advanced", resp.EquationsAdvanced))
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
