package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/api/shared"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/redact"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/routine"
)

// RoutineHandler serves the numbers and equations tracks.
type RoutineHandler struct {
	numbers   NumbersTrack
	equations EquationsTrack
	logger    *slog.Logger
}

// NewRoutineHandler creates a RoutineHandler.
func NewRoutineHandler(numbers NumbersTrack, equations EquationsTrack, logger *slog.Logger) *RoutineHandler {
	if numbers == nil || equations == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("track services cannot be nil for RoutineHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for RoutineHandler")
	}
	return &RoutineHandler{
		numbers:   numbers,
		equations: equations,
		logger:    logger.With(slog.String("component", "routine_handler")),
	}
}

// NumbersToday handles GET /api/numbers/today.
func (h *RoutineHandler) NumbersToday(w http.ResponseWriter, r *http.Request) {
	data, status, err := h.numbers.Today(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load numbers")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NumbersTodayResponse{Data: data, Status: status})
}

// CompleteNumbersSession handles POST /api/numbers/sessions/{token}/complete.
func (h *RoutineHandler) CompleteNumbersSession(w http.ResponseWriter, r *http.Request) {
	h.completeSession(w, r, h.numbers)
}

// EquationsToday handles GET /api/equations/today.
func (h *RoutineHandler) EquationsToday(w http.ResponseWriter, r *http.Request) {
	data, status, err := h.equations.Today(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load equations")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, EquationsTodayResponse{
		Data:     data,
		Status:   status,
		Settings: h.equations.Settings(),
	})
}

// CompleteEquationsSession handles POST /api/equations/sessions/{token}/complete.
func (h *RoutineHandler) CompleteEquationsSession(w http.ResponseWriter, r *http.Request) {
	h.completeSession(w, r, h.equations)
}

// UpdateEquationsSettings handles PUT /api/equations/settings.
func (h *RoutineHandler) UpdateEquationsSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req EquationsSettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	settings, err := h.equations.SetEquationsPerSession(r.Context(), req.EquationsPerSession)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	log.Info("equations settings updated", slog.Int("equations_per_session", settings.EquationsPerSession))
	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// routineTrack is the part of a routine service that session completion needs.
type routineTrack interface {
	MarkSessionCompleted(ctx context.Context, token domain.Token) error
	Status(ctx context.Context) (routine.Status, error)
}

func (h *RoutineHandler) completeSession(w http.ResponseWriter, r *http.Request, track routineTrack) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	token, err := getPathToken(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := track.MarkSessionCompleted(r.Context(), token); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	status, err := track.Status(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("session token marked",
		slog.String("track", string(status.Track)),
		slog.String("token", string(token)),
		slog.Bool("day_completed", status.DayCompleted))
	shared.RespondWithJSON(w, r, http.StatusOK, SessionCompletedResponse{Token: token, Status: status})
}
