package events

import (
	"context"
	"log/slog"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
)

// LoggingHandler writes every event to a structured log at info level.
type LoggingHandler struct {
	logger *slog.Logger
}

var _ EventHandler = (*LoggingHandler)(nil)

// NewLoggingHandler creates a LoggingHandler.
func NewLoggingHandler(log *slog.Logger) *LoggingHandler {
	if log == nil {
		log = slog.Default()
	}
	return &LoggingHandler{logger: log.With(slog.String("component", "progress_events"))}
}

// HandleEvent implements EventHandler.
func (h *LoggingHandler) HandleEvent(ctx context.Context, event *ProgressEvent) error {
	logger.FromContextOrDefault(ctx, h.logger).Info("progress event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("track", string(event.Track)),
		slog.String("payload", string(event.Payload)),
		slog.Time("created_at", event.CreatedAt))
	return nil
}
