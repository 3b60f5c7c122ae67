package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
)

// Event types
const (
	TypeDayAdvanced     = "day_advanced"
	TypeCategoryRotated = "category_rotated"
	TypeBookCompleted   = "book_completed"
	TypeCorpusExhausted = "corpus_exhausted"
)

// ProgressEvent describes one change to a learner's progress.
type ProgressEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Track is the learning track the event belongs to
	Track domain.Track `json:"track"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// DayAdvanced is the payload of TypeDayAdvanced.
type DayAdvanced struct {
	FromDay  int             `json:"fromDay"`
	ToDay    int             `json:"toDay"`
	Category domain.Category `json:"category,omitempty"`
}

// CategoryRotated is the payload of TypeCategoryRotated.
type CategoryRotated struct {
	From domain.Category `json:"from"`
	To   domain.Category `json:"to"`
}

// BookCompleted is the payload of TypeBookCompleted.
type BookCompleted struct {
	BookID int    `json:"bookId"`
	Title  string `json:"title"`
}

// CorpusExhausted is the payload of TypeCorpusExhausted.
type CorpusExhausted struct {
	Corpus domain.Corpus `json:"corpus"`
	Total  int           `json:"total"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *ProgressEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewProgressEvent creates an event of eventType for track at now.
func NewProgressEvent(eventType string, track domain.Track, payload any, now time.Time) (*ProgressEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &ProgressEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Track:     track,
		Payload:   payloadBytes,
		CreatedAt: now,
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *ProgressEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *ProgressEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *ProgressEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *ProgressEvent) error
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *ProgressEvent) error { return nil }
