package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
)

func TestNewProgressEvent(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	payload := DayAdvanced{FromDay: 5, ToDay: 1, Category: domain.CategoryFraction}

	event, err := NewProgressEvent(TypeDayAdvanced, domain.TrackEquations, payload, now)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeDayAdvanced, event.Type)
	assert.Equal(t, domain.TrackEquations, event.Track)
	assert.Equal(t, now, event.CreatedAt)
	assert.JSONEq(t, `{"fromDay":5,"toDay":1,"category":"fraction"}`, string(event.Payload))

	var decoded DayAdvanced
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewProgressEvent_BadPayload(t *testing.T) {
	_, err := NewProgressEvent(TypeBookCompleted, domain.TrackBooks, make(chan int), time.Now())
	assert.Error(t, err)
}

func TestHandlerFuncAndNopEmitter(t *testing.T) {
	var got *ProgressEvent
	h := HandlerFunc(func(_ context.Context, e *ProgressEvent) error {
		got = e
		return nil
	})
	event := &ProgressEvent{ID: uuid.New(), Type: TypeCorpusExhausted}
	require.NoError(t, h.HandleEvent(context.Background(), event))
	assert.Same(t, event, got)

	assert.NoError(t, NopEmitter{}.EmitEvent(context.Background(), event))
}
