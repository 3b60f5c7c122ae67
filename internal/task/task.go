package task

import (
	"context"

	"github.com/google/uuid"
)

// TaskTypeMirrorWrite copies one local write to the remote store.
const TaskTypeMirrorWrite = "mirror_write"

// Task is one unit of background work.
type Task interface {
	ID() uuid.UUID
	Type() string
	Execute(ctx context.Context) error
}

// TaskQueueReader is the consumer side of a queue.
type TaskQueueReader interface {
	// GetChannel yields queued tasks until the queue is closed and drained.
	GetChannel() <-chan Task
}

// TaskQueueWriter is the producer side of a queue.
type TaskQueueWriter interface {
	// Enqueue never blocks; it fails with ErrQueueFull or ErrQueueClosed.
	Enqueue(task Task) error
	Close()
}
