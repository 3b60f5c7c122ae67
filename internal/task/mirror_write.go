package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

// MirrorWriteTask replays one write against a secondary store.
type MirrorWriteTask struct {
	id    uuid.UUID
	key   string
	value []byte
	dst   store.KeyValueStore
}

var _ Task = (*MirrorWriteTask)(nil)

// NewMirrorWriteTask creates a task that writes value under key to dst.
// value is copied so the caller may reuse its buffer.
func NewMirrorWriteTask(dst store.KeyValueStore, key string, value []byte) *MirrorWriteTask {
	if dst == nil {
		panic("dst cannot be nil") // ALLOW-PANIC
	}
	return &MirrorWriteTask{
		id:    uuid.New(),
		key:   key,
		value: append([]byte(nil), value...),
		dst:   dst,
	}
}

// ID returns the task's unique identifier
func (t *MirrorWriteTask) ID() uuid.UUID { return t.id }

// Type returns TaskTypeMirrorWrite.
func (t *MirrorWriteTask) Type() string { return TaskTypeMirrorWrite }

// Key returns the key being mirrored.
func (t *MirrorWriteTask) Key() string { return t.key }

// Execute performs the write.
func (t *MirrorWriteTask) Execute(ctx context.Context) error {
	if err := t.dst.Write(ctx, t.key, t.value); err != nil {
		return fmt.Errorf("mirror write %q: %w", t.key, err)
	}
	return nil
}
