package store

import (
	"context"
)

// KeyValueStore is the persistence contract of every track service.
// Values are opaque JSON documents.
type KeyValueStore interface {
	// Init prepares the backend (opening files, creating tables) and must be
	// called before Read or Write. Calling it twice is harmless.
	Init(ctx context.Context) error

	// Read returns the value stored under key.
	// Returns ErrNotFound if the key has never been written.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write stores value under key, replacing any previous value.
	Write(ctx context.Context, key string, value []byte) error
}

// BatchWriter is implemented by backends that can store several keys
// atomically.
type BatchWriter interface {
	WriteBatch(ctx context.Context, entries []Entry) error
}

// Entry is one key/value pair of a batch.
type Entry struct {
	Key   string
	Value []byte
}

// WriteBatch stores entries atomically when kv supports it and
// sequentially otherwise, stopping at the first failure.
func WriteBatch(ctx context.Context, kv KeyValueStore, entries []Entry) error {
	if bw, ok := kv.(BatchWriter); ok {
		return bw.WriteBatch(ctx, entries)
	}
	for _, e := range entries {
		if err := kv.Write(ctx, e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}
