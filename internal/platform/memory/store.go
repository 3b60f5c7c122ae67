// Package memory provides a process-local KeyValueStore.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

// Store keeps values in a map guarded by a RWMutex. Values are copied on the
// way in and out so callers cannot alias stored bytes.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var (
	_ store.KeyValueStore = (*Store)(nil)
	_ store.BatchWriter   = (*Store)(nil)
)

// New creates an empty store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Init implements store.KeyValueStore.
func (s *Store) Init(ctx context.Context) error {
	return ctx.Err()
}

// Read implements store.KeyValueStore.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return slices.Clone(v), nil
}

// Write implements store.KeyValueStore.
func (s *Store) Write(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = slices.Clone(value)
	return nil
}

// WriteBatch implements store.BatchWriter.
func (s *Store) WriteBatch(ctx context.Context, entries []store.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, e := range entries {
		if err := store.ValidateKey(e.Key); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.data[e.Key] = slices.Clone(e.Value)
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
