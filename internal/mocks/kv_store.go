package mocks

import (
	"context"
	"sync"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/memory"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

// MockKeyValueStore implements store.KeyValueStore for testing.
// Methods without a function override delegate to an in-memory store, so
// a zero MockKeyValueStore behaves like a working backend.
type MockKeyValueStore struct {
	// InitFn allows test cases to mock the Init behavior
	InitFn func(ctx context.Context) error

	// ReadFn allows test cases to mock the Read behavior
	ReadFn func(ctx context.Context, key string) ([]byte, error)

	// WriteFn allows test cases to mock the Write behavior
	WriteFn func(ctx context.Context, key string, value []byte) error

	once    sync.Once
	backing *memory.Store

	mu     sync.Mutex
	writes []string
	reads  []string
}

var _ store.KeyValueStore = (*MockKeyValueStore)(nil)

func (m *MockKeyValueStore) mem() *memory.Store {
	m.once.Do(func() { m.backing = memory.New() })
	return m.backing
}

// Backing returns the in-memory store that un-overridden calls reach, so an
// override can fail selectively and fall through otherwise.
func (m *MockKeyValueStore) Backing() *memory.Store {
	return m.mem()
}

// Init implements the store.KeyValueStore interface
func (m *MockKeyValueStore) Init(ctx context.Context) error {
	if m.InitFn != nil {
		return m.InitFn(ctx)
	}
	return m.mem().Init(ctx)
}

// Read implements the store.KeyValueStore interface
func (m *MockKeyValueStore) Read(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	m.reads = append(m.reads, key)
	m.mu.Unlock()

	if m.ReadFn != nil {
		return m.ReadFn(ctx, key)
	}
	return m.mem().Read(ctx, key)
}

// Write implements the store.KeyValueStore interface
func (m *MockKeyValueStore) Write(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.writes = append(m.writes, key)
	m.mu.Unlock()

	if m.WriteFn != nil {
		return m.WriteFn(ctx, key, value)
	}
	return m.mem().Write(ctx, key, value)
}

// Writes returns the keys passed to Write, in call order.
func (m *MockKeyValueStore) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}

// Reads returns the keys passed to Read, in call order.
func (m *MockKeyValueStore) Reads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.reads...)
}

// FailingStore is a store.KeyValueStore whose every call returns Err.
type FailingStore struct {
	Err error
}

var _ store.KeyValueStore = (*FailingStore)(nil)

// Init returns Err.
func (f *FailingStore) Init(context.Context) error { return f.Err }

// Read returns Err.
func (f *FailingStore) Read(context.Context, string) ([]byte, error) { return nil, f.Err }

// Write returns Err.
func (f *FailingStore) Write(context.Context, string, []byte) error { return f.Err }
