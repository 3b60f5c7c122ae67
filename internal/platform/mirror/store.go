// Package mirror provides a KeyValueStore that keeps a local primary copy
// of every value and replicates writes to a remote backend in the
// background.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/task"
)

// Store writes to the local backend synchronously and enqueues a mirror
// write for the remote one. When UseRemote is set, reads are served from
// the remote and fall back to local on any failure, including ErrNotFound.
type Store struct {
	local     store.KeyValueStore
	remote    store.KeyValueStore
	queue     task.TaskQueueWriter
	useRemote bool
	logger    *slog.Logger
}

var (
	_ store.KeyValueStore = (*Store)(nil)
	_ store.BatchWriter   = (*Store)(nil)
)

// Options configures a Store.
type Options struct {
	// UseRemote serves reads from the remote backend.
	UseRemote bool
}

// New creates a mirrored store. local, remote and queue are required.
func New(
	local store.KeyValueStore,
	remote store.KeyValueStore,
	queue task.TaskQueueWriter,
	opts Options,
	log *slog.Logger,
) *Store {
	if local == nil {
		panic("local cannot be nil") // ALLOW-PANIC
	}
	if remote == nil {
		panic("remote cannot be nil") // ALLOW-PANIC
	}
	if queue == nil {
		panic("queue cannot be nil") // ALLOW-PANIC
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		local:     local,
		remote:    remote,
		queue:     queue,
		useRemote: opts.UseRemote,
		logger:    log.With(slog.String("component", "mirror_store")),
	}
}

// Init initializes the local backend, then the remote one. A remote
// failure is logged and does not fail Init; the store keeps working from
// local data.
func (s *Store) Init(ctx context.Context) error {
	if err := s.local.Init(ctx); err != nil {
		return fmt.Errorf("init local store: %w", err)
	}
	if err := s.remote.Init(ctx); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("remote store unavailable, continuing with local only",
			slog.String("error", err.Error()))
	}
	return nil
}

// Read implements store.KeyValueStore.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	if !s.useRemote {
		return s.local.Read(ctx, key)
	}

	data, err := s.remote.Read(ctx, key)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		logger.FromContextOrDefault(ctx, s.logger).Warn("remote read failed, falling back to local",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	return s.local.Read(ctx, key)
}

// Write implements store.KeyValueStore.
func (s *Store) Write(ctx context.Context, key string, value []byte) error {
	if err := s.local.Write(ctx, key, value); err != nil {
		return err
	}
	s.mirror(ctx, key, value)
	return nil
}

// WriteBatch writes entries to the local backend atomically when it
// supports batches, then mirrors each entry.
func (s *Store) WriteBatch(ctx context.Context, entries []store.Entry) error {
	if err := store.WriteBatch(ctx, s.local, entries); err != nil {
		return err
	}
	for _, e := range entries {
		s.mirror(ctx, e.Key, e.Value)
	}
	return nil
}

func (s *Store) mirror(ctx context.Context, key string, value []byte) {
	err := s.queue.Enqueue(task.NewMirrorWriteTask(s.remote, key, value))
	if err == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)
	switch {
	case errors.Is(err, task.ErrQueueFull):
		log.Warn("mirror queue full, dropping remote write", slog.String("key", key))
	case errors.Is(err, task.ErrQueueClosed):
		log.Debug("mirror queue closed, skipping remote write", slog.String("key", key))
	default:
		log.Error("failed to enqueue mirror write",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}
