// Package bolt provides a BoltDB-backed KeyValueStore for single-device
// persistence.
package bolt

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

const recordsBucket = "records"

// Store keeps every record in one bucket keyed by record key.
type Store struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
	db *bbolt.DB
}

var (
	_ store.KeyValueStore = (*Store)(nil)
	_ store.BatchWriter   = (*Store)(nil)
)

// New creates a store for the database file at path. The file is opened by Init.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", "bolt_store")),
	}
}

// Init opens the database file and creates the records bucket.
func (s *Store) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(s.path) == "" {
		return fmt.Errorf("storage path is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return nil
	}

	cleanPath := filepath.Clean(s.path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("open storage db: %w", err)
	}
	if err := ensureBuckets(db); err != nil {
		_ = db.Close()
		return err
	}
	s.db = db
	s.logger.Debug("bolt store opened", slog.String("path", cleanPath))
	return nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) handle() (*bbolt.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, store.ErrNotInitialized
	}
	return s.db, nil
}

// Read implements store.KeyValueStore.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	var value []byte
	err = db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recordsBucket))
		if bucket == nil {
			return fmt.Errorf("records bucket is missing")
		}
		payload := bucket.Get([]byte(key))
		if payload == nil {
			return store.ErrNotFound
		}
		// Bolt memory is only valid inside the transaction.
		value = slices.Clone(payload)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Write implements store.KeyValueStore.
func (s *Store) Write(ctx context.Context, key string, value []byte) error {
	return s.WriteBatch(ctx, []store.Entry{{Key: key, Value: value}})
}

// WriteBatch implements store.BatchWriter in a single Bolt transaction.
func (s *Store) WriteBatch(ctx context.Context, entries []store.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, e := range entries {
		if err := store.ValidateKey(e.Key); err != nil {
			return err
		}
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recordsBucket))
		if bucket == nil {
			return fmt.Errorf("records bucket is missing")
		}
		for _, e := range entries {
			if err := bucket.Put([]byte(e.Key), e.Value); err != nil {
				return fmt.Errorf("put %s: %w", e.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}
	return nil
}

func ensureBuckets(db *bbolt.DB) error {
	return db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(recordsBucket))
		if err != nil {
			return fmt.Errorf("create records bucket: %w", err)
		}
		return nil
	})
}
