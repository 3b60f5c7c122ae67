// Package sqlite provides a SQLite-backed KeyValueStore using the pure-Go
// modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/migrate"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

const upsertQuery = `
INSERT INTO kv_records (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

// Store keeps records in the kv_records table.
type Store struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
	db *sql.DB
}

var (
	_ store.KeyValueStore = (*Store)(nil)
	_ store.BatchWriter   = (*Store)(nil)
)

// New creates a store for the database file at path. The file is opened and
// migrated by Init.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", "sqlite_store")),
	}
}

// Init opens the database and applies migrations.
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
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate.Up(ctx, db, migrate.DialectSQLite, s.logger); err != nil {
		_ = db.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	s.db = db
	s.logger.Debug("sqlite store opened", slog.String("path", cleanPath))
	return nil
}

// Close releases the SQLite connection.
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

func (s *Store) handle() (*sql.DB, error) {
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

	var value string
	err = db.QueryRowContext(ctx, `SELECT value FROM kv_records WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to read record",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError(key, "read", "query failed", err)
	}
	return []byte(value), nil
}

// Write implements store.KeyValueStore.
func (s *Store) Write(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, upsertQuery, key, string(value), time.Now().UTC().UnixMilli()); err != nil {
		return store.NewStoreError(key, "write", "upsert failed", err)
	}
	return nil
}

// WriteBatch implements store.BatchWriter inside one transaction.
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

	ctx = logger.WithLogger(ctx, s.logger)
	now := time.Now().UTC().UnixMilli()
	err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx, upsertQuery, e.Key, string(e.Value), now); err != nil {
				return store.NewStoreError(e.Key, "write", "upsert failed", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrTransactionFailed, err)
	}
	return nil
}
