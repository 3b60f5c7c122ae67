package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/migrate"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

const upsertQuery = `
	INSERT INTO kv_records (namespace, key, value, updated_at)
	VALUES ($1, $2, $3::jsonb, NOW())
	ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
`

// PostgresKVStore implements store.KeyValueStore over the kv_records table,
// scoping every key to a namespace.
type PostgresKVStore struct {
	db        *sql.DB
	namespace string
	logger    *slog.Logger
}

var (
	_ store.KeyValueStore = (*PostgresKVStore)(nil)
	_ store.BatchWriter   = (*PostgresKVStore)(nil)
)

// NewPostgresKVStore creates a store on db for namespace.
// If logger is nil, a default logger will be used.
func NewPostgresKVStore(db *sql.DB, namespace string, logger *slog.Logger) *PostgresKVStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresKVStore{
		db:        db,
		namespace: namespace,
		logger: logger.With(
			slog.String("component", "postgres_kv_store"),
			slog.String("namespace", namespace),
		),
	}
}

// Init applies pending migrations.
func (s *PostgresKVStore) Init(ctx context.Context) error {
	if err := migrate.Up(ctx, s.db, migrate.DialectPostgres, s.logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Read implements store.KeyValueStore.
func (s *PostgresKVStore) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_records WHERE namespace = $1 AND key = $2`,
		s.namespace, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Error("failed to read record",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError(key, "read", "query failed", MapError(err))
	}

	log.Debug("record read", slog.String("key", key), slog.Int("bytes", len(value)))
	return value, nil
}

// Write implements store.KeyValueStore.
func (s *PostgresKVStore) Write(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, upsertQuery, s.namespace, key, string(value)); err != nil {
		log.Error("failed to write record",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return store.NewStoreError(key, "write", "upsert failed", MapError(err))
	}

	log.Debug("record written", slog.String("key", key))
	return nil
}

// WriteBatch implements store.BatchWriter inside one transaction.
func (s *PostgresKVStore) WriteBatch(ctx context.Context, entries []store.Entry) error {
	for _, e := range entries {
		if err := store.ValidateKey(e.Key); err != nil {
			return err
		}
	}

	ctx = logger.WithLogger(ctx, s.logger)
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx, upsertQuery, s.namespace, e.Key, string(e.Value)); err != nil {
				return store.NewStoreError(e.Key, "write", "upsert failed", MapError(err))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrTransactionFailed, err)
	}
	return nil
}
