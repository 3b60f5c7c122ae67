package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/config"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/bolt"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/memory"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/mirror"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/postgres"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/sqlite"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/redact"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/task"
)

// Local backend names accepted by StorageConfig.Backend.
const (
	backendMemory = "memory"
	backendBolt   = "bolt"
	backendSQLite = "sqlite"
)

// newLocalStore creates the configured local backend and its close function.
func newLocalStore(cfg config.StorageConfig, logger *slog.Logger) (store.KeyValueStore, func() error, error) {
	switch cfg.Backend {
	case backendMemory:
		return memory.New(), func() error { return nil }, nil
	case backendBolt:
		s := bolt.New(cfg.Path, logger)
		return s, s.Close, nil
	case backendSQLite:
		s := sqlite.New(cfg.Path, logger)
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// openStorage initializes the local store and, when enabled, wraps it in
// a mirror that replicates writes to PostgreSQL.
func (app *application) openStorage(ctx context.Context) error {
	local, closeLocal, err := newLocalStore(app.config.Storage, app.logger)
	if err != nil {
		return err
	}
	app.closers = append(app.closers, closeLocal)
	app.store = local

	remoteCfg := app.config.Remote
	if remoteCfg.Enabled {
		db, err := postgres.OpenDB(ctx, remoteCfg.DatabaseURL, postgres.PoolOptions{
			MaxOpenConns:    remoteCfg.MaxOpenConns,
			ConnMaxLifetime: remoteCfg.ConnMaxLifetime,
		})
		if err != nil {
			app.logger.Warn("remote mirror unavailable, continuing with local storage only",
				"error", redact.Error(err))
		} else {
			app.closers = append(app.closers, db.Close)
			remote := postgres.NewPostgresKVStore(db, remoteCfg.Namespace, app.logger)

			app.queue = task.NewTaskQueue(remoteCfg.QueueSize, app.logger)
			poolCfg := task.DefaultWorkerPoolConfig()
			poolCfg.WorkerCount = remoteCfg.Workers
			app.pool = task.NewWorkerPool(app.queue, poolCfg, app.logger)
			app.pool.Start()

			app.store = mirror.New(local, remote, app.queue, mirrorOptions(remoteCfg), app.logger)
			app.logger.Info("remote mirror enabled",
				"namespace", remoteCfg.Namespace,
				"use_remote", remoteCfg.UseRemote)
		}
	}

	if err := app.store.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", app.config.Storage.Backend, err)
	}
	return nil
}

func mirrorOptions(cfg config.RemoteConfig) mirror.Options {
	return mirror.Options{UseRemote: cfg.UseRemote}
}
