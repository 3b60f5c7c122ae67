package main

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/config"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/migrate"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/postgres"
)

// Migration targets.
const (
	targetLocal  = "local"
	targetRemote = "remote"
)

var migrateCommands = []string{
	migrate.CommandUp,
	migrate.CommandDown,
	migrate.CommandReset,
	migrate.CommandStatus,
	migrate.CommandVersion,
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:       "migrate [up|down|reset|status|version]",
		Short:     "Run schema migrations on the SQL backends",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrateCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := logger.Setup(cfg.Server)
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}

			db, dialect, err := openMigrationDB(cmd, cfg, target)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := migrate.Run(cmd.Context(), db, dialect, args[0], log); err != nil {
				return err
			}
			version, err := migrate.Version(cmd.Context(), db, dialect)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d\n", target, version)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", targetLocal, "database to migrate: local or remote")
	return cmd
}

func openMigrationDB(cmd *cobra.Command, cfg *config.Config, target string) (*sql.DB, migrate.Dialect, error) {
	switch target {
	case targetLocal:
		if cfg.Storage.Backend != backendSQLite {
			return nil, "", fmt.Errorf("local backend %q has no SQL schema", cfg.Storage.Backend)
		}
		db, err := sql.Open("sqlite", filepath.Clean(cfg.Storage.Path))
		if err != nil {
			return nil, "", fmt.Errorf("open sqlite db: %w", err)
		}
		return db, migrate.DialectSQLite, nil
	case targetRemote:
		if !cfg.Remote.Enabled {
			return nil, "", fmt.Errorf("remote mirror is not enabled")
		}
		db, err := postgres.OpenDB(cmd.Context(), cfg.Remote.DatabaseURL, postgres.PoolOptions{
			MaxOpenConns:    cfg.Remote.MaxOpenConns,
			ConnMaxLifetime: cfg.Remote.ConnMaxLifetime,
		})
		if err != nil {
			return nil, "", err
		}
		return db, migrate.DialectPostgres, nil
	default:
		return nil, "", fmt.Errorf("unknown migration target %q", target)
	}
}
