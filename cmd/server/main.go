// Package main implements the liluka server: the HTTP API over the daily
// curriculum tracks, plus maintenance commands for migrations, device tokens
// and a terminal summary of today's schedule.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/config"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "liluka",
		Short:         "Daily curriculum scheduler for the Liluka learning app",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"path to a YAML config file (default: ./config.yaml if present)")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newTodayCmd(opts),
		newTokenCmd(opts),
	)
	return cmd
}

// loadConfig reads the configuration selected by the root flags.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromFile(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := logger.Setup(cfg.Server)
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}
			log.Info("Server configuration loaded",
				"port", cfg.Server.Port,
				"log_level", cfg.Server.LogLevel,
				"storage_backend", cfg.Storage.Backend,
				"remote_enabled", cfg.Remote.Enabled,
				"auth_enabled", cfg.AuthEnabled())

			app, err := newApplication(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			return app.startHTTPServer(cmd.Context(), app.setupRouter())
		},
	}
}
