package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/auth"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var device string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.AuthEnabled() {
				return errors.New("authentication is disabled: set auth.jwt_secret first")
			}

			deviceID := uuid.New()
			if device != "" {
				if deviceID, err = uuid.Parse(device); err != nil {
					return fmt.Errorf("invalid device id: %w", err)
				}
			}

			svc, err := auth.NewJWTService(cfg.Auth)
			if err != nil {
				return fmt.Errorf("failed to initialize JWT service: %w", err)
			}
			token, err := svc.GenerateToken(cmd.Context(), deviceID)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "device:  %s\n", deviceID)
			fmt.Fprintf(out, "valid:   %s\n", cfg.Auth.TokenLifetime)
			fmt.Fprintf(out, "token:   %s\n", token)
			return nil
		},
	}
	cmd.Flags().StringVar(&device, "device", "", "device UUID (default: a new random one)")
	return cmd
}
