package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/config"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/auth"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	path := writeConfig(t, `
server:
  log_level: error
storage:
  backend: memory
auth:
  jwt_secret: "`+testSecret+`"
  token_lifetime: 1h
`)
	device := uuid.New()

	out, err := runCLI(t, "--config", path, "token", "--device", device.String())
	require.NoError(t, err)
	assert.Contains(t, out, device.String())

	var token string
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "token:"); ok {
			token = strings.TrimSpace(rest)
		}
	}
	require.NotEmpty(t, token)

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	svc, err := auth.NewJWTService(cfg.Auth)
	require.NoError(t, err)
	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, device, claims.DeviceID)
}

func TestTokenCommandErrors(t *testing.T) {
	disabled := writeConfig(t, "storage:\n  backend: memory\n")
	_, err := runCLI(t, "--config", disabled, "token")
	assert.ErrorContains(t, err, "authentication is disabled")

	enabled := writeConfig(t, "storage:\n  backend: memory\nauth:\n  jwt_secret: \""+testSecret+"\"\n")
	_, err = runCLI(t, "--config", enabled, "token", "--device", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid device id")
}

func TestMigrateCommand(t *testing.T) {
	sqlitePath := filepath.Join(t.TempDir(), "liluka.sqlite")
	path := writeConfig(t, "server:\n  log_level: error\nstorage:\n  backend: sqlite\n  path: "+sqlitePath+"\n")

	out, err := runCLI(t, "--config", path, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "local schema at version")
	assert.NotContains(t, out, "version 0")

	_, err = runCLI(t, "--config", path, "migrate", "sideways")
	assert.Error(t, err)

	_, err = runCLI(t, "--config", path, "migrate", "up", "--target", "remote")
	assert.ErrorContains(t, err, "remote mirror is not enabled")
}

func TestMigrateCommandRejectsMemoryBackend(t *testing.T) {
	path := writeConfig(t, "server:\n  log_level: error\nstorage:\n  backend: memory\n")
	_, err := runCLI(t, "--config", path, "migrate", "status")
	assert.ErrorContains(t, err, "has no SQL schema")
}

func TestTodayCommand(t *testing.T) {
	path := writeConfig(t, "server:\n  log_level: error\nstorage:\n  backend: memory\n")
	out, err := runCLI(t, "--config", path, "today")
	require.NoError(t, err)
	assert.Contains(t, out, "Numbers, day 1")
	assert.Contains(t, out, "Books: Kot i pies")
}
