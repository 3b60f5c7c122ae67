package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/config"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			LogLevel:        "error",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		Storage: config.StorageConfig{Backend: backendMemory},
		Remote:  config.RemoteConfig{Namespace: "default", MaxOpenConns: 1, QueueSize: 4, Workers: 1},
		Curriculum: config.CurriculumConfig{
			MaxNumber:           300,
			SessionsPerDay:      3,
			EquationsPerSession: 10,
			WordsPerDraw:        5,
			SentencesPerDraw:    3,
		},
		Auth:  config.AuthConfig{TokenLifetime: time.Hour},
		Clock: config.ClockConfig{Timezone: "UTC"},
	}
}

func newTestApplication(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	app, err := newApplication(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	require.NoError(t, app.hydrate(context.Background()))
	return app
}

func TestNewApplication(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t, testConfig())

	assert.NotNil(t, app.numbers)
	assert.NotNil(t, app.equations)
	assert.NotNil(t, app.norep)
	assert.NotNil(t, app.books)
	assert.Nil(t, app.jwtService, "auth is disabled without a secret")
	assert.Nil(t, app.pool, "no mirror workers without a remote")
	assert.NotEmpty(t, app.library.Words)
}

func TestNewApplicationWithAuth(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Auth.JWTSecret = testSecret
	app := newTestApplication(t, cfg)

	assert.NotNil(t, app.jwtService)
}

func TestNewApplicationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{name: "unknown backend", mutate: func(cfg *config.Config) { cfg.Storage.Backend = "redis" }},
		{name: "bad timezone", mutate: func(cfg *config.Config) { cfg.Clock.Timezone = "Mars/Olympus" }},
		{name: "missing content", mutate: func(cfg *config.Config) {
			cfg.Content.Path = filepath.Join(t.TempDir(), "missing.yaml")
		}},
		{name: "weak secret", mutate: func(cfg *config.Config) { cfg.Auth.JWTSecret = "short" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig()
			tt.mutate(cfg)
			_, err := newApplication(context.Background(), cfg, discardLogger())
			assert.Error(t, err)
		})
	}
}

func TestCurriculumParams(t *testing.T) {
	t.Parallel()

	cur := testConfig().Curriculum
	cur.MaxNumber = 120
	cur.EquationsPerSession = 7
	cur.CategoryDurations = map[string]int{"fraction": 5}

	assert.Equal(t, 120, numbersParams(cur).MaxNumber)

	eq := equationsParams(cur)
	assert.Equal(t, 7, eq.EquationsPerSession)
	assert.Equal(t, 3, eq.SessionsPerDay)
	assert.Equal(t, 5, eq.CategoryDurations[domain.CategoryFraction])
	assert.Equal(t, eq.Duration(domain.CategoryInteger), eq.Duration(domain.CategoryNegative))
}

// TestBoltProgressSurvivesRestart reopens the same database file and checks
// that items drawn before the restart stay consumed.
func TestMirrorOptions(t *testing.T) {
	cfg := testConfig()
	assert.False(t, mirrorOptions(cfg.Remote).UseRemote)

	cfg.Remote.UseRemote = true
	assert.True(t, mirrorOptions(cfg.Remote).UseRemote)
}

func TestBoltProgressSurvivesRestart(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Storage = config.StorageConfig{Backend: backendBolt, Path: filepath.Join(t.TempDir(), "liluka.db")}

	first, err := newApplication(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	require.NoError(t, first.hydrate(context.Background()))
	drawn, err := first.norep.ChooseAndMark(context.Background(), domain.CorpusWords)
	require.NoError(t, err)
	require.Len(t, drawn, 5)
	first.cleanup()

	second := newTestApplication(t, cfg)
	status := second.norep.Status(context.Background())
	require.Len(t, status.Stats, 2)
	assert.Equal(t, domain.CorpusWords, status.Stats[0].Corpus)
	assert.Equal(t, 5, status.Stats[0].Displayed)
	assert.True(t, status.WordsCompletedToday)
}

func TestRenderToday(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t, testConfig())
	summary, err := app.today(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	renderToday(&buf, summary)
	out := buf.String()

	assert.Contains(t, out, "Numbers, day 1")
	assert.Contains(t, out, "Equations, day 1")
	assert.Contains(t, out, "integer")
	assert.Contains(t, out, "Reading")
	assert.Contains(t, out, "Books: Kot i pies")
	assert.Contains(t, out, "pending")
}
