package config

import (
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Storage    StorageConfig    `mapstructure:"storage" validate:"required"`
	Remote     RemoteConfig     `mapstructure:"remote"`
	Curriculum CurriculumConfig `mapstructure:"curriculum" validate:"required"`
	Content    ContentConfig    `mapstructure:"content"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Clock      ClockConfig      `mapstructure:"clock"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// StorageConfig selects the local persistence backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory bolt sqlite"`
	Path    string `mapstructure:"path" validate:"required_unless=Backend memory"`
}

// RemoteConfig configures the optional remote mirror.
type RemoteConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	UseRemote       bool          `mapstructure:"use_remote"` // serve reads from the remote backend
	DatabaseURL     string        `mapstructure:"database_url" validate:"required_if=Enabled true,omitempty,url"`
	Namespace       string        `mapstructure:"namespace" validate:"required,max=64"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gt=0"`
	QueueSize       int           `mapstructure:"queue_size" validate:"gte=1"`
	Workers         int           `mapstructure:"workers" validate:"gte=1"`
}

// CurriculumConfig holds the tunable curriculum parameters.
type CurriculumConfig struct {
	MaxNumber           int            `mapstructure:"max_number" validate:"gte=10"`
	SessionsPerDay      int            `mapstructure:"sessions_per_day" validate:"gte=1,lte=10"`
	EquationsPerSession int            `mapstructure:"equations_per_session" validate:"gte=1,lte=50"`
	CategoryDurations   map[string]int `mapstructure:"category_durations" validate:"dive,keys,oneof=integer fraction negative percentage,endkeys,gte=1"`
	WordsPerDraw        int            `mapstructure:"words_per_draw" validate:"gte=1"`
	SentencesPerDraw    int            `mapstructure:"sentences_per_draw" validate:"gte=1"`
	// Seed salts the per-day content generator.
	Seed int64 `mapstructure:"seed"`
}

// ContentConfig locates the static word, sentence and book datasets.
// An empty Path selects the embedded sample content.
type ContentConfig struct {
	Path string `mapstructure:"path" validate:"omitempty,file"`
}

// AuthConfig contains authentication settings. Leaving JWTSecret empty
// disables API authentication.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	TokenLifetime time.Duration `mapstructure:"token_lifetime" validate:"gt=0"`
}

// ClockConfig sets the zone whose calendar days bound the daily ledgers.
type ClockConfig struct {
	Timezone string `mapstructure:"timezone" validate:"omitempty,timezone"`
}

// Location resolves Timezone, defaulting to time.Local.
func (c ClockConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// AuthEnabled reports whether the API requires bearer tokens.
func (c *Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}
