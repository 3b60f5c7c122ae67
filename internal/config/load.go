package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LILUKA"

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from config files. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	return LoadFromFile("")
}

// LoadFromFile is Load with an explicit config file. An empty path searches
// the working directory for config.yaml and tolerates its absence.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Configure environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind critical environment variables
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"remote.database_url", "LILUKA_REMOTE_DATABASE_URL"},
		{"auth.jwt_secret", "LILUKA_AUTH_JWT_SECRET"},
		{"server.port", "LILUKA_SERVER_PORT"},
		{"server.log_level", "LILUKA_SERVER_LOG_LEVEL"},
		{"storage.backend", "LILUKA_STORAGE_BACKEND"},
		{"storage.path", "LILUKA_STORAGE_PATH"},
		{"content.path", "LILUKA_CONTENT_PATH"},
	}

	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate runs struct validation on cfg.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("storage.backend", "bolt")
	v.SetDefault("storage.path", "liluka.db")

	v.SetDefault("remote.enabled", false)
	v.SetDefault("remote.use_remote", false)
	v.SetDefault("remote.database_url", "")
	v.SetDefault("remote.namespace", "default")
	v.SetDefault("remote.max_open_conns", 5)
	v.SetDefault("remote.conn_max_lifetime", "5m")
	v.SetDefault("remote.queue_size", 64)
	v.SetDefault("remote.workers", 1)

	v.SetDefault("curriculum.max_number", 300)
	v.SetDefault("curriculum.sessions_per_day", 3)
	v.SetDefault("curriculum.equations_per_session", 10)
	v.SetDefault("curriculum.words_per_draw", 5)
	v.SetDefault("curriculum.sentences_per_draw", 3)
	v.SetDefault("curriculum.seed", 0)

	v.SetDefault("content.path", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime", "720h")

	v.SetDefault("clock.timezone", "")
}
