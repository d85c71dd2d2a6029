package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	apperrors "task-manager.com/task-manager/internal/errors"
)

type Backend string

const (
	BackendMySQL    Backend = "mysql"
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
	BackendHTTP     Backend = "http"
	BackendRedis    Backend = "redis"
)

// IsSQL reports whether the backend is served through gorm.
func (b Backend) IsSQL() bool {
	return b == BackendMySQL || b == BackendPostgres || b == BackendSQLite
}

const (
	UnrecognizedNotify = "notify"
	UnrecognizedSilent = "silent"
)

type Config struct {
	Backend          Backend
	DatabaseHost     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string

	UnrecognizedInput string
	PauseAfterAction  bool

	AppURL                 string
	RateLimit              int
	ShutdownTimeoutSeconds int
	HTTPTimeoutSeconds     int
}

// Load reads the configuration from the environment. Any .env file must
// already have been applied to the process environment.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("tasks_backend", string(BackendMySQL))
	v.SetDefault("unrecognized_input", UnrecognizedNotify)
	v.SetDefault("pause_after_action", true)
	v.SetDefault("app_host", "127.0.0.1")
	v.SetDefault("app_port", "8080")
	v.SetDefault("rate_limit_per_minute", 60)
	v.SetDefault("shutdown_timeout_seconds", 20)
	v.SetDefault("http_timeout_seconds", 10)

	cfg := Config{
		Backend:                Backend(strings.ToLower(strings.TrimSpace(v.GetString("tasks_backend")))),
		DatabaseHost:           strings.TrimSpace(v.GetString("database_host")),
		DatabaseUser:           v.GetString("db_user"),
		DatabasePassword:       v.GetString("db_password"),
		DatabaseName:           strings.TrimSpace(v.GetString("db_name")),
		UnrecognizedInput:      strings.ToLower(strings.TrimSpace(v.GetString("unrecognized_input"))),
		PauseAfterAction:       v.GetBool("pause_after_action"),
		AppURL:                 fmt.Sprintf("%s:%s", v.GetString("app_host"), v.GetString("app_port")),
		RateLimit:              v.GetInt("rate_limit_per_minute"),
		ShutdownTimeoutSeconds: v.GetInt("shutdown_timeout_seconds"),
		HTTPTimeoutSeconds:     v.GetInt("http_timeout_seconds"),
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Backend {
	case BackendMySQL, BackendPostgres, BackendSQLite, BackendHTTP, BackendRedis:
	default:
		return fmt.Errorf("%w: TASKS_BACKEND must be one of mysql, postgres, sqlite, http, redis (got %q)",
			apperrors.ErrConfiguration, cfg.Backend)
	}

	var missing []string
	if cfg.Backend != BackendSQLite {
		if cfg.DatabaseHost == "" {
			missing = append(missing, "DATABASE_HOST")
		}
		if cfg.DatabaseUser == "" {
			missing = append(missing, "DB_USER")
		}
		if cfg.DatabasePassword == "" {
			missing = append(missing, "DB_PASSWORD")
		}
	}
	if cfg.DatabaseName == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", apperrors.ErrConfiguration, strings.Join(missing, ", "))
	}

	if cfg.UnrecognizedInput != UnrecognizedNotify && cfg.UnrecognizedInput != UnrecognizedSilent {
		return fmt.Errorf("%w: UNRECOGNIZED_INPUT must be notify or silent (got %q)",
			apperrors.ErrConfiguration, cfg.UnrecognizedInput)
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("%w: RATE_LIMIT_PER_MINUTE must be greater than 0", apperrors.ErrConfiguration)
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: SHUTDOWN_TIMEOUT_SECONDS must be greater than 0", apperrors.ErrConfiguration)
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: HTTP_TIMEOUT_SECONDS must be greater than 0", apperrors.ErrConfiguration)
	}
	return nil
}
