package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT"      envDefault:"8080"  validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"   validate:"required,oneof=postgres sqlite"`
	DatabaseURL string `env:"DATABASE_URL"                          validate:"required_if=StoreDriver postgres"`
	SQLitePath  string `env:"SQLITE_PATH"  envDefault:"tracker.db" validate:"required_if=StoreDriver sqlite"`

	MetricsPort   string `env:"METRICS_PORT"   envDefault:"9090"`
	StatsSchedule string `env:"STATS_SCHEDULE" envDefault:"@every 1m" validate:"required"`

	JWTSecret         string        `env:"JWT_SECRET,required"  validate:"required,min=32"`
	SessionTTL        time.Duration `env:"SESSION_TTL"          envDefault:"24h" validate:"min=1m"`
	VerifySessionUser bool          `env:"VERIFY_SESSION_USER"  envDefault:"false"`
	BcryptCost        int           `env:"BCRYPT_COST"          envDefault:"10"  validate:"min=4,max=14"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	EmailFrom    string `env:"EMAIL_FROM"     validate:"required_if=Env production,required_if=Env staging"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if _, err := cron.ParseStandard(cfg.StatsSchedule); err != nil {
		return nil, fmt.Errorf("invalid config: STATS_SCHEDULE: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto slog. Validation guarantees one of the known names.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SecureCookies reports whether the session cookie must carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return c.Env != "local"
}
