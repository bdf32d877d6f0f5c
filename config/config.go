package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// devJWTSecret keeps local development friction-free. Load rejects it for
// any environment other than local.
const devJWTSecret = "insecure-local-dev-secret-do-not-ship!!!"

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret string        `env:"JWT_SECRET" validate:"omitempty,min=32"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	// Credential validation policy.
	UsernameMinLen  int  `env:"USERNAME_MIN_LEN" envDefault:"3" validate:"min=1,max=64"`
	PasswordMinLen  int  `env:"PASSWORD_MIN_LEN" envDefault:"8" validate:"min=1,max=128"`
	PasswordComplex bool `env:"PASSWORD_COMPLEX" envDefault:"true"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.Env != "local" && cfg.JWTSecret == devJWTSecret {
		return nil, errors.New("JWT_SECRET must be set outside local")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

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
