package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/askarbek/moviehub/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/moviehub")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "local" {
		t.Errorf("Env = %q, want local", cfg.Env)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
	if cfg.PasswordMinLen != 8 || cfg.UsernameMinLen != 3 {
		t.Errorf("credential policy defaults wrong: %+v", cfg)
	}
	if cfg.JWTSecret == "" {
		t.Error("expected dev JWT secret fallback in local env")
	}
}

func TestLoad_MissingDatabaseURLFails(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoad_TokenTTLOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_TTL", "168h")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Errorf("TokenTTL = %v, want 168h", cfg.TokenTTL)
	}
}

func TestLoad_RejectsDevSecretOutsideLocal(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "production")
	t.Setenv("RESEND_API_KEY", "re_123")
	t.Setenv("RESEND_FROM", "noreply@example.com")

	_, err := config.Load()
	if err == nil {
		t.Fatal("expected error for missing JWT_SECRET in production")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("error %q does not mention JWT_SECRET", err)
	}
}

func TestLoad_ShortSecretFails(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "too-short")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for short JWT_SECRET")
	}
}
