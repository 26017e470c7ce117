package config_test

import (
	"testing"
	"time"

	"github.com/craftlink/craftlink-backend/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	if cfg.DBHost != "localhost" {
		t.Errorf("expected default DB host localhost, got %q", cfg.DBHost)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.JWTAccessExpiry != 15*time.Minute {
		t.Errorf("expected default access expiry 15m, got %v", cfg.JWTAccessExpiry)
	}
	if cfg.ServicesConfigPath != "services.json" {
		t.Errorf("expected default catalog path services.json, got %q", cfg.ServicesConfigPath)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "craftlink_test")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("JWT_REFRESH_EXPIRY", "not-a-duration")

	cfg := config.Load()

	if cfg.DBHost != "db.internal" {
		t.Errorf("expected DB host db.internal, got %q", cfg.DBHost)
	}
	if cfg.JWTAccessExpiry != 30*time.Minute {
		t.Errorf("expected access expiry 30m, got %v", cfg.JWTAccessExpiry)
	}
	// Malformed durations fall back instead of failing startup.
	if cfg.JWTRefreshExpiry != 15*time.Minute {
		t.Errorf("expected fallback refresh expiry 15m, got %v", cfg.JWTRefreshExpiry)
	}

	if dsn := cfg.DSN(); dsn == "" || cfg.DBName != "craftlink_test" {
		t.Errorf("unexpected DSN %q for db %q", dsn, cfg.DBName)
	}
}
