package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
log:
  level: warn
voting:
  daily_capacity: 5
  timezone: Africa/Johannesburg
  ranking_cache_ttl: 45s
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Fatalf("unexpected log level: %s", cfg.Log.Level)
	}
	if cfg.Voting.DailyCapacity != 5 {
		t.Fatalf("unexpected daily capacity: %d", cfg.Voting.DailyCapacity)
	}
	if cfg.Voting.Timezone != "Africa/Johannesburg" {
		t.Fatalf("unexpected voting timezone: %s", cfg.Voting.Timezone)
	}
	if cfg.Voting.RankingCacheTTL != 45*time.Second {
		t.Fatalf("unexpected ranking cache ttl: %s", cfg.Voting.RankingCacheTTL)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("http addr default should stay :8080, got %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.JWTAccessTTL != 15*time.Minute {
		t.Fatalf("jwt access ttl default should stay 15m, got %s", cfg.Auth.JWTAccessTTL)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("POSTGRES_DSN", "postgres://test:test@db:5432/votes")
	t.Setenv("VOTING_DAILY_CAPACITY", "3")
	t.Setenv("VOTING_TIMEZONE", "Europe/Berlin")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Postgres.DSN != "postgres://test:test@db:5432/votes" {
		t.Fatalf("unexpected dsn: %s", cfg.Postgres.DSN)
	}
	if cfg.Voting.DailyCapacity != 3 {
		t.Fatalf("unexpected capacity: %d", cfg.Voting.DailyCapacity)
	}
	if cfg.Voting.Timezone != "Europe/Berlin" {
		t.Fatalf("unexpected timezone: %s", cfg.Voting.Timezone)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Fatalf("unexpected jwt secret: %s", cfg.Auth.JWTSecret)
	}
}

func TestLoadRejectsMalformedEnvInt(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("VOTING_DAILY_CAPACITY", "lots")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for malformed VOTING_DAILY_CAPACITY")
	}
}

func TestLoadIgnoresMissingConfigFile(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load with absent file: %v", err)
	}
	if cfg.Voting.DailyCapacity != Default().Voting.DailyCapacity {
		t.Fatalf("expected defaults with absent file")
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "HTTP_ADDR", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT", "LOG_LEVEL", "POSTGRES_DSN", "REDIS_ADDR",
		"REDIS_PASSWORD", "REDIS_DB", "JWT_SECRET", "JWT_ACCESS_TTL",
		"VOTING_DAILY_CAPACITY", "VOTING_TIMEZONE", "VOTING_RANKING_CACHE_TTL",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}
