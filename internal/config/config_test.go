package config

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STORE_BACKEND", "CACHE_BACKEND", "LOCAL_OWNER_ID", "REMINDER_OWNERS", "NOTIFY_TIMEOUT_MS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.UsePostgres() || cfg.UseRedis() {
		t.Fatalf("expected memory backends, got store=%s cache=%s", cfg.StoreBackend, cfg.CacheBackend)
	}
	if cfg.LocalOwnerID != "local-user" {
		t.Errorf("LocalOwnerID = %q", cfg.LocalOwnerID)
	}
	if len(cfg.ReminderOwners) != 1 || cfg.ReminderOwners[0] != "local-user" {
		t.Errorf("ReminderOwners = %v", cfg.ReminderOwners)
	}
	if cfg.NotifyTimeout != 5*time.Second {
		t.Errorf("NotifyTimeout = %v", cfg.NotifyTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REMINDER_OWNERS", " alice, ,bob ")
	t.Setenv("REMINDER_INTERVAL_MINUTES", "15")
	t.Setenv("JWT_EXPIRATION_HOURS", "not-a-number")

	cfg := Load()
	if !cfg.UsePostgres() || !cfg.UseRedis() {
		t.Fatalf("expected postgres+redis, got store=%s cache=%s", cfg.StoreBackend, cfg.CacheBackend)
	}
	if got := cfg.ReminderOwners; len(got) != 2 || got[0] != "alice" || got[1] != "bob" {
		t.Errorf("ReminderOwners = %v", got)
	}
	if cfg.ReminderInterval != 15*time.Minute {
		t.Errorf("ReminderInterval = %v", cfg.ReminderInterval)
	}
	if cfg.JWTExpiration != 24*time.Hour {
		t.Errorf("JWTExpiration = %v, want fallback", cfg.JWTExpiration)
	}
}

func TestValidateResetsUnknownValues(t *testing.T) {
	cfg := &Config{StoreBackend: "mongo", CacheBackend: "memcached", DefaultTimezone: "Nowhere/City"}
	cfg.Validate(zap.NewNop())

	if cfg.StoreBackend != BackendMemory || cfg.CacheBackend != BackendMemory {
		t.Errorf("backends not reset: %s/%s", cfg.StoreBackend, cfg.CacheBackend)
	}
	if cfg.DefaultTimezone != "UTC" {
		t.Errorf("DefaultTimezone = %q", cfg.DefaultTimezone)
	}
}
