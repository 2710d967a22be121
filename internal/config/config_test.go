package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HOST", "PORT", "APP_ENV", "SESSION_MAX_AGE", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:3000" {
		t.Fatalf("addr = %q", cfg.Addr())
	}
	if cfg.IsProduction() {
		t.Fatalf("default env must not be production")
	}
	if cfg.SessionMaxAge != 86400 {
		t.Fatalf("session max age = %d", cfg.SessionMaxAge)
	}
	if cfg.SessionTTL() != 86400*time.Second {
		t.Fatalf("session ttl = %v", cfg.SessionTTL())
	}
	if got := cfg.AllowedOrigins(); got != nil {
		t.Fatalf("expected empty allowlist, got %v", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("port = %d", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production mode")
	}
	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[1] != "https://admin.example.com" {
		t.Fatalf("unexpected allowlist: %v", origins)
	}
}
