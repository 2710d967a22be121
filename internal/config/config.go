// Package config resolves service configuration from the environment once at
// startup. Values never change after Load returns.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config carries every tunable the service reads. Defaults mirror local
// development.
type Config struct {
	Host string `env:"HOST,default=0.0.0.0"`
	Port int    `env:"PORT,default=3000"`

	// Empty DatabaseURL selects the in-memory store.
	DatabaseURL string `env:"DATABASE_URL"`

	IdentityDomain       string `env:"AUTH0_DOMAIN,default=chefos-dev.us.auth0.com"`
	IdentityClientID     string `env:"AUTH0_CLIENT_ID"`
	IdentityClientSecret string `env:"AUTH0_CLIENT_SECRET"`
	IdentityAudience     string `env:"AUTH0_AUDIENCE,default=http://localhost:3000"`

	Env      string `env:"APP_ENV,default=development"`
	LogLevel string `env:"LOG_LEVEL,default=debug"`
	Timezone string `env:"TZ,default=UTC"`

	DisableRequestLogging bool `env:"DISABLE_REQUEST_LOGGING,default=false"`

	SessionSecret string `env:"SESSION_SECRET"`
	// SessionMaxAge is in seconds, matching the cookie Max-Age attribute.
	SessionMaxAge int `env:"SESSION_MAX_AGE,default=86400"`

	RateLimitPerSecond int `env:"RATE_LIMIT_RPS,default=50"`
	RateLimitBurst     int `env:"RATE_LIMIT_BURST,default=100"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`

	// BackendURL is where the frontend reaches the API service.
	BackendURL string `env:"PLATFORM_BACKEND_URL,default=http://localhost:3000"`
}

// Load reads .env when present, then decodes the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	return cfg, nil
}

// Addr is the host:port the HTTP server binds.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionTTL is the session lifetime as a duration.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionMaxAge) * time.Second
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowedOrigins splits the CORS allowlist, empty when unset.
func (c Config) AllowedOrigins() []string {
	if strings.TrimSpace(c.CORSAllowedOrigins) == "" {
		return nil
	}
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
