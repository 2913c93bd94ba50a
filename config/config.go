// Package config loads the service configuration from environment variables
// (optionally seeded from a .env file).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Settings are the session-wide preferences handed to services at construction
type Settings struct {
	DefaultPlayersPerTeam int
	// Palette overrides the built-in squad colors when non-empty
	Palette []string
}

type Config struct {
	// Database
	DatabaseURL string

	// HTTP
	Port           int
	Environment    string // development, staging, production
	LogLevel       string
	AllowedOrigins []string
	ServiceToken   string // bearer token the gateway must present; empty disables the check

	Settings Settings

	// Player directory sync
	PlayerSyncURL      string
	PlayerSyncInterval time.Duration

	// Report archive (S3-compatible, e.g. Cloudflare R2)
	ReportSweepInterval time.Duration
	R2AccountID         string
	R2AccessKeyID       string
	R2AccessKeySecret   string
	R2Bucket            string
	CDNBaseURL          string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: envOr("DATABASE_URL", ""),

		Port:           envInt("PORT", 5200),
		Environment:    envOr("APP_ENV", "development"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		AllowedOrigins: envList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		ServiceToken:   envOr("SERVICE_TOKEN", ""),

		Settings: Settings{
			DefaultPlayersPerTeam: envInt("DEFAULT_PLAYERS_PER_TEAM", 5),
			Palette:               envList("SQUAD_PALETTE", nil),
		},

		PlayerSyncURL:      envOr("PLAYER_SYNC_URL", ""),
		PlayerSyncInterval: envDuration("PLAYER_SYNC_INTERVAL", time.Minute),

		ReportSweepInterval: envDuration("REPORT_SWEEP_INTERVAL", 5*time.Minute),
		R2AccountID:         envOr("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:       envOr("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret:   envOr("R2_ACCESS_KEY_SECRET", ""),
		R2Bucket:            envOr("R2_BUCKET_NAME", ""),
		CDNBaseURL:          strings.TrimRight(envOr("CDN_BASE_URL", ""), "/"),
	}

	if cfg.Settings.DefaultPlayersPerTeam < 1 {
		return nil, eris.Errorf("DEFAULT_PLAYERS_PER_TEAM must be at least 1, got %d", cfg.Settings.DefaultPlayersPerTeam)
	}
	return cfg, nil
}

// RequireDatabase fails when no DATABASE_URL was provided
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return eris.New("DATABASE_URL must be set")
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ReportArchiveEnabled reports whether object storage credentials are complete
func (c *Config) ReportArchiveEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2AccessKeySecret != "" && c.R2Bucket != ""
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
