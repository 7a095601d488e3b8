// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"AGENCY_DB_PATH" envDefault:"./data/agency.db"`
	SessionSecret string `env:"AGENCY_SESSION_SECRET,required"`
	ServerHost    string `env:"AGENCY_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"AGENCY_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"AGENCY_ENV" envDefault:"development"`
	LogLevel      string `env:"AGENCY_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"AGENCY_UPLOADS_DIR" envDefault:"./uploads"`

	// Cache configuration
	RedisURL    string `env:"AGENCY_REDIS_URL"`                         // Optional Redis URL for the content cache
	CachePrefix string `env:"AGENCY_CACHE_PREFIX" envDefault:"agency:"` // Redis key prefix
	CacheTTL    int    `env:"AGENCY_CACHE_TTL" envDefault:"300"`        // Content cache TTL in seconds

	// Seeding configuration
	DoSeed bool `env:"AGENCY_DO_SEED" envDefault:"false"` // Enable demo content seeding

	// Optional initial admin account. When both are set and no users exist
	// yet, the account is created and allow-listed at startup; otherwise the
	// first-run setup page handles bootstrap.
	AdminEmail    string `env:"AGENCY_ADMIN_EMAIL"`
	AdminPassword string `env:"AGENCY_ADMIN_PASSWORD"`
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("AGENCY_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	return cfg, nil
}
