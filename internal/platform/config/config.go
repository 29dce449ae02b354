// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: TTLs and secrets are handed to the session manager, token
    service and authenticator through their constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Session store backends.
const (
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
)

// Password comparison modes.
const (
	PasswordModePlain  = "plain"
	PasswordModeBcrypt = "bcrypt"
)

// # Configuration Schema

// Config holds all runtime configuration for the API server and the admin CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3001"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Key-Value Store (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// JWT signing
	JWTSecret           string `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiresInSeconds int    `env:"JWT_EXPIRES_IN_SECONDS" envDefault:"60"`

	// Session lifecycle
	SessionExpiresInDays   int           `env:"SESSION_EXPIRES_IN_DAYS"  envDefault:"7"`
	SessionStore           string        `env:"SESSION_STORE"            envDefault:"postgres"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1h"`
	SessionCookieSecure    bool          `env:"SESSION_COOKIE_SECURE"    envDefault:"false"`

	// PasswordMode selects how stored user secrets are compared at sign-in.
	PasswordMode string `env:"PASSWORD_MODE" envDefault:"plain"`

	// Cross-Origin Resource Sharing
	FrontendOrigin string   `env:"FRONTEND_ORIGIN" envDefault:"http://localhost:4200"`
	ExtraOrigins   []string `env:"EXTRA_ORIGINS"   envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values the rest of the system cannot work with.
func (c *Config) Validate() error {
	if c.JWTExpiresInSeconds <= 0 {
		return errors.New("config: JWT_EXPIRES_IN_SECONDS must be positive")
	}
	if c.SessionExpiresInDays <= 0 {
		return errors.New("config: SESSION_EXPIRES_IN_DAYS must be positive")
	}
	if c.SessionCleanupInterval < 0 {
		return errors.New("config: SESSION_CLEANUP_INTERVAL must not be negative")
	}

	switch c.SessionStore {
	case SessionStorePostgres, SessionStoreRedis:
	default:
		return fmt.Errorf("config: unsupported SESSION_STORE %q", c.SessionStore)
	}

	switch c.PasswordMode {
	case PasswordModePlain, PasswordModeBcrypt:
	default:
		return fmt.Errorf("config: unsupported PASSWORD_MODE %q", c.PasswordMode)
	}

	return nil
}

// SessionTTL is the lifetime granted to a session on creation and refresh.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionExpiresInDays) * 24 * time.Hour
}

// AccessTokenTTL is the lifetime of a signed JWT.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresInSeconds) * time.Second
}

// AllowedOrigins lists every origin accepted by the CORS middleware outside development.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.ExtraOrigins)+1)
	if c.FrontendOrigin != "" {
		origins = append(origins, c.FrontendOrigin)
	}
	return append(origins, c.ExtraOrigins...)
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
