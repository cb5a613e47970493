// Copyright (c) 2026 Residents Book. All rights reserved.

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
  - DI-Friendly: Passed to core components (API client, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Residents Book web front end.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Upstream Residents REST API
	ResidentsAPIURL     string        `env:"RESIDENTS_API_URL"     envDefault:"http://localhost:8800/api"`
	ResidentsAPITimeout time.Duration `env:"RESIDENTS_API_TIMEOUT" envDefault:"10s"`

	// DirectoryFetchLimit is the page size used for the single startup list
	// request. It must cover the whole directory.
	DirectoryFetchLimit int `env:"DIRECTORY_FETCH_LIMIT" envDefault:"1000"`

	// Key-Value Cache (Redis). Empty keeps notifications in process memory.
	RedisURL string `env:"REDIS_URL"`

	// Per-IP request throttling
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`
}

// MockAPIConfig holds the settings for the local stub of the Residents API.
type MockAPIConfig struct {
	Port        string        `env:"MOCK_API_PORT"    envDefault:"8800"`
	Debug       bool          `env:"DEBUG"            envDefault:"false"`
	Environment string        `env:"ENVIRONMENT"      envDefault:"development"`
	Seed        int           `env:"MOCK_API_SEED"    envDefault:"12"`
	Latency     time.Duration `env:"MOCK_API_LATENCY" envDefault:"0s"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.DirectoryFetchLimit < 1 {
		return nil, fmt.Errorf("config: DIRECTORY_FETCH_LIMIT must be positive, got %d", cfg.DirectoryFetchLimit)
	}

	return cfg, nil
}

// LoadMockAPI parses environment variables into a [MockAPIConfig] struct.
func LoadMockAPI() (*MockAPIConfig, error) {
	cfg := &MockAPIConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment reports whether the stub API is running in development mode.
func (c *MockAPIConfig) IsDevelopment() bool {
	return c.Environment == "development"
}
