// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package config loads layered configuration: built-in defaults, an
// optional YAML file, then environment variables, in increasing
// precedence.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	API        APIConfig        `koanf:"api"`
	Database   DatabaseConfig   `koanf:"database"`
	Cache      CacheConfig      `koanf:"cache"`
	Enrichment EnrichmentConfig `koanf:"enrichment"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// APIConfig holds API surface settings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// DatabaseConfig holds DuckDB settings for the inventory store.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count; 0 uses runtime.NumCPU().
	Threads int `koanf:"threads"`

	PreserveInsertionOrder bool `koanf:"preserve_insertion_order"`
}

// CacheConfig holds settings for the persistent enrichment cache and
// the in-memory response cache.
type CacheConfig struct {
	// Dir is the Badger directory for the enrichment record cache.
	// Empty selects an in-memory cache.
	Dir string `koanf:"dir"`

	ResponseTTL time.Duration `koanf:"response_ttl"`
}

// EnrichmentConfig holds external wine data source settings.
type EnrichmentConfig struct {
	// SourceTimeout bounds each external lookup.
	SourceTimeout time.Duration `koanf:"source_timeout"`

	Sources []SourceConfig `koanf:"sources"`
}

// SourceConfig describes one external wine data source.
type SourceConfig struct {
	Name    string `koanf:"name"`
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`

	// Reliability and DataQuality weight this source during record
	// merging; both are in (0, 1].
	Reliability float64 `koanf:"reliability"`
	DataQuality float64 `koanf:"data_quality"`

	RequestsPerMinute int `koanf:"requests_per_minute"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8480,
			Timeout: 30 * time.Second,
		},
		API: APIConfig{
			DefaultPageSize:   20,
			MaxPageSize:       100,
			RateLimitRequests: 100,
			RateLimitWindow:   1 * time.Minute,
			CORSOrigins:       []string{"*"},
		},
		Database: DatabaseConfig{
			Path:                   "/data/vinoteca.duckdb",
			MaxMemory:              "1GB",
			Threads:                0, // 0 = use runtime.NumCPU()
			PreserveInsertionOrder: true,
		},
		Cache: CacheConfig{
			Dir:         "/data/enrichment",
			ResponseTTL: 15 * time.Minute,
		},
		Enrichment: EnrichmentConfig{
			SourceTimeout: 10 * time.Second,
			Sources:       nil, // No sources by default; enrichment endpoints report unavailable.
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for values that would fail at
// runtime in less obvious ways.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 1-65535", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size %d below api.default_page_size %d",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	for i, s := range c.Enrichment.Sources {
		if !s.Enabled {
			continue
		}
		if s.Name == "" {
			return fmt.Errorf("enrichment.sources[%d]: name must not be empty", i)
		}
		if s.BaseURL == "" {
			return fmt.Errorf("enrichment source %q: base_url must not be empty", s.Name)
		}
		if s.Reliability <= 0 || s.Reliability > 1 {
			return fmt.Errorf("enrichment source %q: reliability %v out of range (0, 1]", s.Name, s.Reliability)
		}
		if s.DataQuality <= 0 || s.DataQuality > 1 {
			return fmt.Errorf("enrichment source %q: data_quality %v out of range (0, 1]", s.Name, s.DataQuality)
		}
		if s.RequestsPerMinute <= 0 {
			return fmt.Errorf("enrichment source %q: requests_per_minute must be positive", s.Name)
		}
	}
	return nil
}

// EnabledSources returns the enabled enrichment sources.
func (c *EnrichmentConfig) EnabledSources() []SourceConfig {
	var out []SourceConfig
	for _, s := range c.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}
