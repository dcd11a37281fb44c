// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.Server.Port != 8480 {
		t.Errorf("Server.Port = %d, want 8480", cfg.Server.Port)
	}
	if cfg.Cache.ResponseTTL != 15*time.Minute {
		t.Errorf("Cache.ResponseTTL = %s, want 15m", cfg.Cache.ResponseTTL)
	}
	if len(cfg.Enrichment.Sources) != 0 {
		t.Errorf("default config should ship no enrichment sources, got %d", len(cfg.Enrichment.Sources))
	}
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		keyword string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			keyword: "server.port",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.Server.Timeout = 0 },
			keyword: "server.timeout",
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			keyword: "database.path",
		},
		{
			name:    "max page below default",
			mutate:  func(c *Config) { c.API.MaxPageSize = 5 },
			keyword: "max_page_size",
		},
		{
			name: "enabled source without base url",
			mutate: func(c *Config) {
				c.Enrichment.Sources = []SourceConfig{{
					Name: "vivino", Enabled: true,
					Reliability: 0.9, DataQuality: 0.9, RequestsPerMinute: 10,
				}}
			},
			keyword: "base_url",
		},
		{
			name: "reliability out of range",
			mutate: func(c *Config) {
				c.Enrichment.Sources = []SourceConfig{{
					Name: "vivino", Enabled: true, BaseURL: "https://api.example.com",
					Reliability: 1.5, DataQuality: 0.9, RequestsPerMinute: 10,
				}}
			},
			keyword: "reliability",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.keyword) {
				t.Errorf("error %q should mention %q", err, tt.keyword)
			}
		})
	}
}

func TestDisabledSourceSkipsValidation(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Enrichment.Sources = []SourceConfig{{Name: "", Enabled: false}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled sources should not be validated, got %v", err)
	}
}

func TestEnabledSources(t *testing.T) {
	t.Parallel()

	enrichment := EnrichmentConfig{Sources: []SourceConfig{
		{Name: "vivino", Enabled: true},
		{Name: "cellartracker", Enabled: false},
		{Name: "winesearcher", Enabled: true},
	}}

	got := enrichment.EnabledSources()
	if len(got) != 2 {
		t.Fatalf("EnabledSources() = %d entries, want 2", len(got))
	}
	if got[0].Name != "vivino" || got[1].Name != "winesearcher" {
		t.Errorf("EnabledSources() = %v, order should follow config", got)
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
server:
  port: 9000
database:
  path: /tmp/test.duckdb
enrichment:
  sources:
    - name: vivino
      enabled: true
      base_url: https://api.vivino.example
      reliability: 0.95
      data_quality: 0.9
      requests_per_minute: 10
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_HOST", "127.0.0.1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("file value Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("env should override host, got %q", cfg.Server.Host)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("env Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("default Server.Timeout = %s, want 30s", cfg.Server.Timeout)
	}
	sources := cfg.Enrichment.EnabledSources()
	if len(sources) != 1 || sources[0].Name != "vivino" {
		t.Fatalf("EnabledSources() = %v, want the one file-configured source", sources)
	}
}

func TestEnvTransformDropsUnknown(t *testing.T) {
	t.Parallel()

	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("envTransformFunc(PATH) = %q, want dropped", got)
	}
	if got := envTransformFunc("HTTP_PORT"); got != "server.port" {
		t.Errorf("envTransformFunc(HTTP_PORT) = %q, want server.port", got)
	}
}
