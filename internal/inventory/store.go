// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package inventory persists cellar holdings in DuckDB. It is the only
// writer of wine rows; the recommendation engine reads through the
// store's query methods.
package inventory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/vinoteca/internal/config"
)

// Store wraps the DuckDB connection and provides cellar data access.
type Store struct {
	conn   *sql.DB
	logger zerolog.Logger
}

// New opens the database, configures the connection pool and ensures
// the schema exists.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *config.DatabaseConfig, logger zerolog.Logger) (*Store, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure the parent directory exists for the database file.
	// 0750 per gosec G301.
	dbDir := filepath.Dir(cfg.Path)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
		}
	}

	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}

	// Disable auto-install/auto-load of extensions to prevent hangs in
	// restricted network environments.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, cfg.MaxMemory, preserveOrder)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{
		conn:   conn,
		logger: logger.With().Str("component", "inventory").Logger(),
	}

	s.configureConnectionPool()

	if err := s.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	s.logger.Info().Str("path", cfg.Path).Msg("inventory store ready")
	return s, nil
}

// configureConnectionPool sets connection pool parameters:
// max_open NumCPU() for parallelism, max_idle 2 for reuse,
// max_lifetime 1h against stale connections, max_idle_time 5m cleanup.
func (s *Store) configureConnectionPool() {
	s.conn.SetMaxOpenConns(runtime.NumCPU())
	s.conn.SetMaxIdleConns(2)
	s.conn.SetConnMaxLifetime(time.Hour)
	s.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// initialize creates the schema if it does not exist. Varietals are
// stored as a JSON-encoded array; the drinking window flattens to four
// nullable timestamps.
func (s *Store) initialize() error {
	const schema = `
CREATE TABLE IF NOT EXISTS wines (
	id              VARCHAR PRIMARY KEY,
	owner_id        VARCHAR NOT NULL,
	name            VARCHAR NOT NULL,
	producer        VARCHAR NOT NULL DEFAULT '',
	type            VARCHAR NOT NULL,
	region          VARCHAR NOT NULL DEFAULT '',
	country         VARCHAR NOT NULL DEFAULT '',
	varietals       VARCHAR NOT NULL DEFAULT '[]',
	vintage         INTEGER NOT NULL DEFAULT 0,
	quantity        INTEGER NOT NULL DEFAULT 0,
	purchase_price  DOUBLE  NOT NULL DEFAULT 0,
	personal_rating DOUBLE  NOT NULL DEFAULT 0,
	window_earliest   TIMESTAMP,
	window_peak_start TIMESTAMP,
	window_peak_end   TIMESTAMP,
	window_latest     TIMESTAMP,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_wines_owner ON wines (owner_id);
`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (s *Store) Ping() error {
	return s.conn.Ping()
}

func closeQuietly(conn *sql.DB) {
	_ = conn.Close()
}
