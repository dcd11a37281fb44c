// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package enrich

import (
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/vinoteca/internal/cache"
	"github.com/tomtom215/vinoteca/internal/models"
)

// CacheTTL is how long a merged record stays valid. A cache hit
// short-circuits both the network fan-out and the rate limiter.
const CacheTTL = 24 * time.Hour

// RecordCache stores merged records keyed by the normalized query key.
type RecordCache interface {
	Get(key string) (models.ExternalWineRecord, bool)
	Set(key string, record models.ExternalWineRecord)
}

// MemoryCache is an in-process RecordCache with an injectable clock,
// suitable for tests and single-node deployments without persistence.
type MemoryCache struct {
	ttl *cache.TTL[models.ExternalWineRecord]
}

// NewMemoryCache creates an in-memory record cache.
func NewMemoryCache(clock cache.Clock) *MemoryCache {
	return &MemoryCache{ttl: cache.NewTTL[models.ExternalWineRecord](CacheTTL, clock)}
}

// Get returns the cached record for the key, if still valid.
func (c *MemoryCache) Get(key string) (models.ExternalWineRecord, bool) {
	return c.ttl.Get(key)
}

// Set stores the record under the key.
func (c *MemoryCache) Set(key string, record models.ExternalWineRecord) {
	c.ttl.Set(key, record)
}

// Sweep drops expired records and returns how many were removed. Called
// from the cache janitor loop.
func (c *MemoryCache) Sweep() int {
	return c.ttl.Sweep()
}

// BadgerCache persists merged records in a badger store so enrichment
// results survive restarts. Entries expire via badger's native TTL.
type BadgerCache struct {
	db     *badger.DB
	logger zerolog.Logger
}

// NewBadgerCache opens a record cache at the given directory.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBadgerCache(dir string, logger zerolog.Logger) (*BadgerCache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open enrichment cache: %w", err)
	}
	return &BadgerCache{
		db:     db,
		logger: logger.With().Str("component", "enrich-cache").Logger(),
	}, nil
}

// Get returns the cached record for the key, if present and unexpired.
func (c *BadgerCache) Get(key string) (models.ExternalWineRecord, bool) {
	var record models.ExternalWineRecord
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return models.ExternalWineRecord{}, false
	}
	return record, true
}

// Set stores the record under the key with the standard TTL. Write
// failures are logged and swallowed; the cache is an optimization, not a
// source of truth.
func (c *BadgerCache) Set(key string, record models.ExternalWineRecord) {
	payload, err := json.Marshal(record)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), payload).WithTTL(CacheTTL)
		return txn.SetEntry(entry)
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Close releases the underlying store.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}
