// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper is any cache that can drop its expired entries on demand.
// Satisfied by the engine's response cache and the in-memory record
// cache; badger handles expiry natively and never registers here.
type Sweeper interface {
	Sweep() int
}

// SweeperFunc adapts a plain function to the Sweeper interface.
type SweeperFunc func() int

// Sweep implements Sweeper.
func (f SweeperFunc) Sweep() int {
	return f()
}

// CacheJanitorService periodically sweeps expired entries out of the
// registered caches. Expired entries are already invisible to readers;
// the janitor only reclaims the memory they hold.
type CacheJanitorService struct {
	sweepers map[string]Sweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates a janitor over the named sweepers.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(sweepers map[string]Sweeper, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheJanitorService{
		sweepers: sweepers,
		interval: interval,
		logger:   logger.With().Str("component", "cache-janitor").Logger(),
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service. It sweeps on a fixed interval until
// the context is canceled.
func (j *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.sweep()
		}
	}
}

// sweep runs one pass over every registered cache.
func (j *CacheJanitorService) sweep() {
	for name, sweeper := range j.sweepers {
		if dropped := sweeper.Sweep(); dropped > 0 {
			j.logger.Debug().
				Str("cache", name).
				Int("dropped", dropped).
				Msg("expired entries reclaimed")
		}
	}
}

// String implements fmt.Stringer for suture's log messages.
func (j *CacheJanitorService) String() string {
	return j.name
}
