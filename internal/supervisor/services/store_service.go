// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Pinger is the health surface of the inventory store.
type Pinger interface {
	Ping() error
}

// StoreKeepaliveService watches the inventory store's connection. A
// failed ping ends the service with an error so suture's backoff and
// restart cycle governs the retry cadence; readiness reporting flips to
// unavailable in the meantime.
type StoreKeepaliveService struct {
	store    Pinger
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewStoreKeepaliveService creates a keepalive over the store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStoreKeepaliveService(store Pinger, interval time.Duration, logger zerolog.Logger) *StoreKeepaliveService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &StoreKeepaliveService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("component", "store-keepalive").Logger(),
		name:     "store-keepalive",
	}
}

// Serve implements suture.Service.
func (s *StoreKeepaliveService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.store.Ping(); err != nil {
				s.logger.Error().Err(err).Msg("inventory store unreachable")
				return fmt.Errorf("store ping failed: %w", err)
			}
		}
	}
}

// String implements fmt.Stringer for suture's log messages.
func (s *StoreKeepaliveService) String() string {
	return s.name
}
