// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package enrich aggregates wine metadata from external providers.
//
// Queries fan out to every configured source concurrently; each source is
// rate limited by a per-source sliding window and protected by a circuit
// breaker. Responses merge into a single record: list fields concatenate
// across sources, scalar fields come from the highest-confidence source,
// and the overall confidence is a reliability/quality-weighted average.
// Partial success is the normal outcome; per-source failures are recorded
// on the result, not raised.
package enrich

import (
	"context"
	"errors"

	"github.com/tomtom215/vinoteca/internal/models"
)

var (
	// ErrEmptyQuery is returned before any network call when the query
	// carries no identifying fields.
	ErrEmptyQuery = errors.New("wine query has no identifying fields")

	// ErrNoSources is returned when every source failed, was rate limited
	// or timed out.
	ErrNoSources = errors.New("no external source responded")

	// ErrRateLimited marks a source skipped by its sliding-window limit.
	ErrRateLimited = errors.New("source rate limit exceeded")
)

// SourceInfo is the static metadata configured per provider.
type SourceInfo struct {
	// Name identifies the provider, e.g. "vivino".
	Name string

	// Reliability and DataQuality weight this source's contribution to
	// the merged confidence, both in [0,1].
	Reliability float64
	DataQuality float64

	// RequestsPerMinute bounds the trailing-60s request count.
	RequestsPerMinute int
}

// Source is one external wine-data provider.
type Source interface {
	// Info returns the provider's static metadata.
	Info() SourceInfo

	// Lookup resolves a wine query to the provider's best match. The
	// returned record carries the provider's own match confidence.
	Lookup(ctx context.Context, q models.WineQuery) (models.SourceRecord, error)
}
