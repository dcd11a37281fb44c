// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package enrich

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/vinoteca/internal/cache"
	"github.com/tomtom215/vinoteca/internal/models"
)

const (
	// defaultSourceTimeout bounds one provider lookup within a fan-out.
	defaultSourceTimeout = 10 * time.Second

	// limiterBuckets is the sliding-window resolution: 12 buckets of 5s
	// over the trailing minute.
	limiterBuckets = 12

	// aggregateRPS paces total outbound traffic across all sources,
	// independent of the per-source windows.
	aggregateRPS   = 20
	aggregateBurst = 40
)

// Result is one completed aggregation: the merged record plus its
// data-quality validation.
type Result struct {
	Record     models.ExternalWineRecord `json:"record"`
	Validation ValidationReport          `json:"validation"`

	// FromCache marks a result served without any network call.
	FromCache bool `json:"from_cache"`
}

// Aggregator fans a wine query out to every configured source and merges
// the answers. Safe for concurrent use.
type Aggregator struct {
	sources []Source
	windows *cache.SlidingWindowStore
	records RecordCache
	pacer   *rate.Limiter
	timeout time.Duration
	logger  zerolog.Logger
}

// AggregatorOption adjusts aggregator construction.
type AggregatorOption func(*Aggregator)

// WithSourceTimeout overrides the per-source lookup timeout.
func WithSourceTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// NewAggregator creates an aggregator over the given sources. The clock
// drives the rate-limit windows; pass cache.RealClock{} outside tests.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAggregator(sources []Source, records RecordCache, clock cache.Clock, logger zerolog.Logger, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		sources: sources,
		windows: cache.NewSlidingWindowStore(time.Minute, limiterBuckets, clock),
		records: records,
		pacer:   rate.NewLimiter(rate.Limit(aggregateRPS), aggregateBurst),
		timeout: defaultSourceTimeout,
		logger:  logger.With().Str("component", "enrich").Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Enrich resolves a wine query against all sources. An empty query fails
// fast before any network call. A cache hit short-circuits the fan-out and
// the rate limiter. When no source responds at all, the returned result
// has confidence 0 and a non-empty error list alongside ErrNoSources.
func (a *Aggregator) Enrich(ctx context.Context, q models.WineQuery) (Result, error) {
	if q.IsEmpty() {
		return Result{}, ErrEmptyQuery
	}

	key := q.CacheKey()
	if record, ok := a.records.Get(key); ok {
		a.logger.Debug().Str("key", key).Msg("enrichment cache hit")
		return Result{
			Record:     record,
			Validation: ValidateRecord(&record),
			FromCache:  true,
		}, nil
	}

	results, errs := a.fanOut(ctx, q)

	if len(results) == 0 {
		record := models.ExternalWineRecord{Confidence: 0, Errors: errs}
		return Result{Record: record, Validation: ValidateRecord(&record)}, ErrNoSources
	}

	record := merge(results)
	record.Errors = errs
	a.records.Set(key, record)

	a.logger.Debug().
		Str("key", key).
		Int("responding", len(results)).
		Int("failed", len(errs)).
		Float64("confidence", record.Confidence).
		Msg("enrichment merged")

	return Result{Record: record, Validation: ValidateRecord(&record)}, nil
}

// fanOut queries all admitted sources concurrently and collects answers
// and per-source failures. A rate-limited source is skipped and recorded
// as a non-fatal error; one slow source cannot block the others beyond
// the per-source timeout.
func (a *Aggregator) fanOut(ctx context.Context, q models.WineQuery) ([]sourceResult, []string) {
	var (
		mu      sync.Mutex
		results []sourceResult
		errs    []string
		wg      sync.WaitGroup
	)

	for _, src := range a.sources {
		info := src.Info()

		if !a.admit(info) {
			mu.Lock()
			errs = append(errs, fmt.Sprintf("%s: %v", info.Name, ErrRateLimited))
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(src Source, info SourceInfo) {
			defer wg.Done()

			lookupCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			if err := a.pacer.Wait(lookupCtx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Sprintf("%s: %v", info.Name, err))
				mu.Unlock()
				return
			}

			record, err := src.Lookup(lookupCtx, q)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", info.Name, err))
				return
			}
			results = append(results, sourceResult{record: record, info: info})
		}(src, info)
	}

	wg.Wait()
	return results, errs
}

// admit applies the per-source sliding-window limit and counts the
// request when admitted. The slot is consumed here, before the lookup
// goroutine runs its pacer wait; a lookup later abandoned by a context
// timeout still spends its slot. Under-admitting a source for up to a
// minute is preferred over a burst exceeding the provider's limit.
func (a *Aggregator) admit(info SourceInfo) bool {
	if info.RequestsPerMinute <= 0 {
		return true
	}
	if a.windows.Count(info.Name) >= int64(info.RequestsPerMinute) {
		return false
	}
	a.windows.Increment(info.Name)
	return true
}
