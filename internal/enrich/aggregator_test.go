// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package enrich

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/vinoteca/internal/logging"
	"github.com/tomtom215/vinoteca/internal/models"
)

// fakeClock drives the sliding windows and the memory cache in tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeSource is a scripted provider.
type fakeSource struct {
	info   SourceInfo
	record models.SourceRecord
	err    error
	calls  atomic.Int64
}

func (s *fakeSource) Info() SourceInfo { return s.info }

func (s *fakeSource) Lookup(_ context.Context, _ models.WineQuery) (models.SourceRecord, error) {
	s.calls.Add(1)
	if s.err != nil {
		return models.SourceRecord{}, s.err
	}
	return s.record, nil
}

func sourceA() *fakeSource {
	return &fakeSource{
		info: SourceInfo{Name: "vivino", Reliability: 0.95, DataQuality: 1.0, RequestsPerMinute: 10},
		record: models.SourceRecord{
			SourceName:     "vivino",
			Confidence:     0.9,
			ExternalID:     "viv-123",
			TastingNotes:   "dark cherry, cedar, tobacco",
			AlcoholContent: 13.5,
			ProfessionalRatings: []models.ProfessionalRating{
				{Source: "Wine Spectator", Score: 94, MaxScore: 100},
			},
		},
	}
}

func sourceB() *fakeSource {
	return &fakeSource{
		info: SourceInfo{Name: "cellartracker", Reliability: 0.8, DataQuality: 1.0, RequestsPerMinute: 10},
		record: models.SourceRecord{
			SourceName:   "cellartracker",
			Confidence:   0.7,
			ExternalID:   "ct-456",
			TastingNotes: "red fruit, leather",
			ProfessionalRatings: []models.ProfessionalRating{
				{Source: "Decanter", Score: 91, MaxScore: 100},
			},
		},
	}
}

func newTestAggregator(clock *fakeClock, sources ...Source) *Aggregator {
	return NewAggregator(sources, NewMemoryCache(clock), clock, logging.NewTestLogger(io.Discard))
}

func testQuery() models.WineQuery {
	return models.WineQuery{Name: "Monte Bello", Producer: "Ridge", Vintage: 2018}
}

func TestEnrichEmptyQueryFailsFast(t *testing.T) {
	t.Parallel()

	src := sourceA()
	agg := newTestAggregator(newFakeClock(), src)

	_, err := agg.Enrich(context.Background(), models.WineQuery{})
	if !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("Enrich(empty) error = %v, want ErrEmptyQuery", err)
	}
	if src.calls.Load() != 0 {
		t.Error("empty query must not reach any source")
	}
}

func TestEnrichMergeWeighting(t *testing.T) {
	t.Parallel()

	agg := newTestAggregator(newFakeClock(), sourceA(), sourceB())
	got, err := agg.Enrich(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}

	record := got.Record

	// Weighted confidence must sit closer to the trusted source A (0.9)
	// than the plain average of 0.8 would.
	if record.Confidence <= 0.8 || record.Confidence >= 0.9 {
		t.Errorf("Confidence = %v, want in (0.8, 0.9)", record.Confidence)
	}

	if record.TastingNotes != "dark cherry, cedar, tobacco" {
		t.Errorf("TastingNotes = %q, want the highest-confidence source's notes", record.TastingNotes)
	}
	if record.ExternalID != "viv-123" {
		t.Errorf("ExternalID = %q, want viv-123", record.ExternalID)
	}

	if len(record.ProfessionalRatings) != 2 {
		t.Errorf("ProfessionalRatings count = %d, want ratings from both sources", len(record.ProfessionalRatings))
	}
	if len(record.Sources) != 2 {
		t.Errorf("Sources = %v, want both providers listed", record.Sources)
	}
}

func TestEnrichCacheShortCircuits(t *testing.T) {
	t.Parallel()

	src := sourceA()
	agg := newTestAggregator(newFakeClock(), src)

	first, err := agg.Enrich(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("first Enrich() error = %v", err)
	}
	if first.FromCache {
		t.Error("first call should not be served from cache")
	}

	second, err := agg.Enrich(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("second Enrich() error = %v", err)
	}
	if !second.FromCache {
		t.Error("second call should hit the cache")
	}
	if src.calls.Load() != 1 {
		t.Errorf("source called %d times, want 1", src.calls.Load())
	}
}

func TestEnrichCacheKeyNormalization(t *testing.T) {
	t.Parallel()

	src := sourceA()
	agg := newTestAggregator(newFakeClock(), src)

	if _, err := agg.Enrich(context.Background(), testQuery()); err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}

	shouty := models.WineQuery{Name: "  MONTE BELLO ", Producer: "ridge", Vintage: 2018}
	got, err := agg.Enrich(context.Background(), shouty)
	if err != nil {
		t.Fatalf("Enrich(normalized) error = %v", err)
	}
	if !got.FromCache {
		t.Error("case and whitespace variants must share a cache entry")
	}
}

func TestEnrichRateLimitSkipsSource(t *testing.T) {
	t.Parallel()

	src := sourceA()
	src.info.RequestsPerMinute = 1
	agg := newTestAggregator(newFakeClock(), src)

	if _, err := agg.Enrich(context.Background(), testQuery()); err != nil {
		t.Fatalf("first Enrich() error = %v", err)
	}

	// Different query, same window: the source is over its budget.
	other := models.WineQuery{Name: "Ch. Musar", Vintage: 2016}
	got, err := agg.Enrich(context.Background(), other)
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("Enrich() error = %v, want ErrNoSources", err)
	}
	if got.Record.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", got.Record.Confidence)
	}
	if len(got.Record.Errors) == 0 || !strings.Contains(got.Record.Errors[0], "rate limit") {
		t.Errorf("Errors = %v, want a rate-limit entry", got.Record.Errors)
	}
	if src.calls.Load() != 1 {
		t.Errorf("source called %d times, want the second attempt skipped", src.calls.Load())
	}
}

func TestEnrichRateLimitWindowSlides(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	src := sourceA()
	src.info.RequestsPerMinute = 1
	agg := newTestAggregator(clock, src)

	if _, err := agg.Enrich(context.Background(), testQuery()); err != nil {
		t.Fatalf("first Enrich() error = %v", err)
	}

	clock.Advance(2 * time.Minute)

	other := models.WineQuery{Name: "Ch. Musar", Vintage: 2016}
	if _, err := agg.Enrich(context.Background(), other); err != nil {
		t.Fatalf("Enrich() after window slide error = %v", err)
	}
	if src.calls.Load() != 2 {
		t.Errorf("source called %d times, want 2 after the window cleared", src.calls.Load())
	}
}

func TestEnrichPartialFailure(t *testing.T) {
	t.Parallel()

	good := sourceA()
	broken := sourceB()
	broken.err = errors.New("connection refused")

	agg := newTestAggregator(newFakeClock(), good, broken)
	got, err := agg.Enrich(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("Enrich() error = %v; partial success is not a failure", err)
	}

	if got.Record.ExternalID != "viv-123" {
		t.Errorf("ExternalID = %q, want the responding source's record", got.Record.ExternalID)
	}
	if len(got.Record.Errors) != 1 || !strings.Contains(got.Record.Errors[0], "cellartracker") {
		t.Errorf("Errors = %v, want the broken source recorded", got.Record.Errors)
	}
}

func TestEnrichAllSourcesFail(t *testing.T) {
	t.Parallel()

	broken := sourceA()
	broken.err = errors.New("boom")

	agg := newTestAggregator(newFakeClock(), broken)
	got, err := agg.Enrich(context.Background(), testQuery())
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("Enrich() error = %v, want ErrNoSources", err)
	}
	if got.Record.Confidence != 0 || len(got.Record.Errors) == 0 {
		t.Errorf("result = %+v, want zero confidence and a non-empty error list", got.Record)
	}
}

func TestEnrichSingleSource(t *testing.T) {
	t.Parallel()

	agg := newTestAggregator(newFakeClock(), sourceB())
	got, err := agg.Enrich(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}

	// A lone source's weighted confidence is its own confidence.
	if got.Record.Confidence != 0.7 {
		t.Errorf("Confidence = %v, want 0.7", got.Record.Confidence)
	}
}
