// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/vinoteca/internal/models"
)

// maxResponseBytes caps how much of a provider response is read.
const maxResponseBytes = 1 << 20

// HTTPSourceConfig configures one HTTP-backed provider.
type HTTPSourceConfig struct {
	Info    SourceInfo
	BaseURL string
	APIKey  string

	// Timeout bounds one lookup including connection setup; defaults to
	// 10 seconds.
	Timeout time.Duration
}

// HTTPSource queries a provider's JSON lookup endpoint. All calls go
// through a circuit breaker so a flapping provider degrades to fast
// failures instead of holding every aggregation hostage.
//
// The breaker uses real time for its recovery interval; tests mock the
// source, not the breaker.
type HTTPSource struct {
	cfg     HTTPSourceConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[models.SourceRecord]
	logger  zerolog.Logger
}

// NewHTTPSource creates a breaker-protected HTTP provider client.
// Breaker configuration: 3 half-open probes, 1 minute count window,
// 30 second recovery timeout, opens at 60% failures over at least 5
// requests.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPSource(cfg HTTPSourceConfig, logger zerolog.Logger) *HTTPSource {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	componentLogger := logger.With().Str("component", "enrich").Str("source", cfg.Info.Name).Logger()

	breaker := gobreaker.NewCircuitBreaker[models.SourceRecord](gobreaker.Settings{
		Name:        cfg.Info.Name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			componentLogger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("source circuit breaker state change")
		},
	})

	return &HTTPSource{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		logger:  componentLogger,
	}
}

// Info returns the provider's static metadata.
func (s *HTTPSource) Info() SourceInfo {
	return s.cfg.Info
}

// Lookup queries the provider's lookup endpoint through the breaker.
func (s *HTTPSource) Lookup(ctx context.Context, q models.WineQuery) (models.SourceRecord, error) {
	record, err := s.breaker.Execute(func() (models.SourceRecord, error) {
		return s.lookup(ctx, q)
	})
	if err != nil {
		return models.SourceRecord{}, fmt.Errorf("source %s: %w", s.cfg.Info.Name, err)
	}
	return record, nil
}

func (s *HTTPSource) lookup(ctx context.Context, q models.WineQuery) (models.SourceRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.lookupURL(q), http.NoBody)
	if err != nil {
		return models.SourceRecord{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return models.SourceRecord{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.SourceRecord{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var record models.SourceRecord
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&record); err != nil {
		return models.SourceRecord{}, fmt.Errorf("decode response: %w", err)
	}

	record.SourceName = s.cfg.Info.Name
	return record, nil
}

// lookupURL builds the provider query URL from the non-empty query fields.
func (s *HTTPSource) lookupURL(q models.WineQuery) string {
	params := url.Values{}
	if q.Name != "" {
		params.Set("name", q.Name)
	}
	if q.Producer != "" {
		params.Set("producer", q.Producer)
	}
	if q.Vintage != 0 {
		params.Set("vintage", strconv.Itoa(q.Vintage))
	}
	if q.Region != "" {
		params.Set("region", q.Region)
	}
	if q.Varietal != "" {
		params.Set("varietal", q.Varietal)
	}
	if q.Type != "" {
		params.Set("type", string(q.Type))
	}
	return s.cfg.BaseURL + "/v1/wines/lookup?" + params.Encode()
}
