// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package metrics exposes Prometheus instrumentation for the API
// surface, the recommendation engine and the enrichment pipeline.
// All collectors register on the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts HTTP requests by method, endpoint and status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vinoteca_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// APIRequestDuration observes HTTP request latency by endpoint.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vinoteca_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// RecommendationsTotal counts recommendation requests by type and outcome.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vinoteca_recommendations_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"request_type", "outcome"},
	)

	// RecommendationDuration observes engine latency by request type.
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vinoteca_recommendation_duration_seconds",
			Help:    "Recommendation engine duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"request_type"},
	)

	// ProfileCalculationsTotal counts taste profile computations.
	ProfileCalculationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vinoteca_profile_calculations_total",
			Help: "Total number of taste profile calculations",
		},
	)

	// EnrichmentLookupsTotal counts enrichment lookups by source and outcome.
	// Outcome is one of: success, error, rate_limited.
	EnrichmentLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vinoteca_enrichment_lookups_total",
			Help: "Total number of external wine data lookups",
		},
		[]string{"source", "outcome"},
	)

	// EnrichmentCacheHits counts merged-record cache hits.
	EnrichmentCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vinoteca_enrichment_cache_hits_total",
			Help: "Total number of enrichment cache hits",
		},
	)

	// EnrichmentCacheMisses counts merged-record cache misses.
	EnrichmentCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vinoteca_enrichment_cache_misses_total",
			Help: "Total number of enrichment cache misses",
		},
	)

	// DBQueryDuration observes inventory store query latency by operation.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vinoteca_db_query_duration_seconds",
			Help:    "Inventory store query duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"operation"},
	)

	// CellarBottles gauges the bottle count seen in the last inventory read.
	CellarBottles = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vinoteca_cellar_bottles",
			Help: "Bottles held per owner at last read",
		},
		[]string{"owner_id"},
	)
)
