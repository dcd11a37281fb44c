// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/vinoteca/internal/enrich"
	"github.com/tomtom215/vinoteca/internal/metrics"
	"github.com/tomtom215/vinoteca/internal/models"
	"github.com/tomtom215/vinoteca/internal/notify"
)

// EnrichmentLookup queries the external sources for a wine and returns
// the merged record with its validation report. Identification comes
// from query parameters so lookups stay cacheable at the HTTP layer.
func (h *Handler) EnrichmentLookup(w http.ResponseWriter, r *http.Request) {
	if h.enricher == nil {
		respondError(w, http.StatusServiceUnavailable, "ENRICHMENT_DISABLED", "no external sources configured", nil)
		return
	}

	query := models.WineQuery{
		Name:     r.URL.Query().Get("name"),
		Producer: r.URL.Query().Get("producer"),
		Region:   r.URL.Query().Get("region"),
		Varietal: r.URL.Query().Get("varietal"),
		Type:     models.WineType(r.URL.Query().Get("type")),
	}
	if raw := r.URL.Query().Get("vintage"); raw != "" {
		vintage, err := strconv.Atoi(raw)
		if err != nil || vintage < 0 {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "vintage must be a non-negative integer", nil)
			return
		}
		query.Vintage = vintage
	}

	result, err := h.enricher.Enrich(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, enrich.ErrEmptyQuery):
			respondError(w, http.StatusBadRequest, "EMPTY_QUERY", "at least one identifying field is required", nil)
		case errors.Is(err, enrich.ErrNoSources):
			respondAPIError(w, http.StatusBadGateway, &APIError{
				Code:    "NO_SOURCES",
				Message: "no external source responded",
				// The failed record still carries the per-source errors.
				Details: map[string]any{"errors": result.Record.Errors},
			})
		default:
			respondError(w, http.StatusInternalServerError, "ENRICHMENT_FAILED", "enrichment lookup failed", err)
		}
		return
	}

	if result.FromCache {
		metrics.EnrichmentCacheHits.Inc()
	} else {
		metrics.EnrichmentCacheMisses.Inc()
	}

	if h.bus != nil {
		h.bus.PublishEnrichmentCompleted(notify.EnrichmentCompleted{
			CacheKey:   query.CacheKey(),
			Sources:    len(result.Record.Sources),
			Confidence: result.Record.Confidence,
			FromCache:  result.FromCache,
			OccurredAt: time.Now().UTC(),
		})
	}

	respondJSON(w, http.StatusOK, result)
}
