// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package api provides the HTTP surface over the recommendation engine,
// profile calculator, cellar store and enrichment pipeline. Handlers are
// glue only; all domain semantics live in the engine packages.
package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vinoteca/internal/enrich"
	"github.com/tomtom215/vinoteca/internal/gaps"
	"github.com/tomtom215/vinoteca/internal/models"
	"github.com/tomtom215/vinoteca/internal/notify"
	"github.com/tomtom215/vinoteca/internal/profile"
	"github.com/tomtom215/vinoteca/internal/recommend"
)

// CellarStore is the handler's view of the inventory store.
type CellarStore interface {
	CreateWine(ctx context.Context, wine *models.Wine) error
	GetWine(ctx context.Context, ownerID, id string) (*models.Wine, error)
	WinesByOwner(ctx context.Context, ownerID string) ([]models.Wine, error)
	UpdateWine(ctx context.Context, wine *models.Wine) error
	ConsumeBottle(ctx context.Context, ownerID, id string) (int, error)
	DeleteWine(ctx context.Context, ownerID, id string) error
	Ping() error
}

// Enricher is the handler's view of the enrichment aggregator.
type Enricher interface {
	Enrich(ctx context.Context, q models.WineQuery) (enrich.Result, error)
}

// Handler holds the dependencies behind the HTTP surface.
type Handler struct {
	store      CellarStore
	engine     *recommend.Engine
	calculator *profile.Calculator
	analyzer   *gaps.Analyzer

	// enricher is nil when no external sources are configured; the
	// lookup endpoint then reports unavailable.
	enricher Enricher

	// bus is optional; nil disables event publishing.
	bus *notify.Bus

	logger zerolog.Logger
}

// NewHandler creates the API handler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(store CellarStore, engine *recommend.Engine, calculator *profile.Calculator, analyzer *gaps.Analyzer, enricher Enricher, bus *notify.Bus, logger zerolog.Logger) *Handler {
	return &Handler{
		store:      store,
		engine:     engine,
		calculator: calculator,
		analyzer:   analyzer,
		enricher:   enricher,
		bus:        bus,
		logger:     logger.With().Str("component", "api").Logger(),
	}
}

// Health reports overall service health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.store.Ping(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]any{
		"status":     status,
		"enrichment": h.enricher != nil,
	})
}

// HealthLive is the liveness probe; it succeeds as long as the process
// can serve requests.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe; it fails while the store is down.
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	if err := h.store.Ping(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "inventory store unavailable", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
