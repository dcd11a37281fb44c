// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package main is the entry point for the Vinoteca server.
//
// Vinoteca is a self-hosted wine cellar intelligence service. It derives
// a taste profile from a questionnaire, scores the cellar against it,
// pairs wines with dishes, flags collection gaps, and enriches cellar
// entries from external wine databases.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: environment variables and config file (Koanf v2)
//  2. Inventory store: DuckDB-backed cellar persistence
//  3. Enrichment: external sources behind circuit breakers, with a
//     badger-backed (or in-memory) record cache
//  4. Engine: profile calculator, scorer, pairing matcher, gap analyzer
//  5. Event bus: in-process Watermill pub/sub for domain events
//  6. HTTP server: REST API plus Prometheus metrics
//
// All long-running pieces run under a suture supervisor tree with
// storage, enrichment and api layers.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (HTTP_PORT, DUCKDB_PATH, LOG_LEVEL, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// External sources carry API keys and are configured per source in the
// config file only.
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections, waits for in-flight requests up to the
// configured timeout, then closes the enrichment cache, event bus and
// database.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vinoteca/internal/api"
	"github.com/tomtom215/vinoteca/internal/config"
	"github.com/tomtom215/vinoteca/internal/enrich"
	"github.com/tomtom215/vinoteca/internal/gaps"
	"github.com/tomtom215/vinoteca/internal/inventory"
	"github.com/tomtom215/vinoteca/internal/logging"
	"github.com/tomtom215/vinoteca/internal/notify"
	"github.com/tomtom215/vinoteca/internal/pairing"
	"github.com/tomtom215/vinoteca/internal/profile"
	"github.com/tomtom215/vinoteca/internal/recommend"
	"github.com/tomtom215/vinoteca/internal/scoring"
	"github.com/tomtom215/vinoteca/internal/supervisor"
	"github.com/tomtom215/vinoteca/internal/supervisor/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().
		Str("version", version).
		Str("database", cfg.Database.Path).
		Int("sources", len(cfg.Enrichment.EnabledSources())).
		Msg("Starting Vinoteca")

	store, err := inventory.New(&cfg.Database, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize inventory store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing inventory store")
		}
	}()
	logging.Info().Msg("Inventory store initialized")

	// Enrichment is optional: with no enabled sources the lookup
	// endpoint reports unavailable and everything else works normally.
	var (
		enricher    api.Enricher
		recordCache enrich.RecordCache
		badgerCache *enrich.BadgerCache
		memoryCache *enrich.MemoryCache
	)
	if sources := buildSources(cfg, logger); len(sources) > 0 {
		if cfg.Cache.Dir != "" {
			badgerCache, err = enrich.NewBadgerCache(cfg.Cache.Dir, logger)
			if err != nil {
				logging.Fatal().Err(err).Str("dir", cfg.Cache.Dir).Msg("Failed to open enrichment cache")
			}
			recordCache = badgerCache
		} else {
			memoryCache = enrich.NewMemoryCache(nil)
			recordCache = memoryCache
			logging.Warn().Msg("No cache directory configured; enrichment results will not survive restarts")
		}

		enricher = enrich.NewAggregator(
			sources, recordCache, nil, logger,
			enrich.WithSourceTimeout(cfg.Enrichment.SourceTimeout),
		)
		logging.Info().Int("sources", len(sources)).Msg("Enrichment pipeline initialized")
	} else {
		logging.Info().Msg("No external sources enabled; enrichment disabled")
	}
	defer func() {
		if badgerCache != nil {
			if err := badgerCache.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing enrichment cache")
			}
		}
	}()

	scorer := scoring.NewScorer(logger)
	matcher := pairing.NewMatcher(scorer, logger)
	analyzer := gaps.NewAnalyzer(logger)
	calculator := profile.NewCalculator(logger)
	engine := recommend.NewEngine(store, scorer, matcher, analyzer, nil, logger)

	bus := notify.NewBus(logger)
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	handler := api.NewHandler(store, engine, calculator, analyzer, enricher, bus, logger)
	router := api.NewRouter(handler, &cfg.API)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddStorageService(services.NewStoreKeepaliveService(store, 0, logger))

	sweepers := map[string]services.Sweeper{
		"recommend-responses": services.SweeperFunc(engine.SweepResponses),
	}
	if memoryCache != nil {
		sweepers["enrichment-records"] = memoryCache
	}
	tree.AddEnrichmentService(services.NewCacheJanitorService(sweepers, 0, logger))

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))

	errCh := tree.ServeBackground(ctx)
	logging.Info().Str("addr", server.Addr).Msg("Server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		cancel()
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree stopped with error")
		}
	case err := <-errCh:
		logging.Error().Err(err).Msg("Supervisor tree stopped unexpectedly")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	logging.Info().Msg("Shutdown complete")
}

// buildSources constructs a breaker-protected client per enabled source.
func buildSources(cfg *config.Config, logger zerolog.Logger) []enrich.Source {
	enabled := cfg.Enrichment.EnabledSources()
	sources := make([]enrich.Source, 0, len(enabled))
	for _, sc := range enabled {
		sources = append(sources, enrich.NewHTTPSource(enrich.HTTPSourceConfig{
			Info: enrich.SourceInfo{
				Name:              sc.Name,
				Reliability:       sc.Reliability,
				DataQuality:       sc.DataQuality,
				RequestsPerMinute: sc.RequestsPerMinute,
			},
			BaseURL: sc.BaseURL,
			APIKey:  sc.APIKey,
			Timeout: cfg.Enrichment.SourceTimeout,
		}, logger))
	}
	return sources
}
