// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/vinoteca/internal/config"
)

// Router wires handlers to routes.
type Router struct {
	handler *Handler
	cfg     *config.APIConfig
}

// NewRouter creates a router over the given handler.
func NewRouter(handler *Handler, cfg *config.APIConfig) *Router {
	return &Router{handler: handler, cfg: cfg}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	// CORS must be global to handle OPTIONS preflight.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints stay outside the rate limit so probes never get
	// throttled by dashboard traffic.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(router.cfg.RateLimitRequests, router.cfg.RateLimitWindow))
		r.Use(metricsMiddleware)

		r.Route("/profile", func(r chi.Router) {
			r.Get("/questions", router.handler.ProfileQuestions)
			r.Post("/calculate", router.handler.ProfileCalculate)
			r.Post("/validate", router.handler.ProfileValidate)
		})

		r.Post("/recommendations", router.handler.Recommend)

		r.Route("/cellar/{ownerID}", func(r chi.Router) {
			r.Route("/wines", func(r chi.Router) {
				r.Get("/", router.handler.CellarList)
				r.Post("/", router.handler.CellarCreate)
				r.Route("/{wineID}", func(r chi.Router) {
					r.Get("/", router.handler.CellarGet)
					r.Put("/", router.handler.CellarUpdate)
					r.Delete("/", router.handler.CellarDelete)
					r.Post("/consume", router.handler.CellarConsume)
				})
			})
			r.Post("/gaps", router.handler.CellarGaps)
		})

		r.Get("/enrichment/lookup", router.handler.EnrichmentLookup)
	})

	// Prometheus metrics, scraped internally; not part of the public API.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
