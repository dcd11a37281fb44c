// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/vinoteca/internal/metrics"
	"github.com/tomtom215/vinoteca/internal/models"
	"github.com/tomtom215/vinoteca/internal/notify"
	"github.com/tomtom215/vinoteca/internal/pairing"
	"github.com/tomtom215/vinoteca/internal/profile"
	"github.com/tomtom215/vinoteca/internal/recommend"
)

// recommendationRequest is the wire form of a recommendation ask. The
// answers travel with every request because profiles are derived, not
// stored.
type recommendationRequest struct {
	Type       string             `json:"type" validate:"required,oneof=tonight purchase pairing contextual"`
	UserID     string             `json:"user_id" validate:"required,max=128"`
	Answers    []profile.Answer   `json:"answers" validate:"required,min=1"`
	Context    *contextRequest    `json:"context"`
	Food       string             `json:"food" validate:"max=500"`
	FoodOpts   foodOptionsRequest `json:"food_options"`
	MaxResults int                `json:"max_results" validate:"gte=0,lte=50"`
}

// contextRequest is the wire form of a recommendation context.
type contextRequest struct {
	Occasion      string             `json:"occasion" validate:"occasion"`
	PriceRange    *models.PriceRange `json:"price_range"`
	UrgencyFilter float64            `json:"urgency_filter" validate:"gte=0,lte=1"`
	FoodHint      string             `json:"food_hint" validate:"max=500"`
}

// foodOptionsRequest carries optional hints for dish analysis.
type foodOptionsRequest struct {
	Cuisine    string `json:"cuisine" validate:"max=50"`
	Method     string `json:"method" validate:"max=50"`
	SpiceLevel string `json:"spice_level" validate:"omitempty,oneof=none mild medium hot"`
	Richness   string `json:"richness" validate:"omitempty,oneof=light medium rich"`
}

// toEngineRequest converts the DTO to the engine's request type.
func (req *recommendationRequest) toEngineRequest() recommend.Request {
	out := recommend.Request{
		Type:       recommend.RequestType(req.Type),
		UserID:     req.UserID,
		Food:       req.Food,
		MaxResults: req.MaxResults,
		FoodOptions: pairing.AnalyzeOptions{
			Cuisine:    req.FoodOpts.Cuisine,
			Method:     models.CookingMethod(req.FoodOpts.Method),
			SpiceLevel: req.FoodOpts.SpiceLevel,
			Richness:   req.FoodOpts.Richness,
		},
	}
	if req.Context != nil {
		out.Context = &models.RecommendationContext{
			Occasion:      req.Context.Occasion,
			PriceRange:    req.Context.PriceRange,
			UrgencyFilter: req.Context.UrgencyFilter,
			FoodHint:      req.Context.FoodHint,
		}
	}
	return out
}

// Recommend answers tonight, purchase, pairing and contextual requests.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if apiErr := decodeBody(r, &req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	tasteProfile, err := h.calculator.Calculate(req.UserID, req.Answers)
	if err != nil {
		var answerErr *profile.AnswerValidationError
		if errors.As(err, &answerErr) {
			metrics.RecommendationsTotal.WithLabelValues(req.Type, "rejected").Inc()
			respondAPIError(w, http.StatusBadRequest, answerIssuesError(answerErr))
			return
		}
		metrics.RecommendationsTotal.WithLabelValues(req.Type, "error").Inc()
		respondError(w, http.StatusInternalServerError, "PROFILE_FAILED", "failed to calculate profile", err)
		return
	}

	start := time.Now()
	response, err := h.engine.Recommend(r.Context(), tasteProfile, req.toEngineRequest())
	metrics.RecommendationDuration.WithLabelValues(req.Type).Observe(time.Since(start).Seconds())
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrUnknownRequestType),
			errors.Is(err, recommend.ErrMissingContext),
			errors.Is(err, recommend.ErrMissingFood):
			metrics.RecommendationsTotal.WithLabelValues(req.Type, "rejected").Inc()
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		default:
			metrics.RecommendationsTotal.WithLabelValues(req.Type, "error").Inc()
			respondError(w, http.StatusInternalServerError, "RECOMMENDATION_FAILED", "failed to generate recommendations", err)
		}
		return
	}

	metrics.RecommendationsTotal.WithLabelValues(req.Type, "success").Inc()
	if h.bus != nil {
		h.bus.PublishRecommendationGenerated(notify.RecommendationGenerated{
			RequestID:   response.RequestID,
			UserID:      req.UserID,
			RequestType: req.Type,
			Results:     len(response.Recommendations),
			Confidence:  response.Confidence,
			GeneratedAt: response.GeneratedAt,
		})
	}

	respondJSON(w, http.StatusOK, response)
}
