// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/vinoteca/internal/inventory"
	"github.com/tomtom215/vinoteca/internal/metrics"
	"github.com/tomtom215/vinoteca/internal/models"
	"github.com/tomtom215/vinoteca/internal/notify"
	"github.com/tomtom215/vinoteca/internal/profile"
)

// wineRequest is the wire form for creating or updating a cellar entry.
type wineRequest struct {
	Name           string                 `json:"name" validate:"required,max=200"`
	Producer       string                 `json:"producer" validate:"max=200"`
	Type           string                 `json:"type" validate:"required,wine_type"`
	Region         string                 `json:"region" validate:"max=200"`
	Country        string                 `json:"country" validate:"max=100"`
	Varietals      []string               `json:"varietals" validate:"max=10,dive,max=100"`
	Vintage        int                    `json:"vintage" validate:"gte=0,lte=2100"`
	Quantity       int                    `json:"quantity" validate:"gte=0"`
	PurchasePrice  float64                `json:"purchase_price" validate:"gte=0"`
	PersonalRating float64                `json:"personal_rating" validate:"gte=0,lte=5"`
	Window         *models.DrinkingWindow `json:"drinking_window"`
}

// toWine converts the DTO into a domain wine for the given owner.
func (req *wineRequest) toWine(ownerID, id string) *models.Wine {
	return &models.Wine{
		ID:             id,
		OwnerID:        ownerID,
		Name:           req.Name,
		Producer:       req.Producer,
		Type:           models.WineType(req.Type),
		Region:         req.Region,
		Country:        req.Country,
		Varietals:      req.Varietals,
		Vintage:        req.Vintage,
		Quantity:       req.Quantity,
		PurchasePrice:  req.PurchasePrice,
		PersonalRating: req.PersonalRating,
		Window:         req.Window,
	}
}

// gapsRequest carries the answer set used to derive the profile the gap
// analysis runs against.
type gapsRequest struct {
	UserID  string           `json:"user_id" validate:"required,max=128"`
	Answers []profile.Answer `json:"answers" validate:"required,min=1"`
}

// CellarList returns the owner's wines, newest first.
func (h *Handler) CellarList(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	wines, err := h.store.WinesByOwner(r.Context(), ownerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to list wines", err)
		return
	}

	bottles := 0
	for _, wine := range wines {
		bottles += wine.Quantity
	}
	metrics.CellarBottles.WithLabelValues(ownerID).Set(float64(bottles))

	respondJSON(w, http.StatusOK, map[string]any{
		"wines":   wines,
		"count":   len(wines),
		"bottles": bottles,
	})
}

// CellarCreate adds a wine to the owner's cellar.
func (h *Handler) CellarCreate(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	var req wineRequest
	if apiErr := decodeBody(r, &req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	wine := req.toWine(ownerID, "")
	if err := h.store.CreateWine(r.Context(), wine); err != nil {
		if errors.Is(err, inventory.ErrInvalidWine) {
			respondError(w, http.StatusBadRequest, "INVALID_WINE", err.Error(), err)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to create wine", err)
		return
	}

	respondJSON(w, http.StatusCreated, wine)
}

// CellarGet returns one wine by ID, scoped to the owner.
func (h *Handler) CellarGet(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	wineID := chi.URLParam(r, "wineID")

	wine, err := h.store.GetWine(r.Context(), ownerID, wineID)
	if err != nil {
		if errors.Is(err, inventory.ErrWineNotFound) {
			respondError(w, http.StatusNotFound, "WINE_NOT_FOUND", "wine not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to load wine", err)
		return
	}

	respondJSON(w, http.StatusOK, wine)
}

// CellarUpdate replaces a wine's mutable fields.
func (h *Handler) CellarUpdate(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	wineID := chi.URLParam(r, "wineID")

	var req wineRequest
	if apiErr := decodeBody(r, &req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	wine := req.toWine(ownerID, wineID)
	if err := h.store.UpdateWine(r.Context(), wine); err != nil {
		if errors.Is(err, inventory.ErrWineNotFound) {
			respondError(w, http.StatusNotFound, "WINE_NOT_FOUND", "wine not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to update wine", err)
		return
	}

	respondJSON(w, http.StatusOK, wine)
}

// CellarDelete removes a wine from the cellar entirely.
func (h *Handler) CellarDelete(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	wineID := chi.URLParam(r, "wineID")

	if err := h.store.DeleteWine(r.Context(), ownerID, wineID); err != nil {
		if errors.Is(err, inventory.ErrWineNotFound) {
			respondError(w, http.StatusNotFound, "WINE_NOT_FOUND", "wine not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to delete wine", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"id": wineID, "deleted": "true"})
}

// CellarConsume records drinking one bottle. The entry survives at zero
// bottles so the tasting history keeps its anchor.
func (h *Handler) CellarConsume(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	wineID := chi.URLParam(r, "wineID")

	remaining, err := h.store.ConsumeBottle(r.Context(), ownerID, wineID)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrWineNotFound):
			respondError(w, http.StatusNotFound, "WINE_NOT_FOUND", "wine not found", nil)
		case errors.Is(err, inventory.ErrNoBottles):
			respondError(w, http.StatusConflict, "NO_BOTTLES", "no bottles left to consume", nil)
		default:
			respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to consume bottle", err)
		}
		return
	}

	if h.bus != nil {
		h.bus.PublishBottleConsumed(notify.BottleConsumed{
			OwnerID:    ownerID,
			WineID:     wineID,
			Remaining:  remaining,
			OccurredAt: time.Now().UTC(),
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"id":        wineID,
		"remaining": remaining,
	})
}

// CellarGaps runs collection gap analysis for the owner's cellar against
// a profile derived from the submitted answers.
func (h *Handler) CellarGaps(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	var req gapsRequest
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
			respondAPIError(w, http.StatusBadRequest, answerIssuesError(answerErr))
			return
		}
		respondError(w, http.StatusInternalServerError, "PROFILE_FAILED", "failed to calculate profile", err)
		return
	}

	wines, err := h.store.WinesByOwner(r.Context(), ownerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to list wines", err)
		return
	}

	report := h.analyzer.Analyze(tasteProfile, wines)
	respondJSON(w, http.StatusOK, report)
}
