// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package models

import (
	"fmt"
	"strings"
)

// WineQuery identifies a wine for external enrichment. Any subset of the
// fields may be set; a query with no identifying fields fails fast before
// any network call.
type WineQuery struct {
	Name     string   `json:"name,omitempty"`
	Producer string   `json:"producer,omitempty"`
	Vintage  int      `json:"vintage,omitempty"`
	Region   string   `json:"region,omitempty"`
	Varietal string   `json:"varietal,omitempty"`
	Type     WineType `json:"type,omitempty"`
}

// IsEmpty reports whether the query carries no identifying fields.
func (q WineQuery) IsEmpty() bool {
	return q.Name == "" && q.Producer == "" && q.Vintage == 0 &&
		q.Region == "" && q.Varietal == "" && q.Type == ""
}

// CacheKey returns the normalized cache key for the query: lower-cased
// name, producer and region plus the vintage. Two queries differing only
// in case or surrounding whitespace share a key.
func (q WineQuery) CacheKey() string {
	norm := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return fmt.Sprintf("%s|%s|%s|%d", norm(q.Name), norm(q.Producer), norm(q.Region), q.Vintage)
}

// ProfessionalRating is one critic or publication score.
type ProfessionalRating struct {
	// Source is the publication, e.g. "Wine Spectator".
	Source string `json:"source"`

	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`

	Reviewer string `json:"reviewer,omitempty"`
	Year     int    `json:"year,omitempty"`
}

// ServingTemperature is the recommended serving range in Celsius.
type ServingTemperature struct {
	MinC float64 `json:"min_c"`
	MaxC float64 `json:"max_c"`
}

// SourceRecord is one external provider's answer for a wine query, before
// merging. Confidence is the provider's own certainty about the match.
type SourceRecord struct {
	// SourceName identifies the provider that produced the record.
	SourceName string `json:"source_name"`

	// Confidence is the provider's match confidence in [0,1].
	Confidence float64 `json:"confidence"`

	ExternalID string `json:"external_id,omitempty"`

	TastingNotes   string              `json:"tasting_notes,omitempty"`
	AlcoholContent float64             `json:"alcohol_content,omitempty"`
	ServingTemp    *ServingTemperature `json:"serving_temperature,omitempty"`

	// DecantingMinutes is the suggested decanting time.
	DecantingMinutes int `json:"decanting_minutes,omitempty"`

	// AgingPotential is a free-form aging note, e.g. "drink by 2032".
	AgingPotential string `json:"aging_potential,omitempty"`

	ProfessionalRatings []ProfessionalRating `json:"professional_ratings,omitempty"`
}

// ExternalWineRecord is the merged, confidence-weighted result of querying
// multiple providers. List-valued fields hold the union across sources;
// scalar fields come from the single highest-confidence source. Overall
// confidence is a reliability/quality-weighted average, not a simple mean.
type ExternalWineRecord struct {
	ExternalID string `json:"external_id"`

	TastingNotes     string              `json:"tasting_notes,omitempty"`
	AlcoholContent   float64             `json:"alcohol_content,omitempty"`
	ServingTemp      *ServingTemperature `json:"serving_temperature,omitempty"`
	DecantingMinutes int                 `json:"decanting_minutes,omitempty"`
	AgingPotential   string              `json:"aging_potential,omitempty"`

	ProfessionalRatings []ProfessionalRating `json:"professional_ratings,omitempty"`

	// Confidence is the merged overall confidence in [0,1].
	Confidence float64 `json:"confidence"`

	// Sources lists the providers that contributed, in response order.
	Sources []string `json:"sources"`

	// Errors lists non-fatal per-source failures (timeout, rate limit,
	// invalid payload). A record with errors is still usable.
	Errors []string `json:"errors,omitempty"`
}
