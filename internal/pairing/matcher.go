// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package pairing turns a free-text food description into a food analysis
// and a ranked set of pairing recommendations drawn from the user's
// inventory. Classification and rule matching are table-driven; candidate
// wines are scored by the preference scorer with each rule's stated
// confidence as the base.
package pairing

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vinoteca/internal/models"
	"github.com/tomtom215/vinoteca/internal/scoring"
)

const (
	// maxWinesPerRule keeps one prolific rule from flooding the output.
	maxWinesPerRule = 2

	// maxPrimary and maxAlternatives bound the response size.
	maxPrimary      = 3
	maxAlternatives = 3

	// adventurousBase is the base confidence of the fallback channel that
	// proposes wines outside the classic rule table.
	adventurousBase = 0.45

	// maxAdventurous bounds the fallback channel's contribution.
	maxAdventurous = 2
)

// Response is a complete pairing answer: the analysis, the top picks, the
// runners-up, and an overall confidence.
type Response struct {
	Analysis models.FoodAnalysis `json:"analysis"`

	Recommendations []models.Recommendation `json:"recommendations"`
	Alternatives    []models.Recommendation `json:"alternatives,omitempty"`

	// Confidence is the best pairing's score, zero when nothing matched.
	Confidence float64 `json:"confidence"`

	Reasoning string `json:"reasoning"`
}

// Matcher generates pairing recommendations from inventory.
type Matcher struct {
	scorer *scoring.Scorer
	logger zerolog.Logger
}

// NewMatcher creates a pairing matcher backed by the given scorer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMatcher(scorer *scoring.Scorer, logger zerolog.Logger) *Matcher {
	return &Matcher{
		scorer: scorer,
		logger: logger.With().Str("component", "pairing").Logger(),
	}
}

// candidate pairs a recommendation with the base confidence that produced
// it, kept for secondary-key ranking.
type candidate struct {
	rec  models.Recommendation
	base float64
}

// Match scores the inventory against every rule matching the analysis and
// returns the ranked pairing response. An empty inventory or zero matching
// rules yields an explicit empty result with confidence 0, never a forced
// recommendation.
func (m *Matcher) Match(analysis models.FoodAnalysis, inventory []models.Wine, profile *models.TasteProfile, ctx *models.RecommendationContext, now time.Time) Response {
	inStock := make([]models.Wine, 0, len(inventory))
	for _, w := range inventory {
		if w.InStock() {
			inStock = append(inStock, w)
		}
	}

	if len(inStock) == 0 {
		return emptyResponse(analysis, "no wines in your cellar to pair with this dish")
	}

	best := make(map[string]candidate)
	for _, rule := range rulesFor(analysis) {
		for _, c := range m.applyRule(rule, analysis, inStock, profile, ctx, now) {
			id, _ := c.rec.Target.WineID()
			if prev, ok := best[id]; !ok || c.rec.Confidence > prev.rec.Confidence {
				best[id] = c
			}
		}
	}

	for _, c := range m.adventurous(analysis, inStock, profile, ctx, now, best) {
		id, _ := c.rec.Target.WineID()
		best[id] = c
	}

	if len(best) == 0 {
		return emptyResponse(analysis, "no suitable pairing found for this dish in your cellar")
	}

	ranked := make([]candidate, 0, len(best))
	for _, c := range best {
		ranked = append(ranked, c)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].rec.Confidence != ranked[j].rec.Confidence {
			return ranked[i].rec.Confidence > ranked[j].rec.Confidence
		}
		return ranked[i].base > ranked[j].base
	})

	primary := take(ranked, 0, maxPrimary)
	alternatives := take(ranked, maxPrimary, maxAlternatives)

	m.logger.Debug().
		Str("category", string(analysis.Category)).
		Int("candidates", len(ranked)).
		Float64("confidence", primary[0].Confidence).
		Msg("pairing matched")

	return Response{
		Analysis:        analysis,
		Recommendations: primary,
		Alternatives:    alternatives,
		Confidence:      primary[0].Confidence,
		Reasoning:       fmt.Sprintf("pairings for %s, judged as %s intensity", analysis.Category, analysis.Intensity),
	}
}

// applyRule scores every admissible wine for one rule, keeping at most
// maxWinesPerRule of the highest scorers.
func (m *Matcher) applyRule(rule Rule, analysis models.FoodAnalysis, inventory []models.Wine, profile *models.TasteProfile, ctx *models.RecommendationContext, now time.Time) []candidate {
	var scored []candidate
	for _, w := range inventory {
		if !rule.Allows(w.Type) {
			continue
		}

		urgency := windowUrgency(&w, now)
		result := m.scorer.ScoreWithBase(rule.Confidence, scoring.Input{
			Wine:    w,
			Profile: profile,
			Context: ctx,
			Urgency: urgency,
		})

		scored = append(scored, candidate{
			base: rule.Confidence,
			rec: models.Recommendation{
				Target:     models.InventoryTarget(w.ID),
				Reasoning:  fmt.Sprintf("%s; %s", rule.Reasoning, result.Reasoning),
				Confidence: result.Score,
				Urgency:    urgency,
				Pairing: &models.PairingExplanation{
					FoodCategory: analysis.Category,
					RuleName:     rule.Name,
					Reasoning:    rule.Reasoning,
				},
			},
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].rec.Confidence > scored[j].rec.Confidence
	})
	if len(scored) > maxWinesPerRule {
		scored = scored[:maxWinesPerRule]
	}
	return scored
}

// adventurous proposes wines the classic rules did not cover, at a reduced
// base confidence. It supplements the classic results, never replaces them.
func (m *Matcher) adventurous(analysis models.FoodAnalysis, inventory []models.Wine, profile *models.TasteProfile, ctx *models.RecommendationContext, now time.Time, covered map[string]candidate) []candidate {
	var scored []candidate
	for _, w := range inventory {
		if _, ok := covered[w.ID]; ok {
			continue
		}

		urgency := windowUrgency(&w, now)
		result := m.scorer.ScoreWithBase(adventurousBase, scoring.Input{
			Wine:    w,
			Profile: profile,
			Context: ctx,
			Urgency: urgency,
		})

		scored = append(scored, candidate{
			base: adventurousBase,
			rec: models.Recommendation{
				Target:     models.InventoryTarget(w.ID),
				Reasoning:  fmt.Sprintf("an adventurous choice outside the classic pairings; %s", result.Reasoning),
				Confidence: result.Score,
				Urgency:    urgency,
				Pairing: &models.PairingExplanation{
					FoodCategory: analysis.Category,
					RuleName:     "adventurous",
					Reasoning:    "a deliberate step outside the classic pairing rules",
				},
			},
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].rec.Confidence > scored[j].rec.Confidence
	})
	if len(scored) > maxAdventurous {
		scored = scored[:maxAdventurous]
	}
	return scored
}

// windowUrgency reads the drinking-window urgency, zero when unknown.
func windowUrgency(w *models.Wine, now time.Time) float64 {
	if w.Window == nil {
		return 0
	}
	return w.Window.StatusAt(now).Urgency()
}

// take slices [offset, offset+n) of the ranked recommendations.
func take(ranked []candidate, offset, n int) []models.Recommendation {
	if offset >= len(ranked) {
		return nil
	}
	end := offset + n
	if end > len(ranked) {
		end = len(ranked)
	}
	out := make([]models.Recommendation, 0, end-offset)
	for _, c := range ranked[offset:end] {
		out = append(out, c.rec)
	}
	return out
}

func emptyResponse(analysis models.FoodAnalysis, reasoning string) Response {
	return Response{
		Analysis:   analysis,
		Confidence: 0,
		Reasoning:  reasoning,
	}
}
