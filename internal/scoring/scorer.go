// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package scoring matches a single wine against a taste profile and
// situational context, producing a confidence score in [0,1] and a
// human-readable reasoning fragment.
//
// Scoring is pure and synchronous: each call receives its own inputs and
// returns a new result, so the scorer is safe for concurrent use without
// locking. The weighting constants are tuned values carried for behavioral
// compatibility, not derived weights.
package scoring

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vinoteca/internal/models"
)

const (
	// DefaultBase is the starting score when no pairing rule supplies its
	// own base confidence.
	DefaultBase = 0.5

	regionBonus   = 0.15
	varietalBonus = 0.15
	urgencyWeight = 0.08
	budgetWeight  = 0.1
	noveltyBonus  = 0.1
)

// Input bundles everything needed to score one inventory wine.
type Input struct {
	Wine    models.Wine
	Profile *models.TasteProfile

	// Context carries situational constraints; nil means none.
	Context *models.RecommendationContext

	// Urgency is the wine's drinking-window urgency, zero if unknown.
	Urgency float64
}

// Result is one scored match.
type Result struct {
	// Score is the final confidence in [0,1].
	Score float64

	// Reasoning explains the score in user-facing language.
	Reasoning string
}

// Scorer evaluates wines against taste profiles.
type Scorer struct {
	logger zerolog.Logger
}

// NewScorer creates a preference scorer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewScorer(logger zerolog.Logger) *Scorer {
	return &Scorer{
		logger: logger.With().Str("component", "scoring").Logger(),
	}
}

// Score evaluates one inventory wine from the default base confidence.
func (s *Scorer) Score(in Input) Result {
	return s.ScoreWithBase(DefaultBase, in)
}

// ScoreWithBase evaluates one inventory wine starting from an explicit base
// confidence, e.g. a matched pairing rule's stated confidence. Bonuses are
// additive and individually capped; the final clamp to 1.0 is the
// authoritative invariant.
func (s *Scorer) ScoreWithBase(base float64, in Input) Result {
	score := base
	var reasons []string

	if in.Wine.Region != "" && in.Profile.PrefersRegion(in.Wine.Region) {
		score += regionBonus
		reasons = append(reasons, fmt.Sprintf("%s is one of your preferred regions", in.Wine.Region))
	}

	if len(in.Wine.Varietals) > 0 && in.Profile.PrefersAnyVarietal(in.Wine.Varietals) {
		score += varietalBonus
		reasons = append(reasons, "made from varietals you enjoy")
	}

	score += in.Urgency * urgencyWeight
	if in.Urgency >= 0.8 {
		reasons = append(reasons, "its drinking window makes it a wine to open soon")
	}

	if bonus, reason := occasionBonus(in.Context, in.Wine.Type); bonus > 0 {
		score += bonus
		reasons = append(reasons, reason)
	}

	if bonus, ok := budgetFit(in.Wine.PurchasePrice, priceRangeFor(in.Context, in.Profile)); ok && bonus > 0 {
		score += bonus
		reasons = append(reasons, "fits your usual budget")
	}

	s.logger.Trace().
		Str("wine", in.Wine.Name).
		Float64("base", base).
		Float64("score", score).
		Msg("wine scored")

	return Result{
		Score:     clamp01(score),
		Reasoning: joinReasons(reasons),
	}
}

// ScorePurchase evaluates a suggested purchase. Drinking-window urgency does
// not apply to a bottle the user does not hold yet; novelty takes its place:
// fillsGap marks a suggestion that expands the collection into a preferred
// but unheld region, varietal or type.
func (s *Scorer) ScorePurchase(sw models.SuggestedWine, profile *models.TasteProfile, ctx *models.RecommendationContext, fillsGap bool) Result {
	score := DefaultBase
	var reasons []string

	if sw.Region != "" && profile.PrefersRegion(sw.Region) {
		score += regionBonus
		reasons = append(reasons, fmt.Sprintf("%s is one of your preferred regions", sw.Region))
	}

	if len(sw.Varietals) > 0 && profile.PrefersAnyVarietal(sw.Varietals) {
		score += varietalBonus
		reasons = append(reasons, "made from varietals you enjoy")
	}

	if fillsGap {
		score += noveltyBonus
		reasons = append(reasons, "expands your collection into territory you have not explored")
	}

	if bonus, reason := occasionBonus(ctx, sw.Type); bonus > 0 {
		score += bonus
		reasons = append(reasons, reason)
	}

	if bonus, ok := budgetFit(sw.EstimatedPrice, priceRangeFor(ctx, profile)); ok && bonus > 0 {
		score += bonus
		reasons = append(reasons, "fits your usual budget")
	}

	return Result{
		Score:     clamp01(score),
		Reasoning: joinReasons(reasons),
	}
}

// priceRangeFor picks the price range to judge budget fit against: an
// explicit context range wins over the profile's general one.
func priceRangeFor(ctx *models.RecommendationContext, profile *models.TasteProfile) models.PriceRange {
	if ctx != nil && ctx.PriceRange != nil {
		return *ctx.PriceRange
	}
	return profile.General.PriceRange
}

// budgetFit computes the scaled budget-fit bonus. It applies only when both
// a price and a usable price range are known; ok is false otherwise.
func budgetFit(price float64, pr models.PriceRange) (bonus float64, ok bool) {
	if price <= 0 || pr.IsZero() || pr.Width() <= 0 {
		return 0, false
	}

	fit := 1 - abs(price-pr.Midpoint())/pr.Width()
	if fit < 0 {
		fit = 0
	}
	return fit * budgetWeight, true
}

// occasionBonus looks up the occasion-to-wine-type affinity, returning a
// zero bonus when no occasion is set or the pair has no affinity.
func occasionBonus(ctx *models.RecommendationContext, t models.WineType) (float64, string) {
	if ctx == nil || ctx.Occasion == "" {
		return 0, ""
	}
	affinity, ok := occasionAffinity[ctx.Occasion]
	if !ok {
		return 0, ""
	}
	bonus, ok := affinity[t]
	if !ok {
		return 0, ""
	}
	return bonus, fmt.Sprintf("a good match for a %s occasion", strings.ReplaceAll(ctx.Occasion, "_", " "))
}

// joinReasons renders the collected fragments as one reasoning string.
func joinReasons(reasons []string) string {
	if len(reasons) == 0 {
		return "a reasonable match for your taste profile"
	}
	return strings.Join(reasons, "; ")
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
