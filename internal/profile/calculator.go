// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package profile converts raw questionnaire answers into a structured
// taste profile with a confidence score.
//
// The calculator is a pure function of the answer set: identical answers
// (timestamps aside) always produce an identical profile, and a profile may
// be recomputed idempotently at any time. Missing answers fall back to
// documented defaults so the resulting profile is always fully populated.
// Answer validation is a separate pure function (Validate/ValidatePartial)
// so callers can reject bad input without computing anything.
package profile

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vinoteca/internal/models"
)

// Weighting constants for the confidence score. Tuned values carried for
// behavioral compatibility; treat as configuration, not derivation.
const (
	optionalBonusWeight  = 0.2
	consistencyBonusCap  = 0.1
	consistencyBonusEach = 0.05
	defaultPairingWeight = 0.5
	defaultCurrency      = "USD"
)

// Calculator builds taste profiles from questionnaire answers.
type Calculator struct {
	logger zerolog.Logger
}

// NewCalculator creates a profile calculator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCalculator(logger zerolog.Logger) *Calculator {
	return &Calculator{
		logger: logger.With().Str("component", "profile").Logger(),
	}
}

// Calculate derives a taste profile from the given answers. Unknown
// question IDs and out-of-bounds values fail immediately; missing answers
// (required or optional) only lower the confidence score.
func (c *Calculator) Calculate(userID string, answers []Answer) (*models.TasteProfile, error) {
	if err := ValidatePartial(answers); err != nil {
		return nil, fmt.Errorf("validate answers: %w", err)
	}

	byID := indexAnswers(answers)

	typesTried := asStrings(valueOf(byID, QWineTypesTried))
	experience := deriveExperience(byID, typesTried)
	intensity := stringOf(byID, QFlavorIntensity, "moderate")
	body := bodyOf(byID)
	sweetness := sweetnessOf(byID)

	p := &models.TasteProfile{
		UserID:          userID,
		ExperienceLevel: experience,
		Red:             buildFlavor(redIntensityAxes[intensity], redAcidity, 2, body),
		White:           buildFlavor(whiteIntensityAxes[intensity], whiteAcidity, sweetness, body),
		Sparkling:       buildFlavor(sparklingIntensityAxes[intensity], sparklingAcidity, sweetness, body),

		PreferredVarietals:      varietalsFor(typesTried),
		PreferredRegions:        regionsFor(asStrings(valueOf(byID, QRegionInterest))),
		DislikedCharacteristics: asStrings(valueOf(byID, QDisliked)),

		General: models.GeneralPreferences{
			PriceRange:        priceRangeOf(byID),
			Occasions:         asStrings(valueOf(byID, QOccasions)),
			FoodPairingWeight: pairingWeightOf(byID),
		},
	}

	p.Confidence = confidenceScore(byID, intensity, body, experience, typesTried)

	c.logger.Debug().
		Str("user_id", userID).
		Int("answers", len(answers)).
		Str("experience", string(experience)).
		Float64("confidence", p.Confidence).
		Msg("taste profile calculated")

	return p, nil
}

// indexAnswers maps question ID to the latest submitted value.
func indexAnswers(answers []Answer) map[string]any {
	byID := make(map[string]any, len(answers))
	for _, a := range answers {
		byID[a.QuestionID] = a.Value
	}
	return byID
}

func valueOf(byID map[string]any, id string) any {
	return byID[id]
}

// stringOf returns a single-choice answer or the fallback.
func stringOf(byID map[string]any, id, fallback string) string {
	if s, ok := byID[id].(string); ok {
		return s
	}
	return fallback
}

// deriveExperience reads the explicit experience answer when present,
// otherwise infers it: fewer than 2 styles tried means beginner, 5 or more
// styles plus weekly-or-better frequency means advanced, anything else
// intermediate.
func deriveExperience(byID map[string]any, typesTried []string) models.ExperienceLevel {
	if s, ok := byID[QExperienceLevel].(string); ok {
		level := models.ExperienceLevel(s)
		if level.Valid() {
			return level
		}
	}

	frequency := stringOf(byID, QDrinkingFrequency, "")
	weeklyOrMore := frequency == "daily" || frequency == "weekly"

	distinct := make(map[string]struct{}, len(typesTried))
	for _, t := range typesTried {
		distinct[t] = struct{}{}
	}

	switch {
	case len(distinct) < 2:
		return models.ExperienceBeginner
	case len(distinct) >= 5 && weeklyOrMore:
		return models.ExperienceAdvanced
	default:
		return models.ExperienceIntermediate
	}
}

// buildFlavor assembles one color's sub-profile from its intensity tuple.
func buildFlavor(axes flavorAxes, acidity, sweetness float64, body models.BodyStyle) models.FlavorProfile {
	return models.FlavorProfile{
		Fruitiness: axes.fruitiness,
		Earthiness: axes.earthiness,
		Oakiness:   axes.oakiness,
		Acidity:    acidity,
		Tannins:    axes.tannins,
		Sweetness:  sweetness,
		Body:       body,
	}
}

func bodyOf(byID map[string]any) models.BodyStyle {
	switch stringOf(byID, QBodyPreference, "medium") {
	case "light":
		return models.BodyLight
	case "full":
		return models.BodyFull
	default:
		return models.BodyMedium
	}
}

func sweetnessOf(byID map[string]any) float64 {
	if s, ok := byID[QSweetness].(string); ok {
		if v, found := sweetnessByPreference[s]; found {
			return v
		}
	}
	return defaultSweetness
}

// varietalsFor expands wine-types-tried choices through the lookup table.
// Duplicates across choices are kept on purpose: repetition signals
// strength of interest downstream.
func varietalsFor(typesTried []string) []string {
	var out []string
	for _, style := range typesTried {
		out = append(out, varietalsByStyleTried[style]...)
	}
	return out
}

func regionsFor(countries []string) []string {
	var out []string
	for _, country := range countries {
		out = append(out, regionsByCountryInterest[country]...)
	}
	return out
}

func priceRangeOf(byID map[string]any) models.PriceRange {
	obj, ok := byID[QPriceRange].(map[string]any)
	if !ok {
		return models.PriceRange{Min: 15, Max: 30, Currency: defaultCurrency}
	}

	minimum, _ := asFloat(obj["min"])
	maximum, _ := asFloat(obj["max"])
	return models.PriceRange{Min: minimum, Max: maximum, Currency: defaultCurrency}
}

func pairingWeightOf(byID map[string]any) float64 {
	if v, ok := asFloat(byID[QPairingImportance]); ok {
		return v / 10
	}
	return defaultPairingWeight
}

// confidenceScore is the completeness ratio over required questions, plus
// an optional-answer bonus scaled by optionalBonusWeight, plus a
// consistency bonus capped at consistencyBonusCap, clamped to [0,1].
func confidenceScore(byID map[string]any, intensity string, body models.BodyStyle, experience models.ExperienceLevel, typesTried []string) float64 {
	var requiredAnswered, optionalAnswered int
	for _, q := range Questions {
		if _, ok := byID[q.ID]; !ok {
			continue
		}
		if q.Required {
			requiredAnswered++
		} else {
			optionalAnswered++
		}
	}

	score := float64(requiredAnswered) / float64(RequiredCount())
	score += float64(optionalAnswered) / float64(OptionalCount()) * optionalBonusWeight
	score += consistencyBonus(byID, intensity, body, experience, typesTried)

	return clamp01(score)
}

// consistencyBonus awards consistencyBonusEach when flavor intensity aligns
// with body preference, and again when the experience level aligns with the
// breadth of styles tried. Capped at consistencyBonusCap.
func consistencyBonus(byID map[string]any, intensity string, body models.BodyStyle, experience models.ExperienceLevel, typesTried []string) float64 {
	bonus := 0.0

	_, intensityAnswered := byID[QFlavorIntensity]
	_, bodyAnswered := byID[QBodyPreference]
	if intensityAnswered && bodyAnswered && bodyByIntensity[intensity] == body {
		bonus += consistencyBonusEach
	}

	distinct := make(map[string]struct{}, len(typesTried))
	for _, t := range typesTried {
		distinct[t] = struct{}{}
	}
	breadth := len(distinct)

	aligned := false
	switch experience {
	case models.ExperienceBeginner:
		aligned = breadth <= 2
	case models.ExperienceIntermediate:
		aligned = breadth >= 2 && breadth <= 4
	case models.ExperienceAdvanced:
		aligned = breadth >= 5
	}
	if aligned {
		bonus += consistencyBonusEach
	}

	if bonus > consistencyBonusCap {
		bonus = consistencyBonusCap
	}
	return bonus
}

// clamp01 clamps a score to [0,1].
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
