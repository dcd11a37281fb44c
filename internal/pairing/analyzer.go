// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package pairing

import (
	"strings"

	"github.com/tomtom215/vinoteca/internal/models"
)

// AnalyzeOptions carries the optional structured hints a caller may supply
// alongside the free-text description.
type AnalyzeOptions struct {
	Cuisine string

	// Method overrides keyword inference when set to a known method.
	Method models.CookingMethod

	// SpiceLevel is none, mild, medium or hot; empty means none.
	SpiceLevel string

	// Richness is light, medium or rich; empty means light.
	Richness string
}

// Analyze classifies a free-text food description into the closed category
// taxonomy, infers the cooking method when none is given, and buckets the
// dish's overall intensity. It is a pure function of its inputs.
func Analyze(description string, opts AnalyzeOptions) models.FoodAnalysis {
	text := strings.ToLower(description)

	return models.FoodAnalysis{
		Description:      description,
		Category:         classify(text),
		Intensity:        bucketIntensity(intensityScore(text, opts)),
		CookingImpact:    cookingImpact(text, opts.Method),
		FlavorComponents: detectFlavors(text),
		// Regional rules are keyed lower-case; normalize here so every
		// caller gets the same match behavior.
		Cuisine: strings.ToLower(strings.TrimSpace(opts.Cuisine)),
	}
}

// classify returns the first category with a keyword hit, else general.
func classify(text string) models.FoodCategory {
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(text, keyword) {
				return category
			}
		}
	}
	return models.FoodGeneral
}

// cookingImpact resolves the method impact, inferring the method from the
// text when the caller did not supply one.
func cookingImpact(text string, method models.CookingMethod) models.CookingImpact {
	if impact, ok := cookingImpacts[method]; ok && method != models.CookingUnknown && method != "" {
		return impact
	}

	for _, mk := range methodKeywords {
		if strings.Contains(text, mk.keyword) {
			return cookingImpacts[mk.method]
		}
	}
	return cookingImpacts[models.CookingUnknown]
}

// intensityScore starts at 1 and adds the spice and richness offsets plus
// keyword adjustments.
func intensityScore(text string, opts AnalyzeOptions) int {
	score := 1
	score += spiceOffset[opts.SpiceLevel]
	score += richnessOffset[opts.Richness]

	for _, ik := range intensityKeywords {
		if strings.Contains(text, ik.keyword) {
			score += ik.delta
		}
	}
	return score
}

// bucketIntensity maps the numeric score to the intensity enum.
func bucketIntensity(score int) models.FoodIntensity {
	switch {
	case score <= 2:
		return models.IntensityLight
	case score <= 4:
		return models.IntensityMedium
	default:
		return models.IntensityIntense
	}
}

// detectFlavors surfaces recognized flavor notes found in the text.
func detectFlavors(text string) []string {
	var found []string
	for _, f := range flavorKeywords {
		if strings.Contains(text, f) {
			found = append(found, f)
		}
	}
	return found
}
