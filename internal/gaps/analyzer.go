// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package gaps compares a taste profile against held inventory to surface
// preferred regions, varietals and types the cellar does not yet cover.
// The result feeds purchase recommendations so suggestions expand breadth
// rather than duplicate existing holdings.
package gaps

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/vinoteca/internal/models"
)

// underrepresentedThreshold is the bottle count below which a core wine
// type counts as underrepresented.
const underrepresentedThreshold = 1

// Report lists what the cellar is missing relative to the profile. Each
// list preserves the profile's order of first mention and is de-duplicated.
type Report struct {
	MissingRegions   []string `json:"missing_regions,omitempty"`
	MissingVarietals []string `json:"missing_varietals,omitempty"`

	// MissingTypes are preferred wine types absent from the inventory,
	// derived from the varietal styles the profile leans toward.
	MissingTypes []models.WineType `json:"missing_types,omitempty"`

	// UnderrepresentedTypes are core types held below the presence
	// threshold, regardless of stated preference.
	UnderrepresentedTypes []models.WineType `json:"underrepresented_types,omitempty"`
}

// IsEmpty reports whether no gap was found.
func (r Report) IsEmpty() bool {
	return len(r.MissingRegions) == 0 &&
		len(r.MissingVarietals) == 0 &&
		len(r.MissingTypes) == 0 &&
		len(r.UnderrepresentedTypes) == 0
}

// Analyzer computes cellar gap reports.
type Analyzer struct {
	logger zerolog.Logger
}

// NewAnalyzer creates a gap analyzer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAnalyzer(logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		logger: logger.With().Str("component", "gaps").Logger(),
	}
}

// Analyze computes preferred-minus-observed set differences over the
// in-stock inventory. Out-of-stock entries do not count as held.
func (a *Analyzer) Analyze(profile *models.TasteProfile, inventory []models.Wine) Report {
	heldRegions := make(map[string]bool)
	heldVarietals := make(map[string]bool)
	typeCounts := make(map[models.WineType]int)

	for _, w := range inventory {
		if !w.InStock() {
			continue
		}
		if w.Region != "" {
			heldRegions[w.Region] = true
		}
		for _, v := range w.Varietals {
			heldVarietals[v] = true
		}
		typeCounts[w.Type] += w.Quantity
	}

	report := Report{
		MissingRegions:        difference(profile.PreferredRegions, heldRegions),
		MissingVarietals:      difference(profile.PreferredVarietals, heldVarietals),
		UnderrepresentedTypes: underrepresented(typeCounts),
	}
	report.MissingTypes = missingTypes(profile, typeCounts)

	a.logger.Debug().
		Int("missing_regions", len(report.MissingRegions)).
		Int("missing_varietals", len(report.MissingVarietals)).
		Int("underrepresented_types", len(report.UnderrepresentedTypes)).
		Msg("gap analysis complete")

	return report
}

// difference returns preferred entries absent from the held set, keeping
// order of first mention and dropping repeats.
func difference(preferred []string, held map[string]bool) []string {
	var out []string
	seen := make(map[string]bool, len(preferred))
	for _, p := range preferred {
		if held[p] || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// underrepresented returns core types held below the presence threshold.
func underrepresented(typeCounts map[models.WineType]int) []models.WineType {
	var out []models.WineType
	for _, t := range models.CoreWineTypes {
		if typeCounts[t] < underrepresentedThreshold {
			out = append(out, t)
		}
	}
	return out
}

// missingTypes maps the profile's preferred varietal styles to wine types
// and reports those absent from the inventory.
func missingTypes(profile *models.TasteProfile, typeCounts map[models.WineType]int) []models.WineType {
	var out []models.WineType
	for _, t := range preferredTypes(profile) {
		if typeCounts[t] == 0 {
			out = append(out, t)
		}
	}
	return out
}

// preferredTypes derives the wine types a profile leans toward from its
// varietal preferences, falling back to the core types when the profile
// names no varietals at all.
func preferredTypes(profile *models.TasteProfile) []models.WineType {
	if len(profile.PreferredVarietals) == 0 {
		return models.CoreWineTypes
	}

	var out []models.WineType
	seen := make(map[models.WineType]bool)
	for _, v := range profile.PreferredVarietals {
		t, ok := TypeForVarietal(v)
		if !ok || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// TypeForVarietal maps a well-known varietal to the wine type it usually
// produces. Varietals outside the table report ok false.
func TypeForVarietal(varietal string) (models.WineType, bool) {
	t, ok := varietalTypes[varietal]
	return t, ok
}

// varietalTypes maps well-known varietals to the wine type they usually
// produce. Varietals outside the table contribute nothing to type gaps.
var varietalTypes = map[string]models.WineType{
	"Pinot Noir":         models.WineTypeRed,
	"Gamay":              models.WineTypeRed,
	"Sangiovese":         models.WineTypeRed,
	"Cabernet Sauvignon": models.WineTypeRed,
	"Syrah":              models.WineTypeRed,
	"Malbec":             models.WineTypeRed,
	"Tempranillo":        models.WineTypeRed,
	"Grenache":           models.WineTypeRose,
	"Sauvignon Blanc":    models.WineTypeWhite,
	"Pinot Grigio":       models.WineTypeWhite,
	"Albariño":           models.WineTypeWhite,
	"Chardonnay":         models.WineTypeWhite,
	"Viognier":           models.WineTypeWhite,
	"Roussanne":          models.WineTypeWhite,
	"Riesling":           models.WineTypeWhite,
	"Sémillon":           models.WineTypeWhite,
	"Touriga Nacional":   models.WineTypeFortified,
	"Palomino":           models.WineTypeFortified,
}
