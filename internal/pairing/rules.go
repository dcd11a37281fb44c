// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package pairing

import "github.com/tomtom215/vinoteca/internal/models"

// Rule is one static pairing association between a food category and the
// wine types that suit it, with a base confidence and a reasoning template.
type Rule struct {
	Name         string
	FoodCategory models.FoodCategory
	WineTypes    []models.WineType
	Confidence   float64
	Reasoning    string
}

// Allows reports whether the rule admits the given wine type.
func (r Rule) Allows(t models.WineType) bool {
	for _, wt := range r.WineTypes {
		if wt == t {
			return true
		}
	}
	return false
}

// classicRules is the fixed classic-pairing table. Every rule whose category
// matches the analysis is applied; a category may carry several rules.
var classicRules = []Rule{
	{
		Name:         "tannin-meets-protein",
		FoodCategory: models.FoodRedMeat,
		WineTypes:    []models.WineType{models.WineTypeRed},
		Confidence:   0.9,
		Reasoning:    "tannic reds soften against the protein and fat of red meat",
	},
	{
		Name:         "crisp-white-with-white-fish",
		FoodCategory: models.FoodWhiteFish,
		WineTypes:    []models.WineType{models.WineTypeWhite, models.WineTypeSparkling},
		Confidence:   0.85,
		Reasoning:    "bright acidity lifts delicate white fish without overpowering it",
	},
	{
		Name:         "salmon-bridges-color",
		FoodCategory: models.FoodSalmon,
		WineTypes:    []models.WineType{models.WineTypeRose, models.WineTypeRed, models.WineTypeWhite},
		Confidence:   0.8,
		Reasoning:    "salmon's richness carries rosé or a light red as happily as a full white",
	},
	{
		Name:         "versatile-poultry",
		FoodCategory: models.FoodPoultry,
		WineTypes:    []models.WineType{models.WineTypeWhite, models.WineTypeRed},
		Confidence:   0.75,
		Reasoning:    "poultry is a flexible canvas for medium-bodied whites and lighter reds",
	},
	{
		Name:         "pork-likes-fruit",
		FoodCategory: models.FoodPork,
		WineTypes:    []models.WineType{models.WineTypeRed, models.WineTypeWhite, models.WineTypeRose},
		Confidence:   0.75,
		Reasoning:    "pork's sweetness echoes fruity reds and off-dry whites",
	},
	{
		Name:         "cheese-board-classics",
		FoodCategory: models.FoodCheese,
		WineTypes:    []models.WineType{models.WineTypeRed, models.WineTypeWhite, models.WineTypeFortified},
		Confidence:   0.7,
		Reasoning:    "cheese flatters most styles; fortified wines shine with aged and blue cheeses",
	},
	{
		Name:         "pasta-follows-the-sauce",
		FoodCategory: models.FoodPasta,
		WineTypes:    []models.WineType{models.WineTypeRed, models.WineTypeWhite},
		Confidence:   0.7,
		Reasoning:    "match the sauce: tomato and meat lean red, cream and seafood lean white",
	},
	{
		Name:         "cool-the-heat",
		FoodCategory: models.FoodSpicy,
		WineTypes:    []models.WineType{models.WineTypeWhite, models.WineTypeRose, models.WineTypeSparkling},
		Confidence:   0.8,
		Reasoning:    "a touch of sweetness and low alcohol tame chili heat",
	},
	{
		Name:         "sweeter-than-the-dish",
		FoodCategory: models.FoodDessert,
		WineTypes:    []models.WineType{models.WineTypeDessert, models.WineTypeFortified, models.WineTypeSparkling},
		Confidence:   0.85,
		Reasoning:    "the wine should be at least as sweet as the dessert it accompanies",
	},
	{
		Name:         "safe-all-rounder",
		FoodCategory: models.FoodGeneral,
		WineTypes:    []models.WineType{models.WineTypeSparkling, models.WineTypeWhite, models.WineTypeRose},
		Confidence:   0.6,
		Reasoning:    "sparkling and crisp whites are the most forgiving companions for mixed plates",
	},
}

// regionalRules adds cuisine-specific associations on top of the classic
// table. Keyed by lower-case cuisine tag.
var regionalRules = map[string][]Rule{
	"italian": {
		{
			Name:         "italian-table",
			FoodCategory: models.FoodPasta,
			WineTypes:    []models.WineType{models.WineTypeRed},
			Confidence:   0.8,
			Reasoning:    "Italian acidity-driven reds are built for tomato and olive oil",
		},
	},
	"french": {
		{
			Name:         "french-bistro",
			FoodCategory: models.FoodCheese,
			WineTypes:    []models.WineType{models.WineTypeWhite, models.WineTypeRed},
			Confidence:   0.75,
			Reasoning:    "regional French cheeses grew up alongside their local wines",
		},
	},
	"japanese": {
		{
			Name:         "umami-and-bubbles",
			FoodCategory: models.FoodWhiteFish,
			WineTypes:    []models.WineType{models.WineTypeSparkling, models.WineTypeWhite},
			Confidence:   0.8,
			Reasoning:    "clean sparkling wine mirrors the precision of raw fish and umami",
		},
	},
	"indian": {
		{
			Name:         "aromatic-heat-relief",
			FoodCategory: models.FoodSpicy,
			WineTypes:    []models.WineType{models.WineTypeWhite, models.WineTypeRose},
			Confidence:   0.8,
			Reasoning:    "aromatic off-dry whites stand up to layered spice",
		},
	},
	"spanish": {
		{
			Name:         "iberian-classics",
			FoodCategory: models.FoodPork,
			WineTypes:    []models.WineType{models.WineTypeRed, models.WineTypeFortified},
			Confidence:   0.8,
			Reasoning:    "cured Iberian pork is the traditional company of Tempranillo and dry sherry",
		},
	},
}

// rulesFor collects every rule matching the analysis: classic rules for the
// category plus regional rules for the cuisine, when both line up.
func rulesFor(analysis models.FoodAnalysis) []Rule {
	var matched []Rule
	for _, r := range classicRules {
		if r.FoodCategory == analysis.Category {
			matched = append(matched, r)
		}
	}
	if analysis.Cuisine != "" {
		for _, r := range regionalRules[analysis.Cuisine] {
			if r.FoodCategory == analysis.Category {
				matched = append(matched, r)
			}
		}
	}
	return matched
}
