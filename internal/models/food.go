// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package models

// FoodCategory is the closed food taxonomy used by pairing rules.
// Values are wire-stable.
type FoodCategory string

const (
	FoodRedMeat   FoodCategory = "red_meat"
	FoodWhiteFish FoodCategory = "white_fish"
	FoodSalmon    FoodCategory = "salmon"
	FoodPoultry   FoodCategory = "poultry"
	FoodPork      FoodCategory = "pork"
	FoodCheese    FoodCategory = "cheese"
	FoodPasta     FoodCategory = "pasta"
	FoodSpicy     FoodCategory = "spicy_food"
	FoodDessert   FoodCategory = "dessert"
	FoodGeneral   FoodCategory = "general"
)

// FoodIntensity buckets the overall intensity of a dish.
type FoodIntensity string

const (
	IntensityLight   FoodIntensity = "light"
	IntensityMedium  FoodIntensity = "medium"
	IntensityIntense FoodIntensity = "intense"
)

// CookingMethod is the recognized preparation taxonomy.
type CookingMethod string

const (
	CookingGrilled CookingMethod = "grilled"
	CookingRoasted CookingMethod = "roasted"
	CookingFried   CookingMethod = "fried"
	CookingSteamed CookingMethod = "steamed"
	CookingBraised CookingMethod = "braised"
	CookingRaw     CookingMethod = "raw"
	CookingUnknown CookingMethod = "unknown"
)

// CookingImpact describes how a preparation method shifts a dish's
// character and the wine style it implies.
type CookingImpact struct {
	Method CookingMethod `json:"method"`

	// Intensity is low, medium or high.
	Intensity string `json:"intensity"`

	// Flavors are the flavor tags the method contributes, e.g. "smoky".
	Flavors []string `json:"flavors,omitempty"`

	// WineStyleHint is the implied style, e.g. "bold reds".
	WineStyleHint string `json:"wine_style_hint,omitempty"`
}

// FoodAnalysis is the derived, per-request classification of a food
// description. It is recomputed for every pairing request and never
// persisted.
type FoodAnalysis struct {
	// Description is the original free-text input.
	Description string `json:"description"`

	Category FoodCategory `json:"category"`

	Intensity FoodIntensity `json:"intensity"`

	CookingImpact CookingImpact `json:"cooking_impact"`

	// FlavorComponents are free-form flavor notes detected in the text.
	FlavorComponents []string `json:"flavor_components,omitempty"`

	// Cuisine is the caller-supplied cuisine, if any.
	Cuisine string `json:"cuisine,omitempty"`
}
