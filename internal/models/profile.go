// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package models

// ExperienceLevel classifies how experienced a taster is.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// Valid reports whether l is a known experience level.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	default:
		return false
	}
}

// BodyStyle is the weight of a wine on the palate.
type BodyStyle string

const (
	BodyLight  BodyStyle = "light"
	BodyMedium BodyStyle = "medium"
	BodyFull   BodyStyle = "full"
)

// FlavorProfile holds the numeric taste axes for one wine color.
// All axes are on a 0-10 scale.
type FlavorProfile struct {
	Fruitiness float64   `json:"fruitiness"`
	Earthiness float64   `json:"earthiness"`
	Oakiness   float64   `json:"oakiness"`
	Acidity    float64   `json:"acidity"`
	Tannins    float64   `json:"tannins"`
	Sweetness  float64   `json:"sweetness"`
	Body       BodyStyle `json:"body"`
}

// GeneralPreferences holds preferences that apply across wine colors.
type GeneralPreferences struct {
	PriceRange PriceRange `json:"price_range"`

	// Occasions lists occasion tags the user drinks for, e.g. "dinner_party".
	Occasions []string `json:"occasions,omitempty"`

	// FoodPairingWeight is how much food pairing matters to the user, in [0,1].
	FoodPairingWeight float64 `json:"food_pairing_weight"`
}

// TasteProfile is the structured preference model derived from a completed
// questionnaire. It is created by the profile calculator and is a pure
// function of the answer set: recomputing from the same answers yields an
// identical profile.
type TasteProfile struct {
	UserID string `json:"user_id,omitempty"`

	ExperienceLevel ExperienceLevel `json:"experience_level"`

	// Red, White and Sparkling are the per-color flavor sub-profiles.
	// Always fully populated; missing answers fall back to defaults.
	Red       FlavorProfile `json:"red_wine_preferences"`
	White     FlavorProfile `json:"white_wine_preferences"`
	Sparkling FlavorProfile `json:"sparkling_wine_preferences"`

	// PreferredRegions and PreferredVarietals may contain repeats;
	// repetition signals strength of interest and is preserved.
	PreferredRegions   []string `json:"preferred_regions,omitempty"`
	PreferredVarietals []string `json:"preferred_varietals,omitempty"`

	// DislikedCharacteristics lists traits to avoid, e.g. "very_tannic".
	DislikedCharacteristics []string `json:"disliked_characteristics,omitempty"`

	General GeneralPreferences `json:"general_preferences"`

	// Confidence is how complete and internally consistent the
	// questionnaire was, in [0,1].
	Confidence float64 `json:"confidence_score"`
}

// PrefersRegion reports whether the region appears in the preferred list.
func (p *TasteProfile) PrefersRegion(region string) bool {
	for _, r := range p.PreferredRegions {
		if r == region {
			return true
		}
	}
	return false
}

// PrefersAnyVarietal reports whether any of the given varietals appears in
// the preferred list.
func (p *TasteProfile) PrefersAnyVarietal(varietals []string) bool {
	for _, want := range p.PreferredVarietals {
		for _, v := range varietals {
			if v == want {
				return true
			}
		}
	}
	return false
}

// FlavorFor returns the sub-profile used to judge the given wine type.
// Rosé and dessert wines are judged against the white profile, fortified
// against the red.
func (p *TasteProfile) FlavorFor(t WineType) FlavorProfile {
	switch t {
	case WineTypeRed, WineTypeFortified:
		return p.Red
	case WineTypeSparkling:
		return p.Sparkling
	default:
		return p.White
	}
}
