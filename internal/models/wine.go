// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package models

// WineType classifies a wine by style. Values are wire-stable.
type WineType string

const (
	WineTypeRed       WineType = "red"
	WineTypeWhite     WineType = "white"
	WineTypeRose      WineType = "rose"
	WineTypeSparkling WineType = "sparkling"
	WineTypeDessert   WineType = "dessert"
	WineTypeFortified WineType = "fortified"
)

// CoreWineTypes are the four types considered for breadth/gap analysis.
var CoreWineTypes = []WineType{WineTypeRed, WineTypeWhite, WineTypeSparkling, WineTypeRose}

// Valid reports whether t is one of the known wine types.
func (t WineType) Valid() bool {
	switch t {
	case WineTypeRed, WineTypeWhite, WineTypeRose, WineTypeSparkling, WineTypeDessert, WineTypeFortified:
		return true
	default:
		return false
	}
}

// Wine is an inventory or catalog entry. The engine only reads wines;
// ownership and mutation belong to the inventory store.
type Wine struct {
	// ID is the inventory identifier.
	ID string `json:"id"`

	// OwnerID identifies the collection the wine belongs to.
	OwnerID string `json:"owner_id"`

	// Name is the label name, e.g. "Ridge Monte Bello".
	Name string `json:"name"`

	// Producer is the winery or house.
	Producer string `json:"producer,omitempty"`

	// Type is the wine style.
	Type WineType `json:"type"`

	// Region is the appellation or growing region.
	Region string `json:"region,omitempty"`

	// Country is the country of origin.
	Country string `json:"country,omitempty"`

	// Varietals lists grape varieties, primary first.
	Varietals []string `json:"varietals,omitempty"`

	// Vintage is the harvest year; zero means non-vintage.
	Vintage int `json:"vintage,omitempty"`

	// Quantity is the number of bottles held.
	Quantity int `json:"quantity"`

	// PurchasePrice is the per-bottle price paid.
	PurchasePrice float64 `json:"purchase_price,omitempty"`

	// PersonalRating is the owner's rating (0-5), zero if unrated.
	PersonalRating float64 `json:"personal_rating,omitempty"`

	// Window is the drinking window, if known.
	Window *DrinkingWindow `json:"drinking_window,omitempty"`
}

// InStock reports whether at least one bottle is held.
func (w *Wine) InStock() bool {
	return w.Quantity > 0
}

// HasVarietal reports whether the wine lists the given varietal.
// Comparison is exact; callers normalize case upstream.
func (w *Wine) HasVarietal(varietal string) bool {
	for _, v := range w.Varietals {
		if v == varietal {
			return true
		}
	}
	return false
}

// PriceRange is a closed price interval in a single currency.
type PriceRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// Midpoint returns the center of the range.
func (p PriceRange) Midpoint() float64 {
	return (p.Min + p.Max) / 2
}

// Width returns the size of the range.
func (p PriceRange) Width() float64 {
	return p.Max - p.Min
}

// IsZero reports whether the range is unset.
func (p PriceRange) IsZero() bool {
	return p.Min == 0 && p.Max == 0
}

// SuggestedWine describes a wine the user does not hold but could buy.
// It is the purchase-side payload of a recommendation target.
type SuggestedWine struct {
	Name      string   `json:"name"`
	Producer  string   `json:"producer,omitempty"`
	Type      WineType `json:"type"`
	Region    string   `json:"region,omitempty"`
	Country   string   `json:"country,omitempty"`
	Varietals []string `json:"varietals,omitempty"`
	Vintage   int      `json:"vintage,omitempty"`

	// EstimatedPrice is a templated or externally sourced price estimate.
	EstimatedPrice float64 `json:"estimated_price,omitempty"`

	// ExternalID links to a merged external record when the suggestion
	// came from data enrichment rather than a template.
	ExternalID string `json:"external_id,omitempty"`
}
