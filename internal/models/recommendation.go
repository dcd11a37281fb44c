// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package models

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// TargetKind discriminates the recommendation target variant.
type TargetKind string

const (
	// TargetInventory points at a wine the user already holds.
	TargetInventory TargetKind = "inventory"

	// TargetPurchase proposes a wine the user could buy.
	TargetPurchase TargetKind = "purchase"
)

// ErrInvalidTarget is returned when decoding a target that is neither a
// valid inventory nor a valid purchase variant.
var ErrInvalidTarget = errors.New("recommendation target must be inventory or purchase")

// Target is the discriminated recommendation subject: either an inventory
// wine ID or a suggested purchase, never neither. The zero Target is
// invalid; construct with InventoryTarget or PurchaseTarget.
type Target struct {
	kind      TargetKind
	wineID    string
	suggested *SuggestedWine
}

// InventoryTarget creates a target pointing at a held wine.
func InventoryTarget(wineID string) Target {
	return Target{kind: TargetInventory, wineID: wineID}
}

// PurchaseTarget creates a target proposing a wine to buy.
func PurchaseTarget(sw SuggestedWine) Target {
	return Target{kind: TargetPurchase, suggested: &sw}
}

// Kind returns the variant discriminator.
func (t Target) Kind() TargetKind {
	return t.kind
}

// WineID returns the inventory wine ID; ok is false for purchase targets.
func (t Target) WineID() (id string, ok bool) {
	return t.wineID, t.kind == TargetInventory
}

// Suggested returns the proposed purchase; ok is false for inventory targets.
func (t Target) Suggested() (sw SuggestedWine, ok bool) {
	if t.kind != TargetPurchase || t.suggested == nil {
		return SuggestedWine{}, false
	}
	return *t.suggested, true
}

// targetJSON is the wire form of Target.
type targetJSON struct {
	Type          TargetKind     `json:"type"`
	WineID        string         `json:"wine_id,omitempty"`
	SuggestedWine *SuggestedWine `json:"suggested_wine,omitempty"`
}

// MarshalJSON encodes the tagged union in its wire form.
func (t Target) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case TargetInventory:
		return json.Marshal(targetJSON{Type: TargetInventory, WineID: t.wineID})
	case TargetPurchase:
		return json.Marshal(targetJSON{Type: TargetPurchase, SuggestedWine: t.suggested})
	default:
		return nil, ErrInvalidTarget
	}
}

// UnmarshalJSON decodes the tagged union, rejecting shapes where the
// discriminator and payload disagree.
func (t *Target) UnmarshalJSON(data []byte) error {
	var raw targetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Type {
	case TargetInventory:
		if raw.WineID == "" {
			return fmt.Errorf("%w: inventory target missing wine_id", ErrInvalidTarget)
		}
		*t = InventoryTarget(raw.WineID)
	case TargetPurchase:
		if raw.SuggestedWine == nil {
			return fmt.Errorf("%w: purchase target missing suggested_wine", ErrInvalidTarget)
		}
		*t = PurchaseTarget(*raw.SuggestedWine)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTarget, raw.Type)
	}
	return nil
}

// ServingRecommendation holds templated serving guidance for a wine type.
type ServingRecommendation struct {
	// TemperatureMinC and TemperatureMaxC bound the serving temperature.
	TemperatureMinC float64 `json:"temperature_min_c"`
	TemperatureMaxC float64 `json:"temperature_max_c"`

	// DecantMinutes is the suggested decanting time; zero means none.
	DecantMinutes int `json:"decant_minutes,omitempty"`

	Glassware string `json:"glassware,omitempty"`
}

// PairingExplanation carries the rule context that produced a pairing
// recommendation.
type PairingExplanation struct {
	FoodCategory FoodCategory `json:"food_category"`
	RuleName     string       `json:"rule_name"`
	Reasoning    string       `json:"reasoning"`
}

// Recommendation is one ranked suggestion. Created by the scorer or pairing
// matcher, ranked and truncated by the orchestrator, never mutated after
// creation.
type Recommendation struct {
	Target Target `json:"target"`

	// Reasoning is a templated human-readable explanation.
	Reasoning string `json:"reasoning"`

	// Confidence is the match score in [0,1].
	Confidence float64 `json:"confidence"`

	// Urgency is the drink-soon scalar in [0,1]; zero for purchase flows.
	Urgency float64 `json:"urgency"`

	// Serving is optional serving guidance.
	Serving *ServingRecommendation `json:"serving,omitempty"`

	// Pairing is set only on pairing-flow recommendations.
	Pairing *PairingExplanation `json:"pairing,omitempty"`

	// EducationalNote is an optional templated note keyed by the user's
	// experience level.
	EducationalNote string `json:"educational_note,omitempty"`
}

// RecommendationContext carries situational constraints for scoring.
type RecommendationContext struct {
	// Occasion tags the situation, e.g. "celebration", "casual", "dinner_party".
	Occasion string `json:"occasion,omitempty"`

	// PriceRange bounds acceptable prices for this request.
	PriceRange *PriceRange `json:"price_range,omitempty"`

	// UrgencyFilter keeps only wines at or above a window urgency. Zero
	// means unset: every urgency already satisfies a zero threshold, so
	// the value carries no constraint and IsEmpty treats it as absent.
	UrgencyFilter float64 `json:"urgency_filter,omitempty"`

	// FoodHint is a free-text food description for pairing-aware scoring.
	FoodHint string `json:"food_hint,omitempty"`
}

// IsEmpty reports whether no situational constraint is set.
func (c *RecommendationContext) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.Occasion == "" && c.PriceRange == nil && c.UrgencyFilter == 0 && c.FoodHint == ""
}
