// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package pairing

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/vinoteca/internal/logging"
	"github.com/tomtom215/vinoteca/internal/models"
	"github.com/tomtom215/vinoteca/internal/scoring"
)

var testNow = time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	logger := logging.NewTestLogger(io.Discard)
	return NewMatcher(scoring.NewScorer(logger), logger)
}

func redMeatAnalysis() models.FoodAnalysis {
	return Analyze("grilled beef steak", AnalyzeOptions{})
}

func wine(id string, t models.WineType) models.Wine {
	return models.Wine{ID: id, OwnerID: "u1", Name: "Wine " + id, Type: t, Quantity: 1}
}

func TestMatchEmptyInventory(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	got := m.Match(redMeatAnalysis(), nil, &models.TasteProfile{}, nil, testNow)

	if len(got.Recommendations) != 0 || len(got.Alternatives) != 0 {
		t.Error("empty inventory must yield no recommendations")
	}
	if got.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", got.Confidence)
	}
	if !strings.Contains(got.Reasoning, "no wines") {
		t.Errorf("reasoning %q should explain the empty cellar", got.Reasoning)
	}
}

func TestMatchOutOfStockIgnored(t *testing.T) {
	t.Parallel()

	empty := wine("r1", models.WineTypeRed)
	empty.Quantity = 0

	m := newTestMatcher(t)
	got := m.Match(redMeatAnalysis(), []models.Wine{empty}, &models.TasteProfile{}, nil, testNow)

	if got.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0 when all bottles are gone", got.Confidence)
	}
}

func TestMatchRuleWinsOverAdventurous(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	got := m.Match(redMeatAnalysis(), []models.Wine{
		wine("red-1", models.WineTypeRed),
		wine("white-1", models.WineTypeWhite),
	}, &models.TasteProfile{}, nil, testNow)

	if len(got.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(got.Recommendations))
	}

	first := got.Recommendations[0]
	id, ok := first.Target.WineID()
	if !ok || id != "red-1" {
		t.Errorf("top pick = %q, want the rule-matched red", id)
	}
	if first.Pairing == nil || first.Pairing.RuleName != "tannin-meets-protein" {
		t.Errorf("top pick pairing = %+v, want the red-meat rule", first.Pairing)
	}

	second := got.Recommendations[1]
	if second.Pairing == nil || second.Pairing.RuleName != "adventurous" {
		t.Errorf("white should arrive via the adventurous channel, got %+v", second.Pairing)
	}
	if first.Confidence <= second.Confidence {
		t.Errorf("rule-based pick %v should outrank adventurous %v",
			first.Confidence, second.Confidence)
	}
}

func TestMatchCapsWinesPerRule(t *testing.T) {
	t.Parallel()

	inventory := []models.Wine{
		wine("r1", models.WineTypeRed),
		wine("r2", models.WineTypeRed),
		wine("r3", models.WineTypeRed),
		wine("r4", models.WineTypeRed),
	}

	m := newTestMatcher(t)
	got := m.Match(redMeatAnalysis(), inventory, &models.TasteProfile{}, nil, testNow)

	ruleCount := 0
	for _, rec := range append(got.Recommendations, got.Alternatives...) {
		if rec.Pairing != nil && rec.Pairing.RuleName == "tannin-meets-protein" {
			ruleCount++
		}
	}
	if ruleCount > maxWinesPerRule {
		t.Errorf("%d wines from one rule, want at most %d", ruleCount, maxWinesPerRule)
	}
}

func TestMatchPrimaryAndAlternativesSplit(t *testing.T) {
	t.Parallel()

	// Salmon admits rosé, red and white, so every wine is rule-eligible.
	inventory := []models.Wine{
		wine("a", models.WineTypeRose),
		wine("b", models.WineTypeRed),
		wine("c", models.WineTypeWhite),
		wine("d", models.WineTypeRed),
		wine("e", models.WineTypeWhite),
		wine("f", models.WineTypeSparkling),
		wine("g", models.WineTypeDessert),
	}

	m := newTestMatcher(t)
	analysis := Analyze("pan-seared salmon", AnalyzeOptions{})
	got := m.Match(analysis, inventory, &models.TasteProfile{}, nil, testNow)

	if len(got.Recommendations) > maxPrimary {
		t.Errorf("%d primary recommendations, want at most %d", len(got.Recommendations), maxPrimary)
	}
	if len(got.Alternatives) > maxAlternatives {
		t.Errorf("%d alternatives, want at most %d", len(got.Alternatives), maxAlternatives)
	}
	if got.Confidence != got.Recommendations[0].Confidence {
		t.Errorf("overall confidence %v should equal the top pick's %v",
			got.Confidence, got.Recommendations[0].Confidence)
	}
}

func TestMatchRankedByScore(t *testing.T) {
	t.Parallel()

	profile := &models.TasteProfile{
		PreferredRegions: []string{"Rioja"},
	}
	favored := wine("fav", models.WineTypeRed)
	favored.Region = "Rioja"

	m := newTestMatcher(t)
	got := m.Match(redMeatAnalysis(), []models.Wine{
		wine("plain", models.WineTypeRed),
		favored,
	}, profile, nil, testNow)

	id, _ := got.Recommendations[0].Target.WineID()
	if id != "fav" {
		t.Errorf("top pick = %q, want the region-matched wine", id)
	}

	all := append(got.Recommendations, got.Alternatives...)
	for i := 1; i < len(all); i++ {
		if all[i].Confidence > all[i-1].Confidence {
			t.Errorf("recommendations not sorted: %v after %v",
				all[i].Confidence, all[i-1].Confidence)
		}
	}
}

func TestMatchRegionalRuleApplies(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	analysis := Analyze("spaghetti bolognese", AnalyzeOptions{Cuisine: "italian"})
	got := m.Match(analysis, []models.Wine{wine("r1", models.WineTypeRed)}, &models.TasteProfile{}, nil, testNow)

	if len(got.Recommendations) == 0 {
		t.Fatal("expected at least one recommendation")
	}
	// classic pasta rule (0.7) and italian regional rule (0.8) both admit
	// the red; the candidate must keep the higher-confidence rule.
	if got.Recommendations[0].Pairing.RuleName != "italian-table" {
		t.Errorf("rule = %q, want the regional rule to win on confidence",
			got.Recommendations[0].Pairing.RuleName)
	}
}

func TestMatchRegionalRuleCaseInsensitiveCuisine(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	analysis := Analyze("spaghetti bolognese", AnalyzeOptions{Cuisine: "Italian"})
	got := m.Match(analysis, []models.Wine{wine("r1", models.WineTypeRed)}, &models.TasteProfile{}, nil, testNow)

	if len(got.Recommendations) == 0 {
		t.Fatal("expected at least one recommendation")
	}
	if got.Recommendations[0].Pairing.RuleName != "italian-table" {
		t.Errorf("rule = %q; a capitalized cuisine must still match the regional table",
			got.Recommendations[0].Pairing.RuleName)
	}
}

func TestMatchAttachesWindowUrgency(t *testing.T) {
	t.Parallel()

	peaked := wine("peak", models.WineTypeRed)
	peaked.Window = &models.DrinkingWindow{
		Earliest:  testNow.AddDate(-4, 0, 0),
		PeakStart: testNow.AddDate(-1, 0, 0),
		PeakEnd:   testNow.AddDate(1, 0, 0),
		Latest:    testNow.AddDate(3, 0, 0),
	}

	m := newTestMatcher(t)
	got := m.Match(redMeatAnalysis(), []models.Wine{peaked}, &models.TasteProfile{}, nil, testNow)

	if got.Recommendations[0].Urgency != 0.9 {
		t.Errorf("Urgency = %v, want peak urgency 0.9", got.Recommendations[0].Urgency)
	}
}
