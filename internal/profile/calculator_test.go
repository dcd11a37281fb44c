// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package profile

import (
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/vinoteca/internal/logging"
	"github.com/tomtom215/vinoteca/internal/models"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	return NewCalculator(logging.NewTestLogger(io.Discard))
}

func answer(id string, value any) Answer {
	return Answer{QuestionID: id, Value: value}
}

func fullAnswerSet() []Answer {
	return []Answer{
		answer(QWineTypesTried, []any{"red-light", "red-full", "white-crisp", "sparkling", "rose"}),
		answer(QDrinkingFrequency, "weekly"),
		answer(QFlavorIntensity, "bold"),
		answer(QBodyPreference, "full"),
		answer(QPriceRange, map[string]any{"min": 30.0, "max": 60.0}),
		answer(QExperienceLevel, "advanced"),
		answer(QSweetness, "dry"),
		answer(QRegionInterest, []any{"france", "italy"}),
		answer(QOccasions, []any{"dinner_party", "celebration"}),
		answer(QPairingImportance, 8),
		answer(QDisliked, []any{"very_sweet"}),
	}
}

func TestCalculateMinimalAnswers(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	got, err := calc.Calculate("user-1", []Answer{
		answer(QExperienceLevel, "beginner"),
		answer(QPriceRange, map[string]any{"min": 15.0, "max": 30.0}),
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if got.ExperienceLevel != models.ExperienceBeginner {
		t.Errorf("ExperienceLevel = %q, want beginner", got.ExperienceLevel)
	}
	want := models.PriceRange{Min: 15, Max: 30, Currency: "USD"}
	if got.General.PriceRange != want {
		t.Errorf("PriceRange = %+v, want %+v", got.General.PriceRange, want)
	}
	if got.Confidence <= 0 {
		t.Errorf("Confidence = %v, want > 0", got.Confidence)
	}
	if got.Confidence >= 1 {
		t.Errorf("Confidence = %v for a sparse answer set, want < 1", got.Confidence)
	}
}

func TestCalculateBoldFullRedProfile(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	got, err := calc.Calculate("user-1", []Answer{
		answer(QFlavorIntensity, "bold"),
		answer(QBodyPreference, "full"),
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	red := got.Red
	if red.Fruitiness != 8 || red.Earthiness != 7 || red.Oakiness != 7 || red.Tannins != 8 {
		t.Errorf("red axes = {fruit %v, earth %v, oak %v, tannin %v}, want {8, 7, 7, 8}",
			red.Fruitiness, red.Earthiness, red.Oakiness, red.Tannins)
	}
	if red.Body != models.BodyFull {
		t.Errorf("red body = %q, want full", red.Body)
	}
	if got.White.Body != models.BodyFull || got.Sparkling.Body != models.BodyFull {
		t.Error("body preference should apply across all colors")
	}
}

func TestCalculateDefaults(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	got, err := calc.Calculate("user-1", nil)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if got.ExperienceLevel != models.ExperienceBeginner {
		t.Errorf("ExperienceLevel = %q, want inferred beginner with nothing tried", got.ExperienceLevel)
	}
	if got.Red != buildFlavor(redIntensityAxes["moderate"], redAcidity, 2, models.BodyMedium) {
		t.Errorf("red profile should use moderate/medium defaults, got %+v", got.Red)
	}
	if got.White.Sweetness != defaultSweetness {
		t.Errorf("white sweetness = %v, want default %v", got.White.Sweetness, defaultSweetness)
	}
	if got.General.FoodPairingWeight != defaultPairingWeight {
		t.Errorf("FoodPairingWeight = %v, want %v", got.General.FoodPairingWeight, defaultPairingWeight)
	}
	if got.General.PriceRange.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", got.General.PriceRange.Currency)
	}
}

func TestCalculateExperienceInference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		answers []Answer
		want    models.ExperienceLevel
	}{
		{
			name:    "explicit answer wins",
			answers: []Answer{answer(QExperienceLevel, "intermediate")},
			want:    models.ExperienceIntermediate,
		},
		{
			name:    "one style tried",
			answers: []Answer{answer(QWineTypesTried, []any{"red-full"})},
			want:    models.ExperienceBeginner,
		},
		{
			name: "broad palate, frequent drinker",
			answers: []Answer{
				answer(QWineTypesTried, []any{"red-light", "red-full", "white-crisp", "sparkling", "dessert"}),
				answer(QDrinkingFrequency, "weekly"),
			},
			want: models.ExperienceAdvanced,
		},
		{
			name: "broad palate, rare drinker",
			answers: []Answer{
				answer(QWineTypesTried, []any{"red-light", "red-full", "white-crisp", "sparkling", "dessert"}),
				answer(QDrinkingFrequency, "rarely"),
			},
			want: models.ExperienceIntermediate,
		},
		{
			name:    "moderate breadth",
			answers: []Answer{answer(QWineTypesTried, []any{"red-full", "white-crisp", "rose"})},
			want:    models.ExperienceIntermediate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calc := newTestCalculator(t)
			got, err := calc.Calculate("user-1", tt.answers)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if got.ExperienceLevel != tt.want {
				t.Errorf("ExperienceLevel = %q, want %q", got.ExperienceLevel, tt.want)
			}
		})
	}
}

func TestCalculateVarietalsPreserveRepeats(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	got, err := calc.Calculate("user-1", []Answer{
		answer(QWineTypesTried, []any{"rose", "sparkling"}),
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	// Pinot Noir is suggested by both choices and must appear twice.
	want := []string{"Grenache", "Pinot Noir", "Chardonnay", "Pinot Noir"}
	if !reflect.DeepEqual(got.PreferredVarietals, want) {
		t.Errorf("PreferredVarietals = %v, want %v", got.PreferredVarietals, want)
	}
}

func TestCalculateRegions(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	got, err := calc.Calculate("user-1", []Answer{
		answer(QRegionInterest, []any{"france", "argentina"}),
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	want := []string{"Bordeaux", "Burgundy", "Rhône Valley", "Mendoza"}
	if !reflect.DeepEqual(got.PreferredRegions, want) {
		t.Errorf("PreferredRegions = %v, want %v", got.PreferredRegions, want)
	}
}

func TestCalculatePure(t *testing.T) {
	t.Parallel()

	answers := fullAnswerSet()
	shifted := make([]Answer, len(answers))
	copy(shifted, answers)
	for i := range shifted {
		shifted[i].Timestamp = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}

	calc := newTestCalculator(t)
	first, err := calc.Calculate("user-1", answers)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	second, err := calc.Calculate("user-1", shifted)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical answers must produce identical profiles regardless of timestamps")
	}
}

func TestCalculateConfidenceMonotonic(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)

	sparse, err := calc.Calculate("user-1", []Answer{
		answer(QFlavorIntensity, "moderate"),
	})
	if err != nil {
		t.Fatalf("Calculate(sparse) error = %v", err)
	}

	full, err := calc.Calculate("user-1", fullAnswerSet())
	if err != nil {
		t.Fatalf("Calculate(full) error = %v", err)
	}

	if full.Confidence <= sparse.Confidence {
		t.Errorf("full confidence %v should exceed sparse confidence %v",
			full.Confidence, sparse.Confidence)
	}
	if full.Confidence != 1 {
		t.Errorf("full consistent questionnaire confidence = %v, want clamped to 1", full.Confidence)
	}
}

func TestCalculateRejectsInvalidAnswers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		answer Answer
		want   error
	}{
		{"unknown question", answer("favorite-color", "purple"), ErrUnknownQuestion},
		{"bad choice", answer(QFlavorIntensity, "extreme"), ErrInvalidValue},
		{"scale out of bounds", answer(QPairingImportance, 11), ErrInvalidValue},
		{"malformed price object", answer(QPriceRange, map[string]any{"min": 1.0, "max": 2.0}), ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calc := newTestCalculator(t)
			_, err := calc.Calculate("user-1", []Answer{tt.answer})
			if !errors.Is(err, tt.want) {
				t.Errorf("Calculate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateRequiresAllRequired(t *testing.T) {
	t.Parallel()

	err := Validate([]Answer{answer(QFlavorIntensity, "bold")})
	if !errors.Is(err, ErrMissingRequired) {
		t.Errorf("Validate() error = %v, want missing-required", err)
	}

	if err := Validate(fullAnswerSet()); err != nil {
		t.Errorf("Validate(full) error = %v, want nil", err)
	}
}

func TestValidatePartialSkipsRequiredCheck(t *testing.T) {
	t.Parallel()

	if err := ValidatePartial([]Answer{answer(QSweetness, "dry")}); err != nil {
		t.Errorf("ValidatePartial() error = %v, want nil", err)
	}
}

func TestObjectChoiceNumericNormalization(t *testing.T) {
	t.Parallel()

	// JSON decoding yields float64; literal Go ints must compare equal.
	if err := ValidatePartial([]Answer{
		answer(QPriceRange, map[string]any{"min": 15, "max": 30}),
	}); err != nil {
		t.Errorf("int-valued price object should validate, got %v", err)
	}
}
