// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package profile

import "time"

// QuestionKind classifies how a question's answer is validated.
type QuestionKind string

const (
	// KindSingleChoice accepts exactly one of the declared string choices.
	KindSingleChoice QuestionKind = "single_choice"

	// KindMultiChoice accepts a list drawn from the declared string choices.
	KindMultiChoice QuestionKind = "multi_choice"

	// KindScale accepts a number within the declared bounds.
	KindScale QuestionKind = "scale"

	// KindObjectChoice accepts one of the declared structured choices,
	// compared by deep equality.
	KindObjectChoice QuestionKind = "object_choice"
)

// Question is the static metadata for one questionnaire entry. The question
// set is configuration, not runtime state; it changes only with releases.
type Question struct {
	ID       string
	Prompt   string
	Kind     QuestionKind
	Required bool

	// Choices holds the allowed values for choice kinds. For
	// KindObjectChoice entries these are structured values compared by
	// deep equality after numeric normalization.
	Choices []any

	// ScaleMin and ScaleMax bound KindScale answers, inclusive.
	ScaleMin float64
	ScaleMax float64
}

// Answer is one submitted questionnaire response. Timestamps are carried
// for audit but do not influence the derived profile.
type Answer struct {
	QuestionID string    `json:"question_id"`
	Value      any       `json:"value"`
	Timestamp  time.Time `json:"timestamp,omitempty"`
}

// Question IDs. Referenced by the calculator's rule tables.
const (
	QExperienceLevel   = "experience-level"
	QWineTypesTried    = "wine-types-tried"
	QDrinkingFrequency = "drinking-frequency"
	QFlavorIntensity   = "flavor-intensity"
	QBodyPreference    = "body-preference"
	QPriceRange        = "price-range"
	QSweetness         = "sweetness-preference"
	QRegionInterest    = "region-interest"
	QOccasions         = "occasions"
	QPairingImportance = "food-pairing-importance"
	QDisliked          = "disliked-characteristics"
)

// priceBracket builds an object choice for the price-range question.
func priceBracket(minimum, maximum float64) map[string]any {
	return map[string]any{"min": minimum, "max": maximum}
}

// Questions is the questionnaire definition, in presentation order.
var Questions = []Question{
	{
		ID:       QWineTypesTried,
		Prompt:   "Which styles of wine have you tried and enjoyed?",
		Kind:     KindMultiChoice,
		Required: true,
		Choices: []any{
			"red-light", "red-full", "white-crisp", "white-rich",
			"rose", "sparkling", "dessert", "fortified",
		},
	},
	{
		ID:       QDrinkingFrequency,
		Prompt:   "How often do you drink wine?",
		Kind:     KindSingleChoice,
		Required: true,
		Choices:  []any{"daily", "weekly", "monthly", "rarely"},
	},
	{
		ID:       QFlavorIntensity,
		Prompt:   "How intense do you like your wines?",
		Kind:     KindSingleChoice,
		Required: true,
		Choices:  []any{"subtle", "moderate", "bold"},
	},
	{
		ID:       QBodyPreference,
		Prompt:   "What body do you prefer?",
		Kind:     KindSingleChoice,
		Required: true,
		Choices:  []any{"light", "medium", "full"},
	},
	{
		ID:       QPriceRange,
		Prompt:   "What do you usually spend per bottle?",
		Kind:     KindObjectChoice,
		Required: true,
		Choices: []any{
			priceBracket(0, 15),
			priceBracket(15, 30),
			priceBracket(30, 60),
			priceBracket(60, 120),
			priceBracket(120, 500),
		},
	},
	{
		ID:      QExperienceLevel,
		Prompt:  "How would you rate your wine experience?",
		Kind:    KindSingleChoice,
		Choices: []any{"beginner", "intermediate", "advanced"},
	},
	{
		ID:      QSweetness,
		Prompt:  "How sweet do you like your wines?",
		Kind:    KindSingleChoice,
		Choices: []any{"dry", "off-dry", "sweet"},
	},
	{
		ID:      QRegionInterest,
		Prompt:  "Which wine countries interest you most?",
		Kind:    KindMultiChoice,
		Choices: []any{
			"france", "italy", "spain", "usa",
			"australia", "argentina", "germany", "portugal",
		},
	},
	{
		ID:      QOccasions,
		Prompt:  "When do you usually open a bottle?",
		Kind:    KindMultiChoice,
		Choices: []any{"casual", "dinner_party", "celebration", "gift", "collection"},
	},
	{
		ID:       QPairingImportance,
		Prompt:   "How important is matching wine to food?",
		Kind:     KindScale,
		ScaleMin: 1,
		ScaleMax: 10,
	},
	{
		ID:      QDisliked,
		Prompt:  "Anything you actively avoid?",
		Kind:    KindMultiChoice,
		Choices: []any{"very_tannic", "very_sweet", "high_acidity", "heavy_oak", "high_alcohol"},
	},
}

// questionIndex maps question ID to its metadata.
var questionIndex = func() map[string]Question {
	idx := make(map[string]Question, len(Questions))
	for _, q := range Questions {
		idx[q.ID] = q
	}
	return idx
}()

// QuestionByID returns the metadata for a question ID.
func QuestionByID(id string) (Question, bool) {
	q, ok := questionIndex[id]
	return q, ok
}

// RequiredCount returns the number of required questions.
func RequiredCount() int {
	n := 0
	for _, q := range Questions {
		if q.Required {
			n++
		}
	}
	return n
}

// OptionalCount returns the number of optional questions.
func OptionalCount() int {
	return len(Questions) - RequiredCount()
}
