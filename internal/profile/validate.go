// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Sentinel validation failures. Wrapped into AnswerValidationError issues.
var (
	ErrUnknownQuestion = errors.New("unknown question id")
	ErrMissingRequired = errors.New("missing required answer")
	ErrInvalidValue    = errors.New("invalid answer value")
)

// Issue is one validation finding for a specific question.
type Issue struct {
	QuestionID string
	Err        error
	Detail     string
}

// Error returns a human-readable description of the issue.
func (i Issue) Error() string {
	if i.Detail == "" {
		return fmt.Sprintf("%s: %v", i.QuestionID, i.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", i.QuestionID, i.Err, i.Detail)
}

// Unwrap exposes the sentinel for errors.Is checks.
func (i Issue) Unwrap() error {
	return i.Err
}

// AnswerValidationError aggregates all issues found in one answer set.
type AnswerValidationError struct {
	Issues []Issue
}

// Error joins all issues into one message.
func (e *AnswerValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Error()
	}
	return "answer validation failed: " + strings.Join(msgs, "; ")
}

// Is reports whether any issue wraps the target sentinel.
func (e *AnswerValidationError) Is(target error) bool {
	for _, issue := range e.Issues {
		if errors.Is(issue, target) {
			return true
		}
	}
	return false
}

// Validate checks a complete answer set: every required question must be
// present, every answered value must be valid, and unknown question IDs are
// a hard error, never a silent skip. Returns nil or *AnswerValidationError.
func Validate(answers []Answer) error {
	issues := valueIssues(answers)

	answered := make(map[string]bool, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = true
	}
	for _, q := range Questions {
		if q.Required && !answered[q.ID] {
			issues = append(issues, Issue{QuestionID: q.ID, Err: ErrMissingRequired})
		}
	}

	if len(issues) > 0 {
		return &AnswerValidationError{Issues: issues}
	}
	return nil
}

// ValidatePartial checks only the answers that are present. It is used for
// preference patches: a previously produced profile's partial update must
// pass without unrelated required questions being supplied.
func ValidatePartial(answers []Answer) error {
	if issues := valueIssues(answers); len(issues) > 0 {
		return &AnswerValidationError{Issues: issues}
	}
	return nil
}

// valueIssues validates each present answer against its question metadata.
func valueIssues(answers []Answer) []Issue {
	var issues []Issue

	for _, a := range answers {
		q, ok := QuestionByID(a.QuestionID)
		if !ok {
			issues = append(issues, Issue{QuestionID: a.QuestionID, Err: ErrUnknownQuestion})
			continue
		}

		if issue := checkValue(q, a.Value); issue != nil {
			issues = append(issues, *issue)
		}
	}

	return issues
}

// checkValue validates one answer value against its question's declaration.
func checkValue(q Question, value any) *Issue {
	switch q.Kind {
	case KindScale:
		num, ok := asFloat(value)
		if !ok {
			return &Issue{QuestionID: q.ID, Err: ErrInvalidValue, Detail: "expected a number"}
		}
		if num < q.ScaleMin || num > q.ScaleMax {
			return &Issue{
				QuestionID: q.ID,
				Err:        ErrInvalidValue,
				Detail:     fmt.Sprintf("%v outside scale [%v, %v]", num, q.ScaleMin, q.ScaleMax),
			}
		}

	case KindSingleChoice:
		if !choiceAllowed(q.Choices, value) {
			return &Issue{QuestionID: q.ID, Err: ErrInvalidValue, Detail: fmt.Sprintf("%v is not a declared choice", value)}
		}

	case KindMultiChoice:
		values, ok := asSlice(value)
		if !ok {
			return &Issue{QuestionID: q.ID, Err: ErrInvalidValue, Detail: "expected a list of choices"}
		}
		for _, v := range values {
			if !choiceAllowed(q.Choices, v) {
				return &Issue{QuestionID: q.ID, Err: ErrInvalidValue, Detail: fmt.Sprintf("%v is not a declared choice", v)}
			}
		}

	case KindObjectChoice:
		if !choiceAllowed(q.Choices, value) {
			return &Issue{QuestionID: q.ID, Err: ErrInvalidValue, Detail: "value matches no declared structured choice"}
		}
	}

	return nil
}

// choiceAllowed reports whether value matches one of the declared choices.
// Structured choices are compared by deep equality after numeric
// normalization, so JSON-decoded answers compare equal to the declaration.
func choiceAllowed(choices []any, value any) bool {
	canon := canonicalize(value)
	for _, c := range choices {
		if reflect.DeepEqual(canonicalize(c), canon) {
			return true
		}
	}
	return false
}

// canonicalize converts numbers to float64 and rebuilds containers so deep
// equality ignores int/float and concrete-slice differences introduced by
// JSON decoding.
func canonicalize(v any) any {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = canonicalize(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = canonicalize(item)
		}
		return out
	default:
		return v
	}
}

// asFloat extracts a numeric answer value.
func asFloat(v any) (float64, bool) {
	switch num := v.(type) {
	case float64:
		return num, true
	case float32:
		return float64(num), true
	case int:
		return float64(num), true
	case int64:
		return float64(num), true
	default:
		return 0, false
	}
}

// asSlice extracts a multi-choice answer as a generic slice.
func asSlice(v any) ([]any, bool) {
	switch items := v.(type) {
	case []any:
		return items, true
	case []string:
		out := make([]any, len(items))
		for i, s := range items {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// asStrings extracts a multi-choice answer as strings, skipping non-strings.
func asStrings(v any) []string {
	items, ok := asSlice(v)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
