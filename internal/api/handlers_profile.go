// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/vinoteca/internal/metrics"
	"github.com/tomtom215/vinoteca/internal/profile"
)

// questionResponse is the wire form of one questionnaire entry.
type questionResponse struct {
	ID       string  `json:"id"`
	Prompt   string  `json:"prompt"`
	Kind     string  `json:"kind"`
	Required bool    `json:"required"`
	Choices  []any   `json:"choices,omitempty"`
	ScaleMin float64 `json:"scale_min,omitempty"`
	ScaleMax float64 `json:"scale_max,omitempty"`
}

// calculateProfileRequest carries a full answer set.
type calculateProfileRequest struct {
	UserID  string           `json:"user_id" validate:"required,max=128"`
	Answers []profile.Answer `json:"answers" validate:"required,min=1"`
}

// validateAnswersRequest carries an answer set for standalone validation.
// Partial sets are accepted when partial is true, matching the preference
// patch flow where unrelated required questions are not re-supplied.
type validateAnswersRequest struct {
	Answers []profile.Answer `json:"answers" validate:"required,min=1"`
	Partial bool             `json:"partial"`
}

// ProfileQuestions returns the questionnaire definition in presentation
// order.
func (h *Handler) ProfileQuestions(w http.ResponseWriter, _ *http.Request) {
	questions := make([]questionResponse, 0, len(profile.Questions))
	for _, q := range profile.Questions {
		questions = append(questions, questionResponse{
			ID:       q.ID,
			Prompt:   q.Prompt,
			Kind:     string(q.Kind),
			Required: q.Required,
			Choices:  q.Choices,
			ScaleMin: q.ScaleMin,
			ScaleMax: q.ScaleMax,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"questions": questions,
		"required":  profile.RequiredCount(),
		"optional":  profile.OptionalCount(),
	})
}

// ProfileCalculate derives a taste profile from a submitted answer set.
// Profiles are a pure function of the answers; nothing is persisted.
func (h *Handler) ProfileCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateProfileRequest
	if apiErr := decodeBody(r, &req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	tasteProfile, err := h.calculator.Calculate(req.UserID, req.Answers)
	if err != nil {
		var answerErr *profile.AnswerValidationError
		if errors.As(err, &answerErr) {
			respondAPIError(w, http.StatusBadRequest, answerIssuesError(answerErr))
			return
		}
		respondError(w, http.StatusInternalServerError, "PROFILE_FAILED", "failed to calculate profile", err)
		return
	}

	metrics.ProfileCalculationsTotal.Inc()
	respondJSON(w, http.StatusOK, tasteProfile)
}

// ProfileValidate checks an answer set without deriving a profile. The
// questionnaire UI uses it for incremental feedback.
func (h *Handler) ProfileValidate(w http.ResponseWriter, r *http.Request) {
	var req validateAnswersRequest
	if apiErr := decodeBody(r, &req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	validate := profile.Validate
	if req.Partial {
		validate = profile.ValidatePartial
	}

	if err := validate(req.Answers); err != nil {
		var answerErr *profile.AnswerValidationError
		if errors.As(err, &answerErr) {
			respondJSON(w, http.StatusOK, map[string]any{
				"valid":  false,
				"issues": answerIssueList(answerErr),
			})
			return
		}
		respondError(w, http.StatusInternalServerError, "VALIDATION_FAILED", "failed to validate answers", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"valid": true})
}

// answerIssuesError converts answer validation issues to the wire error
// format used for rejected calculations.
func answerIssuesError(err *profile.AnswerValidationError) *APIError {
	return &APIError{
		Code:    "INVALID_ANSWERS",
		Message: err.Error(),
		Details: map[string]any{"issues": answerIssueList(err)},
	}
}

// answerIssueList flattens issues for the response body.
func answerIssueList(err *profile.AnswerValidationError) []map[string]any {
	issues := make([]map[string]any, 0, len(err.Issues))
	for _, issue := range err.Issues {
		entry := map[string]any{
			"question_id": issue.QuestionID,
			"error":       issue.Err.Error(),
		}
		if issue.Detail != "" {
			entry["detail"] = issue.Detail
		}
		issues = append(issues, entry)
	}
	return issues
}
