// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package enrich

import (
	"fmt"

	"github.com/tomtom215/vinoteca/internal/models"
)

// Alcohol content bounds for a plausible wine, in percent ABV.
const (
	minAlcohol = 0
	maxAlcohol = 20
)

// qualityPenaltyPerIssue is subtracted from the quality score for each
// violation found.
const qualityPenaltyPerIssue = 0.15

// ValidationReport lists data-quality violations found in a merged record.
// Violations never discard the record; a partially bad record is still
// partially useful.
type ValidationReport struct {
	// Issues are human-readable violation descriptions.
	Issues []string `json:"issues,omitempty"`

	// Quality starts at 1.0 and drops per issue, floored at 0.
	Quality float64 `json:"quality"`
}

// Valid reports whether no violation was found.
func (r ValidationReport) Valid() bool {
	return len(r.Issues) == 0
}

// ValidateRecord checks a merged record against the data-quality rules:
// an external id must be present, alcohol content must be plausible, the
// serving-temperature range must be ordered, and no rating may exceed its
// own stated maximum.
func ValidateRecord(record *models.ExternalWineRecord) ValidationReport {
	var issues []string

	if record.ExternalID == "" {
		issues = append(issues, "missing external id")
	}

	if record.AlcoholContent != 0 && (record.AlcoholContent < minAlcohol || record.AlcoholContent > maxAlcohol) {
		issues = append(issues, fmt.Sprintf("alcohol content %.1f%% outside [%d, %d]",
			record.AlcoholContent, minAlcohol, maxAlcohol))
	}

	if record.ServingTemp != nil && record.ServingTemp.MinC >= record.ServingTemp.MaxC {
		issues = append(issues, fmt.Sprintf("serving temperature range [%.1f, %.1f] is not ordered",
			record.ServingTemp.MinC, record.ServingTemp.MaxC))
	}

	for _, rating := range record.ProfessionalRatings {
		if rating.Score > rating.MaxScore {
			issues = append(issues, fmt.Sprintf("rating from %s scores %.1f over its own max %.1f",
				rating.Source, rating.Score, rating.MaxScore))
		}
	}

	quality := 1.0 - float64(len(issues))*qualityPenaltyPerIssue
	if quality < 0 {
		quality = 0
	}

	return ValidationReport{Issues: issues, Quality: quality}
}
