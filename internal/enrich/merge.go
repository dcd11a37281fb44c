// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package enrich

import "github.com/tomtom215/vinoteca/internal/models"

// sourceResult pairs a provider's record with its static metadata, the
// unit the merge operates over.
type sourceResult struct {
	record models.SourceRecord
	info   SourceInfo
}

// merge combines responding source records into one ExternalWineRecord.
//
// List fields (professional ratings) concatenate across all sources in
// response order. Scalar fields all come from the single highest-confidence
// source, deliberately not field-by-field best-source selection. Overall
// confidence is Σ(confidence·reliability·quality) / Σ(reliability·quality),
// so a trusted source pulls the aggregate toward its own confidence harder
// than a plain average would.
func merge(results []sourceResult) models.ExternalWineRecord {
	var out models.ExternalWineRecord
	if len(results) == 0 {
		return out
	}

	best := results[0]
	var weightedSum, weightTotal float64

	for _, r := range results {
		out.Sources = append(out.Sources, r.record.SourceName)
		out.ProfessionalRatings = append(out.ProfessionalRatings, r.record.ProfessionalRatings...)

		weight := r.info.Reliability * r.info.DataQuality
		weightedSum += r.record.Confidence * weight
		weightTotal += weight

		if r.record.Confidence > best.record.Confidence {
			best = r
		}
	}

	out.ExternalID = best.record.ExternalID
	out.TastingNotes = best.record.TastingNotes
	out.AlcoholContent = best.record.AlcoholContent
	out.ServingTemp = best.record.ServingTemp
	out.DecantingMinutes = best.record.DecantingMinutes
	out.AgingPotential = best.record.AgingPotential

	if weightTotal > 0 {
		out.Confidence = weightedSum / weightTotal
	}
	return out
}
