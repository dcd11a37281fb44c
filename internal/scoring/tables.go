// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package scoring

import "github.com/tomtom215/vinoteca/internal/models"

// occasionAffinity maps an occasion tag to per-wine-type bonuses. A pair
// absent from the table contributes nothing. Celebration strongly favors
// sparkling; the remaining entries are mild nudges. These are illustrative
// heuristics kept as auditable static data, not validated pairing science.
var occasionAffinity = map[string]map[models.WineType]float64{
	"celebration": {
		models.WineTypeSparkling: 0.15,
		models.WineTypeWhite:     0.05,
	},
	"dinner_party": {
		models.WineTypeRed:   0.1,
		models.WineTypeWhite: 0.08,
	},
	"casual": {
		models.WineTypeRose:  0.08,
		models.WineTypeWhite: 0.05,
		models.WineTypeRed:   0.05,
	},
	"gift": {
		models.WineTypeRed:       0.08,
		models.WineTypeSparkling: 0.08,
	},
	"collection": {
		models.WineTypeRed:       0.1,
		models.WineTypeFortified: 0.05,
	},
}
