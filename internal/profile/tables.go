// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package profile

import "github.com/tomtom215/vinoteca/internal/models"

// The rule tables below are static lookup data, kept as plain maps so they
// can be audited and extended without touching calculator logic. The numeric
// tuples are tuned constants carried over for behavioral compatibility, not
// derived from a model.

// flavorAxes is the per-intensity tuple for one wine color.
type flavorAxes struct {
	fruitiness float64
	earthiness float64
	oakiness   float64
	tannins    float64
}

// redIntensityAxes maps flavor-intensity to the red sub-profile axes.
// Reds weight tannins and earthiness more heavily than whites.
var redIntensityAxes = map[string]flavorAxes{
	"subtle":   {fruitiness: 5, earthiness: 3, oakiness: 3, tannins: 4},
	"moderate": {fruitiness: 6, earthiness: 5, oakiness: 5, tannins: 6},
	"bold":     {fruitiness: 8, earthiness: 7, oakiness: 7, tannins: 8},
}

// whiteIntensityAxes maps flavor-intensity to the white sub-profile axes.
var whiteIntensityAxes = map[string]flavorAxes{
	"subtle":   {fruitiness: 5, earthiness: 2, oakiness: 2, tannins: 1},
	"moderate": {fruitiness: 6, earthiness: 3, oakiness: 4, tannins: 1},
	"bold":     {fruitiness: 8, earthiness: 4, oakiness: 6, tannins: 2},
}

// sparklingIntensityAxes maps flavor-intensity to the sparkling sub-profile axes.
var sparklingIntensityAxes = map[string]flavorAxes{
	"subtle":   {fruitiness: 5, earthiness: 2, oakiness: 1, tannins: 1},
	"moderate": {fruitiness: 6, earthiness: 2, oakiness: 2, tannins: 1},
	"bold":     {fruitiness: 7, earthiness: 3, oakiness: 3, tannins: 1},
}

// Baseline acidity per color; not driven by any answer today.
const (
	redAcidity       = 5
	whiteAcidity     = 6
	sparklingAcidity = 7
)

// sweetnessByPreference maps the sweetness answer to the 0-10 sweetness axis.
var sweetnessByPreference = map[string]float64{
	"dry":     2,
	"off-dry": 4,
	"sweet":   7,
}

// defaultSweetness applies when the sweetness question is unanswered.
const defaultSweetness = 3

// varietalsByStyleTried maps a wine-types-tried choice to the varietals it
// suggests. Values may repeat across choices; repetition signals strength
// of interest and is preserved in the profile.
var varietalsByStyleTried = map[string][]string{
	"red-light":   {"Pinot Noir", "Gamay", "Sangiovese"},
	"red-full":    {"Cabernet Sauvignon", "Syrah", "Malbec"},
	"white-crisp": {"Sauvignon Blanc", "Pinot Grigio", "Albariño"},
	"white-rich":  {"Chardonnay", "Viognier", "Roussanne"},
	"rose":        {"Grenache", "Pinot Noir"},
	"sparkling":   {"Chardonnay", "Pinot Noir"},
	"dessert":     {"Riesling", "Sémillon"},
	"fortified":   {"Touriga Nacional", "Palomino"},
}

// regionsByCountryInterest maps a region-interest choice to concrete regions.
var regionsByCountryInterest = map[string][]string{
	"france":    {"Bordeaux", "Burgundy", "Rhône Valley"},
	"italy":     {"Tuscany", "Piedmont"},
	"spain":     {"Rioja", "Ribera del Duero"},
	"usa":       {"Napa Valley", "Sonoma", "Willamette Valley"},
	"australia": {"Barossa Valley", "Margaret River"},
	"argentina": {"Mendoza"},
	"germany":   {"Mosel", "Rheingau"},
	"portugal":  {"Douro Valley"},
}

// bodyByIntensity is the body a flavor-intensity answer implies, used by the
// consistency bonus to check alignment with the body-preference answer.
var bodyByIntensity = map[string]models.BodyStyle{
	"subtle":   models.BodyLight,
	"moderate": models.BodyMedium,
	"bold":     models.BodyFull,
}
