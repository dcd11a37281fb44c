// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package recommend

import "github.com/tomtom215/vinoteca/internal/models"

// servingByType holds templated serving guidance per wine type.
var servingByType = map[models.WineType]models.ServingRecommendation{
	models.WineTypeRed: {
		TemperatureMinC: 16, TemperatureMaxC: 18,
		DecantMinutes: 30,
		Glassware:     "large-bowl red glass",
	},
	models.WineTypeWhite: {
		TemperatureMinC: 8, TemperatureMaxC: 12,
		Glassware: "medium white glass",
	},
	models.WineTypeRose: {
		TemperatureMinC: 8, TemperatureMaxC: 10,
		Glassware: "medium white glass",
	},
	models.WineTypeSparkling: {
		TemperatureMinC: 6, TemperatureMaxC: 8,
		Glassware: "tulip or white glass",
	},
	models.WineTypeDessert: {
		TemperatureMinC: 8, TemperatureMaxC: 12,
		Glassware: "small dessert glass",
	},
	models.WineTypeFortified: {
		TemperatureMinC: 14, TemperatureMaxC: 18,
		Glassware: "small copita",
	},
}

// educationalNotes are short templated notes keyed by experience level and
// wine type, attached to the top tonight recommendation.
var educationalNotes = map[models.ExperienceLevel]map[models.WineType]string{
	models.ExperienceBeginner: {
		models.WineTypeRed:       "tannin is the drying sensation on your gums; it softens as a red ages or breathes",
		models.WineTypeWhite:     "acidity is what makes a white feel fresh; colder service sharpens it",
		models.WineTypeRose:      "rosé gets its color from brief skin contact, not from blending red and white",
		models.WineTypeSparkling: "finer, persistent bubbles usually signal traditional bottle fermentation",
		models.WineTypeDessert:   "sweet wines balance sugar with acidity; the best never taste syrupy",
		models.WineTypeFortified: "fortified wines have spirit added during fermentation, which is why they keep for weeks once open",
	},
	models.ExperienceIntermediate: {
		models.WineTypeRed:       "compare the same varietal across regions to taste what climate does to ripeness",
		models.WineTypeWhite:     "oak-fermented whites trade aromatics for texture; try the same grape both ways",
		models.WineTypeRose:      "structured rosés from Bandol or Tavel reward a year or two of patience",
		models.WineTypeSparkling: "disgorgement date matters: recently disgorged bottles taste brighter",
		models.WineTypeDessert:   "botrytized wines add a honeyed, saffron note you will not find in late-harvest styles",
		models.WineTypeFortified: "vintage and tawny port age in opposite directions: bottle versus barrel",
	},
	models.ExperienceAdvanced: {
		models.WineTypeRed:       "track this bottle's evolution against the producer's stated drinking window",
		models.WineTypeWhite:     "premier cru whites from cooler vintages often outlive the grand crus of warm ones",
		models.WineTypeRose:      "consider a vertical of one serious rosé to map how it develops",
		models.WineTypeSparkling: "single-vineyard grower bottlings show site character that house blends smooth away",
		models.WineTypeDessert:   "half-bottles of sweet wine age faster; factor format into your cellar plan",
		models.WineTypeFortified: "old-bottled madeira is nearly indestructible; it makes a fine benchmark for oxidative styles",
	},
}

// followUpQuestions are attached to a response to guide the next
// interaction, keyed by request type.
var followUpQuestions = map[RequestType][]string{
	RequestTonight: {
		"Are you pairing this with food tonight?",
		"Would you like a backup pick in a different style?",
	},
	RequestPurchase: {
		"What is your budget ceiling for this purchase?",
		"Do you want bottles to drink now or to cellar?",
	},
	RequestPairing: {
		"How spicy will the dish be?",
		"Is this a casual meal or a special occasion?",
	},
	RequestContextual: {
		"Should future suggestions assume this same occasion?",
	},
}

// regionSuggestions templates a purchase suggestion for well-known regions
// the cellar lacks. Regions outside the table get a generic template.
var regionSuggestions = map[string]models.SuggestedWine{
	"Bordeaux":          {Name: "Cru Bourgeois Bordeaux", Type: models.WineTypeRed, Region: "Bordeaux", Country: "France", Varietals: []string{"Cabernet Sauvignon", "Merlot"}},
	"Burgundy":          {Name: "Village-level Burgundy", Type: models.WineTypeRed, Region: "Burgundy", Country: "France", Varietals: []string{"Pinot Noir"}},
	"Rhône Valley":      {Name: "Côtes du Rhône Villages", Type: models.WineTypeRed, Region: "Rhône Valley", Country: "France", Varietals: []string{"Grenache", "Syrah"}},
	"Tuscany":           {Name: "Chianti Classico", Type: models.WineTypeRed, Region: "Tuscany", Country: "Italy", Varietals: []string{"Sangiovese"}},
	"Piedmont":          {Name: "Langhe Nebbiolo", Type: models.WineTypeRed, Region: "Piedmont", Country: "Italy", Varietals: []string{"Nebbiolo"}},
	"Rioja":             {Name: "Rioja Reserva", Type: models.WineTypeRed, Region: "Rioja", Country: "Spain", Varietals: []string{"Tempranillo"}},
	"Ribera del Duero":  {Name: "Ribera del Duero Crianza", Type: models.WineTypeRed, Region: "Ribera del Duero", Country: "Spain", Varietals: []string{"Tempranillo"}},
	"Napa Valley":       {Name: "Napa Cabernet Sauvignon", Type: models.WineTypeRed, Region: "Napa Valley", Country: "USA", Varietals: []string{"Cabernet Sauvignon"}},
	"Sonoma":            {Name: "Sonoma Coast Chardonnay", Type: models.WineTypeWhite, Region: "Sonoma", Country: "USA", Varietals: []string{"Chardonnay"}},
	"Willamette Valley": {Name: "Willamette Pinot Noir", Type: models.WineTypeRed, Region: "Willamette Valley", Country: "USA", Varietals: []string{"Pinot Noir"}},
	"Barossa Valley":    {Name: "Barossa Shiraz", Type: models.WineTypeRed, Region: "Barossa Valley", Country: "Australia", Varietals: []string{"Syrah"}},
	"Margaret River":    {Name: "Margaret River Chardonnay", Type: models.WineTypeWhite, Region: "Margaret River", Country: "Australia", Varietals: []string{"Chardonnay"}},
	"Mendoza":           {Name: "High-altitude Mendoza Malbec", Type: models.WineTypeRed, Region: "Mendoza", Country: "Argentina", Varietals: []string{"Malbec"}},
	"Mosel":             {Name: "Mosel Kabinett Riesling", Type: models.WineTypeWhite, Region: "Mosel", Country: "Germany", Varietals: []string{"Riesling"}},
	"Rheingau":          {Name: "Rheingau Trocken Riesling", Type: models.WineTypeWhite, Region: "Rheingau", Country: "Germany", Varietals: []string{"Riesling"}},
	"Douro Valley":      {Name: "Douro red blend", Type: models.WineTypeRed, Region: "Douro Valley", Country: "Portugal", Varietals: []string{"Touriga Nacional"}},
}

// typeSuggestions templates a purchase suggestion for an underrepresented
// core wine type.
var typeSuggestions = map[models.WineType]models.SuggestedWine{
	models.WineTypeRed:       {Name: "A versatile medium-bodied red", Type: models.WineTypeRed},
	models.WineTypeWhite:     {Name: "A crisp unoaked white", Type: models.WineTypeWhite},
	models.WineTypeSparkling: {Name: "A traditional-method sparkling", Type: models.WineTypeSparkling},
	models.WineTypeRose:      {Name: "A dry Provençal-style rosé", Type: models.WineTypeRose},
	models.WineTypeFortified: {Name: "A dry amontillado sherry", Type: models.WineTypeFortified},
	models.WineTypeDessert:   {Name: "A late-harvest Riesling", Type: models.WineTypeDessert},
}
