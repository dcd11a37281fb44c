// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package pairing

import "github.com/tomtom215/vinoteca/internal/models"

// categoryKeywords maps each food category to its membership keywords.
// Classification walks categoryOrder and the first category with a keyword
// hit wins; no hit at all falls through to general. Spicy is checked first
// so "spicy chicken" lands in spicy_food rather than poultry.
var categoryKeywords = map[models.FoodCategory][]string{
	models.FoodSpicy: {
		"spicy", "chili", "chilli", "sichuan", "szechuan", "curry",
		"jalapeño", "jalapeno", "habanero", "sriracha", "kimchi",
	},
	models.FoodRedMeat: {
		"beef", "steak", "lamb", "venison", "ribeye", "sirloin",
		"brisket", "short rib", "burger", "duck breast",
	},
	models.FoodSalmon: {
		"salmon", "trout", "arctic char",
	},
	models.FoodWhiteFish: {
		"fish", "cod", "halibut", "sole", "sea bass", "seabass",
		"snapper", "tilapia", "oyster", "scallop", "shrimp", "prawn",
		"crab", "lobster", "ceviche", "sushi", "sashimi",
	},
	models.FoodPoultry: {
		"chicken", "turkey", "quail", "poultry", "hen",
	},
	models.FoodPork: {
		"pork", "ham", "bacon", "prosciutto", "sausage", "chorizo",
		"charcuterie",
	},
	models.FoodCheese: {
		"cheese", "brie", "cheddar", "gouda", "parmesan", "gruyère",
		"gruyere", "manchego", "blue cheese", "goat cheese", "fondue",
	},
	models.FoodPasta: {
		"pasta", "spaghetti", "lasagna", "risotto", "ravioli",
		"gnocchi", "carbonara", "bolognese", "pizza",
	},
	models.FoodDessert: {
		"dessert", "chocolate", "cake", "tart", "crème brûlée",
		"creme brulee", "ice cream", "tiramisu", "pudding",
	},
}

// categoryOrder fixes the lookup order so classification is deterministic.
var categoryOrder = []models.FoodCategory{
	models.FoodSpicy,
	models.FoodRedMeat,
	models.FoodSalmon,
	models.FoodWhiteFish,
	models.FoodPoultry,
	models.FoodPork,
	models.FoodCheese,
	models.FoodPasta,
	models.FoodDessert,
}

// cookingImpacts is the fixed per-method impact table.
var cookingImpacts = map[models.CookingMethod]models.CookingImpact{
	models.CookingGrilled: {
		Method:        models.CookingGrilled,
		Intensity:     "high",
		Flavors:       []string{"smoky", "charred", "caramelized"},
		WineStyleHint: "bold reds with firm tannins",
	},
	models.CookingRoasted: {
		Method:        models.CookingRoasted,
		Intensity:     "medium",
		Flavors:       []string{"caramelized", "savory"},
		WineStyleHint: "structured reds or oaked whites",
	},
	models.CookingFried: {
		Method:        models.CookingFried,
		Intensity:     "high",
		Flavors:       []string{"crispy", "rich"},
		WineStyleHint: "high-acid whites or sparkling",
	},
	models.CookingSteamed: {
		Method:        models.CookingSteamed,
		Intensity:     "low",
		Flavors:       []string{"delicate", "clean"},
		WineStyleHint: "light crisp whites",
	},
	models.CookingBraised: {
		Method:        models.CookingBraised,
		Intensity:     "medium",
		Flavors:       []string{"rich", "savory", "tender"},
		WineStyleHint: "medium to full reds",
	},
	models.CookingRaw: {
		Method:        models.CookingRaw,
		Intensity:     "low",
		Flavors:       []string{"fresh", "delicate"},
		WineStyleHint: "crisp whites or dry sparkling",
	},
	models.CookingUnknown: {
		Method:    models.CookingUnknown,
		Intensity: "medium",
	},
}

// methodKeywords infers a cooking method from the description when the
// caller does not supply one.
var methodKeywords = []struct {
	keyword string
	method  models.CookingMethod
}{
	{"grilled", models.CookingGrilled},
	{"grill", models.CookingGrilled},
	{"barbecue", models.CookingGrilled},
	{"bbq", models.CookingGrilled},
	{"roasted", models.CookingRoasted},
	{"roast", models.CookingRoasted},
	{"baked", models.CookingRoasted},
	{"fried", models.CookingFried},
	{"deep-fried", models.CookingFried},
	{"crispy", models.CookingFried},
	{"steamed", models.CookingSteamed},
	{"poached", models.CookingSteamed},
	{"braised", models.CookingBraised},
	{"stewed", models.CookingBraised},
	{"slow-cooked", models.CookingBraised},
	{"raw", models.CookingRaw},
	{"tartare", models.CookingRaw},
	{"sashimi", models.CookingRaw},
	{"carpaccio", models.CookingRaw},
}

// Intensity scoring offsets. The score starts at 1, adds the spice and
// richness offsets plus keyword adjustments, then buckets.
var spiceOffset = map[string]int{
	"none":   0,
	"mild":   1,
	"medium": 2,
	"hot":    3,
}

var richnessOffset = map[string]int{
	"light":  0,
	"medium": 1,
	"rich":   2,
}

// intensityKeywords nudge the score for strongly signaling ingredients.
var intensityKeywords = []struct {
	keyword string
	delta   int
}{
	{"truffle", 2},
	{"foie gras", 2},
	{"delicate", -2},
	{"light", -2},
}

// flavorKeywords are free-form flavor notes surfaced in the analysis when
// they appear in the description.
var flavorKeywords = []string{
	"smoky", "garlic", "lemon", "butter", "cream", "herb", "tomato",
	"mushroom", "truffle", "citrus", "honey", "ginger", "soy",
}
