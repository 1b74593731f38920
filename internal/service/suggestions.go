package service

import (
	"context"
)

// StaticSuggestions serves food suggestions from a built-in table. It is the
// default SuggestionSource; a live food-search backed source can replace it
// without the ranker noticing.
type StaticSuggestions struct{}

var _ SuggestionSource = (*StaticSuggestions)(nil)

// NewStaticSuggestions creates a new StaticSuggestions instance
func NewStaticSuggestions() *StaticSuggestions {
	return &StaticSuggestions{}
}

// Lookup returns up to count suggestions for a nutrient. Unknown nutrients
// yield an empty list, never an error.
func (s *StaticSuggestions) Lookup(ctx context.Context, nutrient string, count int) ([]FoodSuggestion, error) {
	table, ok := staticFoodSuggestions[nutrient]
	if !ok {
		return []FoodSuggestion{}, nil
	}
	if count <= 0 || count > len(table) {
		count = len(table)
	}
	out := make([]FoodSuggestion, count)
	copy(out, table[:count])
	return out, nil
}

// staticFoodSuggestions maps a nutrient tag to reference foods rich in it.
// Nutrient values are per listed portion.
var staticFoodSuggestions = map[string][]FoodSuggestion{
	"protein": {
		{
			Name:                "Grilled chicken breast",
			NutrientValue:       23.0,
			NutrientUnit:        "g",
			Portion:             "100g",
			PortionSizeG:        100.0,
			Source:              "static",
			CaloriesPerPortion:  165,
			AdditionalNutrients: map[string]float64{"fiber": 0, "sodium": 74},
		},
		{
			Name:                "Oven-baked salmon",
			NutrientValue:       25.0,
			NutrientUnit:        "g",
			Portion:             "100g",
			PortionSizeG:        100.0,
			Source:              "static",
			CaloriesPerPortion:  206,
			AdditionalNutrients: map[string]float64{"fiber": 0, "sodium": 83},
		},
		{
			Name:                "Plain Greek yogurt",
			NutrientValue:       10.0,
			NutrientUnit:        "g",
			Portion:             "150g",
			PortionSizeG:        150.0,
			Source:              "static",
			CaloriesPerPortion:  130,
			AdditionalNutrients: map[string]float64{"fiber": 0, "sodium": 36},
		},
	},
	"fiber": {
		{
			Name:                "Rolled oats",
			NutrientValue:       10.0,
			NutrientUnit:        "g",
			Portion:             "80g",
			PortionSizeG:        80.0,
			Source:              "static",
			CaloriesPerPortion:  304,
			AdditionalNutrients: map[string]float64{"protein": 11, "sodium": 2},
		},
		{
			Name:                "Cooked broccoli",
			NutrientValue:       5.1,
			NutrientUnit:        "g",
			Portion:             "200g",
			PortionSizeG:        200.0,
			Source:              "static",
			CaloriesPerPortion:  55,
			AdditionalNutrients: map[string]float64{"protein": 5, "sodium": 8},
		},
		{
			Name:                "Red kidney beans",
			NutrientValue:       15.0,
			NutrientUnit:        "g",
			Portion:             "200g",
			PortionSizeG:        200.0,
			Source:              "static",
			CaloriesPerPortion:  245,
			AdditionalNutrients: map[string]float64{"protein": 17, "sodium": 13},
		},
	},
	"carbs": {
		{
			Name:                "Cooked quinoa",
			NutrientValue:       22.0,
			NutrientUnit:        "g",
			Portion:             "100g",
			PortionSizeG:        100.0,
			Source:              "static",
			CaloriesPerPortion:  120,
			AdditionalNutrients: map[string]float64{"protein": 4.4, "fiber": 2.8},
		},
		{
			Name:                "Baked sweet potato",
			NutrientValue:       18.0,
			NutrientUnit:        "g",
			Portion:             "150g",
			PortionSizeG:        150.0,
			Source:              "static",
			CaloriesPerPortion:  112,
			AdditionalNutrients: map[string]float64{"protein": 2, "fiber": 3.8},
		},
		{
			Name:                "Banana",
			NutrientValue:       23.0,
			NutrientUnit:        "g",
			Portion:             "1 medium (120g)",
			PortionSizeG:        120.0,
			Source:              "static",
			CaloriesPerPortion:  105,
			AdditionalNutrients: map[string]float64{"protein": 1.3, "fiber": 3.1},
		},
	},
	"fat": {
		{
			Name:                "Avocado",
			NutrientValue:       15.0,
			NutrientUnit:        "g",
			Portion:             "1/2 avocado (100g)",
			PortionSizeG:        100.0,
			Source:              "static",
			CaloriesPerPortion:  160,
			AdditionalNutrients: map[string]float64{"protein": 2, "fiber": 7},
		},
		{
			Name:                "Mixed nuts",
			NutrientValue:       20.0,
			NutrientUnit:        "g",
			Portion:             "30g",
			PortionSizeG:        30.0,
			Source:              "static",
			CaloriesPerPortion:  185,
			AdditionalNutrients: map[string]float64{"protein": 6, "fiber": 3},
		},
		{
			Name:                "Olive oil",
			NutrientValue:       14.0,
			NutrientUnit:        "g",
			Portion:             "1 tablespoon (15ml)",
			PortionSizeG:        15.0,
			Source:              "static",
			CaloriesPerPortion:  120,
			AdditionalNutrients: map[string]float64{"protein": 0, "fiber": 0},
		},
	},
}
