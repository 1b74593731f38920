package service

// Reference nutrition thresholds for the weekly analyzer (adult averages).
const (
	// Minimum safe daily calories, the last-resort target when neither
	// stored targets nor TDEE values are available.
	MinSafeCalories = 1200.0

	// Optimal protein intake per kg of body weight.
	OptimalProteinPerKg = 1.2

	// Reference body weight used when analyzing protein intake. The weekly
	// analyzer works off stored summary rows which carry no weight, so a
	// population reference is used rather than inventing a value.
	ReferenceBodyWeightKg = 70.0

	// Macro share bounds, as percent of total calories.
	MinCarbsPercent = 45.0
	MinFatPercent   = 20.0

	// Daily micronutrient bounds. The corresponding per-day fields are not
	// populated by the aggregator, so these checks never fire today; they
	// are kept so the thresholds live in one place when the fields arrive.
	MinFiberGrams   = 25.0
	MaxSodiumMg     = 2300.0
	MaxSugarPercent = 10.0

	// Calorie adequacy band around the personal target.
	CalorieDeficitRatio = 0.8
	CalorieExcessRatio  = 1.2

	// Points deducted from the overall score per flagged issue.
	PenaltyPerIssue = 15.0
)

// Confidence thresholds: days with recorded intake inside the window.
const (
	HighConfidenceDays   = 6
	MediumConfidenceDays = 4
)

// Safe defaults used by the aggregator when the profile cannot be read and
// no previously stored values exist. Aggregation must never fail the write
// path over a missing profile.
const (
	DefaultBMR  = 1500.0
	DefaultTDEE = 2000.0
)

// recommendationPriorities is the fixed ranking table for recommendation
// categories. Lower is more urgent. Categories absent from the table default
// to 3 for deficits and 4 for excesses.
var recommendationPriorities = map[string]int{
	"deficit_calories": 1,
	"deficit_protein":  1,
	"excess_sodium":    2,
	"deficit_fiber":    2,
	"excess_sugar":     3,
	"deficit_carbs":    3,
	"deficit_fat":      4,
}

// deficitMessages are the headline texts per deficient nutrient.
var deficitMessages = map[string]string{
	"calories": "Your calorie intake looks too low for your daily energy needs.",
	"protein":  "Increase your protein intake to preserve muscle mass and satiety.",
	"fiber":    "Eat more fiber to support digestion and gut health.",
	"carbs":    "Add more complex carbohydrates to sustain your daily energy.",
	"fat":      "Include healthy fats in your diet for vitamin absorption.",
}

// excessMessages are the headline texts per excessive nutrient.
var excessMessages = map[string]string{
	"calories": "Slightly reduce your portions to reach your nutrition goals.",
	"sodium":   "Limit added salt to protect your cardiovascular health.",
	"sugar":    "Cut added sugars to under 10% of your daily calories.",
}

// ConfidenceLevel classifies how trustworthy an analysis is from the number
// of days with recorded intake.
func ConfidenceLevel(daysWithData int) string {
	switch {
	case daysWithData >= HighConfidenceDays:
		return "high"
	case daysWithData >= MediumConfidenceDays:
		return "medium"
	default:
		return "low"
	}
}

// TargetProteinGrams returns the optimal daily protein for a body weight.
func TargetProteinGrams(weightKg float64) float64 {
	return weightKg * OptimalProteinPerKg
}
