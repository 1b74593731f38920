package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recommendation is a single actionable nutrition advice entry produced by
// the ranker. Priority is 1 (most urgent) to 4.
type Recommendation struct {
	ID              uuid.UUID        `json:"id"`
	Category        string           `json:"category"`
	Priority        int              `json:"priority"`
	Message         string           `json:"message"`
	Explanation     string           `json:"explanation"`
	CurrentValue    float64          `json:"current_value"`
	TargetValue     float64          `json:"target_value"`
	Unit            string           `json:"unit"`
	FoodSuggestions []FoodSuggestion `json:"food_suggestions"`
}

// RecommendationsResponse bundles the analysis the recommendations were
// derived from with the ranked list itself.
type RecommendationsResponse struct {
	Analysis        *WeeklyAnalysis  `json:"analysis"`
	Recommendations []Recommendation `json:"recommendations"`
	GeneratedAt     time.Time        `json:"generated_at"`
	Disclaimer      string           `json:"disclaimer"`
}

const recommendationDisclaimer = "These recommendations are generated from your logged data and general nutrition guidelines. They are not medical advice; consult a professional for personalized guidance."

const maxRecommendations = 4
const maxFoodSuggestions = 3

// RecommendationService turns a weekly analysis into a ranked, bounded list
// of recommendations with optional food suggestions attached.
type RecommendationService struct {
	analysis    *AnalysisService
	suggestions SuggestionSource
}

// NewRecommendationService creates a new RecommendationService instance.
// suggestions may be nil, in which case recommendations carry no food
// suggestions.
func NewRecommendationService(analysis *AnalysisService, suggestions SuggestionSource) *RecommendationService {
	return &RecommendationService{analysis: analysis, suggestions: suggestions}
}

// GetRecommendations runs the weekly analysis for the trailing window and
// ranks recommendations from its findings.
func (s *RecommendationService) GetRecommendations(ctx context.Context, userID uuid.UUID, days int) (*RecommendationsResponse, error) {
	analysis, err := s.analysis.Analyze(ctx, userID, "", days)
	if err != nil {
		return nil, err
	}

	recs := s.Rank(ctx, analysis)

	return &RecommendationsResponse{
		Analysis:        analysis,
		Recommendations: recs,
		GeneratedAt:     time.Now().UTC(),
		Disclaimer:      recommendationDisclaimer,
	}, nil
}

// Rank builds recommendations from the analysis issue tags, orders them by
// the fixed priority table and truncates to the maximum. The sort decides
// the final order; generation order does not.
func (s *RecommendationService) Rank(ctx context.Context, analysis *WeeklyAnalysis) []Recommendation {
	recs := make([]Recommendation, 0, len(analysis.Deficiencies)+len(analysis.Excesses))

	for _, nutrient := range analysis.Deficiencies {
		recs = append(recs, s.buildDeficit(nutrient, analysis))
	}
	for _, nutrient := range analysis.Excesses {
		recs = append(recs, s.buildExcess(nutrient, analysis))
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority < recs[j].Priority
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}

	for i := range recs {
		recs[i].FoodSuggestions = s.lookupSuggestions(ctx, recs[i].Category)
	}

	return recs
}

func (s *RecommendationService) buildDeficit(nutrient string, analysis *WeeklyAnalysis) Recommendation {
	current, target, unit := deficitValues(nutrient, analysis)
	category := "deficit_" + nutrient

	message, ok := deficitMessages[nutrient]
	if !ok {
		message = fmt.Sprintf("Increase your %s intake.", nutrient)
	}

	return Recommendation{
		ID:              uuid.New(),
		Category:        category,
		Priority:        categoryPriority(category),
		Message:         message,
		Explanation:     explanation(current, target, unit),
		CurrentValue:    current,
		TargetValue:     target,
		Unit:            unit,
		FoodSuggestions: []FoodSuggestion{},
	}
}

func (s *RecommendationService) buildExcess(nutrient string, analysis *WeeklyAnalysis) Recommendation {
	current, target, unit := excessValues(nutrient, analysis)
	category := "excess_" + nutrient

	message, ok := excessMessages[nutrient]
	if !ok {
		message = fmt.Sprintf("Reduce your %s intake.", nutrient)
	}

	return Recommendation{
		ID:              uuid.New(),
		Category:        category,
		Priority:        categoryPriority(category),
		Message:         message,
		Explanation:     explanation(current, target, unit),
		CurrentValue:    current,
		TargetValue:     target,
		Unit:            unit,
		FoodSuggestions: []FoodSuggestion{},
	}
}

// explanation embeds the current and target values to one decimal place
// with their signed delta.
func explanation(current, target float64, unit string) string {
	return fmt.Sprintf("Your average intake is %.1f %s against a target of %.1f %s (%+.1f %s).",
		current, unit, target, unit, current-target, unit)
}

// deficitValues returns the current value, per-nutrient target and unit for
// a deficit category.
func deficitValues(nutrient string, a *WeeklyAnalysis) (current, target float64, unit string) {
	switch nutrient {
	case "calories":
		return a.AvgCalories, a.TargetCalories, "kcal"
	case "protein":
		return a.AvgProteinG, a.TargetProteinG, "g"
	case "carbs":
		return a.AvgCarbsG, 0.50 * a.AvgCalories / 4, "g"
	case "fat":
		return a.AvgFatG, 0.25 * a.AvgCalories / 9, "g"
	case "fiber":
		return 0, MinFiberGrams, "g"
	default:
		return 0, 0, ""
	}
}

// excessValues mirrors deficitValues for excess categories.
func excessValues(nutrient string, a *WeeklyAnalysis) (current, target float64, unit string) {
	switch nutrient {
	case "calories":
		return a.AvgCalories, a.TargetCalories, "kcal"
	case "sodium":
		return 0, MaxSodiumMg, "mg"
	case "sugar":
		return 0, MaxSugarPercent, "%"
	default:
		return 0, 0, ""
	}
}

// categoryPriority resolves a category against the fixed table. Unmapped
// deficits rank 3, unmapped excesses 4.
func categoryPriority(category string) int {
	if p, ok := recommendationPriorities[category]; ok {
		return p
	}
	if strings.HasPrefix(category, "deficit_") {
		return 3
	}
	return 4
}

// lookupSuggestions fetches up to three food suggestions for the nutrient
// behind a category. Lookup failures degrade to no suggestions.
func (s *RecommendationService) lookupSuggestions(ctx context.Context, category string) []FoodSuggestion {
	if s.suggestions == nil {
		return []FoodSuggestion{}
	}
	nutrient := strings.TrimPrefix(strings.TrimPrefix(category, "deficit_"), "excess_")
	found, err := s.suggestions.Lookup(ctx, nutrient, maxFoodSuggestions)
	if err != nil {
		log.Printf("recommendations: suggestion lookup for %s: %v", nutrient, err)
		return []FoodSuggestion{}
	}
	if len(found) > maxFoodSuggestions {
		found = found[:maxFoodSuggestions]
	}
	return found
}
