package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nutriflow/backend/internal/models"
)

// ResolvedFood is one food entry returned by a resolver, normalized to the
// units stored on meal items.
type ResolvedFood struct {
	Name     string  `json:"name"`
	Brand    string  `json:"brand,omitempty"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	Source   string  `json:"source"`
}

// ResolvedExercise is one exercise entry returned by a resolver.
type ResolvedExercise struct {
	Name        string  `json:"name"`
	DurationMin float64 `json:"duration_min"`
	Calories    float64 `json:"calories"`
	MET         float64 `json:"met,omitempty"`
}

// FoodResolver turns a free-text meal description into resolved food
// entries. Implementations may be slow or fail; callers degrade gracefully.
type FoodResolver interface {
	ResolveIngredients(ctx context.Context, query string) ([]ResolvedFood, error)
}

// ExerciseResolver turns a free-text exercise description into resolved
// exercise entries, using the profile for calorie estimation.
type ExerciseResolver interface {
	ResolveExercise(ctx context.Context, query string, profile *models.User) ([]ResolvedExercise, error)
}

// ProductLookup resolves packaged products by barcode or search term.
type ProductLookup interface {
	ByBarcode(ctx context.Context, barcode string) (*Product, error)
	Search(ctx context.Context, query string) (*Product, error)
}

// Product is a packaged food with per-100g nutrition facts. Nil nutrient
// pointers mean the upstream database has no value, which is distinct from
// zero.
type Product struct {
	Barcode        string   `json:"barcode"`
	Name           string   `json:"name"`
	Brand          string   `json:"brand"`
	KcalPer100g    *float64 `json:"energy_kcal_per_100g,omitempty"`
	ProteinPer100g *float64 `json:"proteins_per_100g,omitempty"`
	CarbsPer100g   *float64 `json:"carbs_per_100g,omitempty"`
	FatPer100g     *float64 `json:"fat_per_100g,omitempty"`
	SugarsPer100g  *float64 `json:"sugars_per_100g,omitempty"`
	SaltPer100g    *float64 `json:"salt_per_100g,omitempty"`
}

// FoodSuggestion is one concrete food attached to a recommendation.
type FoodSuggestion struct {
	Name                string             `json:"name"`
	NutrientValue       float64            `json:"nutrient_value"`
	NutrientUnit        string             `json:"nutrient_unit"`
	Portion             string             `json:"portion"`
	PortionSizeG        float64            `json:"portion_size"`
	Source              string             `json:"source"`
	CaloriesPerPortion  float64            `json:"calories_per_portion,omitempty"`
	AdditionalNutrients map[string]float64 `json:"additional_nutrients,omitempty"`
}

// SuggestionSource provides food suggestions for a nutrient. The ranker only
// depends on this interface so a live external search can replace the static
// table without touching ranking logic.
type SuggestionSource interface {
	Lookup(ctx context.Context, nutrient string, count int) ([]FoodSuggestion, error)
}

// Aggregator recomputes the daily summary for one (user, date). Handlers and
// services that mutate meals or activities call it as a derived-data
// refresh: failures are logged, never propagated to the primary write.
type Aggregator interface {
	Recompute(ctx context.Context, userID uuid.UUID, date string) (*models.DailySummary, error)
}
