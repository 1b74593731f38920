package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriflow/backend/internal/models"
)

// ErrUpstreamUnavailable marks a failed call to an external nutrition
// service on a path that cannot degrade to local data. Handlers translate
// it to a 503 response.
var ErrUpstreamUnavailable = errors.New("nutrition service unavailable")

// ErrProductNotFound is returned when a barcode or search yields no product.
var ErrProductNotFound = errors.New("product not found")

// IntakeService is the free-text entry point: it normalizes a description,
// resolves it through the external providers and persists the result as
// meal items or activities.
type IntakeService struct {
	db         *gorm.DB
	foods      FoodResolver
	exercises  ExerciseResolver
	products   ProductLookup
	normalizer *Normalizer
	meals      *MealService
	activities *ActivityService
	profiles   *ProfileService
}

// NewIntakeService creates a new IntakeService instance
func NewIntakeService(db *gorm.DB, foods FoodResolver, exercises ExerciseResolver, products ProductLookup, normalizer *Normalizer, meals *MealService, activities *ActivityService, profiles *ProfileService) *IntakeService {
	return &IntakeService{
		db:         db,
		foods:      foods,
		exercises:  exercises,
		products:   products,
		normalizer: normalizer,
		meals:      meals,
		activities: activities,
		profiles:   profiles,
	}
}

// AddIngredients resolves a free-text meal description and stores the
// resulting items under the meal for (user, date, type), creating the meal
// when none exists.
func (s *IntakeService) AddIngredients(ctx context.Context, userID uuid.UUID, date, mealType, query string) ([]models.MealItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}

	normalized := s.normalizer.NormalizeQuery(query)
	foods, err := s.foods.ResolveIngredients(ctx, normalized)
	if err != nil {
		log.Printf("intake: resolving %q: %v", normalized, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(foods) == 0 {
		return nil, fmt.Errorf("%w: no food matched %q", ErrProductNotFound, query)
	}

	meal, err := s.findOrCreateMeal(ctx, userID, date, mealType)
	if err != nil {
		return nil, err
	}

	items := make([]models.MealItem, 0, len(foods))
	for _, f := range foods {
		item := models.MealItem{
			MealID:   meal.ID,
			Name:     f.Name,
			Brand:    f.Brand,
			Quantity: f.Quantity,
			Unit:     f.Unit,
			Calories: f.Calories,
			ProteinG: f.ProteinG,
			CarbsG:   f.CarbsG,
			FatG:     f.FatG,
			Source:   f.Source,
		}
		if err := s.meals.AddMealItem(ctx, userID, meal.ID, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// AddBarcode looks a product up by barcode, scales its per-100g facts to the
// consumed quantity and stores it as a meal item.
func (s *IntakeService) AddBarcode(ctx context.Context, userID uuid.UUID, date, mealType, barcode string, quantityG float64) (*models.MealItem, error) {
	if strings.TrimSpace(barcode) == "" {
		return nil, fmt.Errorf("%w: barcode is required", ErrInvalidInput)
	}
	if quantityG <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	product, err := s.products.ByBarcode(ctx, barcode)
	if err != nil {
		log.Printf("intake: barcode %s lookup: %v", barcode, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: barcode %s", ErrProductNotFound, barcode)
	}

	meal, err := s.findOrCreateMeal(ctx, userID, date, mealType)
	if err != nil {
		return nil, err
	}

	scale := quantityG / 100
	item := models.MealItem{
		MealID:   meal.ID,
		Name:     product.Name,
		Brand:    product.Brand,
		Quantity: quantityG,
		Unit:     "g",
		Calories: scaled(product.KcalPer100g, scale),
		ProteinG: scaled(product.ProteinPer100g, scale),
		CarbsG:   scaled(product.CarbsPer100g, scale),
		FatG:     scaled(product.FatPer100g, scale),
		Barcode:  barcode,
		Source:   "openfoodfacts",
	}
	if err := s.meals.AddMealItem(ctx, userID, meal.ID, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// LookupBarcode returns a product's facts by barcode without recording any
// intake.
func (s *IntakeService) LookupBarcode(ctx context.Context, barcode string) (*Product, error) {
	if strings.TrimSpace(barcode) == "" {
		return nil, fmt.Errorf("%w: barcode is required", ErrInvalidInput)
	}
	product, err := s.products.ByBarcode(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: barcode %s", ErrProductNotFound, barcode)
	}
	return product, nil
}

// SearchProduct runs a read-only free-text product search.
func (s *IntakeService) SearchProduct(ctx context.Context, query string) (*Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	product, err := s.products.Search(ctx, s.normalizer.NormalizeQuery(query))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: no product matched %q", ErrProductNotFound, query)
	}
	return product, nil
}

// AddExercise resolves a free-text exercise description against the profile
// and persists the resolved activities. preview skips persistence and
// returns the resolution only.
func (s *IntakeService) AddExercise(ctx context.Context, userID uuid.UUID, date, query string, preview bool) ([]ResolvedExercise, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	normalized := s.normalizer.NormalizeSport(query)
	resolved, err := s.exercises.ResolveExercise(ctx, normalized, profile)
	if err != nil {
		log.Printf("intake: resolving exercise %q: %v", normalized, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(resolved) == 0 {
		return nil, fmt.Errorf("%w: no exercise matched %q", ErrProductNotFound, query)
	}
	if preview {
		return resolved, nil
	}

	for _, ex := range resolved {
		activity := models.Activity{
			UserID:         userID,
			Date:           date,
			Description:    ex.Name,
			DurationMin:    ex.DurationMin,
			CaloriesBurned: ex.Calories,
			MET:            ex.MET,
		}
		if err := s.activities.CreateActivity(ctx, &activity); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func (s *IntakeService) findOrCreateMeal(ctx context.Context, userID uuid.UUID, date, mealType string) (*models.Meal, error) {
	if !validMealType(mealType) {
		return nil, fmt.Errorf("%w: unknown meal type %q", ErrInvalidInput, mealType)
	}
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND type = ?", userID, date, mealType).
		First(&meal).Error
	if err == nil {
		return &meal, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("fetching meal: %w", err)
	}

	meal = models.Meal{UserID: userID, Date: date, Type: mealType}
	if err := s.meals.CreateMeal(ctx, &meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

func scaled(per100g *float64, scale float64) float64 {
	if per100g == nil {
		return 0
	}
	return *per100g * scale
}
