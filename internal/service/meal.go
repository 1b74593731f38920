package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriflow/backend/internal/models"
)

var (
	// ErrMealNotFound is returned when a meal id does not exist or belongs
	// to another user.
	ErrMealNotFound = errors.New("meal not found")
	// ErrMealItemNotFound is returned when a meal item id does not exist.
	ErrMealItemNotFound = errors.New("meal item not found")
)

// MealService manages meals and their items. Every mutation triggers a
// derived recompute of the day's summary; recompute failures are logged and
// never fail the primary write.
type MealService struct {
	db         *gorm.DB
	aggregator Aggregator
}

// NewMealService creates a new MealService instance
func NewMealService(db *gorm.DB, aggregator Aggregator) *MealService {
	return &MealService{db: db, aggregator: aggregator}
}

// CreateMeal stores a meal with its items and refreshes the daily summary.
func (s *MealService) CreateMeal(ctx context.Context, meal *models.Meal) error {
	if meal.UserID == uuid.Nil || meal.Date == "" {
		return fmt.Errorf("%w: user id and date are required", ErrInvalidInput)
	}
	if !validMealType(meal.Type) {
		return fmt.Errorf("%w: unknown meal type %q", ErrInvalidInput, meal.Type)
	}
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("creating meal: %w", err)
	}
	s.refresh(ctx, meal.UserID, meal.Date)
	return nil
}

// GetMeals returns all meals with items for one user and date.
func (s *MealService) GetMeals(ctx context.Context, userID uuid.UUID, date string) ([]models.Meal, error) {
	var meals []models.Meal
	q := s.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID)
	if date != "" {
		q = q.Where("date = ?", date)
	}
	if err := q.Order("created_at ASC").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("listing meals: %w", err)
	}
	return meals, nil
}

// GetMeal returns one meal with items, scoped to the owning user.
func (s *MealService) GetMeal(ctx context.Context, userID, mealID uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching meal: %w", err)
	}
	return &meal, nil
}

// UpdateMeal patches the mutable meal fields (type and note).
func (s *MealService) UpdateMeal(ctx context.Context, userID, mealID uuid.UUID, mealType, note *string) (*models.Meal, error) {
	meal, err := s.GetMeal(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if mealType != nil {
		if !validMealType(*mealType) {
			return nil, fmt.Errorf("%w: unknown meal type %q", ErrInvalidInput, *mealType)
		}
		updates["type"] = *mealType
	}
	if note != nil {
		updates["note"] = *note
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(meal).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("updating meal: %w", err)
		}
	}
	return s.GetMeal(ctx, userID, mealID)
}

// DeleteMeal removes a meal and its items, then refreshes the day.
func (s *MealService) DeleteMeal(ctx context.Context, userID, mealID uuid.UUID) error {
	meal, err := s.GetMeal(ctx, userID, mealID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(meal).Error
	})
	if err != nil {
		return fmt.Errorf("deleting meal: %w", err)
	}
	s.refresh(ctx, userID, meal.Date)
	return nil
}

// AddMealItem appends an item to an existing meal.
func (s *MealService) AddMealItem(ctx context.Context, userID, mealID uuid.UUID, item *models.MealItem) error {
	meal, err := s.GetMeal(ctx, userID, mealID)
	if err != nil {
		return err
	}
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", ErrInvalidInput)
	}
	if item.Calories < 0 || item.ProteinG < 0 || item.CarbsG < 0 || item.FatG < 0 {
		return fmt.Errorf("%w: nutrient values must be non-negative", ErrInvalidInput)
	}

	item.MealID = meal.ID
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("creating meal item: %w", err)
	}
	s.refresh(ctx, userID, meal.Date)
	return nil
}

// DeleteMealItem removes one item from a meal the user owns.
func (s *MealService) DeleteMealItem(ctx context.Context, userID, itemID uuid.UUID) error {
	var item models.MealItem
	err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMealItemNotFound
	}
	if err != nil {
		return fmt.Errorf("fetching meal item: %w", err)
	}

	meal, err := s.GetMeal(ctx, userID, item.MealID)
	if err != nil {
		return ErrMealItemNotFound
	}

	if err := s.db.WithContext(ctx).Delete(&item).Error; err != nil {
		return fmt.Errorf("deleting meal item: %w", err)
	}
	s.refresh(ctx, userID, meal.Date)
	return nil
}

func (s *MealService) refresh(ctx context.Context, userID uuid.UUID, date string) {
	if s.aggregator == nil {
		return
	}
	if _, err := s.aggregator.Recompute(ctx, userID, date); err != nil {
		log.Printf("meal: summary recompute for %s/%s: %v", userID, date, err)
	}
}

func validMealType(t string) bool {
	switch t {
	case models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnack:
		return true
	}
	return false
}
