package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriflow/backend/internal/models"
)

func TestCreateMealTriggersRecompute(t *testing.T) {
	db := newTestDB(t)
	summaries := NewSummaryService(db)
	svc := NewMealService(db, summaries)
	user := createTestUser(t, db, models.GoalMaintain)

	meal := &models.Meal{
		UserID: user.ID,
		Date:   testDate,
		Type:   models.MealBreakfast,
		Items: []models.MealItem{
			{Name: "oatmeal", Calories: 300, ProteinG: 10, CarbsG: 54, FatG: 5},
		},
	}
	require.NoError(t, svc.CreateMeal(context.Background(), meal))
	assert.NotEqual(t, uuid.Nil, meal.ID)

	summary, err := summaries.Get(context.Background(), user.ID, testDate)
	require.NoError(t, err)
	require.NotNil(t, summary, "creating a meal refreshes the day")
	assert.Equal(t, 300.0, summary.CaloriesConsumed)
	assert.Equal(t, 1, summary.NumMeals)
}

func TestCreateMealValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db, nil)

	err := svc.CreateMeal(context.Background(), &models.Meal{Date: testDate, Type: models.MealLunch})
	assert.ErrorIs(t, err, ErrInvalidInput, "user id required")

	err = svc.CreateMeal(context.Background(), &models.Meal{UserID: uuid.New(), Date: testDate, Type: "brunch"})
	assert.ErrorIs(t, err, ErrInvalidInput, "unknown meal type")
}

func TestGetMealScopedToUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db, nil)
	owner := uuid.New()

	meal := &models.Meal{UserID: owner, Date: testDate, Type: models.MealDinner}
	require.NoError(t, svc.CreateMeal(context.Background(), meal))

	_, err := svc.GetMeal(context.Background(), uuid.New(), meal.ID)
	assert.ErrorIs(t, err, ErrMealNotFound, "another user cannot read the meal")

	got, err := svc.GetMeal(context.Background(), owner, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, meal.ID, got.ID)
}

func TestUpdateMealPatchesFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db, nil)
	userID := uuid.New()

	meal := &models.Meal{UserID: userID, Date: testDate, Type: models.MealLunch, Note: "original"}
	require.NoError(t, svc.CreateMeal(context.Background(), meal))

	newType := models.MealDinner
	updated, err := svc.UpdateMeal(context.Background(), userID, meal.ID, &newType, nil)
	require.NoError(t, err)
	assert.Equal(t, models.MealDinner, updated.Type)
	assert.Equal(t, "original", updated.Note, "unset fields stay untouched")

	badType := "brunch"
	_, err = svc.UpdateMeal(context.Background(), userID, meal.ID, &badType, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteMealCascadesAndRecomputes(t *testing.T) {
	db := newTestDB(t)
	summaries := NewSummaryService(db)
	svc := NewMealService(db, summaries)
	user := createTestUser(t, db, models.GoalMaintain)

	meal := &models.Meal{
		UserID: user.ID, Date: testDate, Type: models.MealLunch,
		Items: []models.MealItem{{Name: "pizza", Calories: 1200, ProteinG: 40, CarbsG: 140, FatG: 50}},
	}
	require.NoError(t, svc.CreateMeal(context.Background(), meal))
	require.NoError(t, svc.DeleteMeal(context.Background(), user.ID, meal.ID))

	var itemCount int64
	db.Model(&models.MealItem{}).Where("meal_id = ?", meal.ID).Count(&itemCount)
	assert.Equal(t, int64(0), itemCount, "items go with the meal")

	summary, err := summaries.Get(context.Background(), user.ID, testDate)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 0.0, summary.CaloriesConsumed)
}

func TestAddMealItemValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db, nil)
	userID := uuid.New()

	meal := &models.Meal{UserID: userID, Date: testDate, Type: models.MealSnack}
	require.NoError(t, svc.CreateMeal(context.Background(), meal))

	err := svc.AddMealItem(context.Background(), userID, meal.ID, &models.MealItem{})
	assert.ErrorIs(t, err, ErrInvalidInput, "name required")

	err = svc.AddMealItem(context.Background(), userID, meal.ID, &models.MealItem{Name: "x", Calories: -1})
	assert.ErrorIs(t, err, ErrInvalidInput, "negative nutrients rejected")

	err = svc.AddMealItem(context.Background(), userID, uuid.New(), &models.MealItem{Name: "x"})
	assert.ErrorIs(t, err, ErrMealNotFound)
}

func TestDeleteMealItem(t *testing.T) {
	db := newTestDB(t)
	summaries := NewSummaryService(db)
	svc := NewMealService(db, summaries)
	user := createTestUser(t, db, models.GoalMaintain)

	meal := &models.Meal{
		UserID: user.ID, Date: testDate, Type: models.MealLunch,
		Items: []models.MealItem{
			{Name: "steak", Calories: 400, ProteinG: 45},
			{Name: "fries", Calories: 500, CarbsG: 60, FatG: 25},
		},
	}
	require.NoError(t, svc.CreateMeal(context.Background(), meal))
	require.Len(t, meal.Items, 2)

	require.NoError(t, svc.DeleteMealItem(context.Background(), user.ID, meal.Items[1].ID))

	summary, err := summaries.Get(context.Background(), user.ID, testDate)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 400.0, summary.CaloriesConsumed)

	err = svc.DeleteMealItem(context.Background(), uuid.New(), meal.Items[0].ID)
	assert.ErrorIs(t, err, ErrMealItemNotFound, "scoped to the owning user")
}
