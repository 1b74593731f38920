package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriflow/backend/internal/models"
)

func TestBMR(t *testing.T) {
	bmr, err := BMR(70, 175, 30, models.SexMale)
	require.NoError(t, err)
	assert.Equal(t, 1648.75, bmr)

	bmr, err = BMR(70, 175, 30, models.SexFemale)
	require.NoError(t, err)
	assert.Equal(t, 1482.75, bmr)
}

func TestBMRInvalidSex(t *testing.T) {
	_, err := BMR(70, 175, 30, "other")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BMR(70, 175, 30, "Male")
	assert.ErrorIs(t, err, ErrInvalidInput, "sex tokens are case sensitive")

	_, err = BMR(70, 175, 30, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBMRInvalidMeasurements(t *testing.T) {
	cases := []struct {
		name   string
		weight float64
		height float64
		age    int
	}{
		{"zero weight", 0, 175, 30},
		{"negative weight", -70, 175, 30},
		{"zero height", 70, 0, 30},
		{"zero age", 70, 175, 0},
		{"negative age", 70, 175, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BMR(tc.weight, tc.height, tc.age, models.SexMale)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestTDEEBase(t *testing.T) {
	tdee, err := TDEEBase(1648.75, 1.2)
	require.NoError(t, err)
	assert.InDelta(t, 1978.5, tdee, 0.001)

	_, err = TDEEBase(1648.75, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGoalAdjust(t *testing.T) {
	assert.InDelta(t, 1600.0, GoalAdjust(2000, models.GoalLoss), 0.001)
	assert.InDelta(t, 2300.0, GoalAdjust(2000, models.GoalGain), 0.001)
	assert.Equal(t, 2000.0, GoalAdjust(2000, models.GoalMaintain))
	assert.Equal(t, 2000.0, GoalAdjust(2000, "unknown"), "unknown goals behave like maintain")
}

func TestMacroTargets(t *testing.T) {
	proteinG, fatG, carbsG := MacroTargets(70, 2000, models.GoalMaintain)
	assert.InDelta(t, 112.0, proteinG, 0.001)
	assert.InDelta(t, 55.555, fatG, 0.01)
	// carbs take whatever calories remain
	assert.InDelta(t, (2000-112*4-fatG*9)/4, carbsG, 0.001)

	proteinG, _, _ = MacroTargets(70, 1600, models.GoalLoss)
	assert.InDelta(t, 126.0, proteinG, 0.001)

	proteinG, _, _ = MacroTargets(70, 2300, models.GoalGain)
	assert.InDelta(t, 140.0, proteinG, 0.001)
}

func TestMacroTargetsCarbsFlooredAtZero(t *testing.T) {
	// An aggressive calorie goal can push the carb remainder negative.
	_, _, carbsG := MacroTargets(100, 500, models.GoalGain)
	assert.Equal(t, 0.0, carbsG)
}

func TestProfileEnergy(t *testing.T) {
	user := &models.User{
		WeightKg:       70,
		HeightCm:       175,
		Age:            30,
		Sex:            models.SexMale,
		ActivityFactor: 1.2,
		Goal:           models.GoalLoss,
	}

	bmr, tdeeBase, tdee, err := ProfileEnergy(user)
	require.NoError(t, err)
	assert.Equal(t, 1648.75, bmr)
	assert.InDelta(t, 1978.5, tdeeBase, 0.001)
	assert.InDelta(t, 1978.5*0.8, tdee, 0.001)
}

func TestProfileEnergyIncomplete(t *testing.T) {
	_, _, _, err := ProfileEnergy(&models.User{Sex: models.SexMale})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
