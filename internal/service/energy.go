package service

import (
	"errors"
	"fmt"

	"github.com/nutriflow/backend/internal/models"
)

// ErrInvalidInput marks validation failures on caller-supplied values.
// Handlers translate it to a 400 response.
var ErrInvalidInput = errors.New("invalid input")

// BMR computes the basal metabolic rate with the Mifflin-St Jeor equation.
// Sex must be exactly "male" or "female"; any other token is an error rather
// than a silent default.
func BMR(weightKg, heightCm float64, age int, sex string) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return 0, fmt.Errorf("%w: weight, height and age must be positive", ErrInvalidInput)
	}
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch sex {
	case models.SexMale:
		return base + 5, nil
	case models.SexFemale:
		return base - 161, nil
	default:
		return 0, fmt.Errorf("%w: unknown sex %q, expected male or female", ErrInvalidInput, sex)
	}
}

// TDEEBase scales BMR by the activity factor.
func TDEEBase(bmr, activityFactor float64) (float64, error) {
	if activityFactor <= 0 {
		return 0, fmt.Errorf("%w: activity factor must be positive", ErrInvalidInput)
	}
	return bmr * activityFactor, nil
}

// GoalAdjust applies the goal scaling to a base TDEE: loss x0.8, gain x1.15,
// maintain unchanged. The multiplicative convention is used at every call
// site (aggregation, live goals, profile update). Unknown goals fall back to
// maintain, mirroring how profiles default.
func GoalAdjust(tdeeBase float64, goal string) float64 {
	switch goal {
	case models.GoalLoss:
		return tdeeBase * 0.8
	case models.GoalGain:
		return tdeeBase * 1.15
	default:
		return tdeeBase
	}
}

// MacroTargets derives daily macro targets from body weight and the calorie
// goal. Protein scales with weight by goal, fat takes 25% of calories, carbs
// the remainder (floored at zero for aggressive cuts).
func MacroTargets(weightKg, calorieGoal float64, goal string) (proteinG, fatG, carbsG float64) {
	switch goal {
	case models.GoalGain:
		proteinG = 2.0 * weightKg
	case models.GoalLoss:
		proteinG = 1.8 * weightKg
	default:
		proteinG = 1.6 * weightKg
	}
	fatG = 0.25 * calorieGoal / 9
	remaining := calorieGoal - proteinG*4 - fatG*9
	carbsG = remaining / 4
	if carbsG < 0 {
		carbsG = 0
	}
	return proteinG, fatG, carbsG
}

// ProfileEnergy computes bmr, base TDEE and goal-adjusted TDEE for a profile
// in one call.
func ProfileEnergy(u *models.User) (bmr, tdeeBase, tdee float64, err error) {
	bmr, err = BMR(u.WeightKg, u.HeightCm, u.Age, u.Sex)
	if err != nil {
		return 0, 0, 0, err
	}
	tdeeBase, err = TDEEBase(bmr, u.ActivityFactor)
	if err != nil {
		return 0, 0, 0, err
	}
	return bmr, tdeeBase, GoalAdjust(tdeeBase, u.Goal), nil
}
