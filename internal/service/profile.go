package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriflow/backend/internal/models"
)

// ErrUserNotFound is returned when a profile id does not exist.
var ErrUserNotFound = errors.New("user not found")

// ProfileUpdate carries a partial profile change. Nil fields are left
// untouched.
type ProfileUpdate struct {
	WeightKg       *float64 `json:"weight_kg"`
	HeightCm       *float64 `json:"height_cm"`
	Age            *int     `json:"age"`
	Sex            *string  `json:"sex"`
	ActivityFactor *float64 `json:"activity_factor"`
	Goal           *string  `json:"goal"`
}

// Goals is the live goal computation for a profile and day.
type Goals struct {
	BMR            float64 `json:"bmr"`
	TDEEBase       float64 `json:"tdee_base"`
	TDEE           float64 `json:"tdee"`
	CaloriesBurned float64 `json:"calories_burned"`
	TargetCalories float64 `json:"target_calories"`
	TargetProteinG float64 `json:"target_protein_g"`
	TargetFatG     float64 `json:"target_fat_g"`
	TargetCarbsG   float64 `json:"target_carbs_g"`
}

// ProfileService manages user profiles and the live goal computation.
type ProfileService struct {
	db         *gorm.DB
	aggregator Aggregator
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, aggregator Aggregator) *ProfileService {
	return &ProfileService{db: db, aggregator: aggregator}
}

// GetProfile returns one user profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return &user, nil
}

// GetOrCreateProfile returns the profile, creating a placeholder row when
// none exists yet so first-time clients can start updating immediately.
func (s *ProfileService) GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	fresh := models.User{
		ID:             userID,
		ActivityFactor: 1.2,
		Goal:           models.GoalMaintain,
	}
	if err := s.db.WithContext(ctx).Create(&fresh).Error; err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	return &fresh, nil
}

// UpdateProfile applies a partial update, recomputes the stored bmr/tdee
// snapshots and refreshes today's summary so energy-derived fields follow
// the profile change.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.WeightKg != nil {
		if *update.WeightKg <= 0 {
			return nil, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
		}
		user.WeightKg = *update.WeightKg
	}
	if update.HeightCm != nil {
		if *update.HeightCm <= 0 {
			return nil, fmt.Errorf("%w: height must be positive", ErrInvalidInput)
		}
		user.HeightCm = *update.HeightCm
	}
	if update.Age != nil {
		if *update.Age <= 0 {
			return nil, fmt.Errorf("%w: age must be positive", ErrInvalidInput)
		}
		user.Age = *update.Age
	}
	if update.Sex != nil {
		if *update.Sex != models.SexMale && *update.Sex != models.SexFemale {
			return nil, fmt.Errorf("%w: unknown sex %q, expected male or female", ErrInvalidInput, *update.Sex)
		}
		user.Sex = *update.Sex
	}
	if update.ActivityFactor != nil {
		if *update.ActivityFactor <= 0 {
			return nil, fmt.Errorf("%w: activity factor must be positive", ErrInvalidInput)
		}
		user.ActivityFactor = *update.ActivityFactor
	}
	if update.Goal != nil {
		switch *update.Goal {
		case models.GoalLoss, models.GoalMaintain, models.GoalGain:
			user.Goal = *update.Goal
		default:
			return nil, fmt.Errorf("%w: unknown goal %q", ErrInvalidInput, *update.Goal)
		}
	}

	// Refresh the stored energy snapshot when the profile is complete
	// enough to compute it. Partial profiles keep their previous snapshot.
	if _, tdeeBase, tdee, eerr := ProfileEnergy(user); eerr == nil {
		user.TDEEBase = tdeeBase
		user.TDEE = tdee
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	if s.aggregator != nil {
		today := time.Now().UTC().Format("2006-01-02")
		if _, err := s.aggregator.Recompute(ctx, userID, today); err != nil {
			log.Printf("profile: summary recompute for %s/%s: %v", userID, today, err)
		}
	}

	return user, nil
}

// GetGoals computes the live goals for a day: energy model from the current
// profile plus the calories already burned that day.
func (s *ProfileService) GetGoals(ctx context.Context, userID uuid.UUID, date string) (*Goals, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	bmr, tdeeBase, tdee, err := ProfileEnergy(user)
	if err != nil {
		return nil, err
	}

	var burned float64
	var activities []models.Activity
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Find(&activities).Error; err == nil {
		for _, a := range activities {
			burned += a.CaloriesBurned
		}
	}

	targetCalories := tdee
	proteinG, fatG, carbsG := MacroTargets(user.WeightKg, targetCalories, user.Goal)

	return &Goals{
		BMR:            bmr,
		TDEEBase:       tdeeBase,
		TDEE:           tdee,
		CaloriesBurned: burned,
		TargetCalories: targetCalories,
		TargetProteinG: proteinG,
		TargetFatG:     fatG,
		TargetCarbsG:   carbsG,
	}, nil
}
