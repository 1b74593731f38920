package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutriflow/backend/internal/models"
)

// ErrMissingIdentifier is returned when a recompute is requested without a
// user ID or date. It is the only error the aggregator raises on its own
// behalf; downstream read failures degrade to defaults instead.
var ErrMissingIdentifier = errors.New("missing required identifier")

// SummaryService is the daily aggregator. Recompute derives the full
// DailySummary for a (user, date) from the current meal and activity rows
// and replaces the stored row wholesale. It holds no state of its own, so
// concurrent recomputes for the same key are safe to race: the last writer
// wins and any later mutation self-heals the row.
type SummaryService struct {
	db *gorm.DB
}

var _ Aggregator = (*SummaryService)(nil)

// NewSummaryService creates a new SummaryService instance
func NewSummaryService(db *gorm.DB) *SummaryService {
	return &SummaryService{db: db}
}

// Recompute rebuilds and upserts the daily summary for one user and date.
func (s *SummaryService) Recompute(ctx context.Context, userID uuid.UUID, date string) (*models.DailySummary, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id", ErrMissingIdentifier)
	}
	if date == "" {
		return nil, fmt.Errorf("%w: date", ErrMissingIdentifier)
	}

	summary := models.DailySummary{
		UserID:      userID,
		Date:        date,
		LastUpdated: time.Now().UTC(),
	}

	// Meal totals. A read failure here leaves the totals at zero rather than
	// failing the refresh.
	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND date = ?", userID, date).
		Find(&meals).Error; err != nil {
		log.Printf("summary: reading meals for %s/%s: %v", userID, date, err)
	}
	summary.NumMeals = len(meals)
	for _, m := range meals {
		for _, it := range m.Items {
			summary.CaloriesConsumed += it.Calories
			summary.ProteinsConsumed += it.ProteinG
			summary.CarbsConsumed += it.CarbsG
			summary.FatsConsumed += it.FatG
		}
	}

	// Activity totals.
	var activities []models.Activity
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Find(&activities).Error; err != nil {
		log.Printf("summary: reading activities for %s/%s: %v", userID, date, err)
	}
	summary.NumActivities = len(activities)
	for _, a := range activities {
		summary.CaloriesBurned += a.CaloriesBurned
		summary.SportDurationMin += a.DurationMin
	}

	s.applyEnergy(ctx, &summary)

	summary.CalorieBalance = (summary.CaloriesConsumed - summary.CaloriesBurned) - summary.TDEE
	summary.HasData = summary.NumMeals > 0 || summary.NumActivities > 0

	goal := s.userGoal(ctx, userID)
	summary.FeedbackMessage = feedbackMessage(goal, summary.CalorieBalance)

	// Full replace keyed on (user_id, date): every column is rewritten so a
	// stale field can never survive a recompute.
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			UpdateAll: true,
		}).
		Create(&summary).Error; err != nil {
		return nil, fmt.Errorf("upserting daily summary: %w", err)
	}

	return &summary, nil
}

// applyEnergy fills bmr, tdee and the target fields. Profile lookup failure
// falls back to the previously stored bmr/tdee when a row exists, then to
// safe defaults; target fields are left unset when they cannot be computed
// honestly.
func (s *SummaryService) applyEnergy(ctx context.Context, summary *models.DailySummary) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", summary.UserID).Error
	if err == nil {
		if bmr, _, tdee, eerr := ProfileEnergy(&user); eerr == nil {
			summary.BMR = bmr
			summary.TDEE = tdee

			targetCalories := tdee
			proteinG, fatG, carbsG := MacroTargets(user.WeightKg, targetCalories, user.Goal)
			summary.TargetCalories = &targetCalories
			summary.TargetProteinG = &proteinG
			summary.TargetFatG = &fatG
			summary.TargetCarbsG = &carbsG
			return
		}
		// Profile exists but is not computable (e.g. legacy sex token):
		// treated the same as a missing profile.
	}

	var prev models.DailySummary
	if perr := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", summary.UserID, summary.Date).
		First(&prev).Error; perr == nil && prev.BMR > 0 && prev.TDEE > 0 {
		summary.BMR = prev.BMR
		summary.TDEE = prev.TDEE
		return
	}

	log.Printf("summary: no usable profile for %s, using default energy values", summary.UserID)
	summary.BMR = DefaultBMR
	summary.TDEE = DefaultTDEE
}

// userGoal reads the profile goal, defaulting to maintain when the profile
// is unavailable so the feedback ladder always produces a message.
func (s *SummaryService) userGoal(ctx context.Context, userID uuid.UUID) string {
	var user models.User
	if err := s.db.WithContext(ctx).Select("goal").First(&user, "id = ?", userID).Error; err != nil {
		return models.GoalMaintain
	}
	if user.Goal == "" {
		return models.GoalMaintain
	}
	return user.Goal
}

// feedbackMessage maps (goal, balance) onto one of four tiers per goal.
// Loss and gain ladders mirror each other; maintain is symmetric around
// zero with a +-150 kcal balanced band.
func feedbackMessage(goal string, balance float64) string {
	switch goal {
	case models.GoalLoss:
		switch {
		case balance < -300:
			return "Significant deficit, on track for steady weight loss."
		case balance < 0:
			return "Moderate deficit, keep it up."
		case balance < 150:
			return "Close to surplus, watch your intake."
		default:
			return "Calorie surplus, adjust your meals to stay on your loss goal."
		}
	case models.GoalGain:
		switch {
		case balance > 300:
			return "Strong surplus, good for mass gain."
		case balance > 0:
			return "Slight surplus, ideal for lean muscle gain."
		case balance > -150:
			return "Close to deficit, eat a bit more to keep gaining."
		default:
			return "Calorie deficit, increase your intake to support your gain goal."
		}
	default: // maintain
		switch {
		case balance < -300:
			return "Well below maintenance, consider eating more."
		case balance < -150:
			return "Slightly under maintenance, watch your energy levels."
		case balance <= 150:
			return "Balanced, right on maintenance."
		default:
			return "Above maintenance, watch your portions."
		}
	}
}

// History returns the most recent daily summaries for a user, newest first.
func (s *SummaryService) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.DailySummary, error) {
	if limit <= 0 {
		limit = 30
	}
	var rows []models.DailySummary
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// Get returns the stored summary for one date, or nil when none exists.
func (s *SummaryService) Get(ctx context.Context, userID uuid.UUID, date string) (*models.DailySummary, error) {
	var row models.DailySummary
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
