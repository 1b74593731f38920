package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailySummary is the per-(user,date) aggregation artifact. It is a pure
// function of the user's profile, meals and activities for that date at
// recompute time: every recompute fully replaces the row, never patches it,
// so a stale field can never survive. A day with no data is stored as a
// valid all-zero row rather than deleted.
//
// Target fields are pointers: nil means "not computed" (profile unavailable
// and no safe default applies), which is distinct from zero. BMR and TDEE
// always carry a value because the aggregator has a default fallback chain
// for them.
type DailySummary struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID           uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_summary_user_date" json:"user_id"`
	Date             string    `gorm:"size:10;not null;uniqueIndex:idx_summary_user_date" json:"date"`
	CaloriesConsumed float64   `json:"calories_consumed"`
	ProteinsConsumed float64   `json:"proteins_consumed"`
	CarbsConsumed    float64   `json:"carbs_consumed"`
	FatsConsumed     float64   `json:"fats_consumed"`
	CaloriesBurned   float64   `json:"calories_burned"`
	SportDurationMin float64   `json:"sport_duration_total"`
	BMR              float64   `json:"bmr"`
	TDEE             float64   `json:"tdee"`
	CalorieBalance   float64   `json:"calorie_balance"`
	TargetCalories   *float64  `json:"target_calories,omitempty"`
	TargetProteinG   *float64  `json:"target_protein_g,omitempty"`
	TargetFatG       *float64  `json:"target_fat_g,omitempty"`
	TargetCarbsG     *float64  `json:"target_carbs_g,omitempty"`
	NumMeals         int       `json:"num_meals"`
	NumActivities    int       `json:"num_activities"`
	HasData          bool      `json:"has_data"`
	FeedbackMessage  string    `gorm:"type:text" json:"feedback_message"`
	LastUpdated      time.Time `json:"last_updated"`
}

func (s *DailySummary) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
