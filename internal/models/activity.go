package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is one logged exercise session. Its lifecycle is independent from
// meals; deleting a meal never touches activities and vice versa.
type Activity struct {
	ID             uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:varchar(36);not null;index:idx_activities_user_date" json:"user_id"`
	Date           string         `gorm:"size:10;not null;index:idx_activities_user_date" json:"date"`
	Description    string         `gorm:"size:255;not null" json:"description"`
	DurationMin    float64        `gorm:"not null" json:"duration_min"`
	CaloriesBurned float64        `gorm:"not null" json:"calories_burned"`
	MET            float64        `json:"met,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
