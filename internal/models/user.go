package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sex tokens accepted by the energy model. Any other value is rejected,
// never silently defaulted.
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Goal tokens for a user's calorie objective.
const (
	GoalLoss     = "loss"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

// User is the nutrition profile the aggregator reads. The aggregator treats
// it as read-only; only the profile endpoints mutate it.
type User struct {
	ID             uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	WeightKg       float64        `gorm:"not null" json:"weight_kg"`
	HeightCm       float64        `gorm:"not null" json:"height_cm"`
	Age            int            `gorm:"not null" json:"age"`
	Sex            string         `gorm:"size:10;not null" json:"sex"`
	ActivityFactor float64        `gorm:"not null;default:1.2" json:"activity_factor"`
	Goal           string         `gorm:"size:10;not null;default:'maintain'" json:"goal"`
	TDEEBase       float64        `json:"tdee_base"`
	TDEE           float64        `json:"tdee"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
