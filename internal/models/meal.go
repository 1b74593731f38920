package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal types. A user normally has at most one meal of a given type per date;
// the services look up-or-create by (user_id, date, type) but storage does
// not enforce uniqueness.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// Meal groups the items a user ate on a date, by meal type.
// Date is an ISO day string (YYYY-MM-DD); all per-day queries key on it.
type Meal struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;index:idx_meals_user_date" json:"user_id"`
	Date      string         `gorm:"size:10;not null;index:idx_meals_user_date" json:"date"`
	Type      string         `gorm:"size:20;not null" json:"type"`
	Note      string         `gorm:"type:text" json:"note"`
	Items     []MealItem     `gorm:"foreignKey:MealID" json:"items,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MealItem is one resolved food entry with its nutrition snapshot. The
// snapshot is taken at resolution time; later resolver changes do not touch
// stored items.
type MealItem struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	MealID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"meal_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Brand     string         `gorm:"size:255" json:"brand,omitempty"`
	Quantity  float64        `gorm:"not null" json:"quantity"`
	Unit      string         `gorm:"size:20;not null" json:"unit"`
	Calories  float64        `gorm:"not null" json:"calories"`
	ProteinG  float64        `gorm:"not null" json:"protein_g"`
	CarbsG    float64        `gorm:"not null" json:"carbs_g"`
	FatG      float64        `gorm:"not null" json:"fat_g"`
	Barcode   string         `gorm:"size:32" json:"barcode,omitempty"`
	Source    string         `gorm:"size:20;not null;default:'manual'" json:"source"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (mi *MealItem) BeforeCreate(tx *gorm.DB) error {
	if mi.ID == uuid.Nil {
		mi.ID = uuid.New()
	}
	return nil
}
