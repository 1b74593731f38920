package database

import (
	"gorm.io/gorm"

	"github.com/nutriflow/backend/internal/models"
)

// RunMigrations creates or updates the schema for all domain models.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Meal{},
		&models.MealItem{},
		&models.Activity{},
		&models.DailySummary{},
	)
}
