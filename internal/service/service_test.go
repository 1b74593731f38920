package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nutriflow/backend/internal/models"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Meal{},
		&models.MealItem{},
		&models.Activity{},
		&models.DailySummary{},
	))
	return db
}

// createTestUser stores a complete profile and returns it.
func createTestUser(t *testing.T, db *gorm.DB, goal string) *models.User {
	t.Helper()

	user := &models.User{
		WeightKg:       70,
		HeightCm:       175,
		Age:            30,
		Sex:            models.SexMale,
		ActivityFactor: 1.2,
		Goal:           goal,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
