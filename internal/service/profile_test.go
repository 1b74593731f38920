package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriflow/backend/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestGetProfileNotFound(t *testing.T) {
	svc := NewProfileService(newTestDB(t), nil)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetOrCreateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db, nil)
	userID := uuid.New()

	profile, err := svc.GetOrCreateProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.ID)
	assert.Equal(t, models.GoalMaintain, profile.Goal)
	assert.Equal(t, 1.2, profile.ActivityFactor)

	again, err := svc.GetOrCreateProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)
}

func TestUpdateProfileRefreshesEnergySnapshot(t *testing.T) {
	db := newTestDB(t)
	summaries := NewSummaryService(db)
	svc := NewProfileService(db, summaries)
	userID := uuid.New()

	profile, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{
		WeightKg:       floatPtr(70),
		HeightCm:       floatPtr(175),
		Age:            intPtr(30),
		Sex:            strPtr(models.SexMale),
		ActivityFactor: floatPtr(1.2),
		Goal:           strPtr(models.GoalLoss),
	})
	require.NoError(t, err)

	assert.InDelta(t, 1978.5, profile.TDEEBase, 0.001)
	assert.InDelta(t, 1978.5*0.8, profile.TDEE, 0.001)

	// Today's summary picks the new energy values up.
	today := time.Now().UTC().Format("2006-01-02")
	summary, err := summaries.Get(context.Background(), userID, today)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 1648.75, summary.BMR)
	assert.InDelta(t, profile.TDEE, summary.TDEE, 0.001)
}

func TestUpdateProfileValidation(t *testing.T) {
	svc := NewProfileService(newTestDB(t), nil)
	userID := uuid.New()

	_, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{WeightKg: floatPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateProfile(context.Background(), userID, ProfileUpdate{Sex: strPtr("unknown")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateProfile(context.Background(), userID, ProfileUpdate{Goal: strPtr("bulk")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProfilePartialKeepsSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db, nil)
	userID := uuid.New()

	// Weight alone is not enough to compute energy; the snapshot stays zero.
	profile, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{WeightKg: floatPtr(80)})
	require.NoError(t, err)
	assert.Equal(t, 80.0, profile.WeightKg)
	assert.Equal(t, 0.0, profile.TDEE)
}

func TestGetGoals(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db, nil)
	user := createTestUser(t, db, models.GoalMaintain)

	require.NoError(t, db.Create(&models.Activity{
		UserID: user.ID, Date: testDate, Description: "running", CaloriesBurned: 300,
	}).Error)

	goals, err := svc.GetGoals(context.Background(), user.ID, testDate)
	require.NoError(t, err)

	assert.Equal(t, 1648.75, goals.BMR)
	assert.InDelta(t, 1978.5, goals.TDEE, 0.001)
	assert.Equal(t, 300.0, goals.CaloriesBurned)
	assert.InDelta(t, 112.0, goals.TargetProteinG, 0.001)
	assert.Greater(t, goals.TargetCarbsG, 0.0)
}

func TestGetGoalsNoProfile(t *testing.T) {
	svc := NewProfileService(newTestDB(t), nil)

	_, err := svc.GetGoals(context.Background(), uuid.New(), testDate)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
