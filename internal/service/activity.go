package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriflow/backend/internal/models"
)

// ErrActivityNotFound is returned when an activity id does not exist or
// belongs to another user.
var ErrActivityNotFound = errors.New("activity not found")

// ActivityService manages sport activities. Like meals, every mutation
// refreshes the day's summary as a non-fatal side effect.
type ActivityService struct {
	db         *gorm.DB
	aggregator Aggregator
}

// NewActivityService creates a new ActivityService instance
func NewActivityService(db *gorm.DB, aggregator Aggregator) *ActivityService {
	return &ActivityService{db: db, aggregator: aggregator}
}

// CreateActivity stores an activity and refreshes the daily summary.
func (s *ActivityService) CreateActivity(ctx context.Context, activity *models.Activity) error {
	if activity.UserID == uuid.Nil || activity.Date == "" {
		return fmt.Errorf("%w: user id and date are required", ErrInvalidInput)
	}
	if activity.DurationMin < 0 || activity.CaloriesBurned < 0 {
		return fmt.Errorf("%w: duration and calories must be non-negative", ErrInvalidInput)
	}
	if err := s.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("creating activity: %w", err)
	}
	s.refresh(ctx, activity.UserID, activity.Date)
	return nil
}

// GetActivities returns a user's activities, optionally filtered by date.
func (s *ActivityService) GetActivities(ctx context.Context, userID uuid.UUID, date string) ([]models.Activity, error) {
	var activities []models.Activity
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if date != "" {
		q = q.Where("date = ?", date)
	}
	if err := q.Order("created_at ASC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return activities, nil
}

// DeleteActivity removes one activity the user owns and refreshes the day.
func (s *ActivityService) DeleteActivity(ctx context.Context, userID, activityID uuid.UUID) error {
	var activity models.Activity
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", activityID, userID).
		First(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrActivityNotFound
	}
	if err != nil {
		return fmt.Errorf("fetching activity: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&activity).Error; err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	s.refresh(ctx, userID, activity.Date)
	return nil
}

func (s *ActivityService) refresh(ctx context.Context, userID uuid.UUID, date string) {
	if s.aggregator == nil {
		return
	}
	if _, err := s.aggregator.Recompute(ctx, userID, date); err != nil {
		log.Printf("activity: summary recompute for %s/%s: %v", userID, date, err)
	}
}
