package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriflow/backend/internal/models"
)

// WeeklyAnalysis is the aggregate nutritional picture over a trailing
// window. Averages cover only the days with recorded intake; days_with_data
// counts those days and drives the confidence level.
type WeeklyAnalysis struct {
	UserID       uuid.UUID `json:"user_id"`
	PeriodStart  string    `json:"period_start"`
	PeriodEnd    string    `json:"period_end"`
	DaysAnalyzed int       `json:"days_analyzed"`
	DaysWithData int       `json:"days_with_data"`

	AvgCalories float64 `json:"avg_calories"`
	AvgProteinG float64 `json:"avg_protein_g"`
	AvgCarbsG   float64 `json:"avg_carbs_g"`
	AvgFatG     float64 `json:"avg_fat_g"`

	TargetCalories float64 `json:"target_calories"`
	TargetProteinG float64 `json:"target_protein_g"`

	Deficiencies []string `json:"deficiencies"`
	Excesses     []string `json:"excesses"`

	OverallScore float64 `json:"overall_score"`
	Confidence   string  `json:"confidence"`
}

// AnalysisService computes weekly nutrition analyses from stored daily
// summaries.
type AnalysisService struct {
	db *gorm.DB
}

// NewAnalysisService creates a new AnalysisService instance
func NewAnalysisService(db *gorm.DB) *AnalysisService {
	return &AnalysisService{db: db}
}

// Analyze builds the analysis for the trailing window ending on endDate.
// An empty endDate means today. days is clamped to [1, 30] with a default
// of 7.
func (s *AnalysisService) Analyze(ctx context.Context, userID uuid.UUID, endDate string, days int) (*WeeklyAnalysis, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id", ErrMissingIdentifier)
	}
	if days <= 0 {
		days = 7
	}
	if days > 30 {
		days = 30
	}

	end := time.Now().UTC()
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end date must be YYYY-MM-DD", ErrInvalidInput)
		}
		end = parsed
	}
	start := end.AddDate(0, 0, -(days - 1))
	analysis := &WeeklyAnalysis{
		UserID:       userID,
		PeriodStart:  start.Format("2006-01-02"),
		PeriodEnd:    end.Format("2006-01-02"),
		DaysAnalyzed: days,
		Deficiencies: []string{},
		Excesses:     []string{},
		Confidence:   "low",
	}

	var rows []models.DailySummary
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, analysis.PeriodStart, analysis.PeriodEnd).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("reading daily summaries: %w", err)
	}

	// Only days with actual intake contribute to the averages; an
	// activity-only day says nothing about eating habits.
	var withIntake []models.DailySummary
	for _, r := range rows {
		if r.CaloriesConsumed > 0 {
			withIntake = append(withIntake, r)
		}
	}
	analysis.DaysWithData = len(withIntake)

	if analysis.DaysWithData == 0 {
		// Nothing to score. A zero score with low confidence is the honest
		// answer, not a failure.
		analysis.OverallScore = 0.0
		return analysis, nil
	}

	n := float64(analysis.DaysWithData)
	for _, r := range withIntake {
		analysis.AvgCalories += r.CaloriesConsumed
		analysis.AvgProteinG += r.ProteinsConsumed
		analysis.AvgCarbsG += r.CarbsConsumed
		analysis.AvgFatG += r.FatsConsumed
	}
	analysis.AvgCalories /= n
	analysis.AvgProteinG /= n
	analysis.AvgCarbsG /= n
	analysis.AvgFatG /= n

	analysis.TargetCalories = s.targetCalories(userID, withIntake)
	analysis.TargetProteinG = TargetProteinGrams(ReferenceBodyWeightKg)

	s.detectIssues(analysis)

	issues := len(analysis.Deficiencies) + len(analysis.Excesses)
	score := 100.0 - float64(issues)*PenaltyPerIssue
	if score < 0 {
		score = 0
	}
	analysis.OverallScore = score
	analysis.Confidence = ConfidenceLevel(analysis.DaysWithData)

	return analysis, nil
}

// targetCalories resolves the calorie target with a three tier fallback:
// the mean of the stored targets, then the mean of the stored tdee values,
// then the minimum safe intake floor.
func (s *AnalysisService) targetCalories(userID uuid.UUID, rows []models.DailySummary) float64 {
	var sum float64
	var n int
	for _, r := range rows {
		if r.TargetCalories != nil && *r.TargetCalories > 0 {
			sum += *r.TargetCalories
			n++
		}
	}
	if n > 0 {
		return sum / float64(n)
	}
	for _, r := range rows {
		if r.TDEE > 0 {
			sum += r.TDEE
			n++
		}
	}
	if n > 0 {
		return sum / float64(n)
	}
	log.Printf("analysis: no stored target or tdee for %s, using safety floor", userID)
	return MinSafeCalories
}

// detectIssues fills Deficiencies and Excesses from the averages. Fiber,
// sodium and sugar checks stay disabled until those nutrients are tracked
// per item; the thresholds are already defined in constants.go.
func (s *AnalysisService) detectIssues(a *WeeklyAnalysis) {
	if a.TargetCalories > 0 {
		if a.AvgCalories < CalorieDeficitRatio*a.TargetCalories {
			a.Deficiencies = append(a.Deficiencies, "calories")
		} else if a.AvgCalories > CalorieExcessRatio*a.TargetCalories {
			a.Excesses = append(a.Excesses, "calories")
		}
	}

	// Protein uses a population reference target rather than the profile
	// weight so the check stays stable even for sparse profiles.
	if a.AvgProteinG < a.TargetProteinG {
		a.Deficiencies = append(a.Deficiencies, "protein")
	}

	if a.AvgCalories > 0 {
		carbsPercent := (a.AvgCarbsG * 4 / a.AvgCalories) * 100
		if carbsPercent < MinCarbsPercent {
			a.Deficiencies = append(a.Deficiencies, "carbs")
		}
		fatPercent := (a.AvgFatG * 9 / a.AvgCalories) * 100
		if fatPercent < MinFatPercent {
			a.Deficiencies = append(a.Deficiencies, "fat")
		}
	}
}
