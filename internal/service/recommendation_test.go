package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSuggestions struct{}

func (failingSuggestions) Lookup(ctx context.Context, nutrient string, count int) ([]FoodSuggestion, error) {
	return nil, errors.New("suggestion backend down")
}

func testAnalysis(deficiencies, excesses []string) *WeeklyAnalysis {
	return &WeeklyAnalysis{
		UserID:         uuid.New(),
		AvgCalories:    1400,
		AvgProteinG:    50,
		AvgCarbsG:      150,
		AvgFatG:        35,
		TargetCalories: 2000,
		TargetProteinG: 84,
		Deficiencies:   deficiencies,
		Excesses:       excesses,
	}
}

func TestRankProteinDeficit(t *testing.T) {
	svc := NewRecommendationService(nil, NewStaticSuggestions())

	recs := svc.Rank(context.Background(), testAnalysis([]string{"protein"}, nil))
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "deficit_protein", rec.Category)
	assert.Equal(t, 1, rec.Priority)
	assert.Equal(t, 50.0, rec.CurrentValue)
	assert.Equal(t, 84.0, rec.TargetValue)
	assert.Contains(t, rec.Explanation, "50.0")
	assert.Contains(t, rec.Explanation, "84.0")
	assert.Contains(t, rec.Explanation, "-34.0", "signed delta to one decimal")
	assert.NotEqual(t, uuid.Nil, rec.ID)
}

func TestRankSortsByPriorityNotInputOrder(t *testing.T) {
	svc := NewRecommendationService(nil, NewStaticSuggestions())

	// Deliberately feed low-priority tags first.
	analysis := testAnalysis([]string{"fat", "carbs", "protein", "calories"}, nil)
	recs := svc.Rank(context.Background(), analysis)
	require.Len(t, recs, 4)

	priorities := make([]int, len(recs))
	for i, r := range recs {
		priorities[i] = r.Priority
	}
	assert.True(t, sort.IntsAreSorted(priorities), "got priorities %v", priorities)
	assert.Equal(t, 1, recs[0].Priority)
	assert.Equal(t, "deficit_fat", recs[3].Category)
}

func TestRankTruncatesToFour(t *testing.T) {
	svc := NewRecommendationService(nil, NewStaticSuggestions())

	analysis := testAnalysis([]string{"calories", "protein", "carbs", "fat", "fiber"}, []string{"sodium"})
	recs := svc.Rank(context.Background(), analysis)

	assert.Len(t, recs, 4)
	for _, r := range recs {
		assert.LessOrEqual(t, r.Priority, 2, "only the most urgent categories survive truncation")
	}
}

func TestRankAttachesSuggestions(t *testing.T) {
	svc := NewRecommendationService(nil, NewStaticSuggestions())

	recs := svc.Rank(context.Background(), testAnalysis([]string{"protein"}, nil))
	require.Len(t, recs, 1)
	require.Len(t, recs[0].FoodSuggestions, 3)
	assert.Equal(t, "Grilled chicken breast", recs[0].FoodSuggestions[0].Name)
}

func TestRankSuggestionFailureDegrades(t *testing.T) {
	svc := NewRecommendationService(nil, failingSuggestions{})

	recs := svc.Rank(context.Background(), testAnalysis([]string{"protein"}, nil))
	require.Len(t, recs, 1)
	assert.Empty(t, recs[0].FoodSuggestions, "lookup failure leaves the recommendation intact")
}

func TestRankExcessCategory(t *testing.T) {
	svc := NewRecommendationService(nil, NewStaticSuggestions())

	analysis := testAnalysis(nil, []string{"calories"})
	analysis.AvgCalories = 2600
	recs := svc.Rank(context.Background(), analysis)
	require.Len(t, recs, 1)

	assert.Equal(t, "excess_calories", recs[0].Category)
	assert.Equal(t, 4, recs[0].Priority, "excess calories has no table entry and defaults to 4")
	assert.Contains(t, recs[0].Explanation, "+600.0")
}

func TestRankEmptyAnalysis(t *testing.T) {
	svc := NewRecommendationService(nil, NewStaticSuggestions())

	recs := svc.Rank(context.Background(), testAnalysis(nil, nil))
	assert.Empty(t, recs)
}

func TestGetRecommendationsEndToEnd(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	target := 2000.0
	for i := 1; i <= 4; i++ {
		seedSummary(t, db, userID, daysAgo(i), 1400, 50, 180, 40, &target, 2000)
	}

	svc := NewRecommendationService(NewAnalysisService(db), NewStaticSuggestions())
	resp, err := svc.GetRecommendations(context.Background(), userID, 7)
	require.NoError(t, err)

	require.NotNil(t, resp.Analysis)
	assert.Equal(t, 70.0, resp.Analysis.OverallScore)
	assert.Len(t, resp.Recommendations, 2)
	assert.NotZero(t, resp.GeneratedAt)
	assert.NotEmpty(t, resp.Disclaimer)
}

func TestStaticSuggestionsLookup(t *testing.T) {
	src := NewStaticSuggestions()

	found, err := src.Lookup(context.Background(), "fat", 2)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = src.Lookup(context.Background(), "unobtainium", 3)
	require.NoError(t, err)
	assert.Empty(t, found)
}
