package nutritionix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriflow/backend/internal/models"
)

func TestResolveIngredientsParsesFoods(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/natural/nutrients", r.URL.Path)
		assert.Equal(t, "test-app", r.Header.Get("x-app-id"))
		assert.Equal(t, "test-key", r.Header.Get("x-app-key"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "2 eggs and toast", payload["query"])

		_, _ = w.Write([]byte(`{
  "foods": [
    {"food_name": "eggs", "serving_qty": 2, "serving_unit": "large", "nf_calories": 143, "nf_protein": 12.6, "nf_total_carbohydrate": 0.7, "nf_total_fat": 9.5},
    {"food_name": "toast", "serving_qty": 1, "serving_unit": "slice", "nf_calories": 75, "nf_protein": 2.9, "nf_total_carbohydrate": 13.8, "nf_total_fat": 0.9}
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{AppID: "test-app", APIKey: "test-key", BaseURL: ts.URL, HTTPClient: ts.Client()}
	foods, err := c.ResolveIngredients(context.Background(), "2 eggs and toast")
	require.NoError(t, err)
	require.Len(t, foods, 2)

	assert.Equal(t, "eggs", foods[0].Name)
	assert.Equal(t, 2.0, foods[0].Quantity)
	assert.Equal(t, "large", foods[0].Unit)
	assert.Equal(t, 143.0, foods[0].Calories)
	assert.Equal(t, 12.6, foods[0].ProteinG)
	assert.Equal(t, "nutritionix", foods[0].Source)
	assert.Equal(t, "toast", foods[1].Name)
}

func TestResolveIngredientsEmptyResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"foods": []}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	foods, err := c.ResolveIngredients(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, foods)
}

func TestResolveExerciseSendsProfile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/natural/exercise", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "ran 30 minutes", payload["query"])
		assert.Equal(t, 70.0, payload["weight_kg"])
		assert.Equal(t, "male", payload["gender"])

		_, _ = w.Write([]byte(`{
  "exercises": [{"name": "running", "duration_min": 30, "nf_calories": 311, "met": 9.8}]
}`))
	}))
	defer ts.Close()

	profile := &models.User{WeightKg: 70, HeightCm: 175, Age: 30, Sex: models.SexMale}
	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	exercises, err := c.ResolveExercise(context.Background(), "ran 30 minutes", profile)
	require.NoError(t, err)
	require.Len(t, exercises, 1)

	assert.Equal(t, "running", exercises[0].Name)
	assert.Equal(t, 30.0, exercises[0].DurationMin)
	assert.Equal(t, 311.0, exercises[0].Calories)
	assert.Equal(t, 9.8, exercises[0].MET)
}

func TestResolveExerciseNilProfile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, hasWeight := payload["weight_kg"]
		assert.False(t, hasWeight, "no profile means no body fields")
		_, _ = w.Write([]byte(`{"exercises": []}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.ResolveExercise(context.Background(), "swimming", nil)
	require.NoError(t, err)
}

func TestErrorStatusIncludesBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "invalid credentials"}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.ResolveIngredients(context.Background(), "apple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid credentials")
}
