package nutritionix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nutriflow/backend/internal/models"
	"github.com/nutriflow/backend/internal/service"
)

const defaultBaseURL = "https://trackapi.nutritionix.com"

// Client talks to the Nutritionix natural-language API. AppID and APIKey
// are required for real traffic; BaseURL and HTTPClient exist so tests can
// point the client at a local server.
type Client struct {
	AppID      string
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

var (
	_ service.FoodResolver     = (*Client)(nil)
	_ service.ExerciseResolver = (*Client)(nil)
)

type nutrientsResponse struct {
	Foods []struct {
		FoodName          string  `json:"food_name"`
		BrandName         string  `json:"brand_name"`
		ServingQty        float64 `json:"serving_qty"`
		ServingUnit       string  `json:"serving_unit"`
		Calories          float64 `json:"nf_calories"`
		Protein           float64 `json:"nf_protein"`
		TotalCarbohydrate float64 `json:"nf_total_carbohydrate"`
		TotalFat          float64 `json:"nf_total_fat"`
	} `json:"foods"`
}

type exerciseResponse struct {
	Exercises []struct {
		Name        string  `json:"name"`
		DurationMin float64 `json:"duration_min"`
		Calories    float64 `json:"nf_calories"`
		MET         float64 `json:"met"`
	} `json:"exercises"`
}

// ResolveIngredients sends a natural-language food query and maps every
// returned food onto a resolved entry.
func (c *Client) ResolveIngredients(ctx context.Context, query string) ([]service.ResolvedFood, error) {
	payload := map[string]interface{}{"query": query}

	var parsed nutrientsResponse
	if err := c.postJSON(ctx, "/v2/natural/nutrients", payload, &parsed); err != nil {
		return nil, err
	}

	foods := make([]service.ResolvedFood, 0, len(parsed.Foods))
	for _, f := range parsed.Foods {
		foods = append(foods, service.ResolvedFood{
			Name:     f.FoodName,
			Brand:    f.BrandName,
			Quantity: f.ServingQty,
			Unit:     f.ServingUnit,
			Calories: f.Calories,
			ProteinG: f.Protein,
			CarbsG:   f.TotalCarbohydrate,
			FatG:     f.TotalFat,
			Source:   "nutritionix",
		})
	}
	return foods, nil
}

// ResolveExercise sends a natural-language exercise query. Profile values
// improve the calorie estimate when present; Nutritionix applies its own
// defaults otherwise.
func (c *Client) ResolveExercise(ctx context.Context, query string, profile *models.User) ([]service.ResolvedExercise, error) {
	payload := map[string]interface{}{"query": query}
	if profile != nil {
		if profile.WeightKg > 0 {
			payload["weight_kg"] = profile.WeightKg
		}
		if profile.HeightCm > 0 {
			payload["height_cm"] = profile.HeightCm
		}
		if profile.Age > 0 {
			payload["age"] = profile.Age
		}
		if profile.Sex != "" {
			payload["gender"] = profile.Sex
		}
	}

	var parsed exerciseResponse
	if err := c.postJSON(ctx, "/v2/natural/exercise", payload, &parsed); err != nil {
		return nil, err
	}

	exercises := make([]service.ResolvedExercise, 0, len(parsed.Exercises))
	for _, e := range parsed.Exercises {
		exercises = append(exercises, service.ResolvedExercise{
			Name:        e.Name,
			DurationMin: e.DurationMin,
			Calories:    e.Calories,
			MET:         e.MET,
		})
	}
	return exercises, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode nutritionix request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create nutritionix request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", c.AppID)
	req.Header.Set("x-app-key", c.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute nutritionix request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read nutritionix response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nutritionix status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode nutritionix response: %w", err)
	}
	return nil
}
