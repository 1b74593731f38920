package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nutriflow/backend/internal/service"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

// Client queries the OpenFoodFacts public API for packaged products. The
// zero value works; BaseURL and HTTPClient exist so tests can point it at a
// local server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

var _ service.ProductLookup = (*Client)(nil)

type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string     `json:"product_name"`
		Brands      string     `json:"brands"`
		Nutriments  nutriments `json:"nutriments"`
	} `json:"product"`
}

type searchResponse struct {
	Products []struct {
		ProductName string     `json:"product_name"`
		Code        string     `json:"code"`
		Brands      string     `json:"brands"`
		Nutriments  nutriments `json:"nutriments"`
	} `json:"products"`
}

type nutriments struct {
	EnergyKcal100g *float64 `json:"energy-kcal_100g"`
	Proteins100g   *float64 `json:"proteins_100g"`
	Carbs100g      *float64 `json:"carbohydrates_100g"`
	Fat100g        *float64 `json:"fat_100g"`
	Sugars100g     *float64 `json:"sugars_100g"`
	Salt100g       *float64 `json:"salt_100g"`
}

// ByBarcode fetches one product by barcode. A product that OpenFoodFacts
// does not know yields (nil, nil), not an error.
func (c *Client) ByBarcode(ctx context.Context, barcode string) (*service.Product, error) {
	endpoint := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL(), url.PathEscape(barcode))

	var parsed productResponse
	if err := c.getJSON(ctx, endpoint, &parsed); err != nil {
		return nil, err
	}
	if parsed.Status != 1 {
		return nil, nil
	}

	return &service.Product{
		Barcode:        barcode,
		Name:           parsed.Product.ProductName,
		Brand:          parsed.Product.Brands,
		KcalPer100g:    parsed.Product.Nutriments.EnergyKcal100g,
		ProteinPer100g: parsed.Product.Nutriments.Proteins100g,
		CarbsPer100g:   parsed.Product.Nutriments.Carbs100g,
		FatPer100g:     parsed.Product.Nutriments.Fat100g,
		SugarsPer100g:  parsed.Product.Nutriments.Sugars100g,
		SaltPer100g:    parsed.Product.Nutriments.Salt100g,
	}, nil
}

// Search runs a free-text search and returns the first hit, or (nil, nil)
// when nothing matches.
func (c *Client) Search(ctx context.Context, query string) (*service.Product, error) {
	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	endpoint := fmt.Sprintf("%s/cgi/search.pl?%s", c.baseURL(), params.Encode())

	var parsed searchResponse
	if err := c.getJSON(ctx, endpoint, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Products) == 0 {
		return nil, nil
	}

	first := parsed.Products[0]
	return &service.Product{
		Barcode:        first.Code,
		Name:           first.ProductName,
		Brand:          first.Brands,
		KcalPer100g:    first.Nutriments.EnergyKcal100g,
		ProteinPer100g: first.Nutriments.Proteins100g,
		CarbsPer100g:   first.Nutriments.Carbs100g,
		FatPer100g:     first.Nutriments.Fat100g,
		SugarsPer100g:  first.Nutriments.Sugars100g,
		SaltPer100g:    first.Nutriments.Salt100g,
	}, nil
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create openfoodfacts request: %w", err)
	}
	req.Header.Set("User-Agent", "nutriflow-backend/1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read openfoodfacts response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openfoodfacts status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode openfoodfacts response: %w", err)
	}
	return nil
}
