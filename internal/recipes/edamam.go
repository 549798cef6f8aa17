package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"mealmate/internal/config"
)

const searchTimeout = 10 * time.Second

// edamamClient queries the Edamam recipe search API.
type edamamClient struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	appKey     string
}

// NewClient creates a Searcher backed by the Edamam API.
func NewClient(cfg *config.Config) Searcher {
	return &edamamClient{
		httpClient: &http.Client{Timeout: searchTimeout},
		baseURL:    cfg.EdamamBaseURL,
		appID:      cfg.EdamamAppID,
		appKey:     cfg.EdamamAppKey,
	}
}

type nutrient struct {
	Quantity float64 `json:"quantity"`
}

type searchResponse struct {
	Hits []struct {
		Recipe struct {
			Label          string  `json:"label"`
			Calories       float64 `json:"calories"`
			Image          string  `json:"image"`
			TotalNutrients struct {
				Protein nutrient `json:"PROCNT"`
				Carbs   nutrient `json:"CHOCDF"`
				Fat     nutrient `json:"FAT"`
			} `json:"totalNutrients"`
			IngredientLines []string `json:"ingredientLines"`
		} `json:"recipe"`
	} `json:"hits"`
}

// Search queries the public recipe index for the given term and meal type.
func (c *edamamClient) Search(ctx context.Context, query, mealType string, filters DietFilters) ([]Candidate, error) {
	params := url.Values{}
	params.Set("type", "public")
	params.Set("q", query)
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("mealType", mealType)
	if filters.Diet != "" {
		params.Set("diet", filters.Diet)
	}
	for _, exclusion := range filters.AllergyExclusions {
		params.Add("health", exclusion)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recipe api error: status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	candidates := make([]Candidate, 0, len(body.Hits))
	for _, hit := range body.Hits {
		candidates = append(candidates, Candidate{
			Name:            hit.Recipe.Label,
			Calories:        hit.Recipe.Calories,
			ProteinGrams:    hit.Recipe.TotalNutrients.Protein.Quantity,
			CarbsGrams:      hit.Recipe.TotalNutrients.Carbs.Quantity,
			FatGrams:        hit.Recipe.TotalNutrients.Fat.Quantity,
			ImageURL:        hit.Recipe.Image,
			IngredientLines: hit.Recipe.IngredientLines,
		})
	}
	return candidates, nil
}
