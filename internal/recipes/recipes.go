// Package recipes provides the client for the external recipe search API.
package recipes

import "context"

// Candidate is one recipe returned by the search API, with macros still in
// the provider's floating-point form. Callers round when they snapshot a
// candidate into a meal plan.
type Candidate struct {
	Name            string
	Calories        float64
	ProteinGrams    float64
	CarbsGrams      float64
	FatGrams        float64
	ImageURL        string
	IngredientLines []string
}

// DietFilters narrows a search to the user's dietary profile.
type DietFilters struct {
	// Diet is a single diet label, e.g. "balanced" or "low-carb".
	Diet string

	// AllergyExclusions are health labels to exclude, e.g. "peanut-free".
	AllergyExclusions []string
}

// Searcher is the interface over the recipe search provider.
type Searcher interface {
	// Search returns the candidates for a free-text query restricted to a
	// meal type. An empty result set is a valid response, not an error.
	Search(ctx context.Context, query, mealType string, filters DietFilters) ([]Candidate, error)
}
