// Package profile stores the account's dietary profile and turns it into
// recipe search filters.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"mealmate/internal/docstore"
	"mealmate/internal/recipes"
)

// Profile holds an account's preferences as kept in the users document.
type Profile struct {
	Name               string   `json:"name"`
	Allergies          []string `json:"allergies"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	CalorieGoal        int      `json:"calorieGoal"`
	PictureURL         string   `json:"profilePicture,omitempty"`
}

// DietFilters maps the profile onto recipe search filters. The first dietary
// preference becomes the diet label; every allergy becomes a health
// exclusion.
func (p Profile) DietFilters() recipes.DietFilters {
	var f recipes.DietFilters
	if len(p.DietaryPreferences) > 0 {
		f.Diet = p.DietaryPreferences[0]
	}
	f.AllergyExclusions = append(f.AllergyExclusions, p.Allergies...)
	return f
}

// Store loads and saves profiles in the document store.
type Store struct {
	docs docstore.Store
	log  *logrus.Logger
}

func NewStore(docs docstore.Store, log *logrus.Logger) *Store {
	return &Store{docs: docs, log: log}
}

// Load returns the account's profile. An account without a stored profile
// gets the zero profile, not an error.
func (s *Store) Load(ctx context.Context, accountID string) (Profile, error) {
	var p Profile
	if err := s.docs.Get(ctx, docstore.KindUsers, accountID, &p); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return Profile{}, nil
		}
		return Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return p, nil
}

// Save replaces the account's stored profile.
func (s *Store) Save(ctx context.Context, accountID string, p Profile) error {
	if err := s.docs.Set(ctx, docstore.KindUsers, accountID, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
