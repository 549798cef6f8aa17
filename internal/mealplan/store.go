package mealplan

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"mealmate/internal/docstore"
)

// Store persists the full meal plan document for an account.
type Store struct {
	docs docstore.Store
	log  *logrus.Logger
}

// NewStore creates a Store over the given document store.
func NewStore(docs docstore.Store, log *logrus.Logger) *Store {
	return &Store{docs: docs, log: log}
}

// Load reads the account's plan. A missing document, or any read failure,
// yields an empty plan; the caller never sees an error.
func (s *Store) Load(ctx context.Context, accountID string) Plan {
	var plan Plan
	if err := s.docs.Get(ctx, docstore.KindMealPlans, accountID, &plan); err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			s.log.WithError(err).WithField("account", accountID).Warn("failed to load meal plan, treating as empty")
		}
		return Plan{}
	}
	if plan == nil {
		return Plan{}
	}
	return plan
}

// Save overwrites the account's plan document. On failure the remote keeps
// its previous value; no rollback of local state is attempted here.
func (s *Store) Save(ctx context.Context, accountID string, plan Plan) error {
	if err := s.docs.Set(ctx, docstore.KindMealPlans, accountID, plan); err != nil {
		return fmt.Errorf("failed to save meal plan: %w", err)
	}
	return nil
}
