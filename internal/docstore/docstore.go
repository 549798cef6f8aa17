// Package docstore provides access to the per-account documents backing the
// app: one document per (account, kind), always read and written whole.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Kind identifies one of the document collections.
type Kind string

const (
	KindShoppingLists Kind = "shoppingLists"
	KindStocks        Kind = "stocks"
	KindMealPlans     Kind = "mealPlans"
	KindUsers         Kind = "users"
)

// ErrNotFound is returned by Get when no document exists yet for the
// (kind, account) pair.
var ErrNotFound = errors.New("document not found")

// Unsubscribe stops the delivery of change notifications.
type Unsubscribe func()

// Store is the narrow interface over the backing document database. Writes
// replace the whole document; there are no partial updates.
type Store interface {
	// Get reads the document into out. Returns ErrNotFound when the
	// document does not exist.
	Get(ctx context.Context, kind Kind, accountID string, out any) error

	// Set overwrites the document with value.
	Set(ctx context.Context, kind Kind, accountID string, value any) error

	// Subscribe delivers the full document on every remote change. A nil
	// payload means the document does not exist. The initial state is
	// delivered as the first notification.
	Subscribe(ctx context.Context, kind Kind, accountID string, onChange func(data json.RawMessage)) (Unsubscribe, error)
}
