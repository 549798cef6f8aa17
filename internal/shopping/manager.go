package shopping

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"mealmate/internal/docstore"
	"mealmate/internal/mealplan"
)

// The remote documents keep their items under a single field, matching the
// shape subscribers receive.
type listDocument struct {
	Items []Item `json:"items"`
}

type stockDocument struct {
	Items []StockItem `json:"items"`
}

// Manager applies shopping and stock operations for an account against the
// document store. It holds no per-account state: every operation loads,
// applies the pure list op, and persists, so the returned collections only
// ever reflect successfully persisted writes.
type Manager struct {
	docs docstore.Store
	log  *logrus.Logger
}

// NewManager creates a Manager over the given document store.
func NewManager(docs docstore.Store, log *logrus.Logger) *Manager {
	return &Manager{docs: docs, log: log}
}

// ShoppingList loads the account's shopping list. A missing document is an
// empty list.
func (m *Manager) ShoppingList(ctx context.Context, accountID string) ([]Item, error) {
	var doc listDocument
	if err := m.docs.Get(ctx, docstore.KindShoppingLists, accountID, &doc); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}
	return doc.Items, nil
}

// Stock loads the account's stock list. A missing document is an empty list.
func (m *Manager) Stock(ctx context.Context, accountID string) ([]StockItem, error) {
	var doc stockDocument
	if err := m.docs.Get(ctx, docstore.KindStocks, accountID, &doc); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	return doc.Items, nil
}

// AddItem adds a named item to the shopping list. Blank input is a no-op;
// a duplicate name fails with ErrDuplicateItem before any write.
func (m *Manager) AddItem(ctx context.Context, accountID, name string) ([]Item, error) {
	items, err := m.ShoppingList(ctx, accountID)
	if err != nil {
		return nil, err
	}
	updated, err := AddItem(items, name)
	if err != nil {
		return items, err
	}
	if len(updated) == len(items) {
		// Blank name: nothing to persist.
		return items, nil
	}
	if err := m.saveShoppingList(ctx, accountID, updated); err != nil {
		return items, err
	}
	return updated, nil
}

// ToggleChecked flips the checked flag of the item at index.
func (m *Manager) ToggleChecked(ctx context.Context, accountID string, index int) ([]Item, error) {
	items, err := m.ShoppingList(ctx, accountID)
	if err != nil {
		return nil, err
	}
	updated, err := ToggleChecked(items, index)
	if err != nil {
		return items, err
	}
	if err := m.saveShoppingList(ctx, accountID, updated); err != nil {
		return items, err
	}
	return updated, nil
}

// RemoveItem removes the item at index from the shopping list.
func (m *Manager) RemoveItem(ctx context.Context, accountID string, index int) ([]Item, error) {
	items, err := m.ShoppingList(ctx, accountID)
	if err != nil {
		return nil, err
	}
	updated, err := RemoveItem(items, index)
	if err != nil {
		return items, err
	}
	if err := m.saveShoppingList(ctx, accountID, updated); err != nil {
		return items, err
	}
	return updated, nil
}

// MoveToStock moves the named item from the shopping list to stock with
// quantity 1. The two documents are written sequentially, shopping list
// first; a crash between the writes can leave the item in neither list
// until the next regenerate, which the whole-document model accepts.
func (m *Manager) MoveToStock(ctx context.Context, accountID, name string) ([]Item, []StockItem, error) {
	items, err := m.ShoppingList(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	stock, err := m.Stock(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}

	updatedItems, updatedStock := MoveToStock(items, stock, name)

	if err := m.saveShoppingList(ctx, accountID, updatedItems); err != nil {
		return items, stock, err
	}
	if err := m.saveStock(ctx, accountID, updatedStock); err != nil {
		return updatedItems, stock, err
	}
	return updatedItems, updatedStock, nil
}

// EditStockQuantity sets the named stock item's quantity from raw input.
func (m *Manager) EditStockQuantity(ctx context.Context, accountID, name, raw string) ([]StockItem, error) {
	stock, err := m.Stock(ctx, accountID)
	if err != nil {
		return nil, err
	}
	updated, err := EditStockQuantity(stock, name, raw)
	if err != nil {
		return stock, err
	}
	if err := m.saveStock(ctx, accountID, updated); err != nil {
		return stock, err
	}
	return updated, nil
}

// RemoveStockItem removes the named item from stock.
func (m *Manager) RemoveStockItem(ctx context.Context, accountID, name string) ([]StockItem, error) {
	stock, err := m.Stock(ctx, accountID)
	if err != nil {
		return nil, err
	}
	updated := RemoveStockItem(stock, name)
	if err := m.saveStock(ctx, accountID, updated); err != nil {
		return stock, err
	}
	return updated, nil
}

// GenerateFromMealPlan merges the plan's ingredient lines into the shopping
// list, skipping names already on the list or in stock.
func (m *Manager) GenerateFromMealPlan(ctx context.Context, accountID string, plan mealplan.Plan) ([]Item, error) {
	items, err := m.ShoppingList(ctx, accountID)
	if err != nil {
		return nil, err
	}
	stock, err := m.Stock(ctx, accountID)
	if err != nil {
		return nil, err
	}

	merged := FromMealPlan(plan, items, stock)
	if len(merged) == len(items) {
		return items, nil
	}
	if err := m.saveShoppingList(ctx, accountID, merged); err != nil {
		return items, err
	}
	return merged, nil
}

func (m *Manager) saveShoppingList(ctx context.Context, accountID string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	if err := m.docs.Set(ctx, docstore.KindShoppingLists, accountID, listDocument{Items: items}); err != nil {
		return fmt.Errorf("failed to save shopping list: %w", err)
	}
	return nil
}

func (m *Manager) saveStock(ctx context.Context, accountID string, stock []StockItem) error {
	if stock == nil {
		stock = []StockItem{}
	}
	if err := m.docs.Set(ctx, docstore.KindStocks, accountID, stockDocument{Items: stock}); err != nil {
		return fmt.Errorf("failed to save stock: %w", err)
	}
	return nil
}
