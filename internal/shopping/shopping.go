// Package shopping maintains the two user inventory collections, items to
// buy and items in stock, and the rules tying them to the meal plan.
package shopping

import (
	"errors"
	"strconv"
	"strings"

	"mealmate/internal/mealplan"
)

// Item is one entry of the shopping list. Names are unique within the list,
// matched exactly and case-sensitively.
type Item struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// StockItem is one entry of the stock list. Quantity is always positive.
type StockItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

var (
	// ErrDuplicateItem signals an add of a name already on the list.
	ErrDuplicateItem = errors.New("item already exists in the shopping list")

	// ErrIndexOutOfRange signals an index-based operation outside the list.
	ErrIndexOutOfRange = errors.New("item index out of range")

	// ErrInvalidQuantity signals a quantity edit that does not parse to a
	// positive integer.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// AddItem appends a new unchecked item. The name is trimmed first; a blank
// name is ignored and the list returned unchanged. Adding a name already on
// the list fails with ErrDuplicateItem.
func AddItem(items []Item, name string) ([]Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return items, nil
	}
	for _, item := range items {
		if item.Name == name {
			return items, ErrDuplicateItem
		}
	}
	return append(cloneItems(items), Item{Name: name}), nil
}

// ToggleChecked flips the checked flag of the item at index.
func ToggleChecked(items []Item, index int) ([]Item, error) {
	if index < 0 || index >= len(items) {
		return items, ErrIndexOutOfRange
	}
	out := cloneItems(items)
	out[index].Checked = !out[index].Checked
	return out, nil
}

// RemoveItem removes the item at index.
func RemoveItem(items []Item, index int) ([]Item, error) {
	if index < 0 || index >= len(items) {
		return items, ErrIndexOutOfRange
	}
	out := make([]Item, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return out, nil
}

// MoveToStock removes the named item from the shopping list and adds it to
// stock with quantity 1. The shopping removal matches by name, so the item
// is found even after reordering. A name already in stock is not duplicated,
// and a name absent from the shopping list still lands in stock.
func MoveToStock(items []Item, stock []StockItem, name string) ([]Item, []StockItem) {
	outItems := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Name != name {
			outItems = append(outItems, item)
		}
	}
	for _, s := range stock {
		if s.Name == name {
			return outItems, stock
		}
	}
	return outItems, append(cloneStock(stock), StockItem{Name: name, Quantity: 1})
}

// EditStockQuantity sets the named stock item's quantity from raw user
// input. Input that does not parse to a positive integer is rejected with
// ErrInvalidQuantity and the prior quantity kept. An unknown name is a safe
// no-op.
func EditStockQuantity(stock []StockItem, name, raw string) ([]StockItem, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || quantity < 1 {
		return stock, ErrInvalidQuantity
	}
	out := cloneStock(stock)
	for i := range out {
		if out[i].Name == name {
			out[i].Quantity = quantity
		}
	}
	return out, nil
}

// RemoveStockItem removes the named item from stock.
func RemoveStockItem(stock []StockItem, name string) []StockItem {
	out := make([]StockItem, 0, len(stock))
	for _, s := range stock {
		if s.Name != name {
			out = append(out, s)
		}
	}
	return out
}

// FromMealPlan flattens every ingredient line of the plan into the shopping
// list. The merge appends only ingredients not already named on the
// shopping list or in stock; existing items, including their checked state,
// are never discarded.
func FromMealPlan(plan mealplan.Plan, items []Item, stock []StockItem) []Item {
	seen := make(map[string]bool, len(items)+len(stock))
	for _, item := range items {
		seen[item.Name] = true
	}
	for _, s := range stock {
		seen[s.Name] = true
	}

	merged := cloneItems(items)
	for _, date := range plan.SortedDates() {
		day := plan[date]
		for _, period := range mealplan.Periods {
			recipe := day.Slot(period)
			if recipe == nil {
				continue
			}
			for _, ingredient := range recipe.Ingredients {
				if seen[ingredient] {
					continue
				}
				seen[ingredient] = true
				merged = append(merged, Item{Name: ingredient})
			}
		}
	}
	return merged
}

// Membership reports where a name currently lives. The ingredient detail
// view uses it to decide between an "add" and a "remove" affordance.
type Membership struct {
	InShoppingList bool `json:"in_shopping_list"`
	InStock        bool `json:"in_stock"`
}

// ItemMembership checks both collections for an exact name match.
func ItemMembership(name string, items []Item, stock []StockItem) Membership {
	var m Membership
	for _, item := range items {
		if item.Name == name {
			m.InShoppingList = true
			break
		}
	}
	for _, s := range stock {
		if s.Name == name {
			m.InStock = true
			break
		}
	}
	return m
}

func cloneItems(items []Item) []Item {
	return append([]Item(nil), items...)
}

func cloneStock(stock []StockItem) []StockItem {
	return append([]StockItem(nil), stock...)
}
