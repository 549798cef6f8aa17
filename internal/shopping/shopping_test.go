package shopping

import (
	"errors"
	"testing"

	"mealmate/internal/mealplan"
)

func TestAddItem(t *testing.T) {
	t.Run("AddsTrimmedItemUnchecked", func(t *testing.T) {
		items, err := AddItem(nil, "  Eggs  ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		if items[0].Name != "Eggs" {
			t.Errorf("expected name 'Eggs', got %q", items[0].Name)
		}
		if items[0].Checked {
			t.Error("expected new item to be unchecked")
		}
	})

	t.Run("BlankNameIsNoOp", func(t *testing.T) {
		base := []Item{{Name: "Milk"}}
		items, err := AddItem(base, "   ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 1 || items[0].Name != "Milk" {
			t.Errorf("expected list unchanged, got %v", items)
		}
	})

	t.Run("RejectsDuplicateName", func(t *testing.T) {
		base := []Item{{Name: "Milk", Checked: true}}
		items, err := AddItem(base, "Milk")
		if !errors.Is(err, ErrDuplicateItem) {
			t.Fatalf("expected ErrDuplicateItem, got %v", err)
		}
		if len(items) != 1 {
			t.Errorf("expected list unchanged, got %v", items)
		}
	})

	t.Run("MatchingIsCaseSensitive", func(t *testing.T) {
		base := []Item{{Name: "Milk"}}
		items, err := AddItem(base, "milk")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 2 {
			t.Errorf("expected 'milk' added alongside 'Milk', got %v", items)
		}
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		base := []Item{{Name: "Milk"}}
		if _, err := AddItem(base, "Eggs"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(base) != 1 {
			t.Errorf("input slice mutated: %v", base)
		}
	})
}

func TestToggleChecked(t *testing.T) {
	t.Run("FlipsOnlyTargetItem", func(t *testing.T) {
		base := []Item{{Name: "Milk"}, {Name: "Eggs"}}
		items, err := ToggleChecked(base, 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if items[0].Checked {
			t.Error("expected first item untouched")
		}
		if !items[1].Checked {
			t.Error("expected second item checked")
		}
	})

	t.Run("DoubleToggleRestoresState", func(t *testing.T) {
		base := []Item{{Name: "Milk"}}
		once, err := ToggleChecked(base, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		twice, err := ToggleChecked(once, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if twice[0].Checked {
			t.Error("expected checked state back to false")
		}
	})

	t.Run("RejectsOutOfRangeIndex", func(t *testing.T) {
		for _, index := range []int{-1, 1} {
			if _, err := ToggleChecked([]Item{{Name: "Milk"}}, index); !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("index %d: expected ErrIndexOutOfRange, got %v", index, err)
			}
		}
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("RemovesAtIndex", func(t *testing.T) {
		base := []Item{{Name: "Milk"}, {Name: "Eggs"}, {Name: "Bread"}}
		items, err := RemoveItem(base, 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 2 || items[0].Name != "Milk" || items[1].Name != "Bread" {
			t.Errorf("unexpected result: %v", items)
		}
	})

	t.Run("RejectsOutOfRangeIndex", func(t *testing.T) {
		if _, err := RemoveItem(nil, 0); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("expected ErrIndexOutOfRange, got %v", err)
		}
	})
}

func TestMoveToStock(t *testing.T) {
	t.Run("MovesNamedItemWithQuantityOne", func(t *testing.T) {
		items := []Item{{Name: "Milk"}, {Name: "Eggs", Checked: true}}
		updatedItems, updatedStock := MoveToStock(items, nil, "Eggs")
		if len(updatedItems) != 1 || updatedItems[0].Name != "Milk" {
			t.Errorf("expected only 'Milk' left, got %v", updatedItems)
		}
		if len(updatedStock) != 1 || updatedStock[0].Name != "Eggs" || updatedStock[0].Quantity != 1 {
			t.Errorf("expected stock [{Eggs 1}], got %v", updatedStock)
		}
	})

	t.Run("ConservesTotalEntryCount", func(t *testing.T) {
		items := []Item{{Name: "Milk"}, {Name: "Eggs"}}
		stock := []StockItem{{Name: "Rice", Quantity: 2}}
		updatedItems, updatedStock := MoveToStock(items, stock, "Milk")
		before := len(items) + len(stock)
		after := len(updatedItems) + len(updatedStock)
		if before != after {
			t.Errorf("expected %d total entries, got %d", before, after)
		}
	})

	t.Run("DoesNotDuplicateExistingStockEntry", func(t *testing.T) {
		items := []Item{{Name: "Eggs"}}
		stock := []StockItem{{Name: "Eggs", Quantity: 3}}
		updatedItems, updatedStock := MoveToStock(items, stock, "Eggs")
		if len(updatedItems) != 0 {
			t.Errorf("expected item removed from list, got %v", updatedItems)
		}
		if len(updatedStock) != 1 || updatedStock[0].Quantity != 3 {
			t.Errorf("expected single stock entry untouched, got %v", updatedStock)
		}
	})

	t.Run("NameAbsentFromListStillLandsInStock", func(t *testing.T) {
		items := []Item{{Name: "Milk"}}
		updatedItems, updatedStock := MoveToStock(items, nil, "Eggs")
		if len(updatedItems) != 1 {
			t.Errorf("expected shopping list unchanged, got %v", updatedItems)
		}
		if len(updatedStock) != 1 || updatedStock[0].Name != "Eggs" {
			t.Errorf("expected 'Eggs' stocked, got %v", updatedStock)
		}
	})
}

func TestEditStockQuantity(t *testing.T) {
	t.Run("SetsParsedQuantity", func(t *testing.T) {
		stock := []StockItem{{Name: "Rice", Quantity: 1}}
		updated, err := EditStockQuantity(stock, "Rice", "4")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated[0].Quantity != 4 {
			t.Errorf("expected quantity 4, got %d", updated[0].Quantity)
		}
	})

	t.Run("RejectsZeroAndNegative", func(t *testing.T) {
		stock := []StockItem{{Name: "Rice", Quantity: 2}}
		for _, raw := range []string{"0", "-3"} {
			updated, err := EditStockQuantity(stock, "Rice", raw)
			if !errors.Is(err, ErrInvalidQuantity) {
				t.Errorf("raw %q: expected ErrInvalidQuantity, got %v", raw, err)
			}
			if updated[0].Quantity != 2 {
				t.Errorf("raw %q: expected quantity unchanged, got %d", raw, updated[0].Quantity)
			}
		}
	})

	t.Run("RejectsNonNumericInput", func(t *testing.T) {
		stock := []StockItem{{Name: "Rice", Quantity: 2}}
		if _, err := EditStockQuantity(stock, "Rice", "abc"); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("UnknownNameIsNoOp", func(t *testing.T) {
		stock := []StockItem{{Name: "Rice", Quantity: 2}}
		updated, err := EditStockQuantity(stock, "Beans", "5")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(updated) != 1 || updated[0].Quantity != 2 {
			t.Errorf("expected stock unchanged, got %v", updated)
		}
	})
}

func TestRemoveStockItem(t *testing.T) {
	stock := []StockItem{{Name: "Rice", Quantity: 2}, {Name: "Beans", Quantity: 1}}
	updated := RemoveStockItem(stock, "Rice")
	if len(updated) != 1 || updated[0].Name != "Beans" {
		t.Errorf("expected only 'Beans' left, got %v", updated)
	}
	if len(stock) != 2 {
		t.Errorf("input slice mutated: %v", stock)
	}
}

func TestFromMealPlan(t *testing.T) {
	plan := mealplan.Plan{
		"2026-03-02": {
			Breakfast: &mealplan.Recipe{Name: "Omelette", Ingredients: []string{"Eggs", "Butter"}},
			Dinner:    &mealplan.Recipe{Name: "Fried rice", Ingredients: []string{"Rice", "Eggs"}},
		},
		"2026-03-01": {
			Lunch: &mealplan.Recipe{Name: "Toast", Ingredients: []string{"Bread", "Butter"}},
		},
	}

	t.Run("MergesDeduplicatedIngredients", func(t *testing.T) {
		items := FromMealPlan(plan, nil, nil)
		names := make([]string, len(items))
		for i, item := range items {
			names[i] = item.Name
		}
		want := []string{"Bread", "Butter", "Eggs", "Rice"}
		if len(names) != len(want) {
			t.Fatalf("expected %v, got %v", want, names)
		}
		for i, name := range want {
			if names[i] != name {
				t.Errorf("position %d: expected %q, got %q", i, name, names[i])
			}
		}
	})

	t.Run("SkipsNamesAlreadyInStock", func(t *testing.T) {
		stock := []StockItem{{Name: "Eggs", Quantity: 2}}
		items := FromMealPlan(plan, nil, stock)
		for _, item := range items {
			if item.Name == "Eggs" {
				t.Error("expected 'Eggs' excluded because it is in stock")
			}
		}
	})

	t.Run("PreservesExistingItemsAndCheckedState", func(t *testing.T) {
		existing := []Item{{Name: "Coffee", Checked: true}, {Name: "Butter"}}
		items := FromMealPlan(plan, existing, nil)
		if items[0].Name != "Coffee" || !items[0].Checked {
			t.Errorf("expected checked 'Coffee' kept first, got %v", items[0])
		}
		count := 0
		for _, item := range items {
			if item.Name == "Butter" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("expected 'Butter' to appear once, got %d", count)
		}
	})

	t.Run("EmptyPlanReturnsExistingList", func(t *testing.T) {
		existing := []Item{{Name: "Coffee"}}
		items := FromMealPlan(mealplan.Plan{}, existing, nil)
		if len(items) != 1 || items[0].Name != "Coffee" {
			t.Errorf("expected existing list unchanged, got %v", items)
		}
	})
}

func TestItemMembership(t *testing.T) {
	items := []Item{{Name: "Milk"}}
	stock := []StockItem{{Name: "Rice", Quantity: 1}}

	tests := []struct {
		name string
		want Membership
	}{
		{"Milk", Membership{InShoppingList: true}},
		{"Rice", Membership{InStock: true}},
		{"Eggs", Membership{}},
		{"milk", Membership{}},
	}
	for _, tc := range tests {
		if got := ItemMembership(tc.name, items, stock); got != tc.want {
			t.Errorf("%q: expected %+v, got %+v", tc.name, tc.want, got)
		}
	}
}
