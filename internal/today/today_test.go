package today

import (
	"testing"
	"time"

	"mealmate/internal/mealplan"
	"mealmate/internal/shopping"
)

func TestSummarize(t *testing.T) {
	noon := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("CountsPlannedMealsAndCalories", func(t *testing.T) {
		plan := mealplan.Plan{
			"2026-03-01": {
				Breakfast: &mealplan.Recipe{Name: "Omelette", Calories: 350},
				Dinner:    &mealplan.Recipe{Name: "Fried rice", Calories: 600},
			},
		}
		items := []shopping.Item{{Name: "Milk"}, {Name: "Eggs", Checked: true}}

		s := Summarize(plan, items, noon)
		if s.MealsPlanned != 2 {
			t.Errorf("expected 2 meals planned, got %d", s.MealsPlanned)
		}
		if s.CaloriesConsumed != 950 {
			t.Errorf("expected 950 calories, got %d", s.CaloriesConsumed)
		}
		if s.ItemsToBuy != 2 {
			t.Errorf("expected 2 items to buy, got %d", s.ItemsToBuy)
		}
	})

	t.Run("MissingDayIsAllZeroMeals", func(t *testing.T) {
		plan := mealplan.Plan{
			"2026-03-02": {
				Lunch: &mealplan.Recipe{Name: "Toast", Calories: 200},
			},
		}
		s := Summarize(plan, nil, noon)
		if s.MealsPlanned != 0 || s.CaloriesConsumed != 0 {
			t.Errorf("expected zero meals for unplanned day, got %+v", s)
		}
	})

	t.Run("NilInputsProduceZeroSummary", func(t *testing.T) {
		s := Summarize(nil, nil, noon)
		if s != (Summary{}) {
			t.Errorf("expected zero summary, got %+v", s)
		}
	})
}

func TestNextMeal(t *testing.T) {
	tests := []struct {
		hour int
		want mealplan.Period
	}{
		{0, mealplan.PeriodBreakfast},
		{10, mealplan.PeriodBreakfast},
		{11, mealplan.PeriodLunch},
		{15, mealplan.PeriodLunch},
		{16, mealplan.PeriodDinner},
		{23, mealplan.PeriodDinner},
	}
	for _, tc := range tests {
		now := time.Date(2026, 3, 1, tc.hour, 30, 0, 0, time.UTC)
		if got := NextMeal(now); got != tc.want {
			t.Errorf("hour %d: expected %s, got %s", tc.hour, tc.want, got)
		}
	}
}

func TestNextMealRecipe(t *testing.T) {
	plan := mealplan.Plan{
		"2026-03-01": {
			Lunch: &mealplan.Recipe{Name: "Toast", Calories: 200},
		},
	}

	t.Run("ResolvesFilledSlot", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		period, recipe := NextMealRecipe(plan, now)
		if period != mealplan.PeriodLunch {
			t.Errorf("expected lunch, got %s", period)
		}
		if recipe == nil || recipe.Name != "Toast" {
			t.Errorf("expected 'Toast', got %v", recipe)
		}
	})

	t.Run("EmptySlotIsNil", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
		period, recipe := NextMealRecipe(plan, now)
		if period != mealplan.PeriodDinner {
			t.Errorf("expected dinner, got %s", period)
		}
		if recipe != nil {
			t.Errorf("expected nil recipe, got %v", recipe)
		}
	})
}
