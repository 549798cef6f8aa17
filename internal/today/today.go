// Package today aggregates the day's plan and the shopping list into the
// figures shown on the home screen.
package today

import (
	"time"

	"mealmate/internal/mealplan"
	"mealmate/internal/shopping"
)

// Summary is the home screen's snapshot for one calendar day.
type Summary struct {
	CaloriesConsumed int `json:"caloriesConsumed"`
	MealsPlanned     int `json:"mealsPlanned"`
	ItemsToBuy       int `json:"itemsToBuy"`
}

// Summarize computes the day's summary. A day absent from the plan counts
// zero meals and zero calories; an empty shopping list counts zero items.
// Checked items still count as to-buy until they are removed or moved.
func Summarize(plan mealplan.Plan, items []shopping.Item, now time.Time) Summary {
	var s Summary
	day := plan[mealplan.DateKey(now)]
	for _, period := range mealplan.Periods {
		recipe := day.Slot(period)
		if recipe == nil {
			continue
		}
		s.MealsPlanned++
		s.CaloriesConsumed += recipe.Calories
	}
	s.ItemsToBuy = len(items)
	return s
}

// NextMeal returns the upcoming meal period for the given time of day.
// Mornings up to 11:00 point at breakfast, up to 16:00 at lunch, and the
// rest of the day at dinner.
func NextMeal(now time.Time) mealplan.Period {
	switch hour := now.Hour(); {
	case hour < 11:
		return mealplan.PeriodBreakfast
	case hour < 16:
		return mealplan.PeriodLunch
	default:
		return mealplan.PeriodDinner
	}
}

// NextMealRecipe resolves the upcoming meal's recipe from the plan, nil when
// the slot is empty or the day has no plan.
func NextMealRecipe(plan mealplan.Plan, now time.Time) (mealplan.Period, *mealplan.Recipe) {
	period := NextMeal(now)
	day := plan[mealplan.DateKey(now)]
	return period, day.Slot(period)
}
