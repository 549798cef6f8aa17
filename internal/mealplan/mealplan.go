// Package mealplan holds the date-keyed meal plan model and the generation
// logic that fills it from the recipe search API.
package mealplan

import (
	"sort"
	"time"
)

// DateKeyLayout is the calendar-day key format used in the plan document.
const DateKeyLayout = "2006-01-02"

// Period is one of the three meal slots of a day.
type Period string

const (
	PeriodBreakfast Period = "breakfast"
	PeriodLunch     Period = "lunch"
	PeriodDinner    Period = "dinner"
)

// Periods lists all meal periods in day order.
var Periods = []Period{PeriodBreakfast, PeriodLunch, PeriodDinner}

// Recipe is the immutable snapshot captured when a slot is filled. It is
// replaced wholesale on regeneration or paste, never mutated.
type Recipe struct {
	Name        string   `json:"name"`
	Calories    int      `json:"calories"`
	Protein     int      `json:"protein"`
	Carbs       int      `json:"carbs"`
	Fat         int      `json:"fat"`
	Image       string   `json:"image,omitempty"`
	Ingredients []string `json:"ingredients"`
}

// DayMeals holds the three slots of one day. A nil slot is empty.
type DayMeals struct {
	Breakfast *Recipe `json:"breakfast"`
	Lunch     *Recipe `json:"lunch"`
	Dinner    *Recipe `json:"dinner"`
}

// Slot returns the recipe in the given period, nil when empty.
func (d DayMeals) Slot(p Period) *Recipe {
	switch p {
	case PeriodBreakfast:
		return d.Breakfast
	case PeriodLunch:
		return d.Lunch
	case PeriodDinner:
		return d.Dinner
	}
	return nil
}

// SetSlot fills the given period.
func (d *DayMeals) SetSlot(p Period, r *Recipe) {
	switch p {
	case PeriodBreakfast:
		d.Breakfast = r
	case PeriodLunch:
		d.Lunch = r
	case PeriodDinner:
		d.Dinner = r
	}
}

// Plan maps a date key to the meals of that day. A date key is present only
// once a generation or paste has targeted it.
type Plan map[string]DayMeals

// DateKey formats a time as a plan date key in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// Clone returns a copy of the plan. Recipe snapshots are shared; they are
// never mutated in place.
func (p Plan) Clone() Plan {
	out := make(Plan, len(p))
	for key, day := range p {
		out[key] = day
	}
	return out
}

// SortedDates returns the plan's date keys in ascending order.
func (p Plan) SortedDates() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
