package mealplan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"mealmate/internal/recipes"
)

const (
	minDays = 1
	maxDays = 7

	// Upper bound for filling one slot, retries included. A slow
	// provider costs that slot, not the whole generation.
	slotTimeout = 15 * time.Second
)

// ErrInvalidDayCount is returned when the requested range is outside 1..7.
var ErrInvalidDayCount = errors.New("number of days must be between 1 and 7")

var errNoCandidates = errors.New("search returned no candidates")

// queryVocabulary holds the search terms drawn per period.
var queryVocabulary = map[Period][]string{
	PeriodBreakfast: {"oatmeal", "eggs", "smoothie"},
	PeriodLunch:     {"salad", "sandwich", "soup"},
	PeriodDinner:    {"chicken", "fish", "vegetarian"},
}

// GenerateStats counts the outcome of one generation run.
type GenerateStats struct {
	SlotsRequested int `json:"slotsRequested"`
	SlotsFilled    int `json:"slotsFilled"`
	SlotsFailed    int `json:"slotsFailed"`
}

// Generator fills plan slots with recipes sampled from the search API.
type Generator struct {
	searcher recipes.Searcher
	log      *logrus.Logger
	rng      *rand.Rand
}

// NewGenerator creates a Generator.
func NewGenerator(searcher recipes.Searcher, log *logrus.Logger) *Generator {
	return &Generator{
		searcher: searcher,
		log:      log,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate fills days consecutive dates starting at start, for the selected
// periods only, and merges the result into existing: slots outside the range
// or outside the selected periods are left untouched. A failure to fill one
// slot leaves that slot empty and never aborts the rest of the run.
func (g *Generator) Generate(ctx context.Context, start time.Time, days int, periods []Period, filters recipes.DietFilters, existing Plan) (Plan, GenerateStats, error) {
	var stats GenerateStats

	if days < minDays || days > maxDays {
		return existing, stats, ErrInvalidDayCount
	}

	plan := existing.Clone()
	for i := 0; i < days; i++ {
		key := DateKey(start.AddDate(0, 0, i))
		day := plan[key]
		for _, period := range periods {
			stats.SlotsRequested++
			recipe, err := g.fillSlot(ctx, period, filters)
			if err != nil {
				stats.SlotsFailed++
				g.log.WithError(err).WithFields(logrus.Fields{
					"date":   key,
					"period": period,
				}).Warn("leaving slot empty")
				continue
			}
			day.SetSlot(period, recipe)
			stats.SlotsFilled++
		}
		plan[key] = day
	}
	return plan, stats, nil
}

// fillSlot draws a random query term for the period and picks a uniformly
// random candidate from the results. An empty result set earns one retry
// with a different term before the slot is given up.
func (g *Generator) fillSlot(ctx context.Context, period Period, filters recipes.DietFilters) (*Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, slotTimeout)
	defer cancel()

	vocabulary := queryVocabulary[period]
	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("unknown meal period %q", period)
	}
	first := g.rng.Intn(len(vocabulary))
	terms := []string{vocabulary[first], vocabulary[(first+1)%len(vocabulary)]}

	for _, term := range terms {
		candidates, err := g.searcher.Search(ctx, term, string(period), filters)
		if err != nil {
			return nil, fmt.Errorf("failed to search %q recipes: %w", term, err)
		}
		if len(candidates) == 0 {
			continue
		}
		picked := candidates[g.rng.Intn(len(candidates))]
		return snapshot(picked), nil
	}
	return nil, errNoCandidates
}

// CopyMeal pastes a recipe snapshot into exactly one slot of the plan,
// creating the date entry when absent. Any date key is accepted.
func (g *Generator) CopyMeal(recipe Recipe, targetDate string, period Period, plan Plan) Plan {
	out := plan.Clone()
	day := out[targetDate]
	day.SetSlot(period, &recipe)
	out[targetDate] = day
	return out
}

// snapshot converts a search candidate into an immutable plan recipe,
// rounding macros to whole numbers.
func snapshot(c recipes.Candidate) *Recipe {
	return &Recipe{
		Name:        c.Name,
		Calories:    roundGrams(c.Calories),
		Protein:     roundGrams(c.ProteinGrams),
		Carbs:       roundGrams(c.CarbsGrams),
		Fat:         roundGrams(c.FatGrams),
		Image:       c.ImageURL,
		Ingredients: append([]string(nil), c.IngredientLines...),
	}
}

func roundGrams(v float64) int {
	if v < 0 {
		return 0
	}
	return int(math.Round(v))
}
