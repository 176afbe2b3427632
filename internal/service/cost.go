package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/model"
)

// Hourly labor rates in EUR by template difficulty.
var laborRates = map[model.Difficulty]float64{
	model.DifficultyBeginner:     15.0,
	model.DifficultyIntermediate: 20.0,
	model.DifficultyAdvanced:     25.0,
	model.DifficultyExpert:       30.0,
}

// venueOverheads is the overhead share of ingredient cost per venue type.
var venueOverheads = map[string]float64{
	VenueCafe:       0.15,
	VenueRestaurant: 0.20,
	VenueCanteen:    0.10,
	VenueBakery:     0.12,
}

// venueMarkups is the retail markup factor per venue type.
var venueMarkups = map[string]float64{
	VenueCafe:       3.0,
	VenueRestaurant: 3.5,
	VenueCanteen:    1.5,
	VenueBakery:     2.5,
}

var scalingFactors = []float64{1, 2, 4, 8}

// CostCalculator prices a formulated recipe for a venue. Pure function of
// its inputs, safe for concurrent use.
type CostCalculator struct {
	catalog *catalog.Catalog
}

func NewCostCalculator(cat *catalog.Catalog) *CostCalculator {
	return &CostCalculator{catalog: cat}
}

// LaborCost estimates the labor spend for one batch: the difficulty rate
// times hands-on prep time, adjusted by the sub-linear batch curve.
func (c *CostCalculator) LaborCost(difficulty model.Difficulty, prepTimeMin int, batchFactor float64) float64 {
	rate, ok := laborRates[difficulty]
	if !ok {
		rate = laborRates[model.DifficultyIntermediate]
	}
	return rate * float64(prepTimeMin) / 60 * laborScale(batchFactor)
}

// laborScale models the efficiency gain of larger batches: doubling a batch
// does not double the hands-on time.
func laborScale(factor float64) float64 {
	switch {
	case factor <= 1:
		return factor
	case factor <= 2:
		return 1 + (factor-1)*0.8
	case factor <= 5:
		return 1.8 + (factor-2)*0.6
	default:
		return 3.6 + (factor-5)*0.4
	}
}

// Evaluate prices the recipe: ingredients, labor, venue overhead, suggested
// retail price, the batch scaling table and cost-reduction opportunities.
// A selected ingredient with missing or non-positive reference cost is a
// data fault, not a request error.
func (c *CostCalculator) Evaluate(recipe *model.Recipe, tmpl *model.DessertTemplate, venue string, budget float64, batchFactor float64) (*model.CostReport, error) {
	if venue == "" {
		venue = VenueCafe
	}
	breakdown := make(map[string]float64)
	var ingredientCost float64
	for _, ri := range recipe.Ingredients {
		ing, ok := c.catalog.GetByID(ri.IngredientID)
		if !ok {
			return nil, &DataIntegrityError{IngredientID: ri.IngredientID, Field: "id", Reason: "selected ingredient missing from catalog"}
		}
		if ing.CostPerKgEUR <= 0 {
			return nil, &DataIntegrityError{IngredientID: ri.IngredientID, Field: "cost_per_kg_eur", Reason: "missing or non-positive"}
		}
		cost := ri.Amount * model.UnitToKilograms[ri.Unit] * ing.CostPerKgEUR
		ingredientCost += cost
		breakdown[ri.IngredientID] += cost
	}
	for id, cost := range breakdown {
		breakdown[id] = round2(cost)
	}

	servings := float64(recipe.Servings)
	if servings <= 0 {
		servings = 1
	}
	labor := c.LaborCost(tmpl.Difficulty, tmpl.PrepTimeMin, batchFactor)
	overhead := ingredientCost * venueOverheads[venue]
	total := ingredientCost + labor + overhead
	costPerServing := total / servings
	retail := costPerServing * venueMarkups[venue]

	margin := 0.0
	if retail > 0 {
		margin = (retail - costPerServing) / retail * 100
	}

	return &model.CostReport{
		IngredientCostTotal:  round2(ingredientCost),
		LaborCost:            round2(labor),
		OverheadCost:         round2(overhead),
		TotalCost:            round2(total),
		CostPerServing:       round2(costPerServing),
		LaborCostPerServing:  round2(labor / servings),
		SuggestedRetailPrice: round2(retail),
		ProfitMarginPercent:  round1(margin),
		Venue:                venue,
		Breakdown:            breakdown,
		WithinBudget:         budget <= 0 || costPerServing <= budget,
		ScalingTable:         c.scalingTable(ingredientCost, overhead, tmpl, recipe.Servings, batchFactor),
		Reductions:           c.reductions(breakdown, ingredientCost),
	}, nil
}

// scalingTable projects the batch economics at 1x, 2x, 4x and 8x. Display
// only; the recipe itself is never mutated.
func (c *CostCalculator) scalingTable(ingredientCost, overhead float64, tmpl *model.DessertTemplate, servings int, batchFactor float64) []model.BatchScaling {
	table := make([]model.BatchScaling, 0, len(scalingFactors))
	for _, f := range scalingFactors {
		labor := c.LaborCost(tmpl.Difficulty, tmpl.PrepTimeMin, batchFactor*f)
		total := ingredientCost*f + labor + overhead*f
		batchServings := int(math.Round(float64(servings) * f))
		table = append(table, model.BatchScaling{
			Factor:         f,
			Servings:       batchServings,
			IngredientCost: round2(ingredientCost * f),
			LaborCost:      round2(labor),
			OverheadCost:   round2(overhead * f),
			TotalCost:      round2(total),
			CostPerServing: round2(total / float64(batchServings)),
		})
	}
	return table
}

// reductions flags the heaviest cost contributors (top 5 above a 15% share)
// with cheaper declared substitutes and bulk purchasing notes.
func (c *CostCalculator) reductions(breakdown map[string]float64, total float64) []model.CostReduction {
	if total <= 0 {
		return nil
	}
	type contributor struct {
		id   string
		cost float64
	}
	contributors := make([]contributor, 0, len(breakdown))
	for id, cost := range breakdown {
		contributors = append(contributors, contributor{id: id, cost: cost})
	}
	sort.Slice(contributors, func(i, j int) bool {
		if contributors[i].cost != contributors[j].cost {
			return contributors[i].cost > contributors[j].cost
		}
		return c.catalog.Order(contributors[i].id) < c.catalog.Order(contributors[j].id)
	})
	if len(contributors) > 5 {
		contributors = contributors[:5]
	}

	var out []model.CostReduction
	for _, tc := range contributors {
		share := tc.cost / total * 100
		if share <= 15 {
			continue
		}
		ing, ok := c.catalog.GetByID(tc.id)
		if !ok {
			continue
		}
		var suggestions []string
		for _, subID := range ing.Substitutes {
			sub, ok := c.catalog.GetByID(subID)
			if !ok || sub.CostPerKgEUR >= ing.CostPerKgEUR {
				continue
			}
			savings := (ing.CostPerKgEUR - sub.CostPerKgEUR) / ing.CostPerKgEUR * 100
			suggestions = append(suggestions, fmt.Sprintf("Substitute with %s (save ~%.0f%%)", sub.Name, savings))
		}
		if ing.Availability == model.AvailabilityCommon {
			suggestions = append(suggestions, "Consider bulk purchasing for 10-15% savings")
		}
		if len(suggestions) == 0 {
			continue
		}
		out = append(out, model.CostReduction{
			IngredientID: tc.id,
			Name:         ing.Name,
			Cost:         round2(tc.cost),
			SharePercent: round1(share),
			Suggestions:  suggestions,
		})
	}
	return out
}

// BreakEvenVolume is the number of servings that covers the monthly fixed
// costs: -1 when the price never covers the per-serving cost, 0 when there
// are no fixed costs to recover.
func (c *CostCalculator) BreakEvenVolume(costPerServing, retailPrice, fixedCostsMonthly float64) int {
	if retailPrice <= costPerServing {
		return -1
	}
	if fixedCostsMonthly == 0 {
		return 0
	}
	return int(fixedCostsMonthly/(retailPrice-costPerServing)) + 1
}
