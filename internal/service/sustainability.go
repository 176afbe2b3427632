package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/model"
)

// defaultBaseline is the traditional-footprint fallback for desserts without
// a published baseline of their own.
var defaultBaseline = model.FootprintBaseline{CO2Kg: 0.40, WaterL: 80, LandM2: 0.17}

// SustainabilityCalculator scores the environmental footprint of a
// formulated recipe. Pure function of its inputs, safe for concurrent use.
type SustainabilityCalculator struct {
	catalog *catalog.Catalog
	tuning  Tuning
}

func NewSustainabilityCalculator(cat *catalog.Catalog, tuning Tuning) *SustainabilityCalculator {
	return &SustainabilityCalculator{catalog: cat, tuning: tuning}
}

type impactEntry struct {
	id    string
	name  string
	co2   float64
	order int
}

// Evaluate computes totals, per-serving figures, the letter grade, the
// baseline comparison, the impact breakdown and the carbon equivalents.
func (c *SustainabilityCalculator) Evaluate(recipe *model.Recipe, tmpl *model.DessertTemplate) *model.SustainabilityReport {
	var totalCO2, totalWater, totalLand float64
	impacts := map[string]*impactEntry{}

	for _, ri := range recipe.Ingredients {
		ing, ok := c.catalog.GetByID(ri.IngredientID)
		if !ok {
			continue
		}
		kg := ri.Amount * model.UnitToKilograms[ri.Unit]
		co2 := kg * ing.Sustainability.CO2KgPerKg
		totalCO2 += co2
		totalWater += kg * ing.Sustainability.WaterLPerKg
		totalLand += kg * ing.Sustainability.LandM2PerKg
		if entry, ok := impacts[ri.IngredientID]; ok {
			entry.co2 += co2
		} else {
			impacts[ri.IngredientID] = &impactEntry{
				id:    ri.IngredientID,
				name:  ri.Name,
				co2:   co2,
				order: c.catalog.Order(ri.IngredientID),
			}
		}
	}

	servings := float64(recipe.Servings)
	if servings <= 0 {
		servings = 1
	}
	co2PerServing := totalCO2 / servings
	waterPerServing := totalWater / servings
	landPerServing := totalLand / servings

	baseline := tmpl.Baseline
	if baseline == (model.FootprintBaseline{}) {
		baseline = defaultBaseline
	}

	breakdown := rankImpacts(impacts, totalCO2)
	grade := c.tuning.grade(co2PerServing)

	return &model.SustainabilityReport{
		TotalCO2Kg:       round3(totalCO2),
		TotalWaterL:      round1(totalWater),
		TotalLandM2:      round3(totalLand),
		CO2PerServingKg:  round3(co2PerServing),
		WaterPerServingL: round1(waterPerServing),
		LandPerServingM2: round3(landPerServing),
		Grade:            grade,
		Reduction: model.ReductionVsTraditional{
			CO2Percent:   reductionPercent(baseline.CO2Kg, co2PerServing),
			WaterPercent: reductionPercent(baseline.WaterL, waterPerServing),
			LandPercent:  reductionPercent(baseline.LandM2, landPerServing),
		},
		Breakdown:       breakdown,
		Recommendations: recommendations(breakdown, grade, waterPerServing, landPerServing),
		Equivalents:     carbonEquivalents(totalCO2),
	}
}

// rankImpacts orders contributors by descending CO2, catalog order on ties.
func rankImpacts(impacts map[string]*impactEntry, totalCO2 float64) []model.ImpactItem {
	entries := make([]*impactEntry, 0, len(impacts))
	for _, e := range impacts {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].co2 != entries[j].co2 {
			return entries[i].co2 > entries[j].co2
		}
		return entries[i].order < entries[j].order
	})

	items := make([]model.ImpactItem, 0, len(entries))
	for _, e := range entries {
		share := 0.0
		if totalCO2 > 0 {
			share = e.co2 / totalCO2 * 100
		}
		items = append(items, model.ImpactItem{
			IngredientID: e.id,
			Name:         e.name,
			CO2Kg:        round3(e.co2),
			SharePercent: round1(share),
		})
	}
	return items
}

// reductionPercent is capped at 100 but deliberately not floored at zero: a
// recipe worse than the traditional baseline reports a negative reduction.
func reductionPercent(baseline, actual float64) float64 {
	if baseline <= 0 {
		return 0
	}
	return math.Min(100, round1((baseline-actual)/baseline*100))
}

func recommendations(breakdown []model.ImpactItem, grade string, waterPerServing, landPerServing float64) []string {
	var recs []string
	if len(breakdown) > 0 && breakdown[0].SharePercent > 30 {
		top := breakdown[0]
		recs = append(recs, fmt.Sprintf(
			"Consider reducing %s amount or finding lower-impact alternative (%.2f kg CO₂, %.0f%% of total)",
			top.Name, top.CO2Kg, top.SharePercent))
	}
	switch grade {
	case "D", "E", "F":
		recs = append(recs, fmt.Sprintf(
			"Current sustainability grade: %s. Consider using more local, seasonal ingredients.", grade))
	}
	if waterPerServing > 50 {
		recs = append(recs, fmt.Sprintf(
			"High water usage (%.1fL per serving). Consider ingredients with lower water footprint.", waterPerServing))
	}
	if landPerServing > 0.15 {
		recs = append(recs, fmt.Sprintf(
			"High land use (%.2fm² per serving). Favor ingredients with efficient land use.", landPerServing))
	}
	if grade == "A" || grade == "B" {
		recs = append(recs, fmt.Sprintf(
			"Excellent sustainability! Grade %s. This recipe has low environmental impact.", grade))
	}
	return recs
}

// carbonEquivalents converts total CO2 into relatable terms.
func carbonEquivalents(co2Kg float64) map[string]float64 {
	return map[string]float64{
		"km_driven":          round2(co2Kg * 5.5),
		"trees_needed_year":  round3(co2Kg / 21.0),
		"smartphone_charges": round1(co2Kg * 121),
		"led_bulb_hours":     round1(co2Kg * 1000),
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
