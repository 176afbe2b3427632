package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/model"
)

// Success probability baselines by template difficulty.
var successBaselines = map[model.Difficulty]float64{
	model.DifficultyBeginner:     88,
	model.DifficultyIntermediate: 80,
	model.DifficultyAdvanced:     74,
	model.DifficultyExpert:       68,
}

// PredictiveModel estimates how a formulation will behave in the kitchen by
// comparing aggregated component properties against the template's target
// bands. Pure function of its inputs, safe for concurrent use.
type PredictiveModel struct {
	catalog *catalog.Catalog
}

func NewPredictiveModel(cat *catalog.Catalog) *PredictiveModel {
	return &PredictiveModel{catalog: cat}
}

// componentMix is the aggregated composition of one component's selection.
type componentMix struct {
	props         map[string]float64
	hasThickener  bool
	hasEmulsifier bool
}

// Evaluate produces success probability, stability, per-component texture
// predictions, risk warnings and optimization suggestions.
func (p *PredictiveModel) Evaluate(recipe *model.Recipe, tmpl *model.DessertTemplate) *model.PredictionReport {
	mixes := p.aggregate(recipe)

	success, ok := successBaselines[tmpl.Difficulty]
	if !ok {
		success = successBaselines[model.DifficultyIntermediate]
	}
	var stabilityPenalty float64
	var warnings []string

	for ci := range tmpl.Components {
		comp := &tmpl.Components[ci]
		mix, ok := mixes[comp.Name]
		if !ok {
			continue
		}
		for _, prop := range sortedBandProps(comp.Bands) {
			band := comp.Bands[prop]
			v, defined := mix.props[prop]
			if !defined {
				continue
			}
			rel := band.RelativeDistance(v)
			if rel > 0 {
				success -= math.Min(8, rel*10)
				stabilityPenalty += math.Min(15, rel*12)
				warnings = append(warnings, fmt.Sprintf(
					"%s: %s at %.1f outside target band %g-%g",
					comp.Name, prop, v, band.Min, band.Max))
			} else if band.CentralHalf(v) {
				success += 3
			}
		}
	}

	stability := clampScore(100 - stabilityPenalty)
	success = clampScore(success)

	global := p.globalMix(recipe)
	warnings = append(warnings, p.globalWarnings(tmpl, global, stability)...)

	return &model.PredictionReport{
		SuccessProbability: round1(success),
		StabilityScore:     round1(stability),
		Textures:           p.predictTextures(tmpl, mixes),
		RiskWarnings:       warnings,
		Optimizations:      p.optimizations(global, success),
	}
}

// aggregate mass-weights fat, protein, water and viscosity per component,
// over the ingredients that define each property.
func (p *PredictiveModel) aggregate(recipe *model.Recipe) map[string]*componentMix {
	type accum struct {
		weighted map[string]float64
		mass     map[string]float64
		thick    bool
	}
	accums := map[string]*accum{}
	for _, ri := range recipe.Ingredients {
		ing, ok := p.catalog.GetByID(ri.IngredientID)
		if !ok {
			continue
		}
		a := accums[ri.Component]
		if a == nil {
			a = &accum{weighted: map[string]float64{}, mass: map[string]float64{}}
			accums[ri.Component] = a
		}
		for _, prop := range []string{model.PropFat, model.PropProtein, model.PropWater, model.PropViscosity} {
			if v, ok := ing.Properties.Get(prop); ok {
				a.weighted[prop] += ri.Amount * v
				a.mass[prop] += ri.Amount
			}
		}
		if ing.HasRole(model.RoleThickening) {
			a.thick = true
		}
	}

	mixes := make(map[string]*componentMix, len(accums))
	for name, a := range accums {
		mix := &componentMix{props: map[string]float64{}, hasThickener: a.thick}
		for prop, w := range a.weighted {
			if a.mass[prop] > 0 {
				mix.props[prop] = w / a.mass[prop]
			}
		}
		mixes[name] = mix
	}
	return mixes
}

// globalMix aggregates the whole recipe for the recipe-level checks.
func (p *PredictiveModel) globalMix(recipe *model.Recipe) *componentMix {
	mix := &componentMix{props: map[string]float64{}}
	weighted := map[string]float64{}
	mass := map[string]float64{}
	for _, ri := range recipe.Ingredients {
		ing, ok := p.catalog.GetByID(ri.IngredientID)
		if !ok {
			continue
		}
		for _, prop := range []string{model.PropFat, model.PropProtein, model.PropWater} {
			if v, ok := ing.Properties.Get(prop); ok {
				weighted[prop] += ri.Amount * v
				mass[prop] += ri.Amount
			}
		}
		if ing.HasRole(model.RoleThickening) {
			mix.hasThickener = true
		}
		if ing.HasRole(model.RoleEmulsification) {
			mix.hasEmulsifier = true
		}
	}
	for prop, w := range weighted {
		if mass[prop] > 0 {
			mix.props[prop] = w / mass[prop]
		}
	}
	return mix
}

func (p *PredictiveModel) globalWarnings(tmpl *model.DessertTemplate, global *componentMix, stability float64) []string {
	var warnings []string
	if stability < 40 {
		warnings = append(warnings, "LOW STABILITY: Formulation may be unstable. Consider adding stabilizers or emulsifiers.")
	}
	fat := global.props[model.PropFat]
	water := global.props[model.PropWater]
	if fat < 5 {
		warnings = append(warnings, "Very low fat content may result in dry texture and poor mouthfeel.")
	} else if fat > 50 {
		warnings = append(warnings, "Very high fat content may result in greasy texture and separation issues.")
	}
	if water > 70 {
		warnings = append(warnings, "High water content may cause sogginess. Ensure proper baking/setting time.")
	}
	if !global.hasEmulsifier && requiresRole(tmpl, model.RoleEmulsification) {
		warnings = append(warnings, "No emulsifier detected. May have separation issues.")
	}
	if !global.hasThickener && requiresRole(tmpl, model.RoleThickening) {
		warnings = append(warnings, "No thickener detected. Mixture may be too thin.")
	}
	if tmpl.ID == "eclair" && water < 45 {
		warnings = append(warnings, "Choux pastry needs sufficient moisture for steam. May not puff properly.")
	}
	return warnings
}

func requiresRole(tmpl *model.DessertTemplate, role model.Role) bool {
	for _, comp := range tmpl.Components {
		for _, r := range comp.RequiredRoles {
			if r == role {
				return true
			}
		}
	}
	return false
}

// predictTextures applies the component-name rules to each component's own
// aggregated mix.
func (p *PredictiveModel) predictTextures(tmpl *model.DessertTemplate, mixes map[string]*componentMix) map[string]string {
	out := make(map[string]string, len(tmpl.Components))
	for ci := range tmpl.Components {
		comp := &tmpl.Components[ci]
		mix, ok := mixes[comp.Name]
		if !ok {
			continue
		}
		fat := mix.props[model.PropFat]
		water := mix.props[model.PropWater]
		name := comp.Name
		switch {
		case strings.Contains(name, "Choux") || strings.Contains(name, "Shell"):
			if fat >= 15 && fat <= 25 {
				if water >= 50 {
					out[name] = "crispy and airy"
				} else {
					out[name] = "crispy but dense"
				}
			} else {
				out[name] = "may not puff properly"
			}
		case strings.Contains(name, "Cream") || strings.Contains(name, "Custard"):
			if mix.hasThickener {
				if fat >= 10 {
					out[name] = "smooth and creamy"
				} else {
					out[name] = "smooth but light"
				}
			} else {
				out[name] = "may be too thin"
			}
		case strings.Contains(name, "Glaze"):
			if fat >= 30 {
				out[name] = "glossy and smooth"
			} else {
				out[name] = "may be dull"
			}
		case strings.Contains(name, "Sugar") || strings.Contains(name, "Caramel"):
			out[name] = "crunchy"
		default:
			switch {
			case hasTarget(comp, "creamy"):
				out[name] = "creamy"
			case hasTarget(comp, "crispy"):
				out[name] = "crispy"
			default:
				out[name] = "as expected"
			}
		}
	}
	return out
}

func hasTarget(comp *model.Component, target string) bool {
	for _, t := range comp.TextureTargets {
		if t == target {
			return true
		}
	}
	return false
}

func (p *PredictiveModel) optimizations(global *componentMix, success float64) []string {
	var suggestions []string
	if success < 70 {
		suggestions = append(suggestions, "Consider testing a small batch first before scaling up production.")
	}
	if global.props[model.PropFat] < 10 {
		suggestions = append(suggestions, "Increase fat content slightly for better texture and mouthfeel.")
	}
	if global.props[model.PropProtein] < 2 {
		suggestions = append(suggestions, "Consider adding protein-rich ingredient for better structure.")
	}
	if !global.hasEmulsifier {
		suggestions = append(suggestions, "Add emulsifier (e.g., lecithin) for better stability.")
	}
	if success >= 85 {
		suggestions = append(suggestions, "Excellent formulation! High probability of success.")
	}
	return suggestions
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
