package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/model"
)

// Sustainability priorities accepted in formulation requests.
const (
	PriorityBalanced = "balanced"
	PriorityLowCO2   = "low_co2"
	PriorityLowWater = "low_water"
	PriorityLowCost  = "low_cost"
)

// ValidPriority reports whether s names a supported ranking priority.
func ValidPriority(s string) bool {
	switch s {
	case PriorityBalanced, PriorityLowCO2, PriorityLowWater, PriorityLowCost:
		return true
	}
	return false
}

// Selection tracks what earlier slots already picked, so later slots avoid
// duplicates within a component and declared incompatibilities anywhere in
// the recipe.
type Selection struct {
	component map[string]bool
	picks     []string
}

func NewSelection() *Selection {
	return &Selection{component: make(map[string]bool)}
}

// StartComponent resets the duplicate set. The same ingredient may appear in
// several components, just not twice in one.
func (s *Selection) StartComponent() {
	s.component = make(map[string]bool)
}

func (s *Selection) Add(id string) {
	s.component[id] = true
	s.picks = append(s.picks, id)
}

// Picks returns every ingredient id selected so far, in selection order.
func (s *Selection) Picks() []string {
	return s.picks
}

// Compatible reports whether the candidate can join the selection: not
// already used in the current component and not incompatible, in either
// direction, with anything picked for the recipe.
func (s *Selection) Compatible(ing *model.Ingredient, cat *catalog.Catalog) bool {
	if s.component[ing.ID] {
		return false
	}
	for _, pickedID := range s.picks {
		for _, inc := range ing.IncompatibleWith {
			if inc == pickedID {
				return false
			}
		}
		picked, ok := cat.GetByID(pickedID)
		if !ok {
			continue
		}
		for _, inc := range picked.IncompatibleWith {
			if inc == ing.ID {
				return false
			}
		}
	}
	return true
}

// IngredientMatcher ranks catalog ingredients for a functional role slot.
type IngredientMatcher struct {
	catalog *catalog.Catalog
	tuning  Tuning
}

func NewIngredientMatcher(cat *catalog.Catalog, tuning Tuning) *IngredientMatcher {
	return &IngredientMatcher{catalog: cat, tuning: tuning}
}

// Match returns every eligible ingredient for the role, best first. The band
// is the slot's target ranges; properties a candidate does not define are
// not scored. An empty result is a hard failure for the caller, never a
// silent skip.
func (m *IngredientMatcher) Match(role model.Role, band map[string]model.Band, constraints []model.DietaryConstraint, priority string, selected *Selection) []*model.Ingredient {
	var candidates []*model.Ingredient
	for _, ing := range m.catalog.FilterByRole(role) {
		if !ing.Satisfies(constraints) {
			continue
		}
		if selected != nil && !selected.Compatible(ing, m.catalog) {
			continue
		}
		candidates = append(candidates, ing)
	}

	scores := make(map[string]float64, len(candidates))
	for _, ing := range candidates {
		scores[ing.ID] = m.Score(ing, band, priority)
	}
	// Stable sort keeps catalog order for equal scores, which makes the
	// whole pipeline reproducible.
	sort.SliceStable(candidates, func(i, j int) bool {
		return scores[candidates[i].ID] < scores[candidates[j].ID]
	})
	return candidates
}

// Score computes the ranking score for one candidate; lower is better.
func (m *IngredientMatcher) Score(ing *model.Ingredient, band map[string]model.Band, priority string) float64 {
	score := bandDistance(ing, band) + m.priorityScore(ing, priority)
	if ing.Availability != model.AvailabilityCommon {
		score += m.tuning.ScarcityPenalty
	}
	return score
}

func bandDistance(ing *model.Ingredient, band map[string]model.Band) float64 {
	var total float64
	for prop, b := range band {
		v, ok := ing.Properties.Get(prop)
		if !ok {
			continue
		}
		total += b.RelativeDistance(v)
	}
	return total
}

func (m *IngredientMatcher) priorityScore(ing *model.Ingredient, priority string) float64 {
	co2 := ing.Sustainability.CO2KgPerKg / m.tuning.CO2Normalizer
	water := ing.Sustainability.WaterLPerKg / m.tuning.WaterNormalizer
	cost := ing.CostPerKgEUR / m.tuning.CostNormalizer
	switch priority {
	case PriorityLowCO2:
		return co2
	case PriorityLowWater:
		return water
	case PriorityLowCost:
		return cost
	default:
		return (co2 + water + cost) / 3
	}
}

// FindSubstitutes returns the declared substitutes of an ingredient followed
// by every other ingredient sharing at least 60% of its roles, deduplicated,
// each group in catalog order.
func (m *IngredientMatcher) FindSubstitutes(id string, constraints []model.DietaryConstraint) ([]*model.Ingredient, error) {
	orig, ok := m.catalog.GetByID(id)
	if !ok {
		return nil, fmt.Errorf("ingredient %q not found", id)
	}

	seen := map[string]bool{id: true}
	var out []*model.Ingredient
	for _, subID := range orig.Substitutes {
		sub, ok := m.catalog.GetByID(subID)
		if !ok || seen[sub.ID] || !sub.Satisfies(constraints) {
			continue
		}
		seen[sub.ID] = true
		out = append(out, sub)
	}
	for _, ing := range m.catalog.GetAll() {
		if seen[ing.ID] || !ing.Satisfies(constraints) {
			continue
		}
		if roleOverlap(orig, ing) >= 0.6 {
			seen[ing.ID] = true
			out = append(out, ing)
		}
	}
	return out, nil
}

func roleOverlap(orig, candidate *model.Ingredient) float64 {
	if len(orig.Roles) == 0 {
		return 0
	}
	shared := 0
	for _, r := range orig.Roles {
		if candidate.HasRole(model.Role(r)) {
			shared++
		}
	}
	return float64(shared) / float64(len(orig.Roles))
}

// FindMultiRole returns ingredients that can fill every given role at once,
// the most versatile first.
func (m *IngredientMatcher) FindMultiRole(roles []model.Role, constraints []model.DietaryConstraint) []*model.Ingredient {
	var out []*model.Ingredient
	for _, ing := range m.catalog.GetAll() {
		if !ing.Satisfies(constraints) {
			continue
		}
		all := true
		for _, r := range roles {
			if !ing.HasRole(r) {
				all = false
				break
			}
		}
		if all {
			out = append(out, ing)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Roles) > len(out[j].Roles)
	})
	return out
}

// ExplainChoice renders a human-readable reason an ingredient fits a role.
func (m *IngredientMatcher) ExplainChoice(ing *model.Ingredient, role model.Role) string {
	var base string
	switch role {
	case model.RoleFatStructuring:
		fat, _ := ing.Properties.Get(model.PropFat)
		base = fmt.Sprintf("%s provides fat structuring with %.1f%% fat content", ing.Name, fat)
	case model.RoleEmulsification:
		base = fmt.Sprintf("%s acts as emulsifier, binding water and fat phases together", ing.Name)
	case model.RoleFoaming:
		base = fmt.Sprintf("%s creates foam and aeration, essential for light texture", ing.Name)
	case model.RoleBinding:
		base = fmt.Sprintf("%s provides binding and structure through protein content", ing.Name)
	case model.RoleThickening:
		base = fmt.Sprintf("%s thickens the mixture, creating desired consistency", ing.Name)
	case model.RoleBrowning:
		base = fmt.Sprintf("%s enables Maillard reaction and caramelization for color and flavor", ing.Name)
	case model.RoleSweetening:
		base = fmt.Sprintf("%s provides sweetness and affects texture", ing.Name)
	case model.RoleMoistureRetention:
		base = fmt.Sprintf("%s retains moisture, extending shelf life and maintaining texture", ing.Name)
	case model.RoleFlavorCarrier:
		base = fmt.Sprintf("%s carries and enhances flavors", ing.Name)
	case model.RoleCrystallization:
		base = fmt.Sprintf("%s controls crystallization for proper texture development", ing.Name)
	default:
		base = fmt.Sprintf("%s performs %s function", ing.Name, role)
	}

	var details []string
	if mp, ok := ing.Properties.Get(model.PropMeltingPoint); ok {
		details = append(details, fmt.Sprintf("melting point %g°C", mp))
	}
	if ec, ok := ing.Properties.Get(model.PropEmulsifying); ok && role == model.RoleEmulsification {
		details = append(details, fmt.Sprintf("emulsifying capacity %.0f%%", ec*100))
	}
	if fc, ok := ing.Properties.Get(model.PropFoaming); ok && role == model.RoleFoaming {
		details = append(details, fmt.Sprintf("foaming capacity %.0f%%", fc*100))
	}
	if len(details) > 0 {
		base += fmt.Sprintf(" (%s)", strings.Join(details, ", "))
	}

	if ing.Sustainability.CO2KgPerKg < 2.0 {
		base += ". Low environmental impact."
	}
	return base
}
