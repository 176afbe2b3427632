package service

import (
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/model"
)

// Venue names accepted in formulation requests.
const (
	VenueCafe       = "cafe"
	VenueRestaurant = "restaurant"
	VenueCanteen    = "canteen"
	VenueBakery     = "bakery"
)

// ValidVenue reports whether s names a supported venue profile.
func ValidVenue(s string) bool {
	switch s {
	case VenueCafe, VenueRestaurant, VenueCanteen, VenueBakery:
		return true
	}
	return false
}

// FormulationRequest describes one dessert to formulate. Requests are never
// persisted; the same request always yields the same recipe.
type FormulationRequest struct {
	DessertType   string   `json:"dessert_type"`
	Constraints   []string `json:"dietary_constraints"`
	BudgetPerUnit float64  `json:"budget_per_unit"`
	Servings      int      `json:"yield_servings"`
	Priority      string   `json:"sustainability_priority"`
	Venue         string   `json:"venue"`
}

// Validate rejects malformed requests before any formulation work starts.
func (r *FormulationRequest) Validate() error {
	if r.DessertType == "" {
		return fmt.Errorf("dessert_type is required")
	}
	if r.BudgetPerUnit <= 0 {
		return fmt.Errorf("budget_per_unit must be positive")
	}
	if r.Servings < 0 {
		return fmt.Errorf("yield_servings must not be negative")
	}
	for _, c := range r.Constraints {
		if !model.ValidConstraint(c) {
			return fmt.Errorf("unknown dietary constraint %q", c)
		}
	}
	if r.Priority != "" && !ValidPriority(r.Priority) {
		return fmt.Errorf("unknown sustainability priority %q", r.Priority)
	}
	if r.Venue != "" && !ValidVenue(r.Venue) {
		return fmt.Errorf("unknown venue %q", r.Venue)
	}
	return nil
}

func (r *FormulationRequest) constraints() []model.DietaryConstraint {
	out := make([]model.DietaryConstraint, 0, len(r.Constraints))
	for _, c := range r.Constraints {
		out = append(out, model.DietaryConstraint(c))
	}
	return out
}

// canonical is the identity of a request: same string, same recipe id.
func (r *FormulationRequest) canonical(servings int, priority string) string {
	cons := make([]string, len(r.Constraints))
	copy(cons, r.Constraints)
	sort.Strings(cons)
	return fmt.Sprintf("%s|%s|%.2f|%d|%s", r.DessertType, strings.Join(cons, ","), r.BudgetPerUnit, servings, priority)
}

// FormulationService assembles complete dessert recipes from the ingredient
// catalog and the dessert template registry.
type FormulationService struct {
	catalog  *catalog.Catalog
	registry *model.DessertRegistry
	matcher  *IngredientMatcher
	sustain  *SustainabilityCalculator
	cost     *CostCalculator
	predict  *PredictiveModel
	tuning   Tuning
}

// NewFormulationService wires the matcher and the three analysis engines
// over a shared catalog.
func NewFormulationService(cat *catalog.Catalog, registry *model.DessertRegistry, tuning Tuning) *FormulationService {
	return &FormulationService{
		catalog:  cat,
		registry: registry,
		matcher:  NewIngredientMatcher(cat, tuning),
		sustain:  NewSustainabilityCalculator(cat, tuning),
		cost:     NewCostCalculator(cat),
		predict:  NewPredictiveModel(cat),
		tuning:   tuning,
	}
}

// Matcher exposes the ranking engine for read-only lookups (substitutes,
// multi-role search, choice explanations).
func (s *FormulationService) Matcher() *IngredientMatcher {
	return s.matcher
}

// Registry exposes the dessert template registry.
func (s *FormulationService) Registry() *model.DessertRegistry {
	return s.registry
}

// Catalog exposes the ingredient catalog.
func (s *FormulationService) Catalog() *catalog.Catalog {
	return s.catalog
}

// slotPick is one resolved part: the chosen ingredient with its exact and
// rounded masses.
type slotPick struct {
	part    *model.Part
	ing     *model.Ingredient
	rawMass float64
	mass    float64
}

type componentBuild struct {
	comp  *model.Component
	picks []slotPick
}

// Formulate resolves every component slot of the requested dessert, verifies
// ratio bands and role coverage, then attaches instructions, labels and the
// analysis reports. Any failure returns a typed error and no recipe.
func (s *FormulationService) Formulate(req *FormulationRequest) (*model.Recipe, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	tmpl, ok := s.registry.Get(req.DessertType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDessertType, req.DessertType)
	}

	servings := req.Servings
	if servings == 0 {
		servings = tmpl.TypicalYield
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityBalanced
	}
	venue := req.Venue
	if venue == "" {
		venue = s.tuning.DefaultVenue
	}
	constraints := req.constraints()
	totalMass := tmpl.ServingMassG * float64(servings)

	builds, err := s.selectIngredients(tmpl, constraints, priority, totalMass)
	if err != nil {
		return nil, err
	}

	warning := s.applyBudget(tmpl, builds, constraints, servings, venue, req.BudgetPerUnit)

	recipe := s.assembleRecipe(tmpl, req, builds, servings, priority, venue)
	recipe.BudgetWarning = warning

	report, err := s.cost.Evaluate(recipe, tmpl, venue, req.BudgetPerUnit, 1.0)
	if err != nil {
		return nil, err
	}
	recipe.Cost = report
	recipe.Sustainability = s.sustain.Evaluate(recipe, tmpl)
	recipe.Prediction = s.predict.Evaluate(recipe, tmpl)
	return recipe, nil
}

// selectIngredients resolves all parts component by component and enforces
// the ratio-band and role-coverage invariants.
func (s *FormulationService) selectIngredients(tmpl *model.DessertTemplate, constraints []model.DietaryConstraint, priority string, totalMass float64) ([]componentBuild, error) {
	sel := NewSelection()
	builds := make([]componentBuild, 0, len(tmpl.Components))
	for ci := range tmpl.Components {
		comp := &tmpl.Components[ci]
		sel.StartComponent()
		build := componentBuild{comp: comp}
		for pi := range comp.Parts {
			part := &comp.Parts[pi]
			ing, err := s.resolvePart(tmpl, comp, part, constraints, priority, sel)
			if err != nil {
				return nil, err
			}
			raw := part.Fraction * comp.WeightFraction * totalMass
			build.picks = append(build.picks, slotPick{
				part:    part,
				ing:     ing,
				rawMass: raw,
				mass:    roundTo(raw, model.RoundingPrecision(ing.Category)),
			})
			sel.Add(ing.ID)
		}
		if err := s.checkBands(tmpl, &build); err != nil {
			return nil, err
		}
		if err := checkCoverage(tmpl, &build, constraints); err != nil {
			return nil, err
		}
		builds = append(builds, build)
	}
	return builds, nil
}

func (s *FormulationService) resolvePart(tmpl *model.DessertTemplate, comp *model.Component, part *model.Part, constraints []model.DietaryConstraint, priority string, sel *Selection) (*model.Ingredient, error) {
	if part.Fixed() {
		ing, ok := s.catalog.GetByID(part.FixedIngredientID)
		if !ok {
			return nil, &DataIntegrityError{
				IngredientID: part.FixedIngredientID,
				Field:        "id",
				Reason:       fmt.Sprintf("template %s pins an ingredient that is not in the catalog", tmpl.ID),
			}
		}
		if !ing.Satisfies(constraints) || !sel.Compatible(ing, s.catalog) {
			// A pinned ingredient cannot be swapped, so a conflict makes the
			// whole slot unsatisfiable. The part key names the slot.
			return nil, &UnsatisfiableRoleError{
				Dessert:     tmpl.ID,
				Component:   comp.Name,
				Role:        model.Role(part.Key),
				Constraints: constraints,
			}
		}
		return ing, nil
	}

	band := part.Band
	if band == nil {
		band = comp.Bands
	}
	ranked := s.matcher.Match(part.Role, band, constraints, priority, sel)
	if len(ranked) == 0 {
		return nil, &UnsatisfiableRoleError{
			Dessert:     tmpl.ID,
			Component:   comp.Name,
			Role:        part.Role,
			Constraints: constraints,
		}
	}
	return ranked[0], nil
}

// checkBands verifies that rounding did not push any banded component
// property further out of band than the configured tolerance allows.
func (s *FormulationService) checkBands(tmpl *model.DessertTemplate, build *componentBuild) error {
	for _, prop := range sortedBandProps(build.comp.Bands) {
		band := build.comp.Bands[prop]
		rawAgg, rawOK := aggregateProperty(build.picks, prop, false)
		roundedAgg, roundedOK := aggregateProperty(build.picks, prop, true)
		if !rawOK || !roundedOK {
			continue
		}
		if band.Distance(roundedAgg) > band.Distance(rawAgg)+s.tuning.BandTolerance {
			return &RatioInvariantError{
				Dessert:   tmpl.ID,
				Component: build.comp.Name,
				Property:  prop,
				Value:     roundedAgg,
				Band:      band,
			}
		}
	}
	return nil
}

func sortedBandProps(bands map[string]model.Band) []string {
	props := make([]string, 0, len(bands))
	for p := range bands {
		props = append(props, p)
	}
	sort.Strings(props)
	return props
}

// aggregateProperty mass-weights a property over the picks that define it.
func aggregateProperty(picks []slotPick, prop string, rounded bool) (float64, bool) {
	var weighted, mass float64
	for _, p := range picks {
		v, ok := p.ing.Properties.Get(prop)
		if !ok {
			continue
		}
		m := p.rawMass
		if rounded {
			m = p.mass
		}
		weighted += m * v
		mass += m
	}
	if mass == 0 {
		return 0, false
	}
	return weighted / mass, true
}

func checkCoverage(tmpl *model.DessertTemplate, build *componentBuild, constraints []model.DietaryConstraint) error {
	for _, role := range build.comp.RequiredRoles {
		covered := false
		for _, p := range build.picks {
			if p.ing.HasRole(role) {
				covered = true
				break
			}
		}
		if !covered {
			return &UnsatisfiableRoleError{
				Dessert:     tmpl.ID,
				Component:   build.comp.Name,
				Role:        role,
				Constraints: constraints,
			}
		}
	}
	return nil
}

// applyBudget runs the single bounded re-selection pass when the recipe is
// over budget: swap the costliest role pick for the cheapest alternative,
// keep the swap only when it strictly lowers cost and breaks nothing, and
// report a warning when the budget still cannot be met. Budget is advisory;
// role and dietary satisfaction are not.
func (s *FormulationService) applyBudget(tmpl *model.DessertTemplate, builds []componentBuild, constraints []model.DietaryConstraint, servings int, venue string, budget float64) *model.BudgetWarning {
	cps := s.costPerServing(tmpl, builds, servings, venue)
	if cps <= budget {
		return nil
	}

	ci, pi := costliestRoleSlot(builds)
	if ci >= 0 {
		s.trySwapCheaper(tmpl, builds, ci, pi, constraints)
		cps = s.costPerServing(tmpl, builds, servings, venue)
		if cps <= budget {
			return nil
		}
	}
	return &model.BudgetWarning{
		LimitPerServing: budget,
		CostPerServing:  round2(cps),
		Shortfall:       round2(cps - budget),
	}
}

func (s *FormulationService) costPerServing(tmpl *model.DessertTemplate, builds []componentBuild, servings int, venue string) float64 {
	var ingredientCost float64
	for _, b := range builds {
		for _, p := range b.picks {
			ingredientCost += p.mass / 1000 * p.ing.CostPerKgEUR
		}
	}
	labor := s.cost.LaborCost(tmpl.Difficulty, tmpl.PrepTimeMin, 1.0)
	overhead := ingredientCost * venueOverheads[venue]
	return (ingredientCost + labor + overhead) / float64(servings)
}

// costliestRoleSlot returns the indexes of the role part whose pick carries
// the highest total ingredient cost, or (-1, -1) when every part is fixed.
func costliestRoleSlot(builds []componentBuild) (int, int) {
	bestC, bestP := -1, -1
	var bestCost float64
	for ci := range builds {
		for pi, p := range builds[ci].picks {
			if p.part.Fixed() {
				continue
			}
			cost := p.mass / 1000 * p.ing.CostPerKgEUR
			if cost > bestCost {
				bestCost, bestC, bestP = cost, ci, pi
			}
		}
	}
	return bestC, bestP
}

func (s *FormulationService) trySwapCheaper(tmpl *model.DessertTemplate, builds []componentBuild, ci, pi int, constraints []model.DietaryConstraint) {
	current := builds[ci].picks[pi]
	band := current.part.Band
	if band == nil {
		band = builds[ci].comp.Bands
	}

	sel := rebuildSelection(builds, ci, pi)
	ranked := s.matcher.Match(current.part.Role, band, constraints, PriorityLowCost, sel)
	currentCost := current.mass / 1000 * current.ing.CostPerKgEUR
	for _, candidate := range ranked {
		if candidate.ID == current.ing.ID {
			continue
		}
		mass := roundTo(current.rawMass, model.RoundingPrecision(candidate.Category))
		if mass/1000*candidate.CostPerKgEUR >= currentCost {
			continue
		}
		replaced := builds[ci].picks[pi]
		builds[ci].picks[pi] = slotPick{
			part:    current.part,
			ing:     candidate,
			rawMass: current.rawMass,
			mass:    mass,
		}
		if s.checkBands(tmpl, &builds[ci]) != nil || checkCoverage(tmpl, &builds[ci], constraints) != nil {
			builds[ci].picks[pi] = replaced
			continue
		}
		return
	}
}

// rebuildSelection reconstructs the selection state as if every slot except
// (skipCI, skipPI) had been picked, with the duplicate set scoped to the
// skipped slot's component.
func rebuildSelection(builds []componentBuild, skipCI, skipPI int) *Selection {
	sel := NewSelection()
	for ci := range builds {
		for pi, p := range builds[ci].picks {
			if ci == skipCI && pi == skipPI {
				continue
			}
			sel.picks = append(sel.picks, p.ing.ID)
		}
	}
	sel.component = make(map[string]bool)
	for pi, p := range builds[skipCI].picks {
		if pi == skipPI {
			continue
		}
		sel.component[p.ing.ID] = true
	}
	return sel
}

var placeholderRe = regexp.MustCompile(`\{([a-z_]+)(:name)?\}`)

func (s *FormulationService) assembleRecipe(tmpl *model.DessertTemplate, req *FormulationRequest, builds []componentBuild, servings int, priority, venue string) *model.Recipe {
	var ingredients []model.RecipeIngredient
	var steps []model.RecipeStep
	stepNumber := 0
	allergens := map[string]bool{}

	for _, b := range builds {
		byKey := make(map[string]slotPick, len(b.picks))
		for _, p := range b.picks {
			byKey[p.part.Key] = p
			ingredients = append(ingredients, model.RecipeIngredient{
				Component:    b.comp.Name,
				PartKey:      p.part.Key,
				IngredientID: p.ing.ID,
				Name:         p.ing.Name,
				Amount:       p.mass,
				Unit:         p.ing.Unit,
				PrepNote:     p.part.PrepNote,
			})
			for _, a := range p.ing.Allergens {
				allergens[a] = true
			}
		}
		for _, st := range b.comp.Steps {
			stepNumber++
			steps = append(steps, model.RecipeStep{
				StepNumber:  stepNumber,
				Instruction: expandPlaceholders(st.Text, byKey),
				DurationMin: st.DurationMin,
				TempCelsius: st.TempCelsius,
				Critical:    st.Critical,
				Tips:        st.Tips,
			})
		}
	}

	allergenList := make([]string, 0, len(allergens))
	for a := range allergens {
		allergenList = append(allergenList, a)
	}
	sort.Strings(allergenList)

	canonical := req.canonical(servings, priority)
	recipe := &model.Recipe{
		ID:               recipeID(tmpl.ID, canonical),
		DessertID:        tmpl.ID,
		DessertName:      tmpl.Name,
		Version:          1,
		Servings:         servings,
		Ingredients:      ingredients,
		Instructions:     steps,
		DietaryLabels:    deriveLabels(allergenList),
		AllergenWarnings: allergenList,
		PrepTimeMin:      tmpl.PrepTimeMin,
		BakeTimeMin:      tmpl.BakeTimeMin,
		ChillTimeMin:     tmpl.ChillTimeMin,
		TotalTimeMin:     tmpl.TotalTimeMin(),
		Storage:          tmpl.Storage,
		ShelfLifeDays:    tmpl.ShelfLifeDays,
		ScalingNotes:     "Recipe can be scaled linearly up to 5x",
		Nutrition:        s.estimateNutrition(builds, servings),
		Params: model.FormulationParams{
			Constraints:   append([]string{}, req.Constraints...),
			Priority:      priority,
			BudgetPerUnit: req.BudgetPerUnit,
			Venue:         venue,
		},
	}
	return recipe
}

// recipeID derives a stable id from the canonical request, so identical
// requests produce identical documents.
func recipeID(dessertID, canonical string) string {
	h := fnv.New32a()
	h.Write([]byte(canonical))
	return fmt.Sprintf("%s_v1_%04d", dessertID, h.Sum32()%10000)
}

// expandPlaceholders substitutes {key} with "amount unit Name" and
// {key:name} with just the ingredient name, scoped to the owning component.
func expandPlaceholders(text string, byKey map[string]slotPick) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		groups := placeholderRe.FindStringSubmatch(m)
		p, ok := byKey[groups[1]]
		if !ok {
			return m
		}
		if groups[2] == ":name" {
			return p.ing.Name
		}
		return fmt.Sprintf("%s %s %s", formatAmount(p.mass), p.ing.Unit, p.ing.Name)
	})
}

func formatAmount(mass float64) string {
	return strconv.FormatFloat(math.Round(mass*10)/10, 'f', -1, 64)
}

// deriveLabels lists every dietary claim the final allergen union supports.
// The catalog is all plant based, so vegan and plant-based always hold.
func deriveLabels(allergens []string) []string {
	present := make(map[string]bool, len(allergens))
	for _, a := range allergens {
		present[a] = true
	}
	labels := []string{"vegan", "plant-based"}
	for _, c := range model.KnownConstraints {
		if c == model.ConstraintVegan {
			continue
		}
		ok := true
		for _, tag := range model.ExcludedTags[c] {
			if present[tag] {
				ok = false
				break
			}
		}
		if ok {
			labels = append(labels, strings.ReplaceAll(string(c), "_", "-"))
		}
	}
	return labels
}

// estimateNutrition derives a per-serving estimate from catalog properties.
// Carbohydrates fall out by difference once water, fat and protein are
// accounted for.
func (s *FormulationService) estimateNutrition(builds []componentBuild, servings int) *model.NutritionEstimate {
	var totalMass, fatG, proteinG, waterG, sugarG, saltG float64
	for _, b := range builds {
		for _, p := range b.picks {
			totalMass += p.mass
			if v, ok := p.ing.Properties.Get(model.PropFat); ok {
				fatG += p.mass * v / 100
			}
			if v, ok := p.ing.Properties.Get(model.PropProtein); ok {
				proteinG += p.mass * v / 100
			}
			if v, ok := p.ing.Properties.Get(model.PropWater); ok {
				waterG += p.mass * v / 100
			}
			if p.part.Role == model.RoleSweetening {
				sugarG += p.mass
			}
			if p.ing.ID == "salt" {
				saltG += p.mass
			}
		}
	}

	n := float64(servings)
	fat := fatG / n
	protein := proteinG / n
	water := waterG / n
	carbs := totalMass/n - water - fat - protein
	if carbs < 0 {
		carbs = 0
	}
	dryMass := totalMass/n - water

	return &model.NutritionEstimate{
		CaloriesPerServing: round1(4*(protein+carbs) + 9*fat),
		ProteinG:           round1(protein),
		FatG:               round1(fat),
		CarbsG:             round1(carbs),
		FiberG:             round1(dryMass * 0.02),
		SugarG:             round1(sugarG / n),
		SodiumMg:           round1(saltG / n * 387.6),
	}
}

// ScaleRecipe produces a copy of a formulated recipe at a different batch
// size. Ingredients scale linearly, labor follows the sub-linear batch
// curve, per-serving footprints stay as they are.
func (s *FormulationService) ScaleRecipe(recipe *model.Recipe, targetServings int) (*model.Recipe, error) {
	if targetServings <= 0 {
		return nil, fmt.Errorf("target servings must be positive")
	}
	if recipe.Servings <= 0 {
		return nil, fmt.Errorf("recipe has no servings to scale from")
	}
	tmpl, ok := s.registry.Get(recipe.DessertID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDessertType, recipe.DessertID)
	}

	factor := float64(targetServings) / float64(recipe.Servings)
	scaled := *recipe
	scaled.ID = fmt.Sprintf("%s_scaled_%d", recipe.ID, targetServings)
	scaled.Servings = targetServings
	scaled.ScalingNotes = fmt.Sprintf("Scaled %sx from %d servings", formatAmount(factor), recipe.Servings)

	scaled.Ingredients = make([]model.RecipeIngredient, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		precision := 1.0
		if rec, ok := s.catalog.GetByID(ing.IngredientID); ok {
			precision = model.RoundingPrecision(rec.Category)
		}
		ing.Amount = roundTo(ing.Amount*factor, precision)
		scaled.Ingredients[i] = ing
	}
	scaled.Instructions = append([]model.RecipeStep{}, recipe.Instructions...)

	budget := recipe.Params.BudgetPerUnit
	report, err := s.cost.Evaluate(&scaled, tmpl, recipe.Params.Venue, budget, factor)
	if err != nil {
		return nil, err
	}
	scaled.Cost = report
	scaled.BudgetWarning = nil
	if budget > 0 && !report.WithinBudget {
		scaled.BudgetWarning = &model.BudgetWarning{
			LimitPerServing: budget,
			CostPerServing:  report.CostPerServing,
			Shortfall:       round2(report.CostPerServing - budget),
		}
	}
	scaled.Sustainability = s.sustain.Evaluate(&scaled, tmpl)
	scaled.Prediction = s.predict.Evaluate(&scaled, tmpl)
	return &scaled, nil
}

// FootprintComparison sets a formulated recipe against the traditional dairy
// version of the same dessert.
type FootprintComparison struct {
	DessertID   string                       `json:"dessert_id"`
	DessertName string                       `json:"dessert_name"`
	Servings    int                          `json:"yield_servings"`
	Traditional model.FootprintBaseline      `json:"traditional_per_serving"`
	Formulated  model.FootprintBaseline      `json:"formulated_per_serving"`
	Reduction   model.ReductionVsTraditional `json:"reduction_vs_traditional"`
	Grade       string                       `json:"sustainability_grade"`
	RecipeID    string                       `json:"recipe_id"`
}

// Compare formulates the dessert and reports its footprint next to the
// traditional baseline.
func (s *FormulationService) Compare(req *FormulationRequest) (*FootprintComparison, error) {
	recipe, err := s.Formulate(req)
	if err != nil {
		return nil, err
	}
	report := recipe.Sustainability
	return &FootprintComparison{
		DessertID:   recipe.DessertID,
		DessertName: recipe.DessertName,
		Servings:    recipe.Servings,
		Traditional: s.baselineFor(recipe.DessertID),
		Formulated: model.FootprintBaseline{
			CO2Kg:  report.CO2PerServingKg,
			WaterL: report.WaterPerServingL,
			LandM2: report.LandPerServingM2,
		},
		Reduction: report.Reduction,
		Grade:     report.Grade,
		RecipeID:  recipe.ID,
	}, nil
}

func (s *FormulationService) baselineFor(dessertID string) model.FootprintBaseline {
	if tmpl, ok := s.registry.Get(dessertID); ok && tmpl.Baseline != (model.FootprintBaseline{}) {
		return tmpl.Baseline
	}
	return defaultBaseline
}

func roundTo(v, precision float64) float64 {
	return math.Round(v/precision) * precision
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
