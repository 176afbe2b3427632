package model

// Band is an inclusive [Min, Max] target range for one physical property.
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies inside the band.
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Width returns the band width, floored at 1 to keep distance ratios sane
// for degenerate bands.
func (b Band) Width() float64 {
	w := b.Max - b.Min
	if w < 1 {
		return 1
	}
	return w
}

// Distance returns how far v sits outside the band, zero inside.
func (b Band) Distance(v float64) float64 {
	switch {
	case v < b.Min:
		return b.Min - v
	case v > b.Max:
		return v - b.Max
	default:
		return 0
	}
}

// RelativeDistance is Distance normalized by the band width.
func (b Band) RelativeDistance(v float64) float64 {
	return b.Distance(v) / b.Width()
}

// CentralHalf reports whether v lies in the middle half of the band.
func (b Band) CentralHalf(v float64) bool {
	quarter := (b.Max - b.Min) / 4
	return v >= b.Min+quarter && v <= b.Max-quarter
}

// Part is one slot of a component. Either Role is set and the matcher picks
// the ingredient, or FixedIngredientID pins it (water, salt, vanilla, agar).
type Part struct {
	Key               string          // placeholder name used in step templates
	Role              Role            // empty for fixed parts
	FixedIngredientID string          // empty for role parts
	Fraction          float64         // share of the component mass
	Band              map[string]Band // optional narrowed ranking band
	PrepNote          string
}

// Fixed reports whether the part is pinned to a specific ingredient.
func (p Part) Fixed() bool {
	return p.FixedIngredientID != ""
}

// StepTemplate is an instruction step with {part-key} placeholders.
type StepTemplate struct {
	Text        string
	DurationMin int
	TempCelsius int
	Critical    bool
	Tips        string
}

// Component is one structural element of a dessert (shell, cream, glaze).
type Component struct {
	Name           string
	WeightFraction float64
	RequiredRoles  []Role
	TextureTargets []string
	Bands          map[string]Band
	Parts          []Part
	Steps          []StepTemplate
}

// Difficulty grades templates for labor rates and prediction baselines.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// FootprintBaseline is the per-serving footprint of the traditional
// dairy-and-egg version of a dessert, for reduction reporting.
type FootprintBaseline struct {
	CO2Kg  float64 `json:"co2_kg"`
	WaterL float64 `json:"water_liters"`
	LandM2 float64 `json:"land_m2"`
}

// DessertTemplate is the immutable blueprint for one dessert type.
type DessertTemplate struct {
	ID                string
	Name              string
	Category          string
	Difficulty        Difficulty
	TypicalYield      int
	ServingMassG      float64
	PrepTimeMin       int
	BakeTimeMin       int
	ChillTimeMin      int
	BakeTempCelsius   int
	Components        []Component
	SpecialEquipment  []string
	CriticalTechnique []string
	CommonFailures    []string
	SuccessIndicators []string
	Baseline          FootprintBaseline
	Storage           string
	ShelfLifeDays     int
	Notes             string
}

var difficultyBase = map[Difficulty]int{
	DifficultyBeginner:     20,
	DifficultyIntermediate: 40,
	DifficultyAdvanced:     60,
	DifficultyExpert:       80,
}

// ComplexityScore rates the template from 0 to 100 by difficulty, component
// count and technique count.
func (t *DessertTemplate) ComplexityScore() int {
	score := difficultyBase[t.Difficulty]
	score += len(t.Components) * 5
	score += len(t.CriticalTechnique) * 3
	if score > 100 {
		score = 100
	}
	return score
}

// TotalMassG is the batch mass for the given serving count.
func (t *DessertTemplate) TotalMassG(servings int) float64 {
	return t.ServingMassG * float64(servings)
}

// TotalTimeMin sums active and passive preparation phases.
func (t *DessertTemplate) TotalTimeMin() int {
	return t.PrepTimeMin + t.BakeTimeMin + t.ChillTimeMin
}
