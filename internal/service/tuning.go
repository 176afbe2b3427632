package service

// GradeStep is one cutoff in the sustainability grade scale.
type GradeStep struct {
	MaxCO2PerServingKg float64
	Grade              string
}

// Tuning collects the scoring and grading constants that operators may
// override at the composition root. Use DefaultTuning unless a deployment
// has a reason not to.
type Tuning struct {
	// ScarcityPenalty is added to the ranking score of ingredients that are
	// not commonly available.
	ScarcityPenalty float64
	// Normalizers bring CO2 (kg/kg), water (L/kg) and cost (EUR/kg) onto a
	// comparable scale before they enter the ranking score.
	CO2Normalizer   float64
	WaterNormalizer float64
	CostNormalizer  float64
	// BandTolerance is how many percentage points a component property may
	// drift past its target band through rounding before the recipe is
	// rejected.
	BandTolerance float64
	// DefaultVenue is the cost profile used when a request does not name
	// one.
	DefaultVenue string
	// GradeScale maps CO2 per serving to a letter grade, ascending cutoffs;
	// beyond the last step the grade is F.
	GradeScale []GradeStep
}

// DefaultTuning returns the production constants.
func DefaultTuning() Tuning {
	return Tuning{
		ScarcityPenalty: 0.1,
		CO2Normalizer:   5.0,
		WaterNormalizer: 5000.0,
		CostNormalizer:  20.0,
		BandTolerance:   0.5,
		DefaultVenue:    VenueCafe,
		GradeScale: []GradeStep{
			{MaxCO2PerServingKg: 0.5, Grade: "A"},
			{MaxCO2PerServingKg: 1.0, Grade: "B"},
			{MaxCO2PerServingKg: 2.0, Grade: "C"},
			{MaxCO2PerServingKg: 3.0, Grade: "D"},
			{MaxCO2PerServingKg: 5.0, Grade: "E"},
		},
	}
}

func (t Tuning) grade(co2PerServingKg float64) string {
	for _, step := range t.GradeScale {
		if co2PerServingKg < step.MaxCO2PerServingKg {
			return step.Grade
		}
	}
	return "F"
}
