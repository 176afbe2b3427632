package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryOrderAndLookup(t *testing.T) {
	r := NewDessertRegistry()

	assert.Equal(t, 6, r.Len())
	assert.Equal(t, []string{"eclair", "creme_brulee", "croissant", "tart", "macaron", "mousse"}, r.IDs())

	tmpl, ok := r.Get("eclair")
	require.True(t, ok)
	assert.Equal(t, "Éclair", tmpl.Name)

	_, ok = r.Get("tiramisu")
	assert.False(t, ok)

	list := r.List()
	require.Len(t, list, 6)
	assert.Equal(t, "eclair", list[0].ID)
	assert.Equal(t, "mousse", list[5].ID)
}

func TestTemplatesSumToWholeMass(t *testing.T) {
	for _, tmpl := range NewDessertRegistry().List() {
		var weight float64
		for _, comp := range tmpl.Components {
			weight += comp.WeightFraction

			var parts float64
			for _, part := range comp.Parts {
				parts += part.Fraction
			}
			assert.InDelta(t, 1.0, parts, 1e-9, "%s/%s part fractions", tmpl.ID, comp.Name)
		}
		assert.InDelta(t, 1.0, weight, 1e-9, "%s component weights", tmpl.ID)
	}
}

func TestTemplatesAreStructurallySound(t *testing.T) {
	for _, tmpl := range NewDessertRegistry().List() {
		assert.Greater(t, tmpl.TypicalYield, 0, tmpl.ID)
		assert.Greater(t, tmpl.ServingMassG, 0.0, tmpl.ID)
		assert.Greater(t, tmpl.Baseline.CO2Kg, 0.0, tmpl.ID)
		assert.Greater(t, tmpl.Baseline.WaterL, 0.0, tmpl.ID)
		assert.Greater(t, tmpl.Baseline.LandM2, 0.0, tmpl.ID)
		assert.NotEmpty(t, tmpl.Components, tmpl.ID)
		assert.NotEmpty(t, tmpl.Storage, tmpl.ID)

		for _, comp := range tmpl.Components {
			assert.NotEmpty(t, comp.Parts, "%s/%s", tmpl.ID, comp.Name)
			assert.NotEmpty(t, comp.Steps, "%s/%s", tmpl.ID, comp.Name)

			for _, part := range comp.Parts {
				// Every slot is either pinned to an ingredient or filled by
				// role matching, never both.
				if part.Fixed() {
					assert.Empty(t, part.Role, "%s/%s/%s", tmpl.ID, comp.Name, part.Key)
				} else {
					assert.NotEmpty(t, part.Role, "%s/%s/%s", tmpl.ID, comp.Name, part.Key)
				}
				for prop, band := range part.Band {
					assert.LessOrEqual(t, band.Min, band.Max, "%s/%s/%s %s", tmpl.ID, comp.Name, part.Key, prop)
				}
			}
			for prop, band := range comp.Bands {
				assert.LessOrEqual(t, band.Min, band.Max, "%s/%s %s", tmpl.ID, comp.Name, prop)
			}
		}
	}
}

func TestComplexityScore(t *testing.T) {
	r := NewDessertRegistry()

	eclair, _ := r.Get("eclair")
	assert.Equal(t, 67, eclair.ComplexityScore())

	for _, tmpl := range r.List() {
		score := tmpl.ComplexityScore()
		assert.Greater(t, score, 0, tmpl.ID)
		assert.LessOrEqual(t, score, 100, tmpl.ID)
	}
}

func TestTemplateTotals(t *testing.T) {
	eclair, _ := NewDessertRegistry().Get("eclair")

	assert.Equal(t, 240, eclair.TotalTimeMin())
	assert.InDelta(t, 1380.0, eclair.TotalMassG(12), 1e-9)
}

func TestBandGeometry(t *testing.T) {
	b := Band{Min: 20, Max: 40}

	assert.True(t, b.Contains(20))
	assert.True(t, b.Contains(40))
	assert.False(t, b.Contains(19.9))

	assert.Equal(t, 0.0, b.Distance(30))
	assert.Equal(t, 5.0, b.Distance(15))
	assert.Equal(t, 10.0, b.Distance(50))
	assert.InDelta(t, 0.25, b.RelativeDistance(15), 1e-9)

	assert.True(t, b.CentralHalf(30))
	assert.False(t, b.CentralHalf(22))

	// Degenerate bands keep distance ratios finite.
	point := Band{Min: 7, Max: 7}
	assert.Equal(t, 1.0, point.Width())
	assert.InDelta(t, 3.0, point.RelativeDistance(10), 1e-9)
}
