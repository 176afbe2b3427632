package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pageza/plantissier/backend/internal/model"
	"github.com/pageza/plantissier/backend/internal/service"
)

// writeRecipeCard renders a recipe the way a kitchen would pin it up:
// ingredients grouped by component, numbered steps, then the scoring
// summary.
func writeRecipeCard(w io.Writer, r *model.Recipe) {
	fmt.Fprintf(w, "%s (%s)\n", r.DessertName, r.ID)
	fmt.Fprintf(w, "Serves %d · %d min total (%d prep / %d bake / %d chill)\n",
		r.Servings, r.TotalTimeMin, r.PrepTimeMin, r.BakeTimeMin, r.ChillTimeMin)
	if len(r.DietaryLabels) > 0 {
		fmt.Fprintf(w, "Labels: %s\n", strings.Join(r.DietaryLabels, ", "))
	}
	if len(r.AllergenWarnings) > 0 {
		fmt.Fprintf(w, "Allergens: %s\n", strings.Join(r.AllergenWarnings, ", "))
	}

	var component string
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, ing := range r.Ingredients {
		if ing.Component != component {
			tw.Flush()
			component = ing.Component
			fmt.Fprintf(w, "\n%s\n", strings.ToUpper(component))
		}
		note := ""
		if ing.PrepNote != "" {
			note = ing.PrepNote
		}
		fmt.Fprintf(tw, "  %.0f %s\t%s\t%s\n", ing.Amount, ing.Unit, ing.Name, note)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nINSTRUCTIONS\n")
	for _, step := range r.Instructions {
		marker := "   "
		if step.Critical {
			marker = "[!]"
		}
		fmt.Fprintf(w, "%3d. %s %s", step.StepNumber, marker, step.Instruction)
		var timing []string
		if step.DurationMin > 0 {
			timing = append(timing, fmt.Sprintf("%d min", step.DurationMin))
		}
		if step.TempCelsius > 0 {
			timing = append(timing, fmt.Sprintf("%d°C", step.TempCelsius))
		}
		if len(timing) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(timing, ", "))
		}
		fmt.Fprintln(w)
		if step.Tips != "" {
			fmt.Fprintf(w, "         %s\n", step.Tips)
		}
	}

	fmt.Fprintln(w)
	if s := r.Sustainability; s != nil {
		fmt.Fprintf(w, "Sustainability: grade %s · %.3f kg CO2e/serving (%.1f%% below traditional)\n",
			s.Grade, s.CO2PerServingKg, s.Reduction.CO2Percent)
	}
	if c := r.Cost; c != nil {
		fmt.Fprintf(w, "Cost: €%.2f/serving (%s) · suggested retail €%.2f\n",
			c.CostPerServing, c.Venue, c.SuggestedRetailPrice)
	}
	if p := r.Prediction; p != nil {
		fmt.Fprintf(w, "Prediction: %.0f%% success · stability %.0f/100\n",
			p.SuccessProbability, p.StabilityScore)
		for _, warning := range p.RiskWarnings {
			fmt.Fprintf(w, "  risk: %s\n", warning)
		}
	}
	if b := r.BudgetWarning; b != nil {
		fmt.Fprintf(w, "Over budget: €%.2f/serving against a €%.2f limit (short €%.2f)\n",
			b.CostPerServing, b.LimitPerServing, b.Shortfall)
	}
	if r.Storage != "" {
		fmt.Fprintf(w, "Storage: %s (%d days)\n", r.Storage, r.ShelfLifeDays)
	}
}

// writeComparison renders the per-serving footprint of the formulated
// recipe next to the traditional dairy baseline.
func writeComparison(w io.Writer, c *service.FootprintComparison) {
	fmt.Fprintf(w, "%s, per serving, formulated vs traditional\n\n", c.DessertName)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\tCO2 kg\tWater L\tLand m2\n")
	fmt.Fprintf(tw, "traditional\t%.3f\t%.1f\t%.3f\n",
		c.Traditional.CO2Kg, c.Traditional.WaterL, c.Traditional.LandM2)
	fmt.Fprintf(tw, "plant-based\t%.3f\t%.1f\t%.3f\n",
		c.Formulated.CO2Kg, c.Formulated.WaterL, c.Formulated.LandM2)
	fmt.Fprintf(tw, "reduction\t%.1f%%\t%.1f%%\t%.1f%%\n",
		c.Reduction.CO2Percent, c.Reduction.WaterPercent, c.Reduction.LandPercent)
	tw.Flush()

	fmt.Fprintf(w, "\nGrade %s · recipe %s · %d servings\n", c.Grade, c.RecipeID, c.Servings)
}

// writeIngredientTable renders a catalog listing.
func writeIngredientTable(w io.Writer, list []*model.Ingredient) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\tCATEGORY\tROLES\tCO2 KG/KG\tCOST €/KG\tAVAILABILITY\n")
	for _, ing := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%.2f\t%s\n",
			ing.ID,
			ing.Name,
			ing.Category,
			strings.Join(ing.Roles, ","),
			ing.Sustainability.CO2KgPerKg,
			ing.CostPerKgEUR,
			ing.Availability)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d ingredients\n", len(list))
}

// writeDessertTable renders the dessert template registry.
func writeDessertTable(w io.Writer, list []*model.DessertTemplate) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\tDIFFICULTY\tCOMPLEXITY\tCOMPONENTS\tTIME MIN\tYIELD\n")
	for _, tmpl := range list {
		names := make([]string, len(tmpl.Components))
		for i, comp := range tmpl.Components {
			names[i] = comp.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%d\t%d\n",
			tmpl.ID,
			tmpl.Name,
			tmpl.Difficulty,
			tmpl.ComplexityScore(),
			strings.Join(names, "; "),
			tmpl.TotalTimeMin(),
			tmpl.TypicalYield)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d desserts\n", len(list))
}
