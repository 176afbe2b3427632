package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// substituteRow sets a substitute's footprint and cost against the base
// ingredient.
type substituteRow struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CO2KgPerKg   float64  `json:"co2_kg_per_kg"`
	CostPerKgEUR float64  `json:"cost_per_kg_eur"`
	CO2DeltaPct  float64  `json:"co2_delta_percent"`
	CostDeltaPct float64  `json:"cost_delta_percent"`
	Allergens    []string `json:"allergens"`
}

// NewSubstitutesCommand creates the substitutes command.
func NewSubstitutesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "substitutes <ingredient-id>",
		Short: "Show substitutes for an ingredient with footprint and cost deltas",
		Example: `  plantissier substitutes oat_cream
  plantissier substitutes cane_sugar --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubstitutes(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runSubstitutes(opts *RootOptions, cmd *cobra.Command, id string) error {
	formatter := newFormatter(opts, cmd)

	svc, err := newService(opts)
	if err != nil {
		_ = formatter.Error(CodeCatalogError, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	cat := svc.Catalog()
	base, ok := cat.GetByID(id)
	if !ok {
		message := fmt.Sprintf("ingredient %q is not in the catalog", id)
		_ = formatter.Error(CodeNotFound, message, nil)
		return NewExitError(ExitCommandError, message)
	}

	rows := make([]substituteRow, 0, len(base.Substitutes))
	for _, subID := range base.Substitutes {
		sub, ok := cat.GetByID(subID)
		if !ok {
			continue
		}
		rows = append(rows, substituteRow{
			ID:           sub.ID,
			Name:         sub.Name,
			CO2KgPerKg:   sub.Sustainability.CO2KgPerKg,
			CostPerKgEUR: sub.CostPerKgEUR,
			CO2DeltaPct:  deltaPercent(base.Sustainability.CO2KgPerKg, sub.Sustainability.CO2KgPerKg),
			CostDeltaPct: deltaPercent(base.CostPerKgEUR, sub.CostPerKgEUR),
			Allergens:    sub.Allergens,
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]interface{}{
			"ingredient":  base.ID,
			"substitutes": rows,
			"count":       len(rows),
		})
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Substitutes for %s (%s), %.2f kg CO2e/kg, €%.2f/kg\n\n",
		base.Name, base.ID, base.Sustainability.CO2KgPerKg, base.CostPerKgEUR)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No substitutes listed.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\tCO2 KG/KG\tCO2 VS BASE\tCOST €/KG\tCOST VS BASE\tALLERGENS\n")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%+.1f%%\t%.2f\t%+.1f%%\t%s\n",
			row.ID,
			row.Name,
			row.CO2KgPerKg,
			row.CO2DeltaPct,
			row.CostPerKgEUR,
			row.CostDeltaPct,
			strings.Join(row.Allergens, ","))
	}
	tw.Flush()
	return nil
}

func deltaPercent(base, other float64) float64 {
	if base == 0 {
		return 0
	}
	return (other - base) / base * 100
}
