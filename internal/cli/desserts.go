package cli

import (
	"github.com/spf13/cobra"

	"github.com/pageza/plantissier/backend/internal/model"
)

// dessertSummary is the JSON projection of a template for CLI output.
type dessertSummary struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Difficulty      string   `json:"difficulty"`
	ComplexityScore int      `json:"complexity_score"`
	Components      []string `json:"components"`
	TypicalYield    int      `json:"typical_yield"`
	TotalTimeMin    int      `json:"total_time_minutes"`
}

// NewDessertsCommand creates the desserts command.
func NewDessertsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "desserts",
		Short:         "List the dessert templates available for formulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesserts(rootOpts, cmd)
		},
	}
	return cmd
}

func runDesserts(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	svc, err := newService(opts)
	if err != nil {
		_ = formatter.Error(CodeCatalogError, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	list := svc.Registry().List()

	if formatter.Format == "json" {
		summaries := make([]dessertSummary, len(list))
		for i, tmpl := range list {
			summaries[i] = toDessertSummary(tmpl)
		}
		return formatter.Success(map[string]interface{}{
			"desserts": summaries,
			"count":    len(summaries),
		})
	}
	writeDessertTable(formatter.Writer, list)
	return nil
}

func toDessertSummary(tmpl *model.DessertTemplate) dessertSummary {
	components := make([]string, len(tmpl.Components))
	for i, comp := range tmpl.Components {
		components[i] = comp.Name
	}
	return dessertSummary{
		ID:              tmpl.ID,
		Name:            tmpl.Name,
		Category:        tmpl.Category,
		Difficulty:      string(tmpl.Difficulty),
		ComplexityScore: tmpl.ComplexityScore(),
		Components:      components,
		TypicalYield:    tmpl.TypicalYield,
		TotalTimeMin:    tmpl.TotalTimeMin(),
	}
}
