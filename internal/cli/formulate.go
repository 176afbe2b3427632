package cli

import (
	"github.com/spf13/cobra"
)

// NewFormulateCommand creates the formulate command.
func NewFormulateCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &requestFlags{}

	cmd := &cobra.Command{
		Use:   "formulate",
		Short: "Formulate a plant-based recipe for a dessert",
		Long: `Formulate a plant-based recipe for a classic dessert.

Selects an ingredient for every functional role in the dessert's template
under the given dietary constraints, then scores the result for
sustainability, cost and predicted success. Text output is a printable
recipe card; JSON output carries the full recipe document.`,
		Example: `  plantissier formulate --dessert eclair
  plantissier formulate --dessert mousse --constraint nut_free --constraint soy_free
  plantissier formulate --dessert tart --budget 2.20 --venue canteen --priority low_co2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormulate(rootOpts, flags, cmd)
		},
	}

	flags.register(cmd)
	return cmd
}

func runFormulate(opts *RootOptions, flags *requestFlags, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	svc, err := newService(opts)
	if err != nil {
		_ = formatter.Error(CodeCatalogError, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	req := flags.request()
	if err := req.Validate(); err != nil {
		_ = formatter.Error(CodeInvalidRequest, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	formatter.VerboseLog("formulating %s under constraints %v", req.DessertType, req.Constraints)

	recipe, err := svc.Formulate(req)
	if err != nil {
		return reportServiceError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(recipe)
	}
	writeRecipeCard(formatter.Writer, recipe)
	return nil
}
