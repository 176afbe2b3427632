package cli

import (
	"github.com/spf13/cobra"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &requestFlags{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a formulation's footprint against the traditional version",
		Long: `Formulate a dessert and set its per-serving footprint next to the
traditional dairy version's published baseline.`,
		Example: `  plantissier compare --dessert eclair
  plantissier compare --dessert creme_brulee --constraint coconut_free`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(rootOpts, flags, cmd)
		},
	}

	flags.register(cmd)
	return cmd
}

func runCompare(opts *RootOptions, flags *requestFlags, cmd *cobra.Command) error {
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

	comparison, err := svc.Compare(req)
	if err != nil {
		return reportServiceError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(comparison)
	}
	writeComparison(formatter.Writer, comparison)
	return nil
}
