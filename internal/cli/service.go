package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/model"
	"github.com/pageza/plantissier/backend/internal/service"
)

// newService builds a formulation service over the selected catalog source.
func newService(opts *RootOptions) (*service.FormulationService, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if opts.CatalogPath != "" {
		cat, err = catalog.LoadFile(opts.CatalogPath)
	} else {
		cat, err = catalog.LoadEmbedded()
	}
	if err != nil {
		return nil, err
	}
	return service.NewFormulationService(cat, model.NewDessertRegistry(), service.DefaultTuning()), nil
}

// newFormatter wires a command's output streams into an OutputFormatter.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// requestFlags collects the formulation request flags shared by the
// formulate and compare commands.
type requestFlags struct {
	dessert     string
	constraints []string
	budget      float64
	servings    int
	priority    string
	venue       string
}

func (rf *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&rf.dessert, "dessert", "", "dessert type to formulate (see 'desserts' for the list)")
	cmd.Flags().StringArrayVar(&rf.constraints, "constraint", nil, "dietary constraint, repeatable (vegan, nut_free, soy_free, gluten_free, coconut_free, sugar_free)")
	cmd.Flags().Float64Var(&rf.budget, "budget", 3.50, "budget per serving in EUR")
	cmd.Flags().IntVar(&rf.servings, "servings", 0, "yield in servings (0 uses the dessert's typical yield)")
	cmd.Flags().StringVar(&rf.priority, "priority", "", "sustainability priority (balanced, low_co2, low_water, low_cost)")
	cmd.Flags().StringVar(&rf.venue, "venue", "", "venue cost profile (cafe, restaurant, canteen, bakery)")
	_ = cmd.MarkFlagRequired("dessert")
}

func (rf *requestFlags) request() *service.FormulationRequest {
	return &service.FormulationRequest{
		DessertType:   rf.dessert,
		Constraints:   rf.constraints,
		BudgetPerUnit: rf.budget,
		Servings:      rf.servings,
		Priority:      rf.priority,
		Venue:         rf.venue,
	}
}

// reportServiceError prints a classified formulation error and converts it
// into an exit code. Unknown dessert types and catalog faults are command
// errors; unsatisfiable constraints and escaped ratio bands are formulation
// failures.
func reportServiceError(formatter *OutputFormatter, err error) error {
	var (
		roleErr  *service.UnsatisfiableRoleError
		ratioErr *service.RatioInvariantError
		dataErr  *service.DataIntegrityError
	)
	switch {
	case errors.Is(err, service.ErrUnknownDessertType):
		_ = formatter.Error(CodeUnknownDessert, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	case errors.As(err, &roleErr):
		_ = formatter.Error(CodeUnsatisfiable, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	case errors.As(err, &ratioErr):
		_ = formatter.Error(CodeRatioEscape, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	case errors.As(err, &dataErr):
		_ = formatter.Error(CodeCatalogError, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	default:
		_ = formatter.Error(CodeCatalogError, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
}
