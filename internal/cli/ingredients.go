package cli

import (
	"github.com/spf13/cobra"

	"github.com/pageza/plantissier/backend/internal/model"
)

// NewIngredientsCommand creates the ingredients command.
func NewIngredientsCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		role         string
		category     string
		allergenFree []string
	)

	cmd := &cobra.Command{
		Use:   "ingredients",
		Short: "List catalog ingredients",
		Long: `List the ingredient catalog, optionally filtered by functional role,
category, or allergen tags to avoid.`,
		Example: `  plantissier ingredients
  plantissier ingredients --role foaming
  plantissier ingredients --category sweetener --allergen-free coconut --allergen-free cashew`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngredients(rootOpts, cmd, role, category, allergenFree)
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "only ingredients filling this functional role")
	cmd.Flags().StringVar(&category, "category", "", "only ingredients in this category")
	cmd.Flags().StringArrayVar(&allergenFree, "allergen-free", nil, "exclude ingredients carrying this allergen tag, repeatable")

	return cmd
}

func runIngredients(opts *RootOptions, cmd *cobra.Command, role, category string, allergenFree []string) error {
	formatter := newFormatter(opts, cmd)

	svc, err := newService(opts)
	if err != nil {
		_ = formatter.Error(CodeCatalogError, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	list := svc.Catalog().GetAll()
	filtered := make([]*model.Ingredient, 0, len(list))
	for _, ing := range list {
		if role != "" && !ing.HasRole(model.Role(role)) {
			continue
		}
		if category != "" && ing.Category != model.Category(category) {
			continue
		}
		if carriesAny(ing, allergenFree) {
			continue
		}
		filtered = append(filtered, ing)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]interface{}{
			"ingredients": filtered,
			"count":       len(filtered),
		})
	}
	writeIngredientTable(formatter.Writer, filtered)
	return nil
}

func carriesAny(ing *model.Ingredient, tags []string) bool {
	for _, tag := range tags {
		if ing.HasAllergen(tag) {
			return true
		}
	}
	return false
}
