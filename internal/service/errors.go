package service

import (
	"errors"
	"fmt"

	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/model"
)

// ErrUnknownDessertType is returned when a formulation names a dessert id
// that is not in the template registry. Wrapped with the requested id.
var ErrUnknownDessertType = errors.New("unknown dessert type")

// UnsatisfiableRoleError means no catalog ingredient can fill a required
// functional role under the active dietary constraints.
type UnsatisfiableRoleError struct {
	Dessert     string
	Component   string
	Role        model.Role
	Constraints []model.DietaryConstraint
}

func (e *UnsatisfiableRoleError) Error() string {
	if len(e.Constraints) == 0 {
		return fmt.Sprintf("%s: no ingredient can fill role %q in component %q", e.Dessert, e.Role, e.Component)
	}
	return fmt.Sprintf("%s: no ingredient can fill role %q in component %q under constraints %v", e.Dessert, e.Role, e.Component, e.Constraints)
}

// RatioInvariantError means rounding pushed an aggregated component property
// outside its target band by more than the configured tolerance.
type RatioInvariantError struct {
	Dessert   string
	Component string
	Property  string
	Value     float64
	Band      model.Band
}

func (e *RatioInvariantError) Error() string {
	return fmt.Sprintf("%s: component %q %s = %.2f escapes band [%g, %g] after rounding", e.Dessert, e.Component, e.Property, e.Value, e.Band.Min, e.Band.Max)
}

// DataIntegrityError aliases the catalog's integrity fault so callers can
// match every formulation failure against this one package.
type DataIntegrityError = catalog.DataIntegrityError
