package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/pageza/plantissier/backend/internal/model"
)

// Catalog is the read-only ingredient registry the formulation engines rank
// against. It preserves dataset order, which is what makes ranking ties
// resolve the same way on every run.
type Catalog struct {
	ingredients []*model.Ingredient
	byID        map[string]*model.Ingredient
	position    map[string]int
}

// New builds a Catalog from an ingredient list. The list order becomes the
// canonical catalog order. Records are validated; the first bad record
// aborts the load with a DataIntegrityError.
func New(ingredients []model.Ingredient) (*Catalog, error) {
	if err := validate(ingredients); err != nil {
		return nil, err
	}
	c := &Catalog{
		ingredients: make([]*model.Ingredient, 0, len(ingredients)),
		byID:        make(map[string]*model.Ingredient, len(ingredients)),
		position:    make(map[string]int, len(ingredients)),
	}
	for i := range ingredients {
		ing := ingredients[i]
		c.ingredients = append(c.ingredients, &ing)
		c.byID[ing.ID] = &ing
		c.position[ing.ID] = i
	}
	return c, nil
}

// Parse decodes and validates a JSON ingredient dataset.
func Parse(data []byte) (*Catalog, error) {
	var ingredients []model.Ingredient
	if err := json.Unmarshal(data, &ingredients); err != nil {
		return nil, fmt.Errorf("failed to parse ingredient dataset: %w", err)
	}
	return New(ingredients)
}

// GetAll returns every ingredient in catalog order. Callers must treat the
// records as read-only.
func (c *Catalog) GetAll() []*model.Ingredient {
	return c.ingredients
}

// GetByID looks up a single ingredient.
func (c *Catalog) GetByID(id string) (*model.Ingredient, bool) {
	ing, ok := c.byID[id]
	return ing, ok
}

// FilterByRole returns, in catalog order, every ingredient that can fill the
// given functional role.
func (c *Catalog) FilterByRole(role model.Role) []*model.Ingredient {
	var out []*model.Ingredient
	for _, ing := range c.ingredients {
		if ing.HasRole(role) {
			out = append(out, ing)
		}
	}
	return out
}

// FilterByCategory returns, in catalog order, every ingredient in the given
// category.
func (c *Catalog) FilterByCategory(cat model.Category) []*model.Ingredient {
	var out []*model.Ingredient
	for _, ing := range c.ingredients {
		if ing.Category == cat {
			out = append(out, ing)
		}
	}
	return out
}

// Len reports the number of ingredients in the catalog.
func (c *Catalog) Len() int {
	return len(c.ingredients)
}

// Order reports the dataset position of an ingredient, or -1 when the id is
// not in the catalog.
func (c *Catalog) Order(id string) int {
	pos, ok := c.position[id]
	if !ok {
		return -1
	}
	return pos
}
