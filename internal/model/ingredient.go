package model

import (
	"database/sql/driver"
	"encoding/json"
)

// Category classifies an ingredient by its dominant culinary function.
type Category string

const (
	CategoryFat        Category = "fat"
	CategoryProtein    Category = "protein"
	CategoryEmulsifier Category = "emulsifier"
	CategorySweetener  Category = "sweetener"
	CategoryFlour      Category = "flour"
	CategoryLiquid     Category = "liquid"
	CategoryLeavening  Category = "leavening"
	CategoryStabilizer Category = "stabilizer"
	CategoryFlavoring  Category = "flavoring"
)

// Role is a functional job an ingredient can perform inside a component.
type Role string

const (
	RoleFatStructuring    Role = "fat_structuring"
	RoleEmulsification    Role = "emulsification"
	RoleFoaming           Role = "foaming"
	RoleBinding           Role = "binding"
	RoleBrowning          Role = "browning"
	RoleSweetening        Role = "sweetening"
	RoleThickening        Role = "thickening"
	RoleMoistureRetention Role = "moisture_retention"
	RoleFlavorCarrier     Role = "flavor_carrier"
	RoleCrystallization   Role = "crystallization"
)

// Availability describes how easily an ingredient is sourced.
type Availability string

const (
	AvailabilityCommon    Availability = "common"
	AvailabilitySpecialty Availability = "specialty"
	AvailabilityRare      Availability = "rare"
)

// Property keys for the sparse physical property map.
const (
	PropMeltingPoint = "melting_point_celsius"
	PropProtein      = "protein_content_percent"
	PropFat          = "fat_content_percent"
	PropWater        = "water_content_percent"
	PropPH           = "ph"
	PropViscosity    = "viscosity_cps"
	PropEmulsifying  = "emulsifying_capacity"
	PropFoaming      = "foaming_capacity"
)

// Unit is a measurement unit appearing on recipe lines.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitCup        Unit = "cup"
	UnitPiece      Unit = "piece"
)

// UnitToKilograms converts one unit of measure to kilograms, assuming
// density 1 for volumes, as in the reference footprint tables.
var UnitToKilograms = map[Unit]float64{
	UnitGram:       0.001,
	UnitKilogram:   1.0,
	UnitMilliliter: 0.001,
	UnitLiter:      1.0,
	UnitTeaspoon:   0.005,
	UnitTablespoon: 0.015,
	UnitCup:        0.240,
	UnitPiece:      0.050,
}

// RoundingPrecision returns the gram (or milliliter) step ingredient amounts
// of the given category are rounded to on recipe lines.
func RoundingPrecision(c Category) float64 {
	switch c {
	case CategoryEmulsifier, CategoryStabilizer, CategoryLeavening:
		return 0.1
	case CategoryFlavoring:
		return 0.5
	default:
		return 1.0
	}
}

// JSONBStringArray stores a string slice as JSONB in Postgres and as a plain
// array in JSON documents.
type JSONBStringArray []string

// Value implements the driver.Valuer interface. The value is a string, not
// []byte, so that text-protocol paths such as pq COPY do not mistake the
// JSON for bytea.
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Properties is the sparse physical property map of an ingredient. Absent
// keys mean the value is unknown, not zero.
type Properties map[string]float64

// Get reports a property value and whether it is defined.
func (p Properties) Get(key string) (float64, bool) {
	v, ok := p[key]
	return v, ok
}

// Value implements the driver.Valuer interface. Returns a string for the
// same text-protocol reason as JSONBStringArray.
func (p Properties) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (p *Properties) Scan(value interface{}) error {
	if value == nil {
		*p = Properties{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// Sustainability carries published environmental footprint factors per
// kilogram of ingredient.
type Sustainability struct {
	CO2KgPerKg  float64 `gorm:"type:float;not null" json:"co2_kg_per_kg"`
	WaterLPerKg float64 `gorm:"type:float;not null" json:"water_liters_per_kg"`
	LandM2PerKg float64 `gorm:"type:float;not null" json:"land_m2_per_kg"`
	Source      string  `gorm:"size:255" json:"source"`
}

// Ingredient is one immutable catalog record.
type Ingredient struct {
	ID               string           `gorm:"size:64;primary_key" json:"id"`
	Name             string           `gorm:"size:255;not null" json:"name"`
	Category         Category         `gorm:"size:32;not null" json:"category"`
	Roles            JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"functional_roles"`
	Properties       Properties       `gorm:"type:jsonb;not null;default:'{}'" json:"properties"`
	Sustainability   Sustainability   `gorm:"embedded;embeddedPrefix:sust_" json:"sustainability"`
	CostPerKgEUR     float64          `gorm:"type:float;not null" json:"cost_per_kg_eur"`
	Allergens        JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergens"`
	Availability     Availability     `gorm:"size:16;not null;default:'common'" json:"availability"`
	Substitutes      JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"substitutes"`
	IncompatibleWith JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"incompatible_with"`
	Unit             Unit             `gorm:"size:8;not null;default:'g'" json:"unit"`
	Notes            string           `gorm:"type:text" json:"notes"`

	// Position preserves dataset order when the catalog round-trips through
	// a database. Matching order across catalog sources keeps tie-breaks in
	// ingredient matching deterministic.
	Position int `gorm:"not null;default:0" json:"-"`
}

// HasRole reports whether the ingredient can perform the given role.
func (i *Ingredient) HasRole(role Role) bool {
	for _, r := range i.Roles {
		if Role(r) == role {
			return true
		}
	}
	return false
}

// HasAllergen reports whether the ingredient carries the given tag.
func (i *Ingredient) HasAllergen(tag string) bool {
	for _, a := range i.Allergens {
		if a == tag {
			return true
		}
	}
	return false
}

// DietaryConstraint is a request-level restriction on ingredient selection.
type DietaryConstraint string

const (
	ConstraintVegan       DietaryConstraint = "vegan"
	ConstraintNutFree     DietaryConstraint = "nut_free"
	ConstraintSoyFree     DietaryConstraint = "soy_free"
	ConstraintGlutenFree  DietaryConstraint = "gluten_free"
	ConstraintCoconutFree DietaryConstraint = "coconut_free"
	ConstraintSugarFree   DietaryConstraint = "sugar_free"
)

// ExcludedTags maps each dietary constraint to the allergen tags it forbids.
var ExcludedTags = map[DietaryConstraint][]string{
	ConstraintVegan:       {"egg", "dairy", "milk", "honey", "gelatin"},
	ConstraintNutFree:     {"almond", "cashew", "hazelnut", "walnut", "pecan", "pistachio"},
	ConstraintSoyFree:     {"soy"},
	ConstraintGlutenFree:  {"wheat", "barley", "rye", "gluten"},
	ConstraintCoconutFree: {"coconut"},
	ConstraintSugarFree:   {"added_sugar"},
}

// KnownConstraints lists every supported constraint in a stable order.
var KnownConstraints = []DietaryConstraint{
	ConstraintVegan,
	ConstraintNutFree,
	ConstraintSoyFree,
	ConstraintGlutenFree,
	ConstraintCoconutFree,
	ConstraintSugarFree,
}

// ValidConstraint reports whether s names a supported dietary constraint.
func ValidConstraint(s string) bool {
	_, ok := ExcludedTags[DietaryConstraint(s)]
	return ok
}

// Satisfies reports whether an ingredient passes all given constraints.
func (i *Ingredient) Satisfies(constraints []DietaryConstraint) bool {
	for _, c := range constraints {
		for _, tag := range ExcludedTags[c] {
			if i.HasAllergen(tag) {
				return false
			}
		}
	}
	return true
}
