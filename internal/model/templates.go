package model

// DessertRegistry holds the immutable dessert template set. Built once at
// startup; safe for concurrent reads.
type DessertRegistry struct {
	templates map[string]*DessertTemplate
	order     []string
}

// NewDessertRegistry builds the registry with the shipped template set.
func NewDessertRegistry() *DessertRegistry {
	return NewDessertRegistryWith(
		eclairTemplate(),
		cremeBruleeTemplate(),
		croissantTemplate(),
		tartTemplate(),
		macaronTemplate(),
		mousseTemplate(),
	)
}

// NewDessertRegistryWith builds a registry from an explicit template set.
func NewDessertRegistryWith(templates ...*DessertTemplate) *DessertRegistry {
	r := &DessertRegistry{templates: make(map[string]*DessertTemplate)}
	for _, t := range templates {
		r.templates[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	return r
}

// Get returns the template for a dessert type id.
func (r *DessertRegistry) Get(id string) (*DessertTemplate, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// List returns all templates in registration order.
func (r *DessertRegistry) List() []*DessertTemplate {
	out := make([]*DessertTemplate, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.templates[id])
	}
	return out
}

// IDs returns the registered dessert type ids in order.
func (r *DessertRegistry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered templates.
func (r *DessertRegistry) Len() int {
	return len(r.order)
}

func eclairTemplate() *DessertTemplate {
	return &DessertTemplate{
		ID:              "eclair",
		Name:            "Éclair",
		Category:        "choux",
		Difficulty:      DifficultyIntermediate,
		TypicalYield:    12,
		ServingMassG:    115,
		PrepTimeMin:     90,
		BakeTimeMin:     30,
		ChillTimeMin:    120,
		BakeTempCelsius: 200,
		Components: []Component{
			{
				Name:           "Choux Pastry Shell",
				WeightFraction: 0.40,
				RequiredRoles: []Role{
					RoleFatStructuring,
					RoleFoaming,
					RoleBinding,
					RoleMoistureRetention,
				},
				TextureTargets: []string{"crispy", "airy"},
				Bands: map[string]Band{
					PropFat:     {Min: 15, Max: 25},
					PropWater:   {Min: 50, Max: 60},
					PropProtein: {Min: 8, Max: 12},
				},
				Parts: []Part{
					{Key: "water", FixedIngredientID: "water", Fraction: 0.356},
					{Key: "fat", Role: RoleFatStructuring, Fraction: 0.142,
						Band: map[string]Band{PropFat: {Min: 70, Max: 100}}, PrepNote: "cubed"},
					{Key: "flour", Role: RoleBinding, Fraction: 0.214,
						Band: map[string]Band{PropProtein: {Min: 6, Max: 13}}, PrepNote: "sifted"},
					{Key: "aerator", Role: RoleFoaming, Fraction: 0.285,
						Band: map[string]Band{PropFat: {Min: 0, Max: 5}}, PrepNote: "room temperature"},
					{Key: "salt", FixedIngredientID: "salt", Fraction: 0.003},
				},
				Steps: []StepTemplate{
					{Text: "Preheat oven to 200°C (400°F). Line a baking sheet with parchment.",
						DurationMin: 5, TempCelsius: 200, Critical: true, Tips: "Proper temperature is critical for puff"},
					{Text: "In a saucepan, bring {water}, {fat} and {salt} to a rolling boil.",
						DurationMin: 5, Critical: true, Tips: "The fat must be fully melted before the flour goes in"},
					{Text: "Remove from heat. Add {flour} all at once, stirring vigorously until the dough forms a ball.",
						DurationMin: 3, Critical: true, Tips: "The dough should pull away from the pan sides cleanly"},
					{Text: "Return to medium heat. Cook 2-3 minutes, stirring constantly to dry the dough.",
						DurationMin: 3, Critical: true, Tips: "This step removes excess moisture for better puff"},
					{Text: "Transfer to a bowl. Let cool 5 minutes to about 60°C.", DurationMin: 5},
					{Text: "Add {aerator} gradually, mixing well after each addition until smooth.",
						DurationMin: 10, Critical: true, Tips: "The dough should be glossy and hold soft peaks"},
					{Text: "Pipe 10 cm logs onto the prepared sheet, spacing 5 cm apart.",
						DurationMin: 10, Tips: "Use a 1.5 cm round tip for uniform shells"},
					{Text: "Bake 30 minutes without opening the oven. Reduce to 180°C and bake 10 more minutes.",
						DurationMin: 40, TempCelsius: 200, Critical: true, Tips: "Opening the oven causes collapse. Shells should be golden and firm"},
					{Text: "Turn off the oven. Pierce each shell with a knife. Leave in the oven 10 minutes to dry.",
						DurationMin: 10, Critical: true, Tips: "This prevents sogginess"},
				},
			},
			{
				Name:           "Pastry Cream Filling",
				WeightFraction: 0.50,
				RequiredRoles: []Role{
					RoleThickening,
					RoleEmulsification,
					RoleFlavorCarrier,
					RoleMoistureRetention,
				},
				TextureTargets: []string{"creamy", "smooth"},
				Bands: map[string]Band{
					PropFat:       {Min: 8, Max: 15},
					PropViscosity: {Min: 5000, Max: 15000},
				},
				Parts: []Part{
					{Key: "cream", Role: RoleEmulsification, Fraction: 0.768},
					{Key: "sweetener", Role: RoleSweetening, Fraction: 0.153,
						Band: map[string]Band{PropWater: {Min: 0, Max: 2}}},
					{Key: "thickener", Role: RoleThickening, Fraction: 0.058,
						Band: map[string]Band{PropViscosity: {Min: 5000, Max: 12000}}},
					{Key: "vanilla", FixedIngredientID: "vanilla_extract", Fraction: 0.019},
					{Key: "salt", FixedIngredientID: "salt", Fraction: 0.002},
				},
				Steps: []StepTemplate{
					{Text: "For the cream: whisk {cream}, {sweetener}, {thickener} and {salt} in a saucepan.",
						DurationMin: 5},
					{Text: "Cook over medium heat, whisking constantly until thick, 5-7 minutes.",
						DurationMin: 7, Critical: true, Tips: "Should coat the back of a spoon thickly"},
					{Text: "Remove from heat. Stir in {vanilla}. Cover with film touching the surface and chill 2 hours.",
						DurationMin: 120},
				},
			},
			{
				Name:           "Chocolate Glaze",
				WeightFraction: 0.10,
				RequiredRoles: []Role{
					RoleFatStructuring,
					RoleCrystallization,
					RoleFlavorCarrier,
				},
				TextureTargets: []string{"smooth"},
				Bands: map[string]Band{
					PropFat: {Min: 30, Max: 40},
				},
				Parts: []Part{
					{Key: "cocoa", Role: RoleFlavorCarrier, Fraction: 0.286,
						Band: map[string]Band{PropFat: {Min: 8, Max: 14}, PropProtein: {Min: 15, Max: 25}}},
					{Key: "setting_fat", Role: RoleCrystallization, Fraction: 0.428,
						Band: map[string]Band{PropFat: {Min: 90, Max: 100}}, PrepNote: "melted"},
					{Key: "liquid_sweetener", Role: RoleSweetening, Fraction: 0.286,
						Band: map[string]Band{PropWater: {Min: 25, Max: 40}}},
				},
				Steps: []StepTemplate{
					{Text: "For the glaze: whisk {cocoa}, melted {setting_fat} and {liquid_sweetener} until smooth.",
						DurationMin: 5},
					{Text: "Slice the shells horizontally. Pipe the cream into the bottom halves and replace the tops.",
						DurationMin: 10},
					{Text: "Dip the tops in the glaze. Let set 15 minutes before serving.",
						DurationMin: 15},
				},
			},
		},
		SpecialEquipment: []string{"piping bag", "pastry tips"},
		CriticalTechnique: []string{
			"choux paste preparation",
			"proper piping technique",
			"steam management during baking",
			"pastry cream tempering",
		},
		CommonFailures: []string{
			"shells collapse after baking (insufficient structure)",
			"shells don't puff (too much fat or moisture)",
			"cream is too thin (insufficient thickening)",
			"glaze is grainy (improper chocolate tempering)",
		},
		SuccessIndicators: []string{
			"hollow, crispy shells",
			"smooth, stable cream",
			"glossy glaze",
			"no sogginess after filling",
		},
		Baseline:      FootprintBaseline{CO2Kg: 0.45, WaterL: 85, LandM2: 0.18},
		Storage:       "Store unfilled shells in an airtight container at room temperature up to 2 days. Fill just before serving. Filled éclairs refrigerate up to 1 day.",
		ShelfLifeDays: 1,
		Notes:         "Critical: proper steam in oven for initial puff",
	}
}

func cremeBruleeTemplate() *DessertTemplate {
	return &DessertTemplate{
		ID:              "creme_brulee",
		Name:            "Crème Brûlée",
		Category:        "custard",
		Difficulty:      DifficultyIntermediate,
		TypicalYield:    6,
		ServingMassG:    135,
		PrepTimeMin:     60,
		BakeTimeMin:     40,
		ChillTimeMin:    240,
		BakeTempCelsius: 150,
		Components: []Component{
			{
				Name:           "Custard Base",
				WeightFraction: 0.90,
				RequiredRoles: []Role{
					RoleThickening,
					RoleEmulsification,
					RoleBinding,
					RoleFlavorCarrier,
				},
				TextureTargets: []string{"creamy", "smooth"},
				Bands: map[string]Band{
					PropFat:       {Min: 15, Max: 25},
					PropProtein:   {Min: 3, Max: 6},
					PropViscosity: {Min: 3000, Max: 8000},
				},
				Parts: []Part{
					{Key: "cream", Role: RoleEmulsification, Fraction: 0.797,
						Band: map[string]Band{PropFat: {Min: 18, Max: 24}}},
					{Key: "sweetener", Role: RoleSweetening, Fraction: 0.133,
						Band: map[string]Band{PropWater: {Min: 0, Max: 2}}},
					{Key: "thickener", Role: RoleThickening, Fraction: 0.053,
						Band: map[string]Band{PropViscosity: {Min: 5000, Max: 12000}}},
					{Key: "gelling", FixedIngredientID: "agar_agar", Fraction: 0.004},
					{Key: "vanilla", FixedIngredientID: "vanilla_extract", Fraction: 0.013},
				},
				Steps: []StepTemplate{
					{Text: "Preheat oven to 150°C (300°F).", DurationMin: 5, TempCelsius: 150},
					{Text: "In a saucepan, whisk {cream}, {sweetener}, {thickener} and {gelling}.",
						DurationMin: 5},
					{Text: "Heat over medium, whisking constantly until the mixture thickens and bubbles, 8-10 minutes.",
						DurationMin: 10, Critical: true, Tips: "Don't let it boil rapidly or it may curdle"},
					{Text: "Remove from heat. Whisk in {vanilla}.", DurationMin: 1},
					{Text: "Strain through a fine-mesh sieve into a measuring cup.",
						DurationMin: 3, Tips: "This ensures silky smooth texture"},
					{Text: "Divide among the ramekins. Place in a deep baking dish.", DurationMin: 5},
					{Text: "Pour hot water into the dish to reach halfway up the ramekins (bain-marie).",
						DurationMin: 5, Critical: true, Tips: "The water bath ensures gentle, even cooking"},
					{Text: "Bake 35-40 minutes until set but still slightly jiggly in the center.",
						DurationMin: 40, TempCelsius: 150, Critical: true, Tips: "The custard will firm up as it cools"},
					{Text: "Remove from the water bath. Cool to room temperature, then chill 4 hours.",
						DurationMin: 240},
				},
			},
			{
				Name:           "Caramelized Sugar Top",
				WeightFraction: 0.10,
				RequiredRoles: []Role{
					RoleCrystallization,
					RoleBrowning,
				},
				TextureTargets: []string{"crunchy"},
				Parts: []Part{
					{Key: "caramel_sugar", Role: RoleBrowning, Fraction: 1.0,
						Band: map[string]Band{PropFat: {Min: 0, Max: 1}, PropWater: {Min: 0, Max: 2}}},
				},
				Steps: []StepTemplate{
					{Text: "Before serving, sprinkle {caramel_sugar} evenly over the custards.",
						DurationMin: 5, Tips: "About one tablespoon per custard"},
					{Text: "Caramelize the sugar with a kitchen torch until golden and bubbling.",
						DurationMin: 5, Critical: true, Tips: "Keep the torch moving to avoid burning. Let cool 2 minutes before serving"},
				},
			},
		},
		SpecialEquipment: []string{"ramekins", "kitchen torch", "water bath"},
		CriticalTechnique: []string{
			"gentle heating to avoid curdling",
			"water bath (bain-marie) baking",
			"proper caramelization technique",
			"temperature control",
		},
		CommonFailures: []string{
			"custard curdles (too high temperature)",
			"custard doesn't set (insufficient thickener)",
			"sugar burns instead of caramelizes",
			"watery texture (improper emulsification)",
		},
		SuccessIndicators: []string{
			"smooth, set custard with slight jiggle",
			"even caramelized sugar crust",
			"no bubbles or cracks",
			"clean release from ramekin",
		},
		Baseline:      FootprintBaseline{CO2Kg: 0.52, WaterL: 95, LandM2: 0.22},
		Storage:       "Refrigerate covered up to 3 days. Caramelize the sugar just before serving for best texture.",
		ShelfLifeDays: 3,
		Notes:         "Coconut cream base works excellently for richness",
	}
}

func croissantTemplate() *DessertTemplate {
	return &DessertTemplate{
		ID:              "croissant",
		Name:            "Croissant",
		Category:        "laminated",
		Difficulty:      DifficultyExpert,
		TypicalYield:    12,
		ServingMassG:    95,
		PrepTimeMin:     180,
		BakeTimeMin:     20,
		BakeTempCelsius: 200,
		Components: []Component{
			{
				Name:           "Laminated Dough",
				WeightFraction: 1.0,
				RequiredRoles: []Role{
					RoleFatStructuring,
					RoleBinding,
					RoleMoistureRetention,
				},
				TextureTargets: []string{"flaky", "crispy"},
				Bands: map[string]Band{
					PropFat:   {Min: 25, Max: 35},
					PropWater: {Min: 35, Max: 45},
				},
				Parts: []Part{
					{Key: "flour", Role: RoleBinding, Fraction: 0.450,
						Band: map[string]Band{PropProtein: {Min: 8, Max: 13}}, PrepNote: "sifted"},
					{Key: "water", FixedIngredientID: "water", Fraction: 0.225, PrepNote: "cold"},
					{Key: "lamination_fat", Role: RoleFatStructuring, Fraction: 0.270,
						Band: map[string]Band{PropFat: {Min: 75, Max: 90}}, PrepNote: "cold, for lamination"},
					{Key: "salt", FixedIngredientID: "salt", Fraction: 0.009},
					{Key: "sweetener", Role: RoleSweetening, Fraction: 0.046,
						Band: map[string]Band{PropWater: {Min: 0, Max: 2}}},
				},
				Steps: []StepTemplate{
					{Text: "Make the dough: mix {flour}, {water}, {salt} and {sweetener} until combined. Knead 5 minutes.",
						DurationMin: 10},
					{Text: "Wrap the dough and refrigerate 1 hour.", DurationMin: 60},
					{Text: "Roll {lamination_fat:name} between parchment into a 15 cm square. Chill.",
						DurationMin: 10},
					{Text: "Roll the dough into a 30 cm square. Place the {lamination_fat:name} square in the center and fold the dough over.",
						DurationMin: 10, Critical: true, Tips: "The fat should be cold but pliable"},
					{Text: "Roll into a rectangle and fold in thirds. Chill 30 minutes. Repeat 3 times.",
						DurationMin: 120, Critical: true, Tips: "This creates the flaky layers"},
					{Text: "Roll to 5 mm thickness, cut triangles and roll into crescents.",
						DurationMin: 20},
					{Text: "Proof 2 hours at room temperature until doubled.", DurationMin: 120},
					{Text: "Bake at 200°C for 15-20 minutes until golden.", DurationMin: 20, TempCelsius: 200},
				},
			},
		},
		SpecialEquipment: []string{"rolling pin", "pastry brush"},
		CriticalTechnique: []string{
			"lamination technique",
			"proper folding",
			"temperature control",
			"resting periods",
		},
		CommonFailures: []string{
			"butter breaks through dough",
			"layers don't separate",
			"dough is too tough",
		},
		SuccessIndicators: []string{
			"distinct flaky layers",
			"golden brown color",
			"airy interior",
		},
		Baseline:      FootprintBaseline{CO2Kg: 0.38, WaterL: 75, LandM2: 0.15},
		Storage:       "Best the day of baking. Keep in a paper bag at room temperature up to 2 days; re-crisp 5 minutes at 180°C.",
		ShelfLifeDays: 2,
		Notes:         "Requires precise temperature control and multiple resting periods",
	}
}

func tartTemplate() *DessertTemplate {
	return &DessertTemplate{
		ID:              "tart",
		Name:            "Fruit Tart",
		Category:        "tart",
		Difficulty:      DifficultyIntermediate,
		TypicalYield:    8,
		ServingMassG:    125,
		PrepTimeMin:     90,
		BakeTimeMin:     25,
		ChillTimeMin:    150,
		BakeTempCelsius: 180,
		Components: []Component{
			{
				Name:           "Tart Shell",
				WeightFraction: 0.40,
				RequiredRoles: []Role{
					RoleFatStructuring,
					RoleBinding,
				},
				TextureTargets: []string{"crispy", "crunchy"},
				Bands: map[string]Band{
					PropFat: {Min: 30, Max: 40},
				},
				Parts: []Part{
					{Key: "flour", Role: RoleBinding, Fraction: 0.524,
						Band: map[string]Band{PropProtein: {Min: 6, Max: 13}}},
					{Key: "cold_fat", Role: RoleFatStructuring, Fraction: 0.262,
						Band: map[string]Band{PropFat: {Min: 70, Max: 100}}, PrepNote: "cold, cubed"},
					{Key: "sweetener", Role: RoleSweetening, Fraction: 0.105,
						Band: map[string]Band{PropWater: {Min: 0, Max: 2}}},
					{Key: "water", FixedIngredientID: "water", Fraction: 0.105, PrepNote: "ice cold"},
					{Key: "salt", FixedIngredientID: "salt", Fraction: 0.004},
				},
				Steps: []StepTemplate{
					{Text: "Make the dough: mix {flour}, {sweetener} and {salt}. Cut in {cold_fat} until crumbly.",
						DurationMin: 10},
					{Text: "Add {water}, mixing until the dough just comes together. Chill 30 minutes.",
						DurationMin: 30},
					{Text: "Roll the dough and fit into the tart pan. Prick the bottom with a fork.",
						DurationMin: 10},
					{Text: "Line with parchment and fill with pie weights. Blind bake 15 minutes at 180°C.",
						DurationMin: 15, TempCelsius: 180, Critical: true, Tips: "Blind baking prevents a soggy bottom"},
					{Text: "Remove the weights and bake 10 more minutes until golden.",
						DurationMin: 10, TempCelsius: 180},
				},
			},
			{
				Name:           "Pastry Cream",
				WeightFraction: 0.60,
				RequiredRoles: []Role{
					RoleThickening,
					RoleEmulsification,
				},
				TextureTargets: []string{"creamy"},
				Bands: map[string]Band{
					PropFat: {Min: 10, Max: 20},
				},
				Parts: []Part{
					{Key: "cream", Role: RoleEmulsification, Fraction: 0.768},
					{Key: "sweetener", Role: RoleSweetening, Fraction: 0.153,
						Band: map[string]Band{PropWater: {Min: 0, Max: 2}}},
					{Key: "thickener", Role: RoleThickening, Fraction: 0.058,
						Band: map[string]Band{PropViscosity: {Min: 5000, Max: 12000}}},
					{Key: "vanilla", FixedIngredientID: "vanilla_extract", Fraction: 0.019},
					{Key: "salt", FixedIngredientID: "salt", Fraction: 0.002},
				},
				Steps: []StepTemplate{
					{Text: "Make the pastry cream: cook {cream}, {sweetener} and {thickener} until thick. Stir in {vanilla}.",
						DurationMin: 10},
					{Text: "Cool the cream and fill the tart shell. Top with fresh fruit.",
						DurationMin: 15},
					{Text: "Chill 2 hours before serving.", DurationMin: 120},
				},
			},
		},
		SpecialEquipment: []string{"tart pan", "pie weights"},
		CriticalTechnique: []string{
			"blind baking",
			"even rolling",
			"proper crimping",
		},
		CommonFailures: []string{
			"soggy bottom",
			"shrinking crust",
			"cracking",
		},
		SuccessIndicators: []string{
			"crisp shell",
			"smooth cream",
			"no gaps",
		},
		Baseline:      FootprintBaseline{CO2Kg: 0.40, WaterL: 80, LandM2: 0.17},
		Storage:       "Refrigerate in an airtight container. Add fruit just before serving.",
		ShelfLifeDays: 2,
		Notes:         "Blind baking essential for crisp crust",
	}
}

func macaronTemplate() *DessertTemplate {
	return &DessertTemplate{
		ID:              "macaron",
		Name:            "Macaron",
		Category:        "macaron",
		Difficulty:      DifficultyExpert,
		TypicalYield:    24,
		ServingMassG:    32,
		PrepTimeMin:     120,
		BakeTimeMin:     15,
		ChillTimeMin:    1440,
		BakeTempCelsius: 150,
		Components: []Component{
			{
				Name:           "Macaron Shell",
				WeightFraction: 0.70,
				RequiredRoles: []Role{
					RoleFoaming,
					RoleBinding,
					RoleCrystallization,
				},
				TextureTargets: []string{"smooth", "chewy"},
				Bands: map[string]Band{
					PropProtein: {Min: 5, Max: 10},
				},
				Parts: []Part{
					{Key: "aerator", Role: RoleFoaming, Fraction: 0.250,
						Band: map[string]Band{PropFat: {Min: 0, Max: 5}}},
					{Key: "shell_sugar", Role: RoleCrystallization, Fraction: 0.333,
						Band: map[string]Band{PropWater: {Min: 0, Max: 2}}},
					{Key: "flour", Role: RoleBinding, Fraction: 0.333,
						Band: map[string]Band{PropProtein: {Min: 6, Max: 13}}, PrepNote: "finely ground"},
					{Key: "starch", Role: RoleThickening, Fraction: 0.084,
						Band: map[string]Band{PropViscosity: {Min: 5000, Max: 12000}}},
				},
				Steps: []StepTemplate{
					{Text: "Whip {aerator} to stiff peaks, gradually adding {shell_sugar}.",
						DurationMin: 10, Critical: true, Tips: "Peaks should stand straight up"},
					{Text: "Sift {flour} and {starch}. Fold gently into the meringue.",
						DurationMin: 5, Critical: true, Tips: "Fold until the mixture flows like lava"},
					{Text: "Pipe 3 cm circles onto a silicone mat. Tap the pan to release bubbles.",
						DurationMin: 15},
					{Text: "Let rest 30-60 minutes until the surface is dry to the touch.",
						DurationMin: 45, Critical: true, Tips: "This forms the skin that gives the feet"},
					{Text: "Bake at 150°C for 12-15 minutes. Cool completely.",
						DurationMin: 15, TempCelsius: 150},
				},
			},
			{
				Name:           "Filling",
				WeightFraction: 0.30,
				RequiredRoles: []Role{
					RoleEmulsification,
					RoleFlavorCarrier,
				},
				TextureTargets: []string{"creamy"},
				Bands: map[string]Band{
					PropFat: {Min: 40, Max: 60},
				},
				Parts: []Part{
					{Key: "base_fat", Role: RoleFatStructuring, Fraction: 0.645,
						Band: map[string]Band{PropFat: {Min: 70, Max: 90}}, PrepNote: "softened"},
					{Key: "sweetener", Role: RoleSweetening, Fraction: 0.323,
						Band: map[string]Band{PropWater: {Min: 0, Max: 2}}},
					{Key: "vanilla", FixedIngredientID: "vanilla_extract", Fraction: 0.032},
				},
				Steps: []StepTemplate{
					{Text: "Make the filling: beat {base_fat}, {sweetener} and {vanilla} until fluffy.",
						DurationMin: 5},
					{Text: "Pipe the filling on half the shells and sandwich with the rest.",
						DurationMin: 10},
					{Text: "Refrigerate 24 hours for best flavor and texture.", DurationMin: 1440},
				},
			},
		},
		SpecialEquipment: []string{"piping bag", "silicone mat"},
		CriticalTechnique: []string{
			"macaronage technique",
			"proper piping",
			"resting before baking",
			"temperature precision",
		},
		CommonFailures: []string{
			"no feet formation",
			"hollow shells",
			"cracked tops",
			"uneven baking",
		},
		SuccessIndicators: []string{
			"smooth tops",
			"ruffled feet",
			"chewy texture",
		},
		Baseline:      FootprintBaseline{CO2Kg: 0.35, WaterL: 70, LandM2: 0.14},
		Storage:       "Refrigerate in an airtight container up to 4 days; bring to room temperature before serving.",
		ShelfLifeDays: 4,
		Notes:         "Extremely technique-sensitive, requires practice",
	}
}

func mousseTemplate() *DessertTemplate {
	return &DessertTemplate{
		ID:           "mousse",
		Name:         "Chocolate Mousse",
		Category:     "mousse",
		Difficulty:   DifficultyIntermediate,
		TypicalYield: 6,
		ServingMassG: 90,
		PrepTimeMin:  30,
		ChillTimeMin: 240,
		Components: []Component{
			{
				Name:           "Mousse Base",
				WeightFraction: 1.0,
				RequiredRoles: []Role{
					RoleFoaming,
					RoleEmulsification,
					RoleThickening,
				},
				TextureTargets: []string{"airy", "creamy"},
				Bands: map[string]Band{
					PropFat: {Min: 15, Max: 25},
				},
				Parts: []Part{
					{Key: "cream", Role: RoleEmulsification, Fraction: 0.731,
						Band: map[string]Band{PropFat: {Min: 18, Max: 24}}, PrepNote: "chilled"},
					{Key: "cocoa", Role: RoleFlavorCarrier, Fraction: 0.110,
						Band: map[string]Band{PropFat: {Min: 8, Max: 14}, PropProtein: {Min: 15, Max: 25}}},
					{Key: "liquid_sweetener", Role: RoleSweetening, Fraction: 0.146,
						Band: map[string]Band{PropWater: {Min: 25, Max: 40}}},
					{Key: "vanilla", FixedIngredientID: "vanilla_extract", Fraction: 0.009},
					{Key: "gelling", FixedIngredientID: "agar_agar", Fraction: 0.004},
				},
				Steps: []StepTemplate{
					{Text: "Bloom {gelling} in two tablespoons of water for 5 minutes.", DurationMin: 5},
					{Text: "Heat a quarter of {cream} with the bloomed {gelling:name} until dissolved.",
						DurationMin: 5, Critical: true, Tips: "Must reach 85°C to activate the gel"},
					{Text: "Whisk in {cocoa} and {liquid_sweetener} until smooth. Add {vanilla}.",
						DurationMin: 3},
					{Text: "Cool to room temperature, stirring occasionally.", DurationMin: 15},
					{Text: "Whip the remaining {cream:name} to soft peaks.", DurationMin: 5},
					{Text: "Fold the chocolate mixture into the whipped cream gently.",
						DurationMin: 5, Critical: true, Tips: "Fold carefully to keep the air in"},
					{Text: "Divide into serving glasses. Chill 4 hours until set.", DurationMin: 240},
					{Text: "Serve chilled, optionally garnished with berries.", DurationMin: 2},
				},
			},
		},
		SpecialEquipment: []string{"whisk", "mixing bowls"},
		CriticalTechnique: []string{
			"proper folding",
			"temperature control",
			"aeration technique",
		},
		CommonFailures: []string{
			"deflated mousse",
			"grainy texture",
			"separation",
		},
		SuccessIndicators: []string{
			"light and airy",
			"holds shape",
			"smooth texture",
		},
		Baseline:      FootprintBaseline{CO2Kg: 0.40, WaterL: 80, LandM2: 0.17},
		Storage:       "Refrigerate covered; serve within 2 days.",
		ShelfLifeDays: 2,
		Notes:         "No baking required, must chill to set",
	}
}
