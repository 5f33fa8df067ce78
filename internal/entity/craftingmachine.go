package entity

func init() {
	registerDecoder("assembling-machine", craftingMachineDecoder(true))
	registerDecoder("furnace", craftingMachineDecoder(false))
	registerDecoder("rocket-silo", craftingMachineDecoder(true))
	registerDecoder("lab", noRecipeDecoder)
	registerDecoder("beacon", noRecipeDecoder)
}

// craftingMachineDecoder handles assembling machines, furnaces, and rocket
// silos: a direction byte and, for recipe-selectable variants, an optional
// recipe name string (empty string means no recipe set). Modules and fuel
// ride the common items trailer (spec §4.D point 3) rather than this body.
func craftingMachineDecoder(hasRecipe bool) Decoder {
	return func(ctx *Context) (map[string]interface{}, error) {
		dir, err := readDirection(ctx)
		if err != nil {
			return nil, err
		}
		rec := map[string]interface{}{}
		setDirection(rec, dir)

		if hasRecipe {
			recipe, err := ctx.R.String()
			if err != nil {
				return nil, err
			}
			if recipe != "" {
				rec["recipe"] = recipe
			}
		}
		return rec, nil
	}
}

// noRecipeDecoder handles labs and beacons: direction only, no recipe
// selection, modules riding the common items trailer.
func noRecipeDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	rec := map[string]interface{}{}
	setDirection(rec, dir)
	return rec, nil
}
