package entity

func init() {
	registerDecoder("electric-energy-interface", electricEnergyInterfaceDecoder)
	registerDecoder("infinity-pipe", infinityPipeDecoder)
	registerDecoder("heat-interface", heatInterfaceDecoder)
}

// electricEnergyInterfaceDecoder reads the direction and the buffer size,
// power production, and power usage parameters (three f64 values) of the
// map-editor-only electric energy interface.
func electricEnergyInterfaceDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	buffer, err := ctx.R.F64()
	if err != nil {
		return nil, err
	}
	production, err := ctx.R.F64()
	if err != nil {
		return nil, err
	}
	usage, err := ctx.R.F64()
	if err != nil {
		return nil, err
	}

	rec := map[string]interface{}{}
	setDirection(rec, dir)
	rec["buffer_size"] = buffer
	rec["power_production"] = production
	rec["power_usage"] = usage
	return rec, nil
}

// infinityPipeDecoder reads direction and the infinite fluid source's
// configuration (fluid name, percentage, mode, temperature).
func infinityPipeDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	name, err := ctx.R.String()
	if err != nil {
		return nil, err
	}
	percentage, err := ctx.R.F64()
	if err != nil {
		return nil, err
	}
	mode, err := ctx.R.U8()
	if err != nil {
		return nil, err
	}
	temperature, err := ctx.R.F64()
	if err != nil {
		return nil, err
	}

	rec := map[string]interface{}{}
	setDirection(rec, dir)
	if name != "" {
		fluidModes := map[uint8]string{0: "at-least", 1: "at-most", 2: "exactly", 3: "add", 4: "remove"}
		infinitySettings := map[string]interface{}{
			"name":        name,
			"percentage":  percentage,
			"mode":        fluidModes[mode],
			"temperature": temperature,
		}
		rec["infinity_settings"] = infinitySettings
	}
	return rec, nil
}

// heatInterfaceDecoder reads direction and the target temperature/mode the
// map-editor-only heat interface enforces on its neighbours.
func heatInterfaceDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	temperature, err := ctx.R.F64()
	if err != nil {
		return nil, err
	}
	mode, err := ctx.R.U8()
	if err != nil {
		return nil, err
	}

	rec := map[string]interface{}{}
	setDirection(rec, dir)
	modes := map[uint8]string{0: "at-least", 1: "at-most", 2: "exactly", 3: "add", 4: "remove"}
	rec["temperature"] = temperature
	rec["mode"] = modes[mode]
	return rec, nil
}
