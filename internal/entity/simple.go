package entity

func init() {
	for _, class := range []string{
		"wall", "gate", "heat-pipe", "straight-rail", "curved-rail",
		"radar", "solar-panel", "generator", "reactor", "burner-generator",
		"boiler", "pipe", "pipe-to-ground",
	} {
		registerDecoder(class, directionOnlyDecoder)
	}
	registerDecoder("land-mine", noBodyDecoder)
}

// directionOnlyDecoder handles every entity variant whose body is nothing
// but a direction byte: walls, gates, heat pipes, rail pieces, radar,
// solar panels, generators, reactors, burner generators, boilers, pipes,
// and pipe-to-ground segments.
func directionOnlyDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	rec := map[string]interface{}{}
	setDirection(rec, dir)
	return rec, nil
}

// noBodyDecoder handles land-mine, whose only variant-specific state is
// the pre-body flag byte already consumed by the common envelope.
func noBodyDecoder(ctx *Context) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}
