package entity

func init() {
	for _, class := range []string{"lamp", "pump", "offshore-pump", "mining-drill", "storage-tank"} {
		registerDecoder(class, directionWithCircuitLogicDecoder)
	}
}

// directionWithCircuitLogicDecoder handles entities whose body is a
// direction byte followed by the shared circuit-connections-plus-condition
// block: lamps, pumps, offshore pumps, mining drills, storage tanks.
func directionWithCircuitLogicDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	conns, cond, err := circuitLogic(ctx)
	if err != nil {
		return nil, err
	}

	rec := map[string]interface{}{}
	setDirection(rec, dir)
	applyCircuitLogic(rec, conns, cond)
	return rec, nil
}
