package entity

func init() {
	registerDecoder("transport-belt", directionWithCircuitLogicDecoder)
	registerDecoder("underground-belt", undergroundBeltDecoder)
	registerDecoder("loader", loaderDecoder)
	registerDecoder("loader-1x1", loaderDecoder)
	registerDecoder("linked-belt", linkedBeltDecoder)
}

// undergroundBeltDecoder reads direction plus the input/output belt-type
// byte every underground belt carries (0 = input side, 1 = output side).
func undergroundBeltDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	isOutput, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}
	rec := map[string]interface{}{}
	setDirection(rec, dir)
	if isOutput {
		rec["type"] = "output"
	} else {
		rec["type"] = "input"
	}
	return rec, nil
}

// loaderDecoder reads direction, the input/output type byte, and the raw
// belt_link id, a scalar the link resolver rewrites to an entity number
// (spec §4.G).
func loaderDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	isOutput, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}
	linkID, err := ctx.R.U32()
	if err != nil {
		return nil, err
	}

	rec := map[string]interface{}{}
	setDirection(rec, dir)
	if isOutput {
		rec["type"] = "output"
	} else {
		rec["type"] = "input"
	}
	if linkID != 0 {
		rec["belt_link"] = linkID
	}
	return rec, nil
}

// linkedBeltDecoder reads direction, the input/output type byte, and the
// raw belt_link id (spec §4.G "rewrite ... belt_link scalars").
func linkedBeltDecoder(ctx *Context) (map[string]interface{}, error) {
	return loaderDecoder(ctx)
}
