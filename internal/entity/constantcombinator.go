package entity

import "github.com/forgeware/bpdecode/internal/fields"

func init() {
	registerDecoder("constant-combinator", constantCombinatorDecoder)
}

// constantCombinatorDecoder implements spec §4.D "Constant combinator": a
// u32 count of {signal, s32 count} slots, absent signals dropped, followed
// by an is_on boolean surfaced only when false.
func constantCombinatorDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	conns, err := fields.ReadCircuitConnections(ctx.R)
	if err != nil {
		return nil, err
	}

	count, err := ctx.R.Count32()
	if err != nil {
		return nil, err
	}
	filters := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		sig, err := fields.ReadSignal(ctx.R, ctx.Idx)
		if err != nil {
			return nil, err
		}
		value, err := ctx.R.S32()
		if err != nil {
			return nil, err
		}
		if sig == nil {
			continue
		}
		filters = append(filters, map[string]interface{}{
			"index":  i + 1,
			"count":  value,
			"signal": signalValue(sig),
		})
	}

	isOn, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}

	rec := map[string]interface{}{}
	setDirection(rec, dir)
	if v := connectionsValue("1", conns); v != nil {
		rec["connections"] = v
	}
	control := map[string]interface{}{}
	if len(filters) > 0 {
		control["filters"] = filters
	}
	if !isOn {
		control["is_on"] = false
	}
	if len(control) > 0 {
		rec["control_behavior"] = control
	}
	return rec, nil
}
