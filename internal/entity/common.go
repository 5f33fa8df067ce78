package entity

import "github.com/forgeware/bpdecode/internal/fields"

// readDirection reads the u8 direction code every rotatable entity carries
// right after its variant-specific discriminator bytes.
func readDirection(ctx *Context) (uint8, error) {
	return ctx.R.U8()
}

// setDirection adds direction to rec unless it is the default (0, north).
func setDirection(rec map[string]interface{}, dir uint8) {
	if dir != 0 {
		rec["direction"] = int(dir)
	}
}

// readOrientation reads the f32 orientation every rail vehicle and turret
// carries.
func readOrientation(ctx *Context) (float32, error) {
	return ctx.R.F32()
}

// circuitLogic reads the connections block plus a condition-with-logistic
// block, the shape shared by every circuit-network-aware entity that isn't
// one of the bespoke variants (combinators, inserters, power switches, ...).
func circuitLogic(ctx *Context) (*fields.CircuitConnections, *fields.ConditionWithLogistic, error) {
	conns, err := fields.ReadCircuitConnections(ctx.R)
	if err != nil {
		return nil, nil, err
	}
	cond, err := fields.ReadConditionWithLogistic(ctx.R, ctx.Idx)
	if err != nil {
		return nil, nil, err
	}
	return conns, cond, nil
}

// applyCircuitLogic merges a circuitLogic read into rec under the standard
// connections/control_behavior keys.
func applyCircuitLogic(rec map[string]interface{}, conns *fields.CircuitConnections, cond *fields.ConditionWithLogistic) {
	if c := connectionsValue("1", conns); c != nil {
		rec["connections"] = c
	}
	if v := conditionWithLogisticValue(cond); v != nil {
		rec["control_behavior"] = map[string]interface{}{"circuit_condition": v}
	}
}
