package entity

import "github.com/forgeware/bpdecode/internal/version"

func init() {
	registerDecoder("power-switch", powerSwitchDecoder)
}

// powerSwitchDecoder implements the power-switch variant: circuit network
// connections and condition, the two copper-wire pole links, and the
// version-gated on/off state (spec §4.D version gates, "V_1_1_4_0").
func powerSwitchDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	conns, cond, err := circuitLogic(ctx)
	if err != nil {
		return nil, err
	}

	leftID, err := ctx.R.U32()
	if err != nil {
		return nil, err
	}
	rightID, err := ctx.R.U32()
	if err != nil {
		return nil, err
	}

	var switchState bool
	if ctx.Ver.Current().AtLeast(version.GatePowerSwitchState) {
		switchState, err = ctx.R.Bool()
		if err != nil {
			return nil, err
		}
	} else if err := ctx.R.Expect(0x00); err != nil {
		return nil, err
	}

	rec := map[string]interface{}{}
	setDirection(rec, dir)
	applyCircuitLogic(rec, conns, cond)
	if leftID != 0 {
		rec["connections_left"] = map[string]interface{}{RawEntityIDKey: leftID}
	}
	if rightID != 0 {
		rec["connections_right"] = map[string]interface{}{RawEntityIDKey: rightID}
	}
	if switchState {
		rec["switch_state"] = true
	}
	return rec, nil
}
