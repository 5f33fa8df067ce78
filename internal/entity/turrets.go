package entity

import "math"

func init() {
	registerDecoder("ammo-turret", turretDecoder(false))
	registerDecoder("electric-turret", turretDecoder(false))
	registerDecoder("fluid-turret", turretDecoder(false))
	registerDecoder("artillery-turret", turretDecoder(true))
}

// turretDecoder implements the shared turret shape: direction and
// orientation are stored redundantly; spec §4.D's post-parse fix-up
// replaces a direction of 8 (the vanilla "north-pinned" sentinel) with
// floor(8*orientation) and drops orientation, otherwise keeps the stored
// direction if non-zero. Artillery turrets additionally carry a run of
// literal sentinel bytes (0x7FFF, 0x7FFFFFFF) of undocumented meaning that
// must be enforced as version-integrity checks.
func turretDecoder(artillery bool) Decoder {
	return func(ctx *Context) (map[string]interface{}, error) {
		if artillery {
			if err := ctx.R.Expect(0xFF, 0x7F); err != nil { // literal s16 0x7FFF
				return nil, err
			}
		}

		dir, err := readDirection(ctx)
		if err != nil {
			return nil, err
		}
		orientation, err := readOrientation(ctx)
		if err != nil {
			return nil, err
		}

		if artillery {
			if err := ctx.R.Expect(0xFF, 0xFF, 0xFF, 0x7F); err != nil { // literal s32 0x7FFFFFFF
				return nil, err
			}
		}

		conns, cond, err := circuitLogic(ctx)
		if err != nil {
			return nil, err
		}

		rec := map[string]interface{}{}
		applyFixedTurretDirection(rec, dir, orientation)
		applyCircuitLogic(rec, conns, cond)
		return rec, nil
	}
}

func applyFixedTurretDirection(rec map[string]interface{}, dir uint8, orientation float32) {
	if dir == 8 {
		fixed := int(math.Floor(8 * float64(orientation)))
		if fixed != 0 {
			rec["direction"] = fixed
		}
		return
	}
	if dir != 0 {
		rec["direction"] = int(dir)
	}
}
