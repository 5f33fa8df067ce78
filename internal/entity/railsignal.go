package entity

import (
	"github.com/forgeware/bpdecode/internal/fields"
	"github.com/forgeware/bpdecode/internal/version"
)

func init() {
	registerDecoder("rail-signal", railSignalDecoder(false))
	registerDecoder("rail-chain-signal", railSignalDecoder(true))
}

// railSignalColours lists the colour output signals a rail-signal carries;
// chain signals carry one additional colour beyond the three plain signals
// use (spec §4.D "Rail signal / chain signal colour signals").
var railSignalColours = []struct{ key, def string }{
	{"red_output_signal", "signal-red"},
	{"yellow_output_signal", "signal-yellow"},
	{"green_output_signal", "signal-green"},
}

var chainSignalExtraColour = struct{ key, def string }{"blue_output_signal", "signal-blue"}

// railSignalDecoder implements the shared rail-signal / rail-chain-signal
// shape: each colour output signal is read and suppressed when it equals
// its hard-coded default. Chain signals additionally carry a version-gated
// extra flag byte from STABLE_V_1_1 onward.
func railSignalDecoder(chain bool) Decoder {
	colours := railSignalColours
	if chain {
		colours = append(append([]struct{ key, def string }{}, railSignalColours...), chainSignalExtraColour)
	}
	return func(ctx *Context) (map[string]interface{}, error) {
		dir, err := readDirection(ctx)
		if err != nil {
			return nil, err
		}
		conns, cond, err := circuitLogic(ctx)
		if err != nil {
			return nil, err
		}

		control := map[string]interface{}{}
		for _, c := range colours {
			sig, err := fields.ReadSignal(ctx.R, ctx.Idx)
			if err != nil {
				return nil, err
			}
			if sig == nil || (sig.Type == "virtual" && sig.Name == c.def) {
				continue
			}
			control[c.key] = signalValue(sig)
		}

		if chain && ctx.Ver.Current().AtLeast(version.GateStable) {
			if _, err := ctx.R.U8(); err != nil {
				return nil, err
			}
		}

		rec := map[string]interface{}{}
		setDirection(rec, dir)
		applyCircuitLogic(rec, conns, cond)
		if len(control) > 0 {
			if cb, ok := rec["control_behavior"].(map[string]interface{}); ok {
				for k, v := range control {
					cb[k] = v
				}
			} else {
				rec["control_behavior"] = control
			}
		}
		return rec, nil
	}
}
