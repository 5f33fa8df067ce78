package entity

import (
	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/fields"
	"github.com/forgeware/bpdecode/internal/prototype"
)

func init() {
	registerDecoder("roboport", roboportDecoder)
}

// roboportOutputKeys and roboportDefaults implement spec §4.D "Roboport
// 'empty' signal": each of the four output signals defaults to a
// hard-coded virtual signal and is suppressed from the record when the
// stored signal matches that default exactly.
var roboportOutputKeys = []string{
	"available_logistic_output_signal",
	"total_logistic_output_signal",
	"available_construction_output_signal",
	"total_construction_output_signal",
}

var roboportDefaults = []string{"signal-X", "signal-Y", "signal-Z", "signal-T"}

// readRoboportSignal reads a roboport output signal. Unlike fields.ReadSignal,
// an absent id (0) yields {type: "item"} rather than nil, matching the
// source's representation of "no signal configured" for this one field.
func readRoboportSignal(ctx *Context) (*fields.Signal, error) {
	kindOffset := ctx.R.Tell()
	kindByte, err := ctx.R.U8()
	if err != nil {
		return nil, err
	}
	var typeName string
	var kind prototype.Kind
	switch kindByte {
	case 0:
		typeName, kind = "item", prototype.KindItem
	case 1:
		typeName, kind = "fluid", prototype.KindFluid
	case 2:
		typeName, kind = "virtual", prototype.KindVirtualSignal
	default:
		return nil, diagnostics.New(kindOffset, "unrecognized signal kind 0x%02X", kindByte)
	}

	id, err := ctx.R.U16()
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return &fields.Signal{Type: "item"}, nil
	}
	entry, ok := ctx.Idx.Lookup(kind, uint32(id))
	if !ok {
		return nil, diagnostics.New(kindOffset, "unresolved %s signal id %d", typeName, id)
	}
	return &fields.Signal{Type: typeName, Name: entry.Name}, nil
}

func roboportDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	conns, cond, err := circuitLogic(ctx)
	if err != nil {
		return nil, err
	}

	readLogistics, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}
	readRobotStats, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}

	control := map[string]interface{}{}
	if readLogistics {
		control["read_logistics"] = true
	}
	if readRobotStats {
		control["read_robot_stats"] = true
	}

	for i, key := range roboportOutputKeys {
		sig, err := readRoboportSignal(ctx)
		if err != nil {
			return nil, err
		}
		if sig.Type == "virtual" && sig.Name == roboportDefaults[i] {
			continue
		}
		if sig.Name == "" {
			control[key] = map[string]interface{}{"type": sig.Type}
		} else {
			control[key] = signalValue(sig)
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
