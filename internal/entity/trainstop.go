package entity

import (
	"github.com/forgeware/bpdecode/internal/fields"
	"github.com/forgeware/bpdecode/internal/version"
)

func init() {
	registerDecoder("train-stop", trainStopDecoder)
}

// trainStopDecoder implements the train-stop variant: station name, color,
// circuit logic, and the version-gated train-limit block added by
// STABLE_V_1_1 (spec §4.D version gates).
func trainStopDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}

	stationName, err := ctx.R.String()
	if err != nil {
		return nil, err
	}
	color, err := fields.ReadColor(ctx.R)
	if err != nil {
		return nil, err
	}
	conns, cond, err := circuitLogic(ctx)
	if err != nil {
		return nil, err
	}

	readFromTrain, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}
	readStoppedTrain, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}
	stoppedTrainSignal, err := fields.ReadSignal(ctx.R, ctx.Idx)
	if err != nil {
		return nil, err
	}

	control := map[string]interface{}{}
	if readFromTrain {
		control["read_from_train"] = true
	}
	if readStoppedTrain {
		control["read_stopped_train"] = true
	}
	if v := signalValue(stoppedTrainSignal); v != nil {
		control["stopped_train_signal"] = v
	}

	if ctx.Ver.Current().AtLeast(version.GateStable) {
		readTrainsCount, err := ctx.R.Bool()
		if err != nil {
			return nil, err
		}
		trainsCountSignal, err := fields.ReadSignal(ctx.R, ctx.Idx)
		if err != nil {
			return nil, err
		}
		setTrainsLimit, err := ctx.R.Bool()
		if err != nil {
			return nil, err
		}
		trainsLimitSignal, err := fields.ReadSignal(ctx.R, ctx.Idx)
		if err != nil {
			return nil, err
		}
		manualTrainsLimit, err := ctx.R.U32()
		if err != nil {
			return nil, err
		}
		if readTrainsCount {
			control["read_trains_count"] = true
		}
		if v := signalValue(trainsCountSignal); v != nil {
			control["trains_count_signal"] = v
		}
		if setTrainsLimit {
			control["set_trains_limit"] = true
		}
		if v := signalValue(trainsLimitSignal); v != nil {
			control["trains_limit_signal"] = v
		}
		if manualTrainsLimit != 0 {
			control["manual_trains_limit"] = int(manualTrainsLimit)
		}
	}

	rec := map[string]interface{}{}
	setDirection(rec, dir)
	if stationName != "" {
		rec["station"] = stationName
	}
	rec["color"] = colorValue(color)
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
