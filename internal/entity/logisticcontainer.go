package entity

import (
	"github.com/forgeware/bpdecode/internal/fields"
	"github.com/forgeware/bpdecode/internal/version"
)

func init() {
	registerDecoder("logistic-container", logisticContainerDecoder)
}

// logisticModesWithBuffer is the pre-STABLE_V_1_1 set of logistic modes that
// carry a request_from_buffers flag; STABLE_V_1_1 extends this to all modes
// (spec §4.D "Logistic settings").
var logisticModesWithBuffer = map[uint8]bool{2: true, 3: true, 5: true}

func logisticContainerDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}

	mode, err := ctx.R.U8()
	if err != nil {
		return nil, err
	}
	if err := ctx.R.Expect(0x03); err != nil {
		return nil, err
	}
	filters, err := fields.ReadFilterList(ctx.R, ctx.Idx)
	if err != nil {
		return nil, err
	}

	stable := ctx.Ver.Current().AtLeast(version.GateStable)
	requestFromBuffers := false
	if stable || logisticModesWithBuffer[mode] {
		requestFromBuffers, err = ctx.R.Bool()
		if err != nil {
			return nil, err
		}
	}

	conns, cond, err := circuitLogic(ctx)
	if err != nil {
		return nil, err
	}

	rec := map[string]interface{}{}
	setDirection(rec, dir)
	if v := filtersValue(filters, false); v != nil {
		rec["request_filters"] = v
	}
	if requestFromBuffers {
		rec["request_from_buffers"] = true
	}
	applyCircuitLogic(rec, conns, cond)
	return rec, nil
}
