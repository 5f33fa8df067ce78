package entity

import (
	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/fields"
)

func init() {
	registerDecoder("inserter", inserterDecoder)
}

// inserterDecoder implements spec §4.D "Inserter flags": a flag byte with
// bit 0x01 = override_stack_size, 0x02 = whitelist (filter_mode is
// "blacklist" when clear), bit 0x04 required set, all other bits zero.
func inserterDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}

	flagOffset := ctx.R.Tell()
	flags, err := ctx.R.U8()
	if err != nil {
		return nil, err
	}
	if flags&0x04 == 0 {
		return nil, diagnostics.New(flagOffset, "inserter flag byte 0x%02X missing required bit 0x04", flags)
	}
	if flags&^0x07 != 0 {
		return nil, diagnostics.New(flagOffset, "inserter flag byte 0x%02X sets unexpected bits", flags)
	}
	overrideStackSize := flags&0x01 != 0
	whitelist := flags&0x02 != 0

	rec := map[string]interface{}{}
	if overrideStackSize {
		stackSize, err := ctx.R.U8()
		if err != nil {
			return nil, err
		}
		rec["override_stack_size"] = int(stackSize)
	}

	filters, err := fields.ReadFilterList(ctx.R, ctx.Idx)
	if err != nil {
		return nil, err
	}
	if v := filtersValue(filters, false); v != nil {
		rec["filters"] = v
	}
	if !whitelist {
		rec["filter_mode"] = "blacklist"
	}

	conns, cond, err := circuitLogic(ctx)
	if err != nil {
		return nil, err
	}
	setDirection(rec, dir)
	applyCircuitLogic(rec, conns, cond)
	return rec, nil
}
