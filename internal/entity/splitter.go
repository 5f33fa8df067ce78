package entity

import (
	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/prototype"
)

func init() {
	registerDecoder("splitter", splitterDecoder)
}

type splitterPriority struct {
	Input  *string
	Output *string
}

func side(s string) *string { return &s }

// splitterPriorityTable is the fixed 9-entry mapping of valid priority
// code points to (input priority, output priority) pairs (spec §4.D
// "Splitter priorities"). Any byte outside this table is a parse error.
var splitterPriorityTable = map[uint8]splitterPriority{
	0x00: {},
	0x10: {Output: side("left")},
	0x13: {Output: side("right")},
	0x20: {Input: side("left")},
	0x2C: {Input: side("right")},
	0x30: {Input: side("left"), Output: side("right")},
	0x33: {Input: side("right"), Output: side("left")},
	0x3C: {Input: side("right"), Output: side("right")},
	0x3F: {Input: side("left"), Output: side("left")},
}

func splitterDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}

	priorityOffset := ctx.R.Tell()
	code, err := ctx.R.U8()
	if err != nil {
		return nil, err
	}
	priority, ok := splitterPriorityTable[code]
	if !ok {
		return nil, diagnostics.New(priorityOffset, "unrecognized splitter priority code 0x%02X", code)
	}

	filterID, err := ctx.R.U16()
	if err != nil {
		return nil, err
	}

	rec := map[string]interface{}{}
	if priority.Input != nil {
		rec["input_priority"] = *priority.Input
	}
	if priority.Output != nil {
		rec["output_priority"] = *priority.Output
	}
	setDirection(rec, dir)
	if filterID != 0 {
		if entry, ok := ctx.Idx.Lookup(prototype.KindItem, uint32(filterID)); ok {
			rec["filter"] = entry.Name
		}
	}
	return rec, nil
}
