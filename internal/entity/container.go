package entity

import "github.com/forgeware/bpdecode/internal/fields"

func init() {
	registerDecoder("container", containerDecoder(false))
	registerDecoder("infinity-container", containerDecoder(true))
	registerDecoder("linked-container", linkedContainerDecoder)
}

// containerDecoder handles plain chests and infinity chests: direction, an
// inventory bar limit (0 means unset), and for infinity chests the
// logistic filter block shared with logistic-container (spec §4.D
// "Logistic settings"), then the shared circuit-logic block.
func containerDecoder(infinity bool) Decoder {
	return func(ctx *Context) (map[string]interface{}, error) {
		dir, err := readDirection(ctx)
		if err != nil {
			return nil, err
		}
		bar, err := ctx.R.U16()
		if err != nil {
			return nil, err
		}

		rec := map[string]interface{}{}
		setDirection(rec, dir)
		if bar != 0 {
			rec["bar"] = int(bar)
		}

		if infinity {
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
			_ = mode
			if v := filtersValue(filters, false); v != nil {
				rec["infinity_settings"] = map[string]interface{}{"filters": v}
			}
		}

		conns, cond, err := circuitLogic(ctx)
		if err != nil {
			return nil, err
		}
		applyCircuitLogic(rec, conns, cond)
		return rec, nil
	}
}

// linkedContainerDecoder handles the linked-container variant: direction,
// inventory bar, and the u32 link id tying linked chests together. The
// link id is emitted as stored under "link_id"; the link resolver does not
// rewrite it.
func linkedContainerDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	bar, err := ctx.R.U16()
	if err != nil {
		return nil, err
	}
	linkID, err := ctx.R.U32()
	if err != nil {
		return nil, err
	}

	rec := map[string]interface{}{}
	setDirection(rec, dir)
	if bar != 0 {
		rec["bar"] = int(bar)
	}
	if linkID != 0 {
		rec["link_id"] = linkID
	}
	return rec, nil
}
