package entity

import "github.com/forgeware/bpdecode/internal/fields"

func init() {
	registerDecoder("locomotive", rollingStockDecoder(rollingStockKindLocomotive))
	registerDecoder("cargo-wagon", rollingStockDecoder(rollingStockKindCargo))
	registerDecoder("fluid-wagon", rollingStockDecoder(rollingStockKindFluid))
	registerDecoder("artillery-wagon", rollingStockDecoder(rollingStockKindArtillery))
}

type rollingStockKind int

const (
	rollingStockKindLocomotive rollingStockKind = iota
	rollingStockKindCargo
	rollingStockKindFluid
	rollingStockKindArtillery
)

// rollingStockDecoder handles the train vehicle family: orientation
// (rolling stock doesn't use the 8-way direction byte), a paint color, and
// a variant-specific inventory bar for cargo wagons. Artillery wagons
// additionally carry the same undocumented literal sentinel run as
// artillery turrets (spec §4.D "Open questions").
func rollingStockDecoder(kind rollingStockKind) Decoder {
	return func(ctx *Context) (map[string]interface{}, error) {
		orientation, err := readOrientation(ctx)
		if err != nil {
			return nil, err
		}
		color, err := fields.ReadColor(ctx.R)
		if err != nil {
			return nil, err
		}

		rec := map[string]interface{}{"orientation": orientation}
		rec["color"] = colorValue(color)

		if kind == rollingStockKindCargo {
			bar, err := ctx.R.U16()
			if err != nil {
				return nil, err
			}
			if bar != 0 {
				rec["bar"] = int(bar)
			}
		}

		if kind == rollingStockKindArtillery {
			if err := ctx.R.Expect(0xFF, 0x7F); err != nil { // literal s16 0x7FFF
				return nil, err
			}
			if err := ctx.R.Expect(0xFF, 0xFF, 0xFF, 0x7F); err != nil { // literal s32 0x7FFFFFFF
				return nil, err
			}
		}

		return rec, nil
	}
}
