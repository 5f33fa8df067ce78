package entity

import "github.com/forgeware/bpdecode/internal/version"

func init() {
	registerDecoder("electric-pole", electricPoleDecoder)
}

const maxElectricPoleNeighbours = 5

// electricPoleDecoder implements spec §4.D "Electric pole neighbours":
// from GateWireNeighbours onward, a zero-terminated list of up to 5 raw
// entity ids; before the gate, four zero bytes occupy the same space.
func electricPoleDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}

	rec := map[string]interface{}{}
	setDirection(rec, dir)

	if !ctx.Ver.Current().AtLeast(version.GateWireNeighbours) {
		if err := ctx.R.Expect(0x00, 0x00, 0x00, 0x00); err != nil {
			return nil, err
		}
		return rec, nil
	}

	neighbours := make([]interface{}, 0, maxElectricPoleNeighbours)
	for i := 0; i < maxElectricPoleNeighbours; i++ {
		id, err := ctx.R.U32()
		if err != nil {
			return nil, err
		}
		if id == 0 {
			break
		}
		neighbours = append(neighbours, id)
	}
	if len(neighbours) > 0 {
		rec["neighbours"] = neighbours
	}
	return rec, nil
}
