package objects

import (
	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
	"github.com/forgeware/bpdecode/internal/version"
)

// readVarSize reads the same escalating 1-byte/4-byte scheme strings use
// for length prefixes, applied here to a declared content size (spec §6
// "count8/32 content_size").
func readVarSize(r *stream.Reader) (int, error) {
	n, err := r.U8()
	if err != nil {
		return 0, err
	}
	if n != 0xFF {
		return int(n), nil
	}
	full, err := r.U32()
	if err != nil {
		return 0, err
	}
	return int(full), nil
}

// readSnapToGrid reads a blueprint's optional snap-to-grid settings and,
// from STABLE_V_1_1 onward, the position-relative-to-grid extension (spec
// §4.D version gates, "GateStable").
func readSnapToGrid(ctx *Context) (map[string]interface{}, error) {
	r := ctx.R
	has, err := r.Bool()
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	x, err := r.U32()
	if err != nil {
		return nil, err
	}
	y, err := r.U32()
	if err != nil {
		return nil, err
	}
	rec := map[string]interface{}{"x": x, "y": y}

	if ctx.Ver.Current().AtLeast(version.GateStable) {
		absolute, err := r.Bool()
		if err != nil {
			return nil, err
		}
		if absolute {
			rec["absolute_snapping"] = true
			rx, err := r.S32()
			if err != nil {
				return nil, err
			}
			ry, err := r.S32()
			if err != nil {
				return nil, err
			}
			rec["position_relative_to_grid"] = map[string]interface{}{"x": rx, "y": ry}
		}
	}
	return rec, nil
}

// readTiles reads the blueprint's tile list: a count32 of {u8 tile id, s32
// x, s32 y} triples.
func readTiles(ctx *Context) ([]interface{}, error) {
	r := ctx.R
	n, err := r.Count32()
	if err != nil {
		return nil, err
	}
	tiles := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		idOffset := r.Tell()
		id, err := r.U8()
		if err != nil {
			return nil, err
		}
		x, err := r.S32()
		if err != nil {
			return nil, err
		}
		y, err := r.S32()
		if err != nil {
			return nil, err
		}
		entry, ok := ctx.Idx.Lookup(prototype.KindTile, uint32(id))
		if !ok {
			return nil, diagnostics.New(idOffset, "unresolved tile prototype id %d", id)
		}
		tiles = append(tiles, map[string]interface{}{
			"name":     entry.Name,
			"position": map[string]interface{}{"x": x, "y": y},
		})
	}
	return tiles, nil
}
