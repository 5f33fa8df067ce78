package fields

import "github.com/forgeware/bpdecode/internal/stream"

// Color is an RGBA color, used for train/wagon colors and rail signal
// tint overrides.
type Color struct {
	R, G, B, A float32
}

// ReadColor reads four little-endian float32 components in R, G, B, A order.
func ReadColor(r *stream.Reader) (Color, error) {
	var c Color
	var err error
	if c.R, err = r.F32(); err != nil {
		return c, err
	}
	if c.G, err = r.F32(); err != nil {
		return c, err
	}
	if c.B, err = r.F32(); err != nil {
		return c, err
	}
	if c.A, err = r.F32(); err != nil {
		return c, err
	}
	return c, nil
}
