package entity

import "github.com/forgeware/bpdecode/internal/fields"

func init() {
	registerDecoder("accumulator", accumulatorDecoder)
}

// accumulatorDecoder reads the single signal accumulators broadcast their
// charge level on.
func accumulatorDecoder(ctx *Context) (map[string]interface{}, error) {
	sig, err := fields.ReadSignal(ctx.R, ctx.Idx)
	if err != nil {
		return nil, err
	}
	rec := map[string]interface{}{}
	if v := signalValue(sig); v != nil {
		rec["output_signal"] = v
	}
	return rec, nil
}
