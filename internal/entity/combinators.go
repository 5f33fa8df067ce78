package entity

import (
	"github.com/forgeware/bpdecode/internal/fields"
	"github.com/forgeware/bpdecode/internal/stream"
)

func init() {
	registerDecoder("arithmetic-combinator", arithmeticCombinatorDecoder)
	registerDecoder("decider-combinator", deciderCombinatorDecoder)
}

// arithmeticOpTable is the fixed operator index range for arithmetic
// combinators (spec §4.D "Combinators").
var arithmeticOpTable = map[uint8]string{
	0: "*", 1: "/", 2: "+", 3: "-", 4: "%", 5: "^",
	6: "<<", 7: ">>", 8: "AND", 9: "OR", 10: "XOR",
}

// readCombinatorConnections reads the two independent connection blocks
// combinators carry: circuit "1" for the input side, "2" for the output.
func readCombinatorConnections(ctx *Context) (map[string]interface{}, error) {
	conn1, err := fields.ReadCircuitConnections(ctx.R)
	if err != nil {
		return nil, err
	}
	conn2, err := fields.ReadCircuitConnections(ctx.R)
	if err != nil {
		return nil, err
	}
	conns := map[string]interface{}{}
	if v := connectionsValue("1", conn1); v != nil {
		for k, val := range v {
			conns[k] = val
		}
	}
	if v := connectionsValue("2", conn2); v != nil {
		for k, val := range v {
			conns[k] = val
		}
	}
	if len(conns) == 0 {
		return nil, nil
	}
	return conns, nil
}

func arithmeticCombinatorDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	conns, err := readCombinatorConnections(ctx)
	if err != nil {
		return nil, err
	}

	first, err := fields.ReadSignal(ctx.R, ctx.Idx)
	if err != nil {
		return nil, err
	}
	op, err := stream.MappedU8(ctx.R, arithmeticOpTable, "arithmetic operator")
	if err != nil {
		return nil, err
	}
	second, err := fields.ReadSignal(ctx.R, ctx.Idx)
	if err != nil {
		return nil, err
	}
	constant, err := ctx.R.S32()
	if err != nil {
		return nil, err
	}
	useConstant, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}
	output, err := fields.ReadSignal(ctx.R, ctx.Idx)
	if err != nil {
		return nil, err
	}

	condRec := map[string]interface{}{"operation": op}
	if v := signalValue(first); v != nil {
		condRec["first_signal"] = v
	}
	if useConstant {
		condRec["second_constant"] = constant
	} else if v := signalValue(second); v != nil {
		condRec["second_signal"] = v
	}
	if v := signalValue(output); v != nil {
		condRec["output_signal"] = v
	}

	rec := map[string]interface{}{}
	setDirection(rec, dir)
	if conns != nil {
		rec["connections"] = conns
	}
	rec["control_behavior"] = map[string]interface{}{"arithmetic_conditions": condRec}
	return rec, nil
}

func deciderCombinatorDecoder(ctx *Context) (map[string]interface{}, error) {
	dir, err := readDirection(ctx)
	if err != nil {
		return nil, err
	}
	conns, err := readCombinatorConnections(ctx)
	if err != nil {
		return nil, err
	}

	first, err := fields.ReadSignal(ctx.R, ctx.Idx)
	if err != nil {
		return nil, err
	}
	comparator, err := fields.ReadComparator(ctx.R)
	if err != nil {
		return nil, err
	}
	second, err := fields.ReadSignal(ctx.R, ctx.Idx)
	if err != nil {
		return nil, err
	}
	constant, err := ctx.R.S32()
	if err != nil {
		return nil, err
	}
	useConstant, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}
	output, err := fields.ReadSignal(ctx.R, ctx.Idx)
	if err != nil {
		return nil, err
	}
	copyCount, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}

	condRec := map[string]interface{}{"comparator": comparator}
	if v := signalValue(first); v != nil {
		condRec["first_signal"] = v
	}
	if useConstant {
		condRec["constant"] = constant
	} else if v := signalValue(second); v != nil {
		condRec["second_signal"] = v
	}
	if v := signalValue(output); v != nil {
		condRec["output_signal"] = v
	}
	if copyCount {
		condRec["copy_count_from_input"] = true
	}

	rec := map[string]interface{}{}
	setDirection(rec, dir)
	if conns != nil {
		rec["connections"] = conns
	}
	rec["control_behavior"] = map[string]interface{}{"decider_conditions": condRec}
	return rec, nil
}
