package entity

import "github.com/forgeware/bpdecode/internal/fields"

// valueOf converts a property tree node into a plain Go value suitable for
// the generic record tree / JSON output.
func valueOf(t *fields.PropertyTree) interface{} {
	if t == nil {
		return nil
	}
	switch t.Type {
	case fields.PTNone:
		return nil
	case fields.PTBool:
		return t.Bool
	case fields.PTNumber:
		return t.Number
	case fields.PTString:
		return t.Str
	case fields.PTList:
		list := make([]interface{}, len(t.List))
		for i, v := range t.List {
			list[i] = valueOf(v)
		}
		return list
	case fields.PTDictionary:
		dict := make(map[string]interface{}, len(t.Dict))
		for k, v := range t.Dict {
			dict[k] = valueOf(v)
		}
		return dict
	default:
		return nil
	}
}

// signalValue converts a signal to its record representation, or nil if
// the signal is absent.
func signalValue(s *fields.Signal) interface{} {
	if s == nil {
		return nil
	}
	return map[string]interface{}{"type": s.Type, "name": s.Name}
}

// conditionValue converts a condition to its record representation,
// surfacing either second_signal or constant depending on UseConstant, or
// nil if the condition was suppressed as default.
func conditionValue(c *fields.Condition) interface{} {
	if c == nil {
		return nil
	}
	rec := map[string]interface{}{"comparator": c.Comparator}
	if c.FirstSignal != nil {
		rec["first_signal"] = signalValue(c.FirstSignal)
	}
	if c.UseConstant {
		rec["constant"] = c.Constant
	} else if c.SecondSignal != nil {
		rec["second_signal"] = signalValue(c.SecondSignal)
	}
	return rec
}

// conditionWithLogisticValue converts a ConditionWithLogistic, merging the
// connect_to_logistic_network flag into the condition's record (or
// producing a bare flag record if the condition itself was suppressed).
func conditionWithLogisticValue(c *fields.ConditionWithLogistic) interface{} {
	if c == nil {
		return nil
	}
	var rec map[string]interface{}
	if v := conditionValue(c.Condition); v != nil {
		rec = v.(map[string]interface{})
	} else {
		rec = map[string]interface{}{}
	}
	if c.ConnectToLogisticNetwork {
		rec["connect_to_logistic_network"] = true
	}
	if len(rec) == 0 {
		return nil
	}
	return rec
}

// iconsValue converts an icon list to its record representation.
func iconsValue(icons []fields.Icon) interface{} {
	if len(icons) == 0 {
		return nil
	}
	list := make([]interface{}, len(icons))
	for i, icon := range icons {
		list[i] = map[string]interface{}{
			"index":  icon.Index,
			"signal": map[string]interface{}{"type": icon.Type, "name": icon.Name},
		}
	}
	return list
}

// filtersValue converts a filter list to its record representation. When
// zeroBased is true (deconstruction/upgrade planners), indices are rebased
// down by one relative to the 1-based wire indices entities use.
func filtersValue(filters []fields.Filter, zeroBased bool) interface{} {
	if len(filters) == 0 {
		return nil
	}
	list := make([]interface{}, len(filters))
	for i, f := range filters {
		index := f.Index
		if zeroBased {
			index--
		}
		list[i] = map[string]interface{}{"index": index, "name": f.Name}
	}
	return list
}

// connectionsValue converts circuit connections to their record
// representation, keyed by circuit terminal ("1" or "2"), or nil if the
// connections block is empty.
func connectionsValue(terminal string, c *fields.CircuitConnections) map[string]interface{} {
	if c.IsEmpty() {
		return nil
	}
	side := map[string]interface{}{}
	if len(c.Red) > 0 {
		side["red"] = peersValue(c.Red)
	}
	if len(c.Green) > 0 {
		side["green"] = peersValue(c.Green)
	}
	return map[string]interface{}{terminal: side}
}

func peersValue(peers []fields.ConnectionPeer) []interface{} {
	list := make([]interface{}, len(peers))
	for i, p := range peers {
		// circuit_id is always carried through to the record tree; the
		// link resolver (spec §4.G) conditionally drops it once entity
		// variants are known.
		list[i] = map[string]interface{}{
			RawEntityIDKey: p.RawEntityID,
			"circuit_id":   p.CircuitID,
		}
	}
	return list
}

// colorValue converts a color to its record representation.
func colorValue(c fields.Color) interface{} {
	return map[string]interface{}{"r": c.R, "g": c.G, "b": c.B, "a": c.A}
}
