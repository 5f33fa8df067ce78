// Package linker implements the post-parse link-resolution pass (spec
// §4.G): entities reference each other by a raw, on-wire 32-bit id that is
// only known to be valid once every entity in the blueprint has been read.
// Resolve walks the already-built record tree once and rewrites every raw
// reference into the entity's stable, 1-based entity_number.
package linker

import "github.com/forgeware/bpdecode/internal/diagnostics"

// combinatorClasses is the set of prototype classes whose circuit
// connections keep circuit_id even when it is 1 (spec §4.G).
var combinatorClasses = map[string]bool{
	"arithmetic-combinator": true,
	"decider-combinator":    true,
}

// Registry accumulates raw-entity-id -> entity_number and entity_number ->
// prototype class as a blueprint's entities are parsed, then resolves every
// reference recorded in the blueprint's record tree.
type Registry struct {
	numberByRawID map[uint32]int
	classByNumber map[int]string
}

// NewRegistry returns an empty registry sized for n entities.
func NewRegistry(n int) *Registry {
	return &Registry{
		numberByRawID: make(map[uint32]int, n),
		classByNumber: make(map[int]string, n),
	}
}

// Register records that rawID names the entity assigned entityNumber,
// whose prototype class is class.
func (g *Registry) Register(rawID uint32, entityNumber int, class string) {
	g.numberByRawID[rawID] = entityNumber
	g.classByNumber[entityNumber] = class
}

func (g *Registry) resolve(rawID uint32) (int, bool) {
	n, ok := g.numberByRawID[rawID]
	return n, ok
}

// Resolve walks node (and everything reachable from it through
// map[string]interface{} and []interface{} values) and rewrites every raw
// reference in place: dictionary nodes carrying an "entity_id" key have
// that value replaced by the referenced entity's entity_number (dropping
// circuit_id when it is 1 and the peer is not a combinator); "neighbours"
// and "locomotives" lists and "belt_link" scalars are rewritten
// element-wise. An unresolved raw id is a parse error.
func (g *Registry) Resolve(offset int64, node interface{}) error {
	switch v := node.(type) {
	case map[string]interface{}:
		return g.resolveDict(offset, v)
	case []interface{}:
		for _, item := range v {
			if err := g.Resolve(offset, item); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Registry) resolveDict(offset int64, dict map[string]interface{}) error {
	if raw, ok := dict["entity_id"]; ok {
		rawID, ok := raw.(uint32)
		if !ok {
			return diagnostics.New(offset, "entity_id reference has unexpected type %T", raw)
		}
		number, ok := g.resolve(rawID)
		if !ok {
			return diagnostics.New(offset, "unresolved entity reference %d", rawID)
		}
		dict["entity_id"] = number

		if circuitID, ok := dict["circuit_id"].(uint8); ok {
			if circuitID == 1 && !combinatorClasses[g.classByNumber[number]] {
				delete(dict, "circuit_id")
			} else {
				dict["circuit_id"] = int(circuitID)
			}
		}
	}

	if raw, ok := dict["belt_link"]; ok {
		if rawID, ok := raw.(uint32); ok {
			number, ok := g.resolve(rawID)
			if !ok {
				return diagnostics.New(offset, "unresolved belt_link reference %d", rawID)
			}
			dict["belt_link"] = number
		}
	}

	for _, key := range []string{"neighbours", "locomotives"} {
		list, ok := dict[key].([]interface{})
		if !ok {
			continue
		}
		for i, item := range list {
			rawID, ok := item.(uint32)
			if !ok {
				continue
			}
			number, ok := g.resolve(rawID)
			if !ok {
				return diagnostics.New(offset, "unresolved %s reference %d", key, rawID)
			}
			list[i] = number
		}
	}

	for k, value := range dict {
		switch k {
		case "entity_id", "belt_link", "neighbours", "locomotives":
			continue
		}
		if err := g.Resolve(offset, value); err != nil {
			return err
		}
	}
	return nil
}
