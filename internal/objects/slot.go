// Package objects implements the library-slot object decoders (spec
// §4.E): blueprints, blueprint-books (which recurse back into this
// package's own slot dispatch), deconstruction planners, and upgrade
// planners.
package objects

import (
	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
	"github.com/forgeware/bpdecode/internal/version"
)

// Context bundles what every object decoder in this package needs: the
// stream, the prototype index in scope, and the version context.
type Context struct {
	R       *stream.Reader
	Idx     *prototype.Index
	Ver     *version.Context
	SkipBad bool
}

// slotKindClass is the expected item prototype class for each kind_tag
// (spec §6 "Slot": "u16 item_id // must classify to the same kind as
// kind_tag").
var slotKindClass = map[uint8]string{
	0: "blueprint",
	1: "blueprint-book",
	2: "deconstruction-item",
	3: "upgrade-item",
}

// ReadSlot reads one library-slot body: the used flag and, when used, the
// kind tag, generation counter, backing item id, and the object body
// itself, dispatched by kind (spec §6 "Slot").
func ReadSlot(ctx *Context) (map[string]interface{}, error) {
	used, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}
	if !used {
		return nil, nil
	}

	kindOffset := ctx.R.Tell()
	kindTag, err := ctx.R.U8()
	if err != nil {
		return nil, err
	}
	expectedClass, ok := slotKindClass[kindTag]
	if !ok {
		return nil, diagnostics.New(kindOffset, "unrecognized slot kind tag 0x%02X", kindTag)
	}

	generation, err := ctx.R.U32()
	if err != nil {
		return nil, err
	}
	itemOffset := ctx.R.Tell()
	itemID, err := ctx.R.U16()
	if err != nil {
		return nil, err
	}
	entry, ok := ctx.Idx.Lookup(prototype.KindItem, uint32(itemID))
	if !ok || entry.Class != expectedClass {
		return nil, diagnostics.New(itemOffset, "slot item id %d does not classify as %q", itemID, expectedClass)
	}

	var body map[string]interface{}
	var bodyKey string
	switch kindTag {
	case 0:
		body, err = ReadBlueprint(ctx)
		bodyKey = "blueprint"
	case 1:
		body, err = ReadBlueprintBook(ctx)
		bodyKey = "blueprint_book"
	case 2:
		body, err = ReadDeconstructionPlanner(ctx)
		bodyKey = "deconstruction_planner"
	case 3:
		body, err = ReadUpgradePlanner(ctx)
		bodyKey = "upgrade_planner"
	}
	if err != nil {
		return nil, err
	}

	if body == nil {
		body = map[string]interface{}{}
	}
	body["item"] = entry.Name
	return map[string]interface{}{
		"generation": generation,
		bodyKey:      body,
	}, nil
}
