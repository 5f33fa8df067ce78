package objects

import (
	"github.com/forgeware/bpdecode/internal/fields"
	"github.com/forgeware/bpdecode/internal/prototype"
)

// ReadDeconstructionPlanner implements the deconstruction-planner body
// (spec §4.E): label, description, icons, entity filter mode/list,
// trees-and-rocks-only, tile filter mode/selection mode, and tile filter
// list. Filter indices are rebased to zero-based on output (spec §8
// "a deliberate asymmetry").
func ReadDeconstructionPlanner(ctx *Context) (map[string]interface{}, error) {
	r := ctx.R
	label, err := r.String()
	if err != nil {
		return nil, err
	}
	description, err := r.String()
	if err != nil {
		return nil, err
	}
	icons, err := fields.ReadIcons(r, ctx.Idx)
	if err != nil {
		return nil, err
	}

	entityFilterMode, err := r.U8()
	if err != nil {
		return nil, err
	}
	entityFilters, err := readNamedFilters(r, ctx.Idx, prototype.KindEntity)
	if err != nil {
		return nil, err
	}
	treesAndRocksOnly, err := r.Bool()
	if err != nil {
		return nil, err
	}
	tileFilterMode, err := r.U8()
	if err != nil {
		return nil, err
	}
	tileSelectionMode, err := r.U8()
	if err != nil {
		return nil, err
	}
	tileFilters, err := readNamedFilters(r, ctx.Idx, prototype.KindTile)
	if err != nil {
		return nil, err
	}

	rec := map[string]interface{}{}
	if label != "" {
		rec["label"] = label
	}
	if description != "" {
		rec["description"] = description
	}
	if v := iconsList(icons); v != nil {
		rec["icons"] = v
	}
	settings := map[string]interface{}{}
	if entityFilterMode == 1 {
		settings["entity_filter_mode"] = "blacklist"
	}
	if v := filtersList(entityFilters, true); v != nil {
		settings["entity_filters"] = v
	}
	if treesAndRocksOnly {
		settings["trees_and_rocks_only"] = true
	}
	if tileFilterMode == 1 {
		settings["tile_filter_mode"] = "blacklist"
	}
	tileSelectionModes := map[uint8]string{0: "normal", 1: "always", 2: "never"}
	if tileSelectionMode != 0 {
		settings["tile_selection_mode"] = tileSelectionModes[tileSelectionMode]
	}
	if v := filtersList(tileFilters, true); v != nil {
		settings["tile_filters"] = v
	}
	if len(settings) > 0 {
		rec["settings"] = settings
	}
	return rec, nil
}

func filtersList(filters []fields.Filter, zeroBased bool) []interface{} {
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
