package objects

import (
	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/fields"
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
)

// ReadUpgradePlanner implements the upgrade-planner body (spec §4.E):
// label, description, icons, a list of unresolved mapper replacements
// (each optionally carrying a direction override), and the {from, to}
// mapper pairs proper.
func ReadUpgradePlanner(ctx *Context) (map[string]interface{}, error) {
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

	unknownCount, err := r.Count32()
	if err != nil {
		return nil, err
	}
	unknown := make([]interface{}, 0, unknownCount)
	for i := 0; i < unknownCount; i++ {
		name, err := r.String()
		if err != nil {
			return nil, err
		}
		hasDirection, err := r.Bool()
		if err != nil {
			return nil, err
		}
		entry := map[string]interface{}{"name": name}
		if hasDirection {
			direction, err := r.U8()
			if err != nil {
				return nil, err
			}
			entry["direction"] = int(direction)
		}
		unknown = append(unknown, entry)
	}

	mapperCount, err := r.Count32()
	if err != nil {
		return nil, err
	}
	mappers := make([]interface{}, 0, mapperCount)
	for i := 0; i < mapperCount; i++ {
		from, err := readMapperEndpoint(r, ctx.Idx)
		if err != nil {
			return nil, err
		}
		to, err := readMapperEndpoint(r, ctx.Idx)
		if err != nil {
			return nil, err
		}
		mappers = append(mappers, map[string]interface{}{"index": i, "from": from, "to": to})
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
	if len(unknown) > 0 {
		settings["unknown"] = unknown
	}
	if len(mappers) > 0 {
		settings["mappers"] = mappers
	}
	if len(settings) > 0 {
		rec["settings"] = settings
	}
	return rec, nil
}

// readMapperEndpoint reads a mapper endpoint: a u8 discriminator (0=entity,
// 1=item) followed by a 16-bit prototype id resolved in the matching kind.
func readMapperEndpoint(r *stream.Reader, idx *prototype.Index) (interface{}, error) {
	discOffset := r.Tell()
	disc, err := r.U8()
	if err != nil {
		return nil, err
	}
	var kind prototype.Kind
	var typeName string
	switch disc {
	case 0:
		kind, typeName = prototype.KindEntity, "entity"
	case 1:
		kind, typeName = prototype.KindItem, "item"
	default:
		return nil, diagnostics.New(discOffset, "unrecognized upgrade mapper endpoint discriminator 0x%02X", disc)
	}

	idOffset := r.Tell()
	id, err := r.U16()
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, nil
	}
	entry, ok := idx.Lookup(kind, uint32(id))
	if !ok {
		return nil, diagnostics.New(idOffset, "unresolved upgrade mapper %s id %d", typeName, id)
	}
	return map[string]interface{}{"type": typeName, "name": entry.Name}, nil
}
