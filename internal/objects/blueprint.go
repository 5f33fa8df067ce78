package objects

import (
	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/entity"
	"github.com/forgeware/bpdecode/internal/fields"
	"github.com/forgeware/bpdecode/internal/linker"
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/version"
)

// ReadBlueprint implements the blueprint object body (spec §4.E
// "Blueprint"): label, the removed-mods sidecar dance, and the
// version-tagged content proper. Declared and parsed content sizes must
// match exactly.
func ReadBlueprint(ctx *Context) (map[string]interface{}, error) {
	r := ctx.R
	label, err := r.String()
	if err != nil {
		return nil, err
	}
	if err := r.Expect(0x00); err != nil {
		return nil, err
	}
	hasRemovedMods, err := r.Bool()
	if err != nil {
		return nil, err
	}
	contentSize, err := readVarSize(r)
	if err != nil {
		return nil, err
	}
	contentStart := r.Tell()

	idx := ctx.Idx
	pastContent := contentStart + int64(contentSize)

	if hasRemovedMods {
		if err := r.Seek(pastContent); err != nil {
			return nil, err
		}
		localIndexSize, err := readVarSize(r)
		if err != nil {
			return nil, err
		}
		localIndexStart := r.Tell()
		local, err := prototype.Build(r)
		if err != nil {
			return nil, err
		}
		idx = local
		localIndexEnd := localIndexStart + int64(localIndexSize)

		if err := r.Seek(contentStart); err != nil {
			return nil, err
		}
		rec, err := readBlueprintContent(ctx, idx, contentStart, contentSize)
		if err != nil {
			if !ctx.SkipBad {
				return nil, err
			}
			pe, ok := diagnostics.AsParseError(err)
			if !ok {
				return nil, err
			}
			if seekErr := r.Seek(localIndexEnd); seekErr != nil {
				return nil, seekErr
			}
			return nil, &diagnostics.RecoverableError{ParseError: pe}
		}
		if err := r.Seek(localIndexEnd); err != nil {
			return nil, err
		}
		rec["label"] = label
		return rec, nil
	}

	rec, err := readBlueprintContent(ctx, idx, contentStart, contentSize)
	if err != nil {
		if !ctx.SkipBad {
			return nil, err
		}
		pe, ok := diagnostics.AsParseError(err)
		if !ok {
			return nil, err
		}
		if seekErr := r.Seek(pastContent); seekErr != nil {
			return nil, seekErr
		}
		return nil, &diagnostics.RecoverableError{ParseError: pe}
	}
	rec["label"] = label
	return rec, nil
}

// readBlueprintContent reads the content shared by every blueprint body:
// version + zero byte + migrations + description + snap-to-grid +
// entities + schedules + tiles + icons (spec §4.E point 1). idx is either
// the blueprint's own local prototype index (removed-mods case) or the
// ambient global one.
func readBlueprintContent(ctx *Context, idx *prototype.Index, contentStart int64, contentSize int) (map[string]interface{}, error) {
	r := ctx.R
	v, err := version.Read(r)
	if err != nil {
		return nil, err
	}
	if err := r.Expect(0x00); err != nil {
		return nil, err
	}
	migrations, err := fields.ReadMigrations(r)
	if err != nil {
		return nil, err
	}
	description, err := r.String()
	if err != nil {
		return nil, err
	}

	pop := ctx.Ver.Push(v)
	defer pop()

	scoped := &Context{R: r, Idx: idx, Ver: ctx.Ver}
	snapToGrid, err := readSnapToGrid(scoped)
	if err != nil {
		return nil, err
	}

	entities, registry, err := readEntities(scoped)
	if err != nil {
		return nil, err
	}
	schedules, err := fields.ReadSchedules(r, idx, ctx.Ver)
	if err != nil {
		return nil, err
	}
	tiles, err := readTiles(scoped)
	if err != nil {
		return nil, err
	}
	icons, err := fields.ReadIcons(r, idx)
	if err != nil {
		return nil, err
	}

	parsedSize := r.Tell() - contentStart
	if parsedSize != int64(contentSize) {
		return nil, diagnostics.New(r.Tell(), "blueprint content size mismatch: declared %d, parsed %d", contentSize, parsedSize)
	}

	rec := map[string]interface{}{"version": v.String()}
	if len(migrations) > 0 {
		list := make([]interface{}, len(migrations))
		for i, m := range migrations {
			list[i] = map[string]interface{}{"mod": m.ModName, "migration": m.MigrationName}
		}
		rec["migrations"] = list
	}
	if description != "" {
		rec["description"] = description
	}
	if snapToGrid != nil {
		rec["snap_to_grid"] = snapToGrid
	}
	if len(entities) > 0 {
		rec["entities"] = entities
	}
	if len(schedules) > 0 {
		rec["schedules"] = schedules
	}
	if len(tiles) > 0 {
		rec["tiles"] = tiles
	}
	if icons := iconsList(icons); icons != nil {
		rec["icons"] = icons
	}

	if err := registry.Resolve(r.Tell(), rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func iconsList(icons []fields.Icon) []interface{} {
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

// readEntities reads the blueprint's entity list, assigning each entity
// its stable 1-based entity_number and registering its raw wire id in a
// fresh link registry (spec §4.G).
func readEntities(ctx *Context) ([]interface{}, *linker.Registry, error) {
	r := ctx.R
	n, err := r.Count32()
	if err != nil {
		return nil, nil, err
	}
	entities := make([]interface{}, 0, n)
	registry := linker.NewRegistry(n)
	entCtx := &entity.Context{R: r, Idx: ctx.Idx, Ver: ctx.Ver}
	var prevPos entity.Position
	for i := 0; i < n; i++ {
		rec, class, pos, err := entity.ReadEntity(entCtx, prevPos)
		if err != nil {
			return nil, nil, err
		}
		prevPos = pos
		rawID, _ := rec[entity.RawEntityIDKey].(uint32)
		delete(rec, entity.RawEntityIDKey)
		number := i + 1
		rec["entity_number"] = number
		registry.Register(rawID, number, class)
		entities = append(entities, rec)
	}
	return entities, registry, nil
}
