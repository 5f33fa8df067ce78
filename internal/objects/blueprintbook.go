package objects

import (
	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/fields"
)

// ReadBlueprintBook implements the blueprint-book object body (spec §4.E
// "Blueprint-book"): label, description, icons, its own slot list, active
// index, and a trailing zero byte. Recursion into ReadSlot is the shared
// dispatch every nested object goes through.
func ReadBlueprintBook(ctx *Context) (map[string]interface{}, error) {
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

	n, err := r.Count32()
	if err != nil {
		return nil, err
	}
	slots := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		slot, slotErr := ReadSlot(ctx)
		if slotErr != nil {
			if _, ok := diagnostics.AsRecoverable(slotErr); !ok || !ctx.SkipBad {
				return nil, slotErr
			}
			continue
		}
		if slot == nil {
			continue
		}
		slot["index"] = i
		slots = append(slots, slot)
	}

	activeIndex, err := r.U8()
	if err != nil {
		return nil, err
	}
	if err := r.Expect(0x00); err != nil {
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
	rec["blueprints"] = slots
	rec["active_index"] = int(activeIndex)
	return rec, nil
}
