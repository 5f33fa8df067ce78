package fields

import (
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
)

// Icon is one slot of a blueprint/planner's icon set.
type Icon struct {
	Index int
	Type  string
	Name  string
}

// ReadIcons reads the leading placeholder-name list for icons whose
// referenced prototype no longer exists, then the icon list proper,
// resolving each icon's signal against idx and falling back to the
// matching placeholder name when the signal id does not resolve (spec
// §4.C "Icons").
func ReadIcons(r *stream.Reader, idx *prototype.Index) ([]Icon, error) {
	placeholderCount, err := r.Count8()
	if err != nil {
		return nil, err
	}
	placeholders := make(map[int]string, placeholderCount)
	for i := 0; i < placeholderCount; i++ {
		slot, err := r.U8()
		if err != nil {
			return nil, err
		}
		name, err := r.String()
		if err != nil {
			return nil, err
		}
		placeholders[int(slot)] = name
	}

	iconCount, err := r.Count8()
	if err != nil {
		return nil, err
	}
	icons := make([]Icon, 0, iconCount)
	for i := 0; i < iconCount; i++ {
		slot, err := r.U8()
		if err != nil {
			return nil, err
		}
		sig, err := ReadSignal(r, idx)
		if err != nil {
			if placeholder, ok := placeholders[int(slot)]; ok {
				icons = append(icons, Icon{Index: int(slot), Type: "item", Name: placeholder})
				continue
			}
			return nil, err
		}
		if sig == nil {
			continue
		}
		icons = append(icons, Icon{Index: int(slot), Type: sig.Type, Name: sig.Name})
	}
	return icons, nil
}
