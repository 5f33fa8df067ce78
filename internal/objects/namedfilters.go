package objects

import (
	"github.com/forgeware/bpdecode/internal/fields"
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
)

// readNamedFilters reads a planner-style filter list: a leading placeholder
// table for filters whose referenced prototype no longer exists (the same
// shape fields.ReadIcons uses), then the filter list proper, keyed against
// kind (entity or tile) rather than item.
func readNamedFilters(r *stream.Reader, idx *prototype.Index, kind prototype.Kind) ([]fields.Filter, error) {
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

	n, err := r.Count32()
	if err != nil {
		return nil, err
	}
	filters := make([]fields.Filter, 0, n)
	for i := 0; i < n; i++ {
		index, err := r.U32()
		if err != nil {
			return nil, err
		}
		id, err := r.U16()
		if err != nil {
			return nil, err
		}
		if id == 0 {
			continue
		}
		entry, ok := idx.Lookup(kind, uint32(id))
		name := entry.Name
		if !ok {
			if ph, ok2 := placeholders[int(index)]; ok2 {
				name = ph
			} else {
				continue
			}
		}
		filters = append(filters, fields.Filter{Index: int(index), Name: name})
	}
	return filters, nil
}
