package fields

import (
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
)

// Filter is one entry of a filter list: a slot index and the item name
// filtered into that slot.
type Filter struct {
	Index int
	Name  string
}

// ReadFilterList reads a count32 of {index u32, item id u16} pairs,
// suppressing entries whose item id is 0 (absent). Indices are returned
// exactly as stored on the wire, which is 1-based for blueprint-entity
// filters; deconstruction/upgrade-planner filters rebase to 0-based at the
// call site (spec §8 "a deliberate asymmetry").
func ReadFilterList(r *stream.Reader, idx *prototype.Index) ([]Filter, error) {
	n, err := r.Count32()
	if err != nil {
		return nil, err
	}
	filters := make([]Filter, 0, n)
	for i := 0; i < n; i++ {
		index, err := r.U32()
		if err != nil {
			return nil, err
		}
		itemID, err := r.U16()
		if err != nil {
			return nil, err
		}
		if itemID == 0 {
			continue
		}
		entry, ok := idx.Lookup(prototype.KindItem, uint32(itemID))
		if !ok {
			continue
		}
		filters = append(filters, Filter{Index: int(index), Name: entry.Name})
	}
	return filters, nil
}

// ItemStack is one item-name/count pair from an item map.
type ItemStack struct {
	Name  string
	Count int
}

// ReadItems reads a count32 of {item id u16, count u32} pairs and groups
// them by resolved item name, summing counts for the same name (spec §4.C
// "Filters / Items": "item map groups by item name with counts").
func ReadItems(r *stream.Reader, idx *prototype.Index) ([]ItemStack, error) {
	n, err := r.Count32()
	if err != nil {
		return nil, err
	}
	order := make([]string, 0, n)
	totals := make(map[string]int, n)
	for i := 0; i < n; i++ {
		itemID, err := r.U16()
		if err != nil {
			return nil, err
		}
		count, err := r.U32()
		if err != nil {
			return nil, err
		}
		if itemID == 0 {
			continue
		}
		entry, ok := idx.Lookup(prototype.KindItem, uint32(itemID))
		if !ok {
			continue
		}
		if _, seen := totals[entry.Name]; !seen {
			order = append(order, entry.Name)
		}
		totals[entry.Name] += int(count)
	}
	items := make([]ItemStack, len(order))
	for i, name := range order {
		items[i] = ItemStack{Name: name, Count: totals[name]}
	}
	return items, nil
}
