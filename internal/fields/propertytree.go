package fields

import (
	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/stream"
)

// PropertyTreeType is the tag of the property tree sum type (spec §3).
type PropertyTreeType int

const (
	PTNone PropertyTreeType = iota
	PTBool
	PTNumber
	PTString
	PTList
	PTDictionary
)

// PropertyTree is a self-describing sum-typed value tree used for free-form
// entity tags. Only the field matching Type is meaningful.
type PropertyTree struct {
	Type   PropertyTreeType
	Bool   bool
	Number float64
	Str    string
	List   []*PropertyTree
	Dict   map[string]*PropertyTree
}

// ReadPropertyTree reads one property tree node: a u8 type tag, an ignored
// "any_type" boolean flag, then the payload for that type.
func ReadPropertyTree(r *stream.Reader) (*PropertyTree, error) {
	typeOffset := r.Tell()
	typeByte, err := r.U8()
	if err != nil {
		return nil, err
	}
	if _, err := r.Bool(); err != nil { // any_type flag, read and discarded
		return nil, err
	}

	switch typeByte {
	case 0:
		return &PropertyTree{Type: PTNone}, nil
	case 1:
		v, err := r.Bool()
		if err != nil {
			return nil, err
		}
		return &PropertyTree{Type: PTBool, Bool: v}, nil
	case 2:
		v, err := r.F64()
		if err != nil {
			return nil, err
		}
		return &PropertyTree{Type: PTNumber, Number: v}, nil
	case 3:
		s, err := readPropertyTreeString(r)
		if err != nil {
			return nil, err
		}
		return &PropertyTree{Type: PTString, Str: s}, nil
	case 4:
		list, err := readPropertyTreeEntries(r)
		if err != nil {
			return nil, err
		}
		values := make([]*PropertyTree, len(list))
		for i, e := range list {
			values[i] = e.value
		}
		return &PropertyTree{Type: PTList, List: values}, nil
	case 5:
		entries, err := readPropertyTreeEntries(r)
		if err != nil {
			return nil, err
		}
		dict := make(map[string]*PropertyTree, len(entries))
		for _, e := range entries {
			dict[e.key] = e.value
		}
		return &PropertyTree{Type: PTDictionary, Dict: dict}, nil
	default:
		return nil, diagnostics.New(typeOffset, "unrecognized property tree type 0x%02X", typeByte)
	}
}

// readPropertyTreeString reads a property-tree-flavored string: a leading
// boolean "is_empty" flag, and only a length-prefixed body when not empty.
func readPropertyTreeString(r *stream.Reader) (string, error) {
	empty, err := r.Bool()
	if err != nil {
		return "", err
	}
	if empty {
		return "", nil
	}
	return r.String()
}

type propertyTreeEntry struct {
	key   string
	value *PropertyTree
}

// readPropertyTreeEntries reads the shared list/dictionary wire shape: a
// count32 of {key string, value PropertyTree} pairs. List nodes carry the
// same key field as dictionary nodes but discard it on output.
func readPropertyTreeEntries(r *stream.Reader) ([]propertyTreeEntry, error) {
	n, err := r.Count32()
	if err != nil {
		return nil, err
	}
	entries := make([]propertyTreeEntry, 0, n)
	for i := 0; i < n; i++ {
		key, err := r.String()
		if err != nil {
			return nil, err
		}
		value, err := ReadPropertyTree(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, propertyTreeEntry{key: key, value: value})
	}
	return entries, nil
}
