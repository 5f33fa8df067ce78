package prototype

import (
	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/stream"
)

// Entry is one (class, name) pair registered under an ID within a kind.
type Entry struct {
	Class string
	Name  string
}

// Index maps (kind, numeric ID) -> Entry, per spec §3 "Prototype index".
// ID 0 within any kind means absent; every other ID within a kind is
// unique, even across prototype classes that share the same kind.
type Index struct {
	byKind map[Kind]map[uint32]Entry
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{byKind: make(map[Kind]map[uint32]Entry)}
}

// Add registers one ID within a kind. It fails if the ID is 0, or if the ID
// is already registered within that kind.
func (idx *Index) Add(offset int64, kind Kind, id uint32, class, name string) error {
	if id == 0 {
		return diagnostics.New(offset, "prototype id 0 is reserved for %q", class)
	}
	bucket, ok := idx.byKind[kind]
	if !ok {
		bucket = make(map[uint32]Entry)
		idx.byKind[kind] = bucket
	}
	if _, dup := bucket[id]; dup {
		return diagnostics.New(offset, "duplicate %s id %d (class %q)", kind, id, class)
	}
	bucket[id] = Entry{Class: class, Name: name}
	return nil
}

// Lookup returns the entry registered for (kind, id), or !ok if absent
// (including the reserved id 0).
func (idx *Index) Lookup(kind Kind, id uint32) (Entry, bool) {
	if id == 0 {
		return Entry{}, false
	}
	bucket, ok := idx.byKind[kind]
	if !ok {
		return Entry{}, false
	}
	e, ok := bucket[id]
	return e, ok
}

// Snapshot is one registered (kind, id) -> entry row, used to serialize
// the whole index for debug dumps and the bpview inspection endpoint.
type Snapshot struct {
	Kind  string `msgpack:"kind" json:"kind"`
	ID    uint32 `msgpack:"id" json:"id"`
	Class string `msgpack:"class" json:"class"`
	Name  string `msgpack:"name" json:"name"`
}

// All returns every registered entry across every kind, in no particular
// order.
func (idx *Index) All() []Snapshot {
	var out []Snapshot
	for kind, bucket := range idx.byKind {
		for id, e := range bucket {
			out = append(out, Snapshot{Kind: kind.String(), ID: id, Class: e.Class, Name: e.Name})
		}
	}
	return out
}

// Build reads a per-file prototype table: a 2-byte count of prototype-class
// entries; for each, a class name string and an inner ID list. The "tile"
// class uses 1-byte counts and 1-byte IDs; every other class uses a single
// literal 0x00 byte followed by a 2-byte count and 2-byte IDs. An
// implementer must replicate this asymmetry exactly (spec §4.B).
func Build(r *stream.Reader) (*Index, error) {
	idx := NewIndex()

	classCount, err := r.Count16()
	if err != nil {
		return nil, err
	}

	for i := 0; i < classCount; i++ {
		classOffset := r.Tell()
		class, err := r.String()
		if err != nil {
			return nil, err
		}
		kind, ok := ClassifyClass(class)
		if !ok {
			return nil, diagnostics.New(classOffset, "unknown prototype class %q", class)
		}

		if class == "tile" {
			if err := readEntries(r, idx, kind, class, r.Count8); err != nil {
				return nil, err
			}
			continue
		}

		if err := r.Expect(0x00); err != nil {
			return nil, err
		}
		if err := readEntries(r, idx, kind, class, r.Count16); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

// readEntries reads count (via countFn, which reads 1 or 2 bytes depending
// on class) entries of {id, name}, where id is the same width as count for
// tile (1 byte) and 2 bytes otherwise.
func readEntries(r *stream.Reader, idx *Index, kind Kind, class string, countFn func() (int, error)) error {
	n, err := countFn()
	if err != nil {
		return err
	}
	idWidthIsByte := class == "tile"
	for i := 0; i < n; i++ {
		entryOffset := r.Tell()
		var id uint32
		if idWidthIsByte {
			v, err := r.U8()
			if err != nil {
				return err
			}
			id = uint32(v)
		} else {
			v, err := r.U16()
			if err != nil {
				return err
			}
			id = uint32(v)
		}
		name, err := r.String()
		if err != nil {
			return err
		}
		if err := idx.Add(entryOffset, kind, id, class, name); err != nil {
			return err
		}
	}
	return nil
}
