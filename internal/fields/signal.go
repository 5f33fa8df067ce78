// Package fields implements the shared, reusable field readers that every
// entity variant decoder composes: signals, conditions, the property tree,
// icons, filters, items, colors, and circuit connections (spec §4.C).
package fields

import (
	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
)

// Signal is {type, name}; a nil *Signal represents "absent" (id 0).
type Signal struct {
	Type string
	Name string
}

var signalKindByte = map[uint8]struct {
	typeName string
	kind     prototype.Kind
}{
	0: {"item", prototype.KindItem},
	1: {"fluid", prototype.KindFluid},
	2: {"virtual", prototype.KindVirtualSignal},
}

// ReadSignal reads a u8 signal kind (0=item, 1=fluid, 2=virtual) followed by
// a 16-bit ID, even for the tile kind's otherwise 1-byte ID width; ID 0
// means absent and yields (nil, nil).
func ReadSignal(r *stream.Reader, idx *prototype.Index) (*Signal, error) {
	kindOffset := r.Tell()
	kindByte, err := r.U8()
	if err != nil {
		return nil, err
	}
	meta, ok := signalKindByte[kindByte]
	if !ok {
		return nil, diagnostics.New(kindOffset, "unrecognized signal kind 0x%02X", kindByte)
	}

	id, err := r.U16()
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, nil
	}

	entry, ok := idx.Lookup(meta.kind, uint32(id))
	if !ok {
		return nil, diagnostics.New(kindOffset, "unresolved %s signal id %d", meta.typeName, id)
	}
	return &Signal{Type: meta.typeName, Name: entry.Name}, nil
}
