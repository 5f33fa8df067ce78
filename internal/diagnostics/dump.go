package diagnostics

import (
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Dump is the shape written by cmd/bpdecode's -d flag: a compact
// MessagePack snapshot of the prototype index and the skip report,
// alongside the primary JSON output, for diagnostic transfer.
type Dump struct {
	Filename        string      `msgpack:"filename"`
	PrototypeCount  int         `msgpack:"prototype_count"`
	Prototypes      interface{} `msgpack:"prototypes"`
	SkippedSlots    []SkippedSlot `msgpack:"skipped_slots"`
	ParseErrorCount int         `msgpack:"parse_error_count"`
}

// WriteFile encodes d as MessagePack and writes it to path.
func (d *Dump) WriteFile(path string) error {
	out, err := msgpack.Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}
