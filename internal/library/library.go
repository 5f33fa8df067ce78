// Package library implements the top-level library decoder (spec §4.F):
// version, migrations, the global prototype index, and the slot list,
// presented on output as a synthetic blueprint-book.
package library

import (
	"fmt"

	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/fields"
	"github.com/forgeware/bpdecode/internal/objects"
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
	"github.com/forgeware/bpdecode/internal/version"
)

// Options controls skip-bad recovery and the filename surfaced in the
// synthetic blueprint-book's description.
type Options struct {
	SkipBad  bool
	Filename string
}

// Result is the decoded library, already shaped as a synthetic
// blueprint-book (spec §4.F "On output the library is presented as a
// synthetic blueprint-book").
type Result struct {
	Document   map[string]interface{}
	Skipped    *diagnostics.SkipReport
	Index      *prototype.Index
	Generation uint32
	Timestamp  uint32
}

// Decode reads one full library file from r.
func Decode(r *stream.Reader, opts Options) (*Result, error) {
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
	idx, err := prototype.Build(r)
	if err != nil {
		return nil, err
	}
	if _, err := r.U8(); err != nil { // library state, ignored (spec §4.F)
		return nil, err
	}
	if err := r.Expect(0x00); err != nil {
		return nil, err
	}
	generation, err := r.U32()
	if err != nil {
		return nil, err
	}
	timestamp, err := r.U32()
	if err != nil {
		return nil, err
	}
	if err := r.Expect(0x01); err != nil {
		return nil, err
	}

	verctx := version.NewContext(v)
	ctx := &objects.Context{R: r, Idx: idx, Ver: verctx, SkipBad: opts.SkipBad}

	n, err := r.Count32()
	if err != nil {
		return nil, err
	}

	skipReport := &diagnostics.SkipReport{}
	slots := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		slot, slotErr := objects.ReadSlot(ctx)
		if slotErr != nil {
			re, ok := diagnostics.AsRecoverable(slotErr)
			if !ok || !opts.SkipBad {
				return nil, slotErr
			}
			skipReport.Add(i, re.ParseError)
			continue
		}
		if slot == nil {
			continue
		}
		slot["index"] = i
		slots = append(slots, slot)
	}

	doc := map[string]interface{}{
		"blueprints":   slots,
		"active_index": 0,
		"description":  fmt.Sprintf("%s (generation %d, saved %d)", opts.Filename, generation, timestamp),
	}
	if len(migrations) > 0 {
		list := make([]interface{}, len(migrations))
		for i, m := range migrations {
			list[i] = map[string]interface{}{"mod": m.ModName, "migration": m.MigrationName}
		}
		doc["migrations"] = list
	}

	return &Result{Document: doc, Skipped: skipReport, Index: idx, Generation: generation, Timestamp: timestamp}, nil
}
