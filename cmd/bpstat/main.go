// Command bpstat ingests one or more decoded blueprint libraries'
// flattened entity lists into a DuckDB table and runs canned analytical
// queries over the resulting collection. It is a sibling utility, not
// part of the core decoder.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/forgeware/bpdecode/internal/config"
	"github.com/forgeware/bpdecode/internal/library"
	"github.com/forgeware/bpdecode/internal/statdb"
	"github.com/forgeware/bpdecode/internal/stream"
)

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("bpstat", flag.ContinueOnError)
	configPath := fs.String("config", "bpdecode.yaml", "path to the YAML configuration file")
	skipBad := fs.Bool("s", false, "skip blueprints that fail to parse instead of aborting")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: bpstat [-config path] [-s] <library-file>...")
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpstat: loading config: %v\n", err)
		return 1
	}

	store, err := statdb.Open(cfg.Stat.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpstat: %v\n", err)
		return 1
	}
	defer store.Close()

	runID := uuid.NewString()

	for _, filename := range fs.Args() {
		if err := ingest(store, runID, filename, *skipBad); err != nil {
			fmt.Fprintf(os.Stderr, "bpstat: %s: %v\n", filename, err)
			return 1
		}
	}

	counts, err := store.EntityCountsByName(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpstat: %v\n", err)
		return 1
	}
	fmt.Printf("entity counts by name (run %s):\n", runID)
	for _, c := range counts {
		fmt.Printf("  %-30s %d\n", c.Name, c.Count)
	}

	oldest, newest, err := store.GenerationRange(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpstat: %v\n", err)
		return 1
	}
	fmt.Printf("generation range: %d .. %d\n", oldest, newest)

	freqs, err := store.MigrationFrequencies(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpstat: %v\n", err)
		return 1
	}
	if len(freqs) > 0 {
		fmt.Println("migration frequencies:")
		for _, f := range freqs {
			fmt.Printf("  %s / %s: %d\n", f.Mod, f.Migration, f.Count)
		}
	}

	return 0
}

func ingest(store *statdb.Store, runID, filename string, skipBad bool) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	result, err := library.Decode(stream.New(data), library.Options{SkipBad: skipBad, Filename: filename})
	if err != nil {
		return err
	}

	if err := store.IngestLibrary(runID, filename, int64(result.Generation), int64(result.Timestamp)); err != nil {
		return err
	}

	if mods, migrations := extractMigrations(result.Document); len(mods) > 0 {
		if err := store.IngestMigrations(runID, filename, mods, migrations); err != nil {
			return err
		}
	}

	rows := extractEntityRows(result.Document)
	return store.IngestEntities(runID, filename, rows)
}

func extractMigrations(doc map[string]interface{}) (mods, migrations []string) {
	list, _ := doc["migrations"].([]interface{})
	for _, m := range list {
		entry, ok := m.(map[string]interface{})
		if !ok {
			continue
		}
		mod, _ := entry["mod"].(string)
		migration, _ := entry["migration"].(string)
		mods = append(mods, mod)
		migrations = append(migrations, migration)
	}
	return mods, migrations
}

func extractEntityRows(doc map[string]interface{}) []statdb.EntityRow {
	var rows []statdb.EntityRow
	slots, _ := doc["blueprints"].([]interface{})
	for _, s := range slots {
		slot, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		slotIndex, _ := slot["index"].(int)
		bp, ok := slot["blueprint"].(map[string]interface{})
		if !ok {
			continue
		}
		entities, _ := bp["entities"].([]interface{})
		for _, e := range entities {
			ent, ok := e.(map[string]interface{})
			if !ok {
				continue
			}
			name, _ := ent["name"].(string)
			number, _ := ent["entity_number"].(int)
			pos, _ := ent["position"].(map[string]interface{})
			x, _ := pos["x"].(float64)
			y, _ := pos["y"].(float64)
			rows = append(rows, statdb.EntityRow{
				SlotIndex:    slotIndex,
				EntityNumber: number,
				Name:         name,
				X:            x,
				Y:            y,
			})
		}
	}
	return rows
}
