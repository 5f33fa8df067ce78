// Command bpdecode decodes a personal blueprint library file (or a
// textual export string) into a structured export document on stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"unicode"

	"github.com/forgeware/bpdecode/internal/config"
	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/exportstring"
	"github.com/forgeware/bpdecode/internal/library"
	"github.com/forgeware/bpdecode/internal/prototype"
	"github.com/forgeware/bpdecode/internal/stream"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("bpdecode", flag.ContinueOnError)
	skipBad := fs.Bool("s", false, "skip blueprints that fail to parse instead of aborting")
	fs.BoolVar(skipBad, "skip-bad", false, "skip blueprints that fail to parse instead of aborting")
	verbose := fs.Bool("v", false, "print a summary of what was decoded to stderr")
	debugDump := fs.Bool("d", false, "write a MessagePack debug dump alongside the JSON output")
	extended := fs.Bool("x", false, "include migrations and the prototype table in the output")
	configPath := fs.String("config", "bpdecode.yaml", "path to the YAML configuration file")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpdecode: loading config: %v\n", err)
		return 1
	}

	filename := cfg.Decode.DefaultFilename
	if fs.NArg() > 0 {
		filename = fs.Arg(0)
	}
	if !*skipBad {
		*skipBad = cfg.Decode.SkipBad
	}
	if !*verbose {
		*verbose = cfg.Decode.Verbose
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpdecode: %v\n", err)
		return 1
	}

	doc, skipped, idx, err := decodeInput(data, filename, *skipBad)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpdecode: %v\n", err)
		return 1
	}

	if !*extended {
		delete(doc, "migrations")
	} else if idx != nil {
		doc["prototypes"] = idx.All()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		fmt.Fprintf(os.Stderr, "bpdecode: encoding output: %v\n", err)
		return 1
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "bpdecode: decoded %q", filename)
		if skipped != nil && skipped.Count() > 0 {
			fmt.Fprintf(os.Stderr, ", skipped %d blueprint(s)", skipped.Count())
		}
		fmt.Fprintln(os.Stderr)
	}

	if *debugDump && idx != nil {
		dumpPath := filepath.Join(cfg.Decode.DebugDumpDir, filepath.Base(filename)+".dump.msgpack")
		if err := os.MkdirAll(cfg.Decode.DebugDumpDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "bpdecode: creating debug dump dir: %v\n", err)
			return 1
		}
		dump := &diagnostics.Dump{
			Filename:       filename,
			PrototypeCount: len(idx.All()),
			Prototypes:     idx.All(),
		}
		if skipped != nil {
			dump.SkippedSlots = skipped.Skipped
			dump.ParseErrorCount = skipped.Count()
		}
		if err := dump.WriteFile(dumpPath); err != nil {
			fmt.Fprintf(os.Stderr, "bpdecode: writing debug dump: %v\n", err)
			return 1
		}
	}

	if skipped != nil && skipped.Count() > 0 {
		return 2
	}
	return 0
}

// decodeInput dispatches between the binary library format and a textual
// export string, per spec's framing of the export string wrapper as a
// thin, separate concern from the core codec.
func decodeInput(data []byte, filename string, skipBad bool) (map[string]interface{}, *diagnostics.SkipReport, *prototype.Index, error) {
	if looksLikeExportString(data) {
		doc, err := exportstring.Decode(string(data))
		if err != nil {
			return nil, nil, nil, err
		}
		return doc, nil, nil, nil
	}

	r := stream.New(data)
	result, err := library.Decode(r, library.Options{SkipBad: skipBad, Filename: filepath.Base(filename)})
	if err != nil {
		return nil, nil, nil, err
	}
	return result.Document, result.Skipped, result.Index, nil
}

// looksLikeExportString applies the heuristic spec suggests: a textual
// export string starts with an ASCII version digit followed by base64,
// whereas the binary library format starts with a version's raw u16.
func looksLikeExportString(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	if !unicode.IsDigit(rune(data[0])) {
		return false
	}
	for _, b := range data[1:] {
		r := rune(b)
		if r == '\n' || r == '\r' {
			continue
		}
		if !unicode.IsDigit(r) && !unicode.IsLetter(r) && r != '+' && r != '/' && r != '=' {
			return false
		}
	}
	return true
}
