// Command bpview decodes a single blueprint library file once and serves
// its export document over a handful of REST endpoints for ad-hoc
// inspection in a browser. It is a sibling utility, not part of the core
// decoder.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/forgeware/bpdecode/internal/config"
	"github.com/forgeware/bpdecode/internal/library"
	"github.com/forgeware/bpdecode/internal/stream"
	"github.com/forgeware/bpdecode/internal/viewer"
)

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("bpview", flag.ContinueOnError)
	configPath := fs.String("config", "bpdecode.yaml", "path to the YAML configuration file")
	skipBad := fs.Bool("s", false, "skip blueprints that fail to parse instead of aborting")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: bpview [-config path] [-s] <library-file>")
		return 2
	}
	filename := fs.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpview: loading config: %v\n", err)
		return 1
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpview: %v\n", err)
		return 1
	}

	result, err := library.Decode(stream.New(data), library.Options{SkipBad: *skipBad, Filename: filename})
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpview: decoding %q: %v\n", filename, err)
		return 1
	}

	h := viewer.NewHandler(filename, result.Document, result.Index, result.Skipped)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(viewer.RequestID)

	e.GET("/api/health", h.HandleHealth)
	e.GET("/api/slots", h.HandleListSlots)
	e.GET("/api/slots/:index", h.HandleGetSlot)
	e.GET("/api/prototypes", h.HandlePrototypeIndex)
	e.GET("/api/skipped", h.HandleSkipped)

	addr := fmt.Sprintf("%s:%d", cfg.View.BindAddress, cfg.View.Port)
	fmt.Printf("bpview: serving %q on http://%s\n", filename, addr)
	if result.Skipped != nil && result.Skipped.Count() > 0 {
		fmt.Printf("bpview: %d blueprint(s) were skipped during decoding\n", result.Skipped.Count())
	}

	e.Logger.Fatal(e.Start(addr))
	return 0
}
