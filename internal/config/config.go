// Package config provides YAML-based configuration for the bpdecode tool
// family. An earlier XML-shaped config existed for this tree's original
// HTTP-service layout; since the core here ships a CLI, not a server,
// there is no Server/Storage/Security block to justify XML's nesting, so
// the config is flat YAML instead.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds CLI defaults for bpdecode and its sibling tools.
type Config struct {
	Decode DecodeConfig `yaml:"decode"`
	View   ViewConfig   `yaml:"view"`
	Stat   StatConfig   `yaml:"stat"`
}

// DecodeConfig controls cmd/bpdecode's default behavior.
type DecodeConfig struct {
	DefaultFilename string `yaml:"default_filename"`
	SkipBad         bool   `yaml:"skip_bad"`
	Verbose         bool   `yaml:"verbose"`
	DebugDumpDir    string `yaml:"debug_dump_dir"`
}

// ViewConfig controls cmd/bpview's HTTP server.
type ViewConfig struct {
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
}

// StatConfig controls cmd/bpstat's DuckDB analytics database.
type StatConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// DefaultConfig returns the built-in defaults, used whenever no config
// file is present.
func DefaultConfig() *Config {
	return &Config{
		Decode: DecodeConfig{
			DefaultFilename: "blueprint-storage.dat",
			SkipBad:         false,
			Verbose:         false,
			DebugDumpDir:    "./debug",
		},
		View: ViewConfig{
			BindAddress: "127.0.0.1",
			Port:        8090,
		},
		Stat: StatConfig{
			DatabasePath: "./bpstat.duckdb",
		},
	}
}

// Load reads a YAML config file at path. A missing file yields the
// in-memory defaults rather than an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}
