// Package config loads the handscan tool configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete handscan configuration.
type Config struct {
	Scan    ScanSettings    `hcl:"scan,block"`
	Watches []WatchConfig   `hcl:"watch,block"`
	Export  *ExportSettings `hcl:"export,block"`
}

// ScanSettings contains tool-level configuration.
type ScanSettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
	Database string `hcl:"database,optional"`
}

// WatchConfig defines one directory of hand-history files to watch.
type WatchConfig struct {
	Name       string `hcl:"name,label"`
	Room       string `hcl:"room"`
	Path       string `hcl:"path"`
	Glob       string `hcl:"glob,optional"`
	DebounceMS int    `hcl:"debounce_ms,optional"`
}

// ExportSettings configures PHH export output.
type ExportSettings struct {
	Directory string `hcl:"directory,optional"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Scan: ScanSettings{
			LogLevel: "info",
			Database: "hands.db",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults rather than an error, so the tool runs unconfigured.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Scan.LogLevel == "" {
		config.Scan.LogLevel = "info"
	}
	if config.Scan.Database == "" {
		config.Scan.Database = "hands.db"
	}

	for i := range config.Watches {
		if config.Watches[i].Glob == "" {
			config.Watches[i].Glob = "*.txt"
		}
		if config.Watches[i].DebounceMS == 0 {
			config.Watches[i].DebounceMS = 500
		}
	}

	if config.Export != nil && config.Export.Directory == "" {
		config.Export.Directory = "phh"
	}

	return &config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validRooms := map[string]bool{
		"fulltilt": true,
	}

	seen := map[string]bool{}
	for _, w := range c.Watches {
		if seen[w.Name] {
			return fmt.Errorf("watch %s: duplicate name", w.Name)
		}
		seen[w.Name] = true
		if !validRooms[w.Room] {
			return fmt.Errorf("watch %s: unknown room %s", w.Name, w.Room)
		}
		if w.Path == "" {
			return fmt.Errorf("watch %s: path must be set", w.Name)
		}
		if w.DebounceMS < 0 {
			return fmt.Errorf("watch %s: debounce must not be negative", w.Name)
		}
	}
	return nil
}

// WatchByName returns a watch configuration by name.
func (c *Config) WatchByName(name string) *WatchConfig {
	for i := range c.Watches {
		if c.Watches[i].Name == name {
			return &c.Watches[i]
		}
	}
	return nil
}
