// Package config holds interpreter defaults and the funbf.yaml
// configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level funbf.yaml configuration. Flag values
// override anything loaded from the file.
type Config struct {
	// Tape is the tape size in cells. Fixed at machine construction,
	// never resized. Defaults to DefaultTapeSize.
	Tape int `yaml:"tape,omitempty"`

	// Mode selects the execution engine: "compiled" runs the bytecode
	// program, "direct" reinterprets raw tokens. Defaults to "compiled".
	Mode string `yaml:"mode,omitempty"`

	// Probe selects instrumentation: "off", "counts" (instruction
	// counters) or "timing" (per-instruction wall times). Defaults to
	// "off".
	Probe string `yaml:"probe,omitempty"`

	// ProfileDB is an optional sqlite file the probe report is saved to.
	// Empty means the report is only printed.
	ProfileDB string `yaml:"profileDB,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tape:  DefaultTapeSize,
		Mode:  ModeCompiled,
		Probe: ProbeOff,
	}
}

// Load reads and validates a yaml configuration file. Fields absent from
// the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values without touching the filesystem.
func (c *Config) Validate() error {
	if c.Tape <= 0 {
		return fmt.Errorf("tape size must be positive, got %d", c.Tape)
	}
	switch c.Mode {
	case ModeCompiled, ModeDirect:
	default:
		return fmt.Errorf("unknown mode %q (want %q or %q)", c.Mode, ModeCompiled, ModeDirect)
	}
	switch c.Probe {
	case ProbeOff, ProbeCounts, ProbeTiming:
	default:
		return fmt.Errorf("unknown probe %q (want %q, %q or %q)", c.Probe, ProbeOff, ProbeCounts, ProbeTiming)
	}
	return nil
}
