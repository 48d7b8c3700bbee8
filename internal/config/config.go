// Package config loads the wall's wiring and timing from config.yaml.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pins maps the thirteen panel lines to GPIO offsets on the chip.
type Pins struct {
	GCLK int `yaml:"gclk"`
	DCLK int `yaml:"dclk"`
	LE   int `yaml:"le"`
	A0   int `yaml:"a0"`
	A1   int `yaml:"a1"`
	A2   int `yaml:"a2"`
	A3   int `yaml:"a3"`
	DR1  int `yaml:"dr1"`
	DG1  int `yaml:"dg1"`
	DB1  int `yaml:"db1"`
	DR2  int `yaml:"dr2"`
	DG2  int `yaml:"dg2"`
	DB2  int `yaml:"db2"`
}

// Timing carries the pulse-width knobs. Defaults are conservative; verify
// tighter values against real hardware before shipping them.
type Timing struct {
	DCLKPulseNs  int `yaml:"dclk_pulse_ns"`
	GCLKPulseNs  int `yaml:"gclk_pulse_ns"`
	DeadtimeUs   int `yaml:"deadtime_us"`
	FramePauseMs int `yaml:"frame_pause_ms"`
}

type Config struct {
	Chip   string `yaml:"chip"` // e.g. gpiochip0
	Addr   string `yaml:"addr"` // HTTP listen address
	Pins   Pins   `yaml:"pins"`
	Timing Timing `yaml:"timing"`
}

// Load reads and parses a yaml config file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}

// Save writes the config back out, for seeding a new install.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Default matches the reference wiring of the wall controller.
func Default() *Config {
	return &Config{
		Chip: "gpiochip0",
		Addr: ":8080",
		Pins: Pins{
			GCLK: 4,
			DCLK: 5,
			LE:   18,
			A0:   19,
			A1:   21,
			A2:   22,
			A3:   23,
			DR1:  25,
			DG1:  26,
			DB1:  27,
			DR2:  32,
			DG2:  33,
			DB2:  13,
		},
		Timing: Timing{
			DCLKPulseNs:  1000,
			GCLKPulseNs:  0,
			DeadtimeUs:   1000,
			FramePauseMs: 10,
		},
	}
}
