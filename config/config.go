// Package config loads the YAML run configuration the cmd package's flags
// fall back to when a config file is given instead of (or alongside)
// explicit CLI flags.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Ladder describes the initial β-ladder and tempering knobs a run starts
// from, before any adaptation.
type Ladder struct {
	Betas     []float64 `yaml:"betas"`
	SwapEvery int       `yaml:"swap_every"`
	NTune     int       `yaml:"n_tune"`
	NSample   int       `yaml:"n_sample"`
}

// Run is the top-level configuration document: driver options plus,
// optionally, a tempering ladder.
type Run struct {
	Seed           int64  `yaml:"seed"`
	DiscardInitial int    `yaml:"discard_initial"`
	Thinning       int    `yaml:"thinning"`
	ChainType      string `yaml:"chain_type"`
	Progress       bool   `yaml:"progress"`

	NChains int    `yaml:"n_chains"`
	Driver  string `yaml:"driver"` // "serial", "threaded", "distributed"

	Ladder *Ladder `yaml:"ladder,omitempty"`
}

// Load reads and parses a YAML config file at path.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %q", path)
	}

	var r Run
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %q", path)
	}

	if r.Thinning == 0 {
		r.Thinning = 1
	}
	if r.ChainType == "" {
		r.ChainType = "default"
	}
	if r.Driver == "" {
		r.Driver = "serial"
	}

	return &r, nil
}
