package main

import (
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"github.com/cccsat/cccsat/solver"
)

// BombsConfig describes how bombs are dropped when the bombs strategy is chosen.
type BombsConfig struct {
	MinStep int    `yaml:"min_step"`
	Spread  int    `yaml:"spread"`
	Seed    uint64 `yaml:"seed"`
}

// Config holds every option of a run.
// It can be read from a YAML file; flags given on the command line take precedence.
type Config struct {
	Strategy  string      `yaml:"strategy"`  // sweep or bombs
	Direction string      `yaml:"direction"` // ascending or descending
	From      *uint64     `yaml:"from"`
	Till      *uint64     `yaml:"till"` // Exclusive bound, unbounded if nil
	Bombs     BombsConfig `yaml:"bombs"`
	Progress  bool        `yaml:"progress"`
	Verify    bool        `yaml:"verify"`
	Count     bool        `yaml:"count"` // Counts the models rather than looking for one
	Format    string      `yaml:"format"` // dimacs or yaml
}

func defaultConfig() Config {
	return Config{
		Strategy:  "sweep",
		Direction: solver.Ascending.String(),
		Bombs: BombsConfig{
			MinStep: solver.DefaultBombConfig.MinStep,
			Spread:  solver.DefaultBombConfig.Spread,
			Seed:    solver.DefaultBombConfig.Seed,
		},
		Format: "dimacs",
	}
}

// loadConfig reads the YAML file at path into cfg.
// Fields missing from the file keep their value.
func loadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "could not read config %q", path)
	}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return errors.Wrapf(err, "could not parse config %q", path)
	}
	return nil
}

// parseCounter reads a counter value, either in decimal or with a 0x, 0o or 0b prefix.
func parseCounter(s string) (uint64, error) {
	c, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, errors.Errorf("invalid counter %q: must be an integer in [0, 2^64)", s)
	}
	return c, nil
}

func (cfg *Config) direction() solver.Direction {
	if cfg.Direction == solver.Descending.String() {
		return solver.Descending
	}
	return solver.Ascending
}

func (cfg *Config) validate() error {
	switch cfg.Strategy {
	case "sweep", "bombs":
	default:
		return errors.Errorf("invalid strategy %q: expected sweep or bombs", cfg.Strategy)
	}
	if cfg.Direction != solver.Ascending.String() && cfg.Direction != solver.Descending.String() {
		return errors.Errorf("invalid direction %q: expected ascending or descending", cfg.Direction)
	}
	switch cfg.Format {
	case "dimacs", "yaml":
	default:
		return errors.Errorf("invalid format %q: expected dimacs or yaml", cfg.Format)
	}
	if cfg.Strategy == "bombs" && (cfg.From != nil || cfg.Till != nil || cfg.direction() != solver.Ascending) {
		return errors.New("bombs sweep their own ranges upwards: from, till and direction cannot be set")
	}
	if cfg.Count && (cfg.Strategy == "bombs" || cfg.Verify) {
		return errors.New("models can only be counted by a sweep, without verification")
	}
	return nil
}

// options returns the solver options described by cfg.
func (cfg *Config) options() []solver.Option {
	opts := []solver.Option{solver.WithDirection(cfg.direction())}
	if cfg.From != nil {
		opts = append(opts, solver.WithFrom(*cfg.From))
	}
	if cfg.Till != nil {
		opts = append(opts, solver.WithTill(*cfg.Till))
	}
	return opts
}

func (cfg *Config) bombConfig() solver.BombConfig {
	return solver.BombConfig{
		MinStep: cfg.Bombs.MinStep,
		Spread:  cfg.Bombs.Spread,
		Seed:    cfg.Bombs.Seed,
	}
}
