// Package config loads the match and runner settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/knights-vs-monsters/internal/sim"
)

// Defaults used when a field is absent from the file.
const (
	DefaultWidth          = 20
	DefaultHeight         = 15
	DefaultAutoTickMillis = 200
	DefaultTurnLimit      = 500
	DefaultRuns           = 10
	DefaultSeedStep       = 1
)

// Config holds every tunable of a match plus the batch runner settings.
type Config struct {
	Width          int   `yaml:"width"`
	Height         int   `yaml:"height"`
	Seed           int64 `yaml:"seed"`
	FighterDensity int   `yaml:"fighter_density"`

	// AutoTickMillis is the delay between turns when the window front-end
	// plays on its own.
	AutoTickMillis int `yaml:"auto_tick_ms"`
	// TurnLimit stops a headless run that has not finished.
	TurnLimit int `yaml:"turn_limit"`
	// Runs and SeedStep drive the headless batch: run i uses Seed + i*SeedStep.
	Runs     int   `yaml:"runs"`
	SeedStep int64 `yaml:"seed_step"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		FighterDensity: sim.DefaultFighterDensity,
		AutoTickMillis: DefaultAutoTickMillis,
		TurnLimit:      DefaultTurnLimit,
		Runs:           DefaultRuns,
		SeedStep:       DefaultSeedStep,
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings no match can be built from.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid %dx%d: %w", c.Width, c.Height, sim.ErrInvalidDimensions))
	}
	if c.FighterDensity <= 0 {
		errs = append(errs, fmt.Errorf("fighter_density must be positive, got %d", c.FighterDensity))
	}
	if c.AutoTickMillis <= 0 {
		errs = append(errs, fmt.Errorf("auto_tick_ms must be positive, got %d", c.AutoTickMillis))
	}
	if c.TurnLimit <= 0 {
		errs = append(errs, fmt.Errorf("turn_limit must be positive, got %d", c.TurnLimit))
	}
	if c.Runs <= 0 {
		errs = append(errs, fmt.Errorf("runs must be positive, got %d", c.Runs))
	}
	return errors.Join(errs...)
}

// ToMatchConfig converts the settings for sim.NewMatch.
func (c Config) ToMatchConfig() sim.Config {
	return sim.Config{
		Width:          c.Width,
		Height:         c.Height,
		Seed:           c.Seed,
		FighterDensity: c.FighterDensity,
	}
}

// RunSeed returns the seed of batch run i.
func (c Config) RunSeed(i int) int64 {
	return c.Seed + int64(i)*c.SeedStep
}
