// Package config loads the explorer configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vinser/gridwalker/internal/search"
	"github.com/vinser/gridwalker/internal/world"
)

// Engine kinds
const (
	EngineInProcess = "inprocess"
	EngineExternal  = "external"
)

// Theme settings
const (
	ThemeAuto  = "auto"
	ThemeDay   = "day"
	ThemeNight = "night"
)

// Config is the explorer configuration.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Search    SearchConfig    `yaml:"search"`
	Engine    EngineConfig    `yaml:"engine"`
	Movement  MovementConfig  `yaml:"movement"`
	Animation AnimationConfig `yaml:"animation"`
	Theme     string          `yaml:"theme"` // auto, day or night
	Location  LocationConfig  `yaml:"location"`
}

// GridConfig sets the world size and layout generator.
type GridConfig struct {
	Cols      int    `yaml:"cols"`
	Rows      int    `yaml:"rows"`
	Generator string `yaml:"generator"` // blocks or maze
	Seed      int64  `yaml:"seed"`      // 0 picks a seed from the clock
}

// SearchConfig sets the default search behaviour.
type SearchConfig struct {
	Mode           string `yaml:"mode"`           // uniform or best-first
	Reconstruction string `yaml:"reconstruction"` // predecessor or cheapest-neighbor
	Trace          bool   `yaml:"trace"`          // animate the exploration
}

// EngineConfig selects where searches run.
type EngineConfig struct {
	Kind       string `yaml:"kind"`       // inprocess or external
	Executable string `yaml:"executable"` // path to the pathfind binary
	TimeoutMs  int    `yaml:"timeoutMs"`
}

type MovementConfig struct {
	CooldownMs int `yaml:"cooldownMs"`
}

type AnimationConfig struct {
	StepMs int `yaml:"stepMs"`
}

// LocationConfig is used to pick the day or night theme.
type LocationConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Timezone  string  `yaml:"timezone"`
}

// Defaults
const (
	DefaultCols       = 32 // 800px / 25px in the pygame window
	DefaultRows       = 24 // 600px / 25px
	DefaultCooldownMs = 200
	DefaultStepMs     = 40
	DefaultTimeoutMs  = 10000
	DefaultExecutable = "pathfind"
	MaxCols           = 200
	MaxRows           = 200
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, defaults and validates a YAML configuration file.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse is Load for in-memory YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Grid.Cols == 0 {
		cfg.Grid.Cols = DefaultCols
	}
	if cfg.Grid.Rows == 0 {
		cfg.Grid.Rows = DefaultRows
	}
	if cfg.Grid.Generator == "" {
		cfg.Grid.Generator = string(world.GenBlocks)
	}
	if cfg.Search.Mode == "" {
		cfg.Search.Mode = search.Uniform.String()
	}
	if cfg.Search.Reconstruction == "" {
		cfg.Search.Reconstruction = search.Predecessor.String()
	}
	if cfg.Engine.Kind == "" {
		cfg.Engine.Kind = EngineInProcess
	}
	if cfg.Engine.Executable == "" {
		cfg.Engine.Executable = DefaultExecutable
	}
	if cfg.Engine.TimeoutMs == 0 {
		cfg.Engine.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.Movement.CooldownMs == 0 {
		cfg.Movement.CooldownMs = DefaultCooldownMs
	}
	if cfg.Animation.StepMs == 0 {
		cfg.Animation.StepMs = DefaultStepMs
	}
	if cfg.Theme == "" {
		cfg.Theme = ThemeAuto
	}
}

func validate(cfg *Config) error {
	var errs []error
	if cfg.Grid.Cols < 1 || cfg.Grid.Cols > MaxCols {
		errs = append(errs, fmt.Errorf("grid.cols must be between 1 and %d, got %d", MaxCols, cfg.Grid.Cols))
	}
	if cfg.Grid.Rows < 1 || cfg.Grid.Rows > MaxRows {
		errs = append(errs, fmt.Errorf("grid.rows must be between 1 and %d, got %d", MaxRows, cfg.Grid.Rows))
	}
	if _, err := world.ParseGenerator(cfg.Grid.Generator); err != nil {
		errs = append(errs, fmt.Errorf("grid.generator: %w", err))
	}
	if _, err := search.ParseMode(cfg.Search.Mode); err != nil {
		errs = append(errs, fmt.Errorf("search.mode: %w", err))
	}
	if _, err := search.ParseReconstruction(cfg.Search.Reconstruction); err != nil {
		errs = append(errs, fmt.Errorf("search.reconstruction: %w", err))
	}
	switch cfg.Engine.Kind {
	case EngineInProcess, EngineExternal:
	default:
		errs = append(errs, fmt.Errorf("engine.kind must be %q or %q, got %q", EngineInProcess, EngineExternal, cfg.Engine.Kind))
	}
	if cfg.Engine.TimeoutMs < 0 {
		errs = append(errs, fmt.Errorf("engine.timeoutMs must be >= 0, got %d", cfg.Engine.TimeoutMs))
	}
	if cfg.Movement.CooldownMs < 0 {
		errs = append(errs, fmt.Errorf("movement.cooldownMs must be >= 0, got %d", cfg.Movement.CooldownMs))
	}
	if cfg.Animation.StepMs < 0 {
		errs = append(errs, fmt.Errorf("animation.stepMs must be >= 0, got %d", cfg.Animation.StepMs))
	}
	switch cfg.Theme {
	case ThemeAuto, ThemeDay, ThemeNight:
	default:
		errs = append(errs, fmt.Errorf("theme must be auto, day or night, got %q", cfg.Theme))
	}
	if cfg.Location.Latitude < -90 || cfg.Location.Latitude > 90 {
		errs = append(errs, fmt.Errorf("location.latitude out of range: %v", cfg.Location.Latitude))
	}
	if cfg.Location.Longitude < -180 || cfg.Location.Longitude > 180 {
		errs = append(errs, fmt.Errorf("location.longitude out of range: %v", cfg.Location.Longitude))
	}
	if cfg.Location.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Location.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("location.timezone: %w", err))
		}
	}
	return errors.Join(errs...)
}

// MoveCooldown is the minimum time between two player moves.
func (c *Config) MoveCooldown() time.Duration {
	return time.Duration(c.Movement.CooldownMs) * time.Millisecond
}

// StepInterval is the delay between two frames of the trace animation.
func (c *Config) StepInterval() time.Duration {
	return time.Duration(c.Animation.StepMs) * time.Millisecond
}

// EngineTimeout bounds one external engine run.
func (c *Config) EngineTimeout() time.Duration {
	return time.Duration(c.Engine.TimeoutMs) * time.Millisecond
}

// Mode returns the parsed search mode. The config is validated, so parse
// errors cannot happen.
func (c *Config) Mode() search.Mode {
	m, _ := search.ParseMode(c.Search.Mode)
	return m
}

func (c *Config) Reconstruction() search.Reconstruction {
	r, _ := search.ParseReconstruction(c.Search.Reconstruction)
	return r
}

func (c *Config) Generator() world.Generator {
	g, _ := world.ParseGenerator(c.Grid.Generator)
	return g
}
