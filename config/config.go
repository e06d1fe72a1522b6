// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
// The simulation reads it on every tick, so edits between ticks take effect immediately.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Token     TokenConfig     `yaml:"token"`
	Gravity   GravityConfig   `yaml:"gravity"`
	Friction  float64         `yaml:"friction"`  // Velocity damping per tick, in (0,1]
	Knockback float64         `yaml:"knockback"` // Speed of wall knockback
	Spawn     SpawnConfig     `yaml:"spawn"`
	Slingshot SlingshotConfig `yaml:"slingshot"`
	Wind      WindConfig      `yaml:"wind"`
	Combine   CombineConfig   `yaml:"combine"`
	Danger    DangerConfig    `yaml:"danger"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The playfield is the screen.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	TickRate         int     `yaml:"tick_rate"`         // Ticks per simulated second
	GridCellSize     float64 `yaml:"grid_cell_size"`    // Broad-phase cell size (0 = brute force)
	CollisionEpsilon float64 `yaml:"collision_epsilon"` // Pairs closer than this are ignored
}

// TokenConfig holds token size parameters.
type TokenConfig struct {
	BaseRadius           float64 `yaml:"base_radius"`
	SizeIncreasePerLevel float64 `yaml:"size_increase_per_level"`
	MinRadius            float64 `yaml:"min_radius"`
	MaxLevel             int     `yaml:"max_level"`
}

// GravityConfig holds gravity parameters.
type GravityConfig struct {
	Strength        float64       `yaml:"strength"`
	MassEffect      float64       `yaml:"mass_effect"`       // 0 = no mass dependence, 1 = full inverse-mass scaling
	Realistic       bool          `yaml:"realistic"`         // false = arcade (direct displacement)
	Immunity        time.Duration `yaml:"immunity"`          // Gravity suppression after wind contact
	ImmunityPerTier time.Duration `yaml:"immunity_per_tier"` // Extra suppression per tier
}

// SpawnConfig holds spawner parameters.
type SpawnConfig struct {
	Interval time.Duration `yaml:"interval"` // <= 0 disables spawning
	JitterY  float64       `yaml:"jitter_y"` // Random extra height above the top edge
}

// SlingshotConfig holds slingshot gesture parameters.
type SlingshotConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Reverse      bool          `yaml:"reverse"`  // Pull vector points toward the pointer
	MaxPull      float64       `yaml:"max_pull"` // Maximum pull distance
	Power        float64       `yaml:"power"`    // Launch velocity per unit of pull
	WindImmunity time.Duration `yaml:"wind_immunity"`
}

// WindConfig holds wind curve geometry and coupling parameters.
type WindConfig struct {
	BaseLifetime     time.Duration `yaml:"base_lifetime"`
	LifetimePerPixel time.Duration `yaml:"lifetime_per_pixel"`
	InfluenceRadius  float64       `yaml:"influence_radius"`
	MaxSpeed         float64       `yaml:"max_speed"`          // Target speed along the curve
	BaseStrength     float64       `yaml:"base_strength"`      // Minimum propulsion strength
	StrengthPer100px float64       `yaml:"strength_per_100px"` // Propulsion growth with length
	MinPointDistance float64       `yaml:"min_point_distance"`
	CurvatureFactor  float64       `yaml:"curvature_factor"`
	CouplingStrength float64       `yaml:"coupling_strength"`
	ArrivalDistance  float64       `yaml:"arrival_distance"`
	ArrivalRampDown  bool          `yaml:"arrival_ramp_down"`
	ForceFalloff     float64       `yaml:"force_falloff"`
	Smoothing        float64       `yaml:"smoothing"`
	CaptureTime      time.Duration `yaml:"capture_time"`
	AngleSnapping    bool          `yaml:"angle_snapping"`
	MaxAngle         float64       `yaml:"max_angle"` // Degrees
	AngleLookback    int           `yaml:"angle_lookback"`
}

// CombineConfig holds combination rule switches.
type CombineConfig struct {
	Click      bool `yaml:"click"`       // Press-to-select combination instead of gestures
	InMiddle   bool `yaml:"in_middle"`   // Child spawns at the weighted midpoint
	Wildcard   bool `yaml:"wildcard"`    // Wildcard symbols of equal tier annihilate
	SimpleMode bool `yaml:"simple_mode"` // Disables same-kind destruction
	WindMode   bool `yaml:"wind_mode"`   // Disables same-kind destruction
}

// DangerConfig holds advisory danger-highlight parameters.
type DangerConfig struct {
	Enabled     bool    `yaml:"enabled"`
	MinLevel    int     `yaml:"min_level"`
	MaxDistance float64 `yaml:"max_distance"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Simulated seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickDuration time.Duration // 1s / TickRate
	Width        float64       // Screen.Width as float64
	Height       float64       // Screen.Height as float64
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate reports every out-of-range option.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	check(c.Physics.TickRate > 0, "physics.tick_rate must be positive, got %d", c.Physics.TickRate)
	check(c.Physics.GridCellSize >= 0, "physics.grid_cell_size must not be negative, got %f", c.Physics.GridCellSize)
	check(c.Physics.CollisionEpsilon >= 0, "physics.collision_epsilon must not be negative, got %f", c.Physics.CollisionEpsilon)
	check(c.Token.BaseRadius > 0, "token.base_radius must be positive, got %f", c.Token.BaseRadius)
	check(c.Token.SizeIncreasePerLevel >= 0, "token.size_increase_per_level must not be negative, got %f", c.Token.SizeIncreasePerLevel)
	check(c.Token.MaxLevel >= 1, "token.max_level must be at least 1, got %d", c.Token.MaxLevel)
	check(c.Gravity.MassEffect >= 0 && c.Gravity.MassEffect <= 1, "gravity.mass_effect must be in [0,1], got %f", c.Gravity.MassEffect)
	check(c.Friction > 0 && c.Friction <= 1, "friction must be in (0,1], got %f", c.Friction)
	check(c.Knockback >= 0, "knockback must not be negative, got %f", c.Knockback)
	check(c.Slingshot.MaxPull >= 0, "slingshot.max_pull must not be negative, got %f", c.Slingshot.MaxPull)
	check(c.Wind.InfluenceRadius >= 0, "wind.influence_radius must not be negative, got %f", c.Wind.InfluenceRadius)
	check(c.Wind.MinPointDistance >= 0, "wind.min_point_distance must not be negative, got %f", c.Wind.MinPointDistance)
	check(c.Wind.Smoothing >= 0 && c.Wind.Smoothing <= 1, "wind.smoothing must be in [0,1], got %f", c.Wind.Smoothing)
	check(c.Wind.AngleLookback >= 1, "wind.angle_lookback must be at least 1, got %d", c.Wind.AngleLookback)
	check(c.Telemetry.StatsWindow > 0, "telemetry.stats_window must be positive, got %f", c.Telemetry.StatsWindow)

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickDuration = time.Second / time.Duration(c.Physics.TickRate)
	c.Derived.Width = float64(c.Screen.Width)
	c.Derived.Height = float64(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := c.MarshalYAMLBytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// MarshalYAMLBytes encodes the configuration as YAML.
func (c *Config) MarshalYAMLBytes() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
