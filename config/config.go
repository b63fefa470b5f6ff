// Package config provides configuration loading and access for the visualization.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Cell      CellConfig      `yaml:"cell"`
	Organ     OrganConfig     `yaml:"organ"`
	Radius    RadiusConfig    `yaml:"radius"`
	Feed      FeedConfig      `yaml:"feed"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Chains    []ChainConfig   `yaml:"chains"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
// The world is larger than the screen; the camera handles the viewport.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig holds integration and spatial-index parameters.
type PhysicsConfig struct {
	MaxDT        float64 `yaml:"max_dt"`        // Delta-time cap in seconds
	ReferenceFPS float64 `yaml:"reference_fps"` // Velocity unit: world units per reference frame
	GridCellSize float64 `yaml:"grid_cell_size"`
	Damping      float64 `yaml:"damping"`
	NoiseAccel   float64 `yaml:"noise_accel"`
	Epsilon      float64 `yaml:"epsilon"`
}

// CellConfig holds per-pair cell behavior parameters.
type CellConfig struct {
	InnerShrink        float64 `yaml:"inner_shrink"`
	OuterWobble        float64 `yaml:"outer_wobble"`
	Clearance          float64 `yaml:"clearance"`
	PositionCorrection float64 `yaml:"position_correction"`
	Impulse            float64 `yaml:"impulse"`
	CleanupCorrection  float64 `yaml:"cleanup_correction"`
	EdgePush           float64 `yaml:"edge_push"`
	EaseRate           float64 `yaml:"ease_rate"`
	StartRadius        float64 `yaml:"start_radius"`
	WobbleSpeedMin     float64 `yaml:"wobble_speed_min"`
	WobbleSpeedMax     float64 `yaml:"wobble_speed_max"`
	MaxPerOrgan        int     `yaml:"max_per_organ"`
}

// OrganConfig holds per-chain organ behavior parameters.
type OrganConfig struct {
	BaseRadius     float64 `yaml:"base_radius"`
	GrowthPerCell  float64 `yaml:"growth_per_cell"`
	WobbleFactor   float64 `yaml:"wobble_factor"`
	Clearance      float64 `yaml:"clearance"`
	Gravity        float64 `yaml:"gravity"`
	MaxPull        float64 `yaml:"max_pull"`
	PackAttempts   int     `yaml:"pack_attempts"`
	WobbleSpeedMin float64 `yaml:"wobble_speed_min"`
	WobbleSpeedMax float64 `yaml:"wobble_speed_max"`
}

// RadiusConfig holds the liquidity-to-radius mapping bounds.
type RadiusConfig struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Default float64 `yaml:"default"`
}

// FeedConfig holds event-ingestion parameters.
type FeedConfig struct {
	PollMax            int     `yaml:"poll_max"`
	CreatesPerSec      float64 `yaml:"creates_per_sec"`
	UpdatesPerSec      float64 `yaml:"updates_per_sec"`
	RemovesPerSec      float64 `yaml:"removes_per_sec"`
	LiquidityMeanLog10 float64 `yaml:"liquidity_mean_log10"`
	LiquiditySigma     float64 `yaml:"liquidity_sigma_log10"`
	VolumeMeanLog10    float64 `yaml:"volume_mean_log10"`
	VolumeSigma        float64 `yaml:"volume_sigma_log10"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// ChainConfig defines one chain cluster shown as an organ.
type ChainConfig struct {
	Key   string `yaml:"key"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"` // "#rrggbb"
}

// RGB holds a parsed chain color.
type RGB struct {
	R, G, B uint8
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW32    float32
	WorldH32    float32
	ChainIndex  map[string]uint8 // chain key -> organ index
	ChainColors []RGB            // parallel to Chains
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
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

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	if len(c.Chains) == 0 {
		return fmt.Errorf("config: at least one chain must be configured")
	}
	if len(c.Chains) > 255 {
		return fmt.Errorf("config: too many chains (%d)", len(c.Chains))
	}

	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)

	c.Derived.ChainIndex = make(map[string]uint8, len(c.Chains))
	c.Derived.ChainColors = make([]RGB, len(c.Chains))
	for i, chain := range c.Chains {
		if _, dup := c.Derived.ChainIndex[chain.Key]; dup {
			return fmt.Errorf("config: duplicate chain key %q", chain.Key)
		}
		c.Derived.ChainIndex[chain.Key] = uint8(i)

		rgb, err := parseHexColor(chain.Color)
		if err != nil {
			return fmt.Errorf("config: chain %q: %w", chain.Key, err)
		}
		c.Derived.ChainColors[i] = rgb
	}

	return nil
}

// parseHexColor parses "#rrggbb" into an RGB triple.
func parseHexColor(s string) (RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q (want #rrggbb)", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
