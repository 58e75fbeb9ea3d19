// Package config provides configuration loading and access for the visual engine.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// MaxParticles caps field.count. The connection pass is O(n²) per frame.
const MaxParticles = 400

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Field      FieldConfig      `yaml:"field"`
	Background BackgroundConfig `yaml:"background"`
	Starfield  StarfieldConfig  `yaml:"starfield"`
	Graph      GraphConfig      `yaml:"graph"`
	Meshes     MeshesConfig     `yaml:"meshes"`
	Audio      AudioConfig      `yaml:"audio"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Scene     string `yaml:"scene"` // scene mounted at startup
}

// FieldConfig holds particle field parameters.
type FieldConfig struct {
	Count              int     `yaml:"count"`
	Interactive        bool    `yaml:"interactive"`
	ConnectionDistance float64 `yaml:"connection_distance"` // pixels
	TrailLength        int     `yaml:"trail_length"`        // capped at the trail buffer size
	InfluenceRadius    float64 `yaml:"influence_radius"`    // pointer influence radius in pixels
	PointerGain        float64 `yaml:"pointer_gain"`        // positive attracts, negative repels
	BoundaryDamping    float64 `yaml:"boundary_damping"`    // velocity kept on wall contact
	Friction           float64 `yaml:"friction"`            // per-frame velocity multiplier
	SpeedRange         float64 `yaml:"speed_range"`         // spawn velocity in [-range/2, range/2)
	MaxAgeMin          int     `yaml:"max_age_min"`
	MaxAgeSpan         int     `yaml:"max_age_span"`
	HueMin             float64 `yaml:"hue_min"`
	HueSpan            float64 `yaml:"hue_span"`
	FadeAlpha          float64 `yaml:"fade_alpha"` // persistence-of-vision fade per frame
}

// BackgroundConfig holds procedural background parameters.
type BackgroundConfig struct {
	TimeStep    float64 `yaml:"time_step"`
	Waves       int     `yaml:"waves"`
	Orbs        int     `yaml:"orbs"`
	WaveStep    int     `yaml:"wave_step"`    // x sampling step in pixels
	GrainCell   int     `yaml:"grain_cell"`   // grain cell size in pixels (0 = off)
	GrainAmount float64 `yaml:"grain_amount"` // max grain alpha
	Seed        int64   `yaml:"seed"`
}

// StarfieldConfig holds starfield parameters.
type StarfieldConfig struct {
	Count int     `yaml:"count"`
	Band  float64 `yaml:"band"` // fraction of the viewport height stars occupy
}

// GraphConfig holds force-directed layout parameters.
type GraphConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	LinkDistance   float64 `yaml:"link_distance"`
	ChargeStrength float64 `yaml:"charge_strength"`
	Theta          float64 `yaml:"theta"`
	VelocityDecay  float64 `yaml:"velocity_decay"`
	AlphaMin       float64 `yaml:"alpha_min"`
	AlphaTarget    float64 `yaml:"alpha_target"`
}

// MeshesConfig holds 3D scene parameters.
type MeshesConfig struct {
	FovY           float64 `yaml:"fov_y"`           // degrees
	CameraDistance float64 `yaml:"camera_distance"` // orbit radius in world units
	OrbitSpeed     float64 `yaml:"orbit_speed"`     // radians per second (0 = still)
	DragSpeed      float64 `yaml:"drag_speed"`      // radians per dragged pixel
}

// AudioConfig holds sound cue parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
	ClipsDir   string  `yaml:"clips_dir"` // optional <cue>.wav overrides
}

// BookmarksConfig holds bookmark persistence parameters.
type BookmarksConfig struct {
	Path string `yaml:"path"`
	Key  string `yaml:"key"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int `yaml:"perf_window"`  // ticks averaged by the perf collector
	LogInterval int `yaml:"log_interval"` // ticks between perf log lines (0 = off)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32          float32 // Screen.Width as float32
	ScreenH32          float32 // Screen.Height as float32
	ConnectionDistance float32
	InfluenceRadius    float32
	ParticleCount      int           // Field.Count clamped to [1, MaxParticles]
	FrameStep          time.Duration // fixed time advanced per tick
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Screen.Width < 0 || c.Screen.Height < 0 {
		return fmt.Errorf("screen size must not be negative: %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Field.ConnectionDistance <= 0 {
		return fmt.Errorf("field.connection_distance must be positive: %v", c.Field.ConnectionDistance)
	}
	if c.Field.BoundaryDamping < 0 || c.Field.BoundaryDamping > 1 {
		return fmt.Errorf("field.boundary_damping must be in [0,1]: %v", c.Field.BoundaryDamping)
	}
	if c.Meshes.FovY < 0 || c.Meshes.FovY >= 180 {
		return fmt.Errorf("meshes.fov_y must be in [0,180): %v", c.Meshes.FovY)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be in [0,1]: %v", c.Audio.Volume)
	}
	if c.Bookmarks.Key == "" {
		return fmt.Errorf("bookmarks.key must not be empty")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.ConnectionDistance = float32(c.Field.ConnectionDistance)
	c.Derived.InfluenceRadius = float32(c.Field.InfluenceRadius)

	count := c.Field.Count
	if count < 1 {
		count = 1
	}
	if count > MaxParticles {
		count = MaxParticles
	}
	c.Derived.ParticleCount = count

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.FrameStep = time.Second / time.Duration(fps)
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
