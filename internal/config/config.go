package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sensorsim/internal/scan"
	"sensorsim/internal/world"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the viewer looks when no -config flag is given.
const DefaultConfigPath = "config/sensorsim.yaml"

// Config is the application configuration. Every field is optional; the Get*
// methods supply defaults for anything left out of the file.
type Config struct {
	WindowWidth  *int `yaml:"window_width,omitempty"`
	WindowHeight *int `yaml:"window_height,omitempty"`
	TargetFPS    *int `yaml:"target_fps,omitempty"`

	CatalogPath *string `yaml:"catalog_path,omitempty"`
	ScenePath   *string `yaml:"scene_path,omitempty"`
	StorePath   *string `yaml:"store_path,omitempty"`

	LogLevel *string `yaml:"log_level,omitempty"`

	MinSampleDistance *float32 `yaml:"min_sample_distance,omitempty"`
	BeamRadius        *float32 `yaml:"beam_radius,omitempty"`

	// Bounds used when no scene file is loaded.
	Bounds *world.Bounds `yaml:"bounds,omitempty"`
}

// Load reads a YAML config file. Fields omitted from the file keep their
// defaults, so partial configs are safe.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .yaml or .yml extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault behaves like Load but returns an empty config when the file
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if c.WindowWidth != nil && *c.WindowWidth <= 0 {
		return fmt.Errorf("window_width must be positive, got %d", *c.WindowWidth)
	}
	if c.WindowHeight != nil && *c.WindowHeight <= 0 {
		return fmt.Errorf("window_height must be positive, got %d", *c.WindowHeight)
	}
	if c.TargetFPS != nil && *c.TargetFPS < 0 {
		return fmt.Errorf("target_fps must be non-negative, got %d", *c.TargetFPS)
	}
	if c.MinSampleDistance != nil && *c.MinSampleDistance < 0 {
		return fmt.Errorf("min_sample_distance must be non-negative, got %g", *c.MinSampleDistance)
	}
	if c.BeamRadius != nil && *c.BeamRadius <= 0 {
		return fmt.Errorf("beam_radius must be positive, got %g", *c.BeamRadius)
	}
	if c.Bounds != nil {
		if err := c.Bounds.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) GetWindowWidth() int {
	if c.WindowWidth == nil {
		return 1280
	}
	return *c.WindowWidth
}

func (c *Config) GetWindowHeight() int {
	if c.WindowHeight == nil {
		return 720
	}
	return *c.WindowHeight
}

func (c *Config) GetTargetFPS() int {
	if c.TargetFPS == nil {
		return 60
	}
	return *c.TargetFPS
}

func (c *Config) GetCatalogPath() string {
	if c.CatalogPath == nil {
		return "assets/sensors.yaml"
	}
	return *c.CatalogPath
}

func (c *Config) GetScenePath() string {
	if c.ScenePath == nil {
		return "assets/scene.json"
	}
	return *c.ScenePath
}

func (c *Config) GetStorePath() string {
	if c.StorePath == nil {
		return "sensorsim.db"
	}
	return *c.StorePath
}

func (c *Config) GetLogLevel() string {
	if c.LogLevel == nil {
		return "info"
	}
	return *c.LogLevel
}

func (c *Config) GetMinSampleDistance() float32 {
	if c.MinSampleDistance == nil {
		return scan.DefaultMinDistance
	}
	return *c.MinSampleDistance
}

func (c *Config) GetBeamRadius() float32 {
	if c.BeamRadius == nil {
		return 0.02
	}
	return *c.BeamRadius
}

func (c *Config) GetBounds() world.Bounds {
	if c.Bounds == nil {
		return world.DefaultBounds
	}
	return *c.Bounds
}
