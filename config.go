package debuglines

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default capacity: four chunks of 65536 points, 131072 lines in total per
// store.
const (
	DefaultChunkCapacity = 1 << 16
	DefaultChunkCount    = 4
)

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("debuglines: invalid config")

	// ErrInvalidColor is returned when a color value cannot be decoded.
	ErrInvalidColor = errors.New("debuglines: invalid color")
)

// Config holds the construction-time settings of a Lines instance. The
// capacity fields are fixed for the lifetime of the instance.
type Config struct {
	// ChunkCapacity is the number of points per GPU buffer. Must be even.
	ChunkCapacity int `yaml:"chunk_capacity"`

	// ChunkCount is the number of GPU buffers per store.
	ChunkCount int `yaml:"chunk_count"`

	// DepthTest makes lines hidden by scene geometry invisible. When false
	// lines are always drawn in front.
	DepthTest bool `yaml:"depth_test"`

	// Enabled controls whether chunk fill produces any output. Lines are
	// tracked and expired either way.
	Enabled bool `yaml:"enabled"`

	// SampleCount is the MSAA sample count of the render target.
	SampleCount uint32 `yaml:"sample_count"`

	// CircleSegments is the default chord count of circles and spheres.
	CircleSegments int `yaml:"circle_segments"`

	// DefaultColor is used by Lines.Line and new shapes.
	DefaultColor Color `yaml:"default_color"`
}

// DefaultConfig returns the settings used when New is called without
// options.
func DefaultConfig() Config {
	return Config{
		ChunkCapacity:  DefaultChunkCapacity,
		ChunkCount:     DefaultChunkCount,
		DepthTest:      true,
		Enabled:        true,
		SampleCount:    1,
		CircleSegments: 16,
		DefaultColor:   White,
	}
}

// MaxPoints returns the point capacity of each store.
func (c Config) MaxPoints() int {
	return c.ChunkCapacity * c.ChunkCount
}

// MaxLines returns the line capacity of each store.
func (c Config) MaxLines() int {
	return c.MaxPoints() / 2
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.ChunkCapacity <= 0:
		return fmt.Errorf("%w: chunk_capacity must be positive, got %d", ErrInvalidConfig, c.ChunkCapacity)
	case c.ChunkCapacity%2 != 0:
		return fmt.Errorf("%w: chunk_capacity must be even, got %d", ErrInvalidConfig, c.ChunkCapacity)
	case c.ChunkCount <= 0:
		return fmt.Errorf("%w: chunk_count must be positive, got %d", ErrInvalidConfig, c.ChunkCount)
	case c.SampleCount == 0:
		return fmt.Errorf("%w: sample_count must be positive", ErrInvalidConfig)
	case c.CircleSegments < 0:
		return fmt.Errorf("%w: circle_segments must not be negative, got %d", ErrInvalidConfig, c.CircleSegments)
	}
	return nil
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
//
// Example:
//
//	chunk_capacity: 8192
//	chunk_count: 2
//	depth_test: false
//	default_color: gold
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Option configures a Lines instance during creation.
type Option func(*Config)

// WithConfig replaces the whole configuration. Options after it still
// apply on top.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// WithChunks sets the chunk layout. MaxLines becomes capacity*count/2.
func WithChunks(capacity, count int) Option {
	return func(c *Config) {
		c.ChunkCapacity = capacity
		c.ChunkCount = count
	}
}

// WithDepthTest toggles depth testing in the renderer.
func WithDepthTest(on bool) Option {
	return func(c *Config) {
		c.DepthTest = on
	}
}

// WithDisabled starts the instance with drawing disabled.
func WithDisabled() Option {
	return func(c *Config) {
		c.Enabled = false
	}
}

// WithCircleSegments sets the default chord count of circles and spheres.
func WithCircleSegments(n int) Option {
	return func(c *Config) {
		c.CircleSegments = n
	}
}

// WithDefaultColor sets the color of Lines.Line and new shapes.
func WithDefaultColor(col Color) Option {
	return func(c *Config) {
		c.DefaultColor = col
	}
}

// UnmarshalYAML accepts a color name ("pink"), an sRGB hex string
// ("#ff8800", "#ff880080") or a sequence of three or four linear
// components ([1, 0.5, 0] or [1, 0.5, 0, 0.5]).
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseColor(value.Value)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case yaml.SequenceNode:
		var comps []float32
		if err := value.Decode(&comps); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidColor, err)
		}
		switch len(comps) {
		case 3:
			*c = RGB(comps[0], comps[1], comps[2])
		case 4:
			*c = RGBA(comps[0], comps[1], comps[2], comps[3])
		default:
			return fmt.Errorf("%w: want 3 or 4 components, got %d", ErrInvalidColor, len(comps))
		}
		return nil
	}
	return fmt.Errorf("%w: unsupported YAML node at line %d", ErrInvalidColor, value.Line)
}

// MarshalYAML encodes the color as its four linear components.
func (c Color) MarshalYAML() (any, error) {
	return []float32{c.R, c.G, c.B, c.A}, nil
}

// ParseColor parses a color name or an sRGB hex string in the forms
// "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is optional for hex.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := Named(s); ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return FromColor(color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}), nil
}
