package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ob6160/dropbydrop/erosion"
	"github.com/ob6160/dropbydrop/generators"
	"github.com/ob6160/dropbydrop/heightio"
)

const (
	GeneratorNoise    = "noise"
	GeneratorMidpoint = "midpoint"
)

// Config holds one run of the command line pipeline.
type Config struct {
	Generator string // "noise" or "midpoint"; ignored when Input is set
	Heightmap generators.HeightmapSettings
	Midpoint  generators.MidpointSettings
	Erosion   erosion.Settings
	Preset    string

	// Input is any go-getter source for a PNG heightmap.
	Input    string
	FetchDir string

	Output     string
	Preview    string
	Mesh       string
	MeshScale  float64 // world units between neighbouring cells
	MeshHeight float64 // world units per unit of height
	Downsample int     // cell size, 1 keeps the full grid

	LogLevel slog.Level
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Generator:  GeneratorNoise,
		Heightmap:  generators.DefaultHeightmapSettings(),
		Midpoint:   generators.DefaultMidpointSettings(),
		Erosion:    erosion.DefaultSettings(),
		Preset:     "default",
		Output:     "heightmap.png",
		MeshScale:  1,
		MeshHeight: 64,
		Downsample: 1,
		LogLevel:   slog.LevelInfo,
	}
}

// Size is the side length of the grid the configured generator produces.
func (c *Config) Size() int {
	if c.Generator == GeneratorMidpoint {
		return c.Midpoint.Size
	}
	return c.Heightmap.Size
}

// ApplyPreset replaces the erosion settings with the named preset, but only
// for fields that were NOT explicitly set via CLI flags.
func ApplyPreset(cfg *Config, name string, explicitFlags map[string]bool) error {
	preset, err := erosion.Preset(name)
	if err != nil {
		return err
	}
	cfg.Preset = name
	e := &cfg.Erosion
	if !explicitFlags["cycles"] {
		e.ErosionCycles = preset.ErosionCycles
	}
	if !explicitFlags["inertia"] {
		e.Inertia = preset.Inertia
	}
	if !explicitFlags["capacity"] {
		e.Capacity = preset.Capacity
	}
	if !explicitFlags["min-slope"] {
		e.MinimalSlope = preset.MinimalSlope
	}
	if !explicitFlags["deposition"] {
		e.DepositionSpeed = preset.DepositionSpeed
	}
	if !explicitFlags["erosion"] {
		e.ErosionSpeed = preset.ErosionSpeed
	}
	if !explicitFlags["gravity"] {
		e.Gravity = preset.Gravity
	}
	if !explicitFlags["evaporation"] {
		e.Evaporation = preset.Evaporation
	}
	if !explicitFlags["max-path"] {
		e.MaxPath = preset.MaxPath
	}
	if !explicitFlags["radius"] {
		e.ErosionRadius = preset.ErosionRadius
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func unit(name string, v float64) error {
	if v < 0 || v > 1 {
		return invalid("%s must be within [0, 1], got %g", name, v)
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if v < 0 {
		return invalid("%s must not be negative, got %g", name, v)
	}
	return nil
}

// Validate reports every problem at once. The erosion engine itself accepts
// any settings, so this is the only place values are range checked.
func (c *Config) Validate() error {
	var errs []error
	if c.Input == "" {
		switch c.Generator {
		case GeneratorNoise:
			if c.Heightmap.Size < 1 {
				errs = append(errs, invalid("size must be positive, got %d", c.Heightmap.Size))
			}
			if c.Heightmap.MaxHeightDifference <= 0 || c.Heightmap.MaxHeightDifference > 1 {
				errs = append(errs, invalid("max height must be within (0, 1], got %g", c.Heightmap.MaxHeightDifference))
			}
		case GeneratorMidpoint:
			if c.Midpoint.Size < 1 {
				errs = append(errs, invalid("size must be positive, got %d", c.Midpoint.Size))
			}
			if c.Midpoint.MaxHeightDifference <= 0 || c.Midpoint.MaxHeightDifference > 1 {
				errs = append(errs, invalid("max height must be within (0, 1], got %g", c.Midpoint.MaxHeightDifference))
			}
		default:
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownGenerator, c.Generator))
		}
	}

	e := c.Erosion
	if e.ErosionCycles < 0 {
		errs = append(errs, invalid("cycles must not be negative, got %d", e.ErosionCycles))
	}
	if e.MaxPath < 0 {
		errs = append(errs, invalid("max path must not be negative, got %d", e.MaxPath))
	}
	if e.ErosionRadius < 0 {
		errs = append(errs, invalid("radius must not be negative, got %d", e.ErosionRadius))
	}
	errs = append(errs,
		unit("inertia", e.Inertia),
		unit("deposition", e.DepositionSpeed),
		unit("erosion", e.ErosionSpeed),
		unit("evaporation", e.Evaporation),
		nonNegative("capacity", e.Capacity),
		nonNegative("min slope", e.MinimalSlope),
		nonNegative("gravity", e.Gravity),
	)

	if c.Output == "" {
		errs = append(errs, invalid("output path is required"))
	} else if err := heightio.CheckFormat(c.Output); err != nil {
		errs = append(errs, err)
	}
	if c.Downsample < 1 {
		errs = append(errs, invalid("downsample must be at least 1, got %d", c.Downsample))
	} else if c.Input == "" && c.Size()%c.Downsample != 0 {
		errs = append(errs, invalid("downsample %d does not divide size %d", c.Downsample, c.Size()))
	}
	if c.Mesh != "" && c.MeshScale <= 0 {
		errs = append(errs, invalid("mesh scale must be positive, got %g", c.MeshScale))
	}
	return errors.Join(errs...)
}
