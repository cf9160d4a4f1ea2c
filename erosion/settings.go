package erosion

import (
	"fmt"
	"sort"
)

// Settings drives one erosion run. The simulator never validates it:
// out-of-range values produce degenerate but well defined output.
type Settings struct {
	ErosionCycles                                       int64
	Inertia, Capacity, MinimalSlope                     float64
	DepositionSpeed, ErosionSpeed, Gravity, Evaporation float64
	MaxPath, ErosionRadius                              int
	WindDirection                                       WindDirection
	WindBias                                            bool
	Seed                                                int64
}

func DefaultSettings() Settings {
	return Settings{
		ErosionCycles:   100000,
		Inertia:         0.3,
		Capacity:        8,
		MinimalSlope:    0.01,
		DepositionSpeed: 0.2,
		ErosionSpeed:    0.7,
		Gravity:         10,
		Evaporation:     0.02,
		MaxPath:         64,
		ErosionRadius:   4,
		WindDirection:   WindRandom,
	}
}

var presets = map[string]func() Settings{
	"default": DefaultSettings,
	// Gentle weathering: droplets follow the terrain closely and die young.
	"subtle": func() Settings {
		s := DefaultSettings()
		s.ErosionCycles = 20000
		s.Inertia = 0.05
		s.Capacity = 4
		s.MinimalSlope = 0.001
		s.DepositionSpeed = 0.05
		s.ErosionSpeed = 0.1
		s.MaxPath = 30
		s.ErosionRadius = 2
		return s
	},
	"average": func() Settings {
		s := DefaultSettings()
		s.ErosionCycles = 50000
		s.Inertia = 0.1
		s.Capacity = 6
		s.DepositionSpeed = 0.1
		s.ErosionSpeed = 0.3
		s.MaxPath = 50
		s.ErosionRadius = 3
		return s
	},
	"heavy": func() Settings {
		s := DefaultSettings()
		s.ErosionCycles = 200000
		s.MaxPath = 200
		return s
	},
}

// Preset returns a named parameter set.
func Preset(name string) (Settings, error) {
	build, ok := presets[name]
	if !ok {
		return Settings{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return build(), nil
}

func PresetNames() []string {
	var names = make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
