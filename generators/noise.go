package generators

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ob6160/dropbydrop/terrain"
	"github.com/ojrac/opensimplex-go"
)

type Basis uint8

const (
	BasisPerlin Basis = iota
	BasisOpenSimplex
)

func (b Basis) String() string {
	if b == BasisOpenSimplex {
		return "opensimplex"
	}
	return "perlin"
}

func ParseBasis(s string) (Basis, error) {
	switch strings.ToLower(s) {
	case "perlin":
		return BasisPerlin, nil
	case "opensimplex", "simplex":
		return BasisOpenSimplex, nil
	}
	return BasisPerlin, fmt.Errorf("%w: %q", ErrUnknownBasis, s)
}

// noise2D is a single octave of coherent noise.
type noise2D interface {
	Noise2D(x, y float64) float64
}

type simplexBasis struct {
	noise opensimplex.Noise
}

func (s simplexBasis) Noise2D(x, y float64) float64 {
	return s.noise.Eval2(x, y)
}

func newBasis(b Basis, seed int64) noise2D {
	if b == BasisOpenSimplex {
		return simplexBasis{opensimplex.New(seed)}
	}
	// One octave only: octaves are summed by the generator itself.
	return perlin.NewPerlin(2, 2, 1, seed)
}

type HeightmapSettings struct {
	Seed                                  int64
	RandomizeSeed                         bool
	NumOctaves                            uint
	Persistence, Lacunarity, InitialScale float64
	Size                                  int
	MaxHeightDifference                   float64
	Basis                                 Basis
}

func DefaultHeightmapSettings() HeightmapSettings {
	return HeightmapSettings{
		Seed:                -4314,
		NumOctaves:          8,
		Persistence:         0.45,
		Lacunarity:          2,
		InitialScale:        1.8,
		Size:                505,
		MaxHeightDifference: 1,
	}
}

// NoiseGenerator builds heightmaps from multi-octave coherent noise.
type NoiseGenerator struct {
	Settings HeightmapSettings
	// Seed actually used by the last Generate call.
	LastSeed int64
}

func NewNoiseGenerator(settings HeightmapSettings) *NoiseGenerator {
	return &NoiseGenerator{Settings: settings}
}

func (n *NoiseGenerator) Generate() *terrain.Grid {
	var seed = n.Settings.Seed
	if n.Settings.RandomizeSeed {
		seed = rand.Int63n(20001) - 10000
	}
	n.LastSeed = seed
	return generateNoise(n.Settings, seed)
}

// GenerateHeightmap returns a Size×Size grid normalised to
// [0, MaxHeightDifference]. Output is deterministic for a fixed seed.
func GenerateHeightmap(settings HeightmapSettings) *terrain.Grid {
	return NewNoiseGenerator(settings).Generate()
}

func generateNoise(settings HeightmapSettings, seed int64) *terrain.Grid {
	var size = settings.Size
	var grid = terrain.NewGrid(size)
	var stream = rand.New(rand.NewSource(seed))
	var basis = newBasis(settings.Basis, seed)

	// Each octave samples a different region of the noise plane.
	offsets := make([]mgl64.Vec2, settings.NumOctaves)
	for i := range offsets {
		offsets[i] = mgl64.Vec2{stream.Float64()*2000 - 1000, stream.Float64()*2000 - 1000}
	}

	var minValue = math.Inf(1)
	var maxValue = math.Inf(-1)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var noise = 0.0
			var scale = settings.InitialScale
			var weight = 1.0
			var cell = mgl64.Vec2{float64(x), float64(y)}.Mul(1 / float64(size))

			for _, offset := range offsets {
				location := offset.Add(cell.Mul(scale))
				noise += basis.Noise2D(location.X(), location.Y()) * weight
				weight *= settings.Persistence
				scale *= settings.Lacunarity
			}

			grid.Set(x, y, noise)
			minValue = math.Min(minValue, noise)
			maxValue = math.Max(maxValue, noise)
		}
	}

	// Flat noise is left as it is.
	grid.Rescale(minValue, maxValue, settings.MaxHeightDifference)
	return grid
}
