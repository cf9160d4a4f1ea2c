package generators

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioSettings() HeightmapSettings {
	return HeightmapSettings{
		Seed:                42,
		NumOctaves:          1,
		Persistence:         0.5,
		Lacunarity:          2,
		InitialScale:        1,
		Size:                4,
		MaxHeightDifference: 1,
	}
}

func TestGenerateHeightmapLength(t *testing.T) {
	for _, size := range []int{0, 1, 2, 7, 33} {
		s := DefaultHeightmapSettings()
		s.Size = size
		s.NumOctaves = 3
		assert.Len(t, GenerateHeightmap(s).Heights, size*size, "size %d", size)
	}
}

func TestGenerateHeightmapDeterministic(t *testing.T) {
	for _, basis := range []Basis{BasisPerlin, BasisOpenSimplex} {
		s := DefaultHeightmapSettings()
		s.Size = 33
		s.Basis = basis
		a := GenerateHeightmap(s)
		b := GenerateHeightmap(s)
		assert.Equal(t, a.Heights, b.Heights, basis.String())
	}
}

func TestGenerateHeightmapSeedMatters(t *testing.T) {
	s := DefaultHeightmapSettings()
	s.Size = 16
	a := GenerateHeightmap(s)
	s.Seed++
	b := GenerateHeightmap(s)
	assert.NotEqual(t, a.Heights, b.Heights)
}

func TestGenerateHeightmapNormalised(t *testing.T) {
	for _, basis := range []Basis{BasisPerlin, BasisOpenSimplex} {
		s := DefaultHeightmapSettings()
		s.Size = 64
		s.Basis = basis
		s.MaxHeightDifference = 3.5
		min, max := GenerateHeightmap(s).Bounds()
		assert.Equal(t, 0.0, min, basis.String())
		assert.Equal(t, 3.5, max, basis.String())
	}
}

func TestGenerateHeightmapScenario(t *testing.T) {
	g := GenerateHeightmap(scenarioSettings())
	require.Len(t, g.Heights, 16)
	min, max := g.Bounds()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 1.0, max)
	assert.Equal(t, g.Heights, GenerateHeightmap(scenarioSettings()).Heights)
}

func TestGenerateHeightmapDegenerateIsNotRescaled(t *testing.T) {
	// A single cell has min == max, so the raw noise value is kept.
	s := scenarioSettings()
	s.Size = 1
	s.MaxHeightDifference = 10
	g := GenerateHeightmap(s)
	require.Len(t, g.Heights, 1)

	stream := rand.New(rand.NewSource(s.Seed))
	ox := stream.Float64()*2000 - 1000
	oy := stream.Float64()*2000 - 1000
	assert.Equal(t, newBasis(BasisPerlin, s.Seed).Noise2D(ox, oy), g.Heights[0])
}

func TestZeroOctavesIsFlat(t *testing.T) {
	s := scenarioSettings()
	s.NumOctaves = 0
	g := GenerateHeightmap(s)
	assert.Equal(t, make([]float64, 16), g.Heights)
}

func TestRandomizeSeed(t *testing.T) {
	s := scenarioSettings()
	s.RandomizeSeed = true
	s.Size = 8
	gen := NewNoiseGenerator(s)
	g := gen.Generate()
	assert.GreaterOrEqual(t, gen.LastSeed, int64(-10000))
	assert.LessOrEqual(t, gen.LastSeed, int64(10000))

	fixed := s
	fixed.RandomizeSeed = false
	fixed.Seed = gen.LastSeed
	assert.Equal(t, GenerateHeightmap(fixed).Heights, g.Heights)
}

func TestParseBasis(t *testing.T) {
	b, err := ParseBasis("OpenSimplex")
	require.NoError(t, err)
	assert.Equal(t, BasisOpenSimplex, b)
	b, err = ParseBasis("perlin")
	require.NoError(t, err)
	assert.Equal(t, BasisPerlin, b)
	_, err = ParseBasis("worley")
	assert.ErrorIs(t, err, ErrUnknownBasis)
}
