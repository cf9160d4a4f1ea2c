package terrain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ob6160/dropbydrop/terrain"
)

func TestNewGridLength(t *testing.T) {
	for _, size := range []int{0, 1, 4, 17} {
		g := terrain.NewGrid(size)
		assert.Len(t, g.Heights, size*size)
	}
}

func TestFromHeightsRejectsMismatch(t *testing.T) {
	_, err := terrain.FromHeights(3, make([]float64, 8))
	require.ErrorIs(t, err, terrain.ErrSizeMismatch)

	g, err := terrain.FromHeights(2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2.0, g.At(1, 0))
	assert.Equal(t, 3.0, g.At(0, 1))
}

func TestCloneIsIndependent(t *testing.T) {
	g, _ := terrain.FromHeights(2, []float64{1, 2, 3, 4})
	c := g.Clone()
	c.Set(0, 0, 9)
	assert.Equal(t, 1.0, g.At(0, 0))
}

func TestRescale(t *testing.T) {
	g, _ := terrain.FromHeights(2, []float64{-1, 0, 1, 3})
	require.True(t, g.Normalize(2))
	min, max := g.Bounds()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 2.0, max)
	assert.InDelta(t, 0.5, g.At(1, 0), 1e-12)
	assert.InDelta(t, 1.0, g.At(0, 1), 1e-12)
}

func TestRescaleFlatIsUntouched(t *testing.T) {
	g, _ := terrain.FromHeights(2, []float64{0.3, 0.3, 0.3, 0.3})
	assert.False(t, g.Normalize(1))
	assert.Equal(t, []float64{0.3, 0.3, 0.3, 0.3}, g.Heights)
}

func TestDownsample(t *testing.T) {
	g, _ := terrain.FromHeights(4, []float64{
		1, 3, 0, 0,
		1, 3, 0, 4,
		2, 2, 5, 5,
		2, 2, 5, 5,
	})
	d, err := g.Downsample(2)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Size)
	assert.Equal(t, []float64{2, 1, 2, 5}, d.Heights)

	_, err = g.Downsample(3)
	require.ErrorIs(t, err, terrain.ErrCellSize)
	_, err = g.Downsample(0)
	require.ErrorIs(t, err, terrain.ErrCellSize)
}

func TestUint16Clamps(t *testing.T) {
	g, _ := terrain.FromHeights(2, []float64{-0.5, 0, 0.5, 2})
	assert.Equal(t, []uint16{0, 0, 32768, math.MaxUint16}, g.Uint16())

	back, err := terrain.FromUint16(2, []uint16{0, math.MaxUint16, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, back.At(1, 0))
}

func TestVolume(t *testing.T) {
	g, _ := terrain.FromHeights(2, []float64{1, 2, 3, 4})
	assert.Equal(t, 10.0, g.Volume())
}
