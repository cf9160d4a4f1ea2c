package erosion

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ob6160/dropbydrop/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func TestWorkingSetRadiusZero(t *testing.T) {
	ws := NewWorkingSet(0)
	ws.Compute(mgl64.Vec2{2.3, 1.7}, 0, 5)
	require.Len(t, ws.Points, 1)
	assert.Equal(t, utils.Point{X: 2, Y: 1}, ws.Points[0])
	assert.Equal(t, []float64{1}, ws.Weights)
}

func TestWorkingSetInterior(t *testing.T) {
	ws := NewWorkingSet(2)
	ws.Compute(mgl64.Vec2{5.4, 5.6}, 2, 12)
	assert.Len(t, ws.Points, 25)
	assert.InDelta(t, 1, sum(ws.Weights), 1e-12)
	for _, w := range ws.Weights {
		assert.GreaterOrEqual(t, w, 0.0)
	}
}

func TestWorkingSetClipsAtCorner(t *testing.T) {
	ws := NewWorkingSet(2)
	ws.Compute(mgl64.Vec2{0.2, 0.2}, 2, 12)
	assert.Len(t, ws.Points, 9)
	for _, p := range ws.Points {
		assert.True(t, p.InBounds(12))
	}
	assert.InDelta(t, 1, sum(ws.Weights), 1e-12)
}

func TestWorkingSetZeroWeightsShareEvenly(t *testing.T) {
	// Every candidate is at least one cell away from the drop.
	ws := NewWorkingSet(1)
	ws.Compute(mgl64.Vec2{4.8, 4.8}, 1, 5)
	require.Len(t, ws.Points, 4)
	for _, w := range ws.Weights {
		assert.Equal(t, 0.25, w)
	}
}

func TestWorkingSetNegativeRadiusIsEmpty(t *testing.T) {
	ws := NewWorkingSet(-1)
	ws.Compute(mgl64.Vec2{2, 2}, -1, 5)
	assert.Empty(t, ws.Points)
	assert.Empty(t, ws.Weights)
}

func TestWorkingSetReusesBuffers(t *testing.T) {
	ws := NewWorkingSet(2)
	before := cap(ws.Points)
	for i := 0; i < 50; i++ {
		ws.Compute(mgl64.Vec2{float64(i%10) + 0.5, 3.5}, 2, 10)
	}
	assert.Equal(t, before, cap(ws.Points))
	assert.Equal(t, before, cap(ws.Weights))
}
