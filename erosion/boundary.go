package erosion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ob6160/dropbydrop/utils"
)

// OutOfBound classifies a truncated grid position by which of its +1
// neighbours fall off the grid.
type OutOfBound uint8

const (
	NoError OutOfBound = iota
	ErrorRight
	ErrorDown
	ErrorRightDown
)

func Classify(x, y, size int) OutOfBound {
	var right = x >= size-1
	var down = y >= size-1
	switch {
	case right && down:
		return ErrorRightDown
	case right:
		return ErrorRight
	case down:
		return ErrorDown
	}
	return NoError
}

// Column and row steps to the +1 neighbours for each class. A zero step
// folds that neighbour back onto the cell itself.
var cornerSteps = [...]struct{ dx, dy int }{
	NoError:        {1, 1},
	ErrorRight:     {0, 1},
	ErrorDown:      {1, 0},
	ErrorRightDown: {0, 0},
}

// Corners holds grid indices in the order (x,y), (x+1,y), (x,y+1), (x+1,y+1).
type Corners [4]int

// CornerIndices is shared by the read and the write path so that lookups and
// deposits clamp at the edges in exactly the same way.
func CornerIndices(x, y, size int) Corners {
	var class = Classify(x, y, size)
	if class == ErrorRightDown {
		last := size*size - 1
		return Corners{last, last, last, last}
	}
	var step = cornerSteps[class]
	var i = utils.ToIndex(x, y, size)
	return Corners{
		i,
		i + step.dx,
		i + step.dy*size,
		i + step.dx + step.dy*size,
	}
}

// CornerHeights are the heights at Corners, in the same order.
type CornerHeights [4]float64

func (c Corners) Heights(heights []float64) CornerHeights {
	return CornerHeights{heights[c[0]], heights[c[1]], heights[c[2]], heights[c[3]]}
}

// Deposit spreads amount over the corners with the bilinear weights of
// offset. Collapsed corners receive the sum of their weights, so the grid
// always gains exactly amount.
func (c Corners) Deposit(heights []float64, offset mgl64.Vec2, amount float64) {
	var w = bilinearWeights(offset)
	for k, index := range c {
		heights[index] += amount * w[k]
	}
}

func bilinearWeights(offset mgl64.Vec2) [4]float64 {
	u, v := offset.Elem()
	return [4]float64{
		(1 - u) * (1 - v),
		u * (1 - v),
		(1 - u) * v,
		u * v,
	}
}

// Bilinear interpolates the height at offset within the cell.
func (h CornerHeights) Bilinear(offset mgl64.Vec2) float64 {
	var w = bilinearWeights(offset)
	return h[0]*w[0] + h[1]*w[1] + h[2]*w[2] + h[3]*w[3]
}

// Gradient interpolates the corner finite differences along each axis.
func (h CornerHeights) Gradient(offset mgl64.Vec2) mgl64.Vec2 {
	u, v := offset.Elem()
	return mgl64.Vec2{
		(h[1]-h[0])*(1-v) + (h[3]-h[2])*v,
		(h[2]-h[0])*(1-u) + (h[3]-h[1])*u,
	}
}

// WithinBounds reports whether pos lies inside [0, size)².
func WithinBounds(pos mgl64.Vec2, size int) bool {
	var limit = float64(size)
	return pos.X() >= 0 && pos.X() < limit && pos.Y() >= 0 && pos.Y() < limit
}

// split returns the truncated cell of pos and the offset inside it.
func split(pos mgl64.Vec2) (utils.Point, mgl64.Vec2) {
	fx, fy := math.Floor(pos.X()), math.Floor(pos.Y())
	return utils.Point{X: int(fx), Y: int(fy)}, mgl64.Vec2{pos.X() - fx, pos.Y() - fy}
}
