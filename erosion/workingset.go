package erosion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ob6160/dropbydrop/utils"
)

// WorkingSet holds the cells a drop erodes on one step and their normalised
// weights. The slices are reused between steps.
type WorkingSet struct {
	Points  []utils.Point
	Weights []float64
}

func NewWorkingSet(radius int) *WorkingSet {
	var capacity = 1
	if radius > 0 {
		capacity = (2*radius + 1) * (2*radius + 1)
	}
	return &WorkingSet{
		Points:  make([]utils.Point, 0, capacity),
		Weights: make([]float64, 0, capacity),
	}
}

// Compute collects every in-bounds cell within Chebyshev distance radius of
// floor(pos), weighted by max(0, radius² - |cell - pos|²), and normalises
// the weights to sum to 1. When every weight is zero (radius 0 included)
// the cells share the weight equally.
func (ws *WorkingSet) Compute(pos mgl64.Vec2, radius, size int) {
	ws.Points = ws.Points[:0]
	ws.Weights = ws.Weights[:0]

	var cx, cy = int(math.Floor(pos.X())), int(math.Floor(pos.Y()))
	var squaredRadius = float64(radius * radius)
	var sum float64

	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			var p = utils.Point{X: cx + x, Y: cy + y}
			if !p.InBounds(size) {
				continue
			}
			d := mgl64.Vec2{float64(p.X), float64(p.Y)}.Sub(pos)
			w := math.Max(0, squaredRadius-d.Dot(d))
			ws.Points = append(ws.Points, p)
			ws.Weights = append(ws.Weights, w)
			sum += w
		}
	}

	if len(ws.Points) == 0 {
		return
	}
	if sum <= 0 {
		even := 1 / float64(len(ws.Points))
		for i := range ws.Weights {
			ws.Weights[i] = even
		}
		return
	}
	for i := range ws.Weights {
		ws.Weights[i] /= sum
	}
}
