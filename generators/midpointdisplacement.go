package generators

import (
	"math/rand"

	"github.com/ob6160/dropbydrop/terrain"
	"github.com/ob6160/dropbydrop/utils"
)

// Generator produces a fresh heightmap on every call.
type Generator interface {
	Generate() *terrain.Grid
}

type MidpointSettings struct {
	Seed                int64
	Size                int
	Spread, Reduce      float64
	MaxHeightDifference float64
}

func DefaultMidpointSettings() MidpointSettings {
	return MidpointSettings{
		Size:                505,
		Spread:              0.5,
		Reduce:              0.5,
		MaxHeightDifference: 1,
	}
}

type MidpointDisplacement struct {
	settings  MidpointSettings
	rng       *rand.Rand
	width     int
	heightmap []float64
	set       []bool
}

func NewMidPointDisplacement(settings MidpointSettings) *MidpointDisplacement {
	// The recursion needs a 2^k+1 lattice; the result is cropped to Size.
	var width = 2
	for width+1 < settings.Size {
		width *= 2
	}
	width++
	return &MidpointDisplacement{
		settings:  settings,
		rng:       rand.New(rand.NewSource(settings.Seed)),
		width:     width,
		heightmap: make([]float64, width*width),
		set:       make([]bool, width*width),
	}
}

func (m *MidpointDisplacement) Generate() *terrain.Grid {
	for i := range m.heightmap {
		m.heightmap[i] = 0
		m.set[i] = false
	}
	var last = m.width - 1
	// Set all four corners to random values
	topLeft := utils.Point{X: 0, Y: 0}
	topRight := utils.Point{X: last, Y: 0}
	bottomLeft := utils.Point{X: 0, Y: last}
	bottomRight := utils.Point{X: last, Y: last}
	for _, corner := range []utils.Point{topLeft, topRight, bottomLeft, bottomRight} {
		m.put(corner, m.rng.Float64())
	}
	m.displace(topLeft, bottomRight, m.settings.Spread)

	var size = m.settings.Size
	if size < 0 {
		size = 0
	}
	var grid = terrain.NewGrid(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			grid.Set(x, y, m.get(utils.Point{X: x, Y: y}))
		}
	}
	grid.Normalize(m.settings.MaxHeightDifference)
	return grid
}

func (m *MidpointDisplacement) get(p utils.Point) float64 {
	return m.heightmap[p.ToIndex(m.width)]
}

func (m *MidpointDisplacement) put(p utils.Point, value float64) {
	m.heightmap[p.ToIndex(m.width)] = value
	m.set[p.ToIndex(m.width)] = true
}

// fill sets p to the jittered average of its sources unless a neighbouring
// square already did.
func (m *MidpointDisplacement) fill(p utils.Point, spread float64, sources ...utils.Point) {
	if m.set[p.ToIndex(m.width)] {
		return
	}
	var values = make([]float64, len(sources))
	for i, s := range sources {
		values[i] = m.get(s)
	}
	m.put(p, utils.Jitter(m.rng, utils.Average(values...), spread))
}

func (m *MidpointDisplacement) displace(tl, br utils.Point, spread float64) {
	if br.X-tl.X < 2 {
		return
	}
	var tr = utils.Point{X: br.X, Y: tl.Y}
	var bl = utils.Point{X: tl.X, Y: br.Y}
	var midX = utils.Midpoint(tl.X, br.X)
	var midY = utils.Midpoint(tl.Y, br.Y)

	topMid := utils.Point{X: midX, Y: tl.Y}
	leftMid := utils.Point{X: tl.X, Y: midY}
	rightMid := utils.Point{X: br.X, Y: midY}
	bottomMid := utils.Point{X: midX, Y: br.Y}
	centre := utils.Point{X: midX, Y: midY}

	m.fill(topMid, spread, tl, tr)
	m.fill(leftMid, spread, tl, bl)
	m.fill(rightMid, spread, tr, br)
	m.fill(bottomMid, spread, bl, br)
	m.fill(centre, spread, topMid, leftMid, rightMid, bottomMid)

	next := spread * m.settings.Reduce
	m.displace(tl, centre, next)
	m.displace(topMid, rightMid, next)
	m.displace(leftMid, bottomMid, next)
	m.displace(centre, br, next)
}
