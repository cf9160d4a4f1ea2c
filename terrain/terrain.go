package terrain

import (
	"fmt"
	"math"

	"github.com/ob6160/dropbydrop/utils"
)

// Grid is a square heightmap stored row-major: the height of (x, y) lives
// at Heights[x + y*Size]. len(Heights) == Size*Size always holds.
type Grid struct {
	Size    int
	Heights []float64
}

func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	return &Grid{Size: size, Heights: make([]float64, size*size)}
}

// FromHeights wraps an existing slice without copying it.
func FromHeights(size int, heights []float64) (*Grid, error) {
	if size < 0 || len(heights) != size*size {
		return nil, fmt.Errorf("%w: %d values for size %d", ErrSizeMismatch, len(heights), size)
	}
	return &Grid{Size: size, Heights: heights}, nil
}

func (g *Grid) Index(x, y int) int {
	return utils.ToIndex(x, y, g.Size)
}

func (g *Grid) At(x, y int) float64 {
	return g.Heights[g.Index(x, y)]
}

func (g *Grid) Set(x, y int, value float64) {
	g.Heights[g.Index(x, y)] = value
}

func (g *Grid) Clone() *Grid {
	heights := make([]float64, len(g.Heights))
	copy(heights, g.Heights)
	return &Grid{Size: g.Size, Heights: heights}
}

// Bounds returns the lowest and highest height. An empty grid reports
// +Inf/-Inf.
func (g *Grid) Bounds() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, h := range g.Heights {
		min = math.Min(min, h)
		max = math.Max(max, h)
	}
	return min, max
}

// Volume is the sum of all heights.
func (g *Grid) Volume() float64 {
	var total float64
	for _, h := range g.Heights {
		total += h
	}
	return total
}

// Rescale maps [min, max] onto [0, maxHeight]. A flat range (min == max)
// leaves the grid untouched and reports false.
func (g *Grid) Rescale(min, max, maxHeight float64) bool {
	if min == max {
		return false
	}
	diff := max - min
	for i, h := range g.Heights {
		g.Heights[i] = (h - min) / diff * maxHeight
	}
	return true
}

func (g *Grid) Normalize(maxHeight float64) bool {
	min, max := g.Bounds()
	return g.Rescale(min, max, maxHeight)
}

// Downsample averages cellSize×cellSize blocks into a single height,
// producing a grid of side Size/cellSize.
func (g *Grid) Downsample(cellSize int) (*Grid, error) {
	if cellSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrCellSize, cellSize)
	}
	if cellSize == 1 {
		return g.Clone(), nil
	}
	if g.Size%cellSize != 0 {
		return nil, fmt.Errorf("%w: size %d is not a multiple of %d", ErrCellSize, g.Size, cellSize)
	}

	var out = NewGrid(g.Size / cellSize)
	var cell = make([]float64, 0, cellSize*cellSize)
	for y := 0; y < out.Size; y++ {
		for x := 0; x < out.Size; x++ {
			cell = cell[:0]
			for dy := 0; dy < cellSize; dy++ {
				for dx := 0; dx < cellSize; dx++ {
					cell = append(cell, g.At(x*cellSize+dx, y*cellSize+dy))
				}
			}
			out.Set(x, y, utils.Average(cell...))
		}
	}
	return out, nil
}

// Uint16 scales [0, 1] heights onto [0, 65535], clamping anything outside.
func (g *Grid) Uint16() []uint16 {
	var out = make([]uint16, len(g.Heights))
	for i, h := range g.Heights {
		v := math.Round(h * math.MaxUint16)
		out[i] = uint16(math.Max(0, math.Min(math.MaxUint16, v)))
	}
	return out
}

func FromUint16(size int, values []uint16) (*Grid, error) {
	heights := make([]float64, len(values))
	for i, v := range values {
		heights[i] = float64(v) / math.MaxUint16
	}
	return FromHeights(size, heights)
}
