package core

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/dropbydrop/terrain"
)

// Plane triangulates a heightmap, one vertex per cell.
type Plane struct {
	grid                 *terrain.Grid
	spacing, heightScale float32
	m                    Mesh
}

func (p *Plane) M() *Mesh {
	return &p.m
}

func NewPlane(grid *terrain.Grid, spacing, heightScale float32) *Plane {
	var size = grid.Size
	var quads = 0
	if size > 1 {
		quads = (size - 1) * (size - 1)
	}
	return &Plane{grid: grid, spacing: spacing, heightScale: heightScale, m: Mesh{
		Vertices: make([]float32, size*size*stride),
		Indices:  make([]uint32, quads*3*2),
	}}
}

func (p *Plane) height(x, y int) float32 {
	// Clamp so edge normals reuse the border height.
	var last = p.grid.Size - 1
	if x < 0 {
		x = 0
	} else if x > last {
		x = last
	}
	if y < 0 {
		y = 0
	} else if y > last {
		y = last
	}
	return float32(p.grid.At(x, y)) * p.heightScale
}

// Construct fills the vertex and index buffers from the current grid heights.
func (p *Plane) Construct() *Mesh {
	var size = p.grid.Size
	var vertices = p.m.Vertices
	var centre = float32(size-1) / 2
	var uvScale float32 = 1
	if size > 1 {
		uvScale = 1 / float32(size-1)
	}

	vertIndex := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// Central differences give the surface normal.
			var dx = p.height(x+1, y) - p.height(x-1, y)
			var dy = p.height(x, y+1) - p.height(x, y-1)
			var dxv = mgl32.Vec3{2 * p.spacing, dx, 0}
			var dyv = mgl32.Vec3{0, dy, 2 * p.spacing}
			var normal = dyv.Cross(dxv).Normalize()

			vertices[vertIndex+0] = (float32(x) - centre) * p.spacing
			vertices[vertIndex+1] = p.height(x, y)
			vertices[vertIndex+2] = (float32(y) - centre) * p.spacing
			vertices[vertIndex+3] = normal.X()
			vertices[vertIndex+4] = normal.Y()
			vertices[vertIndex+5] = normal.Z()
			vertices[vertIndex+6] = float32(x) * uvScale
			vertices[vertIndex+7] = float32(y) * uvScale
			vertIndex += stride
		}
	}

	var indices = p.m.Indices
	var i = 0
	for r := 0; r < size-1; r++ {
		for c := 0; c < size-1; c++ {
			index := r*size + c
			indices[i] = uint32(index + size + 1)
			indices[i+1] = uint32(index + 1)
			indices[i+2] = uint32(index)

			indices[i+3] = uint32(index + size)
			indices[i+4] = uint32(index + size + 1)
			indices[i+5] = uint32(index)
			i += 6
		}
	}
	return &p.m
}
