package core

import (
	"bufio"
	"fmt"
	"io"
)

// Vertex layout: position (3), normal (3), texcoord (2).
const stride = 8

type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / stride
}

// WriteOBJ writes the mesh as a Wavefront OBJ document.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < len(m.Vertices); i += stride {
		v := m.Vertices[i : i+stride]
		fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2])
		fmt.Fprintf(bw, "vn %g %g %g\n", v[3], v[4], v[5])
		fmt.Fprintf(bw, "vt %g %g\n", v[6], v[7])
	}
	// OBJ indices are 1-based.
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}
