// Package mesh builds ordered vertex and index lists for the vertex
// record defined in the root package.
//
// Vertex order is preserved exactly as added; the GPU assembles
// triangles from it (triangle list topology, counter-clockwise front
// faces in y-up coordinates).
package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/vertex"
	"golang.org/x/image/math/f32"
)

// MaxVertices is the largest vertex count addressable by uint16 indices.
const MaxVertices = math.MaxUint16 + 1

var (
	// ErrIndexCount is returned when the index count is not a multiple of 3.
	ErrIndexCount = errors.New("mesh: index count is not a multiple of 3")

	// ErrIndexRange is returned when an index refers past the vertex list.
	ErrIndexRange = errors.New("mesh: index out of range")

	// ErrTooManyVertices is returned when a mesh outgrows uint16 indices.
	ErrTooManyVertices = errors.New("mesh: too many vertices for uint16 indices")
)

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []vertex.Vertex
	Indices  []uint16
}

// Triangle returns a mesh of one triangle with indices 0, 1, 2.
func Triangle(a, b, c vertex.Vertex) Mesh {
	return Mesh{
		Vertices: []vertex.Vertex{a, b, c},
		Indices:  []uint16{0, 1, 2},
	}
}

// Quad returns a textured rectangle spanning lo to hi in y-up
// coordinates. Colors are given per corner in the order bottom-left,
// bottom-right, top-right, top-left.
//
// Texture coordinates use a top-left origin, so the top edge samples
// v = 0 and the bottom edge v = 1. Indices are 0,1,2, 2,3,0.
func Quad(lo, hi f32.Vec2, colors [4]f32.Vec4) Mesh {
	return Mesh{
		Vertices: []vertex.Vertex{
			vertex.New(f32.Vec2{lo[0], lo[1]}, colors[0], f32.Vec2{0, 1}),
			vertex.New(f32.Vec2{hi[0], lo[1]}, colors[1], f32.Vec2{1, 1}),
			vertex.New(f32.Vec2{hi[0], hi[1]}, colors[2], f32.Vec2{1, 0}),
			vertex.New(f32.Vec2{lo[0], hi[1]}, colors[3], f32.Vec2{0, 0}),
		},
		Indices: quadIndices(1),
	}
}

// SolidQuad is Quad with the same color at every corner.
func SolidQuad(lo, hi f32.Vec2, c f32.Vec4) Mesh {
	return Quad(lo, hi, [4]f32.Vec4{c, c, c, c})
}

// quadIndices generates index data for n quads laid out four vertices
// each: 0,1,2, 2,3,0 per quad.
func quadIndices(n int) []uint16 {
	indices := make([]uint16, n*6)
	for i := 0; i < n; i++ {
		base := i * 6
		v := uint16(i * 4) //nolint:gosec // callers bound n by MaxVertices/4

		indices[base+0] = v + 0
		indices[base+1] = v + 1
		indices[base+2] = v + 2

		indices[base+3] = v + 2
		indices[base+4] = v + 3
		indices[base+5] = v + 0
	}
	return indices
}

// Append adds other's vertices after m's and rebases other's indices.
func (m *Mesh) Append(other Mesh) error {
	base := len(m.Vertices)
	if base+len(other.Vertices) > MaxVertices {
		return fmt.Errorf("%w: %d", ErrTooManyVertices, base+len(other.Vertices))
	}
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, uint16(base+int(idx))) //nolint:gosec // bounded above
	}
	return nil
}

// Validate checks that m is a well-formed triangle list.
func (m Mesh) Validate() error {
	if len(m.Vertices) > MaxVertices {
		return fmt.Errorf("%w: %d", ErrTooManyVertices, len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d", ErrIndexCount, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d is %d, mesh has %d vertices",
				ErrIndexRange, i, idx, len(m.Vertices))
		}
	}
	return nil
}

// VertexBytes returns the vertex buffer contents.
func (m Mesh) VertexBytes() []byte {
	return vertex.Encode(m.Vertices)
}

// IndexBytes returns the index buffer contents as little-endian uint16.
func (m Mesh) IndexBytes() []byte {
	if len(m.Indices) == 0 {
		return nil
	}
	data := make([]byte, len(m.Indices)*2)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}

// Triangles returns the number of triangles in m.
func (m Mesh) Triangles() int {
	return len(m.Indices) / 3
}
