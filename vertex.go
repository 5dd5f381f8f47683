package vertex

import (
	"image/color"
	"unsafe"

	"golang.org/x/image/math/f32"
)

// Vertex is one point of a primitive as the vertex stage reads it.
// Matches the VertexInput struct in shader/shaders/vertex_input.wgsl.
//
// The layout is fixed: position, color, texture coordinate, eight float32
// components with no padding. Do not reorder or add fields; the shader
// indexes attributes by byte offset, not by name.
type Vertex struct {
	// Position in the pipeline's coordinate space (clip space for the
	// bundled shader).
	Position f32.Vec2

	// Color as RGBA. Not clamped.
	Color f32.Vec4

	// TexCoord is the normalized (u, v) sample coordinate. Not clamped.
	TexCoord f32.Vec2
}

// Layout constants for Vertex. They are checked against the compiler's
// layout below, so a field change that moves an offset fails the build.
const (
	// ComponentSize is the width of one float32 component in bytes.
	ComponentSize = 4

	// Size is the size of one Vertex in bytes.
	Size = 8 * ComponentSize

	// Stride is the distance between consecutive vertices in a buffer.
	Stride = Size

	PositionOffset = 0
	ColorOffset    = PositionOffset + 2*ComponentSize
	TexCoordOffset = ColorOffset + 4*ComponentSize
)

// Compile-time layout assertions. Each index is a constant that must be
// zero; any other value is an out-of-range (or overflow) compile error.
var (
	_ = [1]struct{}{}[unsafe.Sizeof(Vertex{})-Size]
	_ = [1]struct{}{}[Size-unsafe.Sizeof(Vertex{})]
	_ = [1]struct{}{}[unsafe.Offsetof(Vertex{}.Position)-PositionOffset]
	_ = [1]struct{}{}[unsafe.Offsetof(Vertex{}.Color)-ColorOffset]
	_ = [1]struct{}{}[unsafe.Offsetof(Vertex{}.TexCoord)-TexCoordOffset]
	_ = [1]struct{}{}[unsafe.Sizeof(float32(0))-ComponentSize]
)

// New returns a vertex with all three attributes set.
func New(position f32.Vec2, rgba f32.Vec4, texCoord f32.Vec2) Vertex {
	return Vertex{Position: position, Color: rgba, TexCoord: texCoord}
}

// FromColor builds a vertex from a standard library color.
// The color is converted to straight (non-premultiplied) alpha in [0, 1].
func FromColor(position f32.Vec2, c color.Color, texCoord f32.Vec2) Vertex {
	return Vertex{Position: position, Color: ColorVec(c), TexCoord: texCoord}
}

// ColorVec converts c to straight-alpha float RGBA.
func ColorVec(c color.Color) f32.Vec4 {
	if c == nil {
		return f32.Vec4{}
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return f32.Vec4{}
	}
	fa := float32(a)
	return f32.Vec4{
		float32(r) / fa,
		float32(g) / fa,
		float32(b) / fa,
		fa / 0xffff,
	}
}
