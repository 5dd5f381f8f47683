package vertex

import (
	"fmt"
	"reflect"

	"github.com/gogpu/gputypes"
)

// Attribute describes one field of Vertex as the pipeline binds it.
type Attribute struct {
	// Name is the shader-side field name.
	Name string

	// Location is the shader input slot (@location in WGSL).
	Location uint32

	// Format is the WebGPU vertex format of the field.
	Format gputypes.VertexFormat

	// Offset is the byte offset of the field within Vertex.
	Offset uint64

	// Components is the number of float32 components.
	Components int

	field string
}

// attributes is the canonical layout table. Everything else (GPU buffer
// layouts, Vulkan descriptions, generated shader declarations) derives
// from it.
var attributes = [...]Attribute{
	{Name: "position", Location: 0, Format: gputypes.VertexFormatFloat32x2, Offset: PositionOffset, Components: 2, field: "Position"},
	{Name: "color", Location: 1, Format: gputypes.VertexFormatFloat32x4, Offset: ColorOffset, Components: 4, field: "Color"},
	{Name: "tex_coord", Location: 2, Format: gputypes.VertexFormatFloat32x2, Offset: TexCoordOffset, Components: 2, field: "TexCoord"},
}

// Attributes returns the vertex attributes in field order.
// The returned slice is a copy and may be modified by the caller.
func Attributes() []Attribute {
	out := make([]Attribute, len(attributes))
	copy(out, attributes[:])
	return out
}

// Size returns the attribute size in bytes.
func (a Attribute) Size() uint64 {
	return uint64(a.Components) * ComponentSize
}

// String implements fmt.Stringer.
func (a Attribute) String() string {
	return fmt.Sprintf("@location(%d) %s: %d x f32 @ +%d", a.Location, a.Name, a.Components, a.Offset)
}

// BufferLayout returns the vertex buffer layout for a buffer of Vertex
// records, one record per vertex.
func BufferLayout() gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(attributes))
	for i, a := range attributes {
		attrs[i] = gputypes.VertexAttribute{
			Format:         a.Format,
			Offset:         a.Offset,
			ShaderLocation: a.Location,
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: Stride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// CheckHostLayout compares the attribute table with the Go layout of
// Vertex as reported by reflection. It returns nil when the table covers
// every field in order, with matching offsets and sizes, and the fields
// tile the struct without gaps.
func CheckHostLayout() error {
	t := reflect.TypeOf(Vertex{})
	if t.Size() != Size {
		return fmt.Errorf("vertex: size is %d, want %d", t.Size(), Size)
	}
	if t.NumField() != len(attributes) {
		return fmt.Errorf("vertex: %d fields, attribute table has %d", t.NumField(), len(attributes))
	}

	var next uint64
	for i, a := range attributes {
		f := t.Field(i)
		if f.Name != a.field {
			return fmt.Errorf("vertex: field %d is %s, attribute table expects %s", i, f.Name, a.field)
		}
		if f.Type.Kind() != reflect.Array || f.Type.Elem().Kind() != reflect.Float32 {
			return fmt.Errorf("vertex: field %s is %s, want a float32 array", f.Name, f.Type)
		}
		if f.Type.Len() != a.Components {
			return fmt.Errorf("vertex: field %s has %d components, attribute %q has %d",
				f.Name, f.Type.Len(), a.Name, a.Components)
		}
		if uint64(f.Offset) != a.Offset {
			return fmt.Errorf("vertex: field %s at offset %d, attribute %q at %d",
				f.Name, f.Offset, a.Name, a.Offset)
		}
		if a.Offset != next {
			return fmt.Errorf("vertex: %d padding bytes before %s", a.Offset-next, f.Name)
		}
		if a.Location != uint32(i) {
			return fmt.Errorf("vertex: attribute %q at location %d, want %d", a.Name, a.Location, i)
		}
		next = a.Offset + a.Size()
	}
	if next != Size {
		return fmt.Errorf("vertex: %d trailing padding bytes", Size-next)
	}
	return nil
}
