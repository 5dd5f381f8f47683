package shader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/vertex"
)

// GeneratedHeader is the first line of every generated declaration.
const GeneratedHeader = "// Code generated by vertexgen. DO NOT EDIT."

// Option configures code generation.
type Option func(*genOptions)

type genOptions struct {
	structName string
	guard      string
}

// WithStructName overrides the generated struct name.
// Defaults: VertexInput for WGSL, Vertex for Metal.
func WithStructName(name string) Option {
	return func(o *genOptions) {
		o.structName = name
	}
}

// WithGuard overrides the include guard of the Metal header.
// Default: VERTEX_TYPES_H.
func WithGuard(guard string) Option {
	return func(o *genOptions) {
		o.guard = guard
	}
}

func applyOptions(defaultName string, opts []Option) genOptions {
	o := genOptions{structName: defaultName, guard: "VERTEX_TYPES_H"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.structName == "" {
		o.structName = defaultName
	}
	return o
}

// VertexInputWGSL returns the WGSL struct declaring attrs as vertex stage
// inputs, one @location per attribute in table order.
//
// Example output for the default table:
//
//	struct VertexInput {
//	    @location(0) position: vec2<f32>,
//	    @location(1) color: vec4<f32>,
//	    @location(2) tex_coord: vec2<f32>,
//	}
func VertexInputWGSL(attrs []vertex.Attribute, opts ...Option) string {
	o := applyOptions("VertexInput", opts)

	var b strings.Builder
	b.WriteString(GeneratedHeader)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "struct %s {\n", o.structName)
	for _, a := range attrs {
		fmt.Fprintf(&b, "    @location(%d) %s: %s,\n", a.Location, a.Name, wgslType(a.Components))
	}
	b.WriteString("}\n")
	return b.String()
}

func wgslType(components int) string {
	if components == 1 {
		return "f32"
	}
	return fmt.Sprintf("vec%d<f32>", components)
}

// MetalHeader returns a C header declaring attrs as a struct that both
// Metal shaders and host C/Objective-C/Swift code can include.
//
// Vectors use the packed types. The simd vector types are aligned to
// their size rounded up to a power of two (float4 to 16 bytes), which
// would insert padding after position and give a 48-byte stride instead
// of 32.
func MetalHeader(attrs []vertex.Attribute, opts ...Option) string {
	o := applyOptions("Vertex", opts)

	var counts []int
	for _, a := range attrs {
		if a.Components > 1 && !slices.Contains(counts, a.Components) {
			counts = append(counts, a.Components)
		}
	}
	slices.Sort(counts)

	var size uint64
	for _, a := range attrs {
		size += a.Size()
	}

	var b strings.Builder
	b.WriteString(GeneratedHeader)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "#ifndef %s\n#define %s\n\n", o.guard, o.guard)

	b.WriteString("#ifdef __METAL_VERSION__\n")
	b.WriteString("#include <metal_stdlib>\n")
	for _, n := range counts {
		fmt.Fprintf(&b, "typedef metal::packed_float%d vertex_float%d;\n", n, n)
	}
	b.WriteString("#else\n")
	b.WriteString("#include <simd/simd.h>\n")
	for _, n := range counts {
		fmt.Fprintf(&b, "typedef simd_packed_float%d vertex_float%d;\n", n, n)
	}
	b.WriteString("#endif\n\n")

	b.WriteString("typedef struct {\n")
	for _, a := range attrs {
		fmt.Fprintf(&b, "    %s %s;\n", metalType(a.Components), camelCase(a.Name))
	}
	fmt.Fprintf(&b, "} %s;\n\n", o.structName)

	b.WriteString("#ifdef __METAL_VERSION__\n")
	fmt.Fprintf(&b, "static_assert(sizeof(%s) == %d, \"%s must be %d bytes\");\n", o.structName, size, o.structName, size)
	b.WriteString("#else\n")
	fmt.Fprintf(&b, "_Static_assert(sizeof(%s) == %d, \"%s must be %d bytes\");\n", o.structName, size, o.structName, size)
	b.WriteString("#endif\n\n")

	fmt.Fprintf(&b, "#endif /* %s */\n", o.guard)
	return b.String()
}

func metalType(components int) string {
	if components == 1 {
		return "float"
	}
	return fmt.Sprintf("vertex_float%d", components)
}

// camelCase converts tex_coord to texCoord.
func camelCase(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
