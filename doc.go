// Package vertex defines the per-vertex record shared by host Go code and
// the GPU vertex stage.
//
// # Overview
//
// A Vertex is eight float32 components laid out without padding:
//
//	offset  0  position  vec2<f32>  @location(0)
//	offset  8  color     vec4<f32>  @location(1)
//	offset 24  tex_coord vec2<f32>  @location(2)
//	stride 32
//
// A slice of vertices can be handed to the GPU as-is with AsBytes, or
// encoded portably with Encode. Decode and At read records back by
// base + i*Stride.
//
// # Keeping both sides in agreement
//
// A layout mismatch between host and shader does not fail; it renders
// wrong colors or misplaced geometry. The Go struct is the single source
// of truth:
//
//   - the package does not compile if the struct's size or field offsets
//     drift from the declared constants
//   - Attributes and BufferLayout derive every binding from one table
//   - package shader generates the WGSL VertexInput struct and a Metal/C
//     header from that table (go generate ./shader)
//   - shader.Validate compiles a WGSL module with naga and compares the
//     reflected vertex inputs with the table
//
// # Coordinate conventions
//
// The record does not clamp or transform values. The bundled shader
// treats Position as clip space and TexCoord as a top-left origin (0..1)
// sample coordinate; other pipelines may choose differently.
//
// # Sub-packages
//
//   - mesh: indexed triangle lists (triangles, quads)
//   - shader: code generation, WGSL compilation, layout validation
//   - gpu: buffer upload and vertex state for a wgpu HAL device
//   - vkinput: Vulkan vertex input descriptions
//   - cmd/vertexgen: generator for the shader-side declarations
package vertex

// Version is the library version reported by cmd/vertexgen.
const Version = "0.1.0"
