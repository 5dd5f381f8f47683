// Package shader holds the shader-side declaration of the vertex record
// and the tooling that keeps it in agreement with the Go declaration:
// code generation from the attribute table, WGSL compilation via naga,
// and a reflection pass over naga's IR that compares a vertex stage's
// inputs against the host layout.
package shader

//go:generate go run ../cmd/vertexgen -wgsl shaders/vertex_input.wgsl -metal shaders/vertex_types.h

import (
	_ "embed"
)

// Entry point names in the bundled shader.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Bind group 0 bindings used by the fragment stage.
const (
	TextureBinding = 0
	SamplerBinding = 1
)

//go:embed shaders/vertex_input.wgsl
var vertexInputSource string

//go:embed shaders/textured.wgsl
var texturedSource string

//go:embed shaders/vertex_types.h
var metalHeaderSource string

// Source returns the complete WGSL module: the generated VertexInput
// declaration followed by the textured vertex and fragment stages.
func Source() string {
	return vertexInputSource + "\n" + texturedSource
}

// VertexInputSource returns the checked-in generated VertexInput struct.
func VertexInputSource() string {
	return vertexInputSource
}

// MetalHeaderSource returns the checked-in generated Metal header.
func MetalHeaderSource() string {
	return metalHeaderSource
}
