// Package gpu hands vertex data to a WebGPU HAL device: it uploads vertex
// and index buffers, creates the shader module for the bundled shader,
// and describes the vertex stage input for pipeline creation.
//
// Pipeline creation, command encoding and submission are left to the
// caller.
package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vertex"
	"github.com/gogpu/vertex/mesh"
	"github.com/gogpu/vertex/shader"
	"github.com/gogpu/wgpu/hal"
)

// copyAlignment is the required size alignment for buffer writes.
const copyAlignment = 4

// ErrEmpty is returned when there is nothing to upload.
var ErrEmpty = errors.New("gpu: no vertices to upload")

// UploadVertices creates a vertex buffer holding vs and writes the data
// through queue. The buffer is n*vertex.Stride bytes.
func UploadVertices(device hal.Device, queue hal.Queue, label string, vs []vertex.Vertex) (hal.Buffer, error) {
	if len(vs) == 0 {
		return nil, ErrEmpty
	}
	data := vertex.AsBytes(vs)
	vertex.Logger().Debug("gpu: upload vertices", "label", label, "count", len(vs), "bytes", len(data))
	return createAndUpload(device, queue, label, data,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
}

// MeshBuffers holds the GPU buffers of an uploaded mesh.
type MeshBuffers struct {
	Vertices    hal.Buffer
	Indices     hal.Buffer
	VertexCount uint32
	IndexCount  uint32
	IndexFormat gputypes.IndexFormat
}

// UploadMesh validates m and uploads its vertex and index buffers.
// The index buffer is padded to a multiple of 4 bytes.
func UploadMesh(device hal.Device, queue hal.Queue, label string, m mesh.Mesh) (*MeshBuffers, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(m.Indices) == 0 {
		return nil, fmt.Errorf("gpu: mesh %q has no indices", label)
	}

	vb, err := UploadVertices(device, queue, label+"_vertices", m.Vertices)
	if err != nil {
		return nil, err
	}

	data := m.IndexBytes()
	if pad := len(data) % copyAlignment; pad != 0 {
		data = append(data, make([]byte, copyAlignment-pad)...)
	}
	ib, err := createAndUpload(device, queue, label+"_indices", data,
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		device.DestroyBuffer(vb)
		return nil, err
	}

	return &MeshBuffers{
		Vertices:    vb,
		Indices:     ib,
		VertexCount: uint32(len(m.Vertices)), //nolint:gosec // bounded by mesh.MaxVertices
		IndexCount:  uint32(len(m.Indices)),  //nolint:gosec // slice length
		IndexFormat: gputypes.IndexFormatUint16,
	}, nil
}

// Destroy releases both buffers. Safe to call more than once.
func (b *MeshBuffers) Destroy(device hal.Device) {
	if b.Vertices != nil {
		device.DestroyBuffer(b.Vertices)
		b.Vertices = nil
	}
	if b.Indices != nil {
		device.DestroyBuffer(b.Indices)
		b.Indices = nil
	}
}

// createAndUpload creates a GPU buffer and uploads data.
func createAndUpload(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// CreateShaderModule creates the module for the bundled textured shader.
func CreateShaderModule(device hal.Device, label string) (hal.ShaderModule, error) {
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{WGSL: shader.Source()},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module %s: %w", label, err)
	}
	return module, nil
}

// VertexState describes the vertex stage of a pipeline reading one
// buffer of vertex records through the bundled shader's vs_main.
func VertexState(module hal.ShaderModule) hal.VertexState {
	return hal.VertexState{
		Module:     module,
		EntryPoint: shader.VertexEntryPoint,
		Buffers:    []gputypes.VertexBufferLayout{vertex.BufferLayout()},
	}
}
