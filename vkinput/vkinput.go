// Package vkinput describes the vertex record to a Vulkan pipeline.
// Binding and attribute descriptions are derived from the same attribute
// table as the WebGPU buffer layout.
package vkinput

import (
	"fmt"

	"github.com/gogpu/gputypes"
	vk "github.com/goki/vulkan"

	"github.com/gogpu/vertex"
)

// Format returns the Vulkan format for a vertex attribute format.
func Format(f gputypes.VertexFormat) (vk.Format, error) {
	switch f {
	case gputypes.VertexFormatFloat32:
		return vk.FormatR32Sfloat, nil
	case gputypes.VertexFormatFloat32x2:
		return vk.FormatR32g32Sfloat, nil
	case gputypes.VertexFormatFloat32x3:
		return vk.FormatR32g32b32Sfloat, nil
	case gputypes.VertexFormatFloat32x4:
		return vk.FormatR32g32b32a32Sfloat, nil
	default:
		return vk.FormatUndefined, fmt.Errorf("vkinput: unsupported vertex format %v", f)
	}
}

// BindingDescription describes one buffer of vertex records at binding,
// advancing one record per vertex.
func BindingDescription(binding uint32) vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Binding:   binding,
		Stride:    vertex.Stride,
		InputRate: vk.VertexInputRateVertex,
	}
}

// AttributeDescriptions returns one description per vertex attribute,
// in location order, all reading from binding.
func AttributeDescriptions(binding uint32) []vk.VertexInputAttributeDescription {
	attrs := vertex.Attributes()
	out := make([]vk.VertexInputAttributeDescription, len(attrs))
	for i, a := range attrs {
		// The table only holds float32 formats, all of which map.
		format, _ := Format(a.Format)
		out[i] = vk.VertexInputAttributeDescription{
			Location: a.Location,
			Binding:  binding,
			Format:   format,
			Offset:   uint32(a.Offset),
		}
	}
	return out
}

// InputState returns the pipeline vertex input state for a single
// binding of vertex records.
func InputState(binding uint32) vk.PipelineVertexInputStateCreateInfo {
	attrs := AttributeDescriptions(binding)
	return vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   1,
		PVertexBindingDescriptions:      []vk.VertexInputBindingDescription{BindingDescription(binding)},
		VertexAttributeDescriptionCount: uint32(len(attrs)),
		PVertexAttributeDescriptions:    attrs,
	}
}
