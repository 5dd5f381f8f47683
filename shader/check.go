package shader

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/vertex"
)

// MismatchError reports one disagreement between the host vertex layout
// and a shader's vertex inputs.
type MismatchError struct {
	Location  uint32
	Attribute string // host attribute name, empty if the host has none
	Host      string // host type, empty if missing
	Shader    string // shader type, empty if missing
}

func (e *MismatchError) Error() string {
	switch {
	case e.Shader == "":
		return fmt.Sprintf("shader: location %d (%s): %s provided by the vertex buffer is not read by the shader",
			e.Location, e.Attribute, e.Host)
	case e.Host == "":
		return fmt.Sprintf("shader: location %d: shader reads %s but the vertex buffer has no attribute there",
			e.Location, e.Shader)
	default:
		return fmt.Sprintf("shader: location %d (%s): vertex buffer provides %s, shader reads %s",
			e.Location, e.Attribute, e.Host, e.Shader)
	}
}

// CheckLayout compares reflected shader inputs with host attributes.
// Every attribute must be read by the shader at the same location with
// the same component count as 32-bit floats, and the shader must read no
// location the host does not provide. All mismatches are reported, joined
// with errors.Join and ordered by location.
func CheckLayout(inputs []Input, attrs []vertex.Attribute) error {
	byLoc := make(map[uint32]Input, len(inputs))
	for _, in := range inputs {
		byLoc[in.Location] = in
	}

	var errs []*MismatchError
	seen := make(map[uint32]bool, len(attrs))
	for _, a := range attrs {
		seen[a.Location] = true
		host := hostType(a)
		in, ok := byLoc[a.Location]
		if !ok {
			errs = append(errs, &MismatchError{Location: a.Location, Attribute: a.Name, Host: host})
			continue
		}
		if in.Components != a.Components || in.Width != 8*vertex.ComponentSize || in.Kind != Float {
			errs = append(errs, &MismatchError{Location: a.Location, Attribute: a.Name, Host: host, Shader: in.Type()})
		}
	}
	for _, in := range inputs {
		if !seen[in.Location] {
			errs = append(errs, &MismatchError{Location: in.Location, Shader: in.Type()})
		}
	}
	if len(errs) == 0 {
		return nil
	}

	slices.SortStableFunc(errs, func(a, b *MismatchError) int {
		return int(a.Location) - int(b.Location)
	})
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}

func hostType(a vertex.Attribute) string {
	return Input{Components: a.Components, Width: 8 * vertex.ComponentSize, Kind: Float}.Type()
}

// Validate compiles a WGSL module to SPIR-V and checks the inputs of its
// vs_main entry point, as lowered by naga, against the vertex record
// layout.
func Validate(wgslSource string) error {
	return ValidateEntryPoint(wgslSource, VertexEntryPoint)
}

// ValidateEntryPoint is Validate for a named vertex entry point.
func ValidateEntryPoint(wgslSource, entryPoint string) error {
	if _, err := CompileSPIRV(wgslSource); err != nil {
		return err
	}
	inputs, err := ReflectWGSL(wgslSource, entryPoint)
	if err != nil {
		return err
	}

	log := vertex.Logger()
	for _, in := range inputs {
		log.Debug("shader: vertex input", "entry", entryPoint, "location", in.Location, "name", in.Name, "type", in.Type())
	}

	if err := CheckLayout(inputs, vertex.Attributes()); err != nil {
		log.Warn("shader: vertex layout mismatch", "entry", entryPoint, "error", err)
		return err
	}
	return nil
}
