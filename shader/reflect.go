package shader

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// ErrEntryPointNotFound is returned when the requested vertex entry point
// does not exist in the module.
var ErrEntryPointNotFound = errors.New("shader: vertex entry point not found")

// ScalarKind is the component kind of a vertex input.
type ScalarKind uint8

// Scalar kinds of vertex inputs. Vertex buffers hold no booleans.
const (
	Float ScalarKind = iota
	Sint
	Uint
)

// Input is one user-defined input of a vertex stage.
type Input struct {
	// Name is the argument or struct member name.
	Name string

	// Location is the @location slot of the input.
	Location uint32

	// Components is 1 for scalars, otherwise the vector size.
	Components int

	// Width is the component width in bits.
	Width int

	Kind ScalarKind
}

// Type returns the WGSL spelling of the input type.
func (in Input) Type() string {
	var scalar string
	switch in.Kind {
	case Sint:
		scalar = fmt.Sprintf("i%d", in.Width)
	case Uint:
		scalar = fmt.Sprintf("u%d", in.Width)
	default:
		scalar = fmt.Sprintf("f%d", in.Width)
	}
	if in.Components == 1 {
		return scalar
	}
	return fmt.Sprintf("vec%d<%s>", in.Components, scalar)
}

// ReflectWGSL parses and lowers WGSL source with naga and lists the
// inputs of its vertex entry point named entryPoint.
func ReflectWGSL(wgslSource, entryPoint string) ([]Input, error) {
	ast, err := naga.Parse(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("parse shader: %w", err)
	}
	module, err := naga.LowerWithSource(ast, wgslSource)
	if err != nil {
		return nil, fmt.Errorf("lower shader: %w", err)
	}
	return Reflect(module, entryPoint)
}

// Reflect lists the user-defined inputs of the vertex entry point named
// entryPoint, ordered by location. Inputs are read from plain arguments
// and from the members of struct arguments. Built-in inputs such as
// vertex_index are skipped.
func Reflect(module *ir.Module, entryPoint string) ([]Input, error) {
	ep, ok := findVertexEntry(module, entryPoint)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrEntryPointNotFound, entryPoint)
	}

	var inputs []Input
	add := func(name string, binding *ir.Binding, th ir.TypeHandle) error {
		switch b := (*binding).(type) {
		case ir.BuiltinBinding:
			return nil
		case ir.LocationBinding:
			in, err := describe(module, th)
			if err != nil {
				return fmt.Errorf("shader: input %q of %q: %w", name, entryPoint, err)
			}
			in.Name = name
			in.Location = b.Location
			inputs = append(inputs, in)
			return nil
		default:
			return fmt.Errorf("shader: input %q of %q has unsupported binding %T", name, entryPoint, b)
		}
	}

	for _, arg := range ep.Function.Arguments {
		if arg.Binding != nil {
			if err := add(arg.Name, arg.Binding, arg.Type); err != nil {
				return nil, err
			}
			continue
		}
		st, ok := typeInner(module, arg.Type).(ir.StructType)
		if !ok {
			return nil, fmt.Errorf("shader: input %q of %q has no location", arg.Name, entryPoint)
		}
		for _, m := range st.Members {
			if m.Binding == nil {
				return nil, fmt.Errorf("shader: input %q of %q has no location", m.Name, entryPoint)
			}
			if err := add(m.Name, m.Binding, m.Type); err != nil {
				return nil, err
			}
		}
	}

	slices.SortFunc(inputs, func(a, b Input) int {
		return int(a.Location) - int(b.Location)
	})
	return inputs, nil
}

func findVertexEntry(module *ir.Module, name string) (*ir.EntryPoint, bool) {
	if module == nil {
		return nil, false
	}
	for i := range module.EntryPoints {
		ep := &module.EntryPoints[i]
		if ep.Name == name && ep.Stage == ir.StageVertex {
			return ep, true
		}
	}
	return nil, false
}

func typeInner(module *ir.Module, th ir.TypeHandle) ir.TypeInner {
	if int(th) >= len(module.Types) {
		return nil
	}
	return module.Types[th].Inner
}

// describe resolves a scalar or vector input type.
func describe(module *ir.Module, th ir.TypeHandle) (Input, error) {
	in := Input{Components: 1}
	var s ir.ScalarType
	switch t := typeInner(module, th).(type) {
	case ir.ScalarType:
		s = t
	case ir.VectorType:
		in.Components = int(t.Size)
		s = t.Scalar
	default:
		return Input{}, fmt.Errorf("unsupported type %T", t)
	}

	switch s.Kind {
	case ir.ScalarFloat:
		in.Kind = Float
	case ir.ScalarSint:
		in.Kind = Sint
	case ir.ScalarUint:
		in.Kind = Uint
	default:
		return Input{}, fmt.Errorf("unsupported scalar kind %d", s.Kind)
	}
	in.Width = 8 * int(s.Width)
	return in, nil
}
