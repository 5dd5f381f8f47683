package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/naga/ir"
)

// mixedInputs reads two locations through a struct, two as plain
// arguments (one an unsigned vector) and skips two built-ins.
const mixedInputs = `
struct In {
    @location(2) uv: vec2<f32>,
    @builtin(vertex_index) index: u32,
    @location(0) position: vec2<f32>,
}

struct Out {
    @builtin(position) clip: vec4<f32>,
}

@vertex
fn vs_main(input: In, @location(1) color: vec4<f32>, @location(3) id: vec4<u32>, @builtin(instance_index) instance: u32) -> Out {
    var output: Out;
    output.clip = vec4<f32>(input.position, 0.0, 1.0);
    return output;
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 1.0, 1.0, 1.0);
}
`

func TestReflectWGSL(t *testing.T) {
	inputs, err := ReflectWGSL(mixedInputs, "vs_main")
	if err != nil {
		t.Fatal(err)
	}
	want := []Input{
		{Name: "position", Location: 0, Components: 2, Width: 32, Kind: Float},
		{Name: "color", Location: 1, Components: 4, Width: 32, Kind: Float},
		{Name: "uv", Location: 2, Components: 2, Width: 32, Kind: Float},
		{Name: "id", Location: 3, Components: 4, Width: 32, Kind: Uint},
	}
	if len(inputs) != len(want) {
		t.Fatalf("got %d inputs %+v, want %d", len(inputs), inputs, len(want))
	}
	for i := range want {
		if inputs[i] != want[i] {
			t.Errorf("input %d = %+v, want %+v", i, inputs[i], want[i])
		}
	}
}

func TestReflectBundledShader(t *testing.T) {
	inputs, err := ReflectWGSL(Source(), VertexEntryPoint)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"position", "color", "tex_coord"}
	if len(inputs) != len(want) {
		t.Fatalf("got %d inputs %+v, want %d", len(inputs), inputs, len(want))
	}
	for i, name := range want {
		if inputs[i].Name != name || inputs[i].Location != uint32(i) {
			t.Errorf("input %d = %+v, want %s at location %d", i, inputs[i], name, i)
		}
	}
}

func TestReflectErrors(t *testing.T) {
	if _, err := Reflect(nil, "vs_main"); !errors.Is(err, ErrEntryPointNotFound) {
		t.Errorf("nil module: err = %v, want ErrEntryPointNotFound", err)
	}

	// fs_main exists but is not a vertex entry point.
	if _, err := ReflectWGSL(mixedInputs, "fs_main"); !errors.Is(err, ErrEntryPointNotFound) {
		t.Errorf("fragment entry: err = %v, want ErrEntryPointNotFound", err)
	}
	if _, err := ReflectWGSL(mixedInputs, "main"); !errors.Is(err, ErrEntryPointNotFound) {
		t.Errorf("missing entry: err = %v, want ErrEntryPointNotFound", err)
	}

	if _, err := ReflectWGSL("fn broken( {", "vs_main"); err == nil {
		t.Error("expected parse error")
	}
	if _, err := ReflectWGSL(strings.Replace(mixedInputs, "input: In", "input: Missing", 1), "vs_main"); err == nil {
		t.Error("expected lowering error for unknown type")
	}
}

func TestReflectModule(t *testing.T) {
	const (
		tF32 ir.TypeHandle = iota
		tVec3
		tBool
		tStruct
	)
	loc := func(n uint32) *ir.Binding {
		var b ir.Binding = ir.LocationBinding{Location: n}
		return &b
	}
	module := &ir.Module{
		Types: []ir.Type{
			tF32:  {Inner: ir.ScalarType{Kind: ir.ScalarFloat, Width: 4}},
			tVec3: {Inner: ir.VectorType{Size: ir.Vec3, Scalar: ir.ScalarType{Kind: ir.ScalarSint, Width: 4}}},
			tBool: {Inner: ir.ScalarType{Kind: ir.ScalarBool, Width: 1}},
			tStruct: {Name: "In", Inner: ir.StructType{Members: []ir.StructMember{
				{Name: "weight", Type: tF32, Binding: loc(1)},
				{Name: "bare", Type: tF32},
			}}},
		},
	}
	entry := func(args ...ir.FunctionArgument) {
		module.EntryPoints = []ir.EntryPoint{{
			Name:     "vs_main",
			Stage:    ir.StageVertex,
			Function: ir.Function{Name: "vs_main", Arguments: args},
		}}
	}

	entry(
		ir.FunctionArgument{Name: "weight", Type: tF32, Binding: loc(1)},
		ir.FunctionArgument{Name: "cell", Type: tVec3, Binding: loc(0)},
	)
	inputs, err := Reflect(module, "vs_main")
	if err != nil {
		t.Fatal(err)
	}
	want := []Input{
		{Name: "cell", Location: 0, Components: 3, Width: 32, Kind: Sint},
		{Name: "weight", Location: 1, Components: 1, Width: 32, Kind: Float},
	}
	for i := range want {
		if i >= len(inputs) || inputs[i] != want[i] {
			t.Fatalf("inputs = %+v, want %+v", inputs, want)
		}
	}

	entry(ir.FunctionArgument{Name: "input", Type: tStruct})
	if _, err := Reflect(module, "vs_main"); err == nil || !strings.Contains(err.Error(), `"bare"`) {
		t.Errorf("struct member without location: err = %v", err)
	}

	entry(ir.FunctionArgument{Name: "raw", Type: tF32})
	if _, err := Reflect(module, "vs_main"); err == nil || !strings.Contains(err.Error(), "no location") {
		t.Errorf("argument without location: err = %v", err)
	}

	entry(ir.FunctionArgument{Name: "flag", Type: tBool, Binding: loc(0)})
	if _, err := Reflect(module, "vs_main"); err == nil {
		t.Error("expected error for boolean input")
	}
}

func TestInputType(t *testing.T) {
	tests := []struct {
		in   Input
		want string
	}{
		{Input{Components: 1, Width: 32, Kind: Float}, "f32"},
		{Input{Components: 2, Width: 32, Kind: Float}, "vec2<f32>"},
		{Input{Components: 4, Width: 16, Kind: Float}, "vec4<f16>"},
		{Input{Components: 3, Width: 32, Kind: Sint}, "vec3<i32>"},
		{Input{Components: 4, Width: 32, Kind: Uint}, "vec4<u32>"},
		{Input{Components: 1, Width: 32, Kind: Uint}, "u32"},
	}
	for _, tt := range tests {
		if got := tt.in.Type(); got != tt.want {
			t.Errorf("Type() = %q, want %q", got, tt.want)
		}
	}
}
