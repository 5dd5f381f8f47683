package shader

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

const spirvMagic = 0x07230203

// ErrNotSPIRV is returned when compiler output is not a SPIR-V module.
var ErrNotSPIRV = errors.New("shader: not a SPIR-V module")

// CompileSPIRV compiles WGSL source to SPIR-V words.
func CompileSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	code, err := words(spirvBytes)
	if err != nil {
		return nil, err
	}
	if len(code) < 5 || code[0] != spirvMagic {
		return nil, fmt.Errorf("%w: bad header", ErrNotSPIRV)
	}
	return code, nil
}

// words repacks a little-endian SPIR-V byte stream into 32-bit words.
func words(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of words", ErrNotSPIRV, len(b))
	}
	code := make([]uint32, len(b)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return code, nil
}
