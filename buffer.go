package vertex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unsafe"
)

var (
	// ErrBufferLength is returned when a byte buffer does not hold a whole
	// number of vertices.
	ErrBufferLength = errors.New("vertex: buffer length is not a multiple of the stride")

	// ErrIndexOutOfRange is returned by At for an index outside the buffer.
	ErrIndexOutOfRange = errors.New("vertex: index out of range")

	// ErrRecordLength is returned by UnmarshalBinary when data is not
	// exactly one record.
	ErrRecordLength = errors.New("vertex: data is not exactly one 32-byte record")
)

// AsBytes returns the raw memory of vs as a byte slice without copying.
// The result aliases vs and uses host byte order, which is little-endian
// on every platform the GPU backends support. It returns nil for an
// empty slice.
func AsBytes(vs []Vertex) []byte {
	if len(vs) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(vs))), len(vs)*Size)
}

// AppendBytes appends the little-endian encoding of vs to dst.
func AppendBytes(dst []byte, vs ...Vertex) []byte {
	for i := range vs {
		v := &vs[i]
		dst = appendFloat(dst, v.Position[0])
		dst = appendFloat(dst, v.Position[1])
		dst = appendFloat(dst, v.Color[0])
		dst = appendFloat(dst, v.Color[1])
		dst = appendFloat(dst, v.Color[2])
		dst = appendFloat(dst, v.Color[3])
		dst = appendFloat(dst, v.TexCoord[0])
		dst = appendFloat(dst, v.TexCoord[1])
	}
	return dst
}

func appendFloat(dst []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
}

// Encode returns the little-endian encoding of vs.
func Encode(vs []Vertex) []byte {
	if len(vs) == 0 {
		return nil
	}
	return AppendBytes(make([]byte, 0, len(vs)*Size), vs...)
}

// Decode reads a buffer of little-endian vertices.
func Decode(data []byte) ([]Vertex, error) {
	if len(data)%Stride != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBufferLength, len(data))
	}
	n := len(data) / Stride
	vs := make([]Vertex, n)
	for i := range vs {
		readVertex(data[i*Stride:], &vs[i])
	}
	return vs, nil
}

// At reads the vertex at index i of a little-endian vertex buffer.
// The record is located at byte i*Stride.
func At(data []byte, i int) (Vertex, error) {
	if len(data)%Stride != 0 {
		return Vertex{}, fmt.Errorf("%w: %d bytes", ErrBufferLength, len(data))
	}
	if i < 0 || i >= len(data)/Stride {
		return Vertex{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(data)/Stride)
	}
	var v Vertex
	readVertex(data[i*Stride:], &v)
	return v, nil
}

// readVertex decodes one vertex from the first Size bytes of buf.
func readVertex(buf []byte, v *Vertex) {
	_ = buf[Size-1]
	v.Position[0] = readFloat(buf[PositionOffset:])
	v.Position[1] = readFloat(buf[PositionOffset+4:])
	v.Color[0] = readFloat(buf[ColorOffset:])
	v.Color[1] = readFloat(buf[ColorOffset+4:])
	v.Color[2] = readFloat(buf[ColorOffset+8:])
	v.Color[3] = readFloat(buf[ColorOffset+12:])
	v.TexCoord[0] = readFloat(buf[TexCoordOffset:])
	v.TexCoord[1] = readFloat(buf[TexCoordOffset+4:])
}

func readFloat(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (v Vertex) MarshalBinary() ([]byte, error) {
	return AppendBytes(make([]byte, 0, Size), v), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (v *Vertex) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return fmt.Errorf("%w: got %d bytes", ErrRecordLength, len(data))
	}
	readVertex(data, v)
	return nil
}
