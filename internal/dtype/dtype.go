package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"unsafe"
)

// Kind classifies a numeric element type.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindSigned
	KindUnsigned
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindSigned:
		return "signed"
	case KindUnsigned:
		return "unsigned"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Number is the set of fixed-width numeric element types.
type Number interface {
	int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// KindOf returns the kind and byte width of T.
func KindOf[T Number]() (Kind, int) {
	var zero T
	switch any(zero).(type) {
	case int8:
		return KindSigned, 1
	case int16:
		return KindSigned, 2
	case int32:
		return KindSigned, 4
	case int64:
		return KindSigned, 8
	case uint8:
		return KindUnsigned, 1
	case uint16:
		return KindUnsigned, 2
	case uint32:
		return KindUnsigned, 4
	case uint64:
		return KindUnsigned, 8
	case float32:
		return KindFloat, 4
	case float64:
		return KindFloat, 8
	}
	return KindUnknown, 0
}

// GoType returns the Go reflect.Type for the given kind and width.
func GoType(k Kind, size int) (reflect.Type, error) {
	switch k {
	case KindSigned, KindUnsigned:
		return goTypeInteger(k == KindSigned, size)
	case KindFloat:
		return goTypeFloat(size)
	default:
		return nil, fmt.Errorf("unsupported element kind: %s", k)
	}
}

func goTypeInteger(signed bool, size int) (reflect.Type, error) {
	switch size {
	case 1:
		if signed {
			return reflect.TypeOf(int8(0)), nil
		}
		return reflect.TypeOf(uint8(0)), nil
	case 2:
		if signed {
			return reflect.TypeOf(int16(0)), nil
		}
		return reflect.TypeOf(uint16(0)), nil
	case 4:
		if signed {
			return reflect.TypeOf(int32(0)), nil
		}
		return reflect.TypeOf(uint32(0)), nil
	case 8:
		if signed {
			return reflect.TypeOf(int64(0)), nil
		}
		return reflect.TypeOf(uint64(0)), nil
	default:
		return nil, fmt.Errorf("unsupported integer size: %d", size)
	}
}

func goTypeFloat(size int) (reflect.Type, error) {
	switch size {
	case 4:
		return reflect.TypeOf(float32(0)), nil
	case 8:
		return reflect.TypeOf(float64(0)), nil
	default:
		return nil, fmt.Errorf("unsupported float size: %d", size)
	}
}

// Bytes returns the memory of s as a byte slice. No copy is made: writes
// through either slice are visible through the other.
func Bytes[T Number](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	_, size := KindOf[T]()
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*size)
}

// Slice reinterprets b as a []T without copying. The length of b must be a
// multiple of the width of T and b must be suitably aligned.
func Slice[T Number](b []byte) ([]T, error) {
	if len(b) == 0 {
		return []T{}, nil
	}
	_, size := KindOf[T]()
	if len(b)%size != 0 {
		return nil, fmt.Errorf("byte length %d is not a multiple of element size %d", len(b), size)
	}
	ptr := unsafe.Pointer(unsafe.SliceData(b))
	if uintptr(ptr)%uintptr(size) != 0 {
		return nil, fmt.Errorf("buffer is not aligned to %d bytes", size)
	}
	return unsafe.Slice((*T)(ptr), len(b)/size), nil
}

// DecodeInt64 decodes one integer element from b.
func DecodeInt64(b []byte, k Kind, size int) (int64, error) {
	if len(b) < size {
		return 0, fmt.Errorf("need %d bytes, have %d", size, len(b))
	}
	switch k {
	case KindSigned:
		switch size {
		case 1:
			return int64(int8(b[0])), nil
		case 2:
			return int64(int16(binary.NativeEndian.Uint16(b))), nil
		case 4:
			return int64(int32(binary.NativeEndian.Uint32(b))), nil
		case 8:
			return int64(binary.NativeEndian.Uint64(b)), nil
		}
	case KindUnsigned:
		v, err := DecodeUint64(b, k, size)
		return int64(v), err
	case KindFloat:
		v, err := DecodeFloat64(b, k, size)
		return int64(v), err
	}
	return 0, fmt.Errorf("cannot decode %s element of size %d", k, size)
}

// DecodeUint64 decodes one unsigned integer element from b. Signed and
// floating point elements are converted.
func DecodeUint64(b []byte, k Kind, size int) (uint64, error) {
	if len(b) < size {
		return 0, fmt.Errorf("need %d bytes, have %d", size, len(b))
	}
	switch k {
	case KindUnsigned:
		switch size {
		case 1:
			return uint64(b[0]), nil
		case 2:
			return uint64(binary.NativeEndian.Uint16(b)), nil
		case 4:
			return uint64(binary.NativeEndian.Uint32(b)), nil
		case 8:
			return binary.NativeEndian.Uint64(b), nil
		}
	case KindSigned:
		v, err := DecodeInt64(b, k, size)
		return uint64(v), err
	case KindFloat:
		v, err := DecodeFloat64(b, k, size)
		return uint64(v), err
	}
	return 0, fmt.Errorf("cannot decode %s element of size %d", k, size)
}

// DecodeFloat64 decodes one element from b as a float64.
func DecodeFloat64(b []byte, k Kind, size int) (float64, error) {
	if len(b) < size {
		return 0, fmt.Errorf("need %d bytes, have %d", size, len(b))
	}
	switch k {
	case KindFloat:
		switch size {
		case 4:
			return float64(math.Float32frombits(binary.NativeEndian.Uint32(b))), nil
		case 8:
			return math.Float64frombits(binary.NativeEndian.Uint64(b)), nil
		}
	case KindSigned:
		v, err := DecodeInt64(b, k, size)
		return float64(v), err
	case KindUnsigned:
		v, err := DecodeUint64(b, k, size)
		return float64(v), err
	}
	return 0, fmt.Errorf("cannot decode %s element of size %d", k, size)
}
