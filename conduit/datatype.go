package conduit

import (
	"fmt"

	"github.com/robert-malhotra/go-conduit/internal/dtype"
)

// TypeID identifies the element type of a node.
type TypeID uint8

const (
	EmptyID TypeID = iota
	ObjectID
	Int8ID
	Int16ID
	Int32ID
	Int64ID
	Uint8ID
	Uint16ID
	Uint32ID
	Uint64ID
	Float32ID
	Float64ID
	Char8StrID
)

var typeNames = map[TypeID]string{
	EmptyID:    "empty",
	ObjectID:   "object",
	Int8ID:     "int8",
	Int16ID:    "int16",
	Int32ID:    "int32",
	Int64ID:    "int64",
	Uint8ID:    "uint8",
	Uint16ID:   "uint16",
	Uint32ID:   "uint32",
	Uint64ID:   "uint64",
	Float32ID:  "float32",
	Float64ID:  "float64",
	Char8StrID: "char8_str",
}

func (id TypeID) String() string {
	if name, ok := typeNames[id]; ok {
		return name
	}
	return fmt.Sprintf("TypeID(%d)", uint8(id))
}

// TypeIDFromName returns the TypeID with the given name.
func TypeIDFromName(name string) (TypeID, bool) {
	for id, n := range typeNames {
		if n == name {
			return id, true
		}
	}
	return EmptyID, false
}

// ElementBytes returns the width of one element, or 0 for empty and object.
func (id TypeID) ElementBytes() int {
	switch id {
	case Int8ID, Uint8ID, Char8StrID:
		return 1
	case Int16ID, Uint16ID:
		return 2
	case Int32ID, Uint32ID, Float32ID:
		return 4
	case Int64ID, Uint64ID, Float64ID:
		return 8
	default:
		return 0
	}
}

func (id TypeID) kind() dtype.Kind {
	switch id {
	case Int8ID, Int16ID, Int32ID, Int64ID:
		return dtype.KindSigned
	case Uint8ID, Uint16ID, Uint32ID, Uint64ID:
		return dtype.KindUnsigned
	case Float32ID, Float64ID:
		return dtype.KindFloat
	default:
		return dtype.KindUnknown
	}
}

// IsSignedInteger reports whether id is int8, int16, int32 or int64.
func (id TypeID) IsSignedInteger() bool { return id.kind() == dtype.KindSigned }

// IsUnsignedInteger reports whether id is uint8, uint16, uint32 or uint64.
func (id TypeID) IsUnsignedInteger() bool { return id.kind() == dtype.KindUnsigned }

// IsInteger reports whether id is any integer type.
func (id TypeID) IsInteger() bool { return id.IsSignedInteger() || id.IsUnsignedInteger() }

// IsFloat reports whether id is float32 or float64.
func (id TypeID) IsFloat() bool { return id.kind() == dtype.KindFloat }

// IsNumber reports whether id is a numeric type.
func (id TypeID) IsNumber() bool { return id.kind() != dtype.KindUnknown }

// IsString reports whether id is char8_str.
func (id TypeID) IsString() bool { return id == Char8StrID }

// Number is the set of element types a leaf can hold.
type Number interface {
	dtype.Number
}

func typeIDOf[T Number]() TypeID {
	k, size := dtype.KindOf[T]()
	return numericTypeID(k, size)
}

func numericTypeID(k dtype.Kind, size int) TypeID {
	switch k {
	case dtype.KindSigned:
		switch size {
		case 1:
			return Int8ID
		case 2:
			return Int16ID
		case 4:
			return Int32ID
		case 8:
			return Int64ID
		}
	case dtype.KindUnsigned:
		switch size {
		case 1:
			return Uint8ID
		case 2:
			return Uint16ID
		case 4:
			return Uint32ID
		case 8:
			return Uint64ID
		}
	case dtype.KindFloat:
		switch size {
		case 4:
			return Float32ID
		case 8:
			return Float64ID
		}
	}
	return EmptyID
}

// DataType describes how the elements of a leaf are laid out in its buffer.
// Offset and Stride are in bytes.
type DataType struct {
	ID           TypeID
	NumElements  int
	Offset       int
	Stride       int
	ElementBytes int
}

// NewDataType returns a data type of n elements of the given type, starting
// offset bytes into the buffer and stride bytes apart. A stride of 0 means
// the elements are packed.
func NewDataType(id TypeID, n, offset, stride int) DataType {
	eb := id.ElementBytes()
	if stride == 0 {
		stride = eb
	}
	return DataType{
		ID:           id,
		NumElements:  n,
		Offset:       offset,
		Stride:       stride,
		ElementBytes: eb,
	}
}

// CompactDataType returns a packed data type of n elements.
func CompactDataType(id TypeID, n int) DataType {
	return NewDataType(id, n, 0, 0)
}

// ElementIndex returns the byte index of element i.
func (dt DataType) ElementIndex(i int) int {
	return dt.Offset + i*dt.Stride
}

// SpanBytes returns the number of buffer bytes the elements reach into.
func (dt DataType) SpanBytes() int {
	if dt.NumElements == 0 {
		return 0
	}
	return dt.ElementIndex(dt.NumElements-1) + dt.ElementBytes
}

// IsCompact reports whether elements are packed with no gaps.
func (dt DataType) IsCompact() bool {
	return dt.Offset == 0 && dt.Stride == dt.ElementBytes
}

func (dt DataType) String() string {
	return fmt.Sprintf("%s[%d] (offset=%d stride=%d)", dt.ID, dt.NumElements, dt.Offset, dt.Stride)
}

func (dt DataType) validate(bufLen int) error {
	if !dt.ID.IsNumber() && !dt.ID.IsString() {
		return fmt.Errorf("%w: %s cannot be a leaf", ErrTypeMismatch, dt.ID)
	}
	if dt.ElementBytes != dt.ID.ElementBytes() {
		return fmt.Errorf("%w: %s with element size %d", ErrTypeMismatch, dt.ID, dt.ElementBytes)
	}
	if dt.NumElements < 0 || dt.Offset < 0 || dt.Stride < 0 {
		return fmt.Errorf("%w: negative count, offset or stride in %s", ErrOutOfBounds, dt)
	}
	if dt.NumElements > 1 && dt.Stride < dt.ElementBytes {
		return fmt.Errorf("%w: stride %d smaller than element size %d", ErrOutOfBounds, dt.Stride, dt.ElementBytes)
	}
	if span := dt.SpanBytes(); span > bufLen {
		return fmt.Errorf("%w: %s needs %d bytes, buffer has %d", ErrOutOfBounds, dt, span, bufLen)
	}
	return nil
}
