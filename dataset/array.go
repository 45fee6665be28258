package dataset

import (
	"fmt"

	"github.com/robert-malhotra/go-conduit/internal/dtype"
)

// Kind classifies the element type of an array.
type Kind = dtype.Kind

// Element kinds
const (
	KindUnknown  = dtype.KindUnknown
	KindSigned   = dtype.KindSigned
	KindUnsigned = dtype.KindUnsigned
	KindFloat    = dtype.KindFloat
)

// ScalarType is the element type tag of an array.
type ScalarType uint8

const (
	TypeVoid ScalarType = iota
	TypeBit
	TypeInt8
	TypeUint8
	TypeInt16
	TypeUint16
	TypeInt32
	TypeUint32
	TypeInt64
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeString
)

var scalarTypeNames = [...]string{
	TypeVoid:    "void",
	TypeBit:     "bit",
	TypeInt8:    "int8",
	TypeUint8:   "uint8",
	TypeInt16:   "int16",
	TypeUint16:  "uint16",
	TypeInt32:   "int32",
	TypeUint32:  "uint32",
	TypeInt64:   "int64",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
	TypeString:  "string",
}

func (t ScalarType) String() string {
	if int(t) < len(scalarTypeNames) {
		return scalarTypeNames[t]
	}
	return fmt.Sprintf("ScalarType(%d)", uint8(t))
}

// ParseScalarType returns the ScalarType with the given name.
func ParseScalarType(name string) (ScalarType, error) {
	for i, n := range scalarTypeNames {
		if n == name {
			return ScalarType(i), nil
		}
	}
	return TypeVoid, fmt.Errorf("unknown scalar type %q", name)
}

// Kind classifies the tag. Bit, string and void arrays are KindUnknown.
func (t ScalarType) Kind() Kind {
	switch t {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return KindSigned
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		return KindUnsigned
	case TypeFloat32, TypeFloat64:
		return KindFloat
	default:
		return KindUnknown
	}
}

// Size returns the natural element width of the tag in bytes.
func (t ScalarType) Size() int {
	switch t {
	case TypeInt8, TypeUint8, TypeString:
		return 1
	case TypeInt16, TypeUint16:
		return 2
	case TypeInt32, TypeUint32, TypeFloat32:
		return 4
	case TypeInt64, TypeUint64, TypeFloat64:
		return 8
	default:
		return 0
	}
}

func scalarTypeOf[T dtype.Number]() ScalarType {
	k, size := dtype.KindOf[T]()
	for t := TypeInt8; t <= TypeFloat64; t++ {
		if t.Kind() == k && t.Size() == size {
			return t
		}
	}
	return TypeVoid
}

// Layout describes how the components of an array are stored.
type Layout uint8

const (
	// LayoutUnknown marks arrays whose storage cannot be described.
	LayoutUnknown Layout = iota
	// LayoutInterleaved stores the components of a tuple contiguously (xyzxyz).
	LayoutInterleaved
	// LayoutPlanar stores each component in its own contiguous run (xxyyzz).
	LayoutPlanar
)

func (l Layout) String() string {
	switch l {
	case LayoutInterleaved:
		return "interleaved"
	case LayoutPlanar:
		return "planar"
	default:
		return "unknown"
	}
}

// Array is a flat numeric buffer of homogeneous elements.
type Array interface {
	// Name returns the array name, or "" for an unnamed array.
	Name() string
	ScalarType() ScalarType
	// ElementSize returns the width of one element in bytes.
	ElementSize() int
	Layout() Layout
	NumberOfComponents() int
	NumberOfTuples() int
	// NumberOfValues is tuples * components.
	NumberOfValues() int
	// Bytes returns the backing storage. It aliases the caller's memory.
	Bytes() []byte
}

// DataArray is the Array implementation of this package. It never copies
// the memory it is built from.
type DataArray struct {
	name       string
	scalarType ScalarType
	size       int
	layout     Layout
	components int
	values     int
	data       []byte
}

// NewArray returns an interleaved array over values. values must hold whole
// tuples of the given number of components.
func NewArray[T dtype.Number](name string, components int, values []T) *DataArray {
	return newTypedArray(name, components, LayoutInterleaved, values)
}

// NewPlanarArray returns a planar array over values, which holds the
// components one after the other: all first components, then all second
// components, and so on.
func NewPlanarArray[T dtype.Number](name string, components int, values []T) *DataArray {
	return newTypedArray(name, components, LayoutPlanar, values)
}

func newTypedArray[T dtype.Number](name string, components int, layout Layout, values []T) *DataArray {
	if components < 1 {
		components = 1
	}
	t := scalarTypeOf[T]()
	return &DataArray{
		name:       name,
		scalarType: t,
		size:       t.Size(),
		layout:     layout,
		components: components,
		values:     len(values),
		data:       dtype.Bytes(values),
	}
}

// NewRawArray returns an array over raw bytes with an explicit type tag,
// element width and layout. The number of values is len(data)/size.
func NewRawArray(name string, t ScalarType, size int, layout Layout, components int, data []byte) *DataArray {
	if components < 1 {
		components = 1
	}
	values := 0
	if size > 0 {
		values = len(data) / size
	}
	return &DataArray{
		name:       name,
		scalarType: t,
		size:       size,
		layout:     layout,
		components: components,
		values:     values,
		data:       data,
	}
}

func (a *DataArray) Name() string { return a.name }

// SetName renames the array.
func (a *DataArray) SetName(name string) { a.name = name }

func (a *DataArray) ScalarType() ScalarType { return a.scalarType }

func (a *DataArray) ElementSize() int { return a.size }

func (a *DataArray) Layout() Layout { return a.layout }

func (a *DataArray) NumberOfComponents() int { return a.components }

func (a *DataArray) NumberOfTuples() int { return a.values / a.components }

func (a *DataArray) NumberOfValues() int { return a.values }

func (a *DataArray) Bytes() []byte { return a.data }

func (a *DataArray) String() string {
	return fmt.Sprintf("%s %q (%d x %d, %s)", a.scalarType, a.name, a.NumberOfTuples(), a.components, a.layout)
}
