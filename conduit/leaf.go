package conduit

import (
	"fmt"
	"unsafe"

	"github.com/robert-malhotra/go-conduit/internal/dtype"
)

// SetString makes the node a char8_str leaf holding a copy of s.
func (n *Node) SetString(s string) {
	n.setLeaf(CompactDataType(Char8StrID, len(s)), []byte(s), false)
}

// SetInt64 makes the node a single-element int64 leaf.
func (n *Node) SetInt64(v int64) { SetValue(n, v) }

// SetInt32 makes the node a single-element int32 leaf.
func (n *Node) SetInt32(v int32) { SetValue(n, v) }

// SetUint64 makes the node a single-element uint64 leaf.
func (n *Node) SetUint64(v uint64) { SetValue(n, v) }

// SetFloat64 makes the node a single-element float64 leaf.
func (n *Node) SetFloat64(v float64) { SetValue(n, v) }

// SetFloat32 makes the node a single-element float32 leaf.
func (n *Node) SetFloat32(v float32) { SetValue(n, v) }

// SetValue makes the node a single-element leaf holding v.
func SetValue[T Number](n *Node, v T) {
	SetSlice(n, []T{v})
}

// SetSlice makes the node a leaf that owns a copy of values.
// An empty slice yields a well-formed leaf with zero elements.
func SetSlice[T Number](n *Node, values []T) {
	owned := make([]T, len(values))
	copy(owned, values)
	n.setLeaf(CompactDataType(typeIDOf[T](), len(owned)), dtype.Bytes(owned), false)
}

// SetExternalSlice makes the node an external view of values. No copy is
// made: the caller keeps ownership and must not reallocate values while the
// tree is read.
func SetExternalSlice[T Number](n *Node, values []T) {
	n.setLeaf(CompactDataType(typeIDOf[T](), len(values)), dtype.Bytes(values), true)
}

// SetExternal makes the node an external view of buf described by dt.
// The view is checked against the bounds of buf. No copy is made: buf stays
// owned by the caller and must remain alive and unmodified while the tree
// is read.
func (n *Node) SetExternal(dt DataType, buf []byte) error {
	if err := dt.validate(len(buf)); err != nil {
		return err
	}
	n.setLeaf(dt, buf[:dt.SpanBytes()], true)
	return nil
}

// SetData makes the node a leaf owning a packed copy of count elements of
// type id read from data.
func (n *Node) SetData(id TypeID, count int, data []byte) error {
	dt := CompactDataType(id, count)
	if err := dt.validate(len(data)); err != nil {
		return err
	}
	owned := alignedBytes(dt.SpanBytes())
	copy(owned, data)
	n.setLeaf(dt, owned, false)
	return nil
}

// alignedBytes allocates size bytes aligned for any numeric element type.
func alignedBytes(size int) []byte {
	if size == 0 {
		return nil
	}
	words := make([]uint64, (size+7)/8)
	return dtype.Bytes(words)[:size]
}

func (n *Node) element(i int) ([]byte, error) {
	if !n.IsLeaf() {
		return nil, fmt.Errorf("%q: %w", n.Path(), ErrNotLeaf)
	}
	if i < 0 || i >= n.dtype.NumElements {
		return nil, fmt.Errorf("%q: element %d of %d: %w", n.Path(), i, n.dtype.NumElements, ErrOutOfBounds)
	}
	idx := n.dtype.ElementIndex(i)
	return n.data[idx : idx+n.dtype.ElementBytes : idx+n.dtype.ElementBytes], nil
}

func (n *Node) checkNumeric() error {
	if !n.IsLeaf() {
		return fmt.Errorf("%q: %w", n.Path(), ErrNotLeaf)
	}
	if !n.dtype.ID.IsNumber() {
		return fmt.Errorf("%q: %s is not numeric: %w", n.Path(), n.dtype.ID, ErrTypeMismatch)
	}
	return nil
}

func (n *Node) numericElement(i int) ([]byte, error) {
	if err := n.checkNumeric(); err != nil {
		return nil, err
	}
	return n.element(i)
}

// ElementBytes returns the raw bytes of element i. The slice aliases the
// node's buffer.
func (n *Node) ElementBytes(i int) ([]byte, error) {
	return n.element(i)
}

// ElementPointer returns the address of element i in the node's buffer.
func (n *Node) ElementPointer(i int) (unsafe.Pointer, error) {
	b, err := n.element(i)
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(unsafe.SliceData(b)), nil
}

// Int64At returns element i converted to int64.
func (n *Node) Int64At(i int) (int64, error) {
	b, err := n.numericElement(i)
	if err != nil {
		return 0, err
	}
	return dtype.DecodeInt64(b, n.dtype.ID.kind(), n.dtype.ElementBytes)
}

// Uint64At returns element i converted to uint64.
func (n *Node) Uint64At(i int) (uint64, error) {
	b, err := n.numericElement(i)
	if err != nil {
		return 0, err
	}
	return dtype.DecodeUint64(b, n.dtype.ID.kind(), n.dtype.ElementBytes)
}

// Float64At returns element i converted to float64.
func (n *Node) Float64At(i int) (float64, error) {
	b, err := n.numericElement(i)
	if err != nil {
		return 0, err
	}
	return dtype.DecodeFloat64(b, n.dtype.ID.kind(), n.dtype.ElementBytes)
}

// AsInt64 returns the first element converted to int64.
func (n *Node) AsInt64() (int64, error) {
	return n.Int64At(0)
}

// AsFloat64 returns the first element converted to float64.
func (n *Node) AsFloat64() (float64, error) {
	return n.Float64At(0)
}

// AsString returns the value of a char8_str leaf.
func (n *Node) AsString() (string, error) {
	if n.dtype.ID != Char8StrID {
		return "", fmt.Errorf("%q: %s is not a string: %w", n.Path(), n.dtype.ID, ErrTypeMismatch)
	}
	return string(n.Compact()), nil
}

// Float64s returns every element of a numeric leaf converted to float64.
func (n *Node) Float64s() ([]float64, error) {
	if err := n.checkNumeric(); err != nil {
		return nil, err
	}
	out := make([]float64, n.NumberOfElements())
	for i := range out {
		v, err := n.Float64At(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Int64s returns every element of a numeric leaf converted to int64.
func (n *Node) Int64s() ([]int64, error) {
	if err := n.checkNumeric(); err != nil {
		return nil, err
	}
	out := make([]int64, n.NumberOfElements())
	for i := range out {
		v, err := n.Int64At(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Compact returns a packed copy of the leaf elements.
func (n *Node) Compact() []byte {
	if !n.IsLeaf() {
		return nil
	}
	eb := n.dtype.ElementBytes
	out := make([]byte, 0, n.dtype.NumElements*eb)
	for i := 0; i < n.dtype.NumElements; i++ {
		idx := n.dtype.ElementIndex(i)
		out = append(out, n.data[idx:idx+eb]...)
	}
	return out
}

// View returns the leaf elements as a []T without copying. The leaf must
// hold elements of type T packed with no gaps.
func View[T Number](n *Node) ([]T, error) {
	if err := checkType[T](n); err != nil {
		return nil, err
	}
	if n.dtype.Stride != n.dtype.ElementBytes && n.dtype.NumElements > 1 {
		return nil, fmt.Errorf("%q: elements are strided (%d bytes), cannot view: %w",
			n.Path(), n.dtype.Stride, ErrTypeMismatch)
	}
	start := n.dtype.Offset
	end := start + n.dtype.NumElements*n.dtype.ElementBytes
	if n.dtype.NumElements == 0 {
		return []T{}, nil
	}
	return dtype.Slice[T](n.data[start:end])
}

// Values returns a copy of the leaf elements as a []T, gathering strided
// elements.
func Values[T Number](n *Node) ([]T, error) {
	if err := checkType[T](n); err != nil {
		return nil, err
	}
	packed, err := dtype.Slice[T](alignedCopy[T](n.Compact()))
	if err != nil {
		return nil, err
	}
	return packed, nil
}

func checkType[T Number](n *Node) error {
	if !n.IsLeaf() {
		return fmt.Errorf("%q: %w", n.Path(), ErrNotLeaf)
	}
	if want := typeIDOf[T](); n.dtype.ID != want {
		return fmt.Errorf("%q: have %s, want %s: %w", n.Path(), n.dtype.ID, want, ErrTypeMismatch)
	}
	return nil
}

// alignedCopy copies b into memory allocated for T so it can be aliased.
func alignedCopy[T Number](b []byte) []byte {
	_, size := dtype.KindOf[T]()
	out := make([]T, len(b)/size)
	dst := dtype.Bytes(out)
	copy(dst, b)
	return dst
}
