package conduit

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-conduit/internal/dtype"
)

func TestScalarSetters(t *testing.T) {
	root := NewNode()
	root.Child("i64").SetInt64(-7)
	root.Child("i32").SetInt32(12)
	root.Child("u64").SetUint64(1 << 40)
	root.Child("f64").SetFloat64(0.5)
	root.Child("f32").SetFloat32(1.25)

	tests := []struct {
		path string
		id   TypeID
		want float64
	}{
		{"i64", Int64ID, -7},
		{"i32", Int32ID, 12},
		{"u64", Uint64ID, 1 << 40},
		{"f64", Float64ID, 0.5},
		{"f32", Float32ID, 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			n, err := root.Fetch(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.id, n.DataType().ID)
			assert.Equal(t, 1, n.NumberOfElements())
			assert.False(t, n.IsExternal())
			v, err := n.AsFloat64()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestSetSliceCopies(t *testing.T) {
	src := []int32{1, 2, 3}
	n := NewNode()
	SetSlice(n, src)
	src[0] = 99

	v, err := n.Int64At(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	assert.False(t, n.IsExternal())
}

func TestSetSliceEmpty(t *testing.T) {
	n := NewNode()
	SetSlice(n, []float32{})

	assert.True(t, n.IsLeaf())
	assert.Equal(t, Float32ID, n.DataType().ID)
	assert.Equal(t, 0, n.NumberOfElements())

	vals, err := View[float32](n)
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestSetExternalSliceAliases(t *testing.T) {
	src := []uint16{10, 20, 30}
	n := NewNode()
	SetExternalSlice(n, src)
	src[1] = 21

	v, err := n.Uint64At(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(21), v)

	view, err := View[uint16](n)
	require.NoError(t, err)
	assert.Equal(t, unsafe.Pointer(&src[0]), unsafe.Pointer(&view[0]))
}

func TestSetExternalStrided(t *testing.T) {
	// x, y, z triples
	xyz := []float64{0, 10, 20, 1, 11, 21, 2, 12, 22}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&xyz[0])), len(xyz)*8)

	y := NewNode()
	require.NoError(t, y.SetExternal(NewDataType(Float64ID, 3, 8, 24), buf))

	for i := 0; i < 3; i++ {
		v, err := y.Float64At(i)
		require.NoError(t, err)
		assert.Equal(t, xyz[3*i+1], v)

		ptr, err := y.ElementPointer(i)
		require.NoError(t, err)
		assert.Equal(t, unsafe.Pointer(&xyz[3*i+1]), ptr)
	}

	_, err := View[float64](y)
	assert.True(t, errors.Is(err, ErrTypeMismatch), "strided leaves cannot be viewed")

	got, err := Values[float64](y)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 11, 12}, got)
}

func TestSetExternalBounds(t *testing.T) {
	buf := make([]byte, 16)
	tests := []struct {
		name string
		dt   DataType
		want error
	}{
		{"past end", NewDataType(Float64ID, 3, 0, 8), ErrOutOfBounds},
		{"offset past end", NewDataType(Int32ID, 2, 12, 4), ErrOutOfBounds},
		{"object", DataType{ID: ObjectID}, ErrTypeMismatch},
		{"bad element size", DataType{ID: Int32ID, NumElements: 1, Stride: 2, ElementBytes: 2}, ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNode()
			err := n.SetExternal(tt.dt, buf)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.True(t, n.IsEmpty())
		})
	}

	n := NewNode()
	require.NoError(t, n.SetExternal(NewDataType(Int32ID, 0, 0, 4), nil))
	assert.Equal(t, 0, n.NumberOfElements())
}

func TestElementOutOfRange(t *testing.T) {
	n := NewNode()
	SetSlice(n, []int8{1})
	_, err := n.Int64At(1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	_, err = NewNode().Float64At(0)
	assert.True(t, errors.Is(err, ErrNotLeaf))
}

func TestStringLeaf(t *testing.T) {
	n := NewNode()
	n.SetString("element")
	assert.Equal(t, Char8StrID, n.DataType().ID)

	_, err := n.Float64At(0)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	_, err = NewNode().AsString()
	assert.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestValuesTypeMismatch(t *testing.T) {
	n := NewNode()
	SetSlice(n, []int64{1, 2})
	_, err := Values[int32](n)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	ints, err := n.Int64s()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ints)

	floats, err := n.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, floats)
}

func TestTypeIDNames(t *testing.T) {
	for id := EmptyID; id <= Char8StrID; id++ {
		got, ok := TypeIDFromName(id.String())
		require.True(t, ok, id.String())
		assert.Equal(t, id, got)
	}
	_, ok := TypeIDFromName("int24")
	assert.False(t, ok)
}

func TestSetDataOwnsCopy(t *testing.T) {
	src := []int16{1, -2, 3}
	raw := make([]byte, 6)
	copy(raw, dtype.Bytes(src))

	n := NewNode()
	require.NoError(t, n.SetData(Int16ID, 3, raw))
	assert.False(t, n.IsExternal())

	raw[0] = 0xFF
	got, err := View[int16](n)
	require.NoError(t, err)
	assert.Equal(t, src, got)

	assert.ErrorIs(t, n.SetData(Int32ID, 2, raw), ErrOutOfBounds)
	assert.ErrorIs(t, n.SetData(ObjectID, 1, raw), ErrTypeMismatch)

	require.NoError(t, n.SetData(Char8StrID, 2, []byte("ok")))
	s, err := n.AsString()
	require.NoError(t, err)
	assert.Equal(t, "ok", s)
}
