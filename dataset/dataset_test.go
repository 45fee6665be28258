package dataset

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarTypeKindAndSize(t *testing.T) {
	tests := []struct {
		typ  ScalarType
		kind Kind
		size int
	}{
		{TypeInt8, KindSigned, 1},
		{TypeInt16, KindSigned, 2},
		{TypeInt32, KindSigned, 4},
		{TypeInt64, KindSigned, 8},
		{TypeUint8, KindUnsigned, 1},
		{TypeUint16, KindUnsigned, 2},
		{TypeUint32, KindUnsigned, 4},
		{TypeUint64, KindUnsigned, 8},
		{TypeFloat32, KindFloat, 4},
		{TypeFloat64, KindFloat, 8},
		{TypeBit, KindUnknown, 0},
		{TypeString, KindUnknown, 1},
		{TypeVoid, KindUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.typ.Kind())
			assert.Equal(t, tt.size, tt.typ.Size())
			parsed, err := ParseScalarType(tt.typ.String())
			require.NoError(t, err)
			assert.Equal(t, tt.typ, parsed)
		})
	}

	_, err := ParseScalarType("complex64")
	assert.Error(t, err)
}

func TestNewArrayAliases(t *testing.T) {
	values := []float32{1, 2, 3, 4, 5, 6}
	a := NewArray("p", 3, values)

	assert.Equal(t, "p", a.Name())
	assert.Equal(t, TypeFloat32, a.ScalarType())
	assert.Equal(t, 4, a.ElementSize())
	assert.Equal(t, LayoutInterleaved, a.Layout())
	assert.Equal(t, 2, a.NumberOfTuples())
	assert.Equal(t, 6, a.NumberOfValues())
	require.Len(t, a.Bytes(), 24)
	assert.Equal(t, unsafe.Pointer(&values[0]), unsafe.Pointer(&a.Bytes()[0]))
}

func TestNewPlanarArray(t *testing.T) {
	a := NewPlanarArray("v", 2, []int16{1, 2, 3, 10, 20, 30})
	assert.Equal(t, LayoutPlanar, a.Layout())
	assert.Equal(t, TypeInt16, a.ScalarType())
	assert.Equal(t, 3, a.NumberOfTuples())
}

func TestNewRawArray(t *testing.T) {
	a := NewRawArray("odd", TypeInt32, 3, LayoutInterleaved, 1, make([]byte, 9))
	assert.Equal(t, 3, a.ElementSize())
	assert.Equal(t, 3, a.NumberOfValues())

	zero := NewRawArray("z", TypeVoid, 0, LayoutUnknown, 0, []byte{1})
	assert.Equal(t, 0, zero.NumberOfValues())
	assert.Equal(t, 1, zero.NumberOfComponents())
}

func TestCellArray(t *testing.T) {
	cells := NewCellArray([]int64{0, 1, 2}, []int64{2, 3, 0})
	assert.Equal(t, 2, cells.NumberOfCells())
	assert.Equal(t, 6, cells.ConnectivitySize())
	assert.Equal(t, TypeInt64, cells.Offsets.ScalarType())

	empty := NewCellArray()
	assert.Equal(t, 0, empty.NumberOfCells())
	assert.Equal(t, 0, empty.ConnectivitySize())

	var none *CellArray
	assert.Equal(t, 0, none.NumberOfCells())
}

func TestCellTypeNames(t *testing.T) {
	assert.Equal(t, "hexahedron", Hexahedron.String())
	assert.Equal(t, "CellType(99)", CellType(99).String())

	ct, err := ParseCellType("tetra")
	require.NoError(t, err)
	assert.Equal(t, Tetra, ct)

	ct, err = ParseCellType("9")
	require.NoError(t, err)
	assert.Equal(t, Quad, ct)

	_, err = ParseCellType("blob")
	assert.Error(t, err)
}

func TestFieldData(t *testing.T) {
	fd := &FieldData{}
	fd.AddArray(NewArray("a", 1, []int32{1}))
	fd.AddArray(NewArray("", 1, []int32{2}))
	fd.AddArray(NewArray("", 1, []int32{3}))
	fd.AddArray(NewArray("a", 1, []int32{4, 5}))

	require.Equal(t, 3, fd.NumberOfArrays())
	a, ok := fd.ArrayByName("a")
	require.True(t, ok)
	assert.Equal(t, 2, a.NumberOfValues())
	assert.Nil(t, fd.Array(3))
	assert.Nil(t, fd.Array(-1))

	_, ok = fd.ArrayByName("missing")
	assert.False(t, ok)

	var nilFD *FieldData
	assert.Equal(t, 0, nilFD.NumberOfArrays())
	assert.Nil(t, nilFD.Arrays())
}

func TestDataSetKinds(t *testing.T) {
	img := NewImageData(3, 4, 1)
	assert.Equal(t, 12, img.NumberOfPoints())
	assert.Equal(t, 6, img.NumberOfCells())

	rg := NewRectilinearGrid(
		NewArray("x", 1, []float64{0, 1}),
		NewArray("y", 1, []float64{0, 1, 2}),
		NewArray("z", 1, []float64{0}),
	)
	assert.Equal(t, [3]int{2, 3, 1}, rg.Dimensions())
	assert.Equal(t, 6, rg.NumberOfPoints())
	assert.Equal(t, 2, rg.NumberOfCells())

	sg := NewStructuredGrid([3]int{2, 1, 1}, NewArray("pts", 3, []float32{0, 0, 0, 1, 0, 0}))
	assert.Equal(t, 2, sg.NumberOfPoints())

	ug := NewUnstructuredGrid(nil)
	assert.Equal(t, 0, ug.NumberOfPoints())
	ug.SetCells([]CellType{Triangle, Quad, Triangle}, nil)
	assert.Equal(t, 3, ug.NumberOfCells())
	assert.Equal(t, []CellType{Triangle, Quad}, ug.DistinctCellTypes())

	for _, ds := range []DataSet{img, rg, sg, ug} {
		assert.NotNil(t, ds.PointData())
		assert.NotNil(t, ds.CellData())
		assert.NotNil(t, ds.FieldData())
	}

	col := NewArray("col", 1, []int64{1, 2})
	table := NewTable(col)
	var obj DataObject = table
	_, isDataSet := obj.(DataSet)
	assert.False(t, isDataSet)
	assert.Equal(t, "vtkTable", obj.ClassName())
	assert.Equal(t, 1, table.RowData().NumberOfArrays())
	got, ok := table.RowData().ArrayByName("col")
	require.True(t, ok)
	assert.Same(t, col, got)
	assert.Equal(t, 0, table.FieldData().NumberOfArrays())
}
