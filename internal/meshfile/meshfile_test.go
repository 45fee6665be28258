package meshfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-conduit/dataset"
)

func TestReadYAML(t *testing.T) {
	f, err := ReadFile(filepath.Join("testdata", "triangles.yaml"))
	require.NoError(t, err)

	obj, err := f.DataObject()
	require.NoError(t, err)
	g, ok := obj.(*dataset.UnstructuredGrid)
	require.True(t, ok)

	assert.Equal(t, 4, g.NumberOfPoints())
	assert.Equal(t, dataset.TypeFloat32, g.Points.ScalarType())
	assert.Equal(t, []dataset.CellType{dataset.Triangle, dataset.Triangle}, g.CellTypes)
	assert.Equal(t, 2, g.Cells.NumberOfCells())

	require.Equal(t, 2, g.PointData().NumberOfArrays())
	assert.Equal(t, "", g.PointData().Array(1).Name())
	material, ok := g.CellData().ArrayByName("material")
	require.True(t, ok)
	assert.Equal(t, dataset.TypeUint8, material.ScalarType())
	assert.Equal(t, []byte{1, 2}, material.Bytes())
	assert.Equal(t, 1, g.FieldData().NumberOfArrays())
}

func TestReadTOML(t *testing.T) {
	f, err := ReadFile(filepath.Join("testdata", "image.toml"))
	require.NoError(t, err)

	obj, err := f.DataObject()
	require.NoError(t, err)
	img, ok := obj.(*dataset.ImageData)
	require.True(t, ok)

	assert.Equal(t, [3]int{3, 2, 1}, img.Dimensions)
	assert.Equal(t, [3]float64{0.5, 0.5, 1}, img.Spacing)
	v, ok := img.PointData().ArrayByName("velocity")
	require.True(t, ok)
	assert.Equal(t, dataset.LayoutPlanar, v.Layout())
	assert.Equal(t, 6, v.NumberOfTuples())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"yaml syntax", FormatYAML, "kind: [unterminated"},
		{"yaml unknown key", FormatYAML, "kind: uniform\ncolour: red\n"},
		{"toml syntax", FormatTOML, "kind = "},
		{"toml unknown key", FormatTOML, "kind = \"uniform\"\ncolour = \"red\"\n"},
		{"format", Format("xml"), "<kind/>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestDataObjectErrors(t *testing.T) {
	tests := map[string]string{
		"no kind":             "dims: [1]\n",
		"unknown kind":        "kind: polydata\n",
		"uniform dims":        "kind: uniform\ndims: [1, 2, 3, 4]\n",
		"structured dims":     "kind: structured\ndims: [2, 2]\n",
		"missing y":           "kind: rectilinear\nx: {values: [0, 1]}\nz: {values: [0]}\n",
		"bad type":            "kind: uniform\ndims: [2]\npoint_data: [{name: a, type: complex, values: [1, 2]}]\n",
		"bad layout":          "kind: uniform\ndims: [2]\npoint_data: [{name: a, layout: diagonal, values: [1, 2]}]\n",
		"partial tuple":       "kind: uniform\ndims: [2]\npoint_data: [{name: a, components: 3, values: [1, 2]}]\n",
		"bad cell type":       "kind: unstructured\ncells: {types: [blob], connectivity: [0]}\n",
		"offsets needed":      "kind: unstructured\ncells: {types: [polygon], connectivity: [0, 1, 2]}\n",
		"offset count":        "kind: unstructured\ncells: {types: [line], connectivity: [0, 1], offsets: [0]}\n",
		"connectivity length": "kind: unstructured\ncells: {types: [line], connectivity: [0, 1, 2]}\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := Decode([]byte(input), FormatYAML)
			require.NoError(t, err)
			_, err = f.DataObject()
			assert.Error(t, err)
		})
	}
}

func TestArrayBuild(t *testing.T) {
	a, err := (&Array{Name: "odd", Type: "int32", Size: 3, Values: []float64{1, 2}}).Build()
	require.NoError(t, err)
	assert.Equal(t, 3, a.ElementSize())
	assert.Equal(t, 2, a.NumberOfValues())

	a, err = (&Array{Name: "u", Layout: "unknown", Values: []float64{1}}).Build()
	require.NoError(t, err)
	assert.Equal(t, dataset.LayoutUnknown, a.Layout())

	a, err = (&Array{Name: "neg", Type: "int16", Values: []float64{-3.7}}).Build()
	require.NoError(t, err)
	assert.Equal(t, dataset.TypeInt16, a.ScalarType())

	a, err = (&Array{Name: "flags", Type: "bit", Values: []float64{1, 0}}).Build()
	require.NoError(t, err)
	assert.Equal(t, dataset.KindUnknown, a.ScalarType().Kind())
}

func TestPolygonWithOffsets(t *testing.T) {
	f, err := Decode([]byte(`kind: unstructured
points: {values: [0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 0.5, 1.5, 0]}
cells:
  types: [polygon]
  connectivity: [0, 1, 4, 2, 3]
  offsets: [0, 5]
`), FormatYAML)
	require.NoError(t, err)
	obj, err := f.DataObject()
	require.NoError(t, err)
	assert.Equal(t, 5, obj.(*dataset.UnstructuredGrid).Cells.ConnectivitySize())
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{"a.yaml": FormatYAML, "b.YML": FormatYAML, "c.toml": FormatTOML} {
		got, err := FormatOf(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := FormatOf("d.json")
	assert.Error(t, err)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
