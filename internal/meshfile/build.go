package meshfile

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-conduit/dataset"
	"github.com/robert-malhotra/go-conduit/internal/dtype"
)

// cellVertices is the point count of fixed size cell types.
var cellVertices = map[dataset.CellType]int{
	dataset.Vertex:     1,
	dataset.Line:       2,
	dataset.Triangle:   3,
	dataset.Pixel:      4,
	dataset.Quad:       4,
	dataset.Tetra:      4,
	dataset.Voxel:      8,
	dataset.Hexahedron: 8,
	dataset.Wedge:      6,
	dataset.Pyramid:    5,
}

// DataObject builds the described dataset. The arrays it holds are owned
// by the returned object.
func (f *File) DataObject() (dataset.DataObject, error) {
	switch f.Kind {
	case "uniform", "image":
		return f.imageData()
	case "rectilinear":
		return f.rectilinearGrid()
	case "structured":
		return f.structuredGrid()
	case "unstructured":
		return f.unstructuredGrid()
	case "table":
		columns, err := buildArrays(f.Columns)
		if err != nil {
			return nil, errors.Wrap(err, "columns")
		}
		return dataset.NewTable(columns...), nil
	case "":
		return nil, errors.New("description has no kind")
	default:
		return nil, errors.Errorf("unknown dataset kind %q", f.Kind)
	}
}

func (f *File) imageData() (dataset.DataObject, error) {
	if len(f.Dims) == 0 || len(f.Dims) > 3 {
		return nil, errors.Errorf("uniform grid needs 1 to 3 dims, got %d", len(f.Dims))
	}
	dims := [3]int{1, 1, 1}
	copy(dims[:], f.Dims)
	img := dataset.NewImageData(dims[0], dims[1], dims[2])
	if len(f.Origin) > 0 {
		copy(img.Origin[:], f.Origin)
	}
	if len(f.Spacing) > 0 {
		copy(img.Spacing[:], f.Spacing)
	}
	return f.attach(img)
}

func (f *File) rectilinearGrid() (dataset.DataObject, error) {
	var axes [3]dataset.Array
	for i, spec := range []*Array{f.X, f.Y, f.Z} {
		if spec == nil {
			return nil, errors.Errorf("rectilinear grid is missing %c coordinates", 'x'+i)
		}
		a, err := spec.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "%c coordinates", 'x'+i)
		}
		axes[i] = a
	}
	g := dataset.NewRectilinearGrid(axes[0], axes[1], axes[2])
	return f.attach(g)
}

func (f *File) points() (dataset.Array, error) {
	if f.Points == nil {
		return nil, nil
	}
	spec := *f.Points
	if spec.Components == 0 {
		spec.Components = 3
	}
	a, err := spec.Build()
	return a, errors.Wrap(err, "points")
}

func (f *File) structuredGrid() (dataset.DataObject, error) {
	if len(f.Dims) != 3 {
		return nil, errors.Errorf("structured grid needs 3 dims, got %d", len(f.Dims))
	}
	points, err := f.points()
	if err != nil {
		return nil, err
	}
	g := dataset.NewStructuredGrid([3]int{f.Dims[0], f.Dims[1], f.Dims[2]}, points)
	return f.attach(g)
}

func (f *File) unstructuredGrid() (dataset.DataObject, error) {
	points, err := f.points()
	if err != nil {
		return nil, err
	}
	g := dataset.NewUnstructuredGrid(points)
	if f.Cells != nil {
		types, cells, err := f.Cells.build()
		if err != nil {
			return nil, errors.Wrap(err, "cells")
		}
		g.SetCells(types, cells)
	}
	return f.attach(g)
}

func (c *Cells) build() ([]dataset.CellType, *dataset.CellArray, error) {
	types := make([]dataset.CellType, len(c.Types))
	for i, name := range c.Types {
		t, err := dataset.ParseCellType(name)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "cell %d", i)
		}
		types[i] = t
	}

	offsets := c.Offsets
	if len(offsets) == 0 {
		offsets = make([]int64, 1, len(types)+1)
		for i, t := range types {
			n, ok := cellVertices[t]
			if !ok {
				return nil, nil, errors.Errorf("cell %d: %s has no fixed size, offsets are required", i, t)
			}
			offsets = append(offsets, offsets[i]+int64(n))
		}
	}
	if len(offsets) != len(types)+1 {
		return nil, nil, errors.Errorf("%d offsets for %d cells", len(offsets), len(types))
	}
	if end := offsets[len(offsets)-1]; end != int64(len(c.Connectivity)) {
		return nil, nil, errors.Errorf("offsets end at %d, connectivity has %d ids", end, len(c.Connectivity))
	}
	conn := c.Connectivity
	if conn == nil {
		conn = []int64{}
	}
	return types, &dataset.CellArray{
		Offsets:      dataset.NewArray("offsets", 1, offsets),
		Connectivity: dataset.NewArray("connectivity", 1, conn),
	}, nil
}

func (f *File) attach(ds dataset.DataSet) (dataset.DataObject, error) {
	for _, group := range []struct {
		name  string
		specs []Array
		into  *dataset.FieldData
	}{
		{"point_data", f.PointData, ds.PointData()},
		{"cell_data", f.CellData, ds.CellData()},
		{"field_data", f.FieldData, ds.FieldData()},
	} {
		arrays, err := buildArrays(group.specs)
		if err != nil {
			return nil, errors.Wrap(err, group.name)
		}
		for _, a := range arrays {
			group.into.AddArray(a)
		}
	}
	return ds, nil
}

func buildArrays(specs []Array) ([]dataset.Array, error) {
	out := make([]dataset.Array, 0, len(specs))
	for i := range specs {
		a, err := specs[i].Build()
		if err != nil {
			return nil, errors.Wrapf(err, "array %d (%s)", i, specs[i].Name)
		}
		out = append(out, a)
	}
	return out, nil
}

// Build converts the description into an array.
func (s *Array) Build() (dataset.Array, error) {
	typeName := s.Type
	if typeName == "" {
		typeName = "float64"
	}
	st, err := dataset.ParseScalarType(typeName)
	if err != nil {
		return nil, err
	}
	layout, err := parseLayout(s.Layout)
	if err != nil {
		return nil, err
	}
	components := max(s.Components, 1)
	if len(s.Values)%components != 0 {
		return nil, errors.Errorf("%d values do not make whole tuples of %d components", len(s.Values), components)
	}

	if s.Size != 0 && s.Size != st.Size() || layout == dataset.LayoutUnknown {
		size := s.Size
		if size == 0 {
			size = st.Size()
		}
		return dataset.NewRawArray(s.Name, st, size, layout, components, make([]byte, len(s.Values)*size)), nil
	}

	switch st {
	case dataset.TypeInt8:
		return typed[int8](s, components, layout), nil
	case dataset.TypeInt16:
		return typed[int16](s, components, layout), nil
	case dataset.TypeInt32:
		return typed[int32](s, components, layout), nil
	case dataset.TypeInt64:
		return typed[int64](s, components, layout), nil
	case dataset.TypeUint8:
		return typed[uint8](s, components, layout), nil
	case dataset.TypeUint16:
		return typed[uint16](s, components, layout), nil
	case dataset.TypeUint32:
		return typed[uint32](s, components, layout), nil
	case dataset.TypeUint64:
		return typed[uint64](s, components, layout), nil
	case dataset.TypeFloat32:
		return typed[float32](s, components, layout), nil
	case dataset.TypeFloat64:
		return typed[float64](s, components, layout), nil
	default:
		// Bit and string arrays keep their tag over zeroed storage.
		size := max(st.Size(), 1)
		return dataset.NewRawArray(s.Name, st, size, layout, components, make([]byte, len(s.Values)*size)), nil
	}
}

func typed[T dtype.Number](s *Array, components int, layout dataset.Layout) dataset.Array {
	values := make([]T, len(s.Values))
	for i, v := range s.Values {
		values[i] = T(v)
	}
	if layout == dataset.LayoutPlanar {
		return dataset.NewPlanarArray(s.Name, components, values)
	}
	return dataset.NewArray(s.Name, components, values)
}

func parseLayout(s string) (dataset.Layout, error) {
	switch s {
	case "", "interleaved", "aos":
		return dataset.LayoutInterleaved, nil
	case "planar", "soa":
		return dataset.LayoutPlanar, nil
	case "unknown":
		return dataset.LayoutUnknown, nil
	default:
		return dataset.LayoutUnknown, errors.Errorf("unknown layout %q", s)
	}
}
