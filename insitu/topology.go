package insitu

import (
	"fmt"

	"github.com/robert-malhotra/go-conduit/conduit"
	"github.com/robert-malhotra/go-conduit/dataset"
)

var axes = [3]string{"x", "y", "z"}

// shapeNames maps cell types to blueprint element shapes.
var shapeNames = map[dataset.CellType]string{
	dataset.Hexahedron: "hex",
	dataset.Tetra:      "tet",
	dataset.Quad:       "quad",
	dataset.Triangle:   "tri",
	dataset.Line:       "line",
	dataset.Vertex:     "point",
}

// EncodeTopology writes the coordinate set and topology of ds into node.
// On error node may hold a partial description; use Convert for an all or
// nothing update.
func (c *Converter) EncodeTopology(ds dataset.DataSet, node *conduit.Node) (*Report, error) {
	r := c.newRun()
	return r.report, r.encodeTopology(ds, node)
}

func (r *run) encodeTopology(ds dataset.DataSet, node *conduit.Node) error {
	switch g := ds.(type) {
	case *dataset.ImageData:
		r.encodeUniform(g, node)
		return nil
	case *dataset.RectilinearGrid:
		return r.encodeRectilinear(g, node)
	case *dataset.StructuredGrid:
		return r.encodeStructured(g, node)
	case *dataset.UnstructuredGrid:
		return r.encodeUnstructured(g, node)
	default:
		name := "<nil>"
		if ds != nil {
			name = ds.ClassName()
		}
		r.log.WithField("class", name).Error("Unsupported type")
		return fmt.Errorf("%s: %w", name, ErrUnsupportedDatasetKind)
	}
}

// coordset creates the coordinate set node with the given type.
func (r *run) coordset(node *conduit.Node, kind string) *conduit.Node {
	coords := node.Child(conduit.JoinPath("coordsets", r.coordsetName))
	coords.Child("type").SetString(kind)
	return coords
}

// topology creates the topology node with the given type.
func (r *run) topology(node *conduit.Node, kind string) *conduit.Node {
	topo := node.Child(conduit.JoinPath("topologies", r.topologyName))
	topo.Child("type").SetString(kind)
	topo.Child("coordset").SetString(r.coordsetName)
	return topo
}

func (r *run) encodeUniform(g *dataset.ImageData, node *conduit.Node) {
	coords := r.coordset(node, "uniform")
	for i, name := range [3]string{"i", "j", "k"} {
		coords.Child("dims/" + name).SetInt64(int64(g.Dimensions[i]))
	}
	for i, name := range axes {
		coords.Child("origin/" + name).SetFloat64(g.Origin[i])
	}
	for i, name := range axes {
		coords.Child("spacing/d" + name).SetFloat64(g.Spacing[i])
	}
	r.topology(node, "uniform")
}

func (r *run) encodeRectilinear(g *dataset.RectilinearGrid, node *conduit.Node) error {
	coords := r.coordset(node, "rectilinear")
	arrays := [3]dataset.Array{g.XCoordinates, g.YCoordinates, g.ZCoordinates}
	for i, name := range axes {
		if err := r.buildView(arrays[i], 0, 0, coords.Child("values/"+name)); err != nil {
			return fmt.Errorf("%s coordinates: %w", name, err)
		}
	}
	r.topology(node, "rectilinear")
	return nil
}

func (r *run) encodeStructured(g *dataset.StructuredGrid, node *conduit.Node) error {
	coords := r.coordset(node, "explicit")
	if g.Points == nil {
		r.log.WithField("class", g.ClassName()).Error("Structured grid without points")
		return fmt.Errorf("%s: %w", g.ClassName(), ErrMissingPoints)
	}
	if err := r.encodePoints(g.Points, coords); err != nil {
		return err
	}

	topo := r.topology(node, "structured")
	for i, name := range [3]string{"i", "j", "k"} {
		topo.Child("elements/dims/" + name).SetInt64(int64(max(g.Dimensions[i]-1, 0)))
	}
	return nil
}

func (r *run) encodeUnstructured(g *dataset.UnstructuredGrid, node *conduit.Node) error {
	if shapes := g.DistinctCellTypes(); len(shapes) > 1 {
		r.log.WithField("cell_types", fmt.Sprint(shapes)).Error("Unstructured type with mixed shape type unsupported")
		return fmt.Errorf("%d cell shapes %v: %w", len(shapes), shapes, ErrMixedShapeUnsupported)
	}

	coords := r.coordset(node, "explicit")
	cells := g.NumberOfCells()
	switch {
	case cells == 0:
		for _, name := range axes {
			conduit.SetSlice(coords.Child("values/"+name), []float32{})
		}
	case g.Points == nil:
		r.log.WithField("cells", cells).Error("Unstructured grid with cells but without points")
		return fmt.Errorf("%s with %d cells: %w", g.ClassName(), cells, ErrMissingPoints)
	default:
		if err := r.encodePoints(g.Points, coords); err != nil {
			return err
		}
	}

	topo := r.topology(node, "unstructured")

	cellType := dataset.Vertex
	if cells > 0 {
		cellType = g.CellTypes[0]
	}
	if shape, ok := shapeNames[cellType]; ok {
		topo.Child("elements/shape").SetString(shape)
	} else {
		r.log.WithField("cell_type", cellType.String()).Error("Unsupported cell type in unstructured grid")
		r.report.warn(fmt.Errorf("cell type %s: %w", cellType, ErrUnmappedCellShape))
	}

	connectivity := topo.Child("elements/connectivity")
	if cells == 0 {
		conduit.SetSlice(connectivity, []int64{})
		return nil
	}
	if g.Cells == nil || g.Cells.Connectivity == nil {
		r.log.WithField("cells", cells).Error("Unstructured grid with cells but without connectivity")
		return fmt.Errorf("%s with %d cells: connectivity: %w", g.ClassName(), cells, ErrMissingArray)
	}
	if err := r.buildView(g.Cells.Connectivity, 0, 0, connectivity); err != nil {
		return fmt.Errorf("connectivity: %w", err)
	}
	return nil
}

// encodePoints splits interleaved x,y,z triples into one strided view per
// axis.
func (r *run) encodePoints(points dataset.Array, coords *conduit.Node) error {
	for i, name := range axes {
		if err := r.buildView(points, i, 3, coords.Child("values/"+name)); err != nil {
			return fmt.Errorf("%s points: %w", name, err)
		}
	}
	return nil
}
