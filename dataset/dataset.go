package dataset

// DataObject is anything that can be handed to the converter.
type DataObject interface {
	// ClassName names the concrete kind of the object.
	ClassName() string
	// FieldData returns arrays that are not tied to points or cells.
	FieldData() *FieldData
}

// DataSet is a DataObject with a geometry. The set of implementations is
// closed: ImageData, RectilinearGrid, StructuredGrid and UnstructuredGrid.
type DataSet interface {
	DataObject
	PointData() *FieldData
	CellData() *FieldData
	NumberOfPoints() int
	NumberOfCells() int
	isDataSet()
}

// attributes holds the data arrays shared by every dataset kind.
type attributes struct {
	pointData *FieldData
	cellData  *FieldData
	fieldData *FieldData
}

func (a *attributes) PointData() *FieldData {
	if a.pointData == nil {
		a.pointData = &FieldData{}
	}
	return a.pointData
}

func (a *attributes) CellData() *FieldData {
	if a.cellData == nil {
		a.cellData = &FieldData{}
	}
	return a.cellData
}

func (a *attributes) FieldData() *FieldData {
	if a.fieldData == nil {
		a.fieldData = &FieldData{}
	}
	return a.fieldData
}

func (*attributes) isDataSet() {}

// ImageData is a uniform grid: a regular lattice given by point counts,
// origin and spacing per axis.
type ImageData struct {
	attributes
	Dimensions [3]int
	Origin     [3]float64
	Spacing    [3]float64
}

// NewImageData returns a uniform grid with unit spacing at the origin.
func NewImageData(nx, ny, nz int) *ImageData {
	return &ImageData{
		Dimensions: [3]int{nx, ny, nz},
		Spacing:    [3]float64{1, 1, 1},
	}
}

func (*ImageData) ClassName() string { return "vtkImageData" }

func (g *ImageData) NumberOfPoints() int { return pointCount(g.Dimensions) }

func (g *ImageData) NumberOfCells() int { return cellCount(g.Dimensions) }

// RectilinearGrid is an axis aligned grid with explicit coordinates per axis.
type RectilinearGrid struct {
	attributes
	XCoordinates Array
	YCoordinates Array
	ZCoordinates Array
}

// NewRectilinearGrid returns a grid over the given coordinate arrays.
func NewRectilinearGrid(x, y, z Array) *RectilinearGrid {
	return &RectilinearGrid{XCoordinates: x, YCoordinates: y, ZCoordinates: z}
}

func (*RectilinearGrid) ClassName() string { return "vtkRectilinearGrid" }

// Dimensions returns the point count along each axis.
func (g *RectilinearGrid) Dimensions() [3]int {
	var d [3]int
	for i, a := range []Array{g.XCoordinates, g.YCoordinates, g.ZCoordinates} {
		if a != nil {
			d[i] = a.NumberOfValues()
		}
	}
	return d
}

func (g *RectilinearGrid) NumberOfPoints() int { return pointCount(g.Dimensions()) }

func (g *RectilinearGrid) NumberOfCells() int { return cellCount(g.Dimensions()) }

// StructuredGrid is a curvilinear grid: explicit point positions laid out
// on an i/j/k index space.
type StructuredGrid struct {
	attributes
	Dimensions [3]int
	// Points holds interleaved x,y,z triples.
	Points Array
}

// NewStructuredGrid returns a structured grid over points.
func NewStructuredGrid(dims [3]int, points Array) *StructuredGrid {
	return &StructuredGrid{Dimensions: dims, Points: points}
}

func (*StructuredGrid) ClassName() string { return "vtkStructuredGrid" }

func (g *StructuredGrid) NumberOfPoints() int {
	if g.Points == nil {
		return 0
	}
	return g.Points.NumberOfTuples()
}

func (g *StructuredGrid) NumberOfCells() int { return cellCount(g.Dimensions) }

// UnstructuredGrid holds explicit points and a list of cells.
type UnstructuredGrid struct {
	attributes
	// Points holds interleaved x,y,z triples.
	Points Array
	Cells  *CellArray
	// CellTypes has one entry per cell.
	CellTypes []CellType
}

// NewUnstructuredGrid returns an unstructured grid without cells.
func NewUnstructuredGrid(points Array) *UnstructuredGrid {
	return &UnstructuredGrid{Points: points}
}

// SetCells replaces the cells of the grid. types has one entry per cell.
func (g *UnstructuredGrid) SetCells(types []CellType, cells *CellArray) {
	g.CellTypes = types
	g.Cells = cells
}

func (*UnstructuredGrid) ClassName() string { return "vtkUnstructuredGrid" }

func (g *UnstructuredGrid) NumberOfPoints() int {
	if g.Points == nil {
		return 0
	}
	return g.Points.NumberOfTuples()
}

func (g *UnstructuredGrid) NumberOfCells() int { return len(g.CellTypes) }

// DistinctCellTypes returns the cell types present, in order of first use.
func (g *UnstructuredGrid) DistinctCellTypes() []CellType {
	var (
		seen [256]bool
		out  []CellType
	)
	for _, t := range g.CellTypes {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// Table is a column store. It is a DataObject but not a DataSet.
type Table struct {
	rows      *FieldData
	fieldData *FieldData
}

// NewTable returns a table with the given columns.
func NewTable(columns ...Array) *Table {
	return &Table{rows: NewFieldData(columns...)}
}

func (*Table) ClassName() string { return "vtkTable" }

// RowData returns the table columns.
func (t *Table) RowData() *FieldData { return t.rows }

func (t *Table) FieldData() *FieldData {
	if t.fieldData == nil {
		t.fieldData = &FieldData{}
	}
	return t.fieldData
}

func pointCount(d [3]int) int {
	n := 1
	for _, v := range d {
		if v <= 0 {
			return 0
		}
		n *= v
	}
	return n
}

func cellCount(d [3]int) int {
	n := 1
	for _, v := range d {
		if v <= 0 {
			return 0
		}
		if v > 1 {
			n *= v - 1
		}
	}
	return n
}
