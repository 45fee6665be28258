package dataset

import "fmt"

// CellType identifies the shape of a cell, using the legacy VTK numbering.
type CellType uint8

const (
	EmptyCell     CellType = 0
	Vertex        CellType = 1
	PolyVertex    CellType = 2
	Line          CellType = 3
	PolyLine      CellType = 4
	Triangle      CellType = 5
	TriangleStrip CellType = 6
	Polygon       CellType = 7
	Pixel         CellType = 8
	Quad          CellType = 9
	Tetra         CellType = 10
	Voxel         CellType = 11
	Hexahedron    CellType = 12
	Wedge         CellType = 13
	Pyramid       CellType = 14
)

var cellTypeNames = map[CellType]string{
	EmptyCell:     "empty",
	Vertex:        "vertex",
	PolyVertex:    "poly_vertex",
	Line:          "line",
	PolyLine:      "poly_line",
	Triangle:      "triangle",
	TriangleStrip: "triangle_strip",
	Polygon:       "polygon",
	Pixel:         "pixel",
	Quad:          "quad",
	Tetra:         "tetra",
	Voxel:         "voxel",
	Hexahedron:    "hexahedron",
	Wedge:         "wedge",
	Pyramid:       "pyramid",
}

func (t CellType) String() string {
	if s, ok := cellTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("CellType(%d)", uint8(t))
}

// ParseCellType accepts a cell type name or its legacy number.
func ParseCellType(s string) (CellType, error) {
	for t, name := range cellTypeNames {
		if name == s {
			return t, nil
		}
	}
	var n uint8
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
		if _, ok := cellTypeNames[CellType(n)]; ok {
			return CellType(n), nil
		}
	}
	return EmptyCell, fmt.Errorf("unknown cell type %q", s)
}

// CellArray stores cells as a flat connectivity buffer of point ids plus an
// offsets buffer with one entry per cell and a trailing end offset, so cell
// i spans Connectivity[Offsets[i]:Offsets[i+1]].
type CellArray struct {
	Offsets      Array
	Connectivity Array
}

// NewCellArray builds a CellArray from per-cell point id lists. The
// resulting buffers are int64 and owned by the CellArray.
func NewCellArray(cells ...[]int64) *CellArray {
	offsets := make([]int64, 0, len(cells)+1)
	var conn []int64
	offsets = append(offsets, 0)
	for _, c := range cells {
		conn = append(conn, c...)
		offsets = append(offsets, int64(len(conn)))
	}
	if conn == nil {
		conn = []int64{}
	}
	return &CellArray{
		Offsets:      NewArray("offsets", 1, offsets),
		Connectivity: NewArray("connectivity", 1, conn),
	}
}

// NumberOfCells returns the number of cells described by the offsets.
func (c *CellArray) NumberOfCells() int {
	if c == nil || c.Offsets == nil || c.Offsets.NumberOfValues() == 0 {
		return 0
	}
	return c.Offsets.NumberOfValues() - 1
}

// ConnectivitySize returns the total number of point ids.
func (c *CellArray) ConnectivitySize() int {
	if c == nil || c.Connectivity == nil {
		return 0
	}
	return c.Connectivity.NumberOfValues()
}
