// Package insitu converts datasets into mesh blueprint trees for in situ
// data exchange.
//
// Numeric leaves of the produced tree are external views into the memory of
// the source arrays. Nothing is copied: the dataset must outlive every read
// of the tree and must not be modified while the tree is in use.
package insitu

import "errors"

// Conversion errors
var (
	// ErrUnsupportedDatasetKind is returned for data objects that are not
	// one of the four supported grid kinds.
	ErrUnsupportedDatasetKind = errors.New("unsupported dataset kind")
	// ErrMixedShapeUnsupported is returned for unstructured grids holding
	// more than one cell shape.
	ErrMixedShapeUnsupported = errors.New("unstructured grid with mixed cell shapes unsupported")
	// ErrUnsupportedArrayEncoding is returned when an array's element kind,
	// width and layout have no view representation.
	ErrUnsupportedArrayEncoding = errors.New("unsupported array encoding")
	// ErrMissingPoints is returned for grids with cells but no points.
	ErrMissingPoints = errors.New("dataset has no points")
	// ErrMissingArray is returned when a required array is nil.
	ErrMissingArray = errors.New("missing array")

	// ErrUnmappedCellShape is reported, not returned, for a cell shape
	// without blueprint name.
	ErrUnmappedCellShape = errors.New("unmapped cell shape")
	// ErrUnnamedArray is reported, not returned, for skipped arrays.
	ErrUnnamedArray = errors.New("unnamed array")
)
