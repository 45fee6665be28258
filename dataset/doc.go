// Package dataset describes the in-memory scientific datasets handed to the
// in situ converter: uniform, rectilinear, structured and unstructured grids
// with point, cell and field data arrays.
//
// Arrays never copy the memory they are built from. A dataset and every
// buffer it references must stay alive and unmodified for as long as a tree
// produced from it is read.
package dataset
