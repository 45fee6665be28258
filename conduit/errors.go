// Package conduit provides a hierarchical, self-describing tree of named
// nodes whose leaves are strings or typed numeric arrays.
//
// Leaves either own their bytes or are external views into memory owned by
// the caller. An external leaf never copies: it records a data type (element
// type, element count, byte offset and byte stride) over a borrowed buffer.
// The buffer must stay alive and unmodified for as long as the tree is read.
package conduit

import "errors"

// Common errors
var (
	ErrNotFound     = errors.New("node not found")
	ErrInvalidPath  = errors.New("invalid path")
	ErrNotLeaf      = errors.New("node is not a leaf")
	ErrTypeMismatch = errors.New("data type mismatch")
	ErrOutOfBounds  = errors.New("view exceeds buffer bounds")
)
