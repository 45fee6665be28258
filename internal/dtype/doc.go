// Package dtype maps fixed-width numeric element types between their
// (kind, width) description and Go types.
//
// It is the bridge used by the tree and the dataset model to talk about the
// same bytes:
//
//   - Determine the kind and width of a Go numeric type ([KindOf])
//   - Determine the Go type of a (kind, width) pair ([GoType])
//   - Alias a numeric slice as raw bytes and back without copying
//     ([Bytes], [Slice])
//   - Decode a single element from raw bytes ([DecodeInt64], [DecodeUint64],
//     [DecodeFloat64])
//
// # Type Mapping
//
//	Kind      | Width | Go Type
//	----------|-------|--------------------------
//	Signed    | 1/2/4/8 | int8/int16/int32/int64
//	Unsigned  | 1/2/4/8 | uint8/uint16/uint32/uint64
//	Float     | 4/8   | float32/float64
//
// Raw bytes are always interpreted in native byte order since they alias
// memory owned by a running process.
package dtype
