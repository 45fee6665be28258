// Package filter implements the reversible byte transforms used by bundles.
//
// Filters rewrite a byte slice on Encode and restore it on Decode. A
// [Pipeline] applies its filters in order when encoding and in reverse order
// when decoding, so a pipeline written as [Shuffle, Deflate] decodes by
// inflating first and then unshuffling.
//
// # Filters
//
//   - [Zstd]: Zstandard compression via github.com/klauspost/compress/zstd.
//   - [Deflate]: zlib streams via github.com/klauspost/compress/zlib.
//   - [Shuffle]: byte shuffling. Groups byte i of every element together,
//     which lets the compressors find the runs hidden in numeric arrays.
//
// Every filter has an [ID] bit, so a set of filters fits in one flags byte.
package filter
