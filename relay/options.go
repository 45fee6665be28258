package relay

import (
	"encoding/binary"

	"github.com/robert-malhotra/go-conduit/internal/filter"
)

// Option configures how a bundle is written.
type Option func(*writeOptions)

type writeOptions struct {
	codec   filter.Filter
	shuffle bool
	order   binary.ByteOrder
}

func defaultWriteOptions() *writeOptions {
	return &writeOptions{
		order: binary.LittleEndian,
	}
}

// WithCompression compresses the payload with zstd at the given zstd
// level (1-22). 0 or less stores the payload uncompressed.
func WithCompression(level int) Option {
	return func(o *writeOptions) {
		if level <= 0 {
			o.codec = nil
			return
		}
		o.codec = filter.NewZstd(level)
	}
}

// WithDeflate compresses the payload as a zlib stream at the given level
// (1-9) instead of zstd. 0 or less stores the payload uncompressed.
func WithDeflate(level int) Option {
	return func(o *writeOptions) {
		if level <= 0 {
			o.codec = nil
			return
		}
		o.codec = filter.NewDeflate(level)
	}
}

// WithShuffle stores leaf data byte shuffled, which usually compresses
// numeric arrays better.
func WithShuffle(enabled bool) Option {
	return func(o *writeOptions) {
		o.shuffle = enabled
	}
}

// WithByteOrder sets the byte order of the bundle. Readers convert on load.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *writeOptions) {
		if order != nil {
			o.order = order
		}
	}
}
