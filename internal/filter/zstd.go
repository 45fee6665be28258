package filter

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Zstd implements Zstandard compression of whole buffers.
type Zstd struct {
	level   zstd.EncoderLevel
	maxSize uint64
}

// NewZstd creates a zstd filter for a zstd level (1-22). Levels of 0 or
// less use the encoder default.
func NewZstd(level int) *Zstd {
	f := &Zstd{level: zstd.SpeedDefault, maxSize: DefaultMaxDecodedSize}
	if level > 0 {
		f.level = zstd.EncoderLevelFromZstd(level)
	}
	return f
}

// SetMaxDecodedSize limits the size Decode may produce. Values below 1
// restore the default.
func (f *Zstd) SetMaxDecodedSize(n int64) {
	if n < 1 {
		n = DefaultMaxDecodedSize
	}
	f.maxSize = uint64(n)
}

func (f *Zstd) ID() ID {
	return IDZstd
}

func (f *Zstd) Encode(input []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(f.level))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	out := enc.EncodeAll(input, nil)
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("closing zstd encoder: %w", err)
	}
	return out, nil
}

func (f *Zstd) Decode(input []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(f.maxSize))
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()
	out, err := dec.DecodeAll(input, nil)
	switch {
	case errors.Is(err, zstd.ErrDecoderSizeExceeded),
		errors.Is(err, zstd.ErrWindowSizeExceeded),
		errors.Is(err, zstd.ErrFrameSizeExceeded):
		return nil, fmt.Errorf("zstd decompress: %w: %w", ErrTooLarge, err)
	case err != nil:
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}
