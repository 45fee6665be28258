package filter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// DefaultDeflateLevel is used when no level is given.
const DefaultDeflateLevel = 6

// Deflate implements the DEFLATE filter (zlib streams).
type Deflate struct {
	level   int
	maxSize int64
}

// NewDeflate creates a DEFLATE filter. Levels outside 1-9 use the default.
func NewDeflate(level int) *Deflate {
	if level < zlib.BestSpeed || level > zlib.BestCompression {
		level = DefaultDeflateLevel
	}
	return &Deflate{level: level, maxSize: DefaultMaxDecodedSize}
}

// SetMaxDecodedSize limits the size Decode may produce. Values below 1
// restore the default.
func (f *Deflate) SetMaxDecodedSize(n int64) {
	if n < 1 {
		n = DefaultMaxDecodedSize
	}
	f.maxSize = n
}

func (f *Deflate) ID() ID {
	return IDDeflate
}

func (f *Deflate) Encode(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, f.level)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}
	if _, err := w.Write(input); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (f *Deflate) Decode(input []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	output, err := io.ReadAll(io.LimitReader(r, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	if int64(len(output)) > f.maxSize {
		return nil, fmt.Errorf("zlib decompress: more than %d bytes: %w", f.maxSize, ErrTooLarge)
	}

	return output, nil
}
