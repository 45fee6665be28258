// Package binary provides sequential fixed-width binary encoding used by the
// relay bundle format.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidSize is returned when an invalid length or element size is used.
var ErrInvalidSize = errors.New("invalid size: must be 1, 2, 4, or 8")

// Config holds the encoding of multi-byte values.
type Config struct {
	ByteOrder  binary.ByteOrder
	LengthSize int // 2, 4, or 8 bytes
}

// DefaultConfig returns little-endian byte order and 8-byte lengths.
func DefaultConfig() Config {
	return Config{
		ByteOrder:  binary.LittleEndian,
		LengthSize: 8,
	}
}

// Validate checks the configured sizes.
func (c Config) Validate() error {
	if c.ByteOrder == nil {
		return errors.New("byte order not set")
	}
	switch c.LengthSize {
	case 2, 4, 8:
		return nil
	}
	return fmt.Errorf("length size %d: %w", c.LengthSize, ErrInvalidSize)
}

// IsNative reports whether order matches the byte order of the host.
func IsNative(order binary.ByteOrder) bool {
	var want, got [2]byte
	binary.NativeEndian.PutUint16(want[:], 0x0102)
	order.PutUint16(got[:], 0x0102)
	return want == got
}

// Reader decodes values from a stream.
type Reader struct {
	r          io.Reader
	order      binary.ByteOrder
	lengthSize int
	pos        int64
	scratch    [8]byte
}

// NewReader creates a binary reader with the given configuration.
func NewReader(r io.Reader, cfg Config) *Reader {
	return &Reader{
		r:          r,
		order:      cfg.ByteOrder,
		lengthSize: cfg.LengthSize,
	}
}

// Pos returns the number of bytes consumed.
func (r *Reader) Pos() int64 {
	return r.pos
}

// ReadBytes reads exactly n bytes into a new buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if err := r.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (r *Reader) readFull(buf []byte) error {
	n, err := io.ReadFull(r.r, buf)
	r.pos += int64(n)
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.readFull(r.scratch[:1]); err != nil {
		return 0, err
	}
	return r.scratch[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	v, err := r.ReadUintN(2)
	return uint16(v), err
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	v, err := r.ReadUintN(4)
	return uint32(v), err
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	return r.ReadUintN(8)
}

// ReadUintN reads an unsigned integer of n bytes (1, 2, 4, or 8).
func (r *Reader) ReadUintN(n int) (uint64, error) {
	if n != 1 && n != 2 && n != 4 && n != 8 {
		return 0, ErrInvalidSize
	}
	buf := r.scratch[:n]
	if err := r.readFull(buf); err != nil {
		return 0, err
	}
	switch n {
	case 1:
		return uint64(buf[0]), nil
	case 2:
		return uint64(r.order.Uint16(buf)), nil
	case 4:
		return uint64(r.order.Uint32(buf)), nil
	default:
		return r.order.Uint64(buf), nil
	}
}

// ReadLength reads a length value using the configured length size.
func (r *Reader) ReadLength() (uint64, error) {
	return r.ReadUintN(r.lengthSize)
}

// ReadString reads a string prefixed by its 16-bit length.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	buf, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadElements reads count elements of size bytes each and returns them in
// host byte order.
func (r *Reader) ReadElements(count, size int) ([]byte, error) {
	if size != 1 && size != 2 && size != 4 && size != 8 {
		return nil, ErrInvalidSize
	}
	buf, err := r.ReadBytes(count * size)
	if err != nil {
		return nil, err
	}
	if !IsNative(r.order) {
		SwapElements(buf, size)
	}
	return buf, nil
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}

// SwapElements reverses the bytes of every size-byte element of buf in place.
func SwapElements(buf []byte, size int) {
	if size == 1 {
		return
	}
	for i := 0; i+size <= len(buf); i += size {
		e := buf[i : i+size]
		for a, b := 0, size-1; a < b; a, b = a+1, b-1 {
			e[a], e[b] = e[b], e[a]
		}
	}
}
