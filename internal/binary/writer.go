package binary

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer encodes values to a stream. The first error is sticky: later
// writes are skipped and Err returns it.
type Writer struct {
	w          io.Writer
	order      binary.ByteOrder
	lengthSize int
	pos        int64
	err        error
	scratch    [8]byte
}

// NewWriter creates a binary writer with the given configuration.
func NewWriter(w io.Writer, cfg Config) *Writer {
	return &Writer{
		w:          w,
		order:      cfg.ByteOrder,
		lengthSize: cfg.LengthSize,
	}
}

// Pos returns the number of bytes written.
func (w *Writer) Pos() int64 {
	return w.pos
}

// Err returns the first write error.
func (w *Writer) Err() error {
	return w.err
}

// WriteBytes writes data verbatim.
func (w *Writer) WriteBytes(data []byte) error {
	if w.err != nil {
		return w.err
	}
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.Write(data)
	w.pos += int64(n)
	w.err = err
	return err
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) error {
	return w.WriteUintN(uint64(v), 1)
}

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) error {
	return w.WriteUintN(uint64(v), 2)
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	return w.WriteUintN(uint64(v), 4)
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) error {
	return w.WriteUintN(v, 8)
}

// WriteUintN writes an unsigned integer of n bytes (1, 2, 4, or 8).
func (w *Writer) WriteUintN(v uint64, n int) error {
	if n != 1 && n != 2 && n != 4 && n != 8 {
		return ErrInvalidSize
	}
	buf := w.scratch[:n]
	switch n {
	case 1:
		buf[0] = uint8(v)
	case 2:
		w.order.PutUint16(buf, uint16(v))
	case 4:
		w.order.PutUint32(buf, uint32(v))
	default:
		w.order.PutUint64(buf, v)
	}
	return w.WriteBytes(buf)
}

// WriteLength writes a length value using the configured length size.
func (w *Writer) WriteLength(v uint64) error {
	if w.lengthSize < 8 && v >= 1<<(8*w.lengthSize) {
		return fmt.Errorf("length %d does not fit in %d bytes: %w", v, w.lengthSize, ErrInvalidSize)
	}
	return w.WriteUintN(v, w.lengthSize)
}

// WriteString writes s prefixed by its 16-bit length.
func (w *Writer) WriteString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string of %d bytes: %w", len(s), ErrInvalidSize)
	}
	if err := w.WriteUint16(uint16(len(s))); err != nil {
		return err
	}
	return w.WriteBytes([]byte(s))
}

// WriteElements writes packed size-byte elements held in host byte order,
// converting them to the configured byte order.
func (w *Writer) WriteElements(data []byte, size int) error {
	if size != 1 && size != 2 && size != 4 && size != 8 {
		return ErrInvalidSize
	}
	if IsNative(w.order) || size == 1 {
		return w.WriteBytes(data)
	}
	swapped := make([]byte, len(data))
	copy(swapped, data)
	SwapElements(swapped, size)
	return w.WriteBytes(swapped)
}

// ByteOrder returns the configured byte order.
func (w *Writer) ByteOrder() binary.ByteOrder {
	return w.order
}
