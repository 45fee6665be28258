// Package relay saves conduit trees to a self-describing binary bundle and
// loads them back, so a tree can be handed to another process.
//
// A bundle is a header followed by a payload:
//
//	magic      8 bytes  "CDTREE\x00\x01"
//	flags      u8       bit 0: zstd payload, bit 1: deflate payload,
//	                    bit 2: leaf data is byte shuffled
//	byte order u8       0 little endian, 1 big endian
//	length     u64      stored payload bytes
//	checksum   u32      lookup3 of the uncompressed payload
//
// The payload is one record per node, depth first. Loaded trees own their
// memory: external views are written out as packed copies.
package relay

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robert-malhotra/go-conduit/conduit"
	ibinary "github.com/robert-malhotra/go-conduit/internal/binary"
	"github.com/robert-malhotra/go-conduit/internal/filter"
)

// Magic starts every bundle.
const Magic = "CDTREE\x00\x01"

const (
	codecFlags = filter.IDZstd | filter.IDDeflate
	knownFlags = codecFlags | filter.IDShuffle

	orderLittle = 0
	orderBig    = 1

	recordObject = 0
	recordLeaf   = 1
	recordEmpty  = 2

	maxDepth = 512
)

// Errors returned when reading a bundle.
var (
	ErrBadMagic    = errors.New("not a conduit bundle")
	ErrChecksum    = errors.New("bundle checksum mismatch")
	ErrCorrupt     = errors.New("corrupt bundle")
	ErrUnsupported = errors.New("unsupported bundle feature")
)

// Header describes a bundle without its payload.
type Header struct {
	// Compression names the payload codec: "none", "zstd" or "deflate".
	Compression string
	// Shuffled reports whether leaf data is byte shuffled.
	Shuffled  bool
	ByteOrder binary.ByteOrder
	Length    uint64
	Checksum  uint32

	flags filter.ID
}

// Compressed reports whether the payload is compressed.
func (h Header) Compressed() bool {
	return h.flags&codecFlags != 0
}

// Write encodes node to w.
func Write(w io.Writer, node *conduit.Node, opts ...Option) error {
	o := defaultWriteOptions()
	for _, opt := range opts {
		opt(o)
	}
	if isBigEndian(o.order) {
		o.order = binary.BigEndian
	} else {
		o.order = binary.LittleEndian
	}
	cfg := ibinary.Config{ByteOrder: o.order, LengthSize: 8}

	var payload bytes.Buffer
	pw := ibinary.NewWriter(&payload, cfg)
	if err := writeRecord(pw, node, o.shuffle); err != nil {
		return err
	}
	raw := payload.Bytes()
	checksum := ibinary.Lookup3Checksum(raw)

	codec := filter.NewPipeline(o.codec)
	stored, err := codec.Encode(raw)
	if err != nil {
		return err
	}
	flags := codec.Mask()
	if o.shuffle {
		flags |= filter.IDShuffle
	}

	order := uint8(orderLittle)
	if isBigEndian(o.order) {
		order = orderBig
	}

	hw := ibinary.NewWriter(w, cfg)
	hw.WriteBytes([]byte(Magic))
	hw.WriteUint8(uint8(flags))
	hw.WriteUint8(order)
	hw.WriteLength(uint64(len(stored)))
	hw.WriteUint32(checksum)
	hw.WriteBytes(stored)
	if err := hw.Err(); err != nil {
		return fmt.Errorf("writing bundle: %w", err)
	}
	return nil
}

func isBigEndian(order binary.ByteOrder) bool {
	var probe [2]byte
	order.PutUint16(probe[:], 0x0102)
	return probe[0] == 0x01
}

func writeRecord(w *ibinary.Writer, n *conduit.Node, shuffle bool) error {
	switch {
	case n.IsObject():
		w.WriteUint8(recordObject)
		w.WriteUint32(uint32(n.NumberOfChildren()))
		for i := 0; i < n.NumberOfChildren(); i++ {
			child := n.ChildAt(i)
			if err := w.WriteString(child.Name()); err != nil {
				return fmt.Errorf("%q: %w", child.Path(), err)
			}
			if err := writeRecord(w, child, shuffle); err != nil {
				return err
			}
		}
	case n.IsLeaf():
		dt := n.DataType()
		w.WriteUint8(recordLeaf)
		w.WriteUint8(uint8(dt.ID))
		w.WriteLength(uint64(dt.NumElements))
		if err := writeLeafData(w, n.Compact(), dt.ElementBytes, shuffle); err != nil {
			return fmt.Errorf("%q: %w", n.Path(), err)
		}
	default:
		w.WriteUint8(recordEmpty)
	}
	return w.Err()
}

func writeLeafData(w *ibinary.Writer, data []byte, size int, shuffle bool) error {
	if !shuffle || size == 1 {
		return w.WriteElements(data, size)
	}
	ordered := make([]byte, len(data))
	copy(ordered, data)
	if !ibinary.IsNative(w.ByteOrder()) {
		ibinary.SwapElements(ordered, size)
	}
	shuffled, err := filter.NewShuffle(size).Encode(ordered)
	if err != nil {
		return err
	}
	return w.WriteBytes(shuffled)
}

// ReadHeader reads and checks the bundle header.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	hr := ibinary.NewReader(r, ibinary.DefaultConfig())
	magic, err := hr.ReadBytes(len(Magic))
	if err != nil {
		return h, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic) != Magic {
		return h, ErrBadMagic
	}
	flags, err := hr.ReadUint8()
	if err != nil {
		return h, fmt.Errorf("reading flags: %w", err)
	}
	h.flags = filter.ID(flags)
	if h.flags&^knownFlags != 0 {
		return h, fmt.Errorf("flags 0x%02x: %w", flags, ErrUnsupported)
	}
	h.Compression = (h.flags & codecFlags).String()
	h.Shuffled = h.flags&filter.IDShuffle != 0

	order, err := hr.ReadUint8()
	if err != nil {
		return h, fmt.Errorf("reading byte order: %w", err)
	}
	switch order {
	case orderLittle:
		h.ByteOrder = binary.LittleEndian
	case orderBig:
		h.ByteOrder = binary.BigEndian
	default:
		return h, fmt.Errorf("byte order %d: %w", order, ErrCorrupt)
	}

	hr = ibinary.NewReader(r, ibinary.Config{ByteOrder: h.ByteOrder, LengthSize: 8})
	if h.Length, err = hr.ReadLength(); err != nil {
		return h, fmt.Errorf("reading length: %w", err)
	}
	if h.Checksum, err = hr.ReadUint32(); err != nil {
		return h, fmt.Errorf("reading checksum: %w", err)
	}
	return h, nil
}

// Read decodes a bundle from r.
func Read(r io.Reader) (*conduit.Node, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	stored, err := io.ReadAll(io.LimitReader(r, int64(min(h.Length, 1<<62))))
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	if uint64(len(stored)) != h.Length {
		return nil, fmt.Errorf("payload has %d of %d bytes: %w", len(stored), h.Length, ErrCorrupt)
	}

	codec, err := filter.FromMask(h.flags & codecFlags)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	payload, err := codec.Decode(stored)
	if err != nil {
		return nil, fmt.Errorf("decompressing payload: %w: %w", ErrCorrupt, err)
	}
	if !ibinary.VerifyLookup3(payload, h.Checksum) {
		return nil, ErrChecksum
	}

	pr := ibinary.NewReader(bytes.NewReader(payload), ibinary.Config{ByteOrder: h.ByteOrder, LengthSize: 8})
	node := conduit.NewNode()
	rd := &recordReader{Reader: pr, size: int64(len(payload)), shuffled: h.Shuffled}
	if err := rd.read(node, 0); err != nil {
		return nil, err
	}
	if pr.Pos() != int64(len(payload)) {
		return nil, fmt.Errorf("%d trailing payload bytes: %w", int64(len(payload))-pr.Pos(), ErrCorrupt)
	}
	return node, nil
}

type recordReader struct {
	*ibinary.Reader
	size     int64
	shuffled bool
}

func (r *recordReader) read(n *conduit.Node, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("tree deeper than %d: %w", maxDepth, ErrCorrupt)
	}
	kind, err := r.ReadUint8()
	if err != nil {
		return corrupt(n, err)
	}

	switch kind {
	case recordEmpty:
		return nil
	case recordObject:
		count, err := r.ReadUint32()
		if err != nil {
			return corrupt(n, err)
		}
		for i := uint32(0); i < count; i++ {
			name, err := r.ReadString()
			if err != nil {
				return corrupt(n, err)
			}
			if name == "" || strings.Contains(name, "/") {
				return fmt.Errorf("%q: child name %q: %w", n.Path(), name, ErrCorrupt)
			}
			if err := r.read(n.Child(name), depth+1); err != nil {
				return err
			}
		}
		if count == 0 {
			n.SetObject()
		}
		return nil
	case recordLeaf:
		id, err := r.ReadUint8()
		if err != nil {
			return corrupt(n, err)
		}
		typeID := conduit.TypeID(id)
		if !typeID.IsNumber() && !typeID.IsString() {
			return fmt.Errorf("%q: leaf type %d: %w", n.Path(), id, ErrCorrupt)
		}
		count, err := r.ReadLength()
		if err != nil {
			return corrupt(n, err)
		}
		eb := typeID.ElementBytes()
		if count > uint64(r.size-r.Pos())/uint64(eb) {
			return fmt.Errorf("%q: %d elements exceed payload: %w", n.Path(), count, ErrCorrupt)
		}
		data, err := r.leafData(int(count), eb)
		if err != nil {
			return corrupt(n, err)
		}
		return n.SetData(typeID, int(count), data)
	default:
		return fmt.Errorf("%q: record kind %d: %w", n.Path(), kind, ErrCorrupt)
	}
}

func (r *recordReader) leafData(count, size int) ([]byte, error) {
	if !r.shuffled || size == 1 {
		return r.ReadElements(count, size)
	}
	buf, err := r.ReadBytes(count * size)
	if err != nil {
		return nil, err
	}
	data, err := filter.NewShuffle(size).Decode(buf)
	if err != nil {
		return nil, err
	}
	if !ibinary.IsNative(r.ByteOrder()) {
		ibinary.SwapElements(data, size)
	}
	return data, nil
}

func corrupt(n *conduit.Node, err error) error {
	return fmt.Errorf("%q: %w: %w", n.Path(), ErrCorrupt, err)
}

// Save writes node to the file at path.
func Save(path string, node *conduit.Node, opts ...Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if err := Write(bw, node, opts...); err != nil {
		return err
	}
	return bw.Flush()
}

// Load reads the bundle stored at path.
func Load(path string) (*conduit.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(bufio.NewReader(f))
}
