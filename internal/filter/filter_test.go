package filter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zlib"
)

var sample = bytes.Repeat([]byte("Hello, World! This is test data for compression testing. "), 20)

func TestDeflateRoundtrip(t *testing.T) {
	f := NewDeflate(9)
	compressed, err := f.Encode(sample)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(compressed) >= len(sample) {
		t.Errorf("compressed %d bytes into %d", len(sample), len(compressed))
	}

	decompressed, err := f.Decode(compressed)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decompressed, sample) {
		t.Errorf("Decompressed data mismatch:\ngot:  %q\nwant: %q", decompressed, sample)
	}
}

func TestDeflateReadsPlainZlib(t *testing.T) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(sample)
	w.Close()

	decompressed, err := NewDeflate(0).Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decompressed, sample) {
		t.Error("Decompressed data mismatch")
	}
}

func TestDeflateLevel(t *testing.T) {
	if got := NewDeflate(42).level; got != DefaultDeflateLevel {
		t.Errorf("level 42: got %d, want default", got)
	}
	if got := NewDeflate(1).level; got != 1 {
		t.Errorf("level 1: got %d", got)
	}
}

func TestDeflateDecodeGarbage(t *testing.T) {
	if _, err := NewDeflate(0).Decode([]byte{1, 2, 3, 4}); err == nil {
		t.Error("expected error for invalid zlib stream")
	}
}

func TestZstdRoundtrip(t *testing.T) {
	for _, level := range []int{0, 1, 3, 19} {
		f := NewZstd(level)
		compressed, err := f.Encode(sample)
		if err != nil {
			t.Fatalf("level %d: Encode failed: %v", level, err)
		}
		decompressed, err := f.Decode(compressed)
		if err != nil {
			t.Fatalf("level %d: Decode failed: %v", level, err)
		}
		if !bytes.Equal(decompressed, sample) {
			t.Errorf("level %d: Decompressed data mismatch", level)
		}
	}
}

func TestZstdDecodeGarbage(t *testing.T) {
	if _, err := NewZstd(0).Decode([]byte("definitely not zstd")); err == nil {
		t.Error("expected error for invalid zstd frame")
	}
}

func TestDecodeSizeLimit(t *testing.T) {
	tests := []struct {
		name   string
		filter interface {
			Filter
			SetMaxDecodedSize(int64)
		}
	}{
		{"deflate", NewDeflate(6)},
		{"zstd", NewZstd(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := tt.filter.Encode(sample)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			tt.filter.SetMaxDecodedSize(int64(len(sample)))
			if _, err := tt.filter.Decode(compressed); err != nil {
				t.Fatalf("Decode at the limit failed: %v", err)
			}

			tt.filter.SetMaxDecodedSize(100)
			_, err = tt.filter.Decode(compressed)
			if !errors.Is(err, ErrTooLarge) {
				t.Errorf("expected ErrTooLarge, got %v", err)
			}

			tt.filter.SetMaxDecodedSize(0)
			if _, err := tt.filter.Decode(compressed); err != nil {
				t.Errorf("Decode with the default limit failed: %v", err)
			}
		})
	}
}

func TestShuffleUnshuffle(t *testing.T) {
	// Original: [A0 A1 A2 A3] [B0 B1 B2 B3] [C0 C1 C2 C3] [D0 D1 D2 D3]
	// Shuffled: [A0 B0 C0 D0] [A1 B1 C1 D1] [A2 B2 C2 D2] [A3 B3 C3 D3]
	original := []byte{
		0x01, 0x02, 0x03, 0x04, // Element 0
		0x11, 0x12, 0x13, 0x14, // Element 1
		0x21, 0x22, 0x23, 0x24, // Element 2
		0x31, 0x32, 0x33, 0x34, // Element 3
	}
	shuffled := []byte{
		0x01, 0x11, 0x21, 0x31, // All byte 0s
		0x02, 0x12, 0x22, 0x32, // All byte 1s
		0x03, 0x13, 0x23, 0x33, // All byte 2s
		0x04, 0x14, 0x24, 0x34, // All byte 3s
	}

	f := NewShuffle(4)
	encoded, err := f.Encode(original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(encoded, shuffled) {
		t.Errorf("Shuffled data mismatch:\ngot:  %v\nwant: %v", encoded, shuffled)
	}

	unshuffled, err := f.Decode(shuffled)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(unshuffled, original) {
		t.Errorf("Unshuffled data mismatch:\ngot:  %v\nwant: %v", unshuffled, original)
	}
}

func TestShuffleSingleByte(t *testing.T) {
	// Single-byte elements pass through unchanged
	data := []byte{1, 2, 3, 4, 5}
	f := NewShuffle(1)

	result, err := f.Encode(data)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(result, data) {
		t.Errorf("Single-byte shuffle should be identity: got %v", result)
	}
}

func TestShuffleTrailingBytes(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	f := NewShuffle(2)

	encoded, err := f.Encode(data)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if want := []byte{1, 3, 2, 4, 5}; !bytes.Equal(encoded, want) {
		t.Errorf("got %v, want %v", encoded, want)
	}
	decoded, err := f.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("got %v, want %v", decoded, data)
	}
}

func TestShuffleSetElementSize(t *testing.T) {
	f := NewShuffle(0)
	if f.elemSize != 1 {
		t.Errorf("expected element size 1, got %d", f.elemSize)
	}
	f.SetElementSize(8)
	if f.elemSize != 8 {
		t.Errorf("expected element size 8, got %d", f.elemSize)
	}
}

func TestPipelineOrder(t *testing.T) {
	values := make([]byte, 0, 8*64)
	for i := 0; i < 64; i++ {
		values = append(values, byte(i), 0, 0, 0, 0, 0, 0x40, 0x3f)
	}

	p := NewPipeline(NewShuffle(8), nil, NewDeflate(6))
	if p.Len() != 2 {
		t.Fatalf("expected 2 filters, got %d", p.Len())
	}
	if p.Mask() != IDShuffle|IDDeflate {
		t.Errorf("unexpected mask %s", p.Mask())
	}

	encoded, err := p.Encode(values)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := p.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, values) {
		t.Error("pipeline roundtrip mismatch")
	}

	// Decoding without the shuffle stage must not restore the input.
	inflated, err := NewDeflate(0).Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if bytes.Equal(inflated, values) {
		t.Error("expected shuffled bytes after inflating only")
	}
}

func TestEmptyPipeline(t *testing.T) {
	p := NewPipeline()
	if !p.Empty() {
		t.Error("expected empty pipeline")
	}
	out, err := p.Decode(sample)
	if err != nil || !bytes.Equal(out, sample) {
		t.Errorf("empty pipeline should pass data through, err=%v", err)
	}
}

func TestFromMask(t *testing.T) {
	p, err := FromMask(IDDeflate | IDZstd)
	if err != nil {
		t.Fatalf("FromMask failed: %v", err)
	}
	if p.Len() != 2 || p.Mask() != IDDeflate|IDZstd {
		t.Errorf("unexpected pipeline %d filters, mask %s", p.Len(), p.Mask())
	}

	_, err = FromMask(IDShuffle)
	if !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("expected ErrUnknownFilter, got %v", err)
	}
	_, err = FromMask(0x80)
	if !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("expected ErrUnknownFilter, got %v", err)
	}
}

func TestIDString(t *testing.T) {
	tests := map[ID]string{
		0:                     "none",
		IDZstd:                "zstd",
		IDShuffle | IDDeflate: "deflate+shuffle",
		IDZstd | 0x80:         "zstd+0x80",
	}
	for id, want := range tests {
		if got := id.String(); got != want {
			t.Errorf("ID(0x%02x).String() = %q, want %q", uint8(id), got, want)
		}
	}
}
