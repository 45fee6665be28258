package dtype

import (
	"math"
	"reflect"
	"testing"
	"unsafe"
)

func TestGoTypeInteger(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		size     int
		expected reflect.Type
	}{
		{"int8", KindSigned, 1, reflect.TypeOf(int8(0))},
		{"uint8", KindUnsigned, 1, reflect.TypeOf(uint8(0))},
		{"int16", KindSigned, 2, reflect.TypeOf(int16(0))},
		{"uint16", KindUnsigned, 2, reflect.TypeOf(uint16(0))},
		{"int32", KindSigned, 4, reflect.TypeOf(int32(0))},
		{"uint32", KindUnsigned, 4, reflect.TypeOf(uint32(0))},
		{"int64", KindSigned, 8, reflect.TypeOf(int64(0))},
		{"uint64", KindUnsigned, 8, reflect.TypeOf(uint64(0))},
		{"float32", KindFloat, 4, reflect.TypeOf(float32(0))},
		{"float64", KindFloat, 8, reflect.TypeOf(float64(0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GoType(tt.kind, tt.size)
			if err != nil {
				t.Fatalf("GoType failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGoTypeUnsupported(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		size int
	}{
		{"int24", KindSigned, 3},
		{"float16", KindFloat, 2},
		{"unknown", KindUnknown, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GoType(tt.kind, tt.size); err == nil {
				t.Errorf("expected error for %s/%d", tt.kind, tt.size)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	if k, s := KindOf[int16](); k != KindSigned || s != 2 {
		t.Errorf("int16: got %s/%d", k, s)
	}
	if k, s := KindOf[uint64](); k != KindUnsigned || s != 8 {
		t.Errorf("uint64: got %s/%d", k, s)
	}
	if k, s := KindOf[float32](); k != KindFloat || s != 4 {
		t.Errorf("float32: got %s/%d", k, s)
	}
}

func TestBytesAliases(t *testing.T) {
	values := []int32{1, 2, 3}
	raw := Bytes(values)

	if len(raw) != 12 {
		t.Fatalf("expected 12 bytes, got %d", len(raw))
	}
	if unsafe.Pointer(&raw[0]) != unsafe.Pointer(&values[0]) {
		t.Error("Bytes should alias the source slice")
	}

	// Writes through the original are visible through the alias
	values[1] = 42
	got, err := DecodeInt64(raw[4:], KindSigned, 4)
	if err != nil {
		t.Fatalf("DecodeInt64 failed: %v", err)
	}
	if got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}

func TestBytesEmpty(t *testing.T) {
	if b := Bytes([]float64{}); b != nil {
		t.Errorf("expected nil for empty slice, got %v", b)
	}
}

func TestSliceRoundTrip(t *testing.T) {
	values := []float64{1.5, -2.25, math.Pi}
	back, err := Slice[float64](Bytes(values))
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	if !reflect.DeepEqual(back, values) {
		t.Errorf("expected %v, got %v", values, back)
	}
	if &back[0] != &values[0] {
		t.Error("Slice should alias the source memory")
	}
}

func TestSliceBadLength(t *testing.T) {
	if _, err := Slice[uint32](make([]byte, 6)); err == nil {
		t.Error("expected error for length not a multiple of 4")
	}
}

func TestDecode(t *testing.T) {
	i8 := Bytes([]int8{-5})
	if v, _ := DecodeInt64(i8, KindSigned, 1); v != -5 {
		t.Errorf("int8: expected -5, got %d", v)
	}

	u16 := Bytes([]uint16{65535})
	if v, _ := DecodeUint64(u16, KindUnsigned, 2); v != 65535 {
		t.Errorf("uint16: expected 65535, got %d", v)
	}
	if v, _ := DecodeFloat64(u16, KindUnsigned, 2); v != 65535 {
		t.Errorf("uint16 as float: expected 65535, got %f", v)
	}

	f32 := Bytes([]float32{2.5})
	if v, _ := DecodeFloat64(f32, KindFloat, 4); v != 2.5 {
		t.Errorf("float32: expected 2.5, got %f", v)
	}

	if _, err := DecodeInt64(make([]byte, 3), KindSigned, 3); err == nil {
		t.Error("expected error for 3-byte integer")
	}
	if _, err := DecodeFloat64(make([]byte, 2), KindFloat, 4); err == nil {
		t.Error("expected error for short buffer")
	}
}
