package filter

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ID identifies a filter. IDs are distinct bits.
type ID uint8

const (
	IDZstd ID = 1 << iota
	IDDeflate
	IDShuffle
)

var idNames = map[ID]string{
	IDZstd:    "zstd",
	IDDeflate: "deflate",
	IDShuffle: "shuffle",
}

func (id ID) String() string {
	if name, ok := idNames[id]; ok {
		return name
	}
	var names []string
	for m := id; m != 0; m &= m - 1 {
		bit := ID(1) << bits.TrailingZeros8(uint8(m))
		name, ok := idNames[bit]
		if !ok {
			name = fmt.Sprintf("0x%02x", uint8(bit))
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// Decoding errors
var (
	// ErrUnknownFilter is returned for IDs without a registered filter.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrTooLarge is returned when decoded data would exceed the filter's
	// size limit.
	ErrTooLarge = errors.New("decoded data too large")
)

// DefaultMaxDecodedSize bounds the output of decompressing filters.
const DefaultMaxDecodedSize = 1 << 30

// Filter is the interface implemented by all filters.
type Filter interface {
	// ID returns the filter identifier.
	ID() ID

	// Encode transforms data to its stored form.
	Encode(input []byte) ([]byte, error)

	// Decode restores data from its stored form.
	Decode(input []byte) ([]byte, error)
}

// Registry maps payload filter IDs to constructors used when decoding.
// Decoding needs no parameters, so the constructors build default filters.
// Shuffle depends on the element size and has no entry.
var Registry = map[ID]func() Filter{
	IDZstd:    func() Filter { return NewZstd(0) },
	IDDeflate: func() Filter { return NewDeflate(DefaultDeflateLevel) },
}

// New creates the filter registered for id.
func New(id ID) (Filter, error) {
	constructor, ok := Registry[id]
	if !ok {
		return nil, fmt.Errorf("%s (ID 0x%02x): %w", id, uint8(id), ErrUnknownFilter)
	}
	return constructor(), nil
}
