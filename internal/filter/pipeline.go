package filter

import (
	"fmt"
)

// Pipeline represents an ordered sequence of filters.
type Pipeline struct {
	filters []Filter
}

// NewPipeline creates a pipeline. Nil filters are dropped.
func NewPipeline(filters ...Filter) *Pipeline {
	p := &Pipeline{
		filters: make([]Filter, 0, len(filters)),
	}
	for _, f := range filters {
		if f != nil {
			p.filters = append(p.filters, f)
		}
	}
	return p
}

// FromMask creates a decoding pipeline holding the registered filter of
// every bit set in mask, in ascending bit order.
func FromMask(mask ID) (*Pipeline, error) {
	p := &Pipeline{}
	for bit := ID(1); bit != 0; bit <<= 1 {
		if mask&bit == 0 {
			continue
		}
		f, err := New(bit)
		if err != nil {
			return nil, err
		}
		p.filters = append(p.filters, f)
	}
	return p, nil
}

// Encode applies the filters in order.
func (p *Pipeline) Encode(input []byte) ([]byte, error) {
	data := input
	for _, f := range p.filters {
		var err error
		data, err = f.Encode(data)
		if err != nil {
			return nil, fmt.Errorf("filter %s encode: %w", f.ID(), err)
		}
	}
	return data, nil
}

// Decode applies the filters in reverse order (last filter first).
func (p *Pipeline) Decode(input []byte) ([]byte, error) {
	data := input
	for i := len(p.filters) - 1; i >= 0; i-- {
		var err error
		data, err = p.filters[i].Decode(data)
		if err != nil {
			return nil, fmt.Errorf("filter %s decode: %w", p.filters[i].ID(), err)
		}
	}
	return data, nil
}

// Mask returns the IDs of all filters in the pipeline.
func (p *Pipeline) Mask() ID {
	var mask ID
	for _, f := range p.filters {
		mask |= f.ID()
	}
	return mask
}

// Empty returns true if the pipeline has no filters.
func (p *Pipeline) Empty() bool {
	return len(p.filters) == 0
}

// Len returns the number of filters in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.filters)
}
