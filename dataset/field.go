package dataset

// FieldData is an ordered collection of arrays.
type FieldData struct {
	arrays []Array
}

// NewFieldData returns a collection holding arrays in order.
func NewFieldData(arrays ...Array) *FieldData {
	return &FieldData{arrays: append([]Array(nil), arrays...)}
}

// AddArray appends a to the collection. An array with the same non-empty
// name replaces the existing one in place.
func (f *FieldData) AddArray(a Array) {
	if name := a.Name(); name != "" {
		for i, existing := range f.arrays {
			if existing.Name() == name {
				f.arrays[i] = a
				return
			}
		}
	}
	f.arrays = append(f.arrays, a)
}

// NumberOfArrays returns the number of arrays. A nil collection is empty.
func (f *FieldData) NumberOfArrays() int {
	if f == nil {
		return 0
	}
	return len(f.arrays)
}

// Array returns the array at index i, or nil if i is out of range.
func (f *FieldData) Array(i int) Array {
	if f == nil || i < 0 || i >= len(f.arrays) {
		return nil
	}
	return f.arrays[i]
}

// ArrayByName returns the first array called name.
func (f *FieldData) ArrayByName(name string) (Array, bool) {
	if f == nil {
		return nil, false
	}
	for _, a := range f.arrays {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Arrays returns the arrays in insertion order.
func (f *FieldData) Arrays() []Array {
	if f == nil {
		return nil
	}
	return append([]Array(nil), f.arrays...)
}
