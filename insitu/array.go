package insitu

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-conduit/conduit"
	"github.com/robert-malhotra/go-conduit/dataset"
)

// ArrayToNode makes node an external view of every value of a.
func (c *Converter) ArrayToNode(a dataset.Array, node *conduit.Node) error {
	return c.newRun().buildView(a, 0, 0, node)
}

// BuildView makes node an external view of a, starting at element offset
// and taking every stride-th element. A stride below 1 is treated as 1.
// The view holds NumberOfValues/stride elements; no memory is copied.
//
// Interleaved and planar arrays produce the same view over the raw buffer.
func (c *Converter) BuildView(a dataset.Array, offset, stride int, node *conduit.Node) error {
	return c.newRun().buildView(a, offset, stride, node)
}

func (r *run) buildView(a dataset.Array, offset, stride int, node *conduit.Node) error {
	if a == nil {
		r.log.WithField("path", node.Path()).Error("Missing data array")
		return fmt.Errorf("%q: %w", node.Path(), ErrMissingArray)
	}
	stride = max(stride, 1)
	count := a.NumberOfValues() / stride

	id, ok := viewType(a.ScalarType(), a.ElementSize(), a.Layout())
	if !ok {
		r.log.WithFields(logrus.Fields{
			"array":  a.Name(),
			"type":   a.ScalarType().String(),
			"size":   a.ElementSize(),
			"layout": a.Layout().String(),
		}).Error("Unsupported data array type")
		return fmt.Errorf("array %q (%s, %d bytes, %s layout): %w",
			a.Name(), a.ScalarType(), a.ElementSize(), a.Layout(), ErrUnsupportedArrayEncoding)
	}

	width := id.ElementBytes()
	dt := conduit.NewDataType(id, count, offset*width, stride*width)
	if err := node.SetExternal(dt, a.Bytes()); err != nil {
		return fmt.Errorf("array %q: %w", a.Name(), err)
	}
	return nil
}

// viewType selects the fixed-width element type viewing an array of the
// given tag, element width and layout.
func viewType(t dataset.ScalarType, size int, layout dataset.Layout) (conduit.TypeID, bool) {
	switch layout {
	case dataset.LayoutInterleaved, dataset.LayoutPlanar:
	default:
		return conduit.EmptyID, false
	}

	switch t.Kind() {
	case dataset.KindSigned:
		switch size {
		case 1:
			return conduit.Int8ID, true
		case 2:
			return conduit.Int16ID, true
		case 4:
			return conduit.Int32ID, true
		case 8:
			return conduit.Int64ID, true
		}
	case dataset.KindUnsigned:
		switch size {
		case 1:
			return conduit.Uint8ID, true
		case 2:
			return conduit.Uint16ID, true
		case 4:
			return conduit.Uint32ID, true
		case 8:
			return conduit.Uint64ID, true
		}
	case dataset.KindFloat:
		switch size {
		case 4:
			return conduit.Float32ID, true
		case 8:
			return conduit.Float64ID, true
		}
	case dataset.KindUnknown:
	}
	return conduit.EmptyID, false
}
