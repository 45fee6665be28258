package insitu

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-conduit/conduit"
	"github.com/robert-malhotra/go-conduit/dataset"
)

// Converter translates datasets into blueprint trees. A Converter holds no
// state between calls and may be used from several goroutines on distinct
// datasets.
type Converter struct {
	opts *options
}

// New returns a Converter configured by opts.
func New(opts ...Option) *Converter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Converter{opts: o}
}

// run is the state of a single conversion.
type run struct {
	*options
	log    logrus.FieldLogger
	report *Report
}

func (c *Converter) newRun() *run {
	return &run{
		options: c.opts,
		log:     c.opts.logger,
		report:  &Report{},
	}
}

// Convert writes the blueprint description of obj into node: its
// coordinate set, topology and point and cell fields. The tree is staged
// and merged into node only when the whole conversion succeeds, so node is
// left untouched on error.
//
// The returned Report lists recoverable problems and is never nil.
func (c *Converter) Convert(obj dataset.DataObject, node *conduit.Node) (*Report, error) {
	r := c.newRun()

	ds, ok := obj.(dataset.DataSet)
	if !ok {
		name := "<nil>"
		if obj != nil {
			name = obj.ClassName()
		}
		r.log.WithField("class", name).Error("Unsupported data object type")
		return r.report, fmt.Errorf("%s: %w", name, ErrUnsupportedDatasetKind)
	}

	staged := conduit.NewNode()
	if err := r.encodeTopology(ds, staged); err != nil {
		return r.report, err
	}
	r.log.WithField("class", ds.ClassName()).Debug("Topology converted")
	if err := r.encodeFields(ds, staged); err != nil {
		return r.report, err
	}

	node.Update(staged)
	return r.report, nil
}

// Convert converts obj with a default Converter.
func Convert(obj dataset.DataObject, node *conduit.Node) (*Report, error) {
	return New().Convert(obj, node)
}

// FillNode converts obj into node and reports success. Details of a failure
// are only available through the log.
func FillNode(obj dataset.DataObject, node *conduit.Node) bool {
	_, err := Convert(obj, node)
	return err == nil
}
