package insitu

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-conduit/conduit"
	"github.com/robert-malhotra/go-conduit/dataset"
)

// Field associations
const (
	AssociationElement = "element"
	AssociationVertex  = "vertex"
)

// EncodeFields writes the cell arrays of ds, then its point arrays, under
// "fields". Field data without association is not exported. The first
// array that cannot be viewed stops the encoding.
func (c *Converter) EncodeFields(ds dataset.DataSet, node *conduit.Node) (*Report, error) {
	r := c.newRun()
	return r.report, r.encodeFields(ds, node)
}

func (r *run) encodeFields(ds dataset.DataSet, node *conduit.Node) error {
	if err := r.encodeFieldGroup(ds.CellData(), AssociationElement, node); err != nil {
		return err
	}
	if err := r.encodeFieldGroup(ds.PointData(), AssociationVertex, node); err != nil {
		return err
	}
	if n := ds.FieldData().NumberOfArrays(); n > 0 {
		r.log.WithField("arrays", n).Debug("Field data without associated topology is not exported")
	}
	return nil
}

func (r *run) encodeFieldGroup(fd *dataset.FieldData, association string, node *conduit.Node) error {
	for i := 0; i < fd.NumberOfArrays(); i++ {
		a := fd.Array(i)
		name := a.Name()
		if name == "" {
			r.log.WithField("association", association).Warn("Unnamed array, it will be ignored")
			r.report.warn(fmt.Errorf("%s array %d: %w", association, i, ErrUnnamedArray))
			continue
		}
		if len(conduit.SplitPath(name)) == 0 {
			r.log.WithFields(logrus.Fields{"association": association, "array": name}).Warn("Array name is not a valid path, it will be ignored")
			r.report.warn(fmt.Errorf("%s array %d %q: %w", association, i, name, conduit.ErrInvalidPath))
			continue
		}

		field := node.Child(conduit.JoinPath("fields", name))
		field.Child("association").SetString(association)
		field.Child("topology").SetString(r.topologyName)
		field.Child("volume_dependent").SetString("false")
		if err := r.buildView(a, 0, 0, field.Child("values")); err != nil {
			return fmt.Errorf("%s field %q: %w", association, name, err)
		}
	}
	return nil
}
