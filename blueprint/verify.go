// Package blueprint checks that a tree follows the mesh blueprint: its
// coordinate sets, topologies and fields are complete and consistent.
package blueprint

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"

	"github.com/robert-malhotra/go-conduit/conduit"
)

// Verification errors
var (
	ErrMissing       = errors.New("missing entry")
	ErrInvalidValue  = errors.New("invalid value")
	ErrBadReference  = errors.New("reference to unknown entry")
	ErrCountMismatch = errors.New("value count mismatch")
)

var (
	coordsetTypes = []string{"uniform", "rectilinear", "explicit"}
	topologyTypes = []string{"points", "uniform", "rectilinear", "structured", "unstructured"}
	associations  = []string{"vertex", "element"}
)

// ShapeVertices maps element shapes to their point count.
var ShapeVertices = map[string]int{
	"point": 1,
	"line":  2,
	"tri":   3,
	"quad":  4,
	"tet":   4,
	"hex":   8,
}

type verifier struct {
	errs *multierror.Error

	points   map[string]int
	elements map[string]int
	topoSets map[string]string
}

func (v *verifier) fail(path string, err error, format string, args ...any) {
	v.errs = multierror.Append(v.errs, fmt.Errorf("%s: %s: %w", path, fmt.Sprintf(format, args...), err))
}

// Verify checks node against the mesh blueprint and returns every problem
// found as a multierror, or nil when node conforms.
func Verify(node *conduit.Node) error {
	v := &verifier{
		points:   make(map[string]int),
		elements: make(map[string]int),
		topoSets: make(map[string]string),
	}
	v.verifyCoordsets(node)
	v.verifyTopologies(node)
	v.verifyFields(node)
	return v.errs.ErrorOrNil()
}

func (v *verifier) group(node *conduit.Node, name string, required bool) *conduit.Node {
	n, err := node.Fetch(name)
	if err != nil {
		if required {
			v.fail(name, ErrMissing, "required")
		}
		return nil
	}
	if !n.IsObject() || n.NumberOfChildren() == 0 {
		v.fail(name, ErrInvalidValue, "must hold at least one entry")
		return nil
	}
	return n
}

func (v *verifier) stringValue(n *conduit.Node, name string) (string, bool) {
	child, err := n.Fetch(name)
	if err != nil {
		v.fail(conduit.JoinPath(n.Path(), name), ErrMissing, "required")
		return "", false
	}
	s, err := child.AsString()
	if err != nil {
		v.fail(child.Path(), ErrInvalidValue, "must be a string")
		return "", false
	}
	return s, true
}

func (v *verifier) oneOf(n *conduit.Node, name string, allowed []string) (string, bool) {
	s, ok := v.stringValue(n, name)
	if !ok {
		return "", false
	}
	if !slices.Contains(allowed, s) {
		v.fail(conduit.JoinPath(n.Path(), name), ErrInvalidValue, "%q not one of %v", s, allowed)
		return "", false
	}
	return s, true
}

// integerAxes reads integer children of n in order, stopping at the first
// missing one. The first name is required.
func (v *verifier) integerAxes(n *conduit.Node, names ...string) ([]int64, bool) {
	var out []int64
	for i, name := range names {
		child, err := n.Fetch(name)
		if err != nil {
			if i == 0 {
				v.fail(conduit.JoinPath(n.Path(), name), ErrMissing, "required")
				return nil, false
			}
			break
		}
		if !child.DataType().ID.IsInteger() || child.NumberOfElements() != 1 {
			v.fail(child.Path(), ErrInvalidValue, "must be an integer")
			return nil, false
		}
		val, _ := child.AsInt64()
		if val < 0 {
			v.fail(child.Path(), ErrInvalidValue, "must not be negative")
			return nil, false
		}
		out = append(out, val)
	}
	return out, true
}

func (v *verifier) numericLeaf(n *conduit.Node) bool {
	if !n.IsLeaf() || !n.DataType().ID.IsNumber() {
		v.fail(n.Path(), ErrInvalidValue, "must be a numeric array")
		return false
	}
	return true
}

func (v *verifier) verifyCoordsets(node *conduit.Node) {
	sets := v.group(node, "coordsets", true)
	if sets == nil {
		return
	}
	for i := 0; i < sets.NumberOfChildren(); i++ {
		cs := sets.ChildAt(i)
		kind, ok := v.oneOf(cs, "type", coordsetTypes)
		if !ok {
			continue
		}
		var points int
		switch kind {
		case "uniform":
			points, ok = v.verifyUniformCoords(cs)
		default:
			points, ok = v.verifyCoordValues(cs, kind == "explicit")
		}
		if ok {
			v.points[cs.Name()] = points
		}
	}
}

func (v *verifier) verifyUniformCoords(cs *conduit.Node) (int, bool) {
	dims, err := cs.Fetch("dims")
	if err != nil {
		v.fail(conduit.JoinPath(cs.Path(), "dims"), ErrMissing, "required")
		return 0, false
	}
	counts, ok := v.integerAxes(dims, "i", "j", "k")
	if !ok {
		return 0, false
	}
	for _, group := range []string{"origin", "spacing"} {
		g, err := cs.Fetch(group)
		if err != nil {
			continue
		}
		for j := 0; j < g.NumberOfChildren(); j++ {
			c := g.ChildAt(j)
			if v.numericLeaf(c) && c.NumberOfElements() != 1 {
				v.fail(c.Path(), ErrInvalidValue, "must be a scalar")
			}
		}
	}
	points := 1
	for _, c := range counts {
		points *= int(c)
	}
	return points, true
}

func (v *verifier) verifyCoordValues(cs *conduit.Node, explicit bool) (int, bool) {
	values, err := cs.Fetch("values")
	if err != nil {
		v.fail(conduit.JoinPath(cs.Path(), "values"), ErrMissing, "required")
		return 0, false
	}
	if !values.HasPath("x") {
		v.fail(conduit.JoinPath(values.Path(), "x"), ErrMissing, "required")
		return 0, false
	}

	points := 1
	ok := true
	for i, axis := range []string{"x", "y", "z"} {
		c, err := values.Fetch(axis)
		if err != nil {
			break
		}
		if !v.numericLeaf(c) {
			ok = false
			continue
		}
		n := c.NumberOfElements()
		switch {
		case !explicit:
			points *= n
		case i == 0:
			points = n
		case n != points:
			v.fail(c.Path(), ErrCountMismatch, "%d values, x has %d", n, points)
			ok = false
		}
	}
	return points, ok
}

func (v *verifier) verifyTopologies(node *conduit.Node) {
	topos := v.group(node, "topologies", true)
	if topos == nil {
		return
	}
	for i := 0; i < topos.NumberOfChildren(); i++ {
		topo := topos.ChildAt(i)
		kind, kindOK := v.oneOf(topo, "type", topologyTypes)
		cs, csOK := v.stringValue(topo, "coordset")
		if csOK {
			if _, known := v.points[cs]; !known && !node.HasPath(conduit.JoinPath("coordsets", cs)) {
				v.fail(conduit.JoinPath(topo.Path(), "coordset"), ErrBadReference, "coordset %q", cs)
				csOK = false
			}
		}
		if !kindOK {
			continue
		}
		if csOK {
			v.topoSets[topo.Name()] = cs
		} else {
			v.topoSets[topo.Name()] = ""
		}

		switch kind {
		case "unstructured":
			v.verifyUnstructured(topo)
		case "structured":
			v.verifyStructured(topo)
		case "uniform", "rectilinear":
			v.verifyImplicit(node, topo, cs)
		case "points":
			if points, ok := v.points[cs]; ok {
				v.elements[topo.Name()] = points
			}
		}
	}
}

func (v *verifier) verifyUnstructured(topo *conduit.Node) {
	elements, err := topo.Fetch("elements")
	if err != nil {
		v.fail(conduit.JoinPath(topo.Path(), "elements"), ErrMissing, "required")
		return
	}
	shapes := make([]string, 0, len(ShapeVertices))
	for s := range ShapeVertices {
		shapes = append(shapes, s)
	}
	slices.Sort(shapes)
	shape, shapeOK := v.oneOf(elements, "shape", shapes)

	conn, err := elements.Fetch("connectivity")
	if err != nil {
		v.fail(conduit.JoinPath(elements.Path(), "connectivity"), ErrMissing, "required")
		return
	}
	if !conn.IsLeaf() || !conn.DataType().ID.IsInteger() {
		v.fail(conn.Path(), ErrInvalidValue, "must be an integer array")
		return
	}
	if !shapeOK {
		return
	}
	n, per := conn.NumberOfElements(), ShapeVertices[shape]
	if n%per != 0 {
		v.fail(conn.Path(), ErrCountMismatch, "%d ids is not a multiple of %d for %s", n, per, shape)
		return
	}
	v.elements[topo.Name()] = n / per
}

func (v *verifier) verifyStructured(topo *conduit.Node) {
	dims, err := topo.Fetch("elements/dims")
	if err != nil {
		v.fail(conduit.JoinPath(topo.Path(), "elements/dims"), ErrMissing, "required")
		return
	}
	counts, ok := v.integerAxes(dims, "i", "j", "k")
	if !ok {
		return
	}
	if n, ok := structuredElements(counts); ok {
		v.elements[topo.Name()] = n
	}
}

func (v *verifier) verifyImplicit(node, topo *conduit.Node, cs string) {
	sets, err := node.Fetch(conduit.JoinPath("coordsets", cs))
	if err != nil {
		return
	}
	var counts []int64
	if dims, err := sets.Fetch("dims"); err == nil {
		for j := 0; j < dims.NumberOfChildren(); j++ {
			if c, err := dims.ChildAt(j).AsInt64(); err == nil {
				counts = append(counts, c)
			}
		}
	} else if values, err := sets.Fetch("values"); err == nil {
		for j := 0; j < values.NumberOfChildren(); j++ {
			counts = append(counts, int64(values.ChildAt(j).NumberOfElements()))
		}
	}
	if len(counts) > 0 {
		v.elements[topo.Name()] = implicitElements(counts)
	}
}

// implicitElements counts the elements of a grid with the given points per
// axis. Axes of a single point add no extent.
func implicitElements(points []int64) int {
	n := 1
	for _, c := range points {
		if c <= 0 {
			return 0
		}
		n *= int(max(c-1, 1))
	}
	return n
}

// structuredElements multiplies the element counts of the axes with extent.
func structuredElements(dims []int64) (int, bool) {
	n, extent := 1, false
	for _, c := range dims {
		if c > 0 {
			n *= int(c)
			extent = true
		}
	}
	return n, extent
}

func (v *verifier) verifyFields(node *conduit.Node) {
	fields := v.group(node, "fields", false)
	if fields == nil {
		return
	}
	for i := 0; i < fields.NumberOfChildren(); i++ {
		field := fields.ChildAt(i)
		assoc, assocOK := v.oneOf(field, "association", associations)
		topoName, topoOK := v.stringValue(field, "topology")
		if topoOK {
			if _, known := v.topoSets[topoName]; !known {
				v.fail(conduit.JoinPath(field.Path(), "topology"), ErrBadReference, "topology %q", topoName)
				topoOK = false
			}
		}

		values, err := field.Fetch("values")
		if err != nil {
			v.fail(conduit.JoinPath(field.Path(), "values"), ErrMissing, "required")
			continue
		}
		count, ok := v.fieldValueCount(values)
		if !ok || !assocOK || !topoOK {
			continue
		}

		expected, known := v.elements[topoName]
		if assoc == "vertex" {
			expected, known = v.points[v.topoSets[topoName]]
		}
		if !known {
			continue
		}
		mismatch := count != 0
		if expected != 0 {
			mismatch = count == 0 || count%expected != 0
		}
		if mismatch {
			v.fail(values.Path(), ErrCountMismatch, "%d values for %d %ss", count, expected, assoc)
		}
	}
}

// fieldValueCount returns the number of values of a field: the length of a
// numeric leaf, or the common length of the component leaves of an object.
func (v *verifier) fieldValueCount(values *conduit.Node) (int, bool) {
	if !values.IsObject() {
		if !v.numericLeaf(values) {
			return 0, false
		}
		return values.NumberOfElements(), true
	}
	count := -1
	for i := 0; i < values.NumberOfChildren(); i++ {
		c := values.ChildAt(i)
		if !v.numericLeaf(c) {
			return 0, false
		}
		switch n := c.NumberOfElements(); {
		case count < 0:
			count = n
		case n != count:
			v.fail(c.Path(), ErrCountMismatch, "%d values, first component has %d", n, count)
			return 0, false
		}
	}
	return max(count, 0), true
}
