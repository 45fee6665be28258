package conduit

import (
	"fmt"
)

// Node is an element of the tree. A node is empty, an object with ordered
// named children, or a leaf holding a string or a numeric array.
type Node struct {
	name     string
	parent   *Node
	children []*Node
	index    map[string]int

	// Leaf state
	dtype    DataType
	data     []byte
	external bool
}

// NewNode returns an empty root node.
func NewNode() *Node {
	return &Node{}
}

// Name returns the node name (last component of its path).
func (n *Node) Name() string {
	return n.name
}

// Path returns the path of this node from the root of its tree.
// The root path is "".
func (n *Node) Path() string {
	if n.parent == nil {
		return ""
	}
	return JoinPath(n.parent.Path(), n.name)
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// DataType returns the data type of the node.
func (n *Node) DataType() DataType {
	return n.dtype
}

// IsObject returns true if the node has named children.
func (n *Node) IsObject() bool {
	return n.dtype.ID == ObjectID
}

// IsEmpty returns true if the node holds nothing.
func (n *Node) IsEmpty() bool {
	return n.dtype.ID == EmptyID
}

// IsLeaf returns true if the node holds a string or numeric array.
func (n *Node) IsLeaf() bool {
	return !n.IsObject() && !n.IsEmpty()
}

// IsExternal returns true if the leaf data is borrowed from the caller.
func (n *Node) IsExternal() bool {
	return n.external
}

// NumberOfElements returns the number of elements of a leaf.
func (n *Node) NumberOfElements() int {
	if !n.IsLeaf() {
		return 0
	}
	return n.dtype.NumElements
}

// Child returns the descendant at the given relative path, creating any
// missing nodes along the way. A leaf or empty node on the path becomes an
// object.
func (n *Node) Child(path string) *Node {
	current := n
	for _, name := range SplitPath(path) {
		current = current.childNamed(name)
	}
	return current
}

func (n *Node) childNamed(name string) *Node {
	if n.dtype.ID != ObjectID {
		n.SetObject()
	}
	if i, ok := n.index[name]; ok {
		return n.children[i]
	}
	child := &Node{name: name, parent: n}
	n.index[name] = len(n.children)
	n.children = append(n.children, child)
	return child
}

// Fetch returns the descendant at the given relative path without creating
// anything.
func (n *Node) Fetch(path string) (*Node, error) {
	parts := SplitPath(path)
	current := n
	for i, name := range parts {
		child, ok := current.lookup(name)
		if !ok {
			return nil, fmt.Errorf("fetching %q: %w", JoinPath(parts[:i+1]...), ErrNotFound)
		}
		current = child
	}
	return current, nil
}

// HasPath returns true if a descendant exists at the given path.
func (n *Node) HasPath(path string) bool {
	_, err := n.Fetch(path)
	return err == nil
}

func (n *Node) lookup(name string) (*Node, bool) {
	if n.dtype.ID != ObjectID {
		return nil, false
	}
	i, ok := n.index[name]
	if !ok {
		return nil, false
	}
	return n.children[i], true
}

// NumberOfChildren returns the number of direct children.
func (n *Node) NumberOfChildren() int {
	return len(n.children)
}

// ChildNames returns the names of the direct children in insertion order.
func (n *Node) ChildNames() []string {
	names := make([]string, len(n.children))
	for i, c := range n.children {
		names[i] = c.name
	}
	return names
}

// ChildAt returns the i'th direct child.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Remove removes the descendant at the given path. It returns false if
// nothing exists there.
func (n *Node) Remove(path string) bool {
	parts := SplitPath(path)
	if len(parts) == 0 {
		return false
	}
	parent, err := n.Fetch(JoinPath(parts[:len(parts)-1]...))
	if err != nil || !parent.IsObject() {
		return false
	}
	name := parts[len(parts)-1]
	i, ok := parent.index[name]
	if !ok {
		return false
	}
	parent.children[i].parent = nil
	parent.children = append(parent.children[:i], parent.children[i+1:]...)
	delete(parent.index, name)
	for j := i; j < len(parent.children); j++ {
		parent.index[parent.children[j].name] = j
	}
	return true
}

// SetObject makes the node an object without children.
func (n *Node) SetObject() {
	n.Reset()
	n.dtype = DataType{ID: ObjectID}
	n.index = make(map[string]int)
}

// Reset clears the node back to empty. Children are detached.
func (n *Node) Reset() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	n.index = nil
	n.resetLeaf()
}

func (n *Node) resetLeaf() {
	n.dtype = DataType{}
	n.data = nil
	n.external = false
}

func (n *Node) setLeaf(dt DataType, data []byte, external bool) {
	n.Reset()
	n.dtype = dt
	n.data = data
	n.external = external
}

// Update merges other into n. Objects are merged child by child, everything
// else replaces what n holds at the same path. Leaves share storage with
// other: external leaves stay external views of the same memory.
func (n *Node) Update(other *Node) {
	switch {
	case other.IsObject():
		for _, c := range other.children {
			n.childNamed(c.name).Update(c)
		}
	case other.IsLeaf():
		n.setLeaf(other.dtype, other.data, other.external)
	}
}

func (n *Node) String() string {
	out, err := n.ToYAML()
	if err != nil {
		return fmt.Sprintf("<conduit.Node %q: %v>", n.Path(), err)
	}
	return out
}
