package conduit

// WalkFunc is called for each node during traversal.
// path is the path of the node relative to the walk root ("" for the root).
// Return nil to continue walking, ErrStopWalk to stop without an error, or
// any other error to stop and return it.
type WalkFunc func(path string, n *Node) error

// Walk traverses n and all of its descendants depth-first, visiting
// children in insertion order. The callback is called for every node,
// including n itself.
//
// Example:
//
//	conduit.Walk(root, func(path string, n *conduit.Node) error {
//	    if n.IsLeaf() {
//	        fmt.Println(path, n.DataType())
//	    }
//	    return nil
//	})
func Walk(n *Node, fn WalkFunc) error {
	err := walkNode("", n, fn)
	if IsStopWalk(err) {
		return nil
	}
	return err
}

// walkNode recursively walks a node and its children.
func walkNode(path string, n *Node, fn WalkFunc) error {
	if err := fn(path, n); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := walkNode(JoinPath(path, c.name), c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Leaves returns the paths of every leaf under n in walk order.
func Leaves(n *Node) []string {
	var paths []string
	_ = Walk(n, func(path string, c *Node) error {
		if c.IsLeaf() {
			paths = append(paths, path)
		}
		return nil
	})
	return paths
}

// ErrStopWalk can be returned from a WalkFunc to stop walking without an error.
var ErrStopWalk = &walkStopError{}

type walkStopError struct{}

func (e *walkStopError) Error() string { return "walk stopped" }

// IsStopWalk returns true if the error is ErrStopWalk.
func IsStopWalk(err error) bool {
	_, ok := err.(*walkStopError)
	return ok
}
