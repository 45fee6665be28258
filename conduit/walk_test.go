package conduit

import (
	"errors"
	"testing"
)

func buildWalkTree() *Node {
	root := NewNode()
	root.Child("coordsets/coords/type").SetString("explicit")
	SetSlice(root.Child("coordsets/coords/values/x"), []float32{0, 1})
	root.Child("topologies/mesh/type").SetString("unstructured")
	return root
}

func TestWalkOrder(t *testing.T) {
	root := buildWalkTree()

	var paths []string
	err := Walk(root, func(path string, n *Node) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{
		"",
		"coordsets",
		"coordsets/coords",
		"coordsets/coords/type",
		"coordsets/coords/values",
		"coordsets/coords/values/x",
		"topologies",
		"topologies/mesh",
		"topologies/mesh/type",
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d nodes, got %d: %v", len(want), len(paths), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("node %d: got %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestWalkStop(t *testing.T) {
	root := buildWalkTree()

	count := 0
	err := Walk(root, func(path string, n *Node) error {
		count++
		if path == "coordsets/coords" {
			return ErrStopWalk
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ErrStopWalk should not surface, got %v", err)
	}
	if count != 3 {
		t.Errorf("expected walk to stop after 3 nodes, visited %d", count)
	}
}

func TestWalkError(t *testing.T) {
	root := buildWalkTree()
	boom := errors.New("boom")

	err := Walk(root, func(path string, n *Node) error {
		if n.IsLeaf() {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestLeaves(t *testing.T) {
	got := Leaves(buildWalkTree())
	want := []string{"coordsets/coords/type", "coordsets/coords/values/x", "topologies/mesh/type"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("leaf %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsStopWalk(t *testing.T) {
	if !IsStopWalk(ErrStopWalk) {
		t.Error("IsStopWalk(ErrStopWalk) should be true")
	}
	if IsStopWalk(errors.New("walk stopped")) {
		t.Error("IsStopWalk should not match other errors")
	}
}
