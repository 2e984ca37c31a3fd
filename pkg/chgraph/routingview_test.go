package chgraph

import (
	"reflect"
	"testing"
)

func TestRoutingViewOutUpDownSplit(t *testing.T) {
	b := toyBase()
	rv := BuildRoutingView(b)

	// node 0 has three up out-edges (e0 to node1, e3 to node2, e4 to node3)
	// and no down out-edges.
	up := rv.OutEdges(0, Up)
	if len(up) != 3 {
		t.Errorf("OutEdges(0, Up) = %v, want 3 edges", up)
	}
	down := rv.OutEdges(0, Down)
	if len(down) != 0 {
		t.Errorf("OutEdges(0, Down) = %v, want 0 edges", down)
	}
	both := rv.OutEdges(0, Both)
	if len(both) != 3 {
		t.Errorf("OutEdges(0, Both) = %v, want 3 edges", both)
	}
}

func TestRoutingViewInUpDownSplit(t *testing.T) {
	b := toyBase()
	rv := BuildRoutingView(b)

	// node 2 has incoming up edges from node 1 (e1) and node 0 (e3); no down
	// in-edges since no higher-level node points into it in this toy graph.
	up := rv.InEdges(2, Up)
	if len(up) != 2 {
		t.Errorf("InEdges(2, Up) = %v, want 2 edges", up)
	}
	down := rv.InEdges(2, Down)
	if len(down) != 0 {
		t.Errorf("InEdges(2, Down) = %v, want 0 edges", down)
	}
}

func TestUnpackEdgeBase(t *testing.T) {
	b := toyBase()
	rv := BuildRoutingView(b)
	got := rv.UnpackEdge(0, nil)
	want := []EdgeId{0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnpackEdge(0) = %v, want %v", got, want)
	}
}

func TestUnpackEdgeShortcutRecursive(t *testing.T) {
	b := toyBase()
	rv := BuildRoutingView(b)
	// e4 = e3 + e2 = (e0+e1) + e2, fully unpacks to [e0, e1, e2].
	got := rv.UnpackEdge(4, nil)
	want := []EdgeId{0, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnpackEdge(4) = %v, want %v", got, want)
	}
}

func TestUnpackPath(t *testing.T) {
	b := toyBase()
	rv := BuildRoutingView(b)
	got := rv.UnpackPath([]EdgeId{3, 2})
	want := []EdgeId{0, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnpackPath([3,2]) = %v, want %v", got, want)
	}
}
