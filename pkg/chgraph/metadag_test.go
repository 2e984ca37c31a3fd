package chgraph

import "testing"

// TestTopsortedToy mirrors the Rust original's topsorted_toy unit test: every
// shortcut must precede both of its children in topological order.
func TestTopsortedToy(t *testing.T) {
	b := toyBase()
	m, err := BuildMetaDAG(b)
	if err != nil {
		t.Fatalf("BuildMetaDAG: %v", err)
	}

	for _, e := range m.EdgesTopordered() {
		edge := m.Edge(e)
		if !edge.IsShortcut() {
			continue
		}
		eIdx := m.Toporder(e)
		c1Idx := m.Toporder(edge.Child1)
		c2Idx := m.Toporder(edge.Child2)
		if eIdx >= c1Idx {
			t.Errorf("edge %d toporder %d >= child1 %d toporder %d", e, eIdx, edge.Child1, c1Idx)
		}
		if eIdx >= c2Idx {
			t.Errorf("edge %d toporder %d >= child2 %d toporder %d", e, eIdx, edge.Child2, c2Idx)
		}
	}
}

func TestMetaDAGParents(t *testing.T) {
	b := toyBase()
	m, err := BuildMetaDAG(b)
	if err != nil {
		t.Fatalf("BuildMetaDAG: %v", err)
	}

	// e0 and e1 are children of shortcut e3.
	parentsOfE0 := m.EdgeParents(0)
	if len(parentsOfE0) != 1 || parentsOfE0[0] != 3 {
		t.Errorf("EdgeParents(0) = %v, want [3]", parentsOfE0)
	}

	// e3 is a child of shortcut e4.
	parentsOfE3 := m.EdgeParents(3)
	if len(parentsOfE3) != 1 || parentsOfE3[0] != 4 {
		t.Errorf("EdgeParents(3) = %v, want [4]", parentsOfE3)
	}

	// node 0 is an endpoint of base edge e0 only.
	parentsOfNode0 := m.NodeParents(0)
	if len(parentsOfNode0) != 1 || parentsOfNode0[0] != 0 {
		t.Errorf("NodeParents(0) = %v, want [0]", parentsOfNode0)
	}

	// node 2 is an endpoint of base edges e1 and e2.
	parentsOfNode2 := m.NodeParents(2)
	if len(parentsOfNode2) != 2 {
		t.Errorf("NodeParents(2) = %v, want 2 entries", parentsOfNode2)
	}
}

// TestBuildMetaDAGRejectsCycle mirrors a malformed preprocessing output
// where two shortcuts list each other as children, directly or through an
// intermediate shortcut. BuildMetaDAG must error rather than silently
// produce a partial topological order.
func TestBuildMetaDAGRejectsCycle(t *testing.T) {
	nodes := []Node{
		{Lat: 0, Lon: 0, Level: 0},
		{Lat: 0, Lon: 1, Level: 1},
	}
	edges := []Edge{
		{Source: 0, Target: 1, Cost: 1, Child1: 1, Child2: 1}, // e0: shortcut whose child is e1
		{Source: 0, Target: 1, Cost: 1, Child1: 0, Child2: 0}, // e1: shortcut whose child is e0
	}
	b := Base{Nodes: nodes, Edges: edges}
	if _, err := BuildMetaDAG(b); err == nil {
		t.Fatal("BuildMetaDAG accepted a cyclic shortcut graph")
	}
}
