package verify

import (
	"context"
	"testing"

	"github.com/bernlu/chhitset/pkg/chgraph"
	"github.com/bernlu/chhitset/pkg/hittingset"
)

func toyBase() chgraph.Base {
	nodes := []chgraph.Node{{Level: 0}, {Level: 1}, {Level: 2}, {Level: 3}}
	edges := []chgraph.Edge{
		{Source: 0, Target: 1, Cost: 1, Child1: chgraph.NoChild, Child2: chgraph.NoChild},
		{Source: 1, Target: 2, Cost: 2, Child1: chgraph.NoChild, Child2: chgraph.NoChild},
		{Source: 2, Target: 3, Cost: 3, Child1: chgraph.NoChild, Child2: chgraph.NoChild},
		{Source: 0, Target: 2, Cost: 3, Child1: 0, Child2: 1},
	}
	return chgraph.Base{Nodes: nodes, Edges: edges}
}

func TestCoverPathsAcceptsCompleteHittingSet(t *testing.T) {
	base := toyBase()
	rv := chgraph.BuildRoutingView(base)
	paths := []hittingset.Path{
		{Weight: 1, Edges: []chgraph.EdgeId{3}}, // shortcut 0->2, base edges 0,1
		{Weight: 1, Edges: []chgraph.EdgeId{2}}, // 2->3
	}
	hit := map[chgraph.NodeId]bool{1: true, 2: true}
	if err := CoverPaths(context.Background(), rv, paths, hit, 4); err != nil {
		t.Errorf("CoverPaths returned %v, want nil", err)
	}
}

func TestCoverPathsRejectsMissingCoverage(t *testing.T) {
	base := toyBase()
	rv := chgraph.BuildRoutingView(base)
	paths := []hittingset.Path{
		{Weight: 1, Edges: []chgraph.EdgeId{3}},
		{Weight: 1, Edges: []chgraph.EdgeId{2}},
	}
	hit := map[chgraph.NodeId]bool{1: true} // misses path 2->3
	if err := CoverPaths(context.Background(), rv, paths, hit, 4); err == nil {
		t.Error("CoverPaths returned nil for an incomplete hitting set")
	}
}

func TestCoverPathsSkipsEmptyPaths(t *testing.T) {
	base := toyBase()
	rv := chgraph.BuildRoutingView(base)
	paths := []hittingset.Path{{Weight: 1}}
	if err := CoverPaths(context.Background(), rv, paths, map[chgraph.NodeId]bool{}, 4); err != nil {
		t.Errorf("CoverPaths on an empty path returned %v, want nil", err)
	}
}
