package hittingset

import "github.com/bernlu/chhitset/pkg/chgraph"

// Path is one weighted CH-edge sequence the hitting set must cover: at
// least one node the hitting set selects must lie on the fully-unpacked
// edge sequence this path represents. Weight defaults to 1 when paths are
// unweighted (every occurrence counts the same).
type Path struct {
	Weight uint64
	Edges  []chgraph.EdgeId
}

// Hit is one output entry: a chosen node and the total weight of the paths
// it covered when it was selected.
type Hit struct {
	Node   chgraph.NodeId
	Weight uint64
}
