package chgraph

import "fmt"

// MetaDAG is the "meta-DAG" view used by the hitting-set engine: edges
// ordered so that every shortcut appears strictly before both of its
// children, plus a reverse index from each edge/node to the shortcuts that
// were built on top of it ("parents" in the DAG of edge replacements).
//
// An edge's parents, base edge or shortcut alike, are the shortcuts that
// list it as a child. Each node in addition records the base edges it is an
// endpoint of, the entry points for walking up from a node.
type MetaDAG struct {
	base Base

	// nodeParents[n] lists the base edges that have node n as source or
	// target.
	nodeParents [][]EdgeId

	// edgeParents[e] lists the shortcuts whose Child1 or Child2 is e.
	edgeParents [][]EdgeId

	// order is the edge ids sorted into topological order (child before
	// parent shortcut, reversed to parent-before-child since construction
	// walks from parents down to children then reverses).
	order []EdgeId

	// toporder[e] is the position of edge e within order.
	toporder []int
}

// BuildMetaDAG computes parent lists and a topological order over b's
// edges. It assumes b.Validate() has already passed. It returns an error if
// the shortcut child relation contains a cycle, since a cyclic replacement
// DAG has no valid topological order.
func BuildMetaDAG(b Base) (*MetaDAG, error) {
	numNodes := len(b.Nodes)
	numEdges := len(b.Edges)

	m := &MetaDAG{
		base:        b,
		nodeParents: make([][]EdgeId, numNodes),
		edgeParents: make([][]EdgeId, numEdges),
	}

	for id := range b.Edges {
		e := b.Edges[id]
		eid := EdgeId(id)
		if e.IsShortcut() {
			m.edgeParents[e.Child1] = append(m.edgeParents[e.Child1], eid)
			m.edgeParents[e.Child2] = append(m.edgeParents[e.Child2], eid)
		} else {
			m.nodeParents[e.Source] = append(m.nodeParents[e.Source], eid)
			m.nodeParents[e.Target] = append(m.nodeParents[e.Target], eid)
		}
	}

	order, err := topSortEdges(b)
	if err != nil {
		return nil, err
	}
	m.order = order
	m.toporder = make([]int, numEdges)
	for idx, eid := range m.order {
		m.toporder[eid] = idx
	}
	return m, nil
}

// topSortEdges returns edge ids ordered so that a shortcut precedes both of
// its children: a DFS postorder over the child relation, reversed. It
// tracks the in-progress ("gray") call stack separately from the
// already-finished ("black") set so a child that loops back into an
// ancestor shortcut is reported as a cycle instead of silently treated as
// already visited.
func topSortEdges(b Base) ([]EdgeId, error) {
	const (
		white = iota
		gray
		black
	)
	color := make([]uint8, len(b.Edges))
	order := make([]EdgeId, 0, len(b.Edges))

	var visit func(id EdgeId) error
	visit = func(id EdgeId) error {
		color[id] = gray
		e := b.Edges[id]
		if e.IsShortcut() {
			for _, child := range [2]EdgeId{e.Child1, e.Child2} {
				switch color[child] {
				case gray:
					return fmt.Errorf("metadag: cycle in shortcut children: edge %d", child)
				case white:
					if err := visit(child); err != nil {
						return err
					}
				}
			}
		}
		color[id] = black
		order = append(order, id)
		return nil
	}

	for id := range b.Edges {
		if color[id] == white {
			if err := visit(EdgeId(id)); err != nil {
				return nil, err
			}
		}
	}

	// reverse in place: postorder puts children before parents, we want
	// parents (shortcuts) before children.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}

// NumNodes and NumEdges mirror Base's sizes.
func (m *MetaDAG) NumNodes() int { return len(m.base.Nodes) }
func (m *MetaDAG) NumEdges() int { return len(m.base.Edges) }

// Edge returns the edge record for id.
func (m *MetaDAG) Edge(id EdgeId) Edge { return m.base.Edges[id] }

// Node returns the node record for id.
func (m *MetaDAG) Node(id NodeId) Node { return m.base.Nodes[id] }

// Toporder returns the position of edge id in the topological order: for
// any shortcut e, Toporder(e) < Toporder(child) for both of its children.
func (m *MetaDAG) Toporder(id EdgeId) int { return m.toporder[id] }

// EdgesTopordered returns all edge ids in topological order.
func (m *MetaDAG) EdgesTopordered() []EdgeId { return m.order }

// EdgeParents returns the shortcuts built directly on top of edge id (those
// listing it as Child1 or Child2).
func (m *MetaDAG) EdgeParents(id EdgeId) []EdgeId { return m.edgeParents[id] }

// NodeParents returns the base edges incident to node id — the entry point
// for walking "up" from a node into the shortcuts covering it.
func (m *MetaDAG) NodeParents(id NodeId) []EdgeId { return m.nodeParents[id] }
