package chgraph

import "sort"

// RoutingView is the adjacency-array view used by online CH queries: two
// CSR arrays (outgoing edges grouped by source, incoming edges grouped by
// target), each further split into an up-segment and a down-segment so a
// query can ask for "only the up edges out of this node" without scanning
// past the ones it doesn't need.
//
// A node's outgoing edges are sorted by the level of their target so the
// down edges (target level < this node's level) come first, then the up
// edges. Incoming edges are sorted symmetrically by the level of their
// source: up edges (source level < this node's level) first, then down.
type RoutingView struct {
	base Base

	offsetsOut []uint32 // len n+1
	edgesOut   []EdgeId // len m, grouped by source
	splitOut   []uint32 // len n, offsetsOut[i] + splitOut[i] = first up-edge index

	offsetsIn []uint32 // len n+1
	edgesIn   []EdgeId // len m, grouped by target
	splitIn   []uint32 // len n, offsetsIn[i] + splitIn[i] = first down-edge index
}

// BuildRoutingView constructs a RoutingView from b. It assumes
// b.Validate() has already passed.
func BuildRoutingView(b Base) *RoutingView {
	n := uint32(len(b.Nodes))
	m := len(b.Edges)

	rv := &RoutingView{base: b}

	// outgoing: group by source, then order within each group by target level.
	byOut := make([]EdgeId, m)
	for i := range byOut {
		byOut[i] = EdgeId(i)
	}
	sort.Slice(byOut, func(i, j int) bool {
		ei, ej := b.Edges[byOut[i]], b.Edges[byOut[j]]
		if ei.Source != ej.Source {
			return ei.Source < ej.Source
		}
		return b.Nodes[ei.Target].Level < b.Nodes[ej.Target].Level
	})
	rv.offsetsOut = make([]uint32, n+1)
	for _, e := range byOut {
		rv.offsetsOut[b.Edges[e].Source+1]++
	}
	for i := uint32(1); i <= n; i++ {
		rv.offsetsOut[i] += rv.offsetsOut[i-1]
	}
	rv.edgesOut = byOut
	rv.splitOut = make([]uint32, n)
	for node := uint32(0); node < n; node++ {
		start, end := rv.offsetsOut[node], rv.offsetsOut[node+1]
		level := b.Nodes[node].Level
		seg := rv.edgesOut[start:end]
		k := sort.Search(len(seg), func(i int) bool {
			return b.Nodes[b.Edges[seg[i]].Target].Level >= level
		})
		rv.splitOut[node] = uint32(k)
	}

	// incoming: group by target, then order within each group by source level.
	byIn := make([]EdgeId, m)
	for i := range byIn {
		byIn[i] = EdgeId(i)
	}
	sort.Slice(byIn, func(i, j int) bool {
		ei, ej := b.Edges[byIn[i]], b.Edges[byIn[j]]
		if ei.Target != ej.Target {
			return ei.Target < ej.Target
		}
		return b.Nodes[ei.Source].Level < b.Nodes[ej.Source].Level
	})
	rv.offsetsIn = make([]uint32, n+1)
	for _, e := range byIn {
		rv.offsetsIn[b.Edges[e].Target+1]++
	}
	for i := uint32(1); i <= n; i++ {
		rv.offsetsIn[i] += rv.offsetsIn[i-1]
	}
	rv.edgesIn = byIn
	rv.splitIn = make([]uint32, n)
	for node := uint32(0); node < n; node++ {
		start, end := rv.offsetsIn[node], rv.offsetsIn[node+1]
		level := b.Nodes[node].Level
		seg := rv.edgesIn[start:end]
		k := sort.Search(len(seg), func(i int) bool {
			return b.Nodes[b.Edges[seg[i]].Source].Level >= level
		})
		rv.splitIn[node] = uint32(k)
	}

	return rv
}

func (rv *RoutingView) NumNodes() int { return len(rv.base.Nodes) }
func (rv *RoutingView) NumEdges() int { return len(rv.base.Edges) }

// Node returns the node record for id.
func (rv *RoutingView) Node(id NodeId) Node { return rv.base.Nodes[id] }

// Edge returns the edge record for id.
func (rv *RoutingView) Edge(id EdgeId) Edge { return rv.base.Edges[id] }

// OutEdges returns the outgoing edges of node, restricted to dir. Up means
// edges whose target has a strictly higher level than node; Down the
// reverse. Both returns every outgoing edge.
func (rv *RoutingView) OutEdges(node NodeId, dir Direction) []EdgeId {
	start, end := rv.offsetsOut[node], rv.offsetsOut[node+1]
	seg := rv.edgesOut[start:end]
	split := rv.splitOut[node]
	switch dir {
	case Down:
		return seg[:split]
	case Up:
		return seg[split:]
	default:
		return seg
	}
}

// InEdges returns the incoming edges of node, restricted to dir. Up means
// edges whose source has a strictly lower level than node; Down the
// reverse.
func (rv *RoutingView) InEdges(node NodeId, dir Direction) []EdgeId {
	start, end := rv.offsetsIn[node], rv.offsetsIn[node+1]
	seg := rv.edgesIn[start:end]
	split := rv.splitIn[node]
	switch dir {
	case Up:
		return seg[:split]
	case Down:
		return seg[split:]
	default:
		return seg
	}
}

// UnpackEdge expands edge into the sequence of base (non-shortcut) edges it
// represents, appending them to dst in source-to-target order. A base edge
// unpacks to itself.
func (rv *RoutingView) UnpackEdge(edge EdgeId, dst []EdgeId) []EdgeId {
	e := rv.base.Edges[edge]
	if !e.IsShortcut() {
		return append(dst, edge)
	}
	dst = rv.UnpackEdge(e.Child1, dst)
	dst = rv.UnpackEdge(e.Child2, dst)
	return dst
}

// UnpackPath expands a sequence of (possibly shortcut) edges into the
// sequence of base edges it represents.
func (rv *RoutingView) UnpackPath(path []EdgeId) []EdgeId {
	out := make([]EdgeId, 0, len(path))
	for _, e := range path {
		out = rv.UnpackEdge(e, out)
	}
	return out
}
