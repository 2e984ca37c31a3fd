// Package dijkstra implements bidirectional contraction-hierarchy search:
// a forward search relaxing only up-edges from the source side, a backward
// search relaxing only up-edges (in the reversed sense) from the target
// side, each pruned by stall-on-demand, meeting in the middle at the
// cheapest common node.
package dijkstra

import (
	"math"

	"github.com/bernlu/chhitset/pkg/chgraph"
)

const maxCost = math.MaxUint32

// NoNode is the sentinel stored for a node with no predecessor.
const NoNode = ^chgraph.NodeId(0)

// QueryState holds the scratch buffers for one bidirectional search. It is
// built once per graph and reused across queries via Reset, which only
// touches the nodes visited by the previous query instead of the whole
// graph.
type QueryState struct {
	DistFwd     []uint32
	DistBwd     []uint32
	PredNodeFwd []chgraph.NodeId
	PredNodeBwd []chgraph.NodeId
	PredEdgeFwd []chgraph.EdgeId
	PredEdgeBwd []chgraph.EdgeId
	touched     []chgraph.NodeId
	fwdPQ       minHeap
	bwdPQ       minHeap
}

// NewQueryState allocates a QueryState sized for a graph with n nodes.
func NewQueryState(n int) *QueryState {
	qs := &QueryState{
		DistFwd:     make([]uint32, n),
		DistBwd:     make([]uint32, n),
		PredNodeFwd: make([]chgraph.NodeId, n),
		PredNodeBwd: make([]chgraph.NodeId, n),
		PredEdgeFwd: make([]chgraph.EdgeId, n),
		PredEdgeBwd: make([]chgraph.EdgeId, n),
		touched:     make([]chgraph.NodeId, 0, 1024),
	}
	for i := 0; i < n; i++ {
		qs.DistFwd[i] = maxCost
		qs.DistBwd[i] = maxCost
		qs.PredNodeFwd[i] = NoNode
		qs.PredNodeBwd[i] = NoNode
	}
	return qs
}

// Reset clears only the entries touched by the previous search.
func (qs *QueryState) Reset() {
	for _, n := range qs.touched {
		qs.DistFwd[n] = maxCost
		qs.DistBwd[n] = maxCost
		qs.PredNodeFwd[n] = NoNode
		qs.PredNodeBwd[n] = NoNode
	}
	qs.touched = qs.touched[:0]
	qs.fwdPQ.Reset()
	qs.bwdPQ.Reset()
}

func (qs *QueryState) touch(n chgraph.NodeId) {
	if qs.DistFwd[n] == maxCost && qs.DistBwd[n] == maxCost {
		qs.touched = append(qs.touched, n)
	}
}

// Result is the outcome of a Search: the shortest-path cost and the
// sequence of (possibly shortcut) edges from source to target, in order.
type Result struct {
	Cost  uint32
	Edges []chgraph.EdgeId
}

// Search runs bidirectional CH Dijkstra from sources to targets, returning
// the cheapest path over all source/target combinations. It returns
// found=false if no path exists. qs is reset at the start of the call and
// left populated with the final search state.
func Search(rv *chgraph.RoutingView, qs *QueryState, sources, targets []chgraph.NodeId) (Result, bool) {
	qs.Reset()

	for _, s := range sources {
		qs.fwdPQ.Push(pqItem{node: s, cost: 0})
	}
	for _, d := range targets {
		qs.bwdPQ.Push(pqItem{node: d, cost: 0})
	}

	var peakCandidate chgraph.NodeId = NoNode
	candidateCost := uint32(maxCost)

	for {
		fwdTop, haveFwd := qs.fwdPQ.Peek()
		bwdTop, haveBwd := qs.bwdPQ.Peek()

		var settled chgraph.NodeId
		var ok bool
		switch {
		case haveFwd && haveBwd:
			// balance both frontiers by stepping whichever has the cheaper
			// next candidate; forward wins ties.
			if fwdTop.cost <= bwdTop.cost {
				settled, ok = fwdStep(rv, qs)
			} else {
				settled, ok = bwdStep(rv, qs)
			}
		case haveFwd:
			settled, ok = fwdStep(rv, qs)
		case haveBwd:
			settled, ok = bwdStep(rv, qs)
		default:
			if peakCandidate == NoNode {
				return Result{}, false
			}
			edges := reconstructPath(qs, peakCandidate)
			return Result{Cost: candidateCost, Edges: edges}, true
		}

		if ok {
			cf, cb := qs.DistFwd[settled], qs.DistBwd[settled]
			if cf != maxCost && cb != maxCost {
				total := cf + cb
				if peakCandidate == NoNode || total < candidateCost {
					peakCandidate = settled
					candidateCost = total
				}
			}
		}

		if top, have := qs.fwdPQ.Peek(); have && top.cost > candidateCost {
			qs.fwdPQ.Reset()
		}
		if top, have := qs.bwdPQ.Peek(); have && top.cost > candidateCost {
			qs.bwdPQ.Reset()
		}
	}
}

// fwdStep pops and settles one node from the forward frontier, applying
// stall-on-demand before relaxing its up out-edges.
func fwdStep(rv *chgraph.RoutingView, qs *QueryState) (chgraph.NodeId, bool) {
	entry := qs.fwdPQ.Pop()
	if qs.DistFwd[entry.node] != maxCost {
		return 0, false // already settled; entry was stale
	}

	qs.touch(entry.node)
	qs.DistFwd[entry.node] = entry.cost
	if entry.hasPrev {
		qs.PredNodeFwd[entry.node] = entry.prevNode
		qs.PredEdgeFwd[entry.node] = entry.prevEdge
	}

	stall := false
	for _, inEdge := range rv.InEdges(entry.node, chgraph.Down) {
		e := rv.Edge(inEdge)
		if d := qs.DistFwd[e.Source]; d != maxCost && d+e.Cost < entry.cost {
			stall = true
			break
		}
	}

	if !stall {
		for _, edge := range rv.OutEdges(entry.node, chgraph.Up) {
			e := rv.Edge(edge)
			if qs.DistFwd[e.Target] == maxCost {
				qs.fwdPQ.Push(pqItem{
					node: e.Target, cost: entry.cost + e.Cost,
					prevNode: entry.node, prevEdge: edge, hasPrev: true,
				})
			}
		}
	}
	return entry.node, true
}

// bwdStep mirrors fwdStep over the reversed search: stall-on-demand looks
// at up out-edges of the candidate, relaxation walks down in-edges.
func bwdStep(rv *chgraph.RoutingView, qs *QueryState) (chgraph.NodeId, bool) {
	entry := qs.bwdPQ.Pop()
	if qs.DistBwd[entry.node] != maxCost {
		return 0, false
	}

	qs.touch(entry.node)
	qs.DistBwd[entry.node] = entry.cost
	if entry.hasPrev {
		qs.PredNodeBwd[entry.node] = entry.prevNode
		qs.PredEdgeBwd[entry.node] = entry.prevEdge
	}

	stall := false
	for _, outEdge := range rv.OutEdges(entry.node, chgraph.Up) {
		e := rv.Edge(outEdge)
		if d := qs.DistBwd[e.Target]; d != maxCost && d+e.Cost < entry.cost {
			stall = true
			break
		}
	}

	if !stall {
		for _, edge := range rv.InEdges(entry.node, chgraph.Down) {
			e := rv.Edge(edge)
			if qs.DistBwd[e.Source] == maxCost {
				qs.bwdPQ.Push(pqItem{
					node: e.Source, cost: entry.cost + e.Cost,
					prevNode: entry.node, prevEdge: edge, hasPrev: true,
				})
			}
		}
	}
	return entry.node, true
}

// reconstructPath walks PredNodeFwd/PredEdgeFwd from peak back to its
// source, then PredNodeBwd/PredEdgeBwd from peak forward to its target,
// producing one source-to-target edge sequence.
func reconstructPath(qs *QueryState, peak chgraph.NodeId) []chgraph.EdgeId {
	var fwdPath []chgraph.EdgeId
	for n := peak; qs.PredNodeFwd[n] != NoNode; n = qs.PredNodeFwd[n] {
		fwdPath = append(fwdPath, qs.PredEdgeFwd[n])
	}
	for i, j := 0, len(fwdPath)-1; i < j; i, j = i+1, j-1 {
		fwdPath[i], fwdPath[j] = fwdPath[j], fwdPath[i]
	}

	var bwdPath []chgraph.EdgeId
	for n := peak; qs.PredNodeBwd[n] != NoNode; n = qs.PredNodeBwd[n] {
		bwdPath = append(bwdPath, qs.PredEdgeBwd[n])
	}

	return append(fwdPath, bwdPath...)
}
