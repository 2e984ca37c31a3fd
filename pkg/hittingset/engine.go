// Package hittingset implements the adaptive weighted hitting-set heuristic:
// repeatedly pick the node covering the most remaining path weight, remove
// every path it hits, and keep the running histogram up to date by either
// rescanning everything or exploring just the affected subtree of the
// meta-DAG, whichever is cheaper for the current iteration's shape.
package hittingset

import (
	"log"
	"sort"
	"time"

	"github.com/bernlu/chhitset/pkg/chgraph"
)

// DefaultAdaptiveThreshold is the path count at which a full O(m) rescan is
// preferred over an explorative scan seeded from the affected subtree: the
// full rescan runs only when both the paths just hit and the paths still
// live number at least this many.
const DefaultAdaptiveThreshold = 400000

// Engine computes a weighted hitting set over a set of paths through a
// meta-DAG.
type Engine struct {
	hist              []uint64 // hist[node] = weight of remaining paths passing through node
	graph             *chgraph.MetaDAG
	edgePathMap       [][]int // edgePathMap[edge] = path indices that use edge
	paths             []Path
	adaptiveThreshold int
}

// New creates an Engine with the default adaptive threshold.
func New(graph *chgraph.MetaDAG, paths []Path) *Engine {
	return NewWithThreshold(graph, paths, DefaultAdaptiveThreshold)
}

// NewWithThreshold creates an Engine with an explicit adaptive threshold.
func NewWithThreshold(graph *chgraph.MetaDAG, paths []Path, adaptiveThreshold int) *Engine {
	edgePathMap := make([][]int, graph.NumEdges())
	for id, p := range paths {
		for _, e := range p.Edges {
			edgePathMap[e] = append(edgePathMap[e], id)
		}
	}
	return &Engine{
		hist:              make([]uint64, graph.NumNodes()),
		graph:             graph,
		edgePathMap:       edgePathMap,
		paths:             paths,
		adaptiveThreshold: adaptiveThreshold,
	}
}

// Run computes the hitting set with no iteration limit and no progress
// logging.
func (e *Engine) Run() []Hit {
	return e.RunWithStats(false, -1)
}

// RunWithStats computes the hitting set. If printStats is true, one
// log.Printf line is emitted per iteration. If maxIter >= 0, the loop stops
// after that many iterations even if paths remain uncovered.
func (e *Engine) RunWithStats(printStats bool, maxIter int) []Hit {
	e.scanEdgesFull(false)

	var hittingSet []Hit
	numPaths := len(e.paths)
	iteration := 0

	for {
		iteration++
		if maxIter >= 0 && iteration > maxIter {
			return hittingSet
		}

		start := time.Now()
		hitter, maxOcc := argmax(e.hist)
		if maxOcc == 0 {
			break
		}

		var removed []Path
		for i := range e.hitPaths(hitter) {
			p := &e.paths[i]
			if len(p.Edges) == 0 {
				continue
			}
			removed = append(removed, Path{Weight: p.Weight, Edges: p.Edges})
			p.Edges = nil
		}
		numPaths -= len(removed)

		var removedWeight uint64
		for _, r := range removed {
			removedWeight += r.Weight
		}
		hittingSet = append(hittingSet, Hit{Node: hitter, Weight: removedWeight})

		switch {
		case len(removed) < e.adaptiveThreshold || numPaths < e.adaptiveThreshold:
			if len(removed) < numPaths {
				e.scanEdgesExplore(removed, true)
			} else {
				e.scanEdgesExplore(e.paths, false)
			}
		default:
			e.scanEdgesFull(false)
		}

		if printStats {
			log.Printf("iteration=%d time=%s hit_paths=%d paths_left=%d weighted_hit=%d",
				iteration, time.Since(start), len(removed), numPaths, removedWeight)
		}
	}

	return hittingSet
}

// LowerBound computes a lower bound on the minimum hitting set size: for
// each not-yet-covered path in order, find every path it intersects (shares
// a node with, via the meta-DAG), mark them all covered, and count once.
func (e *Engine) LowerBound() int {
	pathsTodo := make([]bool, len(e.paths))
	for i, p := range e.paths {
		pathsTodo[i] = len(p.Edges) > 0
	}

	lower := 0
	for id := range e.paths {
		if !pathsTodo[id] {
			continue
		}
		for other := range e.intersectingPaths(id, pathsTodo) {
			pathsTodo[other] = false
		}
		lower++
	}
	return lower
}

// argmax returns the index and value of the first (smallest-index) maximum
// entry in hist.
func argmax(hist []uint64) (chgraph.NodeId, uint64) {
	var best int
	var bestVal uint64
	for i, v := range hist {
		if v > bestVal {
			best, bestVal = i, v
		}
	}
	return chgraph.NodeId(best), bestVal
}

// hitPaths returns the indices of every path passing through hitter: the
// base edges incident to hitter, then every shortcut built on top of any of
// those edges, transitively.
func (e *Engine) hitPaths(hitter chgraph.NodeId) map[int]struct{} {
	hit := make(map[int]struct{})
	visited := make([]bool, e.graph.NumEdges())

	queue := append([]chgraph.EdgeId(nil), e.graph.NodeParents(hitter)...)
	for _, edge := range queue {
		visited[edge] = true
	}
	for len(queue) > 0 {
		edge := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		for _, p := range e.edgePathMap[edge] {
			hit[p] = struct{}{}
		}
		for _, parent := range e.graph.EdgeParents(edge) {
			if !visited[parent] {
				visited[parent] = true
				queue = append(queue, parent)
			}
		}
	}
	return hit
}

// intersectingPaths returns the still-todo path indices that share any node
// with path pathID, by walking the meta-DAG both down into shortcut
// children and up into parent shortcuts from every edge on the path.
func (e *Engine) intersectingPaths(pathID int, pathsTodo []bool) map[int]struct{} {
	res := make(map[int]struct{})

	upVisited := make([]bool, e.graph.NumEdges())
	downVisited := make([]bool, e.graph.NumEdges())
	var upQueue, downQueue []chgraph.EdgeId

	for _, edge := range e.paths[pathID].Edges {
		if !upVisited[edge] {
			upQueue = append(upQueue, edge)
			upVisited[edge] = true
		}
		if !downVisited[edge] {
			downQueue = append(downQueue, edge)
			downVisited[edge] = true
		}
	}

	for len(downQueue) > 0 {
		edge := downQueue[len(downQueue)-1]
		downQueue = downQueue[:len(downQueue)-1]

		for _, p := range e.edgePathMap[edge] {
			if pathsTodo[p] {
				res[p] = struct{}{}
			}
		}

		ed := e.graph.Edge(edge)
		if ed.IsShortcut() {
			for _, c := range [2]chgraph.EdgeId{ed.Child1, ed.Child2} {
				if !downVisited[c] {
					downQueue = append(downQueue, c)
					downVisited[c] = true
				}
				if !upVisited[c] {
					upQueue = append(upQueue, c)
					upVisited[c] = true
				}
			}
		} else {
			for _, node := range [2]chgraph.NodeId{ed.Source, ed.Target} {
				for _, parent := range e.graph.NodeParents(node) {
					if parent != edge && !upVisited[parent] {
						upQueue = append(upQueue, parent)
						upVisited[parent] = true
					}
				}
			}
		}
	}

	for len(upQueue) > 0 {
		edge := upQueue[len(upQueue)-1]
		upQueue = upQueue[:len(upQueue)-1]

		for _, p := range e.edgePathMap[edge] {
			if pathsTodo[p] {
				res[p] = struct{}{}
			}
		}
		for _, parent := range e.graph.EdgeParents(edge) {
			if !upVisited[parent] {
				upQueue = append(upQueue, parent)
				upVisited[parent] = true
			}
		}
	}

	return res
}

// scanEdgesFull rebuilds (update=false) or incrementally updates
// (update=true, subtracting) the node histogram from every path, walking
// the full edge set in topological order exactly once.
func (e *Engine) scanEdgesFull(update bool) {
	if !update {
		for i := range e.hist {
			e.hist[i] = 0
		}
	}
	edgesHist := make([]uint64, e.graph.NumEdges())

	for _, p := range e.paths {
		if len(p.Edges) > 0 {
			source := e.graph.Edge(p.Edges[0]).Source
			if update {
				e.hist[source] -= p.Weight
			} else {
				e.hist[source] += p.Weight
			}
		}
		for _, edge := range p.Edges {
			edgesHist[edge] += p.Weight
		}
	}

	for _, edge := range e.graph.EdgesTopordered() {
		ed := e.graph.Edge(edge)
		if ed.IsShortcut() {
			edgesHist[ed.Child1] += edgesHist[edge]
			edgesHist[ed.Child2] += edgesHist[edge]
		} else {
			if update {
				e.hist[ed.Target] -= edgesHist[edge]
			} else {
				e.hist[ed.Target] += edgesHist[edge]
			}
		}
	}
}

// scanEdgesExplore is scanEdgesFull restricted to the edges actually used
// by paths, seeded into a heap ordered by topological position so a
// shortcut is only expanded into its children once.
func (e *Engine) scanEdgesExplore(paths []Path, update bool) {
	if !update {
		for i := range e.hist {
			e.hist[i] = 0
		}
	}
	edgesHist := make([]uint64, e.graph.NumEdges())

	for _, p := range paths {
		if len(p.Edges) > 0 {
			source := e.graph.Edge(p.Edges[0]).Source
			if update {
				e.hist[source] -= p.Weight
			} else {
				e.hist[source] += p.Weight
			}
		}
		for _, edge := range p.Edges {
			edgesHist[edge] += p.Weight
		}
	}

	uniqueEdges := uniqueSortedEdges(paths)

	var pq edgeMinHeap
	for _, edge := range uniqueEdges {
		pq.Push(edgeHeapItem{edge: edge, toporder: e.graph.Toporder(edge)})
	}

	for pq.Len() > 0 {
		item := pq.Pop()
		edge := item.edge
		ed := e.graph.Edge(edge)
		if ed.IsShortcut() {
			// a nonzero histogram entry proves the child is already queued,
			// either from the initial seed set or pushed by an earlier
			// parent, so pushing it again would double-process it.
			if edgesHist[ed.Child1] == 0 {
				pq.Push(edgeHeapItem{edge: ed.Child1, toporder: e.graph.Toporder(ed.Child1)})
			}
			if edgesHist[ed.Child2] == 0 {
				pq.Push(edgeHeapItem{edge: ed.Child2, toporder: e.graph.Toporder(ed.Child2)})
			}
			edgesHist[ed.Child1] += edgesHist[edge]
			edgesHist[ed.Child2] += edgesHist[edge]
		} else {
			if update {
				e.hist[ed.Target] -= edgesHist[edge]
			} else {
				e.hist[ed.Target] += edgesHist[edge]
			}
		}
	}
}

func uniqueSortedEdges(paths []Path) []chgraph.EdgeId {
	seen := make(map[chgraph.EdgeId]struct{})
	for _, p := range paths {
		for _, e := range p.Edges {
			seen[e] = struct{}{}
		}
	}
	out := make([]chgraph.EdgeId, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	// order only affects initial heap construction, not the result, since
	// the heap is reordered by toporder regardless.
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
