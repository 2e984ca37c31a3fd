// Package chgraph holds the contraction-hierarchy data model shared by the
// rest of the pipeline: dense node/edge ids, the base node/edge records read
// from a graph file, and the two specialized views built on top of them.
package chgraph

import "fmt"

// NodeId and EdgeId are dense, zero-based identifiers shared by every view
// of a graph. Both spaces are contiguous: nodes in [0, NumNodes), edges in
// [0, NumEdges).
type NodeId = uint32
type EdgeId = uint32

// NoChild marks an absent shortcut child (the file format's -1 sentinel).
const NoChild = ^EdgeId(0)

// Node is a graph vertex: a geographic point plus its CH level. Higher level
// means "more important" — contracted later during preprocessing.
type Node struct {
	Lat, Lon float64
	Level    uint32
}

// Edge is a directed, weighted arc. Child1/Child2 are both NoChild for a
// base edge of the original road network, or both set for a shortcut
// representing the concatenation Child1 then Child2.
type Edge struct {
	Source, Target EdgeEndpoint
	Cost           uint32
	Child1, Child2 EdgeId
}

// EdgeEndpoint is a NodeId; named separately only to keep Edge's field
// meaning obvious at call sites.
type EdgeEndpoint = NodeId

// IsShortcut reports whether e represents the concatenation of two child
// edges rather than a base edge of the original network.
func (e Edge) IsShortcut() bool {
	return e.Child1 != NoChild && e.Child2 != NoChild
}

// Direction filters edges by the relative CH level of the two endpoints.
type Direction int

const (
	Up Direction = iota
	Down
	Both
)

// Base is the common parsed form both views are constructed from: nodes
// indexed by id, edges indexed by id. It carries no derived structure.
type Base struct {
	Nodes []Node
	Edges []Edge
}

// Validate checks the structural invariants spec.md §3 requires of a CH
// input: dense ids (implicit in slice indexing), shortcut child costs that
// sum correctly, and children chaining through a strictly lower level than
// either endpoint. It does not check for cycles among shortcuts; that is
// caught by MetaDAG construction instead.
func (b *Base) Validate() error {
	n := uint32(len(b.Nodes))
	for id, e := range b.Edges {
		if e.Source >= n || e.Target >= n {
			return fmt.Errorf("edge %d: endpoint out of range (source=%d target=%d n=%d)", id, e.Source, e.Target, n)
		}
		if e.IsShortcut() {
			if int(e.Child1) >= len(b.Edges) || int(e.Child2) >= len(b.Edges) {
				return fmt.Errorf("edge %d: child edge id out of range", id)
			}
			c1, c2 := b.Edges[e.Child1], b.Edges[e.Child2]
			if c1.Source != e.Source {
				return fmt.Errorf("edge %d: child1 source %d != edge source %d", id, c1.Source, e.Source)
			}
			if c2.Target != e.Target {
				return fmt.Errorf("edge %d: child2 target %d != edge target %d", id, c2.Target, e.Target)
			}
			if c1.Target != c2.Source {
				return fmt.Errorf("edge %d: child1 target %d != child2 source %d (not a chain)", id, c1.Target, c2.Source)
			}
			if e.Cost != c1.Cost+c2.Cost {
				return fmt.Errorf("edge %d: cost %d != child costs %d+%d", id, e.Cost, c1.Cost, c2.Cost)
			}
			middle := c1.Target
			removedLevel := b.Nodes[middle].Level
			if removedLevel >= b.Nodes[e.Source].Level || removedLevel >= b.Nodes[e.Target].Level {
				return fmt.Errorf("edge %d: removed node %d level %d not below endpoints", id, middle, removedLevel)
			}
		} else if e.Child1 != NoChild || e.Child2 != NoChild {
			return fmt.Errorf("edge %d: malformed children (only one of child1/child2 set)", id)
		}
		if e.Source != e.Target {
			ls, lt := b.Nodes[e.Source].Level, b.Nodes[e.Target].Level
			if ls == lt {
				return fmt.Errorf("edge %d: equal levels %d at source and target, not a valid CH edge", id, ls)
			}
		}
	}
	return nil
}

// DirectionOf classifies a base edge by the relative level of its endpoints.
func (b *Base) DirectionOf(e Edge) Direction {
	if b.Nodes[e.Source].Level < b.Nodes[e.Target].Level {
		return Up
	}
	return Down
}
