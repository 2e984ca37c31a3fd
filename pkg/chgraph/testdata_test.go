package chgraph

// toyBase builds a small CH graph for tests:
//
//	0 -e0-> 1 -e1-> 2 -e2-> 3
//	        e3 = shortcut 0->2 (e0,e1)
//	        e4 = shortcut 0->3 (e3,e2)
//
// Node levels increase 0,1,2,3 so every edge above is an up edge; e3 and e4
// are shortcuts through nodes 1 and 2 respectively. With these levels the
// bypassed nodes are not below node 0, so Validate rejects this graph as a
// CH; tests that need a valid CH relevel it first.
func toyBase() Base {
	nodes := []Node{
		{Lat: 0, Lon: 0, Level: 0},
		{Lat: 0, Lon: 1, Level: 1},
		{Lat: 0, Lon: 2, Level: 2},
		{Lat: 0, Lon: 3, Level: 3},
	}
	edges := []Edge{
		{Source: 0, Target: 1, Cost: 1, Child1: NoChild, Child2: NoChild}, // e0
		{Source: 1, Target: 2, Cost: 2, Child1: NoChild, Child2: NoChild}, // e1
		{Source: 2, Target: 3, Cost: 3, Child1: NoChild, Child2: NoChild}, // e2
		{Source: 0, Target: 2, Cost: 3, Child1: 0, Child2: 1},             // e3 = e0+e1
		{Source: 0, Target: 3, Cost: 6, Child1: 3, Child2: 2},             // e4 = e3+e2
	}
	return Base{Nodes: nodes, Edges: edges}
}
