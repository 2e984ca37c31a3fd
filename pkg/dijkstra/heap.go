package dijkstra

import "github.com/bernlu/chhitset/pkg/chgraph"

// pqItem is one entry in the search frontier: the node reached, the cost to
// reach it, and the predecessor edge used to get there.
type pqItem struct {
	node     chgraph.NodeId
	cost     uint32
	prevNode chgraph.NodeId
	prevEdge chgraph.EdgeId
	hasPrev  bool
}

// less reports whether a should pop before b: smaller cost first, ties
// broken by smaller node id (matching the reference implementation's
// reversed-id tie-break in its max-heap encoding of a min-heap).
func (a pqItem) less(b pqItem) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	return a.node < b.node
}

// minHeap is a concrete-typed min-heap for the search frontier. Avoids the
// interface boxing overhead container/heap would add for a hot inner loop.
type minHeap struct {
	items []pqItem
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(item pqItem) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() pqItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *minHeap) Peek() (pqItem, bool) {
	if len(h.items) == 0 {
		return pqItem{}, false
	}
	return h.items[0], true
}

func (h *minHeap) Reset() {
	h.items = h.items[:0]
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.items[i].less(h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].less(h.items[smallest]) {
			smallest = left
		}
		if right < n && h.items[right].less(h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
