package hittingset

import "github.com/bernlu/chhitset/pkg/chgraph"

// edgeHeapItem orders edges by their meta-DAG topological position: the
// explorative scan must process an edge before any child it pushes, so the
// smallest toporder must pop first. Ties broken by edge id for determinism.
type edgeHeapItem struct {
	edge     chgraph.EdgeId
	toporder int
}

func (a edgeHeapItem) less(b edgeHeapItem) bool {
	if a.toporder != b.toporder {
		return a.toporder < b.toporder
	}
	return a.edge < b.edge
}

// edgeMinHeap is a concrete-typed min-heap over edgeHeapItem, avoiding the
// interface overhead container/heap would add in this hot loop.
type edgeMinHeap struct {
	items []edgeHeapItem
}

func (h *edgeMinHeap) Len() int { return len(h.items) }

func (h *edgeMinHeap) Push(item edgeHeapItem) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

func (h *edgeMinHeap) Pop() edgeHeapItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *edgeMinHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.items[i].less(h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *edgeMinHeap) siftDown(i int) {
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
