package wave

// levelHeap is a binary min-heap of nodes keyed by level. A node's inQueue
// flag keeps it from being queued twice in the same wave, which is what
// guarantees a single re-evaluation per node across diamond shapes.
type levelHeap struct {
	items []*node
}

func (h *levelHeap) push(n *node) {
	if n.inQueue {
		return
	}
	n.inQueue = true
	h.items = append(h.items, n)
	h.siftUp(len(h.items) - 1)
}

func (h *levelHeap) pop() (*node, bool) {
	if len(h.items) == 0 {
		return nil, false
	}
	root := h.items[0]
	root.inQueue = false

	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items[last] = nil
	h.items = h.items[:last]
	if last > 0 {
		h.siftDown(0)
	}
	return root, true
}

func (h *levelHeap) len() int {
	return len(h.items)
}

func (h *levelHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[parent].level <= h.items[i].level {
			break
		}
		h.items[parent], h.items[i] = h.items[i], h.items[parent]
		i = parent
	}
}

func (h *levelHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		if l := 2*i + 1; l < n && h.items[l].level < h.items[smallest].level {
			smallest = l
		}
		if r := 2*i + 2; r < n && h.items[r].level < h.items[smallest].level {
			smallest = r
		}
		if smallest == i {
			return
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
