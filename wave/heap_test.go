package wave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeapPopsAscendingLevels(t *testing.T) {
	h := &levelHeap{}
	for _, level := range []int{5, 1, 4, 0, 3, 2} {
		h.push(&node{id: NodeID(level + 1), level: level})
	}

	var got []int
	for {
		n, ok := h.pop()
		if !ok {
			break
		}
		assert.False(t, n.inQueue)
		got = append(got, n.level)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, got)
}

func TestHeapDeduplicatesByInQueueFlag(t *testing.T) {
	h := &levelHeap{}
	n := &node{id: 1, level: 2}

	h.push(n)
	h.push(n)
	h.push(n)
	assert.Equal(t, 1, h.len())

	popped, ok := h.pop()
	assert.True(t, ok)
	assert.Same(t, n, popped)

	// once popped the node may queue again
	h.push(n)
	assert.Equal(t, 1, h.len())
}

func TestHeapSubscriptionLevelDrainsLast(t *testing.T) {
	h := &levelHeap{}
	sub := &node{id: 1, kind: KindSubscription, level: subscriptionLevel}
	h.push(sub)
	h.push(&node{id: 2, level: 7})
	h.push(&node{id: 3, level: 1})

	first, _ := h.pop()
	second, _ := h.pop()
	last, _ := h.pop()
	assert.Equal(t, 1, first.level)
	assert.Equal(t, 7, second.level)
	assert.Same(t, sub, last)
}

func TestHeapEmptyPop(t *testing.T) {
	h := &levelHeap{}
	n, ok := h.pop()
	assert.Nil(t, n)
	assert.False(t, ok)
}
