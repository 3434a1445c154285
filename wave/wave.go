// Package wave is a reactive dependency-tracking engine. Mutable cells hold
// externally written values, computed cells derive values by re-running a
// function that reads other cells, and subscriptions run side effects after a
// wave of changes settles. Re-evaluation is ordered by topological level
// through a min-heap, so each affected node runs at most once per wave no
// matter how many of its inputs changed.
//
// The engine is single-threaded and cooperative: nothing blocks, and all
// batching is deferred synchronous work. Constructing a cyclic dependency
// graph is undefined behavior; the engine performs no cycle detection.
package wave

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// ReactiveSystem owns the node arena, the tracking context, the batch depth
// and the update queue. All operations on a system must come from one
// goroutine.
type ReactiveSystem struct {
	nextID NodeID
	nodes  map[NodeID]*node

	// activeDeps is the dependency set of the node currently evaluating;
	// nil means reads are untracked. pauseStack saves it across explicit
	// PauseTracking calls.
	activeDeps mapset.Set[NodeID]
	pauseStack []mapset.Set[NodeID]

	batchDepth int
	flushing   bool
	queue      levelHeap

	onError OnErrorFunc
}

// NewReactiveSystem creates an empty system. onError receives errors
// recovered from evaluators; it may be nil, in which case such errors are
// dropped. The hook can be replaced later with SetOnError.
func NewReactiveSystem(onError OnErrorFunc) *ReactiveSystem {
	return &ReactiveSystem{
		nodes:   map[NodeID]*node{},
		onError: onError,
	}
}

// SetOnError replaces the uncaught-evaluation-error hook.
func (rs *ReactiveSystem) SetOnError(fn OnErrorFunc) {
	rs.onError = fn
}

// StartBatch opens an atomic update region. Propagation requests made while
// any region is open only enqueue; nothing re-evaluates until the outermost
// region closes.
func (rs *ReactiveSystem) StartBatch() {
	rs.batchDepth++
}

// EndBatch closes the innermost region and drains the queue when it was the
// outermost one.
func (rs *ReactiveSystem) EndBatch() {
	rs.batchDepth--
	if rs.batchDepth == 0 {
		rs.flush()
	}
}

// Batch runs fn inside a batch region. Regions nest.
func (rs *ReactiveSystem) Batch(fn func()) {
	rs.StartBatch()
	defer rs.EndBatch()
	fn()
}

// PauseTracking suspends dependency discovery until the matching
// ResumeTracking, so reads in between do not register edges.
func (rs *ReactiveSystem) PauseTracking() {
	rs.pauseStack = append(rs.pauseStack, rs.activeDeps)
	rs.activeDeps = nil
}

// ResumeTracking restores the tracking context saved by the last
// PauseTracking.
func (rs *ReactiveSystem) ResumeTracking() {
	lastIdx := len(rs.pauseStack) - 1
	rs.activeDeps = rs.pauseStack[lastIdx]
	rs.pauseStack = rs.pauseStack[:lastIdx]
}

// notifyDependents queues every live dependent of n. The enqueues are wrapped
// in an implicit batch so a lone write still drains exactly once, at the top
// level.
func (rs *ReactiveSystem) notifyDependents(n *node) {
	if n.dependents.Cardinality() == 0 {
		return
	}
	rs.StartBatch()
	for _, id := range n.dependents.ToSlice() {
		if d := rs.nodes[id]; d != nil && !d.disposed {
			rs.queue.push(d)
		}
	}
	rs.EndBatch()
}

// flush drains the queue in ascending level order. Writes performed by
// evaluators during the drain enqueue into the same wave; the re-entrancy
// guard keeps nested EndBatch calls from starting a second drain.
func (rs *ReactiveSystem) flush() {
	if rs.flushing {
		return
	}
	rs.flushing = true
	defer func() { rs.flushing = false }()

	for {
		n, ok := rs.queue.pop()
		if !ok {
			return
		}
		if n.disposed {
			continue
		}
		switch n.kind {
		case KindComputed:
			rs.evaluate(n)
		case KindSubscription:
			rs.runAction(n)
		}
	}
}
