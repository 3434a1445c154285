package wave

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// NewComputed allocates a computed cell and evaluates it once, synchronously,
// to establish its first value, dependency set and level. A nil eq compares
// strictly when the result type allows it. The evaluator must not form a
// dependency cycle; cycles are undefined behavior.
func (rs *ReactiveSystem) NewComputed(fn func() any, eq EqualsFunc) Handle {
	if eq == nil {
		eq = EqualsStrict
	}
	n := rs.register(KindComputed, eq)
	n.eval = fn
	rs.evaluate(n)
	return Handle{id: n.id}
}

// evaluate re-runs a computed node, rediscovering its dependency set.
//
// Old edges are broken before the evaluator runs because the evaluator may
// read a different set of nodes than last time. New edges and the node's
// level are established afterwards, unless the node disposed itself while
// evaluating. A panicking evaluator counts as "unchanged": the old value is
// kept, dependents are not notified, and the error goes to the onError hook
// so the rest of the wave still drains.
func (rs *ReactiveSystem) evaluate(n *node) {
	prevDeps := rs.activeDeps
	fresh := mapset.NewThreadUnsafeSet[NodeID]()
	rs.activeDeps = fresh

	for _, id := range n.dependsOn.ToSlice() {
		if d := rs.nodes[id]; d != nil {
			d.dependents.Remove(n.id)
		}
	}

	next, err := rs.safeEval(n)

	rs.activeDeps = prevDeps

	if n.disposed {
		return
	}

	n.dependsOn = fresh
	level := 0
	for _, id := range fresh.ToSlice() {
		d := rs.nodes[id]
		if d == nil || d.disposed {
			continue
		}
		d.dependents.Add(n.id)
		if d.level >= level {
			level = d.level + 1
		}
	}
	n.level = level

	if err != nil {
		rs.reportError(n, err)
		return
	}
	if n.equals(n.value, next) {
		return
	}
	n.value = next
	rs.notifyDependents(n)
}

func (rs *ReactiveSystem) safeEval(n *node) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &EvaluationError{Node: Handle{id: n.id}, Cause: recoveredError(r)}
		}
	}()
	return n.eval(), nil
}

// ReadonlySignal is the typed view of a computed cell.
type ReadonlySignal[T any] struct {
	rs *ReactiveSystem
	h  Handle
}

// Computed creates a computed cell with strict == equality for T. The getter
// runs once immediately; nodes it reads become dependencies.
func Computed[T comparable](rs *ReactiveSystem, getter func() T) *ReadonlySignal[T] {
	return &ReadonlySignal[T]{
		rs: rs,
		h:  rs.NewComputed(func() any { return getter() }, EqualsOf[T]()),
	}
}

// ComputedEq creates a computed cell for any result type with an explicit
// equality policy. A nil equals treats every result as a change.
func ComputedEq[T any](rs *ReactiveSystem, getter func() T, equals func(old, next T) bool) *ReadonlySignal[T] {
	eq := EqualsFunc(NeverEqual)
	if equals != nil {
		eq = func(old, next any) bool {
			a, aok := old.(T)
			b, bok := next.(T)
			return aok && bok && equals(a, b)
		}
	}
	return &ReadonlySignal[T]{
		rs: rs,
		h:  rs.NewComputed(func() any { return getter() }, eq),
	}
}

func (s *ReadonlySignal[T]) Value() T {
	return as[T](s.rs.Read(s.h))
}

func (s *ReadonlySignal[T]) Peek() T {
	return as[T](s.rs.Peek(s.h))
}

func (s *ReadonlySignal[T]) Dispose() {
	s.rs.Dispose(s.h)
}

func (s *ReadonlySignal[T]) Handle() Handle {
	return s.h
}
