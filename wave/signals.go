package wave

// NewMutable allocates a mutable cell holding initial. A nil eq selects a
// policy from the initial value's type: scalar-like values compare strictly,
// anything else counts every write as a change.
func (rs *ReactiveSystem) NewMutable(initial any, eq EqualsFunc) Handle {
	if eq == nil {
		eq = DefaultEquals(initial)
	}
	n := rs.register(KindMutable, eq)
	n.value = initial
	return Handle{id: n.id}
}

// Read returns the node's current value. When called during another node's
// evaluation the read registers a dependency edge. Reads of disposed or
// unknown handles return nil.
func (rs *ReactiveSystem) Read(h Handle) any {
	n := rs.lookup(h)
	if n == nil || n.disposed {
		return nil
	}
	if rs.activeDeps != nil {
		rs.activeDeps.Add(n.id)
	}
	return n.value
}

// Peek returns the node's current value without registering a dependency,
// regardless of tracking context.
func (rs *ReactiveSystem) Peek(h Handle) any {
	n := rs.lookup(h)
	if n == nil || n.disposed {
		return nil
	}
	return n.value
}

// Write stores v into a mutable cell and, when the equality policy says the
// value changed, propagates to the cell's dependents. Writing a computed or
// subscription node returns ErrReadOnlyWrite; writing through a disposed or
// unknown handle returns ErrNodeDisposed.
func (rs *ReactiveSystem) Write(h Handle, v any) error {
	n := rs.lookup(h)
	if n == nil || n.disposed {
		return ErrNodeDisposed
	}
	if n.kind != KindMutable {
		return ErrReadOnlyWrite
	}
	if n.equals(n.value, v) {
		return nil
	}
	n.value = v
	rs.notifyDependents(n)
	return nil
}

// ForceNotify re-enqueues all of the node's dependents without a value
// change, for values mutated in place that the equality policy cannot see.
func (rs *ReactiveSystem) ForceNotify(h Handle) {
	n := rs.lookup(h)
	if n == nil || n.disposed {
		return
	}
	rs.notifyDependents(n)
}

// WriteableSignal is the typed view of a mutable cell.
type WriteableSignal[T any] struct {
	rs *ReactiveSystem
	h  Handle
}

// Signal creates a mutable cell with strict == equality for T.
func Signal[T comparable](rs *ReactiveSystem, initial T) *WriteableSignal[T] {
	return &WriteableSignal[T]{
		rs: rs,
		h:  rs.NewMutable(initial, EqualsOf[T]()),
	}
}

// SignalEq creates a mutable cell for any value type with an explicit
// equality policy. A nil equals treats every write as a change.
func SignalEq[T any](rs *ReactiveSystem, initial T, equals func(old, next T) bool) *WriteableSignal[T] {
	eq := EqualsFunc(NeverEqual)
	if equals != nil {
		eq = func(old, next any) bool {
			a, aok := old.(T)
			b, bok := next.(T)
			return aok && bok && equals(a, b)
		}
	}
	return &WriteableSignal[T]{
		rs: rs,
		h:  rs.NewMutable(initial, eq),
	}
}

func (s *WriteableSignal[T]) Value() T {
	return as[T](s.rs.Read(s.h))
}

func (s *WriteableSignal[T]) Peek() T {
	return as[T](s.rs.Peek(s.h))
}

// SetValue writes the signal. Writes through a disposed signal are silently
// ignored.
func (s *WriteableSignal[T]) SetValue(v T) {
	_ = s.rs.Write(s.h, v)
}

func (s *WriteableSignal[T]) ForceNotify() {
	s.rs.ForceNotify(s.h)
}

func (s *WriteableSignal[T]) Dispose() {
	s.rs.Dispose(s.h)
}

func (s *WriteableSignal[T]) Handle() Handle {
	return s.h
}

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}
