package wave

// Subscribe registers an action re-run whenever any of the watched nodes
// changes. The watch list is explicit; the action body runs with tracking
// paused, so it may read any cell without creating accidental edges.
// Subscriptions carry the maximum level, which means the action always
// observes a fully settled wave: every affected computed node has already
// re-evaluated. The action runs once at construction.
func (rs *ReactiveSystem) Subscribe(action func(), watch ...Handle) Handle {
	n := rs.register(KindSubscription, nil)
	n.level = subscriptionLevel
	n.action = action
	for _, h := range watch {
		d := rs.lookup(h)
		if d == nil || d.disposed {
			continue
		}
		n.watched = append(n.watched, d.id)
		n.dependsOn.Add(d.id)
		d.dependents.Add(n.id)
	}
	rs.runAction(n)
	return Handle{id: n.id}
}

func (rs *ReactiveSystem) runAction(n *node) {
	rs.PauseTracking()
	defer rs.ResumeTracking()
	defer func() {
		if r := recover(); r != nil {
			rs.reportError(n, &EvaluationError{Node: Handle{id: n.id}, Cause: recoveredError(r)})
		}
	}()
	n.action()
}

// Source is anything carrying a node handle; every typed signal qualifies.
type Source interface {
	Handle() Handle
}

// Subscription is the typed view of a subscription node.
type Subscription struct {
	rs *ReactiveSystem
	h  Handle
}

// Watch subscribes action to the given sources.
func Watch(rs *ReactiveSystem, action func(), sources ...Source) *Subscription {
	watch := make([]Handle, len(sources))
	for i, src := range sources {
		watch[i] = src.Handle()
	}
	return &Subscription{
		rs: rs,
		h:  rs.Subscribe(action, watch...),
	}
}

func (s *Subscription) Dispose() {
	s.rs.Dispose(s.h)
}

func (s *Subscription) Handle() Handle {
	return s.h
}
