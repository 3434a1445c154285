package wave

// Dispose severs all of the node's edges in both directions, clears its value
// and evaluator, and removes it from the arena. Disposing an already-disposed
// or unknown handle is a no-op. Disposal is safe from anywhere, including
// from inside the node's own evaluator; a self-disposed node skips edge
// re-establishment when its evaluation returns.
func (rs *ReactiveSystem) Dispose(h Handle) {
	n := rs.lookup(h)
	if n == nil || n.disposed {
		return
	}
	n.disposed = true

	for _, id := range n.dependsOn.ToSlice() {
		if d := rs.nodes[id]; d != nil {
			d.dependents.Remove(n.id)
		}
	}
	// subscriptions also carry an explicit watch list
	for _, id := range n.watched {
		if d := rs.nodes[id]; d != nil {
			d.dependents.Remove(n.id)
		}
	}
	for _, id := range n.dependents.ToSlice() {
		if d := rs.nodes[id]; d != nil {
			d.dependsOn.Remove(n.id)
		}
	}
	n.dependsOn.Clear()
	n.dependents.Clear()

	n.value = nil
	n.eval = nil
	n.action = nil
	n.watched = nil

	delete(rs.nodes, n.id)
}
