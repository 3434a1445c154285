package wave

import (
	"errors"
	"fmt"
)

var (
	// ErrReadOnlyWrite is returned when writing to a computed or
	// subscription node.
	ErrReadOnlyWrite = errors.New("wave: write to read-only node")

	// ErrNodeDisposed is returned when writing through a handle whose node
	// has been disposed (or never existed in this system).
	ErrNodeDisposed = errors.New("wave: node is disposed")
)

// OnErrorFunc receives errors recovered from evaluators. The wave keeps
// draining after the hook returns.
type OnErrorFunc func(from Handle, err error)

// EvaluationError wraps a panic recovered from a computed node's evaluator or
// a subscription's action.
type EvaluationError struct {
	Node  Handle
	Cause error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("wave: evaluation of node %d failed: %v", e.Node.id, e.Cause)
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

func (rs *ReactiveSystem) reportError(n *node, err error) {
	if rs.onError != nil {
		rs.onError(Handle{id: n.id}, err)
	}
}

func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
