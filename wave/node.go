package wave

import (
	"math"

	mapset "github.com/deckarep/golang-set/v2"
)

// NodeID identifies a node for the lifetime of its ReactiveSystem.
// IDs start at 1 and are never reused.
type NodeID uint64

// Handle is a cheap copyable reference to a node. The zero Handle refers
// to nothing.
type Handle struct {
	id NodeID
}

// IsZero reports whether the handle refers to nothing.
func (h Handle) IsZero() bool {
	return h.id == 0
}

type Kind uint8

const (
	KindMutable Kind = iota
	KindComputed
	KindSubscription
)

// Subscriptions always drain after every computed node in a wave.
const subscriptionLevel = math.MaxInt32

type node struct {
	id     NodeID
	kind   Kind
	value  any
	equals EqualsFunc

	// eval is set for computed nodes, action for subscriptions.
	eval   func() any
	action func()

	level int

	dependsOn  mapset.Set[NodeID]
	dependents mapset.Set[NodeID]

	// watched pins the explicit watch list of a subscription so disposal
	// removes exactly those edges.
	watched []NodeID

	inQueue  bool
	disposed bool
}

func (rs *ReactiveSystem) register(kind Kind, eq EqualsFunc) *node {
	rs.nextID++
	n := &node{
		id:         rs.nextID,
		kind:       kind,
		equals:     eq,
		dependsOn:  mapset.NewThreadUnsafeSet[NodeID](),
		dependents: mapset.NewThreadUnsafeSet[NodeID](),
	}
	rs.nodes[n.id] = n
	return n
}

func (rs *ReactiveSystem) lookup(h Handle) *node {
	return rs.nodes[h.id]
}
