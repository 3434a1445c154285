package wave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wavecell/wavecell/wave"
)

func TestBatchedWritesEvaluateSharedDependentOnce(t *testing.T) {
	rs := newSystem(t)

	x := wave.Signal(rs, 1)
	y := wave.Signal(rs, 2)

	k := 0
	u := wave.Computed(rs, func() int {
		k++
		return x.Value() + y.Value()
	})
	assert.Equal(t, 3, u.Value())
	k = 0

	rs.Batch(func() {
		x.SetValue(111)
		y.SetValue(222)
	})
	assert.Equal(t, 333, u.Value())
	assert.Equal(t, 1, k)
}

func TestUnbatchedWritesEvaluateSharedDependentTwice(t *testing.T) {
	rs := newSystem(t)

	x := wave.Signal(rs, 1)
	y := wave.Signal(rs, 2)

	k := 0
	u := wave.Computed(rs, func() int {
		k++
		return x.Value() + y.Value()
	})
	assert.Equal(t, 3, u.Value())
	k = 0

	// same final value as the batched version, one extra evaluation
	x.SetValue(111)
	y.SetValue(222)
	assert.Equal(t, 333, u.Value())
	assert.Equal(t, 2, k)
}

func TestNestedBatchesDrainOnce(t *testing.T) {
	rs := newSystem(t)

	x := wave.Signal(rs, 1)

	k := 0
	double := wave.Computed(rs, func() int {
		k++
		return x.Value() * 2
	})
	assert.Equal(t, 2, double.Value())
	k = 0

	rs.StartBatch()
	x.SetValue(2)
	rs.StartBatch()
	x.SetValue(3)
	rs.EndBatch()
	// inner close must not drain
	assert.Equal(t, 0, k)
	x.SetValue(4)
	rs.EndBatch()

	assert.Equal(t, 8, double.Value())
	assert.Equal(t, 1, k)
}

func TestEqualityGatedWriteDoesNotPropagate(t *testing.T) {
	rs := newSystem(t)

	x := wave.Signal(rs, 42)

	k := 0
	wave.Computed(rs, func() int {
		k++
		return x.Value()
	})
	assert.Equal(t, 1, k)

	x.SetValue(42)
	assert.Equal(t, 1, k)

	rs.Batch(func() {
		x.SetValue(42)
		x.SetValue(42)
	})
	assert.Equal(t, 1, k)
}

func TestDeepChainDrainsInOneWave(t *testing.T) {
	rs := newSystem(t)

	// A -> B -> C -> D, each level re-evaluated exactly once per write
	a := wave.Signal(rs, 1)
	bCalls, cCalls, dCalls := 0, 0, 0
	b := wave.Computed(rs, func() int {
		bCalls++
		return a.Value() + 1
	})
	c := wave.Computed(rs, func() int {
		cCalls++
		return b.Value() + 1
	})
	d := wave.Computed(rs, func() int {
		dCalls++
		return c.Value() + 1
	})
	bCalls, cCalls, dCalls = 0, 0, 0

	a.SetValue(10)
	assert.Equal(t, 13, d.Value())
	assert.Equal(t, 1, bCalls)
	assert.Equal(t, 1, cCalls)
	assert.Equal(t, 1, dCalls)
}
