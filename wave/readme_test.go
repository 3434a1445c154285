package wave_test

import (
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavecell/wavecell/wave"
)

// from README
func TestBasicUsage(t *testing.T) {
	rs := wave.NewReactiveSystem(func(from wave.Handle, err error) {
		assert.FailNow(t, err.Error())
	})
	count := wave.Signal(rs, 1)
	doubleCount := wave.Computed(rs, func() int {
		return count.Value() * 2
	})

	sub := wave.Watch(rs, func() {
		log.Printf("Count is: %d", count.Peek())
	}, count)
	defer sub.Dispose()

	assert.Equal(t, 2, doubleCount.Value())
	count.SetValue(2)
	assert.Equal(t, 4, doubleCount.Value())
}

func TestArithmeticChain(t *testing.T) {
	rs := wave.NewReactiveSystem(func(from wave.Handle, err error) {
		assert.FailNow(t, err.Error())
	})

	x := wave.Signal(rs, 123)
	y := wave.Signal(rs, 456)
	z := wave.Signal(rs, 789)

	u := wave.Computed(rs, func() int {
		return x.Value() + y.Value()
	})
	assert.Equal(t, 579, u.Value())

	v := wave.Computed(rs, func() int {
		return z.Value() - u.Value()
	})
	assert.Equal(t, 210, v.Value())

	x.SetValue(0)
	assert.Equal(t, 456, u.Value())
	assert.Equal(t, 333, v.Value())

	z.SetValue(999)
	assert.Equal(t, 456, u.Value())
	assert.Equal(t, 543, v.Value())
}

func TestUntypedCore(t *testing.T) {
	rs := wave.NewReactiveSystem(nil)

	x := rs.NewMutable(10, nil)
	double := rs.NewComputed(func() any {
		return rs.Read(x).(int) * 2
	}, nil)

	assert.Equal(t, 20, rs.Read(double))

	require.NoError(t, rs.Write(x, 21))
	assert.Equal(t, 42, rs.Read(double))

	// peeks never register edges, so this stays a plain read
	assert.Equal(t, 21, rs.Peek(x))
}
