package wave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wavecell/wavecell/wave"
)

func TestEqualsStrict(t *testing.T) {
	assert.True(t, wave.EqualsStrict(1, 1))
	assert.False(t, wave.EqualsStrict(1, 2))
	assert.False(t, wave.EqualsStrict(1, int64(1)))
	assert.True(t, wave.EqualsStrict(nil, nil))
	assert.False(t, wave.EqualsStrict(nil, 1))
	assert.False(t, wave.EqualsStrict([]int{1}, []int{1})) // uncomparable
}

func TestEqualsDeep(t *testing.T) {
	assert.True(t, wave.EqualsDeep([]int{1, 2}, []int{1, 2}))
	assert.False(t, wave.EqualsDeep([]int{1, 2}, []int{2, 1}))
}

func TestEqualsBytesHash(t *testing.T) {
	assert.True(t, wave.EqualsBytesHash([]byte("abc"), []byte("abc")))
	assert.False(t, wave.EqualsBytesHash([]byte("abc"), []byte("abd")))
	assert.True(t, wave.EqualsBytesHash("abc", "abc"))
	assert.False(t, wave.EqualsBytesHash("abc", []byte("abc")))
	assert.False(t, wave.EqualsBytesHash(1, 1))
}

func TestDefaultPolicyScalarsGate(t *testing.T) {
	rs := newSystem(t)

	// untyped mutable with no explicit policy: ints compare strictly
	x := rs.NewMutable(5, nil)
	calls := 0
	rs.NewComputed(func() any {
		calls++
		return rs.Read(x)
	}, nil)
	calls = 0

	assert.NoError(t, rs.Write(x, 5))
	assert.Equal(t, 0, calls)
	assert.NoError(t, rs.Write(x, 6))
	assert.Equal(t, 1, calls)
}

func TestDefaultPolicySlicesAlwaysPropagate(t *testing.T) {
	rs := newSystem(t)

	xs := rs.NewMutable([]int{1}, nil)
	calls := 0
	rs.NewComputed(func() any {
		calls++
		return len(rs.Read(xs).([]int))
	}, nil)
	calls = 0

	// same contents, still a change under the never-equal default
	assert.NoError(t, rs.Write(xs, []int{1}))
	assert.Equal(t, 1, calls)
}

func TestBytesHashPolicyGatesCell(t *testing.T) {
	rs := newSystem(t)

	payload := rs.NewMutable([]byte("hello"), wave.EqualsBytesHash)
	calls := 0
	rs.NewComputed(func() any {
		calls++
		return string(rs.Read(payload).([]byte))
	}, nil)
	calls = 0

	// fresh allocation, identical digest: gated
	assert.NoError(t, rs.Write(payload, []byte("hello")))
	assert.Equal(t, 0, calls)

	assert.NoError(t, rs.Write(payload, []byte("world")))
	assert.Equal(t, 1, calls)
}
