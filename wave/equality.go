package wave

import (
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// EqualsFunc decides whether a freshly produced value counts as equal to the
// stored one. Equal values do not propagate to dependents.
type EqualsFunc func(old, next any) bool

// EqualsStrict compares with == when both values share a comparable type.
// Values of different or uncomparable types are never equal.
func EqualsStrict(old, next any) bool {
	if old == nil || next == nil {
		return old == nil && next == nil
	}
	to := reflect.TypeOf(old)
	if to != reflect.TypeOf(next) || !to.Comparable() {
		return false
	}
	return old == next
}

// EqualsDeep compares with reflect.DeepEqual.
func EqualsDeep(old, next any) bool {
	return reflect.DeepEqual(old, next)
}

// NeverEqual treats every write as a change. It is the default for values
// whose structural change cannot be cheaply detected.
func NeverEqual(old, next any) bool {
	return false
}

// EqualsBytesHash compares []byte or string payloads by xxhash digest.
// Anything else is never equal.
func EqualsBytesHash(old, next any) bool {
	if ob, ok := old.([]byte); ok {
		nb, ok := next.([]byte)
		return ok && xxhash.Sum64(ob) == xxhash.Sum64(nb)
	}
	if os, ok := old.(string); ok {
		ns, ok := next.(string)
		return ok && xxhash.Sum64String(os) == xxhash.Sum64String(ns)
	}
	return false
}

// EqualsOf builds a policy that compares two values of a known comparable
// type with ==.
func EqualsOf[T comparable]() EqualsFunc {
	return func(old, next any) bool {
		a, aok := old.(T)
		b, bok := next.(T)
		return aok && bok && a == b
	}
}

// DefaultEquals picks a policy from the type of an initial value: scalar-like
// kinds get strict equality, everything else is treated as always different.
func DefaultEquals(sample any) EqualsFunc {
	if sample == nil {
		return EqualsStrict
	}
	switch reflect.TypeOf(sample).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return EqualsStrict
	}
	return NeverEqual
}
