package seq

import (
	"iter"

	"golang.org/x/exp/constraints"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Number is any type that supports +.
type Number interface {
	constraints.Integer | constraints.Float | constraints.Complex
}

func Count[T any](s iter.Seq[T]) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// CountFunc returns the number of elements that satisfy pred.
func CountFunc[T any](s iter.Seq[T], pred func(T) bool) int {
	return Count(Where(s, pred))
}

// First returns the first element of s, or false if s is empty.
func First[T any](s iter.Seq[T]) (T, bool) {
	for v := range s {
		return v, true
	}
	var zero T
	return zero, false
}

// FirstOrDefault returns the first element of s, or the zero value.
func FirstOrDefault[T any](s iter.Seq[T]) T {
	v, _ := First(s)
	return v
}

// FirstOrDefaultFunc returns the first element that satisfies pred, or the
// zero value.
func FirstOrDefaultFunc[T any](s iter.Seq[T], pred func(T) bool) T {
	return FirstOrDefault(Where(s, pred))
}

// All reports whether every element satisfies pred. It is true for an empty
// sequence.
func All[T any](s iter.Seq[T], pred func(T) bool) bool {
	for v := range s {
		if !pred(v) {
			return false
		}
	}
	return true
}

// Any reports whether some element satisfies pred. A nil pred matches every
// element, so Any(s, nil) reports whether s is non-empty.
func Any[T any](s iter.Seq[T], pred func(T) bool) bool {
	for v := range s {
		if pred == nil || pred(v) {
			return true
		}
	}
	return false
}

// None reports whether no element satisfies pred. It is true for an empty
// sequence.
func None[T any](s iter.Seq[T], pred func(T) bool) bool {
	return !Any(s, pred)
}

// Accumulate folds s into seed from left to right.
func Accumulate[T, A any](s iter.Seq[T], seed A, fold func(A, T) A) A {
	acc := seed
	for v := range s {
		acc = fold(acc, v)
	}
	return acc
}

// Sum adds up s. The sum of an empty sequence is zero.
func Sum[T Number](s iter.Seq[T]) T {
	var total T
	for v := range s {
		total += v
	}
	return total
}

// SumFunc adds up fn applied to each element.
func SumFunc[T any, N Number](s iter.Seq[T], fn func(T) N) N {
	return Sum(Select(s, fn))
}

// ToSlice collects s into a new slice.
func ToSlice[T any](s iter.Seq[T]) []T {
	var out []T
	for v := range s {
		out = append(out, v)
	}
	return out
}

func ToSet[T comparable](s iter.Seq[T]) sets.Set[T] {
	out := sets.New[T]()
	for v := range s {
		out.Insert(v)
	}
	return out
}

// ToSetFunc collects fn applied to each element into a set.
func ToSetFunc[T any, K comparable](s iter.Seq[T], fn func(T) K) sets.Set[K] {
	return ToSet(Select(s, fn))
}
