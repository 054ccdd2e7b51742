// Package seq provides composable adaptors and reductions over iter.Seq.
//
// Adaptors are lazy: they return a new sequence and do no work until it is
// ranged over. Reductions consume the sequence they are given.
//
//	evens := seq.Where(rs.Enumerate(), func(r rangeset.Interval[int64]) bool { ... })
//	total := seq.SumFunc(evens, func(r rangeset.Interval[int64]) int64 { return r.End - r.Start })
package seq

import "iter"

// Where yields the elements of s that satisfy pred.
func Where[T any](s iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}

// WhereNot yields the elements of s that do not satisfy pred.
func WhereNot[T any](s iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return Where(s, func(v T) bool { return !pred(v) })
}

// SafeWhere is Where for pointer elements: nil elements are dropped before
// pred is called.
func SafeWhere[T any](s iter.Seq[*T], pred func(*T) bool) iter.Seq[*T] {
	return Where(s, func(v *T) bool { return v != nil && pred(v) })
}

// SafeWhereNot drops nil elements and the elements that satisfy pred.
func SafeWhereNot[T any](s iter.Seq[*T], pred func(*T) bool) iter.Seq[*T] {
	return Where(s, func(v *T) bool { return v != nil && !pred(v) })
}

// Select yields fn applied to each element of s.
func Select[T, U any](s iter.Seq[T], fn func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range s {
			if !yield(fn(v)) {
				return
			}
		}
	}
}

// NonNil drops nil elements.
func NonNil[T any](s iter.Seq[*T]) iter.Seq[*T] {
	return Where(s, func(v *T) bool { return v != nil })
}

// SelectNonNil yields the non-nil results of fn.
func SelectNonNil[T, U any](s iter.Seq[T], fn func(T) *U) iter.Seq[*U] {
	return NonNil(Select(s, fn))
}

// OfType yields the elements of s that hold a U, converted to U. Other
// elements are dropped.
func OfType[U, T any](s iter.Seq[T]) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range s {
			if u, ok := any(v).(U); ok && !yield(u) {
				return
			}
		}
	}
}

// Cast converts every element of s to U. Elements that do not hold a U
// yield the zero value of U.
func Cast[U, T any](s iter.Seq[T]) iter.Seq[U] {
	return Select(s, func(v T) U {
		u, _ := any(v).(U)
		return u
	})
}

// Lookup yields m[k] for every key of s present in m, in the order of s.
func Lookup[K comparable, V any](s iter.Seq[K], m map[K]V) iter.Seq[V] {
	return func(yield func(V) bool) {
		for k := range s {
			if v, ok := m[k]; ok && !yield(v) {
				return
			}
		}
	}
}
