package rangeset

import "fmt"

// Interval is the half-open span [Start, End). An interval with
// Start >= End is empty and is never stored in a RangeSet.
type Interval[T any] struct {
	Start T
	End   T
}

func IntervalOf[T any](start, end T) Interval[T] {
	return Interval[T]{Start: start, End: end}
}

func (r Interval[T]) String() string {
	return fmt.Sprintf("[%v,%v)", r.Start, r.End)
}

// CompareFn returns a negative number when a < b, zero when a == b and a
// positive number when a > b.
type CompareFn[T any] func(a, b T) int
