package rangeset

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// Measure returns the total length of the intervals of s.
func Measure[T constraints.Integer | constraints.Float](s *RangeSet[T]) T {
	var n T
	for _, iv := range s.intervals() {
		n += iv.End - iv.Start
	}
	return n
}

// Points yields every value held by s in ascending order.
func Points[T constraints.Integer](s *RangeSet[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, iv := range s.intervals() {
			for p := iv.Start; p < iv.End; p++ {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// FirstFit returns the lowest interval of the given size that lies entirely
// within s.
func FirstFit[T constraints.Integer](s *RangeSet[T], size T) (Interval[T], bool) {
	if size <= 0 {
		return Interval[T]{}, false
	}
	for _, iv := range s.intervals() {
		if iv.End-iv.Start >= size {
			return Interval[T]{Start: iv.Start, End: iv.Start + size}, true
		}
	}
	return Interval[T]{}, false
}
