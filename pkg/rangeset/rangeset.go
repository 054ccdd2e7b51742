package rangeset

import (
	"cmp"
	"iter"
	"slices"
	"sort"
	"strings"
)

// RangeSet is a set of values of T described by a minimal list of
// half-open intervals.
//
// A RangeSet is not safe for concurrent mutation. Read-only methods may run
// concurrently with each other, but not with Add, Remove or Clear.
type RangeSet[T any] struct {
	compare CompareFn[T]
	// rr is normalized: sorted by Start, and rr[i].End < rr[i+1].Start, so
	// no two intervals overlap or touch. Every method relies on this.
	rr []Interval[T]
}

// New returns a set holding the union of ivs.
func New[T cmp.Ordered](ivs ...Interval[T]) *RangeSet[T] {
	return NewFunc[T](cmp.Compare[T], ivs...)
}

// NewFunc returns a set holding the union of ivs, ordered by compare.
func NewFunc[T any](compare CompareFn[T], ivs ...Interval[T]) *RangeSet[T] {
	r := &RangeSet[T]{compare: compare}
	r.rr = r.normalize(ivs)
	return r
}

func (r *RangeSet[T]) normalize(ivs []Interval[T]) []Interval[T] {
	out := make([]Interval[T], 0, len(ivs))
	for _, iv := range ivs {
		if !r.isEmpty(iv) {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.compare(out[i].Start, out[j].Start) < 0 })

	merged := out[:0]
	for _, iv := range out {
		merged = r.appendMerged(merged, iv)
	}
	return merged
}

// appendMerged appends iv to dst, folding it into the last interval when
// they overlap or touch. iv must not start before the last interval of dst.
func (r *RangeSet[T]) appendMerged(dst []Interval[T], iv Interval[T]) []Interval[T] {
	if n := len(dst); n > 0 && r.compare(iv.Start, dst[n-1].End) <= 0 {
		if r.compare(iv.End, dst[n-1].End) > 0 {
			dst[n-1].End = iv.End
		}
		return dst
	}
	return append(dst, iv)
}

// Add inserts iv, merging it with every interval it overlaps or touches.
// An empty iv is ignored.
func (r *RangeSet[T]) Add(iv Interval[T]) {
	if r.isEmpty(iv) {
		return
	}
	// i is the first interval ending at or after iv.Start, j the first one
	// starting after iv.End; everything in [i, j) merges with iv.
	i := sort.Search(len(r.rr), func(k int) bool { return r.compare(r.rr[k].End, iv.Start) >= 0 })
	j := sort.Search(len(r.rr), func(k int) bool { return r.compare(r.rr[k].Start, iv.End) > 0 })
	if i < j {
		iv.Start = r.min(iv.Start, r.rr[i].Start)
		iv.End = r.max(iv.End, r.rr[j-1].End)
	}
	r.rr = slices.Replace(r.rr, i, j, iv)
}

// Remove deletes iv from the set. Intervals partially covered by iv are
// trimmed, or split in two when iv lies strictly inside them. An empty iv
// is ignored.
func (r *RangeSet[T]) Remove(iv Interval[T]) {
	if r.isEmpty(iv) {
		return
	}
	i := sort.Search(len(r.rr), func(k int) bool { return r.compare(r.rr[k].End, iv.Start) > 0 })
	j := sort.Search(len(r.rr), func(k int) bool { return r.compare(r.rr[k].Start, iv.End) >= 0 })
	if i >= j {
		return
	}

	var buf [2]Interval[T]
	keep := buf[:0]
	if r.compare(r.rr[i].Start, iv.Start) < 0 {
		keep = append(keep, Interval[T]{Start: r.rr[i].Start, End: iv.Start})
	}
	if r.compare(r.rr[j-1].End, iv.End) > 0 {
		keep = append(keep, Interval[T]{Start: iv.End, End: r.rr[j-1].End})
	}
	r.rr = slices.Replace(r.rr, i, j, keep...)
}

// Contains reports whether p lies in one of the intervals of r.
func (r *RangeSet[T]) Contains(p T) bool {
	i := sort.Search(len(r.rr), func(k int) bool { return r.compare(r.rr[k].End, p) > 0 })
	return i < len(r.rr) && r.compare(r.rr[i].Start, p) <= 0
}

// Overlaps reports whether any point of iv is in r.
func (r *RangeSet[T]) Overlaps(iv Interval[T]) bool {
	if r.isEmpty(iv) {
		return false
	}
	i := sort.Search(len(r.rr), func(k int) bool { return r.compare(r.rr[k].End, iv.Start) > 0 })
	return i < len(r.rr) && r.compare(r.rr[i].Start, iv.End) < 0
}

// Covers reports whether every point of iv is in r. The empty interval is
// always covered.
func (r *RangeSet[T]) Covers(iv Interval[T]) bool {
	if r.isEmpty(iv) {
		return true
	}
	i := sort.Search(len(r.rr), func(k int) bool { return r.compare(r.rr[k].End, iv.Start) > 0 })
	return i < len(r.rr) &&
		r.compare(r.rr[i].Start, iv.Start) <= 0 &&
		r.compare(iv.End, r.rr[i].End) <= 0
}

// Enumerate returns the intervals of r in ascending order. The sequence can
// be ranged over any number of times; r must not be mutated while it runs.
func (r *RangeSet[T]) Enumerate() iter.Seq[Interval[T]] {
	return func(yield func(Interval[T]) bool) {
		for _, iv := range r.rr {
			if !yield(iv) {
				return
			}
		}
	}
}

// Intervals returns a copy of the minimal sorted list of intervals
// covering r.
func (r *RangeSet[T]) Intervals() []Interval[T] {
	return append([]Interval[T]{}, r.rr...)
}

// Len returns the number of intervals, not the number of points.
func (r *RangeSet[T]) Len() int { return len(r.rr) }

func (r *RangeSet[T]) IsEmpty() bool { return len(r.rr) == 0 }

func (r *RangeSet[T]) Clear() { r.rr = nil }

func (r *RangeSet[T]) Clone() *RangeSet[T] {
	return &RangeSet[T]{
		compare: r.compare,
		rr:      slices.Clone(r.rr),
	}
}

// Equal reports whether r and other hold the same points.
func (r *RangeSet[T]) Equal(other *RangeSet[T]) bool {
	o := other.intervals()
	if len(r.rr) != len(o) {
		return false
	}
	for i := range r.rr {
		if r.compare(r.rr[i].Start, o[i].Start) != 0 || r.compare(r.rr[i].End, o[i].End) != 0 {
			return false
		}
	}
	return true
}

// Span returns the smallest interval covering r, or false if r is empty.
func (r *RangeSet[T]) Span() (Interval[T], bool) {
	if len(r.rr) == 0 {
		return Interval[T]{}, false
	}
	return Interval[T]{Start: r.rr[0].Start, End: r.rr[len(r.rr)-1].End}, true
}

// Complement returns the points of bounds that are not in r.
func (r *RangeSet[T]) Complement(bounds Interval[T]) *RangeSet[T] {
	return NewFunc(r.compare, bounds).Subtract(r)
}

// String renders r as space separated intervals, e.g. "[1,3) [5,10)", or
// "{}" when r is empty. Parse accepts the same form.
func (r *RangeSet[T]) String() string {
	if len(r.rr) == 0 {
		return "{}"
	}
	var sb strings.Builder
	for i, iv := range r.rr {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(iv.String())
	}
	return sb.String()
}

func (r *RangeSet[T]) intervals() []Interval[T] {
	if r == nil {
		return nil
	}
	return r.rr
}

func (r *RangeSet[T]) isEmpty(iv Interval[T]) bool {
	return r.compare(iv.Start, iv.End) >= 0
}

func (r *RangeSet[T]) min(a, b T) T {
	if r.compare(b, a) < 0 {
		return b
	}
	return a
}

func (r *RangeSet[T]) max(a, b T) T {
	if r.compare(b, a) > 0 {
		return b
	}
	return a
}
