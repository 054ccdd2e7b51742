package rangeset

// The set operations below walk both normalized interval lists once, in a
// single merge pass, so they run in O(n+m). The receiver's ordering is used
// for both operands.

// Union returns the points in r or other.
func (r *RangeSet[T]) Union(other *RangeSet[T]) *RangeSet[T] {
	a, b := r.rr, other.intervals()
	out := make([]Interval[T], 0, len(a)+len(b))
	for len(a) > 0 || len(b) > 0 {
		var next Interval[T]
		if len(b) == 0 || (len(a) > 0 && r.compare(a[0].Start, b[0].Start) <= 0) {
			next, a = a[0], a[1:]
		} else {
			next, b = b[0], b[1:]
		}
		out = r.appendMerged(out, next)
	}
	return &RangeSet[T]{compare: r.compare, rr: out}
}

// Intersect returns the points in both r and other.
func (r *RangeSet[T]) Intersect(other *RangeSet[T]) *RangeSet[T] {
	a, b := r.rr, other.intervals()
	var out []Interval[T]
	for len(a) > 0 && len(b) > 0 {
		iv := Interval[T]{
			Start: r.max(a[0].Start, b[0].Start),
			End:   r.min(a[0].End, b[0].End),
		}
		if !r.isEmpty(iv) {
			out = r.appendMerged(out, iv)
		}
		// drop whichever interval ends first; the other one may still
		// intersect the next interval of the opposite list.
		if r.compare(a[0].End, b[0].End) < 0 {
			a = a[1:]
		} else {
			b = b[1:]
		}
	}
	return &RangeSet[T]{compare: r.compare, rr: out}
}

// Subtract returns the points in r that are not in other.
func (r *RangeSet[T]) Subtract(other *RangeSet[T]) *RangeSet[T] {
	b := other.intervals()
	out := make([]Interval[T], 0, len(r.rr))
	for _, cur := range r.rr {
		for len(b) > 0 && r.compare(b[0].End, cur.Start) <= 0 {
			b = b[1:]
		}
		for _, sub := range b {
			if r.compare(sub.Start, cur.End) >= 0 {
				break
			}
			if r.compare(sub.Start, cur.Start) > 0 {
				//    cur
				// f---------t
				//     f---t
				//      sub
				out = append(out, Interval[T]{Start: cur.Start, End: sub.Start})
			}
			cur.Start = r.max(cur.Start, sub.End)
			if r.isEmpty(cur) {
				break
			}
		}
		if !r.isEmpty(cur) {
			out = append(out, cur)
		}
	}
	return &RangeSet[T]{compare: r.compare, rr: out}
}
