package rangeset

import (
	"cmp"
	"slices"

	"github.com/cockroachdb/errors"
)

// Builder collects additions and removals and produces a RangeSet with a
// single normalization pass. Removals only affect ranges added before them.
type Builder[T any] struct {
	compare CompareFn[T]
	in      []Interval[T]
	out     []Interval[T]
	errs    error
}

func NewBuilder[T cmp.Ordered]() *Builder[T] {
	return NewBuilderFunc[T](cmp.Compare[T])
}

func NewBuilderFunc[T any](compare CompareFn[T]) *Builder[T] {
	return &Builder[T]{compare: compare}
}

func (b *Builder[T]) AddRange(iv Interval[T]) {
	if !b.check("add", iv) {
		return
	}
	if len(b.out) > 0 {
		b.normalize()
	}
	b.in = append(b.in, iv)
}

func (b *Builder[T]) RemoveRange(iv Interval[T]) {
	if !b.check("remove", iv) {
		return
	}
	b.out = append(b.out, iv)
}

// AddSet adds all intervals of s.
func (b *Builder[T]) AddSet(s *RangeSet[T]) {
	for _, iv := range s.intervals() {
		b.AddRange(iv)
	}
}

// RemoveSet removes all intervals of s.
func (b *Builder[T]) RemoveSet(s *RangeSet[T]) {
	for _, iv := range s.intervals() {
		b.RemoveRange(iv)
	}
}

// check reports whether iv contributes anything. Empty intervals are
// dropped silently; inverted ones are recorded as errors for Set.
func (b *Builder[T]) check(op string, iv Interval[T]) bool {
	c := b.compare(iv.Start, iv.End)
	if c > 0 {
		b.errs = errors.CombineErrors(b.errs, errors.Newf("%s %s: start is after end", op, iv))
	}
	return c < 0
}

// normalize folds the pending removals into in, leaving in minimal and
// sorted, and out empty.
func (b *Builder[T]) normalize() {
	s := NewFunc(b.compare, b.in...)
	if len(b.out) > 0 {
		s = s.Subtract(NewFunc(b.compare, b.out...))
	}
	b.in = s.rr
	b.out = nil
}

// Set returns the set described so far. The returned error combines every
// inverted interval passed to the builder since the last call; the set is
// valid either way and simply excludes them.
func (b *Builder[T]) Set() (*RangeSet[T], error) {
	b.normalize()
	s := &RangeSet[T]{
		compare: b.compare,
		rr:      slices.Clone(b.in),
	}
	errs := b.errs
	b.errs = nil
	return s, errs
}
