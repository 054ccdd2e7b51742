package rangeset

import (
	"net/netip"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iv(start, end int64) Interval[int64] { return IntervalOf(start, end) }

func TestNew(t *testing.T) {
	cases := map[string]struct {
		in       []Interval[int64]
		expected []Interval[int64]
	}{
		"Empty": {
			in:       nil,
			expected: []Interval[int64]{},
		},
		"Unsorted": {
			in:       []Interval[int64]{iv(20, 30), iv(1, 5)},
			expected: []Interval[int64]{iv(1, 5), iv(20, 30)},
		},
		"Overlapping": {
			in:       []Interval[int64]{iv(1, 5), iv(3, 8), iv(2, 4)},
			expected: []Interval[int64]{iv(1, 8)},
		},
		"Touching": {
			in:       []Interval[int64]{iv(5, 10), iv(1, 5)},
			expected: []Interval[int64]{iv(1, 10)},
		},
		"DropsEmptyAndInverted": {
			in:       []Interval[int64]{iv(3, 3), iv(9, 4), iv(10, 11)},
			expected: []Interval[int64]{iv(10, 11)},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := New(tc.in...)
			if diff := cmp.Diff(tc.expected, s.Intervals()); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	cases := map[string]struct {
		initial  []Interval[int64]
		add      []Interval[int64]
		expected string
	}{
		"MergeAcrossTouchingBoundary": {
			add:      []Interval[int64]{iv(1, 5), iv(5, 10)},
			expected: "[1,10)",
		},
		"Disjoint": {
			add:      []Interval[int64]{iv(10, 12), iv(1, 3)},
			expected: "[1,3) [10,12)",
		},
		"BridgeSeveral": {
			initial:  []Interval[int64]{iv(1, 3), iv(5, 7), iv(9, 11), iv(20, 21)},
			add:      []Interval[int64]{iv(2, 9)},
			expected: "[1,11) [20,21)",
		},
		"Contained": {
			initial:  []Interval[int64]{iv(1, 10)},
			add:      []Interval[int64]{iv(3, 4)},
			expected: "[1,10)",
		},
		"ExtendLeft": {
			initial:  []Interval[int64]{iv(5, 10)},
			add:      []Interval[int64]{iv(0, 6)},
			expected: "[0,10)",
		},
		"InsertBetween": {
			initial:  []Interval[int64]{iv(1, 2), iv(10, 12)},
			add:      []Interval[int64]{iv(4, 6)},
			expected: "[1,2) [4,6) [10,12)",
		},
		"EmptyIsNoop": {
			initial:  []Interval[int64]{iv(1, 2)},
			add:      []Interval[int64]{iv(5, 5), iv(8, 6)},
			expected: "[1,2)",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := New(tc.initial...)
			for _, a := range tc.add {
				s.Add(a)
			}
			assert.Equal(t, tc.expected, s.String())
		})
	}
}

func TestRemove(t *testing.T) {
	cases := map[string]struct {
		initial  []Interval[int64]
		remove   Interval[int64]
		expected string
	}{
		"Split": {
			initial:  []Interval[int64]{iv(1, 10)},
			remove:   iv(3, 5),
			expected: "[1,3) [5,10)",
		},
		"TrimStart": {
			initial:  []Interval[int64]{iv(1, 10)},
			remove:   iv(0, 4),
			expected: "[4,10)",
		},
		"TrimEnd": {
			initial:  []Interval[int64]{iv(1, 10)},
			remove:   iv(8, 20),
			expected: "[1,8)",
		},
		"Whole": {
			initial:  []Interval[int64]{iv(1, 10)},
			remove:   iv(1, 10),
			expected: "{}",
		},
		"AcrossSeveral": {
			initial:  []Interval[int64]{iv(1, 3), iv(5, 7), iv(9, 11)},
			remove:   iv(2, 10),
			expected: "[1,2) [10,11)",
		},
		"Touching": {
			initial:  []Interval[int64]{iv(1, 3), iv(5, 7)},
			remove:   iv(3, 5),
			expected: "[1,3) [5,7)",
		},
		"InvertedIsNoop": {
			initial:  []Interval[int64]{iv(1, 10)},
			remove:   iv(5, 3),
			expected: "[1,10)",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := New(tc.initial...)
			s.Remove(tc.remove)
			assert.Equal(t, tc.expected, s.String())
		})
	}
}

func TestQueries(t *testing.T) {
	s := New(iv(1, 3), iv(10, 12))

	for p, want := range map[int64]bool{0: false, 1: true, 2: true, 3: false, 9: false, 10: true, 11: true, 12: false} {
		assert.Equal(t, want, s.Contains(p), "contains %d", p)
	}

	assert.True(t, s.Overlaps(iv(2, 5)))
	assert.True(t, s.Overlaps(iv(0, 100)))
	assert.False(t, s.Overlaps(iv(3, 10)))
	assert.False(t, s.Overlaps(iv(12, 20)))
	assert.False(t, s.Overlaps(iv(2, 2)))

	assert.True(t, s.Covers(iv(10, 12)))
	assert.True(t, s.Covers(iv(1, 2)))
	assert.False(t, s.Covers(iv(1, 11)))
	assert.True(t, s.Covers(iv(7, 7)))

	span, ok := s.Span()
	require.True(t, ok)
	assert.Equal(t, iv(1, 12), span)
	_, ok = New[int64]().Span()
	assert.False(t, ok)
}

func TestSetOperations(t *testing.T) {
	cases := map[string]struct {
		a, b      string
		union     string
		intersect string
		subtract  string
	}{
		"Scenario": {
			a:         "[1,3) [10,12)",
			b:         "[2,11)",
			union:     "[1,12)",
			intersect: "[2,3) [10,11)",
			subtract:  "[1,2) [11,12)",
		},
		"Disjoint": {
			a:         "[1,2) [5,6)",
			b:         "[2,5)",
			union:     "[1,6)",
			intersect: "{}",
			subtract:  "[1,2) [5,6)",
		},
		"EmptyOther": {
			a:         "[1,2)",
			b:         "{}",
			union:     "[1,2)",
			intersect: "{}",
			subtract:  "[1,2)",
		},
		"Interleaved": {
			a:         "[0,10) [20,30) [40,50)",
			b:         "[5,25) [28,42) [49,60)",
			union:     "[0,60)",
			intersect: "[5,10) [20,25) [28,30) [40,42) [49,50)",
			subtract:  "[0,5) [25,28) [42,49)",
		},
		"HolesInside": {
			a:         "[0,100)",
			b:         "[10,20) [30,40) [90,110)",
			union:     "[0,110)",
			intersect: "[10,20) [30,40) [90,100)",
			subtract:  "[0,10) [20,30) [40,90)",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			a, err := ParseInt64(tc.a)
			require.NoError(t, err)
			b, err := ParseInt64(tc.b)
			require.NoError(t, err)

			wantUnion, err := ParseInt64(tc.union)
			require.NoError(t, err)
			assert.True(t, wantUnion.Equal(a.Union(b)), "union: got %s", a.Union(b))
			assert.True(t, b.Union(a).Equal(a.Union(b)), "union is not commutative")
			assert.Equal(t, tc.intersect, a.Intersect(b).String())
			assert.Equal(t, tc.intersect, b.Intersect(a).String())
			assert.Equal(t, tc.subtract, a.Subtract(b).String())

			// operands are left untouched
			assert.Equal(t, tc.a, a.String())
		})
	}
}

func TestEnumerate(t *testing.T) {
	s := New(iv(1, 3), iv(10, 12), iv(20, 25))

	first := slices.Collect(s.Enumerate())
	second := slices.Collect(s.Enumerate())
	assert.Equal(t, first, second)
	assert.Equal(t, []Interval[int64]{iv(1, 3), iv(10, 12), iv(20, 25)}, first)

	var got []Interval[int64]
	for r := range s.Enumerate() {
		got = append(got, r)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
	assert.Equal(t, 3, s.Len())
}

func TestIntervalsIsACopy(t *testing.T) {
	s := New(iv(1, 3))
	rr := s.Intervals()
	rr[0].End = 100
	assert.Equal(t, "[1,3)", s.String())

	c := s.Clone()
	c.Add(iv(3, 5))
	assert.Equal(t, "[1,3)", s.String())
	assert.Equal(t, "[1,5)", c.String())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.False(t, s.IsEmpty())
}

func TestComplement(t *testing.T) {
	s := New(iv(2, 4), iv(6, 8))
	assert.Equal(t, "[0,2) [4,6) [8,10)", s.Complement(iv(0, 10)).String())
	assert.Equal(t, "[4,6)", s.Complement(iv(3, 7)).String())
	assert.Equal(t, "{}", s.Complement(iv(5, 5)).String())
}

func TestNewFunc(t *testing.T) {
	addr := netip.MustParseAddr
	s := NewFunc(netip.Addr.Compare,
		IntervalOf(addr("10.0.0.0"), addr("10.0.0.10")),
		IntervalOf(addr("10.0.0.10"), addr("10.0.1.0")),
	)
	assert.Equal(t, "[10.0.0.0,10.0.1.0)", s.String())
	assert.True(t, s.Contains(addr("10.0.0.200")))
	assert.False(t, s.Contains(addr("10.0.1.0")))
}

func TestBuilder(t *testing.T) {
	b := NewBuilder[int64]()
	b.AddRange(iv(1, 10))
	b.RemoveRange(iv(3, 5))
	b.AddRange(iv(4, 5))
	b.AddRange(iv(7, 7))
	b.RemoveRange(iv(9, 8))
	b.AddSet(New(iv(20, 22)))
	b.RemoveSet(New(iv(21, 22)))

	s, err := b.Set()
	assert.Error(t, err)
	assert.Equal(t, "[1,3) [4,10) [20,21)", s.String())

	// errors are reported once
	s, err = b.Set()
	assert.NoError(t, err)
	assert.Equal(t, "[1,3) [4,10) [20,21)", s.String())
}

func TestParse(t *testing.T) {
	cases := map[string]struct {
		in          string
		expected    string
		expectedErr bool
	}{
		"Empty":        {in: "", expected: "{}"},
		"EmptyBraces":  {in: " {} ", expected: "{}"},
		"Normalizes":   {in: "[5,10), [1,5)  [20, 30)", expected: "[1,10) [20,30)"},
		"BadNumber":    {in: "[a,3)", expectedErr: true},
		"NoComma":      {in: "[1 3)", expectedErr: true},
		"Unterminated": {in: "[1,3", expectedErr: true},
		"Inverted":     {in: "[3,1)", expectedErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := ParseInt64(tc.in)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, s.String())
		})
	}
}

func TestIntegerHelpers(t *testing.T) {
	s := New(iv(1, 3), iv(10, 14))
	assert.Equal(t, int64(6), Measure(s))
	assert.Equal(t, []int64{1, 2, 10, 11, 12, 13}, slices.Collect(Points(s)))

	fit, ok := FirstFit(s, 3)
	require.True(t, ok)
	assert.Equal(t, iv(10, 13), fit)

	fit, ok = FirstFit(s, 2)
	require.True(t, ok)
	assert.Equal(t, iv(1, 3), fit)

	_, ok = FirstFit(s, 5)
	assert.False(t, ok)
	_, ok = FirstFit(s, 0)
	assert.False(t, ok)

	f := New(IntervalOf(0.5, 1.0))
	assert.Equal(t, 0.5, Measure(f))
}
