package rangeset

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ParseInterval parses the "[start,end)" form produced by Interval.String.
func ParseInterval[T any](s string, parse func(string) (T, error)) (Interval[T], error) {
	var iv Interval[T]
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, ")") {
		return iv, errors.Newf("interval %q is not of the form [start,end)", s)
	}
	body := s[1 : len(s)-1]
	c := strings.IndexByte(body, ',')
	if c == -1 {
		return iv, errors.Newf("no comma in interval %q", s)
	}
	start, err := parse(strings.TrimSpace(body[:c]))
	if err != nil {
		return iv, errors.Wrapf(err, "invalid start in interval %q", s)
	}
	end, err := parse(strings.TrimSpace(body[c+1:]))
	if err != nil {
		return iv, errors.Wrapf(err, "invalid end in interval %q", s)
	}
	return Interval[T]{Start: start, End: end}, nil
}

// Parse parses the form produced by RangeSet.String. Intervals may be
// separated by whitespace or commas and need not be sorted or disjoint.
// Inverted intervals are reported as an error.
func Parse[T any](s string, compare CompareFn[T], parse func(string) (T, error)) (*RangeSet[T], error) {
	b := NewBuilderFunc(compare)
	s = strings.TrimSpace(s)
	if s == "{}" {
		s = ""
	}
	for {
		s = strings.TrimLeft(s, " \t\r\n,")
		if s == "" {
			break
		}
		end := strings.IndexByte(s, ')')
		if end == -1 {
			return nil, errors.Newf("unterminated interval %q", s)
		}
		iv, err := ParseInterval(s[:end+1], parse)
		if err != nil {
			return nil, err
		}
		b.AddRange(iv)
		s = s[end+1:]
	}
	return b.Set()
}

// ParseInt64 parses a set of base 10 int64 intervals.
func ParseInt64(s string) (*RangeSet[int64], error) {
	return Parse(s, cmp.Compare[int64], func(v string) (int64, error) {
		return strconv.ParseInt(v, 10, 64)
	})
}
