// Package iprange stores sets of IP addresses as half-open address
// intervals.
//
// Inclusive netipx ranges and prefixes are converted on the way in: the
// range from-to is stored as [from, to.Next()). IPv4 and IPv6 addresses can
// live in the same Set; all IPv4 addresses order before all IPv6 ones.
package iprange

import (
	"net/netip"

	"github.com/cockroachdb/errors"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"go4.org/netipx"
)

// ErrFamilyEnd is returned for ranges that include the last address of their
// family (255.255.255.255 or ffff:...:ffff), which has no successor to serve
// as an exclusive end.
var ErrFamilyEnd = errors.New("range ends on the last address of its family")

type Set struct {
	rs *rangeset.RangeSet[netip.Addr]
}

func New() *Set {
	return &Set{rs: rangeset.NewFunc[netip.Addr](netip.Addr.Compare)}
}

func halfOpen(r netipx.IPRange) (rangeset.Interval[netip.Addr], error) {
	var iv rangeset.Interval[netip.Addr]
	if !r.IsValid() {
		return iv, errors.Newf("invalid ip range %s", r)
	}
	end := r.To().Next()
	if !end.IsValid() {
		return iv, errors.Wrapf(ErrFamilyEnd, "ip range %s", r)
	}
	return rangeset.IntervalOf(r.From(), end), nil
}

func prefixRange(p netip.Prefix) (netipx.IPRange, error) {
	if !p.IsValid() {
		return netipx.IPRange{}, errors.Newf("invalid prefix %s", p)
	}
	return netipx.RangeOfPrefix(p.Masked()), nil
}

// AddRange adds every address of r.
func (s *Set) AddRange(r netipx.IPRange) error {
	iv, err := halfOpen(r)
	if err != nil {
		return err
	}
	s.rs.Add(iv)
	return nil
}

// RemoveRange removes every address of r.
func (s *Set) RemoveRange(r netipx.IPRange) error {
	iv, err := halfOpen(r)
	if err != nil {
		return err
	}
	s.rs.Remove(iv)
	return nil
}

func (s *Set) AddPrefix(p netip.Prefix) error {
	r, err := prefixRange(p)
	if err != nil {
		return err
	}
	return s.AddRange(r)
}

func (s *Set) RemovePrefix(p netip.Prefix) error {
	r, err := prefixRange(p)
	if err != nil {
		return err
	}
	return s.RemoveRange(r)
}

func (s *Set) Contains(addr netip.Addr) bool {
	return s.rs.Contains(addr)
}

// OverlapsRange reports whether any address of r is in s.
func (s *Set) OverlapsRange(r netipx.IPRange) bool {
	if !r.IsValid() {
		return false
	}
	if s.rs.Contains(r.To()) {
		return true
	}
	// r.To() itself was checked above, so [from, to) covers the rest.
	return s.rs.Overlaps(rangeset.IntervalOf(r.From(), r.To()))
}

func (s *Set) Union(other *Set) *Set {
	return &Set{rs: s.rs.Union(other.rs)}
}

func (s *Set) Intersect(other *Set) *Set {
	return &Set{rs: s.rs.Intersect(other.rs)}
}

func (s *Set) Subtract(other *Set) *Set {
	return &Set{rs: s.rs.Subtract(other.rs)}
}

func (s *Set) IsEmpty() bool { return s.rs.IsEmpty() }

// Ranges returns the minimal sorted list of inclusive ranges covering s.
func (s *Set) Ranges() []netipx.IPRange {
	out := make([]netipx.IPRange, 0, s.rs.Len())
	for iv := range s.rs.Enumerate() {
		out = append(out, netipx.IPRangeFrom(iv.Start, iv.End.Prev()))
	}
	return out
}

// Prefixes returns the minimal sorted list of prefixes covering s.
func (s *Set) Prefixes() []netip.Prefix {
	var out []netip.Prefix
	for _, r := range s.Ranges() {
		out = r.AppendPrefixes(out)
	}
	return out
}

// IPSet converts s to a netipx.IPSet.
func (s *Set) IPSet() (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for _, r := range s.Ranges() {
		b.AddRange(r)
	}
	return b.IPSet()
}

// String renders s as half-open address intervals.
func (s *Set) String() string {
	return s.rs.String()
}
