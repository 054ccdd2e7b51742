package iptable

import (
	"math"
	"math/big"
	"net/netip"

	"github.com/cockroachdb/errors"
	"github.com/henderiw/rangeset/pkg/idxtable"
	"github.com/henderiw/rangeset/pkg/iprange"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

type IPTable interface {
	Get(addr string) (labels.Set, error)
	Claim(addr string, d labels.Set) error
	ClaimDynamic(d labels.Set) (netip.Addr, error)
	Release(addr string) error
	Update(addr string, d labels.Set) error

	Count() int
	Has(addr string) bool

	IsFree(addr string) bool
	FindFree() (netip.Addr, error)
	Free() (*iprange.Set, error)

	GetAll() map[netip.Addr]labels.Set
	GetByLabel(selector labels.Selector) map[netip.Addr]labels.Set
}

// New returns a table for the inclusive address range from-to. The range may
// not end on the last address of its family, so that its free space always
// converts to an iprange.Set.
func New(from, to netip.Addr) (IPTable, error) {
	ipRange := netipx.IPRangeFrom(from, to)
	if !ipRange.IsValid() {
		return nil, errors.Newf("invalid ip range from %s to %s", from, to)
	}
	if !to.Next().IsValid() {
		return nil, errors.Wrapf(iprange.ErrFamilyEnd, "invalid ip range from %s to %s", from, to)
	}
	size, err := numIPs(from, to)
	if err != nil {
		return nil, err
	}
	t, err := idxtable.NewTable[labels.Set](size, nil, nil)
	if err != nil {
		return nil, err
	}
	return &ipTable{
		table:   t,
		ipRange: ipRange,
	}, nil
}

type ipTable struct {
	table   idxtable.Table[labels.Set]
	ipRange netipx.IPRange
}

func (r *ipTable) Get(addr string) (labels.Set, error) {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return nil, err
	}
	return r.table.Get(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) Claim(addr string, d labels.Set) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	id := calculateIndex(claimIP, r.ipRange.From())
	if !r.table.IsFree(id) {
		return errors.Newf("claim failed ip %s already claimed", addr)
	}
	return r.table.Claim(id, d)
}

func (r *ipTable) ClaimDynamic(d labels.Set) (netip.Addr, error) {
	id, err := r.table.ClaimDynamic(d)
	if err != nil {
		return netip.Addr{}, err
	}
	return calculateIPFromIndex(r.ipRange.From(), id), nil
}

func (r *ipTable) Release(addr string) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	return r.table.Release(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) Update(addr string, d labels.Set) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	id := calculateIndex(claimIP, r.ipRange.From())
	if r.table.IsFree(id) {
		return errors.Newf("update failed ip %s not claimed", addr)
	}
	return r.table.Update(id, d)
}

func (r *ipTable) Count() int {
	return r.table.Count()
}

func (r *ipTable) Has(addr string) bool {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.table.Has(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) IsFree(addr string) bool {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.table.IsFree(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) FindFree() (netip.Addr, error) {
	id, err := r.table.FindFree()
	if err != nil {
		return netip.Addr{}, err
	}
	return calculateIPFromIndex(r.ipRange.From(), id), nil
}

// Free returns the unclaimed addresses of the table.
func (r *ipTable) Free() (*iprange.Set, error) {
	free := iprange.New()
	for iv := range r.table.Free().Enumerate() {
		from := calculateIPFromIndex(r.ipRange.From(), iv.Start)
		to := calculateIPFromIndex(r.ipRange.From(), iv.End-1)
		if err := free.AddRange(netipx.IPRangeFrom(from, to)); err != nil {
			return nil, err
		}
	}
	return free, nil
}

func (r *ipTable) GetAll() map[netip.Addr]labels.Set {
	entries := map[netip.Addr]labels.Set{}
	for id, d := range r.table.GetAll() {
		entries[calculateIPFromIndex(r.ipRange.From(), id)] = d
	}
	return entries
}

func (r *ipTable) GetByLabel(selector labels.Selector) map[netip.Addr]labels.Set {
	entries := map[netip.Addr]labels.Set{}

	iter := r.table.Iterate()
	for iter.Next() {
		e := iter.Entry()
		if selector.Matches(e.Data()) {
			entries[calculateIPFromIndex(r.ipRange.From(), e.ID())] = e.Data()
		}
	}
	return entries
}

func (r *ipTable) validateIP(addr string) (netip.Addr, error) {
	claimIP, err := netip.ParseAddr(addr)
	if err != nil {
		return netip.Addr{}, errors.Wrapf(err, "ip address %s is invalid", addr)
	}
	if !r.ipRange.Contains(claimIP) {
		return netip.Addr{}, errors.Newf("ip address %s, does not fit in the range from %s to %s", addr, r.ipRange.From(), r.ipRange.To())
	}
	return claimIP, nil
}

func calculateIndex(ip, start netip.Addr) int64 {
	return new(big.Int).Sub(ipToInt(ip), ipToInt(start)).Int64()
}

// numIPs returns the number of addresses in the inclusive range, which must
// fit an int64 index.
func numIPs(startIP, endIP netip.Addr) (int64, error) {
	diff := new(big.Int).Sub(ipToInt(endIP), ipToInt(startIP))
	if !diff.IsInt64() || diff.Int64() == math.MaxInt64 {
		return 0, errors.Newf("ip range from %s to %s holds more than %d addresses", startIP, endIP, int64(math.MaxInt64))
	}
	return diff.Int64() + 1, nil
}

func ipToInt(ip netip.Addr) *big.Int {
	bytes := ip.As16()
	return new(big.Int).SetBytes(bytes[:])
}

func calculateIPFromIndex(startIP netip.Addr, id int64) netip.Addr {
	ipInt := new(big.Int).Add(ipToInt(startIP), big.NewInt(id))

	var ip16 [16]byte
	ipInt.FillBytes(ip16[:])

	if startIP.Is4() {
		return netip.AddrFrom16(ip16).Unmap()
	}
	return netip.AddrFrom16(ip16)
}
