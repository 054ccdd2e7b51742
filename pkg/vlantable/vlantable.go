package vlantable

import (
	"github.com/cockroachdb/errors"
	"github.com/henderiw/rangeset/pkg/idxtable"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"k8s.io/apimachinery/pkg/labels"
)

const (
	untaggedVLAN = 0
	defaultVLAN  = 1
	reservedVLAN = 4095

	maxVLAN = 4095
)

type VLANTable interface {
	Get(id int64) (labels.Set, error)
	Claim(id int64, d labels.Set) error
	ClaimDynamic(d labels.Set) (int64, error)
	ClaimRange(start, size int64, d labels.Set) error
	ClaimSize(size int64, d labels.Set) error
	ClaimBlock(size int64, d labels.Set) (int64, error)
	Release(id int64) error
	Update(id int64, d labels.Set) error

	Count() int
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)
	Free() *rangeset.RangeSet[int64]

	GetAll() map[int64]labels.Set
	GetByLabel(selector labels.Selector) map[int64]labels.Set
}

func reservedEntries() map[int64]labels.Set {
	return map[int64]labels.Set{
		untaggedVLAN: {"type": "untagged", "status": "reserved"},
		defaultVLAN:  {"type": "default", "status": "reserved"},
		reservedVLAN: {"type": "reserved", "status": "reserved"},
	}
}

func New() (VLANTable, error) {
	t, err := idxtable.NewTable[labels.Set](
		maxVLAN+1,
		reservedEntries(),
		func(id int64) error {
			switch id {
			case untaggedVLAN:
				return errors.Newf("VLAN %d is the untagged VLAN, cannot be added to the database", id)
			case defaultVLAN:
				return errors.Newf("VLAN %d is the default VLAN, cannot be added to the database", id)
			case reservedVLAN:
				return errors.Newf("VLAN %d is reserved, cannot be added to the database", id)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return &vlanTable{table: t}, nil
}

// vlanTable indexes the underlying table by VLAN id directly.
type vlanTable struct {
	table idxtable.Table[labels.Set]
}

func (r *vlanTable) Get(id int64) (labels.Set, error) {
	return r.table.Get(id)
}

func (r *vlanTable) Claim(id int64, d labels.Set) error {
	if !r.table.IsFree(id) {
		return errors.Newf("VLAN %d is already claimed", id)
	}
	return r.table.Claim(id, d)
}

func (r *vlanTable) ClaimDynamic(d labels.Set) (int64, error) {
	id, err := r.table.ClaimDynamic(d)
	if err != nil {
		return -1, err
	}
	return id, nil
}

func (r *vlanTable) ClaimRange(start, size int64, d labels.Set) error {
	return r.table.ClaimRange(start, size, d)
}

func (r *vlanTable) ClaimSize(size int64, d labels.Set) error {
	return r.table.ClaimSize(size, d)
}

func (r *vlanTable) ClaimBlock(size int64, d labels.Set) (int64, error) {
	id, err := r.table.ClaimBlock(size, d)
	if err != nil {
		return -1, err
	}
	return id, nil
}

func (r *vlanTable) Release(id int64) error {
	return r.table.Release(id)
}

func (r *vlanTable) Update(id int64, d labels.Set) error {
	if r.table.IsFree(id) {
		return errors.Newf("VLAN %d is not claimed", id)
	}
	return r.table.Update(id, d)
}

func (r *vlanTable) Count() int {
	return r.table.Count()
}

func (r *vlanTable) Has(id int64) bool {
	return r.table.Has(id)
}

func (r *vlanTable) IsFree(id int64) bool {
	return r.table.IsFree(id)
}

func (r *vlanTable) FindFree() (int64, error) {
	id, err := r.table.FindFree()
	if err != nil {
		return -1, err
	}
	return id, nil
}

// Free returns the unclaimed VLAN ids.
func (r *vlanTable) Free() *rangeset.RangeSet[int64] {
	return r.table.Free()
}

func (r *vlanTable) GetAll() map[int64]labels.Set {
	return r.table.GetAll()
}

func (r *vlanTable) GetByLabel(selector labels.Selector) map[int64]labels.Set {
	entries := map[int64]labels.Set{}

	iter := r.table.Iterate()

	for iter.Next() {
		if selector.Matches(iter.Value()) {
			entries[iter.ID()] = iter.Value()
		}
	}
	return entries
}
