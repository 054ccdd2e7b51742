package idxtable

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/henderiw/rangeset/pkg/rangeset"
)

type Table[T1 any] interface {
	Get(id int64) (T1, error)
	Claim(id int64, d T1) error
	ClaimDynamic(d T1) (int64, error)
	ClaimRange(start, size int64, d T1) error
	ClaimSize(size int64, d T1) error
	ClaimBlock(size int64, d T1) (int64, error)
	Release(id int64) error
	Update(id int64, d T1) error

	Iterate() *Iterator[T1]
	IterateFree() *Iterator[T1]

	Count() int
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)
	FindFreeRange(start, size int64) (map[int64]T1, error)
	FindFreeSize(size int64) (map[int64]T1, error)
	FindFreeBlock(size int64) (rangeset.Interval[int64], error)
	Free() *rangeset.RangeSet[int64]

	GetAll() map[int64]T1
}

type ValidationFn func(id int64) error

// NewTable returns a table for the ids [0, s). initEntries bypass the
// validation function, which lets callers pre-claim reserved ids.
func NewTable[T1 any](s int64, initEntries map[int64]T1, v ValidationFn) (Table[T1], error) {
	r := &table[T1]{
		m:          new(sync.RWMutex),
		table:      map[int64]T1{},
		used:       rangeset.New[int64](),
		size:       s,
		validateFn: v,
	}

	var errm error
	for id, d := range initEntries {
		if err := r.add(id, d, true); err != nil {
			errm = errors.CombineErrors(errm, err)
		}
	}

	return r, errm
}

type table[T1 any] struct {
	m     *sync.RWMutex
	table map[int64]T1
	// used mirrors the keys of table as intervals
	used       *rangeset.RangeSet[int64]
	size       int64
	validateFn ValidationFn
}

func (r *table[T1]) bounds() rangeset.Interval[int64] {
	return rangeset.IntervalOf(0, r.size)
}

func (r *table[T1]) validate(id int64, init bool) error {
	if id < 0 || id > r.size-1 {
		return errors.Newf("id %d is outside the allowed entries: 0-%d", id, r.size-1)
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(id); err != nil {
			return err
		}
	}
	return nil
}

func (r *table[T1]) Get(id int64) (T1, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	var d T1

	if err := r.validate(id, false); err != nil {
		return d, err
	}

	d, ok := r.table[id]
	if !ok {
		return d, errors.Newf("no match found for: %v", id)
	}
	return d, nil
}

func (r *table[T1]) Claim(id int64, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(id, d, false)
}

func (r *table[T1]) ClaimDynamic(d T1) (int64, error) {
	r.m.Lock()
	defer r.m.Unlock()

	id, err := r.findFree()
	if err != nil {
		return 0, err
	}
	if err := r.add(id, d, false); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *table[T1]) ClaimRange(start, size int64, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	entries, err := r.findFreeRange(start, size)
	if err != nil {
		return err
	}
	for id := range entries {
		// getting an error is unlikely as we have a lock
		if err := r.add(id, d, false); err != nil {
			return err
		}
	}
	return nil
}

func (r *table[T1]) ClaimSize(size int64, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	entries, err := r.findFreeSize(size)
	if err != nil {
		return err
	}
	for id := range entries {
		// getting an error is unlikely as we have a lock
		if err := r.add(id, d, false); err != nil {
			return err
		}
	}
	return nil
}

// ClaimBlock claims the lowest contiguous block of size free ids and
// returns its first id.
func (r *table[T1]) ClaimBlock(size int64, d T1) (int64, error) {
	r.m.Lock()
	defer r.m.Unlock()

	block, err := r.findFreeBlock(size)
	if err != nil {
		return 0, err
	}
	for id := block.Start; id < block.End; id++ {
		if err := r.add(id, d, false); err != nil {
			return 0, err
		}
	}
	return block.Start, nil
}

func (r *table[T1]) Release(id int64) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.delete(id)
}

func (r *table[T1]) Update(id int64, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.update(id, d)
}

func (r *table[T1]) Iterate() *Iterator[T1] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.iterate()
}

func (r *table[T1]) iterate() *Iterator[T1] {
	keys := make([]int64, 0, len(r.table))
	for key := range r.table {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i int, j int) bool {
		return keys[i] < keys[j]
	})

	return &Iterator[T1]{current: -1, keys: keys, table: r.table}
}

func (r *table[T1]) IterateFree() *Iterator[T1] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.iterateFree()
}

func (r *table[T1]) iterateFree() *Iterator[T1] {
	free := r.used.Complement(r.bounds())
	keys := make([]int64, 0, rangeset.Measure(free))
	for id := range rangeset.Points(free) {
		keys = append(keys, id)
	}
	return &Iterator[T1]{current: -1, keys: keys, table: map[int64]T1{}}
}

func (r *table[T1]) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.table)
}

func (r *table[T1]) Has(id int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.used.Contains(id)
}

func (r *table[T1]) IsFree(id int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.isFree(id)
}

func (r *table[T1]) isFree(id int64) bool {
	return !r.used.Contains(id)
}

func (r *table[T1]) FindFree() (int64, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.findFree()
}

func (r *table[T1]) findFree() (int64, error) {
	free, ok := r.used.Complement(r.bounds()).Span()
	if !ok {
		return 0, errors.New("no free entry found")
	}
	return free.Start, nil
}

func (r *table[T1]) FindFreeRange(start, size int64) (map[int64]T1, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.findFreeRange(start, size)
}

func (r *table[T1]) findFreeRange(start, size int64) (map[int64]T1, error) {
	if start < 0 || start > r.size-1 {
		return nil, errors.Newf("start %d is outside the allowed entries: 0-%d", start, r.size-1)
	}
	if size <= 0 {
		return nil, errors.Newf("invalid range size %d", size)
	}
	if size > r.size-start {
		return nil, errors.Newf("range start %d size %d exceeds max allowed entries: %d", start, size, r.size-1)
	}
	want := rangeset.IntervalOf(start, start+size)
	if r.used.Overlaps(want) {
		taken := r.used.Intersect(rangeset.New(want))
		return nil, errors.Newf("entries %s in use in range: start: %d, end %d", taken, start, want.End-1)
	}

	entries := make(map[int64]T1, size)
	var d T1
	for id := want.Start; id < want.End; id++ {
		entries[id] = d
	}
	return entries, nil
}

func (r *table[T1]) FindFreeSize(size int64) (map[int64]T1, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.findFreeSize(size)
}

func (r *table[T1]) findFreeSize(size int64) (map[int64]T1, error) {
	if size <= 0 {
		return nil, errors.Newf("invalid size %d", size)
	}
	if size > r.size {
		return nil, errors.Newf("size %d is bigger then max allowed entries: %d", size, r.size)
	}
	entries := map[int64]T1{}
	var d T1
	for id := range rangeset.Points(r.used.Complement(r.bounds())) {
		if int64(len(entries)) == size {
			break
		}
		entries[id] = d
	}
	if int64(len(entries)) < size {
		return nil, errors.Newf("could not find free entries that fit in size %d", size)
	}
	return entries, nil
}

func (r *table[T1]) FindFreeBlock(size int64) (rangeset.Interval[int64], error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.findFreeBlock(size)
}

func (r *table[T1]) findFreeBlock(size int64) (rangeset.Interval[int64], error) {
	block, ok := rangeset.FirstFit(r.used.Complement(r.bounds()), size)
	if !ok {
		return block, errors.Newf("could not find a free block of size %d", size)
	}
	return block, nil
}

// Free returns a snapshot of the unclaimed ids.
func (r *table[T1]) Free() *rangeset.RangeSet[int64] {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.used.Complement(r.bounds())
}

func (r *table[T1]) add(id int64, d T1, init bool) error {
	if err := r.validate(id, init); err != nil {
		return err
	}
	if !r.isFree(id) {
		return errors.Newf("entry %d already exists", id)
	}
	r.table[id] = d
	r.used.Add(rangeset.IntervalOf(id, id+1))
	return nil
}

func (r *table[T1]) update(id int64, d T1) error {
	if err := r.validate(id, false); err != nil {
		return err
	}
	if r.isFree(id) {
		return errors.Newf("entry %d not found", id)
	}
	r.table[id] = d
	return nil
}

func (r *table[T1]) delete(id int64) error {
	if err := r.validate(id, false); err != nil {
		return err
	}
	delete(r.table, id)
	r.used.Remove(rangeset.IntervalOf(id, id+1))
	return nil
}

func (r *table[T1]) GetAll() map[int64]T1 {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(map[int64]T1, len(r.table))

	iter := r.iterate()
	for iter.Next() {
		entries[iter.ID()] = iter.Value()
	}
	return entries
}
