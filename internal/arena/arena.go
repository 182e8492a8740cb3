// Package arena provides slab-backed node storage addressed by stable
// handles, with reference-counted slot recycling.
//
// A Pool hands out slots for node values. Slots are identified by a
// Handle (a stable index, never a raw pointer), so splicing a node into
// a parent is an index assignment and a released slot can be reused
// without invalidating other handles. Pointers returned by Get stay
// valid for the life of the pool: slots live in fixed-size slabs that
// are never reallocated.
//
// Lifetime is driven by a policy.Refs fragment: Alloc initializes a
// slot's count to one, Retain/Release adjust it, and the release that
// reaches zero returns the slot to the freelist. The freelist and slab
// table are guarded by the policy's lock fragment, so a Pool is as
// concurrent as the fragments it is built from.
package arena

const slabLen = 64

// Handle identifies one pool slot. The zero Handle is null and never
// allocated; node code uses it to mean "not pool-managed".
type Handle uint32

// Locker is the subset of sync.Locker the pool needs. policy.NoLock and
// *policy.Mutex both satisfy it.
type Locker interface {
	Lock()
	Unlock()
}

// Refs mirrors policy.Refs for the pool's counter cell type.
type Refs[C any] interface {
	Init(c *C)
	Retain(c *C)
	Release(c *C) bool
	Unique(c *C) bool
}

type entry[N, C any] struct {
	cnt C
	val N
}

// Pool is a slab allocator for N values with per-slot reference counts
// of cell type C driven by fragment R.
type Pool[N, C any, R Refs[C]] struct {
	refs  R
	lock  Locker
	slabs [][]entry[N, C]
	free  []Handle
	live  int
}

// New creates a pool using the given refs and lock fragments.
func New[N, C any, R Refs[C]](refs R, lock Locker) *Pool[N, C, R] {
	return &Pool[N, C, R]{refs: refs, lock: lock}
}

// Alloc returns a fresh slot with its count at one, together with a
// pointer to the slot's value. Reused slots are zeroed before handout.
func (p *Pool[N, C, R]) Alloc() (Handle, *N) {
	p.lock.Lock()
	var h Handle
	if n := len(p.free); n > 0 {
		h = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx := p.len()
		if idx%slabLen == 0 {
			p.slabs = append(p.slabs, make([]entry[N, C], 0, slabLen))
		}
		slab := &p.slabs[len(p.slabs)-1]
		*slab = append(*slab, entry[N, C]{})
		h = Handle(idx + 1)
	}
	p.live++
	e := p.at(h)
	p.lock.Unlock()

	var zero entry[N, C]
	*e = zero
	p.refs.Init(&e.cnt)
	return h, &e.val
}

// Get returns the value stored in slot h. The pointer stays valid until
// the slot is released and reused.
func (p *Pool[N, C, R]) Get(h Handle) *N {
	return &p.entry(h).val
}

// Retain adds a reference to slot h.
func (p *Pool[N, C, R]) Retain(h Handle) {
	p.refs.Retain(&p.entry(h).cnt)
}

// Unique reports whether slot h has exactly one outstanding reference.
func (p *Pool[N, C, R]) Unique(h Handle) bool {
	return p.refs.Unique(&p.entry(h).cnt)
}

// Release drops a reference to slot h. When the last reference goes,
// the slot joins the freelist and Release reports true; the caller must
// not touch the slot afterwards. Under a NoRefs fragment Release never
// reports true and slots are left to the collector.
func (p *Pool[N, C, R]) Release(h Handle) bool {
	if !p.refs.Release(&p.entry(h).cnt) {
		return false
	}
	p.lock.Lock()
	p.free = append(p.free, h)
	p.live--
	p.lock.Unlock()
	return true
}

// Live returns the number of slots currently allocated.
func (p *Pool[N, C, R]) Live() int {
	p.lock.Lock()
	n := p.live
	p.lock.Unlock()
	return n
}

// len is the total number of slots ever created. Callers hold the lock.
func (p *Pool[N, C, R]) len() int {
	if len(p.slabs) == 0 {
		return 0
	}
	return (len(p.slabs)-1)*slabLen + len(p.slabs[len(p.slabs)-1])
}

// entry resolves a handle under the lock: the slab table header may be
// growing concurrently, but slab contents never move, so the returned
// pointer is safe to use after the lock is dropped.
func (p *Pool[N, C, R]) entry(h Handle) *entry[N, C] {
	p.lock.Lock()
	e := p.at(h)
	p.lock.Unlock()
	return e
}

func (p *Pool[N, C, R]) at(h Handle) *entry[N, C] {
	idx := int(h) - 1
	return &p.slabs[idx/slabLen][idx%slabLen]
}
