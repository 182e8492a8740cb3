package policy

import "sync/atomic"

// Refs is the lifetime-counting fragment contract. C is the per-slot
// counter cell embedded in whatever the count guards; the fragment
// itself holds no per-slot state and is usually zero-sized.
//
// Release reports true when the count it decremented reached zero, at
// which point the caller owns reclamation (typically returning the slot
// to a freelist). A Refs implementation never reclaims anything itself.
type Refs[C any] interface {
	// Init sets a fresh cell's count to one.
	Init(c *C)

	// Retain increments the count.
	Retain(c *C)

	// Release decrements the count and reports whether it reached zero.
	Release(c *C) bool

	// Unique reports whether exactly one reference is outstanding.
	Unique(c *C) bool
}

// Atomic counts references with atomic operations and needs no external
// lock. Zero-sized.
type Atomic struct{}

func (Atomic) Init(c *atomic.Int32)   { c.Store(1) }
func (Atomic) Retain(c *atomic.Int32) { c.Add(1) }

func (Atomic) Release(c *atomic.Int32) bool {
	n := c.Add(-1)
	if n < 0 {
		panic("policy: release of a dead reference count")
	}
	return n == 0
}

func (Atomic) Unique(c *atomic.Int32) bool { return c.Load() == 1 }

// Plain counts references with unsynchronized arithmetic. Pair it with
// a real lock fragment, or confine every Retain/Release to a single
// goroutine. Zero-sized.
type Plain struct{}

func (Plain) Init(c *int32)   { *c = 1 }
func (Plain) Retain(c *int32) { *c++ }

func (Plain) Release(c *int32) bool {
	*c--
	if *c < 0 {
		panic("policy: release of a dead reference count")
	}
	return *c == 0
}

func (Plain) Unique(c *int32) bool { return *c == 1 }

// NoRefs counts nothing: the tracing collector owns every slot's
// lifetime. Release never reports zero, so no caller ever recycles a
// slot out from under the collector. Both the fragment and its counter
// cell are zero-sized.
type NoRefs struct{}

func (NoRefs) Init(*struct{})         {}
func (NoRefs) Retain(*struct{})       {}
func (NoRefs) Release(*struct{}) bool { return false }
func (NoRefs) Unique(*struct{}) bool  { return false }
