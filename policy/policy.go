package policy

import (
	"github.com/perst-io/perst/capability"
	"github.com/perst-io/perst/transience"
)

// Policy is the combined per-container memory configuration: one refs
// fragment, one transience fragment, one lock fragment, assembled
// right-to-left with the capability combinator so the lock (the only
// fragment that is ever stateful in the shipped presets) sits
// innermost. Accessors resolve at compile time through the bundle's
// delegation chain.
type Policy[R, T, L any] struct {
	frags capability.Bundle[R, capability.Bundle[T, L]]
}

// New assembles a policy from its fragments.
func New[R, T, L any](refs R, trans T, lock L) Policy[R, T, L] {
	return Policy[R, T, L]{frags: capability.Combine3(refs, trans, lock)}
}

// Refs returns the lifetime-counting fragment.
func (p *Policy[R, T, L]) Refs() *R { return p.frags.Head() }

// Transience returns the edit-token strategy fragment.
func (p *Policy[R, T, L]) Transience() *T { return p.frags.Tail().Head() }

// Lock returns the lock fragment.
func (p *Policy[R, T, L]) Lock() *L { return p.frags.Tail().Tail() }

// Default is the portable default configuration: collector-owned slots,
// counting transience, no locking. It is zero-sized.
type Default = Policy[NoRefs, transience.Counting, NoLock]

// Collected pairs collector-owned slots with trace-collected tokens.
// Zero-sized. Safe here because every store in this module keeps its
// nodes reachable by the collector; see the pairing caveat on
// transience.Traced before using it with anything else.
type Collected = Policy[NoRefs, transience.Traced, NoLock]

// Recycled counts slot references atomically and guards the recycler
// freelist with a mutex. Used by arena-backed stores.
type Recycled = Policy[Atomic, transience.Counting, Mutex]

// Frozen is the persistent-only configuration: no counting, no
// transience, no locking. Every edit through a facade copies.
// Zero-sized.
type Frozen = Policy[NoRefs, transience.None, NoLock]
