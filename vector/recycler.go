package vector

import (
	"sync/atomic"

	"github.com/perst-io/perst/internal/arena"
	"github.com/perst-io/perst/policy"
)

// Recycler is arena-backed node storage for transient facades. Nodes a
// facade claims are allocated from pool slots; nodes the facade later
// discards (truncation, height shrinks) return to the freelist instead
// of waiting on the collector. Nodes that end up in a published
// snapshot keep their slots for the life of the recycler.
//
// The pool is assembled from the Recycled policy preset: atomic slot
// counts, a mutex around the freelist. One facade drives a recycler at
// a time, but handing the same recycler to successive facades keeps the
// freelist warm across sessions.
type Recycler[V any, E comparable] struct {
	pool *arena.Pool[node[V, E], atomic.Int32, policy.Atomic]
}

// NewRecycler creates an empty recycler.
func NewRecycler[V any, E comparable]() *Recycler[V, E] {
	var p policy.Recycled
	return &Recycler[V, E]{
		pool: arena.New[node[V, E], atomic.Int32](*p.Refs(), p.Lock()),
	}
}

// Live returns the number of pool slots currently allocated.
func (r *Recycler[V, E]) Live() int { return r.pool.Live() }
