package vector

import (
	"github.com/perst-io/perst/internal/arena"
	"github.com/perst-io/perst/transience"
)

const (
	nodeShift = 5
	nodeLen   = 1 << nodeShift
	nodeMask  = nodeLen - 1
)

// node is one shared trie node: an interior node carries kids, a leaf
// carries vals, never both. The ownership record decides whether a
// session may edit it in place; slot is the node's arena handle when it
// was allocated from a Recycler, zero when the collector owns it.
type node[V any, E comparable] struct {
	ownee transience.Ownee[E]
	slot  arena.Handle
	kids  []*node[V, E]
	vals  []V
}

// cloneShallow copies the node's content and returns it with a fresh,
// unowned ownership record. Ownership state is never inherited: the
// caller claims the clone for whichever session asked for it.
func (n *node[V, E]) cloneShallow() node[V, E] {
	var c node[V, E]
	if n.kids != nil {
		c.kids = make([]*node[V, E], nodeLen)
		copy(c.kids, n.kids)
	}
	if n.vals != nil {
		c.vals = make([]V, len(n.vals))
		copy(c.vals, n.vals)
	}
	return c
}

// ownership exposes the node's ownership record to the facade.
func (n *node[V, E]) ownership() *transience.Ownee[E] { return &n.ownee }

// replaceChild splices a new child into a parent during copy-on-write
// propagation. With nodes addressed through stable storage this is an
// index reassignment, never a rewrite of the child itself.
func replaceChild[V any, E comparable](parent *node[V, E], i int, child *node[V, E]) {
	parent.kids[i] = child
}

// leafFor locates the contiguous run holding index i: the tail for the
// newest elements, otherwise the trie leaf reached by walking i's bit
// path from the root. Runs are aligned: a run's first element index is
// i &^ nodeMask.
func leafFor[V any, E comparable](root *node[V, E], shift uint, tailoff int, tail []V, i int) []V {
	if i >= tailoff {
		return tail
	}
	n := root
	for level := shift; level > 0; level -= nodeShift {
		n = n.kids[(i>>level)&nodeMask]
	}
	return n.vals
}

func tailoffFor(count int) int {
	if count < nodeLen {
		return 0
	}
	return ((count - 1) >> nodeShift) << nodeShift
}
