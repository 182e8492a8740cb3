package vector

import "github.com/perst-io/perst/transience"

// TransientVector is the mutable facade over a Vector's trie.
//
// Each mutating operation re-checks ownership at every node level it
// touches: an owned node is edited in place, a shared one is copied,
// claimed, and spliced into the session's tree. The tail buffer has no
// node of its own, so the facade tracks its ownership in ownsTail.
type TransientVector[V any, E comparable] struct {
	owner    *transience.Owner[E]
	rec      *Recycler[V, E]
	count    int
	shift    uint
	root     *node[V, E]
	tail     []V
	ownsTail bool
}

// TransientOption configures a derived facade.
type TransientOption[V any, E comparable] func(*TransientVector[V, E])

// WithRecycler makes the facade allocate its claimed nodes from r and
// return discarded session-owned nodes to it. One facade drives a
// recycler at a time; share one across successive facades to keep its
// freelist warm.
func WithRecycler[V any, E comparable](r *Recycler[V, E]) TransientOption[V, E] {
	return func(t *TransientVector[V, E]) { t.rec = r }
}

// Len returns the current number of elements.
func (t *TransientVector[V, E]) Len() int { return t.count }

// Owner exposes the facade's editing session for diagnostics and tests.
func (t *TransientVector[V, E]) Owner() *transience.Owner[E] { return t.owner }

// Get returns the element at index i, observing all prior edits made
// through this facade.
func (t *TransientVector[V, E]) Get(i int) V {
	if i < 0 || i >= t.count {
		panic("vector: index out of range")
	}
	leaf := leafFor(t.root, t.shift, t.tailoff(), t.tail, i)
	return leaf[i&nodeMask]
}

// Push appends x. Amortized O(1): the owned tail absorbs appends, and a
// full tail sinks into the trie along one path whose owned nodes are
// reused in place.
func (t *TransientVector[V, E]) Push(x V) {
	if t.count-t.tailoff() < nodeLen {
		t.editableTail()
		t.tail = append(t.tail, x)
		t.count++
		return
	}

	// Tail is full: sink it as a leaf. A shared tail buffer must be
	// copied before it becomes leaf storage this session may edit.
	vals := t.tail
	if !t.ownsTail {
		vals = make([]V, nodeLen)
		copy(vals, t.tail)
	}
	tailNode := t.fresh()
	tailNode.vals = vals

	if (t.count >> nodeShift) > (1 << t.shift) {
		root := t.fresh()
		root.kids = make([]*node[V, E], nodeLen)
		replaceChild(root, 0, t.root)
		replaceChild(root, 1, t.newPath(t.shift, tailNode))
		t.root = root
		t.shift += nodeShift
	} else {
		t.root = t.pushTail(t.shift, t.root, tailNode)
	}

	tail := make([]V, 1, nodeLen)
	tail[0] = x
	t.tail = tail
	t.ownsTail = true
	t.count++
}

// Set replaces the element at index i with x. i == Len appends.
func (t *TransientVector[V, E]) Set(i int, x V) {
	if i < 0 || i > t.count {
		panic("vector: index out of range")
	}
	if i == t.count {
		t.Push(x)
		return
	}
	if i >= t.tailoff() {
		t.editableTail()
		t.tail[i&nodeMask] = x
		return
	}
	t.root = t.assoc(t.shift, t.root, i, x)
}

// Update replaces the element at index i with fn(current).
func (t *TransientVector[V, E]) Update(i int, fn func(V) V) {
	t.Set(i, fn(t.Get(i)))
}

// Take truncates to the first min(n, Len) elements. Trie nodes the
// session exclusively owns on the discarded side go back to the
// recycler; shared nodes are left to the collector.
func (t *TransientVector[V, E]) Take(n int) {
	switch {
	case n >= t.count:
		return
	case n <= 0:
		t.recycle(t.root)
		t.root = nil
		t.shift = nodeShift
		t.tail = nil
		t.ownsTail = false
		t.count = 0
		return
	}

	if n > t.tailoff() {
		// The cut lands inside the current tail.
		t.tail = t.tail[:n-t.tailoff()]
		t.count = n
		return
	}

	tailLen := ((n - 1) & nodeMask) + 1
	to := n - tailLen
	leaf := leafFor(t.root, t.shift, t.tailoff(), t.tail, n-1)
	tail := make([]V, tailLen, nodeLen)
	copy(tail, leaf[:tailLen])

	if to == 0 {
		t.recycle(t.root)
		t.root = nil
		t.shift = nodeShift
	} else {
		t.root = t.trim(t.shift, t.root, to-1)
		for t.shift > nodeShift && t.root.kids[1] == nil {
			shell := t.root
			t.root = shell.kids[0]
			t.shift -= nodeShift
			replaceChild(shell, 0, nil)
			t.recycle(shell)
		}
	}
	t.tail = tail
	t.ownsTail = true
	t.count = n
}

// ForEachChunk presents the facade's current contents, one chunk per
// structural run, reflecting all edits made so far.
func (t *TransientVector[V, E]) ForEachChunk(fn func(chunk []V)) {
	t.ChunksBetween(0, t.count, fn)
}

// ChunksBetween presents every maximal contiguous run within [i, j).
func (t *TransientVector[V, E]) ChunksBetween(i, j int, fn func(chunk []V)) {
	if i < 0 {
		i = 0
	}
	if j > t.count {
		j = t.count
	}
	for i < j {
		leaf := leafFor(t.root, t.shift, t.tailoff(), t.tail, i)
		base := i &^ nodeMask
		hi := base + len(leaf)
		if hi > j {
			hi = j
		}
		fn(leaf[i-base : hi-base])
		i = hi
	}
}

// Items returns a fresh slice of the current elements.
func (t *TransientVector[V, E]) Items() []V {
	out := make([]V, 0, t.count)
	t.ForEachChunk(func(chunk []V) {
		out = append(out, chunk...)
	})
	return out
}

// Persistent publishes the facade's current state as an immutable
// Vector and retires the editing session. The facade stays usable, but
// every later edit copies first: nothing reachable from the snapshot
// can change.
func (t *TransientVector[V, E]) Persistent() Vector[V, E] {
	t.owner.Retire()
	t.ownsTail = false
	return Vector[V, E]{count: t.count, shift: t.shift, root: t.root, tail: t.tail}
}

// editable returns n if this session may mutate it in place, otherwise
// a claimed copy. Every mutation path funnels through here, one call
// per node level touched.
func (t *TransientVector[V, E]) editable(n *node[V, E]) *node[V, E] {
	if n.ownee.CanMutate(t.owner.Token()) {
		return n
	}
	c := t.fresh()
	slot := c.slot
	*c = n.cloneShallow()
	c.slot = slot
	transience.Stamp(c.ownership(), t.owner)
	return c
}

// fresh allocates an empty node claimed by this session, from the
// recycler when one is attached.
func (t *TransientVector[V, E]) fresh() *node[V, E] {
	var n *node[V, E]
	if t.rec != nil {
		slot, pn := t.rec.pool.Alloc()
		pn.slot = slot
		n = pn
	} else {
		n = &node[V, E]{}
	}
	transience.Stamp(n.ownership(), t.owner)
	return n
}

// recycle returns n and its exclusively-owned descendants to the
// recycler. A node another session or snapshot can still reach is
// never owned by this session, so the ownership check is the whole
// safety argument.
func (t *TransientVector[V, E]) recycle(n *node[V, E]) {
	if n == nil || t.rec == nil {
		return
	}
	if !n.ownee.CanMutate(t.owner.Token()) {
		return
	}
	for _, k := range n.kids {
		t.recycle(k)
	}
	if n.slot != 0 {
		t.rec.pool.Release(n.slot)
	}
}

func (t *TransientVector[V, E]) assoc(shift uint, n *node[V, E], i int, x V) *node[V, E] {
	c := t.editable(n)
	if shift == 0 {
		c.vals[i&nodeMask] = x
	} else {
		sub := (i >> shift) & nodeMask
		replaceChild(c, sub, t.assoc(shift-nodeShift, c.kids[sub], i, x))
	}
	return c
}

func (t *TransientVector[V, E]) pushTail(shift uint, parent *node[V, E], tailNode *node[V, E]) *node[V, E] {
	var ret *node[V, E]
	if parent != nil {
		ret = t.editable(parent)
	} else {
		ret = t.fresh()
		ret.kids = make([]*node[V, E], nodeLen)
	}
	sub := ((t.count - 1) >> shift) & nodeMask
	if shift == nodeShift {
		replaceChild(ret, sub, tailNode)
	} else if child := ret.kids[sub]; child != nil {
		replaceChild(ret, sub, t.pushTail(shift-nodeShift, child, tailNode))
	} else {
		replaceChild(ret, sub, t.newPath(shift-nodeShift, tailNode))
	}
	return ret
}

func (t *TransientVector[V, E]) newPath(level uint, n *node[V, E]) *node[V, E] {
	for l := level; l > 0; l -= nodeShift {
		b := t.fresh()
		b.kids = make([]*node[V, E], nodeLen)
		replaceChild(b, 0, n)
		n = b
	}
	return n
}

// trim keeps the subtrie covering [0, last], recycling owned nodes on
// the discarded side.
func (t *TransientVector[V, E]) trim(shift uint, n *node[V, E], last int) *node[V, E] {
	if shift == 0 {
		return n
	}
	sub := (last >> shift) & nodeMask
	c := t.editable(n)
	for j := sub + 1; j < nodeLen; j++ {
		if c.kids[j] != nil {
			t.recycle(c.kids[j])
			replaceChild(c, j, nil)
		}
	}
	replaceChild(c, sub, t.trim(shift-nodeShift, c.kids[sub], last))
	return c
}

// editableTail makes the tail buffer private to this session.
func (t *TransientVector[V, E]) editableTail() {
	if t.ownsTail {
		return
	}
	tail := make([]V, len(t.tail), nodeLen)
	copy(tail, t.tail)
	t.tail = tail
	t.ownsTail = true
}

func (t *TransientVector[V, E]) tailoff() int { return tailoffFor(t.count) }
