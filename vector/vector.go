package vector

import "github.com/perst-io/perst/transience"

// Vector is an immutable vector of V with edit tokens of type E. The
// zero Vector is empty and ready to use. Vectors are values: copy and
// share them freely.
type Vector[V any, E comparable] struct {
	count int
	shift uint
	root  *node[V, E]
	tail  []V
}

// Of builds a Vector from items under any token type.
func Of[V any, E comparable](items ...V) Vector[V, E] {
	v := Vector[V, E]{shift: nodeShift}
	for _, x := range items {
		v = v.Conj(x)
	}
	return v
}

// New builds a Vector under the default counting token type, batching
// the construction through a transient.
func New[V any](items ...V) Vector[V, transience.Serial] {
	tr := NewTransientVector[V]()
	for _, x := range items {
		tr.Push(x)
	}
	return tr.Persistent()
}

// Len returns the number of elements.
func (v Vector[V, E]) Len() int { return v.count }

// Get returns the element at index i. Callers bounds-check; an index at
// or beyond Len is out of contract and panics.
func (v Vector[V, E]) Get(i int) V {
	if i < 0 || i >= v.count {
		panic("vector: index out of range")
	}
	leaf := leafFor(v.root, v.levels(), v.tailoff(), v.tail, i)
	return leaf[i&nodeMask]
}

// Assoc returns a new Vector with index i replaced by v. i == Len
// appends. The receiver is unchanged; only the path from the root to
// the touched leaf is copied.
func (v Vector[V, E]) Assoc(i int, x V) Vector[V, E] {
	if i < 0 || i > v.count {
		panic("vector: index out of range")
	}
	if i == v.count {
		return v.Conj(x)
	}
	if i >= v.tailoff() {
		tail := make([]V, len(v.tail))
		copy(tail, v.tail)
		tail[i&nodeMask] = x
		return Vector[V, E]{count: v.count, shift: v.shift, root: v.root, tail: tail}
	}
	return Vector[V, E]{
		count: v.count,
		shift: v.shift,
		root:  assocNode(v.levels(), v.root, i, x),
		tail:  v.tail,
	}
}

func assocNode[V any, E comparable](shift uint, n *node[V, E], i int, x V) *node[V, E] {
	c := n.cloneShallow()
	if shift == 0 {
		c.vals[i&nodeMask] = x
	} else {
		sub := (i >> shift) & nodeMask
		replaceChild(&c, sub, assocNode(shift-nodeShift, n.kids[sub], i, x))
	}
	return &c
}

// Update returns a new Vector with index i replaced by fn(current).
func (v Vector[V, E]) Update(i int, fn func(V) V) Vector[V, E] {
	return v.Assoc(i, fn(v.Get(i)))
}

// Conj returns a new Vector with x appended. Amortized the only work is
// copying the tail; a full tail is pushed into the trie along one
// root-to-leaf path.
func (v Vector[V, E]) Conj(x V) Vector[V, E] {
	if v.count-v.tailoff() < nodeLen {
		tail := make([]V, len(v.tail)+1)
		copy(tail, v.tail)
		tail[len(v.tail)] = x
		return Vector[V, E]{count: v.count + 1, shift: v.levels(), root: v.root, tail: tail}
	}

	tailNode := &node[V, E]{vals: v.tail}
	shift := v.levels()
	var root *node[V, E]
	if (v.count >> nodeShift) > (1 << shift) {
		root = &node[V, E]{kids: make([]*node[V, E], nodeLen)}
		replaceChild(root, 0, v.root)
		replaceChild(root, 1, newPath(shift, tailNode))
		shift += nodeShift
	} else {
		root = pushTail(shift, v.count, v.root, tailNode)
	}
	return Vector[V, E]{count: v.count + 1, shift: shift, root: root, tail: []V{x}}
}

// pushTail sinks a full tail into the trie. count is the vector's size
// before the append, so count-1 addresses the last element of the tail
// being sunk.
func pushTail[V any, E comparable](shift uint, count int, parent *node[V, E], tailNode *node[V, E]) *node[V, E] {
	var ret node[V, E]
	if parent != nil {
		ret = parent.cloneShallow()
	} else {
		ret = node[V, E]{kids: make([]*node[V, E], nodeLen)}
	}
	sub := ((count - 1) >> shift) & nodeMask
	if shift == nodeShift {
		replaceChild(&ret, sub, tailNode)
	} else if child := ret.kids[sub]; child != nil {
		replaceChild(&ret, sub, pushTail(shift-nodeShift, count, child, tailNode))
	} else {
		replaceChild(&ret, sub, newPath(shift-nodeShift, tailNode))
	}
	return &ret
}

// newPath wraps a node in level/nodeShift single-child branches.
func newPath[V any, E comparable](level uint, n *node[V, E]) *node[V, E] {
	for l := level; l > 0; l -= nodeShift {
		b := &node[V, E]{kids: make([]*node[V, E], nodeLen)}
		replaceChild(b, 0, n)
		n = b
	}
	return n
}

// Take returns a Vector of the first min(n, Len) elements, copying only
// the trie path along the new right edge.
func (v Vector[V, E]) Take(n int) Vector[V, E] {
	switch {
	case n >= v.count:
		return v
	case n <= 0:
		return Vector[V, E]{shift: nodeShift}
	}

	tailLen := ((n - 1) & nodeMask) + 1
	to := n - tailLen // new tailoff, a multiple of nodeLen
	leaf := leafFor(v.root, v.levels(), v.tailoff(), v.tail, n-1)
	tail := make([]V, tailLen)
	copy(tail, leaf[:tailLen])

	if to == 0 {
		return Vector[V, E]{count: n, shift: nodeShift, tail: tail}
	}

	root := trimNode(v.levels(), v.root, to-1)
	shift := v.levels()
	for shift > nodeShift && root.kids[1] == nil {
		root = root.kids[0]
		shift -= nodeShift
	}
	return Vector[V, E]{count: n, shift: shift, root: root, tail: tail}
}

// trimNode keeps the subtrie covering indices [0, last], dropping
// everything to the right. Trie leaves are always full, so the leaf
// level needs no copy.
func trimNode[V any, E comparable](shift uint, n *node[V, E], last int) *node[V, E] {
	if shift == 0 {
		return n
	}
	sub := (last >> shift) & nodeMask
	c := n.cloneShallow()
	for j := sub + 1; j < nodeLen; j++ {
		replaceChild(&c, j, nil)
	}
	replaceChild(&c, sub, trimNode(shift-nodeShift, n.kids[sub], last))
	return &c
}

// ChunksBetween presents every maximal contiguous run within [i, j) in
// order: trie leaves and the tail, clipped to the range. The runs cover
// the range exactly once with no gaps or overlaps.
func (v Vector[V, E]) ChunksBetween(i, j int, fn func(chunk []V)) {
	if i < 0 {
		i = 0
	}
	if j > v.count {
		j = v.count
	}
	for i < j {
		leaf := leafFor(v.root, v.levels(), v.tailoff(), v.tail, i)
		base := i &^ nodeMask
		hi := base + len(leaf)
		if hi > j {
			hi = j
		}
		fn(leaf[i-base : hi-base])
		i = hi
	}
}

// ForEachChunk presents the whole vector, one chunk per structural run.
func (v Vector[V, E]) ForEachChunk(fn func(chunk []V)) {
	v.ChunksBetween(0, v.count, fn)
}

// Items returns a fresh slice of the elements.
func (v Vector[V, E]) Items() []V {
	out := make([]V, 0, v.count)
	v.ForEachChunk(func(chunk []V) {
		out = append(out, chunk...)
	})
	return out
}

// Transient derives a mutable facade with a fresh editing session
// minted by m. No node is pre-claimed: the facade's first edit to any
// node copies it.
func (v Vector[V, E]) Transient(m transience.Minter[E], opts ...TransientOption[V, E]) *TransientVector[V, E] {
	t := &TransientVector[V, E]{
		owner: transience.NewOwner(m),
		count: v.count,
		shift: v.levels(),
		root:  v.root,
		tail:  v.tail,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TransientOf derives a facade from a default-policy vector.
func TransientOf[V any](v Vector[V, transience.Serial], opts ...TransientOption[V, transience.Serial]) *TransientVector[V, transience.Serial] {
	return v.Transient(transience.Counting{}, opts...)
}

// NewTransientVector creates an empty facade under the default counting
// policy.
func NewTransientVector[V any](opts ...TransientOption[V, transience.Serial]) *TransientVector[V, transience.Serial] {
	var empty Vector[V, transience.Serial]
	return TransientOf(empty, opts...)
}

func (v Vector[V, E]) tailoff() int { return tailoffFor(v.count) }

// levels normalizes the zero value's shift: an untouched Vector has
// shift 0, which means the same single-level trie as nodeShift.
func (v Vector[V, E]) levels() uint {
	if v.shift < nodeShift {
		return nodeShift
	}
	return v.shift
}
