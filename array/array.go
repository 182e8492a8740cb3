package array

import "github.com/perst-io/perst/transience"

// buffer is the single shared node behind arrays: a capacity-sized
// element run plus its ownership record. len(data) is the capacity;
// the live prefix length is tracked by each Array or Transient handle,
// so several handles of different logical sizes can share one buffer.
type buffer[V any, E comparable] struct {
	ownee transience.Ownee[E]
	data  []V
}

// cloneShallow copies the buffer's content into a fresh unowned buffer
// with at least the given capacity. Ownership is never inherited by
// copies.
func (b *buffer[V, E]) cloneShallow(size, capacity int) *buffer[V, E] {
	nb := &buffer[V, E]{data: make([]V, capacity)}
	if b != nil {
		copy(nb.data, b.data[:size])
	}
	return nb
}

// Array is an immutable flat array of V with edit tokens of type E.
// The zero Array is empty and ready to use.
type Array[V any, E comparable] struct {
	buf  *buffer[V, E]
	size int
}

// Of builds an Array from items under any token type.
func Of[V any, E comparable](items ...V) Array[V, E] {
	if len(items) == 0 {
		return Array[V, E]{}
	}
	buf := &buffer[V, E]{data: make([]V, len(items))}
	copy(buf.data, items)
	return Array[V, E]{buf: buf, size: len(items)}
}

// New builds an Array under the default counting token type.
func New[V any](items ...V) Array[V, transience.Serial] {
	return Of[V, transience.Serial](items...)
}

// Len returns the number of elements.
func (a Array[V, E]) Len() int { return a.size }

// Get returns the element at index i. Callers bounds-check; an index at
// or beyond Len is out of contract and panics.
func (a Array[V, E]) Get(i int) V {
	if i >= a.size {
		panic("array: index out of range")
	}
	return a.buf.data[i]
}

// Set returns a new Array with index i replaced by v. The receiver is
// unchanged. O(n): persistent single edits copy; batch them through a
// Transient instead.
func (a Array[V, E]) Set(i int, v V) Array[V, E] {
	if i >= a.size {
		panic("array: index out of range")
	}
	buf := a.buf.cloneShallow(a.size, a.size)
	buf.data[i] = v
	return Array[V, E]{buf: buf, size: a.size}
}

// Update returns a new Array with index i replaced by fn(current).
func (a Array[V, E]) Update(i int, fn func(V) V) Array[V, E] {
	return a.Set(i, fn(a.Get(i)))
}

// Push returns a new Array with v appended. O(n).
func (a Array[V, E]) Push(v V) Array[V, E] {
	buf := a.buf.cloneShallow(a.size, a.size+1)
	buf.data[a.size] = v
	return Array[V, E]{buf: buf, size: a.size + 1}
}

// Take returns an Array of the first min(n, Len) elements. O(1): the
// buffer is shared, only the logical size shrinks.
func (a Array[V, E]) Take(n int) Array[V, E] {
	if n >= a.size {
		return a
	}
	if n <= 0 {
		return Array[V, E]{}
	}
	return Array[V, E]{buf: a.buf, size: n}
}

// ForEachChunk presents the array's single contiguous run. An empty
// array presents no chunks.
func (a Array[V, E]) ForEachChunk(fn func(chunk []V)) {
	if a.size > 0 {
		fn(a.buf.data[:a.size])
	}
}

// Items returns a fresh slice of the elements.
func (a Array[V, E]) Items() []V {
	out := make([]V, a.size)
	if a.size > 0 {
		copy(out, a.buf.data[:a.size])
	}
	return out
}

// Transient derives a mutable facade over this array's buffer with a
// fresh editing session minted by m. No buffer is pre-claimed: the
// facade's first edit copies, and everything after that runs in place.
func (a Array[V, E]) Transient(m transience.Minter[E]) *Transient[V, E] {
	return &Transient[V, E]{
		owner: transience.NewOwner(m),
		buf:   a.buf,
		size:  a.size,
	}
}

// TransientOf derives a facade from a default-policy array.
func TransientOf[V any](a Array[V, transience.Serial]) *Transient[V, transience.Serial] {
	return a.Transient(transience.Counting{})
}

// NewTransient creates an empty facade under the default counting
// policy.
func NewTransient[V any]() *Transient[V, transience.Serial] {
	return TransientOf(New[V]())
}
