package array

import "github.com/perst-io/perst/transience"

// minCapacity is the smallest buffer a growing transient allocates.
const minCapacity = 8

// Transient is the mutable facade over an Array's buffer.
//
// Every mutating operation consults the buffer's ownership record: if
// this facade's session already claimed the buffer it is written in
// place with no allocation, otherwise the content is copied into a
// fresh buffer claimed by this session and the copy is edited. Steady-
// state editing therefore allocates only on growth.
//
// Out-of-range indices are out of contract: callers bounds-check, the
// hot path does not.
type Transient[V any, E comparable] struct {
	owner *transience.Owner[E]
	buf   *buffer[V, E]
	size  int
}

// Len returns the current number of elements.
func (t *Transient[V, E]) Len() int { return t.size }

// Get returns the element at index i.
func (t *Transient[V, E]) Get(i int) V {
	if i >= t.size {
		panic("array: index out of range")
	}
	return t.buf.data[i]
}

// Owner exposes the facade's editing session. Intended for diagnostics
// and tests; claiming nodes by hand bypasses the facade's checks.
func (t *Transient[V, E]) Owner() *transience.Owner[E] { return t.owner }

// Push appends v. Amortized O(1): an owned buffer with spare capacity
// is written in place, anything else is copied into a grown buffer
// claimed by this session.
func (t *Transient[V, E]) Push(v V) {
	if t.writable() && t.size < len(t.buf.data) {
		t.buf.data[t.size] = v
		t.size++
		return
	}
	capacity := max(2*t.capacity(), minCapacity)
	if capacity < t.size+1 {
		capacity = t.size + 1
	}
	buf := t.buf.cloneShallow(t.size, capacity)
	transience.Stamp(&buf.ownee, t.owner)
	buf.data[t.size] = v
	t.buf = buf
	t.size++
}

// Set replaces the element at index i with v.
func (t *Transient[V, E]) Set(i int, v V) {
	if i >= t.size {
		panic("array: index out of range")
	}
	if !t.writable() {
		buf := t.buf.cloneShallow(t.size, max(t.capacity(), t.size))
		transience.Stamp(&buf.ownee, t.owner)
		t.buf = buf
	}
	t.buf.data[i] = v
}

// Update replaces the element at index i with fn(current).
func (t *Transient[V, E]) Update(i int, fn func(V) V) {
	t.Set(i, fn(t.Get(i)))
}

// Take truncates to the first min(n, Len) elements. O(1): truncation is
// facade-local state; stale elements stay in the buffer until
// overwritten, which is safe because in-place overwrites only ever hit
// buffers private to this session.
func (t *Transient[V, E]) Take(n int) {
	if n < 0 {
		n = 0
	}
	if n < t.size {
		t.size = n
	}
}

// ForEachChunk presents the facade's single contiguous run, reflecting
// all edits made so far through this facade.
func (t *Transient[V, E]) ForEachChunk(fn func(chunk []V)) {
	if t.size > 0 {
		fn(t.buf.data[:t.size])
	}
}

// Items returns a fresh slice of the current elements.
func (t *Transient[V, E]) Items() []V {
	out := make([]V, t.size)
	if t.size > 0 {
		copy(out, t.buf.data[:t.size])
	}
	return out
}

// Persistent publishes the facade's current state as an immutable
// Array and retires the editing session. The facade remains usable,
// but every later edit through it copies first, so the published
// snapshot can never change.
func (t *Transient[V, E]) Persistent() Array[V, E] {
	t.owner.Retire()
	return Array[V, E]{buf: t.buf, size: t.size}
}

// writable reports whether the current buffer may be mutated in place
// by this session.
func (t *Transient[V, E]) writable() bool {
	return t.buf != nil && t.buf.ownee.CanMutate(t.owner.Token())
}

func (t *Transient[V, E]) capacity() int {
	if t.buf == nil {
		return 0
	}
	return len(t.buf.data)
}
