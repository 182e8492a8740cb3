// Package algo provides generic algorithms over chunked containers.
//
// Every backing store in this module exposes one traversal primitive:
// present each maximal contiguous run of elements to a callback, in
// forward order, covering the range exactly once with no gaps or
// overlaps. Chunk boundaries fall wherever the store's structure makes
// them cheap (trie leaves, the tail buffer, a flat array's single run);
// they are a performance detail, never observable in results. Every
// algorithm here is defined purely in terms of that primitive and
// produces output identical to the naive per-element loop.
package algo

// Chunked is the traversal contract a backing store (or a bounded view
// over one) honors. Implementations must not retain the chunk slice
// after the callback returns, and callers must not mutate it.
type Chunked[V any] interface {
	ForEachChunk(fn func(chunk []V))
}

// Slice adapts a plain slice: one flat contiguous run, presented as
// exactly one chunk covering the whole range. An empty range presents
// no chunks, matching every store in this module.
type Slice[V any] []V

// ForEachChunk presents the slice as a single chunk.
func (s Slice[V]) ForEachChunk(fn func(chunk []V)) {
	if len(s) > 0 {
		fn(s)
	}
}

// ForEach applies fn to every element in order.
func ForEach[V any](r Chunked[V], fn func(V)) {
	r.ForEachChunk(func(chunk []V) {
		for _, v := range chunk {
			fn(v)
		}
	})
}

// Reduce folds the elements in order into init.
func Reduce[V, A any](r Chunked[V], init A, fn func(A, V) A) A {
	acc := init
	r.ForEachChunk(func(chunk []V) {
		for _, v := range chunk {
			acc = fn(acc, v)
		}
	})
	return acc
}

// Count returns the number of elements the range presents.
func Count[V any](r Chunked[V]) int {
	n := 0
	r.ForEachChunk(func(chunk []V) {
		n += len(chunk)
	})
	return n
}

// Copy copies elements in order into dst and returns the number copied.
// Elements beyond len(dst) are dropped.
func Copy[V any](r Chunked[V], dst []V) int {
	n := 0
	r.ForEachChunk(func(chunk []V) {
		if n < len(dst) {
			n += copy(dst[n:], chunk)
		}
	})
	return n
}

// Equal reports whether the range presents exactly the elements of
// want, in order, regardless of how either side is chunked.
func Equal[V comparable](r Chunked[V], want []V) bool {
	i := 0
	ok := true
	r.ForEachChunk(func(chunk []V) {
		for _, v := range chunk {
			if !ok {
				return
			}
			if i >= len(want) || want[i] != v {
				ok = false
				return
			}
			i++
		}
	})
	return ok && i == len(want)
}

// Collect materializes the range as a fresh slice.
func Collect[V any](r Chunked[V]) []V {
	out := make([]V, 0, Count(r))
	r.ForEachChunk(func(chunk []V) {
		out = append(out, chunk...)
	})
	return out
}
