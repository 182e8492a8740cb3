package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perst-io/perst/algo"
	"github.com/perst-io/perst/transience"
)

// boundarySizes exercises every structural regime: empty, tail-only,
// tail full, first trie leaf, multi-leaf, and a two-level trie.
var boundarySizes = []int{0, 1, 31, 32, 33, 100, 1024, 1057}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i * 3
	}
	return out
}

func TestVector_ZeroValueIsEmpty(t *testing.T) {
	var v Vector[int, transience.Serial]
	assert.Equal(t, 0, v.Len())
	assert.Empty(t, v.Items())
}

func TestVector_NewAndGetAcrossBoundaries(t *testing.T) {
	for _, n := range boundarySizes {
		want := sequence(n)
		v := New(want...)
		require.Equal(t, n, v.Len())
		for i := 0; i < n; i++ {
			require.Equal(t, want[i], v.Get(i), "size %d index %d", n, i)
		}
	}
}

func TestVector_ConjMatchesTransientConstruction(t *testing.T) {
	want := sequence(100)
	v := Of[int, transience.Serial](want...)
	assert.Equal(t, want, v.Items())
	assert.Equal(t, New(want...).Items(), v.Items())
}

func TestVector_AssocLeavesReceiverUnchanged(t *testing.T) {
	v := New(sequence(100)...)

	// One edit in the trie, one in the tail.
	a := v.Assoc(0, -1)
	b := v.Assoc(99, -2)

	assert.Equal(t, sequence(100), v.Items())
	assert.Equal(t, -1, a.Get(0))
	assert.Equal(t, -2, b.Get(99))
	assert.Equal(t, 0, b.Get(0))
}

func TestVector_AssocAtLenAppends(t *testing.T) {
	v := New(1, 2)
	w := v.Assoc(2, 3)
	assert.Equal(t, []int{1, 2, 3}, w.Items())
	assert.Equal(t, 2, v.Len())
}

func TestVector_AssocSharesUntouchedSubtries(t *testing.T) {
	v := New(sequence(100)...)

	w := v.Assoc(99, -1) // tail edit: the whole trie is shared
	assert.Same(t, v.root, w.root)

	x := v.Assoc(0, -1) // trie edit: root copied, sibling leaves shared
	assert.NotSame(t, v.root, x.root)
	assert.Same(t, v.root.kids[1], x.root.kids[1])
}

func TestVector_Update(t *testing.T) {
	v := New(1, 2, 3)
	w := v.Update(1, func(x int) int { return x * 10 })
	assert.Equal(t, []int{1, 20, 3}, w.Items())
	assert.Equal(t, []int{1, 2, 3}, v.Items())
}

func TestVector_TakeAcrossBoundaries(t *testing.T) {
	want := sequence(1057)
	v := New(want...)

	for _, n := range []int{0, 1, 10, 31, 32, 33, 100, 1024, 1056, 1057} {
		w := v.Take(n)
		require.Equal(t, n, w.Len(), "take %d", n)
		assert.Equal(t, want[:n], w.Items(), "take %d", n)
	}
	assert.Equal(t, want, v.Items(), "take must not disturb the receiver")
	assert.Equal(t, 1057, v.Take(5000).Len())
}

func TestVector_TakeShrinksHeight(t *testing.T) {
	v := New(sequence(1057)...)
	w := v.Take(40)

	assert.Equal(t, uint(nodeShift), w.shift)
	assert.Equal(t, sequence(40), w.Items())
}

func TestVector_GetOutOfRangePanics(t *testing.T) {
	v := New(1)
	assert.Panics(t, func() { v.Get(1) })
	assert.Panics(t, func() { v.Get(-1) })
	assert.Panics(t, func() { v.Assoc(5, 0) })
}

func TestVector_ChunksConcatenateToTheElements(t *testing.T) {
	for _, n := range boundarySizes {
		want := sequence(n)
		v := New(want...)

		var got []int
		calls := 0
		v.ForEachChunk(func(chunk []int) {
			require.NotEmpty(t, chunk, "size %d: empty chunk presented", n)
			require.LessOrEqual(t, len(chunk), nodeLen)
			got = append(got, chunk...)
			calls++
		})

		assert.Equal(t, want, append(make([]int, 0, n), got...), "size %d", n)
		if n == 0 {
			assert.Equal(t, 0, calls, "empty range presents no chunks")
		}
	}
}

func TestVector_ChunksBetweenSubranges(t *testing.T) {
	want := sequence(100)
	v := New(want...)

	cases := [][2]int{{0, 100}, {0, 1}, {5, 37}, {31, 33}, {32, 64}, {90, 100}, {50, 50}, {-5, 200}}
	for _, c := range cases {
		i, j := c[0], c[1]
		lo, hi := max(i, 0), min(j, 100)
		if lo > hi {
			hi = lo
		}

		var got []int
		v.ChunksBetween(i, j, func(chunk []int) {
			require.NotEmpty(t, chunk)
			got = append(got, chunk...)
		})
		assert.Equal(t, append([]int(nil), want[lo:hi]...), got, "range [%d,%d)", i, j)
	}
}

func TestVector_WorksWithChunkedAlgorithms(t *testing.T) {
	v := New(sequence(100)...)

	sum := algo.Reduce[int](v, 0, func(acc, x int) int { return acc + x })
	want := 0
	for _, x := range sequence(100) {
		want += x
	}
	assert.Equal(t, want, sum)
	assert.Equal(t, 100, algo.Count[int](v))
	assert.Equal(t, sequence(100), algo.Collect[int](v))
}

func TestVector_TracedTokens(t *testing.T) {
	v := Of[string, transience.Ref]("a", "b")
	tr := v.Transient(transience.Traced{})
	tr.Push("c")

	assert.Equal(t, []string{"a", "b"}, v.Items())
	assert.Equal(t, []string{"a", "b", "c"}, tr.Items())
}
