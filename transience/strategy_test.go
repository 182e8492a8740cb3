package transience

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounting_NeverMintsNoone(t *testing.T) {
	m := Counting{}
	for i := 0; i < 100; i++ {
		require.NotEqual(t, Serial(0), m.Mint())
	}
}

func TestCounting_TokensUnique(t *testing.T) {
	m := Counting{}
	seen := make(map[Serial]bool)
	for i := 0; i < 1000; i++ {
		tok := m.Mint()
		assert.False(t, seen[tok], "token %d minted twice", tok)
		seen[tok] = true
	}
}

func TestCounting_ConcurrentMint(t *testing.T) {
	const goroutines = 100
	const perGoroutine = 100

	m := Counting{}
	tokens := make(chan Serial, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				tokens <- m.Mint()
			}
		}()
	}
	wg.Wait()
	close(tokens)

	seen := make(map[Serial]bool)
	for tok := range tokens {
		assert.False(t, seen[tok], "token %d minted twice", tok)
		seen[tok] = true
	}
	assert.Len(t, seen, goroutines*perGoroutine)
}

func TestTraced_TokensAreDistinctCells(t *testing.T) {
	m := Traced{}
	a := m.Mint()
	b := m.Mint()

	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotEqual(t, a, b, "distinct sessions must get distinct cells")
	assert.Equal(t, a, a, "token equality is cell identity")
}

func TestTraced_NooneIsNil(t *testing.T) {
	var noone Ref
	var node Ownee[Ref]
	assert.False(t, node.CanMutate(noone))

	o := NewTracedOwner()
	node.Claim(o.Token())
	assert.True(t, node.CanMutate(o.Token()))
	assert.False(t, node.CanMutate(noone))
}

func TestTraced_OwnerLifecycle(t *testing.T) {
	o := NewTracedOwner()
	require.True(t, o.Live())

	var node Ownee[Ref]
	Stamp(&node, o)
	assert.True(t, node.CanMutate(o.Token()))

	o.Retire()
	assert.False(t, o.Live())
	assert.False(t, node.CanMutate(o.Token()))
}

func TestNone_NeverGrantsMutation(t *testing.T) {
	o := NewVoidOwner()
	assert.False(t, o.Live(), "void owners are never live")

	var node Ownee[Never]
	Stamp(&node, o)
	assert.False(t, node.Owned(), "void owners must not claim nodes")
	assert.False(t, node.CanMutate(o.Token()))
}

func TestNone_ForkStaysVoid(t *testing.T) {
	o := NewVoidOwner()
	f := o.Fork()
	assert.False(t, f.Live())
}
