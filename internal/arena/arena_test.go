package arena

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perst-io/perst/policy"
)

type testNode struct {
	id   int
	data []int
}

func newTestPool() *Pool[testNode, atomic.Int32, policy.Atomic] {
	return New[testNode, atomic.Int32](policy.Atomic{}, policy.NoLock{})
}

func TestPool_AllocAssignsDistinctHandles(t *testing.T) {
	p := newTestPool()

	h1, n1 := p.Alloc()
	h2, n2 := p.Alloc()

	require.NotEqual(t, Handle(0), h1, "the zero handle is null and never allocated")
	assert.NotEqual(t, h1, h2)

	n1.id = 1
	n2.id = 2
	assert.Equal(t, 1, p.Get(h1).id)
	assert.Equal(t, 2, p.Get(h2).id)
}

func TestPool_PointersStableAcrossGrowth(t *testing.T) {
	p := newTestPool()

	h1, n1 := p.Alloc()
	n1.id = 42

	// Force several slab allocations.
	for i := 0; i < slabLen*3; i++ {
		_, n := p.Alloc()
		n.id = i
	}

	assert.Same(t, n1, p.Get(h1), "slot pointers must survive pool growth")
	assert.Equal(t, 42, p.Get(h1).id)
}

func TestPool_ReleaseRecyclesSlot(t *testing.T) {
	p := newTestPool()

	h, n := p.Alloc()
	n.id = 7
	n.data = []int{1, 2, 3}

	require.True(t, p.Release(h), "last release must free the slot")

	h2, n2 := p.Alloc()
	assert.Equal(t, h, h2, "freed slot must be reused")
	assert.Equal(t, 0, n2.id, "reused slot must be zeroed")
	assert.Nil(t, n2.data)
}

func TestPool_RetainDefersRecycling(t *testing.T) {
	p := newTestPool()

	h, _ := p.Alloc()
	require.True(t, p.Unique(h))

	p.Retain(h)
	assert.False(t, p.Unique(h))
	assert.False(t, p.Release(h), "a second reference is outstanding")
	assert.True(t, p.Release(h))
}

func TestPool_LiveTracksAllocations(t *testing.T) {
	p := newTestPool()
	assert.Equal(t, 0, p.Live())

	h1, _ := p.Alloc()
	h2, _ := p.Alloc()
	assert.Equal(t, 2, p.Live())

	p.Release(h1)
	assert.Equal(t, 1, p.Live())
	p.Release(h2)
	assert.Equal(t, 0, p.Live())
}

func TestPool_NoRefsNeverRecycles(t *testing.T) {
	p := New[testNode, struct{}](policy.NoRefs{}, policy.NoLock{})

	h, _ := p.Alloc()
	assert.False(t, p.Release(h),
		"collector-owned slots must never join the freelist")
	assert.Equal(t, 1, p.Live())
}

func TestPool_ConcurrentAllocRelease(t *testing.T) {
	// Atomic refs plus a mutex-guarded freelist make the pool safe for
	// concurrent sessions, matching the policy.Recycled preset.
	var mu sync.Mutex
	p := New[testNode, atomic.Int32](policy.Atomic{}, &mu)

	const goroutines = 32
	const perGoroutine = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				h, n := p.Alloc()
				n.id = j
				require.True(t, p.Release(h))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, p.Live())
}
