package policy

import (
	"sync"
	"sync/atomic"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perst-io/perst/transience"
)

func TestPresets_ZeroOverhead(t *testing.T) {
	assert.Equal(t, uintptr(0), unsafe.Sizeof(Default{}),
		"all-stateless default policy must be zero-sized")
	assert.Equal(t, uintptr(0), unsafe.Sizeof(Collected{}))
	assert.Equal(t, uintptr(0), unsafe.Sizeof(Frozen{}))
}

func TestRecycled_OnlyPaysForTheMutex(t *testing.T) {
	assert.Equal(t, unsafe.Sizeof(sync.Mutex{}), unsafe.Sizeof(Recycled{}),
		"stateless fragments must not add storage around the lock")
}

func TestAccessors_RouteToFragments(t *testing.T) {
	p := New(Atomic{}, transience.Counting{}, Mutex{})

	// The lock accessor returns the embedded mutex itself.
	p.Lock().Lock()
	p.Lock().Unlock()

	// The transience accessor yields a working minter.
	tok := p.Transience().Mint()
	assert.NotEqual(t, transience.Serial(0), tok)

	// The refs accessor drives a counter cell.
	var c atomic.Int32
	p.Refs().Init(&c)
	assert.True(t, p.Refs().Unique(&c))
}

func TestAccessors_AddressFragmentInPlace(t *testing.T) {
	var p Recycled
	assert.Same(t, p.Lock(), p.Lock(), "accessors must resolve to one embedded instance")
}

func TestAtomic_RetainRelease(t *testing.T) {
	var r Atomic
	var c atomic.Int32

	r.Init(&c)
	require.True(t, r.Unique(&c))

	r.Retain(&c)
	assert.False(t, r.Unique(&c))
	assert.False(t, r.Release(&c), "one reference still outstanding")
	assert.True(t, r.Release(&c), "last release must report zero")
}

func TestAtomic_ReleaseBelowZeroPanics(t *testing.T) {
	var r Atomic
	var c atomic.Int32
	r.Init(&c)
	require.True(t, r.Release(&c))
	assert.Panics(t, func() { r.Release(&c) })
}

func TestAtomic_ConcurrentRetainRelease(t *testing.T) {
	const goroutines = 64

	var r Atomic
	var c atomic.Int32
	r.Init(&c)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Retain(&c)
			assert.False(t, r.Release(&c),
				"the initial reference is still held, nobody may observe zero")
		}()
	}
	wg.Wait()

	assert.True(t, r.Release(&c), "initial reference is the last one out")
}

func TestPlain_RetainRelease(t *testing.T) {
	var r Plain
	var c int32

	r.Init(&c)
	r.Retain(&c)
	r.Retain(&c)
	assert.False(t, r.Release(&c))
	assert.False(t, r.Release(&c))
	assert.True(t, r.Release(&c))
}

func TestNoRefs_NeverReportsZero(t *testing.T) {
	var r NoRefs
	var c struct{}

	r.Init(&c)
	r.Retain(&c)
	assert.False(t, r.Release(&c),
		"collector-owned slots must never be recycled by callers")
	assert.False(t, r.Unique(&c))
}

func TestNoLock_IsALocker(t *testing.T) {
	var l sync.Locker = NoLock{}
	l.Lock()
	l.Unlock()
}
