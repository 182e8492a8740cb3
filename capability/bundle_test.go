package capability

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fragments with deliberately predictable layouts. counterFrag and
// lockFrag are stateful; the rest are zero-sized strategies.
type emptyA struct{}
type emptyB struct{}

type counterFrag struct {
	n uint64
}

type lockFrag struct {
	state int32
	sema  uint32
}

func TestCombine2_AllEmpty_ZeroSize(t *testing.T) {
	b := Combine2(emptyA{}, emptyB{})
	assert.Equal(t, uintptr(0), unsafe.Sizeof(b), "bundle of empty fragments must be zero-sized")
}

func TestCombine2_EmptyHead_CostsNothing(t *testing.T) {
	b := Combine2(emptyA{}, counterFrag{})
	assert.Equal(t, unsafe.Sizeof(counterFrag{}), unsafe.Sizeof(b),
		"empty head must contribute zero storage")
}

func TestCombine3_OnlyInnermostStateful(t *testing.T) {
	// The combinator's field order places inner fragments last, so a
	// stateful innermost fragment never triggers trailing padding for
	// the empty ones wrapped around it.
	b := Combine3(emptyA{}, emptyB{}, lockFrag{})
	assert.Equal(t, unsafe.Sizeof(lockFrag{}), unsafe.Sizeof(b))
}

func TestCombine3_TwoStateful_SiblingFields(t *testing.T) {
	b := Combine3(emptyA{}, counterFrag{}, lockFrag{})
	want := unsafe.Sizeof(counterFrag{}) + unsafe.Sizeof(lockFrag{})
	assert.Equal(t, want, unsafe.Sizeof(b),
		"two stateful fragments are stored side by side with no extra overhead")
}

func TestAccessors_ResolveEmbeddedInstances(t *testing.T) {
	b := Combine3(emptyA{}, counterFrag{n: 7}, lockFrag{state: 1, sema: 2})

	assert.Equal(t, uint64(7), b.Tail().Head().n)
	assert.Equal(t, int32(1), b.Tail().Tail().state)

	// The accessor returns the embedded instance itself, not a copy.
	b.Tail().Head().n = 42
	assert.Equal(t, uint64(42), b.Tail().Head().n)
}

func TestAccessors_PointIntoBundleStorage(t *testing.T) {
	b := Combine2(counterFrag{}, lockFrag{})

	base := uintptr(unsafe.Pointer(&b))
	end := base + unsafe.Sizeof(b)

	head := uintptr(unsafe.Pointer(b.Head()))
	tail := uintptr(unsafe.Pointer(b.Tail()))

	assert.GreaterOrEqual(t, head, base)
	assert.Less(t, head, end)
	assert.GreaterOrEqual(t, tail, base)
	assert.Less(t, tail, end)
	assert.NotEqual(t, head, tail, "sibling stateful fragments occupy distinct storage")
}

func TestCombine4_RightToLeftNesting(t *testing.T) {
	b := Combine4(emptyA{}, emptyB{}, counterFrag{n: 3}, lockFrag{sema: 9})

	// The last-declared fragment is innermost: reached through the
	// longest delegation chain.
	assert.Equal(t, uint32(9), b.Tail().Tail().Tail().sema)
	assert.Equal(t, uint64(3), b.Tail().Tail().Head().n)
}

func TestDescribe_ReportsOffsets(t *testing.T) {
	b := Combine2(counterFrag{}, lockFrag{})
	l, err := Describe(&b)
	require.NoError(t, err)

	assert.Equal(t, unsafe.Sizeof(b), l.Size)
	require.Len(t, l.Fields, 2)
	assert.Equal(t, "head", l.Fields[0].Name)
	assert.Equal(t, uintptr(0), l.Fields[0].Offset)
	assert.False(t, l.Fields[0].Empty)
	assert.Equal(t, "tail", l.Fields[1].Name)
	assert.Equal(t, unsafe.Sizeof(counterFrag{}), l.Fields[1].Offset)
}

func TestDescribe_FlagsEmptyFragments(t *testing.T) {
	b := Combine2(emptyA{}, counterFrag{})
	l, err := Describe(b)
	require.NoError(t, err)

	require.Len(t, l.Fields, 2)
	assert.True(t, l.Fields[0].Empty)
	assert.False(t, l.Fields[1].Empty)
}

func TestDescribe_RejectsInterfaceFragments(t *testing.T) {
	type bad struct {
		frag interface{ Lock() }
	}
	_, err := Describe(bad{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interface")
	assert.Contains(t, err.Error(), "frag")
}

func TestDescribe_NilInput(t *testing.T) {
	_, err := Describe(nil)
	assert.Error(t, err)
}
