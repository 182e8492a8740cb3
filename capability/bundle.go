package capability

// Bundle aggregates a head fragment with an already-combined tail.
//
// The head is stored before the tail, so a zero-sized head never costs
// storage and nested bundles lay out their fragments in declaration
// order. Both parts are plain fields: the layout is fixed, offsets are
// introspectable (see Describe), and there is no indirection between a
// bundle and its fragments.
//
// Bundles are meant to be embedded by value inside a larger
// configuration type and accessed through pointer receivers; copying a
// bundle copies every fragment it holds.
type Bundle[H, T any] struct {
	head H
	tail T
}

// Combine2 builds a bundle of two fragments. The second fragment is the
// innermost layer.
func Combine2[A, B any](a A, b B) Bundle[A, B] {
	return Bundle[A, B]{head: a, tail: b}
}

// Combine3 builds a bundle of three fragments, right to left: c is
// combined first, then wrapped by b, then by a.
func Combine3[A, B, C any](a A, b B, c C) Bundle[A, Bundle[B, C]] {
	return Combine2(a, Combine2(b, c))
}

// Combine4 builds a bundle of four fragments, right to left.
func Combine4[A, B, C, D any](a A, b B, c C, d D) Bundle[A, Bundle[B, Bundle[C, D]]] {
	return Combine2(a, Combine3(b, c, d))
}

// Head returns the outermost fragment of the bundle.
//
// The returned pointer addresses the fragment embedded in the bundle
// itself; writes through it are visible to every other accessor path.
func (b *Bundle[H, T]) Head() *H { return &b.head }

// Tail returns the combined remainder of the bundle. For nested bundles
// this is the delegation step: chain Tail().Head() calls to reach an
// inner fragment. The chain is resolved at compile time; there is no
// tag, switch, or reflection involved.
func (b *Bundle[H, T]) Tail() *T { return &b.tail }
