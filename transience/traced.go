package transience

// Cell is one collector-managed allocation whose address serves as a
// token identity. It must not be zero-sized: Go gives all zero-size
// allocations the same address, which would collapse every session
// into one.
type Cell struct {
	_ byte
}

// Ref is the trace-collected strategy's token type: the address of a
// Cell. Equality is cell identity; nil is noone. Because the token is
// itself a collected allocation, no explicit token deallocation ever
// happens - unreachable tokens are swept by the garbage collector.
type Ref = *Cell

// Traced is the trace-collected transience strategy.
//
// It is only memory-safe when the node store holding claimed Ownees is
// itself reachable by the tracing collector, which is true for every
// store in this module. A store built on manually managed memory must
// not use Traced: tokens recorded in its nodes would be invisible to
// the collector's liveness analysis and the cells would leak.
//
// Traced is zero-sized and safe for concurrent use.
type Traced struct{}

// Mint allocates a fresh cell and returns its address.
func (Traced) Mint() Ref {
	return &Cell{}
}

// NewTracedOwner creates a live Owner backed by the traced strategy.
func NewTracedOwner() *Owner[Ref] {
	return NewOwner[Ref](Traced{})
}
