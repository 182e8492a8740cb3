package transience

import "sync/atomic"

// serials is the process-wide source of Serial tokens. Tokens are
// monotonically distinct across the process for its whole lifetime;
// the counter is never reset, so a token can never be re-minted.
var serials atomic.Uint64

// Serial is the counting strategy's token type: a process-unique
// identity with no ordering semantics beyond equality. The zero value
// is noone and is never minted (the counter starts handing out 1).
type Serial uint64

// Counting is the counting-owned transience strategy. It mints Serial
// tokens without relying on any collector; a reference-counted or
// GC-owned node store reclaims nodes independently of token lifetime.
//
// Counting is zero-sized and safe for concurrent use.
type Counting struct{}

// Mint returns a fresh, process-unique Serial token.
func (Counting) Mint() Serial {
	return Serial(serials.Add(1))
}

// NewCountingOwner creates a live Owner backed by the counting strategy.
func NewCountingOwner() *Owner[Serial] {
	return NewOwner[Serial](Counting{})
}
