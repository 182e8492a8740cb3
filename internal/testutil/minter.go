// Package testutil provides deterministic token sources for tests.
//
// The production counting strategy mints from a process-global counter,
// so token values depend on everything else the test binary has run.
// The minters here draw from local counters instead, which makes token
// values reproducible within one test and keeps golden traces stable.
package testutil

import (
	"sync"

	"github.com/perst-io/perst/transience"
)

// DeterministicMinter mints transience.Serial tokens from a local,
// resettable counter.
//
// Two DeterministicMinters mint overlapping token values, so sessions
// created from different minters are NOT isolated from each other the
// way production sessions are. Use one minter per test and never mix
// its owners with production-minted ones.
//
// Thread-safety: all methods are safe for concurrent use.
type DeterministicMinter struct {
	mu  sync.Mutex
	seq uint64
}

// NewDeterministicMinter creates a minter whose first token is 1.
func NewDeterministicMinter() *DeterministicMinter {
	return &DeterministicMinter{}
}

// Mint returns the next token in sequence. Never returns the noone
// token.
func (m *DeterministicMinter) Mint() transience.Serial {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return transience.Serial(m.seq)
}

// Current returns the last minted token value without minting.
func (m *DeterministicMinter) Current() transience.Serial {
	m.mu.Lock()
	defer m.mu.Unlock()
	return transience.Serial(m.seq)
}

// Reset rewinds the counter so the next Mint returns 1 again. Used for
// test reuse; resetting while owners from this minter are still live
// would hand a later session an earlier session's token.
func (m *DeterministicMinter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq = 0
}

// FixedMinter mints the same token every time.
//
// This deliberately breaks the fresh-token guarantee: every owner
// created from one FixedMinter shares a single session identity. Tests
// use it to provoke the ownership collisions that production minting
// makes impossible, for example to check that a foreign claim panics.
//
// Thread-safety: FixedMinter is stateless after construction and safe
// for concurrent use.
type FixedMinter struct {
	token transience.Serial
}

// NewFixedMinter creates a minter that always returns token. A zero
// token is replaced with 1 so the minter never mints noone.
func NewFixedMinter(token transience.Serial) *FixedMinter {
	if token == 0 {
		token = 1
	}
	return &FixedMinter{token: token}
}

// Mint returns the fixed token.
func (m *FixedMinter) Mint() transience.Serial {
	return m.token
}
