package policy

import "sync"

// NoLock is the zero-cost lock fragment for single-writer
// configurations: both operations are no-ops. It satisfies sync.Locker
// by value, so it can sit in a combined configuration without storage.
type NoLock struct{}

func (NoLock) Lock()   {}
func (NoLock) Unlock() {}

// Mutex is the contended-access lock fragment. It is sync.Mutex by
// another name so a Policy can carry it as a fragment; take its address
// through the Lock accessor to use it.
type Mutex = sync.Mutex

var _ sync.Locker = NoLock{}
