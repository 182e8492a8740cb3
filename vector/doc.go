// Package vector provides an immutable, structurally-shared vector with
// a transient facade for efficient batched edits.
//
// A Vector is a 32-way bit-partitioned trie plus a tail buffer holding
// the newest elements. Apparent updates return a new Vector sharing
// every unchanged node with the old one; a published Vector is never
// mutated and is safe to read from any number of goroutines, including
// while facades derived from it are being edited elsewhere.
//
// A TransientVector batches edits under one editing session. Every node
// it touches is checked independently against the session's edit token:
// nodes claimed earlier in the session are mutated in place, shared
// nodes are copied, claimed, and spliced in. Partial reuse across trie
// levels is normal - a leaf may be reused while an ancestor is copied,
// or the reverse. Converting back with Persistent retires the session's
// token, so nothing reachable from the published snapshot can be edited
// in place afterwards.
//
// Facades can optionally allocate their claimed nodes from a Recycler,
// arena-backed slot storage that reclaims nodes the session discards
// (truncation, height shrinks). Only nodes exclusively owned by the
// session are ever recycled; anything shared is left to the collector.
//
// One goroutine drives a given TransientVector at a time. Out-of-range
// indices are out of contract: callers bounds-check, the hot path
// checks only what it can check for free.
package vector
