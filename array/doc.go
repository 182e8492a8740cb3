// Package array provides an immutable, flat array with a transient
// facade for efficient batched edits.
//
// An Array is a value: apparent updates return a new Array sharing the
// old one's buffer wherever content is unchanged, and a published Array
// is never mutated. It is the degenerate backing store of this module -
// one contiguous buffer, one chunk - which makes the ownership protocol
// easy to see without trie machinery in the way.
//
// A Transient is a short-lived mutable view used to batch edits. Each
// mutating operation checks the buffer's ownership record against the
// facade's edit token: owned buffers are written in place, anything
// else is copied, claimed, and swapped in first. Converting back with
// Persistent retires the token, so the published snapshot can never be
// reached through the exhausted facade again.
//
// Concurrency: Arrays are safe to read from any number of goroutines,
// including while a derived Transient is being edited elsewhere. A
// Transient is driven by one goroutine at a time.
package array
