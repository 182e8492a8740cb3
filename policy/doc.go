// Package policy composes independently authored memory-management
// fragments into one coherent per-container configuration.
//
// Three concerns are composed:
//
//   - Refs: how a shared node slot's lifetime is counted. In Go the
//     collector owns reclamation by default (NoRefs); counted fragments
//     exist for slot-recycling stores such as internal/arena, where a
//     count reaching zero returns a slot to a freelist.
//   - Transience: how in-place-mutation permission is tracked. See
//     package transience.
//   - Lock: how fragment-adjacent shared state (a recycler freelist,
//     a plain counter) is guarded. NoLock is the zero-cost default for
//     the single-writer model.
//
// A Policy is built with the capability combinator, so fragments keep a
// fixed, introspectable layout and stateless fragments cost nothing.
// The presets cover the useful pairings; Serialized/Collected/Frozen
// name the token type each preset's containers use.
package policy
