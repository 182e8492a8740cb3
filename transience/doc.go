// Package transience implements the edit-token protocol that lets a
// transient facade mutate structurally-shared nodes in place exactly
// when it is safe to do so, and forces a copy otherwise.
//
// An edit token is an opaque, equality-comparable identity denoting one
// editing session. The zero value of a token type is the distinguished
// "noone" token: it means "no active editor" and is never handed out by
// a live Owner. An Owner holds the current token for one facade; an
// Ownee is embedded in every shared node and records which token, if
// any, may currently mutate that node in place.
//
// Three interchangeable strategies mint tokens:
//
//   - Counting mints Serial tokens from a process-wide atomic counter.
//     It needs no collector support and is the portable default.
//   - Traced mints Ref tokens, the address of a one-byte heap cell.
//     Token equality is cell identity and reclamation is left entirely
//     to the tracing garbage collector. This is only memory-safe while
//     the node graph itself is collector-managed; pairing it with a
//     manually managed node store leaks tokens and is a configuration
//     error, not something this package can detect.
//   - None mints Never tokens, which compare equal to noone. Permission
//     checks always fail, so every edit copies. It gives persistent-only
//     configurations a strategy slot at zero runtime and storage cost.
//
// Concurrency: at most one goroutine drives a given Owner at a time.
// Ownees perform no synchronization of their own; isolation between
// sessions comes from copy-on-write, not from locking. Minting tokens
// is safe from any goroutine.
//
// Protocol violations (claiming a node already owned by a different
// live session, or claiming with the noone token) are programming
// errors. They panic with a *ViolationError and are never part of
// normal control flow.
package transience
