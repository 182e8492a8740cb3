// Package capability provides the layout combinator used to assemble
// independently authored memory-policy fragments into one aggregate
// configuration value.
//
// A fragment is a small value type representing one orthogonal concern
// (how node lifetimes are counted, how mutation permission is tracked,
// how shared state is locked). Most fragments are stateless, and a
// stateless fragment must not cost any storage in the aggregate.
//
// Bundles are built right-to-left: the last fragment passed to a Combine
// function forms the innermost layer, each earlier fragment wraps it.
// Fragments are recovered through the Head/Tail accessor chain, which is
// resolved entirely at compile time. Requesting a fragment that is not
// part of a bundle does not compile.
//
// Zero-overhead rule: a zero-sized fragment contributes no storage to the
// bundle. The one caveat is Go's trailing-field padding - a zero-sized
// field at the very end of a non-empty struct is padded so its address
// stays inside the struct. Combine orders fields so that later (inner)
// fragments sit last; place stateful fragments innermost to avoid the
// padding entirely. All bundles shipped by package policy follow this rule.
package capability
