package transience

import (
	"fmt"

	"github.com/google/uuid"
)

// Minter mints fresh edit tokens for one transience strategy.
//
// E must be comparable; its zero value is the noone token. A live
// strategy never mints the zero value (the None strategy is the
// deliberate exception: it mints only noone-equal tokens, so nothing
// minted by it ever grants mutation rights).
type Minter[E comparable] interface {
	Mint() E
}

// noCopy flags accidental copies of an Owner under `go vet -copylocks`.
// Copying an Owner would let two facades believe they share a session.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Owner holds the current edit token for one transient facade.
//
// An Owner denotes exactly one editing session for as long as it is
// live. It is used through a pointer and must not be copied; a facade
// that needs an independent session calls Fork, which mints a distinct
// token, so two facades never believe they may mutate the same node.
//
// Thread-safety: an Owner is driven by at most one goroutine at a time.
type Owner[E comparable] struct {
	noCopy  noCopy
	mint    Minter[E]
	token   E
	session string
}

// NewOwner creates a live Owner with a freshly minted token.
//
// The session ID is a diagnostic identity carried into violation
// reports; it plays no part in permission checks.
func NewOwner[E comparable](m Minter[E]) *Owner[E] {
	return &Owner[E]{
		mint:    m,
		token:   m.Mint(),
		session: uuid.NewString(),
	}
}

// Token returns the session's current token. After Retire it returns
// the noone token, which never grants mutation rights.
func (o *Owner[E]) Token() E { return o.token }

// Session returns the diagnostic session ID.
func (o *Owner[E]) Session() string { return o.session }

// Live reports whether the Owner still holds a usable token.
func (o *Owner[E]) Live() bool {
	var noone E
	return o.token != noone
}

// Retire invalidates the session. Nodes claimed under the retired token
// keep it, but CanMutate against them now fails for this Owner, so any
// further edit through a facade holding it must copy. Converting a
// facade to persistent form retires its Owner.
func (o *Owner[E]) Retire() {
	var noone E
	o.token = noone
}

// Fork starts a new, distinct session using the same strategy. The
// receiver is unaffected. This is the safe analogue of copying an
// Owner: the fork never shares the original's mutation rights.
func (o *Owner[E]) Fork() *Owner[E] {
	return NewOwner(o.mint)
}

// Ownee is embedded once per shared node and records the token of the
// session currently permitted to mutate that node in place, or noone.
//
// The zero Ownee is unowned and ready for use. A node's clone must
// start from a zero Ownee: ownership is never inherited by copies.
type Ownee[E comparable] struct {
	token E
}

// CanMutate reports whether holders of token t may mutate this node in
// place. It is a reflexive identity comparison; the noone token never
// grants permission, even against an unowned node.
func (o *Ownee[E]) CanMutate(t E) bool {
	var noone E
	return t != noone && o.token == t
}

// Owned reports whether any live session has claimed this node.
func (o *Ownee[E]) Owned() bool {
	var noone E
	return o.token != noone
}

// Claim records t as the current permitted editor.
//
// Preconditions: t is not noone, and the node is either unowned or
// already held by t. Violating either is a defect in the caller (the
// mutation path must check CanMutate or Owned first) and panics with a
// *ViolationError; claims never silently override another live editor.
func (o *Ownee[E]) Claim(t E) {
	var noone E
	if t == noone {
		panic(&ViolationError{
			Code:    CodeClaimNoone,
			Held:    fmt.Sprintf("%v", o.token),
			Offered: fmt.Sprintf("%v", t),
		})
	}
	if o.token != noone && o.token != t {
		panic(&ViolationError{
			Code:    CodeClaimForeign,
			Held:    fmt.Sprintf("%v", o.token),
			Offered: fmt.Sprintf("%v", t),
		})
	}
	o.token = t
}

// Stamp claims the node for o's session if o is live; a retired or
// never-granting owner leaves the node unowned, so the next edit under
// any session copies again. Facades use Stamp on freshly cloned nodes
// instead of calling Claim directly: it is what makes an exhausted
// facade degrade to copy-always instead of panicking.
func Stamp[E comparable](n *Ownee[E], o *Owner[E]) {
	if !o.Live() {
		return
	}
	if n.Owned() && !n.CanMutate(o.token) {
		panic(&ViolationError{
			Code:    CodeClaimForeign,
			Session: o.session,
			Held:    fmt.Sprintf("%v", n.token),
			Offered: fmt.Sprintf("%v", o.token),
		})
	}
	n.Claim(o.token)
}
