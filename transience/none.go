package transience

// Never is the None strategy's token type. Its only value is the zero
// value, so every Never token is noone: CanMutate is always false and
// no node is ever claimed.
type Never struct{}

// None is the no-transience strategy for persistent-only
// configurations. Owners built on it are never live, so every edit
// through a facade copies. Both the strategy and its tokens are
// zero-sized; a configuration carrying None pays nothing for the
// transience slot it does not use.
type None struct{}

// Mint returns the noone token. This is the one strategy allowed to do
// so; Stamp treats its owners as exhausted and leaves nodes unowned.
func (None) Mint() Never {
	return Never{}
}

// NewVoidOwner creates an Owner that never grants mutation rights.
func NewVoidOwner() *Owner[Never] {
	return NewOwner[Never](None{})
}
