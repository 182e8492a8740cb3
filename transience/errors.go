package transience

import (
	"errors"
	"fmt"
)

// ViolationCode categorizes ownership-protocol violations.
type ViolationCode string

const (
	// CodeClaimNoone indicates an attempt to claim a node with the
	// noone token. Callers must only claim on behalf of a live session.
	CodeClaimNoone ViolationCode = "CLAIM_NOONE"

	// CodeClaimForeign indicates an attempt to claim a node already
	// owned by a different live session. Every mutation path must check
	// CanMutate before claiming; reaching this state means a caller
	// skipped the check and would have stolen mutation rights.
	CodeClaimForeign ViolationCode = "CLAIM_FOREIGN"
)

// ViolationError reports an ownership-protocol violation.
//
// Violations are unrecoverable defects in calling code, so they are
// raised as panics carrying a *ViolationError rather than returned.
// The structured fields exist for diagnostics, not for recovery.
type ViolationError struct {
	// Code identifies the violation category.
	Code ViolationCode

	// Session is the diagnostic ID of the offending session, when known.
	Session string

	// Held describes the token currently recorded on the node.
	Held string

	// Offered describes the token the caller tried to claim with.
	Offered string
}

// Error implements the error interface.
func (e *ViolationError) Error() string {
	if e.Session != "" {
		return fmt.Sprintf("transience: %s: node holds %s, offered %s (session=%s)", e.Code, e.Held, e.Offered, e.Session)
	}
	return fmt.Sprintf("transience: %s: node holds %s, offered %s", e.Code, e.Held, e.Offered)
}

// IsViolation reports whether err (or a panic value converted to error)
// is an ownership-protocol violation. Uses errors.As to handle wrapping.
func IsViolation(err error) bool {
	var ve *ViolationError
	return errors.As(err, &ve)
}
